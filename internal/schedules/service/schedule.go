package service

import (
	"context"
	"errors"
	"sync"
	"time"

	scheduleerrors "classbook/internal/schedules/errors"
	"classbook/internal/schedules/repository"
	"classbook/internal/schedules/validator"
	"classbook/pkg/availability"
	"classbook/pkg/config"
	apperrors "classbook/pkg/errors"
	"classbook/pkg/model"
	"classbook/pkg/sanitizer"
)

const dateLayout = "2006-01-02"

type ScheduleService interface {
	SetDay(ctx context.Context, day *model.DaySchedule) error
	GetDay(ctx context.Context, courseID, lecturerID, date string) (*model.DaySchedule, error)
	Availability(ctx context.Context, courseID, lecturerID, date string) (availability.Result, error)
	CanModify(ctx context.Context, courseID, lecturerID, date string) (bool, error)
	ListByLecturer(ctx context.Context, lecturerID string, limit int, offset int64) ([]*model.DaySchedule, int64, error)
	ApplyBulk(ctx context.Context, req *model.BulkApplyRequest) (*model.BulkApplyReport, error)
}

type scheduleService struct {
	repo      repository.DayScheduleRepository
	validator *validator.DayScheduleValidator
	cfg       *config.Config
}

func NewScheduleService(
	repo repository.DayScheduleRepository,
	validator *validator.DayScheduleValidator,
	cfg *config.Config,
) ScheduleService {
	return &scheduleService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *scheduleService) SetDay(ctx context.Context, day *model.DaySchedule) error {
	s.sanitize(day)

	if err := s.validator.Validate(day); err != nil {
		s.cfg.Log.Warn("Day schedule validation failed",
			"course_id", day.CourseID,
			"lecturer_id", day.LecturerID,
			"date", day.Date,
			"error", err,
		)
		return apperrors.Validation("Day schedule validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.SetOpenStartTimes(ctx, day); err != nil {
		if errors.Is(err, scheduleerrors.ErrScheduleLocked) {
			return apperrors.ScheduleLocked(day.Key())
		}
		s.cfg.Log.Error("Failed to set day schedule",
			"key", day.Key(),
			"error", err,
		)
		return apperrors.Internal("Failed to set day schedule", err)
	}

	s.cfg.Log.Info("Day schedule set successfully",
		"key", day.Key(),
		"open_start_times", len(day.OpenStartTimes),
	)
	return nil
}

func (s *scheduleService) GetDay(ctx context.Context, courseID, lecturerID, date string) (*model.DaySchedule, error) {
	courseID = sanitizer.NormalizeID(courseID)
	lecturerID = sanitizer.NormalizeID(lecturerID)
	date = sanitizer.TrimAndNormalize(date)

	if courseID == "" || lecturerID == "" || date == "" {
		return nil, apperrors.InvalidInput("course_id, lecturer_id and date are required")
	}

	day, err := s.repo.FindByDay(ctx, courseID, lecturerID, date)
	if err != nil {
		if errors.Is(err, scheduleerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Day schedule", model.DayKey(courseID, lecturerID, date))
		}
		s.cfg.Log.Error("Failed to get day schedule",
			"key", model.DayKey(courseID, lecturerID, date),
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve day schedule", err)
	}

	return day, nil
}

// Availability computes the bookable start times for a day. A day with no
// schedule document has no open start times, so it yields an empty result
// rather than an error.
func (s *scheduleService) Availability(ctx context.Context, courseID, lecturerID, date string) (availability.Result, error) {
	courseID = sanitizer.NormalizeID(courseID)
	lecturerID = sanitizer.NormalizeID(lecturerID)
	date = sanitizer.TrimAndNormalize(date)

	empty := availability.Result{
		OneHourStarts: []string{},
		TwoHourStarts: []string{},
	}

	if courseID == "" || lecturerID == "" || date == "" {
		return empty, apperrors.InvalidInput("course_id, lecturer_id and date are required")
	}

	day, err := s.repo.FindByDay(ctx, courseID, lecturerID, date)
	if err != nil {
		if errors.Is(err, scheduleerrors.ErrNotFound) {
			return empty, nil
		}
		s.cfg.Log.Error("Failed to load day schedule for availability",
			"key", model.DayKey(courseID, lecturerID, date),
			"error", err,
		)
		return empty, apperrors.Internal("Failed to compute availability", err)
	}

	return availability.Compute(day.OpenStartTimes, day.BookedGranules), nil
}

// CanModify reports whether the day's open start times may still be edited.
// A day with no schedule document is always modifiable.
func (s *scheduleService) CanModify(ctx context.Context, courseID, lecturerID, date string) (bool, error) {
	day, err := s.GetDay(ctx, courseID, lecturerID, date)
	if err != nil {
		appErr := apperrors.AsAppError(err)
		if appErr.Code == apperrors.CodeNotFound {
			return true, nil
		}
		return false, err
	}
	return !day.Locked(), nil
}

func (s *scheduleService) ListByLecturer(ctx context.Context, lecturerID string, limit int, offset int64) ([]*model.DaySchedule, int64, error) {
	lecturerID = sanitizer.NormalizeID(lecturerID)
	if lecturerID == "" {
		return nil, 0, apperrors.InvalidInput("lecturer_id is required")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	// Create shared context with timeout for both goroutines
	// This ensures coordinated cancellation if one operation times out
	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var days []*model.DaySchedule
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByLecturer(sharedCtx, lecturerID)
		if err != nil {
			s.cfg.Log.Error("Failed to count day schedules", "lecturer_id", lecturerID, "error", err)
			errCount = apperrors.Internal("Failed to count day schedules", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		days, err = s.repo.ListByLecturer(sharedCtx, lecturerID, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list day schedules",
				"lecturer_id", lecturerID,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to list day schedules", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return days, count, nil
}

// ApplyBulk writes one set of open start times to every date in the range
// whose weekday matches. Each date commits independently: locked days are
// skipped, store failures are recorded, and neither stops the remaining
// dates.
func (s *scheduleService) ApplyBulk(ctx context.Context, req *model.BulkApplyRequest) (*model.BulkApplyReport, error) {
	s.sanitizeBulk(req)

	if err := s.validator.ValidateBulkApply(req); err != nil {
		s.cfg.Log.Warn("Bulk apply validation failed",
			"course_id", req.CourseID,
			"lecturer_id", req.LecturerID,
			"error", err,
		)
		return nil, apperrors.Validation("Bulk apply validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, apperrors.InvalidInput("start_date must be in YYYY-MM-DD format")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, apperrors.InvalidInput("end_date must be in YYYY-MM-DD format")
	}
	if end.Before(start) {
		return nil, apperrors.InvalidInput("end_date must not be before start_date")
	}
	if int(end.Sub(start).Hours()/24)+1 > s.cfg.BulkApplyMaxDays {
		return nil, apperrors.Validation("Date range exceeds the bulk apply limit", map[string]any{
			"max_days": s.cfg.BulkApplyMaxDays,
		})
	}

	weekdays := make(map[string]struct{}, len(req.Weekdays))
	for _, w := range req.Weekdays {
		weekdays[w] = struct{}{}
	}

	report := &model.BulkApplyReport{
		Applied: []string{},
		Skipped: []string{},
		Failed:  []string{},
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if _, ok := weekdays[weekdayName(d)]; !ok {
			continue
		}

		date := d.Format(dateLayout)
		day := &model.DaySchedule{
			CourseID:       req.CourseID,
			LecturerID:     req.LecturerID,
			Date:           date,
			OpenStartTimes: req.OpenStartTimes,
		}

		err := s.repo.SetOpenStartTimes(ctx, day)
		switch {
		case err == nil:
			report.Applied = append(report.Applied, date)
		case errors.Is(err, scheduleerrors.ErrScheduleLocked):
			report.Skipped = append(report.Skipped, date)
		default:
			s.cfg.Log.Error("Bulk apply failed for date",
				"key", day.Key(),
				"error", err,
			)
			report.Failed = append(report.Failed, date)
		}
	}

	s.cfg.Log.Info("Bulk apply completed",
		"course_id", req.CourseID,
		"lecturer_id", req.LecturerID,
		"applied", len(report.Applied),
		"skipped", len(report.Skipped),
		"failed", len(report.Failed),
	)
	return report, nil
}

func (s *scheduleService) sanitize(day *model.DaySchedule) {
	day.CourseID = sanitizer.NormalizeID(day.CourseID)
	day.LecturerID = sanitizer.NormalizeID(day.LecturerID)
	day.Date = sanitizer.TrimAndNormalize(day.Date)
	day.OpenStartTimes = sanitizer.NormalizeTimeLabels(day.OpenStartTimes)
}

func (s *scheduleService) sanitizeBulk(req *model.BulkApplyRequest) {
	req.CourseID = sanitizer.NormalizeID(req.CourseID)
	req.LecturerID = sanitizer.NormalizeID(req.LecturerID)
	req.StartDate = sanitizer.TrimAndNormalize(req.StartDate)
	req.EndDate = sanitizer.TrimAndNormalize(req.EndDate)
	req.Weekdays = sanitizer.NormalizeWeekdays(req.Weekdays)
	req.OpenStartTimes = sanitizer.NormalizeTimeLabels(req.OpenStartTimes)
}

func weekdayName(d time.Time) string {
	switch d.Weekday() {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	default:
		return "saturday"
	}
}
