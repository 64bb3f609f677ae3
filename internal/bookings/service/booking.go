package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	bookingserrors "classbook/internal/bookings/errors"
	"classbook/internal/bookings/repository"
	"classbook/internal/bookings/validator"
	scheduleerrors "classbook/internal/schedules/errors"
	"classbook/pkg/availability"
	"classbook/pkg/config"
	apperrors "classbook/pkg/errors"
	"classbook/pkg/model"
	"classbook/pkg/sanitizer"
	"classbook/pkg/timegrid"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleGuard is the slice of the day schedule store the booking flow
// needs: reading a day and atomically reserving or releasing its granules.
// The schedules repository satisfies it.
type ScheduleGuard interface {
	FindByDay(ctx context.Context, courseID, lecturerID, date string) (*model.DaySchedule, error)
	ReserveGranules(ctx context.Context, key string, granules []string) error
	ReleaseGranules(ctx context.Context, key string, granules []string) error
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByStudent(ctx context.Context, studentID string, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByDay(ctx context.Context, courseID, lecturerID, date string) ([]*model.Booking, error)
	Confirm(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	guard     ScheduleGuard
	validator *validator.BookingValidator
	publisher Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	guard ScheduleGuard,
	validator *validator.BookingValidator,
	publisher Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		guard:     guard,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create reserves the booking's granules and persists it in one transaction.
// The day lock serializes concurrent requests for the same lecturer day; the
// conditional reserve update is the actual correctness guarantee, so a lost
// lock only costs a retry, never a double booking.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	granules, err := timegrid.GranulesFor(booking.StartTime, booking.DurationHours)
	if err != nil {
		if errors.Is(err, timegrid.ErrInvalidDuration) {
			return apperrors.InvalidInput("duration_hours must be 1 or 2")
		}
		return apperrors.InvalidInput("start_time must be a grid time label between 08:00 AM and 08:00 PM")
	}
	if len(granules) < timegrid.RequiredGranules(booking.DurationHours) {
		return apperrors.InsufficientCapacity(booking.StartTime, booking.DurationHours)
	}
	booking.Granules = granules

	dayKey := booking.DayKey()
	if err := s.acquireDayLock(ctx, dayKey); err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.lockRepo.Release(ctx, dayKey); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release day lock", "day_key", dayKey, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		day, err := s.guard.FindByDay(sessCtx, booking.CourseID, booking.LecturerID, booking.Date)
		if err != nil {
			if errors.Is(err, scheduleerrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Day schedule", dayKey)
			}
			return apperrors.Internal("Failed to load day schedule", err)
		}

		if !slices.Contains(day.OpenStartTimes, booking.StartTime) {
			return apperrors.Conflict("Requested start time is not open for booking")
		}
		if !availability.CanStart(booking.StartTime, booking.DurationHours, day.BookedGranules) {
			return apperrors.Conflict("Requested time slot overlaps an existing booking")
		}

		if err := s.guard.ReserveGranules(sessCtx, dayKey, booking.Granules); err != nil {
			if errors.Is(err, scheduleerrors.ErrGranuleConflict) {
				return apperrors.Conflict("Requested time slot overlaps an existing booking")
			}
			if errors.Is(err, scheduleerrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Day schedule", dayKey)
			}
			return apperrors.Internal("Failed to reserve time slot", err)
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"day_key", dayKey,
			"start_time", booking.StartTime,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"day_key", dayKey,
		"start_time", booking.StartTime,
		"duration_hours", booking.DurationHours,
	)
	s.publishEvent(ctx, EventBookingCreated, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", err)
			errCount = apperrors.Internal("Failed to count bookings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.repo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list bookings", "limit", limit, "offset", offset, "error", err)
			errFind = apperrors.Internal("Failed to retrieve bookings", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return bookings, count, nil
}

func (s *bookingService) GetByStudent(ctx context.Context, studentID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	studentID = sanitizer.NormalizeID(studentID)
	if studentID == "" {
		return nil, 0, apperrors.InvalidInput("student_id is required")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByStudent(sharedCtx, studentID)
		if err != nil {
			s.cfg.Log.Error("Failed to count student bookings", "student_id", studentID, "error", err)
			errCount = apperrors.Internal("Failed to count student bookings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.repo.FindByStudent(sharedCtx, studentID, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list student bookings",
				"student_id", studentID,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve student bookings", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return bookings, count, nil
}

// GetByDay lists the bookings drawing granules from one lecturer day, sorted
// by start time.
func (s *bookingService) GetByDay(ctx context.Context, courseID, lecturerID, date string) ([]*model.Booking, error) {
	courseID = sanitizer.NormalizeID(courseID)
	lecturerID = sanitizer.NormalizeID(lecturerID)
	date = sanitizer.TrimAndNormalize(date)

	if courseID == "" || lecturerID == "" || date == "" {
		return nil, apperrors.InvalidInput("course_id, lecturer_id and date are required")
	}

	bookings, err := s.repo.FindByDay(ctx, courseID, lecturerID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to list day bookings",
			"day_key", model.DayKey(courseID, lecturerID, date),
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve day bookings", err)
	}
	return bookings, nil
}

// Confirm moves a pending booking to confirmed. The granules stay reserved.
func (s *bookingService) Confirm(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.UpdateStatus(ctx, id, []string{model.BookingStatusPending}, model.BookingStatusConfirmed); err != nil {
		return s.mapStatusError(err, id, "confirm")
	}

	s.cfg.Log.Info("Booking confirmed", "id", id)
	s.publishStatusEvent(ctx, EventBookingConfirmed, id)
	return nil
}

// Reject moves a pending booking to rejected and releases its granules.
func (s *bookingService) Reject(ctx context.Context, id string) error {
	return s.terminate(ctx, id, []string{model.BookingStatusPending},
		model.BookingStatusRejected, EventBookingRejected)
}

// Cancel moves a pending or confirmed booking to cancelled and releases its
// granules.
func (s *bookingService) Cancel(ctx context.Context, id string) error {
	return s.terminate(ctx, id, []string{model.BookingStatusPending, model.BookingStatusConfirmed},
		model.BookingStatusCancelled, EventBookingCancelled)
}

// terminate flips the status and releases the booking's granules in one
// transaction, so a failed release never leaves a dead booking holding slots.
func (s *bookingService) terminate(ctx context.Context, id string, allowedFrom []string, to, eventType string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	var booking *model.Booking
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		var err error
		booking, err = s.repo.FindByID(sessCtx, id)
		if err != nil {
			return s.mapStatusError(err, id, to)
		}

		if err := s.repo.UpdateStatus(sessCtx, id, allowedFrom, to); err != nil {
			return s.mapStatusError(err, id, to)
		}

		if err := s.guard.ReleaseGranules(sessCtx, booking.DayKey(), booking.Granules); err != nil {
			if errors.Is(err, scheduleerrors.ErrNotFound) {
				// The day schedule is gone; there is nothing left to release.
				s.cfg.Log.Warn("Day schedule missing on granule release", "day_key", booking.DayKey())
				return nil
			}
			return apperrors.Internal("Failed to release time slot", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to terminate booking", "id", id, "status", to, "error", err)
		return err
	}

	booking.Status = to
	s.cfg.Log.Info("Booking terminated", "id", id, "status", to)
	s.publishEvent(ctx, eventType, booking)
	return nil
}

func (s *bookingService) mapStatusError(err error, id, action string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	if errors.Is(err, bookingserrors.ErrInvalidTransition) {
		return apperrors.Conflict("Booking status does not allow " + action)
	}
	return apperrors.Internal("Failed to update booking status", err)
}

func (s *bookingService) publishStatusEvent(ctx context.Context, eventType, id string) {
	if s.publisher == nil {
		return
	}
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.cfg.Log.Warn("Failed to load booking for event", "id", id, "error", err)
		return
	}
	s.publishEvent(ctx, eventType, booking)
}

// acquireDayLock takes the advisory lock for the booking's day schedule.
func (s *bookingService) acquireDayLock(ctx context.Context, dayKey string) error {
	_, err := s.lockRepo.Acquire(ctx, dayKey, uuid.NewString())
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("This day is currently being booked by another request. Please try again.")
		}
		return apperrors.Internal("Failed to acquire day lock", err)
	}
	return nil
}

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.BookingStatusPending
	}
	if b.Format == "" {
		b.Format = model.BookingFormatOnline
	}
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.CourseID = sanitizer.NormalizeID(b.CourseID)
	b.LecturerID = sanitizer.NormalizeID(b.LecturerID)
	b.StudentID = sanitizer.NormalizeID(b.StudentID)
	b.StudentName = sanitizer.NormalizeName(b.StudentName)
	b.StudentEmail = sanitizer.NormalizeEmail(b.StudentEmail)
	b.Date = sanitizer.TrimAndNormalize(b.Date)
	b.StartTime = sanitizer.NormalizeTimeLabel(b.StartTime)
	b.Format = sanitizer.NormalizeID(b.Format)
	b.ReceiptURL = sanitizer.NormalizeURL(b.ReceiptURL)
	b.Note = sanitizer.TrimAndNormalize(b.Note)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
