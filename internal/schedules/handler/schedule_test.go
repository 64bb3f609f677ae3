package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"classbook/pkg/availability"
	apperrors "classbook/pkg/errors"
	"classbook/pkg/logger"
	"classbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Mock service for testing
type mockScheduleService struct {
	setDayFunc       func(ctx context.Context, day *model.DaySchedule) error
	availabilityFunc func(ctx context.Context, courseID, lecturerID, date string) (availability.Result, error)
	canModifyFunc    func(ctx context.Context, courseID, lecturerID, date string) (bool, error)
	applyBulkFunc    func(ctx context.Context, req *model.BulkApplyRequest) (*model.BulkApplyReport, error)
}

func (m *mockScheduleService) SetDay(ctx context.Context, day *model.DaySchedule) error {
	if m.setDayFunc != nil {
		return m.setDayFunc(ctx, day)
	}
	return nil
}

func (m *mockScheduleService) GetDay(ctx context.Context, courseID, lecturerID, date string) (*model.DaySchedule, error) {
	return nil, nil
}

func (m *mockScheduleService) Availability(ctx context.Context, courseID, lecturerID, date string) (availability.Result, error) {
	if m.availabilityFunc != nil {
		return m.availabilityFunc(ctx, courseID, lecturerID, date)
	}
	return availability.Result{OneHourStarts: []string{}, TwoHourStarts: []string{}}, nil
}

func (m *mockScheduleService) CanModify(ctx context.Context, courseID, lecturerID, date string) (bool, error) {
	if m.canModifyFunc != nil {
		return m.canModifyFunc(ctx, courseID, lecturerID, date)
	}
	return true, nil
}

func (m *mockScheduleService) ListByLecturer(ctx context.Context, lecturerID string, limit int, offset int64) ([]*model.DaySchedule, int64, error) {
	return []*model.DaySchedule{}, 0, nil
}

func (m *mockScheduleService) ApplyBulk(ctx context.Context, req *model.BulkApplyRequest) (*model.BulkApplyReport, error) {
	if m.applyBulkFunc != nil {
		return m.applyBulkFunc(ctx, req)
	}
	return &model.BulkApplyReport{Applied: []string{}, Skipped: []string{}, Failed: []string{}}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func TestAvailability_ReturnsComputedStarts(t *testing.T) {
	mockService := &mockScheduleService{
		availabilityFunc: func(ctx context.Context, courseID, lecturerID, date string) (availability.Result, error) {
			return availability.Result{
				OneHourStarts: []string{"09:00 AM", "10:00 AM"},
				TwoHourStarts: []string{"09:00 AM"},
			}, nil
		},
	}
	handler := &ScheduleHandler{service: mockService, log: testLogger()}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/schedules/availability?course_id=pte-speaking&lecturer_id=lect-042&date=2025-03-14", nil)
	w := httptest.NewRecorder()

	handler.Availability(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Data availability.Result `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data.OneHourStarts) != 2 || resp.Data.OneHourStarts[0] != "09:00 AM" {
		t.Errorf("unexpected one hour starts: %v", resp.Data.OneHourStarts)
	}
	if len(resp.Data.TwoHourStarts) != 1 {
		t.Errorf("unexpected two hour starts: %v", resp.Data.TwoHourStarts)
	}
}

func TestCanModify_ReportsLockState(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"unlocked day is modifiable", true},
		{"booked day is not modifiable", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mockScheduleService{
				canModifyFunc: func(ctx context.Context, courseID, lecturerID, date string) (bool, error) {
					return tt.want, nil
				},
			}
			handler := &ScheduleHandler{service: mockService, log: testLogger()}

			req := httptest.NewRequest(http.MethodGet,
				"/api/v1/schedules/day/can-modify?course_id=pte-speaking&lecturer_id=lect-042&date=2025-03-14", nil)
			w := httptest.NewRecorder()

			handler.CanModify(w, req, httprouter.Params{})

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}

			var resp struct {
				Data map[string]bool `json:"data"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if got, ok := resp.Data["can_modify"]; !ok || got != tt.want {
				t.Errorf("expected can_modify=%v, got %v", tt.want, resp.Data)
			}
		})
	}
}

func TestSetDay_InvalidBody(t *testing.T) {
	handler := &ScheduleHandler{service: &mockScheduleService{}, log: testLogger()}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/schedules/day", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.SetDay(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestSetDay_LockedDayReturns409(t *testing.T) {
	mockService := &mockScheduleService{
		setDayFunc: func(ctx context.Context, day *model.DaySchedule) error {
			return apperrors.ScheduleLocked(day.Key())
		},
	}
	handler := &ScheduleHandler{service: mockService, log: testLogger()}

	body := `{"course_id":"pte-speaking","lecturer_id":"lect-042","date":"2025-03-14","open_start_times":["09:00 AM"]}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/schedules/day", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SetDay(w, req, httprouter.Params{})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != apperrors.CodeScheduleLocked {
		t.Errorf("expected code %s, got %s", apperrors.CodeScheduleLocked, resp.Code)
	}
}

func TestApplyBulk_ReturnsReport(t *testing.T) {
	mockService := &mockScheduleService{
		applyBulkFunc: func(ctx context.Context, req *model.BulkApplyRequest) (*model.BulkApplyReport, error) {
			return &model.BulkApplyReport{
				Applied: []string{"2025-03-03", "2025-03-10"},
				Skipped: []string{"2025-03-07"},
				Failed:  []string{},
			}, nil
		},
	}
	handler := &ScheduleHandler{service: mockService, log: testLogger()}

	body := `{"course_id":"pte-speaking","lecturer_id":"lect-042","start_date":"2025-03-03","end_date":"2025-03-10","weekdays":["monday","friday"],"open_start_times":["09:00 AM"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules/bulk", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.ApplyBulk(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Data model.BulkApplyReport `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data.Applied) != 2 || len(resp.Data.Skipped) != 1 {
		t.Errorf("unexpected report: %+v", resp.Data)
	}
}
