package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"classbook/internal/schedules/service"
	httputil "classbook/pkg/http"
	"classbook/pkg/logger"
	"classbook/pkg/model"
)

type ScheduleHandler struct {
	service service.ScheduleService
	log     *logger.Logger
}

func NewScheduleHandler(service service.ScheduleService, log *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log,
	}
}

func (h *ScheduleHandler) SetDay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var day model.DaySchedule
	if err := json.NewDecoder(r.Body).Decode(&day); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SetDay", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.SetDay(r.Context(), &day); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SetDay", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, day); err != nil {
		h.log.Error("failed to write success response", "handler", "SetDay", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) GetDay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	courseID := query.Get("course_id")
	lecturerID := query.Get("lecturer_id")
	date := query.Get("date")

	day, err := h.service.GetDay(r.Context(), courseID, lecturerID, date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetDay", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, day); err != nil {
		h.log.Error("failed to write success response", "handler", "GetDay", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	courseID := query.Get("course_id")
	lecturerID := query.Get("lecturer_id")
	date := query.Get("date")

	result, err := h.service.Availability(r.Context(), courseID, lecturerID, date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) CanModify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	courseID := query.Get("course_id")
	lecturerID := query.Get("lecturer_id")
	date := query.Get("date")

	canModify, err := h.service.CanModify(r.Context(), courseID, lecturerID, date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CanModify", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]bool{"can_modify": canModify}); err != nil {
		h.log.Error("failed to write success response", "handler", "CanModify", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) ListByLecturer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	lecturerID := ps.ByName("id")

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListByLecturer", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	days, totalCount, err := h.service.ListByLecturer(r.Context(), lecturerID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListByLecturer", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, days, totalCount, limit, int(offset)); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListByLecturer", "operation", "WritePaginated", "error", err)
	}
}

func (h *ScheduleHandler) ApplyBulk(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BulkApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ApplyBulk", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	report, err := h.service.ApplyBulk(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ApplyBulk", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, report); err != nil {
		h.log.Error("failed to write success response", "handler", "ApplyBulk", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ScheduleHandler) RegisterRoutes(router *httprouter.Router) {
	router.PUT("/api/v1/schedules/day", h.SetDay)
	router.GET("/api/v1/schedules/day", h.GetDay)
	router.GET("/api/v1/schedules/day/can-modify", h.CanModify)
	router.GET("/api/v1/schedules/availability", h.Availability)
	router.GET("/api/v1/schedules/lecturer/:id", h.ListByLecturer)
	router.POST("/api/v1/schedules/bulk", h.ApplyBulk)
}
