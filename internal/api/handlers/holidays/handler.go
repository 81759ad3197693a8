package holidays

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	holidaysService "github.com/m04kA/SMC-InspectionService/internal/service/holidays"
	"github.com/m04kA/SMC-InspectionService/internal/service/holidays/models"
)

const (
	msgInvalidHolidayID   = "некорректный ID выходного"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры фильтра"
	msgInvalidInput       = "некорректные данные выходного"
	msgInvalidDateRange   = "дата окончания раньше даты начала"
	msgHolidayNotFound    = "выходной не найден"
)

// Handler маршруты /holidays
type Handler struct {
	service HolidayService
	logger  Logger
}

func NewHandler(service HolidayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/holidays
// Query params: year, month, includeInactive (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	req := &models.ListHolidaysRequest{
		CenterID:        principal.CenterID,
		IncludeInactive: handlers.QueryBool(r, "includeInactive"),
	}
	year, err := handlers.QueryInt(r, "year", 0)
	if err == nil && year != 0 {
		req.Year = &year
	}
	month, monthErr := handlers.QueryInt(r, "month", 0)
	if monthErr == nil && month != 0 {
		req.Month = &month
	}
	if err != nil || monthErr != nil {
		h.logger.Warn("GET /holidays - Invalid parameters: year=%q, month=%q", r.URL.Query().Get("year"), r.URL.Query().Get("month"))
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, holidaysService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /holidays - Failed to list holidays: center_id=%d, error=%v", principal.CenterID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Upcoming GET /api/v1/holidays/upcoming
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	limit, err := handlers.QueryInt(r, "limit", 0)
	if err != nil {
		h.logger.Warn("GET /holidays/upcoming - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.Upcoming(r.Context(), principal.CenterID, limit)
	if err != nil {
		h.logger.Error("GET /holidays/upcoming - Failed to get holidays: center_id=%d, error=%v", principal.CenterID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/holidays
// Записи на период выходного отменяются асинхронно обработчиком holiday.created
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	var req CreateHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(principal.CenterID)
	if err != nil {
		h.logger.Warn("POST /holidays - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, holidaysService.ErrInvalidDateRange):
			handlers.RespondBadRequest(w, msgInvalidDateRange)
		case errors.Is(err, holidaysService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /holidays - Failed to create holiday: center_id=%d, error=%v", principal.CenterID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("POST /holidays - Rejected: center_id=%d, error=%v", principal.CenterID, err)
		return
	}

	h.logger.Info("POST /holidays - Holiday created: id=%d, center_id=%d", result.ID, principal.CenterID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Toggle PATCH /api/v1/holidays/{id}/toggle
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /holidays/{id}/toggle - Invalid holiday ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	result, err := h.service.Toggle(r.Context(), principal.CenterID, id)
	if err != nil {
		if errors.Is(err, holidaysService.ErrHolidayNotFound) {
			handlers.RespondNotFound(w, msgHolidayNotFound)
			return
		}
		h.logger.Error("PATCH /holidays/{id}/toggle - Failed to toggle holiday: id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /holidays/{id}/toggle - Holiday toggled: id=%d, active=%t", id, result.IsActive)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/holidays/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /holidays/{id} - Invalid holiday ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	if err := h.service.Delete(r.Context(), principal.CenterID, id); err != nil {
		if errors.Is(err, holidaysService.ErrHolidayNotFound) {
			handlers.RespondNotFound(w, msgHolidayNotFound)
			return
		}
		h.logger.Error("DELETE /holidays/{id} - Failed to delete holiday: id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /holidays/{id} - Holiday deleted: id=%d, center_id=%d", id, principal.CenterID)
	handlers.RespondNoContent(w)
}
