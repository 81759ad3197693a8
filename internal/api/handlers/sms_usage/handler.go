package sms_usage

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	"github.com/m04kA/SMC-InspectionService/internal/service/sms"
)

const msgInvalidMonth = "некорректный месяц, ожидается YYYY-MM"

type Handler struct {
	service SMSService
	logger  Logger
}

func NewHandler(service SMSService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sms/usage
// Query params: month (YYYY-MM, по умолчанию текущий)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	result, err := h.service.GetUsage(r.Context(), principal.CenterID, r.URL.Query().Get("month"))
	if err != nil {
		if errors.Is(err, sms.ErrInvalidMonth) {
			h.logger.Warn("GET /sms/usage - Invalid month: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
		h.logger.Error("GET /sms/usage - Failed to get usage: center_id=%d, error=%v", principal.CenterID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
