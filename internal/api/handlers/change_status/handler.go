package change_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	reservationModels "github.com/m04kA/SMC-InspectionService/internal/service/reservations/models"
	changeStatus "github.com/m04kA/SMC-InspectionService/internal/usecase/change_status"
)

const (
	msgInvalidReservationID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStatus        = "некорректный статус записи"
	msgReservationNotFound  = "запись не найдена"
	msgInvalidTransition    = "недопустимая смена статуса"
)

type Handler struct {
	useCase ChangeStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &changeStatus.Request{
		CenterID: principal.CenterID,
		ID:       id,
		Status:   req.Status,
		Reason:   req.Reason,
	})
	if err != nil {
		if !RespondTransitionError(w, err) {
			h.logger.Error("PATCH /reservations/{id}/status - Failed to change status: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("PATCH /reservations/{id}/status - Rejected: id=%d, status=%s, error=%v", id, req.Status, err)
		return
	}

	h.logger.Info("PATCH /reservations/{id}/status - Status changed: id=%d, status=%s", id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, reservationModels.FromDomainReservation(result))
}

// RespondTransitionError отвечает на ожидаемую ошибку смены статуса; false для внутренних ошибок
func RespondTransitionError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, changeStatus.ErrReservationNotFound):
		handlers.RespondNotFound(w, msgReservationNotFound)
	case errors.Is(err, changeStatus.ErrInvalidTransition):
		handlers.RespondConflict(w, msgInvalidTransition)
	case errors.Is(err, changeStatus.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidStatus)
	default:
		return false
	}
	return true
}
