package assign_employee

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	reservationModels "github.com/m04kA/SMC-InspectionService/internal/service/reservations/models"
	assignEmployee "github.com/m04kA/SMC-InspectionService/internal/usecase/assign_employee"
)

const (
	msgInvalidReservationID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidEmployeeID    = "некорректный ID сотрудника"
	msgReservationNotFound  = "запись не найдена"
	msgReservationClosed    = "запись уже закрыта"
)

// AssignEmployeeRequest HTTP request model; null снимает назначение
type AssignEmployeeRequest struct {
	EmployeeID *int64 `json:"employeeId"`
}

type Handler struct {
	useCase AssignEmployeeUseCase
	logger  Logger
}

func NewHandler(useCase AssignEmployeeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{id}/assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/assign - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req AssignEmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/assign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &assignEmployee.Request{
		CenterID:   principal.CenterID,
		ID:         id,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, assignEmployee.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)
		case errors.Is(err, assignEmployee.ErrReservationClosed):
			handlers.RespondConflict(w, msgReservationClosed)
		case errors.Is(err, assignEmployee.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		default:
			h.logger.Error("PATCH /reservations/{id}/assign - Failed to assign employee: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("PATCH /reservations/{id}/assign - Rejected: id=%d, error=%v", id, err)
		return
	}

	h.logger.Info("PATCH /reservations/{id}/assign - Employee assigned: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, reservationModels.FromDomainReservation(result))
}
