package update_result

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	changeStatusHandler "github.com/m04kA/SMC-InspectionService/internal/api/handlers/change_status"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	reservationModels "github.com/m04kA/SMC-InspectionService/internal/service/reservations/models"
	updateResult "github.com/m04kA/SMC-InspectionService/internal/usecase/update_result"
)

const (
	msgInvalidReservationID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidResult        = "некорректный результат осмотра"
)

type Handler struct {
	useCase UpdateResultUseCase
	logger  Logger
}

func NewHandler(useCase UpdateResultUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{id}/result
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/result - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateResultRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/result - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal.CenterID, id)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/result - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResult)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateResult.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/result - Invalid input: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidResult)
		case changeStatusHandler.RespondTransitionError(w, err):
			h.logger.Warn("PATCH /reservations/{id}/result - Rejected: id=%d, error=%v", id, err)
		default:
			h.logger.Error("PATCH /reservations/{id}/result - Failed to record result: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/result - Result recorded: id=%d, result=%s", id, req.Result)
	handlers.RespondJSON(w, http.StatusOK, reservationModels.FromDomainReservation(result))
}
