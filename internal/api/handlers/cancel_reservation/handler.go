package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	changeStatusHandler "github.com/m04kA/SMC-InspectionService/internal/api/handlers/change_status"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	"github.com/m04kA/SMC-InspectionService/internal/service/reservations"
	reservationModels "github.com/m04kA/SMC-InspectionService/internal/service/reservations/models"
	cancelReservation "github.com/m04kA/SMC-InspectionService/internal/usecase/cancel_reservation"
)

const modeTrash = "trash"

const (
	msgInvalidReservationID = "некорректный ID записи"
	msgInvalidReason        = "причина отмены слишком длинная"
	msgReservationNotFound  = "запись не найдена"
)

type Handler struct {
	useCase CancelReservationUseCase
	remover ReservationRemover
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, remover ReservationRemover, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		remover: remover,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/reservations/{id}
// Query params: reason (опционально), mode=trash - удалить запись из расписания без смены статуса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	if r.URL.Query().Get("mode") == modeTrash {
		h.trash(w, r, principal.CenterID, id)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelReservation.Request{
		CenterID: principal.CenterID,
		ID:       id,
		Reason:   handlers.QueryString(r, "reason"),
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrInvalidInput):
			h.logger.Warn("DELETE /reservations/{id} - Invalid input: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidReason)
		case changeStatusHandler.RespondTransitionError(w, err):
			h.logger.Warn("DELETE /reservations/{id} - Rejected: id=%d, error=%v", id, err)
		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to cancel reservation: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation cancelled: id=%d, center_id=%d", id, principal.CenterID)
	handlers.RespondJSON(w, http.StatusOK, reservationModels.FromDomainReservation(result))
}

func (h *Handler) trash(w http.ResponseWriter, r *http.Request, centerID, id int64) {
	if err := h.remover.Remove(r.Context(), centerID, id); err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			h.logger.Warn("DELETE /reservations/{id}?mode=trash - Reservation not found: id=%d", id)
			handlers.RespondNotFound(w, msgReservationNotFound)
			return
		}
		h.logger.Error("DELETE /reservations/{id}?mode=trash - Failed to remove reservation: id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /reservations/{id}?mode=trash - Reservation removed: id=%d, center_id=%d", id, centerID)
	handlers.RespondNoContent(w)
}
