package update_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	reservationModels "github.com/m04kA/SMC-InspectionService/internal/service/reservations/models"
	updateReservation "github.com/m04kA/SMC-InspectionService/internal/usecase/update_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректные данные записи"
	msgReservationNotFound  = "запись не найдена"
	msgReservationClosed    = "запись уже закрыта и не может быть изменена"
	msgCategoryNotFound     = "категория осмотра не найдена"
	msgCategoryInactive     = "категория осмотра отключена"
	msgDateInPast           = "нельзя перенести запись на прошедшую дату"
	msgHoliday              = "центр не работает в выбранную дату"
	msgCenterClosed         = "центр закрыт в выбранный день недели"
	msgOutsideOpeningHours  = "время записи выходит за часы работы центра"
	msgConflict             = "выбранное время уже занято"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal.CenterID, id)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)
		case errors.Is(err, updateReservation.ErrCategoryNotFound):
			handlers.RespondNotFound(w, msgCategoryNotFound)
		case errors.Is(err, updateReservation.ErrConflict):
			handlers.RespondConflict(w, msgConflict)
		case errors.Is(err, updateReservation.ErrReservationClosed):
			handlers.RespondConflict(w, msgReservationClosed)
		case errors.Is(err, updateReservation.ErrCategoryInactive):
			handlers.RespondBadRequest(w, msgCategoryInactive)
		case errors.Is(err, updateReservation.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)
		case errors.Is(err, updateReservation.ErrHoliday):
			handlers.RespondBadRequest(w, msgHoliday)
		case errors.Is(err, updateReservation.ErrCenterClosed):
			handlers.RespondBadRequest(w, msgCenterClosed)
		case errors.Is(err, updateReservation.ErrOutsideOpeningHours):
			handlers.RespondBadRequest(w, msgOutsideOpeningHours)
		case errors.Is(err, updateReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to update reservation: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("PATCH /reservations/{id} - Rejected: id=%d, error=%v", id, err)
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, reservationModels.FromDomainReservation(result))
}
