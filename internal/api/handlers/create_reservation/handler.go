package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	reservationModels "github.com/m04kA/SMC-InspectionService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-InspectionService/internal/usecase/create_reservation"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput        = "некорректные данные записи"
	msgCenterNotFound      = "центр техосмотра не найден"
	msgCategoryNotFound    = "категория осмотра не найдена"
	msgCategoryInactive    = "категория осмотра отключена"
	msgClientNotFound      = "клиент не найден"
	msgVehicleNotFound     = "транспортное средство не найдено"
	msgVehicleNotOwned     = "транспортное средство принадлежит другому клиенту"
	msgAccessDenied        = "нельзя создать запись для другого клиента"
	msgDateInPast          = "нельзя записаться на прошедшую дату"
	msgHoliday             = "центр не работает в выбранную дату"
	msgCenterClosed        = "центр закрыт в выбранный день недели"
	msgOutsideOpeningHours = "время записи выходит за часы работы центра"
	msgConflict            = "выбранное время уже занято"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if !RespondUseCaseError(w, err) {
			h.logger.Error("POST /reservations - Failed to create reservation: center_id=%d, error=%v", principal.CenterID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("POST /reservations - Rejected: center_id=%d, user_id=%d, error=%v", principal.CenterID, principal.UserID, err)
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, code=%s, center_id=%d", result.ID, result.BookingCode, result.CenterID)
	handlers.RespondJSON(w, http.StatusCreated, reservationModels.FromDomainReservation(result))
}

// RespondUseCaseError отвечает на ожидаемую ошибку создания записи; false для внутренних ошибок
func RespondUseCaseError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, createReservation.ErrConflict):
		handlers.RespondConflict(w, msgConflict)

	case errors.Is(err, createReservation.ErrCenterNotFound):
		handlers.RespondNotFound(w, msgCenterNotFound)

	case errors.Is(err, createReservation.ErrCategoryNotFound):
		handlers.RespondNotFound(w, msgCategoryNotFound)

	case errors.Is(err, createReservation.ErrClientNotFound):
		handlers.RespondNotFound(w, msgClientNotFound)

	case errors.Is(err, createReservation.ErrVehicleNotFound):
		handlers.RespondNotFound(w, msgVehicleNotFound)

	case errors.Is(err, createReservation.ErrAccessDenied):
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, createReservation.ErrCategoryInactive):
		handlers.RespondBadRequest(w, msgCategoryInactive)

	case errors.Is(err, createReservation.ErrVehicleNotOwned):
		handlers.RespondBadRequest(w, msgVehicleNotOwned)

	case errors.Is(err, createReservation.ErrDateInPast):
		handlers.RespondBadRequest(w, msgDateInPast)

	case errors.Is(err, createReservation.ErrHoliday):
		handlers.RespondBadRequest(w, msgHoliday)

	case errors.Is(err, createReservation.ErrCenterClosed):
		handlers.RespondBadRequest(w, msgCenterClosed)

	case errors.Is(err, createReservation.ErrOutsideOpeningHours):
		handlers.RespondBadRequest(w, msgOutsideOpeningHours)

	case errors.Is(err, createReservation.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		return false
	}
	return true
}
