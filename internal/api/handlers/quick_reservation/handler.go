package quick_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	createReservationHandler "github.com/m04kA/SMC-InspectionService/internal/api/handlers/create_reservation"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	quickReservation "github.com/m04kA/SMC-InspectionService/internal/usecase/quick_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные клиента или записи"
)

type Handler struct {
	useCase QuickReservationUseCase
	logger  Logger
}

func NewHandler(useCase QuickReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/quick
// Клиент ищется по телефону, ТС по госномеру; недостающие создаются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	var req QuickReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/quick - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal)
	if err != nil {
		h.logger.Warn("POST /reservations/quick - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quickReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/quick - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case createReservationHandler.RespondUseCaseError(w, err):
			h.logger.Warn("POST /reservations/quick - Rejected: center_id=%d, error=%v", principal.CenterID, err)
		default:
			h.logger.Error("POST /reservations/quick - Failed to create reservation: center_id=%d, error=%v", principal.CenterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/quick - Reservation created: id=%d, client_created=%t, vehicle_created=%t",
		result.Reservation.ID, result.ClientCreated, result.VehicleCreated)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
