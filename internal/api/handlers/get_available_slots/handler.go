package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	"github.com/m04kA/SMC-InspectionService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-InspectionService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCategoryID = "некорректный ID категории"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgCenterNotFound    = "центр техосмотра не найден"
	msgCategoryNotFound  = "категория осмотра не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/available-slots/{date}
// Query params: categoryId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	date, err := handlers.PathDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /reservations/available-slots/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	categoryID, err := handlers.QueryInt64(r, "categoryId")
	if err != nil {
		h.logger.Warn("GET /reservations/available-slots/{date} - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		CenterID:   principal.CenterID,
		Date:       date,
		CategoryID: categoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCenterNotFound):
			h.logger.Warn("GET /reservations/available-slots/{date} - Center not found: center_id=%d", principal.CenterID)
			handlers.RespondNotFound(w, msgCenterNotFound)

		case errors.Is(err, getAvailableSlots.ErrCategoryNotFound):
			h.logger.Warn("GET /reservations/available-slots/{date} - Category not found: center_id=%d", principal.CenterID)
			handlers.RespondNotFound(w, msgCategoryNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /reservations/available-slots/{date} - Failed to get slots: center_id=%d, error=%v", principal.CenterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/available-slots/{date} - Slots retrieved: center_id=%d, date=%s, slots_count=%d",
		principal.CenterID, date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
