package get_day_schedule

import (
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	getDaySchedule "github.com/m04kA/SMC-InspectionService/internal/usecase/get_day_schedule"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/day/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	date, err := handlers.PathDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /reservations/day/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDaySchedule.Request{CenterID: principal.CenterID, Date: date})
	if err != nil {
		h.logger.Error("GET /reservations/day/{date} - Failed to get schedule: center_id=%d, error=%v", principal.CenterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations/day/{date} - Schedule retrieved: center_id=%d, reservations=%d",
		principal.CenterID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
