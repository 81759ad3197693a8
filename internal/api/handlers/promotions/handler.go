package promotions

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	promotionsService "github.com/m04kA/SMC-InspectionService/internal/service/promotions"
	"github.com/m04kA/SMC-InspectionService/internal/service/promotions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные акции"
	msgDuplicateCode      = "промокод уже используется"
	msgInvalidCode        = "промокод недействителен"
	msgNotRunning         = "акция не активна в текущую дату"
	msgUsageLimitReached  = "лимит использований промокода исчерпан"
)

// Handler маршруты /promotions
type Handler struct {
	service PromotionService
	logger  Logger
}

func NewHandler(service PromotionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/promotions
// Query params: includeInactive (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	result, err := h.service.List(r.Context(), principal.CenterID, handlers.QueryBool(r, "includeInactive"))
	if err != nil {
		h.logger.Error("GET /promotions - Failed to list promotions: center_id=%d, error=%v", principal.CenterID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/promotions
// Рассылка клиентам выполняется асинхронно обработчиком promotion.created
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	var req CreatePromotionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /promotions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(principal.CenterID)
	if err != nil {
		h.logger.Warn("POST /promotions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, promotionsService.ErrDuplicateCode):
			handlers.RespondConflict(w, msgDuplicateCode)
		case errors.Is(err, promotionsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /promotions - Failed to create promotion: center_id=%d, error=%v", principal.CenterID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("POST /promotions - Rejected: center_id=%d, error=%v", principal.CenterID, err)
		return
	}

	h.logger.Info("POST /promotions - Promotion created: id=%d, code=%s, center_id=%d", result.ID, result.Code, principal.CenterID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Validate POST /api/v1/promotions/validate
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	var req ValidateCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /promotions/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ValidateCode(r.Context(), &models.ValidateCodeRequest{
		CenterID: principal.CenterID,
		Code:     req.Code,
		Amount:   req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, promotionsService.ErrInvalidCode):
			handlers.RespondNotFound(w, msgInvalidCode)
		case errors.Is(err, promotionsService.ErrNotRunning):
			handlers.RespondBadRequest(w, msgNotRunning)
		case errors.Is(err, promotionsService.ErrUsageLimitReached):
			handlers.RespondConflict(w, msgUsageLimitReached)
		case errors.Is(err, promotionsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /promotions/validate - Failed to validate code: center_id=%d, error=%v", principal.CenterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
