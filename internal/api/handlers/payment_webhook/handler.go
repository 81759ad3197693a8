package payment_webhook

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/service/payments"
)

// completionEvents типы событий провайдера, завершающие платеж
var completionEvents = map[string]bool{
	"payment.succeeded":          true,
	"checkout.session.completed": true,
}

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgPaymentNotFound    = "платеж не найден"
)

// WebhookRequest уведомление платежного провайдера
type WebhookRequest struct {
	Type       string `json:"type"`
	ExternalID string `json:"externalId"`
}

// WebhookResponse ответ провайдеру
type WebhookResponse struct {
	Received         bool  `json:"received"`
	PaymentID        int64 `json:"paymentId,omitempty"`
	AlreadyCompleted bool  `json:"alreadyCompleted,omitempty"`
}

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
// Подпись проверяется middleware.WebhookSecret; прочие события подтверждаются без обработки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req WebhookRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if !completionEvents[req.Type] {
		h.logger.Info("POST /payments/webhook - Ignored event type=%s", req.Type)
		handlers.RespondJSON(w, http.StatusOK, WebhookResponse{Received: true})
		return
	}

	result, err := h.service.Complete(r.Context(), req.ExternalID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/webhook - Payment not found: external_id=%s", req.ExternalID)
			handlers.RespondNotFound(w, msgPaymentNotFound)
		case errors.Is(err, payments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		default:
			h.logger.Error("POST /payments/webhook - Failed to complete payment: external_id=%s, error=%v", req.ExternalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Payment processed: id=%d, already_completed=%t", result.PaymentID, result.AlreadyCompleted)
	handlers.RespondJSON(w, http.StatusOK, WebhookResponse{
		Received:         true,
		PaymentID:        result.PaymentID,
		AlreadyCompleted: result.AlreadyCompleted,
	})
}
