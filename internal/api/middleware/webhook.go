package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
)

// HeaderWebhookSecret общий секрет платежного провайдера
const HeaderWebhookSecret = "X-Webhook-Secret"

const msgWebhookRejected = "неверная подпись вебхука"

// WebhookSecret сверяет заголовок с общим секретом; пустой секрет закрывает маршрут
func WebhookSecret(secret string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				logger.Error("WebhookSecret: secret is not configured")
				handlers.RespondForbidden(w, msgWebhookRejected)
				return
			}
			got := r.Header.Get(HeaderWebhookSecret)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				logger.Warn("WebhookSecret: rejected request from %s", r.RemoteAddr)
				handlers.RespondUnauthorized(w, msgWebhookRejected)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
