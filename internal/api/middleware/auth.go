package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/auth"
)

// HeaderCenterID выбор центра суперадминистратором
const HeaderCenterID = "X-Center-ID"

const (
	msgMissingToken    = "требуется авторизация"
	msgInvalidToken    = "недействительный токен"
	msgAccessDenied    = "недостаточно прав"
	msgCenterRequired  = "не выбран центр техосмотра"
	msgInvalidCenterID = "некорректный заголовок X-Center-ID"
)

// TokenVerifier проверка access-токена
type TokenVerifier interface {
	ParseValidate(token string) (*auth.Claims, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет Bearer-токен и кладет Principal в контекст.
// Центр берется из токена; роль с CapAnyTenant может выбрать его заголовком X-Center-ID
func Auth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := verifier.ParseValidate(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Auth: token rejected: %v", err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				logger.Warn("Auth: bad subject %q: %v", claims.Sub, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}
			role, err := domain.ParseUserRole(claims.Role)
			if err != nil {
				logger.Warn("Auth: user=%d has unknown role %q", userID, claims.Role)
				handlers.RespondForbidden(w, msgAccessDenied)
				return
			}

			p := Principal{UserID: userID, Role: role}
			if claims.CenterID != nil {
				p.CenterID = *claims.CenterID
			}
			if raw := r.Header.Get(HeaderCenterID); raw != "" && role.Can(domain.CapAnyTenant) {
				centerID, err := strconv.ParseInt(raw, 10, 64)
				if err != nil || centerID <= 0 {
					handlers.RespondBadRequest(w, msgInvalidCenterID)
					return
				}
				p.CenterID = centerID
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// Require пропускает запрос, только если у роли есть все указанные права
func Require(caps ...domain.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			for _, c := range caps {
				if !p.Role.Can(c) {
					handlers.RespondForbidden(w, msgAccessDenied)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCenter требует определенный центр (для маршрутов в рамках тенанта)
func RequireCenter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}
		if p.CenterID <= 0 {
			handlers.RespondForbidden(w, msgCenterRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandlerFunc оборачивает обработчик цепочкой middleware для отдельного маршрута
func HandlerFunc(h http.HandlerFunc, mws ...func(http.Handler) http.Handler) http.Handler {
	var out http.Handler = h
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}
