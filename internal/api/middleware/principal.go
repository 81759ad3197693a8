package middleware

import (
	"context"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

type principalKey struct{}

// Principal аутентифицированный пользователь и выбранный центр
type Principal struct {
	UserID   int64
	Role     domain.UserRole
	CenterID int64 // 0, если центр не определен
}

// Actor пользователь для usecase и сервисов
func (p Principal) Actor() domain.Actor {
	return domain.Actor{UserID: p.UserID, Role: p.Role}
}

// WithPrincipal кладет пользователя в контекст
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom пользователь из контекста
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
