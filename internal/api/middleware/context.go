package middleware

import (
	"context"

	"github.com/m04kA/appointment-booking/internal/domain"
)

type contextKey int

const (
	principalKey contextKey = iota
	requestIDKey
)

// WithPrincipal сохраняет аутентифицированного пользователя в контексте
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal извлекает пользователя, установленного Auth
func GetPrincipal(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok && p.ID > 0
}

// GetRequestID извлекает ID запроса, установленный RequestID
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
