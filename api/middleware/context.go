package middleware

import "context"

type contextKey string

const (
	ctxUsuario  contextKey = "usuario"
	ctxAccessID contextKey = "access_id"
)

// UsuarioFromContext returns the authenticated operator, if any.
func UsuarioFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxUsuario).(string); ok {
		return v
	}
	return ""
}

// AccessIDFromContext returns the session id (jti) of the presented token.
func AccessIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}
