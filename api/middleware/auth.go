package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sistemaflotilla/flotilla-backend/api/responses"
	pkgauth "github.com/sistemaflotilla/flotilla-backend/pkg/auth"
	"github.com/sistemaflotilla/flotilla-backend/pkg/auth/session"
	"github.com/sistemaflotilla/flotilla-backend/pkg/config"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
	"github.com/sistemaflotilla/flotilla-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// operator identity. A revoked session rejects the token before its expiry.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxUsuario, claims.Usuario)
			ctx = context.WithValue(ctx, ctxAccessID, claims.ID)

			if logg != nil {
				ctx = logg.WithField(ctx, "usuario", claims.Usuario)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
