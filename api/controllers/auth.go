package controllers

import (
	"net/http"

	"github.com/sistemaflotilla/flotilla-backend/api/middleware"
	"github.com/sistemaflotilla/flotilla-backend/api/responses"
	"github.com/sistemaflotilla/flotilla-backend/api/validators"
	"github.com/sistemaflotilla/flotilla-backend/internal/auth"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
	"github.com/sistemaflotilla/flotilla-backend/pkg/logger"
)

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body, middleware.ClientIP(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the session behind the presented token.
func AuthLogout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		accessID := middleware.AccessIDFromContext(r.Context())
		if err := svc.Logout(r.Context(), accessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
