package controllers

import (
	"net/http"

	"github.com/sistemaflotilla/flotilla-backend/api/responses"
	"github.com/sistemaflotilla/flotilla-backend/api/validators"
	"github.com/sistemaflotilla/flotilla-backend/internal/asignaciones"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
	"github.com/sistemaflotilla/flotilla-backend/pkg/logger"
)

func AsignacionCreate(svc asignaciones.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "asignacion service unavailable"))
			return
		}
		var body asignaciones.AsignacionInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// AsignacionDisponibles lists the pilots and vehicles still free to pair.
func AsignacionDisponibles(svc asignaciones.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "asignacion service unavailable"))
			return
		}
		dto, err := svc.ListAvailable(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func AsignacionAsignados(svc asignaciones.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "asignacion service unavailable"))
			return
		}
		dtos, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

func AsignacionRemove(svc asignaciones.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "asignacion service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Remove(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}
