package controllers

import (
	"net/http"

	"github.com/sistemaflotilla/flotilla-backend/api/responses"
	"github.com/sistemaflotilla/flotilla-backend/api/validators"
	"github.com/sistemaflotilla/flotilla-backend/internal/empleados"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
	"github.com/sistemaflotilla/flotilla-backend/pkg/logger"
)

func EmpleadoList(svc empleados.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "empleado service unavailable"))
			return
		}
		dtos, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

func EmpleadoDetail(svc empleados.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "empleado service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func EmpleadoCreate(svc empleados.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "empleado service unavailable"))
			return
		}
		var body empleados.EmpleadoInput
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

func EmpleadoUpdate(svc empleados.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "empleado service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body empleados.EmpleadoInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func EmpleadoDelete(svc empleados.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "empleado service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
