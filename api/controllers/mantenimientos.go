package controllers

import (
	"net/http"

	"github.com/sistemaflotilla/flotilla-backend/api/responses"
	"github.com/sistemaflotilla/flotilla-backend/api/validators"
	"github.com/sistemaflotilla/flotilla-backend/internal/mantenimientos"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
	"github.com/sistemaflotilla/flotilla-backend/pkg/logger"
)

func MantenimientoList(svc mantenimientos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mantenimiento service unavailable"))
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

func MantenimientoListByVehiculo(svc mantenimientos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mantenimiento service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dtos, err := svc.ListByVehiculo(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

func MantenimientoDetail(svc mantenimientos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mantenimiento service unavailable"))
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

func MantenimientoCreate(svc mantenimientos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mantenimiento service unavailable"))
			return
		}
		var body mantenimientos.MantenimientoInput
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

func MantenimientoUpdate(svc mantenimientos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mantenimiento service unavailable"))
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body mantenimientos.MantenimientoInput
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

func MantenimientoDelete(svc mantenimientos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mantenimiento service unavailable"))
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
