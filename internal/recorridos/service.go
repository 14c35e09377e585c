package recorridos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
	"github.com/sistemaflotilla/flotilla-backend/pkg/validation"
)

// AsignacionFinder resolves the active assignment for a vehicle with its
// employee preloaded. Implemented by the asignaciones repository.
type AsignacionFinder interface {
	FindActiveByVehiculo(ctx context.Context, idVehiculo int64) (*models.VehiculoAsignado, error)
}

// VehiculoFinder loads a vehicle by id. Implemented by the vehiculos repository.
type VehiculoFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Vehiculo, error)
}

// ServiceParams groups dependencies for the trip service.
type ServiceParams struct {
	Repo       *Repository
	Vehiculo   VehiculoFinder
	Asignacion AsignacionFinder
	Location   *time.Location
	Now        func() time.Time
}

// Service exposes business rules for trip logging and reporting.
type Service interface {
	Create(ctx context.Context, input RecorridoInput) (RecorridoDTO, error)
	List(ctx context.Context) ([]RecorridoDTO, error)
	Get(ctx context.Context, id int64) (RecorridoDTO, error)
	Update(ctx context.Context, id int64, input RecorridoInput) (RecorridoDTO, error)
	Delete(ctx context.Context, id int64) error
	Dashboard(ctx context.Context) (DashboardDTO, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

type service struct {
	repo       *Repository
	vehiculo   VehiculoFinder
	asignacion AsignacionFinder
	loc        *time.Location
	now        func() time.Time
}

// NewService builds a trip service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recorrido repo is required")
	}
	if params.Vehiculo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehiculo finder is required")
	}
	if params.Asignacion == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "asignacion finder is required")
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:       params.Repo,
		vehiculo:   params.Vehiculo,
		asignacion: params.Asignacion,
		loc:        loc,
		now:        now,
	}, nil
}

// Create logs a trip. The pilot is the vehicle's assigned driver; an
// unassigned vehicle cannot log trips.
func (s *service) Create(ctx context.Context, input RecorridoInput) (RecorridoDTO, error) {
	record, err := s.buildRecord(ctx, input)
	if err != nil {
		return RecorridoDTO{}, err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return RecorridoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating recorrido")
	}
	return s.Get(ctx, record.ID)
}

// List returns every trip.
func (s *service) List(ctx context.Context) ([]RecorridoDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing recorridos")
	}
	dtos := make([]RecorridoDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, toDTO(&records[i]))
	}
	return dtos, nil
}

// Get loads one trip by id.
func (s *service) Get(ctx context.Context, id int64) (RecorridoDTO, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecorridoDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "recorrido not found")
		}
		return RecorridoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading recorrido")
	}
	return toDTO(record), nil
}

// Update re-validates the full submission and persists it.
func (s *service) Update(ctx context.Context, id int64, input RecorridoInput) (RecorridoDTO, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecorridoDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "recorrido not found")
		}
		return RecorridoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading recorrido")
	}

	record, err := s.buildRecord(ctx, input)
	if err != nil {
		return RecorridoDTO{}, err
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, record); err != nil {
		return RecorridoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating recorrido")
	}
	return s.Get(ctx, record.ID)
}

// Delete removes the trip.
func (s *service) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting recorrido")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "recorrido not found")
	}
	return nil
}

func (s *service) buildRecord(ctx context.Context, input RecorridoInput) (*models.Recorrido, error) {
	var violations []string

	if !validation.DistanciaEnRango(input.Distancia) {
		violations = append(violations, fmt.Sprintf("distancia must be greater than 0 and less than %d km", validation.DistanciaMax))
	}
	if !validation.TiempoEnRango(input.TiempoAproximado) {
		violations = append(violations, fmt.Sprintf("tiempo_aproximado must be greater than 0 and less than %v hours", validation.TiempoMax))
	}

	if len(violations) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recorrido validation failed").WithDetails(map[string]any{
			"errores": violations,
		})
	}

	if _, err := s.vehiculo.FindByID(ctx, input.IDVehiculo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "vehiculo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vehiculo")
	}

	asignacion, err := s.asignacion.FindActiveByVehiculo(ctx, input.IDVehiculo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "the vehicle has no assigned pilot and cannot log trips")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vehiculo assignment")
	}
	if input.IDPiloto != 0 && input.IDPiloto != asignacion.IDEmpleado {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id_piloto does not match the vehicle's assigned pilot")
	}

	return &models.Recorrido{
		IDVehiculo:       input.IDVehiculo,
		IDPiloto:         asignacion.IDEmpleado,
		PuntoA:           input.PuntoA,
		PuntoB:           input.PuntoB,
		Distancia:        input.Distancia,
		TiempoAproximado: input.TiempoAproximado,
	}, nil
}
