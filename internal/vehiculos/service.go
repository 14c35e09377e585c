package vehiculos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/internal/mantenimientos"
	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
	"github.com/sistemaflotilla/flotilla-backend/pkg/validation"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AsignacionFinder resolves the active assignment for a vehicle, if any,
// with its employee preloaded. Implemented by the asignaciones repository.
type AsignacionFinder interface {
	FindActiveByVehiculo(ctx context.Context, idVehiculo int64) (*models.VehiculoAsignado, error)
}

// ProyeccionFinder returns the newest maintenance entry carrying a
// next-service projection. Implemented by the mantenimientos repository.
type ProyeccionFinder interface {
	FindLatestProyeccion(ctx context.Context, idVehiculo int64) (*models.Mantenimiento, error)
}

// ServiceParams groups dependencies for the vehicle service.
type ServiceParams struct {
	Repo       *Repository
	TX         txRunner
	Asignacion AsignacionFinder
	Proyeccion ProyeccionFinder
	Location   *time.Location
	Now        func() time.Time
}

// Service exposes business rules for vehicle management and the mileage ledger.
type Service interface {
	Create(ctx context.Context, input VehiculoInput) (VehiculoDTO, error)
	List(ctx context.Context) ([]VehiculoDTO, error)
	ListActive(ctx context.Context) ([]VehiculoDTO, error)
	Get(ctx context.Context, id int64) (VehiculoDTO, error)
	Update(ctx context.Context, id int64, input VehiculoInput) (VehiculoDTO, error)
	Delete(ctx context.Context, id int64) error
	RecordMileage(ctx context.Context, input MileageInput) (MileageDTO, error)
	History(ctx context.Context, idVehiculo int64) ([]HistorialDTO, error)
}

type service struct {
	repo       *Repository
	tx         txRunner
	asignacion AsignacionFinder
	proyeccion ProyeccionFinder
	loc        *time.Location
	now        func() time.Time
}

// NewService builds a vehicle service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehiculo repo is required")
	}
	if params.TX == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx runner is required")
	}
	if params.Asignacion == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "asignacion finder is required")
	}
	if params.Proyeccion == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "proyeccion finder is required")
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
		tx:         params.TX,
		asignacion: params.Asignacion,
		proyeccion: params.Proyeccion,
		loc:        loc,
		now:        now,
	}, nil
}

// Create validates and persists a new vehicle.
func (s *service) Create(ctx context.Context, input VehiculoInput) (VehiculoDTO, error) {
	record, err := s.buildRecord(input)
	if err != nil {
		return VehiculoDTO{}, err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return VehiculoDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a vehicle with this placa already exists")
		}
		return VehiculoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating vehiculo")
	}
	return toDTO(record), nil
}

// List returns every vehicle with its assigned pilot when present.
func (s *service) List(ctx context.Context) ([]VehiculoDTO, error) {
	records, err := s.repo.ListWithPiloto(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing vehiculos")
	}
	dtos := make([]VehiculoDTO, 0, len(records))
	for i := range records {
		dto := toDTO(&records[i].Vehiculo)
		if records[i].PilotoNombres != nil && records[i].PilotoApellidos != nil {
			dto.Piloto = *records[i].PilotoNombres + " " + *records[i].PilotoApellidos
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// ListActive returns active vehicles only, for selection forms.
func (s *service) ListActive(ctx context.Context) ([]VehiculoDTO, error) {
	records, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing active vehiculos")
	}
	dtos := make([]VehiculoDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, toDTO(&records[i]))
	}
	return dtos, nil
}

// Get loads one vehicle enriched with its pilot and next-service projection.
func (s *service) Get(ctx context.Context, id int64) (VehiculoDTO, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VehiculoDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "vehiculo not found")
		}
		return VehiculoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vehiculo")
	}
	dto := toDTO(record)

	asignacion, err := s.asignacion.FindActiveByVehiculo(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return VehiculoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vehiculo assignment")
	}
	if asignacion != nil && asignacion.Empleado != nil {
		dto.Piloto = asignacion.Empleado.NombreCompleto()
	}

	proyeccion, err := s.proyeccion.FindLatestProyeccion(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return VehiculoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading service projection")
	}
	if proyeccion != nil && proyeccion.KilometrajeProximoServicio != nil {
		dto.ProximoServicio = proyeccion.KilometrajeProximoServicio
		dto.EstadoServicio = string(mantenimientos.ServiceStatus(*proyeccion.KilometrajeProximoServicio, record.Kilometraje))
	}
	return dto, nil
}

// Update re-validates the full submission and persists it. The odometer is
// not touched here; only the ledger operation may advance it.
func (s *service) Update(ctx context.Context, id int64, input VehiculoInput) (VehiculoDTO, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VehiculoDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "vehiculo not found")
		}
		return VehiculoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vehiculo")
	}

	record, err := s.buildRecord(input)
	if err != nil {
		return VehiculoDTO{}, err
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	record.Kilometraje = existing.Kilometraje
	record.ImpresionTarjetaCirculacion = existing.ImpresionTarjetaCirculacion

	if err := s.repo.Update(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return VehiculoDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a vehicle with this placa already exists")
		}
		return VehiculoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating vehiculo")
	}
	return toDTO(record), nil
}

// Delete removes the vehicle unless it is currently assigned to a pilot.
func (s *service) Delete(ctx context.Context, id int64) error {
	asignacion, err := s.asignacion.FindActiveByVehiculo(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking vehiculo assignment")
	}
	if asignacion != nil {
		piloto := ""
		if asignacion.Empleado != nil {
			piloto = asignacion.Empleado.NombreCompleto()
		}
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("vehicle is assigned to %s and cannot be deleted", piloto)).WithDetails(map[string]any{
			"id_asignacion": asignacion.ID,
			"id_empleado":   asignacion.IDEmpleado,
		})
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting vehiculo")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "vehiculo not found")
	}
	return nil
}

// buildRecord runs the field catalogue and derives the seat count.
func (s *service) buildRecord(input VehiculoInput) (*models.Vehiculo, error) {
	var violations []string

	tipo, err := enums.ParseTipoVehiculo(input.Tipo)
	if err != nil {
		violations = append(violations, "tipo must be one of Motocicleta, Sedan, Camion, Panel, Pickup")
	} else if !validation.PlacaMatchesTipo(tipo, input.Placa) {
		violations = append(violations, fmt.Sprintf("placa must match %c + 3 digits + 3 uppercase letters for this tipo", tipo.PlacaPrefix()))
	}

	anioActual := s.now().In(s.loc).Year()
	if !validation.ModeloEnRango(input.Modelo, anioActual) {
		violations = append(violations, fmt.Sprintf("modelo must be greater than %d and at most %d", validation.ModeloMin, anioActual))
	}
	if !validation.MotorEnRango(input.Motor) {
		violations = append(violations, fmt.Sprintf("motor must be greater than %d cc and at most %d cc", validation.MotorMin, validation.MotorMax))
	}
	if input.Kilometraje < 0 {
		violations = append(violations, "kilometraje cannot be negative")
	}

	estatus := enums.EstatusActivo
	if input.Estatus != "" {
		parsed, parseErr := enums.ParseEstatus(input.Estatus)
		if parseErr != nil {
			violations = append(violations, "estatus must be Activo or Inactivo")
		} else {
			estatus = parsed
		}
	}

	if len(violations) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehiculo validation failed").WithDetails(map[string]any{
			"errores": violations,
		})
	}

	return &models.Vehiculo{
		Placa:                    input.Placa,
		Tipo:                     tipo,
		Marca:                    input.Marca,
		Linea:                    input.Linea,
		Modelo:                   input.Modelo,
		Chasis:                   input.Chasis,
		Color:                    input.Color,
		Asientos:                 tipo.Asientos(),
		Motor:                    input.Motor,
		Combustible:              input.Combustible,
		Transmision:              input.Transmision,
		Estatus:                  estatus,
		ImpuestoCirculacionAnual: input.ImpuestoCirculacionAnual,
		ImpuestoAnioActual:       input.ImpuestoAnioActual,
		Kilometraje:              input.Kilometraje,
	}, nil
}
