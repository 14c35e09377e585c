package mantenimientos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
	"github.com/sistemaflotilla/flotilla-backend/pkg/validation"
)

const fechaWindowMonths = 3

// VehiculoFinder loads a vehicle by id. Implemented by the vehiculos repository.
type VehiculoFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Vehiculo, error)
}

// TallerFinder loads a workshop by id. Implemented by the talleres repository.
type TallerFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Taller, error)
}

// ServiceParams groups dependencies for the maintenance service.
type ServiceParams struct {
	Repo     *Repository
	Vehiculo VehiculoFinder
	Taller   TallerFinder
	Location *time.Location
	Now      func() time.Time
}

// Service exposes business rules for the maintenance log.
type Service interface {
	Create(ctx context.Context, input MantenimientoInput) (MantenimientoDTO, error)
	List(ctx context.Context) ([]MantenimientoDTO, error)
	ListByVehiculo(ctx context.Context, idVehiculo int64) ([]MantenimientoDTO, error)
	Get(ctx context.Context, id int64) (MantenimientoDTO, error)
	Update(ctx context.Context, id int64, input MantenimientoInput) (MantenimientoDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo     *Repository
	vehiculo VehiculoFinder
	taller   TallerFinder
	loc      *time.Location
	now      func() time.Time
}

// NewService builds a maintenance service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mantenimiento repo is required")
	}
	if params.Vehiculo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehiculo finder is required")
	}
	if params.Taller == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "taller finder is required")
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
		repo:     params.Repo,
		vehiculo: params.Vehiculo,
		taller:   params.Taller,
		loc:      loc,
		now:      now,
	}, nil
}

// Create validates the submission, freezes the next-service projection and
// persists the entry.
func (s *service) Create(ctx context.Context, input MantenimientoInput) (MantenimientoDTO, error) {
	record, err := s.buildRecord(ctx, input)
	if err != nil {
		return MantenimientoDTO{}, err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return MantenimientoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating mantenimiento")
	}
	return s.Get(ctx, record.ID)
}

// List returns every maintenance entry.
func (s *service) List(ctx context.Context) ([]MantenimientoDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing mantenimientos")
	}
	return s.toDTOs(records), nil
}

// ListByVehiculo returns the maintenance log for one vehicle.
func (s *service) ListByVehiculo(ctx context.Context, idVehiculo int64) ([]MantenimientoDTO, error) {
	if _, err := s.vehiculo.FindByID(ctx, idVehiculo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "vehiculo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vehiculo")
	}
	records, err := s.repo.ListByVehiculo(ctx, idVehiculo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing mantenimientos")
	}
	return s.toDTOs(records), nil
}

// Get loads one maintenance entry.
func (s *service) Get(ctx context.Context, id int64) (MantenimientoDTO, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MantenimientoDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "mantenimiento not found")
		}
		return MantenimientoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading mantenimiento")
	}
	return toDTO(record), nil
}

// Update re-validates the submission and recomputes the frozen projection
// from the submitted values only.
func (s *service) Update(ctx context.Context, id int64, input MantenimientoInput) (MantenimientoDTO, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MantenimientoDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "mantenimiento not found")
		}
		return MantenimientoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading mantenimiento")
	}

	record, err := s.buildRecord(ctx, input)
	if err != nil {
		return MantenimientoDTO{}, err
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, record); err != nil {
		return MantenimientoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating mantenimiento")
	}
	return s.Get(ctx, record.ID)
}

// Delete removes the maintenance entry.
func (s *service) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting mantenimiento")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "mantenimiento not found")
	}
	return nil
}

func (s *service) toDTOs(records []models.Mantenimiento) []MantenimientoDTO {
	dtos := make([]MantenimientoDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, toDTO(&records[i]))
	}
	return dtos
}

func (s *service) buildRecord(ctx context.Context, input MantenimientoInput) (*models.Mantenimiento, error) {
	var violations []string

	tipo, err := enums.ParseTipoMantenimiento(input.TipoMantenimiento)
	if err != nil {
		violations = append(violations, "tipo_mantenimiento must be one of Servicio de Motor, Preventivo, Correctivo")
	}

	today := validation.DateOnly(s.now().In(s.loc))
	fecha, ok := parseDate(input.Fecha, s.loc)
	if !ok {
		violations = append(violations, "fecha must use the YYYY-MM-DD format")
	} else if !validation.WithinMonths(fecha, today, fechaWindowMonths) {
		violations = append(violations, "fecha must fall within 3 calendar months of today")
	}

	if input.Kilometraje < 0 {
		violations = append(violations, "kilometraje cannot be negative")
	}
	if input.FrecuenciaServicio != nil && *input.FrecuenciaServicio < 0 {
		violations = append(violations, "frecuencia_servicio cannot be negative")
	}
	if input.Costo.IsNegative() {
		violations = append(violations, "costo cannot be negative")
	}

	if len(violations) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mantenimiento validation failed").WithDetails(map[string]any{
			"errores": violations,
		})
	}

	if _, err := s.vehiculo.FindByID(ctx, input.IDVehiculo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "vehiculo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vehiculo")
	}
	if input.IDTaller != nil {
		if _, err := s.taller.FindByID(ctx, *input.IDTaller); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "id_taller does not reference a known workshop")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading taller")
		}
	}

	frecuencia, proximo := ProjectNextService(tipo, input.Kilometraje, input.FrecuenciaServicio)

	return &models.Mantenimiento{
		IDVehiculo:                 input.IDVehiculo,
		TipoMantenimiento:          tipo,
		Fecha:                      fecha,
		Kilometraje:                input.Kilometraje,
		TituloMantenimiento:        input.TituloMantenimiento,
		Descripcion:                input.Descripcion,
		IDTaller:                   input.IDTaller,
		Costo:                      input.Costo,
		FrecuenciaServicio:         frecuencia,
		KilometrajeProximoServicio: proximo,
	}, nil
}
