package polizas

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

const emisionWindowMonths = 3

// VehiculoFinder loads a vehicle by id. Implemented by the vehiculos repository.
type VehiculoFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Vehiculo, error)
}

// ServiceParams groups dependencies for the policy service.
type ServiceParams struct {
	Repo     *Repository
	Vehiculo VehiculoFinder
	Location *time.Location
	Now      func() time.Time
}

// Service exposes business rules for insurance policies.
type Service interface {
	Create(ctx context.Context, input PolizaInput) (PolizaDTO, error)
	List(ctx context.Context) ([]PolizaDTO, error)
	ListAvailableVehicles(ctx context.Context) ([]VehiculoDisponibleDTO, error)
	Get(ctx context.Context, id int64) (PolizaDTO, error)
	Update(ctx context.Context, id int64, input PolizaInput) (PolizaDTO, error)
	Delete(ctx context.Context, id int64) error
	ReportCSV(ctx context.Context, w io.Writer) error
}

type service struct {
	repo     *Repository
	vehiculo VehiculoFinder
	loc      *time.Location
	now      func() time.Time
}

// NewService builds a policy service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "poliza repo is required")
	}
	if params.Vehiculo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehiculo finder is required")
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
		loc:      loc,
		now:      now,
	}, nil
}

// Create validates and persists a new policy. A vehicle holds at most one.
func (s *service) Create(ctx context.Context, input PolizaInput) (PolizaDTO, error) {
	record, err := s.buildRecord(ctx, input)
	if err != nil {
		return PolizaDTO{}, err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return PolizaDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "the vehicle already has a policy")
		}
		return PolizaDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating poliza")
	}
	return s.Get(ctx, record.ID)
}

// List returns every policy with its expiration bucket, soonest first.
func (s *service) List(ctx context.Context) ([]PolizaDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing polizas")
	}
	today := validation.DateOnly(s.now().In(s.loc))
	dtos := make([]PolizaDTO, 0, len(records))
	for i := range records {
		dto := toDTO(&records[i])
		dto.Estado = expirationEstado(validation.DateOnly(records[i].FechaVencimiento.In(s.loc)), today)
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// VehiculoDisponibleDTO is an active vehicle eligible for a new policy.
type VehiculoDisponibleDTO struct {
	ID     int64  `json:"id"`
	Placa  string `json:"placa"`
	Marca  string `json:"marca"`
	Linea  string `json:"linea"`
	Modelo int    `json:"modelo"`
}

// ListAvailableVehicles returns active vehicles without a policy.
func (s *service) ListAvailableVehicles(ctx context.Context) ([]VehiculoDisponibleDTO, error) {
	records, err := s.repo.ListVehiculosSinPoliza(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing uninsured vehicles")
	}
	dtos := make([]VehiculoDisponibleDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, VehiculoDisponibleDTO{
			ID:     record.ID,
			Placa:  record.Placa,
			Marca:  record.Marca,
			Linea:  record.Linea,
			Modelo: record.Modelo,
		})
	}
	return dtos, nil
}

// Get loads one policy by id.
func (s *service) Get(ctx context.Context, id int64) (PolizaDTO, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PolizaDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "poliza not found")
		}
		return PolizaDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading poliza")
	}
	return toDTO(record), nil
}

// Update re-validates the full submission and persists it.
func (s *service) Update(ctx context.Context, id int64, input PolizaInput) (PolizaDTO, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PolizaDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "poliza not found")
		}
		return PolizaDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading poliza")
	}

	record, err := s.buildRecord(ctx, input)
	if err != nil {
		return PolizaDTO{}, err
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return PolizaDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "the vehicle already has a policy")
		}
		return PolizaDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating poliza")
	}
	return s.Get(ctx, record.ID)
}

// Delete removes the policy; the vehicle becomes insurable again.
func (s *service) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting poliza")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "poliza not found")
	}
	return nil
}

func (s *service) buildRecord(ctx context.Context, input PolizaInput) (*models.Poliza, error) {
	var violations []string

	if !validation.MontoEnRango(input.Monto) {
		violations = append(violations, fmt.Sprintf("monto must be greater than 0 and at most %s", validation.MontoMax))
	}

	today := validation.DateOnly(s.now().In(s.loc))

	emision, ok := parseDate(input.FechaEmision, s.loc)
	if !ok {
		violations = append(violations, "fecha_emision must use the YYYY-MM-DD format")
	} else if emision.Before(today) || emision.After(validation.AddMonthsClamped(today, emisionWindowMonths)) {
		violations = append(violations, "fecha_emision must be between today and 3 months ahead")
	}

	vencimiento, ok := parseDate(input.FechaVencimiento, s.loc)
	if !ok {
		violations = append(violations, "fecha_vencimiento must use the YYYY-MM-DD format")
	} else {
		if vencimiento.Before(today) {
			violations = append(violations, "fecha_vencimiento cannot be in the past")
		}
		if !emision.IsZero() && vencimiento.Before(emision) {
			violations = append(violations, "fecha_vencimiento cannot precede fecha_emision")
		}
	}

	if len(violations) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "poliza validation failed").WithDetails(map[string]any{
			"errores": violations,
		})
	}

	if _, err := s.vehiculo.FindByID(ctx, input.IDVehiculo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "vehiculo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vehiculo")
	}

	return &models.Poliza{
		IDVehiculo:       input.IDVehiculo,
		NumeroPoliza:     input.NumeroPoliza,
		Aseguradora:      input.Aseguradora,
		Monto:            input.Monto,
		FechaEmision:     emision,
		FechaVencimiento: vencimiento,
	}, nil
}
