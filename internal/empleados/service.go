package empleados

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
	"github.com/sistemaflotilla/flotilla-backend/pkg/validation"
)

// AsignacionFinder resolves the active assignment for an employee, if any.
// Implemented by the asignaciones repository.
type AsignacionFinder interface {
	FindActiveByEmpleado(ctx context.Context, idEmpleado int64) (*models.VehiculoAsignado, error)
}

// ServiceParams groups dependencies for the employee service.
type ServiceParams struct {
	Repo       *Repository
	Asignacion AsignacionFinder
	Location   *time.Location
	Now        func() time.Time
}

// Service exposes business rules for employee management.
type Service interface {
	Create(ctx context.Context, input EmpleadoInput) (EmpleadoDTO, error)
	List(ctx context.Context) ([]EmpleadoDTO, error)
	Get(ctx context.Context, id int64) (EmpleadoDTO, error)
	Update(ctx context.Context, id int64, input EmpleadoInput) (EmpleadoDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo       *Repository
	asignacion AsignacionFinder
	loc        *time.Location
	now        func() time.Time
}

// NewService builds an employee service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "empleado repo is required")
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
		asignacion: params.Asignacion,
		loc:        loc,
		now:        now,
	}, nil
}

// Create validates and persists a new employee.
func (s *service) Create(ctx context.Context, input EmpleadoInput) (EmpleadoDTO, error) {
	record, err := s.buildRecord(ctx, input)
	if err != nil {
		return EmpleadoDTO{}, err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return EmpleadoDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "an employee with this dpi already exists")
		}
		return EmpleadoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating empleado")
	}
	return s.Get(ctx, record.ID)
}

// List returns every employee with its role.
func (s *service) List(ctx context.Context) ([]EmpleadoDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing empleados")
	}
	return toDTOs(records), nil
}

// Get loads one employee by id.
func (s *service) Get(ctx context.Context, id int64) (EmpleadoDTO, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmpleadoDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "empleado not found")
		}
		return EmpleadoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading empleado")
	}
	return toDTO(record), nil
}

// Update re-validates the full submission and persists it.
func (s *service) Update(ctx context.Context, id int64, input EmpleadoInput) (EmpleadoDTO, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmpleadoDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "empleado not found")
		}
		return EmpleadoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading empleado")
	}

	record, err := s.buildRecord(ctx, input)
	if err != nil {
		return EmpleadoDTO{}, err
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return EmpleadoDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "an employee with this dpi already exists")
		}
		return EmpleadoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating empleado")
	}
	return s.Get(ctx, record.ID)
}

// Delete removes the employee unless an active assignment depends on it.
func (s *service) Delete(ctx context.Context, id int64) error {
	asignacion, err := s.asignacion.FindActiveByEmpleado(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking empleado assignment")
	}
	if asignacion != nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "empleado has a vehicle assigned and cannot be deleted").WithDetails(map[string]any{
			"id_asignacion": asignacion.ID,
			"id_vehiculo":   asignacion.IDVehiculo,
		})
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting empleado")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "empleado not found")
	}
	return nil
}

// buildRecord runs the full field catalogue; violations are aggregated so the
// operator sees every problem at once.
func (s *service) buildRecord(ctx context.Context, input EmpleadoInput) (*models.Empleado, error) {
	var violations []string

	if !validation.ValidDPI(input.DPI) {
		violations = append(violations, "dpi must be exactly 13 digits")
	}
	if !validation.ValidTelefono(input.Telefono) {
		violations = append(violations, "telefono must be exactly 8 digits")
	}
	if !validation.ValidCorreo(input.Email) {
		violations = append(violations, "email is not a valid address")
	}

	today := validation.DateOnly(s.now().In(s.loc))

	nacimiento, ok := parseDate(input.FechaNacimiento, s.loc)
	if !ok {
		violations = append(violations, "fecha_nacimiento must use the YYYY-MM-DD format")
	} else if !validation.EsMayorDeEdad(nacimiento, today) {
		violations = append(violations, fmt.Sprintf("the employee must be at least %d years old", validation.EdadMinima))
	}

	contratacion, ok := parseDate(input.FechaContratacion, s.loc)
	if !ok {
		violations = append(violations, "fecha_contratacion must use the YYYY-MM-DD format")
	} else if contratacion.After(today) {
		violations = append(violations, "fecha_contratacion cannot be in the future")
	}

	if !validation.SalarioEnRango(input.Salario) {
		violations = append(violations, fmt.Sprintf("salario must be between %s and %s", validation.SalarioMin, validation.SalarioMax))
	}

	estatus := enums.EstatusActivo
	if input.Estatus != "" {
		parsed, err := enums.ParseEstatus(input.Estatus)
		if err != nil {
			violations = append(violations, "estatus must be Activo or Inactivo")
		} else {
			estatus = parsed
		}
	}

	if len(violations) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "empleado validation failed").WithDetails(map[string]any{
			"errores": violations,
		})
	}

	if _, err := s.repo.FindRolByID(ctx, input.IDRol); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "id_rol does not reference a known role")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading rol")
	}

	return &models.Empleado{
		Nombres:           input.Nombres,
		Apellidos:         input.Apellidos,
		DPI:               input.DPI,
		Telefono:          input.Telefono,
		Direccion:         input.Direccion,
		Email:             input.Email,
		FechaNacimiento:   nacimiento,
		FechaContratacion: contratacion,
		Salario:           input.Salario,
		IDRol:             input.IDRol,
		Estatus:           estatus,
	}, nil
}
