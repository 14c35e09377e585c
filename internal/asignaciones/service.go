package asignaciones

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// EmpleadoFinder loads an employee with its role. Implemented by the
// empleados repository.
type EmpleadoFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Empleado, error)
}

// VehiculoFinder loads a vehicle by id. Implemented by the vehiculos repository.
type VehiculoFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Vehiculo, error)
}

// ServiceParams groups dependencies for the assignment service.
type ServiceParams struct {
	Repo     *Repository
	TX       txRunner
	Empleado EmpleadoFinder
	Vehiculo VehiculoFinder
	Location *time.Location
	Now      func() time.Time
}

// Service exposes business rules for driver-vehicle assignments.
type Service interface {
	ListAvailable(ctx context.Context) (DisponiblesDTO, error)
	ListActive(ctx context.Context) ([]AsignadoDTO, error)
	Create(ctx context.Context, input AsignacionInput) (AsignadoDTO, error)
	Remove(ctx context.Context, id int64) error
}

type service struct {
	repo     *Repository
	tx       txRunner
	empleado EmpleadoFinder
	vehiculo VehiculoFinder
	loc      *time.Location
	now      func() time.Time
}

// NewService builds an assignment service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "asignacion repo is required")
	}
	if params.TX == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx runner is required")
	}
	if params.Empleado == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "empleado finder is required")
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
		tx:       params.TX,
		empleado: params.Empleado,
		vehiculo: params.Vehiculo,
		loc:      loc,
		now:      now,
	}, nil
}

// ListAvailable returns unassigned pilots and unassigned active vehicles.
func (s *service) ListAvailable(ctx context.Context) (DisponiblesDTO, error) {
	pilotos, err := s.repo.ListPilotosDisponibles(ctx)
	if err != nil {
		return DisponiblesDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing available pilots")
	}
	vehiculos, err := s.repo.ListVehiculosDisponibles(ctx)
	if err != nil {
		return DisponiblesDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing available vehicles")
	}

	dto := DisponiblesDTO{
		Pilotos:   make([]PilotoDisponibleDTO, 0, len(pilotos)),
		Vehiculos: make([]VehiculoDisponibleDTO, 0, len(vehiculos)),
	}
	for _, piloto := range pilotos {
		dto.Pilotos = append(dto.Pilotos, PilotoDisponibleDTO{
			ID:        piloto.ID,
			Nombres:   piloto.Nombres,
			Apellidos: piloto.Apellidos,
		})
	}
	for _, vehiculo := range vehiculos {
		dto.Vehiculos = append(dto.Vehiculos, VehiculoDisponibleDTO{
			ID:     vehiculo.ID,
			Placa:  vehiculo.Placa,
			Marca:  vehiculo.Marca,
			Linea:  vehiculo.Linea,
			Modelo: vehiculo.Modelo,
		})
	}
	return dto, nil
}

// ListActive returns the joined active-assignments view.
func (s *service) ListActive(ctx context.Context) ([]AsignadoDTO, error) {
	records, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing assignments")
	}
	dtos := make([]AsignadoDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, AsignadoDTO{
			ID:              record.ID,
			IDEmpleado:      record.IDEmpleado,
			IDVehiculo:      record.IDVehiculo,
			Placa:           record.Placa,
			Marca:           record.Marca,
			Linea:           record.Linea,
			Modelo:          record.Modelo,
			Piloto:          record.Nombres + " " + record.Apellidos,
			FechaAsignacion: record.FechaAsignacion.In(s.loc).Format("2006-01-02 15:04:05"),
			Observaciones:   record.Observaciones,
		})
	}
	return dtos, nil
}

// Create pairs a pilot with a vehicle. An existing assignment on either side
// rejects the pairing, both by explicit check and by the unique constraints
// when two requests race.
func (s *service) Create(ctx context.Context, input AsignacionInput) (AsignadoDTO, error) {
	empleado, err := s.empleado.FindByID(ctx, input.IDEmpleado)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AsignadoDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "empleado not found")
		}
		return AsignadoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading empleado")
	}
	if empleado.Rol == nil || empleado.Rol.Nombre != enums.RolPiloto {
		return AsignadoDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "only employees with the Piloto role can be assigned a vehicle")
	}
	if empleado.Estatus != enums.EstatusActivo {
		return AsignadoDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "empleado is inactive")
	}

	vehiculo, err := s.vehiculo.FindByID(ctx, input.IDVehiculo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AsignadoDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "vehiculo not found")
		}
		return AsignadoDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vehiculo")
	}

	record := &models.VehiculoAsignado{
		IDEmpleado:      input.IDEmpleado,
		IDVehiculo:      input.IDVehiculo,
		FechaAsignacion: s.now().In(s.loc),
		Observaciones:   input.Observaciones,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindActiveByEmpleado(ctx, input.IDEmpleado); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "empleado already has a vehicle assigned")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking empleado assignment")
		}
		if _, err := repo.FindActiveByVehiculo(ctx, input.IDVehiculo); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "vehiculo already has a pilot assigned")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking vehiculo assignment")
		}

		if err := repo.Create(ctx, record); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "assignment already exists for this pilot or vehicle")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating assignment")
		}
		return nil
	})
	if err != nil {
		return AsignadoDTO{}, err
	}

	return AsignadoDTO{
		ID:              record.ID,
		IDEmpleado:      record.IDEmpleado,
		IDVehiculo:      record.IDVehiculo,
		Placa:           vehiculo.Placa,
		Marca:           vehiculo.Marca,
		Linea:           vehiculo.Linea,
		Modelo:          vehiculo.Modelo,
		Piloto:          empleado.NombreCompleto(),
		FechaAsignacion: record.FechaAsignacion.Format("2006-01-02 15:04:05"),
		Observaciones:   record.Observaciones,
	}, nil
}

// Remove terminates the assignment. Both sides become available again.
func (s *service) Remove(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting assignment")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "asignacion not found")
	}
	return nil
}
