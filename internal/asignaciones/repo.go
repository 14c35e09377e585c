package asignaciones

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
)

// Repository encapsulates assignment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an assignment repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts the assignment row. The unique constraints on id_empleado
// and id_vehiculo reject a second active assignment for either side.
func (r *Repository) Create(ctx context.Context, record *models.VehiculoAsignado) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID loads one assignment with both sides preloaded.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.VehiculoAsignado, error) {
	var record models.VehiculoAsignado
	err := r.db.WithContext(ctx).Preload("Empleado").Preload("Vehiculo").First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindActiveByEmpleado returns the employee's assignment, if any.
func (r *Repository) FindActiveByEmpleado(ctx context.Context, idEmpleado int64) (*models.VehiculoAsignado, error) {
	var record models.VehiculoAsignado
	err := r.db.WithContext(ctx).
		Preload("Vehiculo").
		Where("id_empleado = ?", idEmpleado).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindActiveByVehiculo returns the vehicle's assignment, if any.
func (r *Repository) FindActiveByVehiculo(ctx context.Context, idVehiculo int64) (*models.VehiculoAsignado, error) {
	var record models.VehiculoAsignado
	err := r.db.WithContext(ctx).
		Preload("Empleado").
		Where("id_vehiculo = ?", idVehiculo).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// asignadoRecord is the scan target for the active-assignments join.
type asignadoRecord struct {
	ID              int64
	IDEmpleado      int64
	IDVehiculo      int64
	Placa           string
	Marca           string
	Linea           string
	Modelo          int
	Nombres         string
	Apellidos       string
	FechaAsignacion time.Time
	Observaciones   *string
}

// ListActive returns the joined active-assignments view, newest first.
func (r *Repository) ListActive(ctx context.Context) ([]asignadoRecord, error) {
	var records []asignadoRecord
	err := r.db.WithContext(ctx).
		Table("vehiculos_asignados va").
		Select("va.id, va.id_empleado, va.id_vehiculo, v.placa, v.marca, v.linea, v.modelo, e.nombres, e.apellidos, va.fecha_asignacion, va.observaciones").
		Joins("JOIN vehiculos v ON v.id = va.id_vehiculo").
		Joins("JOIN empleados e ON e.id = va.id_empleado").
		Order("va.fecha_asignacion DESC").
		Scan(&records).Error
	return records, err
}

// ListPilotosDisponibles returns active Piloto-role employees without an assignment.
func (r *Repository) ListPilotosDisponibles(ctx context.Context) ([]models.Empleado, error) {
	var records []models.Empleado
	err := r.db.WithContext(ctx).
		Table("empleados").
		Joins("JOIN roles ON roles.id = empleados.id_rol").
		Joins("LEFT JOIN vehiculos_asignados va ON va.id_empleado = empleados.id").
		Where("roles.nombre = ? AND empleados.estatus = ? AND va.id IS NULL", enums.RolPiloto, enums.EstatusActivo).
		Order("empleados.apellidos ASC").
		Find(&records).Error
	return records, err
}

// ListVehiculosDisponibles returns active vehicles without an assignment.
func (r *Repository) ListVehiculosDisponibles(ctx context.Context) ([]models.Vehiculo, error) {
	var records []models.Vehiculo
	err := r.db.WithContext(ctx).
		Table("vehiculos").
		Joins("LEFT JOIN vehiculos_asignados va ON va.id_vehiculo = vehiculos.id").
		Where("vehiculos.estatus = ? AND va.id IS NULL", enums.EstatusActivo).
		Order("vehiculos.placa ASC").
		Find(&records).Error
	return records, err
}

// Delete removes the assignment row and reports how many rows were affected.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.VehiculoAsignado{}, id)
	return result.RowsAffected, result.Error
}
