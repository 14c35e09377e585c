package vehiculos

import (
	"context"

	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
)

// Repository encapsulates vehicle and mileage ledger persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a vehicle repository bound to the provided gorm DB.
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

// Create inserts the vehicle record.
func (r *Repository) Create(ctx context.Context, record *models.Vehiculo) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID loads a vehicle by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Vehiculo, error) {
	var record models.Vehiculo
	err := r.db.WithContext(ctx).First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// vehiculoConPilotoRecord is the scan target for the list join.
type vehiculoConPilotoRecord struct {
	models.Vehiculo
	PilotoNombres   *string
	PilotoApellidos *string
}

// ListWithPiloto returns all vehicles left-joined to their assigned pilot.
func (r *Repository) ListWithPiloto(ctx context.Context) ([]vehiculoConPilotoRecord, error) {
	var records []vehiculoConPilotoRecord
	err := r.db.WithContext(ctx).
		Table("vehiculos v").
		Select("v.*, e.nombres AS piloto_nombres, e.apellidos AS piloto_apellidos").
		Joins("LEFT JOIN vehiculos_asignados va ON va.id_vehiculo = v.id").
		Joins("LEFT JOIN empleados e ON e.id = va.id_empleado").
		Order("v.id DESC").
		Scan(&records).Error
	return records, err
}

// ListActive returns active vehicles ordered by plate.
func (r *Repository) ListActive(ctx context.Context) ([]models.Vehiculo, error) {
	var records []models.Vehiculo
	err := r.db.WithContext(ctx).
		Where("estatus = ?", enums.EstatusActivo).
		Order("placa ASC").
		Find(&records).Error
	return records, err
}

// Update persists the full vehicle record.
func (r *Repository) Update(ctx context.Context, record *models.Vehiculo) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes the vehicle row and reports how many rows were affected.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Vehiculo{}, id)
	return result.RowsAffected, result.Error
}

// UpdateKilometrajeGuarded advances the odometer only when the stored value
// still matches the expected previous reading. A zero row count means a
// concurrent writer won.
func (r *Repository) UpdateKilometrajeGuarded(ctx context.Context, id, previo, nuevo int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Vehiculo{}).
		Where("id = ? AND kilometraje = ?", id, previo).
		Update("kilometraje", nuevo)
	return result.RowsAffected, result.Error
}

// AppendHistorial inserts one mileage ledger entry.
func (r *Repository) AppendHistorial(ctx context.Context, record *models.HistorialKilometraje) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListHistorial returns the ledger for a vehicle, newest first.
func (r *Repository) ListHistorial(ctx context.Context, idVehiculo int64) ([]models.HistorialKilometraje, error) {
	var records []models.HistorialKilometraje
	err := r.db.WithContext(ctx).
		Where("id_vehiculo = ?", idVehiculo).
		Order("fecha DESC, id DESC").
		Find(&records).Error
	return records, err
}
