package mantenimientos

import (
	"context"

	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
)

// Repository encapsulates maintenance persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a maintenance repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the maintenance record.
func (r *Repository) Create(ctx context.Context, record *models.Mantenimiento) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID loads a maintenance entry with its vehicle and workshop.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Mantenimiento, error) {
	var record models.Mantenimiento
	err := r.db.WithContext(ctx).Preload("Vehiculo").Preload("Taller").First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns all maintenance entries, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Mantenimiento, error) {
	var records []models.Mantenimiento
	err := r.db.WithContext(ctx).
		Preload("Vehiculo").
		Preload("Taller").
		Order("fecha DESC, id DESC").
		Find(&records).Error
	return records, err
}

// ListByVehiculo returns the maintenance log for one vehicle, newest first.
func (r *Repository) ListByVehiculo(ctx context.Context, idVehiculo int64) ([]models.Mantenimiento, error) {
	var records []models.Mantenimiento
	err := r.db.WithContext(ctx).
		Preload("Vehiculo").
		Preload("Taller").
		Where("id_vehiculo = ?", idVehiculo).
		Order("fecha DESC, id DESC").
		Find(&records).Error
	return records, err
}

// FindLatestProyeccion returns the newest entry carrying a next-service
// projection for the vehicle.
func (r *Repository) FindLatestProyeccion(ctx context.Context, idVehiculo int64) (*models.Mantenimiento, error) {
	var record models.Mantenimiento
	err := r.db.WithContext(ctx).
		Where("id_vehiculo = ? AND kilometraje_proximo_servicio IS NOT NULL", idVehiculo).
		Order("fecha DESC, id DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Update persists the full maintenance record.
func (r *Repository) Update(ctx context.Context, record *models.Mantenimiento) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes the maintenance row and reports how many rows were affected.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Mantenimiento{}, id)
	return result.RowsAffected, result.Error
}
