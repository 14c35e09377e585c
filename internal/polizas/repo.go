package polizas

import (
	"context"

	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
)

// Repository encapsulates insurance policy persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a policy repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the policy row. The unique constraint on id_vehiculo keeps
// policies 1:1 with vehicles.
func (r *Repository) Create(ctx context.Context, record *models.Poliza) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID loads a policy with its vehicle.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Poliza, error) {
	var record models.Poliza
	err := r.db.WithContext(ctx).Preload("Vehiculo").First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns all policies ordered by soonest expiration first.
func (r *Repository) List(ctx context.Context) ([]models.Poliza, error) {
	var records []models.Poliza
	err := r.db.WithContext(ctx).
		Preload("Vehiculo").
		Order("fecha_vencimiento ASC").
		Find(&records).Error
	return records, err
}

// ListVehiculosSinPoliza returns active vehicles that have no policy yet.
func (r *Repository) ListVehiculosSinPoliza(ctx context.Context) ([]models.Vehiculo, error) {
	var records []models.Vehiculo
	err := r.db.WithContext(ctx).
		Table("vehiculos").
		Joins("LEFT JOIN polizas ON polizas.id_vehiculo = vehiculos.id").
		Where("vehiculos.estatus = ? AND polizas.id IS NULL", enums.EstatusActivo).
		Order("vehiculos.placa ASC").
		Find(&records).Error
	return records, err
}

// Update persists the full policy record.
func (r *Repository) Update(ctx context.Context, record *models.Poliza) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes the policy row and reports how many rows were affected.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Poliza{}, id)
	return result.RowsAffected, result.Error
}
