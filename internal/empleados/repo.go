package empleados

import (
	"context"

	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
)

// Repository encapsulates employee persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an employee repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the employee record.
func (r *Repository) Create(ctx context.Context, record *models.Empleado) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID loads an employee with its role.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Empleado, error) {
	var record models.Empleado
	err := r.db.WithContext(ctx).Preload("Rol").First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns all employees joined to their roles, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Empleado, error) {
	var records []models.Empleado
	err := r.db.WithContext(ctx).Preload("Rol").Order("id DESC").Find(&records).Error
	return records, err
}

// ListByRol returns active employees holding the given role.
func (r *Repository) ListByRol(ctx context.Context, rol string) ([]models.Empleado, error) {
	var records []models.Empleado
	err := r.db.WithContext(ctx).
		Joins("JOIN roles ON roles.id = empleados.id_rol").
		Where("roles.nombre = ? AND empleados.estatus = ?", rol, "Activo").
		Order("empleados.apellidos ASC").
		Find(&records).Error
	return records, err
}

// Update persists the full employee record.
func (r *Repository) Update(ctx context.Context, record *models.Empleado) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes the employee row and reports how many rows were affected.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Empleado{}, id)
	return result.RowsAffected, result.Error
}

// FindRolByID loads a role by primary key.
func (r *Repository) FindRolByID(ctx context.Context, id int64) (*models.Rol, error) {
	var record models.Rol
	err := r.db.WithContext(ctx).First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
