package recorridos

import (
	"context"

	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
)

const dashboardTopN = 5

// Repository encapsulates trip persistence and the dashboard aggregates.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a trip repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the trip record.
func (r *Repository) Create(ctx context.Context, record *models.Recorrido) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID loads a trip with its vehicle and pilot.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Recorrido, error) {
	var record models.Recorrido
	err := r.db.WithContext(ctx).Preload("Vehiculo").Preload("Piloto").First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns all trips, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Recorrido, error) {
	var records []models.Recorrido
	err := r.db.WithContext(ctx).
		Preload("Vehiculo").
		Preload("Piloto").
		Order("created_at DESC, id DESC").
		Find(&records).Error
	return records, err
}

// Update persists the full trip record.
func (r *Repository) Update(ctx context.Context, record *models.Recorrido) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes the trip row and reports how many rows were affected.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Recorrido{}, id)
	return result.RowsAffected, result.Error
}

// TopVehiculos ranks vehicles by trip count.
func (r *Repository) TopVehiculos(ctx context.Context) ([]TopVehiculoDTO, error) {
	var rows []TopVehiculoDTO
	err := r.db.WithContext(ctx).
		Table("recorridos rec").
		Select("rec.id_vehiculo, v.placa, COUNT(*) AS viajes").
		Joins("JOIN vehiculos v ON v.id = rec.id_vehiculo").
		Group("rec.id_vehiculo, v.placa").
		Order("viajes DESC").
		Limit(dashboardTopN).
		Scan(&rows).Error
	return rows, err
}

// TopPilotos ranks pilots by trip count.
func (r *Repository) TopPilotos(ctx context.Context) ([]topPilotoRecord, error) {
	var rows []topPilotoRecord
	err := r.db.WithContext(ctx).
		Table("recorridos rec").
		Select("rec.id_piloto, e.nombres, e.apellidos, COUNT(*) AS viajes").
		Joins("JOIN empleados e ON e.id = rec.id_piloto").
		Group("rec.id_piloto, e.nombres, e.apellidos").
		Order("viajes DESC").
		Limit(dashboardTopN).
		Scan(&rows).Error
	return rows, err
}

type topPilotoRecord struct {
	IDPiloto  int64
	Nombres   string
	Apellidos string
	Viajes    int64
}

// RutasPopulares ranks A-to-B routes by trip count.
func (r *Repository) RutasPopulares(ctx context.Context) ([]RutaPopularDTO, error) {
	var rows []RutaPopularDTO
	err := r.db.WithContext(ctx).
		Table("recorridos").
		Select("punto_a, punto_b, COUNT(*) AS viajes").
		Group("punto_a, punto_b").
		Order("viajes DESC").
		Limit(dashboardTopN).
		Scan(&rows).Error
	return rows, err
}

type rendimientoRecord struct {
	IDVehiculo     int64
	Placa          string
	DistanciaTotal int64
	TiempoTotal    float64
}

// Rendimiento aggregates distance and time per vehicle.
func (r *Repository) Rendimiento(ctx context.Context) ([]rendimientoRecord, error) {
	var rows []rendimientoRecord
	err := r.db.WithContext(ctx).
		Table("recorridos rec").
		Select("rec.id_vehiculo, v.placa, SUM(rec.distancia) AS distancia_total, SUM(rec.tiempo_aproximado) AS tiempo_total").
		Joins("JOIN vehiculos v ON v.id = rec.id_vehiculo").
		Group("rec.id_vehiculo, v.placa").
		Order("distancia_total DESC").
		Scan(&rows).Error
	return rows, err
}
