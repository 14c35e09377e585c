package models

import "time"

// HistorialKilometraje is one append-only mileage ledger entry. Rows are
// never updated or deleted; Recorrido always equals Nuevo - Anterior.
type HistorialKilometraje struct {
	ID                  int64     `gorm:"column:id;primaryKey;autoIncrement"`
	IDVehiculo          int64     `gorm:"column:id_vehiculo;not null;index"`
	KilometrajeAnterior int64     `gorm:"column:kilometraje_anterior;not null"`
	KilometrajeNuevo    int64     `gorm:"column:kilometraje_nuevo;not null"`
	Recorrido           int64     `gorm:"column:recorrido;not null"`
	Fecha               time.Time `gorm:"column:fecha;not null"`
}

func (HistorialKilometraje) TableName() string { return "historial_kilometraje" }
