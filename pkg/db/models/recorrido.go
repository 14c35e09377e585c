package models

import "time"

// Recorrido is a logged trip by an assigned driver/vehicle pair.
type Recorrido struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	IDVehiculo       int64     `gorm:"column:id_vehiculo;not null;index"`
	IDPiloto         int64     `gorm:"column:id_piloto;not null;index"`
	Vehiculo         *Vehiculo `gorm:"foreignKey:IDVehiculo"`
	Piloto           *Empleado `gorm:"foreignKey:IDPiloto"`
	PuntoA           string    `gorm:"column:punto_a;not null"`
	PuntoB           string    `gorm:"column:punto_b;not null"`
	Distancia        int       `gorm:"column:distancia;not null"`
	TiempoAproximado float64   `gorm:"column:tiempo_aproximado;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Recorrido) TableName() string { return "recorridos" }
