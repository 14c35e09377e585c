package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Poliza is an insurance policy, strictly one per vehicle.
type Poliza struct {
	ID               int64           `gorm:"column:id;primaryKey;autoIncrement"`
	IDVehiculo       int64           `gorm:"column:id_vehiculo;not null;uniqueIndex"`
	Vehiculo         *Vehiculo       `gorm:"foreignKey:IDVehiculo"`
	NumeroPoliza     string          `gorm:"column:numero_poliza;not null"`
	Aseguradora      *string         `gorm:"column:aseguradora"`
	Monto            decimal.Decimal `gorm:"column:monto;type:numeric;not null"`
	FechaEmision     time.Time       `gorm:"column:fecha_emision;not null"`
	FechaVencimiento time.Time       `gorm:"column:fecha_vencimiento;not null"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Poliza) TableName() string { return "polizas" }
