package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
)

// Mantenimiento records a service event. FrecuenciaServicio and
// KilometrajeProximoServicio are frozen at entry time; later odometer
// updates do not rewrite them.
type Mantenimiento struct {
	ID                         int64                   `gorm:"column:id;primaryKey;autoIncrement"`
	IDVehiculo                 int64                   `gorm:"column:id_vehiculo;not null;index"`
	Vehiculo                   *Vehiculo               `gorm:"foreignKey:IDVehiculo"`
	TipoMantenimiento          enums.TipoMantenimiento `gorm:"column:tipo_mantenimiento;not null"`
	Fecha                      time.Time               `gorm:"column:fecha;not null"`
	Kilometraje                int64                   `gorm:"column:kilometraje;not null"`
	TituloMantenimiento        string                  `gorm:"column:titulo_mantenimiento;not null"`
	Descripcion                *string                 `gorm:"column:descripcion"`
	IDTaller                   *int64                  `gorm:"column:id_taller"`
	Taller                     *Taller                 `gorm:"foreignKey:IDTaller"`
	Costo                      decimal.Decimal         `gorm:"column:costo;type:numeric;not null;default:0"`
	FrecuenciaServicio         *int64                  `gorm:"column:frecuencia_servicio"`
	KilometrajeProximoServicio *int64                  `gorm:"column:kilometraje_proximo_servicio"`
	CreatedAt                  time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                  time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

func (Mantenimiento) TableName() string { return "mantenimientos" }
