package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
)

// Vehiculo is a fleet vehicle. Kilometraje only moves forward; updates go
// through the mileage ledger, never through plain edits.
type Vehiculo struct {
	ID                        int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Placa                     string             `gorm:"column:placa;not null;uniqueIndex"`
	Tipo                      enums.TipoVehiculo `gorm:"column:tipo;not null"`
	Marca                     string             `gorm:"column:marca;not null"`
	Linea                     string             `gorm:"column:linea;not null"`
	Modelo                    int                `gorm:"column:modelo;not null"`
	Chasis                    string             `gorm:"column:chasis;not null;default:''"`
	Color                     string             `gorm:"column:color;not null;default:''"`
	Asientos                  int                `gorm:"column:asientos;not null"`
	Motor                     int                `gorm:"column:motor;not null"`
	Combustible               string             `gorm:"column:combustible;not null;default:''"`
	Transmision               string             `gorm:"column:transmision;not null;default:''"`
	Estatus                   enums.Estatus      `gorm:"column:estatus;not null;default:'Activo'"`
	ImpuestoCirculacionAnual  decimal.Decimal    `gorm:"column:impuesto_circulacion_anual;type:numeric;not null;default:0"`
	ImpuestoAnioActual        bool               `gorm:"column:impuesto_anio_actual;not null;default:false"`
	Kilometraje               int64              `gorm:"column:kilometraje;not null;default:0"`
	ImpresionTarjetaCirculacion *time.Time       `gorm:"column:impresion_tarjeta_circulacion"`
	CreatedAt                 time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                 time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Vehiculo) TableName() string { return "vehiculos" }

// Descriptor renders the "placa - marca linea modelo" label used across
// joined list views.
func (v Vehiculo) Descriptor() string {
	return v.Placa + " - " + v.Marca + " " + v.Linea + " " + strconv.Itoa(v.Modelo)
}
