package vehiculos

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// VehiculoInput carries the operator-submitted fields for create and update.
// Asientos is absent on purpose: seat count derives from the vehicle type.
type VehiculoInput struct {
	Placa                    string          `json:"placa" validate:"required"`
	Tipo                     string          `json:"tipo" validate:"required"`
	Marca                    string          `json:"marca" validate:"required"`
	Linea                    string          `json:"linea" validate:"required"`
	Modelo                   int             `json:"modelo" validate:"required"`
	Chasis                   string          `json:"chasis" validate:"required"`
	Color                    string          `json:"color" validate:"required"`
	Motor                    int             `json:"motor" validate:"required"`
	Combustible              string          `json:"combustible" validate:"required"`
	Transmision              string          `json:"transmision" validate:"required"`
	Estatus                  string          `json:"estatus"`
	ImpuestoCirculacionAnual decimal.Decimal `json:"impuesto_circulacion_anual"`
	ImpuestoAnioActual       bool            `json:"impuesto_anio_actual"`
	Kilometraje              int64           `json:"kilometraje" validate:"gte=0"`
}

// VehiculoDTO is the read shape returned by the API. Piloto is present when
// the vehicle has an active assignment; the servicio fields surface the
// stored next-service projection.
type VehiculoDTO struct {
	ID                       int64           `json:"id"`
	Placa                    string          `json:"placa"`
	Tipo                     string          `json:"tipo"`
	Marca                    string          `json:"marca"`
	Linea                    string          `json:"linea"`
	Modelo                   int             `json:"modelo"`
	Chasis                   string          `json:"chasis"`
	Color                    string          `json:"color"`
	Asientos                 int             `json:"asientos"`
	Motor                    int             `json:"motor"`
	Combustible              string          `json:"combustible"`
	Transmision              string          `json:"transmision"`
	Estatus                  string          `json:"estatus"`
	ImpuestoCirculacionAnual decimal.Decimal `json:"impuesto_circulacion_anual"`
	ImpuestoAnioActual       bool            `json:"impuesto_anio_actual"`
	Kilometraje              int64           `json:"kilometraje"`
	Piloto                   string          `json:"piloto,omitempty"`
	ProximoServicio          *int64          `json:"proximo_servicio,omitempty"`
	EstadoServicio           string          `json:"estado_servicio,omitempty"`
}

// MileageInput is the ledger operation payload.
type MileageInput struct {
	IDVehiculo       int64 `json:"id_vehiculo" validate:"required,gt=0"`
	KilometrajeNuevo int64 `json:"kilometraje_nuevo" validate:"required"`
}

// MileageDTO is returned after a successful odometer update.
type MileageDTO struct {
	IDVehiculo          int64  `json:"id_vehiculo"`
	KilometrajeAnterior int64  `json:"kilometraje_anterior"`
	KilometrajeNuevo    int64  `json:"kilometraje_nuevo"`
	Recorrido           int64  `json:"recorrido"`
	FechaActual         string `json:"fecha_actual"`
}

// HistorialDTO is one mileage ledger entry.
type HistorialDTO struct {
	ID                  int64  `json:"id"`
	IDVehiculo          int64  `json:"id_vehiculo"`
	KilometrajeAnterior int64  `json:"kilometraje_anterior"`
	KilometrajeNuevo    int64  `json:"kilometraje_nuevo"`
	Recorrido           int64  `json:"recorrido"`
	Fecha               string `json:"fecha"`
}

func toDTO(record *models.Vehiculo) VehiculoDTO {
	return VehiculoDTO{
		ID:                       record.ID,
		Placa:                    record.Placa,
		Tipo:                     string(record.Tipo),
		Marca:                    record.Marca,
		Linea:                    record.Linea,
		Modelo:                   record.Modelo,
		Chasis:                   record.Chasis,
		Color:                    record.Color,
		Asientos:                 record.Asientos,
		Motor:                    record.Motor,
		Combustible:              record.Combustible,
		Transmision:              record.Transmision,
		Estatus:                  string(record.Estatus),
		ImpuestoCirculacionAnual: record.ImpuestoCirculacionAnual,
		ImpuestoAnioActual:       record.ImpuestoAnioActual,
		Kilometraje:              record.Kilometraje,
	}
}

func historialToDTO(record *models.HistorialKilometraje, loc *time.Location) HistorialDTO {
	return HistorialDTO{
		ID:                  record.ID,
		IDVehiculo:          record.IDVehiculo,
		KilometrajeAnterior: record.KilometrajeAnterior,
		KilometrajeNuevo:    record.KilometrajeNuevo,
		Recorrido:           record.Recorrido,
		Fecha:               record.Fecha.In(loc).Format(dateTimeLayout),
	}
}
