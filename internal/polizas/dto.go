package polizas

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
)

const dateLayout = "2006-01-02"

// Expiration buckets surfaced on the list view.
const (
	EstadoVencida   = "vencida"
	EstadoPorVencer = "por_vencer"
	EstadoVigente   = "vigente"
)

// PolizaInput carries the operator-submitted fields for create and update.
type PolizaInput struct {
	IDVehiculo       int64           `json:"id_vehiculo" validate:"required,gt=0"`
	NumeroPoliza     string          `json:"numero_poliza" validate:"required"`
	Aseguradora      *string         `json:"aseguradora"`
	Monto            decimal.Decimal `json:"monto" validate:"required"`
	FechaEmision     string          `json:"fecha_emision" validate:"required"`
	FechaVencimiento string          `json:"fecha_vencimiento" validate:"required"`
}

// PolizaDTO is the read shape returned by the API.
type PolizaDTO struct {
	ID               int64           `json:"id"`
	IDVehiculo       int64           `json:"id_vehiculo"`
	Vehiculo         string          `json:"vehiculo,omitempty"`
	NumeroPoliza     string          `json:"numero_poliza"`
	Aseguradora      *string         `json:"aseguradora,omitempty"`
	Monto            decimal.Decimal `json:"monto"`
	FechaEmision     string          `json:"fecha_emision"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	Estado           string          `json:"estado,omitempty"`
}

func toDTO(record *models.Poliza) PolizaDTO {
	dto := PolizaDTO{
		ID:               record.ID,
		IDVehiculo:       record.IDVehiculo,
		NumeroPoliza:     record.NumeroPoliza,
		Aseguradora:      record.Aseguradora,
		Monto:            record.Monto,
		FechaEmision:     record.FechaEmision.Format(dateLayout),
		FechaVencimiento: record.FechaVencimiento.Format(dateLayout),
	}
	if record.Vehiculo != nil {
		dto.Vehiculo = record.Vehiculo.Descriptor()
	}
	return dto
}

// expirationEstado buckets a policy by days remaining until expiration.
func expirationEstado(vencimiento, today time.Time) string {
	switch days := int(vencimiento.Sub(today).Hours() / 24); {
	case days < 0:
		return EstadoVencida
	case days <= 30:
		return EstadoPorVencer
	default:
		return EstadoVigente
	}
}

func parseDate(value string, loc *time.Location) (time.Time, bool) {
	parsed, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
