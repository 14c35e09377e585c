package mantenimientos

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
)

const dateLayout = "2006-01-02"

// MantenimientoInput carries the operator-submitted fields for create and
// update. FrecuenciaServicio is ignored for engine services.
type MantenimientoInput struct {
	IDVehiculo          int64           `json:"id_vehiculo" validate:"required,gt=0"`
	TipoMantenimiento   string          `json:"tipo_mantenimiento" validate:"required"`
	Fecha               string          `json:"fecha" validate:"required"`
	Kilometraje         int64           `json:"kilometraje"`
	TituloMantenimiento string          `json:"titulo_mantenimiento" validate:"required"`
	Descripcion         *string         `json:"descripcion"`
	IDTaller            *int64          `json:"id_taller"`
	Costo               decimal.Decimal `json:"costo"`
	FrecuenciaServicio  *int64          `json:"frecuencia_servicio"`
}

// MantenimientoDTO is the read shape returned by the API. EstadoServicio is
// derived at read time against the vehicle's current odometer; the stored
// projection itself never changes.
type MantenimientoDTO struct {
	ID                         int64           `json:"id"`
	IDVehiculo                 int64           `json:"id_vehiculo"`
	Vehiculo                   string          `json:"vehiculo,omitempty"`
	TipoMantenimiento          string          `json:"tipo_mantenimiento"`
	Fecha                      string          `json:"fecha"`
	Kilometraje                int64           `json:"kilometraje"`
	TituloMantenimiento        string          `json:"titulo_mantenimiento"`
	Descripcion                *string         `json:"descripcion,omitempty"`
	IDTaller                   *int64          `json:"id_taller,omitempty"`
	Taller                     string          `json:"taller,omitempty"`
	Costo                      decimal.Decimal `json:"costo"`
	FrecuenciaServicio         *int64          `json:"frecuencia_servicio,omitempty"`
	KilometrajeProximoServicio *int64          `json:"kilometraje_proximo_servicio,omitempty"`
	EstadoServicio             string          `json:"estado_servicio,omitempty"`
}

func toDTO(record *models.Mantenimiento) MantenimientoDTO {
	dto := MantenimientoDTO{
		ID:                         record.ID,
		IDVehiculo:                 record.IDVehiculo,
		TipoMantenimiento:          string(record.TipoMantenimiento),
		Fecha:                      record.Fecha.Format(dateLayout),
		Kilometraje:                record.Kilometraje,
		TituloMantenimiento:        record.TituloMantenimiento,
		Descripcion:                record.Descripcion,
		IDTaller:                   record.IDTaller,
		Costo:                      record.Costo,
		FrecuenciaServicio:         record.FrecuenciaServicio,
		KilometrajeProximoServicio: record.KilometrajeProximoServicio,
	}
	if record.Vehiculo != nil {
		dto.Vehiculo = record.Vehiculo.Descriptor()
		if record.KilometrajeProximoServicio != nil {
			dto.EstadoServicio = string(ServiceStatus(*record.KilometrajeProximoServicio, record.Vehiculo.Kilometraje))
		}
	}
	if record.Taller != nil {
		dto.Taller = record.Taller.NombreTaller
	}
	return dto
}

func parseDate(value string, loc *time.Location) (time.Time, bool) {
	parsed, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
