package mantenimientos

import "github.com/sistemaflotilla/flotilla-backend/pkg/enums"

const (
	// EngineServiceInterval is the fixed cadence for "Servicio de Motor"
	// entries; operator-supplied frequencies are ignored for that type.
	EngineServiceInterval int64 = 7000

	// proximoWarningKm is the remaining-distance threshold below which a
	// projection is flagged as upcoming.
	proximoWarningKm int64 = 1000
)

// NormalizeFrecuencia resolves the service frequency that will be frozen on
// the entry. Engine services always use the fixed interval; other types keep
// the operator's value, which may be absent.
func NormalizeFrecuencia(tipo enums.TipoMantenimiento, frecuencia *int64) *int64 {
	if tipo == enums.MantenimientoServicioMotor {
		interval := EngineServiceInterval
		return &interval
	}
	return frecuencia
}

// ProjectNextService computes the odometer reading at which the next service
// is due. The projection is undefined (nil) when no frequency applies.
func ProjectNextService(tipo enums.TipoMantenimiento, kilometraje int64, frecuencia *int64) (*int64, *int64) {
	normalized := NormalizeFrecuencia(tipo, frecuencia)
	if normalized == nil {
		return nil, nil
	}
	proximo := kilometraje + *normalized
	return normalized, &proximo
}

// ServiceStatus buckets a stored projection against the vehicle's current
// odometer: overdue when the reading passed the projection, upcoming within
// the warning window, otherwise up to date.
func ServiceStatus(proximo, actual int64) enums.EstadoServicio {
	restante := proximo - actual
	switch {
	case restante < 0:
		return enums.ServicioVencido
	case restante < proximoWarningKm:
		return enums.ServicioProximo
	default:
		return enums.ServicioAlDia
	}
}
