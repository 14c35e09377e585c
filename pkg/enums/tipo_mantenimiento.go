package enums

import "fmt"

// TipoMantenimiento classifies a maintenance record.
type TipoMantenimiento string

const (
	MantenimientoServicioMotor TipoMantenimiento = "Servicio de Motor"
	MantenimientoPreventivo    TipoMantenimiento = "Preventivo"
	MantenimientoCorrectivo    TipoMantenimiento = "Correctivo"
)

var validTiposMantenimiento = []TipoMantenimiento{
	MantenimientoServicioMotor,
	MantenimientoPreventivo,
	MantenimientoCorrectivo,
}

// String implements fmt.Stringer.
func (t TipoMantenimiento) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TipoMantenimiento.
func (t TipoMantenimiento) IsValid() bool {
	for _, candidate := range validTiposMantenimiento {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTipoMantenimiento converts raw input into a TipoMantenimiento.
func ParseTipoMantenimiento(value string) (TipoMantenimiento, error) {
	for _, candidate := range validTiposMantenimiento {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tipo de mantenimiento %q", value)
}
