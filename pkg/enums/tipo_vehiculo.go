package enums

import "fmt"

// TipoVehiculo classifies a fleet vehicle.
type TipoVehiculo string

const (
	TipoMotocicleta TipoVehiculo = "Motocicleta"
	TipoSedan       TipoVehiculo = "Sedan"
	TipoCamion      TipoVehiculo = "Camion"
	TipoPanel       TipoVehiculo = "Panel"
	TipoPickup      TipoVehiculo = "Pickup"
)

var validTiposVehiculo = []TipoVehiculo{
	TipoMotocicleta,
	TipoSedan,
	TipoCamion,
	TipoPanel,
	TipoPickup,
}

// String implements fmt.Stringer.
func (t TipoVehiculo) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TipoVehiculo.
func (t TipoVehiculo) IsValid() bool {
	for _, candidate := range validTiposVehiculo {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTipoVehiculo converts raw input into a TipoVehiculo.
func ParseTipoVehiculo(value string) (TipoVehiculo, error) {
	for _, candidate := range validTiposVehiculo {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tipo de vehiculo %q", value)
}

// PlacaPrefix returns the plate letter mandated for the vehicle type.
func (t TipoVehiculo) PlacaPrefix() byte {
	switch t {
	case TipoMotocicleta:
		return 'M'
	case TipoCamion, TipoPanel:
		return 'C'
	default:
		return 'P'
	}
}

// Asientos returns the seat count derived from the vehicle type. The field
// is never operator-editable.
func (t TipoVehiculo) Asientos() int {
	switch t {
	case TipoMotocicleta:
		return 2
	case TipoCamion, TipoPanel:
		return 3
	default:
		return 5
	}
}
