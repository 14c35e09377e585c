package enums

import "fmt"

// Estatus is the shared active/inactive flag used by employees, vehicles
// and workshops.
type Estatus string

const (
	EstatusActivo   Estatus = "Activo"
	EstatusInactivo Estatus = "Inactivo"
)

// String implements fmt.Stringer.
func (e Estatus) String() string {
	return string(e)
}

// IsValid reports whether the value is a known Estatus.
func (e Estatus) IsValid() bool {
	return e == EstatusActivo || e == EstatusInactivo
}

// ParseEstatus converts raw input into an Estatus.
func ParseEstatus(value string) (Estatus, error) {
	switch value {
	case string(EstatusActivo):
		return EstatusActivo, nil
	case string(EstatusInactivo):
		return EstatusInactivo, nil
	}
	return "", fmt.Errorf("invalid estatus %q", value)
}
