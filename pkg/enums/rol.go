package enums

import "fmt"

// Rol represents an employee role.
type Rol string

const (
	RolAdministrador Rol = "Administrador"
	RolSupervisor    Rol = "Supervisor"
	RolPiloto        Rol = "Piloto"
	RolGerente       Rol = "Gerente"
	RolMecanico      Rol = "Mecanico"
)

var validRoles = []Rol{
	RolAdministrador,
	RolSupervisor,
	RolPiloto,
	RolGerente,
	RolMecanico,
}

// String implements fmt.Stringer.
func (r Rol) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Rol.
func (r Rol) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRol converts raw input into a Rol.
func ParseRol(value string) (Rol, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rol %q", value)
}
