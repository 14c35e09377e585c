package empleados

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
)

// EmpleadoInput carries the operator-submitted fields for create and update.
type EmpleadoInput struct {
	Nombres           string          `json:"nombres" validate:"required"`
	Apellidos         string          `json:"apellidos" validate:"required"`
	DPI               string          `json:"dpi" validate:"required"`
	Telefono          string          `json:"telefono" validate:"required"`
	Direccion         string          `json:"direccion" validate:"required"`
	Email             string          `json:"email" validate:"required"`
	FechaNacimiento   string          `json:"fecha_nacimiento" validate:"required"`
	FechaContratacion string          `json:"fecha_contratacion" validate:"required"`
	Salario           decimal.Decimal `json:"salario" validate:"required"`
	IDRol             int64           `json:"id_rol" validate:"required,gt=0"`
	Estatus           string          `json:"estatus"`
}

// EmpleadoDTO is the read shape returned by the API.
type EmpleadoDTO struct {
	ID                int64           `json:"id"`
	Nombres           string          `json:"nombres"`
	Apellidos         string          `json:"apellidos"`
	DPI               string          `json:"dpi"`
	Telefono          string          `json:"telefono"`
	Direccion         string          `json:"direccion"`
	Email             string          `json:"email"`
	FechaNacimiento   string          `json:"fecha_nacimiento"`
	FechaContratacion string          `json:"fecha_contratacion"`
	Salario           decimal.Decimal `json:"salario"`
	IDRol             int64           `json:"id_rol"`
	Rol               string          `json:"rol,omitempty"`
	Estatus           string          `json:"estatus"`
}

const dateLayout = "2006-01-02"

func toDTO(record *models.Empleado) EmpleadoDTO {
	dto := EmpleadoDTO{
		ID:                record.ID,
		Nombres:           record.Nombres,
		Apellidos:         record.Apellidos,
		DPI:               record.DPI,
		Telefono:          record.Telefono,
		Direccion:         record.Direccion,
		Email:             record.Email,
		FechaNacimiento:   record.FechaNacimiento.Format(dateLayout),
		FechaContratacion: record.FechaContratacion.Format(dateLayout),
		Salario:           record.Salario,
		IDRol:             record.IDRol,
		Estatus:           string(record.Estatus),
	}
	if record.Rol != nil {
		dto.Rol = string(record.Rol.Nombre)
	}
	return dto
}

func toDTOs(records []models.Empleado) []EmpleadoDTO {
	dtos := make([]EmpleadoDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, toDTO(&records[i]))
	}
	return dtos
}

func parseDate(value string, loc *time.Location) (time.Time, bool) {
	parsed, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
