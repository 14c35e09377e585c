package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
)

// Empleado is a fleet employee. Piloto-role employees are eligible to hold
// a vehicle assignment.
type Empleado struct {
	ID                int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Nombres           string          `gorm:"column:nombres;not null"`
	Apellidos         string          `gorm:"column:apellidos;not null"`
	DPI               string          `gorm:"column:dpi;not null;uniqueIndex"`
	Telefono          string          `gorm:"column:telefono;not null"`
	Direccion         string          `gorm:"column:direccion;not null;default:''"`
	Email             string          `gorm:"column:email;not null;default:''"`
	FechaNacimiento   time.Time       `gorm:"column:fecha_nacimiento;not null"`
	FechaContratacion time.Time       `gorm:"column:fecha_contratacion;not null"`
	Salario           decimal.Decimal `gorm:"column:salario;type:numeric;not null"`
	IDRol             int64           `gorm:"column:id_rol;not null"`
	Rol               *Rol            `gorm:"foreignKey:IDRol"`
	Estatus           enums.Estatus   `gorm:"column:estatus;not null;default:'Activo'"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Empleado) TableName() string { return "empleados" }

// NombreCompleto joins first and last names the way list views render them.
func (e Empleado) NombreCompleto() string {
	return e.Nombres + " " + e.Apellidos
}
