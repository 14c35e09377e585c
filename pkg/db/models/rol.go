package models

import "github.com/sistemaflotilla/flotilla-backend/pkg/enums"

// Rol is the employee role catalogue row.
type Rol struct {
	ID     int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Nombre enums.Rol `gorm:"column:nombre;not null;uniqueIndex"`
}

func (Rol) TableName() string { return "roles" }
