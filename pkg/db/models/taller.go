package models

import "github.com/sistemaflotilla/flotilla-backend/pkg/enums"

// Taller is an external workshop that performs maintenance work.
type Taller struct {
	ID           int64         `gorm:"column:id;primaryKey;autoIncrement"`
	NombreTaller string        `gorm:"column:nombre_taller;not null"`
	Estado       enums.Estatus `gorm:"column:estado;not null;default:'Activo'"`
}

func (Taller) TableName() string { return "talleres" }
