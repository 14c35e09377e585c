package models

import "time"

// VehiculoAsignado links one driver to one vehicle. The two unique indexes
// carry the invariant: a driver holds at most one assignment and a vehicle
// has at most one driver. Deletion is termination; there is no closed state.
type VehiculoAsignado struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	IDEmpleado      int64     `gorm:"column:id_empleado;not null;uniqueIndex"`
	IDVehiculo      int64     `gorm:"column:id_vehiculo;not null;uniqueIndex"`
	FechaAsignacion time.Time `gorm:"column:fecha_asignacion;not null"`
	Observaciones   *string   `gorm:"column:observaciones"`
	Empleado        *Empleado `gorm:"foreignKey:IDEmpleado"`
	Vehiculo        *Vehiculo `gorm:"foreignKey:IDVehiculo"`
}

func (VehiculoAsignado) TableName() string { return "vehiculos_asignados" }
