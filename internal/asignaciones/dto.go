package asignaciones

// AsignacionInput pairs a pilot with a vehicle.
type AsignacionInput struct {
	IDEmpleado    int64   `json:"id_empleado" validate:"required,gt=0"`
	IDVehiculo    int64   `json:"id_vehiculo" validate:"required,gt=0"`
	Observaciones *string `json:"observaciones"`
}

// PilotoDisponibleDTO is a Piloto-role employee with no assignment.
type PilotoDisponibleDTO struct {
	ID        int64  `json:"id"`
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
}

// VehiculoDisponibleDTO is an active vehicle with no assignment.
type VehiculoDisponibleDTO struct {
	ID     int64  `json:"id"`
	Placa  string `json:"placa"`
	Marca  string `json:"marca"`
	Linea  string `json:"linea"`
	Modelo int    `json:"modelo"`
}

// DisponiblesDTO feeds the assignment form.
type DisponiblesDTO struct {
	Pilotos   []PilotoDisponibleDTO   `json:"pilotos"`
	Vehiculos []VehiculoDisponibleDTO `json:"vehiculos"`
}

// AsignadoDTO is one row of the active-assignments view.
type AsignadoDTO struct {
	ID              int64   `json:"id"`
	IDEmpleado      int64   `json:"id_empleado"`
	IDVehiculo      int64   `json:"id_vehiculo"`
	Placa           string  `json:"placa"`
	Marca           string  `json:"marca"`
	Linea           string  `json:"linea"`
	Modelo          int     `json:"modelo"`
	Piloto          string  `json:"piloto"`
	FechaAsignacion string  `json:"fecha_asignacion"`
	Observaciones   *string `json:"observaciones,omitempty"`
}
