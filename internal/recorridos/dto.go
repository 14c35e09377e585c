package recorridos

import "github.com/sistemaflotilla/flotilla-backend/pkg/db/models"

const dateTimeLayout = "2006-01-02 15:04:05"

// viaticoMinHours is the trip duration from which a per-diem applies.
const viaticoMinHours = 8.0

// RecorridoInput carries the operator-submitted fields for create and
// update. IDPiloto is optional; when present it must match the vehicle's
// assigned pilot.
type RecorridoInput struct {
	IDVehiculo       int64   `json:"id_vehiculo" validate:"required,gt=0"`
	IDPiloto         int64   `json:"id_piloto"`
	PuntoA           string  `json:"punto_a" validate:"required"`
	PuntoB           string  `json:"punto_b" validate:"required"`
	Distancia        int     `json:"distancia" validate:"required"`
	TiempoAproximado float64 `json:"tiempo_aproximado" validate:"required"`
}

// RecorridoDTO is the read shape returned by the API. AplicaViatico is
// derived at read time and never stored.
type RecorridoDTO struct {
	ID               int64   `json:"id"`
	IDVehiculo       int64   `json:"id_vehiculo"`
	Vehiculo         string  `json:"vehiculo,omitempty"`
	IDPiloto         int64   `json:"id_piloto"`
	Piloto           string  `json:"piloto,omitempty"`
	PuntoA           string  `json:"punto_a"`
	PuntoB           string  `json:"punto_b"`
	Distancia        int     `json:"distancia"`
	TiempoAproximado float64 `json:"tiempo_aproximado"`
	AplicaViatico    bool    `json:"aplica_viatico"`
	Fecha            string  `json:"fecha"`
}

// TopVehiculoDTO ranks a vehicle by trip count.
type TopVehiculoDTO struct {
	IDVehiculo int64  `json:"id_vehiculo"`
	Placa      string `json:"placa"`
	Viajes     int64  `json:"viajes"`
}

// TopPilotoDTO ranks a pilot by trip count.
type TopPilotoDTO struct {
	IDPiloto int64  `json:"id_piloto"`
	Piloto   string `json:"piloto"`
	Viajes   int64  `json:"viajes"`
}

// RutaPopularDTO ranks an A-to-B route by trip count.
type RutaPopularDTO struct {
	PuntoA string `json:"punto_a"`
	PuntoB string `json:"punto_b"`
	Viajes int64  `json:"viajes"`
}

// RendimientoDTO carries a vehicle's aggregate speed figures. The average
// speed is total distance over total time, not an average of per-trip speeds.
type RendimientoDTO struct {
	IDVehiculo        int64   `json:"id_vehiculo"`
	Placa             string  `json:"placa"`
	DistanciaTotal    int64   `json:"distancia_total"`
	TiempoTotal       float64 `json:"tiempo_total"`
	VelocidadPromedio float64 `json:"velocidad_promedio"`
}

// DashboardDTO is the trips dashboard summary.
type DashboardDTO struct {
	TopVehicles   []TopVehiculoDTO `json:"topVehicles"`
	TopPilots     []TopPilotoDTO   `json:"topPilots"`
	PopularRoutes []RutaPopularDTO `json:"popularRoutes"`
	Performance   []RendimientoDTO `json:"performance"`
}

func toDTO(record *models.Recorrido) RecorridoDTO {
	dto := RecorridoDTO{
		ID:               record.ID,
		IDVehiculo:       record.IDVehiculo,
		IDPiloto:         record.IDPiloto,
		PuntoA:           record.PuntoA,
		PuntoB:           record.PuntoB,
		Distancia:        record.Distancia,
		TiempoAproximado: record.TiempoAproximado,
		AplicaViatico:    record.TiempoAproximado >= viaticoMinHours,
		Fecha:            record.CreatedAt.Format(dateTimeLayout),
	}
	if record.Vehiculo != nil {
		dto.Vehiculo = record.Vehiculo.Descriptor()
	}
	if record.Piloto != nil {
		dto.Piloto = record.Piloto.NombreCompleto()
	}
	return dto
}
