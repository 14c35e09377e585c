package recorridos

import (
	"context"

	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
)

// Dashboard assembles the trips summary: top-5 vehicles and pilots by trip
// count, the most repeated routes, and per-vehicle average speed.
func (s *service) Dashboard(ctx context.Context) (DashboardDTO, error) {
	topVehiculos, err := s.repo.TopVehiculos(ctx)
	if err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ranking vehicles")
	}

	topPilotos, err := s.repo.TopPilotos(ctx)
	if err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ranking pilots")
	}

	rutas, err := s.repo.RutasPopulares(ctx)
	if err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ranking routes")
	}

	rendimiento, err := s.repo.Rendimiento(ctx)
	if err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregating performance")
	}

	dto := DashboardDTO{
		TopVehicles:   topVehiculos,
		TopPilots:     make([]TopPilotoDTO, 0, len(topPilotos)),
		PopularRoutes: rutas,
		Performance:   make([]RendimientoDTO, 0, len(rendimiento)),
	}
	if dto.TopVehicles == nil {
		dto.TopVehicles = []TopVehiculoDTO{}
	}
	if dto.PopularRoutes == nil {
		dto.PopularRoutes = []RutaPopularDTO{}
	}
	for _, row := range topPilotos {
		dto.TopPilots = append(dto.TopPilots, TopPilotoDTO{
			IDPiloto: row.IDPiloto,
			Piloto:   row.Nombres + " " + row.Apellidos,
			Viajes:   row.Viajes,
		})
	}
	for _, row := range rendimiento {
		velocidad := 0.0
		if row.TiempoTotal > 0 {
			velocidad = float64(row.DistanciaTotal) / row.TiempoTotal
		}
		dto.Performance = append(dto.Performance, RendimientoDTO{
			IDVehiculo:        row.IDVehiculo,
			Placa:             row.Placa,
			DistanciaTotal:    row.DistanciaTotal,
			TiempoTotal:       row.TiempoTotal,
			VelocidadPromedio: velocidad,
		})
	}
	return dto, nil
}
