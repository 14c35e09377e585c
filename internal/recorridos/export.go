package recorridos

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
)

var exportHeader = []string{
	"fecha",
	"vehiculo",
	"piloto",
	"punto_a",
	"punto_b",
	"distancia",
	"tiempo_aproximado",
	"aplica_viatico",
}

// ExportCSV streams every trip, newest first.
func (s *service) ExportCSV(ctx context.Context, w io.Writer) error {
	records, err := s.repo.List(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing recorridos for export")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing export header")
	}
	for i := range records {
		dto := toDTO(&records[i])
		row := []string{
			dto.Fecha,
			dto.Vehiculo,
			dto.Piloto,
			dto.PuntoA,
			dto.PuntoB,
			strconv.Itoa(dto.Distancia),
			strconv.FormatFloat(dto.TiempoAproximado, 'f', -1, 64),
			strconv.FormatBool(dto.AplicaViatico),
		}
		if err := writer.Write(row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing export row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flushing export")
	}
	return nil
}
