package polizas

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
	"github.com/sistemaflotilla/flotilla-backend/pkg/validation"
)

var reportHeader = []string{
	"numero_poliza",
	"vehiculo",
	"aseguradora",
	"monto",
	"fecha_emision",
	"fecha_vencimiento",
	"estado",
}

// ReportCSV streams the policy report, soonest expiration first.
func (s *service) ReportCSV(ctx context.Context, w io.Writer) error {
	records, err := s.repo.List(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing polizas for report")
	}

	today := validation.DateOnly(s.now().In(s.loc))
	writer := csv.NewWriter(w)
	if err := writer.Write(reportHeader); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing report header")
	}
	for i := range records {
		record := &records[i]
		vehiculo := ""
		if record.Vehiculo != nil {
			vehiculo = record.Vehiculo.Descriptor()
		}
		aseguradora := ""
		if record.Aseguradora != nil {
			aseguradora = *record.Aseguradora
		}
		row := []string{
			record.NumeroPoliza,
			vehiculo,
			aseguradora,
			record.Monto.StringFixed(2),
			record.FechaEmision.Format(dateLayout),
			record.FechaVencimiento.Format(dateLayout),
			expirationEstado(validation.DateOnly(record.FechaVencimiento.In(s.loc)), today),
		}
		if err := writer.Write(row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing report row "+strconv.Itoa(i))
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flushing report")
	}
	return nil
}
