package vehiculos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
)

// RecordMileage advances a vehicle's odometer and appends the matching
// ledger entry in one transaction. The odometer only moves forward; a
// concurrent update between read and write surfaces as CONFLICT and leaves
// no partial state behind.
func (s *service) RecordMileage(ctx context.Context, input MileageInput) (MileageDTO, error) {
	if input.KilometrajeNuevo <= 0 {
		return MileageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "kilometraje_nuevo must be a positive integer")
	}

	var out MileageDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		vehiculo, err := repo.FindByID(ctx, input.IDVehiculo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "vehiculo not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vehiculo")
		}

		anterior := vehiculo.Kilometraje
		if input.KilometrajeNuevo <= anterior {
			return pkgerrors.New(pkgerrors.CodeValidation, "kilometraje_nuevo must be greater than the current reading").WithDetails(map[string]any{
				"kilometraje_actual": anterior,
			})
		}

		affected, err := repo.UpdateKilometrajeGuarded(ctx, vehiculo.ID, anterior, input.KilometrajeNuevo)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating kilometraje")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "the odometer was updated by another operation, retry with a fresh reading")
		}

		fecha := s.now().In(s.loc)
		entry := &models.HistorialKilometraje{
			IDVehiculo:          vehiculo.ID,
			KilometrajeAnterior: anterior,
			KilometrajeNuevo:    input.KilometrajeNuevo,
			Recorrido:           input.KilometrajeNuevo - anterior,
			Fecha:               fecha,
		}
		if err := repo.AppendHistorial(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "appending mileage history")
		}

		out = MileageDTO{
			IDVehiculo:          vehiculo.ID,
			KilometrajeAnterior: anterior,
			KilometrajeNuevo:    input.KilometrajeNuevo,
			Recorrido:           entry.Recorrido,
			FechaActual:         fecha.Format(dateTimeLayout),
		}
		return nil
	})
	if err != nil {
		return MileageDTO{}, err
	}
	return out, nil
}

// History returns the mileage ledger for a vehicle, newest first.
func (s *service) History(ctx context.Context, idVehiculo int64) ([]HistorialDTO, error) {
	if _, err := s.repo.FindByID(ctx, idVehiculo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "vehiculo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vehiculo")
	}

	records, err := s.repo.ListHistorial(ctx, idVehiculo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing mileage history")
	}
	dtos := make([]HistorialDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, historialToDTO(&records[i], s.loc))
	}
	return dtos, nil
}
