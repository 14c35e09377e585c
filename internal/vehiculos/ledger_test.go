package vehiculos

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
)

func TestRecordMileage(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	dto, err := svc.RecordMileage(ctx, MileageInput{IDVehiculo: created.ID, KilometrajeNuevo: 50750})
	require.NoError(t, err)
	assert.Equal(t, int64(50000), dto.KilometrajeAnterior)
	assert.Equal(t, int64(50750), dto.KilometrajeNuevo)
	assert.Equal(t, int64(750), dto.Recorrido)
	assert.Equal(t, "2026-08-29 12:00:00", dto.FechaActual)

	refreshed, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50750), refreshed.Kilometraje)
}

func TestRecordMileageRejectsNonIncrease(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	for _, nuevo := range []int64{50000, 49999} {
		_, err := svc.RecordMileage(ctx, MileageInput{IDVehiculo: created.ID, KilometrajeNuevo: nuevo})
		require.Error(t, err)

		var typed *pkgerrors.Error
		require.ErrorAs(t, err, &typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		assert.Contains(t, fmt.Sprint(typed.Details()), "kilometraje_actual")
	}

	// no ledger rows from rejected submissions
	history, err := svc.History(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRecordMileageRejectsNonPositive(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	for _, nuevo := range []int64{0, -100} {
		_, err := svc.RecordMileage(context.Background(), MileageInput{IDVehiculo: 1, KilometrajeNuevo: nuevo})
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	}
}

func TestRecordMileageUnknownVehiculo(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	_, err := svc.RecordMileage(context.Background(), MileageInput{IDVehiculo: 404, KilometrajeNuevo: 100})
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestHistoryNewestFirst(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	for _, nuevo := range []int64{50100, 50400, 51000} {
		_, err := svc.RecordMileage(ctx, MileageInput{IDVehiculo: created.ID, KilometrajeNuevo: nuevo})
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, int64(51000), history[0].KilometrajeNuevo)
	assert.Equal(t, int64(600), history[0].Recorrido)
	assert.Equal(t, int64(50400), history[1].KilometrajeNuevo)
	assert.Equal(t, int64(50100), history[2].KilometrajeNuevo)
	assert.Equal(t, int64(100), history[2].Recorrido)
}

func TestHistoryUnknownVehiculo(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	_, err := svc.History(context.Background(), 404)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
