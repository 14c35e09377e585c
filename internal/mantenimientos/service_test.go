package mantenimientos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/internal/talleres"
	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
)

var fixedNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

type vehiculoFinder struct {
	db *gorm.DB
}

func (f vehiculoFinder) FindByID(ctx context.Context, id int64) (*models.Vehiculo, error) {
	var record models.Vehiculo
	if err := f.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Vehiculo{},
		&models.Taller{},
		&models.Mantenimiento{},
	))
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(conn),
		Vehiculo: vehiculoFinder{db: conn},
		Taller:   talleres.NewRepository(conn),
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return svc
}

func seedVehiculo(t *testing.T, conn *gorm.DB, kilometraje int64) models.Vehiculo {
	t.Helper()
	vehiculo := models.Vehiculo{
		Placa:       "P123ABC",
		Tipo:        enums.TipoPickup,
		Marca:       "Toyota",
		Linea:       "Hilux",
		Modelo:      2023,
		Asientos:    5,
		Motor:       2400,
		Estatus:     enums.EstatusActivo,
		Kilometraje: kilometraje,
	}
	require.NoError(t, conn.Create(&vehiculo).Error)
	return vehiculo
}

func validInput(idVehiculo int64) MantenimientoInput {
	return MantenimientoInput{
		IDVehiculo:          idVehiculo,
		TipoMantenimiento:   "Servicio de Motor",
		Fecha:               "2026-08-15",
		Kilometraje:         50000,
		TituloMantenimiento: "Cambio de aceite y filtros",
		Costo:               decimal.NewFromInt(850),
	}
}

func TestCreateEngineServiceLocksFrequency(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	vehiculo := seedVehiculo(t, conn, 50000)

	input := validInput(vehiculo.ID)
	submitted := int64(5000)
	input.FrecuenciaServicio = &submitted

	dto, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, dto.FrecuenciaServicio)
	require.NotNil(t, dto.KilometrajeProximoServicio)
	assert.Equal(t, int64(7000), *dto.FrecuenciaServicio)
	assert.Equal(t, int64(57000), *dto.KilometrajeProximoServicio)
}

func TestCreatePreventivoKeepsSubmittedFrequency(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	vehiculo := seedVehiculo(t, conn, 20000)

	input := validInput(vehiculo.ID)
	input.TipoMantenimiento = "Preventivo"
	input.Kilometraje = 20000
	submitted := int64(10000)
	input.FrecuenciaServicio = &submitted

	dto, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, dto.KilometrajeProximoServicio)
	assert.Equal(t, int64(30000), *dto.KilometrajeProximoServicio)
}

func TestCreateCorrectivoWithoutFrequencyHasNoProjection(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	vehiculo := seedVehiculo(t, conn, 20000)

	input := validInput(vehiculo.ID)
	input.TipoMantenimiento = "Correctivo"

	dto, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Nil(t, dto.FrecuenciaServicio)
	assert.Nil(t, dto.KilometrajeProximoServicio)
	assert.Empty(t, dto.EstadoServicio)
}

func TestCreateRejectsFechaOutsideWindow(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	vehiculo := seedVehiculo(t, conn, 50000)

	input := validInput(vehiculo.ID)
	input.Fecha = "2026-12-15"
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	input.Fecha = "2026-05-30"
	_, err = svc.Create(context.Background(), input)
	assert.NoError(t, err)
}

func TestCreateUnknownVehiculo(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	_, err := svc.Create(context.Background(), validInput(404))
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreateUnknownTaller(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	vehiculo := seedVehiculo(t, conn, 50000)

	input := validInput(vehiculo.ID)
	idTaller := int64(404)
	input.IDTaller = &idTaller
	_, err := svc.Create(context.Background(), input)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestProjectionFrozenAgainstLaterOdometer(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	vehiculo := seedVehiculo(t, conn, 50000)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(vehiculo.ID))
	require.NoError(t, err)
	require.NotNil(t, created.KilometrajeProximoServicio)
	assert.Equal(t, int64(57000), *created.KilometrajeProximoServicio)
	assert.Equal(t, string(enums.ServicioAlDia), created.EstadoServicio)

	// the vehicle keeps rolling; the stored projection must not move, only
	// the derived bucket does
	require.NoError(t, conn.Model(&models.Vehiculo{}).Where("id = ?", vehiculo.ID).Update("kilometraje", 56500).Error)

	refreshed, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, refreshed.KilometrajeProximoServicio)
	assert.Equal(t, int64(57000), *refreshed.KilometrajeProximoServicio)
	assert.Equal(t, string(enums.ServicioProximo), refreshed.EstadoServicio)

	require.NoError(t, conn.Model(&models.Vehiculo{}).Where("id = ?", vehiculo.ID).Update("kilometraje", 57500).Error)
	refreshed, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(enums.ServicioVencido), refreshed.EstadoServicio)
}

func TestUpdateRecomputesProjection(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	vehiculo := seedVehiculo(t, conn, 50000)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(vehiculo.ID))
	require.NoError(t, err)

	input := validInput(vehiculo.ID)
	input.Kilometraje = 51000
	updated, err := svc.Update(ctx, created.ID, input)
	require.NoError(t, err)
	require.NotNil(t, updated.KilometrajeProximoServicio)
	assert.Equal(t, int64(58000), *updated.KilometrajeProximoServicio)
}

func TestListByVehiculo(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	vehiculo := seedVehiculo(t, conn, 50000)
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput(vehiculo.ID))
	require.NoError(t, err)

	entries, err := svc.ListByVehiculo(ctx, vehiculo.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Cambio de aceite y filtros", entries[0].TituloMantenimiento)

	_, err = svc.ListByVehiculo(ctx, 404)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteMantenimiento(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	vehiculo := seedVehiculo(t, conn, 50000)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(vehiculo.ID))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
