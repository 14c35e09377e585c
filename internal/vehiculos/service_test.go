package vehiculos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/internal/asignaciones"
	"github.com/sistemaflotilla/flotilla-backend/internal/mantenimientos"
	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
)

var fixedNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Rol{},
		&models.Empleado{},
		&models.Vehiculo{},
		&models.VehiculoAsignado{},
		&models.HistorialKilometraje{},
		&models.Taller{},
		&models.Mantenimiento{},
	))
	require.NoError(t, conn.Create(&models.Rol{Nombre: enums.RolPiloto}).Error)
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:       NewRepository(conn),
		TX:         gormTxRunner{db: conn},
		Asignacion: asignaciones.NewRepository(conn),
		Proyeccion: mantenimientos.NewRepository(conn),
		Location:   time.UTC,
		Now:        func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return svc
}

func validInput() VehiculoInput {
	return VehiculoInput{
		Placa:       "P123ABC",
		Tipo:        "Pickup",
		Marca:       "Toyota",
		Linea:       "Hilux",
		Modelo:      2023,
		Chasis:      "CH-998877",
		Color:       "Blanco",
		Motor:       2400,
		Combustible: "Diesel",
		Transmision: "Mecanica",
		Kilometraje: 50000,
	}
}

func seedPiloto(t *testing.T, conn *gorm.DB) models.Empleado {
	t.Helper()
	empleado := models.Empleado{
		Nombres:           "Ana",
		Apellidos:         "Ruiz",
		DPI:               "9876543210987",
		Telefono:          "55510000",
		FechaNacimiento:   time.Date(1992, 3, 4, 0, 0, 0, 0, time.UTC),
		FechaContratacion: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		IDRol:             1,
		Estatus:           enums.EstatusActivo,
	}
	require.NoError(t, conn.Create(&empleado).Error)
	return empleado
}

func TestCreateVehiculoDerivesAsientos(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	dto, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotZero(t, dto.ID)
	assert.Equal(t, 5, dto.Asientos)
	assert.Equal(t, "Activo", dto.Estatus)
	assert.Equal(t, int64(50000), dto.Kilometraje)

	input := validInput()
	input.Placa = "M456XYZ"
	input.Tipo = "Motocicleta"
	input.Motor = 1200
	moto, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 2, moto.Asientos)
}

func TestCreateVehiculoRejectsPlacaPrefixMismatch(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	input := validInput()
	input.Tipo = "Camion"
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)

	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Contains(t, fmt.Sprint(typed.Details()), "placa")
}

func TestCreateVehiculoRejectsFutureModelo(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	input := validInput()
	input.Modelo = 2027
	_, err := svc.Create(context.Background(), input)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	input.Modelo = 2026
	_, err = svc.Create(context.Background(), input)
	assert.NoError(t, err)
}

func TestCreateVehiculoAggregatesViolations(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	input := validInput()
	input.Modelo = 1999
	input.Motor = 500
	input.Kilometraje = -5
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)

	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	violations, ok := details["errores"].([]string)
	require.True(t, ok)
	assert.Len(t, violations, 3)
}

func TestCreateVehiculoDuplicatePlaca(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	dup := validInput()
	dup.Chasis = "CH-000111"
	_, err = svc.Create(ctx, dup)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestUpdateVehiculoPreservesOdometer(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	input := validInput()
	input.Color = "Gris"
	input.Kilometraje = 1
	updated, err := svc.Update(ctx, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Gris", updated.Color)
	assert.Equal(t, int64(50000), updated.Kilometraje)
}

func TestGetVehiculoEnrichment(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	piloto := seedPiloto(t, conn)
	require.NoError(t, conn.Create(&models.VehiculoAsignado{
		IDEmpleado:      piloto.ID,
		IDVehiculo:      created.ID,
		FechaAsignacion: fixedNow,
	}).Error)

	proximo := int64(57000)
	frecuencia := int64(7000)
	require.NoError(t, conn.Create(&models.Mantenimiento{
		IDVehiculo:                 created.ID,
		TipoMantenimiento:          enums.MantenimientoServicioMotor,
		Fecha:                      fixedNow.AddDate(0, -1, 0),
		Kilometraje:                50000,
		TituloMantenimiento:        "Cambio de aceite",
		FrecuenciaServicio:         &frecuencia,
		KilometrajeProximoServicio: &proximo,
	}).Error)

	dto, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz", dto.Piloto)
	require.NotNil(t, dto.ProximoServicio)
	assert.Equal(t, int64(57000), *dto.ProximoServicio)
	assert.Equal(t, string(enums.ServicioAlDia), dto.EstadoServicio)
}

func TestGetVehiculoNotFound(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	_, err := svc.Get(context.Background(), 999)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteVehiculoBlockedByAssignment(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	piloto := seedPiloto(t, conn)
	require.NoError(t, conn.Create(&models.VehiculoAsignado{
		IDEmpleado:      piloto.ID,
		IDVehiculo:      created.ID,
		FechaAsignacion: fixedNow,
	}).Error)

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)

	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
	assert.Contains(t, typed.Message(), "Ana Ruiz")

	_, err = svc.Get(ctx, created.ID)
	assert.NoError(t, err)
}

func TestDeleteVehiculo(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListVehiculosIncludesPiloto(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	assigned, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	free := validInput()
	free.Placa = "P777QRS"
	free.Chasis = "CH-777000"
	_, err = svc.Create(ctx, free)
	require.NoError(t, err)

	piloto := seedPiloto(t, conn)
	require.NoError(t, conn.Create(&models.VehiculoAsignado{
		IDEmpleado:      piloto.ID,
		IDVehiculo:      assigned.ID,
		FechaAsignacion: fixedNow,
	}).Error)

	dtos, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, dtos, 2)

	byPlaca := map[string]VehiculoDTO{}
	for _, dto := range dtos {
		byPlaca[dto.Placa] = dto
	}
	assert.Equal(t, "Ana Ruiz", byPlaca["P123ABC"].Piloto)
	assert.Empty(t, byPlaca["P777QRS"].Piloto)
}
