package empleados

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

	"github.com/sistemaflotilla/flotilla-backend/internal/asignaciones"
	"github.com/sistemaflotilla/flotilla-backend/pkg/db/models"
	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
	pkgerrors "github.com/sistemaflotilla/flotilla-backend/pkg/errors"
)

var fixedNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

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
	))
	require.NoError(t, conn.Create(&models.Rol{Nombre: enums.RolPiloto}).Error)
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:       NewRepository(conn),
		Asignacion: asignaciones.NewRepository(conn),
		Location:   time.UTC,
		Now:        func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return svc
}

func validInput() EmpleadoInput {
	return EmpleadoInput{
		Nombres:           "Carlos",
		Apellidos:         "Lopez",
		DPI:               "1234567890123",
		Telefono:          "55512345",
		Direccion:         "Zona 1, Ciudad",
		Email:             "carlos@flota.gt",
		FechaNacimiento:   "1990-05-10",
		FechaContratacion: "2024-01-15",
		Salario:           decimal.NewFromInt(5000),
		IDRol:             1,
	}
}

func TestCreateEmpleado(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	dto, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotZero(t, dto.ID)
	assert.Equal(t, "1234567890123", dto.DPI)
	assert.Equal(t, "Piloto", dto.Rol)
	assert.Equal(t, "Activo", dto.Estatus)
}

func TestCreateEmpleadoRejectsShortDPI(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	input := validInput()
	input.DPI = "123456789012"
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)

	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Contains(t, fmt.Sprint(typed.Details()), "dpi")
}

func TestCreateEmpleadoAggregatesViolations(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	input := validInput()
	input.DPI = "12"
	input.Telefono = "123"
	input.Salario = decimal.NewFromInt(100)
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

func TestCreateEmpleadoRejectsMinor(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	input := validInput()
	input.FechaNacimiento = "2010-01-01"
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateEmpleadoRejectsFutureHireDate(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	input := validInput()
	input.FechaContratacion = "2026-09-01"
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateEmpleadoRejectsUnknownRol(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	input := validInput()
	input.IDRol = 99
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateEmpleadoDuplicateDPI(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	dup := validInput()
	dup.Email = "otro@flota.gt"
	_, err = svc.Create(ctx, dup)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestUpdateEmpleadoRevalidates(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	input := validInput()
	input.Telefono = "99998888"
	updated, err := svc.Update(ctx, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "99998888", updated.Telefono)

	input.Telefono = "12"
	_, err = svc.Update(ctx, created.ID, input)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDeleteEmpleadoBlockedByAssignment(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	vehiculo := models.Vehiculo{Placa: "P123ABC", Tipo: enums.TipoSedan, Marca: "Toyota", Linea: "Corolla", Modelo: 2022, Asientos: 5, Motor: 1800}
	require.NoError(t, conn.Create(&vehiculo).Error)
	require.NoError(t, conn.Create(&models.VehiculoAsignado{
		IDEmpleado:      created.ID,
		IDVehiculo:      vehiculo.ID,
		FechaAsignacion: fixedNow,
	}).Error)

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)

	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
	assert.Contains(t, fmt.Sprint(typed.Details()), "id_vehiculo")

	// still present
	_, err = svc.Get(ctx, created.ID)
	assert.NoError(t, err)
}

func TestDeleteEmpleado(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	err = svc.Delete(ctx, created.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
