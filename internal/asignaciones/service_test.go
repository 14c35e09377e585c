package asignaciones

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sistemaflotilla/flotilla-backend/internal/empleados"
	"github.com/sistemaflotilla/flotilla-backend/internal/vehiculos"
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
	))
	require.NoError(t, conn.Create(&models.Rol{Nombre: enums.RolPiloto}).Error)
	require.NoError(t, conn.Create(&models.Rol{Nombre: enums.RolMecanico}).Error)
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(conn),
		TX:       gormTxRunner{db: conn},
		Empleado: empleados.NewRepository(conn),
		Vehiculo: vehiculos.NewRepository(conn),
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return svc
}

func seedEmpleado(t *testing.T, conn *gorm.DB, dpi string, idRol int64, estatus enums.Estatus) models.Empleado {
	t.Helper()
	empleado := models.Empleado{
		Nombres:           "Luis",
		Apellidos:         "Paz",
		DPI:               dpi,
		Telefono:          "55512345",
		FechaNacimiento:   time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		FechaContratacion: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		IDRol:             idRol,
		Estatus:           estatus,
	}
	require.NoError(t, conn.Create(&empleado).Error)
	return empleado
}

func seedVehiculo(t *testing.T, conn *gorm.DB, placa string, estatus enums.Estatus) models.Vehiculo {
	t.Helper()
	vehiculo := models.Vehiculo{
		Placa:    placa,
		Tipo:     enums.TipoPickup,
		Marca:    "Toyota",
		Linea:    "Hilux",
		Modelo:   2023,
		Asientos: 5,
		Motor:    2400,
		Estatus:  estatus,
	}
	require.NoError(t, conn.Create(&vehiculo).Error)
	return vehiculo
}

func TestCreateAsignacion(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)

	piloto := seedEmpleado(t, conn, "1000000000001", 1, enums.EstatusActivo)
	vehiculo := seedVehiculo(t, conn, "P123ABC", enums.EstatusActivo)

	obs := "entrega en zona 10"
	dto, err := svc.Create(context.Background(), AsignacionInput{
		IDEmpleado:    piloto.ID,
		IDVehiculo:    vehiculo.ID,
		Observaciones: &obs,
	})
	require.NoError(t, err)
	assert.NotZero(t, dto.ID)
	assert.Equal(t, "Luis Paz", dto.Piloto)
	assert.Equal(t, "P123ABC", dto.Placa)
	assert.Equal(t, "2026-08-29 12:00:00", dto.FechaAsignacion)
	require.NotNil(t, dto.Observaciones)
	assert.Equal(t, obs, *dto.Observaciones)
}

func TestCreateAsignacionRejectsNonPiloto(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)

	mecanico := seedEmpleado(t, conn, "1000000000002", 2, enums.EstatusActivo)
	vehiculo := seedVehiculo(t, conn, "P123ABC", enums.EstatusActivo)

	_, err := svc.Create(context.Background(), AsignacionInput{IDEmpleado: mecanico.ID, IDVehiculo: vehiculo.ID})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Contains(t, pkgerrors.As(err).Message(), "Piloto")
}

func TestCreateAsignacionRejectsInactiveEmpleado(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)

	piloto := seedEmpleado(t, conn, "1000000000003", 1, enums.EstatusInactivo)
	vehiculo := seedVehiculo(t, conn, "P123ABC", enums.EstatusActivo)

	_, err := svc.Create(context.Background(), AsignacionInput{IDEmpleado: piloto.ID, IDVehiculo: vehiculo.ID})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateAsignacionUnknownSides(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	vehiculo := seedVehiculo(t, conn, "P123ABC", enums.EstatusActivo)
	_, err := svc.Create(ctx, AsignacionInput{IDEmpleado: 404, IDVehiculo: vehiculo.ID})
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	piloto := seedEmpleado(t, conn, "1000000000004", 1, enums.EstatusActivo)
	_, err = svc.Create(ctx, AsignacionInput{IDEmpleado: piloto.ID, IDVehiculo: 404})
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestAsignacionExclusivity(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	pilotoA := seedEmpleado(t, conn, "1000000000005", 1, enums.EstatusActivo)
	pilotoB := seedEmpleado(t, conn, "1000000000006", 1, enums.EstatusActivo)
	vehiculoA := seedVehiculo(t, conn, "P111AAA", enums.EstatusActivo)
	vehiculoB := seedVehiculo(t, conn, "P222BBB", enums.EstatusActivo)

	_, err := svc.Create(ctx, AsignacionInput{IDEmpleado: pilotoA.ID, IDVehiculo: vehiculoA.ID})
	require.NoError(t, err)

	// same pilot, second vehicle
	_, err = svc.Create(ctx, AsignacionInput{IDEmpleado: pilotoA.ID, IDVehiculo: vehiculoB.ID})
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	// same vehicle, second pilot
	_, err = svc.Create(ctx, AsignacionInput{IDEmpleado: pilotoB.ID, IDVehiculo: vehiculoA.ID})
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestRemoveAsignacionFreesBothSides(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	piloto := seedEmpleado(t, conn, "1000000000007", 1, enums.EstatusActivo)
	vehiculo := seedVehiculo(t, conn, "P123ABC", enums.EstatusActivo)

	created, err := svc.Create(ctx, AsignacionInput{IDEmpleado: piloto.ID, IDVehiculo: vehiculo.ID})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, created.ID))

	// both sides can be paired again
	_, err = svc.Create(ctx, AsignacionInput{IDEmpleado: piloto.ID, IDVehiculo: vehiculo.ID})
	assert.NoError(t, err)
}

func TestRemoveAsignacionNotFound(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	err := svc.Remove(context.Background(), 404)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListAvailableExcludesAssignedAndInactive(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	assignedPiloto := seedEmpleado(t, conn, "1000000000008", 1, enums.EstatusActivo)
	freePiloto := seedEmpleado(t, conn, "1000000000009", 1, enums.EstatusActivo)
	seedEmpleado(t, conn, "1000000000010", 1, enums.EstatusInactivo)
	seedEmpleado(t, conn, "1000000000011", 2, enums.EstatusActivo)

	assignedVehiculo := seedVehiculo(t, conn, "P111AAA", enums.EstatusActivo)
	freeVehiculo := seedVehiculo(t, conn, "P222BBB", enums.EstatusActivo)
	seedVehiculo(t, conn, "P333CCC", enums.EstatusInactivo)

	_, err := svc.Create(ctx, AsignacionInput{IDEmpleado: assignedPiloto.ID, IDVehiculo: assignedVehiculo.ID})
	require.NoError(t, err)

	disponibles, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, disponibles.Pilotos, 1)
	assert.Equal(t, freePiloto.ID, disponibles.Pilotos[0].ID)
	require.Len(t, disponibles.Vehiculos, 1)
	assert.Equal(t, freeVehiculo.Placa, disponibles.Vehiculos[0].Placa)
}

func TestListActiveAssignments(t *testing.T) {
	conn := setupTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	piloto := seedEmpleado(t, conn, "1000000000012", 1, enums.EstatusActivo)
	vehiculo := seedVehiculo(t, conn, "P123ABC", enums.EstatusActivo)

	_, err := svc.Create(ctx, AsignacionInput{IDEmpleado: piloto.ID, IDVehiculo: vehiculo.ID})
	require.NoError(t, err)

	asignados, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, asignados, 1)
	assert.Equal(t, "Luis Paz", asignados[0].Piloto)
	assert.Equal(t, "P123ABC", asignados[0].Placa)
	assert.Equal(t, "Hilux", asignados[0].Linea)
}
