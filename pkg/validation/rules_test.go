package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
)

func TestValidDPI(t *testing.T) {
	assert.True(t, ValidDPI("1234567890123"))
	assert.False(t, ValidDPI("123456789012"), "twelve digits")
	assert.False(t, ValidDPI("12345678901234"), "fourteen digits")
	assert.False(t, ValidDPI("123456789012a"))
	assert.False(t, ValidDPI(""))
}

func TestValidTelefono(t *testing.T) {
	assert.True(t, ValidTelefono("55512345"))
	assert.False(t, ValidTelefono("5551234"))
	assert.False(t, ValidTelefono("555123456"))
	assert.False(t, ValidTelefono("5551-234"))
}

func TestValidCorreo(t *testing.T) {
	assert.True(t, ValidCorreo("piloto@flota.gt"))
	assert.True(t, ValidCorreo("PILOTO@FLOTA.COM"))
	assert.False(t, ValidCorreo("piloto@flota.c"), "single-char TLD")
	assert.False(t, ValidCorreo("piloto@flota"))
	assert.False(t, ValidCorreo("pi loto@flota.gt"))
	assert.False(t, ValidCorreo("@flota.gt"))
}

func TestPlacaMatchesTipo(t *testing.T) {
	assert.True(t, PlacaMatchesTipo(enums.TipoMotocicleta, "M123ABC"))
	assert.True(t, PlacaMatchesTipo(enums.TipoCamion, "C456XYZ"))
	assert.True(t, PlacaMatchesTipo(enums.TipoPanel, "C456XYZ"))
	assert.True(t, PlacaMatchesTipo(enums.TipoSedan, "P789DEF"))
	assert.True(t, PlacaMatchesTipo(enums.TipoPickup, "P789DEF"))

	assert.False(t, PlacaMatchesTipo(enums.TipoSedan, "M123ABC"), "wrong prefix for type")
	assert.False(t, PlacaMatchesTipo(enums.TipoSedan, "P789DEf"), "lowercase letter")
	assert.False(t, PlacaMatchesTipo(enums.TipoSedan, "P78DEF"))
	assert.False(t, PlacaMatchesTipo(enums.TipoSedan, "P7890DEF"))
}

func TestEsMayorDeEdad(t *testing.T) {
	ref := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	assert.True(t, EsMayorDeEdad(time.Date(2008, 8, 29, 0, 0, 0, 0, time.UTC), ref), "18th birthday today")
	assert.False(t, EsMayorDeEdad(time.Date(2008, 8, 30, 0, 0, 0, 0, time.UTC), ref), "18th birthday tomorrow")
	assert.True(t, EsMayorDeEdad(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), ref))
}

func TestSalarioEnRango(t *testing.T) {
	assert.True(t, SalarioEnRango(decimal.NewFromInt(3500)))
	assert.True(t, SalarioEnRango(decimal.NewFromInt(75000)))
	assert.False(t, SalarioEnRango(decimal.NewFromFloat(3499.99)))
	assert.False(t, SalarioEnRango(decimal.NewFromFloat(75000.01)))
}

func TestMontoEnRango(t *testing.T) {
	assert.True(t, MontoEnRango(decimal.NewFromFloat(0.01)))
	assert.True(t, MontoEnRango(decimal.NewFromInt(100000)))
	assert.False(t, MontoEnRango(decimal.Zero))
	assert.False(t, MontoEnRango(decimal.NewFromInt(100001)))
}

func TestVehiculoBounds(t *testing.T) {
	assert.False(t, ModeloEnRango(2000, 2026), "lower bound exclusive")
	assert.True(t, ModeloEnRango(2001, 2026))
	assert.True(t, ModeloEnRango(2026, 2026))
	assert.False(t, ModeloEnRango(2027, 2026))

	assert.False(t, MotorEnRango(1000), "lower bound exclusive")
	assert.True(t, MotorEnRango(1001))
	assert.True(t, MotorEnRango(6000))
	assert.False(t, MotorEnRango(6001))
}

func TestRecorridoBounds(t *testing.T) {
	assert.True(t, DistanciaEnRango(999))
	assert.False(t, DistanciaEnRango(1000), "upper bound exclusive")
	assert.False(t, DistanciaEnRango(0))

	assert.True(t, TiempoEnRango(23.9))
	assert.False(t, TiempoEnRango(24), "upper bound exclusive")
	assert.False(t, TiempoEnRango(0))
}
