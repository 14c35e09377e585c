package validation

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sistemaflotilla/flotilla-backend/pkg/enums"
)

// Numeric bounds for employee and vehicle fields. Range checks are
// inclusive unless noted otherwise.
var (
	SalarioMin = decimal.NewFromInt(3500)
	SalarioMax = decimal.NewFromInt(75000)
	MontoMax   = decimal.NewFromInt(100000)
)

const (
	EdadMinima = 18
	ModeloMin  = 2000 // exclusive
	MotorMin   = 1000 // exclusive
	MotorMax   = 6000

	// Trip bounds, both exclusive on each end.
	DistanciaMax = 1000
	TiempoMax    = 24.0
)

var (
	dpiPattern      = regexp.MustCompile(`^\d{13}$`)
	telefonoPattern = regexp.MustCompile(`^\d{8}$`)
	correoPattern   = regexp.MustCompile(`(?i)^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
	placaPattern    = regexp.MustCompile(`^[MCP]\d{3}[A-Z]{3}$`)
)

func ValidDPI(dpi string) bool { return dpiPattern.MatchString(dpi) }

func ValidTelefono(telefono string) bool { return telefonoPattern.MatchString(telefono) }

func ValidCorreo(correo string) bool { return correoPattern.MatchString(correo) }

// ValidPlacaFormat checks shape only; the prefix letter must still match
// the vehicle type via PlacaMatchesTipo.
func ValidPlacaFormat(placa string) bool { return placaPattern.MatchString(placa) }

func PlacaMatchesTipo(tipo enums.TipoVehiculo, placa string) bool {
	if !ValidPlacaFormat(placa) {
		return false
	}
	return placa[0] == tipo.PlacaPrefix()
}

// EsMayorDeEdad reports whether someone born on nacimiento has turned
// EdadMinima as of ref. Both are compared by calendar date.
func EsMayorDeEdad(nacimiento, ref time.Time) bool {
	years := ref.Year() - nacimiento.Year()
	anniversary := nacimiento.AddDate(years, 0, 0)
	if anniversary.After(ref) {
		years--
	}
	return years >= EdadMinima
}

func SalarioEnRango(salario decimal.Decimal) bool {
	return salario.GreaterThanOrEqual(SalarioMin) && salario.LessThanOrEqual(SalarioMax)
}

func MontoEnRango(monto decimal.Decimal) bool {
	return monto.GreaterThan(decimal.Zero) && monto.LessThanOrEqual(MontoMax)
}

func ModeloEnRango(modelo, anioActual int) bool {
	return modelo > ModeloMin && modelo <= anioActual
}

func MotorEnRango(motor int) bool { return motor > MotorMin && motor <= MotorMax }

func DistanciaEnRango(distancia int) bool { return distancia > 0 && distancia < DistanciaMax }

func TiempoEnRango(tiempo float64) bool { return tiempo > 0 && tiempo < TiempoMax }
