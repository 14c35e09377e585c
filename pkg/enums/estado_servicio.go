package enums

// EstadoServicio buckets the distance remaining until a vehicle's projected
// next service.
type EstadoServicio string

const (
	ServicioVencido EstadoServicio = "vencido"
	ServicioProximo EstadoServicio = "proximo"
	ServicioAlDia   EstadoServicio = "al_dia"
)

// String implements fmt.Stringer.
func (e EstadoServicio) String() string {
	return string(e)
}
