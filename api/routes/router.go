package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sistemaflotilla/flotilla-backend/api/controllers"
	"github.com/sistemaflotilla/flotilla-backend/api/middleware"
	"github.com/sistemaflotilla/flotilla-backend/internal/asignaciones"
	"github.com/sistemaflotilla/flotilla-backend/internal/auth"
	"github.com/sistemaflotilla/flotilla-backend/internal/empleados"
	"github.com/sistemaflotilla/flotilla-backend/internal/mantenimientos"
	"github.com/sistemaflotilla/flotilla-backend/internal/polizas"
	"github.com/sistemaflotilla/flotilla-backend/internal/recorridos"
	"github.com/sistemaflotilla/flotilla-backend/internal/talleres"
	"github.com/sistemaflotilla/flotilla-backend/internal/vehiculos"
	"github.com/sistemaflotilla/flotilla-backend/pkg/auth/session"
	"github.com/sistemaflotilla/flotilla-backend/pkg/config"
	"github.com/sistemaflotilla/flotilla-backend/pkg/db"
	"github.com/sistemaflotilla/flotilla-backend/pkg/logger"
	"github.com/sistemaflotilla/flotilla-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP db.Pinger,
	sessions session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	registry *prometheus.Registry,
	authService auth.Service,
	empleadoService empleados.Service,
	vehiculoService vehiculos.Service,
	asignacionService asignaciones.Service,
	mantenimientoService mantenimientos.Service,
	tallerService talleres.Service,
	polizaService polizas.Service,
	recorridoService recorridos.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.Auth(cfg.JWT, sessions, logg)).Post("/logout", controllers.AuthLogout(authService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Route("/empleados", func(r chi.Router) {
			r.Get("/", controllers.EmpleadoList(empleadoService, logg))
			r.Post("/", controllers.EmpleadoCreate(empleadoService, logg))
			r.Get("/{id}", controllers.EmpleadoDetail(empleadoService, logg))
			r.Put("/{id}", controllers.EmpleadoUpdate(empleadoService, logg))
			r.Delete("/{id}", controllers.EmpleadoDelete(empleadoService, logg))
		})

		r.Route("/vehiculos", func(r chi.Router) {
			r.Get("/", controllers.VehiculoList(vehiculoService, logg))
			r.Post("/", controllers.VehiculoCreate(vehiculoService, logg))
			r.Get("/activos", controllers.VehiculoListActive(vehiculoService, logg))
			r.Post("/kilometraje", controllers.VehiculoRecordMileage(vehiculoService, logg))
			r.Get("/{id}", controllers.VehiculoDetail(vehiculoService, logg))
			r.Put("/{id}", controllers.VehiculoUpdate(vehiculoService, logg))
			r.Delete("/{id}", controllers.VehiculoDelete(vehiculoService, logg))
			r.Get("/{id}/kilometraje", controllers.VehiculoMileageHistory(vehiculoService, logg))
		})

		r.Route("/asignacion", func(r chi.Router) {
			r.Post("/", controllers.AsignacionCreate(asignacionService, logg))
			r.Get("/disponibles", controllers.AsignacionDisponibles(asignacionService, logg))
			r.Get("/asignados", controllers.AsignacionAsignados(asignacionService, logg))
			r.Delete("/{id}", controllers.AsignacionRemove(asignacionService, logg))
		})

		r.Route("/mantenimientos", func(r chi.Router) {
			r.Get("/", controllers.MantenimientoList(mantenimientoService, logg))
			r.Post("/", controllers.MantenimientoCreate(mantenimientoService, logg))
			r.Get("/vehiculo/{id}", controllers.MantenimientoListByVehiculo(mantenimientoService, logg))
			r.Get("/{id}", controllers.MantenimientoDetail(mantenimientoService, logg))
			r.Put("/{id}", controllers.MantenimientoUpdate(mantenimientoService, logg))
			r.Delete("/{id}", controllers.MantenimientoDelete(mantenimientoService, logg))
		})

		r.Route("/talleres", func(r chi.Router) {
			r.Get("/", controllers.TallerList(tallerService, logg))
			r.Get("/{id}", controllers.TallerDetail(tallerService, logg))
		})

		r.Route("/polizas", func(r chi.Router) {
			r.Get("/", controllers.PolizaList(polizaService, logg))
			r.Post("/", controllers.PolizaCreate(polizaService, logg))
			r.Get("/vehiculos-disponibles", controllers.PolizaVehiculosDisponibles(polizaService, logg))
			r.Get("/reporte", controllers.PolizaReporte(polizaService, logg))
			r.Get("/{id}", controllers.PolizaDetail(polizaService, logg))
			r.Put("/{id}", controllers.PolizaUpdate(polizaService, logg))
			r.Delete("/{id}", controllers.PolizaDelete(polizaService, logg))
		})

		r.Route("/recorridos", func(r chi.Router) {
			r.Get("/", controllers.RecorridoList(recorridoService, logg))
			r.Post("/", controllers.RecorridoCreate(recorridoService, logg))
			r.Get("/dashboard/summary", controllers.RecorridoDashboard(recorridoService, logg))
			r.Get("/all-csv", controllers.RecorridoExport(recorridoService, logg))
			r.Get("/{id}", controllers.RecorridoDetail(recorridoService, logg))
			r.Put("/{id}", controllers.RecorridoUpdate(recorridoService, logg))
			r.Delete("/{id}", controllers.RecorridoDelete(recorridoService, logg))
		})
	})

	return r
}
