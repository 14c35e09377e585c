package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sistemaflotilla/flotilla-backend/api/routes"
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
	"github.com/sistemaflotilla/flotilla-backend/pkg/migrate"
	"github.com/sistemaflotilla/flotilla-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	loc := cfg.App.Location()

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	gdb := dbClient.DB()
	empleadoRepo := empleados.NewRepository(gdb)
	vehiculoRepo := vehiculos.NewRepository(gdb)
	asignacionRepo := asignaciones.NewRepository(gdb)
	mantenimientoRepo := mantenimientos.NewRepository(gdb)
	tallerRepo := talleres.NewRepository(gdb)
	polizaRepo := polizas.NewRepository(gdb)
	recorridoRepo := recorridos.NewRepository(gdb)

	authService, err := auth.NewService(auth.ServiceParams{
		Auth:      cfg.Auth,
		JWT:       cfg.JWT,
		RateLimit: cfg.AuthRateLimit,
		Sessions:  sessionManager,
		Limiter:   redisClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	empleadoService, err := empleados.NewService(empleados.ServiceParams{
		Repo:       empleadoRepo,
		Asignacion: asignacionRepo,
		Location:   loc,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create empleado service", err)
		os.Exit(1)
	}

	vehiculoService, err := vehiculos.NewService(vehiculos.ServiceParams{
		Repo:       vehiculoRepo,
		TX:         dbClient,
		Asignacion: asignacionRepo,
		Proyeccion: mantenimientoRepo,
		Location:   loc,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create vehiculo service", err)
		os.Exit(1)
	}

	asignacionService, err := asignaciones.NewService(asignaciones.ServiceParams{
		Repo:     asignacionRepo,
		TX:       dbClient,
		Empleado: empleadoRepo,
		Vehiculo: vehiculoRepo,
		Location: loc,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create asignacion service", err)
		os.Exit(1)
	}

	mantenimientoService, err := mantenimientos.NewService(mantenimientos.ServiceParams{
		Repo:     mantenimientoRepo,
		Vehiculo: vehiculoRepo,
		Taller:   tallerRepo,
		Location: loc,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create mantenimiento service", err)
		os.Exit(1)
	}

	tallerService, err := talleres.NewService(talleres.ServiceParams{Repo: tallerRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create taller service", err)
		os.Exit(1)
	}

	polizaService, err := polizas.NewService(polizas.ServiceParams{
		Repo:     polizaRepo,
		Vehiculo: vehiculoRepo,
		Location: loc,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create poliza service", err)
		os.Exit(1)
	}

	recorridoService, err := recorridos.NewService(recorridos.ServiceParams{
		Repo:       recorridoRepo,
		Vehiculo:   vehiculoRepo,
		Asignacion: asignacionRepo,
		Location:   loc,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create recorrido service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			httpMetrics,
			registry,
			authService,
			empleadoService,
			vehiculoService,
			asignacionService,
			mantenimientoService,
			tallerService,
			polizaService,
			recorridoService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
