package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sujit-maker/move-sub001/internal/application/movement"
	"github.com/sujit-maker/move-sub001/internal/application/usecase"
	"github.com/sujit-maker/move-sub001/internal/domain/repository"
	"github.com/sujit-maker/move-sub001/internal/infrastructure/cache"
	"github.com/sujit-maker/move-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/sujit-maker/move-sub001/internal/interfaces/http"
	"github.com/sujit-maker/move-sub001/pkg/config"
	"github.com/sujit-maker/move-sub001/pkg/logger"
	"github.com/sujit-maker/move-sub001/pkg/metrics"

	_ "github.com/sujit-maker/move-sub001/docs" // registra el documento OpenAPI en swag
)

// @title                       Container Movement Ledger API
// @version                     1.0
// @description                 Libro de movimientos de contenedores: actualización masiva de estados, historial y correcciones.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.AutoMigrate {
		mg, err := postgres.NewMigrator(cfg.DB, log.Component("migrate"))
		if err != nil {
			log.Fatal().Err(err).Msg("migrador")
		}
		if err := mg.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = mg.Close()
		log.Info().Msg("esquema al día")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	movRepo := postgres.NewMovementRecordRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	leasingRepo := postgres.NewLeasingInfoRepository(pool)
	var portRepo repository.PortRepository = postgres.NewPortRepository(pool)
	var abRepo repository.AddressBookRepository = postgres.NewAddressBookRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de catálogos: opcional, sin REDIS_ADDR se lee siempre de la BD.
	rdb, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis no disponible, catálogos sin caché")
	}
	if rdb != nil {
		defer rdb.Close()
		cacheLog := log.Component("cache")
		portRepo = cache.NewPortRepository(portRepo, rdb, cfg.Redis.TTL, cacheLog)
		abRepo = cache.NewAddressBookRepository(abRepo, rdb, cfg.Redis.TTL, cacheLog)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de catálogos activa")
	}

	var recorder movement.Recorder
	var httpObserver httpRouter.HTTPObserver
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
		recorder = m
		httpObserver = m
	}

	bulkUC := movement.NewBulkTransitionUseCase(txRunner, jobRepo, leasingRepo, recorder, log.Component("bulk_transition"))
	dateUC := movement.NewDateCorrectionUseCase(txRunner, recorder, log.Component("date_correction"))
	jobUC := movement.NewJobLifecycleUseCase(txRunner, jobRepo, leasingRepo, log.Component("job_lifecycle"))
	queryUC := movement.NewLedgerQueryUseCase(movRepo, invRepo, portRepo, abRepo)
	referenceUC := usecase.NewReferenceUseCase(portRepo, abRepo, jobRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))
	app.Use(httpRouter.RequestLogger(log.Component("http"), httpObserver))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.Swagger.Enabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     cfg.Swagger.Path,
			Title:    "Container Movement Ledger API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if m != nil {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(m.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		BulkTransition: bulkUC,
		Ledger:         queryUC,
		DateCorrection: dateUC,
		Jobs:           jobUC,
		Reference:      referenceUC,
		JobLookup:      referenceUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
