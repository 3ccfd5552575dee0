package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"marcapi/internal/config"
	"marcapi/internal/database"
	"marcapi/internal/database/migration"
	handlers "marcapi/internal/http/handler"
	"marcapi/internal/http/middleware"
	"marcapi/internal/logging"
	"marcapi/internal/otel"
	"marcapi/internal/pergamum"
	"marcapi/internal/repository"
	"marcapi/internal/repository/postgres"
	"marcapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title MARC API
// @version 1.0
// @description Converts Pergamum catalogue records to ISO 2709, MARCXML and mnemonic MARC.
// @BasePath /
func main() {
	cfg := config.Load()
	loc := cfg.Location()

	log, err := logging.New(cfg.LogLevel, loc)
	if err != nil {
		log = logging.NewWithWriter(os.Stderr, loc)
		log.Warn("invalid LOG_LEVEL, logging at debug", zap.String("log_level", cfg.LogLevel))
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	// The conversion log is optional; without DB_HOST conversions are served but not recorded.
	var (
		db   *sql.DB
		repo repository.ConversionRepository = repository.NopConversionRepository{}
	)
	if cfg.Database.Enabled() {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			return err
		}
		repo = postgres.NewConversionPostgres(db)
	} else {
		log.Info("conversion_log_disabled", zap.String("reason", "DB_HOST is empty"))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics, err := service.NewMetrics(reg)
	if err != nil {
		return err
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	clients := pergamum.NewRegistry(pergamum.SOAPFactory(pergamum.Options{
		Namespace: cfg.Pergamum.SOAPNamespace,
		Timeout:   cfg.Pergamum.Timeout,
	}), cfg.Pergamum.AllowedHosts)
	convSvc := service.NewConversionService(clients, repo, metrics, log)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, db, convSvc, reg)

	if cfg.SwaggerEnabled {
		handlers.RegisterSwagger(app)
	}

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info("server_starting",
			zap.String("addr", addr),
			zap.Bool("conversion_log", db != nil),
			zap.Strings("allowed_hosts", cfg.Pergamum.AllowedHosts),
		)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("server_shutting_down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}
