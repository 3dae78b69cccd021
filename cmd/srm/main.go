package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Freeeeeet/drivelead_bot/internal/admin"
	"github.com/Freeeeeet/drivelead_bot/internal/app"
	"github.com/Freeeeeet/drivelead_bot/internal/config"
	"github.com/Freeeeeet/drivelead_bot/internal/httpapi"
	"github.com/Freeeeeet/drivelead_bot/internal/repository"
	"github.com/Freeeeeet/drivelead_bot/internal/service"
	"github.com/Freeeeeet/drivelead_bot/migrations"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger("srm", cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("SRM backend stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Server, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting SRM backend",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr),
		zap.Bool("api_key", cfg.APIKey != ""))

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("✅ Connected to database")

	var migrationsFS fs.FS = migrations.FS
	if cfg.MigrationsDir != "" {
		migrationsFS = os.DirFS(cfg.MigrationsDir)
	}
	migrator, err := app.NewMigrator(pool, migrationsFS, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	// Репозитории
	dictRepo := repository.NewDictionaryRepository(pool, logger)
	schoolRepo := repository.NewSchoolRepository(pool, logger)
	instructorRepo := repository.NewInstructorRepository(pool, logger)
	leadRepo := repository.NewLeadRepository(pool, logger)
	botUserRepo := repository.NewBotUserRepository(pool, logger)
	analyticsRepo := repository.NewAnalyticsRepository(pool, logger)
	settingsRepo := repository.NewSettingsRepository(pool, logger)

	// Сервисы
	catalogService := service.NewCatalogService(dictRepo, schoolRepo, instructorRepo, logger)
	leadService := service.NewLeadService(pool, leadRepo, botUserRepo, logger)
	analyticsService := service.NewAnalyticsService(analyticsRepo, botUserRepo, logger)
	settingsService := service.NewSettingsService(settingsRepo, cfg.TestsPriceKZT, logger)

	renderer, err := admin.NewRenderer()
	if err != nil {
		return err
	}

	e := app.NewServer(logger)
	e.Renderer = renderer

	httpapi.RegisterHealth(e, pool)
	httpapi.NewHandler(catalogService, leadService, analyticsService, settingsService, logger).
		Register(e.Group("/api", httpapi.APIKeyAuth(cfg.APIKey)))
	admin.NewHandler(leadService, catalogService, analyticsService, logger).
		Register(e.Group("/srm"))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
