package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Freeeeeet/drivelead_bot/internal/app"
	"github.com/Freeeeeet/drivelead_bot/internal/catalogclient"
	"github.com/Freeeeeet/drivelead_bot/internal/config"
	"github.com/Freeeeeet/drivelead_bot/internal/controller"
	"github.com/Freeeeeet/drivelead_bot/internal/wizard"
)

func main() {
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger("bot", cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Bot, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting drivelead bot",
		zap.String("environment", cfg.Environment),
		zap.String("api", cfg.APIBaseURL),
		zap.Int("token_length", len(cfg.TelegramToken)))

	catalog := catalogclient.New(cfg.APIBaseURL, logger,
		catalogclient.WithAPIKey(cfg.APIKey),
		catalogclient.WithTimeout(cfg.APITimeout))

	sessions := wizard.NewSessionStore()
	engine := wizard.NewEngine(catalog, catalog, sessions, wizard.Config{
		DefaultLanguage:      cfg.DefaultLanguage,
		WhatsAppSchoolsPhone: cfg.WhatsAppSchoolsPhone,
		WhatsAppTestsPhone:   cfg.WhatsAppTestsPhone,
	}, logger)

	b, err := bot.New(cfg.TelegramToken, bot.WithMiddlewares(controller.LoggingMiddleware(logger)))
	if err != nil {
		return err
	}

	botController := controller.NewBotController(b, engine, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// без меню команд бот работает, /start можно набрать вручную
		logger.Warn("Bot commands were not set", zap.Error(err))
	}

	scheduler := app.NewScheduler(sessions, cfg.SessionTTL, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return botController.Start(ctx) })
	if scheduler.Enabled() {
		g.Go(func() error { return scheduler.Run(ctx) })
	}

	return g.Wait()
}
