package controller

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/controller/handlers"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(botInstance *bot.Bot, w handlers.Wizard, logger *zap.Logger) *BotController {
	return &BotController{
		bot:      botInstance,
		handlers: handlers.NewHandlers(w, logger),
		logger:   logger,
	}
}

// RegisterHandlers регистрирует обработчики и меню команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)

	// Всё остальное (текст, кнопки клавиатуры, контакт) уходит в диалог
	c.bot.RegisterHandlerMatchFunc(handlers.MatchMessage, c.handlers.HandleMessage)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать / Бастау"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает long polling до отмены контекста
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}

// LoggingMiddleware логирует входящие сообщения и время их обработки
func LoggingMiddleware(logger *zap.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			start := time.Now()
			next(ctx, b, update)

			if update.Message == nil || update.Message.From == nil {
				return
			}
			logger.Debug("Update handled",
				zap.Int64("update_id", update.ID),
				zap.Int64("telegram_id", update.Message.From.ID),
				zap.Bool("contact", update.Message.Contact != nil),
				zap.Duration("took", time.Since(start)))
		}
	}
}
