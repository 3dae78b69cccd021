package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/drivelead_bot/internal/model"
	"github.com/Freeeeeet/drivelead_bot/internal/wizard"
)

// Wizard движок диалога
type Wizard interface {
	Start(ctx context.Context, in wizard.Input) *wizard.Response
	Handle(ctx context.Context, in wizard.Input) *wizard.Response
}

// Handlers переводит сообщения Telegram в ввод диалога и отправляет ответы
type Handlers struct {
	wizard Wizard
	logger *zap.Logger
}

// NewHandlers создаёт обработчики сообщений
func NewHandlers(w Wizard, logger *zap.Logger) *Handlers {
	return &Handlers{
		wizard: w,
		logger: logger,
	}
}

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	h.logger.Info("User started bot",
		zap.Int64("telegram_id", update.Message.From.ID),
		zap.String("username", update.Message.From.Username))

	resp := h.wizard.Start(ctx, inputFromMessage(update.Message))
	h.sendResponse(ctx, b, update.Message.Chat.ID, resp)
}

// HandleMessage обрабатывает текст, нажатия кнопок клавиатуры и отправленные контакты
func (h *Handlers) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	resp := h.wizard.Handle(ctx, inputFromMessage(update.Message))
	h.sendResponse(ctx, b, update.Message.Chat.ID, resp)
}

// MatchMessage отбирает сообщения для HandleMessage: любой текст кроме /start или контакт
func MatchMessage(update *models.Update) bool {
	if update.Message == nil {
		return false
	}
	if update.Message.Contact != nil {
		return true
	}
	text := strings.TrimSpace(update.Message.Text)
	return text != "" && text != "/start"
}

// inputFromMessage переводит сообщение Telegram во ввод диалога.
// Reply-клавиатура присылает только подпись кнопки, поэтому OptionID не заполняется.
func inputFromMessage(msg *models.Message) wizard.Input {
	in := wizard.Input{Text: msg.Text}
	if msg.From != nil {
		in.User = model.BotUserInfo{
			TelegramUserID: msg.From.ID,
			Username:       msg.From.Username,
			FirstName:      msg.From.FirstName,
			LastName:       msg.From.LastName,
			Language:       model.ParseLanguage(msg.From.LanguageCode, ""),
		}
	}
	if msg.Contact != nil {
		in.ContactPhone = msg.Contact.PhoneNumber
	}
	return in
}

// sendResponse отправляет ответы по порядку
func (h *Handlers) sendResponse(ctx context.Context, b *bot.Bot, chatID int64, resp *wizard.Response) {
	if resp == nil {
		return
	}
	for _, reply := range resp.Replies {
		h.sendMessage(ctx, b, chatID, reply)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, reply wizard.Reply) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      reply.Text,
		ParseMode: models.ParseModeHTML,
	}
	if markup := replyMarkup(reply); markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// replyMarkup выбирает разметку: кнопка-ссылка важнее клавиатуры ответа
func replyMarkup(reply wizard.Reply) models.ReplyMarkup {
	if reply.LinkURL != "" {
		return keyboard.NewBuilder().
			Row(keyboard.URLButton(reply.LinkText, reply.LinkURL)).
			Build()
	}
	if len(reply.Keyboard) == 0 {
		return nil
	}

	kb := keyboard.NewReplyBuilder()
	for _, row := range reply.Keyboard {
		buttons := make([]models.KeyboardButton, 0, len(row))
		for _, btn := range row {
			if btn.RequestContact {
				buttons = append(buttons, keyboard.ContactButton(btn.Text))
			} else {
				buttons = append(buttons, keyboard.TextButton(btn.Text))
			}
		}
		kb.Row(buttons...)
	}
	return kb.Build()
}
