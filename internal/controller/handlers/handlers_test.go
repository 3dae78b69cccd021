package handlers

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
	"github.com/Freeeeeet/drivelead_bot/internal/wizard"
)

func TestMatchMessage(t *testing.T) {
	tests := []struct {
		name   string
		update *models.Update
		want   bool
	}{
		{"no message", &models.Update{}, false},
		{"text", &models.Update{Message: &models.Message{Text: "Алматы"}}, true},
		{"start command", &models.Update{Message: &models.Message{Text: "/start"}}, false},
		{"empty text", &models.Update{Message: &models.Message{Text: "  "}}, false},
		{"contact", &models.Update{Message: &models.Message{Contact: &models.Contact{PhoneNumber: "77011234567"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchMessage(tt.update))
		})
	}
}

func TestInputFromMessage(t *testing.T) {
	msg := &models.Message{
		Text: "Иван",
		From: &models.User{ID: 42, Username: "ivan", FirstName: "Иван", LanguageCode: "kz"},
		Contact: &models.Contact{
			PhoneNumber: "+77011234567",
		},
	}

	in := inputFromMessage(msg)

	assert.Equal(t, "Иван", in.Text)
	assert.Equal(t, int64(42), in.User.TelegramUserID)
	assert.Equal(t, "ivan", in.User.Username)
	assert.Equal(t, model.LanguageKZ, in.User.Language)
	assert.Equal(t, "+77011234567", in.ContactPhone)
}

func TestReplyMarkup(t *testing.T) {
	assert.Nil(t, replyMarkup(wizard.Reply{Text: "plain"}))

	markup := replyMarkup(wizard.Reply{
		Text: "phone",
		Keyboard: [][]wizard.Button{
			{{Text: "📱 Отправить номер", RequestContact: true}},
			{{Text: "⬅️ Назад"}, {Text: "🏠 Главное меню"}},
		},
	})
	kb, ok := markup.(*models.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.True(t, kb.ResizeKeyboard)
	require.Len(t, kb.Keyboard, 2)
	assert.True(t, kb.Keyboard[0][0].RequestContact)
	assert.Equal(t, "🏠 Главное меню", kb.Keyboard[1][1].Text)

	markup = replyMarkup(wizard.Reply{
		Text:     "link",
		Keyboard: [][]wizard.Button{{{Text: "ignored"}}},
		LinkText: "Открыть WhatsApp",
		LinkURL:  "https://wa.me/77010000001",
	})
	inline, ok := markup.(*models.InlineKeyboardMarkup)
	require.True(t, ok)
	assert.Equal(t, "https://wa.me/77010000001", inline.InlineKeyboard[0][0].URL)
}
