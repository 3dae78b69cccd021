package keyboard

import "github.com/go-telegram/bot/models"

// Builder упрощает создание inline клавиатур
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

// NewBuilder создаёт новый builder клавиатуры
func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row добавляет новый ряд кнопок
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// URLButton создаёт кнопку с URL
func URLButton(text, url string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text: text,
		URL:  url,
	}
}

// Build создаёт финальную клавиатуру
func (b *Builder) Build() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}

// ReplyBuilder собирает клавиатуру ответа, которая заменяет обычную клавиатуру пользователя
type ReplyBuilder struct {
	rows [][]models.KeyboardButton
}

// NewReplyBuilder создаёт builder клавиатуры ответа
func NewReplyBuilder() *ReplyBuilder {
	return &ReplyBuilder{
		rows: make([][]models.KeyboardButton, 0),
	}
}

// Row добавляет ряд кнопок, пустые ряды пропускаются
func (b *ReplyBuilder) Row(buttons ...models.KeyboardButton) *ReplyBuilder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// TextButton обычная кнопка, нажатие отправляет её текст
func TextButton(text string) models.KeyboardButton {
	return models.KeyboardButton{Text: text}
}

// ContactButton кнопка, которая отправляет номер телефона пользователя
func ContactButton(text string) models.KeyboardButton {
	return models.KeyboardButton{Text: text, RequestContact: true}
}

// Build создаёт клавиатуру ответа, подогнанную по размеру
func (b *ReplyBuilder) Build() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard:       b.rows,
		ResizeKeyboard: true,
	}
}
