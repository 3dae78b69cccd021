package wizard

import "github.com/Freeeeeet/drivelead_bot/internal/model"

// Input сообщение пользователя
type Input struct {
	User model.BotUserInfo
	// Text текст сообщения или подпись нажатой кнопки
	Text string
	// OptionID идентификатор варианта, если транспорт его передаёт (Telegram reply-клавиатура не передаёт)
	OptionID string
	// ContactPhone номер из отправленного контакта
	ContactPhone string
}

// Button кнопка клавиатуры ответа
type Button struct {
	Text           string
	RequestContact bool
}

// Reply одно сообщение пользователю. Text размечен HTML.
type Reply struct {
	Text     string
	Keyboard [][]Button
	// LinkText и LinkURL добавляют к сообщению кнопку-ссылку
	LinkText string
	LinkURL  string
}

// Response ответы на одно входящее сообщение
type Response struct {
	Replies []Reply
}

func (r *Response) add(reply Reply) {
	r.Replies = append(r.Replies, reply)
}

func (r *Response) text(text string) {
	r.add(Reply{Text: text})
}

// optionsKeyboard по кнопке на вариант и ряд навигации
func optionsKeyboard(lang model.Language, options []Option) [][]Button {
	rows := make([][]Button, 0, len(options)+1)
	for _, o := range options {
		rows = append(rows, []Button{{Text: o.Label}})
	}
	return append(rows, navigationRow(lang))
}

func navigationRow(lang model.Language) []Button {
	return []Button{{Text: T(lang, "back")}, {Text: T(lang, "main_menu")}}
}

func navigationKeyboard(lang model.Language) [][]Button {
	return [][]Button{navigationRow(lang)}
}

func phoneKeyboard(lang model.Language) [][]Button {
	return [][]Button{
		{{Text: T(lang, "share_contact"), RequestContact: true}},
		navigationRow(lang),
	}
}

func confirmKeyboard(lang model.Language) [][]Button {
	return [][]Button{
		{{Text: T(lang, "confirm_yes")}},
		{{Text: T(lang, "fix")}},
		{{Text: T(lang, "main_menu")}},
	}
}

func mainMenuKeyboard(lang model.Language) [][]Button {
	return [][]Button{
		{{Text: T(lang, "menu_no_license")}},
		{{Text: T(lang, "menu_has_license")}},
		{{Text: T(lang, "menu_certificate")}},
		{{Text: T(lang, "menu_tests")}},
		{{Text: T(lang, "menu_language")}},
	}
}

func languageKeyboard() [][]Button {
	return [][]Button{{{Text: T(model.LanguageRU, "lang_ru")}, {Text: T(model.LanguageRU, "lang_kz")}}}
}
