// Package whatsapp собирает ссылки wa.me с текстом заявки для менеджера.
package whatsapp

import (
	"net/url"
	"strings"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

// Service услуга, по которой оставлена заявка
type Service string

const (
	ServiceSchool     Service = "school"
	ServiceInstructor Service = "instructor"
	ServiceTests      Service = "tests"
)

// Title возвращает название услуги на нужном языке
func (s Service) Title(lang model.Language) string {
	switch s {
	case ServiceInstructor:
		if lang == model.LanguageKZ {
			return "Нұсқаушы"
		}
		return "Инструктор"
	case ServiceTests:
		if lang == model.LanguageKZ {
			return "ЖҚД тесттері"
		}
		return "Тесты по ПДД"
	default:
		return "Автошкола"
	}
}

// Message данные заявки для текста сообщения
type Message struct {
	Service  Service
	Provider string // название автошколы или имя инструктора
	Name     string
	Phone    string
	IIN      string
	Category string
	Language model.Language
}

// Text собирает текст сообщения менеджеру
func (m Message) Text() string {
	kz := m.Language == model.LanguageKZ

	var b strings.Builder
	b.WriteString("Здравствуйте!\n\n")
	b.WriteString("Новая заявка с Telegram-бота.\n\n")
	b.WriteString("👤 Имя: " + m.Name + "\n")
	if m.Service == ServiceTests {
		if kz {
			b.WriteString("🆔 ЖСН: " + m.IIN + "\n")
		} else {
			b.WriteString("🆔 ИИН: " + m.IIN + "\n")
		}
	}
	b.WriteString("💬 WhatsApp: " + m.Phone + "\n")

	service := m.Service.Title(m.Language)
	if m.Provider != "" {
		service += " — " + m.Provider
	}
	b.WriteString("📘 Услуга: " + service + "\n")

	if m.Category != "" {
		if kz {
			b.WriteString("📗 Санат: " + m.Category + "\n")
		} else {
			b.WriteString("📗 Категория: " + m.Category + "\n")
		}
	}
	if kz {
		b.WriteString("🌐 Тіл: KZ")
	} else {
		b.WriteString("🌐 Язык: RU")
	}
	return b.String()
}

// Link возвращает ссылку wa.me на номер получателя, пустую строку если номер не задан
func Link(recipient string, m Message) string {
	phone := digits(recipient)
	if phone == "" {
		return ""
	}
	// QueryEscape кодирует пробел как "+", wa.me ожидает %20
	text := strings.ReplaceAll(url.QueryEscape(m.Text()), "+", "%20")
	return "https://wa.me/" + phone + "?text=" + text
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
