package model

import "github.com/google/uuid"

// BotUserInfo данные пользователя Telegram, которые бот передаёт вместе с заявкой
type BotUserInfo struct {
	TelegramUserID int64    `json:"telegram_user_id"`
	Username       string   `json:"username,omitempty"`
	FirstName      string   `json:"first_name,omitempty"`
	LastName       string   `json:"last_name,omitempty"`
	Language       Language `json:"language"`
}

// Contact контактные данные из заявки
type Contact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	IIN      string `json:"iin,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

// LeadPayload атрибуты заявки, набор зависит от типа
type LeadPayload struct {
	CityID           *int64   `json:"city_id,omitempty"`
	CategoryID       *int64   `json:"category_id,omitempty"`
	TrainingFormatID *int64   `json:"training_format_id,omitempty"`
	TrainingTimeID   *int64   `json:"training_time_id,omitempty"`
	Gearbox          *Gearbox `json:"gearbox,omitempty"`
	SchoolID         *int64   `json:"school_id,omitempty"`
	TariffID         *int64   `json:"tariff_id,omitempty"`
	TariffName       string   `json:"tariff_name,omitempty"`
	TariffPriceKZT   *int     `json:"tariff_price_kzt,omitempty"`

	InstructorID             *int64  `json:"instructor_id,omitempty"`
	InstructorTariffID       *int64  `json:"instructor_tariff_id,omitempty"`
	InstructorTariffPriceKZT *int    `json:"instructor_tariff_price_kzt,omitempty"`
	PreferredGender          *Gender `json:"preferred_instructor_gender,omitempty"`

	TestsPriceKZT *int `json:"tests_price_kzt,omitempty"`
}

// LeadRequest тело запроса на создание заявки
type LeadRequest struct {
	Type       LeadType    `json:"type"`
	Language   Language    `json:"language"`
	MainIntent Intent      `json:"main_intent,omitempty"`
	BotUser    BotUserInfo `json:"bot_user"`
	Contact    Contact     `json:"contact"`
	Payload    LeadPayload `json:"payload"`
}

// LeadCreated ответ на создание заявки
type LeadCreated struct {
	ID     uuid.UUID  `json:"id"`
	Status LeadStatus `json:"status"`
}

// LeadStatusUpdate тело запроса на смену статуса
type LeadStatusUpdate struct {
	Status         LeadStatus `json:"status"`
	ManagerComment string     `json:"manager_comment"`
}
