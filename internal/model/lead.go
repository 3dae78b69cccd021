package model

import (
	"time"

	"github.com/google/uuid"
)

// LeadType тип заявки
type LeadType string

const (
	LeadTypeSchool     LeadType = "SCHOOL"     // Запись в автошколу
	LeadTypeInstructor LeadType = "INSTRUCTOR" // Занятия с инструктором
	LeadTypeTests      LeadType = "TESTS"      // Подготовка к тестам ПДД
)

// Valid проверяет тип заявки
func (t LeadType) Valid() bool {
	return t == LeadTypeSchool || t == LeadTypeInstructor || t == LeadTypeTests
}

// LeadStatus статус заявки
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"       // Новая
	LeadStatusConfirmed LeadStatus = "CONFIRMED" // Подтверждена менеджером
	LeadStatusPaid      LeadStatus = "PAID"      // Оплачена
	LeadStatusDone      LeadStatus = "DONE"      // Завершена
	LeadStatusCanceled  LeadStatus = "CANCELED"  // Отменена
)

// LeadStatuses все статусы в порядке жизненного цикла
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusConfirmed,
	LeadStatusPaid,
	LeadStatusDone,
	LeadStatusCanceled,
}

// Valid проверяет статус заявки
func (s LeadStatus) Valid() bool {
	for _, st := range LeadStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Intent с чем пользователь пришёл в бота
type Intent string

const (
	IntentNone          Intent = ""
	IntentNoLicense     Intent = "NO_LICENSE"      // Нет прав, хочет учиться в автошколе
	IntentRefresh       Intent = "REFRESH"         // Есть права, хочет освежить навыки
	IntentCertNotPassed Intent = "CERT_NOT_PASSED" // Есть сертификат, экзамен не сдан
)

// Lead заявка, созданная после подтверждения в боте
type Lead struct {
	ID                 uuid.UUID  `json:"id"`
	Type               LeadType   `json:"type"`
	Status             LeadStatus `json:"status"`
	Language           Language   `json:"language"`
	MainIntent         Intent     `json:"main_intent,omitempty"`
	BotUserID          *int64     `json:"bot_user_id,omitempty"`
	CityID             *int64     `json:"city_id,omitempty"`
	CategoryID         *int64     `json:"category_id,omitempty"`
	TrainingFormatID   *int64     `json:"training_format_id,omitempty"`
	TrainingTimeID     *int64     `json:"training_time_id,omitempty"`
	Gearbox            *Gearbox   `json:"gearbox,omitempty"`
	SchoolID           *int64     `json:"school_id,omitempty"`
	InstructorID       *int64     `json:"instructor_id,omitempty"`
	InstructorTariffID *int64     `json:"instructor_tariff_id,omitempty"`
	PreferredGender    *Gender    `json:"preferred_instructor_gender,omitempty"`
	TariffName         string     `json:"tariff_name,omitempty"`
	PriceKZT           *int       `json:"price_kzt,omitempty"`
	Name               string     `json:"name"`
	Phone              string     `json:"phone"`
	IIN                string     `json:"iin,omitempty"`
	WhatsApp           string     `json:"whatsapp,omitempty"`
	PaymentLink        string     `json:"payment_link,omitempty"`
	ManagerComment     string     `json:"manager_comment,omitempty"`
	Source             string     `json:"source"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Дополнительные поля для удобства (не из таблицы leads)
	CityName       string `json:"city_name,omitempty"`
	CategoryName   string `json:"category_name,omitempty"`
	SchoolName     string `json:"school_name,omitempty"`
	InstructorName string `json:"instructor_name,omitempty"`
}

// LeadStatusHistory запись журнала смены статусов
type LeadStatusHistory struct {
	ID        int64       `json:"id"`
	LeadID    uuid.UUID   `json:"lead_id"`
	OldStatus *LeadStatus `json:"old_status"`
	NewStatus LeadStatus  `json:"new_status"`
	Note      string      `json:"note"`
	ChangedAt time.Time   `json:"changed_at"`
}

// LeadFilter фильтры списка заявок
type LeadFilter struct {
	Status      *LeadStatus
	Type        *LeadType
	CityID      *int64
	SchoolID    *int64
	Phone       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
}

// LeadStats количество заявок в разрезе статусов и типов
type LeadStats struct {
	Total    int                `json:"total"`
	ByStatus map[LeadStatus]int `json:"by_status"`
	ByType   map[LeadType]int   `json:"by_type"`
}
