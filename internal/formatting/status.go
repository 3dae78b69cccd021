package formatting

import "github.com/Freeeeeet/drivelead_bot/internal/model"

// LeadStatusDisplay представляет отображение статуса заявки
type LeadStatusDisplay struct {
	Emoji string
	Text  string
}

// GetLeadStatusDisplay возвращает emoji и текст для статуса заявки
func GetLeadStatusDisplay(status model.LeadStatus) LeadStatusDisplay {
	displays := map[model.LeadStatus]LeadStatusDisplay{
		model.LeadStatusNew:       {"🆕", "Новая"},
		model.LeadStatusConfirmed: {"✅", "Подтверждена"},
		model.LeadStatusPaid:      {"💳", "Оплачена"},
		model.LeadStatusDone:      {"✔️", "Завершена"},
		model.LeadStatusCanceled:  {"❌", "Отменена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return LeadStatusDisplay{"❓", "Неизвестно"}
}

// LeadTypeText возвращает название типа заявки
func LeadTypeText(t model.LeadType) string {
	switch t {
	case model.LeadTypeSchool:
		return "Автошкола"
	case model.LeadTypeInstructor:
		return "Инструктор"
	case model.LeadTypeTests:
		return "Тесты ПДД"
	default:
		return string(t)
	}
}
