package wizard

import (
	"time"

	"github.com/Freeeeeet/drivelead_bot/internal/filter"
	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

// Step шаг диалога
type Step string

const (
	StepNone       Step = ""
	StepLanguage   Step = "language"
	StepAction     Step = "action"
	StepCity       Step = "city"
	StepSchool     Step = "school"
	StepCategory   Step = "category"
	StepFormat     Step = "format"
	StepGearbox    Step = "gearbox"
	StepTimeSlot   Step = "time_slot"
	StepGender     Step = "gender"
	StepInstructor Step = "instructor"
	StepTariff     Step = "tariff"
	StepName       Step = "name"
	StepIIN        Step = "iin"
	StepPhone      Step = "phone"
	StepConfirm    Step = "confirm"
)

// Selection накопленный выбор пользователя. nil означает что поле не выбрано.
// Указатели никогда не изменяются по месту, только заменяются.
type Selection struct {
	CityID       *int64
	SchoolID     *int64
	CategoryID   *int64
	FormatID     *int64
	Gearbox      *model.Gearbox
	TimeSlotID   *int64
	Gender       *model.Gender
	InstructorID *int64
	TariffID     *int64
}

// Filter возвращает поля выбора, которые участвуют в фильтрации тарифов
func (s Selection) Filter() filter.Selection {
	return filter.Selection{
		CategoryID:       s.CategoryID,
		TrainingFormatID: s.FormatID,
		Gearbox:          s.Gearbox,
		TrainingTimeID:   s.TimeSlotID,
	}
}

// Contact контакты, введённые пользователем
type Contact struct {
	Name  string
	Phone string
	IIN   string
}

// Session состояние диалога одного пользователя.
// Создаётся при выборе сценария, удаляется после отправки заявки, возврата в меню или ошибки сервиса.
type Session struct {
	UserID   int64
	Language model.Language
	Intent   model.Intent
	Flow     FlowKind
	Step     Step

	Selection Selection
	Contact   Contact

	// Tariffs тарифы выбранной автошколы или инструктора, загружаются один раз на сессию
	Tariffs []model.Tariff
	// Options варианты, показанные на текущем шаге
	Options []Option
	// History шаги, на которых пользователь сделал выбор сам (автоматические не попадают)
	History []Step
	// Labels подписи выбранных значений для экрана подтверждения
	Labels map[Step]string

	// Provider название автошколы или имя инструктора для ссылки WhatsApp
	Provider string
	// TestsPriceKZT стоимость подготовки к тестам на момент входа в сценарий
	TestsPriceKZT int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession создаёт пустую сессию пользователя
func NewSession(userID int64, lang model.Language, now time.Time) *Session {
	return &Session{
		UserID:    userID,
		Language:  lang,
		Labels:    make(map[Step]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone возвращает независимую копию сессии
func (s *Session) Clone() *Session {
	c := *s
	c.Tariffs = append([]model.Tariff(nil), s.Tariffs...)
	c.Options = append([]Option(nil), s.Options...)
	c.History = append([]Step(nil), s.History...)
	c.Labels = make(map[Step]string, len(s.Labels))
	for k, v := range s.Labels {
		c.Labels[k] = v
	}
	return &c
}

// pushHistory запоминает шаг, на котором пользователь сделал выбор
func (s *Session) pushHistory(step Step) {
	s.History = append(s.History, step)
}

// popHistory снимает последний шаг из истории
func (s *Session) popHistory() (Step, bool) {
	if len(s.History) == 0 {
		return StepNone, false
	}
	step := s.History[len(s.History)-1]
	s.History = s.History[:len(s.History)-1]
	return step, true
}
