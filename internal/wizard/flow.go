package wizard

import (
	"context"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
	"github.com/Freeeeeet/drivelead_bot/internal/whatsapp"
)

// FlowKind сценарий диалога
type FlowKind string

const (
	FlowNone        FlowKind = ""
	FlowSchool      FlowKind = "school"
	FlowInstructor  FlowKind = "instructor"
	FlowTests       FlowKind = "tests"
	FlowCertificate FlowKind = "certificate"
)

// stepDef описание шага: откуда берутся варианты и что делает выбор.
// Шаг без options ждёт свободный ввод через input.
type stepDef struct {
	step   Step
	prompt string // ключ текста вопроса
	empty  string // ключ текста, если вариантов нет
	label  string // ключ подписи на экране подтверждения, пусто = не показывать
	event  string // событие аналитики при выборе

	enterEvent string // событие аналитики при показе шага

	// optional: без вариантов поле остаётся невыбранным и шаг пропускается
	optional bool
	// auto: единственный вариант выбирается без вопроса
	auto bool

	options func(ctx context.Context, e *Engine, s *Session) ([]Option, error)
	apply   func(ctx context.Context, e *Engine, s *Session, o Option, resp *Response) error

	// input разбирает свободный ввод, false = повторить вопрос с текстом invalid
	input   func(s *Session, in Input) bool
	invalid string
	contact bool // показать кнопку отправки контакта

	reset func(s *Session)
}

func (sp *stepDef) choice() bool { return sp.options != nil }

// Flow последовательность шагов одного сценария
type Flow struct {
	Kind     FlowKind
	LeadType model.LeadType
	Service  whatsapp.Service
	steps    []*stepDef
	// intro выполняется при входе в сценарий
	intro func(ctx context.Context, e *Engine, s *Session, resp *Response) error
}

func (f *Flow) index(step Step) int {
	for i, sp := range f.steps {
		if sp.step == step {
			return i
		}
	}
	return -1
}

func (f *Flow) def(step Step) (*stepDef, bool) {
	i := f.index(step)
	if i < 0 {
		return nil, false
	}
	return f.steps[i], true
}

// next возвращает шаг после step; для шага не из сценария это первый шаг
func (f *Flow) next(step Step) Step {
	i := f.index(step) + 1
	if i >= len(f.steps) {
		return StepNone
	}
	return f.steps[i].step
}

// first возвращает первый шаг сценария
func (f *Flow) first() Step {
	return f.next(StepNone)
}

// resetFrom сбрасывает поля шага step и всех последующих
func (f *Flow) resetFrom(s *Session, step Step) {
	i := f.index(step)
	if i < 0 {
		return
	}
	for _, sp := range f.steps[i:] {
		if sp.reset != nil {
			sp.reset(s)
		}
		delete(s.Labels, sp.step)
	}
}

func defaultFlows() map[FlowKind]*Flow {
	return map[FlowKind]*Flow{
		FlowSchool: {
			Kind:     FlowSchool,
			LeadType: model.LeadTypeSchool,
			Service:  whatsapp.ServiceSchool,
			steps: []*stepDef{
				cityStep(),
				schoolStep(),
				schoolCategoryStep(),
				formatStep(),
				schoolGearboxStep(),
				timeSlotStep(),
				tariffStep(),
				nameStep(),
				phoneStep(),
				confirmStep(),
			},
		},
		FlowInstructor: {
			Kind:     FlowInstructor,
			LeadType: model.LeadTypeInstructor,
			Service:  whatsapp.ServiceInstructor,
			steps: []*stepDef{
				cityStep(),
				instructorCategoryStep(),
				instructorGearboxStep(),
				genderStep(),
				instructorStep(),
				tariffStep(),
				nameStep(),
				phoneStep(),
				confirmStep(),
			},
		},
		FlowTests: {
			Kind:     FlowTests,
			LeadType: model.LeadTypeTests,
			Service:  whatsapp.ServiceTests,
			steps: []*stepDef{
				testsCategoryStep(),
				nameStep(),
				iinStep(),
				phoneStep(),
				confirmStep(),
			},
			intro: testsIntro,
		},
		FlowCertificate: {
			Kind: FlowCertificate,
			steps: []*stepDef{
				actionStep(),
			},
		},
	}
}
