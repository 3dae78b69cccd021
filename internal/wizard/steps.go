package wizard

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/drivelead_bot/internal/filter"
	"github.com/Freeeeeet/drivelead_bot/internal/formatting"
	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

func cityStep() *stepDef {
	return &stepDef{
		step:   StepCity,
		prompt: "choose_city",
		empty:  "no_cities",
		label:  "label_city",
		event:  "city_selected",
		options: func(ctx context.Context, e *Engine, s *Session) ([]Option, error) {
			cities, err := e.catalog.GetCities(ctx)
			if err != nil {
				return nil, fmt.Errorf("get cities: %w", err)
			}
			options := make([]Option, 0, len(cities))
			for _, c := range cities {
				options = append(options, idOption(c.ID, c.Name(s.Language)))
			}
			return options, nil
		},
		apply: func(_ context.Context, _ *Engine, s *Session, o Option, _ *Response) error {
			s.Selection.CityID = optionID(o)
			return nil
		},
		reset: func(s *Session) { s.Selection.CityID = nil },
	}
}

func schoolStep() *stepDef {
	return &stepDef{
		step:   StepSchool,
		prompt: "choose_school",
		empty:  "no_schools",
		label:  "label_school",
		event:  "school_selected",
		options: func(ctx context.Context, e *Engine, s *Session) ([]Option, error) {
			schools, err := e.catalog.GetSchools(ctx, deref(s.Selection.CityID))
			if err != nil {
				return nil, fmt.Errorf("get schools: %w", err)
			}
			options := make([]Option, 0, len(schools))
			for _, sc := range schools {
				options = append(options, idOption(sc.ID, sc.Name(s.Language)))
			}
			return options, nil
		},
		apply: applySchool,
		reset: func(s *Session) {
			s.Selection.SchoolID = nil
			s.Tariffs = nil
			s.Provider = ""
		},
	}
}

// applySchool загружает карточку и тарифы автошколы под защитой от повторного нажатия
func applySchool(ctx context.Context, e *Engine, s *Session, o Option, resp *Response) error {
	schoolID, ok := o.int64ID()
	if !ok {
		return fmt.Errorf("bad school option %q", o.ID)
	}

	if !e.inflight.TryAcquire(s.UserID, schoolID) {
		return errInFlight
	}
	defer e.inflight.Release(s.UserID, schoolID)

	detail, err := e.catalog.GetSchoolDetail(ctx, schoolID, filter.Selection{})
	if err != nil {
		return fmt.Errorf("get school detail: %w", err)
	}

	tariffs := make([]model.Tariff, 0, len(detail.Tariffs))
	for _, t := range detail.Tariffs {
		if t.IsActive {
			tariffs = append(tariffs, t)
		}
	}
	if len(tariffs) == 0 {
		return noResults("no_tariffs")
	}

	s.Selection.SchoolID = &schoolID
	s.Tariffs = tariffs
	s.Provider = detail.Name(s.Language)

	card := T(s.Language, "school_card", html.EscapeString(s.Provider))
	if city := s.Labels[StepCity]; city != "" {
		card += " (" + html.EscapeString(city) + ")"
	}
	if desc := strings.TrimSpace(detail.Description(s.Language)); desc != "" {
		card += "\n\n" + html.EscapeString(desc)
	}
	if addr := strings.TrimSpace(detail.Address(s.Language)); addr != "" {
		card += "\n\n📍 " + html.EscapeString(addr)
	}
	resp.text(card)
	return nil
}

func categoryStep(options func(ctx context.Context, e *Engine, s *Session) ([]model.Category, error)) *stepDef {
	return &stepDef{
		step:   StepCategory,
		prompt: "choose_category",
		empty:  "no_categories",
		label:  "label_category",
		event:  "category_selected",
		options: func(ctx context.Context, e *Engine, s *Session) ([]Option, error) {
			categories, err := options(ctx, e, s)
			if err != nil {
				return nil, err
			}
			result := make([]Option, 0, len(categories))
			for _, c := range categories {
				result = append(result, idOption(c.ID, c.Name(s.Language)))
			}
			return result, nil
		},
		apply: func(_ context.Context, _ *Engine, s *Session, o Option, _ *Response) error {
			s.Selection.CategoryID = optionID(o)
			return nil
		},
		reset: func(s *Session) { s.Selection.CategoryID = nil },
	}
}

func schoolCategoryStep() *stepDef {
	return categoryStep(func(ctx context.Context, e *Engine, s *Session) ([]model.Category, error) {
		all, err := e.catalog.GetCategories(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("get categories: %w", err)
		}
		return filter.AvailableCategories(s.Tariffs, all), nil
	})
}

// instructorCategoryStep без сертификата инструкторы доступны только для категории B
func instructorCategoryStep() *stepDef {
	return categoryStep(func(ctx context.Context, e *Engine, s *Session) ([]model.Category, error) {
		all, err := e.catalog.GetCategories(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("get categories: %w", err)
		}
		if s.Intent == model.IntentCertNotPassed {
			return all, nil
		}
		result := make([]model.Category, 0, 1)
		for _, c := range all {
			if strings.EqualFold(c.Code, "B") {
				result = append(result, c)
			}
		}
		return result, nil
	})
}

func testsCategoryStep() *stepDef {
	return categoryStep(func(ctx context.Context, e *Engine, s *Session) ([]model.Category, error) {
		categories, err := e.catalog.GetCategories(ctx, true)
		if err != nil {
			return nil, fmt.Errorf("get test categories: %w", err)
		}
		return categories, nil
	})
}

func formatStep() *stepDef {
	return &stepDef{
		step:   StepFormat,
		prompt: "choose_format",
		empty:  "no_formats",
		label:  "label_format",
		event:  "format_selected",
		auto:   true,
		options: func(ctx context.Context, e *Engine, s *Session) ([]Option, error) {
			all, err := e.catalog.GetTrainingFormats(ctx)
			if err != nil {
				return nil, fmt.Errorf("get training formats: %w", err)
			}
			formats := filter.AvailableFormats(s.Tariffs, deref(s.Selection.CategoryID), all)
			options := make([]Option, 0, len(formats))
			for _, f := range formats {
				options = append(options, idOption(f.ID, f.Name(s.Language)))
			}
			return options, nil
		},
		apply: func(_ context.Context, _ *Engine, s *Session, o Option, _ *Response) error {
			s.Selection.FormatID = optionID(o)
			return nil
		},
		reset: func(s *Session) { s.Selection.FormatID = nil },
	}
}

func gearboxOptions(lang model.Language, gearboxes []model.Gearbox) []Option {
	options := make([]Option, 0, len(gearboxes))
	for _, g := range gearboxes {
		options = append(options, Option{ID: string(g), Label: gearboxLabel(lang, g)})
	}
	return options
}

func gearboxLabel(lang model.Language, g model.Gearbox) string {
	if g == model.GearboxMT {
		return T(lang, "gearbox_manual")
	}
	return T(lang, "gearbox_automatic")
}

func gearboxStep(optional bool, options func(ctx context.Context, e *Engine, s *Session) ([]Option, error)) *stepDef {
	return &stepDef{
		step:     StepGearbox,
		prompt:   "choose_gearbox",
		label:    "label_gearbox",
		event:    "gearbox_selected",
		optional: optional,
		auto:     true,
		options:  options,
		apply: func(_ context.Context, _ *Engine, s *Session, o Option, _ *Response) error {
			g := model.Gearbox(o.ID)
			if !g.Valid() {
				return fmt.Errorf("bad gearbox option %q", o.ID)
			}
			s.Selection.Gearbox = &g
			return nil
		},
		reset: func(s *Session) { s.Selection.Gearbox = nil },
	}
}

// schoolGearboxStep КПП из тарифов; если ни в одном тарифе КПП не указана, шаг пропускается
func schoolGearboxStep() *stepDef {
	return gearboxStep(true, func(_ context.Context, _ *Engine, s *Session) ([]Option, error) {
		gearboxes := filter.AvailableGearboxes(s.Tariffs, deref(s.Selection.CategoryID), s.Selection.FormatID)
		return gearboxOptions(s.Language, gearboxes), nil
	})
}

func instructorGearboxStep() *stepDef {
	return gearboxStep(false, func(_ context.Context, _ *Engine, s *Session) ([]Option, error) {
		return gearboxOptions(s.Language, []model.Gearbox{model.GearboxAT, model.GearboxMT}), nil
	})
}

func timeSlotStep() *stepDef {
	return &stepDef{
		step:     StepTimeSlot,
		prompt:   "choose_time",
		label:    "label_time",
		event:    "training_time_selected",
		optional: true,
		auto:     true,
		options: func(ctx context.Context, e *Engine, s *Session) ([]Option, error) {
			all, err := e.catalog.GetTrainingTimeSlots(ctx)
			if err != nil {
				return nil, fmt.Errorf("get training times: %w", err)
			}
			sel := s.Selection
			slots := filter.AvailableTimeSlots(s.Tariffs, deref(sel.CategoryID), sel.FormatID, sel.Gearbox, all)
			options := make([]Option, 0, len(slots))
			for _, slot := range slots {
				options = append(options, idOption(slot.ID, timeSlotLabel(s.Language, slot)))
			}
			return options, nil
		},
		apply: func(_ context.Context, _ *Engine, s *Session, o Option, _ *Response) error {
			s.Selection.TimeSlotID = optionID(o)
			return nil
		},
		reset: func(s *Session) { s.Selection.TimeSlotID = nil },
	}
}

func timeSlotLabel(lang model.Language, slot model.TrainingTimeSlot) string {
	label := slot.Name(lang)
	if slot.Emoji != "" {
		label = slot.Emoji + " " + label
	}
	if r := slot.TimeRange(lang); r != "" {
		label += " (" + r + ")"
	}
	return label
}

const genderAny = "ANY"

func genderStep() *stepDef {
	return &stepDef{
		step:   StepGender,
		prompt: "choose_gender",
		label:  "label_gender",
		event:  "instructor_gender_selected",
		options: func(_ context.Context, _ *Engine, s *Session) ([]Option, error) {
			return []Option{
				{ID: string(model.GenderMale), Label: T(s.Language, "gender_male")},
				{ID: string(model.GenderFemale), Label: T(s.Language, "gender_female")},
				{ID: genderAny, Label: T(s.Language, "gender_any")},
			}, nil
		},
		apply: func(_ context.Context, _ *Engine, s *Session, o Option, _ *Response) error {
			s.Selection.Gender = nil
			if g := model.Gender(o.ID); g.Valid() {
				s.Selection.Gender = &g
			}
			return nil
		},
		reset: func(s *Session) { s.Selection.Gender = nil },
	}
}

func instructorStep() *stepDef {
	return &stepDef{
		step:   StepInstructor,
		prompt: "choose_instructor",
		empty:  "no_instructors",
		label:  "label_instr",
		event:  "instructor_selected",
		options: func(ctx context.Context, e *Engine, s *Session) ([]Option, error) {
			instructors, err := e.catalog.GetInstructors(ctx, model.InstructorFilter{
				CityID:     s.Selection.CityID,
				CategoryID: s.Selection.CategoryID,
				Gearbox:    s.Selection.Gearbox,
				Gender:     s.Selection.Gender,
			})
			if err != nil {
				return nil, fmt.Errorf("get instructors: %w", err)
			}
			options := make([]Option, 0, len(instructors))
			for _, in := range instructors {
				options = append(options, idOption(in.ID, in.DisplayName))
			}
			return options, nil
		},
		apply: applyInstructor,
		reset: func(s *Session) {
			s.Selection.InstructorID = nil
			s.Tariffs = nil
			s.Provider = ""
		},
	}
}

// applyInstructor загружает карточку инструктора и превращает его тарифы в общий вид
func applyInstructor(ctx context.Context, e *Engine, s *Session, o Option, resp *Response) error {
	id, ok := o.int64ID()
	if !ok {
		return fmt.Errorf("bad instructor option %q", o.ID)
	}

	detail, err := e.catalog.GetInstructorDetail(ctx, id)
	if err != nil {
		return fmt.Errorf("get instructor detail: %w", err)
	}

	tariffs := make([]model.Tariff, 0, len(detail.Tariffs))
	for _, it := range detail.Tariffs {
		if !it.IsActive {
			continue
		}
		tariffs = append(tariffs, model.Tariff{
			ID:        it.ID,
			NameRU:    instructorTariffName(model.LanguageRU, it.TariffType),
			NameKZ:    instructorTariffName(model.LanguageKZ, it.TariffType),
			PriceKZT:  it.PriceKZT,
			IsActive:  true,
			SortOrder: it.SortOrder,
		})
	}
	if len(tariffs) == 0 {
		return noResults("no_tariffs")
	}

	s.Selection.InstructorID = &id
	s.Tariffs = tariffs
	s.Provider = detail.DisplayName

	lines := []string{"👨‍🏫 <b>" + html.EscapeString(detail.DisplayName) + "</b>"}
	if detail.ExperienceYears > 0 {
		lines = append(lines, T(s.Language, "instructor_experience", detail.ExperienceYears, yearsWord(s.Language, detail.ExperienceYears)))
	}
	if detail.CarModel != "" {
		lines = append(lines, T(s.Language, "instructor_car", html.EscapeString(detail.CarModel)))
	}
	if bio := strings.TrimSpace(detail.Bio(s.Language)); bio != "" {
		lines = append(lines, "", html.EscapeString(bio))
	}
	resp.text(strings.Join(lines, "\n"))
	return nil
}

func instructorTariffName(lang model.Language, t model.InstructorTariffType) string {
	switch t {
	case model.InstructorTariffSingleHour:
		return T(lang, "tariff_single_hour")
	case model.InstructorTariffAutodrom:
		return T(lang, "tariff_autodrom")
	}
	if n := t.Lessons(); n > 0 {
		return T(lang, "tariff_package", n, lessonsWord(lang, n))
	}
	return string(t)
}

func yearsWord(lang model.Language, n int) string {
	if lang == model.LanguageKZ {
		return "жыл"
	}
	return formatting.PluralizeYears(n)
}

func lessonsWord(lang model.Language, n int) string {
	if lang == model.LanguageKZ {
		return "сабақ"
	}
	return formatting.PluralizeLessons(n)
}

func tariffStep() *stepDef {
	return &stepDef{
		step:   StepTariff,
		prompt: "choose_tariff",
		empty:  "no_tariffs",
		label:  "label_tariff",
		event:  "tariff_selected",
		auto:   true,
		options: func(_ context.Context, _ *Engine, s *Session) ([]Option, error) {
			tariffs := filter.MatchingTariffs(s.Tariffs, s.Selection.Filter())
			options := make([]Option, 0, len(tariffs))
			for _, t := range tariffs {
				options = append(options, idOption(t.ID, tariffLabel(s.Language, t)))
			}
			return options, nil
		},
		apply: func(_ context.Context, _ *Engine, s *Session, o Option, resp *Response) error {
			s.Selection.TariffID = optionID(o)
			t, ok := s.tariff()
			if !ok {
				return fmt.Errorf("tariff %q not loaded", o.ID)
			}
			card := T(s.Language, "tariff_card", html.EscapeString(t.Name(s.Language)), formatting.FormatPrice(t.PriceKZT))
			if desc := strings.TrimSpace(t.Description(s.Language)); desc != "" {
				card += "\n\n" + html.EscapeString(desc)
			}
			resp.text(card)
			return nil
		},
		reset: func(s *Session) { s.Selection.TariffID = nil },
	}
}

func tariffLabel(lang model.Language, t model.Tariff) string {
	return t.Name(lang) + " — " + formatting.FormatPrice(t.PriceKZT)
}

// tariff возвращает выбранный тариф
func (s *Session) tariff() (model.Tariff, bool) {
	if s.Selection.TariffID == nil {
		return model.Tariff{}, false
	}
	for _, t := range s.Tariffs {
		if t.ID == *s.Selection.TariffID {
			return t, true
		}
	}
	return model.Tariff{}, false
}

func nameStep() *stepDef {
	return &stepDef{
		step:       StepName,
		prompt:     "enter_name",
		invalid:    "invalid_name",
		enterEvent: "lead_form_opened",
		input: func(s *Session, in Input) bool {
			name, ok := NormalizeName(in.Text)
			if ok {
				s.Contact.Name = name
			}
			return ok
		},
		reset: func(s *Session) { s.Contact.Name = "" },
	}
}

func iinStep() *stepDef {
	return &stepDef{
		step:    StepIIN,
		prompt:  "enter_iin",
		invalid: "invalid_iin",
		input: func(s *Session, in Input) bool {
			iin := strings.TrimSpace(in.Text)
			if !ValidIIN(iin) {
				return false
			}
			s.Contact.IIN = iin
			return true
		},
		reset: func(s *Session) { s.Contact.IIN = "" },
	}
}

func phoneStep() *stepDef {
	return &stepDef{
		step:    StepPhone,
		prompt:  "enter_phone",
		invalid: "invalid_phone",
		contact: true,
		input: func(s *Session, in Input) bool {
			raw := in.ContactPhone
			if raw == "" {
				raw = in.Text
			}
			phone := NormalizePhone(raw)
			if phone == "" {
				return false
			}
			s.Contact.Phone = phone
			return true
		},
		reset: func(s *Session) { s.Contact.Phone = "" },
	}
}

func confirmStep() *stepDef {
	return &stepDef{step: StepConfirm}
}

func actionStep() *stepDef {
	return &stepDef{
		step:   StepAction,
		prompt: "choose_action",
		options: func(_ context.Context, _ *Engine, s *Session) ([]Option, error) {
			return []Option{
				{ID: string(FlowTests), Label: T(s.Language, "action_tests")},
				{ID: string(FlowSchool), Label: T(s.Language, "action_school")},
				{ID: string(FlowInstructor), Label: T(s.Language, "action_instructor")},
			}, nil
		},
		apply: func(ctx context.Context, e *Engine, s *Session, o Option, resp *Response) error {
			return e.switchFlow(ctx, s, FlowKind(o.ID), resp)
		},
	}
}

// testsIntro показывает стоимость подготовки к тестам из настроек
func testsIntro(ctx context.Context, e *Engine, s *Session, resp *Response) error {
	settings, err := e.catalog.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("get settings: %w", err)
	}
	s.TestsPriceKZT = settings.TestsPriceKZT
	if settings.TestsPriceKZT > 0 {
		resp.text(T(s.Language, "tests_intro", formatting.FormatPrice(settings.TestsPriceKZT)))
	} else {
		resp.text(T(s.Language, "tests_intro_free"))
	}
	return nil
}

func optionID(o Option) *int64 {
	id, ok := o.int64ID()
	if !ok {
		return nil
	}
	return &id
}

func deref(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
