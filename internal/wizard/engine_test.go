package wizard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/catalogclient"
	"github.com/Freeeeeet/drivelead_bot/internal/filter"
	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

const testUserID int64 = 42

type fakeCatalog struct {
	mu sync.Mutex

	cities     []model.City
	categories []model.Category
	formats    []model.TrainingFormat
	slots      []model.TrainingTimeSlot
	schools    []model.School
	school     model.SchoolDetail
	instrs     []model.Instructor
	instr      model.InstructorDetail
	settings   model.Settings

	citiesErr error
	detailErr error
	// detailGate блокирует GetSchoolDetail до закрытия, detailEntered сигналит о входе
	detailGate    chan struct{}
	detailEntered chan struct{}

	calls map[string]int
	leads []model.LeadRequest
}

func newFakeCatalog() *fakeCatalog {
	b := model.GearboxAT
	format := int64(5)
	return &fakeCatalog{
		cities: []model.City{{ID: 1, NameRU: "Алматы", NameKZ: "Алматы"}},
		categories: []model.Category{
			{ID: 1, Code: "A", NameRU: "Категория A"},
			{ID: 2, Code: "B", NameRU: "Категория B", ForTests: true},
		},
		formats: []model.TrainingFormat{
			{ID: 5, NameRU: "Офлайн"},
			{ID: 6, NameRU: "Онлайн"},
		},
		slots: []model.TrainingTimeSlot{
			{ID: 7, NameRU: "Утро", TimeRangeRU: "08:00-12:00"},
			{ID: 8, NameRU: "Вечер", TimeRangeRU: "18:00-21:00"},
		},
		schools: []model.School{{ID: 10, CityID: 1, NameRU: "Форсаж"}},
		school: model.SchoolDetail{
			School: model.School{ID: 10, CityID: 1, NameRU: "Форсаж", AddressRU: "ул. Абая 1"},
			Tariffs: []model.Tariff{{
				ID:               100,
				SchoolID:         10,
				NameRU:           "Стандарт",
				CategoryIDs:      []int64{2},
				TrainingFormatID: &format,
				Gearbox:          &b,
				TrainingTimeIDs:  []int64{7},
				PriceKZT:         150000,
				IsActive:         true,
			}},
		},
		instrs: []model.Instructor{{ID: 20, DisplayName: "Ержан", Gearbox: model.GearboxAT, Gender: model.GenderMale}},
		instr: model.InstructorDetail{
			Instructor: model.Instructor{ID: 20, DisplayName: "Ержан", ExperienceYears: 5, CarModel: "Toyota Camry"},
			Tariffs: []model.InstructorTariff{
				{ID: 300, InstructorID: 20, TariffType: model.InstructorTariffSingleHour, PriceKZT: 8000, IsActive: true, SortOrder: 1},
				{ID: 301, InstructorID: 20, TariffType: model.InstructorTariffPackage10, PriceKZT: 70000, IsActive: true, SortOrder: 2},
			},
		},
		settings: model.Settings{TestsPriceKZT: 5000},
		calls:    make(map[string]int),
	}
}

func (f *fakeCatalog) called(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeCatalog) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeCatalog) GetCities(context.Context) ([]model.City, error) {
	f.called("cities")
	return f.cities, f.citiesErr
}

func (f *fakeCatalog) GetCategories(_ context.Context, forTests bool) ([]model.Category, error) {
	f.called("categories")
	if !forTests {
		return f.categories, nil
	}
	var result []model.Category
	for _, c := range f.categories {
		if c.ForTests {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeCatalog) GetTrainingFormats(context.Context) ([]model.TrainingFormat, error) {
	f.called("formats")
	return f.formats, nil
}

func (f *fakeCatalog) GetTrainingTimeSlots(context.Context) ([]model.TrainingTimeSlot, error) {
	f.called("slots")
	return f.slots, nil
}

func (f *fakeCatalog) GetSchools(context.Context, int64) ([]model.School, error) {
	f.called("schools")
	return f.schools, nil
}

func (f *fakeCatalog) GetSchoolDetail(context.Context, int64, filter.Selection) (*model.SchoolDetail, error) {
	f.called("school_detail")
	if f.detailEntered != nil {
		f.detailEntered <- struct{}{}
	}
	if f.detailGate != nil {
		<-f.detailGate
	}
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	detail := f.school
	return &detail, nil
}

func (f *fakeCatalog) GetInstructors(context.Context, model.InstructorFilter) ([]model.Instructor, error) {
	f.called("instructors")
	return f.instrs, nil
}

func (f *fakeCatalog) GetInstructorDetail(context.Context, int64) (*model.InstructorDetail, error) {
	f.called("instructor_detail")
	detail := f.instr
	return &detail, nil
}

func (f *fakeCatalog) GetSettings(context.Context) (*model.Settings, error) {
	f.called("settings")
	s := f.settings
	return &s, nil
}

func (f *fakeCatalog) CreateLead(_ context.Context, req model.LeadRequest) (*model.LeadCreated, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads = append(f.leads, req)
	return &model.LeadCreated{ID: uuid.New(), Status: model.LeadStatusNew}, nil
}

type fakeEvents struct {
	mu    sync.Mutex
	names []string
}

func (f *fakeEvents) SendEvent(_ context.Context, event model.EventRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = append(f.names, event.EventName)
	return nil
}

func (f *fakeEvents) has(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.names {
		if n == name {
			return true
		}
	}
	return false
}

type testEnv struct {
	engine  *Engine
	catalog *fakeCatalog
	events  *fakeEvents
	store   *SessionStore
}

func newTestEnv(t *testing.T, catalog *fakeCatalog) *testEnv {
	t.Helper()
	store := NewSessionStore()
	store.SetLanguage(testUserID, model.LanguageRU)
	events := &fakeEvents{}
	engine := NewEngine(catalog, events, store, Config{
		DefaultLanguage:      model.LanguageRU,
		WhatsAppSchoolsPhone: "+7 701 000 00 01",
		WhatsAppTestsPhone:   "+7 701 000 00 02",
	}, zap.NewNop())
	engine.now = func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) }
	return &testEnv{engine: engine, catalog: catalog, events: events, store: store}
}

func (env *testEnv) send(text string) *Response {
	return env.engine.Handle(context.Background(), Input{
		User: model.BotUserInfo{TelegramUserID: testUserID, Username: "student"},
		Text: text,
	})
}

func (env *testEnv) session(t *testing.T) *Session {
	t.Helper()
	s, ok := env.store.Get(testUserID)
	require.True(t, ok, "session must exist")
	return s
}

func lastText(resp *Response) string {
	if len(resp.Replies) == 0 {
		return ""
	}
	return resp.Replies[len(resp.Replies)-1].Text
}

func allTexts(resp *Response) string {
	texts := make([]string, 0, len(resp.Replies))
	for _, r := range resp.Replies {
		texts = append(texts, r.Text)
	}
	return strings.Join(texts, "\n")
}

func TestEngine_Start(t *testing.T) {
	store := NewSessionStore()
	engine := NewEngine(newFakeCatalog(), nil, store, Config{}, zap.NewNop())
	ctx := context.Background()
	in := Input{User: model.BotUserInfo{TelegramUserID: testUserID}}

	resp := engine.Start(ctx, in)
	require.Len(t, resp.Replies, 1)
	assert.Equal(t, T(model.LanguageRU, "language_select"), resp.Replies[0].Text)

	in.Text = T(model.LanguageRU, "lang_kz")
	resp = engine.Handle(ctx, in)
	assert.Equal(t, T(model.LanguageKZ, "main_welcome"), lastText(resp))

	lang, ok := store.Language(testUserID)
	require.True(t, ok)
	assert.Equal(t, model.LanguageKZ, lang)
	assert.Equal(t, 0, store.Len())

	// язык запомнен, повторный /start сразу показывает меню
	resp = engine.Start(ctx, Input{User: model.BotUserInfo{TelegramUserID: testUserID}})
	assert.Equal(t, T(model.LanguageKZ, "main_welcome"), lastText(resp))
}

func TestEngine_SchoolFlowAutoSelectsSingleTariff(t *testing.T) {
	env := newTestEnv(t, newFakeCatalog())

	resp := env.send(T(model.LanguageRU, "menu_no_license"))
	assert.Equal(t, T(model.LanguageRU, "choose_city"), lastText(resp))
	assert.Equal(t, StepCity, env.session(t).Step)

	resp = env.send("Алматы")
	assert.Equal(t, T(model.LanguageRU, "choose_school"), lastText(resp))

	resp = env.send("форсаж")
	require.Len(t, resp.Replies, 2)
	assert.Contains(t, resp.Replies[0].Text, "Форсаж")
	assert.Contains(t, resp.Replies[0].Text, "ул. Абая 1")
	assert.Equal(t, T(model.LanguageRU, "choose_category"), lastText(resp))

	// формат, КПП, время и тариф выбираются автоматически
	resp = env.send("Категория B")
	assert.Contains(t, allTexts(resp), "Стандарт")
	assert.Contains(t, allTexts(resp), "150 000 ₸")
	assert.Equal(t, T(model.LanguageRU, "enter_name"), lastText(resp))

	s := env.session(t)
	assert.Equal(t, StepName, s.Step)
	assert.Equal(t, []Step{StepCity, StepSchool, StepCategory}, s.History)
	require.NotNil(t, s.Selection.TariffID)
	assert.Equal(t, int64(100), *s.Selection.TariffID)
	require.NotNil(t, s.Selection.Gearbox)
	assert.Equal(t, model.GearboxAT, *s.Selection.Gearbox)
	assert.True(t, env.events.has("lead_form_opened"))
}

func TestEngine_SchoolFlowSubmitsLead(t *testing.T) {
	env := newTestEnv(t, newFakeCatalog())

	env.send(T(model.LanguageRU, "menu_no_license"))
	env.send("Алматы")
	env.send("Форсаж")
	env.send("Категория B")

	resp := env.send("иван петров")
	assert.Equal(t, T(model.LanguageRU, "enter_phone"), lastText(resp))
	require.Len(t, resp.Replies[0].Keyboard, 2)
	assert.True(t, resp.Replies[0].Keyboard[0][0].RequestContact)

	resp = env.engine.Handle(context.Background(), Input{
		User:         model.BotUserInfo{TelegramUserID: testUserID},
		ContactPhone: "77011234567",
	})
	summary := lastText(resp)
	assert.Contains(t, summary, "Иван Петров")
	assert.Contains(t, summary, "+77011234567")
	assert.Contains(t, summary, "Форсаж")
	assert.Contains(t, summary, "Категория B")

	resp = env.send(T(model.LanguageRU, "confirm_yes"))
	require.Len(t, resp.Replies, 2)
	assert.Equal(t, T(model.LanguageRU, "thank_you"), resp.Replies[0].Text)
	assert.True(t, strings.HasPrefix(resp.Replies[1].LinkURL, "https://wa.me/77010000001?text="))

	require.Len(t, env.catalog.leads, 1)
	lead := env.catalog.leads[0]
	assert.Equal(t, model.LeadTypeSchool, lead.Type)
	assert.Equal(t, model.IntentNoLicense, lead.MainIntent)
	assert.Equal(t, "Иван Петров", lead.Contact.Name)
	assert.Equal(t, "+77011234567", lead.Contact.Phone)
	assert.Equal(t, "+77011234567", lead.Contact.WhatsApp)
	assert.Equal(t, int64(10), *lead.Payload.SchoolID)
	assert.Equal(t, int64(100), *lead.Payload.TariffID)
	assert.Equal(t, "Стандарт", lead.Payload.TariffName)
	assert.Equal(t, 150000, *lead.Payload.TariffPriceKZT)
	assert.Equal(t, int64(5), *lead.Payload.TrainingFormatID)
	assert.Equal(t, int64(7), *lead.Payload.TrainingTimeID)
	assert.Equal(t, "student", lead.BotUser.Username)

	_, ok := env.store.Get(testUserID)
	assert.False(t, ok, "session cleared after submit")
	assert.True(t, env.events.has("lead_submitted"))
	assert.True(t, env.events.has("whatsapp_opened"))
}

func TestEngine_PromptsGearboxWhenBothAvailable(t *testing.T) {
	catalog := newFakeCatalog()
	mt := model.GearboxMT
	second := catalog.school.Tariffs[0]
	second.ID = 101
	second.Gearbox = &mt
	catalog.school.Tariffs = append(catalog.school.Tariffs, second)
	env := newTestEnv(t, catalog)

	env.send(T(model.LanguageRU, "menu_no_license"))
	env.send("Алматы")
	env.send("Форсаж")
	resp := env.send("Категория B")

	assert.Equal(t, T(model.LanguageRU, "choose_gearbox"), lastText(resp))
	s := env.session(t)
	assert.Equal(t, StepGearbox, s.Step)
	require.Len(t, s.Options, 2)
	assert.Equal(t, "AT", s.Options[0].ID)
	assert.Equal(t, "MT", s.Options[1].ID)
	require.NotNil(t, s.Selection.FormatID, "single format applied automatically")

	resp = env.send("Механика")
	assert.Equal(t, T(model.LanguageRU, "enter_name"), lastText(resp))
	s = env.session(t)
	assert.Equal(t, int64(101), *s.Selection.TariffID)
}

func TestEngine_BackRecomputesOptions(t *testing.T) {
	catalog := newFakeCatalog()
	online := int64(6)
	second := catalog.school.Tariffs[0]
	second.ID = 102
	second.TrainingFormatID = &online
	catalog.school.Tariffs = append(catalog.school.Tariffs, second)
	env := newTestEnv(t, catalog)

	env.send(T(model.LanguageRU, "menu_no_license"))
	env.send("Алматы")
	env.send("Форсаж")
	resp := env.send("Категория B")
	assert.Equal(t, T(model.LanguageRU, "choose_format"), lastText(resp))
	assert.Equal(t, 1, catalog.count("categories"))

	resp = env.send(T(model.LanguageRU, "back"))
	assert.Equal(t, T(model.LanguageRU, "choose_category"), lastText(resp))
	assert.Equal(t, 2, catalog.count("categories"))

	s := env.session(t)
	assert.Equal(t, StepCategory, s.Step)
	assert.Nil(t, s.Selection.CategoryID)
	assert.Equal(t, []Step{StepCity, StepSchool}, s.History)
	assert.NotContains(t, s.Labels, StepCategory)
	assert.Equal(t, int64(10), *s.Selection.SchoolID)

	// назад до первого шага и дальше в меню
	env.send(T(model.LanguageRU, "back"))
	env.send(T(model.LanguageRU, "back"))
	assert.Equal(t, StepCity, env.session(t).Step)
	resp = env.send(T(model.LanguageRU, "back"))
	assert.Equal(t, T(model.LanguageRU, "main_welcome"), lastText(resp))
	_, ok := env.store.Get(testUserID)
	assert.False(t, ok)
}

func TestEngine_CatalogErrorResetsSession(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.citiesErr = &catalogclient.Error{Kind: catalogclient.KindTimeout, Op: "get cities"}
	env := newTestEnv(t, catalog)

	resp := env.send(T(model.LanguageRU, "menu_no_license"))
	require.Len(t, resp.Replies, 1)
	assert.Equal(t, T(model.LanguageRU, "error_timeout"), resp.Replies[0].Text)
	assert.Equal(t, mainMenuKeyboard(model.LanguageRU), resp.Replies[0].Keyboard)

	_, ok := env.store.Get(testUserID)
	assert.False(t, ok)
}

func TestEngine_CatalogErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		key  string
	}{
		{"client", &catalogclient.Error{Kind: catalogclient.KindClient, Op: "get cities", Status: 404}, "error_client"},
		{"server", &catalogclient.Error{Kind: catalogclient.KindServer, Op: "get cities", Status: 503}, "error_server"},
		{"timeout", &catalogclient.Error{Kind: catalogclient.KindTimeout, Op: "get cities"}, "error_timeout"},
		{"network", &catalogclient.Error{Kind: catalogclient.KindNetwork, Op: "get cities"}, "error_network"},
		{"unknown", &catalogclient.Error{Kind: catalogclient.KindUnknown, Op: "get cities"}, "error_unknown"},
		{"unclassified", errors.New("boom"), "error_unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := newFakeCatalog()
			catalog.citiesErr = tt.err
			env := newTestEnv(t, catalog)

			resp := env.send(T(model.LanguageRU, "menu_no_license"))
			require.Len(t, resp.Replies, 1)
			assert.Equal(t, T(model.LanguageRU, tt.key), resp.Replies[0].Text)
			assert.Equal(t, mainMenuKeyboard(model.LanguageRU), resp.Replies[0].Keyboard)

			_, ok := env.store.Get(testUserID)
			assert.False(t, ok)
		})
	}
}

func TestEngine_SchoolDetailErrorReleasesSchool(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.detailErr = &catalogclient.Error{Kind: catalogclient.KindServer, Op: "get school", Status: 500}
	env := newTestEnv(t, catalog)

	env.send(T(model.LanguageRU, "menu_no_license"))
	env.send("Алматы")
	resp := env.send("Форсаж")
	assert.Equal(t, T(model.LanguageRU, "error_server"), lastText(resp))
	_, ok := env.store.Get(testUserID)
	assert.False(t, ok)

	// повторный выбор той же автошколы снова доходит до каталога
	catalog.detailErr = nil
	env.send(T(model.LanguageRU, "menu_no_license"))
	env.send("Алматы")
	resp = env.send("Форсаж")

	assert.Equal(t, T(model.LanguageRU, "choose_category"), lastText(resp))
	assert.Equal(t, 2, catalog.count("school_detail"))
	assert.Equal(t, StepCategory, env.session(t).Step)
}

func TestEngine_NoTimeSlotsSkipsStep(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.school.Tariffs[0].TrainingTimeIDs = nil
	env := newTestEnv(t, catalog)

	env.send(T(model.LanguageRU, "menu_no_license"))
	env.send("Алматы")
	env.send("Форсаж")
	resp := env.send("Категория B")

	assert.Contains(t, allTexts(resp), "Стандарт")
	assert.Equal(t, T(model.LanguageRU, "enter_name"), lastText(resp))
	assert.Equal(t, 1, catalog.count("slots"))

	s := env.session(t)
	assert.Equal(t, StepName, s.Step)
	assert.Nil(t, s.Selection.TimeSlotID)
	assert.NotContains(t, s.Labels, StepTimeSlot)
	require.NotNil(t, s.Selection.TariffID)
	assert.Equal(t, int64(100), *s.Selection.TariffID)

	env.send("Иван Петров")
	resp = env.send("+77011234567")
	assert.NotContains(t, lastText(resp), T(model.LanguageRU, "label_time"))
}

func TestEngine_NoCategoriesEndsDialog(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.school.Tariffs[0].CategoryIDs = []int64{99}
	env := newTestEnv(t, catalog)

	env.send(T(model.LanguageRU, "menu_no_license"))
	env.send("Алматы")
	resp := env.send("Форсаж")

	assert.Equal(t, T(model.LanguageRU, "no_categories"), lastText(resp))
	_, ok := env.store.Get(testUserID)
	assert.False(t, ok)
}

func TestEngine_UnknownOptionRepromptsSameStep(t *testing.T) {
	env := newTestEnv(t, newFakeCatalog())

	env.send(T(model.LanguageRU, "menu_no_license"))
	resp := env.send("Астана")

	require.Len(t, resp.Replies, 1)
	assert.Equal(t, T(model.LanguageRU, "unknown_option"), resp.Replies[0].Text)
	assert.Equal(t, "Алматы", resp.Replies[0].Keyboard[0][0].Text)
	assert.Equal(t, StepCity, env.session(t).Step)
}

func TestEngine_DuplicateSchoolSelectionDropped(t *testing.T) {
	catalog := newFakeCatalog()
	env := newTestEnv(t, catalog)

	env.send(T(model.LanguageRU, "menu_no_license"))
	env.send("Алматы")

	catalog.detailGate = make(chan struct{})
	catalog.detailEntered = make(chan struct{}, 1)

	done := make(chan *Response, 1)
	go func() { done <- env.send("Форсаж") }()

	select {
	case <-catalog.detailEntered:
	case <-time.After(time.Second):
		t.Fatal("first request did not reach catalog")
	}

	second := env.send("Форсаж")
	assert.Empty(t, second.Replies)

	close(catalog.detailGate)
	first := <-done
	assert.Equal(t, T(model.LanguageRU, "choose_category"), lastText(first))
	assert.Equal(t, 1, catalog.count("school_detail"))
	assert.Equal(t, StepCategory, env.session(t).Step)
}

func TestEngine_TestsFlowValidatesInput(t *testing.T) {
	env := newTestEnv(t, newFakeCatalog())

	resp := env.send(T(model.LanguageRU, "menu_tests"))
	require.Len(t, resp.Replies, 2)
	assert.Contains(t, resp.Replies[0].Text, "5 000 ₸")
	assert.Equal(t, T(model.LanguageRU, "choose_category"), lastText(resp))

	env.send("Категория B")
	resp = env.send("Айгерим")
	assert.Equal(t, T(model.LanguageRU, "enter_iin"), lastText(resp))

	resp = env.send("123")
	assert.Equal(t, T(model.LanguageRU, "invalid_iin"), lastText(resp))
	assert.Equal(t, StepIIN, env.session(t).Step)

	env.send("900101300123")
	resp = env.send("12345")
	assert.Equal(t, T(model.LanguageRU, "invalid_phone"), lastText(resp))
	assert.Equal(t, StepPhone, env.session(t).Step)

	resp = env.send("8 701 123 45 67")
	assert.Contains(t, lastText(resp), "900101300123")

	// исправление возвращает к вводу имени
	resp = env.send(T(model.LanguageRU, "fix"))
	assert.Equal(t, T(model.LanguageRU, "enter_name"), lastText(resp))
	assert.Equal(t, []Step{StepCategory}, env.session(t).History)

	env.send("Айгерим")
	env.send("900101300123")
	env.send("+77011234567")
	resp = env.send(T(model.LanguageRU, "confirm_yes"))
	require.Len(t, resp.Replies, 2)
	assert.True(t, strings.HasPrefix(resp.Replies[1].LinkURL, "https://wa.me/77010000002?text="))

	require.Len(t, env.catalog.leads, 1)
	lead := env.catalog.leads[0]
	assert.Equal(t, model.LeadTypeTests, lead.Type)
	assert.Equal(t, "900101300123", lead.Contact.IIN)
	require.NotNil(t, lead.Payload.TestsPriceKZT)
	assert.Equal(t, 5000, *lead.Payload.TestsPriceKZT)
	assert.Nil(t, lead.Payload.SchoolID)
}

func TestEngine_InstructorFlow(t *testing.T) {
	env := newTestEnv(t, newFakeCatalog())

	env.send(T(model.LanguageRU, "menu_has_license"))
	resp := env.send("Алматы")

	// без сертификата доступна только категория B
	s := env.session(t)
	assert.Equal(t, StepCategory, s.Step)
	require.Len(t, s.Options, 1)
	assert.Equal(t, "2", s.Options[0].ID)
	assert.Equal(t, T(model.LanguageRU, "choose_category"), lastText(resp))

	env.send("Категория B")
	resp = env.send(T(model.LanguageRU, "gearbox_automatic"))
	assert.Equal(t, T(model.LanguageRU, "choose_gender"), lastText(resp))

	env.send(T(model.LanguageRU, "gender_any"))
	resp = env.send("Ержан")
	assert.Contains(t, allTexts(resp), "Toyota Camry")
	assert.Equal(t, T(model.LanguageRU, "choose_tariff"), lastText(resp))
	assert.Nil(t, env.session(t).Selection.Gender)

	env.send("Пакет")
	env.send("Ержан Касымов")
	env.send("+77011234567")
	env.send(T(model.LanguageRU, "confirm_yes"))

	require.Len(t, env.catalog.leads, 1)
	lead := env.catalog.leads[0]
	assert.Equal(t, model.LeadTypeInstructor, lead.Type)
	assert.Equal(t, int64(20), *lead.Payload.InstructorID)
	assert.Equal(t, int64(301), *lead.Payload.InstructorTariffID)
	assert.Equal(t, "Пакет: 10 занятий", lead.Payload.TariffName)
	assert.Equal(t, 70000, *lead.Payload.InstructorTariffPriceKZT)
	assert.Equal(t, model.GearboxAT, *lead.Payload.Gearbox)
	assert.Nil(t, lead.Payload.PreferredGender)
}

func TestEngine_CertificateSwitchesFlow(t *testing.T) {
	env := newTestEnv(t, newFakeCatalog())

	resp := env.send(T(model.LanguageRU, "menu_certificate"))
	assert.Equal(t, T(model.LanguageRU, "choose_action"), lastText(resp))

	resp = env.send(T(model.LanguageRU, "action_tests"))
	assert.Equal(t, T(model.LanguageRU, "choose_category"), lastText(resp))

	s := env.session(t)
	assert.Equal(t, FlowTests, s.Flow)
	assert.Equal(t, model.IntentCertNotPassed, s.Intent)
	assert.Equal(t, []Step{StepAction}, s.History)

	// «Назад» с первого шага возвращает к выбору действия
	env.send("Категория B")
	env.send(T(model.LanguageRU, "back"))
	resp = env.send(T(model.LanguageRU, "back"))
	assert.Equal(t, T(model.LanguageRU, "choose_action"), lastText(resp))

	s = env.session(t)
	assert.Equal(t, FlowCertificate, s.Flow)
	assert.Equal(t, StepAction, s.Step)
	assert.Empty(t, s.History)
	assert.Nil(t, s.Selection.CategoryID)
	assert.Equal(t, model.IntentCertNotPassed, s.Intent)

	// с сертификатом инструкторы доступны для всех категорий
	env.send(T(model.LanguageRU, "action_instructor"))
	assert.Equal(t, FlowInstructor, env.session(t).Flow)
	env.send("Алматы")
	assert.Len(t, env.session(t).Options, 2)

	resp = env.send(T(model.LanguageRU, "back"))
	assert.Equal(t, T(model.LanguageRU, "choose_city"), lastText(resp))
	env.send(T(model.LanguageRU, "back"))
	resp = env.send(T(model.LanguageRU, "back"))
	assert.Equal(t, T(model.LanguageRU, "main_welcome"), lastText(resp))
	_, ok := env.store.Get(testUserID)
	assert.False(t, ok)
}

func TestEngine_MainMenuClearsSession(t *testing.T) {
	env := newTestEnv(t, newFakeCatalog())

	env.send(T(model.LanguageRU, "menu_no_license"))
	require.Equal(t, 1, env.store.Len())

	resp := env.send(T(model.LanguageKZ, "main_menu"))
	assert.Equal(t, T(model.LanguageRU, "main_welcome"), lastText(resp))
	assert.Equal(t, 0, env.store.Len())
}

func TestEngine_NoSessionShowsMenu(t *testing.T) {
	env := newTestEnv(t, newFakeCatalog())

	resp := env.send("привет")
	assert.Equal(t, T(model.LanguageRU, "main_welcome"), lastText(resp))
	assert.Equal(t, 0, env.store.Len())
}
