// Package wizard пошаговый диалог подбора автошколы, инструктора или подготовки к тестам.
// Engine не зависит от Telegram: принимает Input и возвращает Response с текстами и клавиатурами.
package wizard

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/catalogclient"
	"github.com/Freeeeeet/drivelead_bot/internal/filter"
	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

// errInFlight повторное сообщение, пока предыдущее по тому же ресурсу ещё обрабатывается
var errInFlight = errors.New("request already in flight")

// noResultsError на обязательном шаге не осталось вариантов
type noResultsError struct {
	key string
}

func (e *noResultsError) Error() string { return "no results: " + e.key }

func noResults(key string) error { return &noResultsError{key: key} }

// Config настройки движка
type Config struct {
	DefaultLanguage      model.Language
	WhatsAppSchoolsPhone string
	WhatsAppTestsPhone   string
}

// Engine обрабатывает сообщения пользователей
type Engine struct {
	catalog  Catalog
	events   EventSink
	sessions *SessionStore
	inflight *InFlight
	flows    map[FlowKind]*Flow
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewEngine создаёт движок диалога, events может быть nil
func NewEngine(catalog Catalog, events EventSink, sessions *SessionStore, cfg Config, logger *zap.Logger) *Engine {
	if !cfg.DefaultLanguage.Valid() {
		cfg.DefaultLanguage = model.LanguageRU
	}
	return &Engine{
		catalog:  catalog,
		events:   events,
		sessions: sessions,
		inflight: NewInFlight(),
		flows:    defaultFlows(),
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Start обрабатывает /start: выбор языка при первом входе, иначе главное меню
func (e *Engine) Start(ctx context.Context, in Input) *Response {
	userID := in.User.TelegramUserID
	e.track(ctx, userID, "bot_started", nil, nil)
	e.sessions.Clear(userID)

	resp := &Response{}
	lang, ok := e.sessions.Language(userID)
	if !ok {
		e.askLanguage(userID, resp)
		return resp
	}
	e.menu(lang, resp)
	return resp
}

// Handle обрабатывает текстовое сообщение или отправленный контакт
func (e *Engine) Handle(ctx context.Context, in Input) *Response {
	userID := in.User.TelegramUserID
	text := strings.TrimSpace(in.Text)
	lang := e.language(userID)
	resp := &Response{}

	switch {
	case anyLanguage(text, "main_menu"):
		e.sessions.Clear(userID)
		e.menu(lang, resp)
		return resp
	case anyLanguage(text, "menu_language"):
		e.askLanguage(userID, resp)
		return resp
	}

	if kind, intent, ok := menuChoice(text); ok {
		s := NewSession(userID, lang, e.now())
		s.Intent = intent
		e.track(ctx, userID, "intent_selected", map[string]any{"intent": string(intent)}, nil)
		err := e.switchFlow(ctx, s, kind, resp)
		if err == nil {
			err = e.enter(ctx, s, e.flows[s.Flow].first(), resp)
		}
		return e.finish(s, true, err, resp)
	}

	s, ok := e.sessions.Get(userID)
	if !ok {
		e.menu(lang, resp)
		return resp
	}

	keep, err := e.process(ctx, s, in, resp)
	return e.finish(s, keep, err, resp)
}

// process выполняет один шаг диалога; keep=false когда сессия завершена
func (e *Engine) process(ctx context.Context, s *Session, in Input, resp *Response) (bool, error) {
	if s.Step == StepLanguage {
		e.chooseLanguage(ctx, s, in, resp)
		return false, nil
	}

	flow, ok := e.flows[s.Flow]
	if !ok {
		e.menu(s.Language, resp)
		return false, nil
	}

	text := strings.TrimSpace(in.Text)
	if anyLanguage(text, "back") {
		return e.back(ctx, s, resp)
	}

	def, ok := flow.def(s.Step)
	if !ok {
		e.menu(s.Language, resp)
		return false, nil
	}

	switch {
	case def.step == StepConfirm:
		return e.confirm(ctx, s, in, resp)
	case def.choice():
		o, ok := matchOption(s.Options, in)
		if !ok {
			resp.add(Reply{Text: T(s.Language, "unknown_option"), Keyboard: optionsKeyboard(s.Language, s.Options)})
			return true, nil
		}
		return true, e.choose(ctx, s, def, o, resp)
	default:
		if !def.input(s, in) {
			resp.add(e.prompt(s, def, T(s.Language, def.invalid)))
			return true, nil
		}
		s.pushHistory(def.step)
		return true, e.enter(ctx, s, flow.next(def.step), resp)
	}
}

// finish сохраняет или очищает сессию в зависимости от результата шага
func (e *Engine) finish(s *Session, keep bool, err error, resp *Response) *Response {
	var nr *noResultsError
	switch {
	case err == nil:
		if keep {
			s.UpdatedAt = e.now()
			e.sessions.Save(s)
		} else {
			e.sessions.Clear(s.UserID)
		}
		return resp
	case errors.Is(err, errInFlight):
		e.logger.Debug("Duplicate message dropped",
			zap.Int64("telegram_id", s.UserID),
			zap.String("step", string(s.Step)))
		return &Response{}
	case errors.As(err, &nr):
		e.sessions.Clear(s.UserID)
		resp.add(Reply{Text: T(s.Language, nr.key), Keyboard: mainMenuKeyboard(s.Language)})
		return resp
	default:
		kind := catalogclient.KindOf(err)
		e.logger.Error("Wizard step failed, session reset",
			zap.Int64("telegram_id", s.UserID),
			zap.String("flow", string(s.Flow)),
			zap.String("step", string(s.Step)),
			zap.String("kind", string(kind)),
			zap.Error(err))
		e.sessions.Clear(s.UserID)
		return &Response{Replies: []Reply{{
			Text:     T(s.Language, errorKey(kind)),
			Keyboard: mainMenuKeyboard(s.Language),
		}}}
	}
}

func errorKey(kind catalogclient.Kind) string {
	switch kind {
	case catalogclient.KindClient:
		return "error_client"
	case catalogclient.KindServer:
		return "error_server"
	case catalogclient.KindTimeout:
		return "error_timeout"
	case catalogclient.KindNetwork:
		return "error_network"
	default:
		return "error_unknown"
	}
}

// switchFlow переводит сессию в сценарий kind. История очищается,
// кроме шага выбора действия, с которого сценарий был выбран.
func (e *Engine) switchFlow(ctx context.Context, s *Session, kind FlowKind, resp *Response) error {
	flow, ok := e.flows[kind]
	if !ok {
		return errors.New("unknown flow " + string(kind))
	}
	s.Flow = kind
	if n := len(s.History); n > 0 && s.History[n-1] == StepAction {
		s.History = []Step{StepAction}
	} else {
		s.History = nil
	}
	e.track(ctx, s.UserID, "flow_selected", map[string]any{"flow": string(kind)}, nil)
	if flow.intro != nil {
		return flow.intro(ctx, e, s, resp)
	}
	return nil
}

// choose записывает выбранный вариант и переходит к следующему шагу
func (e *Engine) choose(ctx context.Context, s *Session, def *stepDef, o Option, resp *Response) error {
	s.pushHistory(def.step)
	s.Labels[def.step] = o.Label
	if err := def.apply(ctx, e, s, o, resp); err != nil {
		return err
	}
	if def.event != "" {
		e.track(ctx, s.UserID, def.event, map[string]any{"id": o.ID, "flow": string(s.Flow)}, nil)
	}
	return e.enter(ctx, s, e.flows[s.Flow].next(def.step), resp)
}

// enter показывает шаг step. Шаги без вариантов либо пропускаются (optional),
// либо завершают диалог; единственный вариант выбирается автоматически (auto).
// Варианты всегда вычисляются заново.
func (e *Engine) enter(ctx context.Context, s *Session, step Step, resp *Response) error {
	for step != StepNone {
		flow := e.flows[s.Flow]
		def, ok := flow.def(step)
		if !ok {
			return errors.New("unknown step " + string(step))
		}

		if !def.choice() {
			s.Step = step
			s.Options = nil
			resp.add(e.prompt(s, def, ""))
			if def.enterEvent != "" {
				e.track(ctx, s.UserID, def.enterEvent, map[string]any{"flow": string(s.Flow)}, nil)
			}
			return nil
		}

		options, err := def.options(ctx, e, s)
		if err != nil {
			return err
		}

		if len(options) == 0 {
			if def.optional {
				step = flow.next(step)
				continue
			}
			return noResults(def.empty)
		}

		if def.auto && filter.ShouldSkip(options) {
			s.Labels[step] = options[0].Label
			if err := def.apply(ctx, e, s, options[0], resp); err != nil {
				return err
			}
			step = e.flows[s.Flow].next(step)
			continue
		}

		s.Step = step
		s.Options = options
		resp.add(e.prompt(s, def, ""))
		return nil
	}
	return errors.New("flow " + string(s.Flow) + " ended without confirmation")
}

// back возвращает на последний шаг, где пользователь выбирал сам, и пересчитывает варианты
func (e *Engine) back(ctx context.Context, s *Session, resp *Response) (bool, error) {
	flow := e.flows[s.Flow]
	prev, ok := s.popHistory()
	if ok && prev == StepAction && flow.index(prev) < 0 {
		// возврат к выбору действия в сценарии сертификата
		flow.resetFrom(s, flow.first())
		s.Flow = FlowCertificate
		flow = e.flows[s.Flow]
	}
	if !ok || flow.index(prev) < 0 {
		e.menu(s.Language, resp)
		return false, nil
	}
	flow.resetFrom(s, prev)
	return true, e.enter(ctx, s, prev, resp)
}

// prompt вопрос текущего шага; notice заменяет текст вопроса (например, ошибка ввода)
func (e *Engine) prompt(s *Session, def *stepDef, notice string) Reply {
	text := T(s.Language, def.prompt)
	if notice != "" {
		text = notice
	}
	switch {
	case def.step == StepConfirm:
		return Reply{Text: e.summary(s), Keyboard: confirmKeyboard(s.Language)}
	case def.choice():
		return Reply{Text: text, Keyboard: optionsKeyboard(s.Language, s.Options)}
	case def.contact:
		return Reply{Text: text, Keyboard: phoneKeyboard(s.Language)}
	default:
		return Reply{Text: text, Keyboard: navigationKeyboard(s.Language)}
	}
}

func (e *Engine) menu(lang model.Language, resp *Response) {
	resp.add(Reply{Text: T(lang, "main_welcome"), Keyboard: mainMenuKeyboard(lang)})
}

func (e *Engine) askLanguage(userID int64, resp *Response) {
	s := NewSession(userID, e.language(userID), e.now())
	s.Step = StepLanguage
	e.sessions.Save(s)
	resp.add(Reply{Text: T(model.LanguageRU, "language_select"), Keyboard: languageKeyboard()})
}

func (e *Engine) chooseLanguage(ctx context.Context, s *Session, in Input, resp *Response) {
	lang := model.LanguageRU
	lower := strings.ToLower(in.Text)
	if strings.Contains(lower, "қаз") || strings.Contains(lower, "kz") {
		lang = model.LanguageKZ
	}
	e.sessions.SetLanguage(s.UserID, lang)
	e.track(ctx, s.UserID, "language_selected", map[string]any{"language": string(lang)}, nil)
	e.menu(lang, resp)
}

func (e *Engine) language(userID int64) model.Language {
	if lang, ok := e.sessions.Language(userID); ok {
		return lang
	}
	return e.cfg.DefaultLanguage
}

// menuChoice распознаёт кнопку главного меню на любом языке
func menuChoice(text string) (FlowKind, model.Intent, bool) {
	switch {
	case anyLanguage(text, "menu_no_license"):
		return FlowSchool, model.IntentNoLicense, true
	case anyLanguage(text, "menu_has_license"):
		return FlowInstructor, model.IntentRefresh, true
	case anyLanguage(text, "menu_certificate"):
		return FlowCertificate, model.IntentCertNotPassed, true
	case anyLanguage(text, "menu_tests"):
		return FlowTests, model.IntentNone, true
	default:
		return FlowNone, model.IntentNone, false
	}
}

// track отправляет событие аналитики, ошибки не влияют на диалог
func (e *Engine) track(ctx context.Context, userID int64, name string, payload map[string]any, leadID *uuid.UUID) {
	if e.events == nil {
		return
	}
	if payload == nil {
		payload = map[string]any{}
	}
	err := e.events.SendEvent(ctx, model.EventRequest{
		EventName:      name,
		Payload:        payload,
		TelegramUserID: userID,
		LeadID:         leadID,
	})
	if err != nil {
		e.logger.Warn("Failed to send analytics event",
			zap.String("event", name),
			zap.Int64("telegram_id", userID),
			zap.Error(err))
	}
}
