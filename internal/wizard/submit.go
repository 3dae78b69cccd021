package wizard

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
	"github.com/Freeeeeet/drivelead_bot/internal/whatsapp"
)

// submitResource ключ защиты от повторной отправки заявки
const submitResource int64 = -1

// confirm обрабатывает ответ на экране подтверждения
func (e *Engine) confirm(ctx context.Context, s *Session, in Input, resp *Response) (bool, error) {
	text := strings.TrimSpace(in.Text)
	switch {
	case anyLanguage(text, "confirm_yes"):
		return false, e.submit(ctx, s, in.User, resp)
	case anyLanguage(text, "fix"):
		s.Contact = Contact{}
		for i, step := range s.History {
			if step == StepName {
				s.History = s.History[:i]
				break
			}
		}
		return true, e.enter(ctx, s, StepName, resp)
	default:
		resp.add(Reply{Text: e.summary(s), Keyboard: confirmKeyboard(s.Language)})
		return true, nil
	}
}

// summary текст экрана подтверждения
func (e *Engine) summary(s *Session) string {
	lines := []string{T(s.Language, "confirm_title"), ""}
	for _, sp := range e.flows[s.Flow].steps {
		if sp.label == "" {
			continue
		}
		value, ok := s.Labels[sp.step]
		if !ok {
			continue
		}
		lines = append(lines, summaryLine(s.Language, sp.label, value))
	}
	lines = append(lines, summaryLine(s.Language, "label_name", s.Contact.Name))
	if s.Contact.IIN != "" {
		lines = append(lines, summaryLine(s.Language, "label_iin", s.Contact.IIN))
	}
	lines = append(lines, summaryLine(s.Language, "label_phone", s.Contact.Phone))
	return strings.Join(lines, "\n")
}

func summaryLine(lang model.Language, labelKey, value string) string {
	return "<b>" + T(lang, labelKey) + ":</b> " + html.EscapeString(value)
}

// submit отправляет заявку и выдаёт ссылку WhatsApp
func (e *Engine) submit(ctx context.Context, s *Session, user model.BotUserInfo, resp *Response) error {
	if !e.inflight.TryAcquire(s.UserID, submitResource) {
		return errInFlight
	}
	defer e.inflight.Release(s.UserID, submitResource)

	flow := e.flows[s.Flow]
	req := e.leadRequest(s, flow, user)

	created, err := e.catalog.CreateLead(ctx, req)
	if err != nil {
		return fmt.Errorf("create lead: %w", err)
	}

	e.logger.Info("Lead submitted",
		zap.Int64("telegram_id", s.UserID),
		zap.String("lead_id", created.ID.String()),
		zap.String("type", string(req.Type)))
	e.track(ctx, s.UserID, "lead_submitted", map[string]any{"type": string(req.Type)}, &created.ID)

	resp.add(Reply{Text: T(s.Language, "thank_you"), Keyboard: mainMenuKeyboard(s.Language)})

	link := whatsapp.Link(e.whatsAppRecipient(flow.Service), whatsapp.Message{
		Service:  flow.Service,
		Provider: s.Provider,
		Name:     s.Contact.Name,
		Phone:    s.Contact.Phone,
		IIN:      s.Contact.IIN,
		Category: s.Labels[StepCategory],
		Language: s.Language,
	})
	if link != "" {
		resp.add(Reply{
			Text:     T(s.Language, "open_whatsapp_hint"),
			LinkText: T(s.Language, "open_whatsapp"),
			LinkURL:  link,
		})
		e.track(ctx, s.UserID, "whatsapp_opened", map[string]any{"service": string(flow.Service)}, &created.ID)
	}
	return nil
}

func (e *Engine) whatsAppRecipient(service whatsapp.Service) string {
	if service == whatsapp.ServiceTests {
		return e.cfg.WhatsAppTestsPhone
	}
	return e.cfg.WhatsAppSchoolsPhone
}

// leadRequest собирает заявку из накопленного выбора
func (e *Engine) leadRequest(s *Session, flow *Flow, user model.BotUserInfo) model.LeadRequest {
	user.TelegramUserID = s.UserID
	user.Language = s.Language

	sel := s.Selection
	req := model.LeadRequest{
		Type:       flow.LeadType,
		Language:   s.Language,
		MainIntent: s.Intent,
		BotUser:    user,
		Contact: model.Contact{
			Name:     s.Contact.Name,
			Phone:    s.Contact.Phone,
			IIN:      s.Contact.IIN,
			WhatsApp: s.Contact.Phone,
		},
		Payload: model.LeadPayload{
			CityID:     sel.CityID,
			CategoryID: sel.CategoryID,
		},
	}

	tariff, hasTariff := s.tariff()
	switch flow.LeadType {
	case model.LeadTypeSchool:
		req.Payload.SchoolID = sel.SchoolID
		req.Payload.TrainingFormatID = sel.FormatID
		req.Payload.TrainingTimeID = sel.TimeSlotID
		req.Payload.Gearbox = sel.Gearbox
		if hasTariff {
			price := tariff.PriceKZT
			req.Payload.TariffID = sel.TariffID
			req.Payload.TariffName = tariff.NameRU
			req.Payload.TariffPriceKZT = &price
		}
	case model.LeadTypeInstructor:
		req.Payload.InstructorID = sel.InstructorID
		req.Payload.Gearbox = sel.Gearbox
		req.Payload.PreferredGender = sel.Gender
		if hasTariff {
			price := tariff.PriceKZT
			req.Payload.InstructorTariffID = sel.TariffID
			req.Payload.TariffName = tariff.NameRU
			req.Payload.InstructorTariffPriceKZT = &price
		}
	case model.LeadTypeTests:
		if s.TestsPriceKZT > 0 {
			price := s.TestsPriceKZT
			req.Payload.TestsPriceKZT = &price
		}
	}
	return req
}
