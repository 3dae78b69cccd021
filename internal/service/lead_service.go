package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
	"github.com/Freeeeeet/drivelead_bot/internal/repository"
)

const leadSourceBot = "telegram_bot"

type LeadService struct {
	pool        *pgxpool.Pool
	leadRepo    *repository.LeadRepository
	botUserRepo *repository.BotUserRepository
	logger      *zap.Logger
}

func NewLeadService(
	pool *pgxpool.Pool,
	leadRepo *repository.LeadRepository,
	botUserRepo *repository.BotUserRepository,
	logger *zap.Logger,
) *LeadService {
	return &LeadService{
		pool:        pool,
		leadRepo:    leadRepo,
		botUserRepo: botUserRepo,
		logger:      logger,
	}
}

// Create сохраняет заявку из бота: пользователь, заявка и первая запись истории в одной транзакции
func (s *LeadService) Create(ctx context.Context, req model.LeadRequest) (*model.LeadCreated, error) {
	if err := ValidateLeadRequest(req); err != nil {
		return nil, err
	}

	lead := BuildLead(req)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if req.BotUser.TelegramUserID != 0 {
		user := req.BotUser
		if !user.Language.Valid() {
			user.Language = lead.Language
		}
		botUserID, err := s.botUserRepo.WithTx(tx).Upsert(ctx, user)
		if err != nil {
			return nil, err
		}
		lead.BotUserID = &botUserID
	}

	leads := s.leadRepo.WithTx(tx)
	if err := leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	if err := leads.AddHistory(ctx, &model.LeadStatusHistory{
		LeadID:    lead.ID,
		NewStatus: model.LeadStatusNew,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("Lead created",
		zap.String("lead_id", lead.ID.String()),
		zap.String("type", string(lead.Type)),
		zap.Int64("telegram_id", req.BotUser.TelegramUserID))

	return &model.LeadCreated{ID: lead.ID, Status: lead.Status}, nil
}

// Get возвращает заявку с историей статусов
func (s *LeadService) Get(ctx context.Context, id uuid.UUID) (*model.Lead, []model.LeadStatusHistory, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if lead == nil {
		return nil, nil, ErrNotFound
	}

	history, err := s.leadRepo.ListHistory(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return lead, history, nil
}

func (s *LeadService) List(ctx context.Context, f model.LeadFilter) ([]model.Lead, error) {
	return s.leadRepo.List(ctx, f)
}

func (s *LeadService) Stats(ctx context.Context) (*model.LeadStats, error) {
	return s.leadRepo.Stats(ctx)
}

// UpdateStatus меняет статус заявки и пишет запись в историю
func (s *LeadService) UpdateStatus(ctx context.Context, id uuid.UUID, upd model.LeadStatusUpdate) (model.LeadStatus, error) {
	if !upd.Status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, upd.Status)
	}
	comment := strings.TrimSpace(upd.ManagerComment)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	leads := s.leadRepo.WithTx(tx)

	oldStatus, err := leads.LockStatus(ctx, id)
	if err != nil {
		return "", err
	}
	if oldStatus == nil {
		return "", ErrNotFound
	}

	if err := leads.UpdateStatus(ctx, id, upd.Status, comment); err != nil {
		return "", err
	}

	if err := leads.AddHistory(ctx, &model.LeadStatusHistory{
		LeadID:    id,
		OldStatus: oldStatus,
		NewStatus: upd.Status,
		Note:      comment,
	}); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("Lead status changed",
		zap.String("lead_id", id.String()),
		zap.String("old_status", string(*oldStatus)),
		zap.String("new_status", string(upd.Status)))

	return upd.Status, nil
}

// ValidateLeadRequest проверяет заявку до записи в базу
func ValidateLeadRequest(req model.LeadRequest) error {
	if !req.Type.Valid() {
		return fmt.Errorf("%w: unknown lead type %q", ErrValidation, req.Type)
	}
	if req.Language != "" && !req.Language.Valid() {
		return fmt.Errorf("%w: unknown language %q", ErrValidation, req.Language)
	}

	name := strings.TrimSpace(req.Contact.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		return fmt.Errorf("%w: name must be 2-100 characters", ErrValidation)
	}
	if strings.TrimSpace(req.Contact.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if iin := strings.TrimSpace(req.Contact.IIN); iin != "" && !isDigits(iin, 12) {
		return fmt.Errorf("%w: iin must be 12 digits", ErrValidation)
	}

	p := req.Payload
	if p.Gearbox != nil && !p.Gearbox.Valid() {
		return fmt.Errorf("%w: unknown gearbox %q", ErrValidation, *p.Gearbox)
	}
	if p.PreferredGender != nil && !p.PreferredGender.Valid() {
		return fmt.Errorf("%w: unknown gender %q", ErrValidation, *p.PreferredGender)
	}

	switch req.Type {
	case model.LeadTypeSchool:
		if p.SchoolID == nil {
			return fmt.Errorf("%w: school_id is required for school lead", ErrValidation)
		}
	case model.LeadTypeInstructor:
		if p.InstructorID == nil {
			return fmt.Errorf("%w: instructor_id is required for instructor lead", ErrValidation)
		}
	}
	return nil
}

// BuildLead собирает заявку со статусом NEW из запроса бота
func BuildLead(req model.LeadRequest) *model.Lead {
	p := req.Payload

	lead := &model.Lead{
		ID:               uuid.New(),
		Type:             req.Type,
		Status:           model.LeadStatusNew,
		Language:         model.ParseLanguage(string(req.Language), model.LanguageRU),
		MainIntent:       req.MainIntent,
		CityID:           p.CityID,
		CategoryID:       p.CategoryID,
		TrainingFormatID: p.TrainingFormatID,
		TrainingTimeID:   p.TrainingTimeID,
		Gearbox:          p.Gearbox,
		Name:             strings.TrimSpace(req.Contact.Name),
		Phone:            strings.TrimSpace(req.Contact.Phone),
		IIN:              strings.TrimSpace(req.Contact.IIN),
		WhatsApp:         strings.TrimSpace(req.Contact.WhatsApp),
		Source:           leadSourceBot,
	}

	switch req.Type {
	case model.LeadTypeSchool:
		lead.SchoolID = p.SchoolID
		lead.TariffName = p.TariffName
		lead.PriceKZT = p.TariffPriceKZT
	case model.LeadTypeInstructor:
		lead.InstructorID = p.InstructorID
		lead.InstructorTariffID = p.InstructorTariffID
		lead.PreferredGender = p.PreferredGender
		lead.TariffName = p.TariffName
		lead.PriceKZT = p.InstructorTariffPriceKZT
	case model.LeadTypeTests:
		lead.PriceKZT = p.TestsPriceKZT
	}
	return lead
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
