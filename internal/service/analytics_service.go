package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
	"github.com/Freeeeeet/drivelead_bot/internal/repository"
)

const maxEventNameLen = 50

type AnalyticsService struct {
	analyticsRepo *repository.AnalyticsRepository
	botUserRepo   *repository.BotUserRepository
	logger        *zap.Logger
}

func NewAnalyticsService(
	analyticsRepo *repository.AnalyticsRepository,
	botUserRepo *repository.BotUserRepository,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		botUserRepo:   botUserRepo,
		logger:        logger,
	}
}

// Track сохраняет событие воронки. Неизвестный пользователь Telegram не ошибка: событие пишется без него.
func (s *AnalyticsService) Track(ctx context.Context, req model.EventRequest) (*model.AnalyticsEvent, error) {
	name := strings.TrimSpace(req.EventName)
	if name == "" || len(name) > maxEventNameLen {
		return nil, fmt.Errorf("%w: event_name must be 1-%d characters", ErrValidation, maxEventNameLen)
	}

	event := &model.AnalyticsEvent{
		EventName: name,
		Payload:   req.Payload,
		LeadID:    req.LeadID,
	}

	if req.TelegramUserID != 0 {
		id, err := s.botUserRepo.GetIDByTelegramID(ctx, req.TelegramUserID)
		if err != nil {
			return nil, err
		}
		event.BotUserID = id
	}

	if err := s.analyticsRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Counts считает события за последние period
func (s *AnalyticsService) Counts(ctx context.Context, period time.Duration) (map[string]int, error) {
	return s.analyticsRepo.CountsByName(ctx, time.Now().Add(-period))
}
