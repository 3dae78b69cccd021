package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionExpirer хранилище сессий, из которого можно удалить устаревшие
type SessionExpirer interface {
	Expire(before time.Time) int
}

// Scheduler периодически удаляет брошенные диалоги
type Scheduler struct {
	sessions SessionExpirer
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler создаёт планировщик очистки сессий старше ttl.
// ttl <= 0 отключает очистку.
func NewScheduler(sessions SessionExpirer, ttl time.Duration, logger *zap.Logger) *Scheduler {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return &Scheduler{
		sessions: sessions,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Enabled сообщает, задан ли срок жизни сессий
func (s *Scheduler) Enabled() bool {
	return s.ttl > 0
}

// Run выполняет очистку до отмены контекста
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.Enabled() {
		s.logger.Info("Session cleanup disabled")
		return nil
	}
	s.logger.Info("Starting session cleanup",
		zap.Duration("ttl", s.ttl),
		zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireSessions()
		case <-ctx.Done():
			s.logger.Info("Session cleanup stopped")
			return nil
		}
	}
}

// expireSessions удаляет сессии, которые не обновлялись дольше ttl
func (s *Scheduler) expireSessions() int {
	if !s.Enabled() {
		return 0
	}
	removed := s.sessions.Expire(s.now().Add(-s.ttl))
	if removed > 0 {
		s.logger.Info("Expired idle sessions", zap.Int("count", removed))
	}
	return removed
}
