package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
	"github.com/Freeeeeet/drivelead_bot/internal/repository/base"
)

type AnalyticsRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewAnalyticsRepository(pool *pgxpool.Pool, logger *zap.Logger) *AnalyticsRepository {
	return &AnalyticsRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Create сохраняет событие воронки
func (r *AnalyticsRepository) Create(ctx context.Context, e *model.AnalyticsEvent) error {
	payload := e.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	query := `
		INSERT INTO analytics_event (event_name, payload, bot_user_id, lead_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = r.QueryRow(ctx, query, e.EventName, raw, e.BotUserID, e.LeadID).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert analytics event",
			zap.String("event", e.EventName),
			zap.Error(err))
		return fmt.Errorf("create analytics event: %w", err)
	}
	return nil
}

// CountsByName считает события по имени начиная с since
func (r *AnalyticsRepository) CountsByName(ctx context.Context, since time.Time) (map[string]int, error) {
	query := `
		SELECT event_name, COUNT(*)
		FROM analytics_event
		WHERE created_at >= $1
		GROUP BY event_name
	`

	rows, err := r.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("count analytics events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan analytics count: %w", err)
		}
		counts[name] = n
	}
	return counts, rows.Err()
}
