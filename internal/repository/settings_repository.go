package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
	"github.com/Freeeeeet/drivelead_bot/internal/repository/base"
)

type SettingsRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewSettingsRepository(pool *pgxpool.Pool, logger *zap.Logger) *SettingsRepository {
	return &SettingsRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// List возвращает все настройки проекта
func (r *SettingsRepository) List(ctx context.Context) ([]model.ProjectSetting, error) {
	rows, err := r.Query(ctx, `SELECT key, value_json FROM project_setting ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := make([]model.ProjectSetting, 0)
	for rows.Next() {
		var s model.ProjectSetting
		var raw []byte
		if err := rows.Scan(&s.Key, &raw); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		s.ValueJSON = raw
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Get возвращает настройку по ключу, nil если её нет
func (r *SettingsRepository) Get(ctx context.Context, key string) (*model.ProjectSetting, error) {
	s := model.ProjectSetting{Key: key}
	var raw []byte
	err := r.QueryRow(ctx, `SELECT value_json FROM project_setting WHERE key = $1`, key).Scan(&raw)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get setting %s: %w", key, err)
	}
	s.ValueJSON = raw
	return &s, nil
}
