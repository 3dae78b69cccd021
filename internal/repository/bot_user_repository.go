package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
	"github.com/Freeeeeet/drivelead_bot/internal/repository/base"
)

type BotUserRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewBotUserRepository(pool *pgxpool.Pool, logger *zap.Logger) *BotUserRepository {
	return &BotUserRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// WithTx возвращает репозиторий, работающий в транзакции
func (r *BotUserRepository) WithTx(tx pgx.Tx) *BotUserRepository {
	return &BotUserRepository{Repository: r.Repository.WithTx(tx), logger: r.logger}
}

// Upsert создаёт пользователя или обновляет его данные, возвращает внутренний ID
func (r *BotUserRepository) Upsert(ctx context.Context, u model.BotUserInfo) (int64, error) {
	query := `
		INSERT INTO bot_user (telegram_user_id, username, first_name, last_name, language)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_user_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    language = EXCLUDED.language,
		    last_seen_at = NOW()
		RETURNING id
	`

	var id int64
	err := r.QueryRow(ctx, query,
		u.TelegramUserID,
		u.Username,
		u.FirstName,
		u.LastName,
		string(u.Language),
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to upsert bot user",
			zap.Int64("telegram_id", u.TelegramUserID),
			zap.Error(err))
		return 0, fmt.Errorf("upsert bot user: %w", err)
	}
	return id, nil
}

// GetIDByTelegramID возвращает внутренний ID пользователя, nil если не найден
func (r *BotUserRepository) GetIDByTelegramID(ctx context.Context, telegramID int64) (*int64, error) {
	var id int64
	err := r.QueryRow(ctx, `SELECT id FROM bot_user WHERE telegram_user_id = $1`, telegramID).Scan(&id)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bot user id: %w", err)
	}
	return &id, nil
}
