package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
	"github.com/Freeeeeet/drivelead_bot/internal/repository/base"
)

// DictionaryRepository справочники: города, категории, форматы и время обучения
type DictionaryRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewDictionaryRepository(pool *pgxpool.Pool, logger *zap.Logger) *DictionaryRepository {
	return &DictionaryRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// ListCities возвращает активные города
func (r *DictionaryRepository) ListCities(ctx context.Context) ([]model.City, error) {
	query := `
		SELECT id, name_ru, name_kz, is_active, sort_order
		FROM dict_city
		WHERE is_active
		ORDER BY sort_order, id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	cities := make([]model.City, 0)
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.ID, &c.NameRU, &c.NameKZ, &c.IsActive, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

// ListCategories возвращает активные категории, forTests=true оставляет только категории для тестов
func (r *DictionaryRepository) ListCategories(ctx context.Context, forTests bool) ([]model.Category, error) {
	query := `
		SELECT id, code, name_ru, name_kz, for_tests, is_active, sort_order
		FROM dict_category
		WHERE is_active AND (NOT $1 OR for_tests)
		ORDER BY sort_order, id
	`

	rows, err := r.Query(ctx, query, forTests)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Code, &c.NameRU, &c.NameKZ, &c.ForTests, &c.IsActive, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListTrainingFormats возвращает активные форматы обучения
func (r *DictionaryRepository) ListTrainingFormats(ctx context.Context) ([]model.TrainingFormat, error) {
	query := `
		SELECT id, code, name_ru, name_kz, is_active, sort_order
		FROM dict_training_format
		WHERE is_active
		ORDER BY sort_order, id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list training formats: %w", err)
	}
	defer rows.Close()

	formats := make([]model.TrainingFormat, 0)
	for rows.Next() {
		var f model.TrainingFormat
		if err := rows.Scan(&f.ID, &f.Code, &f.NameRU, &f.NameKZ, &f.IsActive, &f.SortOrder); err != nil {
			return nil, fmt.Errorf("scan training format: %w", err)
		}
		formats = append(formats, f)
	}
	return formats, rows.Err()
}

// ListTrainingTimeSlots возвращает активные варианты времени обучения
func (r *DictionaryRepository) ListTrainingTimeSlots(ctx context.Context) ([]model.TrainingTimeSlot, error) {
	query := `
		SELECT id, code, name_ru, name_kz, emoji, time_range_ru, time_range_kz, is_active, sort_order
		FROM dict_training_time_slot
		WHERE is_active
		ORDER BY sort_order, id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list training time slots: %w", err)
	}
	defer rows.Close()

	slots := make([]model.TrainingTimeSlot, 0)
	for rows.Next() {
		var s model.TrainingTimeSlot
		err := rows.Scan(
			&s.ID,
			&s.Code,
			&s.NameRU,
			&s.NameKZ,
			&s.Emoji,
			&s.TimeRangeRU,
			&s.TimeRangeKZ,
			&s.IsActive,
			&s.SortOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("scan training time slot: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}
