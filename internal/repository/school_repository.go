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

type SchoolRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewSchoolRepository(pool *pgxpool.Pool, logger *zap.Logger) *SchoolRepository {
	return &SchoolRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

const schoolColumns = `
	s.id, s.city_id, s.name_ru, s.name_kz, s.description_ru, s.description_kz,
	s.address_ru, s.address_kz, s.rating, s.trust_index, s.is_active, s.sort_order
`

func scanSchool(row pgx.Row) (model.School, error) {
	var s model.School
	err := row.Scan(
		&s.ID,
		&s.CityID,
		&s.NameRU,
		&s.NameKZ,
		&s.DescriptionRU,
		&s.DescriptionKZ,
		&s.AddressRU,
		&s.AddressKZ,
		&s.Rating,
		&s.TrustIndex,
		&s.IsActive,
		&s.SortOrder,
	)
	return s, err
}

// List возвращает автошколы города (cityID nil = все города); activeOnly скрывает неактивные
func (r *SchoolRepository) List(ctx context.Context, cityID *int64, activeOnly bool) ([]model.School, error) {
	var where base.Where
	if cityID != nil {
		where.Add("s.city_id = ?", *cityID)
	}
	if activeOnly {
		where.Add("s.is_active = ?", true)
	}

	query := `SELECT ` + schoolColumns + ` FROM school s` + where.SQL() + ` ORDER BY s.sort_order, s.id`

	rows, err := r.Query(ctx, query, where.Args()...)
	if err != nil {
		r.logger.Error("Failed to query schools", zap.Error(err))
		return nil, fmt.Errorf("list schools: %w", err)
	}
	defer rows.Close()

	schools := make([]model.School, 0)
	for rows.Next() {
		s, err := scanSchool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan school: %w", err)
		}
		schools = append(schools, s)
	}
	return schools, rows.Err()
}

// GetByID получает автошколу по ID, nil если не найдена
func (r *SchoolRepository) GetByID(ctx context.Context, id int64) (*model.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM school s WHERE s.id = $1`

	s, err := scanSchool(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get school by id: %w", err)
	}
	return &s, nil
}

// ListTariffs возвращает все тарифы автошколы вместе с наборами категорий и времени
func (r *SchoolRepository) ListTariffs(ctx context.Context, schoolID int64) ([]model.Tariff, error) {
	query := `
		SELECT t.id, t.school_id, t.name_ru, t.name_kz, t.description_ru, t.description_kz,
		       t.training_format_id, t.gearbox, t.price_kzt, t.is_active, t.sort_order,
		       COALESCE((SELECT array_agg(c.category_id ORDER BY c.category_id)
		                 FROM school_tariff_category c WHERE c.tariff_id = t.id), '{}'),
		       COALESCE((SELECT array_agg(tt.time_slot_id ORDER BY tt.time_slot_id)
		                 FROM school_tariff_time tt WHERE tt.tariff_id = t.id), '{}')
		FROM school_tariff t
		WHERE t.school_id = $1
		ORDER BY t.sort_order, t.id
	`

	rows, err := r.Query(ctx, query, schoolID)
	if err != nil {
		r.logger.Error("Failed to query school tariffs",
			zap.Int64("school_id", schoolID),
			zap.Error(err))
		return nil, fmt.Errorf("list school tariffs: %w", err)
	}
	defer rows.Close()

	tariffs := make([]model.Tariff, 0)
	for rows.Next() {
		var t model.Tariff
		var gearbox *string
		err := rows.Scan(
			&t.ID,
			&t.SchoolID,
			&t.NameRU,
			&t.NameKZ,
			&t.DescriptionRU,
			&t.DescriptionKZ,
			&t.TrainingFormatID,
			&gearbox,
			&t.PriceKZT,
			&t.IsActive,
			&t.SortOrder,
			&t.CategoryIDs,
			&t.TrainingTimeIDs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan school tariff: %w", err)
		}
		t.Gearbox = gearboxPtr(gearbox)
		tariffs = append(tariffs, t)
	}
	return tariffs, rows.Err()
}

func gearboxPtr(s *string) *model.Gearbox {
	if s == nil || *s == "" {
		return nil
	}
	g := model.Gearbox(*s)
	return &g
}
