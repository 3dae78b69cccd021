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

type InstructorRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewInstructorRepository(pool *pgxpool.Pool, logger *zap.Logger) *InstructorRepository {
	return &InstructorRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

const instructorColumns = `
	i.id, i.city_id, i.display_name, i.gearbox, i.gender, i.bio_ru, i.bio_kz,
	i.experience_years, i.car_model, i.is_active, i.sort_order,
	COALESCE((SELECT array_agg(ic.category_id ORDER BY ic.category_id)
	          FROM instructor_category ic WHERE ic.instructor_id = i.id), '{}')
`

func scanInstructor(row pgx.Row) (model.Instructor, error) {
	var in model.Instructor
	err := row.Scan(
		&in.ID,
		&in.CityID,
		&in.DisplayName,
		&in.Gearbox,
		&in.Gender,
		&in.BioRU,
		&in.BioKZ,
		&in.ExperienceYears,
		&in.CarModel,
		&in.IsActive,
		&in.SortOrder,
		&in.CategoryIDs,
	)
	return in, err
}

// List ищет инструкторов по фильтру; activeOnly скрывает неактивных
func (r *InstructorRepository) List(ctx context.Context, f model.InstructorFilter, activeOnly bool) ([]model.Instructor, error) {
	var where base.Where
	if f.CityID != nil {
		where.Add("i.city_id = ?", *f.CityID)
	}
	if f.Gearbox != nil {
		where.Add("i.gearbox = ?", string(*f.Gearbox))
	}
	if f.Gender != nil {
		where.Add("i.gender = ?", string(*f.Gender))
	}
	if f.CategoryID != nil {
		where.Add("EXISTS (SELECT 1 FROM instructor_category ic WHERE ic.instructor_id = i.id AND ic.category_id = ?)", *f.CategoryID)
	}
	if activeOnly {
		where.Add("i.is_active = ?", true)
	}

	query := `SELECT ` + instructorColumns + ` FROM instructor i` + where.SQL() + ` ORDER BY i.sort_order, i.id`

	rows, err := r.Query(ctx, query, where.Args()...)
	if err != nil {
		r.logger.Error("Failed to query instructors", zap.Error(err))
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	defer rows.Close()

	instructors := make([]model.Instructor, 0)
	for rows.Next() {
		in, err := scanInstructor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan instructor: %w", err)
		}
		instructors = append(instructors, in)
	}
	return instructors, rows.Err()
}

// GetByID получает инструктора по ID, nil если не найден
func (r *InstructorRepository) GetByID(ctx context.Context, id int64) (*model.Instructor, error) {
	query := `SELECT ` + instructorColumns + ` FROM instructor i WHERE i.id = $1`

	in, err := scanInstructor(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get instructor by id: %w", err)
	}
	return &in, nil
}

// ListTariffs возвращает тарифы инструктора
func (r *InstructorRepository) ListTariffs(ctx context.Context, instructorID int64) ([]model.InstructorTariff, error) {
	query := `
		SELECT id, instructor_id, tariff_type, price_kzt, is_active, sort_order
		FROM instructor_tariff
		WHERE instructor_id = $1
		ORDER BY sort_order, id
	`

	rows, err := r.Query(ctx, query, instructorID)
	if err != nil {
		return nil, fmt.Errorf("list instructor tariffs: %w", err)
	}
	defer rows.Close()

	tariffs := make([]model.InstructorTariff, 0)
	for rows.Next() {
		var t model.InstructorTariff
		if err := rows.Scan(&t.ID, &t.InstructorID, &t.TariffType, &t.PriceKZT, &t.IsActive, &t.SortOrder); err != nil {
			return nil, fmt.Errorf("scan instructor tariff: %w", err)
		}
		tariffs = append(tariffs, t)
	}
	return tariffs, rows.Err()
}
