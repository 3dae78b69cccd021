package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/filter"
	"github.com/Freeeeeet/drivelead_bot/internal/model"
	"github.com/Freeeeeet/drivelead_bot/internal/repository"
)

type CatalogService struct {
	dictRepo       *repository.DictionaryRepository
	schoolRepo     *repository.SchoolRepository
	instructorRepo *repository.InstructorRepository
	logger         *zap.Logger
}

func NewCatalogService(
	dictRepo *repository.DictionaryRepository,
	schoolRepo *repository.SchoolRepository,
	instructorRepo *repository.InstructorRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		dictRepo:       dictRepo,
		schoolRepo:     schoolRepo,
		instructorRepo: instructorRepo,
		logger:         logger,
	}
}

func (s *CatalogService) Cities(ctx context.Context) ([]model.City, error) {
	return s.dictRepo.ListCities(ctx)
}

func (s *CatalogService) Categories(ctx context.Context, forTests bool) ([]model.Category, error) {
	return s.dictRepo.ListCategories(ctx, forTests)
}

func (s *CatalogService) TrainingFormats(ctx context.Context) ([]model.TrainingFormat, error) {
	return s.dictRepo.ListTrainingFormats(ctx)
}

func (s *CatalogService) TrainingTimeSlots(ctx context.Context) ([]model.TrainingTimeSlot, error) {
	return s.dictRepo.ListTrainingTimeSlots(ctx)
}

// Schools возвращает активные автошколы города, cityID nil означает все города
func (s *CatalogService) Schools(ctx context.Context, cityID *int64) ([]model.School, error) {
	return s.schoolRepo.List(ctx, cityID, true)
}

// AllSchools возвращает все автошколы вместе с неактивными (для админки)
func (s *CatalogService) AllSchools(ctx context.Context) ([]model.SchoolDetail, error) {
	schools, err := s.schoolRepo.List(ctx, nil, false)
	if err != nil {
		return nil, err
	}

	result := make([]model.SchoolDetail, 0, len(schools))
	for _, school := range schools {
		tariffs, err := s.schoolRepo.ListTariffs(ctx, school.ID)
		if err != nil {
			return nil, fmt.Errorf("get tariffs of school %d: %w", school.ID, err)
		}
		result = append(result, model.SchoolDetail{School: school, Tariffs: tariffs})
	}
	return result, nil
}

// SchoolDetail возвращает автошколу с активными тарифами, подходящими под выбор.
// Невыбранные поля не ограничивают список.
func (s *CatalogService) SchoolDetail(ctx context.Context, id int64, sel filter.Selection) (*model.SchoolDetail, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get school: %w", err)
	}
	if school == nil || !school.IsActive {
		return nil, ErrNotFound
	}

	tariffs, err := s.schoolRepo.ListTariffs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get school tariffs: %w", err)
	}

	active := make([]model.Tariff, 0, len(tariffs))
	for _, t := range tariffs {
		if t.IsActive {
			active = append(active, t)
		}
	}

	return &model.SchoolDetail{
		School:  *school,
		Tariffs: filter.Narrow(active, sel),
	}, nil
}

// Instructors возвращает активных инструкторов по фильтру
func (s *CatalogService) Instructors(ctx context.Context, f model.InstructorFilter) ([]model.Instructor, error) {
	return s.instructorRepo.List(ctx, f, true)
}

// AllInstructors возвращает всех инструкторов с тарифами (для админки)
func (s *CatalogService) AllInstructors(ctx context.Context) ([]model.InstructorDetail, error) {
	instructors, err := s.instructorRepo.List(ctx, model.InstructorFilter{}, false)
	if err != nil {
		return nil, err
	}

	result := make([]model.InstructorDetail, 0, len(instructors))
	for _, in := range instructors {
		tariffs, err := s.instructorRepo.ListTariffs(ctx, in.ID)
		if err != nil {
			return nil, fmt.Errorf("get tariffs of instructor %d: %w", in.ID, err)
		}
		result = append(result, model.InstructorDetail{Instructor: in, Tariffs: tariffs})
	}
	return result, nil
}

// InstructorDetail возвращает активного инструктора с активными тарифами
func (s *CatalogService) InstructorDetail(ctx context.Context, id int64) (*model.InstructorDetail, error) {
	in, err := s.instructorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get instructor: %w", err)
	}
	if in == nil || !in.IsActive {
		return nil, ErrNotFound
	}

	tariffs, err := s.instructorRepo.ListTariffs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get instructor tariffs: %w", err)
	}

	active := make([]model.InstructorTariff, 0, len(tariffs))
	for _, t := range tariffs {
		if t.IsActive {
			active = append(active, t)
		}
	}
	return &model.InstructorDetail{Instructor: *in, Tariffs: active}, nil
}
