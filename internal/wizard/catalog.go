package wizard

import (
	"context"

	"github.com/Freeeeeet/drivelead_bot/internal/filter"
	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

// Catalog сервис каталога и заявок
type Catalog interface {
	GetCities(ctx context.Context) ([]model.City, error)
	GetCategories(ctx context.Context, forTests bool) ([]model.Category, error)
	GetTrainingFormats(ctx context.Context) ([]model.TrainingFormat, error)
	GetTrainingTimeSlots(ctx context.Context) ([]model.TrainingTimeSlot, error)
	GetSchools(ctx context.Context, cityID int64) ([]model.School, error)
	GetSchoolDetail(ctx context.Context, schoolID int64, sel filter.Selection) (*model.SchoolDetail, error)
	GetInstructors(ctx context.Context, f model.InstructorFilter) ([]model.Instructor, error)
	GetInstructorDetail(ctx context.Context, id int64) (*model.InstructorDetail, error)
	GetSettings(ctx context.Context) (*model.Settings, error)
	CreateLead(ctx context.Context, req model.LeadRequest) (*model.LeadCreated, error)
}

// EventSink получатель событий аналитики
type EventSink interface {
	SendEvent(ctx context.Context, event model.EventRequest) error
}
