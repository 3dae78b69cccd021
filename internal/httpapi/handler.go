// Package httpapi REST API каталога и заявок, которым пользуется бот
package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/filter"
	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

type CatalogService interface {
	Cities(ctx context.Context) ([]model.City, error)
	Categories(ctx context.Context, forTests bool) ([]model.Category, error)
	TrainingFormats(ctx context.Context) ([]model.TrainingFormat, error)
	TrainingTimeSlots(ctx context.Context) ([]model.TrainingTimeSlot, error)
	Schools(ctx context.Context, cityID *int64) ([]model.School, error)
	SchoolDetail(ctx context.Context, id int64, sel filter.Selection) (*model.SchoolDetail, error)
	Instructors(ctx context.Context, f model.InstructorFilter) ([]model.Instructor, error)
	InstructorDetail(ctx context.Context, id int64) (*model.InstructorDetail, error)
}

type LeadService interface {
	Create(ctx context.Context, req model.LeadRequest) (*model.LeadCreated, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Lead, []model.LeadStatusHistory, error)
	List(ctx context.Context, f model.LeadFilter) ([]model.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, upd model.LeadStatusUpdate) (model.LeadStatus, error)
}

type AnalyticsService interface {
	Track(ctx context.Context, req model.EventRequest) (*model.AnalyticsEvent, error)
}

type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
}

// Pinger проверка доступности базы для /healthz
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	catalog   CatalogService
	leads     LeadService
	analytics AnalyticsService
	settings  SettingsService
	logger    *zap.Logger
}

func NewHandler(
	catalog CatalogService,
	leads LeadService,
	analytics AnalyticsService,
	settings SettingsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		catalog:   catalog,
		leads:     leads,
		analytics: analytics,
		settings:  settings,
		logger:    logger,
	}
}

// Register регистрирует маршруты API в группе
func (h *Handler) Register(g *echo.Group) {
	g.GET("/dicts/cities", h.ListCities)
	g.GET("/dicts/categories", h.ListCategories)
	g.GET("/dicts/training-formats", h.ListTrainingFormats)
	g.GET("/dicts/training-times", h.ListTrainingTimes)

	g.GET("/schools", h.ListSchools)
	g.GET("/schools/:id", h.GetSchool)
	g.GET("/instructors", h.ListInstructors)
	g.GET("/instructors/:id", h.GetInstructor)

	g.POST("/leads", h.CreateLead)
	g.GET("/leads/list", h.ListLeads)
	g.GET("/leads/:id", h.GetLead)
	g.PATCH("/leads/:id/status", h.UpdateLeadStatus)

	g.POST("/analytics/events", h.CreateEvent)
	g.GET("/settings", h.GetSettings)
}

// RegisterHealth регистрирует /healthz, db может быть nil
func RegisterHealth(e *echo.Echo, db Pinger) {
	e.GET("/healthz", func(c echo.Context) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func (h *Handler) ListCities(c echo.Context) error {
	cities, err := h.catalog.Cities(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, cities)
}

func (h *Handler) ListCategories(c echo.Context) error {
	forTests, err := queryBool(c, "for_tests")
	if err != nil {
		return h.errorResponse(c, err)
	}
	categories, err := h.catalog.Categories(c.Request().Context(), forTests)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *Handler) ListTrainingFormats(c echo.Context) error {
	formats, err := h.catalog.TrainingFormats(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, formats)
}

func (h *Handler) ListTrainingTimes(c echo.Context) error {
	slots, err := h.catalog.TrainingTimeSlots(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *Handler) ListSchools(c echo.Context) error {
	cityID, err := queryInt64(c, "city_id")
	if err != nil {
		return h.errorResponse(c, err)
	}
	schools, err := h.catalog.Schools(c.Request().Context(), cityID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, schools)
}

// GetSchool возвращает автошколу с тарифами, суженными параметрами запроса
func (h *Handler) GetSchool(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}

	var sel filter.Selection
	if sel.CategoryID, err = queryInt64(c, "category_id"); err != nil {
		return h.errorResponse(c, err)
	}
	if sel.TrainingFormatID, err = queryInt64(c, "training_format_id"); err != nil {
		return h.errorResponse(c, err)
	}
	if sel.TrainingTimeID, err = queryInt64(c, "training_time_id"); err != nil {
		return h.errorResponse(c, err)
	}
	if sel.Gearbox, err = queryGearbox(c, "gearbox"); err != nil {
		return h.errorResponse(c, err)
	}

	detail, err := h.catalog.SchoolDetail(c.Request().Context(), id, sel)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) ListInstructors(c echo.Context) error {
	var f model.InstructorFilter
	var err error
	if f.CityID, err = queryInt64(c, "city_id"); err != nil {
		return h.errorResponse(c, err)
	}
	if f.CategoryID, err = queryInt64(c, "category_id"); err != nil {
		return h.errorResponse(c, err)
	}
	if f.Gearbox, err = queryGearbox(c, "gearbox"); err != nil {
		return h.errorResponse(c, err)
	}
	if f.Gender, err = queryGender(c, "gender"); err != nil {
		return h.errorResponse(c, err)
	}

	instructors, err := h.catalog.Instructors(c.Request().Context(), f)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, instructors)
}

func (h *Handler) GetInstructor(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}
	detail, err := h.catalog.InstructorDetail(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) CreateLead(c echo.Context) error {
	var req model.LeadRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Warn("Failed to bind lead request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, errorBody{Detail: "invalid request body"})
	}

	created, err := h.leads.Create(c.Request().Context(), req)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListLeads список заявок с фильтрами status, type, city, school, phone, created_from, created_to
func (h *Handler) ListLeads(c echo.Context) error {
	f, err := LeadFilterFromQuery(c)
	if err != nil {
		return h.errorResponse(c, err)
	}
	leads, err := h.leads.List(c.Request().Context(), f)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, leads)
}

type leadDetail struct {
	model.Lead
	StatusHistory []model.LeadStatusHistory `json:"status_history"`
}

func (h *Handler) GetLead(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}
	lead, history, err := h.leads.Get(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, leadDetail{Lead: *lead, StatusHistory: history})
}

func (h *Handler) UpdateLeadStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return h.errorResponse(c, err)
	}

	var upd model.LeadStatusUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Detail: "invalid request body"})
	}

	status, err := h.leads.UpdateStatus(c.Request().Context(), id, upd)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]model.LeadStatus{"status": status})
}

func (h *Handler) CreateEvent(c echo.Context) error {
	var req model.EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Detail: "invalid request body"})
	}

	event, err := h.analytics.Track(c.Request().Context(), req)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": strconv.FormatInt(event.ID, 10)})
}

func (h *Handler) GetSettings(c echo.Context) error {
	settings, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}
