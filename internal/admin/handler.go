// Package admin серверная админка для менеджеров: сводка, заявки, каталог
package admin

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/httpapi"
	"github.com/Freeeeeet/drivelead_bot/internal/model"
	"github.com/Freeeeeet/drivelead_bot/internal/service"
)

const funnelPeriod = 7 * 24 * time.Hour

type LeadService interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Lead, []model.LeadStatusHistory, error)
	List(ctx context.Context, f model.LeadFilter) ([]model.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, upd model.LeadStatusUpdate) (model.LeadStatus, error)
	Stats(ctx context.Context) (*model.LeadStats, error)
}

type CatalogService interface {
	AllSchools(ctx context.Context) ([]model.SchoolDetail, error)
	AllInstructors(ctx context.Context) ([]model.InstructorDetail, error)
}

type AnalyticsService interface {
	Counts(ctx context.Context, period time.Duration) (map[string]int, error)
}

type Handler struct {
	leads     LeadService
	catalog   CatalogService
	analytics AnalyticsService
	logger    *zap.Logger
}

func NewHandler(leads LeadService, catalog CatalogService, analytics AnalyticsService, logger *zap.Logger) *Handler {
	return &Handler{
		leads:     leads,
		catalog:   catalog,
		analytics: analytics,
		logger:    logger,
	}
}

// Register регистрирует страницы админки в группе
func (h *Handler) Register(g *echo.Group) {
	g.GET("/", h.Dashboard)
	g.GET("/leads", h.Leads)
	g.GET("/leads/:id", h.Lead)
	g.POST("/leads/:id/status", h.ChangeStatus)
	g.GET("/schools", h.Schools)
	g.GET("/instructors", h.Instructors)
}

type page struct {
	Title string
	Flash string
	Error string
	Data  any
}

type statusCount struct {
	Status model.LeadStatus
	Count  int
}

type typeCount struct {
	Type  model.LeadType
	Count int
}

type eventCount struct {
	Name  string
	Count int
}

type dashboardData struct {
	Stats    *model.LeadStats
	Statuses []statusCount
	Types    []typeCount
	Events   []eventCount
}

var leadTypes = []model.LeadType{model.LeadTypeSchool, model.LeadTypeInstructor, model.LeadTypeTests}

// Dashboard сводка заявок по статусам и типам и воронка за неделю
func (h *Handler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.leads.Stats(ctx)
	if err != nil {
		return h.fail(c, err)
	}

	data := dashboardData{Stats: stats}
	for _, s := range model.LeadStatuses {
		data.Statuses = append(data.Statuses, statusCount{Status: s, Count: stats.ByStatus[s]})
	}
	for _, t := range leadTypes {
		data.Types = append(data.Types, typeCount{Type: t, Count: stats.ByType[t]})
	}

	counts, err := h.analytics.Counts(ctx, funnelPeriod)
	if err != nil {
		// воронка не критична для сводки
		h.logger.Warn("Failed to load analytics counts", zap.Error(err))
	}
	for name, n := range counts {
		data.Events = append(data.Events, eventCount{Name: name, Count: n})
	}
	sort.Slice(data.Events, func(i, j int) bool {
		if data.Events[i].Count != data.Events[j].Count {
			return data.Events[i].Count > data.Events[j].Count
		}
		return data.Events[i].Name < data.Events[j].Name
	})

	return c.Render(http.StatusOK, "dashboard.html", page{Title: "Сводка", Data: data})
}

type leadsData struct {
	Filter   model.LeadFilter
	Leads    []model.Lead
	Statuses []model.LeadStatus
	Types    []model.LeadType
}

// Leads список заявок с фильтрами
func (h *Handler) Leads(c echo.Context) error {
	p := page{Title: "Заявки"}
	data := leadsData{Statuses: model.LeadStatuses, Types: leadTypes}

	f, err := httpapi.LeadFilterFromQuery(c)
	if err != nil {
		p.Error = err.Error()
		data.Leads = []model.Lead{}
		p.Data = data
		return c.Render(http.StatusBadRequest, "leads.html", p)
	}
	data.Filter = f

	data.Leads, err = h.leads.List(c.Request().Context(), f)
	if err != nil {
		return h.fail(c, err)
	}
	p.Data = data
	return c.Render(http.StatusOK, "leads.html", p)
}

type leadData struct {
	Lead     *model.Lead
	History  []model.LeadStatusHistory
	Statuses []model.LeadStatus
}

// Lead карточка заявки с историей и формой смены статуса
func (h *Handler) Lead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	lead, history, err := h.leads.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}

	p := page{
		Title: "Заявка " + lead.Name,
		Data:  leadData{Lead: lead, History: history, Statuses: model.LeadStatuses},
	}
	switch c.QueryParam("flash") {
	case "status":
		p.Flash = "Статус обновлён"
	case "invalid":
		p.Error = "Неизвестный статус"
	}
	return c.Render(http.StatusOK, "lead.html", p)
}

// ChangeStatus обрабатывает форму смены статуса и возвращает на карточку заявки
func (h *Handler) ChangeStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	upd := model.LeadStatusUpdate{
		Status:         model.LeadStatus(c.FormValue("status")),
		ManagerComment: c.FormValue("manager_comment"),
	}

	flash := "status"
	if _, err := h.leads.UpdateStatus(c.Request().Context(), id, upd); err != nil {
		if !errors.Is(err, service.ErrInvalidStatus) {
			return h.fail(c, err)
		}
		flash = "invalid"
	}

	q := url.Values{"flash": {flash}}
	return c.Redirect(http.StatusSeeOther, "/srm/leads/"+id.String()+"?"+q.Encode())
}

func (h *Handler) Schools(c echo.Context) error {
	schools, err := h.catalog.AllSchools(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.Render(http.StatusOK, "schools.html", page{
		Title: "Автошколы",
		Data:  map[string]any{"Schools": schools},
	})
}

func (h *Handler) Instructors(c echo.Context) error {
	instructors, err := h.catalog.AllInstructors(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.Render(http.StatusOK, "instructors.html", page{
		Title: "Инструкторы",
		Data:  map[string]any{"Instructors": instructors},
	})
}

func (h *Handler) fail(c echo.Context, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	h.logger.Error("Admin page failed",
		zap.String("path", c.Path()),
		zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError)
}
