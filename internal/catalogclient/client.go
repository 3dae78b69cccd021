// Package catalogclient HTTP клиент сервиса каталога и заявок.
// Все ошибки возвращаются как *Error с категорией Kind, повторов нет.
package catalogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/filter"
	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

const defaultTimeout = 10 * time.Second

// Client клиент REST API бэкенда
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option настройка клиента
type Option func(*Client)

// WithHTTPClient подменяет http.Client (используется в тестах)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIKey передаёт ключ в заголовке Authorization: Api-Key <key>
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithTimeout задаёт таймаут одного запроса. Переданный через WithHTTPClient клиент не меняется.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// New создаёт клиент, baseURL указывает на префикс API, например http://localhost:8002/api
func New(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetCities возвращает активные города
func (c *Client) GetCities(ctx context.Context) ([]model.City, error) {
	var cities []model.City
	if err := c.get(ctx, "get cities", "/dicts/cities", nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// GetCategories возвращает категории, forTests оставляет только категории для тестов ПДД
func (c *Client) GetCategories(ctx context.Context, forTests bool) ([]model.Category, error) {
	q := url.Values{}
	if forTests {
		q.Set("for_tests", "true")
	}
	var categories []model.Category
	if err := c.get(ctx, "get categories", "/dicts/categories", q, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetTrainingFormats возвращает форматы обучения
func (c *Client) GetTrainingFormats(ctx context.Context) ([]model.TrainingFormat, error) {
	var formats []model.TrainingFormat
	if err := c.get(ctx, "get training formats", "/dicts/training-formats", nil, &formats); err != nil {
		return nil, err
	}
	return formats, nil
}

// GetTrainingTimeSlots возвращает варианты времени обучения
func (c *Client) GetTrainingTimeSlots(ctx context.Context) ([]model.TrainingTimeSlot, error) {
	var slots []model.TrainingTimeSlot
	if err := c.get(ctx, "get training times", "/dicts/training-times", nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// GetSchools возвращает автошколы города
func (c *Client) GetSchools(ctx context.Context, cityID int64) ([]model.School, error) {
	q := url.Values{}
	q.Set("city_id", strconv.FormatInt(cityID, 10))
	var schools []model.School
	if err := c.get(ctx, "get schools", "/schools", q, &schools); err != nil {
		return nil, err
	}
	return schools, nil
}

// GetSchoolDetail возвращает автошколу с тарифами, отфильтрованными по заданным полям выбора
func (c *Client) GetSchoolDetail(ctx context.Context, schoolID int64, sel filter.Selection) (*model.SchoolDetail, error) {
	q := url.Values{}
	setID(q, "category_id", sel.CategoryID)
	setID(q, "training_format_id", sel.TrainingFormatID)
	setID(q, "training_time_id", sel.TrainingTimeID)
	if sel.Gearbox != nil {
		q.Set("gearbox", string(*sel.Gearbox))
	}

	var detail model.SchoolDetail
	if err := c.get(ctx, "get school detail", "/schools/"+strconv.FormatInt(schoolID, 10), q, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetInstructors возвращает инструкторов по фильтру
func (c *Client) GetInstructors(ctx context.Context, f model.InstructorFilter) ([]model.Instructor, error) {
	q := url.Values{}
	setID(q, "city_id", f.CityID)
	setID(q, "category_id", f.CategoryID)
	if f.Gearbox != nil {
		q.Set("gearbox", string(*f.Gearbox))
	}
	if f.Gender != nil {
		q.Set("gender", string(*f.Gender))
	}

	var instructors []model.Instructor
	if err := c.get(ctx, "get instructors", "/instructors", q, &instructors); err != nil {
		return nil, err
	}
	return instructors, nil
}

// GetInstructorDetail возвращает инструктора с тарифами
func (c *Client) GetInstructorDetail(ctx context.Context, id int64) (*model.InstructorDetail, error) {
	var detail model.InstructorDetail
	if err := c.get(ctx, "get instructor detail", "/instructors/"+strconv.FormatInt(id, 10), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetSettings возвращает настройки проекта
func (c *Client) GetSettings(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	if err := c.get(ctx, "get settings", "/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// CreateLead создаёт заявку
func (c *Client) CreateLead(ctx context.Context, req model.LeadRequest) (*model.LeadCreated, error) {
	var created model.LeadCreated
	if err := c.do(ctx, "create lead", http.MethodPost, "/leads", nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SendEvent отправляет событие аналитики
func (c *Client) SendEvent(ctx context.Context, event model.EventRequest) error {
	return c.do(ctx, "send event", http.MethodPost, "/analytics/events", nil, event, nil)
}

func (c *Client) get(ctx context.Context, op, path string, q url.Values, out any) error {
	return c.do(ctx, op, http.MethodGet, path, q, nil, out)
}

func (c *Client) do(ctx context.Context, op, method, path string, q url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindUnknown, Op: op, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &Error{Kind: KindUnknown, Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Api-Key "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Catalog request failed",
			zap.String("op", op),
			zap.String("url", endpoint),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return transportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := readDetail(resp.Body)
		c.logger.Warn("Catalog responded with error",
			zap.String("op", op),
			zap.String("url", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail))
		return statusError(op, resp.StatusCode, detail)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindUnknown, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// readDetail достаёт поле detail из тела ошибки, иначе начало тела
func readDetail(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 4096))
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(data))
}

func setID(q url.Values, key string, id *int64) {
	if id != nil {
		q.Set(key, strconv.FormatInt(*id, 10))
	}
}
