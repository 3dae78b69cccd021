package httpapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

const dateLayout = "2006-01-02"

func pathInt64(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &errBadParam{name: name}
	}
	return id, nil
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, &errBadParam{name: name}
	}
	return id, nil
}

// queryInt64 nil если параметр не передан
func queryInt64(c echo.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &errBadParam{name: name}
	}
	return &v, nil
}

func queryBool(c echo.Context, name string) (bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &errBadParam{name: name}
	}
	return v, nil
}

func queryGearbox(c echo.Context, name string) (*model.Gearbox, error) {
	raw := strings.ToUpper(strings.TrimSpace(c.QueryParam(name)))
	if raw == "" {
		return nil, nil
	}
	g := model.Gearbox(raw)
	if !g.Valid() {
		return nil, &errBadParam{name: name}
	}
	return &g, nil
}

func queryGender(c echo.Context, name string) (*model.Gender, error) {
	raw := strings.ToUpper(strings.TrimSpace(c.QueryParam(name)))
	if raw == "" {
		return nil, nil
	}
	g := model.Gender(raw)
	if !g.Valid() {
		return nil, &errBadParam{name: name}
	}
	return &g, nil
}

// queryTime принимает дату (2024-05-01) или RFC3339. Для endOfDay дата означает конец дня.
func queryTime(c echo.Context, name string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, &errBadParam{name: name}
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// LeadFilterFromQuery разбирает фильтры списка заявок, используется и API, и админкой
func LeadFilterFromQuery(c echo.Context) (model.LeadFilter, error) {
	var f model.LeadFilter
	var err error

	if raw := strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))); raw != "" {
		status := model.LeadStatus(raw)
		if !status.Valid() {
			return f, &errBadParam{name: "status"}
		}
		f.Status = &status
	}
	if raw := strings.ToUpper(strings.TrimSpace(c.QueryParam("type"))); raw != "" {
		leadType := model.LeadType(raw)
		if !leadType.Valid() {
			return f, &errBadParam{name: "type"}
		}
		f.Type = &leadType
	}
	if f.CityID, err = queryInt64(c, "city"); err != nil {
		return f, err
	}
	if f.SchoolID, err = queryInt64(c, "school"); err != nil {
		return f, err
	}
	f.Phone = strings.TrimSpace(c.QueryParam("phone"))
	if f.CreatedFrom, err = queryTime(c, "created_from", false); err != nil {
		return f, err
	}
	if f.CreatedTo, err = queryTime(c, "created_to", true); err != nil {
		return f, err
	}
	limit, err := queryInt64(c, "limit")
	if err != nil {
		return f, err
	}
	if limit != nil {
		f.Limit = int(*limit)
	}
	return f, nil
}
