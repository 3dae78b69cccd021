package admin

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Freeeeeet/drivelead_bot/internal/formatting"
	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer рендерит страницы админки; каждая страница собирается вместе с общим layout
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer разбирает встроенные шаблоны
func NewRenderer() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		t, err := template.New(path.Base(layoutFile)).Funcs(funcMap).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", file, err)
		}
		pages[path.Base(file)] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render реализует echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

var funcMap = template.FuncMap{
	"price": func(p *int) string {
		if p == nil {
			return "—"
		}
		return formatting.FormatPrice(*p)
	},
	"money": formatting.FormatPrice,
	"statusText": func(s model.LeadStatus) string {
		return formatting.GetLeadStatusDisplay(s).Text
	},
	"statusEmoji": func(s model.LeadStatus) string {
		return formatting.GetLeadStatusDisplay(s).Emoji
	},
	"leadType": formatting.LeadTypeText,
	"deref": func(s *model.LeadStatus) model.LeadStatus {
		if s == nil {
			return ""
		}
		return *s
	},
	"derefType": func(t *model.LeadType) model.LeadType {
		if t == nil {
			return ""
		}
		return *t
	},
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("02.01.2006 15:04")
	},
	"date": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"gearbox": func(g *model.Gearbox) string {
		if g == nil {
			return "любая"
		}
		return string(*g)
	},
	"id": func(id *int64) string {
		if id == nil {
			return ""
		}
		return fmt.Sprint(*id)
	},
	"years": formatting.PluralizeYears,
	"leads": formatting.PluralizeLeads,
	"lessons": func(t model.InstructorTariffType) string {
		if n := t.Lessons(); n > 0 {
			return fmt.Sprintf("%d %s", n, formatting.PluralizeLessons(n))
		}
		return string(t)
	},
}
