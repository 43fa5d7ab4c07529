// Package view renders the HTML pages. Templates are embedded in the binary
// and every page is parsed together with the shared layout.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/form"
	"github.com/iliyamo/venue-booking/internal/schedule"
)

//go:embed templates
var templateFS embed.FS

// Page is the data every template receives.
type Page struct {
	Title   string
	Flashes []string
	Errors  []string
	Content any
}

// FormPage is the content of a create or edit page. ID is zero on create.
type FormPage struct {
	ID     uint64
	Action string
	Form   any
}

// SearchPage is the content of a search results page. Base is the path
// prefix of result links.
type SearchPage struct {
	Term   string
	Base   string
	Result schedule.SearchResult
}

// ErrorPage is the content of a generic error page.
type ErrorPage struct {
	Code    int
	Message string
}

// Renderer implements echo.Renderer over the embedded templates. Template
// names are the page paths without extension, e.g. "pages/venues".
type Renderer struct {
	templates map[string]*template.Template
}

// New parses every page and error template with the layout.
func New() (*Renderer, error) {
	r := &Renderer{templates: map[string]*template.Template{}}
	for _, dir := range []string{"pages", "errors"} {
		entries, err := fs.ReadDir(templateFS, "templates/"+dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || path.Ext(e.Name()) != ".html" {
				continue
			}
			name := dir + "/" + strings.TrimSuffix(e.Name(), ".html")
			t, err := template.New(e.Name()).Funcs(Funcs()).ParseFS(templateFS,
				"templates/layouts/*.html", "templates/"+dir+"/"+e.Name())
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", name, err)
			}
			r.templates[name] = t
		}
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Date formats accepted by the datetime filter.
const (
	FullFormat   = "Monday January 2, 2006 at 3:04PM"
	MediumFormat = "Mon Jan 2, 2006 3:04PM"
)

// Funcs returns the template helpers.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"datetime": Datetime,
		"ago": func(v any) string {
			t, ok := asTime(v)
			if !ok {
				return ""
			}
			return humanize.Time(t)
		},
		"join": func(xs []string, sep string) string { return strings.Join(xs, sep) },
		"contains": func(xs []string, x string) bool {
			for _, s := range xs {
				if s == x {
					return true
				}
			}
			return false
		},
		"plural": func(n int, word string) string {
			return fmt.Sprintf("%s %s", humanize.Comma(int64(n)), pluralize(n, word))
		},
		"states": func() []string { return form.States },
		"genres": func() []string { return form.Genres },
	}
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Datetime formats a time.Time or a start time string as "full" or
// "medium". Unparseable input is returned unchanged.
func Datetime(v any, format string) string {
	t, ok := asTime(v)
	if !ok {
		return fmt.Sprint(v)
	}
	switch format {
	case "full":
		return t.Format(FullFormat)
	default:
		return t.Format(MediumFormat)
	}
}

func asTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		t, err := time.ParseInLocation(schedule.StartTimeLayout, x, time.UTC)
		return t, err == nil
	}
	return time.Time{}, false
}
