// Package view renders the HTML pages.  Templates are embedded into the
// binary and parsed once at start up; each page is combined with the shared
// layout into its own template set.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nikosDal/fyyur-01/internal/model"
)

//go:embed templates
var files embed.FS

const (
	layout   = "templates/layouts/main.html"
	partials = "templates/partials/*.html"
)

// Page is the data every template receives.
type Page struct {
	Title  string
	Flash  string
	Errors []string
	Data   any
}

// Renderer implements echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every embedded page.  Page names are their path below
// templates without the extension, for example "pages/home".
func New() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	base, err := template.New("main.html").Funcs(Funcs()).ParseFS(files, layout, partials)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	err = fs.WalkDir(files, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ".html" || !isPage(p) {
			return err
		}
		t, err := template.Must(base.Clone()).ParseFS(files, p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		r.pages[strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), ".html")] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func isPage(p string) bool {
	dir := path.Dir(p)
	return dir != path.Dir(layout) && dir != path.Dir(partials)
}

// Has reports whether a page called name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render executes the page called name.  data is wrapped in a Page unless
// it already is one.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: no page %q", name)
	}
	p, ok := data.(Page)
	if !ok {
		p = Page{Data: data}
	}
	return t.ExecuteTemplate(w, "main.html", p)
}

// Date layouts for the datetime template function.
const (
	FullDate   = "Monday January 2, 2006 at 3:04PM"
	MediumDate = "Mon 01, 02, 2006 3:04PM"
)

// Funcs returns the functions available to templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"datetime":     FormatDatetime,
		"hasGenre":     hasGenre,
		"genreChoices": func() []string { return model.GenreChoices },
		"stateChoices": func() []string { return model.StateChoices },
		"join":         strings.Join,
		"args":         func(v ...any) []any { return v },
	}
}

// FormatDatetime formats t for display.  format is "full" or "medium";
// anything else is used as a Go layout.
func FormatDatetime(t time.Time, format string) string {
	switch format {
	case "full":
		format = FullDate
	case "medium", "":
		format = MediumDate
	}
	return t.UTC().Format(format)
}

func hasGenre(selected []string, tag string) bool {
	return slices.Contains(selected, tag)
}
