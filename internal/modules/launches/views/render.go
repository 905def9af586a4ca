package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/sitemap"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/types"
)

//go:embed templates
var viewsFS embed.FS

var pagesTmpl *template.Template

var funcs = template.FuncMap{
	"comma":   func(n int) string { return humanize.Comma(int64(n)) },
	"commaf":  humanize.Commaf,
	"ago":     humanize.Time,
	"isoTime": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
}

// loadTemplatesFromFS parses the page templates under dir of fsys.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	pagesTmpl, err = template.New("pages").Funcs(funcs).ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	return nil
}

// LoadTemplates loads the embedded page templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// DashboardData is the view model for the dashboard page.
type DashboardData struct {
	Layout      DashboardLayout
	LaunchCount int
	Import      *types.DatasetImport
}

func RenderDashboard(w io.Writer, data *DashboardData) error {
	if pagesTmpl == nil {
		return errors.New("dashboard template not loaded: call views.LoadTemplates during startup")
	}
	return pagesTmpl.ExecuteTemplate(w, "dashboard.html", data)
}

// MapData is the view model for the launch-site map page. Standalone pages
// are written to disk and carry no links back to the server.
type MapData struct {
	Title      string
	Map        sitemap.Map
	Standalone bool
}

func RenderMap(w io.Writer, data *MapData) error {
	if pagesTmpl == nil {
		return errors.New("map template not loaded: call views.LoadTemplates during startup")
	}
	return pagesTmpl.ExecuteTemplate(w, "map.html", data)
}
