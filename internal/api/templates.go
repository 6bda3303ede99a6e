package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/meur/pokedex/internal/controller"
	"github.com/meur/pokedex/internal/i18n"
	"github.com/meur/pokedex/internal/models"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

var pageNames = []string{"home", "detail", "notfound"}

// parseTemplates builds one template set per page, each on top of the layout
func parseTemplates() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).ParseFS(templateFiles, "templates/layout.tmpl", "templates/"+name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// view is the data every page template receives
type view struct {
	L           *i18n.Localizer
	Title       string
	Description string

	Random        *models.Card
	RandomError   string
	Featured      []models.Card
	FeaturedIDs   string
	FeaturedError string
	Query         string
	SearchError   string

	Detail *controller.DetailView
}

// render executes the base layout for page. Output is buffered so a template
// error still produces a clean 500.
func (s *Server) render(w http.ResponseWriter, status int, page string, data view) {
	t, ok := s.pages[page]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		s.logger.Error("Template exec failed", zap.String("page", page), zap.Error(err))
		http.Error(w, "template exec error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// staticCacheControl lets browsers keep the embedded assets for a day
const staticCacheControl = "public, max-age=86400"

// staticHandler serves the embedded assets with the /static prefix removed.
// Directory paths are not listed.
func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	files := http.FileServerFS(sub)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", staticCacheControl)
		files.ServeHTTP(w, r)
	})
}
