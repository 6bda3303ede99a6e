package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/meur/pokedex/internal/controller"
	"github.com/meur/pokedex/internal/i18n"
	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/normalize"
)

// homeView loads the featured grid. A grid posted back in the featured field
// is kept; otherwise a new one is drawn. A failed batch shows a message
// instead of a partial grid.
func (s *Server) homeView(r *http.Request, loc *i18n.Localizer) view {
	v := view{
		L:     loc,
		Title: loc.T(i18n.KeyAppName),
	}

	entries, err := controller.NewFeaturedBatch(s.deps).RunWith(r.Context(), parseIDs(r.FormValue("featured")))
	if err != nil {
		v.FeaturedError = failureMessage(loc, err)
		return v
	}
	v.Featured = cards(entries)
	v.FeaturedIDs = joinIDs(entries)
	return v
}

// handleHome renders the landing page
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	loc := s.localizer(r)
	s.render(w, http.StatusOK, "home", s.homeView(r, loc))
}

// handleRandom runs a random lookup and renders the home page with its card
func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	loc := s.localizer(r)
	v := s.homeView(r, loc)

	entry, err := controller.NewRandomLookup(s.deps).Run(r.Context())
	if err != nil {
		v.RandomError = failureMessage(loc, err)
	} else {
		v.Random = &entry.Card
	}
	s.render(w, http.StatusOK, "home", v)
}

// handleSearch resolves the q form field and redirects to its detail page
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	loc := s.localizer(r)
	query := r.FormValue("q")

	res, err := controller.NewSearchResolve(s.deps).Run(r.Context(), query)
	if err == nil {
		http.Redirect(w, r, withLang(res.Path, r.FormValue("lang")), http.StatusSeeOther)
		return
	}

	v := s.homeView(r, loc)
	v.Query = strings.TrimSpace(query)
	v.SearchError = failureMessage(loc, err)

	status := http.StatusInternalServerError
	if f, ok := controller.AsFailure(err); ok {
		status = statusFor(f.Kind)
	}
	s.render(w, status, "home", v)
}

// handleDetail renders the detail page, or the standard not-found page
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	loc := s.localizer(r)

	dv, err := controller.NewDetailPage(s.deps, loc.Lang()).Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.render(w, http.StatusNotFound, "notfound", view{
			L:           loc,
			Title:       loc.T(i18n.KeyNotFoundTitle),
			Description: loc.T(i18n.KeyNotFoundText),
		})
		return
	}

	p := dv.Detail.Pokemon
	s.render(w, http.StatusOK, "detail", view{
		L:           loc,
		Title:       loc.T(i18n.KeyDetailTitle, p.Name, dv.Padded),
		Description: loc.T(i18n.KeyDetailDescription, p.Name, strings.Join(p.Types, "/")),
		Detail:      &dv,
	})
}

// handleItemRedirect keeps /item/{id} links working
func (s *Server) handleItemRedirect(w http.ResponseWriter, r *http.Request) {
	target := normalize.DetailPrefix + url.PathEscape(chi.URLParam(r, "id"))
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

func failureMessage(loc *i18n.Localizer, err error) string {
	if f, ok := controller.AsFailure(err); ok {
		return loc.T(f.Key)
	}
	return loc.T(i18n.KeyCatalogUnavailable)
}

func cards(entries []controller.Entry) []models.Card {
	out := make([]models.Card, len(entries))
	for i, e := range entries {
		out[i] = e.Card
	}
	return out
}

// parseIDs reads a comma separated id list; anything malformed gives nil
func parseIDs(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int, len(parts))
	for i, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil
		}
		ids[i] = id
	}
	return ids
}

func joinIDs(entries []controller.Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = strconv.Itoa(e.Pokemon.ID)
	}
	return strings.Join(parts, ",")
}

func withLang(path, lang string) string {
	if lang == "" {
		return path
	}
	return path + "?lang=" + url.QueryEscape(lang)
}
