package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meur/pokedex/internal/controller"
)

// handleGetPokemon returns the detail view for one id
func (s *Server) handleGetPokemon(w http.ResponseWriter, r *http.Request) {
	loc := s.localizer(r)

	dv, err := controller.NewDetailPage(s.deps, loc.Lang()).Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondFailure(w, loc, err)
		return
	}
	respondJSON(w, http.StatusOK, dv)
}

// handleGetRandom returns one random Pokémon
func (s *Server) handleGetRandom(w http.ResponseWriter, r *http.Request) {
	entry, err := controller.NewRandomLookup(s.deps).Run(r.Context())
	if err != nil {
		respondFailure(w, s.localizer(r), err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// handleGetFeatured returns the featured batch
func (s *Server) handleGetFeatured(w http.ResponseWriter, r *http.Request) {
	entries, err := controller.NewFeaturedBatch(s.deps).Run(r.Context())
	if err != nil {
		respondFailure(w, s.localizer(r), err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":       entries,
		"total_count": len(entries),
	})
}

// handleGetSearch resolves ?q= to an id and detail path
func (s *Server) handleGetSearch(w http.ResponseWriter, r *http.Request) {
	res, err := controller.NewSearchResolve(s.deps).Run(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondFailure(w, s.localizer(r), err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
