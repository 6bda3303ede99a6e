// Package catalogtest provides an in-process fake of the catalog service for tests.
package catalogtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/meur/pokedex/internal/catalog"
)

// Server is a fake catalog backed by fixtures
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	byID    map[int]catalog.Pokemon
	species map[int]catalog.Species
	status  map[string]int

	// Synthesize answers any in-range numeric id that has no fixture
	Synthesize bool

	requests atomic.Int64
}

// NewServer starts a fake catalog preloaded with a few well-known records.
// It is closed automatically when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		byID:    make(map[int]catalog.Pokemon),
		species: make(map[int]catalog.Species),
		status:  make(map[string]int),
	}

	r := chi.NewRouter()
	r.Get("/pokemon/{key}", s.handlePokemon)
	r.Get("/pokemon-species/{id}/", s.handleSpecies)
	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)

	s.Add(MockPokemon(1, "bulbasaur", map[string]int{"hp": 45, "attack": 49, "defense": 49}, "grass", "poison"))
	s.Add(MockPokemon(4, "charmander", map[string]int{"hp": 39, "attack": 52, "defense": 43}, "fire"))
	s.Add(MockPokemon(7, "squirtle", map[string]int{"hp": 44, "attack": 48, "defense": 65}, "water"))
	s.Add(MockPokemon(25, "pikachu", map[string]int{"hp": 35, "attack": 55, "defense": 40}, "electric"))

	return s
}

// Add registers a record and a matching species entry
func (s *Server) Add(p catalog.Pokemon) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.Species = catalog.NamedResource{
		Name: p.Name,
		URL:  fmt.Sprintf("%s/pokemon-species/%d/", s.URL, p.ID),
	}
	s.byID[p.ID] = p
	s.species[p.ID] = MockSpecies(p.ID, p.Name)
}

// FailWith makes requests for key ("25", "pikachu", "species/25") answer with status
func (s *Server) FailWith(key string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[key] = status
}

// Requests returns how many requests the fake has served
func (s *Server) Requests() int {
	return int(s.requests.Load())
}

func (s *Server) handlePokemon(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)
	key := chi.URLParam(r, "key")

	s.mu.Lock()
	defer s.mu.Unlock()

	if status, ok := s.status[key]; ok {
		w.WriteHeader(status)
		return
	}

	if id, err := strconv.Atoi(key); err == nil {
		p, ok := s.byID[id]
		if !ok && s.Synthesize && id >= catalog.MinID && id <= catalog.MaxID {
			p = MockPokemon(id, fmt.Sprintf("pokemon-%d", id), map[string]int{"hp": id}, "normal")
			p.Species = catalog.NamedResource{Name: p.Name, URL: fmt.Sprintf("%s/pokemon-species/%d/", s.URL, id)}
			ok = true
		}
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, p)
		return
	}

	for _, p := range s.byID {
		if p.Name == key {
			writeJSON(w, p)
			return
		}
	}
	http.NotFound(w, r)
}

func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)
	key := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if status, ok := s.status["species/"+key]; ok {
		w.WriteHeader(status)
		return
	}

	id, _ := strconv.Atoi(key)
	sp, ok := s.species[id]
	if !ok && s.Synthesize && id >= catalog.MinID && id <= catalog.MaxID {
		sp, ok = MockSpecies(id, fmt.Sprintf("pokemon-%d", id)), true
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, sp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// MockPokemon creates a raw record with official artwork and the given stats and types
func MockPokemon(id int, name string, stats map[string]int, types ...string) catalog.Pokemon {
	art := fmt.Sprintf("https://img.example/official-artwork/%d.png", id)
	sprite := fmt.Sprintf("https://img.example/sprites/%d.png", id)

	p := catalog.Pokemon{
		ID:        id,
		Name:      name,
		IsDefault: true,
		Sprites: catalog.Sprites{
			FrontDefault: &sprite,
			Other: catalog.OtherSprites{
				OfficialArtwork: catalog.Artwork{FrontDefault: &art},
			},
		},
	}
	for _, statName := range []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"} {
		if v, ok := stats[statName]; ok {
			p.Stats = append(p.Stats, catalog.Stat{BaseStat: v, Stat: catalog.NamedResource{Name: statName}})
		}
	}
	for i, t := range types {
		p.Types = append(p.Types, catalog.TypeSlot{Slot: i + 1, Type: catalog.NamedResource{Name: t}})
	}
	return p
}

// MockSpecies creates a species record with an English genus and flavor text
func MockSpecies(id int, name string) catalog.Species {
	title := name
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	return catalog.Species{
		ID:         id,
		Name:       name,
		Color:      catalog.NamedResource{Name: "yellow"},
		Generation: catalog.NamedResource{Name: "generation-i"},
		Genera: []catalog.Genus{
			{Genus: "Mouse Pokémon", Language: catalog.NamedResource{Name: "en"}},
		},
		FlavorTextEntries: []catalog.FlavorText{
			{FlavorText: "When several of\nthese " + title + "\fgather, their electricity could build.", Language: catalog.NamedResource{Name: "en"}, Version: catalog.NamedResource{Name: "red"}},
		},
	}
}
