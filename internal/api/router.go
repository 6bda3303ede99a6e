package api

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/meur/pokedex/internal/controller"
	"github.com/meur/pokedex/internal/i18n"
	"github.com/meur/pokedex/internal/logging"
)

// Options configures a Server
type Options struct {
	Deps        controller.Deps
	Bundle      *i18n.Bundle
	Logger      *zap.Logger
	CORSOrigins []string
}

// Server holds the HTTP server dependencies
type Server struct {
	deps        controller.Deps
	bundle      *i18n.Bundle
	logger      *zap.Logger
	corsOrigins []string
	pages       map[string]*template.Template
	router      chi.Router
}

// New creates the web server: HTML pages, the JSON API and the lookup websocket
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Bundle == nil {
		b, err := i18n.New("en")
		if err != nil {
			return nil, err
		}
		opts.Bundle = b
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.Deps.Logger == nil {
		opts.Deps.Logger = opts.Logger
	}

	pages, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		deps:        opts.Deps,
		bundle:      opts.Bundle,
		logger:      opts.Logger,
		corsOrigins: opts.CORSOrigins,
		pages:       pages,
		router:      chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logging.Middleware(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	// Pages
	s.router.Get("/", s.handleHome)
	s.router.Post("/random", s.handleRandom)
	s.router.Post("/search", s.handleSearch)
	s.router.Get("/pokemon/{id}", s.handleDetail)
	s.router.Get("/item/{id}", s.handleItemRedirect)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type"},
			MaxAge:         300,
		}))

		r.Get("/pokemon/{id}", s.handleGetPokemon)
		r.Get("/random", s.handleGetRandom)
		r.Get("/featured", s.handleGetFeatured)
		r.Get("/search", s.handleGetSearch)
	})

	s.router.Get("/ws/lookup", s.handleLookupSocket)

	s.router.Handle("/static/*", http.StripPrefix("/static", staticHandler()))

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// localizer picks the language from ?lang= (or a lang form field), then Accept-Language
func (s *Server) localizer(r *http.Request) *i18n.Localizer {
	return s.bundle.Localizer(s.bundle.Match(r.FormValue("lang"), r.Header.Get("Accept-Language")))
}

// --- Response helpers ---

type apiError struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, apiError{Error: message})
}

// respondFailure reports a controller failure with its localized message
func respondFailure(w http.ResponseWriter, loc *i18n.Localizer, err error) {
	f, ok := controller.AsFailure(err)
	if !ok {
		respondError(w, http.StatusInternalServerError, loc.T(i18n.KeyCatalogUnavailable))
		return
	}
	respondJSON(w, statusFor(f.Kind), apiError{Error: loc.T(f.Key), Kind: f.Kind.String()})
}

func statusFor(kind controller.Kind) int {
	switch kind {
	case controller.KindValidation:
		return http.StatusUnprocessableEntity
	case controller.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
