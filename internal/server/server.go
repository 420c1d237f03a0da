package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lazypower/daybook/internal/logging"
	"github.com/lazypower/daybook/internal/service"
)

// Server is the daybook HTTP API server.
type Server struct {
	entries   *service.Service
	router    chi.Router
	log       logging.Logger
	uploadDir string
	version   string
	started   time.Time
}

// New creates a Server over the given entry service. uploadDir is the
// directory image uploads live in; it is served statically under
// /uploads/. May be empty to disable static image serving.
func New(entries *service.Service, uploadDir string, log logging.Logger, version string) *Server {
	s := &Server{
		entries:   entries,
		log:       log,
		uploadDir: uploadDir,
		version:   version,
		started:   time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(requestLogger(s.log))
	r.Use(metricsMiddleware())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/entries", s.handleListEntries)
		r.Post("/entries", s.handleCreateEntry)
		r.Get("/entries/{entryID}", s.handleGetEntry)
		r.Put("/entries/{entryID}", s.handleUpdateEntry)
		r.Delete("/entries/{entryID}", s.handleDeleteEntry)

		r.Get("/memories", s.handleMemories)
	})

	r.Handle("/metrics", promhttp.Handler())

	if s.uploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadDir))))
	}

	r.Handle("/*", spaHandler())

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"entries": s.entries.Count(),
		"db_path": s.entries.StorePath(),
	})
}
