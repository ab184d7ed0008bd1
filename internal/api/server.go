package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dgallion1/exitsurvey/internal/catalog"
	"github.com/dgallion1/exitsurvey/internal/config"
	"github.com/dgallion1/exitsurvey/internal/pipeline"
)

// Server is the HTTP API server for exit-survey analysis.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	catalog      *catalog.Catalog
	log          *zap.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, cat *catalog.Catalog, log *zap.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		catalog:      cat,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/api/catalog", s.handleCatalog)
		r.Post("/api/analyze", s.handleAnalyze)
		r.Post("/api/jobs", s.handleSubmitJob)
		r.Post("/api/jobs/batch", s.handleBatchSubmit)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/jobs/{jobID}/result", s.handleJobResult)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":      "ok",
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}

type catalogResponse struct {
	Categories []catalog.Category `json:"categories"`
	Unmatched  string             `json:"unmatched"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, catalogResponse{
		Categories: s.catalog.Categories(),
		Unmatched:  catalog.Unmatched,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"analysis":    s.orchestrator.Stats(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
