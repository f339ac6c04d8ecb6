// Package server exposes [service.Service] as the portfolio REST API.
//
// All routes live under /api. Error responses have the shape
// {"detail": "..."} with the status chosen by errors.HTTPStatus. The full
// snapshot served by GET /api/portfolio and GET /api/export is cached in a
// [cache.Cache]; every successful mutation evicts it.
//
//	srv := server.New(svc, server.WithCache(redis, time.Minute))
//	err := srv.ListenAndServe(ctx, ":8000")
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/portfolio/pkg/cache"
	"github.com/matzehuels/portfolio/pkg/portfolio"
	"github.com/matzehuels/portfolio/pkg/service"
)

// DefaultSnapshotTTL bounds how long a cached snapshot is served.
const DefaultSnapshotTTL = time.Minute

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
	corsMaxAge      = 600
)

// Server routes HTTP requests to a service.
type Server struct {
	svc    *service.Service
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
	router chi.Router

	// gen counts successful mutations. A snapshot loaded under an older
	// generation is not cached.
	gen atomic.Uint64
}

// Option configures a [Server].
type Option func(*Server)

// WithCache serves snapshots through c, keeping them for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) {
		if c != nil {
			s.cache = c
		}
		s.ttl = ttl
	}
}

// WithLogger sets the request and error logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New builds the router for svc. Without WithCache snapshots are not cached.
func New(svc *service.Service, opts ...Option) *Server {
	s := &Server{
		svc:    svc,
		cache:  cache.NewNullCache(),
		ttl:    DefaultSnapshotTTL,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         corsMaxAge,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleRoot)
		r.Get("/status", s.handleStatus)
		r.Post("/status", s.handleCreateStatus)

		r.Get("/portfolio", s.handleSnapshot(s.svc.Portfolio))
		r.Put("/portfolio/personal", s.handleUpdatePersonal)
		r.Put("/portfolio/about", s.handleUpdateAbout)
		r.Get("/export", s.handleSnapshot(s.svc.Export))
		r.Post("/migrate", s.handleMigrate)

		mount(s, r, "/skills", resource[portfolio.SkillCategory, portfolio.SkillCategoryCreate, portfolio.SkillCategoryUpdate]{
			list: s.svc.Skills, create: s.svc.CreateSkill, update: s.svc.UpdateSkill, remove: s.svc.DeleteSkill,
		})
		mount(s, r, "/experience", resource[portfolio.Experience, portfolio.ExperienceCreate, portfolio.ExperienceUpdate]{
			list: s.svc.Experiences, create: s.svc.CreateExperience, update: s.svc.UpdateExperience, remove: s.svc.DeleteExperience,
		})
		mount(s, r, "/projects", resource[portfolio.Project, portfolio.ProjectCreate, portfolio.ProjectUpdate]{
			list: s.svc.Projects, create: s.svc.CreateProject, update: s.svc.UpdateProject, remove: s.svc.DeleteProject,
		})
		mount(s, r, "/achievements", resource[portfolio.Achievement, portfolio.AchievementCreate, portfolio.AchievementUpdate]{
			list: s.svc.Achievements, create: s.svc.CreateAchievement, update: s.svc.UpdateAchievement, remove: s.svc.DeleteAchievement,
		})
		mount(s, r, "/publications", resource[portfolio.Publication, portfolio.PublicationCreate, portfolio.PublicationUpdate]{
			list: s.svc.Publications, create: s.svc.CreatePublication, update: s.svc.UpdatePublication, remove: s.svc.DeletePublication,
		})
	})

	// Registered last so the handlers propagate to every subrouter.
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, detail{Detail: "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, detail{Detail: "Method Not Allowed"})
	})
	return r
}
