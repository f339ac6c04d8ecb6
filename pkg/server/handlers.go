package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/portfolio/pkg/cache"
	"github.com/matzehuels/portfolio/pkg/errors"
	"github.com/matzehuels/portfolio/pkg/portfolio"
	"github.com/matzehuels/portfolio/pkg/service"
)

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, portfolio.Message{Message: service.RootMessage})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	checks, err := s.svc.Status(r.Context())
	s.respond(w, r, checks, err)
}

func (s *Server) handleCreateStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ClientName string `json:"client_name"`
	}
	if !s.decode(w, r, &in) {
		return
	}
	check, err := s.svc.CreateStatus(r.Context(), in.ClientName)
	s.respond(w, r, check, err)
}

// handleSnapshot serves the snapshot returned by load, caching the encoded
// body under the user's snapshot key.
func (s *Server) handleSnapshot(load func(context.Context) (*portfolio.Snapshot, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := cache.SnapshotKey(s.svc.UserID())

		data, hit, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("snapshot cache read failed", "error", err)
		}
		if hit {
			w.Header().Set("X-Cache", "HIT")
			writeRaw(w, http.StatusOK, data)
			return
		}

		gen := s.gen.Load()
		snap, err := load(ctx)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		data, err = json.Marshal(snap)
		if err != nil {
			s.fail(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode portfolio"))
			return
		}
		s.fill(ctx, key, data, gen)
		w.Header().Set("X-Cache", "MISS")
		writeRaw(w, http.StatusOK, data)
	}
}

// fill caches data loaded under generation gen. A mutation that lands
// while loading, or between the check and the write, leaves the key empty.
func (s *Server) fill(ctx context.Context, key string, data []byte, gen uint64) {
	if s.gen.Load() != gen {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("snapshot cache write failed", "error", err)
		return
	}
	if s.gen.Load() != gen {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn("snapshot cache eviction failed", "error", err)
		}
	}
}

func (s *Server) handleUpdatePersonal(w http.ResponseWriter, r *http.Request) {
	var u portfolio.PersonalInfoUpdate
	if !s.decode(w, r, &u) {
		return
	}
	msg, err := s.svc.UpdatePersonal(r.Context(), u)
	s.mutated(w, r, msg, err)
}

func (s *Server) handleUpdateAbout(w http.ResponseWriter, r *http.Request) {
	var u portfolio.AboutSectionUpdate
	if !s.decode(w, r, &u) {
		return
	}
	msg, err := s.svc.UpdateAbout(r.Context(), u)
	s.mutated(w, r, msg, err)
}

func (s *Server) handleMigrate(w http.ResponseWriter, r *http.Request) {
	var seed portfolio.SeedData
	if !s.decode(w, r, &seed) {
		return
	}
	msg, err := s.svc.Migrate(r.Context(), seed)
	s.mutated(w, r, msg, err)
}

// resource binds the CRUD operations of one collection.
type resource[T, C, U any] struct {
	list   func(context.Context) ([]T, error)
	create func(context.Context, C) (T, error)
	update func(context.Context, string, U) (portfolio.Message, error)
	remove func(context.Context, string) (portfolio.Message, error)
}

func mount[T, C, U any](s *Server, r chi.Router, path string, res resource[T, C, U]) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			items, err := res.list(r.Context())
			s.respond(w, r, items, err)
		})
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var in C
			if !s.decode(w, r, &in) {
				return
			}
			item, err := res.create(r.Context(), in)
			s.mutated(w, r, item, err)
		})
		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			var u U
			if !s.decode(w, r, &u) {
				return
			}
			msg, err := res.update(r.Context(), chi.URLParam(r, "id"), u)
			s.mutated(w, r, msg, err)
		})
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			msg, err := res.remove(r.Context(), chi.URLParam(r, "id"))
			s.mutated(w, r, msg, err)
		})
	})
}
