package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/portfolio/pkg/cache"
	"github.com/matzehuels/portfolio/pkg/errors"
)

type detail struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(detail{Detail: "failed to encode response"})
	}
	writeRaw(w, status, data)
}

func writeRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// mutated responds like respond and evicts the cached snapshot on success.
func (s *Server) mutated(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err == nil {
		s.gen.Add(1)
		if derr := s.cache.Delete(r.Context(), cache.SnapshotKey(s.svc.UserID())); derr != nil {
			s.logger.Warn("snapshot cache eviction failed", "error", derr)
		}
	}
	s.respond(w, r, v, err)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err)
	}
	writeJSON(w, status, detail{Detail: errors.UserMessage(err)})
}

// decode reads a JSON body into v, answering 422 when it cannot.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeValidation, err, "invalid request body"))
		return false
	}
	return true
}
