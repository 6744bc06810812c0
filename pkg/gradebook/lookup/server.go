package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ukaji3/gradebook-go/pkg/gradebook/config"
	"github.com/ukaji3/gradebook-go/pkg/gradebook/models"
	"github.com/ukaji3/gradebook-go/pkg/gradebook/output"
)

// User-facing messages returned by the record endpoints.
const (
	msgMissingID = "Vui lòng nhập mã định danh."
	msgNotFound  = "Không tìm thấy mã định danh này."
)

// Server serves a converted grades document for lookup by identifier.
// The document is loaded at start and swapped atomically by Reload.
type Server struct {
	path   string
	lookup config.LookupConfig
	log    zerolog.Logger

	mu      sync.RWMutex
	payload *models.Payload
	doc     []byte // encoded document served at /grades.json
}

// NewServer loads the grades document at path.
func NewServer(path string, lc config.LookupConfig, log zerolog.Logger) (*Server, error) {
	s := &Server{path: path, lookup: lc, log: log}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the grades document. On error the previous document stays in place.
func (s *Server) Reload() error {
	p, err := output.ReadJSON(s.path)
	if err != nil {
		return err
	}
	doc, err := output.ToJSON(p, false)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.payload, s.doc = p, doc
	s.mu.Unlock()

	s.log.Info().Str("file", s.path).Int("records", p.Records.Len()).
		Str("last_updated", p.LastUpdated).Msg("grades loaded")
	return nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/grades.json", s.handleDocument)
	r.Route("/api", func(r chi.Router) {
		r.Get("/meta", s.handleMeta)
		r.Get("/records/{id}", s.handleRecord)
		r.Get("/records/{id}/view", s.handleView)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("lookup server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) snapshot() (*models.Payload, []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payload, s.doc
}

func (s *Server) handleDocument(w http.ResponseWriter, _ *http.Request) {
	_, doc := s.snapshot()
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (s *Server) handleMeta(w http.ResponseWriter, _ *http.Request) {
	p, _ := s.snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"last_updated": p.LastUpdated,
		"records":      p.Records.Len(),
	})
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.find(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.find(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, Present(rec, s.lookup))
}

// find resolves the {id} parameter, writing the error response when it fails.
func (s *Server) find(w http.ResponseWriter, r *http.Request) (*models.Record, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, msgMissingID)
		return nil, false
	}
	p, _ := s.snapshot()
	rec, ok := p.Records.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound)
		return nil, false
	}
	return rec, true
}

// accessLog logs method, path, status and elapsed time for each request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("request done")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
