package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/pbaille/clubgap/internal/domain"
	"github.com/pbaille/clubgap/internal/gapping"
	"github.com/pbaille/clubgap/internal/store"
)

// Source supplies a fresh snapshot for every request
type Source interface {
	Snapshot() (*domain.Snapshot, error)
}

// Server handles HTTP requests for the gapping API
type Server struct {
	source Source
	opts   gapping.Options
	log    *logrus.Logger
}

// New creates a new API server
func New(source Source, opts gapping.Options, log *logrus.Logger) *Server {
	return &Server{source: source, opts: opts, log: log}
}

// Handler builds the router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(withCORS)

	r.Get("/health", s.health)

	r.Route("/clubs", func(r chi.Router) {
		r.Get("/", s.listClubs)
		r.Route("/{clubID}", func(r chi.Router) {
			r.Get("/shots", s.clubShots)
			r.Get("/range", s.clubRange)
			r.Get("/categories", s.clubCategories)
			r.Get("/chart.png", s.clubChart)
		})
	})

	r.Get("/bags", s.listBags)

	r.Route("/gaps", func(r chi.Router) {
		r.Get("/", s.gaps)
		r.Get("/chart.png", s.gapsChart)
		r.Get("/export.xlsx", s.gapsExport)
	})

	r.Get("/lookup", s.lookup)

	return r
}

// Run starts the HTTP server
func (s *Server) Run(addr string) error {
	s.log.WithField("addr", addr).Info("Starting server")
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request")
	})
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// snapshot loads the current records, writing a 500 on failure
func (s *Server) snapshot(w http.ResponseWriter) (*domain.Snapshot, bool) {
	snap, err := s.source.Snapshot()
	if err != nil {
		s.log.WithError(err).Error("load snapshot")
		writeError(w, http.StatusInternalServerError, "failed to load data")
		return nil, false
	}
	return snap, true
}

// fail maps an error onto a status code
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalid),
		errors.Is(err, gapping.ErrUnknownSortKey),
		errors.Is(err, gapping.ErrUnknownDirection),
		errors.Is(err, gapping.ErrAmbiguousQuery),
		errors.Is(err, errBadParam):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func findClub(snap *domain.Snapshot, ref string) (*domain.Club, error) {
	if c := gapping.FindClub(snap.Clubs, ref); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("club %s: %w", ref, store.ErrNotFound)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeBinary(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
