package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"arso-weather/datasource"
	"arso-weather/models"
	"arso-weather/providers/arso"
	"arso-weather/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

// Server exposes the session and forecast source to UI clients over HTTP
type Server struct {
	sess   *session.Session
	source datasource.ForecastSource
}

// NewServer creates a new API server around a session. source is used for
// on-demand forecast fetches that should not change the current selection.
func NewServer(sess *session.Session, source datasource.ForecastSource) *Server {
	return &Server{sess: sess, source: source}
}

// Router builds the chi router with the standard middleware stack
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/api/health", s.handleHealthCheck)
	r.Get("/api/locations", s.handleSearchLocations)
	r.Get("/api/forecast", s.handleCurrentForecast)
	r.Get("/api/forecast/{locationID}", s.handleForecastByLocation)
	r.Post("/api/select/{locationID}", s.handleSelectLocation)

	return r
}

// requestID tags each request for log correlation
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
			r.Header.Set("X-Request-ID", reqID)
		}
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// handleSearchLocations serves per-keystroke location searches. Short
// queries and failed searches both come back as an empty array; the UI is
// not expected to tell them apart.
func (s *Server) handleSearchLocations(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("loc"))

	matches, _ := s.sess.Search(r.Context(), query)
	if matches == nil {
		// Keep the body a JSON array even when there is nothing to show
		matches = []models.LocationMatch{}
	}

	writeJSON(w, http.StatusOK, matches)
}

// handleCurrentForecast returns the session's currently displayed forecast
func (s *Server) handleCurrentForecast(w http.ResponseWriter, r *http.Request) {
	forecast, ok := s.sess.Cell().Current()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "no location selected",
		})
		return
	}

	writeJSON(w, http.StatusOK, forecast)
}

// handleForecastByLocation fetches a forecast on demand without changing
// the current selection
func (s *Server) handleForecastByLocation(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	forecast, err := s.source.FetchForecast(r.Context(), locationID)
	if err != nil {
		s.writeFetchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, forecast)
}

// handleSelectLocation selects a location through the session: the fetched
// forecast becomes current and the selection is persisted
func (s *Server) handleSelectLocation(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationID")

	if err := s.sess.Select(r.Context(), locationID); err != nil {
		s.writeFetchError(w, err)
		return
	}

	forecast, _ := s.sess.Cell().Current()
	writeJSON(w, http.StatusOK, forecast)
}

// writeFetchError maps the provider error taxonomy onto HTTP. Both flavors
// are upstream problems, but diagnostics want them distinguishable.
func (s *Server) writeFetchError(w http.ResponseWriter, err error) {
	if errors.Is(err, arso.ErrMalformedPayload) {
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":  "upstream returned a malformed payload",
			"reason": "malformed_payload",
		})
		return
	}

	writeJSON(w, http.StatusBadGateway, map[string]string{
		"error":  "failed to fetch forecast",
		"reason": "fetch_failed",
	})
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
