// Package http serves recommendations over a small JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/0xcro3dile/navrank-go/internal/adapters/render"
	"github.com/0xcro3dile/navrank-go/internal/adapters/store"
	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
	"github.com/0xcro3dile/navrank-go/internal/domain/ports"
	"github.com/0xcro3dile/navrank-go/internal/domain/usecases"
)

// Server is the HTTP front end over the current fund universe.
type Server struct {
	recommend *usecases.RecommendUseCase
	funds     ports.FundStore
	cache     *store.RecommendationCache
	addr      string
}

// NewServer creates a server. cache may be nil.
func NewServer(
	recommendUC *usecases.RecommendUseCase,
	funds ports.FundStore,
	cache *store.RecommendationCache,
	addr string,
) *Server {
	return &Server{
		recommend: recommendUC,
		funds:     funds,
		cache:     cache,
		addr:      addr,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/recommend", s.handleRecommend)
	mux.HandleFunc("/api/funds", s.handleFunds)
	mux.HandleFunc("/api/health", s.handleHealth)
	return corsMiddleware(loggingMiddleware(mux))
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info().Str("addr", s.addr).Msg("navrank server starting")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type recommendResponse struct {
	Date    string                   `json:"date,omitempty"`
	Title   string                   `json:"title"`
	Message string                   `json:"message,omitempty"`
	Result  *entities.Recommendation `json:"result"`
}

// handleRecommend ranks the universe for a profile given as a JSON object of fields.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object of profile fields")
		return
	}
	profile := usecases.BuildProfile(fields)

	date, funds, err := s.funds.Current(r.Context())
	if err != nil && !errors.Is(err, store.ErrEmpty) {
		log.Error().Err(err).Msg("reading fund universe")
		writeError(w, http.StatusInternalServerError, "unable to read fund universe")
		return
	}

	var rec *entities.Recommendation
	cached := false
	if err == nil && s.cache != nil {
		rec, cached = s.cache.Get(date, profile)
	}
	if !cached {
		rec = s.recommend.Recommend(funds, profile)
		if err == nil && s.cache != nil && rec.Outcome != entities.OutcomeIngestEmpty {
			s.cache.Set(date, rec)
		}
	}

	resp := recommendResponse{
		Title:   render.Title(rec),
		Message: rec.Outcome.Message(),
		Result:  rec,
	}
	if err == nil {
		resp.Date = date.Format(time.DateOnly)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleFunds lists the current universe, optionally filtered by ?category=.
func (s *Server) handleFunds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var (
		date  time.Time
		funds []entities.FundRecord
		err   error
	)
	if name := r.URL.Query().Get("category"); name != "" {
		c, ok := entities.ParseCategory(name)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown category: "+name)
			return
		}
		date, funds, err = s.funds.ByCategory(r.Context(), c)
	} else {
		date, funds, err = s.funds.Current(r.Context())
	}

	if errors.Is(err, store.ErrEmpty) {
		writeError(w, http.StatusServiceUnavailable, entities.OutcomeIngestEmpty.Message())
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("reading fund universe")
		writeError(w, http.StatusInternalServerError, "unable to read fund universe")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":  date.Format(time.DateOnly),
		"count": len(funds),
		"funds": funds,
	})
}

// handleHealth reports liveness and whether a universe is loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "ok"}
	if date, funds, err := s.funds.Current(r.Context()); err == nil {
		body["snapshot"] = date.Format(time.DateOnly)
		body["funds"] = len(funds)
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", rec.status).
			Dur("latency", time.Since(start)).
			Msg("HTTP Request")
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
