// Package api provides the local HTTP API: the learner state, quests,
// quiz and challenge flows, skill trees, the town, history, a live
// WebSocket feed and Prometheus metrics.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/learnquest/learnquest/internal/content"
	"github.com/learnquest/learnquest/internal/realtime"
	"github.com/learnquest/learnquest/internal/skilltree"
	"github.com/learnquest/learnquest/internal/tracker"
)

// Server is the learnquest HTTP API server.
type Server struct {
	tracker        *tracker.Tracker
	hub            *realtime.Hub
	catalog        *skilltree.Catalog
	log            *slog.Logger
	aiTimeout      time.Duration
	metricsEnabled bool
}

// NewServer creates a new API server. hub may be nil, which disables
// the live feed.
func NewServer(tr *tracker.Tracker, hub *realtime.Hub, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		tracker:   tr,
		hub:       hub,
		catalog:   skilltree.Default(),
		log:       log,
		aiTimeout: 60 * time.Second,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetAITimeout bounds every request that calls the content collaborator.
func (s *Server) SetAITimeout(d time.Duration) {
	if d > 0 {
		s.aiTimeout = d
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"aiEnabled": s.tracker.AIEnabled(),
			"session":   s.tracker.SessionID(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/steps", s.handleStep)
		r.Post("/reset", s.handleReset)

		r.Get("/quests", s.handleQuests)
		r.Post("/quests/generate", s.handleGenerateQuests)
		r.Post("/quests/{id}/complete", s.handleCompleteQuest)

		r.Post("/quiz", s.handleStartQuiz)
		r.Post("/quiz/submit", s.handleSubmitQuiz)
		r.Post("/challenge", s.handleStartChallenge)
		r.Post("/challenge/submit", s.handleSubmitChallenge)

		r.Get("/tree", s.handleTree)
		r.Get("/tree/advice", s.handleAdvice)
		r.Post("/tree/{id}/unlock", s.handleUnlock)

		r.Get("/town", s.handleTown)
		r.Get("/history", s.handleHistory)

		if s.hub != nil {
			r.Handle("/live", realtime.Handler(s.hub))
		}
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	return r
}

// aiContext derives the context for a collaborator-backed request.
func (s *Server) aiContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.aiTimeout)
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    kind,
		},
	})
}

// writeFailure maps an operation error onto a status code.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	var (
		cfgErr    *tracker.ConfigError
		collabErr *content.CollaboratorError
	)
	switch {
	case errors.As(err, &cfgErr):
		writeError(w, http.StatusServiceUnavailable, "config_error", err.Error())
	case errors.Is(err, content.ErrEmptyPrompt):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.As(err, &collabErr):
		writeError(w, http.StatusBadGateway, "collaborator_error", err.Error())
	case errors.Is(err, tracker.ErrSuperseded):
		writeError(w, http.StatusConflict, "superseded", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout", err.Error())
	default:
		s.log.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// corsMiddleware adds CORS headers for a locally served front end.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
