// Package metrics provides Prometheus metrics for learnquest.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/learnquest/learnquest/internal/llm"
)

// ─── Progress ───────────────────────────────────────────────────────────────

// EventsApplied counts transitions that changed the learner state.
var EventsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "learnquest",
	Name:      "events_applied_total",
	Help:      "Total progress events applied.",
}, []string{"kind"})

// EventsRejected counts no-op requests: unknown ids, completed quests,
// unaffordable nodes, stale AI results.
var EventsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "learnquest",
	Name:      "events_rejected_total",
	Help:      "Total progress events rejected as no-ops.",
}, []string{"kind", "reason"})

// XPAwarded counts XP granted by applied events.
var XPAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "learnquest",
	Name:      "xp_awarded_total",
	Help:      "Total XP awarded.",
})

// Level tracks the learner's current level.
var Level = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "learnquest",
	Name:      "level",
	Help:      "Current learner level.",
})

// ─── Content collaborator ───────────────────────────────────────────────────

// CollaboratorFailures counts failed content requests by operation.
var CollaboratorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "learnquest",
	Name:      "collaborator_failures_total",
	Help:      "Total failed content generation requests.",
}, []string{"op"})

// LLMLatency tracks LLM request duration in seconds.
var LLMLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "learnquest",
	Name:      "llm_latency_seconds",
	Help:      "LLM request duration in seconds.",
	Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
}, []string{"provider", "purpose"})

// LLMRequests counts LLM requests by outcome.
var LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "learnquest",
	Name:      "llm_requests_total",
	Help:      "Total LLM requests.",
}, []string{"provider", "purpose", "outcome"})

// LLMObserver feeds the LLM metrics from the logging decorator.
type LLMObserver struct{}

var _ llm.Observer = LLMObserver{}

func (LLMObserver) ObserveLLM(provider, purpose string, latency time.Duration, err error) {
	LLMLatency.WithLabelValues(provider, purpose).Observe(latency.Seconds())
	LLMRequests.WithLabelValues(provider, purpose, outcome(err)).Inc()
}

func outcome(err error) string {
	var (
		rateLimit   *llm.ErrRateLimit
		invalid     *llm.ErrInvalidResponse
		unauth      *llm.ErrUnauthorized
		maxTokens   *llm.ErrMaxTokensExceeded
		unavailable *llm.ErrProviderUnavailable
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &rateLimit):
		return "rate_limited"
	case errors.As(err, &invalid):
		return "invalid_response"
	case errors.As(err, &unauth):
		return "unauthorized"
	case errors.As(err, &maxTokens):
		return "max_tokens"
	case errors.As(err, &unavailable):
		return "unavailable"
	default:
		return "error"
	}
}
