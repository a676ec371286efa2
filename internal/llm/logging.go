package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/learnquest/learnquest/internal/store"
)

// Observer receives one callback per completed LLM request. The metrics
// package implements it.
type Observer interface {
	ObserveLLM(provider, purpose string, latency time.Duration, err error)
}

// Recorder bundles the sinks a LoggingProvider reports to. Every field
// is optional.
type Recorder struct {
	Events   store.EventRepo
	Logger   *slog.Logger
	Observer Observer
}

// LoggingProvider is a decorator that records every LLM request.
type LoggingProvider struct {
	inner    Provider
	provider string
	rec      Recorder
}

// WithLogging wraps p so each request is stored, logged and observed.
func WithLogging(p Provider, provider string, rec Recorder) Provider {
	if rec.Logger == nil {
		rec.Logger = slog.Default()
	}
	return &LoggingProvider{inner: p, provider: provider, rec: rec}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}

	log := l.rec.Logger.With("provider", l.provider, "model", data.Model, "purpose", purpose)
	if err != nil {
		data.ErrorMessage = err.Error()
		log.Warn("llm request failed", "latency_ms", data.LatencyMs, "err", err)
	} else {
		log.Debug("llm request", "latency_ms", data.LatencyMs,
			"input_tokens", data.InputTokens, "output_tokens", data.OutputTokens)
	}

	if l.rec.Observer != nil {
		l.rec.Observer.ObserveLLM(l.provider, purpose, latency, err)
	}

	// A failed audit write never fails the request.
	if l.rec.Events != nil {
		if logErr := l.rec.Events.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			log.Warn("failed to record llm request event", "err", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest renders the request the way `learnquest llm view` shows it.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
