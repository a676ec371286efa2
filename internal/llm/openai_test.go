package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// chatURL starts a server answering every request with h and returns its
// OpenAI-style base URL.
func chatURL(t *testing.T, h http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL + "/v1"
}

func chatServer(t *testing.T, h http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	cfg := openai.DefaultConfig("sk-learnquest")
	cfg.BaseURL = chatURL(t, h)
	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg), model: "gpt-4o-mini"}
}

// completion answers with a single assistant choice.
func completion(content, finish string, in, out int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-lq",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{
				"prompt_tokens":     in,
				"completion_tokens": out,
				"total_tokens":      in + out,
			},
		})
	}
}

func apiFailure(status int, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": kind, "message": http.StatusText(status)},
		})
	}
}

func evaluationSchema() *Schema {
	return &Schema{
		Name: "test-evaluation",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"score":    map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				"feedback": map[string]any{"type": "string"},
			},
			"required": []any{"score", "feedback"},
		},
	}
}

func TestOpenAIProvider_QuestBatch(t *testing.T) {
	var body map[string]any
	quests := `[{"titre":"Lire un chapitre","domaine":"Bibliothèque","difficulte":"Facile","xp_attribuee":40}]`
	p := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		completion(quests, "stop", 120, 48)(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "Tu es le maître du jeu de LearnQuest.",
		Messages:  []Message{{Role: RoleUser, Content: "Génère trois quêtes du jour."}},
		MaxTokens: 512,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != quests {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage.InputTokens != 120 || resp.Usage.OutputTokens != 48 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q, want end", resp.StopReason)
	}

	msgs, _ := body["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("sent %d messages, want system + user", len(msgs))
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != "system" {
		t.Errorf("first message role = %v", first["role"])
	}
}

func TestOpenAIProvider_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"rate limited", http.StatusTooManyRequests, func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}},
		{"bad key", http.StatusUnauthorized, func(err error) bool {
			var e *ErrUnauthorized
			return errors.As(err, &e)
		}},
		{"forbidden", http.StatusForbidden, func(err error) bool {
			var e *ErrUnauthorized
			return errors.As(err, &e)
		}},
		{"outage", http.StatusInternalServerError, func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
		{"overloaded", http.StatusServiceUnavailable, func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := chatServer(t, apiFailure(tc.status, "api_error"))
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "Pose-moi une question de quiz."}},
			})
			if err == nil || !tc.check(err) {
				t.Fatalf("status %d mapped to %T (%v)", tc.status, err, err)
			}
		})
	}
}

func TestOpenAIProvider_SchemaReplies(t *testing.T) {
	p := chatServer(t, completion("```json\n{\"score\":64,\"feedback\":\"Objectif clair.\"}\n```", "stop", 10, 10))
	resp, err := p.Generate(context.Background(), Request{Schema: evaluationSchema()})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != `{"score":64,"feedback":"Objectif clair."}` {
		t.Errorf("fence not stripped: %s", resp.Content)
	}

	p = chatServer(t, completion(`{"score":64,"feed`, "length", 10, 512))
	_, err = p.Generate(context.Background(), Request{Schema: evaluationSchema()})
	var cut *ErrMaxTokensExceeded
	if !errors.As(err, &cut) {
		t.Fatalf("truncated reply gave %T (%v)", err, err)
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"}); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("missing key: got %v", err)
	}

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-learnquest", Model: "gpt-4o", BaseURL: "http://localhost:11434/v1"})
	if err != nil {
		t.Fatalf("custom base url: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}
