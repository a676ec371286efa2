package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func messagesServer(t *testing.T, h http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "sk-ant-learnquest", Model: "claude-haiku", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}
	return p
}

func messageReply(text, stop string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_lq",
			"type":        "message",
			"role":        "assistant",
			"model":       "claude-haiku-4-5",
			"content":     []map[string]any{{"type": "text", "text": text}},
			"stop_reason": stop,
			"usage":       map[string]any{"input_tokens": 90, "output_tokens": 35},
		})
	}
}

func TestAnthropicProvider_Advice(t *testing.T) {
	var sent struct {
		Model    string                  `json:"model"`
		System   []struct{ Text string } `json:"system"`
		Messages []struct{ Role string } `json:"messages"`
	}
	advice := `{"advice":"Consolide les bases du vocabulaire.","suggestedNodeId":"an_voc_2"}`
	p := messagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &sent)
		messageReply(advice, "end_turn")(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System: "Tu es un mentor bienveillant.",
		Messages: []Message{
			{Role: RoleUser, Content: "Quel nœud débloquer ?"},
			{Role: RoleAssistant, Content: "Dans quel domaine ?"},
			{Role: RoleUser, Content: "Anglais."},
		},
		MaxTokens: 300,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != advice {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 125 || resp.StopReason != "end" {
		t.Errorf("usage = %+v, stop = %q", resp.Usage, resp.StopReason)
	}

	if sent.Model != "claude-haiku-4-5" {
		t.Errorf("alias not resolved: %q", sent.Model)
	}
	if len(sent.System) != 1 || sent.System[0].Text != "Tu es un mentor bienveillant." {
		t.Errorf("system = %+v", sent.System)
	}
	roles := []string{}
	for _, m := range sent.Messages {
		roles = append(roles, m.Role)
	}
	if len(roles) != 3 || roles[1] != "assistant" {
		t.Errorf("roles = %v", roles)
	}
}

func TestAnthropicProvider_TruncatedSchemaReply(t *testing.T) {
	p := messagesServer(t, messageReply(`{"advice":"Consol`, "max_tokens"))
	_, err := p.Generate(context.Background(), Request{Schema: evaluationSchema(), MaxTokens: 16})
	var cut *ErrMaxTokensExceeded
	if !errors.As(err, &cut) {
		t.Fatalf("got %T (%v)", err, err)
	}
	if string(cut.Content) != `{"advice":"Consol` {
		t.Errorf("partial content = %s", cut.Content)
	}
}

func TestAnthropicProvider_StatusMapping(t *testing.T) {
	fail := func(status int, kind string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "3")
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]any{
				"type":  "error",
				"error": map[string]any{"type": kind, "message": http.StatusText(status)},
			})
		}
	}
	req := Request{Messages: []Message{{Role: RoleUser, Content: "Évalue mon prompt."}}, MaxTokens: 64}

	_, err := messagesServer(t, fail(http.StatusTooManyRequests, "rate_limit_error")).Generate(context.Background(), req)
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Errorf("429: got %T (%v)", err, err)
	} else if rl.RetryAfter != 3*time.Second {
		t.Errorf("RetryAfter = %s, want 3s", rl.RetryAfter)
	}

	_, err = messagesServer(t, fail(http.StatusUnauthorized, "authentication_error")).Generate(context.Background(), req)
	var unauth *ErrUnauthorized
	if !errors.As(err, &unauth) {
		t.Errorf("401: got %T (%v)", err, err)
	}

	_, err = messagesServer(t, fail(529, "overloaded_error")).Generate(context.Background(), req)
	var down *ErrProviderUnavailable
	if !errors.As(err, &down) {
		t.Errorf("529: got %T (%v)", err, err)
	}
}

func TestResolveModel(t *testing.T) {
	for in, want := range map[string]string{
		"claude-sonnet":   "claude-sonnet-4-5",
		"claude-haiku":    "claude-haiku-4-5",
		"claude-opus-4-1": "claude-opus-4-1",
		"gpt-4o-mini":     "gpt-4o-mini",
	} {
		if got := resolveModel(in, anthropicModels); got != want {
			t.Errorf("resolveModel(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := NewAnthropicProvider(AnthropicConfig{}); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("missing key: %v", err)
	}
}
