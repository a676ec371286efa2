package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.5-flash"}); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("missing key: got %v", err)
	}

	for _, model := range []string{"google/gemini-2.5-flash", "anthropic/claude-haiku-4.5", "gpt-4o"} {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-learnquest", Model: model})
		if err != nil {
			t.Fatalf("%s: %v", model, err)
		}
		if p.ModelID() != model {
			t.Errorf("ModelID = %q, want %q unchanged", p.ModelID(), model)
		}
	}
}

func TestOpenRouterProvider_Attribution(t *testing.T) {
	var header http.Header
	reply := completion(`{"advice":"Révise le présent perfect.","suggestedNodeId":"an_gram_1"}`, "stop", 30, 12)
	base := chatURL(t, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		reply(w, r)
	})

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-learnquest",
		Model:   "google/gemini-2.5-flash",
		BaseURL: base,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "Conseil ?"}}}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if header.Get("X-Title") != "LearnQuest" || header.Get("HTTP-Referer") == "" {
		t.Errorf("attribution headers missing: %v", header)
	}
	if header.Get("Authorization") != "Bearer sk-or-learnquest" {
		t.Errorf("Authorization = %q", header.Get("Authorization"))
	}
}
