package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider is the OpenAI provider pointed at OpenRouter. Model
// ids are vendor-qualified ("google/gemini-2.5-flash") and never aliased.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter: %w", ErrMissingCredential)
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Transport: appAttribution{next: http.DefaultTransport}}
	return &OpenRouterProvider{&OpenAIProvider{client: openai.NewClientWithConfig(oc), model: cfg.Model}}, nil
}

// appAttribution adds the headers OpenRouter uses to credit calls to an
// application.
type appAttribution struct {
	next http.RoundTripper
}

func (a appAttribution) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-Title", "LearnQuest")
	r.Header.Set("HTTP-Referer", "https://github.com/learnquest/learnquest")
	return a.next.RoundTrip(r)
}
