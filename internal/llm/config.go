package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend. Default: "gemini".
	Provider string

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single content request including retries.
	Timeout time.Duration
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-2.5-flash"
	BaseURL string // Optional. Empty means the public Gemini API.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional, for OpenAI-compatible gateways.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-haiku"
	BaseURL string // Optional, for proxies.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts 1 means fire once.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the Gemini configuration without a key and
// without retries.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Gemini:     GeminiConfig{Model: "gemini-2.5-flash"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ApplyEnv overlays LEARNQUEST_* variables on cfg, then fills a missing
// key for the selected provider from the vendor's standard variable
// (GEMINI_API_KEY, OPENAI_API_KEY, ...).
func ApplyEnv(cfg Config) Config {
	set := func(dst *string, name string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	set(&cfg.Provider, "LEARNQUEST_LLM_PROVIDER")

	set(&cfg.Gemini.APIKey, "LEARNQUEST_GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "LEARNQUEST_GEMINI_MODEL")

	set(&cfg.OpenAI.APIKey, "LEARNQUEST_OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "LEARNQUEST_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "LEARNQUEST_OPENAI_BASE_URL")

	set(&cfg.Anthropic.APIKey, "LEARNQUEST_ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "LEARNQUEST_ANTHROPIC_MODEL")

	set(&cfg.OpenRouter.APIKey, "LEARNQUEST_OPENROUTER_API_KEY")
	set(&cfg.OpenRouter.Model, "LEARNQUEST_OPENROUTER_MODEL")

	if cfg.Gemini.APIKey == "" {
		set(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	}
	if cfg.OpenAI.APIKey == "" {
		set(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	}
	if cfg.Anthropic.APIKey == "" {
		set(&cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	}
	if cfg.OpenRouter.APIKey == "" {
		set(&cfg.OpenRouter.APIKey, "OPENROUTER_API_KEY")
	}
	return cfg
}

// ConfigFromEnv is DefaultConfig with the environment applied.
func ConfigFromEnv() Config {
	return ApplyEnv(DefaultConfig())
}

// Validate checks that the selected provider has its API key. A missing
// key yields an error wrapping ErrMissingCredential.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "GEMINI_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "OPENAI_API_KEY"
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "ANTHROPIC_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%w: set %s or LEARNQUEST_%s for the %s provider",
			ErrMissingCredential, env, env, c.Provider)
	}
	return nil
}
