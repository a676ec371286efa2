// Package config loads learnquest settings: built-in defaults, then the
// TOML file, then .env files, then LEARNQUEST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/learnquest/learnquest/internal/content"
	"github.com/learnquest/learnquest/internal/llm"
)

// ErrMissingCredential means the selected provider has no API key. AI
// features are disabled; manual tracking keeps working.
var ErrMissingCredential = llm.ErrMissingCredential

// Storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendJSONFile = "jsonfile"
	BackendRedis    = "redis"
)

// Config holds all learnquest configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	LLM     LLMConfig     `toml:"llm"`
	Content ContentConfig `toml:"content"`
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
}

// StorageConfig selects where the learner documents live. The SQLite
// database also holds the event log for every backend.
type StorageConfig struct {
	Backend string      `toml:"backend"`
	Path    string      `toml:"path"` // sqlite file; empty means the default location
	Dir     string      `toml:"dir"`  // jsonfile directory
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig addresses the redis document backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LLMConfig selects and tunes the content provider. Model, APIKey and
// BaseURL apply to the selected provider only.
type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	MaxAttempts    int    `toml:"max_attempts"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ContentConfig tunes content generation requests.
type ContentConfig struct {
	MaxTokens       int     `toml:"max_tokens"`
	Temperature     float64 `toml:"temperature"`
	AdviceCacheSize int     `toml:"advice_cache_size"`
}

// ServerConfig controls the local HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
}

// Default returns the built-in configuration.
func Default() Config {
	lc := llm.DefaultConfig()
	cc := content.DefaultConfig()
	return Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		LLM: LLMConfig{
			Provider:       lc.Provider,
			MaxAttempts:    lc.Retry.MaxAttempts,
			TimeoutSeconds: int(lc.Timeout / time.Second),
		},
		Content: ContentConfig{
			MaxTokens:       cc.MaxTokens,
			Temperature:     cc.Temperature,
			AdviceCacheSize: cc.AdviceCacheSize,
		},
		Server:  ServerConfig{Addr: "127.0.0.1:8765"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// DefaultPath returns the config file location: LEARNQUEST_CONFIG, else
// $XDG_CONFIG_HOME/learnquest/config.toml, else ~/.config/learnquest/config.toml.
func DefaultPath() string {
	if p := os.Getenv("LEARNQUEST_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "learnquest", "config.toml")
}

// Load builds the configuration. An empty path means DefaultPath, which
// may be absent; an explicit path must exist. envFiles default to ".env"
// in the working directory; missing ones are skipped and variables already
// set in the environment win.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || explicit {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", f, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	set := func(dst *string, name string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	set(&c.Storage.Backend, "LEARNQUEST_STORAGE")
	set(&c.Storage.Path, "LEARNQUEST_DB")
	set(&c.Storage.Dir, "LEARNQUEST_DATA_DIR")
	set(&c.Storage.Redis.Addr, "LEARNQUEST_REDIS_ADDR")
	set(&c.Storage.Redis.Password, "LEARNQUEST_REDIS_PASSWORD")
	set(&c.Server.Addr, "LEARNQUEST_ADDR")
	set(&c.Logging.Level, "LEARNQUEST_LOG_LEVEL")
	set(&c.Logging.Format, "LEARNQUEST_LOG_FORMAT")
	set(&c.LLM.Provider, "LEARNQUEST_LLM_PROVIDER")

	if v := os.Getenv("LEARNQUEST_LLM_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LEARNQUEST_LLM_MAX_ATTEMPTS: %w", err)
		}
		c.LLM.MaxAttempts = n
	}
	return nil
}

// Validate rejects settings no component can work with. A missing API
// key is not an error here; see LLMSettings.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendRedis:
	case BackendJSONFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage backend %q needs storage.dir", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// LLMSettings converts the file settings into the llm layer's config,
// with provider keys discovered from the environment.
func (c Config) LLMSettings() llm.Config {
	lc := llm.DefaultConfig()
	if c.LLM.Provider != "" {
		lc.Provider = c.LLM.Provider
	}
	if c.LLM.MaxAttempts > 0 {
		lc.Retry.MaxAttempts = c.LLM.MaxAttempts
	}
	if c.LLM.TimeoutSeconds > 0 {
		lc.Timeout = time.Duration(c.LLM.TimeoutSeconds) * time.Second
	}

	override := func(key, model, baseURL *string) {
		if c.LLM.APIKey != "" {
			*key = c.LLM.APIKey
		}
		if c.LLM.Model != "" {
			*model = c.LLM.Model
		}
		if c.LLM.BaseURL != "" {
			*baseURL = c.LLM.BaseURL
		}
	}
	switch lc.Provider {
	case llm.ProviderGemini:
		override(&lc.Gemini.APIKey, &lc.Gemini.Model, &lc.Gemini.BaseURL)
	case llm.ProviderOpenAI:
		override(&lc.OpenAI.APIKey, &lc.OpenAI.Model, &lc.OpenAI.BaseURL)
	case llm.ProviderAnthropic:
		override(&lc.Anthropic.APIKey, &lc.Anthropic.Model, &lc.Anthropic.BaseURL)
	case llm.ProviderOpenRouter:
		override(&lc.OpenRouter.APIKey, &lc.OpenRouter.Model, &lc.OpenRouter.BaseURL)
	}
	return llm.ApplyEnv(lc)
}

// ContentSettings returns the content service configuration.
func (c Config) ContentSettings() content.Config {
	return content.Config{
		MaxTokens:       c.Content.MaxTokens,
		Temperature:     c.Content.Temperature,
		AdviceCacheSize: c.Content.AdviceCacheSize,
	}
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("logging.level: %w", err)
	}
	return l, nil
}

// Logger builds the process logger writing to w.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Logging.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Logging.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
