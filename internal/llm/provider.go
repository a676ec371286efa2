package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one reply per Request. When the request carries a
// Schema, Content holds JSON that validated against it.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single content generation call. Learnquest sends one user
// message per request; the slice exists for providers that need a turn
// history.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema // nil asks for free text
	MaxTokens   int
	Temperature float64 // 0 keeps the provider default
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Schema is a named JSON Schema. Name keys the compiled-schema cache and
// is kebab-case ("daily-quests").
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a generated reply. StopReason is "end" or "max_tokens".
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
