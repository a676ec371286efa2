package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func questSchema() *Schema {
	return &Schema{
		Name:        "test-quest",
		Description: "A quest draft",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"titre":        map[string]any{"type": "string"},
				"domaine":      map[string]any{"type": "string", "enum": []any{"Anglais", "Développement Web", "Ingénierie IA"}},
				"xp_attribuee": map[string]any{"type": "integer", "minimum": 1},
				"steps": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "object", "properties": map[string]any{"n": map[string]any{"type": "integer"}}, "required": []any{"n"}},
				},
			},
			"required": []any{"titre", "domaine", "xp_attribuee"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"titre":"Sprint","domaine":"Anglais","xp_attribuee":50}`, false},
		{"nested valid", `{"titre":"Sprint","domaine":"Anglais","xp_attribuee":50,"steps":[{"n":1}]}`, false},
		{"missing required", `{"titre":"Sprint","domaine":"Anglais"}`, true},
		{"wrong type", `{"titre":"Sprint","domaine":"Anglais","xp_attribuee":"cent"}`, true},
		{"outside enum", `{"titre":"Sprint","domaine":"Cuisine","xp_attribuee":50}`, true},
		{"below minimum", `{"titre":"Sprint","domaine":"Anglais","xp_attribuee":0}`, true},
		{"nested missing", `{"titre":"Sprint","domaine":"Anglais","xp_attribuee":50,"steps":[{}]}`, true},
		{"malformed", `{"titre":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(questSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invalid *ErrInvalidResponse
				if !errors.As(err, &invalid) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("nil schema should pass, got %v", err)
	}
}

func TestStructuredContent(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{"plain", `{"titre":"a","domaine":"Anglais","xp_attribuee":5}`, `{"titre":"a","domaine":"Anglais","xp_attribuee":5}`, false},
		{"json fence", "```json\n{\"titre\":\"a\",\"domaine\":\"Anglais\",\"xp_attribuee\":5}\n```", `{"titre":"a","domaine":"Anglais","xp_attribuee":5}`, false},
		{"bare fence", "  ```\n{\"titre\":\"a\",\"domaine\":\"Anglais\",\"xp_attribuee\":5}```  ", `{"titre":"a","domaine":"Anglais","xp_attribuee":5}`, false},
		{"empty", "   ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := structuredContent(questSchema(), tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Fatalf("content = %s, want %s", got, tt.want)
			}
		})
	}

	got, err := structuredContent(nil, "Bonjour")
	if err != nil || string(got) != "Bonjour" {
		t.Fatalf("schemaless content = %q, %v", got, err)
	}
}
