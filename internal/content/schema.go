package content

import (
	"github.com/learnquest/learnquest/internal/llm"
	"github.com/learnquest/learnquest/internal/progress"
)

func activeDomainEnum() []any {
	var out []any
	for _, d := range progress.ActiveDomains() {
		out = append(out, string(d))
	}
	return out
}

// QuestsSchema is the daily quest batch: exactly three drafts.
var QuestsSchema = &llm.Schema{
	Name:        "daily-quests",
	Description: "Three quests for today, one per active domain",
	Definition: map[string]any{
		"type":     "array",
		"minItems": DailyQuestCount,
		"maxItems": DailyQuestCount,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"titre": map[string]any{"type": "string"},
				"domaine": map[string]any{
					"type": "string",
					"enum": activeDomainEnum(),
				},
				"difficulte": map[string]any{
					"type": "string",
					"enum": []any{
						string(progress.DifficultyEasy), string(progress.DifficultyMedium),
						string(progress.DifficultyHard), string(progress.DifficultyExpert),
					},
				},
				"xp_attribuee": map[string]any{
					"type":        "integer",
					"minimum":     1,
					"description": "XP reward, typically 50 to 300",
				},
				"description":              map[string]any{"type": "string"},
				"conditions_de_validation": map[string]any{"type": "string"},
			},
			"required": []any{
				"titre", "domaine", "difficulte", "xp_attribuee",
				"description", "conditions_de_validation",
			},
			"additionalProperties": false,
		},
	},
}

// QuizSchema is the English quiz: three questions of three options.
var QuizSchema = &llm.Schema{
	Name:        "english-quiz",
	Description: "Technical English multiple-choice quiz",
	Definition: map[string]any{
		"type":     "array",
		"minItems": QuizLength,
		"maxItems": QuizLength,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": QuestionOptions,
					"maxItems": QuestionOptions,
				},
				"correctAnswer": map[string]any{
					"type":        "string",
					"description": "The exact text of the correct option",
				},
				"explanation": map[string]any{
					"type":        "string",
					"description": "Short explanation in French",
				},
			},
			"required":             []any{"question", "options", "correctAnswer", "explanation"},
			"additionalProperties": false,
		},
	},
}

// ChallengeSchema is one prompt-engineering scenario.
var ChallengeSchema = &llm.Schema{
	Name:        "ai-challenge",
	Description: "Prompt engineering challenge scenario",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":   map[string]any{"type": "string", "description": "Short challenge title"},
			"context": map[string]any{"type": "string", "description": "The situation the learner is in"},
			"goal":    map[string]any{"type": "string", "description": "The precise code the AI must be made to produce"},
		},
		"required":             []any{"title", "context", "goal"},
		"additionalProperties": false,
	},
}

// EvaluationSchema is the verdict on a learner's prompt.
var EvaluationSchema = &llm.Schema{
	Name:        "prompt-evaluation",
	Description: "Score and critique of a prompt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score":          map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"feedback":       map[string]any{"type": "string", "description": "Critique in French"},
			"strengths":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"weaknesses":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"improvedPrompt": map[string]any{"type": "string", "description": "The optimized prompt"},
		},
		"required":             []any{"score", "feedback", "improvedPrompt"},
		"additionalProperties": false,
	},
}

// AdviceSchema is the skill-tree recommendation.
var AdviceSchema = &llm.Schema{
	Name:        "skill-advice",
	Description: "Short strategic advice and the next node to unlock",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"advice":          map[string]any{"type": "string", "description": "At most two sentences"},
			"suggestedNodeId": map[string]any{"type": "string", "description": "Id of the suggested node, or empty"},
		},
		"additionalProperties": false,
	},
}
