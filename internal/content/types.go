// Package content asks the generative-AI collaborator for daily quests,
// English quizzes, prompt-engineering challenges, prompt evaluations and
// skill-tree advice, and checks that what comes back is usable.
package content

import (
	"errors"
	"fmt"
)

// Purpose labels attached to every request for the LLM event log.
const (
	PurposeQuests     = "daily-quests"
	PurposeQuiz       = "english-quiz"
	PurposeChallenge  = "ai-challenge"
	PurposeEvaluation = "prompt-evaluation"
	PurposeAdvice     = "skill-advice"
)

// QuestionOptions is the number of choices per quiz question.
const QuestionOptions = 3

// Question is one multiple-choice question of the English quiz.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Quiz is a generated English quiz.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Score counts the answers that match the correct option. answers[i]
// answers Questions[i]; missing or extra answers are ignored.
func (q Quiz) Score(answers []string) int {
	n := 0
	for i, qu := range q.Questions {
		if i < len(answers) && answers[i] == qu.CorrectAnswer {
			n++
		}
	}
	return n
}

// Scenario is a prompt-engineering challenge.
type Scenario struct {
	Title   string `json:"title"`
	Context string `json:"context"`
	Goal    string `json:"goal"`
}

// Evaluation is the collaborator's verdict on a submitted prompt.
type Evaluation struct {
	Score          int      `json:"score"` // 0..100
	Feedback       string   `json:"feedback"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	ImprovedPrompt string   `json:"improvedPrompt"`
}

// Advice is a short build recommendation for the skill trees.
type Advice struct {
	Advice          string `json:"advice"`
	SuggestedNodeID string `json:"suggestedNodeId"` // empty when none or unknown
}

// ErrEmptyPrompt rejects a challenge submission before any request is made.
var ErrEmptyPrompt = errors.New("prompt is empty")

// CollaboratorError reports a failed content request: transport failure,
// provider error or a response that does not meet the contract. The
// learner state is never touched when one is returned.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("content %s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }
