package tracker

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/learnquest/learnquest/internal/content"
	"github.com/learnquest/learnquest/internal/progress"
	"github.com/learnquest/learnquest/internal/quest"
)

// Result reports whether a request changed anything and the state after it.
type Result struct {
	Applied bool           `json:"applied"`
	State   progress.State `json:"state"`
}

// QuestsResult is the outcome of a quest regeneration.
type QuestsResult struct {
	Applied bool        `json:"applied"`
	Quests  quest.Board `json:"quests"`
}

// QuizSession is an open English quiz awaiting answers.
type QuizSession struct {
	ID string `json:"id"`
	content.Quiz
}

// QuizResult is the outcome of a quiz submission.
type QuizResult struct {
	Applied bool           `json:"applied"`
	Correct int            `json:"correct"`
	Total   int            `json:"total"`
	State   progress.State `json:"state"`
}

// ChallengeSession is an open prompt-engineering challenge.
type ChallengeSession struct {
	ID       string           `json:"id"`
	Scenario content.Scenario `json:"scenario"`
}

// ChallengeResult is the outcome of a challenge submission.
type ChallengeResult struct {
	Applied    bool               `json:"applied"`
	Evaluation content.Evaluation `json:"evaluation"`
	State      progress.State     `json:"state"`
}

// exec runs fn on the session goroutine and returns its error.
func (t *Tracker) exec(ctx context.Context, fn func() error) error {
	var err error
	if derr := t.do(ctx, func() { err = fn() }); derr != nil {
		return derr
	}
	return err
}

func (t *Tracker) noAI(feature string) error {
	return &ConfigError{Feature: feature, Err: t.contentErr}
}

// Snapshot returns a copy of the current learner state.
func (t *Tracker) Snapshot(ctx context.Context) (progress.State, error) {
	var s progress.State
	err := t.do(ctx, func() { s = t.state.Clone() })
	return s, err
}

// Board returns a copy of the active quest list.
func (t *Tracker) Board(ctx context.Context) (quest.Board, error) {
	var b quest.Board
	err := t.do(ctx, func() { b = slices.Clone(t.board) })
	return b, err
}

// IncrementStep records one validated curriculum step.
func (t *Tracker) IncrementStep(ctx context.Context) (Result, error) {
	var res Result
	err := t.exec(ctx, func() error {
		next := progress.ApplyManualStepIncrement(t.state, t.env)
		if err := t.commit(ctx, KindStep, "", next, t.board); err != nil {
			return err
		}
		res = Result{Applied: true, State: t.state.Clone()}
		return nil
	})
	return res, err
}

// CompleteQuest completes quest id. Unknown or already completed quests
// are a no-op.
func (t *Tracker) CompleteQuest(ctx context.Context, id string) (Result, error) {
	var res Result
	err := t.exec(ctx, func() error {
		next, board, ok := quest.Complete(t.state, t.board, id, t.env)
		if !ok {
			t.rejected(KindQuest, "unknown_or_completed")
			res = Result{State: t.state.Clone()}
			return nil
		}
		if err := t.commit(ctx, KindQuest, id, next, board); err != nil {
			return err
		}
		res = Result{Applied: true, State: t.state.Clone()}
		return nil
	})
	return res, err
}

// RegenerateQuests replaces the board with a fresh batch. When another
// regeneration or a reset started meanwhile, this batch is discarded.
func (t *Tracker) RegenerateQuests(ctx context.Context) (QuestsResult, error) {
	if t.content == nil {
		return QuestsResult{}, t.noAI("quest generation")
	}
	var (
		gen  uint64
		snap progress.State
	)
	if err := t.do(ctx, func() {
		t.questGen++
		gen = t.questGen
		snap = t.state.Clone()
	}); err != nil {
		return QuestsResult{}, err
	}

	drafts, err := t.content.GenerateDailyQuests(ctx, snap.SkillLevels, snap.StepsCompleted)
	if err != nil {
		t.collaboratorFailed(content.PurposeQuests, err)
		return QuestsResult{}, err
	}

	var res QuestsResult
	err = t.exec(ctx, func() error {
		if gen != t.questGen {
			t.rejected(KindQuests, "stale")
			res = QuestsResult{Quests: slices.Clone(t.board)}
			return nil
		}
		board := quest.FromDrafts(drafts, t.env.Time())
		if err := t.commit(ctx, KindQuests, "", t.state, board); err != nil {
			return err
		}
		res = QuestsResult{Applied: true, Quests: slices.Clone(t.board)}
		return nil
	})
	return res, err
}

// StartQuiz generates an English quiz and opens it. Opening a quiz
// replaces any quiz still open.
func (t *Tracker) StartQuiz(ctx context.Context) (QuizSession, error) {
	if t.content == nil {
		return QuizSession{}, t.noAI("english quiz")
	}
	var (
		gen   uint64
		level float64
	)
	if err := t.do(ctx, func() {
		t.quizGen++
		gen = t.quizGen
		level = t.state.Skill(progress.SkillAnglais)
	}); err != nil {
		return QuizSession{}, err
	}

	quiz, err := t.content.GenerateQuiz(ctx, level)
	if err != nil {
		t.collaboratorFailed(content.PurposeQuiz, err)
		return QuizSession{}, err
	}

	sess := QuizSession{ID: uuid.NewString(), Quiz: quiz}
	err = t.exec(ctx, func() error {
		if gen != t.quizGen {
			t.rejected(KindQuiz, "stale")
			return ErrSuperseded
		}
		t.quiz = &sess
		return nil
	})
	return sess, err
}

// SubmitQuiz scores answers against the open quiz id and closes it. A
// mismatched id is a no-op. Zero correct answers close the quiz without
// reward.
func (t *Tracker) SubmitQuiz(ctx context.Context, id string, answers []string) (QuizResult, error) {
	var res QuizResult
	err := t.exec(ctx, func() error {
		if t.quiz == nil || t.quiz.ID != id {
			t.rejected(KindQuiz, "not_open")
			res = QuizResult{State: t.state.Clone()}
			return nil
		}
		correct := t.quiz.Score(answers)
		total := len(t.quiz.Questions)
		next := progress.ApplyQuizResult(t.state, correct, t.env)
		if correct > 0 {
			if err := t.commit(ctx, KindQuiz, fmt.Sprintf("%d/%d", correct, total), next, t.board); err != nil {
				return err
			}
		}
		t.quiz = nil
		res = QuizResult{Applied: correct > 0, Correct: correct, Total: total, State: t.state.Clone()}
		return nil
	})
	return res, err
}

// StartChallenge generates a prompt-engineering scenario and opens it.
func (t *Tracker) StartChallenge(ctx context.Context) (ChallengeSession, error) {
	if t.content == nil {
		return ChallengeSession{}, t.noAI("ai challenge")
	}
	var (
		gen   uint64
		level float64
	)
	if err := t.do(ctx, func() {
		t.challengeGen++
		gen = t.challengeGen
		level = t.state.Skill(progress.SkillAIEngineering)
	}); err != nil {
		return ChallengeSession{}, err
	}

	sc, err := t.content.GenerateChallenge(ctx, level)
	if err != nil {
		t.collaboratorFailed(content.PurposeChallenge, err)
		return ChallengeSession{}, err
	}

	sess := ChallengeSession{ID: uuid.NewString(), Scenario: sc}
	err = t.exec(ctx, func() error {
		if gen != t.challengeGen {
			t.rejected(KindChallenge, "stale")
			return ErrSuperseded
		}
		t.challenge = &sess
		return nil
	})
	return sess, err
}

// SubmitChallenge has prompt evaluated against the open challenge id and
// rewards the score. An empty prompt is rejected before any request; a
// mismatched id is a no-op.
func (t *Tracker) SubmitChallenge(ctx context.Context, id, prompt string) (ChallengeResult, error) {
	if t.content == nil {
		return ChallengeResult{}, t.noAI("ai challenge")
	}
	if strings.TrimSpace(prompt) == "" {
		return ChallengeResult{}, content.ErrEmptyPrompt
	}

	var (
		res  ChallengeResult
		sc   content.Scenario
		open bool
	)
	if err := t.do(ctx, func() {
		if t.challenge == nil || t.challenge.ID != id {
			t.rejected(KindChallenge, "not_open")
			res = ChallengeResult{State: t.state.Clone()}
			return
		}
		sc, open = t.challenge.Scenario, true
	}); err != nil {
		return ChallengeResult{}, err
	}
	if !open {
		return res, nil
	}

	ev, err := t.content.EvaluatePrompt(ctx, sc, prompt)
	if err != nil {
		t.collaboratorFailed(content.PurposeEvaluation, err)
		return ChallengeResult{}, err
	}

	err = t.exec(ctx, func() error {
		if t.challenge == nil || t.challenge.ID != id {
			t.rejected(KindChallenge, "stale")
			res = ChallengeResult{Evaluation: ev, State: t.state.Clone()}
			return nil
		}
		next := progress.ApplyChallengeScore(t.state, ev.Score, t.env)
		if err := t.commit(ctx, KindChallenge, strconv.Itoa(ev.Score), next, t.board); err != nil {
			return err
		}
		t.challenge = nil
		res = ChallengeResult{Applied: true, Evaluation: ev, State: t.state.Clone()}
		return nil
	})
	return res, err
}

// Unlock buys skill node nodeID when the gate allows it.
func (t *Tracker) Unlock(ctx context.Context, nodeID string) (Result, error) {
	var res Result
	err := t.exec(ctx, func() error {
		next, ok := t.catalog.Unlock(t.state, nodeID)
		if !ok {
			t.rejected(KindUnlock, "gate")
			res = Result{State: t.state.Clone()}
			return nil
		}
		if err := t.commit(ctx, KindUnlock, nodeID, next, t.board); err != nil {
			return err
		}
		res = Result{Applied: true, State: t.state.Clone()}
		return nil
	})
	return res, err
}

// Advice asks the collaborator which node to unlock next.
func (t *Tracker) Advice(ctx context.Context) (content.Advice, error) {
	if t.content == nil {
		return content.Advice{}, t.noAI("skill advice")
	}
	s, err := t.Snapshot(ctx)
	if err != nil {
		return content.Advice{}, err
	}
	a, err := t.content.SkillTreeAdvice(ctx, s)
	if err != nil {
		t.collaboratorFailed(content.PurposeAdvice, err)
		return content.Advice{}, err
	}
	return a, nil
}

// Reset wipes progress and the quest board. AI results still in flight
// are discarded when they come back.
func (t *Tracker) Reset(ctx context.Context) (Result, error) {
	var res Result
	err := t.exec(ctx, func() error {
		if err := t.commit(ctx, KindReset, "", progress.Initial(), quest.Board{}); err != nil {
			return err
		}
		t.questGen++
		t.quizGen++
		t.challengeGen++
		t.quiz = nil
		t.challenge = nil
		res = Result{Applied: true, State: t.state.Clone()}
		return nil
	})
	return res, err
}
