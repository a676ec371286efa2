package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/learnquest/learnquest/internal/content"
	"github.com/learnquest/learnquest/internal/progress"
	"github.com/learnquest/learnquest/internal/realtime"
	"github.com/learnquest/learnquest/internal/store"
)

type fakeContent struct {
	quests    func(ctx context.Context) ([]progress.QuestDraft, error)
	quiz      content.Quiz
	scenario  content.Scenario
	eval      content.Evaluation
	evalErr   error
	evalCalls atomic.Int32
	advice    content.Advice
}

func (f *fakeContent) GenerateDailyQuests(ctx context.Context, _ map[progress.SkillKey]float64, _ int) ([]progress.QuestDraft, error) {
	return f.quests(ctx)
}

func (f *fakeContent) GenerateQuiz(context.Context, float64) (content.Quiz, error) {
	return f.quiz, nil
}

func (f *fakeContent) GenerateChallenge(context.Context, float64) (content.Scenario, error) {
	return f.scenario, nil
}

func (f *fakeContent) EvaluatePrompt(context.Context, content.Scenario, string) (content.Evaluation, error) {
	f.evalCalls.Add(1)
	return f.eval, f.evalErr
}

func (f *fakeContent) SkillTreeAdvice(context.Context, progress.State) (content.Advice, error) {
	return f.advice, nil
}

func drafts(prefix string) []progress.QuestDraft {
	return []progress.QuestDraft{
		{Titre: prefix + " web", Domaine: progress.DomainWebDev, Difficulte: progress.DifficultyEasy, XPAttribuee: 100},
		{Titre: prefix + " anglais", Domaine: progress.DomainAnglais, Difficulte: progress.DifficultyEasy, XPAttribuee: 50},
		{Titre: prefix + " ia", Domaine: progress.DomainAI, Difficulte: progress.DifficultyHard, XPAttribuee: 200},
	}
}

func staticQuests(prefix string) func(context.Context) ([]progress.QuestDraft, error) {
	return func(context.Context) ([]progress.QuestDraft, error) { return drafts(prefix), nil }
}

func testEnv() progress.Env {
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.Local)
	return progress.Env{
		Now:  func() time.Time { return now },
		Rand: func() float64 { return 0.1 },
	}
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:tracker_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTracker(t *testing.T, st *store.Store, c Content) *Tracker {
	t.Helper()
	opts := Options{
		Documents: st.Documents(),
		Events:    st.EventRepo(),
		Hub:       realtime.NewHub(),
		Env:       testEnv(),
	}
	if c != nil {
		opts.Content = c
	}
	tr, err := New(t.Context(), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(tr.Close)
	return tr
}

func TestTracker_QuestScenarioPersists(t *testing.T) {
	st := openStore(t)
	tr := newTracker(t, st, &fakeContent{quests: staticQuests("a")})
	ctx := t.Context()

	qr, err := tr.RegenerateQuests(ctx)
	if err != nil {
		t.Fatalf("RegenerateQuests: %v", err)
	}
	if !qr.Applied || len(qr.Quests) != 3 {
		t.Fatalf("regenerate = %+v", qr)
	}
	id := qr.Quests[0].ID
	if !strings.HasPrefix(id, "q-") || !strings.HasSuffix(id, "-0") {
		t.Errorf("quest id = %q", id)
	}

	res, err := tr.CompleteQuest(ctx, id)
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	s := res.State
	if !res.Applied || s.XP != 100 || s.GemCoins != 20 || s.Level != 1 || s.Stats.CodeQuestsCompleted != 1 {
		t.Fatalf("state after quest = %+v", s)
	}
	if len(s.History) != 1 || s.History[0].XP != 100 || s.History[0].QuestsCompleted != 1 {
		t.Fatalf("history = %+v", s.History)
	}

	again, err := tr.CompleteQuest(ctx, id)
	if err != nil {
		t.Fatalf("CompleteQuest again: %v", err)
	}
	if again.Applied || again.State.XP != 100 {
		t.Fatalf("second completion should be a no-op, got %+v", again)
	}

	// A fresh tracker on the same store sees the persisted documents.
	tr.Close()
	reopened := newTracker(t, st, nil)
	got, err := reopened.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got.XP != 100 || got.GemCoins != 20 {
		t.Fatalf("reloaded state = %+v", got)
	}
	board, err := reopened.Board(ctx)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if q, ok := board.Find(id); !ok || !q.IsCompleted {
		t.Fatalf("reloaded board = %+v", board)
	}

	events, err := st.EventRepo().QueryProgressEvents(ctx, store.QueryOpts{})
	if err != nil {
		t.Fatalf("QueryProgressEvents: %v", err)
	}
	if len(events) != 2 || events[0].Kind != KindQuest || events[0].XPDelta != 100 || events[1].Kind != KindQuests {
		t.Fatalf("events = %+v", events)
	}
}

func TestTracker_IncrementStepAndUnlock(t *testing.T) {
	tr := newTracker(t, openStore(t), nil)
	ctx := t.Context()

	res, err := tr.IncrementStep(ctx)
	if err != nil || !res.Applied || res.State.StepsCompleted != 1 || res.State.XP != 10 {
		t.Fatalf("IncrementStep = %+v, %v", res, err)
	}

	// co_fun_3 needs its parent: rejected without cost.
	res, err = tr.Unlock(ctx, "co_fun_3")
	if err != nil || res.Applied || res.State.BuildPoints != 1 {
		t.Fatalf("Unlock gated = %+v, %v", res, err)
	}
	res, err = tr.Unlock(ctx, "does-not-exist")
	if err != nil || res.Applied {
		t.Fatalf("Unlock unknown = %+v, %v", res, err)
	}
}

func TestTracker_AIWithoutProviderIsConfigError(t *testing.T) {
	tr := newTracker(t, openStore(t), nil)
	ctx := t.Context()

	checks := map[string]error{}
	_, checks["quests"] = tr.RegenerateQuests(ctx)
	_, checks["quiz"] = tr.StartQuiz(ctx)
	_, checks["challenge"] = tr.StartChallenge(ctx)
	_, checks["submit"] = tr.SubmitChallenge(ctx, "x", "prompt")
	_, checks["advice"] = tr.Advice(ctx)
	for name, err := range checks {
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Errorf("%s: err = %v, want *ConfigError", name, err)
		}
	}

	// Manual tracking still works.
	if res, err := tr.IncrementStep(ctx); err != nil || !res.Applied {
		t.Fatalf("IncrementStep = %+v, %v", res, err)
	}
	if tr.AIEnabled() {
		t.Error("AIEnabled should be false")
	}
}

func TestTracker_StaleRegenerationDiscarded(t *testing.T) {
	first := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	fc := &fakeContent{quests: func(context.Context) ([]progress.QuestDraft, error) {
		if calls.Add(1) == 1 {
			close(first)
			<-release
			return drafts("old"), nil
		}
		return drafts("new"), nil
	}}
	tr := newTracker(t, openStore(t), fc)
	ctx := t.Context()

	type outcome struct {
		res QuestsResult
		err error
	}
	slow := make(chan outcome, 1)
	go func() {
		res, err := tr.RegenerateQuests(ctx)
		slow <- outcome{res, err}
	}()
	<-first

	latest, err := tr.RegenerateQuests(ctx)
	if err != nil || !latest.Applied {
		t.Fatalf("latest regeneration = %+v, %v", latest, err)
	}
	close(release)

	old := <-slow
	if old.err != nil {
		t.Fatalf("stale regeneration err = %v", old.err)
	}
	if old.res.Applied {
		t.Fatal("stale regeneration should not apply")
	}
	board, _ := tr.Board(ctx)
	if board[0].Titre != "new web" {
		t.Fatalf("board = %+v, want the latest batch", board)
	}
}

func TestTracker_QuizFlow(t *testing.T) {
	q := content.Question{Question: "q", Options: []string{"a", "b", "c"}, CorrectAnswer: "a"}
	fc := &fakeContent{quiz: content.Quiz{Questions: []content.Question{q, q, q}}}
	tr := newTracker(t, openStore(t), fc)
	ctx := t.Context()

	sess, err := tr.StartQuiz(ctx)
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	res, err := tr.SubmitQuiz(ctx, "other", []string{"a", "a", "a"})
	if err != nil || res.Applied {
		t.Fatalf("mismatched submission = %+v, %v", res, err)
	}

	res, err = tr.SubmitQuiz(ctx, sess.ID, []string{"a", "b", "a"})
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if !res.Applied || res.Correct != 2 || res.Total != 3 {
		t.Fatalf("result = %+v", res)
	}
	if res.State.XP != 60 || res.State.GemCoins != 10 || res.State.Stats.WordsMastered != 2 {
		t.Fatalf("state = %+v", res.State)
	}

	// The quiz is closed after one submission.
	res, err = tr.SubmitQuiz(ctx, sess.ID, []string{"a", "a", "a"})
	if err != nil || res.Applied || res.State.XP != 60 {
		t.Fatalf("resubmission = %+v, %v", res, err)
	}
}

func TestTracker_ChallengeFlow(t *testing.T) {
	fc := &fakeContent{
		scenario: content.Scenario{Title: "t", Goal: "g"},
		eval:     content.Evaluation{Score: 75, Feedback: "ok"},
	}
	tr := newTracker(t, openStore(t), fc)
	ctx := t.Context()

	sess, err := tr.StartChallenge(ctx)
	if err != nil {
		t.Fatalf("StartChallenge: %v", err)
	}

	if _, err := tr.SubmitChallenge(ctx, sess.ID, "   "); !errors.Is(err, content.ErrEmptyPrompt) {
		t.Fatalf("empty prompt err = %v", err)
	}
	if fc.evalCalls.Load() != 0 {
		t.Fatal("empty prompt must not be evaluated")
	}

	res, err := tr.SubmitChallenge(ctx, sess.ID, "Écris une fonction Go.")
	if err != nil {
		t.Fatalf("SubmitChallenge: %v", err)
	}
	if !res.Applied || res.Evaluation.Score != 75 || res.State.XP != 150 || res.State.GemCoins != 37 {
		t.Fatalf("result = %+v", res)
	}

	res, err = tr.SubmitChallenge(ctx, sess.ID, "again")
	if err != nil || res.Applied {
		t.Fatalf("closed challenge = %+v, %v", res, err)
	}
	if fc.evalCalls.Load() != 1 {
		t.Fatalf("eval calls = %d, want 1", fc.evalCalls.Load())
	}
}

func TestTracker_CollaboratorFailureLeavesStateUntouched(t *testing.T) {
	fail := &content.CollaboratorError{Op: content.PurposeEvaluation, Err: errors.New("boom")}
	fc := &fakeContent{scenario: content.Scenario{Goal: "g"}, evalErr: fail}
	tr := newTracker(t, openStore(t), fc)
	ctx := t.Context()

	sess, err := tr.StartChallenge(ctx)
	if err != nil {
		t.Fatalf("StartChallenge: %v", err)
	}
	if _, err := tr.SubmitChallenge(ctx, sess.ID, "prompt"); !errors.As(err, new(*content.CollaboratorError)) {
		t.Fatalf("err = %v, want *content.CollaboratorError", err)
	}
	s, _ := tr.Snapshot(ctx)
	if s.XP != 0 || s.Stats.PromptsTested != 0 || len(s.History) != 0 {
		t.Fatalf("state changed on failure: %+v", s)
	}
}

func TestTracker_ResetDiscardsOpenSessions(t *testing.T) {
	q := content.Question{Question: "q", Options: []string{"a", "b", "c"}, CorrectAnswer: "a"}
	fc := &fakeContent{quests: staticQuests("a"), quiz: content.Quiz{Questions: []content.Question{q}}}
	tr := newTracker(t, openStore(t), fc)
	ctx := t.Context()

	if _, err := tr.RegenerateQuests(ctx); err != nil {
		t.Fatalf("RegenerateQuests: %v", err)
	}
	sess, err := tr.StartQuiz(ctx)
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	if _, err := tr.IncrementStep(ctx); err != nil {
		t.Fatalf("IncrementStep: %v", err)
	}

	res, err := tr.Reset(ctx)
	if err != nil || res.State.XP != 0 || res.State.StepsCompleted != 0 {
		t.Fatalf("Reset = %+v, %v", res, err)
	}
	board, _ := tr.Board(ctx)
	if len(board) != 0 {
		t.Fatalf("board after reset = %+v", board)
	}
	if sub, _ := tr.SubmitQuiz(ctx, sess.ID, []string{"a"}); sub.Applied {
		t.Fatal("quiz opened before reset should be closed")
	}
}

func TestTracker_PublishesEvents(t *testing.T) {
	st := openStore(t)
	hub := realtime.NewHub()
	tr, err := New(t.Context(), Options{Documents: st.Documents(), Hub: hub, Env: testEnv()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tr.Close()

	_, ch := hub.Subscribe(4)
	if _, err := tr.IncrementStep(t.Context()); err != nil {
		t.Fatalf("IncrementStep: %v", err)
	}
	select {
	case ev := <-ch:
		if ev.Type != realtime.EventStep || ev.XPDelta != 10 || ev.SessionID != tr.SessionID() {
			t.Fatalf("event = %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event published")
	}
}

type failingDocs struct{ store.Documents }

func (failingDocs) Load(context.Context, string) ([]byte, error) { return nil, nil }
func (failingDocs) Save(context.Context, string, []byte) error  { return errors.New("disk full") }

func TestTracker_PersistFailureKeepsPreviousState(t *testing.T) {
	tr, err := New(t.Context(), Options{Documents: failingDocs{}, Env: testEnv()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tr.Close()

	if _, err := tr.IncrementStep(t.Context()); err == nil {
		t.Fatal("expected persistence error")
	}
	s, _ := tr.Snapshot(t.Context())
	if s.StepsCompleted != 0 {
		t.Fatalf("state advanced despite failed save: %+v", s)
	}
}

func TestTracker_Closed(t *testing.T) {
	tr, err := New(t.Context(), Options{Documents: failingDocs{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr.Close()
	tr.Close()
	if _, err := tr.Snapshot(t.Context()); !errors.Is(err, ErrClosed) {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
}
