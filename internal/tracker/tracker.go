// Package tracker runs the learner session: a single goroutine owns the
// progress document and the quest board, applies every transition in
// order, persists both documents and publishes what changed.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/learnquest/learnquest/internal/content"
	"github.com/learnquest/learnquest/internal/progress"
	"github.com/learnquest/learnquest/internal/quest"
	"github.com/learnquest/learnquest/internal/realtime"
	"github.com/learnquest/learnquest/internal/skilltree"
	"github.com/learnquest/learnquest/internal/store"
)

// Content is the generative collaborator the tracker calls outside its
// goroutine. *content.Service implements it.
type Content interface {
	GenerateDailyQuests(ctx context.Context, skills map[progress.SkillKey]float64, steps int) ([]progress.QuestDraft, error)
	GenerateQuiz(ctx context.Context, englishLevel float64) (content.Quiz, error)
	GenerateChallenge(ctx context.Context, aiLevel float64) (content.Scenario, error)
	EvaluatePrompt(ctx context.Context, sc content.Scenario, prompt string) (content.Evaluation, error)
	SkillTreeAdvice(ctx context.Context, s progress.State) (content.Advice, error)
}

// Options configures a Tracker. Documents is required.
type Options struct {
	Documents store.Documents
	Events    store.EventRepo // optional progress event log
	Content   Content         // nil disables AI features
	// ContentErr explains why Content is nil; reported inside ConfigError.
	ContentErr error
	Hub        *realtime.Hub
	Catalog    *skilltree.Catalog
	Env        progress.Env
	Logger     *slog.Logger
}

// Tracker is the single writer of the learner documents. All methods are
// safe for concurrent use.
type Tracker struct {
	cmds   chan func()
	closed chan struct{}
	exited chan struct{}

	docs       store.Documents
	events     store.EventRepo
	content    Content
	contentErr error
	hub        *realtime.Hub
	catalog    *skilltree.Catalog
	env        progress.Env
	log        *slog.Logger
	sessionID  string

	// Owned by the run goroutine.
	state        progress.State
	board        quest.Board
	questGen     uint64
	quizGen      uint64
	challengeGen uint64
	quiz         *QuizSession
	challenge    *ChallengeSession
}

// New loads both documents and starts the session goroutine. A missing
// document starts from its initial value; an unreadable one is an error.
func New(ctx context.Context, opts Options) (*Tracker, error) {
	if opts.Documents == nil {
		return nil, fmt.Errorf("tracker: documents store is required")
	}
	t := &Tracker{
		cmds:       make(chan func()),
		closed:     make(chan struct{}),
		exited:     make(chan struct{}),
		docs:       opts.Documents,
		events:     opts.Events,
		content:    opts.Content,
		contentErr: opts.ContentErr,
		hub:        opts.Hub,
		catalog:    opts.Catalog,
		env:        opts.Env,
		log:        opts.Logger,
		sessionID:  uuid.NewString(),
	}
	if t.catalog == nil {
		t.catalog = skilltree.Default()
	}
	if t.env.Now == nil && t.env.Rand == nil {
		t.env = progress.DefaultEnv()
	}
	if t.log == nil {
		t.log = slog.Default()
	}
	if t.contentErr == nil {
		t.contentErr = ErrNoProvider
	}

	raw, err := t.docs.Load(ctx, store.KeyUserState)
	if err != nil {
		return nil, fmt.Errorf("loading user state: %w", err)
	}
	if t.state, err = progress.Decode(raw); err != nil {
		return nil, err
	}
	raw, err = t.docs.Load(ctx, store.KeyActiveQuests)
	if err != nil {
		return nil, fmt.Errorf("loading active quests: %w", err)
	}
	qs, err := progress.DecodeQuests(raw)
	if err != nil {
		return nil, err
	}
	t.board = quest.Board(qs)

	t.log = t.log.With("session", t.sessionID)
	go t.run()
	return t, nil
}

// SessionID identifies this process's session in the event log.
func (t *Tracker) SessionID() string { return t.sessionID }

// AIEnabled reports whether a content provider is configured.
func (t *Tracker) AIEnabled() bool { return t.content != nil }

// Close stops the session goroutine. Pending calls return ErrClosed.
func (t *Tracker) Close() {
	select {
	case <-t.closed:
	default:
		close(t.closed)
	}
	<-t.exited
}

func (t *Tracker) run() {
	defer close(t.exited)
	for {
		select {
		case fn := <-t.cmds:
			fn()
		case <-t.closed:
			return
		}
	}
}

// do runs fn on the session goroutine and waits for it.
func (t *Tracker) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case t.cmds <- func() { fn(); close(done) }:
	case <-t.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	<-done
	return nil
}

// commit persists next and the board, then makes them current. On a
// persistence failure nothing changes.
func (t *Tracker) commit(ctx context.Context, kind, subject string, next progress.State, board quest.Board) error {
	ctx = context.WithoutCancel(ctx)
	stateDoc, err := progress.Encode(next)
	if err != nil {
		return err
	}
	boardDoc, err := progress.EncodeQuests(board)
	if err != nil {
		return err
	}
	if err := t.docs.Save(ctx, store.KeyUserState, stateDoc); err != nil {
		return fmt.Errorf("saving user state: %w", err)
	}
	if err := t.docs.Save(ctx, store.KeyActiveQuests, boardDoc); err != nil {
		return fmt.Errorf("saving active quests: %w", err)
	}

	prev := t.state
	t.state = next
	t.board = board
	t.record(ctx, kind, subject, prev, next)
	return nil
}

// Now returns the session clock's current time.
func (t *Tracker) Now() time.Time { return t.env.Time() }
