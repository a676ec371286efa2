package tracker

import (
	"context"
	"errors"

	"github.com/learnquest/learnquest/internal/content"
	"github.com/learnquest/learnquest/internal/metrics"
	"github.com/learnquest/learnquest/internal/progress"
	"github.com/learnquest/learnquest/internal/realtime"
	"github.com/learnquest/learnquest/internal/store"
)

// Event kinds stored in the progress log.
const (
	KindStep      = "step"
	KindQuest     = "quest"
	KindQuests    = "quests"
	KindQuiz      = "quiz"
	KindChallenge = "challenge"
	KindUnlock    = "unlock"
	KindReset     = "reset"
)

var hubTypes = map[string]realtime.EventType{
	KindStep:      realtime.EventStep,
	KindQuest:     realtime.EventQuest,
	KindQuests:    realtime.EventQuests,
	KindQuiz:      realtime.EventQuiz,
	KindChallenge: realtime.EventChallenge,
	KindUnlock:    realtime.EventUnlock,
	KindReset:     realtime.EventReset,
}

// record reports an applied transition to the event log, metrics and
// live subscribers.
func (t *Tracker) record(ctx context.Context, kind, subject string, prev, next progress.State) {
	xp := next.XP - prev.XP
	coins := next.GemCoins - prev.GemCoins

	metrics.EventsApplied.WithLabelValues(kind).Inc()
	if xp > 0 {
		metrics.XPAwarded.Add(float64(xp))
	}
	metrics.Level.Set(float64(next.Level))

	if next.Level > prev.Level {
		t.log.Info("level up", "level", next.Level, "xp", next.XP)
	}
	t.log.Debug("progress event", "kind", kind, "subject", subject, "xp_delta", xp, "coins_delta", coins)

	if t.events != nil {
		err := t.events.AppendProgressEvent(ctx, store.ProgressEventData{
			SessionID:  t.sessionID,
			Kind:       kind,
			Subject:    subject,
			XPDelta:    xp,
			CoinsDelta: coins,
			LevelAfter: next.Level,
		})
		if err != nil {
			t.log.Warn("failed to record progress event", "kind", kind, "err", err)
		}
	}

	if t.hub != nil {
		t.hub.Publish(realtime.Event{
			Type:      hubTypes[kind],
			SessionID: t.sessionID,
			Subject:   subject,
			XPDelta:   xp,
			CoinDelta: coins,
			Level:     next.Level,
			XP:        next.XP,
			At:        t.env.Time(),
		})
	}
}

func (t *Tracker) rejected(kind, reason string) {
	metrics.EventsRejected.WithLabelValues(kind, reason).Inc()
	t.log.Debug("event rejected", "kind", kind, "reason", reason)
}

func (t *Tracker) collaboratorFailed(op string, err error) {
	var ce *content.CollaboratorError
	if errors.As(err, &ce) {
		op = ce.Op
	}
	metrics.CollaboratorFailures.WithLabelValues(op).Inc()
	t.log.Warn("content request failed", "op", op, "err", err)
}
