// Package quest manages the active quest list: turning generated drafts
// into quests and completing them.
package quest

import (
	"fmt"
	"slices"
	"time"

	"github.com/learnquest/learnquest/internal/progress"
)

// Board is the active quest list. It is replaced wholesale on
// regeneration and never merged.
type Board []progress.Quest

// FromDrafts assigns ids to freshly generated drafts.
func FromDrafts(drafts []progress.QuestDraft, now time.Time) Board {
	ms := now.UnixMilli()
	b := make(Board, 0, len(drafts))
	for i, d := range drafts {
		b = append(b, progress.Quest{
			ID:         fmt.Sprintf("q-%d-%d", ms, i),
			QuestDraft: d,
		})
	}
	return b
}

// Find returns the quest with the given id.
func (b Board) Find(id string) (progress.Quest, bool) {
	for _, q := range b {
		if q.ID == id {
			return q, true
		}
	}
	return progress.Quest{}, false
}

// Pending returns the quests not yet completed.
func (b Board) Pending() Board {
	out := make(Board, 0, len(b))
	for _, q := range b {
		if !q.IsCompleted {
			out = append(out, q)
		}
	}
	return out
}

// Done reports whether every quest on the board is completed.
func (b Board) Done() bool {
	return len(b.Pending()) == 0
}

// Complete marks quest id completed and applies its reward. An unknown id
// or an already completed quest leaves both values unchanged and reports
// false.
func Complete(s progress.State, b Board, id string, env progress.Env) (progress.State, Board, bool) {
	i := slices.IndexFunc(b, func(q progress.Quest) bool { return q.ID == id })
	if i < 0 || b[i].IsCompleted {
		return s, b, false
	}
	next := slices.Clone(b)
	s = progress.ApplyQuestCompletion(s, next[i], env)
	next[i].IsCompleted = true
	return s, next, true
}
