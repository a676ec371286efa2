package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range Tables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table.Name,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table.Name, err)
		}
	}
}

func TestDocuments_LoadMissing(t *testing.T) {
	s := openTestStore(t)
	body, err := s.Documents().Load(context.Background(), KeyUserState)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if body != nil {
		t.Fatalf("body = %q, want nil", body)
	}
}

func TestDocuments_SaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	docs := s.Documents()
	ctx := context.Background()

	if err := docs.Save(ctx, KeyActiveQuests, []byte(`[{"id":"q-1-0"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := docs.Save(ctx, KeyActiveQuests, []byte(`[]`)); err != nil {
		t.Fatalf("save again: %v", err)
	}
	if err := docs.Save(ctx, KeyUserState, []byte(`{"xp":10}`)); err != nil {
		t.Fatalf("save state: %v", err)
	}

	got, err := docs.Load(ctx, KeyActiveQuests)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("active_quests = %s, want []", got)
	}
	got, _ = docs.Load(ctx, KeyUserState)
	if string(got) != `{"xp":10}` {
		t.Errorf("user_state = %s", got)
	}

	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("documents rows = %d, want 2", n)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Monotonically increasing starting from 1.
	for i, seq := range seqs {
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}

	// Re-seeding keeps the counter where it was.
	sc, err := newSequenceCounter(ctx, s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}
	if seq, _ := sc.Next(ctx); seq != 6 {
		t.Errorf("after reseed seq = %d, want 6", seq)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quests", InputTokens: 100, OutputTokens: 40, LatencyMs: 200, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quests", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-pro", Purpose: "evaluation", InputTokens: 300, OutputTokens: 60, LatencyMs: 900, Success: false, ErrorMessage: "rate limited"},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if got[0].Purpose != "evaluation" || got[0].Success || got[0].ErrorMessage != "rate limited" {
		t.Errorf("newest event = %+v", got[0])
	}
	if got[0].Sequence <= got[1].Sequence {
		t.Errorf("events not ordered newest first: %d, %d", got[0].Sequence, got[1].Sequence)
	}
	if time.Since(got[0].Timestamp) > time.Minute {
		t.Errorf("timestamp = %v", got[0].Timestamp)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Before: got[0].Sequence})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Sequence != got[1].Sequence {
		t.Errorf("limited = %+v", limited)
	}

	one, err := repo.GetLLMEvent(ctx, got[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one == nil || one.InputTokens != 100 {
		t.Errorf("get = %+v", one)
	}
	missing, err := repo.GetLLMEvent(ctx, 999)
	if err != nil || missing != nil {
		t.Errorf("get missing = %+v, %v", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %+v", byPurpose)
	}
	if u := byPurpose[0]; u.Purpose != "quests" || u.Calls != 2 || u.InputTokens != 150 || u.OutputTokens != 50 || u.AvgLatencyMs != 150 {
		t.Errorf("quests usage = %+v", u)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gemini-2.5-flash" || byModel[0].Calls != 2 {
		t.Errorf("models = %+v", byModel)
	}
}

func TestProgressEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []ProgressEventData{
		{SessionID: "s1", Kind: "step", XPDelta: 10, CoinsDelta: 1, LevelAfter: 1},
		{SessionID: "s1", Kind: "quest", Subject: "q-1-0", XPDelta: 100, CoinsDelta: 20, LevelAfter: 1},
	} {
		if err := repo.AppendProgressEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	// Shares the sequence with LLM events.
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Success: true}); err != nil {
		t.Fatalf("append llm: %v", err)
	}

	got, err := repo.QueryProgressEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Kind != "quest" || got[0].Subject != "q-1-0" || got[0].XPDelta != 100 || got[0].SessionID != "s1" {
		t.Errorf("newest = %+v", got[0])
	}

	after, err := repo.QueryProgressEvents(ctx, QueryOpts{After: got[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 || after[0].Kind != "quest" {
		t.Errorf("after = %+v", after)
	}

	llm, _ := repo.QueryLLMEvents(ctx, QueryOpts{})
	if len(llm) != 1 || llm[0].Sequence != 3 {
		t.Errorf("llm event sequence = %+v, want 3", llm)
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	want := dir + "/nested/db.sqlite"
	t.Setenv("LEARNQUEST_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
