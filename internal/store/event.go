package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sqlite builds dialect-aware statements for every repository.
var sqlite = entsql.Dialect(dialect.SQLite)

// sequenceCounter hands out the global monotonic sequence shared by all
// event tables, so events of different kinds can be ordered against each
// other. The mutex serializes within the process; RETURNING makes the
// increment atomic in the database.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(ctx context.Context, db *sql.DB) (*sequenceCounter, error) {
	q, args := sqlite.Insert(GlobalSequenceTable.Name).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	q, args := sqlite.Update(GlobalSequenceTable.Name).
		Add("next_val", 1).
		Where(entsql.EQ("id", 1)).
		Returning("next_val").
		Query()
	var next int64
	if err := sc.db.QueryRowContext(ctx, q, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return next - 1, nil
}

// eventRepo implements EventRepo on top of the shared sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// windowed applies the common QueryOpts filters and ordering to sel.
func windowed(sel *entsql.Selector, opts QueryOpts) *entsql.Selector {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	sel = sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	return sel
}
