package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var progressEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "kind", "subject",
	"xp_delta", "coins_delta", "level_after",
}

func (r *eventRepo) AppendProgressEvent(ctx context.Context, data ProgressEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	q, args := sqlite.Insert(ProgressEventsTable.Name).
		Columns(progressEventColumns[1:]...).
		Values(
			seqNum, time.Now().UTC(), data.SessionID, data.Kind, data.Subject,
			data.XPDelta, data.CoinsDelta, data.LevelAfter,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save progress event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryProgressEvents(ctx context.Context, opts QueryOpts) ([]ProgressEventRecord, error) {
	sel := windowed(sqlite.Select(progressEventColumns...).From(entsql.Table(ProgressEventsTable.Name)), opts)
	q, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress events: %w", err)
	}
	defer rows.Close()

	var out []ProgressEventRecord
	for rows.Next() {
		var rec ProgressEventRecord
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.Kind, &rec.Subject,
			&rec.XPDelta, &rec.CoinsDelta, &rec.LevelAfter,
		); err != nil {
			return nil, fmt.Errorf("scan progress event: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
