package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Document keys. The user state and the active quest list are stored
// independently and replaced wholesale on every save.
const (
	KeyUserState    = "user_state"
	KeyActiveQuests = "active_quests"
)

// Documents is a keyed store of opaque JSON documents. Load returns
// (nil, nil) when the key has never been saved. Save is idempotent.
type Documents interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, body []byte) error
}

// documentRepo implements Documents in the SQLite documents table.
type documentRepo struct {
	db *sql.DB
}

func (r *documentRepo) Load(ctx context.Context, key string) ([]byte, error) {
	q, args := sqlite.Select("body").
		From(entsql.Table(DocumentsTable.Name)).
		Where(entsql.EQ("key", key)).
		Query()
	var body string
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document %q: %w", key, err)
	}
	return []byte(body), nil
}

func (r *documentRepo) Save(ctx context.Context, key string, body []byte) error {
	q, args := sqlite.Insert(DocumentsTable.Name).
		Columns("key", "body", "updated_at").
		Values(key, string(body), time.Now().UTC()).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save document %q: %w", key, err)
	}
	return nil
}
