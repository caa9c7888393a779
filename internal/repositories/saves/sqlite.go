package saves

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/rpg-director/internal/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS save_slots (
	id             TEXT PRIMARY KEY,
	character_name TEXT NOT NULL DEFAULT '',
	turns          INTEGER NOT NULL DEFAULT 0,
	saved_at       INTEGER NOT NULL,
	document       BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS save_slots_saved_at ON save_slots (saved_at DESC);
`

// SQLiteRepository stores slots in a SQLite file
type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

// OpenSQLite opens (creating if needed) the database at path
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Upstream(err, "open sqlite db")
	}
	// SQLite serializes writers anyway
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Upstream(err, "ping sqlite db")
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create save_slots table")
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Put upserts a slot
func (r *SQLiteRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if msg := validateSlot(input.Slot); msg != "" {
		return nil, errors.InvalidArgument(msg)
	}

	s := input.Slot
	_, err := r.db.ExecContext(ctx, `
INSERT INTO save_slots (id, character_name, turns, saved_at, document)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	character_name = excluded.character_name,
	turns = excluded.turns,
	saved_at = excluded.saved_at,
	document = excluded.document`,
		s.ID, s.CharacterName, s.Turns, s.SavedAt.UnixMilli(), s.Document)
	if err != nil {
		return nil, errors.Upstream(err, "failed to store save slot")
	}

	return &PutOutput{Summary: s.Summary}, nil
}

// Get reads a slot
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSlotIDEmpty)
	}

	var (
		slot    Slot
		savedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, character_name, turns, saved_at, document FROM save_slots WHERE id = ?`, input.ID,
	).Scan(&slot.ID, &slot.CharacterName, &slot.Turns, &savedAt, &slot.Document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("save slot %s not found", input.ID)
		}
		return nil, errors.Upstream(err, "failed to get save slot")
	}
	slot.SavedAt = time.UnixMilli(savedAt).UTC()

	return &GetOutput{Slot: &slot}, nil
}

// List returns summaries newest first
func (r *SQLiteRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, character_name, turns, saved_at FROM save_slots ORDER BY saved_at DESC, id ASC`)
	if err != nil {
		return nil, errors.Upstream(err, "failed to list save slots")
	}
	defer func() { _ = rows.Close() }()

	out := []Summary{}
	for rows.Next() {
		var (
			s       Summary
			savedAt int64
		)
		if err := rows.Scan(&s.ID, &s.CharacterName, &s.Turns, &savedAt); err != nil {
			return nil, errors.Upstream(err, "failed to scan save slot")
		}
		s.SavedAt = time.UnixMilli(savedAt).UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Upstream(err, "failed to iterate save slots")
	}

	return &ListOutput{Summaries: out}, nil
}

// Delete removes a slot
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSlotIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM save_slots WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.Upstream(err, "failed to delete save slot")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Upstream(err, "failed to delete save slot")
	}
	if n == 0 {
		return nil, errors.NotFoundf("save slot %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}
