package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NewRun records one cache-populating invocation and returns its id.
// Tree writes reference the run that produced them.
func (s *Store) NewRun(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx, `INSERT INTO runs (id) VALUES (?)`, id); err != nil {
		return "", fmt.Errorf("new run: %w", err)
	}
	return id, nil
}

// WriteTree caches the rendered canonical S-expression for a source hash.
// Uses ON CONFLICT(hash) DO NOTHING for idempotency - the first write for a
// hash wins and later writes are silently ignored.
//
// Note: The run referenced by runID must exist (foreign key constraint).
func (s *Store) WriteTree(ctx context.Context, hash, sourceName, sexpr, runID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trees
		(hash, source_name, sexpr, run_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`,
		hash,
		sourceName,
		sexpr,
		runID,
	)
	if err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}

// ReadTree looks up the cached S-expression for a source hash.
// The second return value reports whether the hash was present.
func (s *Store) ReadTree(ctx context.Context, hash string) (string, bool, error) {
	var sexpr string
	err := s.db.QueryRowContext(ctx,
		`SELECT sexpr FROM trees WHERE hash = ?`, hash,
	).Scan(&sexpr)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read tree: %w", err)
	}
	return sexpr, true, nil
}
