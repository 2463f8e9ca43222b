package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// SaveResult records a finished session and submits its score as a
// high-score candidate in one transaction, pruning old sessions when a
// history cap is set. It reports whether the score became the new best
// for the session's topic and mode.
func (s *Store) SaveResult(ctx context.Context, rec SessionRecord, hs HighScore) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	sessions := &sessionRepo{db: tx}
	if err := sessions.Append(ctx, rec); err != nil {
		return false, err
	}
	if s.keepSessions > 0 {
		if err := sessions.Prune(ctx, s.keepSessions); err != nil {
			return false, err
		}
	}
	best, err := (&highScoreRepo{db: tx}).Submit(ctx, rec.Topic, rec.Mode, hs)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return best, nil
}

// Reset deletes every high score and session record.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{highScoresTable, sessionsTable} {
		query, args := entsql.Dialect(dialect.SQLite).Delete(table).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
