package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const sessionsTable = "sessions"

// dbtx is the subset of *sql.DB and *sql.Tx the repositories use.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SessionRecord is the persisted summary of one finished session.
type SessionRecord struct {
	SessionID  string
	Topic      string
	Mode       string
	Score      int
	BestStreak int
	Correct    int
	Wrong      int
	Duration   time.Duration
	EndedAt    time.Time
}

// SessionRepo stores finished session summaries.
type SessionRepo interface {
	// Append records a finished session. An empty SessionID is assigned a UUID.
	Append(ctx context.Context, rec SessionRecord) error

	// Recent returns up to limit sessions, newest first. limit <= 0 returns all.
	Recent(ctx context.Context, limit int) ([]SessionRecord, error)

	// Prune deletes all but the keep most recent sessions.
	Prune(ctx context.Context, keep int) error
}

// sessionRepo implements SessionRepo on the sessions table.
type sessionRepo struct {
	db dbtx
}

var sessionColumns = []string{
	"session_id", "topic", "mode", "score", "best_streak",
	"correct", "wrong", "duration_ms", "ended_at",
}

func (r *sessionRepo) Append(ctx context.Context, rec SessionRecord) error {
	if rec.SessionID == "" {
		rec.SessionID = uuid.NewString()
	}
	if rec.EndedAt.IsZero() {
		rec.EndedAt = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(
			rec.SessionID, rec.Topic, rec.Mode, rec.Score, rec.BestStreak,
			rec.Correct, rec.Wrong, rec.Duration.Milliseconds(), rec.EndedAt.UnixMilli(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Recent(ctx context.Context, limit int) ([]SessionRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(sessionColumns...).
		From(entsql.Table(sessionsTable)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec               SessionRecord
			durationMs, ended int64
		)
		if err := rows.Scan(
			&rec.SessionID, &rec.Topic, &rec.Mode, &rec.Score, &rec.BestStreak,
			&rec.Correct, &rec.Wrong, &durationMs, &ended,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		rec.EndedAt = time.UnixMilli(ended)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *sessionRepo) Prune(ctx context.Context, keep int) error {
	// Find the ID threshold: the first row past the keep most recent.
	query, args := entsql.Dialect(dialect.SQLite).
		Select("id").
		From(entsql.Table(sessionsTable)).
		OrderBy(entsql.Desc("id")).
		Limit(1).
		Offset(keep).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if err == sql.ErrNoRows {
		return nil // fewer than keep sessions exist
	}
	if err != nil {
		return fmt.Errorf("query sessions for prune: %w", err)
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Delete(sessionsTable).
		Where(entsql.LTE("id", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune sessions: %w", err)
	}
	return nil
}
