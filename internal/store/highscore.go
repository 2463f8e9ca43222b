package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const highScoresTable = "high_scores"

// HighScore is the best result recorded for one (topic, mode) pair.
type HighScore struct {
	Score        int       `json:"score"`
	Streak       int       `json:"streak"`
	CorrectCount int       `json:"correctCount"`
	Date         time.Time `json:"date"`
}

// HighScoreEntry is a HighScore together with its key.
type HighScoreEntry struct {
	Topic string
	Mode  string
	HighScore
}

// HighScoreRepo reads and writes best scores keyed by topic and mode.
type HighScoreRepo interface {
	// Get returns the stored record. Missing, unreadable, or corrupt
	// records all report false.
	Get(ctx context.Context, topic, mode string) (*HighScore, bool)

	// Submit stores hs if its score is strictly greater than the stored
	// one, or if nothing valid is stored. It reports whether it wrote.
	Submit(ctx context.Context, topic, mode string, hs HighScore) (bool, error)

	// All lists every readable record ordered by topic then mode.
	All(ctx context.Context) ([]HighScoreEntry, error)
}

// highScoreRepo implements HighScoreRepo on the high_scores table.
type highScoreRepo struct {
	db dbtx
}

func (r *highScoreRepo) Get(ctx context.Context, topic, mode string) (*HighScore, bool) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("data").
		From(entsql.Table(highScoresTable)).
		Where(entsql.And(entsql.EQ("topic", topic), entsql.EQ("mode", mode))).
		Query()

	var raw string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		return nil, false
	}
	hs, err := decodeHighScore(raw)
	if err != nil {
		return nil, false
	}
	return hs, true
}

func (r *highScoreRepo) Submit(ctx context.Context, topic, mode string, hs HighScore) (bool, error) {
	if cur, ok := r.Get(ctx, topic, mode); ok && hs.Score <= cur.Score {
		return false, nil
	}
	if hs.Date.IsZero() {
		hs.Date = time.Now()
	}
	hs.Date = hs.Date.UTC()

	data, err := json.Marshal(hs)
	if err != nil {
		return false, fmt.Errorf("marshal high score: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(highScoresTable).
		Columns("topic", "mode", "data", "updated_at").
		Values(topic, mode, string(data), time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("topic", "mode"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return false, fmt.Errorf("save high score: %w", err)
	}
	return true, nil
}

func (r *highScoreRepo) All(ctx context.Context) ([]HighScoreEntry, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("topic", "mode", "data").
		From(entsql.Table(highScoresTable)).
		OrderBy("topic", "mode").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query high scores: %w", err)
	}
	defer rows.Close()

	var out []HighScoreEntry
	for rows.Next() {
		var topic, mode, raw string
		if err := rows.Scan(&topic, &mode, &raw); err != nil {
			return nil, fmt.Errorf("scan high score: %w", err)
		}
		hs, err := decodeHighScore(raw)
		if err != nil {
			continue
		}
		out = append(out, HighScoreEntry{Topic: topic, Mode: mode, HighScore: *hs})
	}
	return out, rows.Err()
}

var errCorruptRecord = errors.New("corrupt high score record")

func decodeHighScore(raw string) (*HighScore, error) {
	var hs HighScore
	if err := json.Unmarshal([]byte(raw), &hs); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptRecord, err)
	}
	if hs.Score < 0 || hs.Streak < 0 || hs.CorrectCount < 0 {
		return nil, errCorruptRecord
	}
	return &hs, nil
}
