// Package archive stores the results of finished games in SQLite.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"sagrada/internal/engine"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
  game_id     TEXT PRIMARY KEY,
  finished_at INTEGER NOT NULL,
  rounds      INTEGER NOT NULL,
  solo        INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS scores (
  game_id       TEXT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
  seat          INTEGER NOT NULL,
  player_id     TEXT NOT NULL,
  player_name   TEXT NOT NULL,
  public        INTEGER NOT NULL,
  private       INTEGER NOT NULL,
  tokens        INTEGER NOT NULL,
  empty_penalty INTEGER NOT NULL,
  total         INTEGER NOT NULL,
  target        INTEGER NOT NULL,
  PRIMARY KEY (game_id, seat)
);
CREATE INDEX IF NOT EXISTS games_finished_at ON games (finished_at DESC);
`

// Result is one archived game.
type Result struct {
	GameID     string              `json:"game_id"`
	FinishedAt time.Time           `json:"finished_at"`
	Rounds     int                 `json:"rounds"`
	Solo       bool                `json:"solo"`
	Scores     []engine.ScoreEntry `json:"scores"`
}

// Store persists finished game results.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the SQLite file at path and creates the tables if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveResult records a finished game. Saving the same game twice fails.
func (s *Store) SaveResult(ctx context.Context, r Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(r.GameID) == "" {
		return fmt.Errorf("game id is required")
	}
	if len(r.Scores) == 0 {
		return fmt.Errorf("game %s has no scores", r.GameID)
	}
	finished := r.FinishedAt.UTC()
	if finished.IsZero() {
		finished = time.Now().UTC()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO games (game_id, finished_at, rounds, solo) VALUES (?, ?, ?, ?)`,
		r.GameID, finished.UnixMilli(), r.Rounds, r.Solo,
	); err != nil {
		return fmt.Errorf("insert game %s: %w", r.GameID, err)
	}
	for seat, e := range r.Scores {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scores (
			   game_id, seat, player_id, player_name, public, private,
			   tokens, empty_penalty, total, target
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.GameID, seat, e.PlayerID, e.PlayerName, e.Public, e.Private,
			e.Tokens, e.EmptyPenalty, e.Total, e.Target,
		); err != nil {
			return fmt.Errorf("insert score for %s: %w", e.PlayerID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit game %s: %w", r.GameID, err)
	}
	return nil
}

// ListResults returns the most recently finished games first.
func (s *Store) ListResults(ctx context.Context, limit int) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT game_id, finished_at, rounds, solo FROM games
		 ORDER BY finished_at DESC, game_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	var results []Result
	for rows.Next() {
		var (
			r        Result
			finished int64
		)
		if err := rows.Scan(&r.GameID, &finished, &r.Rounds, &r.Solo); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan game: %w", err)
		}
		r.FinishedAt = time.UnixMilli(finished).UTC()
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	_ = rows.Close()

	for i := range results {
		scores, err := s.scores(ctx, results[i].GameID)
		if err != nil {
			return nil, err
		}
		results[i].Scores = scores
	}
	return results, nil
}

func (s *Store) scores(ctx context.Context, gameID string) ([]engine.ScoreEntry, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT player_id, player_name, public, private, tokens, empty_penalty, total, target
		 FROM scores WHERE game_id = ? ORDER BY seat`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list scores for %s: %w", gameID, err)
	}
	defer rows.Close()

	var out []engine.ScoreEntry
	for rows.Next() {
		var e engine.ScoreEntry
		if err := rows.Scan(&e.PlayerID, &e.PlayerName, &e.Public, &e.Private,
			&e.Tokens, &e.EmptyPenalty, &e.Total, &e.Target); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
