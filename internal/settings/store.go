// internal/settings/store.go
//
// Per-player preferences and finished-game history, backed by SQLite.
//
// Preferences are key/value rows in `settings` so new keys need no
// migration. Unknown keys are ignored on load; unparsable values fall back
// to the defaults. Nothing about a live game is stored here.

package settings

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/robalobadob/wordlet/internal/game"
)

const (
	keyAttempts = "attempts"
	keyHardMode = "hardMode"
	keyLastWord = "lastWord"
)

// Settings are the defaults a player's next game starts with.
type Settings struct {
	Attempts int    `json:"attempts"`
	HardMode bool   `json:"hardMode"`
	LastWord string `json:"lastWord,omitempty"`
}

// Defaults derives settings from the game config.
func Defaults(cfg game.Config) Settings {
	return Settings{Attempts: cfg.DefaultAttempts, HardMode: cfg.DefaultHardMode}
}

// Result is one finished game in a player's history.
type Result struct {
	PlayerID  string     `json:"-"`
	Token     string     `json:"token"`
	Word      string     `json:"word"`
	State     game.State `json:"gameState"`
	Attempts  int        `json:"attempts"`
	PlayTime  int64      `json:"playTime"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Store is the persistence interface used by the HTTP layer.
type Store interface {
	Load(ctx context.Context, playerID string) (Settings, error)
	Save(ctx context.Context, playerID string, s Settings) error
	RecordResult(ctx context.Context, r Result) error
	History(ctx context.Context, playerID string, limit int) ([]Result, error)
}

// SQLStore implements Store on database/sql.
type SQLStore struct {
	db       *sql.DB
	defaults Settings
}

func NewSQLStore(db *sql.DB, defaults Settings) *SQLStore {
	return &SQLStore{db: db, defaults: defaults}
}

func (s *SQLStore) Load(ctx context.Context, playerID string) (Settings, error) {
	out := s.defaults
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings WHERE player_id=?`, playerID)
	if err != nil {
		return out, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return s.defaults, fmt.Errorf("scan settings: %w", err)
		}
		switch k {
		case keyAttempts:
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				out.Attempts = n
			}
		case keyHardMode:
			if b, err := strconv.ParseBool(v); err == nil {
				out.HardMode = b
			}
		case keyLastWord:
			out.LastWord = v
		}
	}
	return out, rows.Err()
}

func (s *SQLStore) Save(ctx context.Context, playerID string, st Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	kv := [][2]string{
		{keyAttempts, strconv.Itoa(st.Attempts)},
		{keyHardMode, strconv.FormatBool(st.HardMode)},
		{keyLastWord, st.LastWord},
	}
	for _, p := range kv {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (player_id, key, value, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(player_id, key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
			playerID, p[0], p[1],
		); err != nil {
			return fmt.Errorf("save setting %s: %w", p[0], err)
		}
	}
	return tx.Commit()
}

func (s *SQLStore) RecordResult(ctx context.Context, r Result) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (player_id, token, word, game_state, attempts, play_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.PlayerID, r.Token, r.Word, string(r.State), r.Attempts, r.PlayTime, r.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	return nil
}

// History returns the player's most recent results first. limit <= 0 means 20.
func (s *SQLStore) History(ctx context.Context, playerID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, word, game_state, attempts, play_time, created_at
		FROM results
		WHERE player_id=?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, playerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		r := Result{PlayerID: playerID}
		var state string
		if err := rows.Scan(&r.Token, &r.Word, &state, &r.Attempts, &r.PlayTime, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.State = game.State(state)
		out = append(out, r)
	}
	return out, rows.Err()
}
