package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"deeptrader/internal/game"
)

// SQLite keeps saves in a single-file database, one row per slot.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite store needs a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS game_saves (
		slot       TEXT PRIMARY KEY,
		state      TEXT NOT NULL,
		game_date  TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Save(ctx context.Context, slot string, st game.GameState) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	raw, err := game.EncodeState(st)
	if err != nil {
		return fmt.Errorf("encode %s: %w", slot, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO game_saves (slot, state, game_date, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET state = excluded.state, game_date = excluded.game_date, updated_at = excluded.updated_at`,
		slot, string(raw), st.Date.String(), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save %s: %w", slot, err)
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context, slot string) (game.GameState, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM game_saves WHERE slot = ?`, slot).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return game.GameState{}, fmt.Errorf("%w: slot %s", ErrNoSave, slot)
	}
	if err != nil {
		return game.GameState{}, fmt.Errorf("load %s: %w", slot, err)
	}
	return decode(slot, []byte(raw))
}

func (s *SQLite) Delete(ctx context.Context, slot string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM game_saves WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("delete %s: %w", slot, err)
	}
	return nil
}

func (s *SQLite) List(ctx context.Context) ([]SlotInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot, game_date, updated_at FROM game_saves ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	out := []SlotInfo{}
	for rows.Next() {
		var info SlotInfo
		var updated string
		if err := rows.Scan(&info.Slot, &info.Date, &updated); err != nil {
			return nil, err
		}
		info.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, info)
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error { return s.db.Close() }
