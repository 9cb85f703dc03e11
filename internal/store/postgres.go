package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"deeptrader/internal/db"
	"deeptrader/internal/game"
)

// Postgres stores each slot as a jsonb document.
type Postgres struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, url string) (*Postgres, error) {
	pool, err := db.Connect(ctx, url, db.PoolOptions{})
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &Postgres{pool: pool}, nil
}

// Save upserts the slot. Serialization conflicts between two hosts writing
// the same slot are retried with backoff.
func (p *Postgres) Save(ctx context.Context, slot string, s game.GameState) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	raw, err := game.EncodeState(s)
	if err != nil {
		return fmt.Errorf("encode %s: %w", slot, err)
	}

	const maxAttempts = 4
	retryDelay := 50 * time.Millisecond
	for attempt := 0; ; attempt++ {
		_, err = p.pool.Exec(ctx, `
			INSERT INTO game_saves (slot, state, game_date, updated_at)
			VALUES ($1, $2::jsonb, $3, now())
			ON CONFLICT (slot) DO UPDATE
			SET state = EXCLUDED.state, game_date = EXCLUDED.game_date, updated_at = now()`,
			slot, raw, s.Date.String())
		if err == nil {
			return nil
		}
		if !isSerializationError(err) || attempt == maxAttempts-1 {
			return fmt.Errorf("save %s: %w", slot, err)
		}
		if err := sleepWithContext(ctx, retryDelay); err != nil {
			return err
		}
		retryDelay *= 2
	}
}

func (p *Postgres) Load(ctx context.Context, slot string) (game.GameState, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx, `SELECT state FROM game_saves WHERE slot = $1`, slot).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return game.GameState{}, fmt.Errorf("%w: slot %s", ErrNoSave, slot)
	}
	if err != nil {
		return game.GameState{}, fmt.Errorf("load %s: %w", slot, err)
	}
	return decode(slot, raw)
}

func (p *Postgres) Delete(ctx context.Context, slot string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM game_saves WHERE slot = $1`, slot); err != nil {
		return fmt.Errorf("delete %s: %w", slot, err)
	}
	return nil
}

func (p *Postgres) List(ctx context.Context) ([]SlotInfo, error) {
	rows, err := p.pool.Query(ctx, `SELECT slot, game_date, updated_at FROM game_saves ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	out := []SlotInfo{}
	for rows.Next() {
		var info SlotInfo
		if err := rows.Scan(&info.Slot, &info.Date, &info.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func isSerializationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
