package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"deeptrader/internal/game"
)

var (
	// ErrNoSave covers both a missing slot and a save that no longer decodes.
	ErrNoSave      = errors.New("no save")
	ErrInvalidSlot = errors.New("invalid slot name")
)

// Store persists games by slot name.
type Store interface {
	Save(ctx context.Context, slot string, s game.GameState) error
	Load(ctx context.Context, slot string) (game.GameState, error)
	Delete(ctx context.Context, slot string) error
	List(ctx context.Context) ([]SlotInfo, error)
	Close() error
}

type SlotInfo struct {
	Slot      string    `json:"slot"`
	Date      string    `json:"date"`
	UpdatedAt time.Time `json:"updated_at"`
}

var slotPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

func ValidateSlot(slot string) error {
	if !slotPattern.MatchString(slot) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return nil
}

// Open picks the implementation from the url scheme:
//
//	memory://
//	file://<dir>
//	sqlite://<path>
//	postgres://... or postgresql://...
func Open(ctx context.Context, url string) (Store, error) {
	url = strings.TrimSpace(url)
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return nil, fmt.Errorf("store url %q has no scheme", url)
	}
	switch strings.ToLower(scheme) {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFileStore(rest)
	case "sqlite":
		return OpenSQLite(ctx, rest)
	case "postgres", "postgresql":
		return OpenPostgres(ctx, url)
	default:
		return nil, fmt.Errorf("unsupported store scheme %q", scheme)
	}
}

// decode turns a stored document into a state, folding every failure into
// ErrNoSave.
func decode(slot string, raw []byte) (game.GameState, error) {
	s, err := game.DecodeState(raw)
	if err != nil {
		return game.GameState{}, fmt.Errorf("%w: slot %s: %v", ErrNoSave, slot, err)
	}
	return s, nil
}
