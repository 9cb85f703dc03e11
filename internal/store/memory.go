package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"deeptrader/internal/game"
)

// Memory keeps encoded saves in a map. States round-trip through the wire
// format so callers never share memory with the store.
type Memory struct {
	mu    sync.RWMutex
	saves map[string]memorySave
}

type memorySave struct {
	raw       []byte
	date      string
	updatedAt time.Time
}

func NewMemory() *Memory {
	return &Memory{saves: make(map[string]memorySave)}
}

func (m *Memory) Save(_ context.Context, slot string, s game.GameState) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	raw, err := game.EncodeState(s)
	if err != nil {
		return fmt.Errorf("encode %s: %w", slot, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[slot] = memorySave{raw: raw, date: s.Date.String(), updatedAt: time.Now().UTC()}
	return nil
}

func (m *Memory) Load(_ context.Context, slot string) (game.GameState, error) {
	m.mu.RLock()
	save, ok := m.saves[slot]
	m.mu.RUnlock()
	if !ok {
		return game.GameState{}, fmt.Errorf("%w: slot %s", ErrNoSave, slot)
	}
	return decode(slot, save.raw)
}

func (m *Memory) Delete(_ context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saves, slot)
	return nil
}

func (m *Memory) List(context.Context) ([]SlotInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]SlotInfo, 0, len(m.saves))
	for slot, save := range m.saves {
		out = append(out, SlotInfo{Slot: slot, Date: save.date, UpdatedAt: save.updatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

func (m *Memory) Close() error { return nil }
