package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"deeptrader/internal/game"
)

// FileStore writes one JSON document per slot under a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("file store needs a directory")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(slot string) string {
	return filepath.Join(f.dir, slot+".json")
}

// Save writes through a temp file and a rename so a crash never leaves a
// half-written save behind.
func (f *FileStore) Save(_ context.Context, slot string, s game.GameState) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	raw, err := game.EncodeState(s)
	if err != nil {
		return fmt.Errorf("encode %s: %w", slot, err)
	}
	tmp, err := os.CreateTemp(f.dir, slot+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path(slot))
}

func (f *FileStore) Load(_ context.Context, slot string) (game.GameState, error) {
	if err := ValidateSlot(slot); err != nil {
		return game.GameState{}, err
	}
	raw, err := os.ReadFile(f.path(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return game.GameState{}, fmt.Errorf("%w: slot %s", ErrNoSave, slot)
		}
		return game.GameState{}, err
	}
	return decode(slot, raw)
}

func (f *FileStore) Delete(_ context.Context, slot string) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	err := os.Remove(f.path(slot))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) List(context.Context) ([]SlotInfo, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, err
	}
	out := []SlotInfo{}
	for _, e := range entries {
		slot, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok || ValidateSlot(slot) != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, SlotInfo{Slot: slot, Date: f.peekDate(slot), UpdatedAt: info.ModTime().UTC()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

// peekDate reads only the date of a save; an unreadable save lists with no date.
func (f *FileStore) peekDate(slot string) string {
	raw, err := os.ReadFile(f.path(slot))
	if err != nil {
		return ""
	}
	var head struct {
		Date game.GameDate `json:"date"`
	}
	if err := json.Unmarshal(raw, &head); err != nil || head.Date.Validate() != nil {
		return ""
	}
	return head.Date.String()
}

func (f *FileStore) Close() error { return nil }
