package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deeptrader/internal/catalog"
	"deeptrader/internal/game"
	"deeptrader/internal/store"
)

func newWorker(t *testing.T, days int) (*worker, *store.Memory) {
	t.Helper()
	engine := game.NewEngine(catalog.Default(), game.DefaultTuning(), game.NewSequenceRand(0.5), game.NewCounterIDs("id"), nil)
	st := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &worker{engine: engine, store: st, log: logger, days: days}, st
}

func TestRunBatchAdvancesEverySlot(t *testing.T) {
	ctx := context.Background()
	w, st := newWorker(t, 3)

	for _, slot := range []string{"alpha", "beta"} {
		s, err := w.engine.NewGame(slot, "USA")
		require.NoError(t, err)
		require.NoError(t, st.Save(ctx, slot, s))
	}

	require.NoError(t, w.runBatch(ctx, []string{"alpha", "beta", "missing"}))

	for _, slot := range []string{"alpha", "beta"} {
		s, err := st.Load(ctx, slot)
		require.NoError(t, err)
		assert.Equal(t, "2024-01-04", s.Date.String(), slot)
	}
	_, err := st.Load(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNoSave)
}

func TestEndedGameIsLeftAlone(t *testing.T) {
	ctx := context.Background()
	w, st := newWorker(t, 2)

	s, err := w.engine.NewGame("Ada", "USA")
	require.NoError(t, err)
	s.Player.Bankruptcy = game.BankruptcyGameOver
	s.Player.GameOverReason = game.ReasonPrison
	require.NoError(t, st.Save(ctx, "over", s))

	require.NoError(t, w.runBatch(ctx, []string{"over"}))

	back, err := st.Load(ctx, "over")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", back.Date.String())
}
