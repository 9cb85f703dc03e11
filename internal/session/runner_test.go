package session

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deeptrader/internal/catalog"
	"deeptrader/internal/game"
	"deeptrader/internal/observability"
	"deeptrader/internal/store"
)

type fixture struct {
	engine  *game.Engine
	store   *store.Memory
	metrics *observability.Metrics
	runner  *Runner
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := game.NewEngine(catalog.Default(), game.DefaultTuning(), game.NewSequenceRand(0.5), game.NewCounterIDs("id"), logger)
	s, err := e.NewGame("Ada", "USA")
	require.NoError(t, err)

	f := fixture{engine: e, store: store.NewMemory(), metrics: observability.NewMetrics("test", prometheus.NewRegistry())}
	f.runner = New(e, s, Options{
		Slot:          "main",
		Store:         f.store,
		Metrics:       f.metrics,
		Logger:        logger,
		FrameEvery:    5 * time.Millisecond,
		AutosaveEvery: time.Hour,
	})
	return f
}

func TestApplyPublishesSummary(t *testing.T) {
	f := newFixture(t)
	updates, cancel := f.runner.Subscribe()
	defer cancel()

	sum, err := f.runner.Apply(game.SetPaused{Paused: true})
	require.NoError(t, err)
	assert.True(t, sum.Paused)

	select {
	case got := <-updates:
		assert.True(t, got.Paused)
	default:
		t.Fatal("no summary published")
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ActionsTotal.WithLabelValues("SET_PAUSED", observability.ResultApplied)))
}

func TestRejectedActionKeepsState(t *testing.T) {
	f := newFixture(t)
	updates, cancel := f.runner.Subscribe()
	defer cancel()

	sum, err := f.runner.Apply(game.SpotTrade{AssetID: "NOPE", Side: game.Buy, Quantity: 1})
	assert.ErrorIs(t, err, game.ErrUnknownAsset)
	assert.Equal(t, 1_000_000.0, sum.Cash)
	assert.Empty(t, updates)

	_, err = f.runner.Apply(nil)
	assert.ErrorIs(t, err, game.ErrInvalidAction)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ActionsTotal.WithLabelValues("SPOT_TRADE", observability.ResultRejected)))
}

func TestStepAdvancesDayWhenElapsed(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.runner.Step(90*time.Second))
	s := f.runner.State()
	assert.Equal(t, 1, s.Date.Day)
	assert.InDelta(t, 0.5, s.Date.DayProgress, 1e-9)

	require.NoError(t, f.runner.Step(90*time.Second))
	s = f.runner.State()
	assert.Equal(t, game.NewDate(2024, 1, 2), s.Date)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.DaysAdvanced))
}

func TestStepHoldsWhilePaused(t *testing.T) {
	f := newFixture(t)
	_, err := f.runner.Apply(game.SetPaused{Paused: true})
	require.NoError(t, err)

	require.NoError(t, f.runner.Step(10*time.Minute))
	assert.Equal(t, game.NewDate(2024, 1, 1), f.runner.State().Date)
}

func TestSkipDaysCountsDays(t *testing.T) {
	f := newFixture(t)
	sum, err := f.runner.Apply(game.SkipDays{Days: 5})
	require.NoError(t, err)
	assert.Equal(t, game.NewDate(2024, 1, 6), sum.Date)
	assert.Equal(t, 5.0, testutil.ToFloat64(f.metrics.DaysAdvanced))
}

func TestAutosaveRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	saved, err := f.runner.autosave(ctx)
	require.NoError(t, err)
	assert.True(t, saved)
	back, err := f.store.Load(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "Ada", back.Player.Name)

	_, err = f.runner.Apply(game.SetPaused{Paused: true})
	require.NoError(t, err)
	saved, err = f.runner.autosave(ctx)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SavesTotal.WithLabelValues("ok")))
}

func TestLoadRestoresSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.runner.Apply(game.SkipDays{Days: 3})
	require.NoError(t, err)
	require.NoError(t, f.runner.Save(ctx))

	r, err := Load(ctx, f.engine, Options{Slot: "main", Store: f.store})
	require.NoError(t, err)
	assert.Equal(t, game.NewDate(2024, 1, 4), r.State().Date)

	_, err = Load(ctx, f.engine, Options{Slot: "missing", Store: f.store})
	assert.ErrorIs(t, err, store.ErrNoSave)
}

func TestRunStepsAndFlushes(t *testing.T) {
	f := newFixture(t)
	updates, cancel := f.runner.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.runner.Run(ctx) }()

	select {
	case <-updates:
	case <-time.After(2 * time.Second):
		t.Fatal("frame loop produced no summary")
	}
	stop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
	_, err := f.store.Load(context.Background(), "main")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.ActiveSessions))
}

func TestCloseEndsSubscriptions(t *testing.T) {
	f := newFixture(t)
	updates, cancel := f.runner.Subscribe()
	f.runner.Close()

	_, open := <-updates
	assert.False(t, open)
	assert.NotPanics(t, cancel)

	late, _ := f.runner.Subscribe()
	_, open = <-late
	assert.False(t, open)
}
