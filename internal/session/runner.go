// Package session drives one game in real time on behalf of a host.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"deeptrader/internal/game"
	"deeptrader/internal/observability"
	"deeptrader/internal/store"
)

const (
	DefaultFrameEvery    = 100 * time.Millisecond
	DefaultAutosaveEvery = 30 * time.Second

	subscriberBuffer = 16
	flushTimeout     = 5 * time.Second
)

type Options struct {
	Slot          string
	Store         store.Store
	Metrics       *observability.Metrics
	Logger        *slog.Logger
	FrameEvery    time.Duration
	AutosaveEvery time.Duration
}

// Runner owns one GameState. Every transition goes through the engine while
// holding mu, so actions from the frame loop and from callers never interleave.
type Runner struct {
	engine  *game.Engine
	opts    Options
	log     *slog.Logger
	metrics *observability.Metrics

	mu    sync.Mutex
	state game.GameState

	subMu  sync.Mutex
	subs   map[int]chan game.Summary
	nextID int
	closed bool
}

func New(engine *game.Engine, state game.GameState, opts Options) *Runner {
	if opts.FrameEvery <= 0 {
		opts.FrameEvery = DefaultFrameEvery
	}
	if opts.AutosaveEvery <= 0 {
		opts.AutosaveEvery = DefaultAutosaveEvery
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		engine:  engine,
		opts:    opts,
		log:     logger.With("slot", opts.Slot),
		metrics: opts.Metrics,
		state:   state,
		subs:    make(map[int]chan game.Summary),
	}
}

// Load restores opts.Slot from opts.Store. The save is re-validated against
// the engine's tuning through LOAD_STATE.
func Load(ctx context.Context, engine *game.Engine, opts Options) (*Runner, error) {
	if opts.Store == nil {
		return nil, errors.New("session load needs a store")
	}
	saved, err := opts.Store.Load(ctx, opts.Slot)
	if err != nil {
		return nil, err
	}
	state, err := engine.Apply(engine.InitialState(), game.LoadState{State: saved})
	if err != nil {
		return nil, fmt.Errorf("%w: slot %s: %v", store.ErrNoSave, opts.Slot, err)
	}
	return New(engine, state, opts), nil
}

func (r *Runner) Slot() string { return r.opts.Slot }

// State returns a deep copy of the current state.
func (r *Runner) State() game.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Clone()
}

func (r *Runner) Summary() game.Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Summarize()
}

// Apply dispatches one action. On rejection the state is untouched and the
// summary of the current state comes back with the error.
func (r *Runner) Apply(a game.Action) (game.Summary, error) {
	r.mu.Lock()
	sum, changed, err := r.applyLocked(a)
	r.mu.Unlock()
	if changed {
		r.publish(sum)
	}
	return sum, err
}

// Step runs one frame: TICK with the measured delta, then ADVANCE_DAY once the
// day has fully elapsed.
func (r *Runner) Step(delta time.Duration) error {
	r.mu.Lock()
	sum, changed, err := r.applyLocked(game.Tick{DeltaMS: float64(delta) / float64(time.Millisecond)})
	if err == nil && r.dayDue() {
		var advanced bool
		sum, advanced, err = r.applyLocked(game.AdvanceDay{})
		changed = changed || advanced
	}
	r.mu.Unlock()
	if changed {
		r.publish(sum)
	}
	return err
}

func (r *Runner) dayDue() bool {
	s := r.state
	return s.Date.DayProgress >= 1 && !s.Paused && !s.Simulating && !s.GameOver()
}

func (r *Runner) applyLocked(a game.Action) (game.Summary, bool, error) {
	if a == nil {
		return r.state.Summarize(), false, game.ErrInvalidAction
	}
	before, wasOver := r.state.Date, r.state.GameOver()
	next, err := r.engine.Apply(r.state, a)
	r.metrics.ObserveAction(string(a.Type()), err)
	if err != nil {
		return r.state.Summarize(), false, err
	}
	r.state = next
	switch a.(type) {
	case game.AdvanceDay, game.SkipDays:
		r.metrics.AddDays(daysBetween(before, next.Date))
	}
	if next.GameOver() && !wasOver {
		r.log.Info("game over", "reason", next.Player.GameOverReason, "date", next.Date.String())
	}
	return next.Summarize(), true, nil
}

func daysBetween(from, to game.GameDate) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}

// Subscribe returns a channel of summaries sent after every applied
// transition. Slow readers miss summaries rather than block the game. The
// cancel func is idempotent.
func (r *Runner) Subscribe() (<-chan game.Summary, func()) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	ch := make(chan game.Summary, subscriberBuffer)
	if r.closed {
		close(ch)
		return ch, func() {}
	}
	id := r.nextID
	r.nextID++
	r.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.subMu.Lock()
			defer r.subMu.Unlock()
			if c, ok := r.subs[id]; ok {
				delete(r.subs, id)
				close(c)
			}
		})
	}
}

func (r *Runner) publish(sum game.Summary) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	for _, ch := range r.subs {
		select {
		case ch <- sum:
		default:
		}
	}
}

// Close ends every subscription. The runner still accepts actions.
func (r *Runner) Close() {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	for id, ch := range r.subs {
		delete(r.subs, id)
		close(ch)
	}
}

// Save writes the current state to the store.
func (r *Runner) Save(ctx context.Context) error {
	if r.opts.Store == nil {
		return errors.New("session has no store")
	}
	snapshot := r.State()
	started := time.Now()
	err := r.opts.Store.Save(ctx, r.opts.Slot, snapshot)
	r.metrics.ObserveSave(time.Since(started).Seconds(), err)
	if err != nil {
		return err
	}
	r.log.Debug("saved", "date", snapshot.Date.String())
	return nil
}

// autosave only writes a running, named game that is not over.
func (r *Runner) autosave(ctx context.Context) (bool, error) {
	r.mu.Lock()
	s := r.state
	skip := s.Paused || !s.Started() || s.GameOver()
	r.mu.Unlock()
	if skip || r.opts.Store == nil {
		return false, nil
	}
	return true, r.Save(ctx)
}

// Run drives the game until ctx is done, then writes a final save of a
// started game.
func (r *Runner) Run(ctx context.Context) error {
	r.metrics.SessionStarted()
	defer r.metrics.SessionStopped()

	frames := time.NewTicker(r.opts.FrameEvery)
	defer frames.Stop()
	saves := time.NewTicker(r.opts.AutosaveEvery)
	defer saves.Stop()

	r.log.Info("session started", "frame_every", r.opts.FrameEvery.String())
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return r.flush()
		case now := <-frames.C:
			delta := now.Sub(last)
			last = now
			if err := r.Step(delta); err != nil {
				r.log.Warn("frame rejected", "err", err)
			}
		case <-saves.C:
			if _, err := r.autosave(ctx); err != nil {
				r.log.Error("autosave failed", "err", err)
			}
		}
	}
}

func (r *Runner) flush() error {
	if r.opts.Store == nil || !r.State().Started() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := r.Save(ctx); err != nil {
		r.log.Error("final save failed", "err", err)
		return err
	}
	r.log.Info("session stopped")
	return nil
}
