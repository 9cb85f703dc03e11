package api

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"deeptrader/internal/session"
)

// live is a runner with its frame loop goroutine.
type live struct {
	runner *session.Runner
	cancel context.CancelFunc
	done   chan struct{}
}

func (l *live) stop() {
	l.cancel()
	<-l.done
	l.runner.Close()
}

// sessions keeps the most recently used runners going. An evicted runner is
// stopped, which writes its final save.
type sessions struct {
	mu    sync.Mutex
	cache *lru.Cache
	log   *slog.Logger
}

func newSessions(size int, logger *slog.Logger) (*sessions, error) {
	if size <= 0 {
		size = 64
	}
	cache, err := lru.NewWithEvict(size, func(key, value interface{}) {
		value.(*live).stop()
		logger.Debug("session evicted", "slot", key)
	})
	if err != nil {
		return nil, fmt.Errorf("session cache: %w", err)
	}
	return &sessions{cache: cache, log: logger}, nil
}

// get returns the live runner for slot, starting one from load on a miss.
func (s *sessions) get(ctx context.Context, slot string, load func() (*session.Runner, error)) (*session.Runner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.cache.Get(slot); ok {
		return v.(*live).runner, nil
	}
	runner, err := load()
	if err != nil {
		return nil, err
	}
	s.startLocked(ctx, runner)
	return runner, nil
}

func (s *sessions) add(ctx context.Context, runner *session.Runner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startLocked(ctx, runner)
}

func (s *sessions) startLocked(ctx context.Context, runner *session.Runner) {
	if s.cache.Contains(runner.Slot()) {
		s.cache.Remove(runner.Slot())
	}
	runCtx, cancel := context.WithCancel(ctx)
	l := &live{runner: runner, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(l.done)
		if err := runner.Run(runCtx); err != nil {
			s.log.Error("session ended with error", "slot", runner.Slot(), "err", err)
		}
	}()
	s.cache.Add(runner.Slot(), l)
}

func (s *sessions) remove(slot string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(slot)
}

func (s *sessions) slots() []string {
	keys := s.cache.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.(string))
	}
	sort.Strings(out)
	return out
}

func (s *sessions) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
}
