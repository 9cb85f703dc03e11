package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"deeptrader/internal/catalog"
	"deeptrader/internal/config"
	"deeptrader/internal/game"
	"deeptrader/internal/session"
	"deeptrader/internal/store"
)

const maxParallelSlots = 4

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWorkerFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		logger.Error("load tuning", "err", err)
		os.Exit(1)
	}
	st, err := store.Open(ctx, cfg.StoreURL)
	if err != nil {
		logger.Error("open store failed", "err", err)
		os.Exit(1)
	}
	defer st.Close()

	engine := game.NewEngine(catalog.Default(), tuning, game.NewTimeRand(), game.NewUUIDs(), logger)
	w := &worker{engine: engine, store: st, log: logger, days: cfg.Days}

	if cfg.RunOnce {
		if err := w.runBatch(ctx, cfg.Slots); err != nil {
			logger.Error("batch failed", "err", err)
			os.Exit(1)
		}
		logger.Info("worker run-once completed")
		return
	}

	ticker := time.NewTicker(cfg.Every)
	defer ticker.Stop()

	logger.Info("worker started", "every", cfg.Every.String(), "days", cfg.Days, "slots", len(cfg.Slots))
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker shutdown")
			return
		case <-ticker.C:
			if err := w.runBatch(ctx, cfg.Slots); err != nil {
				logger.Error("batch failed", "err", err)
				continue
			}
			logger.Info("batch complete", "slots", len(cfg.Slots))
		}
	}
}

type worker struct {
	engine *game.Engine
	store  store.Store
	log    *slog.Logger
	days   int
}

// runBatch advances every slot concurrently. Only store failures fail the
// batch; a slot that is missing or whose game has ended is skipped.
func (w *worker) runBatch(ctx context.Context, slots []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelSlots)
	for _, slot := range slots {
		g.Go(func() error {
			return w.advance(ctx, slot)
		})
	}
	return g.Wait()
}

func (w *worker) advance(ctx context.Context, slot string) error {
	log := w.log.With("slot", slot)
	runner, err := session.Load(ctx, w.engine, session.Options{Slot: slot, Store: w.store, Logger: w.log})
	if errors.Is(err, store.ErrNoSave) {
		log.Warn("slot skipped", "err", err)
		return nil
	}
	if err != nil {
		return err
	}
	defer runner.Close()

	before := runner.Summary().Date
	sum, err := runner.Apply(game.SkipDays{Days: w.days})
	switch {
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrNotStarted):
		log.Info("slot idle", "reason", err.Error())
		return nil
	case err != nil:
		log.Warn("skip rejected", "err", err)
		return nil
	}
	if err := runner.Save(ctx); err != nil {
		return err
	}
	log.Info("slot advanced", "from", before.String(), "to", sum.Date.String(), "net_worth", sum.NetWorth)
	return nil
}
