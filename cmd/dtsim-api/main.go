package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"deeptrader/internal/api"
	"deeptrader/internal/catalog"
	"deeptrader/internal/config"
	"deeptrader/internal/game"
	"deeptrader/internal/observability"
	"deeptrader/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPIFromEnv()
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

	rnd := game.NewTimeRand()
	if cfg.Seed != 0 {
		rnd = game.NewSeededRand(cfg.Seed)
	}
	engine := game.NewEngine(catalog.Default(), tuning, rnd, game.NewUUIDs(), logger)
	metrics := observability.NewMetrics("", nil)

	server, err := api.New(cfg, logger, engine, st, metrics)
	if err != nil {
		logger.Error("api init failed", "err", err)
		os.Exit(1)
	}
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("dtsim api listening", "addr", cfg.Addr, "store", storeScheme(cfg.StoreURL))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		server.Close()
		os.Exit(1)
	}
	// live sessions write their final saves before the store closes
	server.Close()
	logger.Info("dtsim api stopped")
}

// storeScheme keeps credentials in a postgres url out of the logs.
func storeScheme(url string) string {
	scheme, _, ok := strings.Cut(url, "://")
	if !ok {
		return "unknown"
	}
	return scheme
}
