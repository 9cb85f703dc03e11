package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"deeptrader/internal/catalog"
	"deeptrader/internal/config"
	"deeptrader/internal/game"
	"deeptrader/internal/store"
)

const commandTimeout = 30 * time.Second

func main() {
	cfg := config.LoadCLIFromEnv()
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:          "dtsim",
		Short:        "Deep trading simulator",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.storeURL, "store", cfg.StoreURL, "save store url (file://, sqlite://, postgres://, memory://)")
	root.PersistentFlags().StringVar(&a.slot, "slot", game.DefaultSlot, "save slot")
	root.PersistentFlags().StringVar(&a.tuning, "tuning", cfg.TuningFile, "tuning override file (.yaml or .toml)")
	root.PersistentFlags().Int64Var(&a.seed, "seed", 0, "random seed; 0 seeds from the clock")

	root.AddCommand(
		newNewCmd(a),
		newStatusCmd(a),
		newMarketCmd(a),
		newAssetCmd(a),
		newTradeCmd(a, game.Buy),
		newTradeCmd(a, game.Sell),
		newMarginCmd(a),
		newOrderCmd(a),
		newSkipCmd(a),
		newCompanyCmd(a),
		newLoanCmd(a),
		newPoliticsCmd(a),
		newAnalystCmd(a),
		newNewsCmd(a),
		newLogCmd(a),
		newEventCmd(a),
		newSlotsCmd(a),
		newPlayCmd(a),
		newRemoteCmd(a),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the flags every local command shares.
type app struct {
	cfg      config.CLIConfig
	storeURL string
	slot     string
	tuning   string
	seed     int64
}

func (a *app) engine() (*game.Engine, error) {
	tuning, err := config.LoadTuning(a.tuning)
	if err != nil {
		return nil, err
	}
	rnd := game.NewTimeRand()
	if a.seed != 0 {
		rnd = game.NewSeededRand(a.seed)
	}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return game.NewEngine(catalog.Default(), tuning, rnd, game.NewUUIDs(), quiet), nil
}

func (a *app) open(ctx context.Context) (store.Store, *game.Engine, error) {
	e, err := a.engine()
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(ctx, a.storeURL)
	if err != nil {
		return nil, nil, err
	}
	return st, e, nil
}

// load opens the store and reads the current slot. The caller closes the store.
func (a *app) load(ctx context.Context) (store.Store, *game.Engine, game.GameState, error) {
	st, e, err := a.open(ctx)
	if err != nil {
		return nil, nil, game.GameState{}, err
	}
	s, err := st.Load(ctx, a.slot)
	if err != nil {
		st.Close()
		if errors.Is(err, store.ErrNoSave) {
			return nil, nil, game.GameState{}, fmt.Errorf("no game in slot %q; start one with `dtsim new`", a.slot)
		}
		return nil, nil, game.GameState{}, err
	}
	return st, e, s, nil
}

// withGame hands the current slot to a read-only command.
func (a *app) withGame(cmd *cobra.Command, fn func(e *game.Engine, s game.GameState) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()
	st, e, s, err := a.load(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(e, s)
}

// dispatch applies one action to the saved game, persists the result and
// prints the new summary. Rejected actions leave the save untouched.
func (a *app) dispatch(cmd *cobra.Command, act game.Action) error {
	return a.apply(cmd, func(*game.Engine, game.GameState) (game.Action, error) { return act, nil }, nil)
}

// apply is dispatch for actions that need the loaded state to be built, with
// an optional hook that sees the resulting state before the summary prints.
func (a *app) apply(cmd *cobra.Command, build func(e *game.Engine, s game.GameState) (game.Action, error), after func(game.GameState)) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()
	st, e, s, err := a.load(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	act, err := build(e, s)
	if err != nil {
		return err
	}
	next, err := e.Apply(s, act)
	if err != nil {
		return fmt.Errorf("%s rejected: %w", act.Type(), err)
	}
	if err := st.Save(ctx, a.slot, next); err != nil {
		return err
	}
	if after != nil {
		after(next)
	}
	renderSummary(next.Summarize())
	return nil
}
