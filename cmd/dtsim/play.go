package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"deeptrader/internal/session"
	"deeptrader/internal/store"
	"deeptrader/internal/tui"
)

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Run the current slot in real time in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("play needs an interactive terminal; use skip for headless runs")
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			st, e, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			// the alt screen owns stdout, so session logs go nowhere
			quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
			runner, err := session.Load(ctx, e, session.Options{
				Slot:   a.slot,
				Store:  st,
				Logger: quiet,
			})
			if errors.Is(err, store.ErrNoSave) {
				return fmt.Errorf("no game in slot %q; start one with `dtsim new`", a.slot)
			}
			if err != nil {
				return err
			}
			defer runner.Close()

			done := make(chan error, 1)
			go func() { done <- runner.Run(ctx) }()

			_, uiErr := tea.NewProgram(tui.New(runner), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			cancel()
			if err := <-done; err != nil {
				return fmt.Errorf("final save: %w", err)
			}
			if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
				return uiErr
			}
			printSuccess(fmt.Sprintf("Saved slot %q at %s.", a.slot, runner.Summary().Date))
			return nil
		},
	}
}
