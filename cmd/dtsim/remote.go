package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	cl "deeptrader/internal/cli"
	"deeptrader/internal/game"
)

func newRemoteCmd(a *app) *cobra.Command {
	remote := &cobra.Command{
		Use:   "remote",
		Short: "Drive a game hosted by dtsim-api",
	}
	remote.AddCommand(
		newRemoteLoginCmd(a),
		newRemoteLogoutCmd(a),
		newRemoteNewCmd(a),
		newRemoteStatusCmd(a),
		newRemoteDispatchCmd(a),
		newRemoteSaveCmd(a),
		newRemoteSlotsCmd(a),
	)
	return remote
}

// remoteProfile returns the saved profile, falling back to the environment
// when none has been saved yet. An explicit --slot wins over the profile.
func (a *app) remoteProfile(cmd *cobra.Command) (cl.Profile, error) {
	p, err := cl.LoadProfile(a.cfg.ProfilePath)
	if errors.Is(err, cl.ErrNoProfile) {
		p = cl.Profile{APIBaseURL: a.cfg.APIBaseURL, Token: a.cfg.APIToken}
	} else if err != nil {
		return p, err
	}
	if p.Slot == "" || cmd.Flags().Changed("slot") {
		p.Slot = a.slot
	}
	return p, nil
}

func newRemoteLoginCmd(a *app) *cobra.Command {
	var api, token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Remember an API base url, token and slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := cl.Profile{
				APIBaseURL: strings.TrimRight(strings.TrimSpace(api), "/"),
				Token:      strings.TrimSpace(token),
				Slot:       a.slot,
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			if err := cl.NewClient(p.APIBaseURL, p.Token).Health(ctx); err != nil {
				return fmt.Errorf("api at %s is not reachable: %w", p.APIBaseURL, err)
			}
			if err := cl.SaveProfile(a.cfg.ProfilePath, p); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Profile saved: %s slot %q.", p.APIBaseURL, p.Slot))
			return nil
		},
	}
	cmd.Flags().StringVar(&api, "api", a.cfg.APIBaseURL, "API base url")
	cmd.Flags().StringVar(&token, "token", a.cfg.APIToken, "bearer token")
	return cmd
}

func newRemoteLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved API profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearProfile(a.cfg.ProfilePath); err != nil {
				return err
			}
			printSuccess("Profile cleared.")
			return nil
		},
	}
}

func newRemoteNewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new NAME COUNTRY",
		Short: "Start a hosted game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.remoteProfile(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			sum, err := cl.NewClient(p.APIBaseURL, p.Token).NewGame(ctx, p.Slot, args[0], strings.ToUpper(args[1]))
			if err != nil {
				return err
			}
			renderSummary(sum)
			return nil
		},
	}
}

func newRemoteStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the hosted game's summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.remoteProfile(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			sum, err := cl.NewClient(p.APIBaseURL, p.Token).Summary(ctx, p.Slot)
			if err != nil {
				return err
			}
			renderSummary(sum)
			return nil
		},
	}
}

func newRemoteDispatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch TYPE [PAYLOAD_JSON]",
		Short: "Send one action to the hosted game",
		Long:  "Send one action, e.g. `dtsim remote dispatch SPOT_TRADE '{\"asset_id\":\"AAPL\",\"side\":\"buy\",\"quantity\":5}'`.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			act, err := actionFromArgs(args)
			if err != nil {
				return err
			}
			p, err := a.remoteProfile(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			sum, err := cl.NewClient(p.APIBaseURL, p.Token).Dispatch(ctx, p.Slot, act)
			if err != nil {
				return err
			}
			renderSummary(sum)
			return nil
		},
	}
}

// actionFromArgs decodes TYPE and an optional JSON payload with the same
// decoder the API uses, so bad input fails before any request is made.
func actionFromArgs(args []string) (game.Action, error) {
	env := game.Envelope{Type: game.ActionType(strings.ToUpper(strings.TrimSpace(args[0])))}
	if len(args) > 1 {
		payload := strings.TrimSpace(args[1])
		if !json.Valid([]byte(payload)) {
			return nil, fmt.Errorf("%w: payload is not valid json", game.ErrInvalidAction)
		}
		env.Payload = json.RawMessage(payload)
	}
	return env.Decode()
}

func newRemoteSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Ask the API to persist the hosted game now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.remoteProfile(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			if err := cl.NewClient(p.APIBaseURL, p.Token).Save(ctx, p.Slot); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Slot %q saved.", p.Slot))
			return nil
		},
	}
}

func newRemoteSlotsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List games saved by the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.remoteProfile(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			list, err := cl.NewClient(p.APIBaseURL, p.Token).ListGames(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printInfo("No saved games.")
				return nil
			}
			for _, info := range list {
				fmt.Printf("%-28s %-12s %s\n", info.Slot, info.Date, humanize.Time(info.UpdatedAt))
			}
			return nil
		},
	}
}
