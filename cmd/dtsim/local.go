package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"deeptrader/internal/catalog"
	"deeptrader/internal/game"
	"deeptrader/internal/store"
)

func newNewCmd(a *app) *cobra.Command {
	var (
		force    bool
		language string
	)
	cmd := &cobra.Command{
		Use:   "new [NAME] [COUNTRY]",
		Short: "Start a new game in the current slot",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			st, e, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if !force {
				if _, err := st.Load(ctx, a.slot); err == nil {
					return fmt.Errorf("slot %q already holds a game; pass --force to replace it", a.slot)
				} else if !errors.Is(err, store.ErrNoSave) {
					return err
				}
			}

			var name, country string
			if len(args) > 0 {
				name = args[0]
			} else if name, err = promptRequired("Player name"); err != nil {
				return err
			}
			if len(args) > 1 {
				country = strings.ToUpper(args[1])
			} else {
				ids := countryIDs(e.Catalog())
				if country, err = promptChoice("Country", ids, ids[0]); err != nil {
					return err
				}
			}

			s, err := e.NewGame(name, country)
			if err != nil {
				return err
			}
			if language != "" {
				if s, err = e.Apply(s, game.SetLanguage{Language: language}); err != nil {
					return err
				}
			}
			if err := st.Save(ctx, a.slot, s); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("New game saved to slot %q.", a.slot))
			renderSummary(s.Summarize())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing game in the slot")
	cmd.Flags().StringVar(&language, "language", "", "interface language")
	return cmd
}

func countryIDs(cat *catalog.Catalog) []string {
	out := make([]string, 0, len(cat.Countries))
	for _, c := range cat.Countries {
		out = append(out, c.ID)
	}
	return out
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show cash, holdings, positions and debt",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withGame(cmd, func(e *game.Engine, s game.GameState) error {
				renderSummary(s.Summarize())
				renderPortfolio(s)

				p := s.Player
				accent.Println("Banking")
				fmt.Printf("Standard loan:  %s at %.2f%% (limit %s)\n", money(p.Loan.Amount), p.Loan.InterestRate*100, money(e.LoanLimit(s)))
				for _, v := range p.VentureLoans {
					fmt.Printf("Venture loan:   %s due %s\n", money(v.Principal), v.Deadline)
				}
				if p.RevivalLoan != nil {
					fmt.Printf("Revival loan:   %s outstanding\n", money(p.RevivalLoan.Outstanding))
				}
				if e.VentureEligible(s) {
					printInfo("Eligible for a venture loan.")
				}
				if len(p.PoliticalCapital) > 0 {
					fmt.Println()
					accent.Println("Political capital")
					ids := make([]string, 0, len(p.PoliticalCapital))
					for id := range p.PoliticalCapital {
						ids = append(ids, id)
					}
					sort.Strings(ids)
					for _, id := range ids {
						fmt.Printf("%-6s %s\n", id, humanize.Comma(int64(p.PoliticalCapital[id])))
					}
				}
				fmt.Println()
				return nil
			})
		},
	}
}

func newMarketCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "market",
		Short: "List every asset with its price and daily move",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter catalog.Category
			if category != "" {
				c, err := parseCategory(category)
				if err != nil {
					return err
				}
				filter = c
			}
			return a.withGame(cmd, func(_ *game.Engine, s game.GameState) error {
				assets := sortedAssets(s)
				if filter != "" {
					kept := assets[:0]
					for _, as := range assets {
						if as.Category == filter {
							kept = append(kept, as)
						}
					}
					assets = kept
				}
				accent.Printf("\n== MARKET %s ==\n", s.Date)
				renderMarket(assets, s.Player.Portfolio)
				fmt.Println()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only show one category")
	return cmd
}

func parseCategory(v string) (catalog.Category, error) {
	for _, c := range catalog.Categories() {
		if strings.EqualFold(string(c), strings.TrimSpace(v)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: category %q", game.ErrInvalidAction, v)
}

func newAssetCmd(a *app) *cobra.Command {
	var candles int
	cmd := &cobra.Command{
		Use:   "asset QUERY",
		Short: "Inspect one asset by ticker or partial name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withGame(cmd, func(_ *game.Engine, s game.GameState) error {
				as, err := resolveAsset(s, args[0])
				if err != nil {
					return err
				}
				accent.Printf("\n== %s  %s ==\n", as.ID, as.Name)
				fmt.Printf("Category:    %s\n", as.Category)
				fmt.Printf("Price:       %s (%s today)\n", money(as.Price), colorizePercent(as.Change()*100))
				fmt.Printf("Base price:  %s\n", money(as.BasePrice))
				fmt.Printf("Volatility:  %.4f\n", as.Volatility)
				for _, n := range []int{20, 50} {
					if v, ok := as.SMA(n); ok {
						fmt.Printf("SMA%-2d:       %s\n", n, money(v))
					}
				}
				var drivers []string
				for _, f := range game.Drivers(as, 3) {
					drivers = append(drivers, f.String())
				}
				if len(drivers) > 0 {
					fmt.Printf("Driven by:   %s\n", strings.Join(drivers, ", "))
				}
				switch {
				case as.Collapsed:
					printError("Collapsed: trading is closed.")
				case as.ResidencyLocked:
					printWarn("Only residents of a country listing it may trade this asset.")
				}

				history := as.History
				if len(history) > candles {
					history = history[len(history)-candles:]
				}
				if len(history) > 0 {
					fmt.Println()
					fmt.Printf("%-10s %12s %12s %12s %12s\n", "DATE", "OPEN", "HIGH", "LOW", "CLOSE")
					for _, c := range history {
						fmt.Printf("%-10s %12s %12s %12s %12s\n", c.Date, money(c.Open), money(c.High), money(c.Low), money(c.Close))
					}
				}
				fmt.Println()
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&candles, "candles", 10, "number of daily candles to show")
	return cmd
}

func newTradeCmd(a *app, side game.TradeSide) *cobra.Command {
	var price float64
	cmd := &cobra.Command{
		Use:   string(side) + " ASSET QTY",
		Short: "Spot " + string(side) + " at the current price",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := parseAmountArg(args, 1, "Quantity")
			if err != nil {
				return err
			}
			return a.apply(cmd, func(_ *game.Engine, s game.GameState) (game.Action, error) {
				as, err := resolveAsset(s, args[0])
				if err != nil {
					return nil, err
				}
				return game.SpotTrade{AssetID: as.ID, Side: side, Quantity: qty, Price: price}, nil
			}, nil)
		},
	}
	cmd.Flags().Float64Var(&price, "price", 0, "execution price; defaults to the market price")
	return cmd
}

func newMarginCmd(a *app) *cobra.Command {
	margin := &cobra.Command{
		Use:   "margin",
		Short: "Leveraged long and short positions",
	}

	var leverage, stop, take float64
	open := &cobra.Command{
		Use:       "open ASSET long|short QTY",
		Short:     "Open a margin position",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{string(game.Long), string(game.Short)},
		RunE: func(cmd *cobra.Command, args []string) error {
			side := game.PositionSide(strings.ToLower(args[1]))
			if side != game.Long && side != game.Short {
				return fmt.Errorf("side must be long or short, got %q", args[1])
			}
			qty, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			return a.apply(cmd, func(_ *game.Engine, s game.GameState) (game.Action, error) {
				as, err := resolveAsset(s, args[0])
				if err != nil {
					return nil, err
				}
				return game.OpenMarginPosition{
					AssetID:    as.ID,
					Side:       side,
					Quantity:   qty,
					Leverage:   leverage,
					StopLoss:   stop,
					TakeProfit: take,
				}, nil
			}, nil)
		},
	}
	open.Flags().Float64Var(&leverage, "leverage", 2, "leverage multiple")
	open.Flags().Float64Var(&stop, "stop-loss", 0, "stop-loss trigger price")
	open.Flags().Float64Var(&take, "take-profit", 0, "take-profit trigger price")

	var closing float64
	closeCmd := &cobra.Command{
		Use:   "close POSITION_ID",
		Short: "Close a margin position at the market price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.apply(cmd, func(_ *game.Engine, s game.GameState) (game.Action, error) {
				ids := make([]string, 0, len(s.Player.MarginPositions))
				for id := range s.Player.MarginPositions {
					ids = append(ids, id)
				}
				id, err := matchID(ids, args[0])
				if err != nil {
					return nil, fmt.Errorf("position: %w", err)
				}
				return game.CloseMarginPosition{PositionID: id, ClosingPrice: closing}, nil
			}, nil)
		},
	}
	closeCmd.Flags().Float64Var(&closing, "price", 0, "closing price; defaults to the market price")

	margin.AddCommand(open, closeCmd)
	return margin
}

// matchID resolves a full id or an unambiguous prefix of one.
func matchID(ids []string, q string) (string, error) {
	q = strings.TrimSpace(q)
	var found []string
	for _, id := range ids {
		if id == q {
			return id, nil
		}
		if q != "" && strings.HasPrefix(id, q) {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no id matches %q", q)
	case 1:
		return found[0], nil
	default:
		sort.Strings(found)
		return "", fmt.Errorf("%q is ambiguous: %s", q, strings.Join(found, ", "))
	}
}

func newOrderCmd(a *app) *cobra.Command {
	order := &cobra.Command{
		Use:   "order",
		Short: "Limit orders filled at day close",
	}

	place := &cobra.Command{
		Use:       "place ASSET buy-limit|sell-limit QTY LIMIT",
		Short:     "Place a pending limit order",
		Args:      cobra.ExactArgs(4),
		ValidArgs: []string{string(game.BuyLimit), string(game.SellLimit)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := game.OrderKind(strings.ToLower(args[1]))
			if kind != game.BuyLimit && kind != game.SellLimit {
				return fmt.Errorf("order type must be buy-limit or sell-limit, got %q", args[1])
			}
			qty, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			limit, err := parseAmount(args[3])
			if err != nil {
				return err
			}
			return a.apply(cmd, func(_ *game.Engine, s game.GameState) (game.Action, error) {
				as, err := resolveAsset(s, args[0])
				if err != nil {
					return nil, err
				}
				return game.PlacePendingOrder{AssetID: as.ID, Kind: kind, Quantity: qty, LimitPrice: limit}, nil
			}, nil)
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel ORDER_ID",
		Short: "Cancel a pending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.apply(cmd, func(_ *game.Engine, s game.GameState) (game.Action, error) {
				ids := make([]string, 0, len(s.Player.PendingOrders))
				for _, o := range s.Player.PendingOrders {
					ids = append(ids, o.ID)
				}
				id, err := matchID(ids, args[0])
				if err != nil {
					return nil, fmt.Errorf("order: %w", err)
				}
				return game.CancelPendingOrder{OrderID: id}, nil
			}, nil)
		},
	}

	order.AddCommand(place, cancel)
	return order
}

func newSkipCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "skip [DAYS]",
		Short: "Simulate whole days (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("days must be a positive whole number, got %q", args[0])
				}
				days = n
			}
			return a.dispatch(cmd, game.SkipDays{Days: days})
		},
	}
}

func newCompanyCmd(a *app) *cobra.Command {
	company := &cobra.Command{
		Use:     "company",
		Short:   "Companies that pay monthly income",
		Aliases: []string{"co"},
	}

	establish := &cobra.Command{
		Use:   "establish NAME TYPE",
		Short: "Found a company in your country of residence",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(cmd, game.EstablishCompany{
				Name:        args[0],
				CompanyType: catalog.CompanyType(strings.ToLower(args[1])),
			})
		},
	}

	upgrade := &cobra.Command{
		Use:   "upgrade COMPANY",
		Short: "Raise a company one level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.apply(cmd, func(_ *game.Engine, s game.GameState) (game.Action, error) {
				id, err := companyID(s, args[0])
				if err != nil {
					return nil, err
				}
				return game.UpgradeCompany{CompanyID: id}, nil
			}, nil)
		},
	}

	action := &cobra.Command{
		Use:       "action COMPANY marketing|research|lobbying",
		Short:     "Run a corporate action",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(game.Marketing), string(game.Research), string(game.Lobbying)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := game.CorporateActionKind(strings.ToLower(args[1]))
			return a.apply(cmd, func(_ *game.Engine, s game.GameState) (game.Action, error) {
				id, err := companyID(s, args[0])
				if err != nil {
					return nil, err
				}
				return game.ExecuteCorporateAction{CompanyID: id, Kind: kind}, nil
			}, nil)
		},
	}

	types := &cobra.Command{
		Use:   "types",
		Short: "List company types with cost and income",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			cat := e.Catalog()
			fmt.Printf("%-12s %14s %14s\n", "TYPE", "COST", "INCOME/MO")
			for _, t := range cat.CompanyTypeNames() {
				d, _ := cat.Company(t)
				fmt.Printf("%-12s %14s %14s\n", t, money(d.BaseCost), money(d.BaseIncome))
			}
			return nil
		},
	}

	company.AddCommand(establish, upgrade, action, types)
	return company
}

// companyID accepts a company name (case-insensitive) or an id prefix.
func companyID(s game.GameState, q string) (string, error) {
	ids := make([]string, 0, len(s.Player.Companies))
	for _, c := range s.Player.Companies {
		if strings.EqualFold(c.Name, q) {
			return c.ID, nil
		}
		ids = append(ids, c.ID)
	}
	id, err := matchID(ids, q)
	if err != nil {
		return "", fmt.Errorf("company: %w", err)
	}
	return id, nil
}

func newLoanCmd(a *app) *cobra.Command {
	loan := &cobra.Command{
		Use:   "loan",
		Short: "Standard, venture and revival loans",
	}

	take := &cobra.Command{
		Use:   "take AMOUNT",
		Short: "Borrow against the standard facility",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmountArg(args, 0, "Amount")
			if err != nil {
				return err
			}
			return a.dispatch(cmd, game.TakeLoan{Amount: amount})
		},
	}

	var facility string
	repay := &cobra.Command{
		Use:   "repay AMOUNT",
		Short: "Repay principal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmountArg(args, 0, "Amount")
			if err != nil {
				return err
			}
			return a.dispatch(cmd, game.RepayLoan{Amount: amount, Facility: game.Facility(facility)})
		},
	}
	repay.Flags().StringVar(&facility, "facility", string(game.FacilityStandard), "standard or revival")

	deferCmd := &cobra.Command{
		Use:   "defer",
		Short: "Skip this month's interest payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(cmd, game.DeferLoanPayment{})
		},
	}

	venture := &cobra.Command{
		Use:   "venture AMOUNT",
		Short: "Take a venture loan tied to founding a company",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmountArg(args, 0, "Amount")
			if err != nil {
				return err
			}
			return a.dispatch(cmd, game.TakeVentureLoan{Amount: amount})
		},
	}

	revival := &cobra.Command{
		Use:   "revival",
		Short: "Take the revival loan during a grace period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(cmd, game.TakeRevivalLoan{})
		},
	}

	penalty := &cobra.Command{
		Use:       "penalty fine|ban",
		Short:     "Settle a defaulted loan",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(game.PenaltyFine), string(game.PenaltyBan)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(cmd, game.ChoosePenalty{Kind: game.PenaltyKind(strings.ToLower(args[0]))})
		},
	}

	loan.AddCommand(take, repay, deferCmd, venture, revival, penalty)
	return loan
}

func newPoliticsCmd(a *app) *cobra.Command {
	politics := &cobra.Command{
		Use:   "politics",
		Short: "Residency, donations, lobbying and global influence",
	}

	move := &cobra.Command{
		Use:   "move COUNTRY",
		Short: "Change country of residence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(cmd, game.ChangeResidency{CountryID: strings.ToUpper(args[0])})
		},
	}

	donate := &cobra.Command{
		Use:   "donate PARTY AMOUNT",
		Short: "Donate to a party in your country for political capital",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmountArg(args, 1, "Amount")
			if err != nil {
				return err
			}
			return a.dispatch(cmd, game.Donate{PartyID: args[0], Amount: amount})
		},
	}

	lobby := &cobra.Command{
		Use:   "lobby CATEGORY",
		Short: "Spend political capital to favour an industry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCategory(args[0])
			if err != nil {
				return err
			}
			return a.dispatch(cmd, game.LobbyIndustry{Category: c})
		},
	}

	influence := &cobra.Command{
		Use:   "influence FACTOR promote|disrupt",
		Short: "Push a global factor up or down",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := catalog.ParseFactor(args[0])
			if err != nil {
				return err
			}
			return a.dispatch(cmd, game.GlobalInfluence{
				Factor:    f,
				Direction: game.InfluenceDirection(strings.ToLower(args[1])),
			})
		},
	}

	parties := &cobra.Command{
		Use:   "parties",
		Short: "List the parties of your country of residence",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withGame(cmd, func(e *game.Engine, s game.GameState) error {
				country, ok := e.Catalog().Country(s.Player.Residency)
				if !ok {
					return game.ErrUnknownCountry
				}
				accent.Printf("\n== %s ==\n", country.Name)
				for _, p := range country.Parties {
					fmt.Printf("%-14s %s\n", p.ID, p.Name)
				}
				fmt.Println()
				return nil
			})
		},
	}

	politics.AddCommand(move, donate, lobby, influence, parties)
	return politics
}

func newAnalystCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "analyst ASSET prediction|analysis",
		Short:     "Buy an analyst report",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(game.ReportPrediction), string(game.ReportAnalysis)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := game.ReportKind(strings.ToLower(args[1]))
			return a.apply(cmd, func(_ *game.Engine, s game.GameState) (game.Action, error) {
				as, err := resolveAsset(s, args[0])
				if err != nil {
					return nil, err
				}
				return game.BuyAnalystReport{AssetID: as.ID, Kind: kind}, nil
			}, func(s game.GameState) {
				if n := len(s.Player.Log); n > 0 {
					accent.Println("\nReport")
					renderLogEntry(s.Player.Log[n-1])
				}
			})
		},
	}
}

func newNewsCmd(a *app) *cobra.Command {
	var archive bool
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Show the news ticker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withGame(cmd, func(_ *game.Engine, s game.GameState) error {
				items := s.NewsTicker
				if archive {
					items = s.NewsArchive
				}
				if len(items) == 0 {
					printInfo("No news.")
					return nil
				}
				for _, n := range items {
					line := fmt.Sprintf("%-14s %s", n.Source, n.Key)
					if asset, ok := n.Params["asset"]; ok {
						line += fmt.Sprintf(" [%v]", asset)
					}
					if n.Major {
						warn.Println(line)
						continue
					}
					fmt.Println(line)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&archive, "archive", false, "show the archive instead of the ticker")
	return cmd
}

func newLogCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent game log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withGame(cmd, func(_ *game.Engine, s game.GameState) error {
				entries := s.Player.Log
				if limit > 0 && len(entries) > limit {
					entries = entries[len(entries)-limit:]
				}
				if len(entries) == 0 {
					printInfo("Log is empty.")
					return nil
				}
				for _, e := range entries {
					renderLogEntry(e)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries")
	return cmd
}

func newEventCmd(a *app) *cobra.Command {
	event := &cobra.Command{
		Use:   "event",
		Short: "Major world events",
	}
	event.AddCommand(&cobra.Command{
		Use:   "dismiss",
		Short: "Acknowledge the current major event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dispatch(cmd, game.DismissMajorEvent{})
		},
	})
	return event
}

func newSlotsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List saved games",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			st, err := store.Open(ctx, a.storeURL)
			if err != nil {
				return err
			}
			defer st.Close()
			list, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printInfo("No saved games.")
				return nil
			}
			fmt.Printf("%-28s %-12s %s\n", "SLOT", "GAME DATE", "SAVED")
			for _, info := range list {
				date := info.Date
				if date == "" {
					date = danger.Sprint("unreadable")
				}
				fmt.Printf("%-28s %-12s %s\n", info.Slot, date, humanize.Time(info.UpdatedAt))
			}
			return nil
		},
	}
}
