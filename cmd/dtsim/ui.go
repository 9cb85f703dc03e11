package main

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/sahilm/fuzzy"

	"deeptrader/internal/game"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]string, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = opt
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if opt, ok := normalized[text]; ok {
			return opt, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

var errBadAmount = errors.New("amount must be a positive number such as 2500, 1,500, 10k or 2.5m")

// parseAmount reads a positive amount. Thousands separators and a k/m/b
// suffix are accepted.
func parseAmount(text string) (float64, error) {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "$"))
	text = strings.ReplaceAll(text, ",", "")
	if text == "" {
		return 0, errBadAmount
	}
	// SI prefixes: lowercase m is milli, so money suffixes are mapped first.
	switch text[len(text)-1] {
	case 'm':
		text = text[:len(text)-1] + "M"
	case 'K':
		text = text[:len(text)-1] + "k"
	case 'b', 'B':
		text = text[:len(text)-1] + "G"
	}
	v, unit, err := humanize.ParseSI(text)
	if err != nil || unit != "" || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, errBadAmount
	}
	return v, nil
}

func parseAmountArg(args []string, i int, label string) (float64, error) {
	if i < len(args) {
		return parseAmount(args[i])
	}
	text, err := promptRequired(label)
	if err != nil {
		return 0, err
	}
	return parseAmount(text)
}

// assetItems implements fuzzy.Source over "ID name" strings.
type assetItems []game.Asset

func (items assetItems) Len() int { return len(items) }

func (items assetItems) String(i int) string {
	return strings.ToLower(items[i].ID + " " + items[i].Name)
}

func sortedAssets(s game.GameState) []game.Asset {
	out := make([]game.Asset, 0, len(s.Assets))
	for _, a := range s.Assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// resolveAsset maps a ticker or a partial name to an asset. An exact ticker
// always wins; otherwise the best fuzzy match is taken.
func resolveAsset(s game.GameState, query string) (game.Asset, error) {
	q := strings.TrimSpace(query)
	if a, ok := s.Assets[strings.ToUpper(q)]; ok {
		return a, nil
	}
	items := assetItems(sortedAssets(s))
	matches := fuzzy.FindFrom(strings.ToLower(q), items)
	if len(matches) == 0 {
		return game.Asset{}, fmt.Errorf("%w: no asset matches %q", game.ErrUnknownAsset, query)
	}
	return items[matches[0].Index], nil
}

func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func colorizeMoney(v float64) string {
	text := money(v)
	if v > 0 {
		text = "+" + text
	}
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func colorizePercent(v float64) string {
	text := fmt.Sprintf("%+.2f%%", v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func quantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func renderSummary(sum game.Summary) {
	accent.Printf("\n== %s  %s ==\n", sum.Player, sum.Date)
	fmt.Printf("Residency:      %s\n", sum.Residency)
	fmt.Printf("Cash:           %s\n", money(sum.Cash))
	fmt.Printf("Portfolio:      %s\n", money(sum.PortfolioValue))
	fmt.Printf("Margin equity:  %s\n", money(sum.MarginEquity))
	fmt.Printf("Net worth:      %s\n", colorizeMoney(sum.NetWorth))
	fmt.Printf("Debt:           %s\n", money(sum.Debt))
	fmt.Printf("Positions: %d  Orders: %d  Companies: %d\n", sum.Positions, sum.Orders, sum.Companies)

	switch sum.Bankruptcy {
	case game.BankruptcyGrace:
		if sum.GraceExpiry != nil {
			printWarn(fmt.Sprintf("Grace period: recover before %s.", sum.GraceExpiry))
		}
	case game.BankruptcyRevival:
		printWarn("Revival loan outstanding.")
	case game.BankruptcyGameOver:
		printError(fmt.Sprintf("GAME OVER (%s).", sum.GameOverReason))
	}
	if sum.Penalty != nil {
		printWarn(fmt.Sprintf("Loan default of %s: choose a penalty with `dtsim loan penalty fine|ban`.", money(sum.Penalty.LoanAmount)))
	}
	if sum.MajorEvent != nil {
		printWarn(fmt.Sprintf("Major event: %s (dismiss with `dtsim event dismiss`).", sum.MajorEvent.TitleKey))
	}
	fmt.Println()
}

func renderPortfolio(s game.GameState) {
	p := s.Player
	accent.Println("Holdings")
	if len(p.Portfolio) == 0 {
		printInfo("No holdings yet.")
	} else {
		ids := make([]string, 0, len(p.Portfolio))
		for id := range p.Portfolio {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Printf("%-8s %12s %14s %14s %14s\n", "ASSET", "QTY", "COST", "NOW", "P/L")
		for _, id := range ids {
			item := p.Portfolio[id]
			price := s.Assets[id].Price
			fmt.Printf("%-8s %12s %14s %14s %14s\n",
				id,
				quantity(item.Quantity),
				money(item.CostBasis),
				money(price),
				colorizeMoney((price-item.CostBasis)*item.Quantity),
			)
		}
	}

	fmt.Println()
	accent.Println("Margin positions")
	if len(p.MarginPositions) == 0 {
		printInfo("No open positions.")
	} else {
		ids := make([]string, 0, len(p.MarginPositions))
		for id := range p.MarginPositions {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Printf("%-12s %-8s %-6s %10s %8s %14s %14s\n", "ID", "ASSET", "SIDE", "QTY", "LEV", "ENTRY", "P/L")
		for _, id := range ids {
			pos := p.MarginPositions[id]
			fmt.Printf("%-12s %-8s %-6s %10s %8s %14s %14s\n",
				truncate(pos.ID, 12),
				pos.AssetID,
				pos.Side,
				quantity(pos.Quantity),
				quantity(pos.Leverage)+"x",
				money(pos.EntryPrice),
				colorizeMoney(pos.PnL(s.Assets[pos.AssetID].Price)),
			)
		}
	}

	if len(p.PendingOrders) > 0 {
		fmt.Println()
		accent.Println("Pending orders")
		fmt.Printf("%-12s %-8s %-11s %10s %14s\n", "ID", "ASSET", "TYPE", "QTY", "LIMIT")
		for _, o := range p.PendingOrders {
			fmt.Printf("%-12s %-8s %-11s %10s %14s\n", truncate(o.ID, 12), o.AssetID, o.Kind, quantity(o.Quantity), money(o.LimitPrice))
		}
	}

	if len(p.Companies) > 0 {
		fmt.Println()
		accent.Println("Companies")
		fmt.Printf("%-12s %-20s %-12s %6s %14s %8s\n", "ID", "NAME", "TYPE", "LEVEL", "INCOME/MO", "COUNTRY")
		for _, c := range p.Companies {
			fmt.Printf("%-12s %-20s %-12s %6d %14s %8s\n", truncate(c.ID, 12), truncate(c.Name, 20), c.Type, c.Level, money(c.MonthlyIncome), c.CountryID)
		}
	}
	fmt.Println()
}

func renderMarket(assets []game.Asset, held map[string]game.PortfolioItem) {
	fmt.Printf("%-8s %-24s %-12s %14s %9s %10s\n", "ASSET", "NAME", "CATEGORY", "PRICE", "DAY", "HELD")
	for _, a := range assets {
		heldQty := ""
		if item, ok := held[a.ID]; ok {
			heldQty = quantity(item.Quantity)
		}
		name := truncate(a.Name, 24)
		if a.Collapsed {
			name = danger.Sprint(truncate(a.Name+" (collapsed)", 24))
		}
		fmt.Printf("%-8s %-24s %-12s %14s %9s %10s\n", a.ID, name, a.Category, money(a.Price), colorizePercent(a.Change()*100), heldQty)
	}
}

func renderLogEntry(e game.LogEntry) {
	keys := make([]string, 0, len(e.Params))
	for k := range e.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Params[k]))
	}
	fmt.Printf("%s  %-10s %-34s %s\n", e.Date, e.Kind, e.Key, strings.Join(parts, " "))
}
