// Package tui is the real-time terminal host behind `dtsim play`.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"deeptrader/internal/catalog"
	"deeptrader/internal/game"
)

// Game is the live session the terminal drives.
type Game interface {
	Apply(a game.Action) (game.Summary, error)
	Summary() game.Summary
	State() game.GameState
	Subscribe() (<-chan game.Summary, func())
	Save(ctx context.Context) error
}

const boardRefresh = time.Second

var speedLadder = []float64{1, 2, 5, 10, 25, 50, 100}

type sortMode int

const (
	sortByID sortMode = iota
	sortByChange
	sortByCategory
	numSortModes
)

func (s sortMode) String() string {
	switch s {
	case sortByChange:
		return "change"
	case sortByCategory:
		return "category"
	default:
		return "symbol"
	}
}

type row struct {
	ID       string
	Name     string
	Category catalog.Category
	Price    float64
	Change   float64
	Held     float64
}

type (
	summaryMsg game.Summary
	closedMsg  struct{}
	refreshMsg time.Time
	savedMsg   struct{ err error }
)

type Model struct {
	game    Game
	keys    keyMap
	help    help.Model
	updates <-chan game.Summary
	cancel  func()

	summary game.Summary
	board   []row
	sortBy  sortMode
	offset  int
	status  string
	height  int
}

func New(g Game) Model {
	updates, cancel := g.Subscribe()
	m := Model{
		game:    g,
		keys:    defaultKeys(),
		help:    help.New(),
		updates: updates,
		cancel:  cancel,
		summary: g.Summary(),
		height:  24,
	}
	m.board = boardFrom(g.State(), m.sortBy)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitFor(m.updates), refreshAfter(boardRefresh))
}

func waitFor(updates <-chan game.Summary) tea.Cmd {
	return func() tea.Msg {
		sum, ok := <-updates
		if !ok {
			return closedMsg{}
		}
		return summaryMsg(sum)
	}
}

func refreshAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
	case summaryMsg:
		m.summary = game.Summary(msg)
		return m, waitFor(m.updates)
	case closedMsg:
		return m, tea.Quit
	case refreshMsg:
		m.board = boardFrom(m.game.State(), m.sortBy)
		return m, refreshAfter(boardRefresh)
	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "saved " + m.summary.Date.String()
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		m.apply(game.SetPaused{Paused: !m.summary.Paused})
	case key.Matches(msg, m.keys.Faster):
		if next, ok := nextSpeed(m.summary.Speed, true); ok {
			m.apply(game.SetSpeed{Speed: next})
		}
	case key.Matches(msg, m.keys.Slower):
		if next, ok := nextSpeed(m.summary.Speed, false); ok {
			m.apply(game.SetSpeed{Speed: next})
		}
	case key.Matches(msg, m.keys.Dismiss):
		if m.summary.MajorEvent != nil {
			m.apply(game.DismissMajorEvent{})
		}
	case key.Matches(msg, m.keys.Save):
		g := m.game
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return savedMsg{err: g.Save(ctx)}
		}
	case key.Matches(msg, m.keys.NextSort):
		m.sortBy = (m.sortBy + 1) % numSortModes
		sortRows(m.board, m.sortBy)
		m.offset = 0
	case key.Matches(msg, m.keys.Up):
		m.offset = max(0, m.offset-1)
	case key.Matches(msg, m.keys.Down):
		m.offset = min(max(0, len(m.board)-m.visibleRows()), m.offset+1)
	}
	return m, nil
}

func (m *Model) apply(a game.Action) {
	sum, err := m.game.Apply(a)
	m.summary = sum
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func nextSpeed(current float64, faster bool) (float64, bool) {
	if faster {
		for _, s := range speedLadder {
			if s > current {
				return s, true
			}
		}
		return 0, false
	}
	for i := len(speedLadder) - 1; i >= 0; i-- {
		if speedLadder[i] < current {
			return speedLadder[i], true
		}
	}
	return 0, false
}

func boardFrom(s game.GameState, mode sortMode) []row {
	out := make([]row, 0, len(s.Assets))
	for id, a := range s.Assets {
		out = append(out, row{
			ID:       id,
			Name:     a.Name,
			Category: a.Category,
			Price:    a.Price,
			Change:   a.Change(),
			Held:     s.Player.Portfolio[id].Quantity,
		})
	}
	sortRows(out, mode)
	return out
}

func sortRows(rows []row, mode sortMode) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch mode {
		case sortByChange:
			if a.Change != b.Change {
				return a.Change > b.Change
			}
		case sortByCategory:
			if a.Category != b.Category {
				return a.Category < b.Category
			}
		}
		return a.ID < b.ID
	})
}

func (m Model) visibleRows() int {
	// header, stats, event box, news and help take roughly this many lines
	return max(5, m.height-16)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	upStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	downStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	eventStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("13")).Padding(0, 1)
)

func (m Model) View() string {
	s := m.summary
	var b strings.Builder

	state := "RUNNING"
	if s.Paused {
		state = "PAUSED"
	}
	hour := fmt.Sprintf("%02d:00", s.Date.Hour)
	b.WriteString(titleStyle.Render("Deep Trader") + "  " + s.Date.String() + " " + hour + "  x" + trimFloat(s.Speed) + "  " + warnStyle.Render(state))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s (%s)   %s %s   %s %s   %s %s\n",
		labelStyle.Render("player"), s.Player, s.Residency,
		labelStyle.Render("cash"), money(s.Cash),
		labelStyle.Render("net worth"), money(s.NetWorth),
		labelStyle.Render("debt"), money(s.Debt)))
	if s.Bankruptcy != game.BankruptcyNone {
		line := "bankruptcy: " + string(s.Bankruptcy)
		if s.GraceExpiry != nil {
			line += " until " + s.GraceExpiry.String()
		}
		if s.GameOverReason != "" {
			line += " (" + string(s.GameOverReason) + ")"
		}
		b.WriteString(downStyle.Render(line) + "\n")
	}
	if s.Penalty != nil {
		b.WriteString(warnStyle.Render(fmt.Sprintf("loan penalty pending for %s: run `dtsim loan penalty fine|ban`", money(s.Penalty.LoanAmount))) + "\n")
	}
	if ev := s.MajorEvent; ev != nil {
		body := ev.TitleKey + "\n" + labelStyle.Render(ev.DescriptionKey)
		if s.QueuedEvents > 0 {
			body += fmt.Sprintf("\n%d more queued", s.QueuedEvents)
		}
		b.WriteString(eventStyle.Render(body) + "\n")
	}

	b.WriteString("\n" + labelStyle.Render(fmt.Sprintf("%-14s %-26s %-12s %12s %9s %10s   sort: %s", "SYMBOL", "NAME", "CATEGORY", "PRICE", "CHANGE", "HELD", m.sortBy)) + "\n")
	end := min(len(m.board), m.offset+m.visibleRows())
	for _, r := range m.board[m.offset:end] {
		change := fmt.Sprintf("%+8.2f%%", r.Change*100)
		switch {
		case r.Change > 0:
			change = upStyle.Render(change)
		case r.Change < 0:
			change = downStyle.Render(change)
		}
		held := ""
		if r.Held > 0 {
			held = trimFloat(r.Held)
		}
		b.WriteString(fmt.Sprintf("%-14s %-26s %-12s %12.2f %s %10s\n", r.ID, truncate(r.Name, 26), r.Category, r.Price, change, held))
	}

	if len(s.Headlines) > 0 {
		b.WriteString("\n" + labelStyle.Render("news") + "\n")
		for _, n := range s.Headlines {
			b.WriteString("  " + n.Source + ": " + n.Key + "\n")
		}
	}
	if m.status != "" {
		b.WriteString("\n" + warnStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView(m.keys.help()))
	return b.String()
}

func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func trimFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
