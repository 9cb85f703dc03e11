package game

// Summary is the compact view the hosts push to clients after each transition.
type Summary struct {
	Date           GameDate        `json:"date"`
	Paused         bool            `json:"paused"`
	Speed          float64         `json:"speed"`
	Player         string          `json:"player"`
	Residency      string          `json:"residency"`
	Cash           float64         `json:"cash"`
	PortfolioValue float64         `json:"portfolio_value"`
	MarginEquity   float64         `json:"margin_equity"`
	NetWorth       float64         `json:"net_worth"`
	Debt           float64         `json:"debt"`
	Positions      int             `json:"positions"`
	Orders         int             `json:"orders"`
	Companies      int             `json:"companies"`
	Bankruptcy     BankruptcyState `json:"bankruptcy_state"`
	GraceExpiry    *GameDate       `json:"grace_period_expiry,omitempty"`
	GameOverReason GameOverReason  `json:"game_over_reason,omitempty"`
	MajorEvent     *MajorEvent     `json:"major_event,omitempty"`
	QueuedEvents   int             `json:"queued_events"`
	Headlines      []NewsItem      `json:"headlines,omitempty"`
	Penalty        *PenaltyPrompt  `json:"penalty_required,omitempty"`
	ActivePanel    string          `json:"active_panel,omitempty"`
}

func (s GameState) Summarize() Summary {
	p := s.Player
	out := Summary{
		Date:           s.Date,
		Paused:         s.Paused,
		Speed:          s.Speed,
		Player:         p.Name,
		Residency:      p.Residency,
		Cash:           p.Cash,
		PortfolioValue: s.PortfolioValue(),
		MarginEquity:   s.MarginEquity(),
		Debt:           s.Debt(),
		Positions:      len(p.MarginPositions),
		Orders:         len(p.PendingOrders),
		Companies:      len(p.Companies),
		Bankruptcy:     p.Bankruptcy,
		GameOverReason: p.GameOverReason,
		QueuedEvents:   len(s.MajorEventQueue),
		Headlines:      cloneNews(s.NewsTicker),
		ActivePanel:    s.ActivePanel,
	}
	out.NetWorth = out.Cash + out.PortfolioValue + out.MarginEquity
	if p.GraceExpiry != nil {
		d := *p.GraceExpiry
		out.GraceExpiry = &d
	}
	if s.MajorEvent != nil {
		ev := s.MajorEvent.clone()
		out.MajorEvent = &ev
	}
	if s.PenaltyRequired != nil {
		pr := *s.PenaltyRequired
		out.Penalty = &pr
	}
	return out
}
