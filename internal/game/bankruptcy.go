package game

// NetWorth is cash plus holdings at market plus margin equity. Loans are not
// subtracted.
func (s GameState) NetWorth() float64 {
	return s.Player.Cash + s.PortfolioValue() + s.MarginEquity()
}

func (s GameState) PortfolioValue() float64 {
	var total float64
	for id, item := range s.Player.Portfolio {
		if a, ok := s.Assets[id]; ok {
			total += item.Quantity * a.Price
		}
	}
	return total
}

func (s GameState) MarginEquity() float64 {
	var total float64
	for _, pos := range s.Player.MarginPositions {
		if a, ok := s.Assets[pos.AssetID]; ok {
			total += pos.Equity(a.Price)
		}
	}
	return total
}

// Debt is everything owed across the three loan facilities.
func (s GameState) Debt() float64 {
	p := s.Player
	total := p.Loan.Amount
	for _, v := range p.VentureLoans {
		total += v.Principal
	}
	if p.RevivalLoan != nil {
		total += p.RevivalLoan.Outstanding
	}
	return total
}

// evaluateBankruptcy runs once per day after the resolver.
//
//	none -> grace_period          net worth < 0
//	grace_period -> none          net worth recovered before expiry
//	grace_period -> game_over     expiry reached while still negative
//	grace_period -> revival_loan  player takes the revival loan
//	revival_loan -> none          revival loan repaid
//	revival_loan -> game_over     revival payment missed
func (e *Engine) evaluateBankruptcy(s *GameState) {
	p := &s.Player
	worth := s.NetWorth()
	switch p.Bankruptcy {
	case BankruptcyNone, "":
		if worth >= 0 {
			return
		}
		expiry := s.Date.AddDays(e.tuning.Limits.GraceDays)
		p.Bankruptcy = BankruptcyGrace
		p.GraceExpiry = &expiry
		e.record(s, LogBankruptcy, "log.bankruptcy.grace_started", map[string]any{
			"net_worth": worth,
			"expiry":    expiry.String(),
		})
	case BankruptcyGrace:
		if worth >= 0 {
			p.Bankruptcy = BankruptcyNone
			p.GraceExpiry = nil
			e.record(s, LogBankruptcy, "log.bankruptcy.recovered", map[string]any{"net_worth": worth})
			return
		}
		if p.GraceExpiry == nil || s.Date.Reached(*p.GraceExpiry) {
			e.record(s, LogBankruptcy, "log.bankruptcy.grace_expired", map[string]any{"net_worth": worth})
			e.endGame(s)
		}
	}
}

// endGame is the absorbing transition.
func (e *Engine) endGame(s *GameState) {
	p := &s.Player
	p.Bankruptcy = BankruptcyGameOver
	p.GraceExpiry = nil
	p.GameOverReason = ReasonPrison
	if e.authoritarianResidency(s) {
		p.GameOverReason = ReasonExecution
	}
	s.Paused = true
	s.AutoPaused = false
	e.record(s, LogBankruptcy, "log.bankruptcy.game_over", map[string]any{"reason": string(p.GameOverReason)})
	e.log.Debug("game over", "reason", p.GameOverReason, "date", s.Date.String())
}

func (e *Engine) retireRevivalLoan(s *GameState) {
	s.Player.RevivalLoan = nil
	if s.Player.Bankruptcy == BankruptcyRevival {
		s.Player.Bankruptcy = BankruptcyNone
	}
	e.record(s, LogBankruptcy, "log.bankruptcy.revival_repaid", nil)
}
