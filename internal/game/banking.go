package game

import (
	"fmt"
	"math"
	"sort"
)

// LoanLimit is the most the standard facility will still lend.
func (e *Engine) LoanLimit(s GameState) float64 {
	return math.Max(0, e.tuning.Bank.LoanLeverage*s.NetWorth()-s.Player.Loan.Amount)
}

func (e *Engine) takeLoan(s *GameState, act TakeLoan) error {
	if s.PenaltyRequired != nil {
		return ErrPenaltyPending
	}
	if !finitePositive(act.Amount) {
		return fmt.Errorf("%w: amount %v", ErrInvalidAction, act.Amount)
	}
	if act.Amount > e.LoanLimit(*s) {
		return ErrLoanLimit
	}
	if s.Player.LoanActionsThisMonth >= e.tuning.Bank.LoanActionsPerMonth {
		s.PenaltyRequired = &PenaltyPrompt{LoanAmount: act.Amount}
		e.holdPause(s, holdPenalty)
		e.record(s, LogLoan, "log.loan.penalty_required", map[string]any{"amount": act.Amount})
		return nil
	}
	e.grantLoan(s, act.Amount)
	return nil
}

func (e *Engine) grantLoan(s *GameState, amount float64) {
	l := &s.Player.Loan
	if l.InterestRate == 0 {
		l.InterestRate = e.tuning.Start.LoanRate
	}
	l.Amount += amount
	s.Player.Cash += amount
	s.Player.LoanActionsThisMonth++
	e.record(s, LogLoan, "log.loan.taken", map[string]any{"amount": amount, "outstanding": l.Amount, "rate": l.InterestRate})
}

// choosePenalty resolves a pending penalty prompt and then grants the loan
// that raised it.
func (e *Engine) choosePenalty(s *GameState, act ChoosePenalty) error {
	prompt := s.PenaltyRequired
	if prompt == nil {
		return fmt.Errorf("%w: no penalty pending", ErrInvalidAction)
	}
	bank := e.tuning.Bank
	switch act.Kind {
	case PenaltyFine:
		fine := prompt.LoanAmount * bank.PenaltyFineRate
		if s.Player.Cash+prompt.LoanAmount < fine {
			return ErrInsufficientFunds
		}
		s.Player.Cash -= fine
		e.record(s, LogLoan, "log.loan.penalty_fine", map[string]any{"fine": fine})
	case PenaltyBan:
		ban := TradeBan{AssetIDs: e.stateOwnedAssets(s), Expiry: s.Date.Calendar().AddMonths(bank.TradeBanMonths)}
		s.Player.TradeBans = append(s.Player.TradeBans, ban)
		e.record(s, LogLoan, "log.loan.penalty_ban", map[string]any{"assets": len(ban.AssetIDs), "expiry": ban.Expiry.String()})
	default:
		return fmt.Errorf("%w: penalty %q", ErrInvalidAction, act.Kind)
	}
	amount := prompt.LoanAmount
	s.PenaltyRequired = nil
	e.releasePause(s, holdPenalty)
	e.grantLoan(s, amount)
	return nil
}

func (e *Engine) stateOwnedAssets(s *GameState) []string {
	var ids []string
	for id, a := range s.Assets {
		if a.StateOwned {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (e *Engine) repayLoan(s *GameState, act RepayLoan) error {
	if !finitePositive(act.Amount) {
		return fmt.Errorf("%w: amount %v", ErrInvalidAction, act.Amount)
	}
	p := &s.Player
	if p.Cash < act.Amount {
		return ErrInsufficientFunds
	}
	switch act.Facility {
	case FacilityStandard, "":
		if p.Loan.Amount <= 0 {
			return fmt.Errorf("%w: no outstanding loan", ErrInvalidAction)
		}
		bonus := 1 + e.tuning.Bank.EarlyRepayBonus
		cleared := math.Min(act.Amount*bonus, p.Loan.Amount)
		paid := cleared / bonus
		p.Cash -= paid
		p.Loan.Amount -= cleared
		if p.Loan.Amount <= dust {
			p.Loan.Amount = 0
			p.Loan.DeferredThisMonth = false
		}
		e.record(s, LogLoan, "log.loan.repaid", map[string]any{"paid": paid, "cleared": cleared, "outstanding": p.Loan.Amount})
	case FacilityRevival:
		r := p.RevivalLoan
		if r == nil {
			return fmt.Errorf("%w: no revival loan", ErrInvalidAction)
		}
		cleared := math.Min(act.Amount, r.Outstanding)
		p.Cash -= cleared
		r.Outstanding -= cleared
		e.record(s, LogLoan, "log.loan.revival_repayment", map[string]any{"paid": cleared, "outstanding": r.Outstanding})
		if r.Outstanding <= dust {
			e.retireRevivalLoan(s)
		}
	default:
		return fmt.Errorf("%w: facility %q", ErrInvalidAction, act.Facility)
	}
	return nil
}

func (e *Engine) deferLoan(s *GameState) error {
	l := &s.Player.Loan
	if l.Amount <= 0 {
		return fmt.Errorf("%w: no outstanding loan", ErrInvalidAction)
	}
	if l.DeferredThisMonth {
		return fmt.Errorf("%w: already deferred this month", ErrInvalidAction)
	}
	if l.DefermentsUsed >= e.tuning.Bank.MaxDeferments {
		return fmt.Errorf("%w: deferments exhausted", ErrNotEligible)
	}
	l.DeferredThisMonth = true
	e.record(s, LogLoan, "log.loan.deferment_requested", map[string]any{"used": l.DefermentsUsed})
	return nil
}

// VentureEligible reports whether the player qualifies for a venture loan.
func (e *Engine) VentureEligible(s GameState) bool {
	bank := e.tuning.Bank
	p := s.Player
	if p.PoliticalCapital[p.Residency] >= bank.VentureMinPC {
		return true
	}
	for _, c := range p.Companies {
		if c.MonthlyIncome > bank.VentureMinIncome {
			return true
		}
	}
	var stateHoldings float64
	for id, item := range p.Portfolio {
		if a, ok := s.Assets[id]; ok && a.StateOwned {
			stateHoldings += item.Quantity * a.Price
		}
	}
	return stateHoldings >= bank.VentureMinStateAssets
}

func (e *Engine) takeVentureLoan(s *GameState, act TakeVentureLoan) error {
	if !finitePositive(act.Amount) {
		return fmt.Errorf("%w: amount %v", ErrInvalidAction, act.Amount)
	}
	if !e.VentureEligible(*s) {
		return ErrNotEligible
	}
	v := VentureLoan{
		ID:           e.ids.NewID(),
		Principal:    act.Amount,
		InterestRate: e.tuning.Bank.VentureRate,
		Deadline:     s.Date.Calendar().AddYears(1),
	}
	s.Player.VentureLoans = append(s.Player.VentureLoans, v)
	s.Player.Cash += v.Principal
	e.record(s, LogLoan, "log.loan.venture_taken", map[string]any{
		"loan":     v.ID,
		"amount":   v.Principal,
		"deadline": v.Deadline.String(),
	})
	return nil
}

func (e *Engine) takeRevivalLoan(s *GameState) error {
	p := &s.Player
	if p.Bankruptcy != BankruptcyGrace || p.RevivalLoan != nil {
		return ErrNotEligible
	}
	bank := e.tuning.Bank
	p.RevivalLoan = &RevivalLoan{
		Principal:    bank.RevivalAmount,
		Outstanding:  bank.RevivalAmount,
		InterestRate: bank.RevivalRate,
		TakenOn:      s.Date.Calendar(),
	}
	p.Cash += bank.RevivalAmount
	p.Bankruptcy = BankruptcyRevival
	p.GraceExpiry = nil
	e.record(s, LogBankruptcy, "log.bankruptcy.revival_taken", map[string]any{"amount": bank.RevivalAmount})
	return nil
}
