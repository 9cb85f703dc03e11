package game

import "math"

// settleMonth runs on the first day of every month, in this order: company
// income with effects, tax and venture profit share; the standard loan;
// venture interest; the revival payment. Loan action counters reset last.
func (e *Engine) settleMonth(s *GameState) {
	e.settleCompanies(s)
	e.settleStandardLoan(s)
	e.settleVentureInterest(s)
	e.settleRevivalLoan(s)
	s.Player.LoanActionsThisMonth = 0
	e.log.Debug("month settled", "date", s.Date.String(), "cash", s.Player.Cash)
}

func (e *Engine) settleCompanies(s *GameState) {
	p := &s.Player
	bank := e.tuning.Bank
	country, _ := e.residency(s)

	for i := range p.Companies {
		c := &p.Companies[i]
		halted, taxBreak := false, false
		for _, ef := range c.Effects {
			switch ef.Kind {
			case IncomeHalt:
				halted = true
			case TaxBreak:
				taxBreak = true
			}
		}
		c.Effects = ageEffects(c.Effects)

		gross := c.MonthlyIncome
		if halted {
			gross = 0
		}
		rate := country.TaxRate
		if taxBreak {
			rate /= 2
		}
		net := gross * (1 - rate)

		if v := ventureFor(p.VentureLoans, c.ID); v >= 0 && gross > 0 {
			loan := &p.VentureLoans[v]
			room := loan.Principal*bank.VentureProfitShareCap - loan.ProfitShareRepaid
			share := math.Max(0, math.Min(gross*bank.VentureProfitShare, room))
			loan.ProfitShareRepaid += share
			net -= share
		}

		p.Cash += net
		e.record(s, LogCorporate, "log.corporate.income", map[string]any{
			"company": c.Name,
			"gross":   gross,
			"net":     net,
			"halted":  halted,
		})
	}

	loans := p.VentureLoans[:0:0]
	for _, v := range p.VentureLoans {
		if v.CompanyID != "" && v.ProfitShareRepaid >= v.Principal*bank.VentureProfitShareCap {
			e.record(s, LogLoan, "log.loan.venture_retired", map[string]any{"loan": v.ID, "repaid": v.ProfitShareRepaid})
			continue
		}
		loans = append(loans, v)
	}
	p.VentureLoans = nilIfEmpty(loans)
}

func (e *Engine) settleStandardLoan(s *GameState) {
	p := &s.Player
	l := &p.Loan
	bank := e.tuning.Bank
	if l.Amount <= 0 {
		l.DeferredThisMonth = false
		return
	}
	if l.DeferredThisMonth {
		if p.Cash >= bank.DefermentPenalty {
			p.Cash -= bank.DefermentPenalty
		} else {
			l.Amount += bank.DefermentPenalty
		}
		l.InterestRate += bank.DefermentRateStep
		l.DefermentsUsed++
		l.DeferredThisMonth = false
		e.record(s, LogLoan, "log.loan.deferred", map[string]any{
			"penalty": bank.DefermentPenalty,
			"rate":    l.InterestRate,
			"used":    l.DefermentsUsed,
		})
		return
	}
	interest := l.Amount * l.InterestRate / 12
	principal := l.Amount * bank.PrincipalAmortization
	due := interest + principal
	if p.Cash < due {
		e.record(s, LogSystem, "log.loan.payment_missed", map[string]any{"due": due, "cash": p.Cash})
		return
	}
	p.Cash -= due
	l.Amount -= principal
	e.record(s, LogLoan, "log.loan.payment", map[string]any{
		"interest":  interest,
		"principal": principal,
		"remaining": l.Amount,
	})
}

func (e *Engine) settleVentureInterest(s *GameState) {
	p := &s.Player
	for _, v := range p.VentureLoans {
		due := v.Principal * v.InterestRate / 12
		if p.Cash < due {
			e.record(s, LogSystem, "log.loan.venture_payment_missed", map[string]any{"loan": v.ID, "due": due})
			continue
		}
		p.Cash -= due
		e.record(s, LogLoan, "log.loan.venture_interest", map[string]any{"loan": v.ID, "interest": due})
	}
}

// settleRevivalLoan collects interest plus a fixed slice of principal.
// A missed payment ends the game.
func (e *Engine) settleRevivalLoan(s *GameState) {
	p := &s.Player
	r := p.RevivalLoan
	if r == nil {
		return
	}
	principal := math.Min(r.Principal*e.tuning.Bank.RevivalPrincipalRate, r.Outstanding)
	due := r.Outstanding*r.InterestRate/12 + principal
	if p.Cash < due {
		e.record(s, LogBankruptcy, "log.bankruptcy.revival_default", map[string]any{"due": due, "cash": p.Cash})
		e.endGame(s)
		return
	}
	p.Cash -= due
	r.Outstanding -= principal
	e.record(s, LogLoan, "log.loan.revival_payment", map[string]any{"paid": due, "outstanding": r.Outstanding})
	if r.Outstanding <= dust {
		e.retireRevivalLoan(s)
	}
}

// checkVentureDeadlines charges the penalty for every venture loan that
// reached its deadline without a company and retires it.
func (e *Engine) checkVentureDeadlines(s *GameState) {
	p := &s.Player
	if len(p.VentureLoans) == 0 {
		return
	}
	kept := p.VentureLoans[:0:0]
	for _, v := range p.VentureLoans {
		if v.CompanyID != "" || !s.Date.Reached(v.Deadline) {
			kept = append(kept, v)
			continue
		}
		penalty := v.Principal * e.tuning.Bank.VentureDeadlinePenalty
		p.Cash -= penalty
		e.record(s, LogLoan, "log.loan.venture_deadline_missed", map[string]any{"loan": v.ID, "penalty": penalty})
	}
	p.VentureLoans = nilIfEmpty(kept)
}

// ageEffects counts every effect down by a month and drops the expired ones.
func ageEffects(effects []CompanyEffect) []CompanyEffect {
	out := effects[:0:0]
	for _, ef := range effects {
		ef.DurationMonths--
		if ef.DurationMonths > 0 {
			out = append(out, ef)
		}
	}
	return nilIfEmpty(out)
}

func ventureFor(loans []VentureLoan, companyID string) int {
	for i, v := range loans {
		if v.CompanyID == companyID {
			return i
		}
	}
	return -1
}

func nilIfEmpty[T any](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	return in
}
