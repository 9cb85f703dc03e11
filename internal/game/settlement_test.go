package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deeptrader/internal/catalog"
)

// monthEnd returns a running game on the last day of January 2024.
func monthEnd(t *testing.T, e *Engine, country string) GameState {
	t.Helper()
	s := newGame(t, e, country)
	s.Date = NewDate(2024, 1, 31)
	return s
}

func hasLog(s GameState, key string) bool {
	for _, l := range s.Player.Log {
		if l.Key == key {
			return true
		}
	}
	return false
}

func techCompany(income float64) Company {
	return Company{ID: "c1", Name: "Acme", Type: catalog.CompanyTech, Level: 1, MonthlyIncome: income, CountryID: "USA"}
}

func TestMonthlyCompanyIncomeIsTaxed(t *testing.T) {
	e := engineWith(0.5)
	s := monthEnd(t, e, "USA")
	s.Player.Companies = []Company{techCompany(50_000)}
	before := s.Player.Cash

	s = apply(t, e, s, AdvanceDay{})

	assert.Equal(t, NewDate(2024, 2, 1), s.Date)
	assert.InDelta(t, before+39_500, s.Player.Cash, 1e-6)
	assert.True(t, hasLog(s, "log.corporate.income"))
}

func TestNoSettlementMidMonth(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s.Player.Companies = []Company{techCompany(50_000)}
	s.Player.Loan.Amount = 100_000
	before := s.Player.Cash

	s = apply(t, e, s, AdvanceDay{})
	assert.Equal(t, before, s.Player.Cash)
	assert.Equal(t, 100_000.0, s.Player.Loan.Amount)
}

func TestCompanyEffects(t *testing.T) {
	e := engineWith(0.5)

	t.Run("income halt", func(t *testing.T) {
		s := monthEnd(t, e, "USA")
		c := techCompany(50_000)
		c.Effects = []CompanyEffect{{Kind: IncomeHalt, DurationMonths: 1}}
		s.Player.Companies = []Company{c}
		before := s.Player.Cash

		s = apply(t, e, s, AdvanceDay{})
		assert.Equal(t, before, s.Player.Cash)
		assert.Empty(t, s.Player.Companies[0].Effects)
	})

	t.Run("tax break", func(t *testing.T) {
		s := monthEnd(t, e, "USA")
		c := techCompany(50_000)
		c.Effects = []CompanyEffect{{Kind: TaxBreak, DurationMonths: 3}}
		s.Player.Companies = []Company{c}
		before := s.Player.Cash

		s = apply(t, e, s, AdvanceDay{})
		assert.InDelta(t, before+44_750, s.Player.Cash, 1e-6)
		require.Len(t, s.Player.Companies[0].Effects, 1)
		assert.Equal(t, 2, s.Player.Companies[0].Effects[0].DurationMonths)
	})
}

func TestStandardLoanSettlement(t *testing.T) {
	e := engineWith(0.5)

	t.Run("payment", func(t *testing.T) {
		s := monthEnd(t, e, "USA")
		s.Player.Loan = Loan{Amount: 100_000, InterestRate: 0.06}
		s.Player.LoanActionsThisMonth = 2
		before := s.Player.Cash

		s = apply(t, e, s, AdvanceDay{})
		assert.InDelta(t, before-2_500, s.Player.Cash, 1e-6)
		assert.InDelta(t, 98_000, s.Player.Loan.Amount, 1e-6)
		assert.Zero(t, s.Player.LoanActionsThisMonth)
	})

	t.Run("deferred", func(t *testing.T) {
		s := monthEnd(t, e, "USA")
		s.Player.Loan = Loan{Amount: 100_000, InterestRate: 0.06, DeferredThisMonth: true}
		before := s.Player.Cash

		s = apply(t, e, s, AdvanceDay{})
		l := s.Player.Loan
		assert.InDelta(t, before-2_299, s.Player.Cash, 1e-6)
		assert.Equal(t, 100_000.0, l.Amount)
		assert.InDelta(t, 0.0615, l.InterestRate, 1e-12)
		assert.Equal(t, 1, l.DefermentsUsed)
		assert.False(t, l.DeferredThisMonth)
	})

	t.Run("deferred without cash", func(t *testing.T) {
		s := monthEnd(t, e, "USA")
		s.Player.Cash = 1_000
		s.Player.Loan = Loan{Amount: 100_000, InterestRate: 0.06, DeferredThisMonth: true}

		s = apply(t, e, s, AdvanceDay{})
		assert.Equal(t, 1_000.0, s.Player.Cash)
		assert.Equal(t, 102_299.0, s.Player.Loan.Amount)
	})

	t.Run("missed", func(t *testing.T) {
		s := monthEnd(t, e, "USA")
		s.Player.Cash = 100
		s.Player.Loan = Loan{Amount: 100_000, InterestRate: 0.06}

		s = apply(t, e, s, AdvanceDay{})
		assert.Equal(t, 100.0, s.Player.Cash)
		assert.Equal(t, 100_000.0, s.Player.Loan.Amount)
		assert.True(t, hasLog(s, "log.loan.payment_missed"))
	})
}

func TestVentureProfitShare(t *testing.T) {
	e := engineWith(0.5)
	s := monthEnd(t, e, "USA")
	s.Player.Companies = []Company{techCompany(50_000)}
	s.Player.VentureLoans = []VentureLoan{{
		ID: "v1", Principal: 100_000, InterestRate: 0.075, CompanyID: "c1", Deadline: NewDate(2025, 1, 1),
	}}
	before := s.Player.Cash

	s = apply(t, e, s, AdvanceDay{})

	// 39,500 net income less the 10,000 share less 625 interest
	assert.InDelta(t, before+28_875, s.Player.Cash, 1e-6)
	require.Len(t, s.Player.VentureLoans, 1)
	assert.InDelta(t, 10_000, s.Player.VentureLoans[0].ProfitShareRepaid, 1e-9)
}

func TestVentureLoanRetiresAtShareCap(t *testing.T) {
	e := engineWith(0.5)
	s := monthEnd(t, e, "USA")
	s.Player.Companies = []Company{techCompany(50_000)}
	s.Player.VentureLoans = []VentureLoan{{
		ID: "v1", Principal: 100_000, InterestRate: 0.075, CompanyID: "c1",
		Deadline: NewDate(2025, 1, 1), ProfitShareRepaid: 25_000,
	}}
	before := s.Player.Cash

	s = apply(t, e, s, AdvanceDay{})

	assert.InDelta(t, before+34_500, s.Player.Cash, 1e-6)
	assert.Empty(t, s.Player.VentureLoans)
	assert.True(t, hasLog(s, "log.loan.venture_retired"))
}

func TestVentureDeadlinePenalty(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s.Date = NewDate(2024, 3, 14)
	s.Player.VentureLoans = []VentureLoan{{ID: "v1", Principal: 100_000, InterestRate: 0.075, Deadline: NewDate(2024, 3, 15)}}
	before := s.Player.Cash

	s = apply(t, e, s, AdvanceDay{})

	assert.InDelta(t, before-150_000, s.Player.Cash, 1e-6)
	assert.Empty(t, s.Player.VentureLoans)
	assert.True(t, hasLog(s, "log.loan.venture_deadline_missed"))
}

func TestRevivalLoanSettlement(t *testing.T) {
	e := engineWith(0.5)
	revival := func(outstanding float64) *RevivalLoan {
		return &RevivalLoan{Principal: 1_000_000, Outstanding: outstanding, InterestRate: 0.10, TakenOn: NewDate(2024, 1, 1)}
	}

	t.Run("payment", func(t *testing.T) {
		s := monthEnd(t, e, "USA")
		s.Player.Cash = 100_000
		s.Player.Bankruptcy = BankruptcyRevival
		s.Player.RevivalLoan = revival(1_000_000)

		s = apply(t, e, s, AdvanceDay{})
		require.NotNil(t, s.Player.RevivalLoan)
		assert.InDelta(t, 100_000-58_333.333333, s.Player.Cash, 1e-3)
		assert.InDelta(t, 950_000, s.Player.RevivalLoan.Outstanding, 1e-6)
		assert.Equal(t, BankruptcyRevival, s.Player.Bankruptcy)
	})

	t.Run("final payment retires the loan", func(t *testing.T) {
		s := monthEnd(t, e, "USA")
		s.Player.Bankruptcy = BankruptcyRevival
		s.Player.RevivalLoan = revival(10_000)
		before := s.Player.Cash

		s = apply(t, e, s, AdvanceDay{})
		assert.Nil(t, s.Player.RevivalLoan)
		assert.Equal(t, BankruptcyNone, s.Player.Bankruptcy)
		assert.InDelta(t, before-10_083.333333, s.Player.Cash, 1e-3)
	})

	t.Run("default ends the game", func(t *testing.T) {
		s := monthEnd(t, e, "USA")
		s.Player.Cash = 1_000
		s.Player.Bankruptcy = BankruptcyRevival
		s.Player.RevivalLoan = revival(1_000_000)

		s = apply(t, e, s, AdvanceDay{})
		assert.True(t, s.GameOver())
		assert.Equal(t, ReasonPrison, s.Player.GameOverReason)
		assert.True(t, s.Paused)
	})
}

func TestAgeEffectsDoesNotMutateInput(t *testing.T) {
	in := []CompanyEffect{{Kind: TaxBreak, DurationMonths: 2}, {Kind: IncomeHalt, DurationMonths: 1}}
	out := ageEffects(in)
	assert.Equal(t, []CompanyEffect{{Kind: TaxBreak, DurationMonths: 1}}, out)
	assert.Equal(t, 2, in[0].DurationMonths)
	assert.Nil(t, ageEffects(nil))
}
