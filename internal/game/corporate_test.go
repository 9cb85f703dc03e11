package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deeptrader/internal/catalog"
)

func withCompany(t *testing.T, e *Engine, cash float64) (GameState, string) {
	t.Helper()
	s := newGame(t, e, "USA")
	s.Player.Cash = cash
	s = apply(t, e, s, EstablishCompany{Name: "Acme", CompanyType: catalog.CompanyTech})
	require.Len(t, s.Player.Companies, 1)
	return s, s.Player.Companies[0].ID
}

func TestEstablishCompany(t *testing.T) {
	e := engineWith(0.5)
	s, id := withCompany(t, e, 3_000_000)

	c := s.Player.Companies[0]
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 50_000.0, c.MonthlyIncome)
	assert.Equal(t, "USA", c.CountryID)
	assert.Equal(t, 1_000_000.0, s.Player.Cash)

	cn := newGame(t, e, "CHN")
	cn.Player.Cash = 3_000_000
	cn = apply(t, e, cn, EstablishCompany{Name: "Acme", CompanyType: catalog.CompanyTech})
	assert.InDelta(t, 1_600_000, cn.Player.Cash, 1e-6)

	_, err := e.Apply(s, EstablishCompany{Name: "Acme", CompanyType: catalog.CompanyTech})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	_, err = e.Apply(s, EstablishCompany{Name: "", CompanyType: catalog.CompanyMedia})
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = e.Apply(s, EstablishCompany{Name: "X", CompanyType: "shipping"})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestUpgradeOutcomes(t *testing.T) {
	tests := []struct {
		roll    float64
		outcome UpgradeOutcome
		paid    float64
		level   int
		income  float64
		halted  bool
	}{
		{0.01, UpgradeComplicationCost, 3_960_000, 2, 85_000, false},
		{0.07, UpgradeComplicationDelay, 3_600_000, 1, 50_000, true},
		{0.15, UpgradeCritical, 1_800_000, 3, 144_500, false},
		{0.50, UpgradeSuccess, 3_600_000, 2, 85_000, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.outcome), func(t *testing.T) {
			e := engineWith(tc.roll)
			s, id := withCompany(t, e, 12_000_000)
			before := s.Player.Cash

			s = apply(t, e, s, UpgradeCompany{CompanyID: id})

			c := s.Player.Companies[0]
			assert.InDelta(t, before-tc.paid, s.Player.Cash, 1e-6)
			assert.Equal(t, tc.level, c.Level)
			assert.InDelta(t, tc.income, c.MonthlyIncome, 1e-6)
			assert.Equal(t, tc.halted, len(c.Effects) == 1)
			assert.True(t, hasLog(s, "log.corporate.upgrade."+string(tc.outcome)))
		})
	}
}

func TestUpgradeRejects(t *testing.T) {
	e := engineWith(0.5)
	s, id := withCompany(t, e, 3_000_000)

	_, err := e.Apply(s, UpgradeCompany{CompanyID: id})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	_, err = e.Apply(s, UpgradeCompany{CompanyID: "nope"})
	assert.ErrorIs(t, err, ErrUnknownCompany)
}

func TestCorporateActions(t *testing.T) {
	e := engineWith(0.5)
	s, id := withCompany(t, e, 10_000_000)
	cash := s.Player.Cash

	s = apply(t, e, s, ExecuteCorporateAction{CompanyID: id, Kind: Marketing})
	cash -= 500_000
	assert.Equal(t, cash, s.Player.Cash)
	require.NotEmpty(t, s.NewsTicker)
	assert.Equal(t, "news.company.marketing", s.NewsTicker[len(s.NewsTicker)-1].Key)

	tech := s.Factors[catalog.TechInnovation]
	s = apply(t, e, s, ExecuteCorporateAction{CompanyID: id, Kind: Research})
	cash -= 2_000_000
	assert.Equal(t, cash, s.Player.Cash)
	assert.InDelta(t, tech+0.05, s.Factors[catalog.TechInnovation], 1e-12)

	s = apply(t, e, s, ExecuteCorporateAction{CompanyID: id, Kind: Lobbying})
	cash -= 1_000_000
	assert.Equal(t, cash, s.Player.Cash)
	assert.Equal(t, []CompanyEffect{{Kind: TaxBreak, DurationMonths: 3}}, s.Player.Companies[0].Effects)

	_, err := e.Apply(s, ExecuteCorporateAction{CompanyID: id, Kind: "bribery"})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestFailedCorporateActionKeepsCost(t *testing.T) {
	e := engineWith(0.9)
	s, id := withCompany(t, e, 10_000_000)
	tech := s.Factors[catalog.TechInnovation]
	cash := s.Player.Cash

	s = apply(t, e, s, ExecuteCorporateAction{CompanyID: id, Kind: Research})
	assert.Equal(t, cash-2_000_000, s.Player.Cash)
	assert.Equal(t, tech, s.Factors[catalog.TechInnovation])
	assert.True(t, hasLog(s, "log.corporate.action_failed"))
}

func TestCompanyLinksOpenVentureLoan(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s.Player.PoliticalCapital["USA"] = 300
	s = apply(t, e, s, TakeVentureLoan{Amount: 2_000_000})
	require.Len(t, s.Player.VentureLoans, 1)
	assert.Equal(t, NewDate(2025, 1, 1), s.Player.VentureLoans[0].Deadline)

	s = apply(t, e, s, EstablishCompany{Name: "Acme", CompanyType: catalog.CompanyTech})
	assert.Equal(t, s.Player.Companies[0].ID, s.Player.VentureLoans[0].CompanyID)
}

func TestChangeResidency(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")

	_, err := e.Apply(s, ChangeResidency{CountryID: "DEU"})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	_, err = e.Apply(s, ChangeResidency{CountryID: "USA"})
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = e.Apply(s, ChangeResidency{CountryID: "MARS"})
	assert.ErrorIs(t, err, ErrUnknownCountry)

	s.Player.Cash = 10_000_000
	s = apply(t, e, s, ChangeResidency{CountryID: "DEU"})
	assert.Equal(t, "DEU", s.Player.Residency)
	assert.Equal(t, []string{"USA", "DEU"}, s.Player.ResidencyHistory)
	assert.Equal(t, 2_000_000.0, s.Player.Cash)

	// the new residency opens the local residency-locked market
	s = apply(t, e, s, SpotTrade{AssetID: "SIE_DE", Side: Buy, Quantity: 1})
	assert.Contains(t, s.Player.Portfolio, "SIE_DE")
}

func TestDonate(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")

	s = apply(t, e, s, Donate{PartyID: "dems", Amount: 25_000})
	assert.Equal(t, 102, s.Player.PoliticalCapital["USA"])
	assert.Equal(t, 975_000.0, s.Player.Cash)

	_, err := e.Apply(s, Donate{PartyID: "ccp", Amount: 25_000})
	assert.ErrorIs(t, err, ErrUnknownParty)
	_, err = e.Apply(s, Donate{PartyID: "gop", Amount: 5_000_000})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	_, err = e.Apply(s, Donate{PartyID: "gop", Amount: -1})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestLobbyIndustry(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")

	_, err := e.Apply(s, LobbyIndustry{Category: catalog.Tech})
	assert.ErrorIs(t, err, ErrInsufficientPoliticalCapital)

	s.Player.PoliticalCapital["USA"] = 300
	before := s.Assets["AAPL"].Trend
	gold := s.Assets["GOLD"].Trend
	s = apply(t, e, s, LobbyIndustry{Category: catalog.Tech})

	assert.Equal(t, 50, s.Player.PoliticalCapital["USA"])
	assert.InDelta(t, before+0.0005, s.Assets["AAPL"].Trend, 1e-12)
	assert.Equal(t, gold, s.Assets["GOLD"].Trend)

	_, err = e.Apply(s, LobbyIndustry{Category: "toys"})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestGlobalInfluence(t *testing.T) {
	tests := []struct {
		name      string
		roll      float64
		direction InfluenceDirection
		want      float64
		log       string
	}{
		{"success", 0.5, Disrupt, 0.55, "log.politics.influence_success"},
		{"fail", 0.8, Disrupt, 0.6, "log.politics.influence_fail"},
		{"backfire", 0.95, Promote, 0.55, "log.politics.influence_backfire"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := engineWith(tc.roll)
			s := newGame(t, e, "USA")
			s.Player.Cash = 6_000_000
			s.Player.PoliticalCapital = map[string]int{"USA": 300, "CHN": 300}
			s.Factors[catalog.OilSupply] = 0.6

			s = apply(t, e, s, GlobalInfluence{Factor: catalog.OilSupply, Direction: tc.direction})

			assert.InDelta(t, tc.want, s.Factors[catalog.OilSupply], 1e-12)
			assert.Equal(t, map[string]int{"USA": 100, "CHN": 0}, s.Player.PoliticalCapital)
			assert.Equal(t, 1_000_000.0, s.Player.Cash)
			assert.True(t, hasLog(s, tc.log))
		})
	}
}

func TestGlobalInfluenceRejects(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s.Player.Cash = 6_000_000

	_, err := e.Apply(s, GlobalInfluence{Factor: catalog.OilSupply, Direction: Promote})
	assert.ErrorIs(t, err, ErrInsufficientPoliticalCapital)

	s.Player.PoliticalCapital["USA"] = 600
	_, err = e.Apply(s, GlobalInfluence{Factor: catalog.NumFactors, Direction: Promote})
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = e.Apply(s, GlobalInfluence{Factor: catalog.OilSupply, Direction: "sideways"})
	assert.ErrorIs(t, err, ErrInvalidAction)

	s.Player.Cash = 10
	_, err = e.Apply(s, GlobalInfluence{Factor: catalog.OilSupply, Direction: Promote})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestAnalystReports(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")

	oil := s.Assets["OIL"]
	assert.Equal(t, []catalog.Factor{catalog.OilSupply, catalog.MiddleEastTension}, Drivers(oil, 2))

	s = apply(t, e, s, BuyAnalystReport{AssetID: "OIL", Kind: ReportAnalysis})
	last := s.Player.Log[len(s.Player.Log)-1]
	assert.Equal(t, "log.analyst.analysis", last.Key)
	assert.Equal(t, []string{"oilSupply", "middleEastTension"}, last.Params["drivers"])
	assert.NotContains(t, last.Params, "sma20")
	assert.Equal(t, 965_000.0, s.Player.Cash)

	// gold is pulled up as global stability reverts toward the middle
	assert.Greater(t, e.Outlook(s, s.Assets["GOLD"]), 0.0)
	s = apply(t, e, s, BuyAnalystReport{AssetID: "GOLD", Kind: ReportPrediction})
	last = s.Player.Log[len(s.Player.Log)-1]
	assert.Equal(t, "log.analyst.prediction", last.Key)
	assert.Equal(t, "up", last.Params["direction"])
	assert.Equal(t, 895_000.0, s.Player.Cash)

	_, err := e.Apply(s, BuyAnalystReport{AssetID: "GOLD", Kind: "horoscope"})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestAnalysisIncludesMovingAverages(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s = apply(t, e, s, SkipDays{Days: 20})

	s = apply(t, e, s, BuyAnalystReport{AssetID: "GOLD", Kind: ReportAnalysis})
	last := s.Player.Log[len(s.Player.Log)-1]
	assert.Contains(t, last.Params, "sma20")
	assert.NotContains(t, last.Params, "sma50")
}
