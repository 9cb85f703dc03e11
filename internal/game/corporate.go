package game

import (
	"fmt"
	"math"
	"strings"

	"deeptrader/internal/catalog"
)

// UpgradeOutcome names the four results of an upgrade roll.
type UpgradeOutcome string

const (
	UpgradeSuccess           UpgradeOutcome = "success"
	UpgradeCritical          UpgradeOutcome = "critical_success"
	UpgradeComplicationCost  UpgradeOutcome = "complication_cost"
	UpgradeComplicationDelay UpgradeOutcome = "complication_delay"
)

func (e *Engine) establishCompany(s *GameState, act EstablishCompany) error {
	data, ok := e.catalog.Company(act.CompanyType)
	if !ok {
		return fmt.Errorf("%w: company type %q", ErrInvalidAction, act.CompanyType)
	}
	name := strings.TrimSpace(act.Name)
	if name == "" {
		return fmt.Errorf("%w: company name required", ErrInvalidAction)
	}
	country, ok := e.residency(s)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCountry, s.Player.Residency)
	}
	cost := data.BaseCost * country.CompanyCostModifier
	p := &s.Player
	if p.Cash < cost {
		return ErrInsufficientFunds
	}
	c := Company{
		ID:            e.ids.NewID(),
		Name:          name,
		Type:          act.CompanyType,
		Level:         1,
		MonthlyIncome: data.BaseIncome,
		CountryID:     country.ID,
	}
	p.Cash -= cost
	p.Companies = append(p.Companies, c)

	params := map[string]any{"company": c.Name, "type": string(c.Type), "cost": cost}
	for i := range p.VentureLoans {
		v := &p.VentureLoans[i]
		if v.CompanyID == "" && !s.Date.Reached(v.Deadline) {
			v.CompanyID = c.ID
			params["venture_loan"] = v.ID
			break
		}
	}
	e.record(s, LogCorporate, "log.corporate.established", params)
	return nil
}

func (e *Engine) findCompany(s *GameState, id string) (*Company, catalog.CompanyData, error) {
	i, ok := s.Player.company(id)
	if !ok {
		return nil, catalog.CompanyData{}, fmt.Errorf("%w: %q", ErrUnknownCompany, id)
	}
	c := &s.Player.Companies[i]
	data, ok := e.catalog.Company(c.Type)
	if !ok {
		return nil, catalog.CompanyData{}, fmt.Errorf("%w: company type %q", ErrInvalidAction, c.Type)
	}
	return c, data, nil
}

// UpgradeCost is the price of taking a company from its current level to the next.
func UpgradeCost(data catalog.CompanyData, level int) float64 {
	return data.BaseCost * math.Pow(data.UpgradeCostMultiplier, float64(level))
}

// IncomeAt is the monthly income of a company at level.
func IncomeAt(data catalog.CompanyData, level int) float64 {
	return data.BaseIncome * math.Pow(data.IncomeMultiplier, float64(level-1))
}

func (e *Engine) upgradeCompany(s *GameState, act UpgradeCompany) error {
	c, data, err := e.findCompany(s, act.CompanyID)
	if err != nil {
		return err
	}
	p := &s.Player
	cost := UpgradeCost(data, c.Level)
	if p.Cash < cost {
		return ErrInsufficientFunds
	}

	t := e.tuning.Corporate
	paid, gain := cost, 1
	var outcome UpgradeOutcome
	switch r := e.rand.Float64(); {
	case r < t.ComplicationCost:
		outcome = UpgradeComplicationCost
		paid = math.Min(cost*1.1, p.Cash)
	case r < t.ComplicationDelay:
		outcome = UpgradeComplicationDelay
		gain = 0
		c.Effects = append(c.Effects, CompanyEffect{Kind: IncomeHalt, DurationMonths: 1})
	case r < t.CriticalSuccess:
		outcome = UpgradeCritical
		paid = cost * 0.5
		gain = 2
	default:
		outcome = UpgradeSuccess
	}

	p.Cash -= paid
	c.Level += gain
	c.MonthlyIncome = IncomeAt(data, c.Level)
	e.record(s, LogCorporate, "log.corporate.upgrade."+string(outcome), map[string]any{
		"company": c.Name,
		"level":   c.Level,
		"cost":    paid,
	})
	return nil
}

func (e *Engine) corporateActionCost(kind CorporateActionKind) (float64, bool) {
	t := e.tuning.Corporate
	switch kind {
	case Marketing:
		return t.MarketingCost, true
	case Research:
		return t.ResearchCost, true
	case Lobbying:
		return t.LobbyingCost, true
	}
	return 0, false
}

func (e *Engine) corporateAction(s *GameState, act ExecuteCorporateAction) error {
	c, _, err := e.findCompany(s, act.CompanyID)
	if err != nil {
		return err
	}
	cost, ok := e.corporateActionCost(act.Kind)
	if !ok {
		return fmt.Errorf("%w: corporate action %q", ErrInvalidAction, act.Kind)
	}
	p := &s.Player
	if p.Cash < cost {
		return ErrInsufficientFunds
	}
	p.Cash -= cost

	params := map[string]any{"company": c.Name, "action": string(act.Kind), "cost": cost}
	if !chance(e.rand, e.tuning.Corporate.ActionSuccess) {
		e.record(s, LogCorporate, "log.corporate.action_failed", params)
		return nil
	}
	switch act.Kind {
	case Marketing:
		e.publish(s, NewsItem{
			ID:     "marketing-" + c.ID + "-" + e.ids.NewID(),
			Source: c.Name,
			Key:    "news.company.marketing",
			Params: map[string]any{"company": c.Name},
		})
	case Research:
		f := catalog.TechInnovation
		s.Factors[f] = catalog.Clamp01(s.Factors[f] + e.tuning.Corporate.ResearchBoost)
	case Lobbying:
		c.Effects = append(c.Effects, CompanyEffect{Kind: TaxBreak, DurationMonths: e.tuning.Corporate.TaxBreakMonths})
	}
	e.record(s, LogCorporate, "log.corporate.action_succeeded", params)
	return nil
}
