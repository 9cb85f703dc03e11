package game

import (
	"fmt"
	"math"

	"deeptrader/internal/catalog"
)

func (e *Engine) changeResidency(s *GameState, act ChangeResidency) error {
	c, ok := e.catalog.Country(act.CountryID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCountry, act.CountryID)
	}
	p := &s.Player
	if p.Residency == c.ID {
		return fmt.Errorf("%w: already resident in %s", ErrInvalidAction, c.ID)
	}
	if p.Cash < c.ImmigrationCost {
		return ErrInsufficientFunds
	}
	from := p.Residency
	p.Cash -= c.ImmigrationCost
	p.Residency = c.ID
	p.ResidencyHistory = append(p.ResidencyHistory, c.ID)
	e.record(s, LogPolitics, "log.politics.moved", map[string]any{"from": from, "to": c.ID, "cost": c.ImmigrationCost})
	return nil
}

func (e *Engine) donate(s *GameState, act Donate) error {
	if !finitePositive(act.Amount) {
		return fmt.Errorf("%w: amount %v", ErrInvalidAction, act.Amount)
	}
	country, ok := e.residency(s)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCountry, s.Player.Residency)
	}
	party, ok := country.Party(act.PartyID)
	if !ok {
		return fmt.Errorf("%w: %q in %s", ErrUnknownParty, act.PartyID, country.ID)
	}
	p := &s.Player
	if p.Cash < act.Amount {
		return ErrInsufficientFunds
	}
	gained := int(math.Floor(act.Amount / e.tuning.Politics.DonationPerPC))
	p.Cash -= act.Amount
	if p.PoliticalCapital == nil {
		p.PoliticalCapital = make(map[string]int)
	}
	p.PoliticalCapital[country.ID] += gained
	e.record(s, LogPolitics, "log.politics.donated", map[string]any{
		"party":  party.ID,
		"amount": act.Amount,
		"gained": gained,
	})
	return nil
}

// lobbyIndustry spends residency capital on a chance to lift the drift of a
// whole category.
func (e *Engine) lobbyIndustry(s *GameState, act LobbyIndustry) error {
	if !act.Category.Valid() {
		return fmt.Errorf("%w: category %q", ErrInvalidAction, act.Category)
	}
	t := e.tuning.Politics
	p := &s.Player
	if p.PoliticalCapital[p.Residency] < t.LocalLobbyPC {
		return ErrInsufficientPoliticalCapital
	}
	p.PoliticalCapital[p.Residency] -= t.LocalLobbyPC

	params := map[string]any{"category": string(act.Category), "cost": t.LocalLobbyPC}
	if !chance(e.rand, t.LocalLobbyChance) {
		e.record(s, LogPolitics, "log.politics.lobby_failed", params)
		return nil
	}
	for _, id := range sortedAssetIDs(s.Assets) {
		a := s.Assets[id]
		if a.Category != act.Category || a.Collapsed {
			continue
		}
		a.Trend += t.LocalLobbyTrend
		s.Assets[id] = a
	}
	e.record(s, LogPolitics, "log.politics.lobby_succeeded", params)
	return nil
}

// globalInfluence pushes one factor. Capital is drawn from countries in id
// order until the cost is covered.
func (e *Engine) globalInfluence(s *GameState, act GlobalInfluence) error {
	if !act.Factor.Valid() {
		return fmt.Errorf("%w: factor %d", ErrInvalidAction, act.Factor)
	}
	var sign float64
	switch act.Direction {
	case Promote:
		sign = 1
	case Disrupt:
		sign = -1
	default:
		return fmt.Errorf("%w: direction %q", ErrInvalidAction, act.Direction)
	}
	t := e.tuning.Politics
	p := &s.Player
	if p.totalPoliticalCapital() < t.InfluencePC {
		return ErrInsufficientPoliticalCapital
	}
	if p.Cash < t.InfluenceCash {
		return ErrInsufficientFunds
	}

	owed := t.InfluencePC
	for _, id := range sortedKeys(p.PoliticalCapital) {
		if owed == 0 {
			break
		}
		take := min(owed, p.PoliticalCapital[id])
		if take <= 0 {
			continue
		}
		p.PoliticalCapital[id] -= take
		owed -= take
	}
	p.Cash -= t.InfluenceCash

	var outcome string
	switch r := e.rand.Float64(); {
	case r < t.InfluenceSuccess:
		outcome = "success"
		s.Factors[act.Factor] = catalog.Clamp01(s.Factors[act.Factor] + sign*t.InfluenceStep)
	case r < t.InfluenceSuccess+t.InfluenceFail:
		outcome = "fail"
	default:
		outcome = "backfire"
		s.Factors[act.Factor] = catalog.Clamp01(s.Factors[act.Factor] - sign*t.InfluenceStep)
	}
	e.record(s, LogPolitics, "log.politics.influence_"+outcome, map[string]any{
		"factor":    act.Factor.String(),
		"direction": string(act.Direction),
	})
	return nil
}
