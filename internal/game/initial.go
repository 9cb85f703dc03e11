package game

import (
	"fmt"
	"strings"
)

// InitialState is the pre-game state: catalog assets at their seed prices,
// starting cash, no player identity yet. It is paused until the game starts.
func (e *Engine) InitialState() GameState {
	start := e.tuning.Start
	assets := make(map[string]Asset, len(e.catalog.Assets))
	for _, seed := range e.catalog.Assets {
		assets[seed.ID] = newAsset(seed)
	}
	return GameState{
		Date:            NewDate(start.Year, start.Month, start.Day),
		Speed:           1,
		Paused:          true,
		Assets:          assets,
		Factors:         e.catalog.InitialFactors,
		RepricedFactors: e.catalog.InitialFactors,
		Player: Player{
			Cash:             start.Cash,
			Portfolio:        map[string]PortfolioItem{},
			MarginPositions:  map[string]MarginPosition{},
			PoliticalCapital: map[string]int{},
			Loan:             Loan{InterestRate: start.LoanRate},
			Bankruptcy:       BankruptcyNone,
		},
		Language: DefaultLanguage,
	}
}

// NewGame is InitialState followed by SET_INITIAL_STATE.
func (e *Engine) NewGame(playerName, countryID string) (GameState, error) {
	return e.Apply(e.InitialState(), SetInitialState{PlayerName: playerName, CountryID: countryID})
}

func (e *Engine) setInitialState(s *GameState, act SetInitialState) error {
	if s.Started() {
		return fmt.Errorf("%w: game already started", ErrInvalidAction)
	}
	name := strings.TrimSpace(act.PlayerName)
	if name == "" {
		return fmt.Errorf("%w: player name required", ErrInvalidAction)
	}
	c, ok := e.catalog.Country(act.CountryID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCountry, act.CountryID)
	}
	p := &s.Player
	p.Name = name
	p.Residency = c.ID
	p.ResidencyHistory = []string{c.ID}
	if p.PoliticalCapital == nil {
		p.PoliticalCapital = map[string]int{}
	}
	p.PoliticalCapital[c.ID] = e.tuning.Start.PoliticalCapital
	e.scheduleDailyNews(s)
	s.Paused = false
	e.record(s, LogSystem, "log.system.game_started", map[string]any{"player": name, "country": c.ID})
	return nil
}
