package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var ErrInvalidSave = errors.New("invalid save")

// EncodeState writes the canonical save form. Dates are objects.
func EncodeState(s GameState) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeState reads a save, accepting ISO date strings as well as date
// objects, and validates it. Any failure wraps ErrInvalidSave.
func DecodeState(b []byte) (GameState, error) {
	var s GameState
	if err := json.Unmarshal(b, &s); err != nil {
		return GameState{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	normalize(&s)
	if err := validateState(s); err != nil {
		return GameState{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	return s, nil
}

// normalize fills the zero values older saves leave out. A save can never be
// mid-skip, so the simulating guard is dropped.
func normalize(s *GameState) {
	p := &s.Player
	if p.Portfolio == nil {
		p.Portfolio = map[string]PortfolioItem{}
	}
	if p.MarginPositions == nil {
		p.MarginPositions = map[string]MarginPosition{}
	}
	if p.PoliticalCapital == nil {
		p.PoliticalCapital = map[string]int{}
	}
	if p.Bankruptcy == "" {
		p.Bankruptcy = BankruptcyNone
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.Speed == 0 {
		s.Speed = 1
	}
	s.Simulating = false
}

func (e *Engine) validateState(s GameState) error {
	if err := validateState(s); err != nil {
		return err
	}
	if !validLanguage(s.Language, e.tuning.UI.Languages) {
		return fmt.Errorf("unsupported language %q", s.Language)
	}
	return nil
}

func validateState(s GameState) error {
	if err := s.Date.Validate(); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if !finitePositive(s.Speed) {
		return fmt.Errorf("speed %v", s.Speed)
	}
	if len(s.Assets) == 0 {
		return errors.New("no assets")
	}
	for id, a := range s.Assets {
		if a.ID != id {
			return fmt.Errorf("asset key %q holds %q", id, a.ID)
		}
		if a.Price < 0 || math.IsNaN(a.Price) || math.IsInf(a.Price, 0) {
			return fmt.Errorf("asset %s price %v", id, a.Price)
		}
	}
	for _, v := range s.Factors {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("factor level %v", v)
		}
	}
	p := s.Player
	if math.IsNaN(p.Cash) || math.IsInf(p.Cash, 0) {
		return fmt.Errorf("cash %v", p.Cash)
	}
	for id, item := range p.Portfolio {
		if _, ok := s.Assets[id]; !ok {
			return fmt.Errorf("portfolio holds unknown asset %q", id)
		}
		if !finitePositive(item.Quantity) {
			return fmt.Errorf("portfolio %s quantity %v", id, item.Quantity)
		}
	}
	for id, pos := range p.MarginPositions {
		if pos.ID != id {
			return fmt.Errorf("position key %q holds %q", id, pos.ID)
		}
		if pos.Leverage < 1 || pos.Margin < 0 {
			return fmt.Errorf("position %s leverage %v margin %v", id, pos.Leverage, pos.Margin)
		}
	}
	switch p.Bankruptcy {
	case BankruptcyNone, BankruptcyGrace, BankruptcyRevival, BankruptcyGameOver:
	default:
		return fmt.Errorf("bankruptcy state %q", p.Bankruptcy)
	}
	if p.Bankruptcy == BankruptcyGrace && p.GraceExpiry == nil {
		return errors.New("grace period without expiry")
	}
	return nil
}
