package game

import (
	"fmt"
	"math"
)

// tick advances the intraday clock. Every full price interval of game time
// runs one noise step followed by one resolver pass; due news is surfaced last.
func (e *Engine) tick(s *GameState, deltaMS float64) error {
	if deltaMS < 0 || math.IsNaN(deltaMS) || math.IsInf(deltaMS, 0) {
		return fmt.Errorf("%w: tick delta %v", ErrInvalidAction, deltaMS)
	}
	if s.Paused || s.Simulating || s.GameOver() || !s.Started() {
		return nil
	}
	c := e.tuning.Clock
	elapsed := deltaMS * s.Speed

	s.Date.DayProgress = math.Min(1, s.Date.DayProgress+elapsed/c.DayDurationMS)
	s.Date.Hour = min(23, int(s.Date.DayProgress*24))

	s.PriceUpdateAccumulator += elapsed
	for n := 0; n < c.MaxIntervalsPerTick && s.PriceUpdateAccumulator >= c.PriceUpdateIntervalMS; n++ {
		s.PriceUpdateAccumulator -= c.PriceUpdateIntervalMS
		e.applyIntradayNoise(s)
		e.resolve(s)
	}
	// a stalled host must not replay a backlog of intervals
	if s.PriceUpdateAccumulator >= c.PriceUpdateIntervalMS {
		s.PriceUpdateAccumulator = math.Mod(s.PriceUpdateAccumulator, c.PriceUpdateIntervalMS)
	}

	e.surfaceDueNews(s)
	return nil
}

// advanceDay is the full day pipeline. The step order is fixed: settlement
// before events, events before repricing, repricing before the resolver and
// the bankruptcy check.
func (e *Engine) advanceDay(s *GameState) {
	closed := s.Date
	s.Date = s.Date.AddDays(1)
	s.PriceUpdateAccumulator = 0

	e.pruneTradeBans(s)
	if s.Date.Day == 1 {
		e.settleMonth(s)
	}
	e.checkVentureDeadlines(s)

	e.generateEvents(s)
	e.driftFactors(s)
	e.updateAllPrices(s)
	e.closeDay(s, closed)

	e.resolve(s)
	e.evaluateBankruptcy(s)
	e.surfaceMajorEvent(s)
	s.NewsTicker = nil

	e.log.Debug("day advanced", "date", s.Date.String(), "cash", s.Player.Cash)
}

// skipDays folds the day pipeline synchronously. Simulating blocks the real
// time path for the duration; the prior pause state is restored afterwards.
func (e *Engine) skipDays(s *GameState, days int) error {
	if s.Simulating {
		return ErrSimulating
	}
	if days <= 0 || days > e.tuning.Clock.MaxSkipDays {
		return fmt.Errorf("%w: skip of %d days", ErrInvalidAction, days)
	}
	wasPaused, wasAuto := s.Paused, s.AutoPaused
	s.Simulating = true
	s.Paused = true
	for i := 0; i < days && !s.GameOver(); i++ {
		e.advanceDay(s)
	}
	s.Simulating = false
	s.Paused, s.AutoPaused = wasPaused, wasAuto
	if s.GameOver() {
		s.Paused = true
	}
	e.settlePauseHolds(s)
	return nil
}

func (e *Engine) pruneTradeBans(s *GameState) {
	bans := s.Player.TradeBans[:0:0]
	for _, b := range s.Player.TradeBans {
		if !s.Date.Reached(b.Expiry) {
			bans = append(bans, b)
		}
	}
	if len(bans) == 0 {
		bans = nil
	}
	s.Player.TradeBans = bans
}

func (e *Engine) banned(s *GameState, assetID string) bool {
	for _, b := range s.Player.TradeBans {
		if b.Covers(assetID) && !s.Date.Reached(b.Expiry) {
			return true
		}
	}
	return false
}
