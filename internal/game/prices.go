package game

import (
	"deeptrader/internal/catalog"
)

// applyIntradayNoise nudges every live asset by a damped, volatility-scaled
// uniform shock. Collapsed assets are frozen between day closes.
func (e *Engine) applyIntradayNoise(s *GameState) {
	k := e.tuning.Prices.NoiseDamping
	for _, id := range sortedAssetIDs(s.Assets) {
		a := s.Assets[id]
		if a.Collapsed {
			continue
		}
		a.Price = clampMin(a.Price*(1+signed(e.rand)*a.Volatility*k), 0)
		a.track()
		s.Assets[id] = a
	}
}

// driftFactors applies mean reversion toward 0.5 followed by a small random
// macro drift. Runs once per day, after event effects have been applied.
func (e *Engine) driftFactors(s *GameState) {
	p := e.tuning.Prices
	for _, f := range catalog.Factors() {
		v := s.Factors[f]
		v += (0.5 - v) * p.MeanReversion
		v += (e.rand.Float64() - 0.5) * p.FactorDrift
		s.Factors[f] = catalog.Clamp01(v)
	}
}

// updateAllPrices is the daily repricing. The factor delta is computed once
// and shared by every asset, so assets with similar DNA move together.
func (e *Engine) updateAllPrices(s *GameState) {
	p := e.tuning.Prices
	delta := s.Factors.Sub(s.RepricedFactors)
	for _, id := range sortedAssetIDs(s.Assets) {
		a := s.Assets[id]
		var change float64
		if a.Collapsed {
			change = a.Trend
		} else {
			change = a.DNA.Dot(delta)/p.DNADivisor +
				signed(e.rand)*a.Volatility*p.InterdayShock +
				a.Trend*p.TrendScale
		}
		a.BasePrice = clampMin(a.BasePrice*(1+change), 0)
		a.Price = a.BasePrice
		a.track()
		s.Assets[id] = a
	}
	s.RepricedFactors = s.Factors
}

// rollScams gives every untriggered scam asset its daily chance to collapse.
func (e *Engine) rollScams(s *GameState) {
	p := e.tuning.Prices
	for _, id := range sortedAssetIDs(s.Assets) {
		a := s.Assets[id]
		if !a.Scam || a.Collapsed || !chance(e.rand, p.ScamChance) {
			continue
		}
		a.Collapsed = true
		a.Price = clampMin(a.Price*p.ScamCollapse, 0)
		a.BasePrice = a.Price
		a.Trend = p.ScamTrend
		a.track()
		s.Assets[id] = a

		e.enqueueMajorEvent(s, MajorEvent{
			ID:             "scam-" + id + "-" + s.Date.stamp(),
			TitleKey:       "event.scam_collapse.title",
			DescriptionKey: "event.scam_collapse.desc",
			Params:         map[string]any{"asset": id},
		})
		e.record(s, LogMarket, "log.market.scam_collapse", map[string]any{"asset": id})
		e.log.Debug("scam asset collapsed", "asset", id, "date", s.Date.String())
	}
}

// closeDay writes the finished day's candle and opens the next day at the
// closing price.
func (e *Engine) closeDay(s *GameState, day GameDate) {
	window := e.tuning.Prices.HistoryWindow
	for _, id := range sortedAssetIDs(s.Assets) {
		a := s.Assets[id]
		a.track()
		a.History = pushCandle(a.History, Candle{
			Date:  day.Calendar(),
			Open:  a.DayOpen,
			High:  a.DayHigh,
			Low:   a.DayLow,
			Close: a.Price,
		}, window)
		a.openDay()
		s.Assets[id] = a
	}
}

// pushCandle never writes into h's backing array.
func pushCandle(h []Candle, c Candle, window int) []Candle {
	start := 0
	if n := len(h) + 1 - window; n > 0 {
		start = n
	}
	out := make([]Candle, 0, len(h)-start+1)
	out = append(out, h[start:]...)
	return append(out, c)
}

func (a *Asset) track() {
	if a.Price > a.DayHigh {
		a.DayHigh = a.Price
	}
	if a.Price < a.DayLow {
		a.DayLow = a.Price
	}
}

func (a *Asset) openDay() {
	a.BasePrice = a.Price
	a.DayOpen = a.Price
	a.DayHigh = a.Price
	a.DayLow = a.Price
}

// SMA is the simple moving average of the last n closes.
func (a Asset) SMA(n int) (float64, bool) {
	if n <= 0 || len(a.History) < n {
		return 0, false
	}
	var sum float64
	for _, c := range a.History[len(a.History)-n:] {
		sum += c.Close
	}
	return sum / float64(n), true
}

// Change is the move since the last close, as a fraction.
func (a Asset) Change() float64 {
	if len(a.History) == 0 {
		return 0
	}
	last := a.History[len(a.History)-1].Close
	if last == 0 {
		return 0
	}
	return (a.Price - last) / last
}

func newAsset(seed catalog.AssetSeed) Asset {
	a := Asset{
		ID:              seed.ID,
		Name:            seed.Name,
		Category:        seed.Category,
		Price:           seed.Price,
		Volatility:      seed.Volatility,
		Trend:           seed.Trend,
		DNA:             seed.DNA,
		StateOwned:      seed.StateOwned,
		Scam:            seed.Scam,
		ResidencyLocked: seed.ResidencyLocked,
	}
	a.openDay()
	return a
}
