package game

import (
	"fmt"
	"math"
	"sort"

	"deeptrader/internal/catalog"
)

// Outlook is the expected next-day move of a: its drift plus the pull that
// mean reversion will exert through its DNA.
func (e *Engine) Outlook(s GameState, a Asset) float64 {
	if a.Collapsed {
		return a.Trend
	}
	p := e.tuning.Prices
	var pull catalog.Vector
	for _, f := range catalog.Factors() {
		pull[f] = (0.5 - s.Factors[f]) * p.MeanReversion
	}
	return a.Trend*p.TrendScale + a.DNA.Dot(pull)/p.DNADivisor
}

// Drivers returns the n factors a is most exposed to, strongest first.
func Drivers(a Asset, n int) []catalog.Factor {
	fs := a.DNA.NonZero()
	sort.SliceStable(fs, func(i, j int) bool {
		return math.Abs(a.DNA[fs[i]]) > math.Abs(a.DNA[fs[j]])
	})
	if len(fs) > n {
		fs = fs[:n]
	}
	return fs
}

func (e *Engine) analystReport(s *GameState, act BuyAnalystReport) error {
	a, err := e.lookupAsset(s, act.AssetID)
	if err != nil {
		return err
	}
	t := e.tuning.Analyst
	var cost float64
	switch act.Kind {
	case ReportPrediction:
		cost = t.PredictionCost
	case ReportAnalysis:
		cost = t.AnalysisCost
	default:
		return fmt.Errorf("%w: report %q", ErrInvalidAction, act.Kind)
	}
	if s.Player.Cash < cost {
		return ErrInsufficientFunds
	}
	s.Player.Cash -= cost

	params := map[string]any{"asset": a.ID, "cost": cost}
	if act.Kind == ReportPrediction {
		up := e.Outlook(*s, a) >= 0
		if !chance(e.rand, t.PredictionAccuracy) {
			up = !up
		}
		params["direction"] = "down"
		if up {
			params["direction"] = "up"
		}
		e.record(s, LogMarket, "log.analyst.prediction", params)
		return nil
	}

	var drivers []string
	for _, f := range Drivers(a, 2) {
		drivers = append(drivers, f.String())
	}
	params["drivers"] = drivers
	if v, ok := a.SMA(20); ok {
		params["sma20"] = v
	}
	if v, ok := a.SMA(50); ok {
		params["sma50"] = v
	}
	e.record(s, LogMarket, "log.analyst.analysis", params)
	return nil
}
