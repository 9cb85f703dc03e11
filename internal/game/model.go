package game

import (
	"errors"
	"math"
	"strings"
)

const (
	DefaultSlot     = "deep-trading-simulator"
	DefaultLanguage = "en"
)

var (
	ErrInvalidAction                = errors.New("invalid action")
	ErrUnknownAction                = errors.New("unknown action type")
	ErrNotStarted                   = errors.New("game not started")
	ErrGameOver                     = errors.New("game over")
	ErrSimulating                   = errors.New("simulation in progress")
	ErrUnknownAsset                 = errors.New("asset not found")
	ErrUnknownCountry               = errors.New("country not found")
	ErrUnknownParty                 = errors.New("party not found")
	ErrUnknownCompany               = errors.New("company not found")
	ErrUnknownPosition              = errors.New("margin position not found")
	ErrUnknownOrder                 = errors.New("pending order not found")
	ErrInsufficientFunds            = errors.New("insufficient funds")
	ErrInsufficientHoldings         = errors.New("insufficient holdings")
	ErrInsufficientPoliticalCapital = errors.New("insufficient political capital")
	ErrTradeBanned                  = errors.New("asset under trade ban")
	ErrResidencyLocked              = errors.New("asset only tradable by residents")
	ErrAssetCollapsed               = errors.New("asset has collapsed")
	ErrNotEligible                  = errors.New("not eligible")
	ErrLoanLimit                    = errors.New("loan limit exceeded")
	ErrPenaltyPending               = errors.New("penalty choice pending")
)

func validLanguage(lang string, allowed []string) bool {
	lang = strings.TrimSpace(lang)
	for _, l := range allowed {
		if l == lang {
			return true
		}
	}
	return false
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func clampMin(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}
