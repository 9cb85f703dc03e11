package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deeptrader/internal/catalog"
)

func TestTickIsNoOpWhilePausedOrSimulating(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")

	paused := apply(t, e, s, SetPaused{Paused: true})
	assert.Equal(t, paused, apply(t, e, paused, Tick{DeltaMS: 60_000}))

	simulating := s.Clone()
	simulating.Simulating = true
	assert.Equal(t, simulating, apply(t, e, simulating, Tick{DeltaMS: 60_000}))

	_, err := e.Apply(s, Tick{DeltaMS: -1})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestTickAdvancesClockAndSurfacesNews(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	require.NotEmpty(t, s.DailyNews)
	for _, n := range s.DailyNews {
		require.Equal(t, 12, n.TriggerHour)
	}

	s = apply(t, e, s, Tick{DeltaMS: 36_000})
	assert.InDelta(t, 0.2, s.Date.DayProgress, 1e-12)
	assert.Equal(t, 4, s.Date.Hour)
	assert.InDelta(t, 6_000, s.PriceUpdateAccumulator, 1e-9)
	assert.Empty(t, s.NewsTicker)

	s = apply(t, e, s, Tick{DeltaMS: 54_000})
	assert.Equal(t, 12, s.Date.Hour)
	assert.Len(t, s.NewsTicker, len(s.DailyNews))
	assert.Len(t, s.NewsArchive, len(s.DailyNews))
	for _, n := range s.DailyNews {
		assert.True(t, n.Triggered)
	}

	// surfacing again must not duplicate archive entries
	s = apply(t, e, s, Tick{DeltaMS: 1_000})
	assert.Len(t, s.NewsArchive, len(s.DailyNews))
}

func TestTickScalesWithSpeedAndCapsProgress(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s = apply(t, e, s, SetSpeed{Speed: 4})

	s = apply(t, e, s, Tick{DeltaMS: 22_500})
	assert.InDelta(t, 0.5, s.Date.DayProgress, 1e-12)
	assert.Equal(t, 0.0, s.PriceUpdateAccumulator)

	s = apply(t, e, s, Tick{DeltaMS: 1_000_000})
	assert.Equal(t, 1.0, s.Date.DayProgress)
	assert.Equal(t, 23, s.Date.Hour)
	assert.Less(t, s.PriceUpdateAccumulator, e.Tuning().Clock.PriceUpdateIntervalMS)
}

func TestAdvanceDayRollsTheCalendar(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s = apply(t, e, s, Tick{DeltaMS: 100_000})
	open := s.Assets["AAPL"].Price

	s = apply(t, e, s, AdvanceDay{})

	assert.Equal(t, NewDate(2024, 1, 2), s.Date)
	assert.Equal(t, 0.0, s.PriceUpdateAccumulator)
	assert.Empty(t, s.NewsTicker)

	aapl := s.Assets["AAPL"]
	require.Len(t, aapl.History, 1)
	c := aapl.History[0]
	assert.Equal(t, NewDate(2024, 1, 1), c.Date)
	assert.Equal(t, open, c.Open)
	assert.Equal(t, aapl.Price, c.Close)
	assert.GreaterOrEqual(t, c.High, c.Close)
	assert.LessOrEqual(t, c.Low, c.Close)
	assert.Equal(t, aapl.Price, aapl.BasePrice)
	assert.Equal(t, aapl.Price, aapl.DayOpen)
	assert.Equal(t, aapl.Price, aapl.DayHigh)
	assert.Equal(t, aapl.Price, aapl.DayLow)
	assert.Equal(t, s.Factors, s.RepricedFactors)
}

func TestSkipDaysGuards(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")

	for _, days := range []int{0, -3, 366} {
		_, err := e.Apply(s, SkipDays{Days: days})
		assert.ErrorIs(t, err, ErrInvalidAction, "days=%d", days)
	}

	busy := s.Clone()
	busy.Simulating = true
	_, err := e.Apply(busy, SkipDays{Days: 1})
	assert.ErrorIs(t, err, ErrSimulating)
	_, err = e.Apply(busy, AdvanceDay{})
	assert.ErrorIs(t, err, ErrSimulating)
	_, err = e.Apply(busy, SetPaused{Paused: false})
	assert.ErrorIs(t, err, ErrSimulating)
}

func TestSkipDaysRestoresPauseState(t *testing.T) {
	e := engineWith(0.5)
	running := newGame(t, e, "USA")

	after := apply(t, e, running, SkipDays{Days: 10})
	assert.Equal(t, NewDate(2024, 1, 11), after.Date)
	assert.False(t, after.Simulating)
	assert.False(t, after.Paused)

	paused := apply(t, e, running, SetPaused{Paused: true})
	after = apply(t, e, paused, SkipDays{Days: 3})
	assert.True(t, after.Paused)
	assert.False(t, after.AutoPaused)
}

func TestHistoryIsBounded(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Prices.HistoryWindow = 5
	e := NewEngine(catalog.Default(), tuning, NewSequenceRand(0.5), NewCounterIDs("id"), quietLogger())
	s := newGame(t, e, "USA")

	s = apply(t, e, s, SkipDays{Days: 4})
	early := s.Assets["GOLD"].History
	require.Len(t, early, 4)
	require.Equal(t, NewDate(2024, 1, 1), early[0].Date)

	s = apply(t, e, s, SkipDays{Days: 8})
	for id, a := range s.Assets {
		assert.Len(t, a.History, 5, id)
	}
	hist := s.Assets["GOLD"].History
	assert.Equal(t, NewDate(2024, 1, 8), hist[0].Date)
	assert.Equal(t, NewDate(2024, 1, 12), hist[4].Date)
	assert.Equal(t, NewDate(2024, 1, 1), early[0].Date, "older state keeps its own history")
}

func TestPricesNeverGoNegative(t *testing.T) {
	e := NewEngine(catalog.Default(), DefaultTuning(), NewSeededRand(7), NewCounterIDs("id"), quietLogger())
	s := newGame(t, e, "USA")
	for _, id := range []string{"DOGE", "SHIB", "XRP"} {
		a := s.Assets[id]
		a.Volatility = 8
		s.Assets[id] = a
	}

	for day := 0; day < 60; day++ {
		for i := 0; i < 12; i++ {
			e.applyIntradayNoise(&s)
		}
		e.advanceDay(&s)
		for id, a := range s.Assets {
			require.GreaterOrEqual(t, a.Price, 0.0, id)
			require.GreaterOrEqual(t, a.BasePrice, 0.0, id)
		}
	}
}

func TestCorrelatedAssetsMoveTogether(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	for id, a := range s.Assets {
		a.Trend = 0
		s.Assets[id] = a
	}
	// a rise in tech innovation with no other factor change
	s.RepricedFactors = s.Factors
	s.Factors[catalog.TechInnovation] += 0.2

	e.updateAllPrices(&s)
	init := e.InitialState()
	assert.Greater(t, s.Assets["NVDA"].Price, init.Assets["NVDA"].Price)
	assert.Greater(t, s.Assets["TSM"].Price, init.Assets["TSM"].Price)
	assert.Equal(t, init.Assets["DOGE"].Price, s.Assets["DOGE"].Price)
}

func TestSMA(t *testing.T) {
	a := Asset{History: []Candle{{Close: 1}, {Close: 2}, {Close: 3}, {Close: 4}}}
	v, ok := a.SMA(2)
	require.True(t, ok)
	assert.Equal(t, 3.5, v)

	_, ok = a.SMA(5)
	assert.False(t, ok)
}
