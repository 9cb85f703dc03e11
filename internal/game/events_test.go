package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElectionSurfacesAndPauses(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s.Date = NewDate(2024, 10, 31)

	s = apply(t, e, s, AdvanceDay{})

	require.NotNil(t, s.MajorEvent)
	assert.Equal(t, "election-USA-20241101", s.MajorEvent.ID)
	assert.Equal(t, "gop", s.MajorEvent.Params["party"])
	assert.True(t, s.Paused)
	assert.True(t, s.AutoPaused)
	require.NotEmpty(t, s.NewsArchive)
	assert.True(t, s.NewsArchive[len(s.NewsArchive)-1].Major)

	s = apply(t, e, s, DismissMajorEvent{})
	assert.Nil(t, s.MajorEvent)
	assert.False(t, s.Paused)
	assert.Empty(t, s.PauseHolds)

	again := apply(t, e, s, DismissMajorEvent{})
	assert.Equal(t, s, again)
}

func TestMajorEventQueueIsFIFO(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	e.enqueueMajorEvent(&s, MajorEvent{ID: "first", TitleKey: "event.a"})
	e.enqueueMajorEvent(&s, MajorEvent{ID: "second", TitleKey: "event.b"})
	e.surfaceMajorEvent(&s)

	require.NotNil(t, s.MajorEvent)
	assert.Equal(t, "first", s.MajorEvent.ID)
	assert.Len(t, s.MajorEventQueue, 1)
	assert.True(t, s.Paused)

	s = apply(t, e, s, DismissMajorEvent{})
	require.NotNil(t, s.MajorEvent)
	assert.Equal(t, "second", s.MajorEvent.ID)
	assert.Empty(t, s.MajorEventQueue)
	assert.True(t, s.Paused)

	s = apply(t, e, s, DismissMajorEvent{})
	assert.Nil(t, s.MajorEvent)
	assert.False(t, s.Paused)
}

func TestManualPauseSurvivesEventDismissal(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s = apply(t, e, s, SetPaused{Paused: true})
	e.enqueueMajorEvent(&s, MajorEvent{ID: "x"})
	e.surfaceMajorEvent(&s)
	assert.False(t, s.AutoPaused)

	s = apply(t, e, s, DismissMajorEvent{})
	assert.True(t, s.Paused)
}

func TestDismissAllowedAfterGameOver(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	e.enqueueMajorEvent(&s, MajorEvent{ID: "x"})
	e.surfaceMajorEvent(&s)
	e.endGame(&s)

	s = apply(t, e, s, DismissMajorEvent{})
	assert.Nil(t, s.MajorEvent)
	assert.True(t, s.Paused, "game over keeps the game paused")
}

func TestScamCollapse(t *testing.T) {
	e := engineWith(0.001)
	s := newGame(t, e, "USA")

	s = apply(t, e, s, AdvanceDay{})

	scam := s.Assets["RUS_SCAM"]
	assert.True(t, scam.Collapsed)
	assert.Equal(t, -0.05, scam.Trend)
	assert.InDelta(t, 0.095, scam.Price, 1e-12)
	require.NotNil(t, s.MajorEvent)
	assert.Equal(t, "scam-RUS_SCAM-20240102", s.MajorEvent.ID)
	require.Len(t, s.MajorEventQueue, 1)
	assert.Equal(t, "ai_breakthrough-20240102", s.MajorEventQueue[0].ID)
	assert.True(t, hasLog(s, "log.market.scam_collapse"))

	_, err := e.Apply(s, OpenMarginPosition{AssetID: "RUS_SCAM", Side: Long, Quantity: 1, Leverage: 2})
	assert.ErrorIs(t, err, ErrAssetCollapsed)

	// frozen intraday
	frozen := scam.Price
	e.applyIntradayNoise(&s)
	assert.Equal(t, frozen, s.Assets["RUS_SCAM"].Price)
}

func TestCompanyNewsForMatureCompanies(t *testing.T) {
	e := engineWith(0.01)
	s := newGame(t, e, "USA")
	c := techCompany(50_000)
	c.Level = 6
	young := techCompany(50_000)
	young.ID = "c2"
	s.Player.Companies = []Company{c, young}

	s = apply(t, e, s, AdvanceDay{})

	var ids []string
	for _, n := range s.DailyNews {
		ids = append(ids, n.News.ID)
	}
	assert.Contains(t, ids, "company-c1-20240102")
	assert.NotContains(t, ids, "company-c2-20240102")
}

func TestNewsBounds(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	for i := 0; i < 55; i++ {
		e.publish(&s, NewsItem{ID: fmt.Sprintf("n%d", i), Key: "news.test"})
	}
	assert.Len(t, s.NewsTicker, 10)
	assert.Equal(t, "n54", s.NewsTicker[9].ID)
	assert.Len(t, s.NewsArchive, 50)
	assert.Equal(t, "n5", s.NewsArchive[0].ID)
}

func TestPanelsHoldPause(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")

	s = apply(t, e, s, OpenPanel{Panel: "bank"})
	assert.Equal(t, "bank", s.ActivePanel)
	assert.True(t, s.Paused)
	assert.True(t, s.AutoPaused)

	s = apply(t, e, s, OpenPanel{Panel: "portfolio"})
	assert.Equal(t, "portfolio", s.ActivePanel)
	assert.False(t, s.Paused, "switching to a non-pausing panel releases the hold")

	s = apply(t, e, s, OpenPanel{Panel: "trade"})
	s = apply(t, e, s, ClosePanel{})
	assert.Empty(t, s.ActivePanel)
	assert.False(t, s.Paused)

	s = apply(t, e, s, SetPaused{Paused: true})
	s = apply(t, e, s, OpenPanel{Panel: "politics"})
	s = apply(t, e, s, ClosePanel{})
	assert.True(t, s.Paused)

	_, err := e.Apply(s, OpenPanel{Panel: " "})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestPanelAndEventHoldsStack(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s = apply(t, e, s, OpenPanel{Panel: "bank"})
	e.enqueueMajorEvent(&s, MajorEvent{ID: "x"})
	e.surfaceMajorEvent(&s)

	s = apply(t, e, s, DismissMajorEvent{})
	assert.True(t, s.Paused, "panel still open")

	s = apply(t, e, s, ClosePanel{})
	assert.False(t, s.Paused)
}
