package game

import (
	"fmt"

	"deeptrader/internal/catalog"
)

// generateEvents runs the daily event draw in a fixed order: scams, the
// random major event, elections, then the minor and company news schedule.
func (e *Engine) generateEvents(s *GameState) {
	e.rollScams(s)
	e.rollMajorEvent(s)
	e.holdElections(s)
	e.scheduleDailyNews(s)
	e.scheduleCompanyNews(s)
}

func (e *Engine) rollMajorEvent(s *GameState) {
	pool := e.catalog.MajorEvents
	if len(pool) == 0 || !chance(e.rand, e.tuning.Events.MajorEventChance) {
		return
	}
	t := pool[e.rand.Intn(len(pool))]
	s.Factors = s.Factors.AddClamped(t.Effects)
	e.enqueueMajorEvent(s, MajorEvent{
		ID:             t.ID + "-" + s.Date.stamp(),
		TitleKey:       t.TitleKey,
		DescriptionKey: t.DescriptionKey,
		Effects:        t.Effects,
	})
}

// holdElections runs on the first day of a month. The winning party is drawn
// uniformly and its effect profile is applied to the global factors.
func (e *Engine) holdElections(s *GameState) {
	if s.Date.Day != 1 {
		return
	}
	for _, c := range e.catalog.Countries {
		if c.Election == nil || len(c.Parties) == 0 || !c.Election.Due(s.Date.Year, s.Date.Month) {
			continue
		}
		winner := c.Parties[e.rand.Intn(len(c.Parties))]
		s.Factors = s.Factors.AddClamped(winner.Effects)
		e.enqueueMajorEvent(s, MajorEvent{
			ID:             "election-" + c.ID + "-" + s.Date.stamp(),
			TitleKey:       "event.election.title",
			DescriptionKey: "event.election.desc",
			Params:         map[string]any{"country": c.ID, "party": winner.ID},
			Effects:        winner.Effects,
		})
		e.log.Debug("election held", "country", c.ID, "winner", winner.ID, "date", s.Date.String())
	}
}

// scheduleDailyNews replaces the schedule with a fresh set of minor headlines.
// Each headline also jitters one random factor.
func (e *Engine) scheduleDailyNews(s *GameState) {
	s.DailyNews = nil
	pool := e.catalog.MinorNews
	if len(pool) == 0 {
		return
	}
	cfg := e.tuning.Events
	n := cfg.MinDailyNews + e.rand.Intn(cfg.MaxDailyNews-cfg.MinDailyNews+1)
	assetIDs := sortedAssetIDs(s.Assets)
	for i := 0; i < n; i++ {
		t := pool[e.rand.Intn(len(pool))]
		item := NewsItem{
			ID:     fmt.Sprintf("%s-%s-%d", t.ID, s.Date.stamp(), i),
			Source: t.Source,
			Key:    t.Key,
		}
		if t.BindsAsset && len(assetIDs) > 0 {
			item.Params = map[string]any{"asset": assetIDs[e.rand.Intn(len(assetIDs))]}
		}
		s.DailyNews = append(s.DailyNews, ScheduledNews{TriggerHour: e.rand.Intn(24), News: item})

		f := catalog.Factor(e.rand.Intn(int(catalog.NumFactors)))
		s.Factors[f] = catalog.Clamp01(s.Factors[f] + signed(e.rand)*cfg.SentimentJitter)
	}
}

// scheduleCompanyNews gives mature companies a chance of a positive headline.
func (e *Engine) scheduleCompanyNews(s *GameState) {
	for _, c := range s.Player.Companies {
		if c.Level < 5 {
			continue
		}
		if !chance(e.rand, float64(c.Level-4)*e.tuning.Events.CompanyNewsChance) {
			continue
		}
		s.DailyNews = append(s.DailyNews, ScheduledNews{
			TriggerHour: e.rand.Intn(24),
			News: NewsItem{
				ID:     "company-" + c.ID + "-" + s.Date.stamp(),
				Source: c.Name,
				Key:    "news.company.milestone",
				Params: map[string]any{"company": c.Name, "level": c.Level},
			},
		})
	}
}

// surfaceDueNews flips every scheduled item whose hour has come.
func (e *Engine) surfaceDueNews(s *GameState) {
	for i := range s.DailyNews {
		n := &s.DailyNews[i]
		if n.Triggered || s.Date.Hour < n.TriggerHour {
			continue
		}
		n.Triggered = true
		e.publish(s, n.News)
	}
}

// publish pushes an item onto the ticker and, once per id, the archive.
func (e *Engine) publish(s *GameState, item NewsItem) {
	cfg := e.tuning.Events
	s.NewsTicker = appendBounded(s.NewsTicker, item, cfg.NewsTickerSize)
	for _, old := range s.NewsArchive {
		if old.ID == item.ID {
			return
		}
	}
	s.NewsArchive = appendBounded(s.NewsArchive, item, cfg.NewsArchiveSize)
}

func (e *Engine) enqueueMajorEvent(s *GameState, ev MajorEvent) {
	s.MajorEventQueue = append(s.MajorEventQueue, ev)
	e.publish(s, NewsItem{
		ID:     ev.ID,
		Source: "major",
		Key:    ev.TitleKey,
		Params: ev.Params,
		Major:  true,
	})
}

// surfaceMajorEvent shows the queue head when nothing is on screen.
func (e *Engine) surfaceMajorEvent(s *GameState) {
	if s.MajorEvent != nil || len(s.MajorEventQueue) == 0 {
		return
	}
	ev := s.MajorEventQueue[0]
	s.MajorEventQueue = cloneSlice(s.MajorEventQueue[1:])
	if len(s.MajorEventQueue) == 0 {
		s.MajorEventQueue = nil
	}
	s.MajorEvent = &ev
	e.holdPause(s, holdMajorEvent)
}

func (e *Engine) dismissMajorEvent(s *GameState) {
	if s.MajorEvent == nil {
		return
	}
	s.MajorEvent = nil
	e.releasePause(s, holdMajorEvent)
	e.surfaceMajorEvent(s)
}
