package game

import "maps"

// Clone returns a copy that shares no mutable memory with s, except asset
// histories which are append-by-copy.
func (s GameState) Clone() GameState {
	out := s
	out.Assets = maps.Clone(s.Assets)
	out.Player = s.Player.clone()
	out.NewsTicker = cloneNews(s.NewsTicker)
	out.NewsArchive = cloneNews(s.NewsArchive)
	if s.MajorEvent != nil {
		ev := s.MajorEvent.clone()
		out.MajorEvent = &ev
	}
	if s.MajorEventQueue != nil {
		out.MajorEventQueue = make([]MajorEvent, len(s.MajorEventQueue))
		for i, ev := range s.MajorEventQueue {
			out.MajorEventQueue[i] = ev.clone()
		}
	}
	if s.DailyNews != nil {
		out.DailyNews = make([]ScheduledNews, len(s.DailyNews))
		for i, n := range s.DailyNews {
			n.News = n.News.clone()
			out.DailyNews[i] = n
		}
	}
	if s.PenaltyRequired != nil {
		p := *s.PenaltyRequired
		out.PenaltyRequired = &p
	}
	out.PauseHolds = cloneSlice(s.PauseHolds)
	return out
}

func (p Player) clone() Player {
	out := p
	out.Portfolio = maps.Clone(p.Portfolio)
	out.MarginPositions = maps.Clone(p.MarginPositions)
	if p.Companies != nil {
		out.Companies = make([]Company, len(p.Companies))
		for i, c := range p.Companies {
			c.Effects = cloneSlice(c.Effects)
			out.Companies[i] = c
		}
	}
	out.VentureLoans = cloneSlice(p.VentureLoans)
	if p.RevivalLoan != nil {
		r := *p.RevivalLoan
		out.RevivalLoan = &r
	}
	out.PoliticalCapital = maps.Clone(p.PoliticalCapital)
	out.ResidencyHistory = cloneSlice(p.ResidencyHistory)
	out.PendingOrders = cloneSlice(p.PendingOrders)
	if p.Log != nil {
		out.Log = make([]LogEntry, len(p.Log))
		for i, e := range p.Log {
			e.Params = maps.Clone(e.Params)
			out.Log[i] = e
		}
	}
	if p.TradeBans != nil {
		out.TradeBans = make([]TradeBan, len(p.TradeBans))
		for i, b := range p.TradeBans {
			b.AssetIDs = cloneSlice(b.AssetIDs)
			out.TradeBans[i] = b
		}
	}
	if p.GraceExpiry != nil {
		d := *p.GraceExpiry
		out.GraceExpiry = &d
	}
	return out
}

func (n NewsItem) clone() NewsItem {
	n.Params = maps.Clone(n.Params)
	return n
}

func (e MajorEvent) clone() MajorEvent {
	e.Params = maps.Clone(e.Params)
	return e
}

func cloneNews(in []NewsItem) []NewsItem {
	if in == nil {
		return nil
	}
	out := make([]NewsItem, len(in))
	for i, n := range in {
		out[i] = n.clone()
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
