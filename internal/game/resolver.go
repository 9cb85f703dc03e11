package game

// resolve is one resolver pass: limit orders, then stop-loss and take-profit,
// then liquidation. Each trigger removes its order or position in the same
// pass, so nothing fires twice.
func (e *Engine) resolve(s *GameState) {
	e.fillPendingOrders(s)
	e.triggerStops(s)
	e.liquidate(s)
}

func (e *Engine) fillPendingOrders(s *GameState) {
	if len(s.Player.PendingOrders) == 0 {
		return
	}
	p := &s.Player
	kept := make([]PendingOrder, 0, len(p.PendingOrders))
	for _, o := range p.PendingOrders {
		a, ok := s.Assets[o.AssetID]
		if !ok {
			e.record(s, LogTrade, "log.order.cancelled", map[string]any{"order": o.ID, "reason": "unknown_asset"})
			continue
		}
		if e.banned(s, o.AssetID) {
			kept = append(kept, o)
			continue
		}
		total := o.Quantity * o.LimitPrice
		switch o.Kind {
		case BuyLimit:
			if a.Price > o.LimitPrice || p.Cash < total {
				kept = append(kept, o)
				continue
			}
			p.Cash -= total
			p.addHolding(o.AssetID, o.Quantity, o.LimitPrice)
		case SellLimit:
			if a.Price < o.LimitPrice {
				kept = append(kept, o)
				continue
			}
			if item, held := p.Portfolio[o.AssetID]; !held || item.Quantity < o.Quantity {
				e.record(s, LogTrade, "log.order.cancelled", map[string]any{"order": o.ID, "asset": o.AssetID, "reason": "insufficient_holdings"})
				continue
			}
			p.Cash += total
			p.removeHolding(o.AssetID, o.Quantity)
		default:
			continue
		}
		e.record(s, LogTrade, "log.order.filled", map[string]any{
			"order":    o.ID,
			"asset":    o.AssetID,
			"type":     string(o.Kind),
			"quantity": o.Quantity,
			"price":    o.LimitPrice,
			"total":    total,
		})
	}
	if len(kept) == 0 {
		kept = nil
	}
	p.PendingOrders = kept
}

func (e *Engine) triggerStops(s *GameState) {
	for _, id := range sortedKeys(s.Player.MarginPositions) {
		pos := s.Player.MarginPositions[id]
		a, ok := s.Assets[pos.AssetID]
		if !ok {
			continue
		}
		if price, reason, hit := pos.trigger(a.Price); hit {
			e.settlePosition(s, pos, price, reason)
		}
	}
}

// liquidate force-closes every position whose loss has consumed its margin.
// Nothing is returned to the player.
func (e *Engine) liquidate(s *GameState) {
	for _, id := range sortedKeys(s.Player.MarginPositions) {
		pos := s.Player.MarginPositions[id]
		a, ok := s.Assets[pos.AssetID]
		if !ok || pos.PnL(a.Price) > -pos.Margin {
			continue
		}
		delete(s.Player.MarginPositions, id)
		e.record(s, LogMargin, "log.margin.liquidated", map[string]any{
			"position": id,
			"asset":    pos.AssetID,
			"price":    a.Price,
			"margin":   pos.Margin,
		})
		e.log.Debug("position liquidated", "position", id, "asset", pos.AssetID, "price", a.Price)
	}
}

// settlePosition closes pos at price and credits its equity.
func (e *Engine) settlePosition(s *GameState, pos MarginPosition, price float64, reason string) {
	returned := pos.Equity(price)
	s.Player.Cash += returned
	delete(s.Player.MarginPositions, pos.ID)
	e.record(s, LogMargin, "log.margin.closed", map[string]any{
		"position": pos.ID,
		"asset":    pos.AssetID,
		"price":    price,
		"pnl":      pos.PnL(price),
		"returned": returned,
		"reason":   reason,
	})
}

// trigger reports the stop-loss or take-profit level crossed at price.
// Settlement happens at the level itself.
func (p MarginPosition) trigger(price float64) (float64, string, bool) {
	long := p.Side != Short
	if p.StopLoss > 0 && ((long && price <= p.StopLoss) || (!long && price >= p.StopLoss)) {
		return p.StopLoss, "stop_loss", true
	}
	if p.TakeProfit > 0 && ((long && price >= p.TakeProfit) || (!long && price <= p.TakeProfit)) {
		return p.TakeProfit, "take_profit", true
	}
	return 0, "", false
}

// addHolding merges a buy into the weighted-average cost basis.
func (p *Player) addHolding(assetID string, qty, price float64) {
	if p.Portfolio == nil {
		p.Portfolio = make(map[string]PortfolioItem)
	}
	item := p.Portfolio[assetID]
	total := item.Quantity + qty
	item.CostBasis = (item.CostBasis*item.Quantity + qty*price) / total
	item.AssetID = assetID
	item.Quantity = total
	p.Portfolio[assetID] = item
}

const dust = 1e-9

func (p *Player) removeHolding(assetID string, qty float64) {
	item := p.Portfolio[assetID]
	item.Quantity -= qty
	if item.Quantity <= dust {
		delete(p.Portfolio, assetID)
		return
	}
	p.Portfolio[assetID] = item
}
