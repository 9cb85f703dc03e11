package game

import (
	"fmt"
	"math"
	"slices"
)

// checkTradable applies the market access rules shared by every trade path.
func (e *Engine) checkTradable(s *GameState, a Asset, opening bool) error {
	if opening && a.Collapsed {
		return fmt.Errorf("%w: %s", ErrAssetCollapsed, a.ID)
	}
	if e.banned(s, a.ID) {
		return fmt.Errorf("%w: %s", ErrTradeBanned, a.ID)
	}
	if a.ResidencyLocked {
		c, ok := e.residency(s)
		if !ok || !c.HasLocalMarket(a.ID) {
			return fmt.Errorf("%w: %s", ErrResidencyLocked, a.ID)
		}
	}
	return nil
}

func (e *Engine) lookupAsset(s *GameState, id string) (Asset, error) {
	a, ok := s.Assets[id]
	if !ok {
		return Asset{}, fmt.Errorf("%w: %q", ErrUnknownAsset, id)
	}
	return a, nil
}

// execPrice is the explicit price or, when zero, the current market price.
func execPrice(explicit float64, a Asset) (float64, error) {
	price := explicit
	if price == 0 {
		price = a.Price
	}
	if !finitePositive(price) {
		return 0, fmt.Errorf("%w: price %v", ErrInvalidAction, price)
	}
	return price, nil
}

func (e *Engine) spotTrade(s *GameState, act SpotTrade) error {
	a, err := e.lookupAsset(s, act.AssetID)
	if err != nil {
		return err
	}
	if !finitePositive(act.Quantity) {
		return fmt.Errorf("%w: quantity %v", ErrInvalidAction, act.Quantity)
	}
	price, err := execPrice(act.Price, a)
	if err != nil {
		return err
	}
	p := &s.Player
	total := act.Quantity * price

	switch act.Side {
	case Buy:
		if err := e.checkTradable(s, a, true); err != nil {
			return err
		}
		if p.Cash < total {
			return ErrInsufficientFunds
		}
		p.Cash -= total
		p.addHolding(a.ID, act.Quantity, price)
		e.record(s, LogTrade, "log.trade.buy", map[string]any{
			"asset":    a.ID,
			"quantity": act.Quantity,
			"price":    price,
			"total":    total,
		})
	case Sell:
		if err := e.checkTradable(s, a, false); err != nil {
			return err
		}
		item, held := p.Portfolio[a.ID]
		if !held || item.Quantity+dust < act.Quantity {
			return ErrInsufficientHoldings
		}
		p.Cash += total
		p.removeHolding(a.ID, act.Quantity)
		e.record(s, LogTrade, "log.trade.sell", map[string]any{
			"asset":    a.ID,
			"quantity": act.Quantity,
			"price":    price,
			"total":    total,
			"pnl":      (price - item.CostBasis) * act.Quantity,
		})
	default:
		return fmt.Errorf("%w: side %q", ErrInvalidAction, act.Side)
	}
	return nil
}

func (e *Engine) openMargin(s *GameState, act OpenMarginPosition) error {
	a, err := e.lookupAsset(s, act.AssetID)
	if err != nil {
		return err
	}
	if act.Side != Long && act.Side != Short {
		return fmt.Errorf("%w: side %q", ErrInvalidAction, act.Side)
	}
	if !finitePositive(act.Quantity) {
		return fmt.Errorf("%w: quantity %v", ErrInvalidAction, act.Quantity)
	}
	if act.Leverage < 1 || act.Leverage > e.tuning.Limits.MaxLeverage || math.IsNaN(act.Leverage) {
		return fmt.Errorf("%w: leverage %v", ErrInvalidAction, act.Leverage)
	}
	price, err := execPrice(act.Price, a)
	if err != nil {
		return err
	}
	if err := validTriggers(act.Side, price, act.StopLoss, act.TakeProfit); err != nil {
		return err
	}
	if err := e.checkTradable(s, a, true); err != nil {
		return err
	}
	margin := act.Quantity * price / act.Leverage
	if s.Player.Cash < margin {
		return ErrInsufficientFunds
	}

	pos := MarginPosition{
		ID:         e.ids.NewID(),
		AssetID:    a.ID,
		Quantity:   act.Quantity,
		EntryPrice: price,
		Leverage:   act.Leverage,
		Side:       act.Side,
		Margin:     margin,
		StopLoss:   act.StopLoss,
		TakeProfit: act.TakeProfit,
		OpenedOn:   s.Date.Calendar(),
	}
	if s.Player.MarginPositions == nil {
		s.Player.MarginPositions = make(map[string]MarginPosition)
	}
	s.Player.Cash -= margin
	s.Player.MarginPositions[pos.ID] = pos
	e.record(s, LogMargin, "log.margin.opened", map[string]any{
		"position": pos.ID,
		"asset":    a.ID,
		"side":     string(pos.Side),
		"quantity": pos.Quantity,
		"price":    price,
		"leverage": pos.Leverage,
		"margin":   margin,
	})
	return nil
}

// validTriggers requires a stop on the losing side of entry and a target on
// the winning side. Zero means unset.
func validTriggers(side PositionSide, entry, stop, target float64) error {
	for _, v := range []float64{stop, target} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: trigger %v", ErrInvalidAction, v)
		}
	}
	long := side == Long
	if stop > 0 && ((long && stop >= entry) || (!long && stop <= entry)) {
		return fmt.Errorf("%w: stop loss %v on the wrong side of %v", ErrInvalidAction, stop, entry)
	}
	if target > 0 && ((long && target <= entry) || (!long && target >= entry)) {
		return fmt.Errorf("%w: take profit %v on the wrong side of %v", ErrInvalidAction, target, entry)
	}
	return nil
}

func (e *Engine) closeMargin(s *GameState, act CloseMarginPosition) error {
	pos, ok := s.Player.MarginPositions[act.PositionID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPosition, act.PositionID)
	}
	a, err := e.lookupAsset(s, pos.AssetID)
	if err != nil {
		return err
	}
	price, err := execPrice(act.ClosingPrice, a)
	if err != nil {
		return err
	}
	e.settlePosition(s, pos, price, "manual")
	return nil
}

func (e *Engine) placeOrder(s *GameState, act PlacePendingOrder) error {
	a, err := e.lookupAsset(s, act.AssetID)
	if err != nil {
		return err
	}
	if act.Kind != BuyLimit && act.Kind != SellLimit {
		return fmt.Errorf("%w: order type %q", ErrInvalidAction, act.Kind)
	}
	if !finitePositive(act.Quantity) || !finitePositive(act.LimitPrice) {
		return fmt.Errorf("%w: quantity %v at %v", ErrInvalidAction, act.Quantity, act.LimitPrice)
	}
	if err := e.checkTradable(s, a, act.Kind == BuyLimit); err != nil {
		return err
	}
	o := PendingOrder{
		ID:         e.ids.NewID(),
		AssetID:    a.ID,
		Kind:       act.Kind,
		Quantity:   act.Quantity,
		LimitPrice: act.LimitPrice,
		PlacedOn:   s.Date.Calendar(),
	}
	s.Player.PendingOrders = append(s.Player.PendingOrders, o)
	e.record(s, LogTrade, "log.order.placed", map[string]any{
		"order":    o.ID,
		"asset":    o.AssetID,
		"type":     string(o.Kind),
		"quantity": o.Quantity,
		"price":    o.LimitPrice,
	})
	return nil
}

func (e *Engine) cancelOrder(s *GameState, act CancelPendingOrder) error {
	orders := s.Player.PendingOrders
	i := slices.IndexFunc(orders, func(o PendingOrder) bool { return o.ID == act.OrderID })
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownOrder, act.OrderID)
	}
	o := orders[i]
	s.Player.PendingOrders = nilIfEmpty(slices.Delete(orders, i, i+1))
	e.record(s, LogTrade, "log.order.cancelled", map[string]any{"order": o.ID, "asset": o.AssetID, "reason": "player"})
	return nil
}
