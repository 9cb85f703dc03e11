package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpotBuyConservesCash(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")

	s = apply(t, e, s, SpotTrade{AssetID: "AAPL", Side: Buy, Quantity: 10, Price: 100})

	assert.Equal(t, 999_000.0, s.Player.Cash)
	item := s.Player.Portfolio["AAPL"]
	assert.Equal(t, 10.0, item.Quantity)
	assert.Equal(t, 100.0, item.CostBasis)
	assert.Equal(t, "log.trade.buy", s.Player.Log[len(s.Player.Log)-1].Key)
}

func TestSpotSellConservesCash(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s = apply(t, e, s, SpotTrade{AssetID: "AAPL", Side: Buy, Quantity: 10, Price: 100})
	s = apply(t, e, s, SpotTrade{AssetID: "AAPL", Side: Sell, Quantity: 4, Price: 120})

	assert.InDelta(t, 1_000_000-1_000+480, s.Player.Cash, 1e-9)
	assert.Equal(t, 6.0, s.Player.Portfolio["AAPL"].Quantity)
	assert.Equal(t, 100.0, s.Player.Portfolio["AAPL"].CostBasis)

	s = apply(t, e, s, SpotTrade{AssetID: "AAPL", Side: Sell, Quantity: 6, Price: 90})
	_, held := s.Player.Portfolio["AAPL"]
	assert.False(t, held)

	_, err := e.Apply(s, SpotTrade{AssetID: "AAPL", Side: Sell, Quantity: 1, Price: 90})
	assert.ErrorIs(t, err, ErrInsufficientHoldings)
}

func TestCostBasisIsWeightedAverage(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	buys := []struct{ qty, price float64 }{{10, 100}, {5, 130}, {20, 90}, {1, 1000}}

	var qty, spent float64
	for _, b := range buys {
		s = apply(t, e, s, SpotTrade{AssetID: "MSFT", Side: Buy, Quantity: b.qty, Price: b.price})
		qty += b.qty
		spent += b.qty * b.price
	}
	item := s.Player.Portfolio["MSFT"]
	assert.InDelta(t, qty, item.Quantity, 1e-9)
	assert.InDelta(t, spent/qty, item.CostBasis, 1e-9)
	assert.InDelta(t, 1_000_000-spent, s.Player.Cash, 1e-6)
}

func TestSpotTradeUsesMarketPriceWhenUnset(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	setPrice(&s, "PG", 150)

	s = apply(t, e, s, SpotTrade{AssetID: "PG", Side: Buy, Quantity: 2})
	assert.Equal(t, 1_000_000.0-300, s.Player.Cash)
}

func TestSpotTradeAccessRules(t *testing.T) {
	e := engineWith(0.5)
	us := newGame(t, e, "USA")
	cn := newGame(t, e, "CHN")

	_, err := e.Apply(us, SpotTrade{AssetID: "NY_RealEstate", Side: Buy, Quantity: 1})
	assert.NoError(t, err)
	_, err = e.Apply(cn, SpotTrade{AssetID: "NY_RealEstate", Side: Buy, Quantity: 1})
	assert.ErrorIs(t, err, ErrResidencyLocked)
	_, err = e.Apply(us, SpotTrade{AssetID: "SIE_DE", Side: Buy, Quantity: 1})
	assert.ErrorIs(t, err, ErrResidencyLocked)

	banned := us.Clone()
	banned.Player.TradeBans = []TradeBan{{AssetIDs: []string{"SAOC"}, Expiry: NewDate(2024, 2, 1)}}
	_, err = e.Apply(banned, SpotTrade{AssetID: "SAOC", Side: Buy, Quantity: 1})
	assert.ErrorIs(t, err, ErrTradeBanned)

	collapsed := us.Clone()
	a := collapsed.Assets["RUS_SCAM"]
	a.Collapsed = true
	collapsed.Assets["RUS_SCAM"] = a
	_, err = e.Apply(collapsed, SpotTrade{AssetID: "RUS_SCAM", Side: Buy, Quantity: 1})
	assert.ErrorIs(t, err, ErrAssetCollapsed)

	for _, bad := range []SpotTrade{
		{AssetID: "AAPL", Side: Buy, Quantity: 0},
		{AssetID: "AAPL", Side: Buy, Quantity: -1},
		{AssetID: "AAPL", Side: Buy, Quantity: 1, Price: -5},
		{AssetID: "AAPL", Side: "hold", Quantity: 1},
	} {
		_, err := e.Apply(us, bad)
		assert.ErrorIs(t, err, ErrInvalidAction, "%+v", bad)
	}
}

func TestMarginLiquidation(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")

	s = apply(t, e, s, OpenMarginPosition{AssetID: "AAPL", Side: Long, Quantity: 10, Price: 100, Leverage: 5})
	require.Len(t, s.Player.MarginPositions, 1)
	var pos MarginPosition
	for _, p := range s.Player.MarginPositions {
		pos = p
	}
	assert.Equal(t, 200.0, pos.Margin)
	assert.Equal(t, 999_800.0, s.Player.Cash)

	setPrice(&s, "AAPL", 70)
	// one price interval: flat noise, then the resolver
	s = apply(t, e, s, Tick{DeltaMS: 15_000})

	assert.Empty(t, s.Player.MarginPositions)
	assert.Equal(t, 999_800.0, s.Player.Cash)
	assert.Equal(t, "log.margin.liquidated", s.Player.Log[len(s.Player.Log)-1].Key)
}

func TestShortLiquidationAtExactMargin(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s = apply(t, e, s, OpenMarginPosition{AssetID: "GOLD", Side: Short, Quantity: 2, Price: 1000, Leverage: 10})
	cash := s.Player.Cash

	// margin is 200, so a 100 rise consumes it exactly
	setPrice(&s, "GOLD", 1100)
	e.resolve(&s)

	assert.Empty(t, s.Player.MarginPositions)
	assert.Equal(t, cash, s.Player.Cash)
}

func TestMarginCloseReturnsEquity(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s = apply(t, e, s, OpenMarginPosition{AssetID: "AAPL", Side: Long, Quantity: 10, Price: 100, Leverage: 5})
	var posID string
	for k := range s.Player.MarginPositions {
		posID = k
	}

	s = apply(t, e, s, CloseMarginPosition{PositionID: posID, ClosingPrice: 110})
	assert.Equal(t, 999_800.0+200+100, s.Player.Cash)
	assert.Empty(t, s.Player.MarginPositions)

	_, err := e.Apply(s, CloseMarginPosition{PositionID: posID})
	assert.ErrorIs(t, err, ErrUnknownPosition)
}

func TestStopLossAndTakeProfit(t *testing.T) {
	tests := []struct {
		name     string
		side     PositionSide
		stop     float64
		target   float64
		price    float64
		returned float64
	}{
		{"long stop", Long, 90, 0, 85, 200 - 100},
		{"long target", Long, 0, 120, 125, 200 + 200},
		{"short stop", Short, 110, 0, 115, 200 - 100},
		{"short target", Short, 0, 80, 75, 200 + 200},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := engineWith(0.5)
			s := newGame(t, e, "USA")
			s = apply(t, e, s, OpenMarginPosition{
				AssetID: "AAPL", Side: tc.side, Quantity: 10, Price: 100, Leverage: 5,
				StopLoss: tc.stop, TakeProfit: tc.target,
			})
			cash := s.Player.Cash
			setPrice(&s, "AAPL", tc.price)
			e.resolve(&s)

			assert.Empty(t, s.Player.MarginPositions)
			assert.InDelta(t, cash+tc.returned, s.Player.Cash, 1e-9)
		})
	}
}

func TestOpenMarginValidation(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	for _, bad := range []OpenMarginPosition{
		{AssetID: "AAPL", Side: Long, Quantity: 1, Price: 100, Leverage: 0.5},
		{AssetID: "AAPL", Side: Long, Quantity: 1, Price: 100, Leverage: 11},
		{AssetID: "AAPL", Side: "sideways", Quantity: 1, Price: 100, Leverage: 2},
		{AssetID: "AAPL", Side: Long, Quantity: 1, Price: 100, Leverage: 2, StopLoss: 120},
		{AssetID: "AAPL", Side: Short, Quantity: 1, Price: 100, Leverage: 2, TakeProfit: 120},
	} {
		_, err := e.Apply(s, bad)
		assert.ErrorIs(t, err, ErrInvalidAction, "%+v", bad)
	}
	_, err := e.Apply(s, OpenMarginPosition{AssetID: "AAPL", Side: Long, Quantity: 1_000_000, Price: 100, Leverage: 2})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestBuyLimitFillsAtLimitPrice(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	setPrice(&s, "AAPL", 100)

	s = apply(t, e, s, PlacePendingOrder{AssetID: "AAPL", Kind: BuyLimit, Quantity: 5, LimitPrice: 90})
	require.Len(t, s.Player.PendingOrders, 1)
	assert.Equal(t, 1_000_000.0, s.Player.Cash)

	e.resolve(&s)
	assert.Len(t, s.Player.PendingOrders, 1, "price above limit")

	setPrice(&s, "AAPL", 85)
	e.resolve(&s)
	assert.Empty(t, s.Player.PendingOrders)
	assert.Equal(t, 1_000_000.0-450, s.Player.Cash)
	assert.Equal(t, PortfolioItem{AssetID: "AAPL", Quantity: 5, CostBasis: 90}, s.Player.Portfolio["AAPL"])

	e.resolve(&s)
	assert.Equal(t, 1_000_000.0-450, s.Player.Cash, "a filled order cannot fire twice")
}

func TestBuyLimitWaitsForCash(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s = apply(t, e, s, PlacePendingOrder{AssetID: "GOLD", Kind: BuyLimit, Quantity: 1000, LimitPrice: 1500})
	setPrice(&s, "GOLD", 1400)

	e.resolve(&s)
	assert.Len(t, s.Player.PendingOrders, 1)
	assert.Equal(t, 1_000_000.0, s.Player.Cash)

	s.Player.Cash = 2_000_000
	e.resolve(&s)
	assert.Empty(t, s.Player.PendingOrders)
	assert.Equal(t, 500_000.0, s.Player.Cash)
}

func TestSellLimitWithoutHoldingsIsCancelled(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s = apply(t, e, s, PlacePendingOrder{AssetID: "AAPL", Kind: SellLimit, Quantity: 5, LimitPrice: 150})
	setPrice(&s, "AAPL", 160)

	e.resolve(&s)
	assert.Empty(t, s.Player.PendingOrders)
	assert.Equal(t, 1_000_000.0, s.Player.Cash)
	assert.Equal(t, "log.order.cancelled", s.Player.Log[len(s.Player.Log)-1].Key)
}

func TestSellLimitFills(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s = apply(t, e, s, SpotTrade{AssetID: "AAPL", Side: Buy, Quantity: 5, Price: 100})
	s = apply(t, e, s, PlacePendingOrder{AssetID: "AAPL", Kind: SellLimit, Quantity: 5, LimitPrice: 150})
	setPrice(&s, "AAPL", 151)

	e.resolve(&s)
	assert.Empty(t, s.Player.PendingOrders)
	assert.Empty(t, s.Player.Portfolio)
	assert.Equal(t, 1_000_000.0-500+750, s.Player.Cash)
}

func TestCancelPendingOrder(t *testing.T) {
	e := engineWith(0.5)
	s := newGame(t, e, "USA")
	s = apply(t, e, s, PlacePendingOrder{AssetID: "AAPL", Kind: BuyLimit, Quantity: 1, LimitPrice: 10})
	id := s.Player.PendingOrders[0].ID

	s = apply(t, e, s, CancelPendingOrder{OrderID: id})
	assert.Empty(t, s.Player.PendingOrders)

	_, err := e.Apply(s, CancelPendingOrder{OrderID: id})
	assert.ErrorIs(t, err, ErrUnknownOrder)
}
