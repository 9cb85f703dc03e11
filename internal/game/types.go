package game

import "deeptrader/internal/catalog"

type Candle struct {
	Date  GameDate `json:"date"`
	Open  float64  `json:"open"`
	High  float64  `json:"high"`
	Low   float64  `json:"low"`
	Close float64  `json:"close"`
}

// Asset is the live market state of one instrument. History is never mutated
// in place: appending always allocates, so clones may share it.
type Asset struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Category        catalog.Category `json:"category"`
	Price           float64          `json:"price"`
	BasePrice       float64          `json:"base_price"`
	Volatility      float64          `json:"volatility"`
	Trend           float64          `json:"trend"`
	DNA             catalog.Vector   `json:"dna"`
	History         []Candle         `json:"price_history"`
	DayOpen         float64          `json:"day_open"`
	DayHigh         float64          `json:"day_high"`
	DayLow          float64          `json:"day_low"`
	StateOwned      bool             `json:"is_state_owned,omitempty"`
	Scam            bool             `json:"is_scam,omitempty"`
	Collapsed       bool             `json:"collapsed,omitempty"`
	ResidencyLocked bool             `json:"residency_locked,omitempty"`
}

type PortfolioItem struct {
	AssetID   string  `json:"asset_id"`
	Quantity  float64 `json:"quantity"`
	CostBasis float64 `json:"cost_basis"`
}

type PositionSide string

const (
	Long  PositionSide = "long"
	Short PositionSide = "short"
)

type MarginPosition struct {
	ID         string       `json:"id"`
	AssetID    string       `json:"asset_id"`
	Quantity   float64      `json:"quantity"`
	EntryPrice float64      `json:"entry_price"`
	Leverage   float64      `json:"leverage"`
	Side       PositionSide `json:"type"`
	Margin     float64      `json:"margin"`
	StopLoss   float64      `json:"stop_loss,omitempty"`
	TakeProfit float64      `json:"take_profit,omitempty"`
	OpenedOn   GameDate     `json:"opened_on"`
}

// PnL at the given price.
func (p MarginPosition) PnL(price float64) float64 {
	if p.Side == Short {
		return (p.EntryPrice - price) * p.Quantity
	}
	return (price - p.EntryPrice) * p.Quantity
}

// Equity is the cash returned if the position closed at price, never negative.
func (p MarginPosition) Equity(price float64) float64 {
	return clampMin(p.Margin+p.PnL(price), 0)
}

type OrderKind string

const (
	BuyLimit  OrderKind = "buy-limit"
	SellLimit OrderKind = "sell-limit"
)

type PendingOrder struct {
	ID         string    `json:"id"`
	AssetID    string    `json:"asset_id"`
	Kind       OrderKind `json:"type"`
	Quantity   float64   `json:"quantity"`
	LimitPrice float64   `json:"limit_price"`
	PlacedOn   GameDate  `json:"placed_on"`
}

type EffectKind string

const (
	IncomeHalt EffectKind = "income_halt"
	TaxBreak   EffectKind = "tax_break"
)

type CompanyEffect struct {
	Kind           EffectKind `json:"type"`
	DurationMonths int        `json:"duration_months"`
}

type Company struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Type          catalog.CompanyType `json:"type"`
	Level         int                 `json:"level"`
	MonthlyIncome float64             `json:"monthly_income"`
	CountryID     string              `json:"country_id"`
	Effects       []CompanyEffect     `json:"effects"`
}

type Loan struct {
	Amount            float64 `json:"amount"`
	InterestRate      float64 `json:"interest_rate"`
	DefermentsUsed    int     `json:"deferments_used"`
	DeferredThisMonth bool    `json:"is_deferred_this_month"`
}

type VentureLoan struct {
	ID                string   `json:"id"`
	Principal         float64  `json:"principal"`
	InterestRate      float64  `json:"interest_rate"`
	CompanyID         string   `json:"company_id,omitempty"`
	Deadline          GameDate `json:"deadline_date"`
	ProfitShareRepaid float64  `json:"profit_share_repaid"`
}

type RevivalLoan struct {
	Principal    float64  `json:"principal"`
	Outstanding  float64  `json:"outstanding"`
	InterestRate float64  `json:"interest_rate"`
	TakenOn      GameDate `json:"taken_on"`
}

type TradeBan struct {
	AssetIDs []string `json:"asset_ids"`
	Expiry   GameDate `json:"expiry_date"`
}

func (b TradeBan) Covers(assetID string) bool {
	for _, id := range b.AssetIDs {
		if id == assetID {
			return true
		}
	}
	return false
}

type PenaltyPrompt struct {
	LoanAmount float64 `json:"loan_amount"`
}

type BankruptcyState string

const (
	BankruptcyNone     BankruptcyState = "none"
	BankruptcyGrace    BankruptcyState = "grace_period"
	BankruptcyRevival  BankruptcyState = "revival_loan"
	BankruptcyGameOver BankruptcyState = "game_over"
)

type GameOverReason string

const (
	ReasonExecution GameOverReason = "execution"
	ReasonPrison    GameOverReason = "prison"
)

type LogKind string

const (
	LogTrade      LogKind = "trade"
	LogMargin     LogKind = "margin"
	LogLoan       LogKind = "loan"
	LogCorporate  LogKind = "corporate"
	LogPolitics   LogKind = "politics"
	LogSystem     LogKind = "system"
	LogBankruptcy LogKind = "bankruptcy"
	LogMarket     LogKind = "market"
)

// LogEntry carries a translation key plus parameters, never prose.
type LogEntry struct {
	ID     string         `json:"id"`
	Date   GameDate       `json:"date"`
	Kind   LogKind        `json:"type"`
	Key    string         `json:"key"`
	Params map[string]any `json:"params,omitempty"`
}

type Player struct {
	Name                 string                    `json:"name"`
	Cash                 float64                   `json:"cash"`
	Portfolio            map[string]PortfolioItem  `json:"portfolio"`
	MarginPositions      map[string]MarginPosition `json:"margin_positions"`
	Companies            []Company                 `json:"companies"`
	Loan                 Loan                      `json:"loan"`
	VentureLoans         []VentureLoan             `json:"venture_loans"`
	RevivalLoan          *RevivalLoan              `json:"revival_loan,omitempty"`
	PoliticalCapital     map[string]int            `json:"political_capital"`
	Residency            string                    `json:"current_residency"`
	ResidencyHistory     []string                  `json:"residency_history"`
	PendingOrders        []PendingOrder            `json:"pending_orders"`
	Log                  []LogEntry                `json:"log"`
	TradeBans            []TradeBan                `json:"trade_bans"`
	LoanActionsThisMonth int                       `json:"loan_actions_this_month"`
	Bankruptcy           BankruptcyState           `json:"bankruptcy_state"`
	GraceExpiry          *GameDate                 `json:"grace_period_expiry,omitempty"`
	GameOverReason       GameOverReason            `json:"game_over_reason,omitempty"`
}

func (p Player) company(id string) (int, bool) {
	for i, c := range p.Companies {
		if c.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (p Player) totalPoliticalCapital() int {
	total := 0
	for _, v := range p.PoliticalCapital {
		total += v
	}
	return total
}

type NewsItem struct {
	ID     string         `json:"id"`
	Source string         `json:"source"`
	Key    string         `json:"key"`
	Params map[string]any `json:"params,omitempty"`
	Major  bool           `json:"major,omitempty"`
}

type MajorEvent struct {
	ID             string         `json:"id"`
	TitleKey       string         `json:"title_key"`
	DescriptionKey string         `json:"description_key"`
	Params         map[string]any `json:"params,omitempty"`
	Effects        catalog.Vector `json:"effects"`
}

type ScheduledNews struct {
	TriggerHour int      `json:"trigger_hour"`
	News        NewsItem `json:"news"`
	Triggered   bool     `json:"triggered"`
}

type GameState struct {
	Date                   GameDate         `json:"date"`
	Speed                  float64          `json:"game_speed"`
	Paused                 bool             `json:"is_paused"`
	Simulating             bool             `json:"is_simulating"`
	Assets                 map[string]Asset `json:"assets"`
	Factors                catalog.Vector   `json:"global_factors"`
	RepricedFactors        catalog.Vector   `json:"repriced_factors"`
	Player                 Player           `json:"player"`
	NewsTicker             []NewsItem       `json:"news_ticker"`
	NewsArchive            []NewsItem       `json:"news_archive"`
	MajorEvent             *MajorEvent      `json:"major_event"`
	MajorEventQueue        []MajorEvent     `json:"major_event_queue"`
	DailyNews              []ScheduledNews  `json:"daily_news_schedule"`
	PriceUpdateAccumulator float64          `json:"price_update_accumulator"`
	Language               string           `json:"language"`
	PenaltyRequired        *PenaltyPrompt   `json:"penalty_required,omitempty"`
	ActivePanel            string           `json:"active_panel,omitempty"`
	PauseHolds             []string         `json:"pause_holds,omitempty"`
	AutoPaused             bool             `json:"auto_paused,omitempty"`
}

func (s GameState) GameOver() bool {
	return s.Player.Bankruptcy == BankruptcyGameOver
}

func (s GameState) Started() bool {
	return s.Player.Name != "" && s.Player.Residency != ""
}
