package game

import (
	"errors"
	"fmt"
)

// Tuning holds every numeric constant of the simulation. DefaultTuning is the
// canonical set; a tuning file may override any subset.
type Tuning struct {
	Clock     ClockTuning     `yaml:"clock" toml:"clock"`
	Prices    PriceTuning     `yaml:"prices" toml:"prices"`
	Events    EventTuning     `yaml:"events" toml:"events"`
	Limits    LimitTuning     `yaml:"limits" toml:"limits"`
	Start     StartTuning     `yaml:"start" toml:"start"`
	Bank      BankTuning      `yaml:"bank" toml:"bank"`
	Corporate CorporateTuning `yaml:"corporate" toml:"corporate"`
	Politics  PoliticsTuning  `yaml:"politics" toml:"politics"`
	Analyst   AnalystTuning   `yaml:"analyst" toml:"analyst"`
	UI        UITuning        `yaml:"ui" toml:"ui"`
}

type ClockTuning struct {
	DayDurationMS         float64 `yaml:"day_duration_ms" toml:"day_duration_ms"`
	PriceUpdateIntervalMS float64 `yaml:"price_update_interval_ms" toml:"price_update_interval_ms"`
	MaxIntervalsPerTick   int     `yaml:"max_intervals_per_tick" toml:"max_intervals_per_tick"`
	MaxSpeed              float64 `yaml:"max_speed" toml:"max_speed"`
	MaxSkipDays           int     `yaml:"max_skip_days" toml:"max_skip_days"`
}

type PriceTuning struct {
	NoiseDamping  float64 `yaml:"noise_damping" toml:"noise_damping"`
	FactorDrift   float64 `yaml:"factor_drift" toml:"factor_drift"`
	DNADivisor    float64 `yaml:"dna_divisor" toml:"dna_divisor"`
	InterdayShock float64 `yaml:"interday_shock" toml:"interday_shock"`
	TrendScale    float64 `yaml:"trend_scale" toml:"trend_scale"`
	MeanReversion float64 `yaml:"mean_reversion" toml:"mean_reversion"`
	HistoryWindow int     `yaml:"history_window" toml:"history_window"`
	ScamChance    float64 `yaml:"scam_chance" toml:"scam_chance"`
	ScamCollapse  float64 `yaml:"scam_collapse" toml:"scam_collapse"`
	ScamTrend     float64 `yaml:"scam_trend" toml:"scam_trend"`
}

type EventTuning struct {
	MajorEventChance  float64 `yaml:"major_event_chance" toml:"major_event_chance"`
	MinDailyNews      int     `yaml:"min_daily_news" toml:"min_daily_news"`
	MaxDailyNews      int     `yaml:"max_daily_news" toml:"max_daily_news"`
	SentimentJitter   float64 `yaml:"sentiment_jitter" toml:"sentiment_jitter"`
	CompanyNewsChance float64 `yaml:"company_news_chance" toml:"company_news_chance"`
	NewsTickerSize    int     `yaml:"news_ticker_size" toml:"news_ticker_size"`
	NewsArchiveSize   int     `yaml:"news_archive_size" toml:"news_archive_size"`
}

type LimitTuning struct {
	LogSize     int     `yaml:"log_size" toml:"log_size"`
	MaxLeverage float64 `yaml:"max_leverage" toml:"max_leverage"`
	GraceDays   int     `yaml:"grace_days" toml:"grace_days"`
}

type StartTuning struct {
	Year             int     `yaml:"year" toml:"year"`
	Month            int     `yaml:"month" toml:"month"`
	Day              int     `yaml:"day" toml:"day"`
	Cash             float64 `yaml:"cash" toml:"cash"`
	LoanRate         float64 `yaml:"loan_rate" toml:"loan_rate"`
	PoliticalCapital int     `yaml:"political_capital" toml:"political_capital"`
}

type BankTuning struct {
	LoanLeverage           float64 `yaml:"loan_leverage" toml:"loan_leverage"`
	PrincipalAmortization  float64 `yaml:"principal_amortization" toml:"principal_amortization"`
	EarlyRepayBonus        float64 `yaml:"early_repay_bonus" toml:"early_repay_bonus"`
	DefermentPenalty       float64 `yaml:"deferment_penalty" toml:"deferment_penalty"`
	DefermentRateStep      float64 `yaml:"deferment_rate_step" toml:"deferment_rate_step"`
	MaxDeferments          int     `yaml:"max_deferments" toml:"max_deferments"`
	LoanActionsPerMonth    int     `yaml:"loan_actions_per_month" toml:"loan_actions_per_month"`
	PenaltyFineRate        float64 `yaml:"penalty_fine_rate" toml:"penalty_fine_rate"`
	TradeBanMonths         int     `yaml:"trade_ban_months" toml:"trade_ban_months"`
	VentureRate            float64 `yaml:"venture_rate" toml:"venture_rate"`
	VentureProfitShare     float64 `yaml:"venture_profit_share" toml:"venture_profit_share"`
	VentureProfitShareCap  float64 `yaml:"venture_profit_share_cap" toml:"venture_profit_share_cap"`
	VentureDeadlinePenalty float64 `yaml:"venture_deadline_penalty" toml:"venture_deadline_penalty"`
	VentureMinPC           int     `yaml:"venture_min_pc" toml:"venture_min_pc"`
	VentureMinIncome       float64 `yaml:"venture_min_income" toml:"venture_min_income"`
	VentureMinStateAssets  float64 `yaml:"venture_min_state_assets" toml:"venture_min_state_assets"`
	RevivalAmount          float64 `yaml:"revival_amount" toml:"revival_amount"`
	RevivalRate            float64 `yaml:"revival_rate" toml:"revival_rate"`
	RevivalPrincipalRate   float64 `yaml:"revival_principal_rate" toml:"revival_principal_rate"`
}

type CorporateTuning struct {
	MarketingCost     float64 `yaml:"marketing_cost" toml:"marketing_cost"`
	ResearchCost      float64 `yaml:"research_cost" toml:"research_cost"`
	LobbyingCost      float64 `yaml:"lobbying_cost" toml:"lobbying_cost"`
	ActionSuccess     float64 `yaml:"action_success" toml:"action_success"`
	ResearchBoost     float64 `yaml:"research_boost" toml:"research_boost"`
	TaxBreakMonths    int     `yaml:"tax_break_months" toml:"tax_break_months"`
	ComplicationCost  float64 `yaml:"complication_cost" toml:"complication_cost"`
	ComplicationDelay float64 `yaml:"complication_delay" toml:"complication_delay"`
	CriticalSuccess   float64 `yaml:"critical_success" toml:"critical_success"`
}

type PoliticsTuning struct {
	DonationPerPC    float64 `yaml:"donation_per_pc" toml:"donation_per_pc"`
	LocalLobbyPC     int     `yaml:"local_lobby_pc" toml:"local_lobby_pc"`
	LocalLobbyChance float64 `yaml:"local_lobby_chance" toml:"local_lobby_chance"`
	LocalLobbyTrend  float64 `yaml:"local_lobby_trend" toml:"local_lobby_trend"`
	InfluencePC      int     `yaml:"influence_pc" toml:"influence_pc"`
	InfluenceCash    float64 `yaml:"influence_cash" toml:"influence_cash"`
	InfluenceStep    float64 `yaml:"influence_step" toml:"influence_step"`
	InfluenceSuccess float64 `yaml:"influence_success" toml:"influence_success"`
	InfluenceFail    float64 `yaml:"influence_fail" toml:"influence_fail"`
}

type AnalystTuning struct {
	PredictionCost     float64 `yaml:"prediction_cost" toml:"prediction_cost"`
	AnalysisCost       float64 `yaml:"analysis_cost" toml:"analysis_cost"`
	PredictionAccuracy float64 `yaml:"prediction_accuracy" toml:"prediction_accuracy"`
}

type UITuning struct {
	PausingPanels []string `yaml:"pausing_panels" toml:"pausing_panels"`
	Languages     []string `yaml:"languages" toml:"languages"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Clock: ClockTuning{
			DayDurationMS:         180_000,
			PriceUpdateIntervalMS: 15_000,
			MaxIntervalsPerTick:   12,
			MaxSpeed:              100,
			MaxSkipDays:           365,
		},
		Prices: PriceTuning{
			NoiseDamping:  0.05,
			FactorDrift:   0.1,
			DNADivisor:    20,
			InterdayShock: 0.25,
			TrendScale:    1,
			MeanReversion: 0.05,
			HistoryWindow: 365,
			ScamChance:    0.01,
			ScamCollapse:  0.05,
			ScamTrend:     -0.05,
		},
		Events: EventTuning{
			MajorEventChance:  0.03,
			MinDailyNews:      2,
			MaxDailyNews:      5,
			SentimentJitter:   0.01,
			CompanyNewsChance: 0.02,
			NewsTickerSize:    10,
			NewsArchiveSize:   50,
		},
		Limits: LimitTuning{
			LogSize:     200,
			MaxLeverage: 10,
			GraceDays:   30,
		},
		Start: StartTuning{
			Year:             2024,
			Month:            1,
			Day:              1,
			Cash:             1_000_000,
			LoanRate:         0.05,
			PoliticalCapital: 100,
		},
		Bank: BankTuning{
			LoanLeverage:           2,
			PrincipalAmortization:  0.02,
			EarlyRepayBonus:        0.02,
			DefermentPenalty:       2_299,
			DefermentRateStep:      0.0015,
			MaxDeferments:          24,
			LoanActionsPerMonth:    3,
			PenaltyFineRate:        0.3,
			TradeBanMonths:         1,
			VentureRate:            0.075,
			VentureProfitShare:     0.2,
			VentureProfitShareCap:  0.3,
			VentureDeadlinePenalty: 1.5,
			VentureMinPC:           300,
			VentureMinIncome:       200_000,
			VentureMinStateAssets:  400_000,
			RevivalAmount:          1_000_000,
			RevivalRate:            0.10,
			RevivalPrincipalRate:   0.05,
		},
		Corporate: CorporateTuning{
			MarketingCost:     500_000,
			ResearchCost:      2_000_000,
			LobbyingCost:      1_000_000,
			ActionSuccess:     0.8,
			ResearchBoost:     0.05,
			TaxBreakMonths:    3,
			ComplicationCost:  0.05,
			ComplicationDelay: 0.10,
			CriticalSuccess:   0.20,
		},
		Politics: PoliticsTuning{
			DonationPerPC:    10_000,
			LocalLobbyPC:     250,
			LocalLobbyChance: 0.75,
			LocalLobbyTrend:  0.0005,
			InfluencePC:      500,
			InfluenceCash:    5_000_000,
			InfluenceStep:    0.05,
			InfluenceSuccess: 0.7,
			InfluenceFail:    0.2,
		},
		Analyst: AnalystTuning{
			PredictionCost:     70_000,
			AnalysisCost:       35_000,
			PredictionAccuracy: 0.7,
		},
		UI: UITuning{
			PausingPanels: []string{"global_influence", "immigration", "trade", "company", "bank", "politics", "analyst"},
			Languages:     []string{"en", "fa"},
		},
	}
}

func (t Tuning) Validate() error {
	var errs []error
	positive := map[string]float64{
		"clock.day_duration_ms":          t.Clock.DayDurationMS,
		"clock.price_update_interval_ms": t.Clock.PriceUpdateIntervalMS,
		"clock.max_speed":                t.Clock.MaxSpeed,
		"prices.dna_divisor":             t.Prices.DNADivisor,
		"limits.max_leverage":            t.Limits.MaxLeverage,
		"bank.revival_amount":            t.Bank.RevivalAmount,
		"politics.donation_per_pc":       t.Politics.DonationPerPC,
	}
	for name, v := range positive {
		if !finitePositive(v) {
			errs = append(errs, fmt.Errorf("%s must be > 0", name))
		}
	}
	counts := map[string]int{
		"clock.max_intervals_per_tick": t.Clock.MaxIntervalsPerTick,
		"clock.max_skip_days":          t.Clock.MaxSkipDays,
		"prices.history_window":        t.Prices.HistoryWindow,
		"events.news_ticker_size":      t.Events.NewsTickerSize,
		"events.news_archive_size":     t.Events.NewsArchiveSize,
		"limits.log_size":              t.Limits.LogSize,
		"limits.grace_days":            t.Limits.GraceDays,
	}
	for name, v := range counts {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0", name))
		}
	}
	probabilities := map[string]float64{
		"prices.scam_chance":          t.Prices.ScamChance,
		"prices.scam_collapse":        t.Prices.ScamCollapse,
		"prices.mean_reversion":       t.Prices.MeanReversion,
		"events.major_event_chance":   t.Events.MajorEventChance,
		"events.company_news_chance":  t.Events.CompanyNewsChance,
		"corporate.action_success":    t.Corporate.ActionSuccess,
		"politics.local_lobby_chance": t.Politics.LocalLobbyChance,
		"analyst.prediction_accuracy": t.Analyst.PredictionAccuracy,
	}
	for name, v := range probabilities {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1]", name))
		}
	}
	if t.Events.MinDailyNews < 0 || t.Events.MaxDailyNews < t.Events.MinDailyNews {
		errs = append(errs, errors.New("events daily news bounds are inconsistent"))
	}
	if t.Politics.InfluenceSuccess+t.Politics.InfluenceFail > 1 {
		errs = append(errs, errors.New("politics influence odds exceed 1"))
	}
	c := t.Corporate
	if !(c.ComplicationCost <= c.ComplicationDelay && c.ComplicationDelay <= c.CriticalSuccess && c.CriticalSuccess <= 1) {
		errs = append(errs, errors.New("corporate upgrade thresholds must be ascending"))
	}
	if len(t.UI.Languages) == 0 {
		errs = append(errs, errors.New("ui.languages must not be empty"))
	}
	start := NewDate(t.Start.Year, t.Start.Month, t.Start.Day)
	if start.Year != t.Start.Year || start.Month != t.Start.Month || start.Day != t.Start.Day {
		errs = append(errs, errors.New("start date is invalid"))
	}
	return errors.Join(errs...)
}
