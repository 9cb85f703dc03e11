package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"deeptrader/internal/catalog"
)

type ActionType string

const (
	ActLoadState              ActionType = "LOAD_STATE"
	ActSetPaused              ActionType = "SET_PAUSED"
	ActSetSpeed               ActionType = "SET_SPEED"
	ActSetLanguage            ActionType = "SET_LANGUAGE"
	ActTick                   ActionType = "TICK"
	ActAdvanceDay             ActionType = "ADVANCE_DAY"
	ActSkipDays               ActionType = "SKIP_DAYS"
	ActSetInitialState        ActionType = "SET_INITIAL_STATE"
	ActSpotTrade              ActionType = "SPOT_TRADE"
	ActOpenMarginPosition     ActionType = "OPEN_MARGIN_POSITION"
	ActCloseMarginPosition    ActionType = "CLOSE_MARGIN_POSITION"
	ActPlacePendingOrder      ActionType = "PLACE_PENDING_ORDER"
	ActCancelPendingOrder     ActionType = "CANCEL_PENDING_ORDER"
	ActDismissMajorEvent      ActionType = "DISMISS_MAJOR_EVENT"
	ActEstablishCompany       ActionType = "ESTABLISH_COMPANY"
	ActUpgradeCompany         ActionType = "UPGRADE_COMPANY"
	ActExecuteCorporateAction ActionType = "EXECUTE_CORPORATE_ACTION"
	ActTakeLoan               ActionType = "TAKE_LOAN"
	ActRepayLoan              ActionType = "REPAY_LOAN"
	ActDeferLoanPayment       ActionType = "DEFER_LOAN_PAYMENT"
	ActTakeVentureLoan        ActionType = "TAKE_VENTURE_LOAN"
	ActTakeRevivalLoan        ActionType = "TAKE_REVIVAL_LOAN"
	ActChoosePenalty          ActionType = "CHOOSE_PENALTY"
	ActChangeResidency        ActionType = "CHANGE_RESIDENCY"
	ActDonate                 ActionType = "DONATE"
	ActLobbyIndustry          ActionType = "LOBBY_INDUSTRY"
	ActGlobalInfluence        ActionType = "GLOBAL_INFLUENCE"
	ActBuyAnalystReport       ActionType = "BUY_ANALYST_REPORT"
	ActOpenPanel              ActionType = "OPEN_PANEL"
	ActClosePanel             ActionType = "CLOSE_PANEL"
)

// Action is one member of the reducer's action union.
type Action interface {
	Type() ActionType
}

type TradeSide string

const (
	Buy  TradeSide = "buy"
	Sell TradeSide = "sell"
)

type CorporateActionKind string

const (
	Marketing CorporateActionKind = "marketing"
	Research  CorporateActionKind = "research"
	Lobbying  CorporateActionKind = "lobbying"
)

type Facility string

const (
	FacilityStandard Facility = "standard"
	FacilityRevival  Facility = "revival"
)

type PenaltyKind string

const (
	PenaltyFine PenaltyKind = "fine"
	PenaltyBan  PenaltyKind = "ban"
)

type InfluenceDirection string

const (
	Promote InfluenceDirection = "promote"
	Disrupt InfluenceDirection = "disrupt"
)

type ReportKind string

const (
	ReportPrediction ReportKind = "prediction"
	ReportAnalysis   ReportKind = "analysis"
)

type LoadState struct {
	State GameState
}

type SetPaused struct {
	Paused bool `json:"paused"`
}

type SetSpeed struct {
	Speed float64 `json:"speed"`
}

type SetLanguage struct {
	Language string `json:"language"`
}

type Tick struct {
	DeltaMS float64 `json:"delta_ms"`
}

type AdvanceDay struct{}

type SkipDays struct {
	Days int `json:"days"`
}

type SetInitialState struct {
	PlayerName string `json:"player_name"`
	CountryID  string `json:"country_id"`
}

// SpotTrade executes at Price, or at the market price when Price is zero.
type SpotTrade struct {
	AssetID  string    `json:"asset_id"`
	Side     TradeSide `json:"side"`
	Quantity float64   `json:"quantity"`
	Price    float64   `json:"price,omitempty"`
}

type OpenMarginPosition struct {
	AssetID    string       `json:"asset_id"`
	Side       PositionSide `json:"side"`
	Quantity   float64      `json:"quantity"`
	Price      float64      `json:"price,omitempty"`
	Leverage   float64      `json:"leverage"`
	StopLoss   float64      `json:"stop_loss,omitempty"`
	TakeProfit float64      `json:"take_profit,omitempty"`
}

type CloseMarginPosition struct {
	PositionID   string  `json:"position_id"`
	ClosingPrice float64 `json:"closing_price,omitempty"`
}

type PlacePendingOrder struct {
	AssetID    string    `json:"asset_id"`
	Kind       OrderKind `json:"type"`
	Quantity   float64   `json:"quantity"`
	LimitPrice float64   `json:"limit_price"`
}

type CancelPendingOrder struct {
	OrderID string `json:"order_id"`
}

type DismissMajorEvent struct{}

type EstablishCompany struct {
	Name        string              `json:"name"`
	CompanyType catalog.CompanyType `json:"type"`
}

type UpgradeCompany struct {
	CompanyID string `json:"company_id"`
}

type ExecuteCorporateAction struct {
	CompanyID string              `json:"company_id"`
	Kind      CorporateActionKind `json:"kind"`
}

type TakeLoan struct {
	Amount float64 `json:"amount"`
}

type RepayLoan struct {
	Amount   float64  `json:"amount"`
	Facility Facility `json:"facility,omitempty"`
}

type DeferLoanPayment struct{}

type TakeVentureLoan struct {
	Amount float64 `json:"amount"`
}

type TakeRevivalLoan struct{}

type ChoosePenalty struct {
	Kind PenaltyKind `json:"kind"`
}

type ChangeResidency struct {
	CountryID string `json:"country_id"`
}

type Donate struct {
	PartyID string  `json:"party_id"`
	Amount  float64 `json:"amount"`
}

type LobbyIndustry struct {
	Category catalog.Category `json:"category"`
}

type GlobalInfluence struct {
	Factor    catalog.Factor     `json:"factor"`
	Direction InfluenceDirection `json:"direction"`
}

type BuyAnalystReport struct {
	AssetID string     `json:"asset_id"`
	Kind    ReportKind `json:"kind"`
}

type OpenPanel struct {
	Panel string `json:"panel"`
}

type ClosePanel struct{}

func (LoadState) Type() ActionType              { return ActLoadState }
func (SetPaused) Type() ActionType              { return ActSetPaused }
func (SetSpeed) Type() ActionType               { return ActSetSpeed }
func (SetLanguage) Type() ActionType            { return ActSetLanguage }
func (Tick) Type() ActionType                   { return ActTick }
func (AdvanceDay) Type() ActionType             { return ActAdvanceDay }
func (SkipDays) Type() ActionType               { return ActSkipDays }
func (SetInitialState) Type() ActionType        { return ActSetInitialState }
func (SpotTrade) Type() ActionType              { return ActSpotTrade }
func (OpenMarginPosition) Type() ActionType     { return ActOpenMarginPosition }
func (CloseMarginPosition) Type() ActionType    { return ActCloseMarginPosition }
func (PlacePendingOrder) Type() ActionType      { return ActPlacePendingOrder }
func (CancelPendingOrder) Type() ActionType     { return ActCancelPendingOrder }
func (DismissMajorEvent) Type() ActionType      { return ActDismissMajorEvent }
func (EstablishCompany) Type() ActionType       { return ActEstablishCompany }
func (UpgradeCompany) Type() ActionType         { return ActUpgradeCompany }
func (ExecuteCorporateAction) Type() ActionType { return ActExecuteCorporateAction }
func (TakeLoan) Type() ActionType               { return ActTakeLoan }
func (RepayLoan) Type() ActionType              { return ActRepayLoan }
func (DeferLoanPayment) Type() ActionType       { return ActDeferLoanPayment }
func (TakeVentureLoan) Type() ActionType        { return ActTakeVentureLoan }
func (TakeRevivalLoan) Type() ActionType        { return ActTakeRevivalLoan }
func (ChoosePenalty) Type() ActionType          { return ActChoosePenalty }
func (ChangeResidency) Type() ActionType        { return ActChangeResidency }
func (Donate) Type() ActionType                 { return ActDonate }
func (LobbyIndustry) Type() ActionType          { return ActLobbyIndustry }
func (GlobalInfluence) Type() ActionType        { return ActGlobalInfluence }
func (BuyAnalystReport) Type() ActionType       { return ActBuyAnalystReport }
func (OpenPanel) Type() ActionType              { return ActOpenPanel }
func (ClosePanel) Type() ActionType             { return ActClosePanel }

// Envelope is the wire form of an action.
type Envelope struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type decoder func(json.RawMessage) (Action, error)

func decodeAs[T Action](payload json.RawMessage) (Action, error) {
	var a T
	if len(payload) == 0 || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return a, nil
	}
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, err
	}
	return a, nil
}

var decoders = map[ActionType]decoder{
	ActLoadState: func(p json.RawMessage) (Action, error) {
		st, err := DecodeState(p)
		if err != nil {
			return nil, err
		}
		return LoadState{State: st}, nil
	},
	ActSetPaused:              decodeAs[SetPaused],
	ActSetSpeed:               decodeAs[SetSpeed],
	ActSetLanguage:            decodeAs[SetLanguage],
	ActTick:                   decodeAs[Tick],
	ActAdvanceDay:             decodeAs[AdvanceDay],
	ActSkipDays:               decodeAs[SkipDays],
	ActSetInitialState:        decodeAs[SetInitialState],
	ActSpotTrade:              decodeAs[SpotTrade],
	ActOpenMarginPosition:     decodeAs[OpenMarginPosition],
	ActCloseMarginPosition:    decodeAs[CloseMarginPosition],
	ActPlacePendingOrder:      decodeAs[PlacePendingOrder],
	ActCancelPendingOrder:     decodeAs[CancelPendingOrder],
	ActDismissMajorEvent:      decodeAs[DismissMajorEvent],
	ActEstablishCompany:       decodeAs[EstablishCompany],
	ActUpgradeCompany:         decodeAs[UpgradeCompany],
	ActExecuteCorporateAction: decodeAs[ExecuteCorporateAction],
	ActTakeLoan:               decodeAs[TakeLoan],
	ActRepayLoan:              decodeAs[RepayLoan],
	ActDeferLoanPayment:       decodeAs[DeferLoanPayment],
	ActTakeVentureLoan:        decodeAs[TakeVentureLoan],
	ActTakeRevivalLoan:        decodeAs[TakeRevivalLoan],
	ActChoosePenalty:          decodeAs[ChoosePenalty],
	ActChangeResidency:        decodeAs[ChangeResidency],
	ActDonate:                 decodeAs[Donate],
	ActLobbyIndustry:          decodeAs[LobbyIndustry],
	ActGlobalInfluence:        decodeAs[GlobalInfluence],
	ActBuyAnalystReport:       decodeAs[BuyAnalystReport],
	ActOpenPanel:              decodeAs[OpenPanel],
	ActClosePanel:             decodeAs[ClosePanel],
}

// ActionTypes lists every known action type, sorted.
func ActionTypes() []ActionType {
	out := make([]ActionType, 0, len(decoders))
	for t := range decoders {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func DecodeAction(raw []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	return env.Decode()
}

func (env Envelope) Decode() (Action, error) {
	dec, ok := decoders[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
	}
	a, err := dec(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidAction, env.Type, err)
	}
	return a, nil
}

func EncodeAction(a Action) ([]byte, error) {
	var (
		payload []byte
		err     error
	)
	if load, ok := a.(LoadState); ok {
		payload, err = EncodeState(load.State)
	} else {
		payload, err = json.Marshal(a)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: a.Type(), Payload: payload})
}
