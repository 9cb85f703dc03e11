package game

import (
	"fmt"
	"log/slog"
	"sort"

	"deeptrader/internal/catalog"
)

// Engine is the reducer. It holds only immutable configuration plus the
// injected random source and id generator; all game data lives in GameState.
type Engine struct {
	catalog *catalog.Catalog
	tuning  Tuning
	rand    Rand
	ids     IDGen
	log     *slog.Logger
}

func NewEngine(cat *catalog.Catalog, tuning Tuning, rnd Rand, ids IDGen, logger *slog.Logger) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	if rnd == nil {
		rnd = NewTimeRand()
	}
	if ids == nil {
		ids = NewUUIDs()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		catalog: cat,
		tuning:  tuning,
		rand:    rnd,
		ids:     ids,
		log:     logger,
	}
}

func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }
func (e *Engine) Tuning() Tuning            { return e.tuning }

// Reduce applies a and drops the rejection reason: an invalid action yields s
// unchanged.
func (e *Engine) Reduce(s GameState, a Action) GameState {
	next, _ := e.Apply(s, a)
	return next
}

// Apply returns the next state. A rejected action returns s itself together
// with the reason; s is never modified.
func (e *Engine) Apply(s GameState, a Action) (GameState, error) {
	if a == nil {
		return s, ErrInvalidAction
	}
	if load, ok := a.(LoadState); ok {
		loaded := load.State.Clone()
		normalize(&loaded)
		if err := e.validateState(loaded); err != nil {
			return s, fmt.Errorf("%w: %v", ErrInvalidAction, err)
		}
		return loaded, nil
	}
	if s.GameOver() && !allowedAfterGameOver(a) {
		return s, ErrGameOver
	}
	if requiresStart(a) && !s.Started() {
		return s, ErrNotStarted
	}

	next := s.Clone()
	if err := e.dispatch(&next, a); err != nil {
		return s, err
	}
	return next, nil
}

func allowedAfterGameOver(a Action) bool {
	switch a.(type) {
	case SetPaused, SetLanguage, OpenPanel, ClosePanel, DismissMajorEvent:
		return true
	}
	return false
}

func requiresStart(a Action) bool {
	switch a.(type) {
	case SetPaused, SetSpeed, SetLanguage, SetInitialState, Tick, OpenPanel, ClosePanel, DismissMajorEvent:
		return false
	}
	return true
}

func (e *Engine) dispatch(s *GameState, a Action) error {
	switch act := a.(type) {
	case SetPaused:
		return e.setPaused(s, act.Paused)
	case SetSpeed:
		return e.setSpeed(s, act.Speed)
	case SetLanguage:
		if !validLanguage(act.Language, e.tuning.UI.Languages) {
			return fmt.Errorf("%w: unsupported language %q", ErrInvalidAction, act.Language)
		}
		s.Language = act.Language
		return nil
	case Tick:
		return e.tick(s, act.DeltaMS)
	case AdvanceDay:
		if s.Simulating {
			return ErrSimulating
		}
		e.advanceDay(s)
		return nil
	case SkipDays:
		return e.skipDays(s, act.Days)
	case SetInitialState:
		return e.setInitialState(s, act)
	case SpotTrade:
		return e.spotTrade(s, act)
	case OpenMarginPosition:
		return e.openMargin(s, act)
	case CloseMarginPosition:
		return e.closeMargin(s, act)
	case PlacePendingOrder:
		return e.placeOrder(s, act)
	case CancelPendingOrder:
		return e.cancelOrder(s, act)
	case DismissMajorEvent:
		e.dismissMajorEvent(s)
		return nil
	case EstablishCompany:
		return e.establishCompany(s, act)
	case UpgradeCompany:
		return e.upgradeCompany(s, act)
	case ExecuteCorporateAction:
		return e.corporateAction(s, act)
	case TakeLoan:
		return e.takeLoan(s, act)
	case RepayLoan:
		return e.repayLoan(s, act)
	case DeferLoanPayment:
		return e.deferLoan(s)
	case TakeVentureLoan:
		return e.takeVentureLoan(s, act)
	case TakeRevivalLoan:
		return e.takeRevivalLoan(s)
	case ChoosePenalty:
		return e.choosePenalty(s, act)
	case ChangeResidency:
		return e.changeResidency(s, act)
	case Donate:
		return e.donate(s, act)
	case LobbyIndustry:
		return e.lobbyIndustry(s, act)
	case GlobalInfluence:
		return e.globalInfluence(s, act)
	case BuyAnalystReport:
		return e.analystReport(s, act)
	case OpenPanel:
		return e.openPanel(s, act.Panel)
	case ClosePanel:
		e.closePanel(s)
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}
}

func (e *Engine) setPaused(s *GameState, paused bool) error {
	if s.Simulating {
		return ErrSimulating
	}
	s.Paused = paused
	s.AutoPaused = false
	return nil
}

func (e *Engine) setSpeed(s *GameState, speed float64) error {
	if !finitePositive(speed) || speed > e.tuning.Clock.MaxSpeed {
		return fmt.Errorf("%w: speed %v", ErrInvalidAction, speed)
	}
	s.Speed = speed
	return nil
}

// record appends a structured log entry, evicting the oldest past LogSize.
func (e *Engine) record(s *GameState, kind LogKind, key string, params map[string]any) {
	entry := LogEntry{
		ID:     e.ids.NewID(),
		Date:   s.Date.Calendar(),
		Kind:   kind,
		Key:    key,
		Params: params,
	}
	s.Player.Log = appendBounded(s.Player.Log, entry, e.tuning.Limits.LogSize)
}

func appendBounded[T any](list []T, item T, limit int) []T {
	list = append(list, item)
	if limit > 0 && len(list) > limit {
		list = append([]T(nil), list[len(list)-limit:]...)
	}
	return list
}

// sortedAssetIDs gives the deterministic iteration order for every per-asset pass.
func sortedAssetIDs(assets map[string]Asset) []string {
	ids := make([]string, 0, len(assets))
	for id := range assets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *Engine) residency(s *GameState) (catalog.Country, bool) {
	return e.catalog.Country(s.Player.Residency)
}

func (e *Engine) authoritarianResidency(s *GameState) bool {
	c, ok := e.residency(s)
	return ok && c.Authoritarian
}
