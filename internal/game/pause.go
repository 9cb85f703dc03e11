package game

import (
	"fmt"
	"slices"
	"strings"
)

// Pause hold sources. Any open hold keeps a running game paused; the pause is
// lifted when the last hold goes away, unless the player paused by hand.
const (
	holdMajorEvent = "major_event"
	holdPenalty    = "penalty"
	holdPanel      = "panel"
)

func (e *Engine) holdPause(s *GameState, source string) {
	if slices.Contains(s.PauseHolds, source) {
		return
	}
	s.PauseHolds = append(s.PauseHolds, source)
	e.settlePauseHolds(s)
}

func (e *Engine) releasePause(s *GameState, source string) {
	i := slices.Index(s.PauseHolds, source)
	if i < 0 {
		return
	}
	s.PauseHolds = slices.Delete(s.PauseHolds, i, i+1)
	if len(s.PauseHolds) > 0 {
		return
	}
	s.PauseHolds = nil
	if s.AutoPaused {
		s.Paused = false
		s.AutoPaused = false
	}
}

// settlePauseHolds pauses a running game that has open holds. A batch skip
// owns the pause flag until it finishes.
func (e *Engine) settlePauseHolds(s *GameState) {
	if len(s.PauseHolds) == 0 || s.Paused || s.Simulating {
		return
	}
	s.Paused = true
	s.AutoPaused = true
}

func (e *Engine) openPanel(s *GameState, panel string) error {
	panel = strings.TrimSpace(panel)
	if panel == "" {
		return fmt.Errorf("%w: empty panel", ErrInvalidAction)
	}
	if s.ActivePanel != "" {
		e.closePanel(s)
	}
	s.ActivePanel = panel
	if slices.Contains(e.tuning.UI.PausingPanels, panel) {
		e.holdPause(s, holdPanel)
	}
	return nil
}

func (e *Engine) closePanel(s *GameState) {
	s.ActivePanel = ""
	e.releasePause(s, holdPanel)
}
