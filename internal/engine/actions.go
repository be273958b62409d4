package engine

import (
	"fmt"
	"strings"

	"github.com/napolitain/prehistoric-idle/internal/models"
)

// Action is a player request the orchestrator applies between ticks
type Action interface {
	Apply(s *models.GameState) (*models.GameState, error)
	Description() string
}

// AssignAction moves one worker onto or off a card
type AssignAction struct {
	CardID string
	Action WorkerAction
}

func (a AssignAction) Apply(s *models.GameState) (*models.GameState, error) {
	return ReassignWorker(s, a.CardID, a.Action)
}

func (a AssignAction) Description() string {
	return fmt.Sprintf("%s worker %s", a.Action, a.CardID)
}

// FocusAction toggles focus on a card. With Gated set, cards whose
// prerequisites are not all Discovered are refused.
type FocusAction struct {
	CardID string
	Gated  bool
}

func (a FocusAction) Apply(s *models.GameState) (*models.GameState, error) {
	if a.Gated {
		if _, ok := s.Card(a.CardID); ok && !PrerequisitesMet(s, a.CardID) {
			return s, nil
		}
	}
	return ToggleCardFocus(s, a.CardID)
}

func (a FocusAction) Description() string {
	return "focus " + a.CardID
}

// ResearchAction selects the active research card
type ResearchAction struct {
	CardID string
}

func (a ResearchAction) Apply(s *models.GameState) (*models.GameState, error) {
	return StartResearch(s, a.CardID)
}

func (a ResearchAction) Description() string {
	return "research " + a.CardID
}

// PauseAction toggles the pause flag
type PauseAction struct{}

func (PauseAction) Apply(s *models.GameState) (*models.GameState, error) {
	return TogglePause(s), nil
}

func (PauseAction) Description() string {
	return "toggle pause"
}

// ProtectionAction switches food shortage protection
type ProtectionAction struct {
	On bool
}

func (a ProtectionAction) Apply(s *models.GameState) (*models.GameState, error) {
	return SetFoodShortageProtection(s, a.On), nil
}

func (a ProtectionAction) Description() string {
	if a.On {
		return "protection on"
	}
	return "protection off"
}

// ParseAction reads the script form used on the command line:
// add:<card>, remove:<card>, focus:<card>, research:<card>, pause, protect:on|off
func ParseAction(s string) (Action, error) {
	verb, arg, _ := strings.Cut(strings.TrimSpace(s), ":")
	switch verb {
	case "add":
		return AssignAction{CardID: arg, Action: Add}, requireArg(verb, arg)
	case "remove":
		return AssignAction{CardID: arg, Action: Remove}, requireArg(verb, arg)
	case "focus":
		return FocusAction{CardID: arg, Gated: true}, requireArg(verb, arg)
	case "research":
		return ResearchAction{CardID: arg}, requireArg(verb, arg)
	case "pause":
		return PauseAction{}, nil
	case "protect":
		switch arg {
		case "on":
			return ProtectionAction{On: true}, nil
		case "off":
			return ProtectionAction{On: false}, nil
		}
		return nil, fmt.Errorf("protect expects on or off, got %q", arg)
	default:
		return nil, fmt.Errorf("unknown action %q", s)
	}
}

func requireArg(verb, arg string) error {
	if arg == "" {
		return fmt.Errorf("%s needs a card id", verb)
	}
	return nil
}
