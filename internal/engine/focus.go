package engine

import (
	"fmt"

	"github.com/napolitain/prehistoric-idle/internal/models"
)

// ToggleCardFocus unfocuses the card if it is focused; otherwise it moves the
// single focus onto it. Discovered cards cannot take focus.
func ToggleCardFocus(s *models.GameState, cardID string) (*models.GameState, error) {
	card, ok := s.Card(cardID)
	if !ok {
		return s, fmt.Errorf("focus %q: %w", cardID, ErrUnknownCard)
	}

	if card.IsFocused {
		next := s.Clone()
		next.Cards[cardID].IsFocused = false
		return next, nil
	}

	if card.State != models.Imagined && card.State != models.Unthoughtof {
		return s, nil
	}

	next := s.Clone()
	for _, c := range next.Cards {
		c.IsFocused = false
	}
	next.Cards[cardID].IsFocused = true
	return next, nil
}

// StartResearch selects an Imagined card as the active research card
func StartResearch(s *models.GameState, cardID string) (*models.GameState, error) {
	card, ok := s.Card(cardID)
	if !ok {
		return s, fmt.Errorf("research %q: %w", cardID, ErrUnknownCard)
	}
	if card.State != models.Imagined || s.CurrentResearchCardID == cardID {
		return s, nil
	}

	next := s.Clone()
	next.CurrentResearchCardID = cardID
	return next, nil
}

// PrerequisitesMet reports whether every prerequisite of the card is Discovered.
// It is informational: no operation refuses work because of it.
func PrerequisitesMet(s *models.GameState, cardID string) bool {
	card, ok := s.Card(cardID)
	if !ok {
		return false
	}
	for _, id := range card.Prerequisites {
		pre, ok := s.Card(id)
		if !ok || pre.State != models.Discovered {
			return false
		}
	}
	return true
}
