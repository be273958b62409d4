package engine

import (
	"fmt"

	"github.com/napolitain/prehistoric-idle/internal/models"
)

// Transition is a card state change observed between two states
type Transition struct {
	CardID string
	From   models.CardState
	To     models.CardState
}

// DetectTransitions diffs card states, in catalog order
func DetectTransitions(before, after *models.GameState) []Transition {
	var out []Transition
	after.EachCard(func(c *models.Card) {
		old, ok := before.Card(c.ID)
		if !ok || old.State == c.State {
			return
		}
		out = append(out, Transition{CardID: c.ID, From: old.State, To: c.State})
	})
	return out
}

// ResolveTransitions applies the follow-up of each transition and returns the
// messages to show.
//
// Entering Imagined releases the card's workers, resets its discovery
// counter and drops its focus. Entering Discovered drops focus and the active
// research selection, then fires the card's discovery effect. An effect
// error aborts the whole resolution and returns the input state.
func ResolveTransitions(s *models.GameState, transitions []Transition) (*models.GameState, []Notification, error) {
	if len(transitions) == 0 {
		return s, nil, nil
	}

	next := s.Clone()
	var notes []Notification

	for _, t := range transitions {
		card, ok := next.Card(t.CardID)
		if !ok {
			return s, nil, fmt.Errorf("resolve %q: %w", t.CardID, ErrUnknownCard)
		}

		switch t.To {
		case models.Imagined:
			releaseCard(next, card)
			card.Research.ToDiscoveredCurrent = 0
			card.IsFocused = false
			notes = append(notes, Notification{
				Tick:    next.Tick,
				Kind:    NoteImagined,
				CardID:  card.ID,
				Message: fmt.Sprintf("You have imagined the possibility of a new task: %s", card.Title),
			})

		case models.Discovered:
			card.IsFocused = false
			if next.CurrentResearchCardID == card.ID {
				next.CurrentResearchCardID = ""
			}
			notes = append(notes, Notification{
				Tick:    next.Tick,
				Kind:    NoteDiscovered,
				CardID:  card.ID,
				Message: fmt.Sprintf("You have discovered how to perform a new task: %s", card.Title),
			})

			if effect := card.OnDiscovery; effect != nil {
				applied, err := ApplyDiscoveryEffect(next, card.ID)
				if err != nil {
					return s, nil, err
				}
				next = applied
				if effect.Message != "" {
					notes = append(notes, Notification{
						Tick:    next.Tick,
						Kind:    NoteEffect,
						CardID:  t.CardID,
						Message: effect.Message,
					})
				}
			}
		}
	}

	return next, notes, nil
}

// releaseCard returns a card's workers to their pools, in place
func releaseCard(s *models.GameState, c *models.Card) {
	for l, n := range c.AssignedWorkers {
		if n == 0 {
			continue
		}
		pool := s.Workers[l]
		pool.Assigned -= n
		s.Workers[l] = pool
		c.AssignedWorkers[l] = 0
	}
}
