package engine

import (
	"fmt"

	"github.com/napolitain/prehistoric-idle/internal/models"
)

// ShortageMessage is shown when shortage protection pauses the game
const ShortageMessage = "Food ran out! Everyone has gone back to gathering food. Resume when ready."

// StepResult is one tick together with the follow-up it triggered
type StepResult struct {
	State         *models.GameState
	Transitions   []Transition
	Notifications []Notification
}

// Step ticks the game, resolves the card transitions the tick produced, and
// collects the notifications in display order.
func (e *Engine) Step(s *models.GameState) (StepResult, error) {
	after := e.TickGame(s)
	q := NewNotificationQueue()

	if !s.IsPaused && after.IsPaused {
		q.Push(Notification{
			Tick:    after.Tick,
			Kind:    NoteShortage,
			CardID:  after.BaselineCardID,
			Message: ShortageMessage,
		})
	}

	transitions := DetectTransitions(s, after)
	resolved, notes, err := ResolveTransitions(after, transitions)
	if err != nil {
		return StepResult{State: s}, fmt.Errorf("tick %d: %w", after.Tick, err)
	}
	for _, n := range notes {
		q.Push(n)
	}

	return StepResult{
		State:         resolved,
		Transitions:   transitions,
		Notifications: q.Drain(),
	}, nil
}

// Step runs one tick under the default rules
func Step(s *models.GameState) (StepResult, error) {
	return defaultEngine.Step(s)
}
