package engine

import (
	"fmt"

	"github.com/napolitain/prehistoric-idle/internal/models"
)

// ApplyDiscoveryEffect fires the card's one-shot effect.
//
// For a worker level upgrade it captures assignments, frees every worker,
// moves the workers between levels and redistributes the capture. Any
// failure returns the input state untouched together with the error.
func ApplyDiscoveryEffect(s *models.GameState, cardID string) (*models.GameState, error) {
	card, ok := s.Card(cardID)
	if !ok {
		return s, fmt.Errorf("discovery effect %q: %w", cardID, ErrUnknownCard)
	}
	effect := card.OnDiscovery
	if effect == nil {
		return s, nil
	}

	switch effect.Kind {
	case models.EffectWorkerLevelUpgrade:
		snap := CaptureWorkerAssignments(s)
		next := RemoveAllWorkers(s)

		next, err := PerformWorkerUpgrade(next, effect.FromLevel, effect.ToLevel, effect.Amount)
		if err != nil {
			return s, fmt.Errorf("discovery effect %q: %w", cardID, err)
		}

		next, err = RedistributeWorkers(next, snap)
		if err != nil {
			return s, fmt.Errorf("discovery effect %q: %w", cardID, err)
		}
		return next, nil
	default:
		return s, fmt.Errorf("discovery effect %q kind %q: %w", cardID, effect.Kind, ErrUnknownEffect)
	}
}
