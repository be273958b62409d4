package engine

import "github.com/napolitain/prehistoric-idle/internal/models"

// ThoughtsByLevel returns this tick's thought output keyed by the level of the
// worker producing it.
//
// A primary thinking card (thinking level 1) counts every assigned worker. A
// secondary card counts only workers at or above its thinking level, or
// exactly at it under the exact filter.
func (e *Engine) ThoughtsByLevel(s *models.GameState) map[models.WorkerLevel]float64 {
	thoughts := make(map[models.WorkerLevel]float64, len(models.AllWorkerLevels()))
	s.EachCard(func(c *models.Card) {
		if c.Kind != models.Thinking || c.State != models.Discovered {
			return
		}
		rate := c.Production.Rate(models.Thoughts)
		if rate == 0 {
			return
		}
		floor := c.ThinkingLevel
		if !floor.Valid() {
			floor = models.Level1
		}
		for _, l := range models.AllWorkerLevels() {
			n := c.AssignedWorkers[l]
			if n == 0 || !e.counts(floor, l) {
				continue
			}
			thoughts[l] += float64(n) * rate
		}
	})
	return thoughts
}

func (e *Engine) counts(floor, l models.WorkerLevel) bool {
	if floor == models.Level1 {
		return true
	}
	if e.rules.ThinkingFilter == models.FilterExact {
		return l == floor
	}
	return l >= floor
}

// eligibleThoughts sums thought buckets at or above floor
func eligibleThoughts(thoughts map[models.WorkerLevel]float64, floor models.WorkerLevel) float64 {
	total := 0.0
	for _, l := range models.AllWorkerLevels() {
		if l >= floor {
			total += thoughts[l]
		}
	}
	return total
}

// UpdateResearch advances the active research card and the focused card.
//
// The active card, when Imagined, gains thoughts toward Discovered. The
// focused card then gains the same filtered thoughts toward its next state,
// unless the active step already discovered it this tick.
func (e *Engine) UpdateResearch(s *models.GameState) *models.GameState {
	next := s.Clone()
	thoughts := e.ThoughtsByLevel(s)

	discovered := ""
	if card, ok := next.Card(next.CurrentResearchCardID); ok && card.State == models.Imagined {
		card.Research.ToDiscoveredCurrent += eligibleThoughts(thoughts, card.ResearchFloor())
		if e.advance(&card.Research.ToDiscoveredCurrent, card.Research.ToDiscoveredRequired) {
			card.State = models.Discovered
			discovered = card.ID
		}
	}

	if card := next.FocusedCard(); card != nil && card.ID != discovered {
		gain := eligibleThoughts(thoughts, card.ResearchFloor())
		switch card.State {
		case models.Unthoughtof:
			card.Research.ToImaginedCurrent += gain
			if e.advance(&card.Research.ToImaginedCurrent, card.Research.ToImaginedRequired) {
				card.State = models.Imagined
			}
		case models.Imagined:
			card.Research.ToDiscoveredCurrent += gain
			if e.advance(&card.Research.ToDiscoveredCurrent, card.Research.ToDiscoveredRequired) {
				card.State = models.Discovered
			}
		}
	}

	return next
}

// advance reports whether current reached required, clamping per the rules
func (e *Engine) advance(current *float64, required float64) bool {
	if *current < required {
		return false
	}
	if e.rules.ResearchOverflow == models.OverflowClamp {
		*current = required
	}
	return true
}

// UpdateResearch advances research under the default rules
func UpdateResearch(s *models.GameState) *models.GameState {
	return defaultEngine.UpdateResearch(s)
}

// ThoughtsByLevel returns thought output under the default rules
func ThoughtsByLevel(s *models.GameState) map[models.WorkerLevel]float64 {
	return defaultEngine.ThoughtsByLevel(s)
}
