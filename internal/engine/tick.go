package engine

import "github.com/napolitain/prehistoric-idle/internal/models"

// UpdateCardAvailability is the prerequisite pass. Under the default rules it
// changes nothing; with AutoImagine it promotes Unthoughtof cards whose
// prerequisites are all Discovered.
func (e *Engine) UpdateCardAvailability(s *models.GameState) *models.GameState {
	if !e.rules.AutoImagine {
		return s
	}

	var ready []string
	s.EachCard(func(c *models.Card) {
		if c.State == models.Unthoughtof && PrerequisitesMet(s, c.ID) {
			ready = append(ready, c.ID)
		}
	})
	if len(ready) == 0 {
		return s
	}

	next := s.Clone()
	for _, id := range ready {
		next.Cards[id].State = models.Imagined
	}
	return next
}

// TickGame runs one second of simulation: resources, research, availability
func (e *Engine) TickGame(s *models.GameState) *models.GameState {
	next := UpdateResources(s)
	next = e.UpdateResearch(next)
	next = e.UpdateCardAvailability(next)
	if next == s {
		next = s.Clone()
	}
	next.Tick++
	return next
}

// UpdateCardAvailability runs the prerequisite pass under the default rules
func UpdateCardAvailability(s *models.GameState) *models.GameState {
	return defaultEngine.UpdateCardAvailability(s)
}

// TickGame runs one tick under the default rules
func TickGame(s *models.GameState) *models.GameState {
	return defaultEngine.TickGame(s)
}
