package models

// GameState is the root aggregate handed between the reducer and its caller.
// Cards live in a map keyed by id; Order keeps catalog order so every pass
// over the cards is deterministic.
type GameState struct {
	Tick                   int              `json:"tick" yaml:"tick"`
	Resources              Resources        `json:"resources" yaml:"resources"`
	Workers                Workers          `json:"workers" yaml:"workers"`
	Cards                  map[string]*Card `json:"cards" yaml:"cards"`
	Order                  []string         `json:"order" yaml:"order"`
	CurrentResearchCardID  string           `json:"current_research_card_id,omitempty" yaml:"current_research_card_id,omitempty"`
	BaselineCardID         string           `json:"baseline_card_id" yaml:"baseline_card_id"`
	FoodShortageProtection bool             `json:"food_shortage_protection" yaml:"food_shortage_protection"`
	IsPaused               bool             `json:"paused" yaml:"paused"`
}

// NewGameState builds a state from a catalog and a starting worker pool.
// Catalog cards are deep-copied; every accepted level gets an explicit
// zero entry in the card's assignments unless the catalog provides one.
func NewGameState(catalog *Catalog, workers Workers) *GameState {
	gs := &GameState{
		Workers:                make(Workers, len(AllWorkerLevels())),
		Cards:                  make(map[string]*Card, len(catalog.Cards)),
		Order:                  make([]string, 0, len(catalog.Cards)),
		BaselineCardID:         catalog.Baseline,
		FoodShortageProtection: true,
	}

	for _, l := range AllWorkerLevels() {
		gs.Workers[l] = workers[l]
	}

	for _, c := range catalog.Cards {
		card := c.Clone()
		if card.AssignedWorkers == nil {
			card.AssignedWorkers = make(WorkerCounts, len(card.AcceptedWorkerLevels))
		}
		for _, l := range card.AcceptedWorkerLevels {
			if _, ok := card.AssignedWorkers[l]; !ok {
				card.AssignedWorkers[l] = 0
			}
		}
		gs.Cards[card.ID] = card
		gs.Order = append(gs.Order, card.ID)
	}

	return gs
}

// Card returns the card with the given id
func (s *GameState) Card(id string) (*Card, bool) {
	c, ok := s.Cards[id]
	return c, ok
}

// EachCard iterates over cards in catalog order
func (s *GameState) EachCard(fn func(*Card)) {
	for _, id := range s.Order {
		if c, ok := s.Cards[id]; ok {
			fn(c)
		}
	}
}

// Pool returns the pool for a level (zero value when untracked)
func (s *GameState) Pool(l WorkerLevel) WorkerPool {
	return s.Workers[l]
}

// FocusedCard returns the focused card, if any
func (s *GameState) FocusedCard() *Card {
	var focused *Card
	s.EachCard(func(c *Card) {
		if focused == nil && c.IsFocused {
			focused = c
		}
	})
	return focused
}

// Clone creates a deep copy of the state
func (s *GameState) Clone() *GameState {
	clone := &GameState{
		Tick:                   s.Tick,
		Resources:              s.Resources,
		Workers:                s.Workers.Clone(),
		CurrentResearchCardID:  s.CurrentResearchCardID,
		BaselineCardID:         s.BaselineCardID,
		FoodShortageProtection: s.FoodShortageProtection,
		IsPaused:               s.IsPaused,
	}

	if s.Cards != nil {
		clone.Cards = make(map[string]*Card, len(s.Cards))
		for id, c := range s.Cards {
			clone.Cards[id] = c.Clone()
		}
	}
	if s.Order != nil {
		clone.Order = append([]string(nil), s.Order...)
	}

	return clone
}
