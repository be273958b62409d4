package models

// Catalog is the static set of card definitions a game starts from
type Catalog struct {
	// Baseline names the food card that absorbs every worker during a shortage
	Baseline string  `json:"baseline" yaml:"baseline"`
	Cards    []*Card `json:"cards" yaml:"cards"`
}

// Card returns the definition with the given id
func (c *Catalog) Card(id string) *Card {
	for _, card := range c.Cards {
		if card.ID == id {
			return card
		}
	}
	return nil
}

// IDs returns card ids in catalog order
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Cards))
	for _, card := range c.Cards {
		ids = append(ids, card.ID)
	}
	return ids
}

// Card ids of the built-in catalog
const (
	CardFoodGathering = "foodGathering"
	CardThinkingL1    = "thinkingL1"
	CardThinkingL2    = "thinkingL2"
	CardHunting       = "hunting"
	CardMimicry       = "mimicry"
	CardFire          = "fire"
)

// DefaultCatalog returns the built-in card definitions
func DefaultCatalog() *Catalog {
	return &Catalog{
		Baseline: CardFoodGathering,
		Cards: []*Card{
			{
				ID:                   CardFoodGathering,
				Title:                "🌾 Food Gathering",
				Description:          "Forage berries and roots.",
				Kind:                 Task,
				State:                Discovered,
				Production:           Production{Food: 1.2},
				AcceptedWorkerLevels: []WorkerLevel{Level1, Level2},
			},
			{
				ID:                   CardThinkingL1,
				Title:                "🤔 Thinking Level 1",
				Description:          "Sit by the fire and wonder.",
				Kind:                 Thinking,
				State:                Discovered,
				Production:           Production{Thoughts: 1},
				AcceptedWorkerLevels: []WorkerLevel{Level1, Level2},
				ThinkingLevel:        Level1,
			},
			{
				ID:                   CardThinkingL2,
				Title:                "💡 Thinking Level 2",
				Description:          "Copy what works, and think about why.",
				Kind:                 Thinking,
				State:                Discovered,
				Production:           Production{Thoughts: 1.5},
				AcceptedWorkerLevels: []WorkerLevel{Level2},
				ThinkingLevel:        Level2,
			},
			{
				ID:                   CardHunting,
				Title:                "🏹 Hunting",
				Description:          "Chase down larger prey.",
				Kind:                 Task,
				State:                Unthoughtof,
				Production:           Production{Food: 1.5},
				Research:             ResearchProgress{ToImaginedRequired: 5, ToDiscoveredRequired: 10},
				Prerequisites:        []string{CardThinkingL1},
				AcceptedWorkerLevels: []WorkerLevel{Level1, Level2},
			},
			{
				ID:            CardMimicry,
				Title:         "🐒 Mimicry",
				Description:   "Learn by watching one another.",
				Kind:          Science,
				State:         Unthoughtof,
				Research:      ResearchProgress{ToImaginedRequired: 10, ToDiscoveredRequired: 20},
				Prerequisites: []string{CardThinkingL1},
				OnDiscovery: &DiscoveryEffect{
					Kind:      EffectWorkerLevelUpgrade,
					FromLevel: Level1,
					ToLevel:   Level2,
					Amount:    5,
					Message:   "Some of your hominids learn to mimic each other.",
				},
			},
			{
				ID:                   CardFire,
				Title:                "🔥 Fire",
				Description:          "Cooked food goes further.",
				Kind:                 Science,
				State:                Unthoughtof,
				Research:             ResearchProgress{ToImaginedRequired: 15, ToDiscoveredRequired: 30},
				Prerequisites:        []string{CardHunting},
				MinimumThinkingLevel: Level2,
				PersistentUpgrade:    &PersistentUpgrade{Kind: UpgradeFoodProduction, Multiplier: 1.25},
			},
		},
	}
}

// DefaultStartingWorkers is the initial pool: ten level-1 workers
func DefaultStartingWorkers() WorkerCounts {
	return WorkerCounts{Level1: 10}
}
