package engine

import "github.com/napolitain/prehistoric-idle/internal/models"

// FoodMultiplier is the product of every active food-production upgrade
func FoodMultiplier(s *models.GameState) float64 {
	mult := 1.0
	s.EachCard(func(c *models.Card) {
		if c.State != models.Discovered || c.PersistentUpgrade == nil {
			return
		}
		if c.PersistentUpgrade.Kind == models.UpgradeFoodProduction {
			mult *= c.PersistentUpgrade.Multiplier
		}
	})
	return mult
}

// FoodProduced is the gross food Discovered cards yield this tick
func FoodProduced(s *models.GameState) float64 {
	mult := FoodMultiplier(s)
	produced := 0.0
	s.EachCard(func(c *models.Card) {
		if c.State != models.Discovered {
			return
		}
		produced += c.Production.Rate(models.Food) * float64(c.TotalAssigned()) * mult
	})
	return produced
}

// FoodConsumed is what the whole population eats this tick
func FoodConsumed(s *models.GameState) float64 {
	return float64(s.Workers.TotalWorkers()) * FoodPerWorker
}

// NetFoodRate is production minus consumption per tick
func NetFoodRate(s *models.GameState) float64 {
	return FoodProduced(s) - FoodConsumed(s)
}

// UpdateResources applies one tick of food production and consumption.
//
// A paused state is returned unchanged. When food reaches zero or below with
// shortage protection on, food is pinned at zero, the game pauses and every
// worker the baseline card accepts is moved onto it.
func UpdateResources(s *models.GameState) *models.GameState {
	if s.IsPaused {
		return s
	}

	next := s.Clone()
	next.Resources.Food += NetFoodRate(s)

	if next.Resources.Food <= 0 && next.FoodShortageProtection {
		next.Resources.Food = 0
		next.IsPaused = true
		handleFoodShortage(next)
	}

	return next
}

// handleFoodShortage is the emergency reallocation, applied in place
func handleFoodShortage(s *models.GameState) {
	clearAssignments(s)
	fillBaseline(s)
}

// TogglePause flips the pause flag so a player can resume after a shortage
func TogglePause(s *models.GameState) *models.GameState {
	next := s.Clone()
	next.IsPaused = !s.IsPaused
	return next
}

// SetFoodShortageProtection switches the shortage response on or off
func SetFoodShortageProtection(s *models.GameState, on bool) *models.GameState {
	if s.FoodShortageProtection == on {
		return s
	}
	next := s.Clone()
	next.FoodShortageProtection = on
	return next
}
