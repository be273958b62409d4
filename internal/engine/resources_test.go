package engine

import (
	"testing"

	"github.com/napolitain/prehistoric-idle/internal/models"
)

func TestUpdateResourcesNetFood(t *testing.T) {
	s := newTestState(t, 0)

	// 10 gatherers at 1.2 minus 10 mouths
	got := UpdateResources(s)
	if !approx(got.Resources.Food, 2) {
		t.Errorf("food: got %v, want 2", got.Resources.Food)
	}
	if s.Resources.Food != 0 {
		t.Error("input state was mutated")
	}
}

func TestConsumptionCountsIdleWorkers(t *testing.T) {
	s := newTestState(t, 100)
	s, _ = ReassignWorker(s, models.CardFoodGathering, Remove)

	// 9 gatherers, 10 eaters
	got := UpdateResources(s)
	if !approx(got.Resources.Food, 100+9*1.2-10) {
		t.Errorf("food: got %v", got.Resources.Food)
	}
}

func TestShortageRecovery(t *testing.T) {
	s := moveWorkers(t, newTestState(t, 0.5), models.CardFoodGathering, models.CardThinkingL1, 5)
	if NetFoodRate(s) >= 0 {
		t.Fatalf("setup: net food rate %v should be negative", NetFoodRate(s))
	}

	got := UpdateResources(s)

	if got.Resources.Food != 0 {
		t.Errorf("food: got %v, want exactly 0", got.Resources.Food)
	}
	if !got.IsPaused {
		t.Error("expected the game to pause")
	}
	base := got.Cards[models.CardFoodGathering]
	for _, l := range models.AllWorkerLevels() {
		pool := got.Pool(l)
		if base.Accepts(l) && base.AssignedWorkers[l] != pool.Total {
			t.Errorf("%s: baseline holds %d of %d", l, base.AssignedWorkers[l], pool.Total)
		}
	}
	if got.Cards[models.CardThinkingL1].TotalAssigned() != 0 {
		t.Error("thinking card still has workers")
	}
	mustInvariants(t, got)
}

func TestShortageLeavesUnacceptedLevelsIdle(t *testing.T) {
	s := newTestState(t, 0)
	s = RemoveAllWorkers(s)
	s, _ = PerformWorkerUpgrade(s, models.Level1, models.Level3, 2)
	s.Resources.Food = 0.1

	got := UpdateResources(s)
	if !got.IsPaused {
		t.Fatal("expected shortage")
	}
	if got.Pool(models.Level1).Assigned != 8 {
		t.Errorf("level1 assigned %d, want 8", got.Pool(models.Level1).Assigned)
	}
	if got.Pool(models.Level3).Assigned != 0 {
		t.Errorf("level3 assigned %d, want 0 (food gathering does not accept it)", got.Pool(models.Level3).Assigned)
	}
	mustInvariants(t, got)
}

func TestShortageWithoutProtection(t *testing.T) {
	s := moveWorkers(t, newTestState(t, 0.5), models.CardFoodGathering, models.CardThinkingL1, 5)
	s = SetFoodShortageProtection(s, false)

	got := UpdateResources(s)
	if !approx(got.Resources.Food, 0.5-4) {
		t.Errorf("food: got %v, want -3.5", got.Resources.Food)
	}
	if got.IsPaused {
		t.Error("unprotected game should not pause")
	}
	if got.Cards[models.CardThinkingL1].TotalAssigned() != 5 {
		t.Error("assignments should be untouched")
	}
}

func TestPausedStateIsUnchanged(t *testing.T) {
	s := TogglePause(newTestState(t, 5))
	if got := UpdateResources(s); got != s {
		t.Error("paused update should return the input state")
	}

	resumed := TogglePause(s)
	if resumed.IsPaused {
		t.Error("toggle should resume")
	}
	if got := UpdateResources(resumed); !approx(got.Resources.Food, 7) {
		t.Errorf("food after resume: got %v, want 7", got.Resources.Food)
	}
}

func TestFoodMultiplierStacks(t *testing.T) {
	s := newTestState(t, 0)
	if FoodMultiplier(s) != 1 {
		t.Errorf("base multiplier: got %v", FoodMultiplier(s))
	}

	s.Cards[models.CardFire].State = models.Discovered
	if !approx(FoodMultiplier(s), 1.25) {
		t.Errorf("fire multiplier: got %v", FoodMultiplier(s))
	}
	if !approx(FoodProduced(s), 10*1.2*1.25) {
		t.Errorf("produced: got %v, want 15", FoodProduced(s))
	}

	s.Cards[models.CardHunting].PersistentUpgrade = &models.PersistentUpgrade{Kind: models.UpgradeFoodProduction, Multiplier: 2}
	if !approx(FoodMultiplier(s), 1.25) {
		t.Error("an undiscovered card's upgrade must not apply")
	}
	s.Cards[models.CardHunting].State = models.Discovered
	if !approx(FoodMultiplier(s), 2.5) {
		t.Errorf("stacked multiplier: got %v, want 2.5", FoodMultiplier(s))
	}
}

func TestSetFoodShortageProtectionNoop(t *testing.T) {
	s := newTestState(t, 0)
	if got := SetFoodShortageProtection(s, true); got != s {
		t.Error("setting the current value should be a no-op")
	}
}
