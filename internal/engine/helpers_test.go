package engine

import (
	"math"
	"testing"

	"github.com/napolitain/prehistoric-idle/internal/models"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// newTestState returns the standard opening with some food in store
func newTestState(t testing.TB, food float64) *models.GameState {
	t.Helper()
	s := CreateInitialGameState()
	s.Resources.Food = food
	return s
}

// moveWorkers takes n workers off one card and puts them on another
func moveWorkers(t testing.TB, s *models.GameState, from, to string, n int) *models.GameState {
	t.Helper()
	var err error
	for i := 0; i < n; i++ {
		s, err = ReassignWorker(s, from, Remove)
		if err != nil {
			t.Fatalf("remove from %s: %v", from, err)
		}
		s, err = ReassignWorker(s, to, Add)
		if err != nil {
			t.Fatalf("add to %s: %v", to, err)
		}
	}
	return s
}

func mustInvariants(t testing.TB, s *models.GameState) {
	t.Helper()
	if err := CheckInvariants(s); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}
