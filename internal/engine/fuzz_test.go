package engine

import (
	"testing"

	"github.com/napolitain/prehistoric-idle/internal/models"
)

// FuzzOperations drives the reducer with arbitrary operation sequences and
// checks the pool invariants and research monotonicity after each one
func FuzzOperations(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	f.Add([]byte{9, 9, 9, 9, 34, 4, 4, 4, 4, 4, 4, 4})
	f.Add([]byte{1, 1, 1, 1, 1, 8, 8, 8, 8, 8, 26, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4})
	f.Add([]byte{255, 128, 64, 32, 16, 8, 4, 2, 1})

	f.Fuzz(func(t *testing.T, ops []byte) {
		s := CreateInitialGameState()
		s.Resources.Food = 20

		for i, b := range ops {
			id := s.Order[int(b>>3)%len(s.Order)]
			prev := s

			var err error
			switch b & 7 {
			case 0:
				s, err = ReassignWorker(s, id, Add)
			case 1:
				s, err = ReassignWorker(s, id, Remove)
			case 2:
				s, err = ToggleCardFocus(s, id)
			case 3:
				s, err = StartResearch(s, id)
			case 4, 5:
				var res StepResult
				res, err = Step(s)
				s = res.State
			case 6:
				s = TogglePause(s)
			case 7:
				s = SetFoodShortageProtection(s, !s.FoodShortageProtection)
			}
			if err != nil {
				t.Fatalf("op %d (%d on %s): %v", i, b&7, id, err)
			}

			if err := CheckInvariants(s); err != nil {
				t.Fatalf("op %d (%d on %s): %v", i, b&7, id, err)
			}

			for _, cid := range s.Order {
				before, after := prev.Cards[cid], s.Cards[cid]
				if after.Research.ToImaginedCurrent < before.Research.ToImaginedCurrent {
					t.Fatalf("op %d: %s imagined progress fell", i, cid)
				}
				reset := before.State == models.Unthoughtof && after.State == models.Imagined
				if !reset && after.Research.ToDiscoveredCurrent < before.Research.ToDiscoveredCurrent {
					t.Fatalf("op %d: %s discovery progress fell", i, cid)
				}
				if after.State.Rank() < before.State.Rank() {
					t.Fatalf("op %d: %s went back from %s to %s", i, cid, before.State, after.State)
				}
			}
		}
	})
}
