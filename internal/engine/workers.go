package engine

import (
	"fmt"
	"sort"

	"github.com/napolitain/prehistoric-idle/internal/models"
)

// WorkerAction is the direction of a single-worker reassignment
type WorkerAction int

const (
	Add WorkerAction = iota
	Remove
)

// String returns a string representation of the action
func (a WorkerAction) String() string {
	switch a {
	case Add:
		return "add"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// Assignment is one card's per-level worker counts at capture time
type Assignment struct {
	CardID  string
	Workers models.WorkerCounts
}

// Snapshot is a captured set of assignments in catalog order
type Snapshot []Assignment

// Total returns the number of workers the snapshot held on cards
func (s Snapshot) Total() int {
	total := 0
	for _, a := range s {
		total += a.Workers.Total()
	}
	return total
}

// ReassignWorker moves one worker onto or off a card.
//
// Add takes the lowest accepted level with a free worker and only applies to
// Discovered cards that take workers. Remove frees the highest level the card
// holds. Both return the input state when nothing can move.
func ReassignWorker(s *models.GameState, cardID string, action WorkerAction) (*models.GameState, error) {
	card, ok := s.Card(cardID)
	if !ok {
		return s, fmt.Errorf("reassign %q: %w", cardID, ErrUnknownCard)
	}

	switch action {
	case Add:
		if card.State != models.Discovered || !card.Kind.AcceptsWorkers() {
			return s, nil
		}
		for _, l := range ascending(card.AcceptedWorkerLevels) {
			if s.Pool(l).Free() <= 0 {
				continue
			}
			next := s.Clone()
			pool := next.Workers[l]
			pool.Assigned++
			next.Workers[l] = pool
			addAssigned(next.Cards[cardID], l, 1)
			return next, nil
		}
	case Remove:
		for _, l := range descending(card.AcceptedWorkerLevels) {
			if card.AssignedWorkers[l] <= 0 {
				continue
			}
			next := s.Clone()
			pool := next.Workers[l]
			pool.Assigned--
			next.Workers[l] = pool
			next.Cards[cardID].AssignedWorkers[l]--
			return next, nil
		}
	default:
		return s, fmt.Errorf("reassign %q: unknown action %d", cardID, int(action))
	}

	return s, nil
}

// CaptureWorkerAssignments snapshots every card's assignments
func CaptureWorkerAssignments(s *models.GameState) Snapshot {
	snap := make(Snapshot, 0, len(s.Order))
	s.EachCard(func(c *models.Card) {
		snap = append(snap, Assignment{CardID: c.ID, Workers: c.AssignedWorkers.Clone()})
	})
	return snap
}

// RemoveAllWorkers unassigns every worker from every card
func RemoveAllWorkers(s *models.GameState) *models.GameState {
	next := s.Clone()
	clearAssignments(next)
	return next
}

// RedistributeWorkers re-applies a snapshot against the current pool.
//
// Cards are served in ascending order of the lowest level they accept, ties
// in catalog order. Each card pulls workers level by level, lowest first,
// until it holds its captured total or its accepted levels run dry.
func RedistributeWorkers(s *models.GameState, snap Snapshot) (*models.GameState, error) {
	for _, a := range snap {
		if _, ok := s.Card(a.CardID); !ok {
			return s, fmt.Errorf("redistribute %q: %w", a.CardID, ErrUnknownCard)
		}
	}

	next := s.Clone()

	ordered := make(Snapshot, len(snap))
	copy(ordered, snap)
	sort.SliceStable(ordered, func(i, j int) bool {
		return next.Cards[ordered[i].CardID].MinAcceptedLevel() < next.Cards[ordered[j].CardID].MinAcceptedLevel()
	})

	for _, a := range ordered {
		card := next.Cards[a.CardID]
		need := a.Workers.Total()
		placed := 0
		for _, l := range ascending(card.AcceptedWorkerLevels) {
			if placed >= need {
				break
			}
			pool := next.Workers[l]
			take := min(need-placed, pool.Free())
			if take <= 0 {
				continue
			}
			pool.Assigned += take
			next.Workers[l] = pool
			addAssigned(card, l, take)
			placed += take
		}
	}

	return next, nil
}

// PerformWorkerUpgrade moves amount workers from one level's total to another's.
// The moved workers must be unassigned.
func PerformWorkerUpgrade(s *models.GameState, from, to models.WorkerLevel, amount int) (*models.GameState, error) {
	if !from.Valid() || !to.Valid() {
		return s, fmt.Errorf("upgrade %s -> %s: %w", from, to, ErrUnknownLevel)
	}
	if amount < 0 {
		return s, fmt.Errorf("upgrade %s -> %s: negative amount %d: %w", from, to, amount, ErrInvariant)
	}

	src := s.Pool(from)
	if amount > src.Total {
		return s, fmt.Errorf("upgrade %d workers %s -> %s, pool holds %d: %w",
			amount, from, to, src.Total, ErrUpgradeExceedsPool)
	}
	if src.Total-amount < src.Assigned {
		return s, fmt.Errorf("upgrade %d workers %s -> %s would leave %d assigned of %d: %w",
			amount, from, to, src.Assigned, src.Total-amount, ErrInvariant)
	}
	if amount == 0 || from == to {
		return s, nil
	}

	next := s.Clone()
	src.Total -= amount
	next.Workers[from] = src
	dst := next.Workers[to]
	dst.Total += amount
	next.Workers[to] = dst

	return next, nil
}

// clearAssignments zeroes every card assignment and pool counter in place
func clearAssignments(s *models.GameState) {
	for _, c := range s.Cards {
		for l := range c.AssignedWorkers {
			c.AssignedWorkers[l] = 0
		}
	}
	for l, pool := range s.Workers {
		pool.Assigned = 0
		s.Workers[l] = pool
	}
}

// fillBaseline puts every worker the baseline card accepts onto it, in place.
// Pools must be fully unassigned.
func fillBaseline(s *models.GameState) {
	baseline, ok := s.Card(s.BaselineCardID)
	if !ok {
		return
	}
	for _, l := range models.AllWorkerLevels() {
		if !baseline.Accepts(l) {
			continue
		}
		pool := s.Workers[l]
		addAssigned(baseline, l, pool.Total-baseline.AssignedWorkers[l])
		pool.Assigned = pool.Total
		s.Workers[l] = pool
	}
}

func addAssigned(c *models.Card, l models.WorkerLevel, n int) {
	if c.AssignedWorkers == nil {
		c.AssignedWorkers = make(models.WorkerCounts)
	}
	c.AssignedWorkers[l] += n
}

func ascending(levels []models.WorkerLevel) []models.WorkerLevel {
	out := append([]models.WorkerLevel(nil), levels...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func descending(levels []models.WorkerLevel) []models.WorkerLevel {
	out := append([]models.WorkerLevel(nil), levels...)
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}
