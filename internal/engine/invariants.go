package engine

import (
	"errors"
	"fmt"

	"github.com/napolitain/prehistoric-idle/internal/models"
)

// CheckInvariants verifies pool bookkeeping: 0 <= assigned <= total per level,
// card assignments only at accepted levels and summing to each pool's
// assigned count, and at most one focused card.
func CheckInvariants(s *models.GameState) error {
	var errs []error

	sums := make(map[models.WorkerLevel]int)
	focused := 0
	s.EachCard(func(c *models.Card) {
		if c.IsFocused {
			focused++
		}
		for l, n := range c.AssignedWorkers {
			if n < 0 {
				errs = append(errs, fmt.Errorf("card %s: negative %s count %d", c.ID, l, n))
			}
			if n > 0 && !c.Accepts(l) {
				errs = append(errs, fmt.Errorf("card %s: holds %d workers at unaccepted %s", c.ID, n, l))
			}
			sums[l] += n
		}
	})

	for _, l := range models.AllWorkerLevels() {
		pool := s.Pool(l)
		if pool.Assigned < 0 || pool.Assigned > pool.Total {
			errs = append(errs, fmt.Errorf("%s: assigned %d outside [0, %d]", l, pool.Assigned, pool.Total))
		}
		if sums[l] != pool.Assigned {
			errs = append(errs, fmt.Errorf("%s: cards hold %d, pool says %d", l, sums[l], pool.Assigned))
		}
	}
	if focused > 1 {
		errs = append(errs, fmt.Errorf("%d cards focused", focused))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}
	return nil
}
