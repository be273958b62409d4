// Package engine is the deterministic game-state reducer.
//
// Every operation takes a *models.GameState and returns a state the caller
// may keep; the input is never modified. When an operation changes nothing
// it returns its input, so callers can compare pointers to spot a rejected
// request.
package engine

import "github.com/napolitain/prehistoric-idle/internal/models"

// Engine carries the reducer policies. Operations that do not depend on a
// policy are plain package functions.
type Engine struct {
	rules models.Rules
}

// New creates an engine with the given rules
func New(rules models.Rules) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the engine's policies
func (e *Engine) Rules() models.Rules {
	return e.rules
}

var defaultEngine = New(models.DefaultRules())

// NewGame builds the starting state: catalog cards, the configured pool,
// and every worker the baseline card accepts assigned to it.
func NewGame(catalog *models.Catalog, cfg models.Config) *models.GameState {
	pools := make(models.Workers, len(cfg.StartingWorkers))
	for l, n := range cfg.StartingWorkers {
		pools[l] = models.WorkerPool{Total: n}
	}

	gs := models.NewGameState(catalog, pools)
	gs.Resources.Food = cfg.StartingFood
	gs.FoodShortageProtection = cfg.FoodShortageProtection

	clearAssignments(gs)
	fillBaseline(gs)
	return gs
}

// CreateInitialGameState returns the standard opening position
func CreateInitialGameState() *models.GameState {
	return NewGame(models.DefaultCatalog(), models.DefaultConfig())
}
