package models

import (
	"fmt"
	"strconv"
	"strings"
)

// WorkerLevel is an ordered skill tier of the population
type WorkerLevel int

const (
	Level1 WorkerLevel = iota + 1
	Level2
	Level3
	Level4
)

// MaxWorkerLevel is the highest tier the pool tracks
const MaxWorkerLevel = Level4

// AllWorkerLevels returns all worker levels in ascending order
func AllWorkerLevels() []WorkerLevel {
	return []WorkerLevel{Level1, Level2, Level3, Level4}
}

// Valid reports whether the level is one the pool tracks
func (l WorkerLevel) Valid() bool {
	return l >= Level1 && l <= MaxWorkerLevel
}

// String returns the stable key form ("level1")
func (l WorkerLevel) String() string {
	return "level" + strconv.Itoa(int(l))
}

// Name returns the player-facing tier name
func (l WorkerLevel) Name() string {
	switch l {
	case Level1:
		return "Hominid"
	case Level2:
		return "Mimic"
	case Level3:
		return "Talker"
	case Level4:
		return "Storyteller"
	default:
		return "Unknown"
	}
}

// Label returns the short label used in resource lines, e.g. "(L2) Mimic"
func (l WorkerLevel) Label() string {
	return fmt.Sprintf("(L%d) %s", int(l), l.Name())
}

// ParseWorkerLevel accepts "level2", "L2" or "2"
func ParseWorkerLevel(s string) (WorkerLevel, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	raw = strings.TrimPrefix(raw, "level")
	raw = strings.TrimPrefix(raw, "l")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid worker level %q", s)
	}
	l := WorkerLevel(n)
	if !l.Valid() {
		return 0, fmt.Errorf("worker level %q out of range", s)
	}
	return l, nil
}

// MarshalText implements encoding.TextMarshaler
func (l WorkerLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *WorkerLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseWorkerLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// CardKind governs whether workers can be assigned to a card
type CardKind string

const (
	Task     CardKind = "task"
	Thinking CardKind = "thinking"
	Science  CardKind = "science"
)

// AcceptsWorkers reports whether cards of this kind take worker assignments
func (k CardKind) AcceptsWorkers() bool {
	return k == Task || k == Thinking
}

// CardState is a position in the Unthoughtof -> Imagined -> Discovered machine
type CardState string

const (
	Unthoughtof CardState = "unthoughtof"
	Imagined    CardState = "imagined"
	Discovered  CardState = "discovered"
)

// Rank orders states along the research track
func (s CardState) Rank() int {
	switch s {
	case Unthoughtof:
		return 0
	case Imagined:
		return 1
	case Discovered:
		return 2
	default:
		return -1
	}
}

// ResourceKind names a produced resource
type ResourceKind string

const (
	Food     ResourceKind = "food"
	Thoughts ResourceKind = "thoughts"
)

// AllResourceKinds returns all resource kinds in deterministic order
func AllResourceKinds() []ResourceKind {
	return []ResourceKind{Food, Thoughts}
}

// Production maps a resource kind to its per-worker rate
type Production map[ResourceKind]float64

// Rate returns the per-worker rate, zero when the card does not produce it
func (p Production) Rate(kind ResourceKind) float64 {
	return p[kind]
}

// Clone copies the production table
func (p Production) Clone() Production {
	if p == nil {
		return nil
	}
	out := make(Production, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ResearchProgress holds the counters toward both research transitions
type ResearchProgress struct {
	ToImaginedCurrent    float64 `json:"to_imagined_current" yaml:"to_imagined_current"`
	ToImaginedRequired   float64 `json:"to_imagined_required" yaml:"to_imagined_required"`
	ToDiscoveredCurrent  float64 `json:"to_discovered_current" yaml:"to_discovered_current"`
	ToDiscoveredRequired float64 `json:"to_discovered_required" yaml:"to_discovered_required"`
}

// Percent returns progress toward the next state for a card in state s
func (r ResearchProgress) Percent(s CardState) float64 {
	var cur, req float64
	switch s {
	case Unthoughtof:
		cur, req = r.ToImaginedCurrent, r.ToImaginedRequired
	case Imagined:
		cur, req = r.ToDiscoveredCurrent, r.ToDiscoveredRequired
	default:
		return 100
	}
	if req <= 0 {
		return 100
	}
	return cur / req * 100
}

// WorkerCounts maps a level to a worker count
type WorkerCounts map[WorkerLevel]int

// Total sums the counts across levels
func (w WorkerCounts) Total() int {
	total := 0
	for _, n := range w {
		total += n
	}
	return total
}

// Clone copies the counts
func (w WorkerCounts) Clone() WorkerCounts {
	if w == nil {
		return nil
	}
	out := make(WorkerCounts, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Card is a unit of unlockable content
type Card struct {
	ID                   string             `json:"id" yaml:"id"`
	Title                string             `json:"title" yaml:"title"`
	Description          string             `json:"description,omitempty" yaml:"description,omitempty"`
	Kind                 CardKind           `json:"kind" yaml:"kind"`
	State                CardState          `json:"state" yaml:"state"`
	AssignedWorkers      WorkerCounts       `json:"assigned_workers,omitempty" yaml:"assigned_workers,omitempty"`
	Production           Production         `json:"production,omitempty" yaml:"production,omitempty"`
	Research             ResearchProgress   `json:"research" yaml:"research"`
	Prerequisites        []string           `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
	IsFocused            bool               `json:"focused,omitempty" yaml:"focused,omitempty"`
	AcceptedWorkerLevels []WorkerLevel      `json:"accepted_levels,omitempty" yaml:"accepted_levels,omitempty"`
	MinimumThinkingLevel WorkerLevel        `json:"minimum_thinking_level,omitempty" yaml:"minimum_thinking_level,omitempty"`
	ThinkingLevel        WorkerLevel        `json:"thinking_level,omitempty" yaml:"thinking_level,omitempty"`
	OnDiscovery          *DiscoveryEffect   `json:"on_discovery,omitempty" yaml:"on_discovery,omitempty"`
	PersistentUpgrade    *PersistentUpgrade `json:"persistent_upgrade,omitempty" yaml:"persistent_upgrade,omitempty"`
}

// Accepts reports whether the card can receive workers of level l
func (c *Card) Accepts(l WorkerLevel) bool {
	for _, a := range c.AcceptedWorkerLevels {
		if a == l {
			return true
		}
	}
	return false
}

// MinAcceptedLevel returns the lowest accepted level, or MaxWorkerLevel+1 when none
func (c *Card) MinAcceptedLevel() WorkerLevel {
	min := MaxWorkerLevel + 1
	for _, l := range c.AcceptedWorkerLevels {
		if l < min {
			min = l
		}
	}
	return min
}

// ResearchFloor returns the minimum thinking level, defaulting to Level1
func (c *Card) ResearchFloor() WorkerLevel {
	if c.MinimumThinkingLevel.Valid() {
		return c.MinimumThinkingLevel
	}
	return Level1
}

// TotalAssigned returns workers on this card across all levels
func (c *Card) TotalAssigned() int {
	return c.AssignedWorkers.Total()
}

// Clone creates a deep copy of the card
func (c *Card) Clone() *Card {
	clone := *c
	clone.AssignedWorkers = c.AssignedWorkers.Clone()
	clone.Production = c.Production.Clone()
	if c.Prerequisites != nil {
		clone.Prerequisites = append([]string(nil), c.Prerequisites...)
	}
	if c.AcceptedWorkerLevels != nil {
		clone.AcceptedWorkerLevels = append([]WorkerLevel(nil), c.AcceptedWorkerLevels...)
	}
	if c.OnDiscovery != nil {
		effect := *c.OnDiscovery
		clone.OnDiscovery = &effect
	}
	if c.PersistentUpgrade != nil {
		upgrade := *c.PersistentUpgrade
		clone.PersistentUpgrade = &upgrade
	}
	return &clone
}

// WorkerPool is the per-level bookkeeping of total and assigned workers
type WorkerPool struct {
	Total    int `json:"total" yaml:"total"`
	Assigned int `json:"assigned" yaml:"assigned"`
}

// Free returns unassigned workers at this level
func (p WorkerPool) Free() int {
	return p.Total - p.Assigned
}

// Workers holds one pool per level
type Workers map[WorkerLevel]WorkerPool

// Clone copies the pools
func (w Workers) Clone() Workers {
	if w == nil {
		return nil
	}
	out := make(Workers, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// TotalWorkers sums pool totals across levels
func (w Workers) TotalWorkers() int {
	total := 0
	for _, p := range w {
		total += p.Total
	}
	return total
}

// Resources is the stock of accumulating resources
type Resources struct {
	Food float64 `json:"food" yaml:"food"`
}
