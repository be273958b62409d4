package converter

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/napolitain/prehistoric-idle/internal/engine"
	"github.com/napolitain/prehistoric-idle/internal/models"
)

// LevelLine is one worker tier in the resource line
type LevelLine struct {
	Level    models.WorkerLevel
	Label    string
	Assigned int
	Total    int
	Thoughts float64
}

// ResourceLine is the header shown above the cards
type ResourceLine struct {
	Food          float64
	NetFood       float64
	Levels        []LevelLine
	ThoughtsTotal float64
	Paused        bool
	Protection    bool
}

// LevelCount is a card's assignment at one level
type LevelCount struct {
	Level models.WorkerLevel
	Count int
}

// CardRow is everything a renderer needs for one card
type CardRow struct {
	ID          string
	Title       string
	Description string
	Kind        models.CardKind
	State       models.CardState
	StateLabel  string
	Progress    float64
	Assigned    []LevelCount
	Production  string
	Focused     bool
	Researching bool

	PrerequisitesMet bool
	MissingPrereqs   []string

	CanAssign   bool
	CanFocus    bool
	CanResearch bool
}

// View is a read-only projection of a game state
type View struct {
	Tick      int
	Resources ResourceLine
	Cards     []CardRow
}

// ToView projects a game state for rendering. Levels with no workers in the
// pool and no card accepting them are left out of the resource line.
func ToView(s *models.GameState) View {
	thoughts := engine.ThoughtsByLevel(s)

	v := View{
		Tick: s.Tick,
		Resources: ResourceLine{
			Food:       s.Resources.Food,
			NetFood:    engine.NetFoodRate(s),
			Paused:     s.IsPaused,
			Protection: s.FoodShortageProtection,
		},
		Cards: make([]CardRow, 0, len(s.Order)),
	}

	for _, l := range models.AllWorkerLevels() {
		pool := s.Pool(l)
		if pool.Total == 0 && !levelInUse(s, l) {
			continue
		}
		v.Resources.Levels = append(v.Resources.Levels, LevelLine{
			Level:    l,
			Label:    l.Label(),
			Assigned: pool.Assigned,
			Total:    pool.Total,
			Thoughts: thoughts[l],
		})
		v.Resources.ThoughtsTotal += thoughts[l]
	}

	mult := engine.FoodMultiplier(s)
	s.EachCard(func(c *models.Card) {
		v.Cards = append(v.Cards, toCardRow(s, c, mult))
	})

	return v
}

func toCardRow(s *models.GameState, c *models.Card, mult float64) CardRow {
	row := CardRow{
		ID:               c.ID,
		Title:            c.Title,
		Description:      c.Description,
		Kind:             c.Kind,
		State:            c.State,
		StateLabel:       StateLabel(c.State),
		Progress:         c.Research.Percent(c.State),
		Focused:          c.IsFocused,
		Researching:      s.CurrentResearchCardID == c.ID,
		PrerequisitesMet: engine.PrerequisitesMet(s, c.ID),
	}
	if row.Title == "" {
		row.Title = c.ID
	}

	for _, id := range c.Prerequisites {
		if pre, ok := s.Card(id); !ok || pre.State != models.Discovered {
			row.MissingPrereqs = append(row.MissingPrereqs, id)
		}
	}

	switch c.State {
	case models.Discovered:
		for _, l := range models.AllWorkerLevels() {
			if c.Accepts(l) {
				row.Assigned = append(row.Assigned, LevelCount{Level: l, Count: c.AssignedWorkers[l]})
			}
		}
		n := float64(c.TotalAssigned())
		row.Production = ProductionText(c.Production.Rate(models.Food)*n*mult, c.Production.Rate(models.Thoughts)*n)
		row.CanAssign = c.Kind.AcceptsWorkers()
	case models.Imagined:
		row.CanResearch = !row.Researching
		row.CanFocus = row.PrerequisitesMet || c.IsFocused
	case models.Unthoughtof:
		row.CanFocus = row.PrerequisitesMet || c.IsFocused
	}

	return row
}

func levelInUse(s *models.GameState, l models.WorkerLevel) bool {
	used := false
	s.EachCard(func(c *models.Card) {
		if c.Accepts(l) {
			used = true
		}
	})
	return used
}

// Text renders the resource line on one line
func (r ResourceLine) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "🍖 Food: %s (%s/sec)", FormatAmount(r.Food), FormatSignedRate(r.NetFood))
	for _, l := range r.Levels {
		fmt.Fprintf(&b, " | %s: %d/%d", l.Label, l.Assigned, l.Total)
	}
	for _, l := range r.Levels {
		if l.Thoughts > 0 {
			fmt.Fprintf(&b, " | 🧠 L%d: %s", int(l.Level), FormatRate(l.Thoughts))
		}
	}
	fmt.Fprintf(&b, " | 🧠 Total: %s", FormatRate(r.ThoughtsTotal))
	if r.Paused {
		b.WriteString(" | ⏸ PAUSED")
	}
	return b.String()
}

// Text renders the card as a single status line
func (c CardRow) Text() string {
	text := fmt.Sprintf("%s - %s", c.Title, c.StateLabel)
	switch c.State {
	case models.Discovered:
		for _, a := range c.Assigned {
			text += fmt.Sprintf(" | L%d: %d", int(a.Level), a.Count)
		}
		if c.Production != "" {
			text += " | " + c.Production
		}
	default:
		text += " | Research Progress: " + FormatPercent(c.Progress)
	}
	if c.Focused {
		text += " | 🎯"
	}
	if c.Researching {
		text += " | 📖"
	}
	return text
}

// AssignedText summarises a card's workers, e.g. "L1: 5, L2: 0"
func (c CardRow) AssignedText() string {
	parts := make([]string, 0, len(c.Assigned))
	for _, a := range c.Assigned {
		parts = append(parts, fmt.Sprintf("L%d: %s", int(a.Level), humanize.Comma(int64(a.Count))))
	}
	return strings.Join(parts, ", ")
}
