package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/prehistoric-idle/internal/converter"
	"github.com/napolitain/prehistoric-idle/internal/engine"
	"github.com/napolitain/prehistoric-idle/internal/history"
	"github.com/napolitain/prehistoric-idle/internal/models"
)

var (
	ticks       int
	every       int
	script      []string
	historyPath string
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the game headless for a number of ticks",
		Long: `Runs the reducer tick by tick and prints a table of sampled ticks.
Player actions are scheduled with --script "<tick>:<action>[*n]", e.g.
  --script 0:remove:foodGathering*5 --script 0:add:thinkingL1*5 --script 0:focus:hunting`,
		RunE: runSimulate,
	}

	cmd.Flags().IntVarP(&ticks, "ticks", "t", 60, "Number of ticks to run")
	cmd.Flags().IntVar(&every, "every", 10, "Print every n-th tick")
	cmd.Flags().StringArrayVar(&script, "script", nil, "Scheduled action <tick>:<action>[*n] (repeatable)")
	cmd.Flags().StringVar(&historyPath, "history", "", "Record per-tick metrics into this SQLite file")

	return cmd
}

// scheduledAction is an action applied before the given tick runs
type scheduledAction struct {
	tick   int
	action engine.Action
}

// parseScript turns "<tick>:<action>[*n]" entries into a schedule ordered by
// tick, keeping flag order within a tick
func parseScript(lines []string) ([]scheduledAction, error) {
	var out []scheduledAction
	for _, line := range lines {
		at, rest, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("script %q: expected <tick>:<action>", line)
		}
		tick, err := strconv.Atoi(at)
		if err != nil || tick < 0 {
			return nil, fmt.Errorf("script %q: invalid tick %q", line, at)
		}

		repeat := 1
		if body, n, found := strings.Cut(rest, "*"); found {
			repeat, err = strconv.Atoi(n)
			if err != nil || repeat < 1 {
				return nil, fmt.Errorf("script %q: invalid repeat %q", line, n)
			}
			rest = body
		}

		action, err := engine.ParseAction(rest)
		if err != nil {
			return nil, fmt.Errorf("script %q: %w", line, err)
		}
		for i := 0; i < repeat; i++ {
			out = append(out, scheduledAction{tick: tick, action: action})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].tick < out[j].tick })
	return out, nil
}

// tickLine is one printed row of the simulation table
type tickLine struct {
	view  converter.View
	notes []engine.Notification
}

// simulation is the outcome of a headless run
type simulation struct {
	final    *models.GameState
	lines    []tickLine
	notes    []engine.Notification
	rejected []string
}

// runSimulation advances state for n ticks, applying the schedule before each
// tick. record is called after every tick when set.
func runSimulation(eng *engine.Engine, state *models.GameState, n, every int, schedule []scheduledAction, record func(*models.GameState) error) (*simulation, error) {
	sim := &simulation{}
	next := 0

	for t := 0; t < n; t++ {
		for ; next < len(schedule) && schedule[next].tick <= t; next++ {
			a := schedule[next].action
			applied, err := a.Apply(state)
			if err != nil {
				return nil, fmt.Errorf("before tick %d, %s: %w", t, a.Description(), err)
			}
			if applied == state {
				sim.rejected = append(sim.rejected, fmt.Sprintf("tick %d: %s had no effect", t, a.Description()))
			}
			state = applied
		}

		res, err := eng.Step(state)
		if err != nil {
			return nil, err
		}
		state = res.State
		sim.notes = append(sim.notes, res.Notifications...)

		if record != nil {
			if err := record(state); err != nil {
				return nil, err
			}
		}
		if every > 0 && (state.Tick%every == 0 || len(res.Notifications) > 0 || t == n-1) {
			sim.lines = append(sim.lines, tickLine{view: converter.ToView(state), notes: res.Notifications})
		}
	}

	sim.final = state
	return sim, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	infoColor := color.New(color.FgYellow)
	successColor := color.New(color.FgGreen, color.Bold)

	printBanner("Headless Simulation")

	catalog, cfg, err := loadGame()
	if err != nil {
		return err
	}
	schedule, err := parseScript(script)
	if err != nil {
		return err
	}

	eng := engine.New(cfg.Rules)
	state := engine.NewGame(catalog, cfg)

	if !quiet {
		infoColor.Printf("📦 Loaded %d cards, preset %s, %d workers\n\n", len(catalog.Cards), cfg.Preset, cfg.StartingWorkers.Total())
	}

	var record func(*models.GameState) error
	if historyPath != "" {
		rec, err := history.Open(historyPath)
		if err != nil {
			return err
		}
		defer rec.Close()

		runID, err := rec.StartRun(cfg.Preset, time.Now())
		if err != nil {
			return err
		}
		record = func(s *models.GameState) error { return rec.RecordTick(runID, s) }
		defer func() {
			if sum, err := rec.Summary(runID); err == nil && !quiet {
				printHistorySummary(runID, sum)
			}
		}()
	}

	sim, err := runSimulation(eng, state, ticks, every, schedule, record)
	if err != nil {
		return err
	}

	if !quiet {
		printTickTable(sim.lines)
		printNotifications(sim.notes)
		for _, r := range sim.rejected {
			color.New(color.FgHiBlack).Printf("   %s\n", r)
		}
	}

	successColor.Printf("\n✓ %d ticks simulated\n", sim.final.Tick)
	printFinalState(sim.final)
	return nil
}

func printTickTable(lines []tickLine) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Tick", "Food", "Net", "Workers", "Thoughts", "Focus", "Research", "Events"}),
	)

	for _, l := range lines {
		v := l.view
		var workers []string
		for _, lv := range v.Resources.Levels {
			if lv.Total > 0 {
				workers = append(workers, fmt.Sprintf("L%d %d/%d", int(lv.Level), lv.Assigned, lv.Total))
			}
		}

		focus, research := "", ""
		for _, c := range v.Cards {
			if c.Focused {
				focus = fmt.Sprintf("%s %s", c.ID, converter.FormatPercent(c.Progress))
			}
			if c.Researching {
				research = fmt.Sprintf("%s %s", c.ID, converter.FormatPercent(c.Progress))
			}
		}

		var events []string
		for _, n := range l.notes {
			events = append(events, converter.NotificationIcon(n.Kind)+" "+n.Kind.String())
		}

		food := converter.FormatAmount(v.Resources.Food)
		if v.Resources.Paused {
			food += " ⏸"
		}

		row := []string{
			strconv.Itoa(v.Tick),
			food,
			converter.FormatSignedRate(v.Resources.NetFood),
			strings.Join(workers, " "),
			converter.FormatRate(v.Resources.ThoughtsTotal),
			focus,
			research,
			strings.Join(events, ", "),
		}
		_ = table.Append(row)
	}

	_ = table.Render()
}

func printNotifications(notes []engine.Notification) {
	if len(notes) == 0 {
		return
	}
	noteColor := color.New(color.FgMagenta)
	warnColor := color.New(color.FgRed, color.Bold)

	fmt.Println("\n📜 Events:")
	for _, n := range notes {
		c := noteColor
		if n.Kind == engine.NoteShortage {
			c = warnColor
		}
		c.Printf("   [%4d] %s %s\n", n.Tick, converter.NotificationIcon(n.Kind), n.Message)
	}
}

func printFinalState(s *models.GameState) {
	v := converter.ToView(s)
	fmt.Printf("   %s\n\n", v.Resources.Text())
	for _, c := range v.Cards {
		fmt.Printf("   • %s\n", c.Text())
	}
}
