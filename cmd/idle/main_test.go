package main

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/napolitain/prehistoric-idle/internal/engine"
	"github.com/napolitain/prehistoric-idle/internal/history"
	"github.com/napolitain/prehistoric-idle/internal/loader"
	"github.com/napolitain/prehistoric-idle/internal/models"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    []int
		wantErr bool
	}{
		{"empty", nil, nil, false},
		{"single", []string{"3:pause"}, []int{3}, false},
		{"repeat", []string{"0:add:hunting*3"}, []int{0, 0, 0}, false},
		{"sorted by tick", []string{"5:pause", "1:focus:hunting", "5:protect:off"}, []int{1, 5, 5}, false},
		{"missing tick", []string{"pause"}, nil, true},
		{"negative tick", []string{"-1:pause"}, nil, true},
		{"bad repeat", []string{"0:add:hunting*0"}, nil, true},
		{"unknown action", []string{"0:dance"}, nil, true},
		{"missing card", []string{"0:add"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScript(tt.lines)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseScript() error = %v, wantErr %v", err, tt.wantErr)
			}
			var ticks []int
			for _, s := range got {
				ticks = append(ticks, s.tick)
			}
			if !reflect.DeepEqual(ticks, tt.want) {
				t.Errorf("ticks = %v, want %v", ticks, tt.want)
			}
		})
	}
}

func TestParseScriptKeepsFlagOrderWithinTick(t *testing.T) {
	got, err := parseScript([]string{"2:remove:foodGathering", "2:add:thinkingL1"})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].action.Description() != "remove worker foodGathering" || got[1].action.Description() != "add worker thinkingL1" {
		t.Errorf("order = %s, %s", got[0].action.Description(), got[1].action.Description())
	}
}

// TestSimulationMatchesDirectSteps verifies that a scripted simulation ends in
// the same state as applying the actions and stepping by hand
func TestSimulationMatchesDirectSteps(t *testing.T) {
	catalog, cfg, err := loader.Load("../../data", "casual")
	if err != nil {
		t.Fatalf("Failed to load data: %v", err)
	}
	eng := engine.New(cfg.Rules)

	schedule, err := parseScript([]string{
		"0:remove:foodGathering*5",
		"0:add:thinkingL1*5",
		"0:focus:hunting",
		"2:research:hunting",
	})
	if err != nil {
		t.Fatal(err)
	}

	sim, err := runSimulation(eng, engine.NewGame(catalog, cfg), 6, 1, schedule, nil)
	if err != nil {
		t.Fatalf("runSimulation: %v", err)
	}

	s := engine.NewGame(catalog, cfg)
	for _, a := range schedule[:11] {
		if s, err = a.action.Apply(s); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 6; i++ {
		if i == 2 {
			if s, err = schedule[11].action.Apply(s); err != nil {
				t.Fatal(err)
			}
		}
		res, err := eng.Step(s)
		if err != nil {
			t.Fatal(err)
		}
		s = res.State
	}

	if !reflect.DeepEqual(sim.final, s) {
		t.Errorf("simulation diverged from direct steps")
	}
	if got := sim.final.Cards[models.CardHunting].State; got != models.Discovered {
		t.Errorf("hunting = %s, want discovered", got)
	}
	if len(sim.lines) != 6 {
		t.Errorf("got %d table lines, want 6", len(sim.lines))
	}
	if len(sim.rejected) != 0 {
		t.Errorf("unexpected rejected actions: %v", sim.rejected)
	}
}

func TestSimulationReportsRejectedActions(t *testing.T) {
	schedule, err := parseScript([]string{"0:research:fire"})
	if err != nil {
		t.Fatal(err)
	}

	sim, err := runSimulation(engine.New(models.DefaultRules()), engine.CreateInitialGameState(), 1, 0, schedule, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(sim.rejected) != 1 {
		t.Errorf("rejected = %v", sim.rejected)
	}
	if len(sim.lines) != 0 {
		t.Errorf("every=0 should print no lines, got %d", len(sim.lines))
	}
}

func TestSimulationRecordsHistory(t *testing.T) {
	rec, err := history.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()

	runID, err := rec.StartRun("default", time.Now())
	if err != nil {
		t.Fatal(err)
	}

	record := func(s *models.GameState) error { return rec.RecordTick(runID, s) }
	if _, err := runSimulation(engine.New(models.DefaultRules()), engine.CreateInitialGameState(), 10, 0, nil, record); err != nil {
		t.Fatal(err)
	}

	sum, err := rec.Summary(runID)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Ticks != 10 || sum.MaxFood != 20 || sum.Pauses != 0 {
		t.Errorf("summary = %+v", sum)
	}
}
