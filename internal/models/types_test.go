package models

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseWorkerLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    WorkerLevel
		wantErr bool
	}{
		{"level1", Level1, false},
		{"L2", Level2, false},
		{"3", Level3, false},
		{" Level4 ", Level4, false},
		{"level5", 0, true},
		{"0", 0, true},
		{"mimic", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseWorkerLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseWorkerLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseWorkerLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestWorkerLevelLabels(t *testing.T) {
	if got := Level2.Label(); got != "(L2) Mimic" {
		t.Errorf("Label = %q", got)
	}
	if got := Level4.Name(); got != "Storyteller" {
		t.Errorf("Name = %q", got)
	}
	if WorkerLevel(7).Valid() {
		t.Error("level 7 should be invalid")
	}
}

func TestWorkerCountsAsMapKeys(t *testing.T) {
	counts := WorkerCounts{Level1: 3, Level2: 1}

	data, err := json.Marshal(counts)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"level1":3,"level2":1}` {
		t.Errorf("json = %s", data)
	}

	var fromYAML WorkerCounts
	if err := yaml.Unmarshal([]byte("level1: 3\nL2: 1\n"), &fromYAML); err != nil {
		t.Fatal(err)
	}
	if fromYAML[Level1] != 3 || fromYAML[Level2] != 1 {
		t.Errorf("yaml = %v", fromYAML)
	}
}

func TestCardClone(t *testing.T) {
	orig := DefaultCatalog().Card(CardMimicry)
	orig.AssignedWorkers = WorkerCounts{Level1: 1}

	clone := orig.Clone()
	clone.AssignedWorkers[Level1] = 5
	clone.Prerequisites[0] = "other"
	clone.OnDiscovery.Amount = 99

	if orig.AssignedWorkers[Level1] != 1 || orig.Prerequisites[0] != CardThinkingL1 || orig.OnDiscovery.Amount != 5 {
		t.Errorf("clone shares memory with original: %+v", orig)
	}
}

func TestCardHelpers(t *testing.T) {
	c := DefaultCatalog()

	if got := c.Card(CardThinkingL2).MinAcceptedLevel(); got != Level2 {
		t.Errorf("thinkingL2 min level = %v", got)
	}
	if got := c.Card(CardMimicry).MinAcceptedLevel(); got != MaxWorkerLevel+1 {
		t.Errorf("science min level = %v", got)
	}
	if got := c.Card(CardFire).ResearchFloor(); got != Level2 {
		t.Errorf("fire floor = %v", got)
	}
	if got := c.Card(CardHunting).ResearchFloor(); got != Level1 {
		t.Errorf("hunting floor = %v", got)
	}
	if c.Card(CardThinkingL2).Accepts(Level1) {
		t.Error("thinkingL2 accepts level 1")
	}
	if Science.AcceptsWorkers() {
		t.Error("science accepts workers")
	}
}

func TestResearchPercent(t *testing.T) {
	r := ResearchProgress{ToImaginedCurrent: 2.5, ToImaginedRequired: 5, ToDiscoveredCurrent: 3, ToDiscoveredRequired: 12}

	if got := r.Percent(Unthoughtof); got != 50 {
		t.Errorf("unthoughtof = %v", got)
	}
	if got := r.Percent(Imagined); got != 25 {
		t.Errorf("imagined = %v", got)
	}
	if got := r.Percent(Discovered); got != 100 {
		t.Errorf("discovered = %v", got)
	}
}
