package main

import (
	"strings"
	"testing"

	"github.com/napolitain/prehistoric-idle/internal/models"
)

func TestPrerequisiteTree(t *testing.T) {
	tree := prerequisiteTree(models.DefaultCatalog())
	lines := strings.Split(strings.TrimRight(tree, "\n"), "\n")

	want := []string{
		"🌾 Food Gathering",
		"🤔 Thinking Level 1",
		"   🏹 Hunting",
		"      🔥 Fire",
		"   🐒 Mimicry",
		"💡 Thinking Level 2",
	}
	if len(lines) != len(want) {
		t.Fatalf("tree has %d lines, want %d:\n%s", len(lines), len(want), tree)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestEffectText(t *testing.T) {
	c := models.DefaultCatalog()
	if got := effectText(c.Card(models.CardMimicry)); got != "5 × L1 → L2" {
		t.Errorf("mimicry = %q", got)
	}
	if got := effectText(c.Card(models.CardFire)); got != "food ×1.25; needs L2 thinkers" {
		t.Errorf("fire = %q", got)
	}
	if got := effectText(c.Card(models.CardHunting)); got != "" {
		t.Errorf("hunting = %q", got)
	}
}
