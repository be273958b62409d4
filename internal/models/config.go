package models

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// OverflowPolicy decides what happens to research progress past its threshold
type OverflowPolicy string

const (
	// OverflowKeep lets the counter overshoot the required value
	OverflowKeep OverflowPolicy = "overshoot"
	// OverflowClamp pins the counter at the required value
	OverflowClamp OverflowPolicy = "clamp"
)

// ThinkingFilter decides which assigned workers a thinking card counts
type ThinkingFilter string

const (
	// FilterAtOrAbove counts workers at or above the card's thinking level
	FilterAtOrAbove ThinkingFilter = "at_or_above"
	// FilterExact counts only workers exactly at the card's thinking level
	FilterExact ThinkingFilter = "exact"
)

// Rules are the reducer policies that varied between game versions
type Rules struct {
	ResearchOverflow OverflowPolicy `json:"research_overflow" yaml:"research_overflow"`
	ThinkingFilter   ThinkingFilter `json:"thinking_filter" yaml:"thinking_filter"`
	// AutoImagine promotes Unthoughtof cards once all prerequisites are Discovered
	AutoImagine bool `json:"auto_imagine" yaml:"auto_imagine"`
}

// DefaultRules returns the canonical policies
func DefaultRules() Rules {
	return Rules{
		ResearchOverflow: OverflowKeep,
		ThinkingFilter:   FilterAtOrAbove,
		AutoImagine:      false,
	}
}

// Config is the balance configuration for one game
type Config struct {
	Preset                 string        `json:"preset" yaml:"preset"`
	StartingWorkers        WorkerCounts  `json:"starting_workers" yaml:"starting_workers"`
	StartingFood           float64       `json:"starting_food" yaml:"starting_food"`
	FoodShortageProtection bool          `json:"food_shortage_protection" yaml:"food_shortage_protection"`
	TickInterval           time.Duration `json:"tick_interval" yaml:"tick_interval"`
	Rules                  Rules         `json:"rules" yaml:"rules"`
}

// DefaultConfig is the standard game
func DefaultConfig() Config {
	return Config{
		Preset:                 "default",
		StartingWorkers:        DefaultStartingWorkers(),
		StartingFood:           0,
		FoodShortageProtection: true,
		TickInterval:           time.Second,
		Rules:                  DefaultRules(),
	}
}

// CasualConfig starts with a food buffer and clamps research counters
func CasualConfig() Config {
	c := DefaultConfig()
	c.Preset = "casual"
	c.StartingFood = 50
	c.Rules.ResearchOverflow = OverflowClamp
	return c
}

// HardConfig disables shortage protection; food may go negative
func HardConfig() Config {
	c := DefaultConfig()
	c.Preset = "hard"
	c.FoodShortageProtection = false
	c.Rules.ThinkingFilter = FilterExact
	return c
}

// PresetConfig returns a named preset
func PresetConfig(name string) (Config, error) {
	switch name {
	case "", "default":
		return DefaultConfig(), nil
	case "casual":
		return CasualConfig(), nil
	case "hard":
		return HardConfig(), nil
	default:
		return Config{}, fmt.Errorf("unknown preset %q", name)
	}
}

// LoadConfig loads a YAML balance file. Fields the file omits keep the
// values of the preset it names (default when none).
func LoadConfig(path string) (Config, error) {
	return LoadConfigPreset(path, "")
}

// LoadConfigPreset is LoadConfig with a fallback preset for files that do
// not name one
func LoadConfigPreset(path, preset string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var head struct {
		Preset          string       `yaml:"preset"`
		StartingWorkers WorkerCounts `yaml:"starting_workers"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if head.Preset != "" {
		preset = head.Preset
	}
	cfg, err := PresetConfig(preset)
	if err != nil {
		return Config{}, err
	}
	// a pool in the file replaces the preset pool instead of merging into it
	if head.StartingWorkers != nil {
		cfg.StartingWorkers = nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// ValidateConfig checks the starting pool and the policy names
func ValidateConfig(c Config) error {
	var errs []error

	if c.StartingWorkers.Total() == 0 {
		errs = append(errs, errors.New("starting_workers: at least one worker is required"))
	}
	for l, n := range c.StartingWorkers {
		if !l.Valid() {
			errs = append(errs, fmt.Errorf("starting_workers: unknown level %d", int(l)))
		}
		if n < 0 {
			errs = append(errs, fmt.Errorf("starting_workers.%s: negative count %d", l, n))
		}
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval: must be positive, got %s", c.TickInterval))
	}
	switch c.Rules.ResearchOverflow {
	case OverflowKeep, OverflowClamp:
	default:
		errs = append(errs, fmt.Errorf("rules.research_overflow: unknown policy %q", c.Rules.ResearchOverflow))
	}
	switch c.Rules.ThinkingFilter {
	case FilterAtOrAbove, FilterExact:
	default:
		errs = append(errs, fmt.Errorf("rules.thinking_filter: unknown filter %q", c.Rules.ThinkingFilter))
	}

	return errors.Join(errs...)
}
