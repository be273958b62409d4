package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/prehistoric-idle/internal/models"
)

// CatalogFile is the catalog file looked up in a data directory
const CatalogFile = "cards.yaml"

// LoadCatalog reads a card catalog from a YAML or JSON file
func LoadCatalog(path string) (*models.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var catalog models.Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &catalog)
	case ".json":
		err = json.Unmarshal(data, &catalog)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if err := ValidateCatalog(&catalog); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", filepath.Base(path), err)
	}
	return &catalog, nil
}

// LoadCatalogDir loads cards.yaml from dataDir, falling back to the built-in
// catalog when the file does not exist. A file that exists but is invalid is
// still an error.
func LoadCatalogDir(dataDir string) (*models.Catalog, error) {
	path := filepath.Join(dataDir, CatalogFile)
	catalog, err := LoadCatalog(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("catalog file not found, using built-in cards", "path", path)
		return models.DefaultCatalog(), nil
	}
	return catalog, err
}

// ValidateCatalog checks the structural rules every catalog must satisfy
func ValidateCatalog(c *models.Catalog) error {
	var errs []error

	if len(c.Cards) == 0 {
		return errors.New("catalog has no cards")
	}

	seen := make(map[string]bool, len(c.Cards))
	for _, card := range c.Cards {
		if card.ID == "" {
			errs = append(errs, fmt.Errorf("card %q: empty id", card.Title))
			continue
		}
		if seen[card.ID] {
			errs = append(errs, fmt.Errorf("card %s: duplicate id", card.ID))
		}
		seen[card.ID] = true
	}

	for _, card := range c.Cards {
		errs = append(errs, validateCard(card, seen)...)
	}

	baseline := c.Card(c.Baseline)
	switch {
	case c.Baseline == "":
		errs = append(errs, errors.New("baseline: not set"))
	case baseline == nil:
		errs = append(errs, fmt.Errorf("baseline: unknown card %s", c.Baseline))
	default:
		if baseline.Kind != models.Task || baseline.Production.Rate(models.Food) <= 0 {
			errs = append(errs, fmt.Errorf("baseline %s: must be a food producing task", c.Baseline))
		}
		if baseline.State != models.Discovered || len(baseline.Prerequisites) > 0 {
			errs = append(errs, fmt.Errorf("baseline %s: must start discovered with no prerequisites", c.Baseline))
		}
		if len(baseline.AcceptedWorkerLevels) == 0 {
			errs = append(errs, fmt.Errorf("baseline %s: accepts no workers", c.Baseline))
		}
	}

	return errors.Join(errs...)
}

func validateCard(card *models.Card, ids map[string]bool) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("card %s: "+format, append([]any{card.ID}, args...)...))
	}

	switch card.Kind {
	case models.Task, models.Thinking:
	case models.Science:
		if len(card.AcceptedWorkerLevels) > 0 {
			fail("science cards accept no workers")
		}
	default:
		fail("unknown kind %q", card.Kind)
	}
	if card.State.Rank() < 0 {
		fail("unknown state %q", card.State)
	}

	for _, l := range card.AcceptedWorkerLevels {
		if !l.Valid() {
			fail("accepted level %d out of range", int(l))
		}
	}
	if card.Kind == models.Thinking {
		if !card.ThinkingLevel.Valid() {
			fail("thinking card needs a thinking_level")
		}
		if card.Production.Rate(models.Thoughts) <= 0 {
			fail("thinking card produces no thoughts")
		}
	}
	if card.MinimumThinkingLevel != 0 && !card.MinimumThinkingLevel.Valid() {
		fail("minimum_thinking_level %d out of range", int(card.MinimumThinkingLevel))
	}

	for kind, rate := range card.Production {
		if rate < 0 {
			fail("negative %s rate", kind)
		}
	}
	r := card.Research
	if r.ToImaginedRequired < 0 || r.ToDiscoveredRequired < 0 {
		fail("negative research requirement")
	}

	for _, id := range card.Prerequisites {
		if !ids[id] {
			fail("unknown prerequisite %s", id)
		}
		if id == card.ID {
			fail("lists itself as a prerequisite")
		}
	}

	if e := card.OnDiscovery; e != nil {
		switch {
		case e.Kind != models.EffectWorkerLevelUpgrade:
			fail("unknown discovery effect %q", e.Kind)
		case !e.FromLevel.Valid() || !e.ToLevel.Valid():
			fail("discovery effect levels out of range")
		case e.Amount <= 0:
			fail("discovery effect amount must be positive")
		}
	}
	if u := card.PersistentUpgrade; u != nil {
		if u.Kind != models.UpgradeFoodProduction {
			fail("unknown upgrade %q", u.Kind)
		}
		if u.Multiplier <= 0 {
			fail("upgrade multiplier must be positive")
		}
	}

	return errs
}
