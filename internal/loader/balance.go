package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/napolitain/prehistoric-idle/internal/models"
)

// BalanceFile is the balance file looked up in a data directory
const BalanceFile = "balance.yaml"

// LoadBalance loads balance.yaml from dataDir on top of the named preset.
// A preset key inside the file wins; a missing file yields the bare preset.
func LoadBalance(dataDir, preset string) (models.Config, error) {
	path := filepath.Join(dataDir, BalanceFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("balance file not found, using preset", "path", path, "preset", preset)
		return models.PresetConfig(preset)
	}

	cfg, err := models.LoadConfigPreset(path, preset)
	if err != nil {
		return models.Config{}, err
	}
	if err := models.ValidateConfig(cfg); err != nil {
		return models.Config{}, fmt.Errorf("invalid %s: %w", BalanceFile, err)
	}
	return cfg, nil
}

// Load reads both the catalog and the balance for a data directory
func Load(dataDir, preset string) (*models.Catalog, models.Config, error) {
	catalog, err := LoadCatalogDir(dataDir)
	if err != nil {
		return nil, models.Config{}, err
	}
	cfg, err := LoadBalance(dataDir, preset)
	if err != nil {
		return nil, models.Config{}, err
	}
	for l := range cfg.StartingWorkers {
		if !acceptedAnywhere(catalog, l) {
			slog.Warn("starting workers at a level no card accepts", "level", l)
		}
	}
	return catalog, cfg, nil
}

func acceptedAnywhere(c *models.Catalog, l models.WorkerLevel) bool {
	for _, card := range c.Cards {
		if card.Accepts(l) {
			return true
		}
	}
	return false
}
