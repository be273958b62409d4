package models

// EffectKind names a one-shot discovery effect
type EffectKind string

const (
	EffectWorkerLevelUpgrade EffectKind = "worker_level_upgrade"
)

// DiscoveryEffect fires exactly once when its card becomes Discovered
type DiscoveryEffect struct {
	Kind      EffectKind  `json:"kind" yaml:"kind"`
	FromLevel WorkerLevel `json:"from_level" yaml:"from_level"`
	ToLevel   WorkerLevel `json:"to_level" yaml:"to_level"`
	Amount    int         `json:"amount" yaml:"amount"`
	Message   string      `json:"message,omitempty" yaml:"message,omitempty"`
}

// UpgradeKind names a standing effect of a Discovered card
type UpgradeKind string

const (
	UpgradeFoodProduction UpgradeKind = "food_production"
)

// PersistentUpgrade stays active for as long as its card is Discovered
type PersistentUpgrade struct {
	Kind       UpgradeKind `json:"kind" yaml:"kind"`
	Multiplier float64     `json:"multiplier" yaml:"multiplier"`
}
