package engine

import "errors"

var (
	// ErrUnknownCard is returned when an operation names a card the state does not hold
	ErrUnknownCard = errors.New("unknown card")
	// ErrUnknownLevel is returned for a worker level outside the tracked tiers
	ErrUnknownLevel = errors.New("unknown worker level")
	// ErrUnknownEffect is returned for a discovery effect kind the engine cannot apply
	ErrUnknownEffect = errors.New("unknown discovery effect")
	// ErrUpgradeExceedsPool is returned when an upgrade moves more workers than the source level holds
	ErrUpgradeExceedsPool = errors.New("upgrade amount exceeds source pool")
	// ErrInvariant marks a state that breaks pool bookkeeping
	ErrInvariant = errors.New("invariant violated")
)
