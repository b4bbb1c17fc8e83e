package entity

import "time"

type OverrideKind string

const (
	// OVERRIDE_BLOCK marks a full-day manual block regardless of the
	// capacity rule.
	OVERRIDE_BLOCK OverrideKind = "block"
)

type AvailabilityOverride struct {
	ID         uint64
	ProviderID uint64
	Date       time.Time
	Kind       OverrideKind
}
