package entity

const (
	DefaultMorningJobs   int64 = 3
	DefaultAfternoonJobs int64 = 2
)

// CapacityRule caps how many jobs a provider takes per slot on a given
// weekday (time.Weekday numbering, Sunday = 0). A nil max means the
// slot was never configured.
type CapacityRule struct {
	ID            uint64
	ProviderID    uint64
	Weekday       int32
	MorningJobs   *int64
	AfternoonJobs *int64
}

// DefaultCapacityRule is what gets auto-provisioned the first time a
// reservation lands on a weekday the provider never configured.
func DefaultCapacityRule(providerID uint64, weekday int32) CapacityRule {
	morning := DefaultMorningJobs
	afternoon := DefaultAfternoonJobs

	return CapacityRule{
		ProviderID:    providerID,
		Weekday:       weekday,
		MorningJobs:   &morning,
		AfternoonJobs: &afternoon,
	}
}

func (r *CapacityRule) MaxFor(slot TimeSlot) *int64 {
	switch slot {
	case MORNING:
		return r.MorningJobs
	case AFTERNOON:
		return r.AfternoonJobs
	default:
		return nil
	}
}

// SlotOpenWithoutConfiguredMax decides what to do when a slot's max is
// nil or 0. An unconfigured-but-unused slot stays open instead of hard
// blocking the reservation; this is a compatibility shim for malformed
// rule rows, not a business rule.
func SlotOpenWithoutConfiguredMax(booked int64) bool {
	return booked == 0
}
