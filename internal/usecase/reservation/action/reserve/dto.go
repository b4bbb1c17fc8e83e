package reserve

import (
	"time"

	"github.com/moveboard/dispatch/internal/entity"
)

// DetailOverrides are the per-field service details sent explicitly on
// the reservation request. A nil pointer means "not sent": when mirroring
// we must be able to tell an explicit zero from an omitted field.
type DetailOverrides struct {
	HeavyItems           []entity.HeavyItem
	StairsFlights        *int32
	PackingHelp          *bool
	PackingRooms         *int32
	PackingMaterials     []string
	DestinationFee       *float64
	DoubleDriveTime      *bool
	TripDistanceMiles    *float64
	TripDistanceDuration *string
	TripDistances        []float64
}

type Input struct {
	ProviderID *uint64
	BusinessID *string
	QuoteID    *uint64
	CustomerID *string

	MoveDate time.Time
	Slot     entity.TimeSlot

	FullName          string
	Email             string
	Phone             string
	PickupAddresses   []string
	DeliveryAddresses []string
	TeamSize          int32
	TotalPriceCents   int64

	Details        DetailOverrides
	QuoteBreakdown *entity.Breakdown
}

// Result is the reference bundle echoed back on success. QuoteID and
// BookingID stay nil when the corresponding write degraded.
type Result struct {
	ReservationRef string
	Job            *entity.ScheduledJob
	Provider       *entity.Provider
	QuoteID        *uint64
	BookingID      *uint64
}
