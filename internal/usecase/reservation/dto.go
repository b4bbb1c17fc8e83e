package reservation

import (
	"time"

	"github.com/moveboard/dispatch/internal/entity"
)

type ReservationToCreateDTO struct {
	ProviderID *uint64
	BusinessID *string
	QuoteID    *uint64
	CustomerID *string

	MoveDate time.Time `validate:"required"`
	TimeSlot string    `validate:"required,time_slot"`

	FullName          string `validate:"required"`
	Email             string `validate:"required,email"`
	Phone             string
	PickupAddresses   []string
	DeliveryAddresses []string
	TeamSize          int32 `validate:"min=0"`
	TotalPriceCents   int64 `validate:"min=0"`

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

	QuoteBreakdown *entity.Breakdown
}

// ReservationViewDTO is the read model for a confirmed reservation.
type ReservationViewDTO struct {
	Job   *entity.ScheduledJob
	Quote *entity.Quote
}
