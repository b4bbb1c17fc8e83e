package entity

import "time"

type BookingStatus string

const (
	BOOKING_CONFIRMED BookingStatus = "confirmed"
)

const ServiceTypeMoving = "moving"

// Booking is the customer-facing mirror of a confirmed reservation.
// It is denormalized and best-effort: the reservation stands even when
// this row was never written.
type Booking struct {
	ID              uint64
	CustomerID      string
	BusinessID      string
	ServiceType     string
	BookingStatus   BookingStatus
	RequestedDate   time.Time
	RequestedTime   string
	TotalPriceCents int64
	ServiceDetails  map[string]interface{}
	CreatedAt       time.Time
}
