package entity

import "time"

const NotificationNewReservation = "new_reservation"

// Notification is a fire-and-forget record for the provider's owner;
// failing to write one never fails the reservation.
type Notification struct {
	ID              uint64
	RecipientUserID string
	Kind            string
	Title           string
	Body            string
	Payload         map[string]interface{}
	ReadAt          *time.Time
	CreatedAt       time.Time
}
