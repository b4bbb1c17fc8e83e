package entity

// Provider is a moving company. BusinessID links it to the marketplace
// business profile customers see; it is nil for providers that were
// onboarded before a profile existed, in which case no customer-facing
// booking mirror can be written.
type Provider struct {
	ID          uint64
	BusinessID  *string
	OwnerUserID string
	Name        string
}
