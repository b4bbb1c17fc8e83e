package repositories

import "gorm.io/gorm"

// AutoMigrate creates/updates the schema for every model tagged with
// @migration in this package.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Provider{},
		&CapacityRule{},
		&AvailabilityOverride{},
		&Quote{},
		&ScheduledJob{},
		&Booking{},
		&Notification{},
	)
}
