package entity

import (
	"time"

	appErrors "github.com/moveboard/dispatch/internal/errors"
)

type TimeSlot string

const (
	MORNING   TimeSlot = "morning"
	AFTERNOON TimeSlot = "afternoon"
)

func ValidTimeSlots() []string {
	return []string{
		string(MORNING),
		string(AFTERNOON),
	}
}

func IsValidTimeSlot(s string) bool {
	for _, valid := range ValidTimeSlots() {
		if valid == s {
			return true
		}
	}
	return false
}

// SlotWindow is the concrete working window a slot maps to on the
// scheduled day.
type SlotWindow struct {
	StartTime time.Time
	EndTime   time.Time
}

// WindowForSlot maps a slot to its start/end clock times:
// morning 08:00-12:00, afternoon 12:00-17:00.
func WindowForSlot(t TimeSlot) (SlotWindow, error) {
	switch t {
	case MORNING:
		return SlotWindow{
			StartTime: time.Date(0, time.January, 1, 8, 0, 0, 0, time.UTC),
			EndTime:   time.Date(0, time.January, 1, 12, 0, 0, 0, time.UTC),
		}, nil
	case AFTERNOON:
		return SlotWindow{
			StartTime: time.Date(0, time.January, 1, 12, 0, 0, 0, time.UTC),
			EndTime:   time.Date(0, time.January, 1, 17, 0, 0, 0, time.UTC),
		}, nil
	default:
		return SlotWindow{}, appErrors.NewInternalError(nil, "invalid time slot", true)
	}
}
