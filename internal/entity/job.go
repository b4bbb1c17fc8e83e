package entity

import (
	"time"

	appErrors "github.com/moveboard/dispatch/internal/errors"
)

type JobStatus string

const (
	JOB_SCHEDULED   JobStatus = "scheduled"
	JOB_IN_PROGRESS JobStatus = "in_progress"
	JOB_COMPLETED   JobStatus = "completed"
	JOB_CANCELLED   JobStatus = "cancelled"
)

// ScheduledJob is the record that actually consumes slot capacity.
// QuoteID stays nil when the quote write degraded during reservation.
type ScheduledJob struct {
	ID             uint64
	ProviderID     uint64
	QuoteID        *uint64
	ReservationRef string
	ScheduledDate  time.Time
	TimeSlot       TimeSlot
	StartTime      time.Time
	EndTime        time.Time
	CrewSize       int32
	Status         JobStatus
}

var (
	InvalidJobTransitionError = appErrors.NewInternalError(nil, "invalid job status transition", true)
)

var jobStatusFlow = map[JobStatus][]JobStatus{
	JOB_SCHEDULED:   {JOB_IN_PROGRESS, JOB_CANCELLED},
	JOB_IN_PROGRESS: {JOB_COMPLETED, JOB_CANCELLED},
	JOB_COMPLETED:   {},
	JOB_CANCELLED:   {},
}

func IsValidJobStatus(s string) bool {
	_, ok := jobStatusFlow[JobStatus(s)]
	return ok
}

func (s JobStatus) CanTransitionTo(to JobStatus) bool {
	allowed, ok := jobStatusFlow[s]
	if !ok {
		return false
	}
	for _, next := range allowed {
		if next == to {
			return true
		}
	}
	return false
}

func (j *ScheduledJob) Transition(to JobStatus) error {
	if !j.Status.CanTransitionTo(to) {
		return InvalidJobTransitionError
	}

	j.Status = to
	return nil
}
