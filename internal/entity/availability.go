package entity

import "fmt"

const ReasonDateBlocked = "date blocked"

func ReasonFullyBooked(booked, maxJobs int64) string {
	return fmt.Sprintf("fully booked (%d/%d)", booked, maxJobs)
}

// Availability is the evaluator's answer for one (provider, date, slot).
// Booked and MaxJobs expose the counts the answer was derived from; the
// count-based answer is authoritative over any cached signal.
type Availability struct {
	Available bool
	Blocked   bool
	Reason    string
	Booked    int64
	MaxJobs   *int64
}
