package reserve

import (
	"github.com/google/uuid"

	appErrors "github.com/moveboard/dispatch/internal/errors"
)

type step string

const (
	stepStart                 step = "START"
	stepRuleResolved          step = "RULE_RESOLVED"
	stepAvailabilityConfirmed step = "AVAILABILITY_CONFIRMED"
	stepQuotePersisted        step = "QUOTE_PERSISTED"
	stepJobCreated            step = "JOB_CREATED"
	stepMirrored              step = "MIRRORED"
	stepAborted               step = "ABORTED"
)

// stepFlow encodes which transitions the orchestration may take. Abort
// is unreachable once the job exists: from that point the capacity is
// consumed and every remaining step is best-effort.
var stepFlow = map[step][]step{
	stepStart:                 {stepRuleResolved, stepAborted},
	stepRuleResolved:          {stepAvailabilityConfirmed, stepAborted},
	stepAvailabilityConfirmed: {stepQuotePersisted, stepAborted},
	stepQuotePersisted:        {stepJobCreated, stepAborted},
	stepJobCreated:            {stepMirrored},
	stepMirrored:              {},
	stepAborted:               {},
}

type reservationState struct {
	step        step
	ref         string
	abortReason string
}

func newReservationState() *reservationState {
	return &reservationState{
		step: stepStart,
		ref:  uuid.NewString(),
	}
}

func (s *reservationState) advance(to step) error {
	for _, next := range stepFlow[s.step] {
		if next == to {
			s.step = to
			return nil
		}
	}

	return appErrors.NewInternalError(
		nil,
		"invalid reservation step transition: "+string(s.step)+" -> "+string(to),
		false,
	)
}

// abort is a no-op once the flow table forbids it, i.e. from
// JOB_CREATED onward.
func (s *reservationState) abort(reason string) {
	if err := s.advance(stepAborted); err != nil {
		return
	}

	s.abortReason = reason
}

func (s *reservationState) committed() bool {
	return s.step == stepJobCreated || s.step == stepMirrored
}
