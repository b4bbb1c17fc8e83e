package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatusFlow(t *testing.T) {
	cases := []struct {
		from    JobStatus
		to      JobStatus
		allowed bool
	}{
		{JOB_SCHEDULED, JOB_IN_PROGRESS, true},
		{JOB_SCHEDULED, JOB_CANCELLED, true},
		{JOB_SCHEDULED, JOB_COMPLETED, false},
		{JOB_IN_PROGRESS, JOB_COMPLETED, true},
		{JOB_IN_PROGRESS, JOB_CANCELLED, true},
		{JOB_IN_PROGRESS, JOB_SCHEDULED, false},
		{JOB_COMPLETED, JOB_CANCELLED, false},
		{JOB_COMPLETED, JOB_IN_PROGRESS, false},
		{JOB_CANCELLED, JOB_SCHEDULED, false},
		{JOB_CANCELLED, JOB_COMPLETED, false},
	}

	for _, c := range cases {
		assert.Equal(
			t, c.allowed, c.from.CanTransitionTo(c.to),
			"%s -> %s", c.from, c.to,
		)
	}
}

func TestJobTransition(t *testing.T) {
	job := ScheduledJob{Status: JOB_SCHEDULED}

	require.NoError(t, job.Transition(JOB_IN_PROGRESS))
	require.Equal(t, JOB_IN_PROGRESS, job.Status)

	require.NoError(t, job.Transition(JOB_COMPLETED))
	require.Equal(t, JOB_COMPLETED, job.Status)
}

func TestJobTransitionRejectedLeavesStatus(t *testing.T) {
	job := ScheduledJob{Status: JOB_COMPLETED}

	err := job.Transition(JOB_CANCELLED)

	require.ErrorIs(t, err, InvalidJobTransitionError)
	require.Equal(t, JOB_COMPLETED, job.Status)
}

func TestIsValidJobStatus(t *testing.T) {
	assert.True(t, IsValidJobStatus("scheduled"))
	assert.True(t, IsValidJobStatus("in_progress"))
	assert.True(t, IsValidJobStatus("completed"))
	assert.True(t, IsValidJobStatus("cancelled"))
	assert.False(t, IsValidJobStatus("done"))
	assert.False(t, IsValidJobStatus(""))
}
