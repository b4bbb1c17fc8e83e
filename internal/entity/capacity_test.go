package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCapacityRule(t *testing.T) {
	rule := DefaultCapacityRule(7, 3)

	require.Equal(t, uint64(7), rule.ProviderID)
	require.Equal(t, int32(3), rule.Weekday)
	require.NotNil(t, rule.MorningJobs)
	require.NotNil(t, rule.AfternoonJobs)
	assert.Equal(t, DefaultMorningJobs, *rule.MorningJobs)
	assert.Equal(t, DefaultAfternoonJobs, *rule.AfternoonJobs)
}

func TestCapacityRuleMaxFor(t *testing.T) {
	morning := int64(4)
	rule := CapacityRule{MorningJobs: &morning}

	require.NotNil(t, rule.MaxFor(MORNING))
	assert.Equal(t, int64(4), *rule.MaxFor(MORNING))
	assert.Nil(t, rule.MaxFor(AFTERNOON))
}

func TestSlotOpenWithoutConfiguredMax(t *testing.T) {
	assert.True(t, SlotOpenWithoutConfiguredMax(0))
	assert.False(t, SlotOpenWithoutConfiguredMax(1))
	assert.False(t, SlotOpenWithoutConfiguredMax(5))
}
