package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStateMachine(t *testing.T) {
	cases := []struct {
		from    TaskStatus
		to      TaskStatus
		allowed bool
	}{
		{TaskStatusPending, TaskStatusProcessing, true},
		{TaskStatusPending, TaskStatusCancelled, true},
		{TaskStatusPending, TaskStatusCompleted, false},
		{TaskStatusPending, TaskStatusFailed, false},
		{TaskStatusProcessing, TaskStatusCompleted, true},
		{TaskStatusProcessing, TaskStatusFailed, true},
		{TaskStatusProcessing, TaskStatusCancelled, true},
		{TaskStatusProcessing, TaskStatusPending, false},
		{TaskStatusCompleted, TaskStatusCancelled, false},
		{TaskStatusFailed, TaskStatusProcessing, false},
		{TaskStatusCancelled, TaskStatusProcessing, false},
		{TaskStatusCancelled, TaskStatusCancelled, false},
	}

	for _, tc := range cases {
		task := &Task{Status: tc.from}
		assert.Equalf(t, tc.allowed, task.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, TaskStatusPending.Terminal())
	assert.False(t, TaskStatusProcessing.Terminal())
	assert.True(t, TaskStatusCompleted.Terminal())
	assert.True(t, TaskStatusFailed.Terminal())
	assert.True(t, TaskStatusCancelled.Terminal())
}

func TestParseTaskPriority(t *testing.T) {
	assert.Equal(t, TaskPriorityLow, ParseTaskPriority("low"))
	assert.Equal(t, TaskPriorityHigh, ParseTaskPriority("HIGH"))
	assert.Equal(t, TaskPriorityUrgent, ParseTaskPriority("urgent"))
	assert.Equal(t, TaskPriorityMedium, ParseTaskPriority("medium"))
	// unknown labels fall back to medium
	assert.Equal(t, TaskPriorityMedium, ParseTaskPriority("whenever"))
	assert.Equal(t, TaskPriorityMedium, ParseTaskPriority(""))
}

func TestTaskPriorityString(t *testing.T) {
	assert.Equal(t, "low", TaskPriorityLow.String())
	assert.Equal(t, "medium", TaskPriorityMedium.String())
	assert.Equal(t, "high", TaskPriorityHigh.String())
	assert.Equal(t, "urgent", TaskPriorityUrgent.String())
}
