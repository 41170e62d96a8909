package services

import (
	"testing"

	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToSubscribers(t *testing.T) {
	hub := NewSubscriberHub()
	ch := hub.Subscribe("task-1")

	hub.Notify("task-1", ports.TaskStatusSnapshot{TaskID: "task-1", Status: domain.TaskStatusProcessing})

	select {
	case snap := <-ch:
		assert.Equal(t, domain.TaskStatusProcessing, snap.Status)
	default:
		t.Fatal("expected a buffered snapshot")
	}
}

func TestHubIsolatesTasks(t *testing.T) {
	hub := NewSubscriberHub()
	ch := hub.Subscribe("task-1")

	hub.Notify("task-2", ports.TaskStatusSnapshot{TaskID: "task-2"})
	assert.Empty(t, ch)
}

func TestHubFansOut(t *testing.T) {
	hub := NewSubscriberHub()
	a := hub.Subscribe("task-1")
	b := hub.Subscribe("task-1")

	hub.Notify("task-1", ports.TaskStatusSnapshot{TaskID: "task-1"})
	assert.Len(t, a, 1)
	assert.Len(t, b, 1)
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewSubscriberHub()
	ch := hub.Subscribe("task-1")
	hub.Unsubscribe("task-1", ch)

	_, open := <-ch
	assert.False(t, open)

	// further notifies must not panic on the closed channel
	hub.Notify("task-1", ports.TaskStatusSnapshot{TaskID: "task-1"})
}

func TestHubUnsubscribeUnknownIsNoop(t *testing.T) {
	hub := NewSubscriberHub()
	ch := make(chan ports.TaskStatusSnapshot)
	hub.Unsubscribe("missing", ch)
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewSubscriberHub()
	ch := hub.Subscribe("task-1")

	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Notify("task-1", ports.TaskStatusSnapshot{TaskID: "task-1"})
	}

	// overflow is dropped, not blocking
	require.Len(t, ch, subscriberBuffer)
}
