package services

import (
	"testing"
	"time"

	"github.com/agentos/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueOrdersByPriority(t *testing.T) {
	q := newTaskQueue()
	require.NoError(t, q.Enqueue("low", domain.TaskPriorityLow))
	require.NoError(t, q.Enqueue("urgent", domain.TaskPriorityUrgent))
	require.NoError(t, q.Enqueue("medium", domain.TaskPriorityMedium))
	require.NoError(t, q.Enqueue("high", domain.TaskPriorityHigh))

	for _, want := range []string{"urgent", "high", "medium", "low"} {
		id, err := q.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestQueueFIFOWithinPriority(t *testing.T) {
	q := newTaskQueue()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue(id, domain.TaskPriorityMedium))
	}

	for _, want := range []string{"a", "b", "c"} {
		id, err := q.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestQueueDequeueBlocksUntilEnqueue(t *testing.T) {
	q := newTaskQueue()
	got := make(chan string, 1)

	go func() {
		id, err := q.Dequeue()
		if err == nil {
			got <- id
		}
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, q.Enqueue("late", domain.TaskPriorityMedium))

	select {
	case id := <-got:
		assert.Equal(t, "late", id)
	case <-time.After(time.Second):
		t.Fatal("dequeue did not unblock")
	}
}

func TestQueueCloseDrainsBeforeErroring(t *testing.T) {
	q := newTaskQueue()
	require.NoError(t, q.Enqueue("remaining", domain.TaskPriorityMedium))
	q.Close()

	id, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "remaining", id)

	_, err = q.Dequeue()
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestQueueEnqueueAfterClose(t *testing.T) {
	q := newTaskQueue()
	q.Close()
	assert.ErrorIs(t, q.Enqueue("x", domain.TaskPriorityMedium), ErrQueueClosed)
}

func TestQueueLen(t *testing.T) {
	q := newTaskQueue()
	assert.Equal(t, 0, q.Len())
	require.NoError(t, q.Enqueue("a", domain.TaskPriorityLow))
	require.NoError(t, q.Enqueue("b", domain.TaskPriorityLow))
	assert.Equal(t, 2, q.Len())
}
