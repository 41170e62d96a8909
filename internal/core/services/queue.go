package services

import (
	"container/heap"
	"sync"

	"github.com/agentos/backend/internal/domain"
)

// taskQueue is a blocking priority queue of task ids: highest priority first,
// FIFO among equal priorities (submission sequence breaks ties). This is a
// strict priority queue by contract; tests pin the ordering.
type taskQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  queueItems
	seq    uint64
	closed bool
}

type queueItem struct {
	id       string
	priority domain.TaskPriority
	seq      uint64
}

type queueItems []queueItem

func (q queueItems) Len() int { return len(q) }

func (q queueItems) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority > q[j].priority
	}
	return q[i].seq < q[j].seq
}

func (q queueItems) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queueItems) Push(x interface{}) { *q = append(*q, x.(queueItem)) }

func (q *queueItems) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

func newTaskQueue() *taskQueue {
	q := &taskQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *taskQueue) Enqueue(id string, priority domain.TaskPriority) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.seq++
	heap.Push(&q.items, queueItem{id: id, priority: priority, seq: q.seq})
	q.cond.Signal()
	return nil
}

// Dequeue blocks until an item is available. After Close, remaining items are
// drained and then ErrQueueClosed is returned.
func (q *taskQueue) Dequeue() (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		if q.closed {
			return "", ErrQueueClosed
		}
		q.cond.Wait()
	}
	item := heap.Pop(&q.items).(queueItem)
	return item.id, nil
}

func (q *taskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *taskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
