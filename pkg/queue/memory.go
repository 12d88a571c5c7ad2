package queue

import "sync"

// InMemoryQueue implements an unbounded in-memory queue. Items are handed
// out in the order they were enqueued.
type InMemoryQueue[T any] struct {
	items []T
	lock  sync.RWMutex
}

// NewInMemoryQueue creates a new queue.
func NewInMemoryQueue[T any]() *InMemoryQueue[T] {
	return &InMemoryQueue[T]{}
}

// Enqueue adds an item to the end of the queue.
func (q *InMemoryQueue[T]) Enqueue(item T) {
	q.lock.Lock()
	defer q.lock.Unlock()
	q.items = append(q.items, item)
}

// Dequeue removes and returns the item from the front of the queue. The
// second return value is false when the queue is empty.
func (q *InMemoryQueue[T]) Dequeue() (T, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

// Size returns the current size of the queue.
func (q *InMemoryQueue[T]) Size() int {
	q.lock.RLock()
	defer q.lock.RUnlock()
	return len(q.items)
}

// Drain reads all pending items in the queue.
func (q *InMemoryQueue[T]) Drain() []T {
	q.lock.Lock()
	defer q.lock.Unlock()
	items := q.items
	q.items = nil
	return items
}

// Clear clears all items from the queue.
func (q *InMemoryQueue[T]) Clear() {
	q.lock.Lock()
	defer q.lock.Unlock()
	q.items = nil
}
