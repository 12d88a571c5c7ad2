package queue

// Queue is a first in, first out queue.
type Queue[T any] interface {
	Enqueue(item T)
	Dequeue() (T, bool)
	Size() int
	// Drain removes and returns every pending item in order.
	Drain() []T
	Clear()
}
