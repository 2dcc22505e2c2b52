// Package pqueue provides the min-priority queue used by the grid search.
package pqueue

import "container/heap"

type entry[T any] struct {
	item     T
	priority float64
	seq      uint64
}

// entries implements heap.Interface. Equal priorities are ordered by
// insertion sequence so the queue behaves FIFO among ties.
type entries[T any] []entry[T]

func (e entries[T]) Len() int { return len(e) }
func (e entries[T]) Less(i, j int) bool {
	if e[i].priority != e[j].priority {
		return e[i].priority < e[j].priority
	}
	return e[i].seq < e[j].seq
}
func (e entries[T]) Swap(i, j int) { e[i], e[j] = e[j], e[i] }

func (e *entries[T]) Push(x any) {
	*e = append(*e, x.(entry[T]))
}

func (e *entries[T]) Pop() any {
	old := *e
	n := len(old)
	item := old[n-1]
	var zero entry[T]
	old[n-1] = zero
	*e = old[:n-1]
	return item
}

// PriorityQueue is an unbounded min-priority queue.
// The same item may be inserted any number of times; nothing is deduplicated.
type PriorityQueue[T any] struct {
	heap entries[T]
	next uint64
}

// New creates an empty queue.
func New[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{}
}

// Insert adds item with the given priority. An item whose priority equals
// existing entries is placed after all of them.
func (q *PriorityQueue[T]) Insert(item T, priority float64) {
	heap.Push(&q.heap, entry[T]{item: item, priority: priority, seq: q.next})
	q.next++
}

// Dequeue removes and returns the lowest-priority item.
// ok is false when the queue is empty.
func (q *PriorityQueue[T]) Dequeue() (item T, ok bool) {
	if len(q.heap) == 0 {
		return item, false
	}
	e := heap.Pop(&q.heap).(entry[T])
	return e.item, true
}

// Peek returns the lowest-priority item without removing it.
func (q *PriorityQueue[T]) Peek() (item T, ok bool) {
	if len(q.heap) == 0 {
		return item, false
	}
	return q.heap[0].item, true
}

// Len returns the number of queued entries.
func (q *PriorityQueue[T]) Len() int {
	return len(q.heap)
}
