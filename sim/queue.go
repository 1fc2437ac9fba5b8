// Implements the EventQueue, a min-heap of scheduled events.

package sim

import "container/heap"

// eventHeap implements heap.Interface.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

// Less orders by time, then by insertion sequence. Equal-time events of any
// kind pop in the order they were pushed.
func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// EventQueue is a priority queue of events ordered by (Time, insertion order).
// The sequence counter belongs to the queue, so independent simulations
// never influence each other's tie-breaking.
type EventQueue struct {
	h       eventHeap
	nextSeq uint64
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{h: make(eventHeap, 0)}
	heap.Init(&q.h)
	return q
}

// Push inserts e, stamping it with the next sequence number.
func (q *EventQueue) Push(e Event) {
	q.nextSeq++
	e.seq = q.nextSeq
	heap.Push(&q.h, e)
}

// PushAll inserts events in slice order.
func (q *EventQueue) PushAll(events []Event) {
	for _, e := range events {
		q.Push(e)
	}
}

// Pop removes and returns the earliest event.
func (q *EventQueue) Pop() (Event, error) {
	if len(q.h) == 0 {
		return Event{}, ErrEmptyQueue
	}
	return heap.Pop(&q.h).(Event), nil
}

// Peek returns the earliest event without removing it.
func (q *EventQueue) Peek() (Event, bool) {
	if len(q.h) == 0 {
		return Event{}, false
	}
	return q.h[0], true
}

// Empty reports whether the queue holds no events.
func (q *EventQueue) Empty() bool {
	return len(q.h) == 0
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.h)
}
