package frontier

import "container/heap"

// Frontier is an ordered open set. key is consulted only by Priority.
type Frontier[T any] interface {
	// Push inserts v with the given key.
	Push(v T, key float64)
	// Pop removes and returns the next element; ok is false when empty.
	Pop() (v T, ok bool)
	// Len returns the number of pending elements.
	Len() int
}

// Stack is a LIFO frontier.
type Stack[T any] struct {
	items []T
}

// NewStack returns an empty Stack with the given capacity hint.
func NewStack[T any](capacity int) *Stack[T] {
	return &Stack[T]{items: make([]T, 0, capacity)}
}

// Push appends v to the top of the stack.
func (s *Stack[T]) Push(v T, _ float64) { s.items = append(s.items, v) }

// Pop removes the most recently pushed element.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	n := len(s.items)
	if n == 0 {
		return zero, false
	}
	v := s.items[n-1]
	s.items[n-1] = zero
	s.items = s.items[:n-1]

	return v, true
}

// Len returns the number of elements on the stack.
func (s *Stack[T]) Len() int { return len(s.items) }

// Queue is a FIFO frontier backed by a slice with a moving head.
type Queue[T any] struct {
	items []T
	head  int
}

// NewQueue returns an empty Queue with the given capacity hint.
func NewQueue[T any](capacity int) *Queue[T] {
	return &Queue[T]{items: make([]T, 0, capacity)}
}

// Push appends v at the tail.
func (q *Queue[T]) Push(v T, _ float64) { q.items = append(q.items, v) }

// Pop removes the element at the head.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if q.head == len(q.items) {
		return zero, false
	}
	v := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	// reclaim the consumed prefix once it dominates the buffer
	if q.head > 64 && q.head*2 >= len(q.items) {
		size := len(q.items)
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:size])
		q.items = q.items[:n]
		q.head = 0
	}

	return v, true
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int { return len(q.items) - q.head }

// Priority is a min-key frontier with stable insertion-order tie-break.
type Priority[T any] struct {
	h   entries[T]
	seq uint64
}

// NewPriority returns an empty Priority with the given capacity hint.
func NewPriority[T any](capacity int) *Priority[T] {
	return &Priority[T]{h: make(entries[T], 0, capacity)}
}

// Push inserts v with the given key.
func (p *Priority[T]) Push(v T, key float64) {
	heap.Push(&p.h, entry[T]{value: v, key: key, seq: p.seq})
	p.seq++
}

// Pop removes the element with the smallest key; among equal keys, the one
// pushed first.
func (p *Priority[T]) Pop() (T, bool) {
	if len(p.h) == 0 {
		var zero T
		return zero, false
	}

	return heap.Pop(&p.h).(entry[T]).value, true
}

// Len returns the number of pending elements.
func (p *Priority[T]) Len() int { return len(p.h) }

// entry pairs a value with its key and insertion sequence number.
type entry[T any] struct {
	value T
	key   float64
	seq   uint64
}

// entries is a min-heap of entry ordered by (key, seq) ascending.
type entries[T any] []entry[T]

func (e entries[T]) Len() int { return len(e) }

func (e entries[T]) Less(i, j int) bool {
	if e[i].key != e[j].key {
		return e[i].key < e[j].key
	}

	return e[i].seq < e[j].seq
}

func (e entries[T]) Swap(i, j int) { e[i], e[j] = e[j], e[i] }

func (e *entries[T]) Push(x interface{}) { *e = append(*e, x.(entry[T])) }

func (e *entries[T]) Pop() interface{} {
	old := *e
	n := len(old)
	item := old[n-1]
	old[n-1] = entry[T]{}
	*e = old[:n-1]

	return item
}
