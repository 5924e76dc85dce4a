// Package state provides batched state cells for component-local state.
//
// A Cell never changes its committed value when an update is requested.
// Requests are queued and applied together by Flush, which the owning
// container calls once per event. This mirrors how a rendering engine
// coalesces several state changes raised inside one event into a single
// re-render.
package state

// Cell holds a committed value and the updates queued against it since
// the last flush.
type Cell[T comparable] struct {
	value   T
	pending []func(T) T
}

// NewCell returns a cell whose committed value is initial.
func NewCell[T comparable](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Value returns the committed value. Queued updates are not visible
// until Flush.
func (c *Cell[T]) Value() T {
	return c.value
}

// Pending returns the number of queued updates.
func (c *Cell[T]) Pending() int {
	return len(c.pending)
}

// Update queues fn. At flush time fn receives the value produced by every
// update queued before it, so n calls to Update(inc) always add n.
func (c *Cell[T]) Update(fn func(T) T) {
	c.pending = append(c.pending, fn)
}

// Set queues a replacement with v. The value is captured now; queuing
// Set(c.Value()+1) three times in one batch still only adds one.
func (c *Cell[T]) Set(v T) {
	c.pending = append(c.pending, func(T) T { return v })
}

// Flush applies the queued updates in order, commits the result and
// reports whether the committed value changed.
func (c *Cell[T]) Flush() bool {
	if len(c.pending) == 0 {
		return false
	}
	next := c.value
	for _, fn := range c.pending {
		next = fn(next)
	}
	c.pending = c.pending[:0]
	changed := next != c.value
	c.value = next
	return changed
}
