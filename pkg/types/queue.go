package types

import "sync"

// FIFO with unlimited capacity
// not thread safe
type queue[T any] struct {
	data []T
}

func (q *queue[T]) len() int {
	return len(q.data)
}

func (q *queue[T]) push(v T) {
	q.data = append(q.data, v)
}

// panics if empty
func (q *queue[T]) pop() T {
	var zero T
	v := q.data[0]
	q.data[0] = zero
	q.data = q.data[1:]
	return v
}

// 1 ctrl M send N recv
type ControlledQueue[T any] struct {
	data   queue[T]
	mu     sync.Mutex
	cond   *sync.Cond
	closed bool
}

func NewControlledQueue[T any]() *ControlledQueue[T] {
	cq := &ControlledQueue[T]{}
	cq.cond = sync.NewCond(&cq.mu)
	return cq
}

// wakes every blocked Recv, items already queued are still delivered
// only call once from ctrl
func (cq *ControlledQueue[T]) Close() {
	cq.mu.Lock()
	cq.closed = true
	cq.mu.Unlock()
	cq.cond.Broadcast()
}

// return true on Send
// return false if closed and not Send
func (cq *ControlledQueue[T]) Send(v T) bool {
	cq.mu.Lock()
	if cq.closed {
		cq.mu.Unlock()
		return false
	}
	cq.data.push(v)
	cq.mu.Unlock()
	cq.cond.Signal()
	return true
}

// blocks on empty to wait to receive
func (cq *ControlledQueue[T]) Recv() (T, bool) {
	_, v, ok := cq.AttemptRecv(true)
	return v, ok
}

// return (false, zero, true) on empty
// return (true, v, true) on recv
// return (true, zero, false) on closed
// can opt out of blocking on empty
func (cq *ControlledQueue[T]) AttemptRecv(blockOnEmpty bool) (canRecv bool, v T, ok bool) {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	for cq.data.len() == 0 {
		if cq.closed {
			return true, v, false
		}
		if !blockOnEmpty {
			return false, v, true
		}
		cq.cond.Wait()
	}
	return true, cq.data.pop(), true
}

func (cq *ControlledQueue[T]) Len() int {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	return cq.data.len()
}
