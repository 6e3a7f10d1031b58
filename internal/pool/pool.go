package pool

import "sync"

// Resettable is implemented by values that can be cleared before reuse.
type Resettable interface {
	Reset()
}

// Pool is a typed wrapper around sync.Pool that resets values on Put.
type Pool[T Resettable] struct {
	p sync.Pool
}

// New creates a Pool that allocates with newFn when empty.
func New[T Resettable](newFn func() T) *Pool[T] {
	return &Pool[T]{
		p: sync.Pool{
			New: func() any { return newFn() },
		},
	}
}

// Get returns a pooled value or a freshly allocated one.
func (p *Pool[T]) Get() T {
	return p.p.Get().(T)
}

// Put resets item and makes it available to later Get calls.
func (p *Pool[T]) Put(item T) {
	item.Reset()
	p.p.Put(item)
}
