package services

import (
	"maps"
	"slices"
	"sync"
)

// observers fans a state value out to subscribed callbacks. Callbacks run
// synchronously on the goroutine that changed the state, outside any store
// lock.
type observers[T any] struct {
	mu   sync.Mutex
	next int
	subs map[int]func(T)
}

func (o *observers[T]) subscribe(fn func(T)) (cancel func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.subs == nil {
		o.subs = make(map[int]func(T))
	}
	id := o.next
	o.next++
	o.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.subs, id)
		})
	}
}

func (o *observers[T]) notify(v T) {
	o.mu.Lock()
	fns := make([]func(T), 0, len(o.subs))
	for _, id := range slices.Sorted(maps.Keys(o.subs)) {
		fns = append(fns, o.subs[id])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
