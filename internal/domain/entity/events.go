package entity

// Disposable releases a resource or a subscription.
type Disposable interface {
	Dispose()
}

// DisposableFunc adapts a function to Disposable.
type DisposableFunc func()

// Dispose calls f.
func (f DisposableFunc) Dispose() {
	if f != nil {
		f()
	}
}

// Emitter is a single-producer event source with synchronous delivery.
// Listeners run in subscription order; a listener added while firing is not
// called for the event in flight.
type Emitter[T any] struct {
	listeners []emitterListener[T]
	nextID    int
}

type emitterListener[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a handle removing it.
func (e *Emitter[T]) Subscribe(fn func(T)) Disposable {
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, emitterListener[T]{id: id, fn: fn})
	return DisposableFunc(func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	})
}

// Fire delivers v to every current listener.
func (e *Emitter[T]) Fire(v T) {
	if len(e.listeners) == 0 {
		return
	}
	snapshot := make([]emitterListener[T], len(e.listeners))
	copy(snapshot, e.listeners)
	for _, l := range snapshot {
		l.fn(v)
	}
}

// Len returns the number of listeners.
func (e *Emitter[T]) Len() int {
	return len(e.listeners)
}

// Clear drops every listener.
func (e *Emitter[T]) Clear() {
	e.listeners = nil
}

// CompositeDisposable disposes a set of handles together.
type CompositeDisposable struct {
	items []Disposable
}

// Add appends handles to the set.
func (c *CompositeDisposable) Add(items ...Disposable) {
	c.items = append(c.items, items...)
}

// Dispose releases every handle in reverse order of addition.
func (c *CompositeDisposable) Dispose() {
	for i := len(c.items) - 1; i >= 0; i-- {
		if c.items[i] != nil {
			c.items[i].Dispose()
		}
	}
	c.items = nil
}
