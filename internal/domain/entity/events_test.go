package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitter_SubscribeFireDispose(t *testing.T) {
	var e Emitter[int]
	var got []int

	first := e.Subscribe(func(v int) { got = append(got, v) })
	e.Subscribe(func(v int) { got = append(got, v*10) })

	e.Fire(1)
	first.Dispose()
	e.Fire(2)

	assert.Equal(t, []int{1, 10, 20}, got)
	assert.Equal(t, 1, e.Len())
}

func TestEmitter_DisposeDuringFire(t *testing.T) {
	var e Emitter[string]
	var calls int
	var second Disposable

	e.Subscribe(func(string) {
		calls++
		second.Dispose()
	})
	second = e.Subscribe(func(string) { calls++ })

	// The in-flight event still reaches the listener removed mid-dispatch.
	e.Fire("x")
	assert.Equal(t, 2, calls)

	e.Fire("y")
	assert.Equal(t, 3, calls)
}

func TestCompositeDisposable_ReverseOrder(t *testing.T) {
	var order []int
	var c CompositeDisposable
	c.Add(DisposableFunc(func() { order = append(order, 1) }), DisposableFunc(func() { order = append(order, 2) }))

	c.Dispose()
	c.Dispose()
	assert.Equal(t, []int{2, 1}, order)
}
