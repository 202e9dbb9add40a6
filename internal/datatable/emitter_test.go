package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitter_DeliversInRegistrationOrder(t *testing.T) {
	var e Emitter[int]
	var got []string

	e.Subscribe(func(v int) { got = append(got, "first") })
	e.Subscribe(func(v int) { got = append(got, "second") })
	e.Subscribe(nil)

	e.Emit(1)
	assert.Equal(t, []string{"first", "second"}, got)
	assert.Equal(t, 2, e.Len())
}

func TestEmitter_UnsubscribeDuringEmit(t *testing.T) {
	var e Emitter[int]
	calls := map[string]int{}

	var sub Subscription
	sub = e.Subscribe(func(int) {
		calls["once"]++
		sub.Unsubscribe()
	})
	e.Subscribe(func(int) { calls["always"]++ })

	e.Emit(1)
	e.Emit(2)

	assert.Equal(t, 1, calls["once"])
	assert.Equal(t, 2, calls["always"])
	assert.Equal(t, 1, e.Len())
}

func TestEmitter_UniqueIDs(t *testing.T) {
	var e Emitter[string]
	a := e.Subscribe(func(string) {})
	b := e.Subscribe(func(string) {})
	assert.NotEqual(t, a.ID(), b.ID())

	var inert Subscription
	inert.Unsubscribe()
	assert.Equal(t, 2, e.Len())
}
