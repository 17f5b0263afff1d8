package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marespinozac/comanda/pkg/event"
)

func TestFireReachesAllListeners(t *testing.T) {
	bus := event.NewBus()

	var got []any
	bus.Listen("thing.happened", func(p any) { got = append(got, p) })
	bus.Listen("thing.happened", func(p any) { got = append(got, p) })

	bus.Fire("thing.happened", 42)

	assert.Equal(t, []any{42, 42}, got)
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	bus := event.NewBus()
	assert.NotPanics(t, func() { bus.Fire("nobody.listens", nil) })
}

func TestFlushDropsListeners(t *testing.T) {
	bus := event.NewBus()

	calls := 0
	bus.Listen("thing.happened", func(any) { calls++ })
	bus.Flush()
	bus.Fire("thing.happened", nil)

	assert.Zero(t, calls)
}
