package signals

import (
	"testing"

	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/stretchr/testify/assert"
)

func TestBus_Publish(t *testing.T) {
	bus := NewBus()
	var moved, all []string
	bus.Subscribe(BodyMoved, func(s Signal) { moved = append(moved, s.Sender) })
	bus.SubscribeAll(func(s Signal) { all = append(all, s.Type.String()) })

	bus.Publish(Signal{Type: BodyMoved, Sender: "a"})
	bus.Publish(Signal{Type: TextEmitted, Sender: "b", Payload: "hello"})

	assert.Equal(t, []string{"a"}, moved)
	assert.Equal(t, []string{"body_moved", "text_emitted"}, all)
}

func TestBuffer_dispatchesInEmissionOrder(t *testing.T) {
	bus := NewBus()
	var got []Type
	bus.SubscribeAll(func(s Signal) { got = append(got, s.Type) })

	buf := NewBuffer()
	buf.Emit(Signal{Type: SoundEmitted, Position: kinematic.Vector{X: 1}})
	buf.Emit(Signal{Type: BodyMoved})
	buf.Emit(Signal{Type: BodyWarped, Payload: WarpPayload{FromArea: "a", ToArea: "b"}})
	assert.Equal(t, 3, buf.Len())
	assert.Empty(t, got, "nothing is delivered before dispatch")

	dispatched := buf.Dispatch(bus)
	assert.Len(t, dispatched, 3)
	assert.Equal(t, []Type{SoundEmitted, BodyMoved, BodyWarped}, got)
	assert.Equal(t, 0, buf.Len())
}

func TestBuffer_dispatchWithoutBus(t *testing.T) {
	buf := NewBuffer()
	buf.Emit(Signal{Type: TextEmitted})
	assert.Len(t, buf.Dispatch(nil), 1)
	assert.Equal(t, 0, buf.Len())
}
