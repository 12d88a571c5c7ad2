package signals

import (
	"fmt"
	"sync"

	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/queue"
)

// Type identifies what happened.
type Type int

const (
	BodyMoved Type = iota
	BodyWarped
	TextEmitted
	SoundEmitted
)

func (t Type) String() string {
	switch t {
	case BodyMoved:
		return "body_moved"
	case BodyWarped:
		return "body_warped"
	case TextEmitted:
		return "text_emitted"
	case SoundEmitted:
		return "sound_emitted"
	default:
		return fmt.Sprintf("signal(%d)", int(t))
	}
}

// Signal is an observation fired by an area. Sender is the id of the entity
// (or area) that caused it.
type Signal struct {
	Type     Type
	Area     string
	Sender   string
	Payload  interface{}
	Position kinematic.Vector
}

// WarpPayload is the payload of a BodyWarped signal.
type WarpPayload struct {
	FromArea string
	ToArea   string
	ExitID   string
}

// Handler reacts to a signal. Handlers run on the goroutine that dispatches.
type Handler func(Signal)

// Bus delivers signals to subscribers.
type Bus struct {
	handlers map[Type][]Handler
	all      []Handler
	lock     sync.RWMutex
}

// NewBus creates a new Bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers h for signals of type t.
func (b *Bus) Subscribe(t Type, h Handler) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// SubscribeAll registers h for every signal.
func (b *Bus) SubscribeAll(h Handler) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.all = append(b.all, h)
}

// Publish delivers s to its subscribers in subscription order.
func (b *Bus) Publish(s Signal) {
	b.lock.RLock()
	handlers := append([]Handler{}, b.handlers[s.Type]...)
	handlers = append(handlers, b.all...)
	b.lock.RUnlock()

	for _, h := range handlers {
		h(s)
	}
}

// Buffer holds signals emitted during a tick until they can be dispatched.
type Buffer struct {
	pending queue.Queue[Signal]
}

// NewBuffer creates a new Buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		pending: queue.NewInMemoryQueue[Signal](),
	}
}

func (b *Buffer) Emit(s Signal) {
	b.pending.Enqueue(s)
}

func (b *Buffer) Len() int {
	return b.pending.Size()
}

// Dispatch publishes every buffered signal to bus in emission order and
// returns them. A nil bus only empties the buffer.
func (b *Buffer) Dispatch(bus *Bus) []Signal {
	pending := b.pending.Drain()
	if bus == nil {
		return pending
	}
	for _, s := range pending {
		bus.Publish(s)
	}
	return pending
}
