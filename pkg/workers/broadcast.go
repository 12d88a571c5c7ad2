package workers

import (
	"context"
	"fmt"
	"sync"

	"github.com/cbodonnell/tilearea/pkg/log"
	"github.com/cbodonnell/tilearea/pkg/messages"
)

// subscriberBuffer is how many encoded messages a slow subscriber may fall
// behind before messages are dropped for it.
const subscriberBuffer = 8

type BroadcastMessage struct {
	Type     string
	AreaID   string
	Snapshot *messages.AreaSnapshot
}

// BroadcastSnapshotWorker encodes area snapshots once and fans them out to
// every subscriber of the area.
type BroadcastSnapshotWorker struct {
	broadcastMessageChan <-chan BroadcastMessage

	lock        sync.RWMutex
	subscribers map[string]map[chan []byte]struct{}
}

type NewBroadcastSnapshotWorkerOptions struct {
	BroadcastMessageChan <-chan BroadcastMessage
}

func NewBroadcastSnapshotWorker(opts NewBroadcastSnapshotWorkerOptions) *BroadcastSnapshotWorker {
	return &BroadcastSnapshotWorker{
		broadcastMessageChan: opts.BroadcastMessageChan,
		subscribers:          make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel of compressed snapshots of an area and a
// function that ends the subscription. The channel is closed when the
// subscription ends or the area is removed.
func (w *BroadcastSnapshotWorker) Subscribe(areaID string) (<-chan []byte, func()) {
	w.lock.Lock()
	defer w.lock.Unlock()

	ch := make(chan []byte, subscriberBuffer)
	if w.subscribers[areaID] == nil {
		w.subscribers[areaID] = make(map[chan []byte]struct{})
	}
	w.subscribers[areaID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() { w.unsubscribe(areaID, ch) })
	}
}

func (w *BroadcastSnapshotWorker) unsubscribe(areaID string, ch chan []byte) {
	w.lock.Lock()
	defer w.lock.Unlock()

	subs, ok := w.subscribers[areaID]
	if !ok {
		return
	}
	if _, ok := subs[ch]; !ok {
		return
	}
	delete(subs, ch)
	close(ch)
	if len(subs) == 0 {
		delete(w.subscribers, areaID)
	}
}

// Subscribers returns the number of subscribers of an area.
func (w *BroadcastSnapshotWorker) Subscribers(areaID string) int {
	w.lock.RLock()
	defer w.lock.RUnlock()
	return len(w.subscribers[areaID])
}

func (w *BroadcastSnapshotWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.closeAll()
			return
		case msg := <-w.broadcastMessageChan:
			switch msg.Type {
			case messages.MessageTypeServerAreaSnapshot:
				if err := w.handleAreaSnapshot(msg); err != nil {
					log.Error("Failed to handle area snapshot message: %v", err)
				}
			case messages.MessageTypeServerAreaRemoved:
				w.handleAreaRemoved(msg)
			default:
				log.Error("Unknown broadcast message type: %v", msg.Type)
			}
		}
	}
}

func (w *BroadcastSnapshotWorker) handleAreaSnapshot(msg BroadcastMessage) error {
	if msg.Snapshot == nil {
		return fmt.Errorf("snapshot of area %s is nil", msg.AreaID)
	}
	if w.Subscribers(msg.AreaID) == 0 {
		return nil
	}

	b, err := messages.SerializeAreaSnapshot(msg.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %v", err)
	}
	compressed, err := messages.Compress(b)
	if err != nil {
		return fmt.Errorf("failed to compress snapshot: %v", err)
	}

	w.lock.RLock()
	defer w.lock.RUnlock()
	for ch := range w.subscribers[msg.AreaID] {
		select {
		case ch <- compressed:
		default:
			log.Warn("Dropping snapshot of area %s for a slow subscriber", msg.AreaID)
		}
	}
	return nil
}

func (w *BroadcastSnapshotWorker) handleAreaRemoved(msg BroadcastMessage) {
	w.lock.Lock()
	defer w.lock.Unlock()
	for ch := range w.subscribers[msg.AreaID] {
		close(ch)
	}
	delete(w.subscribers, msg.AreaID)
}

func (w *BroadcastSnapshotWorker) closeAll() {
	w.lock.Lock()
	defer w.lock.Unlock()
	for areaID, subs := range w.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(w.subscribers, areaID)
	}
}
