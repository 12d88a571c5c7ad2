package state

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cbodonnell/tilearea/pkg/messages"
	"github.com/jinzhu/copier"
)

type InMemoryStateManager struct {
	lock      sync.RWMutex
	snapshots map[string]*messages.AreaSnapshot
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{
		snapshots: make(map[string]*messages.AreaSnapshot),
	}
}

func (m *InMemoryStateManager) Get(ctx context.Context, areaID string) (*messages.AreaSnapshot, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	snapshot, ok := m.snapshots[areaID]
	if !ok {
		return nil, &ErrNotFound{AreaID: areaID}
	}
	return deepCopy(snapshot)
}

func (m *InMemoryStateManager) List(ctx context.Context) ([]*messages.AreaSnapshot, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	ids := make([]string, 0, len(m.snapshots))
	for id := range m.snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*messages.AreaSnapshot, 0, len(ids))
	for _, id := range ids {
		c, err := deepCopy(m.snapshots[id])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Set stores a copy of snapshot, so the caller may keep mutating it.
func (m *InMemoryStateManager) Set(ctx context.Context, snapshot *messages.AreaSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is nil")
	}
	c, err := deepCopy(snapshot)
	if err != nil {
		return err
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	m.snapshots[snapshot.AreaID] = c
	return nil
}

func (m *InMemoryStateManager) Delete(ctx context.Context, areaID string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.snapshots[areaID]; !ok {
		return &ErrNotFound{AreaID: areaID}
	}
	delete(m.snapshots, areaID)
	return nil
}

func deepCopy(snapshot *messages.AreaSnapshot) (*messages.AreaSnapshot, error) {
	c := &messages.AreaSnapshot{}
	if err := copier.CopyWithOption(c, snapshot, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to copy snapshot of area %s: %v", snapshot.AreaID, err)
	}
	return c, nil
}
