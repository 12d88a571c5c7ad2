package state

import (
	"context"
	"fmt"

	"github.com/cbodonnell/tilearea/pkg/messages"
)

// StateManager provides shared access to the latest snapshot of every area.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the latest snapshot of an area.
	Get(ctx context.Context, areaID string) (*messages.AreaSnapshot, error)
	// List returns copies of the latest snapshots, ordered by area id.
	List(ctx context.Context) ([]*messages.AreaSnapshot, error)
	// Set stores the snapshot of an area.
	Set(ctx context.Context, snapshot *messages.AreaSnapshot) error
	// Delete forgets an area.
	Delete(ctx context.Context, areaID string) error
}

type ErrNotFound struct {
	AreaID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("no state for area %s", e.AreaID)
}

func IsNotFound(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}
