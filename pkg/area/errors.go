package area

import (
	"errors"
	"fmt"
)

var (
	// ErrReentrantUpdate is returned when Update is called while the area is
	// already updating or flushing.
	ErrReentrantUpdate = errors.New("area update already in progress")
	// ErrEntityExists is returned when adding an entity that is already in
	// the area or queued to be added.
	ErrEntityExists = errors.New("entity already in area")
	// ErrAreaNotFound is returned when an exit leads to an unknown area.
	ErrAreaNotFound = errors.New("area not found")
	// ErrExitNotFound is returned when the destination area has no exit with
	// the same id.
	ErrExitNotFound = errors.New("exit not found")
)

// ErrEntityNotFound is returned by lookups of entities that are not in the
// area.
type ErrEntityNotFound struct {
	ID string
}

func (e *ErrEntityNotFound) Error() string {
	return fmt.Sprintf("entity %s not found", e.ID)
}

func IsEntityNotFound(err error) bool {
	var target *ErrEntityNotFound
	return errors.As(err, &target)
}
