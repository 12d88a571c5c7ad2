package repositories

import "fmt"

type ErrNotFound struct {
	EntityID string
}

func (e *ErrNotFound) Error() string {
	if e.EntityID == "" {
		return "not found"
	}
	return fmt.Sprintf("placement of entity %s not found", e.EntityID)
}

func IsNotFound(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}
