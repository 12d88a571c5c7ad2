package entity

import (
	"fmt"
	"strings"

	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/google/uuid"
)

// Capability is a set of behaviors an entity opts into. It is fixed when the
// entity is created.
type Capability uint8

const (
	// Avatar entities run their Animator once per tick.
	Avatar Capability = 1 << iota
	// Warpable entities travel through exits.
	Warpable
	// Walker entities emit walk sounds from the tile under them.
	Walker
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{Avatar, "avatar"},
	{Warpable, "warpable"},
	{Walker, "walker"},
}

func (c Capability) Has(o Capability) bool {
	return c&o == o
}

func (c Capability) String() string {
	var names []string
	for _, n := range capabilityNames {
		if c.Has(n.c) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// Names returns the names of every capability in the set.
func (c Capability) Names() []string {
	names := []string{}
	for _, n := range capabilityNames {
		if c.Has(n.c) {
			names = append(names, n.name)
		}
	}
	return names
}

// ParseCapabilities builds a set from names such as "avatar" or "warpable".
func ParseCapabilities(names []string) (Capability, error) {
	var c Capability
	for _, name := range names {
		found := false
		for _, n := range capabilityNames {
			if strings.EqualFold(n.name, name) {
				c |= n.c
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown capability: %s", name)
		}
	}
	return c, nil
}

// Animator advances per entity state such as animations. It runs before the
// physics step.
type Animator interface {
	Update(deltaTime float64)
}

// Entity is a participant of an area. Its body lives in the area.
type Entity struct {
	ID           string
	Name         string
	Size         kinematic.Vector
	Capabilities Capability
	Animator     Animator
}

// NewEntityOptions contains options for creating a new Entity.
type NewEntityOptions struct {
	// ID defaults to a random UUID.
	ID           string
	Name         string
	Size         kinematic.Vector
	Capabilities Capability
	Animator     Animator
}

func New(opts NewEntityOptions) *Entity {
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &Entity{
		ID:           id,
		Name:         opts.Name,
		Size:         opts.Size,
		Capabilities: opts.Capabilities,
		Animator:     opts.Animator,
	}
}

func (e *Entity) Has(c Capability) bool {
	return e.Capabilities.Has(c)
}

func (e *Entity) String() string {
	return fmt.Sprintf("<Entity %s %q>", e.ID, e.Name)
}
