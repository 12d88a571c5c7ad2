package game

import (
	"math"

	"github.com/cbodonnell/tilearea/pkg/area"
	"github.com/cbodonnell/tilearea/pkg/entity"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/log"
	"github.com/cbodonnell/tilearea/pkg/projection"
	"github.com/cbodonnell/tilearea/pkg/tilemap"
)

const (
	// DefaultPatrolSpeed is the steering force of a patroller without a
	// configured speed.
	DefaultPatrolSpeed float64 = 100.0
	// PatrolArrivalDistance is how close a patroller gets to a waypoint before
	// heading to the next one.
	PatrolArrivalDistance float64 = 2.0
)

// Locator finds the area an entity is in.
type Locator interface {
	Locate(entityID string) (*area.Area, bool)
}

// Patroller walks an avatar between waypoints, looping back to the first one
// after the last.
type Patroller struct {
	entityID  string
	locator   Locator
	waypoints []kinematic.Vector
	speed     float64
	next      int
}

type NewPatrollerOptions struct {
	EntityID  string
	Locator   Locator
	Waypoints []kinematic.Vector
	Speed     float64
}

func NewPatroller(opts NewPatrollerOptions) *Patroller {
	speed := opts.Speed
	if speed <= 0 {
		speed = DefaultPatrolSpeed
	}
	return &Patroller{
		entityID:  opts.EntityID,
		locator:   opts.Locator,
		waypoints: opts.Waypoints,
		speed:     speed,
	}
}

// Next returns the index of the waypoint the patroller is heading to.
func (p *Patroller) Next() int {
	return p.next
}

// Update steers the entity toward its current waypoint.
func (p *Patroller) Update(deltaTime float64) {
	if len(p.waypoints) == 0 {
		return
	}
	a, ok := p.locator.Locate(p.entityID)
	if !ok {
		return
	}
	pos, err := a.Position(p.entityID)
	if err != nil {
		return
	}

	d := steering(a.Projection().Mode(), p.waypoints[p.next].Sub(pos))
	distance := math.Hypot(math.Hypot(d.X, d.Y), d.Z)
	if distance <= PatrolArrivalDistance {
		p.next = (p.next + 1) % len(p.waypoints)
		if err := a.SetForce(p.entityID, kinematic.Vector{}); err != nil {
			log.Error("Failed to stop patroller %s: %v", p.entityID, err)
		}
		return
	}

	force := d.Scale(p.speed / distance)
	if err := a.SetForce(p.entityID, force); err != nil {
		log.Error("Failed to steer patroller %s: %v", p.entityID, err)
	}
	if err := a.SetOrientation(p.entityID, math.Atan2(force.Y, force.X)); err != nil {
		log.Error("Failed to turn patroller %s: %v", p.entityID, err)
	}
}

// steering keeps the axes a body can walk along. Height is left to gravity.
func steering(mode projection.Mode, d kinematic.Vector) kinematic.Vector {
	d.Z = 0
	if mode == projection.Platformer {
		d.X = 0
	}
	return d
}

// PatrolAnimators builds a patroller for every avatar that lists waypoints.
func PatrolAnimators(locator Locator) func(e *entity.Entity, spec tilemap.EntitySpec) entity.Animator {
	return func(e *entity.Entity, spec tilemap.EntitySpec) entity.Animator {
		if !e.Has(entity.Avatar) || len(spec.Patrol) == 0 {
			return nil
		}
		return NewPatroller(NewPatrollerOptions{
			EntityID:  e.ID,
			Locator:   locator,
			Waypoints: spec.Patrol,
			Speed:     spec.Speed,
		})
	}
}
