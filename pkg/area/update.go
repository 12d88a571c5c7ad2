package area

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cbodonnell/tilearea/pkg/bbox"
	"github.com/cbodonnell/tilearea/pkg/constants"
	"github.com/cbodonnell/tilearea/pkg/entity"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/log"
	"github.com/cbodonnell/tilearea/pkg/messages"
	"github.com/cbodonnell/tilearea/pkg/physics"
	"github.com/cbodonnell/tilearea/pkg/projection"
	"github.com/cbodonnell/tilearea/pkg/signals"
)

// Update runs one tick: animators, one physics step, joins, exits and then
// the deferred adds and removes. Signals raised during the tick are delivered
// once it is over. Warp failures do not stop the tick; they are joined into
// the returned error.
func (a *Area) Update(deltaTime float64) error {
	if a.phase != Idle {
		return ErrReentrantUpdate
	}
	a.phase = Updating
	a.elapsed += deltaTime
	a.sounds = ageSounds(a.sounds, deltaTime)

	for _, id := range a.order {
		a.bodies[id].RememberPosition()
	}
	for _, id := range a.order {
		if e := a.entities[id]; e.Has(entity.Avatar) && e.Animator != nil {
			e.Animator.Update(deltaTime)
		}
	}

	a.group.Update(deltaTime)
	a.applyJoins()

	var errs []error
	for _, id := range a.order {
		if a.pendingRemoves[id] {
			continue
		}
		body := a.bodies[id]
		moved := body.Displacement()
		if moved.IsZero() {
			continue
		}
		a.emit(signals.Signal{Type: signals.BodyMoved, Sender: id, Payload: moved, Position: body.BBox.Origin()})

		e := a.entities[id]
		if e.Has(entity.Walker) {
			a.walkSound(body)
		}
		if e.Has(entity.Warpable) {
			if err := a.checkExits(id, body); err != nil {
				errs = append(errs, err)
			}
		}
	}

	a.phase = Flushing
	errs = append(errs, a.flush()...)
	a.phase = Idle

	a.signals.Dispatch(a.bus)
	return errors.Join(errs...)
}

// flush applies the queued adds and then the queued removes.
func (a *Area) flush() []error {
	var errs []error
	for _, p := range a.addQueue.Drain() {
		delete(a.pendingAdds, p.entity.ID)
		if err := a.addNow(p.entity, p.origin); err != nil {
			errs = append(errs, fmt.Errorf("failed to add queued entity %s: %w", p.entity.ID, err))
		}
	}
	for _, id := range a.removeQueue.Drain() {
		delete(a.pendingRemoves, id)
		if err := a.removeNow(id); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove queued entity %s: %w", id, err))
		}
	}
	return errs
}

// emit buffers s while the area is ticking and publishes it otherwise. A
// signal that already names an area keeps it.
func (a *Area) emit(s signals.Signal) {
	if s.Area == "" {
		s.Area = a.id
	}
	a.signals.Emit(s)
	if a.phase == Idle {
		a.signals.Dispatch(a.bus)
	}
}

func (a *Area) applyJoins() {
	for _, j := range a.joins {
		d := a.bodies[j.leader].Displacement()
		if d.IsZero() {
			continue
		}
		follower := a.bodies[j.follower]
		follower.BBox.MoveBy(d)
		a.group.WakeBody(follower)
	}
}

func (a *Area) walkSound(body *physics.Body) {
	if a.tiles == nil || !a.isGrounded(body) {
		return
	}
	feet := body.BBox.BottomCenter()
	// the tile under the feet; adventure areas ignore z
	probe := feet
	probe.Z--
	name, ok := a.tiles.Property(a.projection.WorldToTile(probe), WalkSoundProperty)
	if !ok || name == "" {
		return
	}
	a.EmitSound(name, feet, constants.WalkSoundTTL)
}

// checkExits warps the body through the first exit it overlaps, unless it is
// still standing on the exit it arrived through.
func (a *Area) checkExits(id string, body *physics.Body) error {
	rect := a.projection.ToRect(body.BBox)
	arrival, arrived := a.arrivals[id]
	for _, exit := range a.exits {
		if !rect.Intersects(a.projection.TileRect(exit.Tile)) {
			continue
		}
		if arrived && exit.ID == arrival {
			return nil
		}
		return a.warp(id, body, exit)
	}
	if arrived {
		delete(a.arrivals, id)
	}
	return nil
}

func (a *Area) warp(id string, body *physics.Body, exit Exit) error {
	var dest *Area
	if a.directory != nil {
		dest, _ = a.directory.Area(exit.Destination)
	}
	if dest == nil {
		return fmt.Errorf("failed to warp entity %s through exit %s: %w: %s", id, exit.ID, ErrAreaNotFound, exit.Destination)
	}
	destExit, ok := dest.exitsByID[exit.ID]
	if !ok {
		return fmt.Errorf("failed to warp entity %s: %w: %s in area %s", id, ErrExitNotFound, exit.ID, dest.id)
	}

	direction := approachDirection(body.Displacement(), a.projection.Plane())
	arrived := body
	if dest != a {
		if dest.phase != Idle {
			return fmt.Errorf("failed to warp entity %s: destination area %s is %s", id, dest.id, dest.phase)
		}
		e := a.entities[id]
		if err := dest.Add(e, body.BBox.Origin()); err != nil {
			return fmt.Errorf("failed to warp entity %s into area %s: %w", id, dest.id, err)
		}
		if err := a.Remove(id); err != nil {
			return fmt.Errorf("failed to warp entity %s out of area %s: %w", id, a.id, err)
		}
		arrived = dest.bodies[id]
		arrived.Orientation = body.Orientation
	}

	dest.placeOnTile(arrived, destExit.Tile)
	dest.clearArrival(arrived, direction)
	dest.arrivals[id] = exit.ID
	if dest != a {
		arrived.RememberPosition()
	}

	log.Debug("Warped entity %s from area %s to area %s through exit %s", id, a.id, dest.id, exit.ID)
	a.emit(signals.Signal{
		Type:     signals.BodyWarped,
		Sender:   id,
		Payload:  signals.WarpPayload{FromArea: a.id, ToArea: dest.id, ExitID: exit.ID},
		Position: arrived.BBox.Origin(),
	})
	// the warp sound belongs to dest but is delivered after this tick's
	// signals, in the order it was raised
	if a.warpSound != "" {
		if s, ok := dest.addSound(a.warpSound, arrived.BBox.Center(), 0); ok {
			a.emit(s)
		}
	}
	return nil
}

// approachDirection is the unit step, on the collision plane, closest to the
// direction of d.
func approachDirection(d kinematic.Vector, plane bbox.Plane) kinematic.Vector {
	first, second := 0, 1
	if plane == bbox.PlaneZY {
		first, second = 1, 2
	}
	angle := math.Atan2(d.Axis(second), d.Axis(first))
	var dir kinematic.Vector
	dir.SetAxis(first, math.Round(math.Cos(angle)))
	dir.SetAxis(second, math.Round(math.Sin(angle)))
	return dir
}

// placeOnTile centers the body on a tile. Adventure bodies land on the
// ground; platformer bodies keep their x and stand on the tile's row.
func (a *Area) placeOnTile(body *physics.Body, tile projection.TileCoord) {
	tb := a.projection.RectToBBox(a.projection.TileRect(tile))
	center := tb.Center()
	size := body.BBox.Size()

	origin := kinematic.Vector{X: center.X - size.X/2, Y: center.Y - size.Y/2}
	if a.projection.Plane() == bbox.PlaneZY {
		origin.X = body.BBox.X
		origin.Z = tb.Z
	}
	body.BBox.SetOrigin(origin)
}

// clearArrival nudges a body along dir, one unit at a time, until it overlaps
// nothing. A nudge into level geometry is undone and ends the search, so a
// body that cannot be cleared stays where it arrived.
func (a *Area) clearArrival(body *physics.Body, dir kinematic.Vector) {
	if dir.IsZero() {
		return
	}
	for i := 0; i < a.clearance; i++ {
		if a.isFree(body) {
			return
		}
		body.BBox.MoveBy(dir)
		if a.group.TestCollision(body.BBox) {
			body.BBox.MoveBy(dir.Scale(-1))
			return
		}
	}
}

// EmitSound plays a sound at pos for ttl seconds. A ttl of 0 uses
// constants.DefaultSoundTTL. It returns false when a sound with the same
// filename is still playing.
func (a *Area) EmitSound(filename string, pos kinematic.Vector, ttl float64) bool {
	s, ok := a.addSound(filename, pos, ttl)
	if ok {
		a.emit(s)
	}
	return ok
}

// addSound records a sound and returns the signal announcing it without
// emitting it.
func (a *Area) addSound(filename string, pos kinematic.Vector, ttl float64) (signals.Signal, bool) {
	a.sounds = compactSounds(a.sounds)
	if playing(a.sounds, filename) {
		return signals.Signal{}, false
	}
	if ttl == 0 {
		ttl = constants.DefaultSoundTTL
	}
	a.sounds = append(a.sounds, Sound{Filename: filename, Position: pos, TTL: ttl})
	return signals.Signal{Type: signals.SoundEmitted, Area: a.id, Sender: a.id, Payload: filename, Position: pos}, true
}

// EmitSoundFrom plays a sound at the center of an entity.
func (a *Area) EmitSoundFrom(id string, filename string, ttl float64) (bool, error) {
	body, err := a.Body(id)
	if err != nil {
		return false, err
	}
	return a.EmitSound(filename, body.BBox.Center(), ttl), nil
}

// Sounds returns the sounds still playing.
func (a *Area) Sounds() []Sound {
	a.sounds = compactSounds(a.sounds)
	out := make([]Sound, len(a.sounds))
	copy(out, a.sounds)
	return out
}

// EmitText records a message said at pos.
func (a *Area) EmitText(text string, pos kinematic.Vector) {
	a.messages = append(a.messages, text)
	a.emit(signals.Signal{Type: signals.TextEmitted, Sender: a.id, Payload: text, Position: pos})
}

// EmitTextFrom records a message said by an entity, above its head.
func (a *Area) EmitTextFrom(id string, text string) error {
	body, err := a.Body(id)
	if err != nil {
		return err
	}
	a.messages = append(a.messages, text)
	a.emit(signals.Signal{Type: signals.TextEmitted, Sender: id, Payload: text, Position: body.BBox.TopCenter()})
	return nil
}

// Messages returns every message emitted so far, oldest first.
func (a *Area) Messages() []string {
	out := make([]string, len(a.messages))
	copy(out, a.messages)
	return out
}

// Snapshot captures the published state of the area.
func (a *Area) Snapshot() *messages.AreaSnapshot {
	snapshot := &messages.AreaSnapshot{
		AreaID:    a.id,
		Name:      a.name,
		Mode:      a.projection.Mode().String(),
		Timestamp: time.Now().UnixMilli(),
		Elapsed:   a.elapsed,
		Bodies:    make([]*messages.BodySnapshot, 0, len(a.order)),
	}
	for _, id := range a.order {
		e, body := a.entities[id], a.bodies[id]
		snapshot.Bodies = append(snapshot.Bodies, &messages.BodySnapshot{
			EntityID:     id,
			Name:         e.Name,
			Position:     body.BBox.Origin(),
			Size:         body.BBox.Size(),
			Velocity:     body.Velocity,
			Orientation:  body.Orientation,
			Sleeping:     a.group.IsSleeping(body),
			Capabilities: uint8(e.Capabilities),
		})
	}
	for _, s := range a.Sounds() {
		snapshot.Sounds = append(snapshot.Sounds, &messages.SoundSnapshot{
			Filename: s.Filename,
			Position: s.Position,
			TTL:      s.TTL,
			Elapsed:  s.Elapsed,
		})
	}
	return snapshot
}
