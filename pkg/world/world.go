package world

import (
	"errors"
	"fmt"

	"github.com/cbodonnell/tilearea/pkg/area"
	"github.com/cbodonnell/tilearea/pkg/entity"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/log"
	"github.com/cbodonnell/tilearea/pkg/messages"
	"github.com/cbodonnell/tilearea/pkg/pathfinding"
	"github.com/cbodonnell/tilearea/pkg/signals"
	"github.com/cbodonnell/tilearea/pkg/tilemap"
)

// Universe holds every area of a running game and lets their exits find each
// other. It is owned by the game loop and is not safe for concurrent use.
type Universe struct {
	bus                 *signals.Bus
	warpSound           string
	clearanceIterations int
	neighborhood        pathfinding.Neighborhood
	animate             AnimatorFactory

	areas map[string]*area.Area
	order []string
	// levels maps an area to the file it was loaded from.
	levels map[string]string
}

// AnimatorFactory builds the animator of an entity loaded from a level. It
// returns nil for entities without one.
type AnimatorFactory func(e *entity.Entity, spec tilemap.EntitySpec) entity.Animator

// NewUniverseOptions contains options for creating a new Universe.
type NewUniverseOptions struct {
	// Bus receives the signals of every area. Defaults to a new bus.
	Bus *signals.Bus
	// WarpSound is played in the destination area of every warp.
	WarpSound           string
	ClearanceIterations int
	Neighborhood        pathfinding.Neighborhood
	Animate             AnimatorFactory
}

func NewUniverse(opts NewUniverseOptions) *Universe {
	bus := opts.Bus
	if bus == nil {
		bus = signals.NewBus()
	}
	return &Universe{
		bus:                 bus,
		warpSound:           opts.WarpSound,
		clearanceIterations: opts.ClearanceIterations,
		neighborhood:        opts.Neighborhood,
		animate:             opts.Animate,
		areas:               make(map[string]*area.Area),
		levels:              make(map[string]string),
	}
}

func (u *Universe) Bus() *signals.Bus {
	return u.bus
}

// SetAnimatorFactory sets the factory used by levels loaded from now on.
func (u *Universe) SetAnimatorFactory(f AnimatorFactory) {
	u.animate = f
}

// Area returns the area with the given id.
func (u *Universe) Area(id string) (*area.Area, bool) {
	a, ok := u.areas[id]
	return a, ok
}

// Areas returns the areas in the order they were added.
func (u *Universe) Areas() []*area.Area {
	out := make([]*area.Area, 0, len(u.order))
	for _, id := range u.order {
		out = append(out, u.areas[id])
	}
	return out
}

// AddArea creates an area that warps through this universe and publishes on
// its bus.
func (u *Universe) AddArea(opts area.Options) (*area.Area, error) {
	if _, ok := u.areas[opts.ID]; ok {
		return nil, fmt.Errorf("area %s already exists", opts.ID)
	}
	opts.Directory = u
	if opts.Bus == nil {
		opts.Bus = u.bus
	}
	if opts.WarpSound == "" {
		opts.WarpSound = u.warpSound
	}
	if opts.ClearanceIterations == 0 {
		opts.ClearanceIterations = u.clearanceIterations
	}
	a, err := area.New(opts)
	if err != nil {
		return nil, err
	}
	u.areas[a.ID()] = a
	u.order = append(u.order, a.ID())
	return a, nil
}

// RemoveArea drops an area and everything in it.
func (u *Universe) RemoveArea(id string) error {
	if _, ok := u.areas[id]; !ok {
		return fmt.Errorf("%w: %s", area.ErrAreaNotFound, id)
	}
	delete(u.areas, id)
	delete(u.levels, id)
	for i, other := range u.order {
		if other == id {
			u.order = append(u.order[:i], u.order[i+1:]...)
			break
		}
	}
	return nil
}

// AreaOptions builds area options from a level description.
func AreaOptions(level *tilemap.Level) (area.Options, error) {
	p, err := level.Projection()
	if err != nil {
		return area.Options{}, fmt.Errorf("failed to create projection for level %s: %w", level.ID, err)
	}
	exits := make([]area.Exit, 0, len(level.Exits))
	for _, e := range level.Exits {
		exits = append(exits, area.Exit{ID: e.ID, Tile: e.Tile(), Destination: e.Destination})
	}
	return area.Options{
		ID:           level.ID,
		Name:         level.Name,
		Projection:   p,
		Scaling:      level.Physics.ScalingOrDefault(),
		Timestep:     level.Physics.TimestepOrDefault(),
		Gravity:      level.Physics.GravityVector(),
		Geometry:     level.Geometry(),
		Exits:        exits,
		Tiles:        level.Grid(),
		IndexBuilder: level.IndexBuilder(),
	}, nil
}

// LoadLevel creates the area described by level and places its entities.
func (u *Universe) LoadLevel(level *tilemap.Level) (*area.Area, error) {
	opts, err := AreaOptions(level)
	if err != nil {
		return nil, err
	}
	opts.Neighborhood = u.neighborhood
	a, err := u.AddArea(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create area for level %s: %w", level.ID, err)
	}
	for _, spec := range level.Entities {
		e, err := spec.Entity()
		if err != nil {
			return nil, errors.Join(err, u.RemoveArea(a.ID()))
		}
		if u.animate != nil {
			e.Animator = u.animate(e, spec)
		}
		if err := a.Add(e, spec.Position()); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to place entity %s in level %s: %w", e.ID, level.ID, err), u.RemoveArea(a.ID()))
		}
	}
	if level.Path != "" {
		u.levels[a.ID()] = level.Path
	}
	return a, nil
}

// LoadDir loads every level in dir.
func (u *Universe) LoadDir(dir string) error {
	levels, err := tilemap.LoadDir(dir)
	if err != nil {
		return err
	}
	for _, level := range levels {
		if _, err := u.LoadLevel(level); err != nil {
			return err
		}
		log.Debug("Loaded level %s from %s", level.ID, level.Path)
	}
	return nil
}

// Reload re-reads a level file and replaces the geometry and tiles of its
// area. Bodies stay where they are.
func (u *Universe) Reload(path string) error {
	level, err := tilemap.Load(path)
	if err != nil {
		return err
	}
	a, ok := u.areas[level.ID]
	if !ok {
		if _, err := u.LoadLevel(level); err != nil {
			return fmt.Errorf("failed to load new level %s: %w", level.ID, err)
		}
		return nil
	}
	if err := a.ReplaceGeometry(level.Geometry(), level.Grid()); err != nil {
		return fmt.Errorf("failed to reload level %s: %w", level.ID, err)
	}
	u.levels[a.ID()] = path
	return nil
}

// Update runs one tick of every area, in the order they were added. A
// failing area does not stop the others.
func (u *Universe) Update(deltaTime float64) error {
	var errs []error
	for _, id := range u.order {
		if err := u.areas[id].Update(deltaTime); err != nil {
			errs = append(errs, fmt.Errorf("area %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// Locate finds the area an entity is in.
func (u *Universe) Locate(entityID string) (*area.Area, bool) {
	for _, id := range u.order {
		if a := u.areas[id]; a.Has(entityID) {
			return a, true
		}
	}
	return nil, false
}

// Place adds an entity to an area, taking it out of the area it is in.
func (u *Universe) Place(e *entity.Entity, areaID string, origin kinematic.Vector) error {
	dest, ok := u.areas[areaID]
	if !ok {
		return fmt.Errorf("%w: %s", area.ErrAreaNotFound, areaID)
	}
	if current, ok := u.Locate(e.ID); ok {
		if current == dest {
			return dest.SetPosition(e.ID, origin)
		}
		if err := current.Remove(e.ID); err != nil {
			return fmt.Errorf("failed to take entity %s out of area %s: %w", e.ID, current.ID(), err)
		}
	}
	return dest.Add(e, origin)
}

// Snapshots captures every area.
func (u *Universe) Snapshots() []*messages.AreaSnapshot {
	out := make([]*messages.AreaSnapshot, 0, len(u.order))
	for _, id := range u.order {
		out = append(out, u.areas[id].Snapshot())
	}
	return out
}
