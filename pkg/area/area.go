package area

import (
	"errors"
	"fmt"
	"math"

	"github.com/cbodonnell/tilearea/pkg/bbox"
	"github.com/cbodonnell/tilearea/pkg/constants"
	"github.com/cbodonnell/tilearea/pkg/entity"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/pathfinding"
	"github.com/cbodonnell/tilearea/pkg/physics"
	"github.com/cbodonnell/tilearea/pkg/projection"
	"github.com/cbodonnell/tilearea/pkg/queue"
	"github.com/cbodonnell/tilearea/pkg/signals"
	"github.com/cbodonnell/tilearea/pkg/spatial"
)

// WalkSoundProperty is the tile property naming the sound a walker makes on
// that tile.
const WalkSoundProperty = "walk_sound"

// Phase is where an area is in its tick.
type Phase int

const (
	Idle Phase = iota
	Updating
	Flushing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Updating:
		return "updating"
	case Flushing:
		return "flushing"
	default:
		return "unknown"
	}
}

var cardinalDirections = map[string]float64{
	"north": math.Pi * 1.5,
	"east":  0,
	"south": math.Pi / 2,
	"west":  math.Pi,
}

// Exit is a tile that moves warpable bodies to the exit with the same ID in
// the Destination area.
type Exit struct {
	ID          string
	Tile        projection.TileCoord
	Destination string
}

// Directory finds areas by ID for warps.
type Directory interface {
	Area(id string) (*Area, bool)
}

// TileGrid is the tile level view used for pathfinding and tile properties.
type TileGrid interface {
	pathfinding.Grid
	Property(t projection.TileCoord, key string) (string, bool)
}

// Options contains options for creating a new Area.
type Options struct {
	ID   string
	Name string
	// Projection fixes the collision plane and tile mapping.
	Projection projection.Projection
	// Scaling is how many world units make one unit of body and geometry
	// size. Defaults to 1.
	Scaling float64
	// Timestep defaults to constants.DefaultTimestep.
	Timestep float64
	Gravity  kinematic.Vector
	// Geometry are the static wall rectangles on the collision plane.
	Geometry []bbox.Rect
	Exits    []Exit
	// Tiles is optional. Without it Pathfind finds nothing and no walk
	// sounds are played.
	Tiles     TileGrid
	Directory Directory
	// Bus receives the area's signals. Optional.
	Bus *signals.Bus
	// ClearanceIterations bounds the nudges used to clear an arrival point.
	// Defaults to constants.WarpClearanceIterations.
	ClearanceIterations int
	IndexBuilder        spatial.Builder
	Neighborhood        pathfinding.Neighborhood
	MaxPathNodes        int
	// WarpSound is emitted in the destination area after a warp.
	WarpSound string
}

type placement struct {
	entity *entity.Entity
	origin kinematic.Vector
}

type join struct {
	leader   string
	follower string
}

// Area owns one physics simulation and the entities in it.
//
// Add and Remove are deferred while the area is updating: they are queued and
// applied in order once the physics step is done, adds before removes, each
// one rebuilding the physics group. Signals raised during a tick are buffered
// and delivered after the flush.
type Area struct {
	id           string
	name         string
	projection   projection.Projection
	scaling      float64
	timestep     float64
	gravity      kinematic.Vector
	geometry     []*bbox.BBox
	indexBuilder spatial.Builder
	exits        []Exit
	exitsByID    map[string]Exit
	tiles        TileGrid
	directory    Directory
	bus          *signals.Bus
	signals      *signals.Buffer
	clearance    int
	neighborhood pathfinding.Neighborhood
	maxPathNodes int
	warpSound    string

	entities map[string]*entity.Entity
	bodies   map[string]*physics.Body
	order    []string
	group    *physics.Group
	joins    []join
	// arrivals maps an entity to the exit it arrived through. The exit does
	// not fire again until the body has stepped off it.
	arrivals map[string]string

	addQueue       queue.Queue[placement]
	removeQueue    queue.Queue[string]
	pendingAdds    map[string]bool
	pendingRemoves map[string]bool

	phase    Phase
	elapsed  float64
	sounds   []Sound
	messages []string
}

func New(opts Options) (*Area, error) {
	if opts.ID == "" {
		return nil, errors.New("area requires an id")
	}
	if opts.Projection == nil {
		return nil, fmt.Errorf("area %s requires a projection", opts.ID)
	}
	scaling := opts.Scaling
	if scaling == 0 {
		scaling = constants.DefaultScaling
	}
	if scaling < 0 {
		return nil, fmt.Errorf("area %s: scaling must be positive, got %v", opts.ID, scaling)
	}
	timestep := opts.Timestep
	if timestep == 0 {
		timestep = constants.DefaultTimestep
	}
	clearance := opts.ClearanceIterations
	if clearance == 0 {
		clearance = constants.WarpClearanceIterations
	}
	if clearance < 0 {
		clearance = 0
	}

	a := &Area{
		id:             opts.ID,
		name:           opts.Name,
		projection:     opts.Projection,
		scaling:        scaling,
		timestep:       timestep,
		gravity:        opts.Gravity,
		indexBuilder:   opts.IndexBuilder,
		exitsByID:      make(map[string]Exit, len(opts.Exits)),
		tiles:          opts.Tiles,
		directory:      opts.Directory,
		bus:            opts.Bus,
		signals:        signals.NewBuffer(),
		clearance:      clearance,
		neighborhood:   opts.Neighborhood,
		maxPathNodes:   opts.MaxPathNodes,
		warpSound:      opts.WarpSound,
		entities:       make(map[string]*entity.Entity),
		bodies:         make(map[string]*physics.Body),
		arrivals:       make(map[string]string),
		addQueue:       queue.NewInMemoryQueue[placement](),
		removeQueue:    queue.NewInMemoryQueue[string](),
		pendingAdds:    make(map[string]bool),
		pendingRemoves: make(map[string]bool),
	}

	for _, exit := range opts.Exits {
		if _, ok := a.exitsByID[exit.ID]; ok {
			return nil, fmt.Errorf("area %s: duplicate exit id %s", a.id, exit.ID)
		}
		a.exitsByID[exit.ID] = exit
		a.exits = append(a.exits, exit)
	}

	a.setGeometry(opts.Geometry)
	if err := a.rebuild(); err != nil {
		return nil, fmt.Errorf("failed to create area %s: %w", a.id, err)
	}
	return a, nil
}

func (a *Area) setGeometry(rects []bbox.Rect) {
	a.geometry = make([]*bbox.BBox, 0, len(rects))
	for _, r := range rects {
		a.geometry = append(a.geometry, a.projection.RectToBBox(r))
	}
}

// rebuild replaces the physics group with one holding the current bodies.
// Sleeping bodies stay asleep.
func (a *Area) rebuild() error {
	bodies := make([]*physics.Body, 0, len(a.order))
	for _, id := range a.order {
		bodies = append(bodies, a.bodies[id])
	}
	var sleeping []*physics.Body
	if a.group != nil {
		sleeping = a.group.Sleeping()
	}

	group, err := physics.NewGroup(physics.GroupOptions{
		Scaling:      1 / a.scaling,
		Timestep:     a.timestep,
		Gravity:      a.gravity,
		Bodies:       bodies,
		Geometry:     a.geometry,
		Projection:   a.projection,
		IndexBuilder: a.indexBuilder,
		Sleeping:     sleeping,
	})
	if err != nil {
		return fmt.Errorf("failed to build physics group: %w", err)
	}
	a.group = group
	return nil
}

func (a *Area) ID() string                        { return a.id }
func (a *Area) Name() string                      { return a.name }
func (a *Area) Projection() projection.Projection { return a.projection }
func (a *Area) Phase() Phase                      { return a.phase }
func (a *Area) Elapsed() float64                  { return a.elapsed }

// Group is the current physics group. It is replaced whenever bodies are
// added or removed, so callers should not hold on to it.
func (a *Area) Group() *physics.Group {
	return a.group
}

func (a *Area) Exits() []Exit {
	out := make([]Exit, len(a.exits))
	copy(out, a.exits)
	return out
}

func (a *Area) Tiles() TileGrid {
	return a.tiles
}

// Add places an entity with its body origin at origin. While the area is
// updating the add is deferred until the end of the tick.
func (a *Area) Add(e *entity.Entity, origin kinematic.Vector) error {
	if e == nil {
		return errors.New("cannot add a nil entity")
	}
	if _, ok := a.entities[e.ID]; ok || a.pendingAdds[e.ID] {
		return fmt.Errorf("%w: %s", ErrEntityExists, e.ID)
	}
	if a.phase == Updating {
		a.pendingAdds[e.ID] = true
		a.addQueue.Enqueue(placement{entity: e, origin: origin})
		return nil
	}
	return a.addNow(e, origin)
}

func (a *Area) addNow(e *entity.Entity, origin kinematic.Vector) error {
	if _, ok := a.entities[e.ID]; ok {
		return fmt.Errorf("%w: %s", ErrEntityExists, e.ID)
	}
	b, err := bbox.FromVectors(origin, e.Size)
	if err != nil {
		return fmt.Errorf("failed to create body for entity %s: %w", e.ID, err)
	}
	body := physics.NewBody(b, kinematic.Vector{}, kinematic.Vector{}, 0)
	if err := a.group.ScaleBody(body); err != nil {
		return fmt.Errorf("failed to scale body for entity %s: %w", e.ID, err)
	}
	body.RememberPosition()

	a.entities[e.ID] = e
	a.bodies[e.ID] = body
	a.order = append(a.order, e.ID)
	return a.rebuild()
}

// Remove takes an entity out of the area. While the area is updating the
// removal is deferred until the end of the tick.
func (a *Area) Remove(id string) error {
	if _, ok := a.entities[id]; !ok && !a.pendingAdds[id] {
		return &ErrEntityNotFound{ID: id}
	}
	if a.phase == Updating {
		if !a.pendingRemoves[id] {
			a.pendingRemoves[id] = true
			a.removeQueue.Enqueue(id)
		}
		return nil
	}
	return a.removeNow(id)
}

func (a *Area) removeNow(id string) error {
	if _, ok := a.entities[id]; !ok {
		return &ErrEntityNotFound{ID: id}
	}
	delete(a.entities, id)
	delete(a.bodies, id)
	delete(a.arrivals, id)
	for i, other := range a.order {
		if other == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	joins := a.joins[:0]
	for _, j := range a.joins {
		if j.leader != id && j.follower != id {
			joins = append(joins, j)
		}
	}
	a.joins = joins
	return a.rebuild()
}

// ReplaceGeometry swaps the static geometry and tile grid, for example after
// the level file changed. It cannot run during an update.
func (a *Area) ReplaceGeometry(rects []bbox.Rect, tiles TileGrid) error {
	if a.phase != Idle {
		return ErrReentrantUpdate
	}
	previous := a.geometry
	a.setGeometry(rects)
	if err := a.rebuild(); err != nil {
		a.geometry = previous
		return err
	}
	if tiles != nil {
		a.tiles = tiles
	}
	return nil
}

func (a *Area) Has(id string) bool {
	_, ok := a.entities[id]
	return ok
}

func (a *Area) Len() int {
	return len(a.order)
}

// Entities returns the entities in the order they were added.
func (a *Area) Entities() []*entity.Entity {
	out := make([]*entity.Entity, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.entities[id])
	}
	return out
}

func (a *Area) Entity(id string) (*entity.Entity, error) {
	e, ok := a.entities[id]
	if !ok {
		return nil, &ErrEntityNotFound{ID: id}
	}
	return e, nil
}

func (a *Area) Body(id string) (*physics.Body, error) {
	body, ok := a.bodies[id]
	if !ok {
		return nil, &ErrEntityNotFound{ID: id}
	}
	return body, nil
}

// BBox returns a copy of the entity's box.
func (a *Area) BBox(id string) (*bbox.BBox, error) {
	body, err := a.Body(id)
	if err != nil {
		return nil, err
	}
	return body.BBox.Clone(), nil
}

// SetBBox replaces the entity's box. The old box becomes its previous box.
func (a *Area) SetBBox(id string, b *bbox.BBox) error {
	body, err := a.Body(id)
	if err != nil {
		return err
	}
	checked, err := bbox.New(b.X, b.Y, b.Z, b.Depth, b.Width, b.Height)
	if err != nil {
		return err
	}
	body.RememberPosition()
	*body.BBox = *checked
	a.group.WakeBody(body)
	return nil
}

func (a *Area) Position(id string) (kinematic.Vector, error) {
	body, err := a.Body(id)
	if err != nil {
		return kinematic.Vector{}, err
	}
	return body.BBox.Origin(), nil
}

// SetPosition moves the entity's box origin without collision checks.
func (a *Area) SetPosition(id string, origin kinematic.Vector) error {
	body, err := a.Body(id)
	if err != nil {
		return err
	}
	body.BBox.SetOrigin(origin)
	a.group.WakeBody(body)
	return nil
}

// OldPosition is the origin the entity had at the start of the last tick.
func (a *Area) OldPosition(id string) (kinematic.Vector, error) {
	body, err := a.Body(id)
	if err != nil {
		return kinematic.Vector{}, err
	}
	return body.PreviousBBox.Origin(), nil
}

func (a *Area) Size(id string) (kinematic.Vector, error) {
	body, err := a.Body(id)
	if err != nil {
		return kinematic.Vector{}, err
	}
	return body.BBox.Size(), nil
}

// Rect returns the entity's rect on the collision plane.
func (a *Area) Rect(id string) (bbox.Rect, error) {
	body, err := a.Body(id)
	if err != nil {
		return bbox.Rect{}, err
	}
	return a.projection.ToRect(body.BBox), nil
}

func (a *Area) Orientation(id string) (float64, error) {
	body, err := a.Body(id)
	if err != nil {
		return 0, err
	}
	return body.Orientation, nil
}

// SetOrientation sets the angle the entity faces, in radians.
func (a *Area) SetOrientation(id string, angle float64) error {
	body, err := a.Body(id)
	if err != nil {
		return err
	}
	body.Orientation = angle
	return nil
}

// SetOrientationCardinal accepts "north", "east", "south" or "west".
func (a *Area) SetOrientationCardinal(id string, direction string) error {
	angle, ok := cardinalDirections[direction]
	if !ok {
		return fmt.Errorf("unknown direction: %s", direction)
	}
	return a.SetOrientation(id, angle)
}

// IsSleeping reports whether the entity's body is asleep. Unknown entities
// are an error, never "awake".
func (a *Area) IsSleeping(id string) (bool, error) {
	body, err := a.Body(id)
	if err != nil {
		return false, err
	}
	return a.group.IsSleeping(body), nil
}

func (a *Area) Wake(id string) error {
	body, err := a.Body(id)
	if err != nil {
		return err
	}
	a.group.WakeBody(body)
	return nil
}

// IsGrounded reports whether the entity stands on the ground plane or on
// level geometry.
func (a *Area) IsGrounded(id string) (bool, error) {
	body, err := a.Body(id)
	if err != nil {
		return false, err
	}
	return a.isGrounded(body), nil
}

func (a *Area) isGrounded(body *physics.Body) bool {
	if body.BBox.Z == 0 {
		return true
	}
	below := body.BBox.Clone()
	below.Move(0, 0, -1)
	return a.group.TestCollision(below)
}

// ApplyForce adds f to the entity's acceleration, on the axes the projection
// uses, and wakes it.
func (a *Area) ApplyForce(id string, f kinematic.Vector) error {
	body, err := a.Body(id)
	if err != nil {
		return err
	}
	a.projection.ApplyForce(body, f)
	a.group.WakeBody(body)
	return nil
}

// SetForce replaces the entity's acceleration on the axes the projection
// controls, and wakes it.
func (a *Area) SetForce(id string, f kinematic.Vector) error {
	body, err := a.Body(id)
	if err != nil {
		return err
	}
	a.projection.SetForce(body, f)
	a.group.WakeBody(body)
	return nil
}

// Join makes follower move with leader. The follower is displaced by the
// leader's movement after every physics step.
func (a *Area) Join(leader, follower string) error {
	if _, err := a.Body(leader); err != nil {
		return err
	}
	if _, err := a.Body(follower); err != nil {
		return err
	}
	if leader == follower {
		return fmt.Errorf("cannot join entity %s to itself", leader)
	}
	for _, j := range a.joins {
		if j.leader == leader && j.follower == follower {
			return nil
		}
	}
	a.joins = append(a.joins, join{leader: leader, follower: follower})
	return nil
}

func (a *Area) Unjoin(leader, follower string) error {
	for i, j := range a.joins {
		if j.leader == leader && j.follower == follower {
			a.joins = append(a.joins[:i], a.joins[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("entity %s is not joined to %s", follower, leader)
}

// TestCollision reports whether b overlaps level geometry.
func (a *Area) TestCollision(b *bbox.BBox) bool {
	return a.group.TestCollision(b)
}

// IsLocationFree reports whether b overlaps neither geometry nor any body.
func (a *Area) IsLocationFree(b *bbox.BBox) bool {
	return !a.group.TestCollision(b) && !a.group.TestCollisionOther(nil, b)
}

func (a *Area) isFree(body *physics.Body) bool {
	return !a.group.TestCollision(body.BBox) && !a.group.TestCollisionOther(body, nil)
}

// Pathfind snaps both points to tiles and searches for a path between them.
// Walls are impassable. The result is empty when there is no path.
func (a *Area) Pathfind(start, goal kinematic.Vector) []projection.TileCoord {
	if a.tiles == nil {
		return nil
	}
	return pathfinding.Search(
		a.projection.WorldToTile(start),
		a.projection.WorldToTile(goal),
		a.tiles,
		pathfinding.Options{Neighborhood: a.neighborhood, MaxNodes: a.maxPathNodes},
	)
}
