package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/cbodonnell/tilearea/pkg/bbox"
	"github.com/cbodonnell/tilearea/pkg/constants"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/projection"
	"github.com/cbodonnell/tilearea/pkg/spatial"
)

// Group owns the dynamic bodies of one area and the index over its static
// geometry. Membership is fixed for the lifetime of the group: adding or
// removing a body means building a new group.
//
// Only two axes are checked against level geometry. The projection decides
// which: x/y for adventure areas, z/y for platformer areas.
type Group struct {
	scaling        float64
	timestep       float64
	gravity        kinematic.Vector
	gravityDelta   kinematic.Vector
	groundFriction float64
	elapsed        float64

	bodies       []*Body
	staticBodies []*Body
	sleeping     map[*Body]struct{}

	projection projection.Projection
	index      spatial.Index
}

// GroupOptions contains options for creating a new Group.
type GroupOptions struct {
	// Scaling multiplies the size of static geometry on the collision plane.
	Scaling float64
	// Timestep is the fixed step in seconds.
	Timestep float64
	// Gravity is added to the acceleration of every awake body each step.
	Gravity kinematic.Vector
	// Bodies are the dynamic bodies in the order they are simulated.
	Bodies []*Body
	// Geometry are the static boxes of the level.
	Geometry []*bbox.BBox
	// Projection selects the collision plane.
	Projection projection.Projection
	// IndexBuilder builds the spatial index. Defaults to a quadtree.
	IndexBuilder spatial.Builder
	// Sleeping are bodies that start asleep, usually carried over from the
	// group being replaced.
	Sleeping []*Body
}

func NewGroup(opts GroupOptions) (*Group, error) {
	if opts.Projection == nil {
		return nil, errors.New("physics group requires a projection")
	}
	if opts.Timestep <= 0 {
		return nil, fmt.Errorf("timestep must be positive, got %v", opts.Timestep)
	}
	if opts.Scaling <= 0 {
		return nil, fmt.Errorf("scaling must be positive, got %v", opts.Scaling)
	}
	build := opts.IndexBuilder
	if build == nil {
		build = spatial.DefaultBuilder
	}

	g := &Group{
		scaling:    opts.Scaling,
		gravity:    opts.Gravity,
		bodies:     make([]*Body, len(opts.Bodies)),
		sleeping:   make(map[*Body]struct{}),
		projection: opts.Projection,
	}
	copy(g.bodies, opts.Bodies)

	members := make(map[*Body]struct{}, len(g.bodies))
	for _, b := range g.bodies {
		members[b] = struct{}{}
	}
	for _, b := range opts.Sleeping {
		if _, ok := members[b]; ok {
			g.sleeping[b] = struct{}{}
		}
	}

	rects := make([]bbox.Rect, 0, len(opts.Geometry))
	for i, geometry := range opts.Geometry {
		b := geometry.Clone()
		if err := g.scaleGeometry(b); err != nil {
			return nil, fmt.Errorf("failed to scale geometry %d: %w", i, err)
		}
		g.staticBodies = append(g.staticBodies, NewBody(b, kinematic.Vector{}, kinematic.Vector{}, 0))
		rects = append(rects, g.projection.ToRect(b))
	}
	g.index = build(rects)

	g.SetTimestep(opts.Timestep)
	return g, nil
}

// scaleGeometry scales the two axes of the collision plane. The collapsed
// axis keeps its unit extent.
func (g *Group) scaleGeometry(b *bbox.BBox) error {
	s := g.scaling
	switch g.projection.Plane() {
	case bbox.PlaneZY:
		return b.Scale(1, s, s)
	default:
		return b.Scale(s, s, 1)
	}
}

// ScaleBody scales a dynamic body on every axis.
func (g *Group) ScaleBody(body *Body) error {
	return body.BBox.Scale(g.scaling, g.scaling, g.scaling)
}

// SetTimestep sets the fixed step and precomputes the per step gravity and
// ground friction.
func (g *Group) SetTimestep(timestep float64) {
	g.timestep = timestep
	g.gravityDelta = g.gravity.Scale(timestep)
	g.groundFriction = kinematic.FrictionFactor(constants.GroundFrictionBase, timestep)
}

func (g *Group) Timestep() float64 {
	return g.timestep
}

func (g *Group) GroundFriction() float64 {
	return g.groundFriction
}

// Elapsed is the total time passed to Update.
func (g *Group) Elapsed() float64 {
	return g.elapsed
}

func (g *Group) Projection() projection.Projection {
	return g.projection
}

// Bodies returns the dynamic bodies in simulation order.
func (g *Group) Bodies() []*Body {
	out := make([]*Body, len(g.bodies))
	copy(out, g.bodies)
	return out
}

func (g *Group) StaticBodies() []*Body {
	out := make([]*Body, len(g.staticBodies))
	copy(out, g.staticBodies)
	return out
}

// Sleeping returns the sleeping bodies in simulation order.
func (g *Group) Sleeping() []*Body {
	out := make([]*Body, 0, len(g.sleeping))
	for _, b := range g.bodies {
		if _, ok := g.sleeping[b]; ok {
			out = append(out, b)
		}
	}
	return out
}

func (g *Group) IsSleeping(body *Body) bool {
	_, ok := g.sleeping[body]
	return ok
}

// WakeBody returns a sleeping body to the simulation. Waking an awake body
// does nothing.
func (g *Group) WakeBody(body *Body) {
	delete(g.sleeping, body)
}

// Update advances every awake body by one fixed step. deltaTime is only
// accumulated; the step size is the timestep.
func (g *Group) Update(deltaTime float64) {
	g.elapsed += deltaTime
	for _, body := range g.bodies {
		if g.IsSleeping(body) {
			continue
		}
		g.step(body)
	}
}

func (g *Group) step(body *Body) {
	body.Acceleration = body.Acceleration.Add(g.gravityDelta)
	body.Velocity = kinematic.FinalVelocity(body.Velocity, g.timestep, body.Acceleration)

	// x then y then z. The order decides which axis wins when more than
	// one would collide.
	for axis := 0; axis < 2; axis++ {
		v := body.Velocity.Axis(axis)
		if v == 0 {
			continue
		}
		if !g.MoveBody(body, kinematic.OnAxis(axis, v)) {
			g.respond(body, axis, constants.BounceThreshold)
		}
	}

	vz := body.Velocity.Z
	if vz > 0 {
		if !g.MoveBody(body, kinematic.OnAxis(2, vz)) {
			g.respond(body, 2, constants.VerticalBounceThreshold)
		}
	} else if vz < 0 {
		g.fall(body, vz)
	}

	if body.BBox.Z == 0 {
		body.Velocity.X *= g.groundFriction
		body.Velocity.Y *= g.groundFriction
	}

	if kinematic.Round(body.Velocity.X, constants.SleepPrecisionXY) == 0 &&
		kinematic.Round(body.Velocity.Y, constants.SleepPrecisionXY) == 0 &&
		kinematic.Round(body.Velocity.Z, constants.SleepPrecisionZ) == 0 &&
		body.BBox.Z == 0 {
		g.sleeping[body] = struct{}{}
	}
}

// respond applies the velocity response to a blocked move on axis.
func (g *Group) respond(body *Body, axis int, threshold float64) {
	v := body.Velocity.Axis(axis)
	body.Acceleration.SetAxis(axis, 0)
	if math.Abs(v) > threshold {
		body.Velocity.SetAxis(axis, -v*constants.BounceDamping)
	} else {
		body.Velocity.SetAxis(axis, 0)
	}
}

// fall moves a body down. The ground plane supports bodies: a fall that
// would cross z = 0 stops exactly on it. A fall blocked by geometry or by a
// body that cannot be pushed stops where it is. Falling never bounces.
func (g *Group) fall(body *Body, vz float64) {
	z := body.BBox.Z
	if z >= 0 && z+vz < 0 {
		vz = -z
		land(body)
		if vz == 0 {
			return
		}
	}
	if !g.MoveBody(body, kinematic.OnAxis(2, vz)) {
		land(body)
	}
}

func land(body *Body) {
	body.Velocity.Z = 0
	body.Acceleration.Z = 0
}

// MoveBody translates body by d. A move into level geometry is rolled back.
// A move into another body pushes it by the same delta; when the push fails
// the move is rolled back too. It reports whether the move was kept.
func (g *Group) MoveBody(body *Body, d kinematic.Vector) bool {
	return g.moveBody(body, d, []*Body{body})
}

func (g *Group) moveBody(body *Body, d kinematic.Vector, chain []*Body) bool {
	// rolled back to the exact origin so repeated blocked moves do not drift
	from := body.BBox.Origin()
	body.BBox.MoveBy(d)

	if g.TestCollision(body.BBox) {
		if body.BBox.Z < constants.FallFloor {
			from.Z = constants.FallFloor
		}
		body.BBox.SetOrigin(from)
		return false
	}

	for _, other := range g.bodies {
		if other == body || inChain(chain, other) || !body.BBox.Intersects(other.BBox) {
			continue
		}
		// an impact wakes the body that gets pushed
		g.WakeBody(other)
		if g.moveBody(other, d, append(chain, other)) {
			return true
		}
		body.BBox.SetOrigin(from)
		return false
	}

	return true
}

func inChain(chain []*Body, b *Body) bool {
	for _, c := range chain {
		if c == b {
			return true
		}
	}
	return false
}

// TestCollisionOther reports whether b overlaps any dynamic body other than
// body. A nil b tests the body's own box.
func (g *Group) TestCollisionOther(body *Body, b *bbox.BBox) bool {
	if b == nil {
		b = body.BBox
	}
	for _, other := range g.bodies {
		if other == body {
			continue
		}
		if b.Intersects(other.BBox) {
			return true
		}
	}
	return false
}

// TestCollision reports whether b overlaps level geometry. Anything below
// the ground plane has fallen out of the level and always collides.
func (g *Group) TestCollision(b *bbox.BBox) bool {
	if b.Z < 0 {
		return true
	}
	return g.index.Hit(g.projection.ToRect(b))
}
