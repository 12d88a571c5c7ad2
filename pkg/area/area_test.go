package area

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/cbodonnell/tilearea/pkg/bbox"
	"github.com/cbodonnell/tilearea/pkg/constants"
	"github.com/cbodonnell/tilearea/pkg/entity"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/pathfinding"
	"github.com/cbodonnell/tilearea/pkg/projection"
	"github.com/cbodonnell/tilearea/pkg/signals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapDirectory map[string]*Area

func (d mapDirectory) Area(id string) (*Area, bool) {
	a, ok := d[id]
	return a, ok
}

type testGrid struct {
	pathfinding.FuncGrid
	props map[string]string
}

func (g testGrid) Property(t projection.TileCoord, key string) (string, bool) {
	if t.X < 0 || t.Y < 0 || t.X >= g.W || t.Y >= g.H {
		return "", false
	}
	v, ok := g.props[key]
	return v, ok
}

type hookAnimator struct {
	fn func(dt float64)
}

func (h *hookAnimator) Update(dt float64) { h.fn(dt) }

func adventure(t *testing.T) projection.Projection {
	p, err := projection.New(projection.Adventure, 16, 16, 1)
	require.NoError(t, err)
	return p
}

func newTestArea(t *testing.T, opts Options) *Area {
	t.Helper()
	if opts.ID == "" {
		opts.ID = "test"
	}
	if opts.Projection == nil {
		opts.Projection = adventure(t)
	}
	a, err := New(opts)
	require.NoError(t, err)
	return a
}

func addBody(t *testing.T, a *Area, id string, origin kinematic.Vector, caps entity.Capability) *entity.Entity {
	t.Helper()
	e := entity.New(entity.NewEntityOptions{ID: id, Name: id, Size: kinematic.Vector{X: 8, Y: 8, Z: 8}, Capabilities: caps})
	require.NoError(t, a.Add(e, origin))
	return e
}

func setVelocity(t *testing.T, a *Area, id string, v kinematic.Vector) {
	t.Helper()
	body, err := a.Body(id)
	require.NoError(t, err)
	body.Velocity = v
}

func TestNew_invalid(t *testing.T) {
	_, err := New(Options{Projection: adventure(t)})
	assert.Error(t, err, "missing id")

	_, err = New(Options{ID: "a"})
	assert.Error(t, err, "missing projection")

	_, err = New(Options{ID: "a", Projection: adventure(t), Exits: []Exit{{ID: "door"}, {ID: "door"}}})
	assert.Error(t, err, "duplicate exit")
}

func TestArea_addsDuringUpdateAreDeferred(t *testing.T) {
	const spawns = 5
	a := newTestArea(t, Options{})

	var bodiesDuringUpdate, lenDuringUpdate int
	spawner := entity.New(entity.NewEntityOptions{
		ID:           "spawner",
		Size:         kinematic.Vector{X: 8, Y: 8, Z: 8},
		Capabilities: entity.Avatar,
	})
	spawner.Animator = &hookAnimator{fn: func(float64) {
		for i := 0; i < spawns; i++ {
			e := entity.New(entity.NewEntityOptions{ID: fmt.Sprintf("spawn-%d", i), Size: kinematic.Vector{X: 4, Y: 4, Z: 4}})
			require.NoError(t, a.Add(e, kinematic.Vector{X: float64(20 * (i + 1)), Y: 100}))
		}
		bodiesDuringUpdate = len(a.Group().Bodies())
		lenDuringUpdate = a.Len()
	}}
	require.NoError(t, a.Add(spawner, kinematic.Vector{}))

	require.NoError(t, a.Update(constants.DefaultTimestep))

	assert.Equal(t, 1, bodiesDuringUpdate)
	assert.Equal(t, 1, lenDuringUpdate)
	assert.Equal(t, 1+spawns, a.Len())
	assert.Len(t, a.Group().Bodies(), 1+spawns)
	for i := 0; i < spawns; i++ {
		assert.True(t, a.Has(fmt.Sprintf("spawn-%d", i)))
	}
	assert.Equal(t, Idle, a.Phase())
}

func TestArea_removeDuringUpdateIsDeferred(t *testing.T) {
	a := newTestArea(t, Options{})
	addBody(t, a, "victim", kinematic.Vector{X: 50}, 0)

	var presentDuringUpdate bool
	killer := entity.New(entity.NewEntityOptions{ID: "killer", Size: kinematic.Vector{X: 8, Y: 8, Z: 8}, Capabilities: entity.Avatar})
	killer.Animator = &hookAnimator{fn: func(float64) {
		require.NoError(t, a.Remove("victim"))
		require.NoError(t, a.Remove("victim"), "a second removal in the same tick is a no-op")
		presentDuringUpdate = a.Has("victim")
	}}
	require.NoError(t, a.Add(killer, kinematic.Vector{}))

	require.NoError(t, a.Update(constants.DefaultTimestep))
	assert.True(t, presentDuringUpdate)
	assert.False(t, a.Has("victim"))
	assert.Len(t, a.Group().Bodies(), 1)
}

func TestArea_addAndRemove(t *testing.T) {
	a := newTestArea(t, Options{})
	e := addBody(t, a, "one", kinematic.Vector{}, 0)

	err := a.Add(e, kinematic.Vector{X: 30})
	assert.True(t, errors.Is(err, ErrEntityExists))

	err = a.Remove("ghost")
	assert.True(t, IsEntityNotFound(err))

	require.NoError(t, a.Remove("one"))
	assert.Equal(t, 0, a.Len())
	assert.Empty(t, a.Group().Bodies())
}

func TestArea_reentrantUpdate(t *testing.T) {
	a := newTestArea(t, Options{})
	var inner error
	e := entity.New(entity.NewEntityOptions{ID: "avatar", Size: kinematic.Vector{X: 8, Y: 8, Z: 8}, Capabilities: entity.Avatar})
	e.Animator = &hookAnimator{fn: func(dt float64) {
		inner = a.Update(dt)
	}}
	require.NoError(t, a.Add(e, kinematic.Vector{}))

	require.NoError(t, a.Update(constants.DefaultTimestep))
	assert.True(t, errors.Is(inner, ErrReentrantUpdate))
	assert.InDelta(t, constants.DefaultTimestep, a.Elapsed(), 1e-12, "the nested call must not advance time")
}

func TestArea_lookupErrorsAreNotSleeping(t *testing.T) {
	a := newTestArea(t, Options{})
	addBody(t, a, "rock", kinematic.Vector{}, 0)

	sleeping, err := a.IsSleeping("ghost")
	assert.False(t, sleeping)
	assert.True(t, IsEntityNotFound(err))

	sleeping, err = a.IsSleeping("rock")
	require.NoError(t, err)
	assert.False(t, sleeping)

	require.NoError(t, a.Update(constants.DefaultTimestep))
	sleeping, err = a.IsSleeping("rock")
	require.NoError(t, err)
	assert.True(t, sleeping, "a body at rest on the ground falls asleep")

	require.NoError(t, a.ApplyForce("rock", kinematic.Vector{X: 1}))
	sleeping, err = a.IsSleeping("rock")
	require.NoError(t, err)
	assert.False(t, sleeping, "forces wake the body")

	for _, fn := range []func() error{
		func() error { _, err := a.Position("ghost"); return err },
		func() error { return a.SetPosition("ghost", kinematic.Vector{}) },
		func() error { _, err := a.BBox("ghost"); return err },
		func() error { _, err := a.IsGrounded("ghost"); return err },
		func() error { return a.ApplyForce("ghost", kinematic.Vector{}) },
		func() error { return a.SetOrientation("ghost", 0) },
	} {
		assert.True(t, IsEntityNotFound(fn()))
	}
}

func TestArea_orientation(t *testing.T) {
	a := newTestArea(t, Options{})
	addBody(t, a, "npc", kinematic.Vector{}, 0)

	for direction, want := range map[string]float64{
		"north": math.Pi * 1.5,
		"east":  0,
		"south": math.Pi / 2,
		"west":  math.Pi,
	} {
		require.NoError(t, a.SetOrientationCardinal("npc", direction))
		got, err := a.Orientation("npc")
		require.NoError(t, err)
		assert.Equal(t, want, got, direction)
	}
	assert.Error(t, a.SetOrientationCardinal("npc", "up"))
}

func TestArea_grounded(t *testing.T) {
	a := newTestArea(t, Options{})
	addBody(t, a, "floor", kinematic.Vector{}, 0)
	addBody(t, a, "air", kinematic.Vector{X: 50, Z: 5}, 0)

	grounded, err := a.IsGrounded("floor")
	require.NoError(t, err)
	assert.True(t, grounded)

	grounded, err = a.IsGrounded("air")
	require.NoError(t, err)
	assert.False(t, grounded)
}

func TestArea_setBBoxKeepsPrevious(t *testing.T) {
	a := newTestArea(t, Options{})
	addBody(t, a, "box", kinematic.Vector{X: 1, Y: 2}, 0)

	require.NoError(t, a.SetBBox("box", bbox.MustNew(10, 20, 0, 4, 4, 4)))
	b, err := a.BBox("box")
	require.NoError(t, err)
	assert.Equal(t, bbox.MustNew(10, 20, 0, 4, 4, 4), b)

	old, err := a.OldPosition("box")
	require.NoError(t, err)
	assert.Equal(t, kinematic.Vector{X: 1, Y: 2}, old)

	assert.Error(t, a.SetBBox("box", &bbox.BBox{Depth: 0, Width: 1, Height: 1}))
}

func TestArea_joins(t *testing.T) {
	a := newTestArea(t, Options{})
	addBody(t, a, "horse", kinematic.Vector{}, 0)
	addBody(t, a, "rider", kinematic.Vector{X: 100}, 0)
	require.NoError(t, a.Join("horse", "rider"))
	assert.Error(t, a.Join("horse", "horse"))
	assert.True(t, IsEntityNotFound(a.Join("horse", "ghost")))

	setVelocity(t, a, "horse", kinematic.Vector{X: 2, Y: 1})
	require.NoError(t, a.Update(constants.DefaultTimestep))

	pos, err := a.Position("rider")
	require.NoError(t, err)
	assert.Equal(t, kinematic.Vector{X: 102, Y: 1}, pos)

	require.NoError(t, a.Unjoin("horse", "rider"))
	assert.Error(t, a.Unjoin("horse", "rider"))
}

func TestArea_signalsAreDeliveredAfterTheTick(t *testing.T) {
	bus := signals.NewBus()
	var received []signals.Signal
	bus.SubscribeAll(func(s signals.Signal) {
		received = append(received, s)
	})
	a := newTestArea(t, Options{Bus: bus})

	var deliveredDuringUpdate int
	talker := entity.New(entity.NewEntityOptions{ID: "talker", Size: kinematic.Vector{X: 8, Y: 8, Z: 8}, Capabilities: entity.Avatar})
	talker.Animator = &hookAnimator{fn: func(float64) {
		require.NoError(t, a.EmitTextFrom("talker", "hello"))
		deliveredDuringUpdate = len(received)
	}}
	require.NoError(t, a.Add(talker, kinematic.Vector{}))
	setVelocity(t, a, "talker", kinematic.Vector{X: 3})

	require.NoError(t, a.Update(constants.DefaultTimestep))

	assert.Equal(t, 0, deliveredDuringUpdate)
	require.Len(t, received, 2)
	assert.Equal(t, signals.TextEmitted, received[0].Type)
	assert.Equal(t, "hello", received[0].Payload)
	assert.Equal(t, signals.BodyMoved, received[1].Type)
	assert.Equal(t, "talker", received[1].Sender)
	assert.Equal(t, "test", received[1].Area)
	assert.Equal(t, kinematic.Vector{X: 3}, received[1].Payload)
	assert.Equal(t, []string{"hello"}, a.Messages())

	a.EmitText("outside", kinematic.Vector{})
	require.Len(t, received, 3, "idle areas deliver at once")
}

func TestArea_sounds(t *testing.T) {
	a := newTestArea(t, Options{})

	assert.True(t, a.EmitSound("bell.wav", kinematic.Vector{X: 1}, 0.1))
	assert.False(t, a.EmitSound("bell.wav", kinematic.Vector{X: 2}, 0.1), "still playing")
	assert.True(t, a.EmitSound("horn.wav", kinematic.Vector{}, 0))

	sounds := a.Sounds()
	require.Len(t, sounds, 2)
	assert.Equal(t, constants.DefaultSoundTTL, sounds[1].TTL)

	require.NoError(t, a.Update(0.2))
	sounds = a.Sounds()
	require.Len(t, sounds, 1)
	assert.Equal(t, "horn.wav", sounds[0].Filename)

	assert.True(t, a.EmitSound("bell.wav", kinematic.Vector{}, 0.1), "finished sounds can play again")
}

func TestArea_walkSound(t *testing.T) {
	tiles := testGrid{
		FuncGrid: pathfinding.FuncGrid{W: 10, H: 10},
		props:    map[string]string{WalkSoundProperty: "grass.wav"},
	}
	a := newTestArea(t, Options{Tiles: tiles})
	addBody(t, a, "walker", kinematic.Vector{X: 20, Y: 20}, entity.Walker)
	addBody(t, a, "rock", kinematic.Vector{X: 60, Y: 60}, 0)
	setVelocity(t, a, "walker", kinematic.Vector{X: 1})
	setVelocity(t, a, "rock", kinematic.Vector{X: 1})

	require.NoError(t, a.Update(constants.DefaultTimestep))

	sounds := a.Sounds()
	require.Len(t, sounds, 1, "only walkers make walk sounds")
	assert.Equal(t, "grass.wav", sounds[0].Filename)
	assert.Equal(t, constants.WalkSoundTTL, sounds[0].TTL)
	assert.Equal(t, kinematic.Vector{X: 25, Y: 24}, sounds[0].Position)
}

func TestArea_pathfind(t *testing.T) {
	a := newTestArea(t, Options{})
	assert.Empty(t, a.Pathfind(kinematic.Vector{}, kinematic.Vector{X: 40}), "no tiles")

	tiles := testGrid{FuncGrid: pathfinding.FuncGrid{W: 5, H: 5, IsBlocked: func(x, y int) bool { return x == 1 && y < 4 }}}
	a = newTestArea(t, Options{Tiles: tiles})
	path := a.Pathfind(kinematic.Vector{X: 4, Y: 4}, kinematic.Vector{X: 40, Y: 4})
	require.NotEmpty(t, path)
	assert.Equal(t, projection.TileCoord{X: 0, Y: 0}, path[0])
	assert.Equal(t, projection.TileCoord{X: 2, Y: 0}, path[len(path)-1])
	for _, tile := range path {
		assert.False(t, tiles.Blocked(tile))
	}
}

// newWarpAreas builds two areas joined by the exit "door": tile (1, 0) in
// "a" and tile (3, 3) in "b".
func newWarpAreas(t *testing.T, bus *signals.Bus, geometryB []bbox.Rect) (*Area, *Area) {
	t.Helper()
	dir := mapDirectory{}
	a := newTestArea(t, Options{
		ID:        "a",
		Exits:     []Exit{{ID: "door", Tile: projection.TileCoord{X: 1, Y: 0}, Destination: "b"}},
		Directory: dir,
		Bus:       bus,
		WarpSound: "warp.wav",
	})
	b := newTestArea(t, Options{
		ID:        "b",
		Exits:     []Exit{{ID: "door", Tile: projection.TileCoord{X: 3, Y: 3}, Destination: "a"}},
		Geometry:  geometryB,
		Directory: dir,
		Bus:       bus,
	})
	dir["a"], dir["b"] = a, b
	return a, b
}

func TestArea_warp(t *testing.T) {
	bus := signals.NewBus()
	var warps []signals.Signal
	bus.Subscribe(signals.BodyWarped, func(s signals.Signal) {
		warps = append(warps, s)
	})
	a, b := newWarpAreas(t, bus, nil)
	addBody(t, a, "hero", kinematic.Vector{X: 0, Y: 4}, entity.Warpable)
	require.NoError(t, a.SetOrientation("hero", 1))
	setVelocity(t, a, "hero", kinematic.Vector{X: 10})

	require.NoError(t, a.Update(constants.DefaultTimestep))

	assert.False(t, a.Has("hero"))
	require.True(t, b.Has("hero"))
	pos, err := b.Position("hero")
	require.NoError(t, err)
	assert.Equal(t, kinematic.Vector{X: 52, Y: 52}, pos, "centered on the paired exit")
	orientation, err := b.Orientation("hero")
	require.NoError(t, err)
	assert.Equal(t, 1.0, orientation)
	body, err := b.Body("hero")
	require.NoError(t, err)
	assert.True(t, body.Velocity.IsZero())

	require.Len(t, warps, 1)
	assert.Equal(t, signals.WarpPayload{FromArea: "a", ToArea: "b", ExitID: "door"}, warps[0].Payload)
	require.Len(t, b.Sounds(), 1)
	assert.Equal(t, "warp.wav", b.Sounds()[0].Filename)

	// moving around on the arrival exit does not warp back
	setVelocity(t, b, "hero", kinematic.Vector{X: 1})
	require.NoError(t, b.Update(constants.DefaultTimestep))
	assert.True(t, b.Has("hero"))
	assert.False(t, a.Has("hero"))
}

func TestArea_warpClearsArrival(t *testing.T) {
	a, b := newWarpAreas(t, nil, nil)
	addBody(t, b, "crate", kinematic.Vector{X: 52, Y: 52}, 0)
	addBody(t, a, "hero", kinematic.Vector{X: 0, Y: 4}, entity.Warpable)
	setVelocity(t, a, "hero", kinematic.Vector{X: 10})

	require.NoError(t, a.Update(constants.DefaultTimestep))

	pos, err := b.Position("hero")
	require.NoError(t, err)
	assert.Equal(t, kinematic.Vector{X: 60, Y: 52}, pos, "nudged along the approach direction")
}

func TestArea_warpIntoWallIsBestEffort(t *testing.T) {
	a, b := newWarpAreas(t, nil, []bbox.Rect{{X: 48, Y: 48, W: 32, H: 16}})
	addBody(t, a, "hero", kinematic.Vector{X: 0, Y: 4}, entity.Warpable)
	setVelocity(t, a, "hero", kinematic.Vector{X: 10})

	require.NoError(t, a.Update(constants.DefaultTimestep))

	assert.False(t, a.Has("hero"))
	pos, err := b.Position("hero")
	require.NoError(t, err)
	assert.Equal(t, kinematic.Vector{X: 52, Y: 52}, pos, "left at the arrival tile")
}

func TestArea_warpClearanceBound(t *testing.T) {
	tests := []struct {
		name       string
		iterations int
		want       kinematic.Vector
	}{
		{name: "default", want: kinematic.Vector{X: 52 + float64(constants.WarpClearanceIterations), Y: 52}},
		{name: "custom", iterations: 5, want: kinematic.Vector{X: 57, Y: 52}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := mapDirectory{}
			a := newTestArea(t, Options{
				ID:        "a",
				Exits:     []Exit{{ID: "door", Tile: projection.TileCoord{X: 1, Y: 0}, Destination: "b"}},
				Directory: dir,
			})
			b := newTestArea(t, Options{
				ID:                  "b",
				Exits:               []Exit{{ID: "door", Tile: projection.TileCoord{X: 3, Y: 3}, Destination: "a"}},
				Directory:           dir,
				ClearanceIterations: tt.iterations,
			})
			dir["a"], dir["b"] = a, b

			boulder := entity.New(entity.NewEntityOptions{ID: "boulder", Name: "boulder", Size: kinematic.Vector{X: 200, Y: 200, Z: 8}})
			require.NoError(t, b.Add(boulder, kinematic.Vector{}))
			addBody(t, a, "hero", kinematic.Vector{X: 0, Y: 4}, entity.Warpable)
			setVelocity(t, a, "hero", kinematic.Vector{X: 10})

			require.NoError(t, a.Update(constants.DefaultTimestep))

			require.True(t, b.Has("hero"))
			pos, err := b.Position("hero")
			require.NoError(t, err)
			assert.Equal(t, tt.want, pos, "nudged once per iteration and left overlapping")
			boulderPos, err := b.Position("boulder")
			require.NoError(t, err)
			assert.Equal(t, kinematic.Vector{}, boulderPos)
		})
	}
}

func TestArea_warpSignalOrder(t *testing.T) {
	bus := signals.NewBus()
	var delivered []string
	bus.SubscribeAll(func(s signals.Signal) {
		delivered = append(delivered, s.Area+":"+s.Type.String())
	})
	a, b := newWarpAreas(t, bus, nil)
	addBody(t, a, "hero", kinematic.Vector{X: 0, Y: 4}, entity.Warpable)
	setVelocity(t, a, "hero", kinematic.Vector{X: 10})

	require.NoError(t, a.Update(constants.DefaultTimestep))

	assert.Equal(t, []string{"a:body_moved", "a:body_warped", "b:sound_emitted"}, delivered)
	require.Len(t, b.Sounds(), 1)
	assert.Equal(t, "warp.wav", b.Sounds()[0].Filename)
}

func TestArea_warpFailures(t *testing.T) {
	tests := []struct {
		name  string
		exits []Exit
		want  error
	}{
		{
			name:  "unknown area",
			exits: []Exit{{ID: "door", Tile: projection.TileCoord{X: 1, Y: 0}, Destination: "nowhere"}},
			want:  ErrAreaNotFound,
		},
		{
			name:  "no paired exit",
			exits: []Exit{{ID: "hatch", Tile: projection.TileCoord{X: 1, Y: 0}, Destination: "b"}},
			want:  ErrExitNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := mapDirectory{}
			a := newTestArea(t, Options{ID: "a", Exits: tt.exits, Directory: dir})
			dir["a"] = a
			dir["b"] = newTestArea(t, Options{ID: "b", Directory: dir})
			addBody(t, a, "hero", kinematic.Vector{X: 0, Y: 4}, entity.Warpable)
			setVelocity(t, a, "hero", kinematic.Vector{X: 10})

			err := a.Update(constants.DefaultTimestep)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.True(t, a.Has("hero"))
			assert.Equal(t, Idle, a.Phase())
		})
	}
}

func TestArea_warpWithinArea(t *testing.T) {
	dir := mapDirectory{}
	a := newTestArea(t, Options{
		ID: "a",
		Exits: []Exit{
			{ID: "left", Tile: projection.TileCoord{X: 1, Y: 0}, Destination: "a"},
		},
		Directory: dir,
	})
	dir["a"] = a
	addBody(t, a, "hero", kinematic.Vector{X: 0, Y: 4}, entity.Warpable)
	setVelocity(t, a, "hero", kinematic.Vector{X: 10})

	require.NoError(t, a.Update(constants.DefaultTimestep))
	pos, err := a.Position("hero")
	require.NoError(t, err)
	assert.Equal(t, kinematic.Vector{X: 20, Y: 4}, pos)
	assert.Equal(t, 1, a.Len())
}

func TestApproachDirection(t *testing.T) {
	tests := []struct {
		name  string
		d     kinematic.Vector
		plane bbox.Plane
		want  kinematic.Vector
	}{
		{name: "east", d: kinematic.Vector{X: 3}, plane: bbox.PlaneXY, want: kinematic.Vector{X: 1}},
		{name: "diagonal", d: kinematic.Vector{X: -2, Y: 2}, plane: bbox.PlaneXY, want: kinematic.Vector{X: -1, Y: 1}},
		{name: "mostly y", d: kinematic.Vector{X: 0.1, Y: -5}, plane: bbox.PlaneXY, want: kinematic.Vector{Y: -1}},
		{name: "side view", d: kinematic.Vector{X: 9, Y: 4}, plane: bbox.PlaneZY, want: kinematic.Vector{Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := approachDirection(tt.d, tt.plane)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-9)
		})
	}
}

func TestArea_placeOnTilePlatformer(t *testing.T) {
	p, err := projection.New(projection.Platformer, 16, 16, 1)
	require.NoError(t, err)
	a := newTestArea(t, Options{Projection: p})
	addBody(t, a, "hero", kinematic.Vector{X: 3, Y: 100, Z: 40}, 0)
	body, err := a.Body("hero")
	require.NoError(t, err)

	a.placeOnTile(body, projection.TileCoord{X: 2, Y: 1})
	assert.Equal(t, kinematic.Vector{X: 3, Y: 36, Z: 16}, body.BBox.Origin())
}

func TestArea_snapshot(t *testing.T) {
	a := newTestArea(t, Options{Name: "Test Area"})
	addBody(t, a, "one", kinematic.Vector{X: 1}, entity.Walker)
	addBody(t, a, "two", kinematic.Vector{X: 20}, 0)
	a.EmitSound("bell.wav", kinematic.Vector{}, 1)

	snapshot := a.Snapshot()
	assert.Equal(t, "test", snapshot.AreaID)
	assert.Equal(t, "Test Area", snapshot.Name)
	assert.Equal(t, "adventure", snapshot.Mode)
	require.Len(t, snapshot.Bodies, 2)
	assert.Equal(t, "one", snapshot.Bodies[0].EntityID)
	assert.Equal(t, uint8(entity.Walker), snapshot.Bodies[0].Capabilities)
	assert.Equal(t, kinematic.Vector{X: 8, Y: 8, Z: 8}, snapshot.Bodies[1].Size)
	require.Len(t, snapshot.Sounds, 1)
}

func TestArea_replaceGeometry(t *testing.T) {
	a := newTestArea(t, Options{})
	probe := bbox.MustNew(5, 5, 0, 2, 2, 2)
	assert.False(t, a.TestCollision(probe))

	require.NoError(t, a.ReplaceGeometry([]bbox.Rect{{X: 0, Y: 0, W: 16, H: 16}}, nil))
	assert.True(t, a.TestCollision(probe))
	assert.False(t, a.IsLocationFree(probe))
}
