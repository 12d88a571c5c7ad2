package game

import (
	"testing"

	"github.com/cbodonnell/tilearea/pkg/entity"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/projection"
	"github.com/cbodonnell/tilearea/pkg/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatroller_Update(t *testing.T) {
	tm := newTestManager(t, hallYAML)
	hall, _ := tm.universe.Area("hall")
	guard, err := hall.Entity("guard")
	require.NoError(t, err)
	patroller, ok := guard.Animator.(*Patroller)
	require.True(t, ok, "patrolling avatars get a patroller")

	patroller.Update(0.01)
	body, err := hall.Body("guard")
	require.NoError(t, err)
	assert.Equal(t, kinematic.Vector{X: 2000}, body.Acceleration)
	assert.Equal(t, 0.0, body.Orientation)
	assert.Equal(t, 0, patroller.Next())

	require.NoError(t, hall.SetPosition("guard", kinematic.Vector{X: 67, Y: 20}))
	patroller.Update(0.01)
	assert.Equal(t, 1, patroller.Next())
	assert.Equal(t, kinematic.Vector{}, body.Acceleration)

	patroller.Update(0.01)
	assert.InDelta(t, -2000, body.Acceleration.X, 1e-9)
	assert.Equal(t, 0.0, body.Acceleration.Y)

	require.NoError(t, hall.SetPosition("guard", kinematic.Vector{X: 52, Y: 20}))
	patroller.Update(0.01)
	assert.Equal(t, 0, patroller.Next(), "waypoints loop")
}

func TestPatroller_Update_notInAnyArea(t *testing.T) {
	tm := newTestManager(t)
	p := NewPatroller(NewPatrollerOptions{
		EntityID:  "ghost",
		Locator:   tm.universe,
		Waypoints: []kinematic.Vector{{X: 1}},
	})
	p.Update(0.01)
	assert.Equal(t, 0, p.Next())
}

func TestSteering(t *testing.T) {
	d := kinematic.Vector{X: 1, Y: 2, Z: 3}
	assert.Equal(t, kinematic.Vector{X: 1, Y: 2}, steering(projection.Adventure, d))
	assert.Equal(t, kinematic.Vector{Y: 2}, steering(projection.Platformer, d))
}

func TestPatrolAnimators(t *testing.T) {
	animate := PatrolAnimators(nil)
	waypoints := []kinematic.Vector{{X: 1}}

	testCases := []struct {
		name string
		caps entity.Capability
		spec tilemap.EntitySpec
		want bool
	}{
		{name: "avatar with waypoints", caps: entity.Avatar, spec: tilemap.EntitySpec{Patrol: waypoints}, want: true},
		{name: "avatar without waypoints", caps: entity.Avatar, spec: tilemap.EntitySpec{}},
		{name: "not an avatar", caps: entity.Warpable, spec: tilemap.EntitySpec{Patrol: waypoints}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := entity.New(entity.NewEntityOptions{Capabilities: tc.caps})
			got := animate(e, tc.spec)
			if tc.want {
				assert.IsType(t, &Patroller{}, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}
