package game

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	mocks "github.com/cbodonnell/tilearea/mocks/github.com/cbodonnell/tilearea/pkg/repositories"
	"github.com/cbodonnell/tilearea/pkg/area"
	"github.com/cbodonnell/tilearea/pkg/bbox"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/messages"
	"github.com/cbodonnell/tilearea/pkg/projection"
	"github.com/cbodonnell/tilearea/pkg/repositories/models"
	"github.com/cbodonnell/tilearea/pkg/state"
	"github.com/cbodonnell/tilearea/pkg/tilemap"
	"github.com/cbodonnell/tilearea/pkg/workers"
	"github.com/cbodonnell/tilearea/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const roomYAML = `
id: room
name: Room
tile_width: 16
tile_height: 16
walls:
  - [1, 1, 1, 1]
  - [1, 0, 0, 1]
  - [1, 1, 1, 1]
exits:
  - {id: door, x: 2, y: 1, destination: hall}
entities:
  - id: hero
    name: Hero
    x: 20
    y: 20
    size: {x: 8, y: 8, z: 8}
    capabilities: [avatar, warpable]
physics:
  gravity: 0
`

const hallYAML = `
id: hall
name: Hall
tile_width: 16
tile_height: 16
walls:
  - [1, 1, 1, 1, 1, 1]
  - [1, 0, 0, 0, 0, 1]
  - [1, 1, 1, 1, 1, 1]
exits:
  - {id: door, x: 1, y: 1, destination: room}
entities:
  - id: guard
    name: Guard
    x: 52
    y: 20
    size: {x: 8, y: 8, z: 8}
    capabilities: [avatar]
    patrol: [{x: 68, y: 20}, {x: 52, y: 20}]
    speed: 2000
physics:
  gravity: 0
`

type testManager struct {
	gm         *GameManager
	universe   *world.Universe
	states     *state.InMemoryStateManager
	saves      chan workers.SavePlacementRequest
	broadcasts chan workers.BroadcastMessage
	reloads    chan string
}

const testInterval = 10 * time.Millisecond

func newTestManager(t *testing.T, levels ...string) *testManager {
	t.Helper()
	tm := &testManager{
		universe:   world.NewUniverse(world.NewUniverseOptions{}),
		states:     state.NewInMemoryStateManager(),
		saves:      make(chan workers.SavePlacementRequest, 8),
		broadcasts: make(chan workers.BroadcastMessage, 32),
		reloads:    make(chan string),
	}
	tm.gm = NewGameManager(NewGameManagerOptions{
		Universe:             tm.universe,
		StateManager:         tm.states,
		ReloadChan:           tm.reloads,
		SavePlacementChan:    tm.saves,
		BroadcastMessageChan: tm.broadcasts,
		GameLoopInterval:     testInterval,
	})
	for _, data := range levels {
		level, err := tilemap.Parse([]byte(data), tilemap.FormatYAML)
		require.NoError(t, err)
		_, err = tm.universe.LoadLevel(level)
		require.NoError(t, err)
	}
	return tm
}

func (tm *testManager) tick(t *testing.T) {
	t.Helper()
	require.NoError(t, tm.gm.gameTick(context.Background(), time.UnixMilli(1000)))
}

func drainBroadcasts(ch chan workers.BroadcastMessage) []workers.BroadcastMessage {
	var out []workers.BroadcastMessage
	for {
		select {
		case msg := <-ch:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestGameManager_publishesSnapshots(t *testing.T) {
	tm := newTestManager(t, roomYAML, hallYAML)
	tm.tick(t)

	snapshots, err := tm.states.List(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "hall", snapshots[0].AreaID)
	assert.Equal(t, "room", snapshots[1].AreaID)
	assert.Equal(t, int64(1000), snapshots[1].Timestamp)
	hero, _ := snapshots[1].Body("hero")
	require.NotNil(t, hero)

	msgs := drainBroadcasts(tm.broadcasts)
	require.Len(t, msgs, 2)
	for _, msg := range msgs {
		assert.Equal(t, messages.MessageTypeServerAreaSnapshot, msg.Type)
		assert.Equal(t, msg.AreaID, msg.Snapshot.AreaID)
	}

	require.NoError(t, tm.universe.RemoveArea("hall"))
	tm.tick(t)

	_, err = tm.states.Get(context.Background(), "hall")
	assert.True(t, state.IsNotFound(err))
	msgs = drainBroadcasts(tm.broadcasts)
	require.Len(t, msgs, 2)
	assert.Equal(t, workers.BroadcastMessage{Type: messages.MessageTypeServerAreaRemoved, AreaID: "hall"}, msgs[1])
}

func TestGameManager_savesWarpedPlacement(t *testing.T) {
	tm := newTestManager(t, roomYAML, hallYAML)
	room, _ := tm.universe.Area("room")
	body, err := room.Body("hero")
	require.NoError(t, err)
	body.Velocity = kinematic.Vector{X: 10}

	tm.tick(t)

	select {
	case req := <-tm.saves:
		assert.Equal(t, "hero", req.Placement.EntityID)
		assert.Equal(t, "hall", req.Placement.AreaID)
		assert.Equal(t, int64(1000), req.Placement.Timestamp)
		assert.Equal(t, kinematic.Vector{X: 20, Y: 20}, req.Placement.Position)
	default:
		t.Fatal("expected a save request for the warped entity")
	}

	tm.tick(t)
	assert.Empty(t, tm.saves, "a placement is saved once per warp")
}

func TestGameManager_commandsRunBeforeTheTick(t *testing.T) {
	tm := newTestManager(t, roomYAML)
	tm.gm.ApplyForce("hero", kinematic.Vector{Y: 100})
	tm.gm.ApplyForce("nobody", kinematic.Vector{Y: 100})
	tm.tick(t)

	room, _ := tm.universe.Area("room")
	pos, err := room.Position("hero")
	require.NoError(t, err)
	assert.Greater(t, pos.Y, 20.0)
}

func TestGameManager_Start(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "room.yaml")
	require.NoError(t, os.WriteFile(path, []byte(roomYAML), 0o644))

	tm := newTestManager(t)
	require.NoError(t, tm.universe.LoadDir(dir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- tm.gm.Start(ctx)
	}()

	queryCtx, queryCancel := context.WithTimeout(context.Background(), time.Second)
	defer queryCancel()

	path1, err := tm.gm.Pathfind(queryCtx, "room", kinematic.Vector{X: 20, Y: 20}, kinematic.Vector{X: 36, Y: 20})
	require.NoError(t, err)
	assert.Equal(t, []projection.TileCoord{{X: 1, Y: 1}, {X: 2, Y: 1}}, path1)

	_, err = tm.gm.Pathfind(queryCtx, "cellar", kinematic.Vector{}, kinematic.Vector{})
	assert.ErrorIs(t, err, area.ErrAreaNotFound)

	walled := `
id: room
tile_width: 16
tile_height: 16
walls:
  - [1, 1, 1, 1]
  - [1, 0, 1, 1]
  - [1, 1, 1, 1]
`
	require.NoError(t, os.WriteFile(path, []byte(walled), 0o644))
	tm.reloads <- path

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("game loop did not stop")
	}

	room, _ := tm.universe.Area("room")
	assert.True(t, room.TestCollision(bbox.MustNew(36, 20, 0, 4, 4, 4)), "reloaded geometry is in place")
}

func TestGameManager_Start_invalidInterval(t *testing.T) {
	gm := NewGameManager(NewGameManagerOptions{
		Universe:     world.NewUniverse(world.NewUniverseOptions{}),
		StateManager: state.NewInMemoryStateManager(),
	})
	assert.Error(t, gm.Start(context.Background()))
}

func TestPathfind_cancelled(t *testing.T) {
	tm := newTestManager(t, roomYAML)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tm.gm.Pathfind(ctx, "room", kinematic.Vector{}, kinematic.Vector{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGameManager_RestorePlacements(t *testing.T) {
	tm := newTestManager(t, roomYAML, hallYAML)
	repository := mocks.NewRepository(t)
	repository.EXPECT().ListPlacements(mock.Anything, "room").Return([]*models.Placement{}, nil).Once()
	repository.EXPECT().ListPlacements(mock.Anything, "hall").Return([]*models.Placement{
		{EntityID: "hero", AreaID: "hall", Position: kinematic.Vector{X: 36, Y: 20}, Orientation: 1.5},
		{EntityID: "stranger", AreaID: "hall"},
	}, nil).Once()

	require.NoError(t, tm.gm.RestorePlacements(context.Background(), repository))

	room, _ := tm.universe.Area("room")
	hall, _ := tm.universe.Area("hall")
	assert.False(t, room.Has("hero"))
	pos, err := hall.Position("hero")
	require.NoError(t, err)
	assert.Equal(t, kinematic.Vector{X: 36, Y: 20}, pos)
	orientation, err := hall.Orientation("hero")
	require.NoError(t, err)
	assert.Equal(t, 1.5, orientation)
}

func TestGameManager_RestorePlacements_error(t *testing.T) {
	tm := newTestManager(t, roomYAML)
	repository := mocks.NewRepository(t)
	repository.EXPECT().ListPlacements(mock.Anything, "room").Return(nil, errors.New("database is gone")).Once()

	assert.Error(t, tm.gm.RestorePlacements(context.Background(), repository))
}

func TestShippedLevels_patrol(t *testing.T) {
	tm := newTestManager(t)
	require.NoError(t, tm.universe.LoadDir("../../levels"))

	courtyard, ok := tm.universe.Area("courtyard")
	require.True(t, ok)
	start, err := courtyard.Position("guard")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, tm.universe.Update(1.0/60))
	}

	pos, err := courtyard.Position("guard")
	require.NoError(t, err)
	assert.Greater(t, pos.Y, start.Y, "the guard walks toward its first waypoint")
	hero, err := courtyard.Position("hero")
	require.NoError(t, err)
	assert.Equal(t, kinematic.Vector{X: 80, Y: 40}, hero)
}
