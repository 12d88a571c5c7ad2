package tilemap

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cbodonnell/tilearea/pkg/bbox"
	"github.com/cbodonnell/tilearea/pkg/entity"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/projection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roomYAML = `
id: room
name: Test Room
mode: adventure
tile_width: 16
tile_height: 16
walls:
  - [1, 1, 1, 1]
  - [1, 0, 0, 1]
  - [1, 1, 1, 1]
floor:
  - [0, 0, 0, 0]
  - [0, 2, 0, 0]
  - [0, 0, 0, 0]
tile_properties:
  2:
    walk_sound: grass.ogg
exits:
  - id: door
    x: 2
    y: 1
    destination: hall
entities:
  - id: hero
    name: Hero
    x: 20
    y: 20
    size: {x: 8, y: 8, z: 8}
    capabilities: [avatar, warpable]
physics:
  gravity: -2
  index: linear
`

func TestParse_yaml(t *testing.T) {
	level, err := Parse([]byte(roomYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "room", level.ID)
	assert.Equal(t, 4, level.Width)
	assert.Equal(t, 3, level.Height)
	assert.Equal(t, projection.Adventure, level.ProjectionMode())
	assert.Equal(t, kinematic.Vector{Z: -2}, level.Physics.GravityVector())
	assert.Equal(t, 0.005, level.Physics.TimestepOrDefault())
	assert.Equal(t, 1.0, level.Physics.ScalingOrDefault())

	require.Len(t, level.Exits, 1)
	assert.Equal(t, projection.TileCoord{X: 2, Y: 1}, level.Exits[0].Tile())

	require.Len(t, level.Entities, 1)
	hero, err := level.Entities[0].Entity()
	require.NoError(t, err)
	assert.Equal(t, "hero", hero.ID)
	assert.True(t, hero.Has(entity.Avatar|entity.Warpable))
	assert.Equal(t, kinematic.Vector{X: 8, Y: 8, Z: 8}, hero.Size)
	assert.Equal(t, kinematic.Vector{X: 20, Y: 20}, level.Entities[0].Position())

	sound, ok := level.Property(projection.TileCoord{X: 1, Y: 1}, "walk_sound")
	assert.True(t, ok)
	assert.Equal(t, "grass.ogg", sound)
	_, ok = level.Property(projection.TileCoord{X: 2, Y: 1}, "walk_sound")
	assert.False(t, ok)

	assert.True(t, level.Blocked(projection.TileCoord{X: 0, Y: 0}))
	assert.False(t, level.Blocked(projection.TileCoord{X: 1, Y: 1}))
	assert.True(t, level.Blocked(projection.TileCoord{X: -1, Y: 1}), "outside the grid")
}

func TestParse_json(t *testing.T) {
	data := `{
		"id": "side",
		"mode": "platformer",
		"tile_width": 8,
		"tile_height": 8,
		"walls": [[1, 1], [0, 0]],
		"tile_properties": {"1": {"walk_sound": "stone.ogg"}},
		"physics": {"timestep": 0.01, "scaling": 2}
	}`
	level, err := Parse([]byte(data), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, projection.Platformer, level.ProjectionMode())
	assert.Equal(t, "stone.ogg", level.TileProperties[1]["walk_sound"])
	assert.Equal(t, 0.01, level.Physics.TimestepOrDefault())

	p, err := level.Projection()
	require.NoError(t, err)
	assert.Equal(t, projection.Platformer, p.Mode())
}

func TestValidate(t *testing.T) {
	base := func() *Level {
		return &Level{
			TileWidth:  16,
			TileHeight: 16,
			Width:      2,
			Height:     2,
			Walls:      [][]int{{0, 0}, {0, 1}},
		}
	}
	tests := []struct {
		name   string
		mutate func(l *Level)
	}{
		{name: "zero tile width", mutate: func(l *Level) { l.TileWidth = 0 }},
		{name: "ragged walls", mutate: func(l *Level) { l.Walls[1] = []int{0} }},
		{name: "missing row", mutate: func(l *Level) { l.Walls = l.Walls[:1] }},
		{name: "ragged floor", mutate: func(l *Level) { l.Floor = [][]int{{0, 0}, {0}} }},
		{name: "exit outside grid", mutate: func(l *Level) { l.Exits = []Exit{{ID: "a", X: 2, Y: 0}} }},
		{name: "exit without id", mutate: func(l *Level) { l.Exits = []Exit{{X: 0, Y: 0}} }},
		{name: "duplicate exit id", mutate: func(l *Level) { l.Exits = []Exit{{ID: "a"}, {ID: "a", X: 1}} }},
		{name: "tiny entity", mutate: func(l *Level) {
			l.Entities = []EntitySpec{{Name: "dust", Size: kinematic.Vector{X: 0.5, Y: 1, Z: 1}}}
		}},
		{name: "unknown capability", mutate: func(l *Level) {
			l.Entities = []EntitySpec{{Name: "bird", Size: kinematic.Vector{X: 1, Y: 1, Z: 1}, Capabilities: []string{"flying"}}}
		}},
		{name: "unknown mode", mutate: func(l *Level) { l.Mode = "isometric" }},
		{name: "unknown index", mutate: func(l *Level) { l.Physics.Index = "octree" }},
		{name: "negative timestep", mutate: func(l *Level) { l.Physics.Timestep = -1 }},
	}

	require.NoError(t, base().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := base()
			tt.mutate(l)
			assert.ErrorIs(t, l.Validate(), ErrInvalidLevel)
		})
	}
}

func TestGeometry_merges(t *testing.T) {
	level := &Level{
		TileWidth:  16,
		TileHeight: 16,
		Width:      4,
		Height:     3,
		Walls: [][]int{
			{1, 1, 1, 1},
			{1, 0, 0, 1},
			{1, 1, 1, 1},
		},
	}
	assert.Equal(t, []bbox.Rect{
		{X: 0, Y: 0, W: 64, H: 16},
		{X: 0, Y: 16, W: 16, H: 32},
		{X: 48, Y: 16, W: 16, H: 32},
		{X: 16, Y: 32, W: 32, H: 16},
	}, level.Geometry())
}

func TestGeometry_coversEveryWallOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const w, h = 24, 18
	level := &Level{TileWidth: 8, TileHeight: 4, Width: w, Height: h}
	for y := 0; y < h; y++ {
		row := make([]int, w)
		for x := range row {
			if rng.Intn(3) == 0 {
				row[x] = 1
			}
		}
		level.Walls = append(level.Walls, row)
	}

	rects := level.Geometry()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			probe := bbox.Rect{X: x*8 + 1, Y: y*4 + 1, W: 1, H: 1}
			covered := 0
			for _, r := range rects {
				if r.Intersects(probe) {
					covered++
				}
			}
			if level.Walls[y][x] != 0 {
				assert.Equal(t, 1, covered, "wall (%d, %d)", x, y)
			} else {
				assert.Equal(t, 0, covered, "floor (%d, %d)", x, y)
			}
		}
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "room.yaml"), []byte(roomYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hall.json"), []byte(`{"tile_width": 16, "tile_height": 16, "walls": [[0]]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	levels, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, "hall", levels[0].ID, "id defaults to the file name")
	assert.Equal(t, filepath.Join(dir, "hall.json"), levels[0].Path)
	assert.Equal(t, "room", levels[1].ID)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "room2.yml"), []byte(roomYAML), 0o644))
	_, err = LoadDir(dir)
	assert.ErrorIs(t, err, ErrInvalidLevel, "duplicate level id")
}

func TestLoad_unsupportedExtension(t *testing.T) {
	_, err := Load("level.toml")
	assert.Error(t, err)
}

func TestWatcher_reportsLevelChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	path := filepath.Join(dir, "room.yaml")
	require.NoError(t, os.WriteFile(path, []byte(roomYAML), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}
}

func TestLoadDir_shippedLevels(t *testing.T) {
	levels, err := LoadDir("../../levels")
	require.NoError(t, err)
	require.NotEmpty(t, levels)

	byID := make(map[string]*Level, len(levels))
	for _, level := range levels {
		byID[level.ID] = level
	}
	for _, level := range levels {
		for _, exit := range level.Exits {
			dest, ok := byID[exit.Destination]
			require.True(t, ok, "exit %s of %s leads to a shipped level", exit.ID, level.ID)
			found := false
			for _, other := range dest.Exits {
				found = found || other.ID == exit.ID
			}
			assert.True(t, found, "exit %s of %s has a pair in %s", exit.ID, level.ID, dest.ID)
			assert.False(t, level.Blocked(exit.Tile()), "exit %s of %s is walkable", exit.ID, level.ID)
		}
	}
}
