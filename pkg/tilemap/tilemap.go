package tilemap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cbodonnell/tilearea/pkg/constants"
	"github.com/cbodonnell/tilearea/pkg/entity"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/projection"
	"github.com/cbodonnell/tilearea/pkg/spatial"
	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel is wrapped by every validation failure.
var ErrInvalidLevel = errors.New("invalid level")

// Format is the encoding of a level file.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatFromPath picks the format by file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	default:
		return FormatYAML, false
	}
}

// Exit is a tile that moves warpable bodies to the exit with the same ID in
// the destination area.
type Exit struct {
	ID          string `yaml:"id" json:"id"`
	X           int    `yaml:"x" json:"x"`
	Y           int    `yaml:"y" json:"y"`
	Destination string `yaml:"destination" json:"destination"`
}

func (e Exit) Tile() projection.TileCoord {
	return projection.TileCoord{X: e.X, Y: e.Y}
}

// EntitySpec places an entity when the level is loaded.
type EntitySpec struct {
	ID           string           `yaml:"id" json:"id"`
	Name         string           `yaml:"name" json:"name"`
	X            float64          `yaml:"x" json:"x"`
	Y            float64          `yaml:"y" json:"y"`
	Z            float64          `yaml:"z" json:"z"`
	Size         kinematic.Vector `yaml:"size" json:"size"`
	Capabilities []string         `yaml:"capabilities" json:"capabilities"`
	// Patrol lists world positions an avatar walks between, in order.
	Patrol []kinematic.Vector `yaml:"patrol" json:"patrol"`
	// Speed is the steering force of a patrolling avatar.
	Speed float64 `yaml:"speed" json:"speed"`
}

func (e EntitySpec) Position() kinematic.Vector {
	return kinematic.Vector{X: e.X, Y: e.Y, Z: e.Z}
}

// Entity builds the entity this description names.
func (e EntitySpec) Entity() (*entity.Entity, error) {
	caps, err := entity.ParseCapabilities(e.Capabilities)
	if err != nil {
		return nil, fmt.Errorf("failed to parse capabilities of entity %s: %w", e.Name, err)
	}
	return entity.New(entity.NewEntityOptions{
		ID:           e.ID,
		Name:         e.Name,
		Size:         e.Size,
		Capabilities: caps,
	}), nil
}

// Physics holds per level tuning. Zero values fall back to the defaults in
// pkg/constants.
type Physics struct {
	Gravity  *float64 `yaml:"gravity" json:"gravity"`
	Timestep float64  `yaml:"timestep" json:"timestep"`
	Scaling  float64  `yaml:"scaling" json:"scaling"`
	Index    string   `yaml:"index" json:"index"`
}

func (p Physics) GravityVector() kinematic.Vector {
	if p.Gravity == nil {
		return kinematic.Vector{Z: constants.DefaultGravity}
	}
	return kinematic.Vector{Z: *p.Gravity}
}

func (p Physics) TimestepOrDefault() float64 {
	if p.Timestep <= 0 {
		return constants.DefaultTimestep
	}
	return p.Timestep
}

func (p Physics) ScalingOrDefault() float64 {
	if p.Scaling <= 0 {
		return constants.DefaultScaling
	}
	return p.Scaling
}

// Level is the description of one area. Walls and Floor are indexed
// [row][column]; the row is the tile Y coordinate in both modes, so in a
// platformer level row 0 sits on the ground.
type Level struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Mode       string `yaml:"mode" json:"mode"`
	TileWidth  int    `yaml:"tile_width" json:"tile_width"`
	TileHeight int    `yaml:"tile_height" json:"tile_height"`
	Width      int    `yaml:"width" json:"width"`
	Height     int    `yaml:"height" json:"height"`
	// Walls marks impassable tiles with a non-zero value.
	Walls [][]int `yaml:"walls" json:"walls"`
	// Floor holds optional tile types that select TileProperties.
	Floor          [][]int                   `yaml:"floor" json:"floor"`
	TileProperties map[int]map[string]string `yaml:"tile_properties" json:"tile_properties"`
	Exits          []Exit                    `yaml:"exits" json:"exits"`
	Entities       []EntitySpec              `yaml:"entities" json:"entities"`
	Physics        Physics                   `yaml:"physics" json:"physics"`

	// Path is the file the level was loaded from, if any.
	Path string `yaml:"-" json:"-"`
}

// Parse decodes and validates a level.
func Parse(data []byte, format Format) (*Level, error) {
	level := &Level{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, level); err != nil {
			return nil, fmt.Errorf("failed to decode level json: %v", err)
		}
	default:
		if err := yaml.Unmarshal(data, level); err != nil {
			return nil, fmt.Errorf("failed to decode level yaml: %v", err)
		}
	}
	level.fillDimensions()
	if err := level.Validate(); err != nil {
		return nil, err
	}
	return level, nil
}

// Load reads a level file. The format is chosen by extension.
func Load(path string) (*Level, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("unsupported level file extension: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file: %v", err)
	}
	level, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", path, err)
	}
	level.Path = path
	if level.ID == "" {
		level.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return level, nil
}

// LoadDir loads every level file in dir, sorted by file name.
func LoadDir(dir string) ([]*Level, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read level directory: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := FormatFromPath(e.Name()); ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	levels := make([]*Level, 0, len(names))
	seen := make(map[string]string)
	for _, name := range names {
		level, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if other, ok := seen[level.ID]; ok {
			return nil, fmt.Errorf("%w: level id %s used by %s and %s", ErrInvalidLevel, level.ID, other, name)
		}
		seen[level.ID] = name
		levels = append(levels, level)
	}
	return levels, nil
}

func (l *Level) fillDimensions() {
	if l.Height == 0 {
		l.Height = len(l.Walls)
	}
	if l.Width == 0 && len(l.Walls) > 0 {
		l.Width = len(l.Walls[0])
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidLevel, fmt.Sprintf(format, args...))
}

// Validate checks the level for errors that would make an area unusable.
func (l *Level) Validate() error {
	if l.TileWidth <= 0 || l.TileHeight <= 0 {
		return invalid("tile size must be positive, got %dx%d", l.TileWidth, l.TileHeight)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return invalid("grid size must be positive, got %dx%d", l.Width, l.Height)
	}
	if _, err := projection.ParseMode(l.Mode); err != nil {
		return invalid("%v", err)
	}
	if _, err := spatial.ParseBuilder(l.Physics.Index); err != nil {
		return invalid("%v", err)
	}
	if l.Physics.Timestep < 0 || l.Physics.Scaling < 0 {
		return invalid("physics timestep and scaling must not be negative")
	}
	if err := l.checkLayer("walls", l.Walls, true); err != nil {
		return err
	}
	if err := l.checkLayer("floor", l.Floor, false); err != nil {
		return err
	}

	exitIDs := make(map[string]bool, len(l.Exits))
	for _, exit := range l.Exits {
		if exit.ID == "" {
			return invalid("exit at (%d, %d) has no id", exit.X, exit.Y)
		}
		if exitIDs[exit.ID] {
			return invalid("duplicate exit id %s", exit.ID)
		}
		exitIDs[exit.ID] = true
		if !l.InBounds(exit.Tile()) {
			return invalid("exit %s at (%d, %d) is outside the %dx%d grid", exit.ID, exit.X, exit.Y, l.Width, l.Height)
		}
	}

	for i, e := range l.Entities {
		if e.Size.X < constants.MinExtent || e.Size.Y < constants.MinExtent || e.Size.Z < constants.MinExtent {
			return invalid("entity %d (%s) size %v must be at least %v on every axis", i, e.Name, e.Size, constants.MinExtent)
		}
		if _, err := entity.ParseCapabilities(e.Capabilities); err != nil {
			return invalid("entity %d (%s): %v", i, e.Name, err)
		}
		if e.Speed < 0 {
			return invalid("entity %d (%s) has a negative patrol speed", i, e.Name)
		}
	}
	return nil
}

func (l *Level) checkLayer(name string, rows [][]int, required bool) error {
	if len(rows) == 0 && !required {
		return nil
	}
	if len(rows) != l.Height {
		return invalid("%s has %d rows, want %d", name, len(rows), l.Height)
	}
	for y, row := range rows {
		if len(row) != l.Width {
			return invalid("%s row %d has %d columns, want %d", name, y, len(row), l.Width)
		}
	}
	return nil
}

func (l *Level) InBounds(t projection.TileCoord) bool {
	return t.X >= 0 && t.Y >= 0 && t.X < l.Width && t.Y < l.Height
}

// Blocked reports whether the tile is a wall. Tiles outside the grid are
// blocked.
func (l *Level) Blocked(t projection.TileCoord) bool {
	if !l.InBounds(t) {
		return true
	}
	return l.Walls[t.Y][t.X] != 0
}

// Property returns a property of the floor type of the tile.
func (l *Level) Property(t projection.TileCoord, key string) (string, bool) {
	if len(l.Floor) == 0 || !l.InBounds(t) {
		return "", false
	}
	props, ok := l.TileProperties[l.Floor[t.Y][t.X]]
	if !ok {
		return "", false
	}
	value, ok := props[key]
	return value, ok
}

// ProjectionMode parses the level mode.
func (l *Level) ProjectionMode() projection.Mode {
	mode, _ := projection.ParseMode(l.Mode)
	return mode
}

// Projection returns the projection for the level's mode and tile size.
func (l *Level) Projection() (projection.Projection, error) {
	return projection.New(l.ProjectionMode(), l.TileWidth, l.TileHeight, l.Physics.ScalingOrDefault())
}

// IndexBuilder returns the spatial index builder named by the level.
func (l *Level) IndexBuilder() spatial.Builder {
	builder, err := spatial.ParseBuilder(l.Physics.Index)
	if err != nil {
		return spatial.DefaultBuilder
	}
	return builder
}
