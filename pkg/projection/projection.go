package projection

import (
	"fmt"
	"math"

	"github.com/cbodonnell/tilearea/pkg/bbox"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
)

// Mode selects which two axes take part in collision tests against level
// geometry and how world coordinates map to tiles.
type Mode int

const (
	// Adventure is a top down view: collisions on the x/y plane.
	Adventure Mode = iota
	// Platformer is a side view with gravity along z: collisions on the z/y plane.
	Platformer
)

func (m Mode) String() string {
	switch m {
	case Adventure:
		return "adventure"
	case Platformer:
		return "platformer"
	default:
		return "unknown"
	}
}

// ParseMode parses "adventure" or "platformer". An empty string is adventure.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "adventure":
		return Adventure, nil
	case "platformer":
		return Platformer, nil
	default:
		return Adventure, fmt.Errorf("unknown projection mode: %s", s)
	}
}

// TileCoord is a column/row position on the tile grid.
type TileCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (t TileCoord) String() string {
	return fmt.Sprintf("(%d, %d)", t.X, t.Y)
}

// Forceable is the part of a body a projection may push on.
type Forceable interface {
	Accel() kinematic.Vector
	SetAccel(kinematic.Vector)
}

// Projection is the per area coordinate policy. It is chosen once when the
// area is built.
type Projection interface {
	Mode() Mode
	Plane() bbox.Plane
	// ToRect returns the rect of b used for geometry collisions.
	ToRect(b *bbox.BBox) bbox.Rect
	// RectToBBox returns the box occupying a geometry rect.
	RectToBBox(r bbox.Rect) *bbox.BBox
	WorldToTile(v kinematic.Vector) TileCoord
	TileToWorld(t TileCoord) kinematic.Vector
	// TileRect returns the geometry rect covered by a tile.
	TileRect(t TileCoord) bbox.Rect
	WorldToPixel(v kinematic.Vector) (float64, float64)
	// ApplyForce adds f to the body's acceleration.
	ApplyForce(body Forceable, f kinematic.Vector)
	// SetForce replaces the body's acceleration on the axes the mode controls.
	SetForce(body Forceable, f kinematic.Vector)
}

type grid struct {
	tileWidth  int
	tileHeight int
	scaling    float64
}

// New returns the projection for mode. Tile sizes must be positive.
func New(mode Mode, tileWidth, tileHeight int, scaling float64) (Projection, error) {
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %dx%d", tileWidth, tileHeight)
	}
	if scaling <= 0 {
		return nil, fmt.Errorf("scaling must be positive, got %v", scaling)
	}
	g := grid{tileWidth: tileWidth, tileHeight: tileHeight, scaling: scaling}
	switch mode {
	case Adventure:
		return &adventure{grid: g}, nil
	case Platformer:
		return &platformer{grid: g}, nil
	default:
		return nil, fmt.Errorf("unknown projection mode: %d", mode)
	}
}

func floorDiv(v float64, size int) int {
	return int(math.Floor(v / float64(size)))
}

type adventure struct {
	grid
}

func (p *adventure) Mode() Mode        { return Adventure }
func (p *adventure) Plane() bbox.Plane { return bbox.PlaneXY }

func (p *adventure) ToRect(b *bbox.BBox) bbox.Rect {
	return b.Project(bbox.PlaneXY)
}

func (p *adventure) RectToBBox(r bbox.Rect) *bbox.BBox {
	return &bbox.BBox{X: float64(r.X), Y: float64(r.Y), Z: 0, Depth: float64(r.W), Width: float64(r.H), Height: 1}
}

func (p *adventure) WorldToTile(v kinematic.Vector) TileCoord {
	return TileCoord{X: floorDiv(v.X, p.tileWidth), Y: floorDiv(v.Y, p.tileHeight)}
}

func (p *adventure) TileToWorld(t TileCoord) kinematic.Vector {
	return kinematic.Vector{X: float64(t.X * p.tileWidth), Y: float64(t.Y * p.tileHeight)}
}

func (p *adventure) TileRect(t TileCoord) bbox.Rect {
	return bbox.Rect{X: t.X * p.tileWidth, Y: t.Y * p.tileHeight, W: p.tileWidth, H: p.tileHeight}
}

// WorldToPixel puts y on the screen x axis and x on the screen y axis.
func (p *adventure) WorldToPixel(v kinematic.Vector) (float64, float64) {
	return v.Y * p.scaling, v.X * p.scaling
}

func (p *adventure) ApplyForce(body Forceable, f kinematic.Vector) {
	body.SetAccel(body.Accel().Add(f))
}

func (p *adventure) SetForce(body Forceable, f kinematic.Vector) {
	acc := body.Accel()
	acc.X, acc.Y = f.X, f.Y
	body.SetAccel(acc)
}

type platformer struct {
	grid
}

func (p *platformer) Mode() Mode        { return Platformer }
func (p *platformer) Plane() bbox.Plane { return bbox.PlaneZY }

func (p *platformer) ToRect(b *bbox.BBox) bbox.Rect {
	return b.Project(bbox.PlaneZY)
}

func (p *platformer) RectToBBox(r bbox.Rect) *bbox.BBox {
	return &bbox.BBox{X: 0, Y: float64(r.X), Z: float64(r.Y), Depth: 1, Width: float64(r.W), Height: float64(r.H)}
}

// WorldToTile maps y to the column and z to the row. Row 0 sits on the
// ground plane.
func (p *platformer) WorldToTile(v kinematic.Vector) TileCoord {
	return TileCoord{X: floorDiv(v.Y, p.tileWidth), Y: floorDiv(v.Z, p.tileHeight)}
}

func (p *platformer) TileToWorld(t TileCoord) kinematic.Vector {
	return kinematic.Vector{Y: float64(t.X * p.tileWidth), Z: float64(t.Y * p.tileHeight)}
}

func (p *platformer) TileRect(t TileCoord) bbox.Rect {
	return bbox.Rect{X: t.X * p.tileWidth, Y: t.Y * p.tileHeight, W: p.tileWidth, H: p.tileHeight}
}

func (p *platformer) WorldToPixel(v kinematic.Vector) (float64, float64) {
	return v.Y * p.scaling, v.Z * p.scaling
}

// ApplyForce ignores x; the side view only simulates y and z.
func (p *platformer) ApplyForce(body Forceable, f kinematic.Vector) {
	body.SetAccel(body.Accel().Add(kinematic.Vector{Y: f.Y, Z: f.Z}))
}

func (p *platformer) SetForce(body Forceable, f kinematic.Vector) {
	acc := body.Accel()
	acc.Y, acc.Z = f.Y, f.Z
	body.SetAccel(acc)
}
