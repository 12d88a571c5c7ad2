package bbox

import (
	"errors"
	"fmt"
	"math"

	"github.com/cbodonnell/tilearea/pkg/constants"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
)

// ErrDegenerate is returned when a box would have an extent below
// constants.MinExtent on any axis.
var ErrDegenerate = errors.New("degenerate bounding box")

// Plane selects the two axes a box is projected onto for 2D collision tests.
type Plane int

const (
	// PlaneXY keeps x and y (depth and width).
	PlaneXY Plane = iota
	// PlaneZY keeps y and z (width and height).
	PlaneZY
)

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneZY:
		return "zy"
	default:
		return "unknown"
	}
}

// BBox is a mutable axis aligned box. Depth runs along x, width along y and
// height along z.
type BBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Depth  float64 `json:"depth"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// New returns a box at origin (x, y, z) with the given extents.
func New(x, y, z, depth, width, height float64) (*BBox, error) {
	if err := validateExtents(depth, width, height); err != nil {
		return nil, err
	}
	return &BBox{X: x, Y: y, Z: z, Depth: depth, Width: width, Height: height}, nil
}

// MustNew is like New but panics on degenerate extents.
func MustNew(x, y, z, depth, width, height float64) *BBox {
	b, err := New(x, y, z, depth, width, height)
	if err != nil {
		panic(err)
	}
	return b
}

// FromVectors returns a box from an origin and a size.
func FromVectors(origin, size kinematic.Vector) (*BBox, error) {
	return New(origin.X, origin.Y, origin.Z, size.X, size.Y, size.Z)
}

func validateExtents(depth, width, height float64) error {
	if depth < constants.MinExtent || width < constants.MinExtent || height < constants.MinExtent ||
		math.IsNaN(depth) || math.IsNaN(width) || math.IsNaN(height) {
		return fmt.Errorf("%w: size (%v, %v, %v) must be at least %v on every axis", ErrDegenerate, depth, width, height, constants.MinExtent)
	}
	return nil
}

// Move translates the box in place.
func (b *BBox) Move(dx, dy, dz float64) {
	b.X += dx
	b.Y += dy
	b.Z += dz
}

// MoveBy translates the box in place by a vector.
func (b *BBox) MoveBy(d kinematic.Vector) {
	b.Move(d.X, d.Y, d.Z)
}

// Scale multiplies the extents in place. The origin is not affected.
// A scale that would make the box degenerate leaves it unchanged.
func (b *BBox) Scale(sx, sy, sz float64) error {
	depth, width, height := b.Depth*sx, b.Width*sy, b.Height*sz
	if err := validateExtents(depth, width, height); err != nil {
		return err
	}
	b.Depth, b.Width, b.Height = depth, width, height
	return nil
}

// Intersects reports whether the boxes overlap. Boxes that only touch do not.
func (b *BBox) Intersects(o *BBox) bool {
	return b.X < o.X+o.Depth && o.X < b.X+b.Depth &&
		b.Y < o.Y+o.Width && o.Y < b.Y+b.Width &&
		b.Z < o.Z+o.Height && o.Z < b.Z+b.Height
}

func (b *BBox) Origin() kinematic.Vector {
	return kinematic.Vector{X: b.X, Y: b.Y, Z: b.Z}
}

// SetOrigin moves the box so that its origin is v.
func (b *BBox) SetOrigin(v kinematic.Vector) {
	b.X, b.Y, b.Z = v.X, v.Y, v.Z
}

func (b *BBox) Size() kinematic.Vector {
	return kinematic.Vector{X: b.Depth, Y: b.Width, Z: b.Height}
}

func (b *BBox) Center() kinematic.Vector {
	return kinematic.Vector{X: b.X + b.Depth/2, Y: b.Y + b.Width/2, Z: b.Z + b.Height/2}
}

// TopCenter is the center of the top face.
func (b *BBox) TopCenter() kinematic.Vector {
	return kinematic.Vector{X: b.X + b.Depth/2, Y: b.Y + b.Width/2, Z: b.Z + b.Height}
}

// BottomCenter is the center of the bottom face.
func (b *BBox) BottomCenter() kinematic.Vector {
	return kinematic.Vector{X: b.X + b.Depth/2, Y: b.Y + b.Width/2, Z: b.Z}
}

// Corners returns the eight corners, bottom face first.
func (b *BBox) Corners() [8]kinematic.Vector {
	x0, y0, z0 := b.X, b.Y, b.Z
	x1, y1, z1 := b.X+b.Depth, b.Y+b.Width, b.Z+b.Height
	return [8]kinematic.Vector{
		{X: x0, Y: y0, Z: z0},
		{X: x1, Y: y0, Z: z0},
		{X: x1, Y: y1, Z: z0},
		{X: x0, Y: y1, Z: z0},
		{X: x0, Y: y0, Z: z1},
		{X: x1, Y: y0, Z: z1},
		{X: x1, Y: y1, Z: z1},
		{X: x0, Y: y1, Z: z1},
	}
}

func (b *BBox) Clone() *BBox {
	c := *b
	return &c
}

// Project returns the integer rectangle of the box on the given plane.
func (b *BBox) Project(plane Plane) Rect {
	switch plane {
	case PlaneZY:
		return NewRect(b.Y, b.Z, b.Width, b.Height)
	default:
		return NewRect(b.X, b.Y, b.Depth, b.Width)
	}
}

func (b *BBox) String() string {
	return fmt.Sprintf("<BBox (%g, %g, %g) [%g x %g x %g]>", b.X, b.Y, b.Z, b.Depth, b.Width, b.Height)
}
