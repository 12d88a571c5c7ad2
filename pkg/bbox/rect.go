package bbox

import (
	"fmt"
	"math"
)

// Rect is an integer rectangle used by the spatial index.
// Collision against level geometry happens at pixel resolution, which is why
// boxes smaller than one unit cannot be represented.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// NewRect floors the float coordinates and extents.
func NewRect(x, y, w, h float64) Rect {
	return Rect{
		X: int(math.Floor(x)),
		Y: int(math.Floor(y)),
		W: int(math.Floor(w)),
		H: int(math.Floor(h)),
	}
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects reports whether the rects overlap. Touching edges do not count
// and empty rects never intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Union returns the smallest rect containing both.
func (r Rect) Union(o Rect) Rect {
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.Right(), o.Right())
	y1 := max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Bounds returns the union of all rects, or the zero rect when there are none.
func Bounds(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	out := rects[0]
	for _, r := range rects[1:] {
		out = out.Union(r)
	}
	return out
}

func (r Rect) String() string {
	return fmt.Sprintf("<Rect (%d, %d) %dx%d>", r.X, r.Y, r.W, r.H)
}
