package spatial

import (
	"sync"

	"github.com/cbodonnell/tilearea/pkg/bbox"
	"github.com/solarlune/resolv"
)

const (
	// DefaultCellSize is the resolv cell size used by ParseBuilder.
	DefaultCellSize = 16

	tagGeometry = "geometry"
	tagProbe    = "probe"
)

// Hashed is a uniform grid index backed by a resolv.Space. The space finds
// candidates that share cells with the query and the exact rectangle test
// decides the hit.
type Hashed struct {
	lock    sync.Mutex
	space   *resolv.Space
	probe   *resolv.Object
	rects   map[*resolv.Object]bbox.Rect
	offsetX int
	offsetY int
	count   int
}

var _ Index = &Hashed{}

// NewHashed builds the index. The space covers the bounds of rects plus one
// cell of margin; queries outside the space can never hit.
func NewHashed(rects []bbox.Rect, cellSize int) *Hashed {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}

	items := make([]bbox.Rect, 0, len(rects))
	for _, r := range rects {
		if !r.Empty() {
			items = append(items, r)
		}
	}
	bounds := bbox.Bounds(items)

	h := &Hashed{
		rects:   make(map[*resolv.Object]bbox.Rect, len(items)),
		offsetX: cellSize - bounds.X,
		offsetY: cellSize - bounds.Y,
		count:   len(items),
	}
	h.space = resolv.NewSpace(bounds.W+2*cellSize, bounds.H+2*cellSize, cellSize, cellSize)

	for _, r := range items {
		obj := resolv.NewObject(
			float64(r.X+h.offsetX),
			float64(r.Y+h.offsetY),
			float64(r.W),
			float64(r.H),
			tagGeometry,
		)
		h.space.Add(obj)
		h.rects[obj] = r
	}

	h.probe = resolv.NewObject(0, 0, 1, 1, tagProbe)
	h.space.Add(h.probe)

	return h
}

func (h *Hashed) Hit(r bbox.Rect) bool {
	if r.Empty() || h.count == 0 {
		return false
	}

	h.lock.Lock()
	defer h.lock.Unlock()

	h.probe.Position.X = float64(r.X + h.offsetX)
	h.probe.Position.Y = float64(r.Y + h.offsetY)
	h.probe.Size.X = float64(r.W)
	h.probe.Size.Y = float64(r.H)
	h.probe.Update()

	collision := h.probe.Check(0, 0, tagGeometry)
	if collision == nil {
		return false
	}
	for _, obj := range collision.Objects {
		if item, ok := h.rects[obj]; ok && item.Intersects(r) {
			return true
		}
	}
	return false
}

func (h *Hashed) Len() int {
	return h.count
}
