package spatial

import "github.com/cbodonnell/tilearea/pkg/bbox"

// Linear tests every rectangle. It is the reference the other indexes are
// checked against and is fine for small levels.
type Linear struct {
	rects []bbox.Rect
}

var _ Index = &Linear{}

func NewLinear(rects []bbox.Rect) *Linear {
	cp := make([]bbox.Rect, len(rects))
	copy(cp, rects)
	return &Linear{rects: cp}
}

func (l *Linear) Hit(r bbox.Rect) bool {
	for _, item := range l.rects {
		if item.Intersects(r) {
			return true
		}
	}
	return false
}

func (l *Linear) Len() int {
	return len(l.rects)
}
