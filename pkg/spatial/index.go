package spatial

import (
	"fmt"

	"github.com/cbodonnell/tilearea/pkg/bbox"
)

// Index answers whether a rectangle overlaps any of the static rectangles it
// was built from. Implementations are immutable after construction; changing
// level geometry means building a new index.
type Index interface {
	// Hit reports whether r overlaps any stored rectangle.
	Hit(r bbox.Rect) bool
	// Len returns the number of stored rectangles.
	Len() int
}

// Builder constructs an Index from the static rectangles of a level.
type Builder func(rects []bbox.Rect) Index

const (
	BuilderQuadTree = "quadtree"
	BuilderLinear   = "linear"
	BuilderHash     = "hash"
)

// DefaultBuilder builds a quadtree.
func DefaultBuilder(rects []bbox.Rect) Index {
	return NewQuadTree(rects, DefaultQuadTreeDepth)
}

// ParseBuilder returns the builder registered under name. An empty name
// selects the quadtree.
func ParseBuilder(name string) (Builder, error) {
	switch name {
	case "", BuilderQuadTree:
		return DefaultBuilder, nil
	case BuilderLinear:
		return func(rects []bbox.Rect) Index {
			return NewLinear(rects)
		}, nil
	case BuilderHash:
		return func(rects []bbox.Rect) Index {
			return NewHashed(rects, DefaultCellSize)
		}, nil
	default:
		return nil, fmt.Errorf("unknown spatial index: %s", name)
	}
}
