package pathfinding

import "github.com/cbodonnell/tilearea/pkg/projection"

type node struct {
	tile projection.TileCoord
	g    float64
	h    float64
}

func (n *node) f() float64 {
	return n.g + n.h
}

// openSet is a min heap ordered by (f, h, y, x).
type openSet []*node

func (s openSet) Len() int { return len(s) }

func (s openSet) Less(i, j int) bool {
	a, b := s[i], s[j]
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	if a.h != b.h {
		return a.h < b.h
	}
	if a.tile.Y != b.tile.Y {
		return a.tile.Y < b.tile.Y
	}
	return a.tile.X < b.tile.X
}

func (s openSet) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s *openSet) Push(x interface{}) {
	*s = append(*s, x.(*node))
}

func (s *openSet) Pop() interface{} {
	old := *s
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*s = old[:n-1]
	return item
}
