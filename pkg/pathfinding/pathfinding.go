package pathfinding

import (
	"container/heap"
	"math"

	"github.com/cbodonnell/tilearea/pkg/constants"
	"github.com/cbodonnell/tilearea/pkg/projection"
)

// Neighborhood selects which moves the search may take.
type Neighborhood int

const (
	// Neighborhood4 moves along rows and columns only.
	Neighborhood4 Neighborhood = iota
	// Neighborhood8 also moves diagonally, but never across a blocked corner.
	Neighborhood8
)

// Grid is a bounded tile grid.
type Grid interface {
	Width() int
	Height() int
	Blocked(t projection.TileCoord) bool
}

// FuncGrid adapts a function to the Grid interface.
type FuncGrid struct {
	W, H      int
	IsBlocked func(x, y int) bool
}

func (g FuncGrid) Width() int  { return g.W }
func (g FuncGrid) Height() int { return g.H }

func (g FuncGrid) Blocked(t projection.TileCoord) bool {
	if g.IsBlocked == nil {
		return false
	}
	return g.IsBlocked(t.X, t.Y)
}

type Options struct {
	Neighborhood Neighborhood
	// MaxNodes limits the number of expanded nodes. Defaults to
	// constants.PathfindingMaxNodes.
	MaxNodes int
}

var (
	orthogonal = []projection.TileCoord{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	diagonal   = []projection.TileCoord{{X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1}}
)

// Search finds a shortest path from start to goal, both included. The result
// is empty when the goal is unreachable, blocked or out of bounds, or when the
// node budget runs out. Equal cost candidates are expanded by lowest
// (f, h, y, x), so the same grid always yields the same path.
func Search(start, goal projection.TileCoord, grid Grid, opts Options) []projection.TileCoord {
	if !inBounds(grid, start) || !inBounds(grid, goal) || grid.Blocked(goal) {
		return nil
	}
	if start == goal {
		return []projection.TileCoord{start}
	}
	maxNodes := opts.MaxNodes
	if maxNodes <= 0 {
		maxNodes = constants.PathfindingMaxNodes
	}

	h := manhattan
	if opts.Neighborhood == Neighborhood8 {
		h = octile
	}

	gScore := map[projection.TileCoord]float64{start: 0}
	cameFrom := map[projection.TileCoord]projection.TileCoord{}
	closed := map[projection.TileCoord]bool{}

	open := &openSet{}
	heap.Push(open, &node{tile: start, g: 0, h: h(start, goal)})

	expanded := 0
	for open.Len() > 0 && expanded < maxNodes {
		current := heap.Pop(open).(*node)
		if closed[current.tile] {
			continue
		}
		if current.tile == goal {
			return reconstructPath(cameFrom, start, goal)
		}
		closed[current.tile] = true
		expanded++

		for _, step := range neighbors(grid, current.tile, opts.Neighborhood) {
			if closed[step.tile] {
				continue
			}
			tentative := current.g + step.cost
			if prev, seen := gScore[step.tile]; seen && tentative >= prev {
				continue
			}
			gScore[step.tile] = tentative
			cameFrom[step.tile] = current.tile
			heap.Push(open, &node{tile: step.tile, g: tentative, h: h(step.tile, goal)})
		}
	}

	return nil
}

type move struct {
	tile projection.TileCoord
	cost float64
}

func neighbors(grid Grid, t projection.TileCoord, n Neighborhood) []move {
	free := func(c projection.TileCoord) bool {
		return inBounds(grid, c) && !grid.Blocked(c)
	}

	moves := make([]move, 0, 8)
	for _, d := range orthogonal {
		c := projection.TileCoord{X: t.X + d.X, Y: t.Y + d.Y}
		if free(c) {
			moves = append(moves, move{tile: c, cost: 1})
		}
	}
	if n != Neighborhood8 {
		return moves
	}
	for _, d := range diagonal {
		c := projection.TileCoord{X: t.X + d.X, Y: t.Y + d.Y}
		if !free(c) {
			continue
		}
		// no corner cutting
		if !free(projection.TileCoord{X: t.X + d.X, Y: t.Y}) || !free(projection.TileCoord{X: t.X, Y: t.Y + d.Y}) {
			continue
		}
		moves = append(moves, move{tile: c, cost: math.Sqrt2})
	}
	return moves
}

func reconstructPath(cameFrom map[projection.TileCoord]projection.TileCoord, start, goal projection.TileCoord) []projection.TileCoord {
	path := []projection.TileCoord{goal}
	for current := goal; current != start; {
		current = cameFrom[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func inBounds(grid Grid, t projection.TileCoord) bool {
	return t.X >= 0 && t.Y >= 0 && t.X < grid.Width() && t.Y < grid.Height()
}

func manhattan(a, b projection.TileCoord) float64 {
	return math.Abs(float64(a.X-b.X)) + math.Abs(float64(a.Y-b.Y))
}

func octile(a, b projection.TileCoord) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}
