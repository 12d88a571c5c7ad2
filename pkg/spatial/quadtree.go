package spatial

import "github.com/cbodonnell/tilearea/pkg/bbox"

// DefaultQuadTreeDepth is the depth used by DefaultBuilder.
const DefaultQuadTreeDepth = 6

// QuadTree is a static quadtree. Each node splits at the center of its
// boundary; rectangles that cover all four quadrants stay in the node, the
// rest are copied into every quadrant they touch.
type QuadTree struct {
	root  *quadNode
	count int
}

var _ Index = &QuadTree{}

type quadNode struct {
	items          []bbox.Rect
	cx, cy         int
	nw, ne, sw, se *quadNode
}

// NewQuadTree builds the tree. depth limits how many times a node may split.
func NewQuadTree(rects []bbox.Rect, depth int) *QuadTree {
	items := make([]bbox.Rect, 0, len(rects))
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		items = append(items, r)
	}
	return &QuadTree{
		root:  newQuadNode(items, depth, bbox.Bounds(items)),
		count: len(items),
	}
}

func newQuadNode(items []bbox.Rect, depth int, boundary bbox.Rect) *quadNode {
	depth--
	if depth <= 0 || len(items) <= 1 || boundary.W <= 1 || boundary.H <= 1 {
		return &quadNode{items: items}
	}

	n := &quadNode{
		cx: boundary.X + boundary.W/2,
		cy: boundary.Y + boundary.H/2,
	}

	var nwItems, neItems, swItems, seItems []bbox.Rect
	for _, item := range items {
		west := item.Left() < n.cx
		east := item.Right() > n.cx
		north := item.Top() < n.cy
		south := item.Bottom() > n.cy

		if west && east && north && south {
			n.items = append(n.items, item)
			continue
		}
		if west && north {
			nwItems = append(nwItems, item)
		}
		if east && north {
			neItems = append(neItems, item)
		}
		if west && south {
			swItems = append(swItems, item)
		}
		if east && south {
			seItems = append(seItems, item)
		}
	}

	left, top := boundary.X, boundary.Y
	right, bottom := boundary.Right(), boundary.Bottom()
	if len(nwItems) > 0 {
		n.nw = newQuadNode(nwItems, depth, bbox.Rect{X: left, Y: top, W: n.cx - left, H: n.cy - top})
	}
	if len(neItems) > 0 {
		n.ne = newQuadNode(neItems, depth, bbox.Rect{X: n.cx, Y: top, W: right - n.cx, H: n.cy - top})
	}
	if len(swItems) > 0 {
		n.sw = newQuadNode(swItems, depth, bbox.Rect{X: left, Y: n.cy, W: n.cx - left, H: bottom - n.cy})
	}
	if len(seItems) > 0 {
		n.se = newQuadNode(seItems, depth, bbox.Rect{X: n.cx, Y: n.cy, W: right - n.cx, H: bottom - n.cy})
	}
	return n
}

func (t *QuadTree) Hit(r bbox.Rect) bool {
	if r.Empty() || t.root == nil {
		return false
	}
	return t.root.hit(r)
}

func (t *QuadTree) Len() int {
	return t.count
}

func (n *quadNode) hit(r bbox.Rect) bool {
	for _, item := range n.items {
		if item.Intersects(r) {
			return true
		}
	}

	west := r.Left() < n.cx
	east := r.Right() > n.cx
	north := r.Top() < n.cy
	south := r.Bottom() > n.cy

	if n.nw != nil && west && north && n.nw.hit(r) {
		return true
	}
	if n.ne != nil && east && north && n.ne.hit(r) {
		return true
	}
	if n.sw != nil && west && south && n.sw.hit(r) {
		return true
	}
	if n.se != nil && east && south && n.se.hit(r) {
		return true
	}
	return false
}
