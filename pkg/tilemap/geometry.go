package tilemap

import (
	"github.com/cbodonnell/tilearea/pkg/bbox"
	"github.com/cbodonnell/tilearea/pkg/projection"
)

// Geometry merges contiguous wall tiles into as few rectangles as possible,
// greedily growing each one along the row first and then down the columns.
// Rectangles are in world units.
func (l *Level) Geometry() []bbox.Rect {
	processed := make([]bool, l.Width*l.Height)
	var rects []bbox.Rect

	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			idx := y*l.Width + x
			if processed[idx] {
				continue
			}
			if l.Walls[y][x] == 0 {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < l.Width {
				idx2 := y*l.Width + x + w
				if processed[idx2] || l.Walls[y][x+w] == 0 {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < l.Height {
				for xi := x; xi < x+w; xi++ {
					if processed[(y+h)*l.Width+xi] || l.Walls[y+h][xi] == 0 {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*l.Width+xx] = true
				}
			}

			rects = append(rects, bbox.Rect{
				X: x * l.TileWidth,
				Y: y * l.TileHeight,
				W: w * l.TileWidth,
				H: h * l.TileHeight,
			})
		}
	}
	return rects
}

// Grid is a read only view of the level's tiles.
type Grid struct {
	level *Level
}

func (l *Level) Grid() Grid {
	return Grid{level: l}
}

func (g Grid) Width() int  { return g.level.Width }
func (g Grid) Height() int { return g.level.Height }

func (g Grid) Blocked(t projection.TileCoord) bool {
	return g.level.Blocked(t)
}

func (g Grid) Property(t projection.TileCoord, key string) (string, bool) {
	return g.level.Property(t, key)
}
