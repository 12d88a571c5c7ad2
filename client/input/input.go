package input

import (
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/projection"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func IsRightPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyRight)
}

func IsLeftPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyLeft)
}

func IsUpPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyUp)
}

func IsDownPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyDown)
}

func IsJumpJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace)
}

// IsSayJustPressed reports whether the avatar should say something.
func IsSayJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyT)
}

// IsNextAreaJustPressed switches the area on screen.
func IsNextAreaJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyTab)
}

func IsDebugJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF1)
}

// Direction is the unit walking direction held on the arrow keys, in world
// space. Adventure areas walk on x/y; platformer areas only walk along y.
func Direction(mode projection.Mode) kinematic.Vector {
	var d kinematic.Vector
	if IsRightPressed() {
		d.Y++
	}
	if IsLeftPressed() {
		d.Y--
	}
	if mode == projection.Adventure {
		// x points down the screen
		if IsDownPressed() {
			d.X++
		}
		if IsUpPressed() {
			d.X--
		}
	}
	return d
}
