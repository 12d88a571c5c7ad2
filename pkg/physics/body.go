package physics

import (
	"github.com/cbodonnell/tilearea/pkg/bbox"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
)

// Body is the physical representation of one simulated entity.
type Body struct {
	BBox *bbox.BBox
	// PreviousBBox is the box at the start of the last update.
	PreviousBBox *bbox.BBox
	Velocity     kinematic.Vector
	Acceleration kinematic.Vector
	// Orientation is the facing angle in radians.
	Orientation float64
}

func NewBody(b *bbox.BBox, velocity, acceleration kinematic.Vector, orientation float64) *Body {
	return &Body{
		BBox:         b,
		PreviousBBox: b.Clone(),
		Velocity:     velocity,
		Acceleration: acceleration,
		Orientation:  orientation,
	}
}

func (b *Body) Accel() kinematic.Vector {
	return b.Acceleration
}

func (b *Body) SetAccel(acc kinematic.Vector) {
	b.Acceleration = acc
}

// RememberPosition copies the current box into PreviousBBox.
func (b *Body) RememberPosition() {
	*b.PreviousBBox = *b.BBox
}

// Displacement is how far the body moved since RememberPosition.
func (b *Body) Displacement() kinematic.Vector {
	return b.BBox.Origin().Sub(b.PreviousBBox.Origin())
}
