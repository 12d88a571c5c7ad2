package kinematic

// This package includes the vector math and integration helpers used by the
// physics step.

import (
	"math"
)

// Vector is a point or direction in world space.
//
// Coordinates are right handed: x moves toward the viewer, y moves left and
// right, z is height.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Axis returns the component for axis 0 (x), 1 (y) or 2 (z).
func (v Vector) Axis(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SetAxis sets the component for axis 0 (x), 1 (y) or 2 (z).
func (v *Vector) SetAxis(axis int, value float64) {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
}

// OnAxis returns a vector with only the given axis set.
func OnAxis(axis int, value float64) Vector {
	v := Vector{}
	v.SetAxis(axis, value)
	return v
}

// FinalVelocity returns the final velocity of an object given its initial velocity, time, and acceleration.
func FinalVelocity(initialVelocity Vector, time float64, acceleration Vector) Vector {
	return initialVelocity.Add(acceleration.Scale(time))
}

// FrictionFactor returns the per-step multiplier for an exponential decay
// that removes (1 - base) of the velocity every second, independent of the
// step size.
func FrictionFactor(base float64, timestep float64) float64 {
	return math.Pow(base, timestep)
}

// Round rounds x to the given number of decimals.
func Round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}
