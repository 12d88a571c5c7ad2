package kinematic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalVelocity(t *testing.T) {
	got := FinalVelocity(Vector{X: 1, Y: 2, Z: 3}, 0.5, Vector{X: 2, Y: 0, Z: -4})
	assert.Equal(t, Vector{X: 2, Y: 2, Z: 1}, got)
}

func TestFrictionFactor_independentOfStepSize(t *testing.T) {
	// 200 small steps decay the same amount as 1 step of one second
	small := math.Pow(FrictionFactor(0.0001, 0.005), 200)
	large := FrictionFactor(0.0001, 1)
	assert.InDelta(t, large, small, 1e-12)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.0, Round(0.00004, 4))
	assert.Equal(t, 0.0001, Round(0.00006, 4))
	assert.Equal(t, 0.0, Round(-0.04, 1))
	assert.Equal(t, -0.1, Round(-0.06, 1))
}

func TestVector_axis(t *testing.T) {
	v := Vector{}
	v.SetAxis(0, 1)
	v.SetAxis(1, 2)
	v.SetAxis(2, 3)
	assert.Equal(t, Vector{X: 1, Y: 2, Z: 3}, v)
	assert.Equal(t, 2.0, v.Axis(1))
	assert.Equal(t, Vector{Z: 5}, OnAxis(2, 5))
}
