package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	assert.Equal(t, V(4, 2), a.Add(b))
	assert.Equal(t, V(2, 6), a.Sub(b))
	assert.Equal(t, V(6, 8), a.Scale(2))
	assert.Equal(t, V(-3, -4), a.Neg())
	assert.InDelta(t, -5.0, a.Dot(b), eps)
	assert.InDelta(t, -10.0, a.Cross(b), eps)
	assert.InDelta(t, 5.0, a.Length(), eps)
	assert.InDelta(t, 25.0, a.LengthSquared(), eps)
	assert.InDelta(t, 5.0, Zero.Distance(a), eps)
	assert.InDelta(t, 25.0, a.DistanceSquared(Zero), eps)
}

func TestNormalize(t *testing.T) {
	n := V(0, 10).Normalize()
	assert.True(t, n.ApproxEqual(V(0, 1), eps))

	z := Zero.Normalize()
	require.False(t, math.IsNaN(z.X) || math.IsNaN(z.Y))
	assert.True(t, z.IsZero())
}

func TestClampLength(t *testing.T) {
	assert.True(t, V(30, 40).ClampLength(5).ApproxEqual(V(3, 4), eps))
	assert.Equal(t, V(0.3, 0.4), V(0.3, 0.4).ClampLength(1))
	assert.True(t, V(1, 1).ClampLength(0).IsZero())
}

func TestRotateAndFromAngle(t *testing.T) {
	r := V(1, 0).Rotate(math.Pi / 2)
	assert.True(t, r.ApproxEqual(V(0, 1), eps), "got %v", r)

	f := FromAngle(math.Pi, 2)
	assert.True(t, f.ApproxEqual(V(-2, 0), eps), "got %v", f)
	assert.InDelta(t, math.Pi/2, V(0, 3).Angle(), eps)
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{math.Inf(1), 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, NormalizeAngle(tc.in), 1e-9, "NormalizeAngle(%v)", tc.in)
	}
}

func TestSignedAngle(t *testing.T) {
	assert.InDelta(t, math.Pi/2, SignedAngle(V(1, 0), V(0, 1)), eps)
	assert.InDelta(t, -math.Pi/2, SignedAngle(V(1, 0), V(0, -1)), eps)
	assert.InDelta(t, math.Pi, SignedAngle(V(1, 0), V(-1, 0)), eps)
	assert.InDelta(t, 0.0, SignedAngle(V(1, 0), V(5, 0)), eps)
	assert.Equal(t, 0.0, SignedAngle(Zero, V(1, 0)))
}

func TestSignedAngleDelta(t *testing.T) {
	assert.InDelta(t, -ToRadians(20), SignedAngleDelta(ToRadians(170), ToRadians(150)), eps)
	assert.InDelta(t, ToRadians(20), SignedAngleDelta(ToRadians(170), ToRadians(-170)), eps)
	assert.InDelta(t, 45.0, ToDegrees(ToRadians(45)), eps)
}

func TestDistance2(t *testing.T) {
	assert.InDelta(t, 5.0, Distance2(1, 1, 4, 5), eps)
}
