// Package physics holds the small amount of 2D math shared by the steering
// behaviors and the kinematic host that integrates their output.
package physics

import "math"

// Vec2 is a 2D vector. The zero value is the origin.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Zero is the zero vector.
var Zero = Vec2{}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2        { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2        { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2   { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Neg() Vec2              { return Vec2{-v.X, -v.Y} }
func (v Vec2) Dot(o Vec2) float64     { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Length() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec2) IsZero() bool           { return v.X == 0 && v.Y == 0 }

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) Distance(o Vec2) float64        { return o.Sub(v).Length() }
func (v Vec2) DistanceSquared(o Vec2) float64 { return o.Sub(v).LengthSquared() }

// Normalize returns the unit vector in the direction of v, or the zero vector
// when v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Zero
	}
	return Vec2{v.X / l, v.Y / l}
}

// ClampLength caps the magnitude of v at limit.
func (v Vec2) ClampLength(limit float64) Vec2 {
	if limit <= 0 {
		return Zero
	}
	if l := v.Length(); l > limit {
		return v.Scale(limit / l)
	}
	return v
}

// Angle returns the heading of v in radians, measured counter-clockwise from +X.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// FromAngle builds a vector of the given magnitude pointing at angle radians.
func FromAngle(angle, magnitude float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{cos * magnitude, sin * magnitude}
}

// Distance2 computes Euclidean distance between two 2D points.
func Distance2(x1, y1, x2, y2 float64) float64 { return math.Hypot(x2-x1, y2-y1) }
