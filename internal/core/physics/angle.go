package physics

import "math"

func ToRadians(deg float64) float64 { return deg * math.Pi / 180 }
func ToDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// NormalizeAngle wraps a into (-π, π].
func NormalizeAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// SignedAngle returns the rotation in (-π, π] that takes from onto to.
// Positive is counter-clockwise. Zero vectors yield 0.
func SignedAngle(from, to Vec2) float64 {
	if from.IsZero() || to.IsZero() {
		return 0
	}
	return math.Atan2(from.Cross(to), from.Dot(to))
}

// SignedAngleDelta returns the shortest signed rotation from heading a to heading b.
func SignedAngleDelta(a, b float64) float64 {
	return NormalizeAngle(b - a)
}
