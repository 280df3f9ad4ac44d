// Package angle holds the degree arithmetic shared by the heading tracker and
// the sweep detector. Angles are whole degrees, 0 = north, increasing clockwise.
//
// Two forms are used and must not be mixed in a subtraction:
// positive form in [0, 360) and signed form in (-180, 180].
package angle

import "math"

// ToPositive maps any angle into [0, 360).
func ToPositive(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// ToSigned converts a positive-form angle into (-180, 180].
// Angles outside [0, 360) are left as the caller's problem; use Normalize.
func ToSigned(positive int) int {
	if positive > 180 {
		return positive - 360
	}
	return positive
}

// Normalize maps any angle into the signed form.
func Normalize(deg int) int {
	return ToSigned(ToPositive(deg))
}

// Diff returns the signed difference from -> to. Both arguments are expected
// in signed form. When the naive difference exceeds half a turn the pair
// straddles the ±180 seam and the result is measured across it instead.
//
// This is not a general shortest-arc formula: Diff(350, 10) is 0, while
// Diff(ToSigned(350), ToSigned(10)) is 20.
func Diff(from, to int) int {
	diff := to - from
	if abs(diff) > 180 {
		diff = 180 - abs(to) + 180 - abs(from)
		if to > 0 {
			diff = -diff
		}
	}
	return diff
}

// IsClockwiseCloser reports whether turning clockwise reaches to sooner.
func IsClockwiseCloser(from, to int) bool {
	return Diff(from, to) > 0
}

// FromSensorRadians converts a fused orientation value in radians to compass
// degrees. The sensor reports counter-clockwise angles, hence the sign flip.
// Halves round up.
func FromSensorRadians(rad float64) int {
	return int(math.Floor(-rad/math.Pi*180 + 0.5))
}

// PointOnCircle projects deg onto a circle of the given radius around
// (cx, cy) in screen coordinates: 0 points up, 90 points right.
func PointOnCircle(cx, cy, radius float64, deg int) (x, y float64) {
	rad := float64(deg-90) * math.Pi / 180
	return cx + radius*math.Cos(rad), cy + radius*math.Sin(rad)
}

// DistanceOnArc returns the chord length between 0 and deg on a circle of the
// given radius.
func DistanceOnArc(center, radius float64, deg int) float64 {
	ax, ay := PointOnCircle(center, center, radius, 0)
	bx, by := PointOnCircle(center, center, radius, deg)
	return math.Hypot(ax-bx, ay-by)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

var directions = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Direction returns the 8-point compass label nearest to deg.
func Direction(deg int) string {
	idx := (ToPositive(deg) + 22) / 45 % 8
	return directions[idx]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
