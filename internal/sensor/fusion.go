// Package sensor produces device orientation from accelerometer and
// magnetometer readings and delivers it to the UI loop.
package sensor

import "math"

const (
	standardGravity = 9.80665
	// readings below 10% of g mean the device is in free fall
	freeFallGravitySquared = 0.01 * standardGravity * standardGravity
	minMagneticNorm        = 0.1
)

// Vec3 is a raw sensor sample in device coordinates: x right, y toward the
// top of the screen, z out of the screen.
type Vec3 struct {
	X, Y, Z float64
}

// Orientation is a fused device orientation in radians.
type Orientation struct {
	Azimuth float64
	Pitch   float64
	Roll    float64
}

// RotationMatrix builds the 3x3 row-major rotation matrix from device to
// world coordinates (east, north, up). It fails when the device is in free
// fall or the magnetic field is (nearly) parallel to gravity.
func RotationMatrix(gravity, geomagnetic Vec3) ([9]float64, bool) {
	var r [9]float64

	a := gravity
	normsqA := a.X*a.X + a.Y*a.Y + a.Z*a.Z
	if normsqA < freeFallGravitySquared {
		return r, false
	}

	e := geomagnetic
	h := Vec3{
		X: e.Y*a.Z - e.Z*a.Y,
		Y: e.Z*a.X - e.X*a.Z,
		Z: e.X*a.Y - e.Y*a.X,
	}
	normH := math.Sqrt(h.X*h.X + h.Y*h.Y + h.Z*h.Z)
	if normH < minMagneticNorm {
		return r, false
	}

	invH := 1 / normH
	h = Vec3{h.X * invH, h.Y * invH, h.Z * invH}
	invA := 1 / math.Sqrt(normsqA)
	a = Vec3{a.X * invA, a.Y * invA, a.Z * invA}
	m := Vec3{
		X: a.Y*h.Z - a.Z*h.Y,
		Y: a.Z*h.X - a.X*h.Z,
		Z: a.X*h.Y - a.Y*h.X,
	}

	r = [9]float64{
		h.X, h.Y, h.Z,
		m.X, m.Y, m.Z,
		a.X, a.Y, a.Z,
	}
	return r, true
}

// Fuse combines one accelerometer and one magnetometer sample into an
// orientation. Azimuth is taken from the first column of the matrix, so it
// stays stable while the device is tilted.
func Fuse(gravity, geomagnetic Vec3) (Orientation, bool) {
	r, ok := RotationMatrix(gravity, geomagnetic)
	if !ok {
		return Orientation{}, false
	}
	return Orientation{
		Azimuth: -math.Atan2(r[3], r[0]),
		Pitch:   math.Asin(-r[7]),
		Roll:    math.Atan2(-r[6], r[8]),
	}, true
}

// Fuser keeps the latest sample from each sensor and fuses them once both
// have arrived.
type Fuser struct {
	accel, mag       Vec3
	hasAccel, hasMag bool
}

// Accelerometer records a gravity sample and returns the fused orientation
// if a magnetometer sample is available.
func (f *Fuser) Accelerometer(v Vec3) (Orientation, bool) {
	f.accel, f.hasAccel = v, true
	return f.fuse()
}

// Magnetometer records a geomagnetic sample and returns the fused orientation
// if an accelerometer sample is available.
func (f *Fuser) Magnetometer(v Vec3) (Orientation, bool) {
	f.mag, f.hasMag = v, true
	return f.fuse()
}

func (f *Fuser) fuse() (Orientation, bool) {
	if !f.hasAccel || !f.hasMag {
		return Orientation{}, false
	}
	return Fuse(f.accel, f.mag)
}
