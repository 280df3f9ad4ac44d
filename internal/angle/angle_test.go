package angle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPositive(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{359, 359},
		{360, 0},
		{-1, 359},
		{-360, 0},
		{725, 5},
		{-725, 355},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToPositive(tt.in), "ToPositive(%d)", tt.in)
	}
}

func TestToSigned(t *testing.T) {
	assert.Equal(t, 0, ToSigned(0))
	assert.Equal(t, 180, ToSigned(180))
	assert.Equal(t, -179, ToSigned(181))
	assert.Equal(t, -1, ToSigned(359))
	assert.Equal(t, 90, ToSigned(90))
}

func TestNormalizeRoundTrip(t *testing.T) {
	for n := -1080; n <= 1080; n++ {
		got := ToSigned(ToPositive(n))
		assert.Greater(t, got, -180)
		assert.LessOrEqual(t, got, 180)
		assert.Equal(t, 0, ToPositive(got-n), "n=%d got=%d", n, got)
		assert.Equal(t, got, Normalize(n))
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     int
	}{
		{"forward", 0, 10, 10},
		{"backward", 10, 0, -10},
		{"across north in signed form", ToSigned(350), ToSigned(10), 20},
		{"across north backwards", ToSigned(10), ToSigned(350), -20},
		{"across south clockwise", 170, -170, 20},
		{"across south counter-clockwise", -170, 170, -20},
		{"half turn", 0, 180, 180},
		{"positive form is not corrected", 350, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diff(tt.from, tt.to))
		})
	}
}

func TestIsClockwiseCloser(t *testing.T) {
	assert.False(t, IsClockwiseCloser(10, 0))
	assert.True(t, IsClockwiseCloser(0, 10))
	assert.True(t, IsClockwiseCloser(170, -170))
	assert.False(t, IsClockwiseCloser(5, 5))
}

func TestFromSensorRadians(t *testing.T) {
	assert.Equal(t, 0, FromSensorRadians(0))
	assert.Equal(t, -90, FromSensorRadians(math.Pi/2))
	assert.Equal(t, 90, FromSensorRadians(-math.Pi/2))
	assert.Equal(t, -180, FromSensorRadians(math.Pi))
	assert.Equal(t, 45, FromSensorRadians(-math.Pi/4))
}

func TestPointOnCircle(t *testing.T) {
	x, y := PointOnCircle(10, 10, 5, 0)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 5, y, 1e-9)

	x, y = PointOnCircle(10, 10, 5, 90)
	assert.InDelta(t, 15, x, 1e-9)
	assert.InDelta(t, 10, y, 1e-9)

	x, y = PointOnCircle(0, 0, 2, 180)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 2, y, 1e-9)
}

func TestDistanceOnArc(t *testing.T) {
	assert.InDelta(t, 0, DistanceOnArc(10, 5, 0), 1e-9)
	assert.InDelta(t, 10, DistanceOnArc(10, 5, 180), 1e-9)
	assert.InDelta(t, 5*math.Sqrt2, DistanceOnArc(10, 5, 90), 1e-9)
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "N", Direction(0))
	assert.Equal(t, "N", Direction(-20))
	assert.Equal(t, "NE", Direction(40))
	assert.Equal(t, "E", Direction(90))
	assert.Equal(t, "S", Direction(-180))
	assert.Equal(t, "NW", Direction(-45))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 250, Clamp(10, 250, 1000))
	assert.Equal(t, 1000, Clamp(5000, 250, 1000))
	assert.Equal(t, 600, Clamp(600, 250, 1000))
}
