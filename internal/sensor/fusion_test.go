package sensor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"sonar.klederson.com/internal/angle"
)

var flat = Vec3{Z: standardGravity}

func TestFuseFlatFacingNorth(t *testing.T) {
	o, ok := Fuse(flat, FieldAt(0))
	require.True(t, ok)
	assert.InDelta(t, 0, o.Azimuth, 1e-9)
	assert.InDelta(t, 0, o.Pitch, 1e-9)
	assert.InDelta(t, 0, o.Roll, 1e-9)
}

func TestFuseHeadings(t *testing.T) {
	tests := []struct {
		name    string
		heading float64
		wantDeg int
	}{
		{"east", math.Pi / 2, -90},
		{"west", -math.Pi / 2, 90},
		{"north-east", math.Pi / 4, -45},
		{"south-ish", 3 * math.Pi / 4, -135},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, ok := Fuse(flat, FieldAt(tt.heading))
			require.True(t, ok)
			assert.InDelta(t, tt.heading, o.Azimuth, 1e-9)
			assert.Equal(t, tt.wantDeg, angle.FromSensorRadians(o.Azimuth))
		})
	}
}

func TestFuseRejectsFreeFall(t *testing.T) {
	_, ok := Fuse(Vec3{X: 0.1, Y: 0.1, Z: 0.2}, FieldAt(0))
	assert.False(t, ok)
}

func TestFuseRejectsFieldParallelToGravity(t *testing.T) {
	_, ok := Fuse(flat, Vec3{Z: -40})
	assert.False(t, ok)
}

func TestRotationMatrixIsOrthonormal(t *testing.T) {
	r, ok := RotationMatrix(Vec3{X: 1.2, Y: 3.1, Z: 8.9}, Vec3{X: -5, Y: 18, Z: -35})
	require.True(t, ok)
	for row := 0; row < 3; row++ {
		n := r[row*3]*r[row*3] + r[row*3+1]*r[row*3+1] + r[row*3+2]*r[row*3+2]
		assert.InDelta(t, 1, n, 1e-9, "row %d", row)
	}
	dot := r[0]*r[3] + r[1]*r[4] + r[2]*r[5]
	assert.InDelta(t, 0, dot, 1e-9)
}

func TestFuserWaitsForBothSensors(t *testing.T) {
	var f Fuser
	_, ok := f.Accelerometer(flat)
	assert.False(t, ok)

	o, ok := f.Magnetometer(FieldAt(math.Pi / 2))
	require.True(t, ok)
	assert.InDelta(t, math.Pi/2, o.Azimuth, 1e-9)

	o, ok = f.Magnetometer(FieldAt(0))
	require.True(t, ok)
	assert.InDelta(t, 0, o.Azimuth, 1e-9)
}

func TestMockSourceSamplesFollowHeading(t *testing.T) {
	s := NewMockSource(zaptest.NewLogger(t))
	s.rng = rand.New(rand.NewSource(42))

	glitches := 0
	for i := 1; i <= 200; i++ {
		ts := float64(i) * mockInterval.Seconds()
		o, ok := s.Sample(ts)
		require.True(t, ok)
		if o == (Orientation{}) {
			glitches++
			continue
		}
		want := 120 * math.Sin(ts*0.15) * math.Pi / 180
		assert.InDelta(t, want, o.Azimuth, 5*math.Pi/180, "t=%.2f", ts)
	}
	assert.Less(t, glitches, 30)
}
