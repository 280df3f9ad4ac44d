package sensor

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// OrientationMsg is sent via tea.Program.Send for every fused reading.
type OrientationMsg Orientation

// Source is an input that pushes messages into a running program.
type Source interface {
	Start(p *tea.Program) error
	Stop()
}

// SourceErrorMsg is sent when a started source ends on its own.
type SourceErrorMsg struct {
	Source string
	Err    error
}

const (
	mockInterval  = 50 * time.Millisecond
	fieldNorth    = 22.0  // µT, horizontal component
	fieldDown     = -40.0 // µT, vertical component
	glitchChance  = 0.03
	noiseGravity  = 0.05
	noiseMagnetic = 0.3
)

// MockSource simulates a phone lying flat and being turned slowly back and
// forth, with sensor noise and the occasional all-zero reading real fusion
// sometimes produces.
type MockSource struct {
	log     *zap.Logger
	program *tea.Program
	rng     *rand.Rand
	fuser   Fuser

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewMockSource creates a mock orientation source.
func NewMockSource(log *zap.Logger) *MockSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &MockSource{
		log: log,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins emitting readings in a goroutine.
func (s *MockSource) Start(p *tea.Program) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.program = p
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx)
	s.log.Info("mock orientation source started", zap.Duration("interval", mockInterval))
	return nil
}

func (s *MockSource) loop(ctx context.Context) {
	ticker := time.NewTicker(mockInterval)
	defer ticker.Stop()

	t := 0.0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t += mockInterval.Seconds()
			if o, ok := s.Sample(t); ok && s.program != nil {
				s.program.Send(OrientationMsg(o))
			}
		}
	}
}

// Sample produces the reading at t seconds since start.
func (s *MockSource) Sample(t float64) (Orientation, bool) {
	if s.rng.Float64() < glitchChance {
		return Orientation{}, true
	}

	heading := 120 * math.Sin(t*0.15) * math.Pi / 180
	tilt := 5 * math.Sin(t*0.4) * math.Pi / 180

	gravity := tiltX(Vec3{Z: standardGravity}, tilt)
	gravity.X += s.noise(noiseGravity)
	gravity.Y += s.noise(noiseGravity)
	gravity.Z += s.noise(noiseGravity)
	s.fuser.Accelerometer(gravity)

	mag := tiltX(FieldAt(heading), tilt)
	mag.X += s.noise(noiseMagnetic)
	mag.Y += s.noise(noiseMagnetic)
	mag.Z += s.noise(noiseMagnetic)
	return s.fuser.Magnetometer(mag)
}

// FieldAt returns the geomagnetic vector seen by a flat device whose top
// points heading radians clockwise from north.
func FieldAt(heading float64) Vec3 {
	return Vec3{
		X: -fieldNorth * math.Sin(heading),
		Y: fieldNorth * math.Cos(heading),
		Z: fieldDown,
	}
}

// tiltX expresses v in the frame of a device pitched by rad around its x axis.
func tiltX(v Vec3, rad float64) Vec3 {
	sin, cos := math.Sincos(rad)
	return Vec3{
		X: v.X,
		Y: v.Y*cos + v.Z*sin,
		Z: -v.Y*sin + v.Z*cos,
	}
}

func (s *MockSource) noise(amp float64) float64 {
	return (s.rng.Float64()*2 - 1) * amp
}

// Stop halts the source.
func (s *MockSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.log.Info("mock orientation source stopped")
	}
}
