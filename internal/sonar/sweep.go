package sonar

import (
	"math"
	"time"
)

const (
	MinLoopDuration     = 250 * time.Millisecond
	DefaultLoopDuration = 1250 * time.Millisecond
	MaxLoopDuration     = math.MaxInt32 * time.Millisecond
)

// Sweep manages the rotating beam. The angle runs linearly from 0 to 360
// once per loop and restarts.
type Sweep struct {
	clock  Clock
	start  time.Time
	period time.Duration
	angle  int
}

// NewSweep creates a sweep starting at north. The period is clamped to
// [MinLoopDuration, MaxLoopDuration].
func NewSweep(clock Clock, period time.Duration) *Sweep {
	if clock == nil {
		clock = RealClock{}
	}
	return &Sweep{
		clock:  clock,
		start:  clock.Now(),
		period: clampPeriod(period),
	}
}

// Update advances the angle from the elapsed time and returns it.
func (s *Sweep) Update() int {
	elapsed := s.clock.Now().Sub(s.start)
	if elapsed < 0 {
		elapsed = 0
	}
	frac := float64(elapsed%s.period) / float64(s.period)
	s.angle = int(frac * 360)
	return s.angle
}

// Angle returns the angle computed by the last Update, in degrees [0, 360).
func (s *Sweep) Angle() int { return s.angle }

func (s *Sweep) Period() time.Duration { return s.period }

// SetPeriod changes the loop duration, keeping the beam where it is.
func (s *Sweep) SetPeriod(d time.Duration) {
	s.period = clampPeriod(d)
	s.Resume()
}

// Resume continues from the last computed angle, skipping the time since.
// The offset rounds up so the next Update does not fall a degree behind.
func (s *Sweep) Resume() {
	offset := time.Duration(math.Ceil(float64(s.period) * float64(s.angle) / 360))
	s.start = s.clock.Now().Add(-offset)
}

// Restart puts the beam back at north.
func (s *Sweep) Restart() {
	s.start = s.clock.Now()
	s.angle = 0
}

func clampPeriod(d time.Duration) time.Duration {
	return min(max(d, MinLoopDuration), MaxLoopDuration)
}
