// Package heading turns noisy orientation readings into a displayed heading
// that creeps toward the true one like a compass needle.
package heading

import (
	"go.uber.org/zap"

	"sonar.klederson.com/internal/angle"
)

const (
	fastStep = 4 // degrees per frame while far from target
	slowStep = 1 // degrees per frame near target
	nearDiff = 15

	minimalDiff     = 1  // smaller changes are ignored
	glitchTolerance = 15 // a raw 0 further than this from current is a sensor glitch
	sampleCount     = 3
)

// Tracker owns the displayed heading (current) and the target it moves
// toward (desired). Both are kept in signed form.
//
// Tracker is not safe for concurrent use; feed Ingest and Step from the same
// goroutine.
type Tracker struct {
	log     *zap.Logger
	axis    Axis
	current int
	desired int
	pending []int
}

// NewTracker creates a tracker reading the azimuth channel, facing north.
func NewTracker(log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{
		log:     log,
		pending: make([]int, 0, sampleCount),
	}
}

// Ingest offers a raw heading in degrees. Samples too close to the current
// heading and bogus zero readings are dropped. Every third accepted sample
// commits a new target: current plus the truncated mean of the differences.
func (t *Tracker) Ingest(raw int) {
	raw = angle.Normalize(raw)
	diff := abs(angle.Diff(t.current, raw))

	if diff < minimalDiff {
		return
	}
	if diff > glitchTolerance && raw == 0 {
		t.log.Debug("dropping zero heading glitch",
			zap.Int("current", t.current), zap.Int("diff", diff))
		return
	}

	t.pending = append(t.pending, raw)
	if len(t.pending) < sampleCount {
		return
	}

	sum := 0
	for _, s := range t.pending {
		sum += angle.Diff(t.current, s)
	}
	t.desired = angle.Normalize(t.current + sum/len(t.pending))
	t.pending = t.pending[:0]

	t.log.Debug("heading target committed",
		zap.Int("current", t.current), zap.Int("desired", t.desired))
}

// IngestOrientation feeds the channel selected by the current axis from a
// fused orientation triple in radians.
func (t *Tracker) IngestOrientation(azimuth, pitch, roll float64) {
	t.Ingest(angle.FromSensorRadians(t.axis.pick(azimuth, pitch, roll)))
}

// Step advances current one frame toward desired and returns it: 4° while
// 15° or more away, 1° otherwise. There is no overshoot handling; a passed
// target reverses direction on the next call.
func (t *Tracker) Step() int {
	if t.current == t.desired {
		return t.current
	}

	size := fastStep
	if abs(angle.Diff(t.current, t.desired)) < nearDiff {
		size = slowStep
	}
	if !angle.IsClockwiseCloser(t.current, t.desired) {
		size = -size
	}

	next := t.current + size
	if next <= -180 {
		next += 360
	} else if next > 180 {
		next -= 360
	}
	t.current = next
	return next
}

// SetAxis switches the channel used by IngestOrientation and drops any
// samples collected from the previous one.
func (t *Tracker) SetAxis(a Axis) {
	if a != t.axis {
		t.log.Info("rotation axis changed",
			zap.Stringer("from", t.axis), zap.Stringer("to", a))
	}
	t.axis = a
	t.pending = t.pending[:0]
}

func (t *Tracker) Axis() Axis { return t.axis }

// Current returns the displayed heading.
func (t *Tracker) Current() int { return t.current }

// Desired returns the heading the tracker is moving toward.
func (t *Tracker) Desired() int { return t.desired }

// Pending returns how many samples are waiting to be averaged.
func (t *Tracker) Pending() int { return len(t.pending) }

// SetCurrent jumps the displayed heading without animation.
func (t *Tracker) SetCurrent(deg int) { t.current = angle.Normalize(deg) }

// SetDesired overrides the target heading.
func (t *Tracker) SetDesired(deg int) { t.desired = angle.Normalize(deg) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
