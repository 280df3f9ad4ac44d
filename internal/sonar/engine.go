// Package sonar detects when a rotating sweep beam crosses tracked points
// and fades them out afterwards.
package sonar

import (
	"time"

	"go.uber.org/zap"

	"sonar.klederson.com/internal/heading"
)

// Frame is the state a renderer needs for one animation frame.
type Frame struct {
	Heading int // displayed heading, signed degrees
	Desired int // heading the needle is moving toward
	Sweep   int // beam angle, [0, 360)
	Mode    Mode
	Axis    heading.Axis
	Running bool
	Points  []Point
}

// Engine ticks the heading tracker, the sweep and every tracked point on a
// single goroutine. Sensor input must be delivered on that same goroutine.
type Engine struct {
	log     *zap.Logger
	clock   Clock
	tracker *heading.Tracker
	sweep   *Sweep
	points  *PointStore
	mode    Mode
	running bool
	started bool
}

// Config holds the collaborators of an Engine. Nil fields get defaults.
type Config struct {
	Logger  *zap.Logger
	Clock   Clock
	Tracker *heading.Tracker
	Points  *PointStore
	Period  time.Duration
	Mode    Mode
}

// NewEngine builds a stopped engine.
func NewEngine(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	if cfg.Tracker == nil {
		cfg.Tracker = heading.NewTracker(cfg.Logger.Named("heading"))
	}
	if cfg.Points == nil {
		cfg.Points = NewPointStore()
	}
	if cfg.Period == 0 {
		cfg.Period = DefaultLoopDuration
	}
	return &Engine{
		log:     cfg.Logger,
		clock:   cfg.Clock,
		tracker: cfg.Tracker,
		sweep:   NewSweep(cfg.Clock, cfg.Period),
		points:  cfg.Points,
		mode:    cfg.Mode,
	}
}

// Start begins the sweep from north the first time and resumes it where it
// stopped afterwards, so no point sees a beam it never crossed. Starting a
// running engine is a no-op.
func (e *Engine) Start() {
	if e.running {
		return
	}
	if e.started {
		e.sweep.Resume()
	} else {
		e.sweep.Restart()
	}
	e.started = true
	e.running = true
	e.log.Info("sweep started", zap.Duration("period", e.sweep.Period()))
}

// Stop freezes the sweep and the needle.
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	e.running = false
	e.log.Info("sweep stopped")
}

func (e *Engine) Running() bool { return e.running }

// Tick advances one frame: the needle steps toward its target, the beam
// moves on and every point is checked for a crossing. A stopped engine only
// reports the current state.
func (e *Engine) Tick() Frame {
	if e.running {
		sweep := e.sweep.Update()
		current := e.tracker.Step()
		now := Millis(e.clock.Now())
		offset := e.mode.HeadingOffset(current)

		e.points.Update(func(p *Point) {
			if p.Update(now, offset, sweep) {
				e.log.Debug("point detected",
					zap.String("id", p.ID),
					zap.Int("bearing", p.DetectedBearing()),
					zap.Float64("distance", p.DetectedDistance()))
			}
		})
	}
	return e.Frame()
}

// Frame returns the current state without advancing it.
func (e *Engine) Frame() Frame {
	return Frame{
		Heading: e.tracker.Current(),
		Desired: e.tracker.Desired(),
		Sweep:   e.sweep.Angle(),
		Mode:    e.mode,
		Axis:    e.tracker.Axis(),
		Running: e.running,
		Points:  e.points.Snapshot(),
	}
}

// Ingest forwards a raw heading in degrees to the tracker.
func (e *Engine) Ingest(deg int) { e.tracker.Ingest(deg) }

// IngestOrientation forwards a fused orientation triple in radians.
func (e *Engine) IngestOrientation(azimuth, pitch, roll float64) {
	e.tracker.IngestOrientation(azimuth, pitch, roll)
}

// SetAxis selects the orientation channel that drives the needle.
func (e *Engine) SetAxis(a heading.Axis) { e.tracker.SetAxis(a) }

func (e *Engine) Mode() Mode { return e.mode }

// SetMode switches between plain and compass display.
func (e *Engine) SetMode(m Mode) {
	if m != e.mode {
		e.log.Info("display mode changed", zap.Stringer("mode", m))
	}
	e.mode = m
}

// SetPeriod changes the sweep loop duration.
func (e *Engine) SetPeriod(d time.Duration) { e.sweep.SetPeriod(d) }

func (e *Engine) Period() time.Duration { return e.sweep.Period() }

// Points exposes the tracked point set.
func (e *Engine) Points() *PointStore { return e.points }

// Now returns the engine clock in ms.
func (e *Engine) Now() int64 { return Millis(e.clock.Now()) }
