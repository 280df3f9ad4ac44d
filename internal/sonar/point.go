package sonar

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"sonar.klederson.com/internal/angle"
)

const (
	// DefaultLifetime is how long a point stays visible after detection, in ms.
	DefaultLifetime int64 = 1250
	// LifetimeInfinite keeps a point fully visible from creation on, whatever
	// its distance.
	LifetimeInfinite int64 = -1

	fadeFactor = 0.6
)

// ErrInvalidLifetime is returned for negative lifetimes other than LifetimeInfinite.
var ErrInvalidLifetime = errors.New("invalid point lifetime")

// Point is a marker at a fixed bearing from north and a normalised distance
// from the sonar center (0 = center, 1 = edge, beyond 1 = off screen).
//
// Each frame Update checks whether the sweep beam crossed the point and
// decays its visibility since the last crossing.
type Point struct {
	ID    string
	Label string
	Color string // hex colour, empty for the theme default

	bearing  int
	distance float64
	lifetime int64

	lastBearing int
	lastSweep   int

	detected         bool
	detectedAt       int64
	detectedBearing  int
	detectedDistance float64
	visibility       float64

	seenAt int64 // last refresh from a live source, 0 for static points
}

// NewPoint creates a point with the default lifetime. Negative distances are
// clamped to the center.
func NewPoint(bearing int, distance float64) *Point {
	return &Point{
		ID:       uuid.NewString(),
		bearing:  angle.ToPositive(bearing),
		distance: math.Max(distance, 0),
		lifetime: DefaultLifetime,
	}
}

// RandomPoints scatters n points over the whole dial.
func RandomPoints(n int, rng *rand.Rand) []*Point {
	points := make([]*Point, n)
	for i := range points {
		points[i] = NewPoint(rng.Intn(360), rng.Float64())
	}
	return points
}

func (p *Point) Bearing() int       { return p.bearing }
func (p *Point) Distance() float64  { return p.distance }
func (p *Point) Lifetime() int64    { return p.lifetime }
func (p *Point) Visibility() float64 { return p.visibility }

// SetBearing moves the point; the new bearing applies from the next Update.
func (p *Point) SetBearing(deg int) { p.bearing = angle.ToPositive(deg) }

// SetDistance changes the radial distance. Negative values are clamped to 0.
func (p *Point) SetDistance(d float64) { p.distance = math.Max(d, 0) }

// SetLifetime sets the fade duration in ms. Zero makes a point vanish
// immediately after detection; LifetimeInfinite never fades it.
func (p *Point) SetLifetime(ms int64) error {
	if ms < 0 && ms != LifetimeInfinite {
		return fmt.Errorf("%w: %d ms", ErrInvalidLifetime, ms)
	}
	p.lifetime = ms
	if ms == LifetimeInfinite || !p.detected {
		p.visibility = p.visibilityAt(p.detectedAt)
	}
	return nil
}

// Detected reports whether the sweep has crossed the point at least once.
func (p *Point) Detected() bool { return p.detected }

// DetectedAt returns the timestamp (ms) of the last crossing.
func (p *Point) DetectedAt() int64 { return p.detectedAt }

// DetectedBearing is the absolute bearing the point had when last crossed.
// Renderers draw the point there, not at its live bearing.
func (p *Point) DetectedBearing() int { return p.detectedBearing }

// DetectedDistance is the distance the point had when last crossed.
func (p *Point) DetectedDistance() float64 { return p.detectedDistance }

// IsVisible reports whether the point should be drawn. Points with
// LifetimeInfinite are always drawn.
func (p *Point) IsVisible() bool {
	if p.lifetime == LifetimeInfinite {
		return true
	}
	return p.visibility > 0 && p.detectedDistance <= 1
}

// EasedVisibility maps the linear visibility through a decelerating curve,
// so points stay bright for a while and fade quickly at the end.
func (p *Point) EasedVisibility() float64 {
	return 1 - math.Pow(1-p.visibility, 2*fadeFactor)
}

// Update runs crossing detection for one frame and reports whether the sweep
// crossed the point in this frame.
//
// headingOffset is added to the point's bearing; pass the current heading for
// points that turn with the device, or 0 for compass-relative points.
// sweepAngle is the beam angle in [0, 360].
func (p *Point) Update(nowMs int64, headingOffset, sweepAngle int) bool {
	bearing := angle.Normalize(p.bearing + headingOffset)
	sweep := angle.Normalize(sweepAngle)

	lastDiff := angle.Diff(p.lastSweep, p.lastBearing)
	newDiff := angle.Diff(sweep, bearing)

	crossed := lastDiff > 0 && newDiff <= 0
	if crossed {
		p.detected = true
		p.detectedAt = nowMs
		p.detectedBearing = bearing
		p.detectedDistance = p.distance
	}

	p.visibility = p.visibilityAt(nowMs)
	p.lastSweep = sweep
	p.lastBearing = bearing
	return crossed
}

func (p *Point) visibilityAt(nowMs int64) float64 {
	switch {
	case p.lifetime == LifetimeInfinite:
		return 1
	case !p.detected:
		return 0
	case p.lifetime == 0:
		return 0
	}
	v := 1 - float64(nowMs-p.detectedAt)/float64(p.lifetime)
	return math.Min(math.Max(v, 0), 1)
}
