package sonar

import "time"

type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.UnixMilli(1_700_000_000_000)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// sweepOnce feeds sweep angles from..to (inclusive) one degree per ms.
func sweepOnce(p *Point, startMs int64, headingOffset, from, to int) (crossings []int64) {
	for s := from; s <= to; s++ {
		now := startMs + int64(s-from)
		if p.Update(now, headingOffset, s) {
			crossings = append(crossings, now)
		}
	}
	return crossings
}
