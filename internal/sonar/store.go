package sonar

import (
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"
)

// ErrPointNotFound is returned when removing an unknown point id.
var ErrPointNotFound = errors.New("point not found")

// PointStore is a thread-safe, insertion-ordered set of tracked points.
type PointStore struct {
	mu       sync.RWMutex
	points   map[string]*Point
	order    []string
	lifetime int64 // for points created by Upsert
}

// NewPointStore creates an empty store.
func NewPointStore() *PointStore {
	return &PointStore{
		points:   make(map[string]*Point),
		lifetime: DefaultLifetime,
	}
}

// SetLiveLifetime sets the lifetime given to points created by Upsert.
func (s *PointStore) SetLiveLifetime(ms int64) error {
	if ms < 0 && ms != LifetimeInfinite {
		return fmt.Errorf("%w: %d", ErrInvalidLifetime, ms)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lifetime = ms
	return nil
}

// Set replaces all points.
func (s *PointStore) Set(points []*Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.points = make(map[string]*Point, len(points))
	s.order = s.order[:0]
	for _, p := range points {
		s.add(p)
	}
}

// Add appends points. A point whose id is already stored replaces it.
func (s *PointStore) Add(points ...*Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range points {
		s.add(p)
	}
}

func (s *PointStore) add(p *Point) {
	if _, ok := s.points[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.points[p.ID] = p
}

// Upsert refreshes a point fed by a live source. New ids are created at the
// given bearing; known ids keep their bearing so they stay put on the dial.
func (s *PointStore) Upsert(id, label string, bearing int, distance float64, nowMs int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.points[id]; ok {
		p.SetDistance(distance)
		if label != "" {
			p.Label = label
		}
		p.seenAt = nowMs
		return
	}

	p := NewPoint(bearing, distance)
	p.ID = id
	p.Label = label
	_ = p.SetLifetime(s.lifetime) // validated by SetLiveLifetime
	p.seenAt = nowMs
	s.add(p)
}

// Remove deletes a point by id.
func (s *PointStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.points[id]; !ok {
		return fmt.Errorf("%w: %s", ErrPointNotFound, id)
	}
	delete(s.points, id)
	s.order = lo.Without(s.order, id)
	return nil
}

// Evict removes live points not refreshed within timeoutMs. Static points
// are never evicted. Returns the removed ids.
func (s *PointStore) Evict(nowMs, timeoutMs int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	stale := lo.Filter(s.order, func(id string, _ int) bool {
		p := s.points[id]
		return p.seenAt > 0 && nowMs-p.seenAt > timeoutMs
	})
	for _, id := range stale {
		delete(s.points, id)
	}
	s.order = lo.Without(s.order, stale...)
	return stale
}

// Clear removes every point.
func (s *PointStore) Clear() {
	s.Set(nil)
}

// Len returns the number of stored points.
func (s *PointStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Update runs fn on every point in insertion order under the write lock.
func (s *PointStore) Update(fn func(*Point)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		fn(s.points[id])
	}
}

// Snapshot returns copies of all points in insertion order.
func (s *PointStore) Snapshot() []Point {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.order, func(id string, _ int) Point {
		return *s.points[id]
	})
}

// Visible returns copies of the points that should currently be drawn.
func (s *PointStore) Visible() []Point {
	return lo.Filter(s.Snapshot(), func(p Point, _ int) bool {
		return p.IsVisible()
	})
}
