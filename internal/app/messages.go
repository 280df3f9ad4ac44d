package app

import "time"

// TickMsg triggers a frame update for animation.
type TickMsg time.Time

// EvictMsg triggers removal of stale live points.
type EvictMsg time.Time
