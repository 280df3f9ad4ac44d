package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sonar.klederson.com/internal/sonar"
)

// ErrInvalidDistance is returned for points with a negative distance.
var ErrInvalidDistance = errors.New("invalid point distance")

// PointsFile is the on-disk layout of a static points file.
type PointsFile struct {
	Points []PointSpec `yaml:"points"`
}

// PointSpec describes one static point. Bearing is in degrees from north,
// distance is 0 (center) to 1 (edge). LifetimeMs -1 never fades.
type PointSpec struct {
	ID         string  `yaml:"id"`
	Label      string  `yaml:"label"`
	Bearing    int     `yaml:"bearing"`
	Distance   float64 `yaml:"distance"`
	LifetimeMs *int64  `yaml:"lifetime_ms"`
	Color      string  `yaml:"color"`
}

// LoadPoints reads a points file. Points without an explicit lifetime get
// defaultLifetimeMs.
func LoadPoints(path string, defaultLifetimeMs int64) ([]*sonar.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePoints(data, defaultLifetimeMs)
}

// ParsePoints decodes the YAML points document in data.
func ParsePoints(data []byte, defaultLifetimeMs int64) ([]*sonar.Point, error) {
	var pf PointsFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse points: %w", err)
	}

	points := make([]*sonar.Point, 0, len(pf.Points))
	for i, ps := range pf.Points {
		p, err := ps.build(defaultLifetimeMs)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		points = append(points, p)
	}
	return points, nil
}

func (ps PointSpec) build(defaultLifetimeMs int64) (*sonar.Point, error) {
	if ps.Distance < 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidDistance, ps.Distance)
	}

	p := sonar.NewPoint(ps.Bearing, ps.Distance)
	if ps.ID != "" {
		p.ID = ps.ID
	}
	p.Label = ps.Label
	p.Color = ps.Color

	lifetime := defaultLifetimeMs
	if ps.LifetimeMs != nil {
		lifetime = *ps.LifetimeMs
	}
	if err := p.SetLifetime(lifetime); err != nil {
		return nil, err
	}
	return p, nil
}
