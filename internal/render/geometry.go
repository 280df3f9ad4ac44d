package render

import (
	"math"

	"sonar.klederson.com/internal/angle"
	"sonar.klederson.com/internal/config"
)

// CellDistance computes the distance from a cell to the sonar center,
// accounting for terminal aspect ratio.
func CellDistance(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	return math.Sqrt(dx*dx + dy*dy)
}

// CellAngle computes the angle from center to a cell.
// Returns degrees in [0, 360), where 0=north, increasing clockwise.
func CellAngle(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	deg := math.Atan2(dx, -dy) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// CellAt projects a screen angle and radius onto the cell grid.
func CellAt(centerX, centerY int, radius float64, deg int) (col, row int) {
	x, y := angle.PointOnCircle(0, 0, radius, deg)
	return centerX + int(math.Round(x)), centerY + int(math.Round(y*config.AspectRatio))
}

// RingChar returns the character tangent to a ring at the given angle.
func RingChar(deg float64) rune {
	sector := int(math.Round(normalize(deg)/45)) % 8
	switch sector {
	case 0, 4: // N, S
		return '-'
	case 1, 5: // NE, SW
		return '\\'
	case 2, 6: // E, W
		return '|'
	default: // SE, NW
		return '/'
	}
}

// TrailIntensity returns the glow [0, 1] of a cell behind the beam. The
// trail spans trailDeg degrees and fades linearly.
func TrailIntensity(beamDeg, cellDeg, trailDeg float64) float64 {
	diff := normalize(beamDeg - cellDeg)
	if trailDeg <= 0 || diff > trailDeg {
		return 0
	}
	return 1.0 - diff/trailDeg
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
