package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sonar.klederson.com/internal/angle"
)

// RenderCompass renders a compass with an arrow pointing at deg (0 = up,
// clockwise). The arrow is longer for closer points; distance is the
// normalized sonar distance.
func RenderCompass(width, height, deg int, distance, visibility float64) string {
	if width < 9 || height < 5 {
		return ""
	}

	grid := make([][]byte, height)
	isArrow := make([][]bool, height)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", width))
		isArrow[i] = make([]bool, width)
	}
	set := func(col, row int, ch byte, arrow bool) {
		if col >= 0 && col < width && row >= 0 && row < height {
			grid[row][col] = ch
			isArrow[row][col] = arrow
		}
	}

	fcx := float64(width) / 2.0
	fcy := float64(height) / 2.0
	rx := math.Max(fcx-2.0, 3) // horizontal radius in columns
	ry := math.Max(fcy-2.0, 2) // vertical radius in rows

	for d := 0; d < 360; d += 5 {
		x, y := angle.PointOnCircle(fcx, fcy, 1, d)
		col := int(math.Round(fcx + (x-fcx)*rx))
		row := int(math.Round(fcy + (y-fcy)*ry))
		if col >= 0 && col < width && row >= 0 && row < height && grid[row][col] == ' ' {
			grid[row][col] = ringByte(d)
		}
	}

	cx := int(math.Round(fcx))
	cy := int(math.Round(fcy))
	set(cx, cy-int(math.Round(ry))-1, 'N', false)
	set(cx, cy+int(math.Round(ry))+1, 'S', false)
	set(cx+int(math.Round(rx))+1, cy, 'E', false)
	set(cx-int(math.Round(rx))-1, cy, 'W', false)
	set(cx, cy, '+', false)

	// closer = longer
	const maxFrac, minFrac = 0.85, 0.3
	frac := maxFrac - (maxFrac-minFrac)*math.Min(math.Max(distance, 0), 1)
	steps := max(int(math.Max(rx, ry)*frac), 2)

	dx, dy := angle.PointOnCircle(0, 0, 1, deg)
	tipCol, tipRow := cx, cy
	for s := 1; s <= steps; s++ {
		t := float64(s) / float64(steps) * frac
		tipCol = int(math.Round(fcx + t*rx*dx))
		tipRow = int(math.Round(fcy + t*ry*dy))
		set(tipCol, tipRow, shaftByte(deg), true)
	}
	set(tipCol, tipRow, tipByte(deg), true)

	arrowSty := lipgloss.NewStyle().Foreground(visibilityColor(visibility)).Bold(true)
	ringSty := lipgloss.NewStyle().Foreground(ColorDimGreen)
	markSty := lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true)
	northSty := lipgloss.NewStyle().Foreground(ColorNorth).Bold(true)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ch := grid[row][col]
			switch {
			case ch == 'N':
				sb.WriteString(northSty.Render("N"))
			case ch == 'S' || ch == 'E' || ch == 'W' || ch == '+':
				sb.WriteString(markSty.Render(string(ch)))
			case isArrow[row][col]:
				sb.WriteString(arrowSty.Render(string(ch)))
			case ch != ' ':
				sb.WriteString(ringSty.Render(string(ch)))
			default:
				sb.WriteByte(' ')
			}
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func sector(deg int) int {
	return (angle.ToPositive(deg) + 22) / 45 % 8
}

func ringByte(deg int) byte {
	return "-\\|/-\\|/"[sector(deg)]
}

// shaftByte returns the line character for a given direction.
func shaftByte(deg int) byte {
	return "|/-\\|/-\\"[sector(deg)]
}

// tipByte returns the arrowhead character for a given direction.
func tipByte(deg int) byte {
	return "^/>\\v/<\\"[sector(deg)]
}

// visibilityColor maps point visibility to a green shade (brighter = fresher).
func visibilityColor(v float64) lipgloss.Color {
	switch {
	case v > 0.8:
		return "#00FF41"
	case v > 0.6:
		return "#00CC33"
	case v > 0.4:
		return "#00AA22"
	case v > 0.2:
		return "#008F11"
	}
	return "#005511"
}
