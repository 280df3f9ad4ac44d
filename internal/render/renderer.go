// Package render draws a sonar frame as styled terminal text.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sonar.klederson.com/internal/angle"
	"sonar.klederson.com/internal/config"
	"sonar.klederson.com/internal/sonar"
)

var (
	colorBright = lipgloss.Color("#00FF41")
	colorMid    = lipgloss.Color("#008F11")
	colorDim    = lipgloss.Color("#004A0A")
	colorLabel  = lipgloss.Color("#33FF66")
	colorNorth  = lipgloss.Color("#FF3300")

	styleCenter = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleRing   = lipgloss.NewStyle().Foreground(colorMid)
	styleDot    = lipgloss.NewStyle().Foreground(colorDim)
	styleLabel  = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	styleNorth  = lipgloss.NewStyle().Foreground(colorNorth).Bold(true)
	styleLegend = lipgloss.NewStyle().Foreground(colorMid)
)

// minLabelSpread is the chord, in cells, needed between neighbouring labels.
const minLabelSpread = 6.0

type overlay struct {
	ch    string
	style lipgloss.Style
}

// Render produces the complete sonar display as a styled string.
func Render(width, height int, f sonar.Frame) string {
	if width < 10 || height < 5 {
		return ""
	}

	centerX := width / 2
	centerY := height / 2
	radius := float64(min(centerX-2, int(float64(centerY-1)/config.AspectRatio)))
	if radius < 3 {
		radius = 3
	}

	ringRadii := make([]float64, config.RingCount)
	for i := range ringRadii {
		ringRadii[i] = radius * float64(i+1) / float64(config.RingCount)
	}

	dial := DialRotation(f)
	beam := float64(angle.ToPositive(f.Sweep + dial))

	overlays := make(map[int]overlay)
	place := func(col, row int, o overlay) {
		if col >= 0 && col < width && row >= 0 && row < height {
			overlays[row*width+col] = o
		}
	}

	for _, lbl := range compassLabels(radius, f.Heading) {
		place(lbl.col+centerX, lbl.row+centerY, lbl.overlay)
	}
	for _, p := range f.Points {
		if !p.IsVisible() {
			continue
		}
		deg, dist := PointPlacement(p, f)
		col, row := CellAt(centerX, centerY, radius*dist, deg)
		place(col, row, pointOverlay(p))
	}

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if o, ok := overlays[row*width+col]; ok {
				sb.WriteString(o.style.Render(o.ch))
				continue
			}
			sb.WriteString(renderCell(col, row, centerX, centerY, radius, ringRadii, beam))
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// DialRotation is the screen rotation applied to world-fixed content. In
// compass mode points keep their world bearing, so they turn with the dial;
// in plain mode the heading is already part of each detected bearing.
func DialRotation(f sonar.Frame) int {
	if f.Mode == sonar.ModeCompass {
		return f.Heading
	}
	return 0
}

// PointPlacement returns the screen angle and distance of a point. Detected
// points stay where the beam last found them; points shown before any
// detection (infinite lifetime) sit at their live bearing.
func PointPlacement(p sonar.Point, f sonar.Frame) (deg int, distance float64) {
	if !p.Detected() {
		return p.Bearing() + f.Heading, p.Distance()
	}
	return p.DetectedBearing() + DialRotation(f), p.DetectedDistance()
}

type label struct {
	col, row int
	overlay
}

// compassLabels places direction letters and degree marks just outside the
// outer ring, turned by the heading. The finest step that leaves room
// between labels is used.
func compassLabels(radius float64, heading int) []label {
	r := radius + 1.5
	step := LabelStep(r)

	var labels []label
	for b := 0; b < 360; b += step {
		text := strconv.Itoa(b)
		if b%45 == 0 {
			text = angle.Direction(b)
		}
		style := styleLabel
		if b == 0 {
			style = styleNorth
		}
		col, row := CellAt(0, 0, r, b+heading)
		for i, ch := range text {
			labels = append(labels, label{
				col:     col + i - len(text)/2,
				row:     row,
				overlay: overlay{ch: string(ch), style: style},
			})
		}
	}
	return labels
}

// LabelStep returns the spacing in degrees between compass labels on a dial
// of the given radius: 15, 30 or 45, or 90 when even 45 is too tight.
func LabelStep(radius float64) int {
	for _, step := range []int{15, 30, 45} {
		if angle.DistanceOnArc(0, radius, step) >= minLabelSpread {
			return step
		}
	}
	return 90
}

func pointOverlay(p sonar.Point) overlay {
	v := p.EasedVisibility()
	ch := "."
	switch {
	case v > 0.66:
		ch = "@"
	case v > 0.33:
		ch = "o"
	}

	color := sweepColor(v)
	if p.Color != "" && v > 0.33 {
		color = lipgloss.Color(p.Color)
	}
	return overlay{ch: ch, style: lipgloss.NewStyle().Foreground(color).Bold(v > 0.66)}
}

func renderCell(col, row, centerX, centerY int, radius float64, ringRadii []float64, beam float64) string {
	dist := CellDistance(col, row, centerX, centerY)
	if dist > radius+0.5 {
		return " "
	}
	if col == centerX && row == centerY {
		return styleCenter.Render("+")
	}

	deg := CellAngle(col, row, centerX, centerY)
	intensity := TrailIntensity(beam, deg, config.SweepTrailDeg)

	for _, ringR := range ringRadii {
		if dist-ringR < 0.8 && ringR-dist < 0.8 {
			return renderSweepChar(string(RingChar(deg)), intensity, styleRing)
		}
	}
	return renderSweepChar(".", intensity, styleDot)
}

func renderSweepChar(ch string, intensity float64, base lipgloss.Style) string {
	if intensity <= 0 {
		return base.Render(ch)
	}
	return lipgloss.NewStyle().Foreground(sweepColor(intensity)).Render(ch)
}

func sweepColor(intensity float64) lipgloss.Color {
	if intensity > 0.8 {
		return "#00FF41"
	}
	if intensity > 0.5 {
		return "#00CC33"
	}
	if intensity > 0.3 {
		return "#00AA22"
	}
	return "#005511"
}

// RenderLegend produces the line under the sonar: heading, mode and axis.
func RenderLegend(width int, f sonar.Frame) string {
	legend := fmt.Sprintf("HDG %4d° %-2s  MODE %s  AXIS %s",
		f.Heading, angle.Direction(-f.Heading), f.Mode, f.Axis)
	legend = styleLegend.Render(legend)

	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}
