package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sonar.klederson.com/internal/angle"
	"sonar.klederson.com/internal/sonar"
)

// RenderDetailPanel renders the point detail overlay that replaces the sonar
// area. The compass arrow shows where the point lies relative to heading.
func RenderDetailPanel(p sonar.Point, nowMs int64, heading, width, height int, headingHistory []float64) string {
	innerW := max(width-4, 20)

	title := StylePanelTitle.Render("POINT DETAIL")
	escHint := StyleHelp.Render("[ESC]")
	titleLine := padTo(innerW, title, escHint)
	sep := StyleSeparator.Render(strings.Repeat("-", innerW))

	lines := []string{titleLine, sep, ""}

	labelSty := lipgloss.NewStyle().Foreground(ColorMidGreen)
	valSty := lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true)

	fields := []struct{ label, value string }{
		{"Label", p.Label},
		{"ID", p.ID},
		{"Bearing", fmt.Sprintf("%d° %s", p.Bearing(), angle.Direction(p.Bearing()))},
		{"Distance", fmt.Sprintf("%.2f", p.Distance())},
		{"Lifetime", formatLifetime(p.Lifetime())},
		{"Last", formatLastSweep(p, nowMs)},
	}
	for _, f := range fields {
		lines = append(lines, labelSty.Render(fmt.Sprintf("  %-10s", f.label))+valSty.Render(f.value))
	}
	lines = append(lines, "")

	barW := max(innerW-24, 10)
	lines = append(lines, labelSty.Render("  Visible  ")+
		lipgloss.NewStyle().Foreground(visibilityColor(p.Visibility())).Render(VisibilityBar(p.Visibility(), barW))+
		valSty.Render(fmt.Sprintf(" %3.0f%%", p.Visibility()*100)))
	lines = append(lines, "")

	if len(headingHistory) > 0 {
		lines = append(lines, labelSty.Render("  Heading History:"))
		spark := renderSparkline(headingHistory, max(innerW-4, 10))
		lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorGreen).Render(spark))
		lines = append(lines, "")
	}

	compassH := max(height-len(lines)-5, 5)
	compassW := min(innerW, compassH*3)
	if compass := RenderCompass(compassW, compassH, p.Bearing()+heading, p.Distance(), p.Visibility()); compass != "" {
		prefix := strings.Repeat(" ", max((innerW-compassW)/2, 0))
		for _, cl := range strings.Split(compass, "\n") {
			lines = append(lines, prefix+cl)
		}
	}

	for len(lines) < height-2 {
		lines = append(lines, "")
	}

	return StylePanelActive.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = min(minV, v)
		maxV = max(maxV, v)
	}
	rng := max(maxV-minV, 1)

	start := max(len(values)-width, 0)

	var sb strings.Builder
	for _, v := range values[start:] {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		sb.WriteByte(chars[angle.Clamp(idx, 0, len(chars)-1)])
	}
	return sb.String()
}

func formatLifetime(ms int64) string {
	switch {
	case ms == sonar.LifetimeInfinite:
		return "infinite"
	case ms < 1000:
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

func formatLastSweep(p sonar.Point, nowMs int64) string {
	if !p.Detected() {
		return "never"
	}
	d := nowMs - p.DetectedAt()
	if d < 1000 {
		return "now"
	}
	if d < 60_000 {
		return fmt.Sprintf("%ds ago", d/1000)
	}
	return fmt.Sprintf("%dm ago", d/60_000)
}
