package ui

import (
	"fmt"
	"strings"

	"sonar.klederson.com/internal/angle"
	"sonar.klederson.com/internal/sonar"
)

const linesPerPoint = 3 // 2 content + 1 blank

// RenderPointList renders the scrollable list of tracked points with a cursor.
func RenderPointList(points []sonar.Point, width, height, cursorIndex int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	title := StylePanelTitle.Render(fmt.Sprintf("POINTS [%d]", len(points)))
	separator := StyleSeparator.Render(strings.Repeat("-", innerW))
	headerLines := []string{title, separator}

	innerH := height - 2
	if innerH < len(headerLines)+1 {
		innerH = len(headerLines) + 1
	}
	space := innerH - len(headerLines)

	var lines []string
	if len(points) == 0 {
		lines = append(lines, "", StyleHelp.Render(" No points..."), StyleHelp.Render(" Waiting for input"))
	} else {
		maxVisible := max(space/linesPerPoint, 1)
		viewStart := 0
		if cursorIndex >= maxVisible {
			viewStart = cursorIndex - maxVisible + 1
		}
		for i := viewStart; i < len(points) && len(lines) < space; i++ {
			lines = append(lines, renderPointEntry(points[i], innerW, i == cursorIndex)...)
		}
	}

	if len(lines) > space {
		lines = lines[:space]
	}
	for len(lines) < space {
		lines = append(lines, "")
	}

	all := append(headerLines, lines...)
	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(all, "\n"))

	// lipgloss Height() only sets a minimum; clamp to exactly height lines.
	out := strings.Split(rendered, "\n")
	if len(out) > height {
		out = out[:height]
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func renderPointEntry(p sonar.Point, maxW int, isCursor bool) []string {
	cursor := "  "
	if isCursor {
		cursor = ">>"
	}
	marker := "o"
	if p.IsVisible() {
		marker = "@"
	}

	name := p.Label
	if name == "" {
		name = p.ID
	}
	nameMax := max(maxW-8, 4)
	if len(name) > nameMax {
		name = name[:nameMax]
	}

	raw1 := truncRaw(fmt.Sprintf("%s %s %s", cursor, marker, name), maxW)
	raw2 := truncRaw(fmt.Sprintf("     %4d° %-2s  r%.2f  %s",
		p.Bearing(), angle.Direction(p.Bearing()), p.Distance(), VisibilityBar(p.Visibility(), 5)), maxW)

	switch {
	case isCursor:
		return []string{StyleCursorRow.Render(raw1), StyleCursorRow.Render(raw2), ""}
	case !p.IsVisible():
		return []string{StylePointHidden.Render(raw1), StylePointHidden.Render(raw2), ""}
	}
	return []string{StylePointLabel.Render(raw1), StylePointInfo.Render(raw2), ""}
}

// VisibilityBar draws v in [0, 1] as a bar of the given width.
func VisibilityBar(v float64, width int) string {
	filled := int(v*float64(width) + 0.5)
	filled = angle.Clamp(filled, 0, width)
	return "[" + strings.Repeat("|", filled) + strings.Repeat("-", width-filled) + "]"
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w])
	}
	return s + strings.Repeat(" ", w-len(r))
}
