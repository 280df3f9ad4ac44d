package ui

import (
	"fmt"
	"time"

	"sonar.klederson.com/internal/angle"
	"sonar.klederson.com/internal/sonar"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, f sonar.Frame, period time.Duration) string {
	status := StyleStatusStopped.Render("[STOPPED]")
	if f.Running {
		status = StyleStatusRunning.Render("[RUNNING]")
	}

	visible := 0
	for _, p := range f.Points {
		if p.IsVisible() {
			visible++
		}
	}

	info := fmt.Sprintf(" Heading: %d° %s  Target: %d°  Sweep: %d°  Loop: %s  Points: %d/%d",
		f.Heading, angle.Direction(-f.Heading), f.Desired, f.Sweep,
		period, visible, len(f.Points))

	content := status + StyleMenuLabel.Render(info)
	return StyleStatusBar.Width(width).Render(padTo(width-2, content, ""))
}
