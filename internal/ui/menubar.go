package ui

import (
	"fmt"

	"sonar.klederson.com/internal/config"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, source string, running bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"SPC", "start/stop"},
		{"M", "ode"},
		{"A/P/R", "xis"},
		{"+/-", "loop"},
		{"ENT", "detail"},
		{"Q", "uit"},
	}

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
	}

	status := StyleStatusStopped.Render("STOPPED")
	if running {
		status = StyleStatusRunning.Render("SWEEPING")
	}

	sourceInfo := StyleMenuLabel.Render(fmt.Sprintf("Source: %s", source))

	left := StyleMenuKey.Render(title) + menu
	right := status + "  " + sourceInfo + " "

	return StyleMenuBar.Width(width).Render(padTo(width-2, left, right))
}
