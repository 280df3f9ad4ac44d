package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ComposeLayout joins the sonar panel and point list horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, sonarPanel, pointList, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, sonarPanel, pointList)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}

// RenderSonarPanel wraps sonar content with a styled border.
func RenderSonarPanel(width, height int, sonarContent, legend string) string {
	content := sonarContent + "\n" + legend
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}

// padTo fills the gap between left and right so the line spans width.
func padTo(width int, left, right string) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}
