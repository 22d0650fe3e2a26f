package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(12)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	ErrorText = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	cellUsed  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	cellSpare = lipgloss.NewStyle().Foreground(lipgloss.Color("#444466"))

	fillHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	fillMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	fillLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
)

// FillBar shows how full the buffer is. A full buffer means the next
// append reallocates, so high fill is drawn hot.
func FillBar(size, capacity, width int) string {
	ratio := 0.0
	if capacity > 0 {
		ratio = float64(size) / float64(capacity)
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case ratio >= 1:
		return fillHigh.Render(bar)
	case ratio > 0.5:
		return fillMid.Render(bar)
	}
	return fillLow.Render(bar)
}

func Metric(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value)
}
