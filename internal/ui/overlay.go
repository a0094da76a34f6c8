package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/renato0307/maint/internal/theme"
)

// compositeOverlay renders overlay centered on top of a dimmed background
func compositeOverlay(background, overlay string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	overlayLines := strings.Split(overlay, "\n")

	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	for i := range bgLines {
		dimmed := theme.DimmedStyle.Render(ansi.Strip(bgLines[i]))
		if w := lipgloss.Width(dimmed); w < width {
			dimmed += strings.Repeat(" ", width-w)
		}
		bgLines[i] = dimmed
	}

	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, lipgloss.Width(line))
	}

	startX := max((width-overlayWidth)/2, 0)
	startY := max((height-len(overlayLines))/2, 0)
	leftPad := theme.DimmedStyle.Render(strings.Repeat(" ", startX))

	for i, line := range overlayLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}
		rightPadWidth := max(width-startX-lipgloss.Width(line), 0)
		bgLines[y] = leftPad + line + theme.DimmedStyle.Render(strings.Repeat(" ", rightPadWidth))
	}

	return strings.Join(bgLines, "\n")
}
