// Package splitpanel renders a bordered sidebar and content pair with
// scrollbars, sized to the terminal.
package splitpanel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel is one side of the split.
type Panel struct {
	Lines      []string // visible lines, already scrolled
	ScrollPos  int
	TotalItems int // scrollable items; len(Lines) when zero
}

// Config holds the sidebar sizing rules.
type Config struct {
	SidebarWidthPercent float64
	SidebarMinWidth     int
	SidebarMaxWidth     int
}

// Layout holds computed dimensions and renders the split panel.
type Layout struct {
	Width        int
	SidebarWidth int
	ContentWidth int
	FocusSidebar bool
	ActiveColor  lipgloss.Color
	DimColor     lipgloss.Color
}

// NewLayout computes widths for a terminal width.
func NewLayout(width int, cfg Config, active, dim lipgloss.Color) *Layout {
	sidebarWidth := int(float64(width) * cfg.SidebarWidthPercent)
	sidebarWidth = max(sidebarWidth, cfg.SidebarMinWidth)
	sidebarWidth = min(sidebarWidth, cfg.SidebarMaxWidth)

	return &Layout{
		Width:        width,
		SidebarWidth: sidebarWidth,
		ContentWidth: max(width-sidebarWidth, 0),
		FocusSidebar: true,
		ActiveColor:  active,
		DimColor:     dim,
	}
}

// Render joins the sidebar and content panels, each height rows tall.
func (l *Layout) Render(sidebar, content Panel, height int) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		l.buildPanel(sidebar, l.SidebarWidth, height, l.FocusSidebar),
		l.buildPanel(content, l.ContentWidth, height, !l.FocusSidebar),
	)
}

// SidebarContentWidth returns usable width for sidebar lines.
func (l *Layout) SidebarContentWidth() int {
	return max(l.SidebarWidth-panelChrome, 1)
}

// MainContentWidth returns usable width for content lines.
func (l *Layout) MainContentWidth() int {
	return max(l.ContentWidth-panelChrome, 1)
}

// VisibleHeight returns the visible rows inside a panel of height rows.
func VisibleHeight(height int) int {
	return max(height-2, 1)
}

// border(2) + padding(2) + scrollbar(2)
const panelChrome = 6

func (l *Layout) buildPanel(panel Panel, width, height int, focused bool) string {
	contentWidth := max(width-panelChrome, 1)
	visibleHeight := VisibleHeight(height)

	lines := panel.Lines
	if len(lines) > visibleHeight {
		lines = lines[:visibleHeight]
	}

	total := panel.TotalItems
	if total == 0 {
		total = len(panel.Lines)
	}
	scrollbar := BuildScrollbar(visibleHeight, total, panel.ScrollPos, l.ActiveColor, l.DimColor, focused)

	rows := make([]string, visibleHeight)
	for i := range rows {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		if w := lipgloss.Width(line); w > contentWidth {
			line = truncate(line, contentWidth)
		} else {
			line += strings.Repeat(" ", contentWidth-w)
		}
		rows[i] = line + " " + scrollbar[i]
	}

	borderColor := l.DimColor
	if focused {
		borderColor = l.ActiveColor
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}

// truncate shortens s to maxWidth cells, ending in an ellipsis.
func truncate(s string, maxWidth int) string {
	runes := []rune(s)
	for i := len(runes); i > 0; i-- {
		candidate := string(runes[:i])
		if lipgloss.Width(candidate) <= maxWidth-1 {
			return candidate + "…"
		}
	}
	return "…"
}
