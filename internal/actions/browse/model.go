package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manubot/manubot/internal/dispatchers"
	"github.com/manubot/manubot/internal/ui/splitpanel"
	"github.com/manubot/manubot/internal/ui/style"
)

type item struct {
	title      string
	isCategory bool
	spec       dispatchers.SubcommandSpec
}

func buildItems(reg *dispatchers.Registry) []item {
	grouped := make(map[dispatchers.CommandCategory][]dispatchers.SubcommandSpec)
	for _, spec := range reg.All() {
		grouped[spec.Category] = append(grouped[spec.Category], spec)
	}

	var items []item
	for _, cat := range dispatchers.CategoryOrder() {
		specs := grouped[cat]
		if len(specs) == 0 {
			continue
		}
		items = append(items, item{title: strings.ToUpper(cat.String()), isCategory: true})
		for _, spec := range specs {
			items = append(items, item{title: spec.Name, spec: spec})
		}
	}
	return items
}

func countSelectable(items []item) int {
	n := 0
	for _, it := range items {
		if !it.isCategory {
			n++
		}
	}
	return n
}

type model struct {
	items         []item
	cursor        int
	contentScroll int
	width         int
	height        int
	keys          keyMap
	colors        style.ColorConfig
	quitting      bool
}

func newModel(items []item, colors style.ColorConfig) model {
	m := model{
		items:  items,
		keys:   defaultKeyMap(),
		colors: colors,
	}
	m.jumpToFirst()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.Top):
			m.jumpToFirst()
		case key.Matches(msg, m.keys.Bottom):
			m.jumpToLast()
		case key.Matches(msg, m.keys.PageUp):
			m.contentScroll = max(0, m.contentScroll-10)
		case key.Matches(msg, m.keys.PageDown):
			m.contentScroll += 10
		}
	}
	return m, nil
}

// moveCursor steps over category headers and wraps at both ends.
func (m *model) moveCursor(delta int) {
	if countSelectable(m.items) == 0 {
		return
	}
	next := m.cursor
	for {
		next = (next + delta + len(m.items)) % len(m.items)
		if !m.items[next].isCategory {
			break
		}
	}
	m.cursor = next
	m.contentScroll = 0
}

func (m *model) jumpToFirst() {
	for i, it := range m.items {
		if !it.isCategory {
			m.cursor = i
			m.contentScroll = 0
			return
		}
	}
}

func (m *model) jumpToLast() {
	for i := len(m.items) - 1; i >= 0; i-- {
		if !m.items[i].isCategory {
			m.cursor = i
			m.contentScroll = 0
			return
		}
	}
}

func (m model) selected() (dispatchers.SubcommandSpec, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) || m.items[m.cursor].isCategory {
		return dispatchers.SubcommandSpec{}, false
	}
	return m.items[m.cursor].spec, true
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	width, height := m.width, m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	mainHeight := height - 2
	layout := splitpanel.NewLayout(width, panelConfig, lipgloss.Color(m.colors.Info), lipgloss.Color(m.colors.Muted))

	main := layout.Render(m.sidebarPanel(mainHeight), m.contentPanel(mainHeight), mainHeight)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderFooter(width))
}

var panelConfig = splitpanel.Config{
	SidebarWidthPercent: 0.25,
	SidebarMinWidth:     20,
	SidebarMaxWidth:     30,
}

func (m model) sidebarPanel(height int) splitpanel.Panel {
	muted := lipgloss.Color(m.colors.Muted)
	info := lipgloss.Color(m.colors.Info)

	lines := make([]string, 0, len(m.items))
	for i, it := range m.items {
		switch {
		case it.isCategory:
			lines = append(lines, lipgloss.NewStyle().Foreground(muted).Bold(true).Render(it.title))
		case i == m.cursor:
			lines = append(lines, "▸ "+lipgloss.NewStyle().Bold(true).Foreground(info).Render(it.title))
		default:
			lines = append(lines, "  "+it.title)
		}
	}

	visible := splitpanel.VisibleHeight(height)
	offset := max(0, m.cursor-visible+1)
	return splitpanel.Panel{Lines: lines[offset:], ScrollPos: offset, TotalItems: len(lines)}
}

func (m model) contentPanel(height int) splitpanel.Panel {
	spec, ok := m.selected()
	if !ok {
		return splitpanel.Panel{}
	}

	lines := strings.Split(strings.TrimRight(dispatchers.SubcommandHelp(spec), "\n"), "\n")
	scroll := min(m.contentScroll, max(0, len(lines)-splitpanel.VisibleHeight(height)))
	return splitpanel.Panel{Lines: lines[scroll:], ScrollPos: scroll, TotalItems: len(lines)}
}

func (m model) renderFooter(width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Info))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Muted))

	var parts []string
	for _, b := range m.keys.footer() {
		h := b.Help()
		parts = append(parts, keyStyle.Render(h.Key)+" "+labelStyle.Render(h.Desc))
	}

	return lipgloss.NewStyle().
		Width(width).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("238")).
		Render(fmt.Sprintf(" %s", strings.Join(parts, "  ·  ")))
}
