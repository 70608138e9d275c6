package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vietdv277/stratus/internal/config"
)

// ErrSelectionCancelled is returned when the user leaves a selector without
// picking an entry.
var ErrSelectionCancelled = errors.New("selection cancelled")

// contextItem holds display data for a single context entry.
type contextItem struct {
	name    string
	ctx     *config.Context
	current bool
}

func (it contextItem) profile() string {
	if it.ctx == nil || it.ctx.Profile == "" {
		return "default"
	}
	return it.ctx.Profile
}

func (it contextItem) region() string {
	if it.ctx == nil || it.ctx.Region == "" {
		return "-"
	}
	return it.ctx.Region
}

// ContextModel is the bubbletea model for interactive context selection.
type ContextModel struct {
	items        []contextItem
	filtered     []contextItem
	cursor       int
	offset       int
	search       string
	selected     string
	quitting     bool
	cancelled    bool
	termWidth    int
	contentWidth int
	colWidths    []int // [Name, Profile, Region]
}

func newContextModel(items []contextItem) ContextModel {
	m := ContextModel{
		items:     items,
		filtered:  items,
		termWidth: 80,
	}
	m.calculateWidths()
	return m
}

func (m *ContextModel) calculateWidths() {
	m.contentWidth = min(max(m.termWidth-2, minWidth), maxWidth)

	profW := 10
	regW := 10
	for _, item := range m.items {
		profW = max(profW, runewidth.StringWidth(item.profile()))
		regW = max(regW, runewidth.StringWidth(item.region()))
	}

	// cursor+marker(3) + name + sp(2) + profile + sp(2) + region
	nameW := max(m.contentWidth-(3+2+profW+2+regW), 10)
	m.colWidths = []int{nameW, profW, regW}
}

// Init implements tea.Model.
func (m ContextModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m ContextModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.calculateWidths()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			if len(m.filtered) > 0 {
				m.selected = m.filtered[m.cursor].name
				m.quitting = true
				return m, tea.Quit
			}

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}

		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+listHeight {
					m.offset = m.cursor - listHeight + 1
				}
			}

		case tea.KeyBackspace:
			if len(m.search) > 0 {
				m.search = m.search[:len(m.search)-1]
				m.filter()
			}

		case tea.KeyRunes:
			m.search += string(msg.Runes)
			m.filter()
		}
	}

	return m, nil
}

func (m *ContextModel) filter() {
	if m.search == "" {
		m.filtered = m.items
	} else {
		query := strings.ToLower(m.search)
		m.filtered = nil
		for _, item := range m.items {
			if strings.Contains(strings.ToLower(item.name), query) ||
				strings.Contains(strings.ToLower(item.profile()), query) {
				m.filtered = append(m.filtered, item)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(len(m.filtered)-1, 0)
	}
	m.offset = 0
}

// View implements tea.Model.
func (m ContextModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	w := m.contentWidth

	sb.WriteString(rule(TopLeft, TopRight, w))

	// Search input
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(NameStyle.Render(padRight(" > "+m.search, w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")
	sb.WriteString(blankLine(w))

	// Context list
	visibleEnd := min(m.offset+listHeight, len(m.filtered))
	for i := m.offset; i < visibleEnd; i++ {
		sb.WriteString(m.renderRow(i))
	}
	for i := visibleEnd; i < m.offset+listHeight; i++ {
		sb.WriteString(blankLine(w))
	}
	sb.WriteString(blankLine(w))

	sb.WriteString(rule(LeftT, RightT, w))
	sb.WriteString(m.renderDetails())
	sb.WriteString(rule(BottomLeft, BottomRight, w))
	sb.WriteString(m.renderStatusBar())

	return sb.String()
}

func (m ContextModel) renderRow(idx int) string {
	item := m.filtered[idx]
	w := m.contentWidth

	cursor := " "
	if idx == m.cursor {
		cursor = ">"
	}
	marker := " "
	if item.current {
		marker = "*"
	}

	nameStyle := NameStyle
	if item.current {
		nameStyle = SuccessStyle
	}

	var line strings.Builder
	line.WriteString(" " + cursor + marker)
	line.WriteString(nameStyle.Render(padRight(item.name, m.colWidths[0])))
	line.WriteString("  ")
	line.WriteString(MutedStyle.Render(padRight(item.profile(), m.colWidths[1])))
	line.WriteString("  ")
	line.WriteString(ValueStyle.Render(padRight(item.region(), m.colWidths[2])))

	plainWidth := 3 + m.colWidths[0] + 2 + m.colWidths[1] + 2 + m.colWidths[2]
	if plainWidth < w {
		line.WriteString(strings.Repeat(" ", w-plainWidth))
	}

	return BorderStyle.Render(Vertical) + line.String() + BorderStyle.Render(Vertical) + "\n"
}

func (m ContextModel) renderDetails() string {
	var sb strings.Builder
	w := m.contentWidth

	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(HeaderStyle.Render(padRight(" Context Details", w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(MutedStyle.Render(padRight(" "+strings.Repeat(Horizontal, 20), w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	if len(m.filtered) == 0 {
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString(MutedStyle.Render(padRight(" No contexts found", w)))
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")
		// pad to the height of a filled panel
		for range 3 {
			sb.WriteString(blankLine(w))
		}
		return sb.String()
	}

	item := m.filtered[m.cursor]
	details := []struct {
		label string
		value string
		style lipgloss.Style
	}{
		{"Context:", item.name, NameStyle},
		{"Profile:", item.profile(), MutedStyle},
		{"Region:", item.region(), ValueStyle},
	}

	for _, d := range details {
		value := d.value
		maxValueWidth := w - 1 - detailLabelWidth
		if runewidth.StringWidth(value) > maxValueWidth {
			value = runewidth.Truncate(value, maxValueWidth, "...")
		}

		plainWidth := 1 + detailLabelWidth + runewidth.StringWidth(value)
		line := MutedStyle.Render(" "+padRight(d.label, detailLabelWidth)) + d.style.Render(value)
		if plainWidth < w {
			line += strings.Repeat(" ", w-plainWidth)
		}

		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString(line)
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")
	}
	sb.WriteString(blankLine(w))

	return sb.String()
}

func (m ContextModel) renderStatusBar() string {
	w := m.contentWidth + 2

	countInfo := fmt.Sprintf("  %d/%d contexts", len(m.filtered), len(m.items))
	hints := "[Enter:select] [Esc:quit]"
	padding := w - runewidth.StringWidth(countInfo) - runewidth.StringWidth(hints)

	var sb strings.Builder
	sb.WriteString(countInfo)
	if padding > 0 {
		sb.WriteString(strings.Repeat(" ", padding))
	}
	sb.WriteString(HintStyle.Render(hints))
	sb.WriteString("\n")
	return sb.String()
}

func contextItems(contexts map[string]*config.Context, current string) []contextItem {
	names := config.SortedContextNames(contexts)
	items := make([]contextItem, len(names))
	for i, name := range names {
		items[i] = contextItem{
			name:    name,
			ctx:     contexts[name],
			current: name == current,
		}
	}
	return items
}

// SelectContext runs the interactive context selector TUI and returns the selected context name.
// The current context is pre-highlighted in the list.
func SelectContext(contexts map[string]*config.Context, current string) (string, error) {
	if len(contexts) == 0 {
		return "", fmt.Errorf("no contexts available")
	}

	items := contextItems(contexts, current)
	m := newContextModel(items)
	for i, item := range items {
		if item.current {
			m.cursor = i
			break
		}
	}

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(ContextModel)
	if result.cancelled {
		return "", ErrSelectionCancelled
	}

	return result.selected, nil
}

// PrintContextTable prints the configured contexts, marking the current one.
func PrintContextTable(w io.Writer, contexts map[string]*config.Context, current string) error {
	t := &Table{Headers: []string{"", "Name", "Profile", "Region"}}
	for _, item := range contextItems(contexts, current) {
		marker := ""
		if item.current {
			marker = "*"
		}
		t.Rows = append(t.Rows, []string{marker, item.name, item.profile(), item.region()})
	}
	return t.Render(w)
}
