// Package picker is a fuzzy-filtering list chooser for the terminal. The CLI
// uses it to pick a widget and then an action without typing selectors.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/widget-remote/internal/logging/events"
	"github.com/atomicstack/widget-remote/internal/theme"
)

const (
	defaultHeight = 12
	// header, filter and footer rows
	chromeRows = 3
)

// Model implements tea.Model.
type Model struct {
	title   string
	all     []Entry
	visible []Entry
	input   textinput.Model
	styles  *theme.Styles

	cursor int
	offset int
	width  int
	height int

	chosen    *Entry
	cancelled bool
}

func New(title string, entries []Entry, styles *theme.Styles) *Model {
	if styles == nil {
		styles = theme.Default()
	}
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "type to filter"
	ti.PromptStyle = *styles.FilterPrompt
	ti.PlaceholderStyle = *styles.FilterPlaceholder
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return &Model{
		title:   title,
		all:     cloneEntries(entries),
		visible: cloneEntries(entries),
		input:   ti,
		styles:  styles,
		height:  defaultHeight,
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Height > chromeRows {
			m.height = msg.Height
		}
		m.ensureVisible()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, keys.Choose):
			if m.cursor >= 0 && m.cursor < len(m.visible) {
				entry := m.visible[m.cursor]
				m.chosen = &entry
				events.Picker.Choose(entry.text(), entry.Detail)
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, keys.Up):
			m.moveBy(-1)
			return m, nil
		case key.Matches(msg, keys.Down):
			m.moveBy(1)
			return m, nil
		case key.Matches(msg, keys.PageUp):
			m.moveBy(-m.rows())
			return m, nil
		case key.Matches(msg, keys.PageDown):
			m.moveBy(m.rows())
			return m, nil
		case key.Matches(msg, keys.Home):
			m.moveBy(-len(m.visible))
			return m, nil
		case key.Matches(msg, keys.End):
			m.moveBy(len(m.visible))
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if query := m.input.Value(); query != before {
		m.applyFilter(query)
	}
	return m, cmd
}

func (m *Model) applyFilter(query string) {
	m.visible = FilterEntries(m.all, query)
	m.cursor = BestMatchIndex(m.visible, query)
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.offset = 0
	m.ensureVisible()
	events.Picker.Filter(query, len(m.visible))
}

func (m *Model) rows() int {
	rows := m.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) moveBy(delta int) {
	if len(m.visible) == 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	m.ensureVisible()
}

// ensureVisible adjusts the viewport offset so the cursor stays on screen.
func (m *Model) ensureVisible() {
	rows := m.rows()
	maxOffset := len(m.visible) - rows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	end := m.offset + m.rows()
	if end > len(m.visible) {
		end = len(m.visible)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.line(m.visible[i], i == m.cursor))
		b.WriteString("\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(m.styles.Info.Render("no matches"))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Footer.Render(fmt.Sprintf("%d/%d  enter:choose  esc:cancel", len(m.visible), len(m.all))))
	return b.String()
}

func (m *Model) line(e Entry, selected bool) string {
	text := e.text()
	if e.Detail != "" {
		text += "  " + e.Detail
	}
	if m.width > 2 {
		text = truncate.StringWithTail(text, uint(m.width-2), "…")
	}
	if selected {
		return m.styles.SelectedItemIndicator.Render("▌ ") + m.styles.SelectedItem.Render(text)
	}
	return m.styles.ItemIndicator.Render("  ") + m.styles.Item.Render(text)
}

// Chosen returns the entry picked with enter.
func (m *Model) Chosen() (Entry, bool) {
	if m.chosen == nil {
		return Entry{}, false
	}
	return *m.chosen, true
}

func (m *Model) Cancelled() bool { return m.cancelled }

// Visible returns the entries currently passing the filter.
func (m *Model) Visible() []Entry { return cloneEntries(m.visible) }

// Cursor returns the index of the highlighted visible entry.
func (m *Model) Cursor() int { return m.cursor }
