package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/essaihub/dossier/internal/domain"
)

// pickerModel is a searchable single-select list of templates. The
// filter is recomputed on every keystroke against the full set; the
// underlying template list is never mutated.
type pickerModel struct {
	templates []domain.Template
	filtered  []domain.Template

	searchInput textinput.Model
	cursor      int
	offset      int
	height      int

	selected *domain.Template
	quitting bool
}

func newPickerModel(templates []domain.Template) pickerModel {
	si := textinput.New()
	si.Placeholder = "filter templates..."
	si.CharLimit = 100
	si.Focus()

	m := pickerModel{
		templates:   templates,
		searchInput: si,
		height:      20,
	}
	m.applyFilter()
	return m
}

func (m *pickerModel) applyFilter() {
	m.filtered = domain.FilterTemplates(m.templates, m.searchInput.Value())

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	m.clampOffset()
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "up":
			if m.cursor > 0 {
				m.cursor--
				m.clampOffset()
			}
			return m, nil

		case "down":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				m.clampOffset()
			}
			return m, nil

		case "enter":
			if len(m.filtered) > 0 {
				t := m.filtered[m.cursor]
				m.selected = &t
			}
			m.quitting = true
			return m, tea.Quit
		}

		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	return m, nil
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Documents PVEA standards"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d", len(m.filtered), len(m.templates))))
	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render("Filter: ") + m.searchInput.View() + "\n\n")

	visible := m.visibleRows()
	end := m.offset + visible
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := m.offset; i < end; i++ {
		name := m.filtered[i].DisplayName()
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(name))
		} else {
			b.WriteString(normalStyle.Render(name))
		}
		b.WriteString("\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  no template matches the filter") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("  Enter: select  Esc: cancel"))
	return b.String()
}

func (m pickerModel) visibleRows() int {
	rows := m.height - 6
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *pickerModel) clampOffset() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// PickTemplate runs the interactive picker and returns the chosen
// template. The second return value is false when the user cancelled.
func PickTemplate(templates []domain.Template) (domain.Template, bool, error) {
	p := tea.NewProgram(newPickerModel(templates))

	final, err := p.Run()
	if err != nil {
		return domain.Template{}, false, fmt.Errorf("template picker failed: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok || m.selected == nil {
		return domain.Template{}, false, nil
	}
	return *m.selected, true, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
