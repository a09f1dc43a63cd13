package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// tuiModel is a grid of rows, one focused field at a time.
type tuiModel struct {
	app *App
	row int
	col int
	err error
}

func newTUIModel(app *App) tuiModel {
	return tuiModel{app: app}
}

func RunTUI(app *App) error {
	if _, err := tea.NewProgram(newTUIModel(app)).Run(); err != nil {
		return fmt.Errorf("error running tui: %w", err)
	}
	return nil
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.err = nil
	rows := len(m.app.Rows())

	switch s := key.String(); s {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up":
		if m.row > 0 {
			m.row--
		}
	case "down":
		if m.row < rows-1 {
			m.row++
		}
	case "left", "shift+tab":
		if m.col > 0 {
			m.col--
		} else if m.row > 0 {
			m.row--
			m.col = len(Fields) - 1
		}
	case "right", "tab":
		if m.col < len(Fields)-1 {
			m.col++
		} else if m.row < rows-1 {
			m.row++
			m.col = 0
		}

	case "a":
		m.err = m.app.AddRow()
		m.row = len(m.app.Rows()) - 1
		m.col = 0
	case "x":
		if rows > 0 {
			m.err = m.app.RemoveRow(m.row)
			if m.row >= rows-1 && m.row > 0 {
				m.row--
			}
		}
	case "c":
		m.err = m.app.ClearAll()
		m.row, m.col = 0, 0
	case "enter":
		m.app.Calculate()

	case "backspace":
		if rows > 0 {
			v := m.focusedValue()
			if v != "" {
				v = v[:len(v)-1]
			}
			_, m.err = m.app.EditField(m.row, Fields[m.col], v)
		}

	default:
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' && rows > 0 {
			_, m.err = m.app.EditField(m.row, Fields[m.col], m.focusedValue()+s)
		}
	}

	return m, nil
}

func (m tuiModel) focusedValue() string {
	rows := m.app.Rows()
	if m.row >= len(rows) {
		return ""
	}
	return rows[m.row].Get(Fields[m.col])
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("timesum"))
	b.WriteString("\n\n")

	separators := []string{" : ", " : ", " . ", ""}
	for i, r := range m.app.Rows() {
		fmt.Fprintf(&b, "%3d  ", i+1)
		for j, f := range Fields {
			cell := r.Get(f)
			style := lipgloss.NewStyle()
			if cell == "" {
				cell = f.Spec().Placeholder
				style = placeholderStyle
			}
			if i == m.row && j == m.col {
				style = focusedStyle
			}
			b.WriteString(style.Render(fmt.Sprintf("%3s", cell)))
			b.WriteString(separators[j])
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nTotal: %s\n", totalStyle.Render(m.app.Total()))
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString(helpStyle.Render("\narrows/tab move • 0-9 edit • a add • x remove • enter calculate • c clear • q quit"))
	b.WriteString("\n")

	return b.String()
}
