package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
	"github.com/plugdata-labs/plug-cli/internal/core/ports/driving"
)

// resultMsg carries the outcome of one executed statement.
type resultMsg struct {
	sql   string
	table *domain.Table
	err   error
}

// Shell is the bubbletea model for the interactive SQL shell.
type Shell struct {
	queries driving.QueryService
	input   textinput.Model
	styles  *Styles

	history []string
	histPos int
	output  string
	running bool
}

// NewShell creates the shell model on top of the query service.
func NewShell(queries driving.QueryService) *Shell {
	ti := textinput.New()
	ti.Placeholder = "SELECT TOP 10 * FROM Contratos_VIEW"
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 2048
	ti.Width = 80

	return &Shell{
		queries: queries,
		input:   ti,
		styles:  DefaultStyles(),
	}
}

// Init initialises the shell.
func (s *Shell) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return s, tea.Quit
		case tea.KeyEnter:
			if s.running {
				return s, nil
			}
			statement := strings.TrimSpace(s.input.Value())
			if statement == "" {
				return s, nil
			}
			s.history = append(s.history, statement)
			s.histPos = len(s.history)
			s.input.SetValue("")
			s.running = true
			return s, s.execute(statement)
		case tea.KeyUp:
			if s.histPos > 0 {
				s.histPos--
				s.input.SetValue(s.history[s.histPos])
				s.input.CursorEnd()
			}
			return s, nil
		case tea.KeyDown:
			if s.histPos < len(s.history)-1 {
				s.histPos++
				s.input.SetValue(s.history[s.histPos])
				s.input.CursorEnd()
			} else {
				s.histPos = len(s.history)
				s.input.SetValue("")
			}
			return s, nil
		}

	case resultMsg:
		s.running = false
		s.output = s.renderResult(msg)
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the shell.
func (s *Shell) View() string {
	var b strings.Builder

	b.WriteString(s.styles.Prompt.Render("plug> "))
	b.WriteString(s.input.View())
	b.WriteString("\n")

	if s.running {
		b.WriteString(s.styles.Muted.Render("running..."))
		b.WriteString("\n")
	} else if s.output != "" {
		b.WriteString(s.output)
		b.WriteString("\n")
	}

	b.WriteString(s.styles.Muted.Render("enter: execute • up/down: history • esc: quit"))
	return b.String()
}

// execute runs one statement off the update loop.
func (s *Shell) execute(statement string) tea.Cmd {
	return func() tea.Msg {
		table, err := s.queries.Execute(context.Background(), statement, nil)
		return resultMsg{sql: statement, table: table, err: err}
	}
}

// renderResult formats one result for display.
func (s *Shell) renderResult(msg resultMsg) string {
	if msg.err != nil {
		return s.styles.Error.Render(fmt.Sprintf("error: %v", msg.err))
	}
	if msg.table.Empty() {
		return s.styles.Muted.Render("no rows returned")
	}

	var b strings.Builder
	b.WriteString(renderTable(s.styles, msg.table))
	b.WriteString("\n")
	b.WriteString(s.styles.Muted.Render(fmt.Sprintf("%d row(s)", msg.table.NumRows())))
	return b.String()
}

// renderTable renders the table with padded columns and a styled header.
func renderTable(styles *Styles, table *domain.Table) string {
	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = len(col)
	}

	cells := make([][]string, len(table.Rows))
	for r, row := range table.Rows {
		cells[r] = make([]string, len(table.Columns))
		for c := range table.Columns {
			var value any
			if c < len(row) {
				value = row[c]
			}
			text := domain.CellString(value)
			cells[r][c] = text
			if len(text) > widths[c] {
				widths[c] = len(text)
			}
		}
	}

	var b strings.Builder
	for c, col := range table.Columns {
		if c > 0 {
			b.WriteString("  ")
		}
		b.WriteString(styles.Header.Render(padCell(col, widths[c])))
	}
	for _, row := range cells {
		b.WriteString("\n")
		for c, text := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			b.WriteString(padCell(text, widths[c]))
		}
	}
	return b.String()
}

func padCell(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
