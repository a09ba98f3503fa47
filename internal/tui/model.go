// Package tui is the interactive terminal board.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/output"
	"taskboard/internal/task"
	"taskboard/internal/view"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	canceledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const helpLine = "a add · space toggle · c cancel · e edit · d delete · r reload · q quit"

// Model is the Bubble Tea model of the board.
type Model struct {
	board  *view.Board
	cursor int
	mode   mode
	input  textinput.Model
	editID string
}

// New creates a model showing b.
func New(b *view.Board) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 500
	return Model{board: b, input: in}
}

// Run starts the interactive program on the terminal and blocks until the
// user quits or ctx is done.
func Run(ctx context.Context, b *view.Board) error {
	p := tea.NewProgram(New(b), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init loads the collection.
func (m Model) Init() tea.Cmd {
	return m.board.Load()
}

// Update handles keys and store results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if key.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(key)
		case modeEdit:
			return m.updateEdit(key)
		}
		return m.updateBrowse(key)
	}

	cmd := m.board.Update(msg)
	var inputCmd tea.Cmd
	if m.mode != modeBrowse {
		m.input, inputCmd = m.input.Update(msg)
	}
	m.clamp()
	return m, tea.Batch(cmd, inputCmd)
}

func (m Model) updateBrowse(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor++
	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "Nueva tarea"
		m.input.SetValue(m.board.Input())
		return m, m.input.Focus()
	case "r":
		return m, m.board.Load()
	}

	it, ok := m.selected()
	if !ok {
		m.clamp()
		return m, nil
	}
	id := it.Task.ID

	var cmd tea.Cmd
	switch key.String() {
	case " ", "x":
		cmd = m.board.Toggle(id)
	case "c":
		cmd = m.board.Cancel(id)
	case "d":
		cmd = m.board.Delete(id)
	case "e", "enter":
		if it.Editing() && !it.Edit.Saving {
			return m.startEdit(id, it.Edit.Input)
		}
		if m.board.Edit(id) {
			cur, _ := m.board.Lookup(id)
			return m.startEdit(id, cur.Edit.Input)
		}
	}
	m.clamp()
	return m, cmd
}

func (m Model) startEdit(id, text string) (tea.Model, tea.Cmd) {
	m.mode = modeEdit
	m.editID = id
	m.input.Placeholder = ""
	m.input.SetValue(text)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) updateAdd(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.board.SetInput(m.input.Value())
		m.leaveInput()
		return m, nil
	case "enter":
		m.board.SetInput(m.input.Value())
		cmd := m.board.Add()
		m.leaveInput()
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m Model) updateEdit(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.board.DiscardEdit(m.editID)
		m.leaveInput()
		return m, nil
	case "enter":
		m.board.SetEditText(m.editID, m.input.Value())
		cmd := m.board.ConfirmEdit(m.editID)
		m.leaveInput()
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	m.board.SetEditText(m.editID, m.input.Value())
	return m, cmd
}

func (m *Model) leaveInput() {
	m.mode = modeBrowse
	m.editID = ""
	m.input.Blur()
	m.input.SetValue("")
}

// rows flattens the lists in display order.
func (m Model) rows() []view.Item {
	var rows []view.Item
	for _, l := range task.Lists {
		rows = append(rows, m.board.Items(l)...)
	}
	return rows
}

func (m Model) selected() (view.Item, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return view.Item{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clamp() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the board.
func (m Model) View() string {
	var sb strings.Builder

	if bn := m.board.Banner(); bn.Visible {
		sb.WriteString(bannerStyle.Render(bn.Text))
		sb.WriteString("\n\n")
	}

	if m.mode == modeAdd {
		sb.WriteString(m.input.View())
		sb.WriteString("\n\n")
	}

	row := 0
	for _, l := range task.Lists {
		items := m.board.Items(l)
		sb.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", output.ListTitle(l), len(items))))
		sb.WriteString("\n")
		for _, it := range items {
			sb.WriteString(m.renderRow(it, row == m.cursor))
			sb.WriteString("\n")
			row++
		}
		sb.WriteString("\n")
	}

	if !m.board.Loaded() && m.board.InFlight() > 0 {
		sb.WriteString(helpStyle.Render("cargando..."))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render(helpLine))
	return sb.String()
}

func (m Model) renderRow(it view.Item, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	label := output.ItemLabel(it)
	if m.mode == modeEdit && it.Task.ID == m.editID {
		label = m.input.View() + " [OK] [Cancelar]"
	}

	line := fmt.Sprintf("%s%s %s", cursor, output.Checkbox(it), label)
	switch {
	case selected:
		return selectedStyle.Render(line)
	case it.Task.Status == task.Canceled:
		return canceledStyle.Render(line)
	case it.Checked:
		return doneStyle.Render(line)
	}
	return line
}
