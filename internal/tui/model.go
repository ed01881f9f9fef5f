// Package tui renders the board as an interactive Bubble Tea program. Cards
// are dragged with the keyboard: pick one up, move the cursor to the drop
// point and release it.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aventra/internal/board"
	"aventra/internal/models"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeConfirmDelete
)

const minColumnWidth = 18

// Model is the terminal board.
type Model struct {
	ctx    context.Context
	board  *board.Reconciler
	drag   *board.Drag
	keys   keyMap
	help   help.Model
	input  textinput.Model
	styles Styles

	columns []models.Column
	mode    mode
	col     int
	row     int

	loading       bool
	pendingDelete int64
	status        string
	statusErr     bool

	width  int
	height int
}

func New(ctx context.Context, b *board.Reconciler) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 200

	return Model{
		ctx:     ctx,
		board:   b,
		drag:    board.NewDrag(b),
		keys:    defaultKeys(),
		help:    help.New(),
		input:   ti,
		styles:  DefaultStyles(),
		columns: models.Columns(),
		loading: true,
		status:  "Loading board...",
	}
}

// Run shows the board until the user quits. The board is unmounted on exit
// so late completions are dropped.
func Run(ctx context.Context, b *board.Reconciler) error {
	defer b.Unmount()
	p := tea.NewProgram(New(ctx, b), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return loadCmd(m.ctx, m.board, true)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setError("load board", msg.err)
		} else {
			m.setStatus(fmt.Sprintf("%d tasks", m.board.Projection().Count()))
		}
		m.clampCursor()
		return m, nil

	case droppedMsg:
		m.applyDrop(msg)
		return m, nil

	case createdMsg:
		if msg.err != nil {
			m.setError("add task", msg.err)
		} else {
			m.setStatus(fmt.Sprintf("added #%d", msg.task.ID))
		}
		m.clampCursor()
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.setError("delete task", msg.err)
		} else {
			m.setStatus(fmt.Sprintf("deleted #%d", msg.id))
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.Right):
		if m.col < len(m.columns)-1 {
			m.col++
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(msg, m.keys.Down):
		if m.row < len(m.currentTasks())-1 {
			m.row++
		}
	case key.Matches(msg, m.keys.Pick):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.drag.Begin(task.ID); err != nil {
			m.setError("pick up", err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("dragging #%d", task.ID))
	case key.Matches(msg, m.keys.Drop):
		if m.drag.State() != board.DragDragging {
			return m, nil
		}
		return m, dropCmd(m.ctx, m.drag, m.dropTarget())
	case key.Matches(msg, m.keys.Cancel):
		if m.drag.State() == board.DragDragging {
			m.drag.Cancel()
			m.setStatus("drag cancelled")
		}
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Delete):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.pendingDelete = task.ID
		m.setStatus(fmt.Sprintf("Delete task %q? (y/n)", task.Title))
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		m.setStatus("Reloading...")
		return m, loadCmd(m.ctx, m.board, false)
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		title := strings.TrimSpace(m.input.Value())
		m.mode = modeBrowse
		m.input.Blur()
		if title == "" {
			m.setError("add task", &board.ValidationError{Field: "title", Message: "title is required"})
			return m, nil
		}
		m.setStatus("Adding...")
		return m, createCmd(m.ctx, m.board, title)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.pendingDelete
	m.mode = modeBrowse
	m.pendingDelete = 0

	switch strings.ToLower(msg.String()) {
	case "y":
		m.setStatus(fmt.Sprintf("deleting #%d...", id))
		return m, deleteCmd(m.ctx, m.board, id)
	default:
		m.setStatus("delete cancelled")
		return m, nil
	}
}

func (m *Model) applyDrop(msg droppedMsg) {
	switch {
	case msg.err != nil:
		m.setError("move task", msg.err)
	case msg.result.Outcome == board.DropMoved:
		m.setStatus(fmt.Sprintf("moved #%d to %s", msg.result.TaskID, msg.result.Column.Title()))
		m.focusTask(msg.result.TaskID)
	case msg.result.Outcome == board.DropNoop:
		m.setStatus(fmt.Sprintf("#%d stays in %s", msg.result.TaskID, msg.result.Column.Title()))
	default:
		m.setStatus("nothing to drop onto")
	}
	m.clampCursor()
}

// dropTarget is the card under the cursor, or the column when it is empty.
func (m Model) dropTarget() board.DropTarget {
	if task, ok := m.selected(); ok {
		return board.TaskTarget(task.ID)
	}
	return board.ColumnTarget(string(m.columns[m.col]))
}

func (m Model) currentTasks() []models.Task {
	return m.board.Projection()[m.columns[m.col]]
}

func (m Model) selected() (models.Task, bool) {
	tasks := m.currentTasks()
	if m.row < 0 || m.row >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[m.row], true
}

func (m *Model) focusTask(id int64) {
	projection := m.board.Projection()
	for ci, col := range m.columns {
		for ri, task := range projection[col] {
			if task.ID == id {
				m.col, m.row = ci, ri
				return
			}
		}
	}
}

func (m *Model) clampCursor() {
	n := len(m.currentTasks())
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(action string, err error) {
	m.status = fmt.Sprintf("%s failed: %v", action, err)
	m.statusErr = true
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(fmt.Sprintf("Aventra board · user %d", m.board.UserID())))
	b.WriteString("\n")

	projection := m.board.Projection()
	snap := m.board.Snapshot()
	dragged, dragging := m.drag.Active()

	width := minColumnWidth
	if m.width > 0 {
		if w := m.width/len(m.columns) - 4; w > width {
			width = w
		}
	}

	rendered := make([]string, 0, len(m.columns))
	for ci, col := range m.columns {
		tasks := projection[col]
		lines := []string{m.styles.ColumnTitle.Render(fmt.Sprintf("%s (%d)", col.Title(), len(tasks)))}
		if len(tasks) == 0 {
			lines = append(lines, m.styles.Empty.Render("empty"))
		}
		for ri, task := range tasks {
			line := cardLine(task, snap.Projects, width)
			style := m.styles.Card
			if dragging && task.ID == dragged {
				style = m.styles.Dragged
				line = "» " + line
			}
			if ci == m.col && ri == m.row {
				style = style.Inherit(m.styles.Selected)
			}
			lines = append(lines, style.Render(line))
		}

		box := m.styles.Column
		if ci == m.col {
			box = m.styles.ActiveColumn
		}
		rendered = append(rendered, box.Width(width).Render(strings.Join(lines, "\n")))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")

	if m.mode == modeAdd {
		b.WriteString("New task: " + m.input.View() + "\n")
	}
	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func cardLine(task models.Task, projects []models.Project, width int) string {
	line := fmt.Sprintf("#%d %s", task.ID, task.Title)
	if label := models.ProjectLabel(projects, task.ProjectID); label != "" {
		line += " [" + label + "]"
	}
	if len([]rune(line)) > width {
		runes := []rune(line)
		line = string(runes[:width-1]) + "…"
	}
	return line
}
