package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"aventra/internal/api"
	"aventra/internal/board"
	"aventra/internal/models"
)

type statusCall struct {
	id     int64
	status string
}

type memoryStore struct {
	mu        sync.Mutex
	tasks     []models.Task
	nextID    int64
	statuses  []statusCall
	deleted   []int64
	statusErr error
}

func (s *memoryStore) ListTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

func (s *memoryStore) ListProjects(ctx context.Context, userID int64) ([]models.Project, error) {
	return []models.Project{{ID: 1, Title: "Home"}}, nil
}

func (s *memoryStore) CreateTask(ctx context.Context, req api.TaskCreateRequest) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	task := models.Task{ID: s.nextID, Title: req.Title, Status: req.Status, Priority: req.Priority}
	s.tasks = append(s.tasks, task)
	return task, nil
}

func (s *memoryStore) UpdateTask(ctx context.Context, id int64, req api.TaskUpdateRequest) (models.Task, error) {
	return models.Task{}, errors.New("not used")
}

func (s *memoryStore) UpdateTaskStatus(ctx context.Context, id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, statusCall{id: id, status: status})
	if s.statusErr != nil {
		return s.statusErr
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = status
		}
	}
	return nil
}

func (s *memoryStore) DeleteTask(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	return nil
}

func newTestModel(t *testing.T, store *memoryStore) Model {
	t.Helper()
	b := board.New(store, store, board.NewCache(), board.Options{
		UserID:   1,
		Strategy: board.StrategyPatch,
		Notifier: board.NotifierFunc(func(string, error) {}),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	t.Cleanup(b.Unmount)

	m := New(context.Background(), b)
	return send(t, m, m.Init()())
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// press feeds a key and discards any command it returns.
func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	return send(t, m, msg)
}

// submit feeds a key, runs the board command it returns and applies the
// completion message.
func submit(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	return send(t, m, cmd())
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func seeded() *memoryStore {
	return &memoryStore{
		nextID: 10,
		tasks: []models.Task{
			{ID: 1, Title: "Buy milk", Status: "todo"},
			{ID: 2, Title: "Ship it", Status: "Completed"},
			{ID: 3, Title: "Plan", Status: ""},
		},
	}
}

func TestModel_InitialLoad(t *testing.T) {
	m := newTestModel(t, seeded())

	if m.loading {
		t.Fatal("expected loading to finish")
	}
	view := m.View()
	for _, want := range []string{"To Do (2)", "Done (1)", "#1 Buy milk"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestModel_CursorNavigation(t *testing.T) {
	m := newTestModel(t, seeded())

	m = press(t, m, runes("j"))
	if task, _ := m.selected(); task.ID != 3 {
		t.Fatalf("expected task 3 selected, got %d", task.ID)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.col != 1 || m.row != 0 {
		t.Fatalf("expected empty in-progress column, got col=%d row=%d", m.col, m.row)
	}
	m = press(t, m, runes("h"))
	if m.col != 0 {
		t.Fatalf("expected back in todo, got col=%d", m.col)
	}
}

func TestModel_DragOntoEmptyColumn(t *testing.T) {
	store := seeded()
	m := newTestModel(t, store)

	m = press(t, m, runes("m"))
	if m.drag.State() != board.DragDragging {
		t.Fatal("expected dragging after pick up")
	}
	m = press(t, m, runes("l"))
	m = submit(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.drag.State() != board.DragIdle {
		t.Fatal("expected idle after drop")
	}
	if len(store.statuses) != 1 || store.statuses[0] != (statusCall{id: 1, status: "inprogress"}) {
		t.Fatalf("unexpected status requests: %v", store.statuses)
	}
	if ids := m.board.Projection().IDs(models.ColumnInProgress); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected task 1 in progress, got %v", ids)
	}
	if task, _ := m.selected(); task.ID != 1 {
		t.Fatalf("expected cursor to follow the moved task, got %d", task.ID)
	}
}

func TestModel_DropOverTaskInSameColumnSendsNothing(t *testing.T) {
	store := seeded()
	m := newTestModel(t, store)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = press(t, m, runes("j"))
	m = submit(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(store.statuses) != 0 {
		t.Fatalf("expected no requests, got %v", store.statuses)
	}
	if !strings.Contains(m.status, "stays in To Do") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModel_EscCancelsDrag(t *testing.T) {
	store := seeded()
	m := newTestModel(t, store)

	m = press(t, m, runes("m"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = submit(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.drag.State() != board.DragIdle {
		t.Fatal("expected idle")
	}
	if len(store.statuses) != 0 {
		t.Fatalf("expected no requests, got %v", store.statuses)
	}
}

func TestModel_FailedMoveShowsStatus(t *testing.T) {
	store := seeded()
	store.statusErr = errors.New("boom")
	m := newTestModel(t, store)

	m = press(t, m, runes("m"))
	m = press(t, m, runes("l"))
	m = press(t, m, runes("l"))
	m = press(t, m, runes("l"))
	m = submit(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.statusErr || !strings.Contains(m.status, "move task failed") {
		t.Fatalf("expected error status, got %q", m.status)
	}
	if ids := m.board.Projection().IDs(models.ColumnTodo); len(ids) != 2 {
		t.Fatalf("expected todo column unchanged, got %v", ids)
	}
}

func TestModel_AddTask(t *testing.T) {
	store := seeded()
	m := newTestModel(t, store)

	m = press(t, m, runes("a"))
	if m.mode != modeAdd {
		t.Fatal("expected add mode")
	}
	m = press(t, m, runes("Call mom"))
	m = submit(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeBrowse {
		t.Fatal("expected browse mode after submit")
	}
	ids := m.board.Projection().IDs(models.ColumnTodo)
	if len(ids) != 3 || ids[2] != 11 {
		t.Fatalf("expected new task appended to todo, got %v", ids)
	}
}

func TestModel_AddRejectsEmptyTitle(t *testing.T) {
	store := seeded()
	m := newTestModel(t, store)

	m = press(t, m, runes("a"))
	m = submit(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.statusErr {
		t.Fatalf("expected validation error, got %q", m.status)
	}
	if store.nextID != 10 {
		t.Fatal("expected no create request")
	}
}

func TestModel_DeleteConfirmation(t *testing.T) {
	store := seeded()
	m := newTestModel(t, store)

	m = press(t, m, runes("d"))
	if m.mode != modeConfirmDelete {
		t.Fatal("expected confirm mode")
	}
	m = press(t, m, runes("n"))
	if len(store.deleted) != 0 {
		t.Fatalf("expected no delete, got %v", store.deleted)
	}

	m = press(t, m, runes("d"))
	m = submit(t, m, runes("y"))
	if len(store.deleted) != 1 || store.deleted[0] != 1 {
		t.Fatalf("expected task 1 deleted, got %v", store.deleted)
	}
	if _, ok := m.board.Cache().Find(1); ok {
		t.Fatal("expected task removed from board")
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, seeded())
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected QuitMsg")
	}
}
