package board

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"aventra/internal/api"
	"aventra/internal/models"
)

var errNetwork = errors.New("network unreachable")

type statusCall struct {
	ID     int64
	Status string
}

// fakeStore is an in-memory TaskStore and ProjectStore.
type fakeStore struct {
	mu       sync.Mutex
	tasks    []models.Task
	projects []models.Project
	nextID   int64

	listCalls    int
	statusCalls  []statusCall
	createCalls  []api.TaskCreateRequest
	updateCalls  []api.TaskUpdateRequest
	deleteCalls  []int64
	emptyUpdates bool

	listErr    error
	projectErr error
	statusErr  error
	createErr  error
	updateErr  error
	deleteErr  error

	// statusGate, when set, blocks UpdateTaskStatus until a value arrives.
	statusGate chan struct{}
	// listGate, when set, blocks ListTasks after the snapshot is taken.
	listGate chan struct{}
	listSeen chan struct{}
}

func newFakeStore(tasks ...models.Task) *fakeStore {
	return &fakeStore{
		tasks:    tasks,
		projects: []models.Project{{ID: 1, Title: "Home"}},
		nextID:   100,
	}
}

func (f *fakeStore) ListTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	f.mu.Lock()
	f.listCalls++
	err := f.listErr
	out := make([]models.Task, len(f.tasks))
	copy(out, f.tasks)
	gate, seen := f.listGate, f.listSeen
	f.mu.Unlock()

	if seen != nil {
		seen <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeStore) ListProjects(ctx context.Context, userID int64) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.projectErr != nil {
		return nil, f.projectErr
	}
	out := make([]models.Project, len(f.projects))
	copy(out, f.projects)
	return out, nil
}

func (f *fakeStore) CreateTask(ctx context.Context, req api.TaskCreateRequest) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, req)
	if f.createErr != nil {
		return models.Task{}, f.createErr
	}
	f.nextID++
	task := models.Task{
		ID:        f.nextID,
		Title:     req.Title,
		Priority:  req.Priority,
		Status:    req.Status,
		ProjectID: req.ProjectID,
		UserID:    req.UserID,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

func (f *fakeStore) UpdateTask(ctx context.Context, id int64, req api.TaskUpdateRequest) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls = append(f.updateCalls, req)
	if f.updateErr != nil {
		return models.Task{}, f.updateErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i] = req.ApplyTo(f.tasks[i])
			if f.emptyUpdates {
				return models.Task{}, nil
			}
			return f.tasks[i], nil
		}
	}
	return models.Task{}, &api.APIError{Status: 404, Message: "not found"}
}

func (f *fakeStore) UpdateTaskStatus(ctx context.Context, id int64, status string) error {
	f.mu.Lock()
	f.statusCalls = append(f.statusCalls, statusCall{ID: id, Status: status})
	gate := f.statusGate
	err := f.statusErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Status = status
		}
	}
	return nil
}

func (f *fakeStore) DeleteTask(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) statusRequests() []statusCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]statusCall, len(f.statusCalls))
	copy(out, f.statusCalls)
	return out
}

func (f *fakeStore) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeStore) set(fn func(f *fakeStore)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

// alerts records notifier calls.
type alerts struct {
	mu      sync.Mutex
	actions []string
	errs    []error
}

func (a *alerts) Alert(action string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	a.errs = append(a.errs, err)
}

func (a *alerts) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.actions)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mkTask(id int64, status string) models.Task {
	return models.Task{ID: id, Title: "task", Status: status, Priority: models.PriorityMedium}
}

func newTestBoard(store *fakeStore, strategy Strategy) (*Reconciler, *alerts) {
	notes := &alerts{}
	r := New(store, store, NewCache(), Options{
		UserID:   1,
		Strategy: strategy,
		Notifier: notes,
		Logger:   quietLogger(),
	})
	return r, notes
}
