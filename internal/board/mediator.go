package board

import (
	"context"
	"fmt"
	"strings"

	"aventra/internal/api"
	"aventra/internal/models"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Create validates and submits a new task. New tasks start in the todo
// column unless the request names a status.
func (r *Reconciler) Create(ctx context.Context, req api.TaskCreateRequest) (models.Task, error) {
	if err := normalizeCreate(&req); err != nil {
		r.notifier.Alert("add task", err)
		return models.Task{}, err
	}
	req.UserID = r.userID

	created, err := r.tasks.CreateTask(ctx, req)
	if err != nil {
		err = fmt.Errorf("create task: %w", err)
		r.notifier.Alert("add task", err)
		return models.Task{}, err
	}

	if r.strategy == StrategyPatch && created.ID != 0 {
		r.cache.Upsert(created)
	} else {
		r.reloadAfter(ctx)
	}
	r.logger.Debug("task created", "task_id", created.ID)
	return created, nil
}

// Edit validates and submits a partial update.
func (r *Reconciler) Edit(ctx context.Context, id int64, req api.TaskUpdateRequest) (models.Task, error) {
	if err := normalizeUpdate(&req); err != nil {
		r.notifier.Alert("edit task", err)
		return models.Task{}, err
	}

	release, err := r.lanes.acquire(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	updated, err := r.tasks.UpdateTask(ctx, id, req)
	if err != nil {
		release()
		err = fmt.Errorf("update task %d: %w", id, err)
		r.notifier.Alert("edit task", err)
		return models.Task{}, err
	}
	if updated.ID == 0 {
		base, ok := r.cache.Find(id)
		if !ok {
			base = models.Task{ID: id}
		}
		updated = req.ApplyTo(base)
	}
	if r.strategy == StrategyPatch {
		r.cache.Update(updated)
	}
	release()

	if r.strategy != StrategyPatch {
		r.reloadAfter(ctx)
	}
	r.logger.Debug("task updated", "task_id", id)
	return updated, nil
}

// Delete removes a task after the confirmer approves it.
func (r *Reconciler) Delete(ctx context.Context, id int64, confirm Confirmer) error {
	prompt := fmt.Sprintf("Delete task %d?", id)
	if task, ok := r.cache.Find(id); ok {
		prompt = fmt.Sprintf("Delete task %q?", task.Title)
	}
	if confirm == nil || !confirm.Confirm(prompt) {
		return ErrDeleteDeclined
	}

	release, err := r.lanes.acquire(ctx, id)
	if err != nil {
		return err
	}
	if err := r.tasks.DeleteTask(ctx, id); err != nil {
		release()
		err = fmt.Errorf("delete task %d: %w", id, err)
		r.notifier.Alert("delete task", err)
		return err
	}
	if r.strategy == StrategyPatch {
		r.cache.Remove(id)
	}
	release()

	if r.strategy != StrategyPatch {
		r.reloadAfter(ctx)
	}
	r.logger.Debug("task deleted", "task_id", id)
	return nil
}

func (r *Reconciler) reloadAfter(ctx context.Context) {
	if !r.cache.Mounted() {
		return
	}
	_ = r.reload(ctx, "reload board")
}

func normalizeCreate(req *api.TaskCreateRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	priority, err := models.ParsePriority(string(req.Priority))
	if err != nil {
		return &ValidationError{Field: "priority", Message: err.Error()}
	}
	req.Priority = priority
	if req.EstimatedHours != nil && *req.EstimatedHours < 0 {
		return &ValidationError{Field: "estimatedHours", Message: "must not be negative"}
	}
	if strings.TrimSpace(req.Status) == "" {
		req.Status = string(models.ColumnTodo)
	}
	return nil
}

func normalizeUpdate(req *api.TaskUpdateRequest) error {
	if !req.HasFields() {
		return &ValidationError{Message: "no fields to update"}
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return &ValidationError{Field: "title", Message: "title is required"}
		}
		req.Title = &title
	}
	if req.Priority != nil {
		priority, err := models.ParsePriority(string(*req.Priority))
		if err != nil {
			return &ValidationError{Field: "priority", Message: err.Error()}
		}
		req.Priority = &priority
	}
	if req.EstimatedHours != nil && *req.EstimatedHours < 0 {
		return &ValidationError{Field: "estimatedHours", Message: "must not be negative"}
	}
	return nil
}
