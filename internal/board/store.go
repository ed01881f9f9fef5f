package board

import (
	"context"

	"aventra/internal/api"
	"aventra/internal/models"
)

// TaskStore is the remote task collaborator.
type TaskStore interface {
	ListTasks(ctx context.Context, userID int64) ([]models.Task, error)
	CreateTask(ctx context.Context, req api.TaskCreateRequest) (models.Task, error)
	UpdateTask(ctx context.Context, id int64, req api.TaskUpdateRequest) (models.Task, error)
	UpdateTaskStatus(ctx context.Context, id int64, status string) error
	DeleteTask(ctx context.Context, id int64) error
}

// ProjectStore is the read-only remote project collaborator.
type ProjectStore interface {
	ListProjects(ctx context.Context, userID int64) ([]models.Project, error)
}
