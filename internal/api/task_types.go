package api

import "aventra/internal/models"

// TaskCreateRequest defines the payload for creating a task.
type TaskCreateRequest struct {
	Title          string          `json:"title"`
	Description    *string         `json:"description,omitempty"`
	Priority       models.Priority `json:"priority,omitempty"`
	Status         string          `json:"status,omitempty"`
	EstimatedHours *float64        `json:"estimatedHours,omitempty"`
	DueDate        *models.Date    `json:"dueDate,omitempty"`
	ProjectID      *int64          `json:"projectId,omitempty"`
	Assignee       *string         `json:"assignee,omitempty"`
	UserID         int64           `json:"userId"`
}

// TaskUpdateRequest defines the payload for a partial task update.
type TaskUpdateRequest struct {
	Title          *string          `json:"title,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Priority       *models.Priority `json:"priority,omitempty"`
	Status         *string          `json:"status,omitempty"`
	EstimatedHours *float64         `json:"estimatedHours,omitempty"`
	DueDate        *models.Date     `json:"dueDate,omitempty"`
	ProjectID      *int64           `json:"projectId,omitempty"`
	Assignee       *string          `json:"assignee,omitempty"`
}

// TaskStatusRequest is the body of PUT /api/Tasks/{id}/status.
type TaskStatusRequest struct {
	Status string `json:"status"`
}

// HasFields reports whether the update carries at least one field.
func (r TaskUpdateRequest) HasFields() bool {
	return r.Title != nil ||
		r.Description != nil ||
		r.Priority != nil ||
		r.Status != nil ||
		r.EstimatedHours != nil ||
		r.DueDate != nil ||
		r.ProjectID != nil ||
		r.Assignee != nil
}

// ApplyTo merges the present fields into task.
func (r TaskUpdateRequest) ApplyTo(task models.Task) models.Task {
	if r.Title != nil {
		task.Title = *r.Title
	}
	if r.Description != nil {
		task.Description = *r.Description
	}
	if r.Priority != nil {
		task.Priority = *r.Priority
	}
	if r.Status != nil {
		task.Status = *r.Status
	}
	if r.EstimatedHours != nil {
		task.EstimatedHours = r.EstimatedHours
	}
	if r.DueDate != nil {
		task.DueDate = r.DueDate
	}
	if r.ProjectID != nil {
		task.ProjectID = r.ProjectID
	}
	if r.Assignee != nil {
		task.Assignee = *r.Assignee
	}
	return task
}
