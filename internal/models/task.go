package models

// Task represents a single card on the board, as owned by the remote store.
type Task struct {
	ID             int64    `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	Priority       Priority `json:"priority,omitempty" yaml:"priority,omitempty"`
	Status         string   `json:"status" yaml:"status"`
	EstimatedHours *float64 `json:"estimatedHours,omitempty" yaml:"estimatedHours,omitempty"`
	DueDate        *Date    `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	ProjectID      *int64   `json:"projectId" yaml:"projectId"`
	Assignee       string   `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	UserID         int64    `json:"userId,omitempty" yaml:"userId,omitempty"`
}

// Column returns the board column the task currently belongs to.
func (t Task) Column() Column {
	return NormalizeStatus(t.Status)
}

// Project is a read-only reference used to label tasks.
type Project struct {
	ID    int64  `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// UnmarshalJSON accepts either "title" or "name" for the project label.
func (p *Project) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
		Name  string `json:"name"`
	}
	if err := unmarshalJSON(data, &raw); err != nil {
		return err
	}
	p.ID = raw.ID
	p.Title = raw.Title
	if p.Title == "" {
		p.Title = raw.Name
	}
	return nil
}

// ProjectLabel resolves a task's project reference to a display label.
func ProjectLabel(projects []Project, ref *int64) string {
	if ref == nil {
		return ""
	}
	for _, p := range projects {
		if p.ID == *ref {
			return p.Title
		}
	}
	return ""
}
