package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"aventra/internal/board"
	"aventra/internal/format"
	"aventra/internal/models"
)

// outputFormatter is nil for plain text output.
var outputFormatter format.Formatter

var stdout io.Writer = os.Stdout

func structuredOutput() bool {
	return outputFormatter != nil
}

func writeStructured(payload any) error {
	return outputFormatter.Write(stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(stdout, format, args...)
	return err
}

type columnView struct {
	ID    models.Column `json:"id" yaml:"id"`
	Title string        `json:"title" yaml:"title"`
	Tasks []models.Task `json:"tasks" yaml:"tasks"`
}

type boardView struct {
	UserID  int64        `json:"userId" yaml:"userId"`
	Columns []columnView `json:"columns" yaml:"columns"`
}

func newBoardView(userID int64, projection board.Projection) boardView {
	view := boardView{UserID: userID}
	for _, col := range models.Columns() {
		view.Columns = append(view.Columns, columnView{
			ID:    col,
			Title: col.Title(),
			Tasks: projection[col],
		})
	}
	return view
}

func writeBoard(view boardView, projects []models.Project) error {
	if structuredOutput() {
		return writeStructured(view)
	}

	var b strings.Builder
	for i, col := range view.Columns {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s (%d)\n", col.Title, len(col.Tasks))
		if len(col.Tasks) == 0 {
			b.WriteString("  (empty)\n")
			continue
		}
		for _, task := range col.Tasks {
			fmt.Fprintf(&b, "  %s\n", formatTaskLine(task, projects))
		}
	}
	return writePlain("%s", b.String())
}

func writeTaskDetail(task models.Task, projects []models.Project) error {
	if structuredOutput() {
		return writeStructured(task)
	}

	lines := []string{
		fmt.Sprintf("id: %d", task.ID),
		fmt.Sprintf("title: %s", task.Title),
		fmt.Sprintf("status: %s", task.Status),
		fmt.Sprintf("column: %s", task.Column()),
		fmt.Sprintf("priority: %s", displayPriority(task.Priority)),
	}
	if task.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", task.Description))
	}
	if task.EstimatedHours != nil {
		lines = append(lines, fmt.Sprintf("estimated_hours: %s", formatHours(*task.EstimatedHours)))
	}
	if task.DueDate != nil {
		lines = append(lines, fmt.Sprintf("due: %s", task.DueDate))
	}
	if label := models.ProjectLabel(projects, task.ProjectID); label != "" {
		lines = append(lines, fmt.Sprintf("project: %s", label))
	}
	if task.Assignee != "" {
		lines = append(lines, fmt.Sprintf("assignee: %s", task.Assignee))
	}
	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func formatTaskLine(task models.Task, projects []models.Project) string {
	line := fmt.Sprintf("#%d [%s] %s", task.ID, displayPriority(task.Priority), task.Title)
	var extras []string
	if label := models.ProjectLabel(projects, task.ProjectID); label != "" {
		extras = append(extras, label)
	}
	if task.DueDate != nil {
		extras = append(extras, "due "+task.DueDate.String())
	}
	if task.EstimatedHours != nil {
		extras = append(extras, formatHours(*task.EstimatedHours)+"h")
	}
	if task.Assignee != "" {
		extras = append(extras, "@"+task.Assignee)
	}
	if len(extras) > 0 {
		line += " - " + strings.Join(extras, ", ")
	}
	return line
}

func displayPriority(p models.Priority) string {
	if p == "" {
		return string(models.DefaultPriority)
	}
	return string(p)
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
