package models

import "strings"

// Column is one of the four canonical board buckets. It is derived from a
// task's status and never stored on its own.
type Column string

const (
	ColumnTodo       Column = "todo"
	ColumnInProgress Column = "inprogress"
	ColumnReview     Column = "review"
	ColumnDone       Column = "done"
)

var columns = []Column{
	ColumnTodo,
	ColumnInProgress,
	ColumnReview,
	ColumnDone,
}

var columnTitles = map[Column]string{
	ColumnTodo:       "To Do",
	ColumnInProgress: "In Progress",
	ColumnReview:     "Review",
	ColumnDone:       "Done",
}

// Columns returns the canonical columns in display order.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// Title returns the human readable column name.
func (c Column) Title() string {
	if title, ok := columnTitles[c]; ok {
		return title
	}
	return string(c)
}

// NormalizeStatus maps a raw status from the remote store onto a column.
// Unknown and empty statuses land in ColumnTodo.
func NormalizeStatus(raw string) Column {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "completed", "done":
		return ColumnDone
	case "inprogress", "in progress":
		return ColumnInProgress
	case "review":
		return ColumnReview
	default:
		return ColumnTodo
	}
}

// ParseColumn accepts only canonical column identifiers, case-insensitively.
func ParseColumn(raw string) (Column, bool) {
	value := Column(strings.ToLower(strings.TrimSpace(raw)))
	for _, c := range columns {
		if c == value {
			return c, true
		}
	}
	return "", false
}

func ColumnStrings() []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		out = append(out, string(c))
	}
	return out
}
