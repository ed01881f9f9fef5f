package board

import "aventra/internal/models"

// Projection maps every canonical column to its tasks, in source order.
type Projection map[models.Column][]models.Task

// Project partitions tasks into the four columns. The partition is stable:
// tasks keep their relative order within a column.
func Project(tasks []models.Task) Projection {
	p := make(Projection, len(models.Columns()))
	for _, col := range models.Columns() {
		p[col] = []models.Task{}
	}
	for _, task := range tasks {
		col := task.Column()
		p[col] = append(p[col], task)
	}
	return p
}

// Count returns the number of tasks across all columns.
func (p Projection) Count() int {
	total := 0
	for _, tasks := range p {
		total += len(tasks)
	}
	return total
}

// IDs returns the task ids of one column in display order.
func (p Projection) IDs(col models.Column) []int64 {
	tasks := p[col]
	out := make([]int64, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}
