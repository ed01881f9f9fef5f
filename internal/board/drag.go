package board

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"aventra/internal/models"
)

// DragState is the state of a drag gesture.
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
)

func (s DragState) String() string {
	if s == DragDragging {
		return "dragging"
	}
	return "idle"
}

type targetKind int

const (
	targetNone targetKind = iota
	targetColumn
	targetTask
)

// DropTarget is whatever lies under the pointer when a card is released.
type DropTarget struct {
	kind   targetKind
	column string
	taskID int64
}

// ColumnTarget is a drop directly onto a column. The id is validated on drop.
func ColumnTarget(id string) DropTarget {
	return DropTarget{kind: targetColumn, column: id}
}

// TaskTarget is a drop over another card.
func TaskTarget(id int64) DropTarget {
	return DropTarget{kind: targetTask, taskID: id}
}

// NoTarget is a release outside every column and card.
func NoTarget() DropTarget {
	return DropTarget{}
}

// ParseDropTarget reads a drop id the way the board identifies droppables:
// column ids first, then numeric task ids.
func ParseDropTarget(raw string) DropTarget {
	value := strings.TrimSpace(raw)
	if _, ok := models.ParseColumn(value); ok {
		return ColumnTarget(value)
	}
	if id, err := strconv.ParseInt(strings.TrimPrefix(value, "#"), 10, 64); err == nil && id > 0 {
		return TaskTarget(id)
	}
	return NoTarget()
}

func (t DropTarget) String() string {
	switch t.kind {
	case targetColumn:
		return "column:" + t.column
	case targetTask:
		return fmt.Sprintf("task:%d", t.taskID)
	default:
		return "none"
	}
}

// DropOutcome classifies a finished drop.
type DropOutcome int

const (
	DropInvalid DropOutcome = iota
	DropNoop
	DropMoved
)

func (o DropOutcome) String() string {
	switch o {
	case DropNoop:
		return "noop"
	case DropMoved:
		return "moved"
	default:
		return "invalid"
	}
}

type DropResult struct {
	TaskID  int64
	Column  models.Column
	Outcome DropOutcome
}

// Drag interprets drag-and-drop gestures as status moves.
type Drag struct {
	board *Reconciler

	mu     sync.Mutex
	state  DragState
	active int64
}

func NewDrag(board *Reconciler) *Drag {
	return &Drag{board: board}
}

func (d *Drag) State() DragState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Active returns the dragged task id while a drag is in progress.
func (d *Drag) Active() (int64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active, d.state == DragDragging
}

// Begin picks up a card.
func (d *Drag) Begin(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == DragDragging {
		return ErrAlreadyDragging
	}
	if _, ok := d.board.cache.Find(id); !ok {
		return fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	d.state = DragDragging
	d.active = id
	return nil
}

// Cancel abandons the gesture without touching the board.
func (d *Drag) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = DragIdle
	d.active = 0
}

// Drop releases the card over target. The drag always returns to idle.
func (d *Drag) Drop(ctx context.Context, target DropTarget) (DropResult, error) {
	d.mu.Lock()
	if d.state != DragDragging {
		d.mu.Unlock()
		return DropResult{}, ErrNotDragging
	}
	id := d.active
	d.state = DragIdle
	d.active = 0
	d.mu.Unlock()

	result := DropResult{TaskID: id, Outcome: DropInvalid}
	col, ok := d.resolve(target)
	if !ok {
		d.board.logger.Debug("drop ignored", "task_id", id, "target", target.String())
		return result, nil
	}
	result.Column = col

	task, ok := d.board.cache.Find(id)
	if !ok {
		return result, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	if task.Column() == col {
		result.Outcome = DropNoop
		return result, nil
	}

	outcome, err := d.board.Move(ctx, id, col)
	if err != nil {
		return result, err
	}
	if outcome == MoveApplied {
		result.Outcome = DropMoved
	} else {
		result.Outcome = DropNoop
	}
	return result, nil
}

func (d *Drag) resolve(target DropTarget) (models.Column, bool) {
	switch target.kind {
	case targetColumn:
		return models.ParseColumn(target.column)
	case targetTask:
		task, ok := d.board.cache.Find(target.taskID)
		if !ok {
			return "", false
		}
		return task.Column(), true
	default:
		return "", false
	}
}
