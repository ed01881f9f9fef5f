package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"aventra/internal/api"
	"aventra/internal/board"
	"aventra/internal/models"
)

type loadedMsg struct {
	err error
}

type droppedMsg struct {
	result board.DropResult
	err    error
}

type createdMsg struct {
	task models.Task
	err  error
}

type deletedMsg struct {
	id  int64
	err error
}

func loadCmd(ctx context.Context, b *board.Reconciler, initial bool) tea.Cmd {
	return func() tea.Msg {
		if initial {
			return loadedMsg{err: b.Load(ctx)}
		}
		return loadedMsg{err: b.Reload(ctx)}
	}
}

func dropCmd(ctx context.Context, drag *board.Drag, target board.DropTarget) tea.Cmd {
	return func() tea.Msg {
		result, err := drag.Drop(ctx, target)
		return droppedMsg{result: result, err: err}
	}
}

func createCmd(ctx context.Context, b *board.Reconciler, title string) tea.Cmd {
	return func() tea.Msg {
		task, err := b.Create(ctx, api.TaskCreateRequest{Title: title})
		return createdMsg{task: task, err: err}
	}
}

// deleteCmd runs after the user already answered the prompt in the view.
func deleteCmd(ctx context.Context, b *board.Reconciler, id int64) tea.Cmd {
	return func() tea.Msg {
		confirmed := board.ConfirmFunc(func(string) bool { return true })
		return deletedMsg{id: id, err: b.Delete(ctx, id, confirmed)}
	}
}
