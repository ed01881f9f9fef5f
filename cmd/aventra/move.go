package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aventra/internal/board"
	"aventra/internal/config"
	"aventra/internal/models"
)

type moveResult struct {
	TaskID  int64  `json:"taskId" yaml:"taskId"`
	Column  string `json:"column" yaml:"column"`
	Outcome string `json:"outcome" yaml:"outcome"`
}

func newMoveCmd(cfg *config.Config, flags *globalFlags) *cobra.Command {
	var ontoTask string

	cmd := &cobra.Command{
		Use:   "move <task-id> [column]",
		Short: "Drag a task onto a column or onto another task",
		Args:  taskIDArgs(2, "move <task-id> [column]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			target, raw, err := moveTarget(args[1:], ontoTask)
			if err != nil {
				return err
			}

			return withBoard(cmd.Context(), cfg, flags, loadRequired, func(b *board.Reconciler) error {
				drag := board.NewDrag(b)
				if err := drag.Begin(id); err != nil {
					return err
				}
				result, err := drag.Drop(cmd.Context(), target)
				if err != nil {
					return err
				}
				if result.Outcome == board.DropInvalid {
					return fmt.Errorf("invalid drop target %q (columns: %s, or a task id)", raw, strings.Join(models.ColumnStrings(), ", "))
				}
				return writeMoveResult(result)
			})
		},
	}

	cmd.Flags().StringVar(&ontoTask, "onto-task", "", "drop onto the column of this task id")
	return cmd
}

func moveTarget(args []string, ontoTask string) (board.DropTarget, string, error) {
	switch {
	case ontoTask != "" && len(args) > 0:
		return board.DropTarget{}, "", errors.New("use either a column or --onto-task, not both")
	case ontoTask != "":
		id, err := parseTaskID(ontoTask)
		if err != nil {
			return board.DropTarget{}, "", err
		}
		return board.TaskTarget(id), ontoTask, nil
	case len(args) == 1:
		return board.ParseDropTarget(args[0]), args[0], nil
	case len(args) == 0:
		return board.DropTarget{}, "", errors.New("target column or --onto-task is required")
	default:
		return board.DropTarget{}, "", errors.New("too many arguments")
	}
}

func writeMoveResult(result board.DropResult) error {
	if structuredOutput() {
		return writeStructured(moveResult{
			TaskID:  result.TaskID,
			Column:  string(result.Column),
			Outcome: result.Outcome.String(),
		})
	}
	if result.Outcome == board.DropNoop {
		return writePlain("#%d already in %s\n", result.TaskID, result.Column.Title())
	}
	return writePlain("moved #%d to %s\n", result.TaskID, result.Column.Title())
}
