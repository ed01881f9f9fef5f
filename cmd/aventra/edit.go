package main

import (
	"github.com/spf13/cobra"

	"aventra/internal/board"
	"aventra/internal/config"
)

func newEditCmd(cfg *config.Config, flags *globalFlags) *cobra.Command {
	opts := &taskFlagOptions{}

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit fields of a task",
		Args:  taskIDArgs(1, "edit <task-id> [flags]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			req, err := buildUpdateRequest(cmd, opts)
			if err != nil {
				return err
			}

			return withBoard(cmd.Context(), cfg, flags, loadOptional, func(b *board.Reconciler) error {
				updated, err := b.Edit(cmd.Context(), id, req)
				if err != nil {
					return err
				}
				return writeTaskDetail(updated, b.Snapshot().Projects)
			})
		},
	}

	bindTaskFlags(cmd, opts, true)
	return cmd
}
