package main

import (
	"github.com/spf13/cobra"

	"aventra/internal/board"
	"aventra/internal/config"
	"aventra/internal/models"
)

func newBoardCmd(cfg *config.Config, flags *globalFlags) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the four board columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd.Context(), cfg, flags, loadRequired, func(b *board.Reconciler) error {
				snap := b.Snapshot()
				tasks := snap.Tasks
				if cmd.Flags().Changed("project") {
					tasks = filterByProject(tasks, projectID)
				}
				return writeBoard(newBoardView(b.UserID(), board.Project(tasks)), snap.Projects)
			})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "only show tasks of this project id")
	return cmd
}

func filterByProject(tasks []models.Task, projectID int64) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.ProjectID != nil && *task.ProjectID == projectID {
			out = append(out, task)
		}
	}
	return out
}
