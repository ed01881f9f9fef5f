package main

import (
	"github.com/spf13/cobra"

	"aventra/internal/board"
	"aventra/internal/config"
)

func newProjectsCmd(cfg *config.Config, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects of the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd.Context(), cfg, flags, loadRequired, func(b *board.Reconciler) error {
				projects := b.Snapshot().Projects
				if structuredOutput() {
					return writeStructured(projects)
				}
				if len(projects) == 0 {
					return writePlain("no projects\n")
				}
				for _, p := range projects {
					if err := writePlain("%d\t%s\n", p.ID, p.Title); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
