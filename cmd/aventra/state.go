package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aventra/internal/config"
	"aventra/internal/store"
)

func newStateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect local client storage",
	}
	cmd.AddCommand(newStateMigrateCmd(cfg))
	return cmd
}

func newStateMigrateCmd(cfg *config.Config) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run or preview local storage migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				plan, err := store.Inspect(cfg.StatePath)
				if err != nil {
					return fmt.Errorf("inspect migrations: %w", err)
				}
				return writeMigrationPlan(plan)
			}

			return withState(cfg, func(st *store.Store) error {
				plan, err := st.MigrationPlan()
				if err != nil {
					return err
				}
				if structuredOutput() {
					return writeStructured(plan)
				}
				return writePlain("Local storage at version %d.\n", plan.CurrentVersion)
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show pending migrations without applying")
	return cmd
}

func writeMigrationPlan(plan *store.MigrationStatus) error {
	if structuredOutput() {
		return writeStructured(plan)
	}

	if err := writePlain("Current version: %d\nAvailable version: %d\n", plan.CurrentVersion, plan.AvailableVersion); err != nil {
		return err
	}
	if len(plan.Pending) == 0 {
		return writePlain("No pending migrations.\n")
	}
	if err := writePlain("Pending migrations: %d\n", len(plan.Pending)); err != nil {
		return err
	}
	for _, m := range plan.Pending {
		if err := writePlain("  %d: %s\n", m.Version, m.Description); err != nil {
			return err
		}
	}
	return nil
}
