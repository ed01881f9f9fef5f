package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aventra/internal/config"
	"aventra/internal/format"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	json     bool
	yaml     bool
	logLevel string
	userID   int64
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "aventra",
		Short:         "Aventra is a Kanban board client for the Aventra task API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(flags.logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			outputFormatter = format.Select(flags.json, flags.yaml)
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&flags.json, "json", false, "output JSON")
	cmd.PersistentFlags().BoolVar(&flags.yaml, "yaml", false, "output YAML")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().Int64Var(&flags.userID, "user", 0, "act as this user id instead of the stored one")

	cmd.AddCommand(
		newBoardCmd(cfg, flags),
		newMoveCmd(cfg, flags),
		newAddCmd(cfg, flags),
		newEditCmd(cfg, flags),
		newDeleteCmd(cfg, flags),
		newProjectsCmd(cfg, flags),
		newTUICmd(cfg, flags),
		newUserCmd(cfg, flags),
		newConfigCmd(cfg),
		newStateCmd(cfg),
	)

	return cmd
}
