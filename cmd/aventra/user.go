package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aventra/internal/config"
	"aventra/internal/store"
)

func newUserCmd(cfg *config.Config, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show or change the acting user",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show the acting user id",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withState(cfg, func(st *store.Store) error {
					id, err := resolveUserID(cmd.Context(), st, flags)
					if err != nil {
						return err
					}
					if structuredOutput() {
						return writeStructured(map[string]int64{"userId": id})
					}
					return writePlain("%d\n", id)
				})
			},
		},
		&cobra.Command{
			Use:   "set <user-id>",
			Short: "Persist the acting user id",
			Args:  argRange(1, 1, "user set <user-id>"),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseTaskID(args[0])
				if err != nil {
					return fmt.Errorf("invalid user id %q", args[0])
				}
				return withState(cfg, func(st *store.Store) error {
					return st.SetUserID(cmd.Context(), id)
				})
			},
		},
	)
	return cmd
}
