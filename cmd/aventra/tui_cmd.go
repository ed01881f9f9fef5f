package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"aventra/internal/config"
	"aventra/internal/store"
	"aventra/internal/tui"
)

const tuiLogFileName = "tui.log"

func newTUICmd(cfg *config.Config, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var userID int64
			err := withState(cfg, func(st *store.Store) error {
				id, err := resolveUserID(cmd.Context(), st, flags)
				userID = id
				return err
			})
			if err != nil {
				return err
			}

			// The terminal is owned by the board while it runs.
			logPath := filepath.Join(filepath.Dir(cfg.StatePath), tuiLogFileName)
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("open tui log: %w", err)
			}
			defer logFile.Close()
			prev := slog.Default()
			slog.SetDefault(newLogger(logFile))
			defer slog.SetDefault(prev)

			b, err := newBoard(cfg, userID)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), b)
		},
	}
}
