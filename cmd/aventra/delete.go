package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"aventra/internal/board"
	"aventra/internal/config"
)

var stdin io.Reader = os.Stdin

func newDeleteCmd(cfg *config.Config, flags *globalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task after confirmation",
		Args:  taskIDArgs(1, "delete <task-id> [--yes]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			var confirm board.Confirmer = promptConfirm(stdin, os.Stderr)
			if yes {
				confirm = board.ConfirmFunc(func(string) bool { return true })
			}

			return withBoard(cmd.Context(), cfg, flags, loadOptional, func(b *board.Reconciler) error {
				err := b.Delete(cmd.Context(), id, confirm)
				if errors.Is(err, board.ErrDeleteDeclined) {
					return writePlain("delete cancelled\n")
				}
				if err != nil {
					return err
				}
				if structuredOutput() {
					return writeStructured(map[string]any{"id": id, "deleted": true})
				}
				return writePlain("deleted #%d\n", id)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// promptConfirm asks on out and reads a y/yes answer from in. Anything else,
// including EOF, declines.
func promptConfirm(in io.Reader, out io.Writer) board.ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}
