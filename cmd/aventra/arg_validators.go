package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// argRange accepts between min and max positional arguments.
func argRange(min, max int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < min || len(args) > max {
			return fmt.Errorf("usage: aventra %s", usage)
		}
		return nil
	}
}

// taskIDArgs expects a task id followed by at most max-1 further arguments.
// A malformed id is rejected before any storage or network is touched.
func taskIDArgs(max int, usage string) cobra.PositionalArgs {
	return cobra.MatchAll(argRange(1, max, usage), func(_ *cobra.Command, args []string) error {
		_, err := parseTaskID(args[0])
		return err
	})
}
