package main

import (
	"fmt"
	"io"
	"os"

	"aventra/internal/board"
	"aventra/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

const (
	exitOK      = 0
	exitFailure = 1
	// exitInvalid marks input rejected before any request was sent.
	exitInvalid = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return exitFailure
	}
	if cfg.TrustedProjectConfigPath != "" {
		fmt.Fprintf(stderr, "warning: using trusted project config from %s\n", cfg.TrustedProjectConfigPath)
	}

	root := newRootCmd(cfg)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		for _, line := range formatCLIError(err) {
			fmt.Fprintln(stderr, line)
		}
		if board.IsValidation(err) {
			return exitInvalid
		}
		return exitFailure
	}
	return exitOK
}
