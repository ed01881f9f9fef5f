package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"aventra/internal/config"
)

const logLevelEnvKey = "AVENTRA_LOG_LEVEL"

// logLevel is shared by every handler the CLI installs.
var logLevel = new(slog.LevelVar)

type levelSetting struct {
	raw    string
	source string
}

// resolveLogLevel takes the first non-empty of flag, env and config. A bad
// flag is an error; a bad env or config value falls back to warn and
// returns a warning for stderr.
func resolveLogLevel(flagLevel, envLevel, configLevel string) (slog.Level, string, error) {
	settings := []levelSetting{
		{raw: flagLevel, source: "--log-level"},
		{raw: envLevel, source: logLevelEnvKey},
		{raw: configLevel, source: "log_level"},
	}
	for _, setting := range settings {
		if strings.TrimSpace(setting.raw) == "" {
			continue
		}
		level, err := parseLogLevel(setting.raw)
		switch {
		case err == nil:
			return level, "", nil
		case setting.source == "--log-level":
			return 0, "", fmt.Errorf("invalid --log-level %q", setting.raw)
		default:
			warning := fmt.Sprintf("warning: invalid %s=%q; defaulting to %s", setting.source, setting.raw, config.DefaultLogLevel)
			return slog.LevelWarn, warning, nil
		}
	}
	return slog.LevelWarn, "", nil
}

// configureLoggerForCLI installs the stderr logger and returns a warning to
// print, if any.
func configureLoggerForCLI(flagLevel, configLevel string) (string, error) {
	level, warning, err := resolveLogLevel(flagLevel, os.Getenv(logLevelEnvKey), configLevel)
	if err != nil {
		return "", err
	}
	logLevel.Set(level)
	slog.SetDefault(newLogger(os.Stderr))
	return warning, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("invalid log level %q", raw)
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}
