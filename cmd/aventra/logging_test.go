package main

import (
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestResolveLogLevel(t *testing.T) {
	tests := []struct {
		name        string
		flag        string
		env         string
		cfg         string
		want        slog.Level
		wantWarning string
		wantErr     bool
	}{
		{name: "nothing set", want: slog.LevelWarn},
		{name: "config", cfg: "error", want: slog.LevelError},
		{name: "env beats config", env: "Info", cfg: "error", want: slog.LevelInfo},
		{name: "flag beats env", flag: "debug", env: "error", want: slog.LevelDebug},
		{name: "flag beats invalid env", flag: "debug", env: "verbose", want: slog.LevelDebug},
		{name: "warning alias", cfg: "WARNING", want: slog.LevelWarn},
		{name: "invalid flag", flag: "verbose", wantErr: true},
		{name: "invalid env", env: "verbose", cfg: "debug", want: slog.LevelWarn, wantWarning: "invalid AVENTRA_LOG_LEVEL=\"verbose\"; defaulting to warn"},
		{name: "invalid config", cfg: "loud", want: slog.LevelWarn, wantWarning: "invalid log_level=\"loud\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warning, err := resolveLogLevel(tt.flag, tt.env, tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if tt.wantWarning == "" && warning != "" {
				t.Fatalf("unexpected warning %q", warning)
			}
			if !strings.Contains(warning, tt.wantWarning) {
				t.Fatalf("expected warning containing %q, got %q", tt.wantWarning, warning)
			}
		})
	}
}

func TestConfigureLoggerForCLISetsSharedLevel(t *testing.T) {
	t.Setenv(logLevelEnvKey, "")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	if _, err := configureLoggerForCLI("error", "debug"); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if logLevel.Level() != slog.LevelError {
		t.Fatalf("expected error level, got %v", logLevel.Level())
	}
	if slog.Default().Enabled(context.Background(), slog.LevelWarn) {
		t.Fatal("warn must be filtered at error level")
	}
}
