package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aventra/internal/config"
)

type configEntry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

func newConfigCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change client settings",
	}
	cmd.AddCommand(newConfigGetCmd(cfg), newConfigSetCmd())
	return cmd
}

// newConfigGetCmd prints one effective setting, or all of them without a key.
func newConfigGetCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Show effective settings",
		Args:  argRange(0, 1, "config get [key]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := config.AllowedKeys()
			if len(args) == 1 {
				if !config.IsAllowedKey(args[0]) {
					return unknownConfigKey(args[0])
				}
				keys = args
			}

			entries, err := configEntries(cfg, keys)
			if err != nil {
				return err
			}
			return writeConfigEntries(entries, len(args) == 1)
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a setting",
		Args:  argRange(2, 2, "config set <key> <value> [--global]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !config.IsAllowedKey(key) {
				return unknownConfigKey(key)
			}

			path, err := configTargetPath(global)
			if err != nil {
				return err
			}
			if err := config.SetKey(path, key, value); err != nil {
				return err
			}
			if structuredOutput() {
				return writeStructured(configEntry{Key: key, Value: value})
			}
			return writePlain("%s = %s (%s)\n", key, value, path)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "write to ~/.aventra.toml instead of ./.aventra.toml")
	return cmd
}

func configEntries(cfg *config.Config, keys []string) ([]configEntry, error) {
	entries := make([]configEntry, 0, len(keys))
	for _, key := range keys {
		value, err := cfg.Get(key)
		if err != nil {
			return nil, err
		}
		entries = append(entries, configEntry{Key: key, Value: value})
	}
	return entries, nil
}

func writeConfigEntries(entries []configEntry, single bool) error {
	if structuredOutput() {
		if single {
			return writeStructured(entries[0])
		}
		return writeStructured(entries)
	}
	if single {
		return writePlain("%s\n", entries[0].Value)
	}
	for _, entry := range entries {
		if err := writePlain("%s = %s\n", entry.Key, entry.Value); err != nil {
			return err
		}
	}
	return nil
}

func configTargetPath(global bool) (string, error) {
	if global {
		return config.GlobalPath()
	}
	return config.ProjectPath()
}

func unknownConfigKey(key string) error {
	return fmt.Errorf("unknown key: %s (allowed: %v)", key, config.AllowedKeys())
}
