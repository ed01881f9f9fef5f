package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL        = "http://localhost:5000"
	DefaultLogLevel      = "warn"
	DefaultSyncStrategy  = "reload"
	DefaultStateFileName = "state.db"

	configFileName = ".aventra.toml"
	stateDirName   = ".aventra"

	configDirEnvKey          = "AVENTRA_CONFIG_DIR"
	trustProjectConfigEnvKey = "AVENTRA_TRUST_PROJECT_CONFIG"
	apiURLEnvKey             = "AVENTRA_API_URL"
	statePathEnvKey          = "AVENTRA_STATE"
	syncStrategyEnvKey       = "AVENTRA_SYNC_STRATEGY"
)

// Config defines runtime configuration for the aventra client.
type Config struct {
	APIURL                   string `toml:"api_url"`
	StatePath                string `toml:"state_path"`
	LogLevel                 string `toml:"log_level"`
	SyncStrategy             string `toml:"sync_strategy"`
	TrustedProjectConfigPath string `toml:"-"`
}

// Default returns default configuration values. StatePath is resolved by Load.
func Default() Config {
	return Config{
		APIURL:       DefaultAPIURL,
		LogLevel:     DefaultLogLevel,
		SyncStrategy: DefaultSyncStrategy,
	}
}

func loadFile(path string, cfg *Config) error {
	_, err := loadFileIfExists(path, cfg)
	return err
}

func loadFileIfExists(path string, cfg *Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

func trustProjectConfig() bool {
	raw := strings.TrimSpace(os.Getenv(trustProjectConfigEnvKey))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

var allowedKeys = []string{
	"api_url",
	"state_path",
	"log_level",
	"sync_strategy",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	out := make([]string, len(allowedKeys))
	copy(out, allowedKeys)
	return out
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "state_path":
		return c.StatePath, nil
	case "log_level":
		return c.LogLevel, nil
	case "sync_strategy":
		return c.SyncStrategy, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// ProjectPath returns the path to the project config file.
func ProjectPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsed, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	data[key] = parsed

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads config from trusted files and applies env overrides.
// Log level values are validated by the caller so that a bad level can
// degrade to the default with a warning.
func Load() (*Config, error) {
	cfg := Default()

	if overridePath, ok := overrideConfigPath(); ok {
		if err := loadFile(overridePath, &cfg); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			if err := loadFile(filepath.Join(home, configFileName), &cfg); err != nil {
				return nil, err
			}
		}

		if trustProjectConfig() {
			if cwd, err := os.Getwd(); err == nil {
				projectPath := filepath.Join(cwd, configFileName)
				info, statErr := os.Stat(projectPath)
				switch {
				case statErr == nil && !info.IsDir():
					if err := loadFile(projectPath, &cfg); err != nil {
						return nil, err
					}
					cfg.TrustedProjectConfigPath = projectPath
				case statErr != nil && !os.IsNotExist(statErr):
					return nil, statErr
				}
			}
		}
	}

	if apiURL := strings.TrimSpace(os.Getenv(apiURLEnvKey)); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if statePath := strings.TrimSpace(os.Getenv(statePathEnvKey)); statePath != "" {
		cfg.StatePath = statePath
	}
	if strategy := strings.TrimSpace(os.Getenv(syncStrategyEnvKey)); strategy != "" {
		cfg.SyncStrategy = strategy
	}

	if strings.TrimSpace(cfg.APIURL) == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	cfg.SyncStrategy = strings.ToLower(strings.TrimSpace(cfg.SyncStrategy))
	if cfg.SyncStrategy == "" {
		cfg.SyncStrategy = DefaultSyncStrategy
	}
	if !validStrategy(cfg.SyncStrategy) {
		return nil, fmt.Errorf("invalid sync_strategy %q (use reload or patch)", cfg.SyncStrategy)
	}

	if cfg.StatePath == "" {
		path, err := DefaultStatePath()
		if err != nil {
			return nil, err
		}
		cfg.StatePath = path
	}

	return &cfg, nil
}

// DefaultStatePath returns ~/.aventra/state.db.
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, stateDirName, DefaultStateFileName), nil
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "sync_strategy":
		value = strings.ToLower(value)
		if !validStrategy(value) {
			return nil, fmt.Errorf("%s must be reload or patch", key)
		}
		return value, nil
	case "api_url":
		if value == "" {
			return nil, fmt.Errorf("%s must not be empty", key)
		}
		return value, nil
	default:
		return value, nil
	}
}

func validStrategy(value string) bool {
	return value == "reload" || value == "patch"
}
