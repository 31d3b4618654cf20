package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/math3d-scenes/internal/logger"
	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeySyncStrategy = "sync_strategy"
	cfgKeyLogLevel     = "log_level"
	cfgKeyLogFormat    = "log_format"
	cfgKeyLegacyDSN    = "legacy_dsn"

	envLegacyDSN = "LEGACY_DATABASE_URL"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# scenemigrate configuration

# Storage backend
backend: sqlite

# When JSONL files are rewritten: immediate or on_close
sync_strategy: immediate

# Logging: debug, info, warn, error; console or json
log_level: info
log_format: console

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Legacy PostgreSQL URL (optional; LEGACY_DATABASE_URL also works)
# legacy_dsn:
`

// configFile holds the structure init writes to config.yaml.
type configFile struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir,omitempty"`
	SyncStrategy string `yaml:"sync_strategy,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
	LogFormat    string `yaml:"log_format,omitempty"`
}

// loadConfig reads config.yaml from configDir using Viper. With
// writeDefault it first creates the directory and a default config.yaml if
// they are missing. A missing config.yaml is not an error.
func loadConfig(configDir string, writeDefault bool) (*viper.Viper, error) {
	if writeDefault {
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure config dir: %w", err)
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			return nil, fmt.Errorf("ensure default config: %w", err)
		}
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeySyncStrategy, types.SyncImmediate)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetDefault(cfgKeyLogFormat, logger.FormatConsole)
	if err := v.BindEnv(cfgKeyLegacyDSN, envLegacyDSN); err != nil {
		return nil, fmt.Errorf("bind %s: %w", envLegacyDSN, err)
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. An existing file is left alone.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// storeConfig returns the SceneStore config for dataDir.
func (a *app) storeConfig(dataDir string) types.Config {
	return types.Config{
		Backend:      a.v.GetString(cfgKeyBackend),
		DataDir:      dataDir,
		SyncStrategy: a.v.GetString(cfgKeySyncStrategy),
	}
}
