package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and scene storage",
		Long:  "Create the configuration and data directories, write config.yaml if missing,\nthen initialize the scene store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	dataDir, err := a.dataDir()
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	configPath := filepath.Join(a.configDir, configFileExt)
	created, err := writeConfigIfMissing(configPath, configFile{
		Backend:      a.v.GetString(cfgKeyBackend),
		DataDir:      dataDir,
		SyncStrategy: a.v.GetString(cfgKeySyncStrategy),
		LogLevel:     a.v.GetString(cfgKeyLogLevel),
		LogFormat:    a.v.GetString(cfgKeyLogFormat),
	})
	if err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}
	if created {
		a.log.Infow("wrote config", "path", configPath)
	}

	err = a.withStore(func(types.SceneStore) error { return nil })
	if err != nil {
		return err
	}

	return a.report(cmd.OutOrStdout(), []string{"config", "data_dir"}, map[string]any{
		"config":   configPath,
		"data_dir": dataDir,
	})
}
