// Package cli implements the scenemigrate command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/math3d-scenes/internal/logger"
	"github.com/mesh-intelligence/math3d-scenes/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by one command invocation.
type app struct {
	flags     rootFlags
	configDir string
	v         *viper.Viper
	log       *zap.SugaredLogger
	stderr    io.Writer
}

// NewRootCmd creates the top-level "scenemigrate" command with global
// flags and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: logger.Nop(), stderr: os.Stderr}

	root := &cobra.Command{
		Use:   "scenemigrate",
		Short: "Migrate legacy math3d scenes to the new item schema",
		Long: "scenemigrate pulls dehydrated scenes from the legacy math3d database,\n" +
			"stores them locally, and translates them into scenes of the new schema.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.SetErr(os.Stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config, else info)")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newFetchCmd(a),
		newPullCmd(a),
		newImportCmd(a),
		newMigrateCmd(a),
		newTranslateCmd(a),
		newExportCmd(a),
		newListCmd(a),
		newGetCmd(a),
	)
	return root
}

// setup resolves the config directory, loads config.yaml and builds the
// logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.stderr = cmd.ErrOrStderr()
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	v, err := loadConfig(configDir, cmd.Name() != "init")
	if err != nil {
		return sysError(err)
	}
	a.v = v

	level := a.flags.logLevel
	if level == "" {
		level = v.GetString(cfgKeyLogLevel)
	}
	log, err := logger.New(level, v.GetString(cfgKeyLogFormat))
	if err != nil {
		return userError(err)
	}
	a.log = log
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:]))
}

// run executes root with args and returns the process exit code.
func run(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	var ce *exitError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}

// exitError carries the exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by bad input or data (exit 1).
func userError(err error) error { return &exitError{code: exitUserError, err: err} }

// sysError marks err as an environment failure (exit 2).
func sysError(err error) error { return &exitError{code: exitSysError, err: err} }
