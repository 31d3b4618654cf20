package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/math3d-scenes/internal/migrate"
	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

type translateFlags struct {
	file string
	key  string
}

func newTranslateCmd(a *app) *cobra.Command {
	var f translateFlags
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate one dehydrated scene file without touching the store",
		Long: `Translate reads a dehydrated legacy scene (a JSON object with folders,
mathGraphics, mathSymbols, sortableTree, sliderValues and metadata), prints
the migrated scene as JSON on stdout and the issues met on stderr.

The scene key defaults to the file name without its extension.

Example:
  scenemigrate translate --file saddle.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTranslate(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "dehydrated scene file (required)")
	cmd.Flags().StringVar(&f.key, "key", "", "scene key (default: file name)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (a *app) runTranslate(cmd *cobra.Command, f translateFlags) error {
	data, err := os.ReadFile(f.file)
	if err != nil {
		return userError(fmt.Errorf("read %s: %w", f.file, err))
	}
	var d types.Dehydrated
	if err := json.Unmarshal(data, &d); err != nil {
		return userError(fmt.Errorf("decode %s: %w", f.file, err))
	}

	key := f.key
	if key == "" {
		base := filepath.Base(f.file)
		key = strings.TrimSuffix(base, filepath.Ext(base))
	}

	scene, issues, err := migrate.MigrateScene(types.LegacyScene{Key: key, Dehydrated: d}, migrate.Options{})
	for _, issue := range issues {
		fmt.Fprintf(a.stderr, "%s %s\n", issue.Severity, issue.Message)
	}
	if err != nil {
		return userError(err)
	}
	if err := printJSON(cmd.OutOrStdout(), scene); err != nil {
		return sysError(err)
	}
	return nil
}
