package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/math3d-scenes/pkg/sqlite"
	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

func newImportCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import legacy scenes from a dump file",
		Long: `Import reads an export of the legacy graphs table, either a JSON array or one
JSON object per line with url_key (or key), dehydrated (a JSON string or an
object), times_accessed and last_accessed, and saves each row as a legacy
scene. Existing scenes with the same key are updated; migration notes are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runImport(cmd, file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "dump file to import (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (a *app) runImport(cmd *cobra.Command, file string) error {
	scenes, err := sqlite.ReadLegacyDump(file)
	if err != nil {
		if errors.Is(err, sqlite.ErrMalformedDump) || errors.Is(err, fs.ErrNotExist) {
			return userError(err)
		}
		return sysError(err)
	}

	return a.withStore(func(store types.SceneStore) error {
		legacy, _, err := tables(store)
		if err != nil {
			return err
		}
		for i := range scenes {
			if err := saveLegacy(legacy, &scenes[i]); err != nil {
				return sysError(fmt.Errorf("saving legacy scene %s: %w", scenes[i].Key, err))
			}
		}
		a.log.Infow("import complete", "file", file, "scenes", len(scenes))
		return a.report(cmd.OutOrStdout(), []string{"imported"}, map[string]any{"imported": len(scenes)})
	})
}
