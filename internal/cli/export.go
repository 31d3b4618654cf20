package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/math3d-scenes/pkg/sqlite"
	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

type exportFlags struct {
	out    string
	filter string
}

func newExportCmd(a *app) *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export migrated scenes as JSONL",
		Long: `Export writes the migrated scenes, one JSON object per line, ordered by key.
With --out - (the default) the scenes go to stdout; otherwise the file is
replaced atomically.

Example:
  scenemigrate export --out scenes.jsonl
  scenemigrate export --filter abc123`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&f.filter, "filter", "", "comma-separated scene keys to export")
	return cmd
}

func (a *app) runExport(cmd *cobra.Command, f exportFlags) error {
	filter := map[string]any{}
	if keys := splitKeys(f.filter); len(keys) > 0 {
		filter[types.FilterKeys] = keys
	}

	var scenes []types.Scene
	err := a.withStore(func(store types.SceneStore) error {
		_, table, err := tables(store)
		if err != nil {
			return err
		}
		rows, err := table.Fetch(filter)
		if err != nil {
			return sysError(fmt.Errorf("fetch scenes: %w", err))
		}
		scenes = make([]types.Scene, 0, len(rows))
		for _, row := range rows {
			scenes = append(scenes, *row.(*types.Scene))
		}
		return nil
	})
	if err != nil {
		return err
	}

	if f.out == "-" {
		out := cmd.OutOrStdout()
		for i := range scenes {
			line, err := json.Marshal(&scenes[i])
			if err != nil {
				return sysError(fmt.Errorf("marshaling scene %s: %w", scenes[i].Key, err))
			}
			if _, err := fmt.Fprintln(out, string(line)); err != nil {
				return sysError(err)
			}
		}
		return nil
	}

	if err := sqlite.WriteSceneDump(f.out, scenes); err != nil {
		return sysError(err)
	}
	a.log.Infow("export complete", "file", f.out, "scenes", len(scenes))
	return a.report(cmd.ErrOrStderr(), []string{"exported", "file"}, map[string]any{
		"exported": len(scenes),
		"file":     f.out,
	})
}
