package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

type listFlags struct {
	filter     string
	limit      int
	unmigrated bool
}

func newListCmd(a *app) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list <table>",
		Short: "List stored entities",
		Long: fmt.Sprintf(`List prints the entities of a table as a JSON array, ordered by key.

Tables: %s, %s. --unmigrated applies to %s only.

Output keys follow the JSONL file format.

Example:
  scenemigrate list legacy_scenes --unmigrated
  scenemigrate list scenes --limit 10`, types.LegacyScenesTable, types.ScenesTable, types.LegacyScenesTable),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, args[0], f)
		},
	}
	cmd.Flags().StringVar(&f.filter, "filter", "", "comma-separated scene keys")
	cmd.Flags().IntVarP(&f.limit, "limit", "l", 0, "limit the number of entities listed")
	cmd.Flags().BoolVar(&f.unmigrated, "unmigrated", false, "legacy scenes with no migrated scene yet")
	return cmd
}

func (a *app) runList(cmd *cobra.Command, tableName string, f listFlags) error {
	if !slices.Contains(types.StandardTableNames, tableName) {
		return userError(fmt.Errorf("%w: %s", types.ErrTableNotFound, tableName))
	}
	if f.limit < 0 {
		return userError(fmt.Errorf("--limit must not be negative"))
	}
	if f.unmigrated && tableName != types.LegacyScenesTable {
		return userError(fmt.Errorf("--unmigrated only applies to %s", types.LegacyScenesTable))
	}
	filter := map[string]any{}
	if keys := splitKeys(f.filter); len(keys) > 0 {
		filter[types.FilterKeys] = keys
	}
	if f.limit > 0 {
		filter[types.FilterLimit] = f.limit
	}
	if f.unmigrated {
		filter[types.FilterUnmigrated] = true
	}

	return a.withStore(func(store types.SceneStore) error {
		table, err := store.GetTable(tableName)
		if err != nil {
			return sysError(err)
		}
		rows, err := table.Fetch(filter)
		if err != nil {
			return sysError(fmt.Errorf("fetch %s: %w", tableName, err))
		}
		if rows == nil {
			rows = []any{}
		}
		return printJSON(cmd.OutOrStdout(), rows)
	})
}
