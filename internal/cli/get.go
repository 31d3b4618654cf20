package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <table> <id>",
		Short: "Get one entity by ID",
		Long: fmt.Sprintf(`Get prints one entity as JSON. Legacy scenes are identified by key, migrated
scenes by scene_id.

Tables: %s, %s.

Example:
  scenemigrate get legacy_scenes abc123`, types.LegacyScenesTable, types.ScenesTable),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGet(cmd, args[0], args[1])
		},
	}
}

func (a *app) runGet(cmd *cobra.Command, tableName, id string) error {
	if !slices.Contains(types.StandardTableNames, tableName) {
		return userError(fmt.Errorf("%w: %s", types.ErrTableNotFound, tableName))
	}
	return a.withStore(func(store types.SceneStore) error {
		table, err := store.GetTable(tableName)
		if err != nil {
			return sysError(err)
		}
		entity, err := table.Get(id)
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
			return userError(fmt.Errorf("%s %s: %w", tableName, id, err))
		}
		if err != nil {
			return sysError(err)
		}
		return printJSON(cmd.OutOrStdout(), entity)
	})
}
