package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/math3d-scenes/internal/migrate"
	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

type migrateFlags struct {
	limit      int
	filter     string
	failFast   bool
	unmigrated bool
}

func newMigrateCmd(a *app) *cobra.Command {
	var f migrateFlags
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate stored legacy scenes to the new schema",
		Long: `Migrate translates stored legacy scenes into scenes of the new schema and saves
them, updating any scene already stored under the same key. Each legacy
scene's migration note is replaced with the issues met on the way, or with
the error that stopped it. --filter takes precedence over --limit.

The command exits 1 if any scene failed.

Example:
  scenemigrate migrate --limit 50
  scenemigrate migrate --filter abc123 --fail-fast
  scenemigrate migrate --unmigrated`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMigrate(cmd, f)
		},
	}
	cmd.Flags().IntVarP(&f.limit, "limit", "l", 0, "limit the number of scenes migrated")
	cmd.Flags().StringVar(&f.filter, "filter", "", "comma-separated scene keys to migrate")
	cmd.Flags().BoolVar(&f.failFast, "fail-fast", false, "stop at the first scene that fails")
	cmd.Flags().BoolVar(&f.unmigrated, "unmigrated", false, "only scenes with no migrated scene yet")
	return cmd
}

// migrateSummary counts the outcome of a migrate run.
type migrateSummary struct {
	Migrated   int
	Failed     int
	WithIssues int
}

func (a *app) runMigrate(cmd *cobra.Command, f migrateFlags) error {
	if f.limit < 0 {
		return userError(fmt.Errorf("--limit must not be negative"))
	}
	filter := map[string]any{}
	if keys := splitKeys(f.filter); len(keys) > 0 {
		filter[types.FilterKeys] = keys
	} else if f.limit > 0 {
		filter[types.FilterLimit] = f.limit
	}
	if f.unmigrated {
		filter[types.FilterUnmigrated] = true
	}

	var sum migrateSummary
	err := a.withStore(func(store types.SceneStore) error {
		legacy, scenes, err := tables(store)
		if err != nil {
			return err
		}
		rows, err := legacy.Fetch(filter)
		if err != nil {
			return sysError(fmt.Errorf("fetch legacy scenes: %w", err))
		}
		for _, row := range rows {
			ls := row.(*types.LegacyScene)
			err := a.migrateOne(legacy, scenes, ls, &sum)
			if err == nil {
				continue
			}
			var ce *exitError
			if f.failFast || (errors.As(err, &ce) && ce.code == exitSysError) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	a.log.Infow("migrate complete", "migrated", sum.Migrated, "failed", sum.Failed, "with_issues", sum.WithIssues)
	err = a.report(cmd.OutOrStdout(), []string{"migrated", "failed", "with_issues"}, map[string]any{
		"migrated":    sum.Migrated,
		"failed":      sum.Failed,
		"with_issues": sum.WithIssues,
	})
	if err != nil {
		return sysError(err)
	}
	if sum.Failed > 0 {
		return userError(fmt.Errorf("%d of %d scenes failed to migrate", sum.Failed, sum.Failed+sum.Migrated))
	}
	return nil
}

// migrateOne migrates ls, saves the new scene and records the migration
// note. A migration failure is returned after the note is saved.
func (a *app) migrateOne(legacy, scenes types.Table, ls *types.LegacyScene, sum *migrateSummary) error {
	log := a.log.With("scene", ls.Key)
	scene, issues, err := migrate.MigrateScene(*ls, migrate.Options{Logger: log})
	if err != nil {
		sum.Failed++
		log.Errorw("migration failed", "error", err)
		ls.MigrationNote = err.Error()
		if _, serr := legacy.Set(ls.Key, ls); serr != nil {
			return sysError(fmt.Errorf("saving migration note of %s: %w", ls.Key, serr))
		}
		return userError(err)
	}

	if _, err := scenes.Set("", &scene); err != nil {
		return sysError(fmt.Errorf("saving scene %s: %w", ls.Key, err))
	}
	ls.MigrationNote = migrate.Note(issues)
	if _, err := legacy.Set(ls.Key, ls); err != nil {
		return sysError(fmt.Errorf("saving migration note of %s: %w", ls.Key, err))
	}
	sum.Migrated++
	if len(issues) > 0 {
		sum.WithIssues++
	}
	log.Debugw("migrated", "scene_id", scene.SceneID, "items", len(scene.Items), "issues", len(issues))
	return nil
}
