package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/math3d-scenes/internal/legacydb"
	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

type fetchFlags struct {
	limit  int
	filter string
	dsn    string
}

func newFetchCmd(a *app) *cobra.Command {
	var f fetchFlags
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch legacy scenes from the legacy PostgreSQL database",
		Long: `Fetch reads url_key, dehydrated, times_accessed and last_accessed from the
legacy graphs table and saves each row as a legacy scene, updating scenes
already stored under the same key. Migration notes are kept.

The database URL comes from --dsn, config legacy_dsn, or LEGACY_DATABASE_URL.

Example:
  scenemigrate fetch --limit 100
  scenemigrate fetch --filter abc123,def456`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFetch(cmd, f)
		},
	}
	cmd.Flags().IntVarP(&f.limit, "limit", "l", 0, "limit the number of scenes fetched")
	cmd.Flags().StringVar(&f.filter, "filter", "", "comma-separated url keys to fetch")
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "legacy database URL")
	return cmd
}

// source opens the legacy database named by flag or config.
func (a *app) source(ctx context.Context, dsnFlag string) (*legacydb.Source, func(), error) {
	dsn := dsnFlag
	if dsn == "" {
		dsn = a.v.GetString(cfgKeyLegacyDSN)
	}
	if dsn == "" {
		return nil, nil, userError(legacydb.ErrNoDSN)
	}
	pool, err := legacydb.NewPool(ctx, dsn)
	if err != nil {
		return nil, nil, sysError(err)
	}
	return legacydb.NewSource(pool, a.log), pool.Close, nil
}

func (a *app) runFetch(cmd *cobra.Command, f fetchFlags) error {
	if f.limit < 0 {
		return userError(fmt.Errorf("--limit must not be negative"))
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	src, closeSource, err := a.source(ctx, f.dsn)
	if err != nil {
		return err
	}
	defer closeSource()

	scenes, err := src.Fetch(ctx, legacydb.FetchOptions{Keys: splitKeys(f.filter), Limit: f.limit})
	if err != nil {
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
		a.log.Infow("fetch complete", "scenes", len(scenes))
		return a.report(cmd.OutOrStdout(), []string{"fetched"}, map[string]any{"fetched": len(scenes)})
	})
}
