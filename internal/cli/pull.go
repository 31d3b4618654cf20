package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/math3d-scenes/internal/legacydb"
	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

type pullFlags struct {
	dsn       string
	chunkSize int
}

func newPullCmd(a *app) *cobra.Command {
	var f pullFlags
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Pull scenes and legacy scenes from a web deployment database",
		Long: `Pull copies the scenes_scene and scenes_legacyscene tables of a running web
deployment into the local store, page by page, updating rows by key.
Scene ids are assigned locally.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPull(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "source database URL (default: config legacy_dsn)")
	cmd.Flags().IntVar(&f.chunkSize, "chunk-size", legacydb.DefaultChunkSize, "rows per page")
	return cmd
}

func (a *app) runPull(cmd *cobra.Command, f pullFlags) error {
	if f.chunkSize <= 0 {
		return userError(fmt.Errorf("--chunk-size must be positive"))
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

	return a.withStore(func(store types.SceneStore) error {
		legacy, scenes, err := tables(store)
		if err != nil {
			return err
		}
		opts := legacydb.PullOptions{ChunkSize: f.chunkSize}

		var nScenes, nLegacy int
		err = src.PullScenes(ctx, opts, func(page []types.Scene) error {
			for i := range page {
				if _, err := scenes.Set("", &page[i]); err != nil {
					return fmt.Errorf("saving scene %s: %w", page[i].Key, err)
				}
			}
			nScenes += len(page)
			return nil
		})
		if err != nil {
			return sysError(err)
		}

		err = src.PullLegacyScenes(ctx, opts, func(page []types.LegacyScene) error {
			for i := range page {
				if _, err := legacy.Set(page[i].Key, &page[i]); err != nil {
					return fmt.Errorf("saving legacy scene %s: %w", page[i].Key, err)
				}
			}
			nLegacy += len(page)
			return nil
		})
		if err != nil {
			return sysError(err)
		}

		a.log.Infow("pull complete", "scenes", nScenes, "legacy_scenes", nLegacy)
		return a.report(cmd.OutOrStdout(), []string{"scenes", "legacy_scenes"}, map[string]any{
			"scenes":        nScenes,
			"legacy_scenes": nLegacy,
		})
	})
}
