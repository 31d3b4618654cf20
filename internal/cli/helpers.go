package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/math3d-scenes/internal/paths"
	"github.com/mesh-intelligence/math3d-scenes/pkg/sqlite"
	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

// dataDir resolves the data directory: --data-dir flag, then config.yaml
// data_dir, then SCENES_DATA_DIR, then $(CWD)/.scenes-db.
func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.v.GetString(cfgKeyDataDir))
}

// withStore attaches the scene store, runs fn and detaches. A Detach
// failure is reported unless fn already failed.
func (a *app) withStore(fn func(types.SceneStore) error) (err error) {
	dir, err := a.dataDir()
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	store := sqlite.NewBackend()
	if err := store.Attach(a.storeConfig(dir)); err != nil {
		if errors.Is(err, types.ErrBackendUnknown) || errors.Is(err, types.ErrBackendEmpty) ||
			errors.Is(err, types.ErrSyncStrategyUnknown) {
			return userError(fmt.Errorf("attach store: %w", err))
		}
		return sysError(fmt.Errorf("attach store: %w", err))
	}
	a.log.Debugw("store attached", "data_dir", dir)

	defer func() {
		if derr := store.Detach(); derr != nil && err == nil {
			err = sysError(fmt.Errorf("detach store: %w", derr))
		}
	}()
	return fn(store)
}

// tables returns the legacy and migrated scene tables of store.
func tables(store types.SceneStore) (legacy, scenes types.Table, err error) {
	if legacy, err = store.GetTable(types.LegacyScenesTable); err != nil {
		return nil, nil, sysError(err)
	}
	if scenes, err = store.GetTable(types.ScenesTable); err != nil {
		return nil, nil, sysError(err)
	}
	return legacy, scenes, nil
}

// splitKeys parses a comma-separated --filter value.
func splitKeys(filter string) []string {
	var keys []string
	for _, k := range strings.Split(filter, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// saveLegacy stores scene, keeping the migration note already on file when
// the incoming scene carries none.
func saveLegacy(legacy types.Table, scene *types.LegacyScene) error {
	if scene.MigrationNote == "" {
		if old, err := legacy.Get(scene.Key); err == nil {
			scene.MigrationNote = old.(*types.LegacyScene).MigrationNote
		} else if !errors.Is(err, types.ErrNotFound) {
			return err
		}
	}
	_, err := legacy.Set(scene.Key, scene)
	return err
}

// printJSON writes v to w as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// report prints a command summary as JSON or as "key: value" lines in the
// given order.
func (a *app) report(w io.Writer, order []string, fields map[string]any) error {
	if a.flags.jsonMode {
		return printJSON(w, fields)
	}
	for _, k := range order {
		if _, err := fmt.Fprintf(w, "%s: %v\n", k, fields[k]); err != nil {
			return err
		}
	}
	return nil
}
