package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

func attach(t *testing.T, dir string, strategy string) *Backend {
	t.Helper()
	b := NewBackend()
	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir, SyncStrategy: strategy})
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	return b
}

func table(t *testing.T, b *Backend, name string) types.Table {
	t.Helper()
	tbl, err := b.GetTable(name)
	if err != nil {
		t.Fatalf("GetTable(%s) failed: %v", name, err)
	}
	return tbl
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()
	b := attach(t, tmpDir, "")
	defer b.Detach()

	if _, err := os.Stat(filepath.Join(tmpDir, dbFile)); err != nil {
		t.Errorf("%s not created: %v", dbFile, err)
	}
	for _, name := range types.StandardTableNames {
		info, err := os.Stat(jsonlFile(tmpDir, name))
		if err != nil {
			t.Errorf("%s.jsonl not created: %v", name, err)
			continue
		}
		if info.Size() != 0 {
			t.Errorf("%s.jsonl: expected empty file, got %d bytes", name, info.Size())
		}
	}

	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: tmpDir})
	if err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := attach(t, dir, "")
	defer b.Detach()

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("data dir not created: %v", err)
	}
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config types.Config
		want   error
	}{
		{"empty backend", types.Config{DataDir: t.TempDir()}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "dolt", DataDir: t.TempDir()}, types.ErrBackendUnknown},
		{"unknown sync", types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir(), SyncStrategy: "batch"}, types.ErrSyncStrategyUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewBackend().Attach(tt.config); err != tt.want {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBackend_Detach(t *testing.T) {
	b := attach(t, t.TempDir(), "")
	tbl := table(t, b, types.ScenesTable)

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	if _, err := b.GetTable(types.ScenesTable); err != types.ErrStoreDetached {
		t.Errorf("expected ErrStoreDetached, got %v", err)
	}
	if _, err := tbl.Fetch(nil); err != types.ErrStoreDetached {
		t.Errorf("held table: expected ErrStoreDetached, got %v", err)
	}
}

func TestBackend_GetTable(t *testing.T) {
	b := attach(t, t.TempDir(), "")
	defer b.Detach()

	for _, name := range types.StandardTableNames {
		if _, err := b.GetTable(name); err != nil {
			t.Errorf("GetTable(%s) failed: %v", name, err)
		}
	}
	if _, err := b.GetTable("graphs"); err != types.ErrTableNotFound {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

func TestBackend_ReattachReloadsJSONL(t *testing.T) {
	tmpDir := t.TempDir()
	b := attach(t, tmpDir, "")
	if _, err := table(t, b, types.LegacyScenesTable).Set("", &types.LegacyScene{Key: "abc", TimesAccessed: 3}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := table(t, b, types.ScenesTable).Set("", &types.Scene{Key: "abc", Title: "Saddle"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	b = attach(t, tmpDir, "")
	defer b.Detach()

	got, err := table(t, b, types.LegacyScenesTable).Get("abc")
	if err != nil {
		t.Fatalf("Get after reattach failed: %v", err)
	}
	if got.(*types.LegacyScene).TimesAccessed != 3 {
		t.Errorf("expected times_accessed 3, got %d", got.(*types.LegacyScene).TimesAccessed)
	}
	scenes, err := table(t, b, types.ScenesTable).Fetch(nil)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(scenes) != 1 || scenes[0].(*types.Scene).Title != "Saddle" {
		t.Errorf("expected one scene titled Saddle, got %v", scenes)
	}
}

func TestBackend_SyncOnClose(t *testing.T) {
	tmpDir := t.TempDir()
	b := attach(t, tmpDir, types.SyncOnClose)

	tbl := table(t, b, types.LegacyScenesTable)
	for _, key := range []string{"a", "b"} {
		if _, err := tbl.Set(key, &types.LegacyScene{}); err != nil {
			t.Fatalf("Set(%s) failed: %v", key, err)
		}
	}

	info, err := os.Stat(jsonlFile(tmpDir, types.LegacyScenesTable))
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("on_close: expected no JSONL write before Detach, got %d bytes", info.Size())
	}
	if len(b.pendingWrites) != 1 {
		t.Errorf("expected one queued table rewrite, got %d", len(b.pendingWrites))
	}

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	records, err := readJSONL(jsonlFile(tmpDir, types.LegacyScenesTable))
	if err != nil {
		t.Fatalf("readJSONL failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records after Detach, got %d", len(records))
	}
}
