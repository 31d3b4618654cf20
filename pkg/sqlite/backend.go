// Package sqlite provides the public API for the SQLite scene store.
// It exposes the backend factory and the dump file codecs while keeping
// implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/math3d-scenes/internal/sqlite"
	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

// ErrMalformedDump is returned by ReadLegacyDump for undecodable records.
var ErrMalformedDump = sqlite.ErrMalformedDump

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".scenes-db",
//	})
//	defer store.Detach()
func NewBackend() types.SceneStore {
	return sqlite.NewBackend()
}

// ReadLegacyDump reads legacy scenes from a JSON array or JSONL export of
// the legacy graphs table.
func ReadLegacyDump(path string) ([]types.LegacyScene, error) {
	return sqlite.ReadLegacyDump(path)
}

// WriteSceneDump writes migrated scenes to path as JSONL.
func WriteSceneDump(path string, scenes []types.Scene) error {
	return sqlite.WriteSceneDump(path, scenes)
}
