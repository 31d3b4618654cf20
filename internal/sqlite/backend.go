package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

// dbFile is the SQLite file rebuilt from JSONL on every Attach.
const dbFile = "scenes.db"

// Compile-time interface check.
var _ types.SceneStore = (*Backend)(nil)

// Backend implements types.SceneStore using SQLite as the query engine
// and JSONL files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table

	syncStrategy  string
	pendingWrites []pendingWrite
	pendingMu     sync.Mutex
}

// pendingWrite is a deferred JSONL rewrite for one table. Each table is
// queued at most once since a rewrite always dumps the whole table.
type pendingWrite struct {
	tableName string
	persist   func() error
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		tables: make(map[string]types.Table),
	}
}

// GetTable returns the Table for the specified table name.
// Returns ErrStoreDetached if the backend is not attached and
// ErrTableNotFound if the name is not recognized.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}

// Attach initializes the backend with the given configuration. It creates
// DataDir and any missing JSONL files, rebuilds the SQLite file from
// scratch, and loads every JSONL file into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if config.DataDir == "" {
		config.DataDir = "."
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := initJSONLFiles(config.DataDir); err != nil {
		return err
	}

	dbPath := filepath.Join(config.DataDir, dbFile)
	if err := os.Remove(dbPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing stale %s: %w", dbFile, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbFile, err)
	}
	// SQLite has a single writer; one connection serializes access.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}
	if err := loadAllJSONL(db, config.DataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.syncStrategy = config.EffectiveSyncStrategy()
	b.pendingWrites = nil
	b.attached = true

	b.tables[types.LegacyScenesTable] = &legacyScenesTable{backend: b}
	b.tables[types.ScenesTable] = &scenesTable{backend: b}
	return nil
}

// Detach flushes queued JSONL writes, closes the SQLite connection and
// releases the tables. After Detach, all operations return
// ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if err := b.flushPendingWrites(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}

	if err := b.db.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dbFile, err)
	}
	b.db = nil
	b.attached = false
	b.tables = make(map[string]types.Table)
	return nil
}

func createSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}

// initJSONLFiles creates an empty JSONL file for every table that has none.
func initJSONLFiles(dataDir string) error {
	for _, name := range types.StandardTableNames {
		path := jsonlFile(dataDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}

// generateUUID generates a new UUID v7 for scene IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// persist rewrites a table's JSONL file now, or queues the rewrite for
// Detach under the on_close strategy. The caller must hold b.mu.
func (b *Backend) persist(tableName string, fn func() error) error {
	if b.syncStrategy == types.SyncImmediate {
		return fn()
	}

	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	for _, pw := range b.pendingWrites {
		if pw.tableName == tableName {
			return nil
		}
	}
	b.pendingWrites = append(b.pendingWrites, pendingWrite{tableName: tableName, persist: fn})
	return nil
}

// flushPendingWrites executes all queued JSONL rewrites. The caller must
// hold b.mu. On failure the remaining writes stay queued.
func (b *Backend) flushPendingWrites() error {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()

	for len(b.pendingWrites) > 0 {
		pw := b.pendingWrites[0]
		if err := pw.persist(); err != nil {
			return fmt.Errorf("flush %s: %w", pw.tableName, err)
		}
		b.pendingWrites = b.pendingWrites[1:]
	}
	b.pendingWrites = nil
	return nil
}
