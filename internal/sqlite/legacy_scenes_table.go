package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

var _ types.Table = (*legacyScenesTable)(nil)

// legacyScenesTable stores scenes pulled from the legacy graphs table,
// keyed by url key. Rows hydrate to *types.LegacyScene.
type legacyScenesTable struct {
	backend *Backend
}

var legacySceneColumns = []string{
	"key",
	"dehydrated",
	"COALESCE(times_accessed, 0)",
	"last_accessed",
	"COALESCE(migration_note, '')",
}

// Get retrieves a legacy scene by key.
func (lt *legacyScenesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b := lt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	query, args, err := sq.Select(legacySceneColumns...).
		From(types.LegacyScenesTable).
		Where(sq.Eq{"key": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building legacy scene query: %w", err)
	}
	scene, err := hydrateLegacyScene(b.db.QueryRow(query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting legacy scene %s: %w", id, err)
	}
	return scene, nil
}

// Set creates or replaces the legacy scene stored under id. An empty id
// uses the scene's own key; the stored key always equals the returned id.
func (lt *legacyScenesTable) Set(id string, data any) (string, error) {
	scene, ok := data.(*types.LegacyScene)
	if !ok || scene == nil {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = scene.Key
	}
	if id == "" {
		return "", types.ErrInvalidID
	}

	b := lt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return "", types.ErrStoreDetached
	}

	dehydrated, err := json.Marshal(scene.Dehydrated)
	if err != nil {
		return "", fmt.Errorf("marshaling dehydrated scene %s: %w", id, err)
	}
	var lastAccessed *string
	if scene.LastAccessed != nil {
		s := scene.LastAccessed.UTC().Format(time.RFC3339Nano)
		lastAccessed = &s
	}

	_, err = b.db.Exec(
		`INSERT INTO legacy_scenes (key, dehydrated, times_accessed, last_accessed, migration_note)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
    dehydrated = excluded.dehydrated,
    times_accessed = excluded.times_accessed,
    last_accessed = excluded.last_accessed,
    migration_note = excluded.migration_note`,
		id, string(dehydrated), scene.TimesAccessed, lastAccessed, scene.MigrationNote,
	)
	if err != nil {
		return "", fmt.Errorf("persisting legacy scene %s: %w", id, err)
	}
	scene.Key = id

	if err := b.persist(types.LegacyScenesTable, b.persistLegacyScenesJSONL); err != nil {
		return "", fmt.Errorf("persisting %s.jsonl: %w", types.LegacyScenesTable, err)
	}
	return id, nil
}

// Delete removes a legacy scene by key. The migrated scene, if any, is kept.
func (lt *legacyScenesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b := lt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	res, err := b.db.Exec("DELETE FROM legacy_scenes WHERE key = ?", id)
	if err != nil {
		return fmt.Errorf("deleting legacy scene %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.ErrNotFound
	}
	if err := b.persist(types.LegacyScenesTable, b.persistLegacyScenesJSONL); err != nil {
		return fmt.Errorf("persisting %s.jsonl: %w", types.LegacyScenesTable, err)
	}
	return nil
}

// Fetch returns legacy scenes ordered by key. Supported filters are
// FilterKeys, FilterLimit and FilterUnmigrated; the latter keeps only
// scenes with no row of the same key in the scenes table.
func (lt *legacyScenesTable) Fetch(filter map[string]any) ([]any, error) {
	f, err := parseFilter(filter)
	if err != nil {
		return nil, err
	}
	b := lt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	q := sq.Select(legacySceneColumns...).From(types.LegacyScenesTable).OrderBy("key")
	if f.unmigrated {
		q = q.Where("NOT EXISTS (SELECT 1 FROM scenes WHERE scenes.key = legacy_scenes.key)")
	}
	query, args, err := f.apply(q, "key").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building legacy scene query: %w", err)
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching legacy scenes: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		scene, err := hydrateLegacyScene(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating legacy scene: %w", err)
		}
		results = append(results, scene)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating legacy scenes: %w", err)
	}
	return results, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func hydrateLegacyScene(row rowScanner) (*types.LegacyScene, error) {
	var (
		s            types.LegacyScene
		dehydrated   string
		lastAccessed sql.NullString
	)
	if err := row.Scan(&s.Key, &dehydrated, &s.TimesAccessed, &lastAccessed, &s.MigrationNote); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(dehydrated), &s.Dehydrated); err != nil {
		return nil, fmt.Errorf("parsing dehydrated scene %s: %w", s.Key, err)
	}
	if lastAccessed.Valid && lastAccessed.String != "" {
		t, err := parseTimestamp(lastAccessed.String)
		if err != nil {
			return nil, fmt.Errorf("parsing last_accessed of %s: %w", s.Key, err)
		}
		s.LastAccessed = &t
	}
	return &s, nil
}

// persistLegacyScenesJSONL rewrites legacy_scenes.jsonl from SQLite.
func (b *Backend) persistLegacyScenesJSONL() error {
	query, args, err := sq.Select(legacySceneColumns...).From(types.LegacyScenesTable).OrderBy("key").ToSql()
	if err != nil {
		return fmt.Errorf("building legacy scene query: %w", err)
	}
	rows, err := b.db.Query(query, args...)
	if err != nil {
		return fmt.Errorf("querying legacy scenes for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var (
			rec          legacySceneJSON
			dehydrated   string
			lastAccessed sql.NullString
		)
		if err := rows.Scan(&rec.Key, &dehydrated, &rec.TimesAccessed, &lastAccessed, &rec.MigrationNote); err != nil {
			return fmt.Errorf("scanning legacy scene for JSONL: %w", err)
		}
		rec.Dehydrated = rawJSON(dehydrated)
		if lastAccessed.Valid {
			rec.LastAccessed = &lastAccessed.String
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling legacy scene %s: %w", rec.Key, err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating legacy scenes for JSONL: %w", err)
	}
	return writeJSONL(jsonlFile(b.config.DataDir, types.LegacyScenesTable), records)
}

// rawJSON returns text as a raw JSON value, quoting it when it is not
// valid JSON on its own.
func rawJSON(text string) json.RawMessage {
	if json.Valid([]byte(text)) {
		return json.RawMessage(text)
	}
	quoted, _ := json.Marshal(text)
	return quoted
}
