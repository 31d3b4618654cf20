package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

var _ types.Table = (*scenesTable)(nil)

// scenesTable stores migrated scenes. Rows hydrate to *types.Scene. The
// scene key is unique, so saving a scene for a key that already has one
// updates that row.
type scenesTable struct {
	backend *Backend
}

var sceneColumns = []string{
	"scene_id",
	"key",
	"COALESCE(title, '')",
	"items",
	"item_order",
	"COALESCE(times_accessed, 0)",
	"COALESCE(created_date, '')",
	"COALESCE(modified_date, '')",
}

// Get retrieves a scene by scene id.
func (st *scenesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b := st.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	query, args, err := sq.Select(sceneColumns...).
		From(types.ScenesTable).
		Where(sq.Eq{"scene_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building scene query: %w", err)
	}
	scene, err := hydrateScene(b.db.QueryRow(query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting scene %s: %w", id, err)
	}
	return scene, nil
}

// Set saves a scene. With an empty id the scene already stored under the
// same key is updated, or a new UUID v7 is assigned. With an explicit id,
// ErrKeyConflict is returned if the key belongs to a different scene.
// The scene's SceneID is set to the returned id.
func (st *scenesTable) Set(id string, data any) (string, error) {
	scene, ok := data.(*types.Scene)
	if !ok || scene == nil {
		return "", types.ErrInvalidData
	}
	if scene.Key == "" {
		return "", types.ErrInvalidKey
	}

	b := st.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return "", types.ErrStoreDetached
	}

	var existing string
	err := b.db.QueryRow("SELECT scene_id FROM scenes WHERE key = ?", scene.Key).Scan(&existing)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("checking scene key %s: %w", scene.Key, err)
	}
	switch {
	case id == "" && existing != "":
		id = existing
	case id == "":
		id = generateUUID()
	case existing != "" && existing != id:
		return "", fmt.Errorf("%w: %s", types.ErrKeyConflict, scene.Key)
	}

	itemsJSON, err := scene.ItemsJSON()
	if err != nil {
		return "", fmt.Errorf("marshaling items of %s: %w", scene.Key, err)
	}
	order := scene.ItemOrder
	if order == nil {
		order = map[string][]string{}
	}
	orderJSON, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("marshaling item order of %s: %w", scene.Key, err)
	}

	_, err = b.db.Exec(
		`INSERT INTO scenes (scene_id, key, title, items, item_order, times_accessed, created_date, modified_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(scene_id) DO UPDATE SET
    key = excluded.key,
    title = excluded.title,
    items = excluded.items,
    item_order = excluded.item_order,
    times_accessed = excluded.times_accessed,
    created_date = excluded.created_date,
    modified_date = excluded.modified_date`,
		id, scene.Key, scene.Title, string(itemsJSON), string(orderJSON),
		scene.TimesAccessed, scene.CreatedDate, scene.ModifiedDate,
	)
	if err != nil {
		return "", fmt.Errorf("persisting scene %s: %w", scene.Key, err)
	}
	scene.SceneID = id

	if err := b.persist(types.ScenesTable, b.persistScenesJSONL); err != nil {
		return "", fmt.Errorf("persisting %s.jsonl: %w", types.ScenesTable, err)
	}
	return id, nil
}

// Delete removes a scene by scene id.
func (st *scenesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b := st.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	res, err := b.db.Exec("DELETE FROM scenes WHERE scene_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting scene %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.ErrNotFound
	}
	if err := b.persist(types.ScenesTable, b.persistScenesJSONL); err != nil {
		return fmt.Errorf("persisting %s.jsonl: %w", types.ScenesTable, err)
	}
	return nil
}

// Fetch returns scenes ordered by key. Supported filters are FilterKeys
// and FilterLimit.
func (st *scenesTable) Fetch(filter map[string]any) ([]any, error) {
	f, err := parseFilter(filter)
	if err != nil {
		return nil, err
	}
	b := st.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	q := sq.Select(sceneColumns...).From(types.ScenesTable).OrderBy("key")
	query, args, err := f.apply(q, "key").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building scene query: %w", err)
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching scenes: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		scene, err := hydrateScene(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating scene: %w", err)
		}
		results = append(results, scene)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scenes: %w", err)
	}
	return results, nil
}

func hydrateScene(row rowScanner) (*types.Scene, error) {
	var (
		s                types.Scene
		items, itemOrder string
	)
	err := row.Scan(&s.SceneID, &s.Key, &s.Title, &items, &itemOrder,
		&s.TimesAccessed, &s.CreatedDate, &s.ModifiedDate)
	if err != nil {
		return nil, err
	}
	if err := s.SetItemsJSON([]byte(items)); err != nil {
		return nil, fmt.Errorf("parsing items of %s: %w", s.Key, err)
	}
	if err := json.Unmarshal([]byte(itemOrder), &s.ItemOrder); err != nil {
		return nil, fmt.Errorf("parsing item order of %s: %w", s.Key, err)
	}
	return &s, nil
}

// persistScenesJSONL rewrites scenes.jsonl from SQLite.
func (b *Backend) persistScenesJSONL() error {
	query, args, err := sq.Select(sceneColumns...).From(types.ScenesTable).OrderBy("key").ToSql()
	if err != nil {
		return fmt.Errorf("building scene query: %w", err)
	}
	rows, err := b.db.Query(query, args...)
	if err != nil {
		return fmt.Errorf("querying scenes for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var (
			rec              sceneJSON
			items, itemOrder string
		)
		err := rows.Scan(&rec.SceneID, &rec.Key, &rec.Title, &items, &itemOrder,
			&rec.TimesAccessed, &rec.CreatedDate, &rec.ModifiedDate)
		if err != nil {
			return fmt.Errorf("scanning scene for JSONL: %w", err)
		}
		rec.Items = rawJSON(items)
		rec.ItemOrder = rawJSON(itemOrder)
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling scene %s: %w", rec.Key, err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating scenes for JSONL: %w", err)
	}
	return writeJSONL(jsonlFile(b.config.DataDir, types.ScenesTable), records)
}
