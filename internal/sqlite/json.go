package sqlite

import "encoding/json"

// JSONL record structures. Field names match the SQLite column names so
// the loader can insert records column by column. JSON-valued columns are
// written as nested objects, not as quoted strings.

// legacySceneJSON represents a legacy scene in legacy_scenes.jsonl.
type legacySceneJSON struct {
	Key           string          `json:"key"`
	Dehydrated    json.RawMessage `json:"dehydrated"`
	TimesAccessed int             `json:"times_accessed"`
	LastAccessed  *string         `json:"last_accessed"`
	MigrationNote string          `json:"migration_note"`
}

// sceneJSON represents a migrated scene in scenes.jsonl.
type sceneJSON struct {
	SceneID       string          `json:"scene_id"`
	Key           string          `json:"key"`
	Title         string          `json:"title"`
	Items         json.RawMessage `json:"items"`
	ItemOrder     json.RawMessage `json:"item_order"`
	TimesAccessed int             `json:"times_accessed"`
	CreatedDate   string          `json:"created_date"`
	ModifiedDate  string          `json:"modified_date"`
}
