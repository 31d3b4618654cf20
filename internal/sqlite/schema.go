// Package sqlite implements the SQLite scene store.
// SQLite is the query engine; one JSONL file per table in the data
// directory is the source of truth and is reloaded on every Attach.
package sqlite

// Schema DDL for all tables.
const (
	createLegacyScenes = `CREATE TABLE legacy_scenes (
    key TEXT PRIMARY KEY,
    dehydrated TEXT NOT NULL,
    times_accessed INTEGER,
    last_accessed TEXT,
    migration_note TEXT
);`

	createScenes = `CREATE TABLE scenes (
    scene_id TEXT PRIMARY KEY,
    key TEXT NOT NULL UNIQUE,
    title TEXT,
    items TEXT NOT NULL,
    item_order TEXT NOT NULL,
    times_accessed INTEGER,
    created_date TEXT,
    modified_date TEXT
);`
)

// Index DDL for common queries.
const (
	idxLegacyScenesNote = `CREATE INDEX idx_legacy_scenes_note ON legacy_scenes(migration_note);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createLegacyScenes,
	createScenes,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxLegacyScenesNote,
}
