package types

// Standard table names for SceneStore.GetTable.
const (
	LegacyScenesTable = "legacy_scenes"
	ScenesTable       = "scenes"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	LegacyScenesTable,
	ScenesTable,
}

// Filter keys understood by Table.Fetch.
const (
	FilterKeys       = "keys"       // []string, match any of the scene keys
	FilterLimit      = "limit"      // int, cap on returned rows
	FilterUnmigrated = "unmigrated" // bool, legacy scenes with no migrated scene yet
)
