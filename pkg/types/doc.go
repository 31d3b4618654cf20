// Package types defines the data model of the scene migrator: legacy scene
// records, the item type tags shared by old and new formats, the new
// MathItem schema, migration issues, configuration, the SceneStore and Table
// storage interfaces, and the sentinel errors returned across packages.
package types
