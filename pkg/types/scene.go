package types

import (
	"encoding/json"
	"errors"
	"time"
)

// LegacyScene is a scene fetched from the old graphs table, keyed by its
// url key. MigrationNote holds the issue log of the last migration attempt.
type LegacyScene struct {
	Key           string     `json:"key"`
	Dehydrated    Dehydrated `json:"dehydrated"`
	TimesAccessed int        `json:"times_accessed"`
	LastAccessed  *time.Time `json:"last_accessed,omitempty"`
	MigrationNote string     `json:"migration_note"`
}

// Dehydrated is the serialized payload of a legacy scene. Item maps are keyed
// by item id and hold loosely typed legacy properties.
type Dehydrated struct {
	Folders      map[string]map[string]any `json:"folders"`
	MathGraphics map[string]map[string]any `json:"mathGraphics"`
	MathSymbols  map[string]map[string]any `json:"mathSymbols"`
	SortableTree map[string][]string       `json:"sortableTree"`
	SliderValues map[string]any            `json:"sliderValues"`
	Metadata     SceneMetadata             `json:"metadata"`
}

// SceneMetadata is the metadata block of a dehydrated scene. CreationDate is
// stored by the legacy app as a JSON-quoted ISO timestamp.
type SceneMetadata struct {
	Title             string `json:"title,omitempty"`
	CreationDate      string `json:"creationDate,omitempty"`
	VersionAtCreation string `json:"versionAtCreation,omitempty"`
}

// Reserved order-tree buckets.
const (
	RootBucket = "root"
	MainBucket = "main"
)

// Scene is a migrated scene in the new schema. ItemOrder maps folder ids to
// their ordered child ids, rooted at MainBucket.
type Scene struct {
	SceneID       string              `json:"scene_id"`
	Key           string              `json:"key"`
	Title         string              `json:"title"`
	Items         []MathItem          `json:"items"`
	ItemOrder     map[string][]string `json:"item_order"`
	TimesAccessed int                 `json:"times_accessed"`
	CreatedDate   string              `json:"created_date,omitempty"`
	ModifiedDate  string              `json:"modified_date,omitempty"`

	// RawItems carries items verbatim when they are not in the migrated
	// schema, as with scenes pulled from a web deployment. When set it is
	// written in place of Items.
	RawItems json.RawMessage `json:"-"`
}

// ErrItemsNotArray is returned when a scene's items are not a JSON array.
var ErrItemsNotArray = errors.New("items must be a JSON array")

// SetItemsJSON stores a JSON array of items. Items in the migrated schema
// are decoded into Items; anything else is kept verbatim in RawItems.
func (s *Scene) SetItemsJSON(data []byte) error {
	if items, err := DecodeItems(data); err == nil {
		s.Items, s.RawItems = items, nil
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil || elems == nil {
		return ErrItemsNotArray
	}
	s.Items, s.RawItems = nil, append(json.RawMessage(nil), data...)
	return nil
}

// ItemsJSON returns the scene's items as a JSON array, preferring RawItems.
func (s *Scene) ItemsJSON() ([]byte, error) {
	if s.RawItems != nil {
		return s.RawItems, nil
	}
	if s.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Items)
}

type sceneFields Scene

// MarshalJSON writes RawItems in place of Items when set.
func (s Scene) MarshalJSON() ([]byte, error) {
	items, err := s.ItemsJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		sceneFields
		Items json.RawMessage `json:"items"`
	}{sceneFields(s), items})
}

// UnmarshalJSON accepts items in either the migrated or a foreign schema.
func (s *Scene) UnmarshalJSON(data []byte) error {
	var aux struct {
		sceneFields
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Scene(aux.sceneFields)
	if len(aux.Items) == 0 || string(aux.Items) == "null" {
		return nil
	}
	return s.SetItemsJSON(aux.Items)
}
