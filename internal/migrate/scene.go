package migrate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

// DefaultTitle is used for scenes saved without a title.
const DefaultTitle = "Untitled"

// defaultItems are present in every legacy scene but only stored when the
// user changed them. Order is the output order.
var defaultItems = []struct {
	id    string
	props map[string]any
}{
	{"axis-x", map[string]any{"type": "AXIS", "axis": "x"}},
	{"axis-y", map[string]any{"type": "AXIS", "axis": "y"}},
	{"axis-z", map[string]any{"type": "AXIS", "axis": "z", "scale": "1/2"}},
	{"grid-xy", map[string]any{"type": "GRID", "axes": "xy"}},
	{"grid-yz", map[string]any{"type": "GRID", "axes": "yz", "visible": false}},
	{"grid-zx", map[string]any{"type": "GRID", "axes": "zx", "visible": false}},
}

// Initial state of a legacy scene. Dehydrated scenes store a diff against it.
var (
	initialFolders = map[string]map[string]any{
		"cameraFolder": {
			"isCollapsed":    true,
			"isDropDisabled": true,
			"isDragDisabled": true,
			"description":    "Camera Controls",
		},
		"axes": {
			"isCollapsed":    false,
			"isDropDisabled": true,
			"isDragDisabled": true,
			"description":    "Axes and Grids",
		},
	}
	initialGraphics = map[string]map[string]any{
		"camera": {"type": "CAMERA"},
	}
	initialTree = map[string][]string{
		"setup":        {"cameraFolder", "axes"},
		"cameraFolder": {"camera"},
		"axes":         {"axis-x", "axis-y", "axis-z", "grid-xy", "grid-yz", "grid-zx"},
	}
	mainFolderID = "mainFolder"
)

// SetDefaults returns a copy of d with the parts of the initial legacy scene
// that a dehydrated diff may omit: empty maps for missing sections, the
// fixed setup folders and camera, the fixed order-tree buckets, and a root
// bucket holding a single, empty main folder. d is not modified.
func SetDefaults(d types.Dehydrated) types.Dehydrated {
	out := types.Dehydrated{
		Folders:      mergeItems(initialFolders, d.Folders),
		MathGraphics: mergeItems(initialGraphics, d.MathGraphics),
		MathSymbols:  mergeItems(nil, d.MathSymbols),
		SortableTree: make(map[string][]string, len(initialTree)+len(d.SortableTree)+1),
		SliderValues: make(map[string]any, len(d.SliderValues)),
		Metadata:     d.Metadata,
	}
	for k, v := range d.SliderValues {
		out.SliderValues[k] = v
	}
	for k, v := range initialTree {
		out.SortableTree[k] = append([]string(nil), v...)
	}
	for k, v := range d.SortableTree {
		out.SortableTree[k] = append([]string{}, v...)
	}
	if _, ok := out.SortableTree[types.RootBucket]; !ok {
		out.SortableTree[types.RootBucket] = []string{mainFolderID}
		if _, ok := out.SortableTree[mainFolderID]; !ok {
			out.SortableTree[mainFolderID] = []string{}
		}
		out.Folders = mergeItems(map[string]map[string]any{
			mainFolderID: {"description": "A Folder"},
		}, out.Folders)
	}
	if out.Metadata.Title == "" {
		out.Metadata.Title = DefaultTitle
	}
	return out
}

// mergeItems overlays diff onto base, item by item and key by key, into a
// new map.
func mergeItems(base, diff map[string]map[string]any) map[string]map[string]any {
	out := make(map[string]map[string]any, len(base)+len(diff))
	for id, props := range base {
		out[id] = copyProps(props)
	}
	for id, props := range diff {
		merged := out[id]
		if merged == nil {
			merged = make(map[string]any, len(props))
		}
		for k, v := range props {
			merged[k] = v
		}
		out[id] = merged
	}
	return out
}

func copyProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props)+1)
	for k, v := range props {
		out[k] = v
	}
	return out
}

// orderedItems is an id-keyed map that remembers first insertion order.
type orderedItems struct {
	ids   []string
	props map[string]map[string]any
}

func (o *orderedItems) set(id string, props map[string]any) {
	if o.props == nil {
		o.props = make(map[string]map[string]any)
	}
	if _, ok := o.props[id]; !ok {
		o.ids = append(o.ids, id)
	}
	o.props[id] = props
}

// setGroup adds every entry of group in lexicographic id order.
func (o *orderedItems) setGroup(group map[string]map[string]any, mutate func(id string, props map[string]any)) {
	ids := make([]string, 0, len(group))
	for id := range group {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		props := copyProps(group[id])
		if mutate != nil {
			mutate(id, props)
		}
		o.set(id, props)
	}
}

// MigrateScene converts a legacy scene into the new schema. Issues are
// recorded in the Migrator's log, which is not reset. The legacy scene is
// not modified.
func (m *Migrator) MigrateScene(scene types.LegacyScene) (types.Scene, error) {
	d := SetDefaults(scene.Dehydrated)

	var merged orderedItems
	for _, def := range defaultItems {
		merged.set(def.id, copyProps(def.props))
	}
	merged.setGroup(d.Folders, func(_ string, props map[string]any) {
		props["type"] = string(types.ItemFolder)
	})
	merged.setGroup(d.MathGraphics, nil)
	merged.setGroup(d.MathSymbols, func(id string, props map[string]any) {
		if props["type"] != string(types.ItemVariableSlider) {
			return
		}
		if _, ok := props["value"]; ok {
			return
		}
		if v, ok := d.SliderValues[id]; ok {
			props["value"] = v
		}
	})

	items := make([]types.MathItem, 0, len(merged.ids))
	seen := make(map[string]bool, len(merged.ids))
	for _, id := range merged.ids {
		item, err := m.TranslateItem(id, merged.props[id])
		if err != nil {
			return types.Scene{}, fmt.Errorf("scene %q: %w", scene.Key, err)
		}
		items = append(items, item)
		seen[id] = true
	}

	order := d.SortableTree
	order[types.MainBucket] = order[types.RootBucket]
	delete(order, types.RootBucket)

	// Folders left at their defaults are missing from the dehydrated data
	// and only appear in the order tree.
	for _, id := range order[types.MainBucket] {
		if seen[id] {
			continue
		}
		item, err := m.TranslateItem(id, map[string]any{"type": string(types.ItemFolder)})
		if err != nil {
			return types.Scene{}, fmt.Errorf("scene %q: %w", scene.Key, err)
		}
		items = append(items, item)
		seen[id] = true
	}

	// Deleting a folder could leave its empty bucket behind.
	inMain := make(map[string]bool, len(order[types.MainBucket]))
	for _, id := range order[types.MainBucket] {
		inMain[id] = true
	}
	for bucket, children := range order {
		if len(children) == 0 && bucket != types.MainBucket && !inMain[bucket] {
			delete(order, bucket)
		}
	}
	if order[types.MainBucket] == nil {
		order[types.MainBucket] = []string{}
	}

	created := m.creationDate(d.Metadata.CreationDate)
	return types.Scene{
		Key:           scene.Key,
		Title:         d.Metadata.Title,
		Items:         items,
		ItemOrder:     order,
		TimesAccessed: scene.TimesAccessed,
		CreatedDate:   created,
		ModifiedDate:  created,
	}, nil
}

// creationDate strips the JSON quoting the legacy app left around the date.
// A date that is not RFC 3339 is kept as written and logged.
func (m *Migrator) creationDate(raw string) string {
	date := strings.ReplaceAll(raw, `"`, "")
	if date == "" {
		return ""
	}
	if _, err := time.Parse(time.RFC3339Nano, date); err != nil {
		m.warnf("Unparseable creationDate: %s", date)
	}
	return date
}

// Options configure MigrateScene.
type Options struct {
	// Logger receives each issue as it is recorded. Nil disables mirroring.
	Logger *zap.SugaredLogger
}

// MigrateScene converts one legacy scene with a fresh Migrator and returns
// the new scene together with the issues met on the way.
func MigrateScene(scene types.LegacyScene, opts Options) (types.Scene, []types.Issue, error) {
	log := NewIssueLog(opts.Logger)
	s, err := NewMigrator(log).MigrateScene(scene)
	return s, log.Issues(), err
}
