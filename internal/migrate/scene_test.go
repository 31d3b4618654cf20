package migrate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/math3d-scenes/internal/logger"
	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

func itemIDs(items []types.MathItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func findItem(t *testing.T, items []types.MathItem, id string) types.MathItem {
	t.Helper()
	for _, it := range items {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("item %q not found in %v", id, itemIDs(items))
	return types.MathItem{}
}

func TestMigrateSceneSynthesizesMissingFolder(t *testing.T) {
	scene := types.LegacyScene{
		Key: "abc",
		Dehydrated: types.Dehydrated{
			SortableTree: map[string][]string{"root": {"folderA"}},
		},
	}
	got, issues, err := MigrateScene(scene, Options{Logger: logger.Test(t)})
	require.NoError(t, err)
	assert.Empty(t, issues)

	folder := findItem(t, got.Items, "folderA")
	assert.Equal(t, types.ItemFolder, folder.Type)
	assert.Equal(t, &types.FolderProperties{Description: "Folder", IsCollapsed: "false"}, folder.Properties)

	assert.Equal(t, []string{"folderA"}, got.ItemOrder["main"])
	assert.NotContains(t, got.ItemOrder, "root")
	assert.Equal(t, "folderA", got.Items[len(got.Items)-1].ID)
}

func TestMigrateSceneDefaultsAndOrder(t *testing.T) {
	scene := types.LegacyScene{Key: "empty", TimesAccessed: 7}
	got, issues, err := MigrateScene(scene, Options{})
	require.NoError(t, err)
	assert.Empty(t, issues)

	assert.Equal(t, []string{
		"axis-x", "axis-y", "axis-z", "grid-xy", "grid-yz", "grid-zx",
		"axes", "cameraFolder", "mainFolder",
		"camera",
	}, itemIDs(got.Items))
	assert.Equal(t, "empty", got.Key)
	assert.Equal(t, DefaultTitle, got.Title)
	assert.Equal(t, 7, got.TimesAccessed)

	assert.Equal(t, map[string][]string{
		"main":         {"mainFolder"},
		"mainFolder":   {},
		"setup":        {"cameraFolder", "axes"},
		"cameraFolder": {"camera"},
		"axes":         {"axis-x", "axis-y", "axis-z", "grid-xy", "grid-yz", "grid-zx"},
	}, got.ItemOrder)

	cameraFolder := findItem(t, got.Items, "cameraFolder").Properties.(*types.FolderProperties)
	assert.Equal(t, "Camera Controls", cameraFolder.Description)
	assert.Equal(t, "true", cameraFolder.IsCollapsed)
	assert.Equal(t, "A Folder", findItem(t, got.Items, "mainFolder").Properties.(*types.FolderProperties).Description)

	gridYZ := findItem(t, got.Items, "grid-yz").Properties.(*types.GridProperties)
	assert.Equal(t, "false", gridYZ.Visible)
	assert.Equal(t, "yz", gridYZ.Axes)
	axisZ := findItem(t, got.Items, "axis-z").Properties.(*types.AxisProperties)
	assert.Equal(t, "1/2", axisZ.Scale)
}

func TestMigrateSceneMergeIsRightBiased(t *testing.T) {
	scene := types.LegacyScene{
		Key: "k",
		Dehydrated: types.Dehydrated{
			MathGraphics: map[string]map[string]any{
				"axis-x": {"type": "AXIS", "color": "#FF0000"},
				"p1":     {"type": "POINT", "coords": "[1,2,3]"},
			},
			SortableTree: map[string][]string{"root": {"f1"}, "f1": {"p1"}},
		},
	}
	got, _, err := MigrateScene(scene, Options{})
	require.NoError(t, err)

	ids := itemIDs(got.Items)
	assert.Equal(t, "axis-x", ids[0], "a default keeps its position when overridden")
	axis := got.Items[0].Properties.(*types.AxisProperties)
	assert.Equal(t, "#FF0000", axis.Color)
	assert.Equal(t, "x", axis.Axis)
	assert.Equal(t, "x", axis.Label)

	count := 0
	for _, id := range ids {
		if id == "axis-x" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "[1,2,3]", findItem(t, got.Items, "p1").Properties.(*types.PointProperties).Coords)
}

func TestMigrateSceneFoldersAndSliders(t *testing.T) {
	scene := types.LegacyScene{
		Key: "k",
		Dehydrated: types.Dehydrated{
			Folders: map[string]map[string]any{
				"f1":           {"description": "Surfaces", "isCollapsed": true},
				"cameraFolder": {"isCollapsed": false},
			},
			MathSymbols: map[string]map[string]any{
				"s1": {"type": "VARIABLE_SLIDER", "name": "a"},
				"s2": {"type": "VARIABLE_SLIDER", "name": "b", "value": 3.0},
				"s3": {"type": "VARIABLE_SLIDER", "name": "c"},
			},
			SliderValues: map[string]any{"s1": 0.5, "s2": 9.0, "gone": 1.0},
			SortableTree: map[string][]string{"root": {"f1"}, "f1": {"s1", "s2", "s3"}},
		},
	}
	got, issues, err := MigrateScene(scene, Options{})
	require.NoError(t, err)

	f1 := findItem(t, got.Items, "f1")
	assert.Equal(t, types.ItemFolder, f1.Type)
	assert.Equal(t, &types.FolderProperties{Description: "Surfaces", IsCollapsed: "true"}, f1.Properties)

	cameraFolder := findItem(t, got.Items, "cameraFolder").Properties.(*types.FolderProperties)
	assert.Equal(t, "false", cameraFolder.IsCollapsed)
	assert.Equal(t, "Camera Controls", cameraFolder.Description)

	value := func(id string) string {
		return findItem(t, got.Items, id).Properties.(*types.VariableSliderProperties).Value.RHS
	}
	assert.Equal(t, "0.5", value("s1"), "backfilled from sliderValues")
	assert.Equal(t, "3", value("s2"), "stored value wins over sliderValues")
	assert.Equal(t, "-5", value("s3"), "no value anywhere falls back to min")

	assert.NotContains(t, itemIDs(got.Items), "gone")
	require.Len(t, issues, 1)
	assert.Equal(t, types.SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "[s3]")
}

func TestMigrateScenePrunesOrphanBuckets(t *testing.T) {
	scene := types.LegacyScene{
		Key: "k",
		Dehydrated: types.Dehydrated{
			Folders: map[string]map[string]any{"kept": {}, "emptyListed": {}},
			SortableTree: map[string][]string{
				"root":        {"kept", "emptyListed"},
				"kept":        {"p"},
				"emptyListed": {},
				"orphan":      {},
				"orphanFull":  {"q"},
			},
			MathGraphics: map[string]map[string]any{
				"p": {"type": "POINT"},
				"q": {"type": "POINT"},
			},
		},
	}
	got, _, err := MigrateScene(scene, Options{})
	require.NoError(t, err)

	assert.Contains(t, got.ItemOrder, "kept")
	assert.Contains(t, got.ItemOrder, "emptyListed")
	assert.Contains(t, got.ItemOrder, "orphanFull")
	assert.NotContains(t, got.ItemOrder, "orphan")
}

func TestMigrateSceneKeepsEmptyMain(t *testing.T) {
	scene := types.LegacyScene{
		Key:        "k",
		Dehydrated: types.Dehydrated{SortableTree: map[string][]string{"root": {}}},
	}
	got, _, err := MigrateScene(scene, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.ItemOrder["main"])
}

func TestMigrateSceneMetadata(t *testing.T) {
	tests := []struct {
		name         string
		metadata     types.SceneMetadata
		wantTitle    string
		wantDate     string
		wantWarnings int
	}{
		{
			name:      "quoted date is unquoted",
			metadata:  types.SceneMetadata{Title: "Saddle", CreationDate: `"2019-03-04T12:30:00.000Z"`},
			wantTitle: "Saddle",
			wantDate:  "2019-03-04T12:30:00.000Z",
		},
		{
			name:      "missing title",
			metadata:  types.SceneMetadata{CreationDate: "2020-01-01T00:00:00Z"},
			wantTitle: DefaultTitle,
			wantDate:  "2020-01-01T00:00:00Z",
		},
		{
			name:         "unparseable date is kept and logged",
			metadata:     types.SceneMetadata{Title: "x", CreationDate: `"last tuesday"`},
			wantTitle:    "x",
			wantDate:     "last tuesday",
			wantWarnings: 1,
		},
		{
			name:      "no date",
			metadata:  types.SceneMetadata{Title: "x"},
			wantTitle: "x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMigrator(nil)
			got, err := m.MigrateScene(types.LegacyScene{Key: "k", Dehydrated: types.Dehydrated{Metadata: tt.metadata}})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantDate, got.CreatedDate)
			assert.Equal(t, tt.wantDate, got.ModifiedDate)
			assert.Equal(t, tt.wantWarnings, m.Log().Count(types.SeverityWarning))
		})
	}
}

func TestMigrateSceneDoesNotMutateInput(t *testing.T) {
	folders := map[string]map[string]any{"f1": {"description": "x"}}
	tree := map[string][]string{"root": {"f1"}, "dead": {}}
	symbols := map[string]map[string]any{"s": {"type": "VARIABLE_SLIDER"}}
	scene := types.LegacyScene{
		Key: "k",
		Dehydrated: types.Dehydrated{
			Folders:      folders,
			MathSymbols:  symbols,
			SortableTree: tree,
			SliderValues: map[string]any{"s": 2.0},
		},
	}
	_, _, err := MigrateScene(scene, Options{})
	require.NoError(t, err)

	assert.Equal(t, map[string]map[string]any{"f1": {"description": "x"}}, folders)
	assert.Equal(t, map[string][]string{"root": {"f1"}, "dead": {}}, tree)
	assert.Equal(t, map[string]map[string]any{"s": {"type": "VARIABLE_SLIDER"}}, symbols)
}

func TestMigrateSceneFatalErrors(t *testing.T) {
	scene := types.LegacyScene{
		Key: "broken",
		Dehydrated: types.Dehydrated{
			MathGraphics: map[string]map[string]any{"c": {"type": "PARAMETRIC_CURVE", "expr": "nope"}},
		},
	}
	_, _, err := MigrateScene(scene, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMalformedExpression))
	assert.Contains(t, err.Error(), `scene "broken"`)
	assert.Contains(t, err.Error(), `"c"`)
}

func TestSetDefaultsKeepsExistingRoot(t *testing.T) {
	d := SetDefaults(types.Dehydrated{SortableTree: map[string][]string{"root": {"x"}}})
	assert.Equal(t, []string{"x"}, d.SortableTree["root"])
	assert.NotContains(t, d.Folders, "mainFolder")
	assert.Contains(t, d.Folders, "cameraFolder")
	assert.Contains(t, d.MathGraphics, "camera")
	assert.NotNil(t, d.MathSymbols)
	assert.NotNil(t, d.SliderValues)
}

func TestSetDefaultsMainFolderBucket(t *testing.T) {
	tests := []struct {
		name     string
		tree     map[string][]string
		wantRoot []string
		want     []string
		present  bool
	}{
		{name: "missing root adds empty main folder", wantRoot: []string{"mainFolder"}, want: []string{}, present: true},
		{name: "existing main folder bucket is kept", tree: map[string][]string{"mainFolder": {"p"}}, wantRoot: []string{"mainFolder"}, want: []string{"p"}, present: true},
		{name: "existing root adds nothing", tree: map[string][]string{"root": {"x"}}, wantRoot: []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := SetDefaults(types.Dehydrated{SortableTree: tt.tree})
			assert.Equal(t, tt.wantRoot, d.SortableTree["root"])
			got, ok := d.SortableTree["mainFolder"]
			assert.Equal(t, tt.present, ok)
			if tt.present {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
