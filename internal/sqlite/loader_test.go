package sqlite

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

func writeTableFile(t *testing.T, dir, table, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(jsonlFile(dir, table), []byte(content), 0o644))
}

func TestLoadJSONL(t *testing.T) {
	tests := []struct {
		name  string
		table string
		jsonl string
		want  int
		check func(t *testing.T, tbl types.Table)
	}{
		{
			name:  "legacy scenes with unknown fields",
			table: types.LegacyScenesTable,
			jsonl: `{"key":"a","dehydrated":{"sortableTree":{"root":[]}},"times_accessed":5,"last_accessed":"2020-01-02T03:04:05Z","migration_note":"","future_field":1}
`,
			want: 1,
			check: func(t *testing.T, tbl types.Table) {
				got, err := tbl.Get("a")
				require.NoError(t, err)
				scene := got.(*types.LegacyScene)
				assert.Equal(t, 5, scene.TimesAccessed)
				assert.Equal(t, []string{}, scene.Dehydrated.SortableTree["root"])
				require.NotNil(t, scene.LastAccessed)
				assert.Equal(t, 2020, scene.LastAccessed.Year())
			},
		},
		{
			name:  "legacy scene with missing optional columns",
			table: types.LegacyScenesTable,
			jsonl: `{"key":"a","dehydrated":{}}
`,
			want: 1,
			check: func(t *testing.T, tbl types.Table) {
				got, err := tbl.Get("a")
				require.NoError(t, err)
				assert.Equal(t, 0, got.(*types.LegacyScene).TimesAccessed)
				assert.Nil(t, got.(*types.LegacyScene).LastAccessed)
			},
		},
		{
			name:  "malformed lines and constraint violations are skipped",
			table: types.LegacyScenesTable,
			jsonl: `{"key":"a","dehydrated":{}}
{broken
{"key":"a","dehydrated":{}}
{"key":"b"}
{"key":"c","dehydrated":{}}
`,
			want: 2,
		},
		{
			name:  "scenes",
			table: types.ScenesTable,
			jsonl: `{"scene_id":"s1","key":"a","title":"T","items":[{"id":"p","type":"POINT","properties":{"coords":"[0,0,0]"}}],"item_order":{"main":[]},"times_accessed":1,"created_date":"","modified_date":""}
`,
			want: 1,
			check: func(t *testing.T, tbl types.Table) {
				got, err := tbl.Get("s1")
				require.NoError(t, err)
				scene := got.(*types.Scene)
				require.Len(t, scene.Items, 1)
				assert.Equal(t, "[0,0,0]", scene.Items[0].Properties.(*types.PointProperties).Coords)
				assert.Equal(t, []string{}, scene.ItemOrder["main"])
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeTableFile(t, dir, tt.table, tt.jsonl)
			b := attach(t, dir, "")
			defer b.Detach()

			tbl := table(t, b, tt.table)
			all, err := tbl.Fetch(nil)
			require.NoError(t, err)
			assert.Len(t, all, tt.want)
			if tt.check != nil {
				tt.check(t, tbl)
			}
		})
	}
}
