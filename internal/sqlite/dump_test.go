package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadLegacyDump(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "legacy export lines",
			content: `{"url_key":"abc","dehydrated":"{\"sortableTree\":{\"root\":[\"f1\"]},\"metadata\":{\"title\":\"T\"}}","times_accessed":3,"last_accessed":"2018-06-01 10:11:12.5+00"}
`,
		},
		{
			name: "store export lines",
			content: `{"key":"abc","dehydrated":{"sortableTree":{"root":["f1"]},"metadata":{"title":"T"}},"times_accessed":3,"last_accessed":"2018-06-01T10:11:12.5Z"}
`,
		},
		{
			name: "json array",
			content: `[
  {"url_key":"abc","dehydrated":{"sortableTree":{"root":["f1"]},"metadata":{"title":"T"}},"times_accessed":3,"last_accessed":"2018-06-01 10:11:12.5"}
]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenes, err := ReadLegacyDump(writeDump(t, tt.content))
			require.NoError(t, err)
			require.Len(t, scenes, 1)
			s := scenes[0]
			assert.Equal(t, "abc", s.Key)
			assert.Equal(t, 3, s.TimesAccessed)
			assert.Equal(t, []string{"f1"}, s.Dehydrated.SortableTree["root"])
			assert.Equal(t, "T", s.Dehydrated.Metadata.Title)
			require.NotNil(t, s.LastAccessed)
			assert.Equal(t, 500_000_000, s.LastAccessed.Nanosecond())
			assert.Equal(t, 10, s.LastAccessed.Hour())
		})
	}
}

func TestReadLegacyDumpNullFields(t *testing.T) {
	scenes, err := ReadLegacyDump(writeDump(t, `{"url_key":"k","dehydrated":null,"times_accessed":null,"last_accessed":null}`))
	require.NoError(t, err)
	require.Len(t, scenes, 1)
	assert.Equal(t, "k", scenes[0].Key)
	assert.Nil(t, scenes[0].LastAccessed)
	assert.Nil(t, scenes[0].Dehydrated.SortableTree)
}

func TestReadLegacyDumpErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "no key", content: `{"dehydrated":{}}`, wantMsg: "record 1"},
		{name: "bad line", content: "{\"key\":\"a\"}\n{oops\n", wantMsg: "record 2"},
		{name: "bad dehydrated string", content: `{"key":"a","dehydrated":"{not json"}`, wantMsg: "dehydrated"},
		{name: "bad timestamp", content: `{"key":"a","last_accessed":"yesterday"}`, wantMsg: "last_accessed"},
		{name: "bad array", content: `[{"key":"a"},`, wantMsg: "dump.jsonl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadLegacyDump(writeDump(t, tt.content))
			require.ErrorIs(t, err, ErrMalformedDump)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestWriteSceneDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenes.jsonl")
	scenes := []types.Scene{*migratedScene("a"), *migratedScene("b")}
	require.NoError(t, WriteSceneDump(path, scenes))

	records, err := readJSONL(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Contains(t, string(records[0]), `"key":"a"`)
	assert.Contains(t, string(records[1]), `"key":"b"`)
}
