package legacydb

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

var webLegacyColumns = []string{"key", "dehydrated", "times_accessed", "last_accessed", "migration_note"}

func TestPullLegacyScenesPages(t *testing.T) {
	mock := newMock(t)
	accessed := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM scenes_legacyscene ORDER BY key LIMIT 2 OFFSET 0")).
		WillReturnRows(pgxmock.NewRows(webLegacyColumns).
			AddRow("a", ptr("{}"), ptr(int32(1)), ptr(accessed), ptr("")).
			AddRow("b", ptr("{}"), ptr(int32(2)), nil, ptr("[p] bad samples")))
	mock.ExpectQuery(regexp.QuoteMeta("FROM scenes_legacyscene ORDER BY key LIMIT 2 OFFSET 2")).
		WillReturnRows(pgxmock.NewRows(webLegacyColumns).
			AddRow("c", ptr("{}"), nil, nil, nil))

	var pages [][]string
	var notes []string
	err := NewSource(mock, nil).PullLegacyScenes(context.Background(), PullOptions{ChunkSize: 2}, func(page []types.LegacyScene) error {
		var keys []string
		for _, s := range page {
			keys = append(keys, s.Key)
			notes = append(notes, s.MigrationNote)
		}
		pages = append(pages, keys)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, pages)
	assert.Equal(t, []string{"", "[p] bad samples", ""}, notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPullLegacyScenesExactMultiple(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 1 OFFSET 0")).
		WillReturnRows(pgxmock.NewRows(webLegacyColumns).AddRow("a", ptr("{}"), nil, nil, nil))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 1 OFFSET 1")).
		WillReturnRows(pgxmock.NewRows(webLegacyColumns))

	calls := 0
	err := NewSource(mock, nil).PullLegacyScenes(context.Background(), PullOptions{ChunkSize: 1}, func([]types.LegacyScene) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "an empty trailing page is not handed on")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPullScenesKeepsItemsVerbatim(t *testing.T) {
	mock := newMock(t)
	items := `[{"id":"p1","type":"POINT","properties":{"coords":"[1,2,3]","visible":true,"calculatedVisibility":"","useCalculatedVisibility":false,"zOrder":"0"}}]`
	mock.ExpectQuery(regexp.QuoteMeta("SELECT key, title, items, item_order, times_accessed FROM scenes_scene ORDER BY key LIMIT 500 OFFSET 0")).
		WillReturnRows(pgxmock.NewRows([]string{"key", "title", "items", "item_order", "times_accessed"}).
			AddRow("a", ptr("Saddle"), ptr(items), ptr(`{"main":["p1"]}`), ptr(int32(9))).
			AddRow("b", nil, nil, nil, nil))

	var got []types.Scene
	err := NewSource(mock, nil).PullScenes(context.Background(), PullOptions{}, func(page []types.Scene) error {
		got = append(got, page...)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Saddle", got[0].Title)
	assert.Equal(t, 9, got[0].TimesAccessed)
	assert.Equal(t, map[string][]string{"main": {"p1"}}, got[0].ItemOrder)
	assert.Empty(t, got[0].Items)
	assert.JSONEq(t, items, string(got[0].RawItems))

	encoded, err := json.Marshal(got[0])
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"zOrder":"0"`)
	assert.Contains(t, string(encoded), `"visible":true`)

	assert.Nil(t, got[1].RawItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPullScenesRejectsNonArrayItems(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM scenes_scene").
		WillReturnRows(pgxmock.NewRows([]string{"key", "title", "items", "item_order", "times_accessed"}).
			AddRow("a", nil, ptr(`{"p1":{}}`), nil, nil))

	err := NewSource(mock, nil).PullScenes(context.Background(), PullOptions{}, func([]types.Scene) error {
		return nil
	})
	assert.ErrorIs(t, err, types.ErrItemsNotArray)
}

func TestPullStopsOnCallbackError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM scenes_legacyscene").
		WillReturnRows(pgxmock.NewRows(webLegacyColumns).AddRow("a", ptr("{}"), nil, nil, nil))

	stop := errors.New("disk full")
	err := NewSource(mock, nil).PullLegacyScenes(context.Background(), PullOptions{ChunkSize: 1}, func([]types.LegacyScene) error {
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.NoError(t, mock.ExpectationsWereMet())
}
