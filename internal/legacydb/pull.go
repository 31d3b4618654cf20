package legacydb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

// DefaultChunkSize is the page size used when PullOptions.ChunkSize is zero.
const DefaultChunkSize = 500

// Web deployment tables.
const (
	webLegacySceneTable = "scenes_legacyscene"
	webSceneTable       = "scenes_scene"
)

// PullOptions configure a paged read of a web deployment's tables.
type PullOptions struct {
	ChunkSize int
}

func (o PullOptions) chunkSize() int {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}

// PullLegacyScenes pages through scenes_legacyscene ordered by key and
// hands each page to fn. A page shorter than the chunk size ends the read.
func (s *Source) PullLegacyScenes(ctx context.Context, opts PullOptions, fn func([]types.LegacyScene) error) error {
	base := psql.Select("key", "dehydrated", "times_accessed", "last_accessed", "migration_note").
		From(webLegacySceneTable).
		OrderBy("key")

	return s.paginate(ctx, base, opts.chunkSize(), func(rows rowsScanner) (int, error) {
		var page []types.LegacyScene
		for rows.Next() {
			var (
				key           string
				dehydrated    *string
				timesAccessed *int32
				lastAccessed  *time.Time
				note          *string
			)
			if err := rows.Scan(&key, &dehydrated, &timesAccessed, &lastAccessed, &note); err != nil {
				return 0, fmt.Errorf("scanning %s row: %w", webLegacySceneTable, err)
			}
			scene, err := newLegacyScene(key, dehydrated, timesAccessed, lastAccessed)
			if err != nil {
				return 0, err
			}
			if note != nil {
				scene.MigrationNote = *note
			}
			page = append(page, scene)
		}
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("iterating %s: %w", webLegacySceneTable, err)
		}
		if len(page) == 0 {
			return 0, nil
		}
		return len(page), fn(page)
	})
}

// PullScenes pages through scenes_scene ordered by key and hands each page
// to fn. Scene ids are not carried over; the store assigns its own. Items
// are kept verbatim in RawItems since the web deployment stores them in its
// own schema.
func (s *Source) PullScenes(ctx context.Context, opts PullOptions, fn func([]types.Scene) error) error {
	base := psql.Select("key", "title", "items", "item_order", "times_accessed").
		From(webSceneTable).
		OrderBy("key")

	return s.paginate(ctx, base, opts.chunkSize(), func(rows rowsScanner) (int, error) {
		var page []types.Scene
		for rows.Next() {
			var (
				scene         types.Scene
				title         *string
				items, order  *string
				timesAccessed *int32
			)
			if err := rows.Scan(&scene.Key, &title, &items, &order, &timesAccessed); err != nil {
				return 0, fmt.Errorf("scanning %s row: %w", webSceneTable, err)
			}
			if title != nil {
				scene.Title = *title
			}
			if timesAccessed != nil {
				scene.TimesAccessed = int(*timesAccessed)
			}
			if items != nil {
				var elems []json.RawMessage
				if err := json.Unmarshal([]byte(*items), &elems); err != nil {
					return 0, fmt.Errorf("decoding items of %s: %w", scene.Key, types.ErrItemsNotArray)
				}
				if elems != nil {
					scene.RawItems = json.RawMessage(*items)
				}
			}
			if order != nil {
				if err := json.Unmarshal([]byte(*order), &scene.ItemOrder); err != nil {
					return 0, fmt.Errorf("decoding item order of %s: %w", scene.Key, err)
				}
			}
			page = append(page, scene)
		}
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("iterating %s: %w", webSceneTable, err)
		}
		if len(page) == 0 {
			return 0, nil
		}
		return len(page), fn(page)
	})
}

// rowsScanner is the part of pgx.Rows a page reader uses.
type rowsScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// paginate runs base with LIMIT/OFFSET until readPage reports a short page.
func (s *Source) paginate(ctx context.Context, base sq.SelectBuilder, chunk int, readPage func(rowsScanner) (int, error)) error {
	for offset := 0; ; offset += chunk {
		query, args, err := base.Limit(uint64(chunk)).Offset(uint64(offset)).ToSql()
		if err != nil {
			return fmt.Errorf("building page query: %w", err)
		}
		rows, err := s.q.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("querying page at offset %d: %w", offset, err)
		}
		n, err := readPage(rows)
		rows.Close()
		if err != nil {
			return err
		}
		s.log.Debugw("pulled page", "offset", offset, "rows", n)
		if n < chunk {
			return nil
		}
	}
}
