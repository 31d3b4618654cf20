// Package legacydb reads scenes from PostgreSQL: the legacy math3d graphs
// table, and the scenes_legacyscene and scenes_scene tables of a running
// web deployment.
package legacydb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

// Querier is the subset of *pgxpool.Pool the source needs. pgxmock pools
// satisfy it too.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Source reads legacy scenes through a Querier.
type Source struct {
	q   Querier
	log *zap.SugaredLogger
}

// NewSource returns a Source over q. A nil logger discards output.
func NewSource(q Querier, log *zap.SugaredLogger) *Source {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Source{q: q, log: log}
}

// FetchOptions select which graphs rows Fetch returns. Keys takes
// precedence over Limit; with neither, every row is returned.
type FetchOptions struct {
	Keys  []string
	Limit int
}

// Fetch reads scenes from the legacy graphs table.
func (s *Source) Fetch(ctx context.Context, opts FetchOptions) ([]types.LegacyScene, error) {
	q := psql.Select("url_key", "dehydrated", "times_accessed", "last_accessed").
		From("graphs").
		OrderBy("url_key")
	switch {
	case len(opts.Keys) > 0:
		q = q.Where(sq.Eq{"url_key": opts.Keys})
	case opts.Limit > 0:
		q = q.Limit(uint64(opts.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building graphs query: %w", err)
	}
	s.log.Debugw("fetching legacy graphs", "keys", len(opts.Keys), "limit", opts.Limit)

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying graphs: %w", err)
	}
	defer rows.Close()

	scenes := []types.LegacyScene{}
	for rows.Next() {
		var (
			key           string
			dehydrated    *string
			timesAccessed *int32
			lastAccessed  *time.Time
		)
		if err := rows.Scan(&key, &dehydrated, &timesAccessed, &lastAccessed); err != nil {
			return nil, fmt.Errorf("scanning graphs row: %w", err)
		}
		scene, err := newLegacyScene(key, dehydrated, timesAccessed, lastAccessed)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, scene)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating graphs: %w", err)
	}
	s.log.Infow("fetched legacy graphs", "count", len(scenes))
	return scenes, nil
}

func newLegacyScene(key string, dehydrated *string, timesAccessed *int32, lastAccessed *time.Time) (types.LegacyScene, error) {
	scene := types.LegacyScene{Key: key}
	if dehydrated != nil && *dehydrated != "" {
		if err := json.Unmarshal([]byte(*dehydrated), &scene.Dehydrated); err != nil {
			return types.LegacyScene{}, fmt.Errorf("decoding dehydrated scene %s: %w", key, err)
		}
	}
	if timesAccessed != nil {
		scene.TimesAccessed = int(*timesAccessed)
	}
	if lastAccessed != nil {
		t := lastAccessed.UTC()
		scene.LastAccessed = &t
	}
	return scene, nil
}
