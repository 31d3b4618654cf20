package sqlite

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

// fetchFilter is the decoded form of a Table.Fetch filter map.
type fetchFilter struct {
	keys       []string
	limit      int
	unmigrated bool
}

// parseFilter reads the known filter keys. Unknown keys are ignored; a
// known key with the wrong value type returns ErrInvalidFilter.
func parseFilter(filter map[string]any) (fetchFilter, error) {
	var f fetchFilter
	if v, ok := filter[types.FilterKeys]; ok {
		keys, ok := v.([]string)
		if !ok {
			return f, types.ErrInvalidFilter
		}
		f.keys = keys
	}
	if v, ok := filter[types.FilterLimit]; ok {
		limit, ok := v.(int)
		if !ok || limit < 0 {
			return f, types.ErrInvalidFilter
		}
		f.limit = limit
	}
	if v, ok := filter[types.FilterUnmigrated]; ok {
		unmigrated, ok := v.(bool)
		if !ok {
			return f, types.ErrInvalidFilter
		}
		f.unmigrated = unmigrated
	}
	return f, nil
}

// apply adds the key and limit clauses to q. An empty key list matches
// every row.
func (f fetchFilter) apply(q sq.SelectBuilder, keyColumn string) sq.SelectBuilder {
	if len(f.keys) > 0 {
		q = q.Where(sq.Eq{keyColumn: f.keys})
	}
	if f.limit > 0 {
		q = q.Limit(uint64(f.limit))
	}
	return q
}
