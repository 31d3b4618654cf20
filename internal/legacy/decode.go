// Package legacy decodes loosely typed legacy item records into fully
// populated structs. Decoding overlays the caller's partial map onto the
// type's default record; keys the record does not declare are rejected.
package legacy

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

// Keys that identify an item rather than describe it. They are dropped
// before decoding.
const (
	keyType = "type"
	keyID   = "id"
)

// Decode overlays partial onto the default record of itemType and returns
// the result. partial is not modified.
//
// Returns types.ErrUnsupportedItemType for an unknown type,
// types.ErrUnknownField when partial carries keys the record does not
// declare, and types.ErrInvalidField when a value has the wrong kind.
func Decode(itemType types.ItemType, partial map[string]any) (Properties, error) {
	props, err := Default(itemType)
	if err != nil {
		return nil, err
	}

	input := make(map[string]any, len(partial))
	for k, v := range partial {
		if k == keyType || k == keyID {
			continue
		}
		input[k] = v
	}
	if len(input) == 0 {
		return props, nil
	}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(numberToString),
		ZeroFields: true,
		Metadata:   &md,
		Result:     props,
	})
	if err != nil {
		return nil, fmt.Errorf("building decoder for %s: %w", itemType, err)
	}
	if err := dec.Decode(input); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrInvalidField, itemType, err)
	}
	if len(md.Unused) > 0 {
		unused := append([]string(nil), md.Unused...)
		sort.Strings(unused)
		return nil, fmt.Errorf("%w: %s: %s", types.ErrUnknownField, itemType, strings.Join(unused, ", "))
	}
	return props, nil
}

// DecodeItem decodes partial like Decode, first applying the defaults that
// depend on the item id. The fixed scene axes axis-x, axis-y and axis-z get
// their axis, label and scale this way; keys in partial still win.
func DecodeItem(itemType types.ItemType, id string, partial map[string]any) (Properties, error) {
	extra, ok := axisDefaults[id]
	if itemType != types.ItemAxis || !ok {
		return Decode(itemType, partial)
	}
	merged := make(map[string]any, len(extra)+len(partial))
	for k, v := range extra {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}
	return Decode(itemType, merged)
}

// numberToString accepts JSON numbers for string fields. Older scenes stored
// some numeric properties (opacity, samples, slider bounds) unquoted.
func numberToString(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	switch v := data.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case json.Number:
		return v.String(), nil
	}
	return data, nil
}

func unsupported(itemType types.ItemType) error {
	return fmt.Errorf("%w: %q", types.ErrUnsupportedItemType, string(itemType))
}
