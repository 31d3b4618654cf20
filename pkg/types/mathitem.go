package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Discriminants of the parseable sub-objects.
const (
	ParseableAssignmentType         = "assignment"
	ParseableFunctionAssignmentType = "function-assignment"
	ParseableExprType               = "expr"
	ParseableArrayType              = "array"
)

// ParseableAssignment is one equation "lhs=rhs".
type ParseableAssignment struct {
	Type string `json:"type"`
	LHS  string `json:"lhs"`
	RHS  string `json:"rhs"`
}

// NewAssignment returns an assignment with its discriminant set.
func NewAssignment(lhs, rhs string) ParseableAssignment {
	return ParseableAssignment{Type: ParseableAssignmentType, LHS: lhs, RHS: rhs}
}

// ParseableFunctionAssignment is an equation whose left side has the form
// name(param, ...).
type ParseableFunctionAssignment struct {
	Type   string   `json:"type"`
	Name   string   `json:"name"`
	Params []string `json:"params"`
	RHS    string   `json:"rhs"`
}

// NewFunctionAssignment returns a function assignment with its discriminant set.
func NewFunctionAssignment(name string, params []string, rhs string) ParseableFunctionAssignment {
	if params == nil {
		params = []string{}
	}
	return ParseableFunctionAssignment{
		Type:   ParseableFunctionAssignmentType,
		Name:   name,
		Params: params,
		RHS:    rhs,
	}
}

// ParseableExpr wraps a bare expression.
type ParseableExpr struct {
	Type string `json:"type"`
	Expr string `json:"expr"`
}

// ParseableFunctionAssignmentArray is an ordered list of function assignments.
type ParseableFunctionAssignmentArray struct {
	Type  string                        `json:"type"`
	Items []ParseableFunctionAssignment `json:"items"`
}

// ParseableExprArray is an ordered list of bare expressions.
type ParseableExprArray struct {
	Type  string          `json:"type"`
	Items []ParseableExpr `json:"items"`
}

// ParseableStringArray is an ordered list of strings.
type ParseableStringArray struct {
	Type  string   `json:"type"`
	Items []string `json:"items"`
}

// NewFunctionAssignmentArray wraps items in an array container.
func NewFunctionAssignmentArray(items ...ParseableFunctionAssignment) ParseableFunctionAssignmentArray {
	if items == nil {
		items = []ParseableFunctionAssignment{}
	}
	return ParseableFunctionAssignmentArray{Type: ParseableArrayType, Items: items}
}

// NewExprArray wraps each expression in a ParseableExpr inside an array container.
func NewExprArray(exprs ...string) ParseableExprArray {
	items := make([]ParseableExpr, len(exprs))
	for i, e := range exprs {
		items[i] = ParseableExpr{Type: ParseableExprType, Expr: e}
	}
	return ParseableExprArray{Type: ParseableArrayType, Items: items}
}

// NewStringArray wraps items in an array container.
func NewStringArray(items ...string) ParseableStringArray {
	if items == nil {
		items = []string{}
	}
	return ParseableStringArray{Type: ParseableArrayType, Items: items}
}

// ItemProperties is implemented by the per-type property structs of a MathItem.
type ItemProperties interface {
	isItemProperties()
}

// MathItem is one item of a migrated scene.
type MathItem struct {
	ID         string         `json:"id"`
	Type       ItemType       `json:"type"`
	Properties ItemProperties `json:"properties"`
}

// NewItemProperties returns an empty property struct for the given type.
// Returns ErrUnsupportedItemType for unknown types.
func NewItemProperties(t ItemType) (ItemProperties, error) {
	switch t {
	case ItemAxis:
		return &AxisProperties{}, nil
	case ItemBooleanVariable:
		return &BooleanVariableProperties{}, nil
	case ItemCamera:
		return &CameraProperties{}, nil
	case ItemExplicitSurface, ItemExplicitSurfacePolar:
		return &ExplicitSurfaceProperties{}, nil
	case ItemFolder:
		return &FolderProperties{}, nil
	case ItemGrid:
		return &GridProperties{}, nil
	case ItemImplicitSurface:
		return &ImplicitSurfaceProperties{}, nil
	case ItemLine:
		return &LineProperties{}, nil
	case ItemParametricCurve:
		return &ParametricCurveProperties{}, nil
	case ItemParametricSurface:
		return &ParametricSurfaceProperties{}, nil
	case ItemPoint:
		return &PointProperties{}, nil
	case ItemVariable:
		return &VariableProperties{}, nil
	case ItemVariableSlider:
		return &VariableSliderProperties{}, nil
	case ItemVector:
		return &VectorProperties{}, nil
	case ItemVectorField:
		return &VectorFieldProperties{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedItemType, t)
	}
}

// UnmarshalJSON decodes the properties into the struct matching Type.
func (m *MathItem) UnmarshalJSON(data []byte) error {
	return m.decode(data, false)
}

// DecodeItems decodes a JSON array of items in the migrated schema. Unknown
// fields are rejected, so items written in any other schema fail here
// instead of silently losing fields.
func DecodeItems(data []byte) ([]MathItem, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, err
	}
	items := make([]MathItem, 0, len(elems))
	for i, elem := range elems {
		var item MathItem
		if err := item.decode(elem, true); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (m *MathItem) decode(data []byte, strict bool) error {
	var raw struct {
		ID         string          `json:"id"`
		Type       ItemType        `json:"type"`
		Properties json.RawMessage `json:"properties"`
	}
	if err := unmarshalJSON(data, &raw, strict); err != nil {
		return err
	}
	props, err := NewItemProperties(raw.Type)
	if err != nil {
		return err
	}
	if len(raw.Properties) > 0 {
		if err := unmarshalJSON(raw.Properties, props, strict); err != nil {
			return fmt.Errorf("decoding %s properties: %w", raw.Type, err)
		}
	}
	m.ID = raw.ID
	m.Type = raw.Type
	m.Properties = props
	return nil
}

func unmarshalJSON(data []byte, v any, strict bool) error {
	if !strict {
		return json.Unmarshal(data, v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
