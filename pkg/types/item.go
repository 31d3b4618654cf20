package types

import "errors"

// ItemType is the discriminant shared by legacy items and new math items.
type ItemType string

// Item type tags. The set is closed; every tag has a legacy default record
// and a translation into the new schema.
const (
	ItemAxis                 ItemType = "AXIS"
	ItemBooleanVariable      ItemType = "BOOLEAN_VARIABLE"
	ItemCamera               ItemType = "CAMERA"
	ItemExplicitSurface      ItemType = "EXPLICIT_SURFACE"
	ItemExplicitSurfacePolar ItemType = "EXPLICIT_SURFACE_POLAR"
	ItemFolder               ItemType = "FOLDER"
	ItemGrid                 ItemType = "GRID"
	ItemImplicitSurface      ItemType = "IMPLICIT_SURFACE"
	ItemLine                 ItemType = "LINE"
	ItemParametricCurve      ItemType = "PARAMETRIC_CURVE"
	ItemParametricSurface    ItemType = "PARAMETRIC_SURFACE"
	ItemPoint                ItemType = "POINT"
	ItemVariable             ItemType = "VARIABLE"
	ItemVariableSlider       ItemType = "VARIABLE_SLIDER"
	ItemVector               ItemType = "VECTOR"
	ItemVectorField          ItemType = "VECTOR_FIELD"
)

// AllItemTypes lists every supported item type in declaration order.
var AllItemTypes = []ItemType{
	ItemAxis,
	ItemBooleanVariable,
	ItemCamera,
	ItemExplicitSurface,
	ItemExplicitSurfacePolar,
	ItemFolder,
	ItemGrid,
	ItemImplicitSurface,
	ItemLine,
	ItemParametricCurve,
	ItemParametricSurface,
	ItemPoint,
	ItemVariable,
	ItemVariableSlider,
	ItemVector,
	ItemVectorField,
}

var validItemTypes = func() map[ItemType]bool {
	m := make(map[ItemType]bool, len(AllItemTypes))
	for _, t := range AllItemTypes {
		m[t] = true
	}
	return m
}()

// IsValid reports whether t is one of the supported item types.
func (t ItemType) IsValid() bool {
	return validItemTypes[t]
}

// Migration errors. All of them are fatal for the item being translated;
// recoverable data-quality problems are reported as Issues instead.
var (
	ErrUnsupportedItemType = errors.New("unsupported item type")
	ErrUnknownField        = errors.New("unknown field")
	ErrInvalidField        = errors.New("invalid field value")
	ErrMalformedExpression = errors.New("malformed expression")
)
