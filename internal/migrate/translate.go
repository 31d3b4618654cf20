// Package migrate translates legacy math3d items and scenes into the new
// item schema.
//
// A Migrator turns one decoded legacy record into a types.MathItem through a
// dispatch table keyed by item type. MigrateScene drives a whole dehydrated
// scene: it merges the fixed default items with the scene's folders,
// graphics and symbols, translates every entry, and repairs the order tree.
// Recoverable data problems go to the Migrator's IssueLog; malformed
// expressions and unknown fields abort the item.
package migrate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/math3d-scenes/internal/legacy"
	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

// Migrator translates legacy items. It is not safe for concurrent use; the
// IssueLog accumulates across calls until reset.
type Migrator struct {
	log  *IssueLog
	item string // id of the item being translated, for issue messages
}

// NewMigrator returns a Migrator that records issues in log. A nil log gets
// a fresh, unmirrored IssueLog.
func NewMigrator(log *IssueLog) *Migrator {
	if log == nil {
		log = NewIssueLog(nil)
	}
	return &Migrator{log: log}
}

// Log returns the IssueLog the Migrator writes to.
func (m *Migrator) Log() *IssueLog { return m.log }

func (m *Migrator) errorf(format string, args ...any) {
	m.log.Error(m.prefix() + fmt.Sprintf(format, args...))
}

func (m *Migrator) warnf(format string, args ...any) {
	m.log.Warning(m.prefix() + fmt.Sprintf(format, args...))
}

func (m *Migrator) prefix() string {
	if m.item == "" {
		return ""
	}
	return "[" + m.item + "] "
}

type translateFunc func(*Migrator, legacy.Properties) (types.ItemProperties, error)

// as adapts a translator of one concrete legacy record to translateFunc.
func as[P legacy.Properties](fn func(*Migrator, P) (types.ItemProperties, error)) translateFunc {
	return func(m *Migrator, p legacy.Properties) (types.ItemProperties, error) {
		return fn(m, p.(P))
	}
}

var translators = map[types.ItemType]translateFunc{
	types.ItemAxis:                 as((*Migrator).axis),
	types.ItemBooleanVariable:      as((*Migrator).booleanVariable),
	types.ItemCamera:               as((*Migrator).camera),
	types.ItemExplicitSurface:      as((*Migrator).explicitSurface),
	types.ItemExplicitSurfacePolar: as((*Migrator).explicitSurfacePolar),
	types.ItemFolder:               as((*Migrator).folder),
	types.ItemGrid:                 as((*Migrator).grid),
	types.ItemImplicitSurface:      as((*Migrator).implicitSurface),
	types.ItemLine:                 as((*Migrator).line),
	types.ItemParametricCurve:      as((*Migrator).parametricCurve),
	types.ItemParametricSurface:    as((*Migrator).parametricSurface),
	types.ItemPoint:                as((*Migrator).point),
	types.ItemVariable:             as((*Migrator).variable),
	types.ItemVariableSlider:       as((*Migrator).variableSlider),
	types.ItemVector:               as((*Migrator).vector),
	types.ItemVectorField:          as((*Migrator).vectorField),
}

// Translate maps a decoded legacy record to a new item with the given id.
func (m *Migrator) Translate(id string, decoded legacy.Properties) (types.MathItem, error) {
	if decoded == nil {
		return types.MathItem{}, fmt.Errorf("%w: nil record for %q", types.ErrUnsupportedItemType, id)
	}
	itemType := decoded.ItemType()
	fn, ok := translators[itemType]
	if !ok {
		return types.MathItem{}, fmt.Errorf("%w: %q", types.ErrUnsupportedItemType, string(itemType))
	}

	m.item = id
	defer func() { m.item = "" }()
	props, err := fn(m, decoded)
	if err != nil {
		return types.MathItem{}, fmt.Errorf("translating %s %q: %w", itemType, id, err)
	}
	return types.MathItem{ID: id, Type: itemType, Properties: props}, nil
}

// TranslateItem reads the type tag of raw, decodes it and translates it.
// raw is not modified.
func (m *Migrator) TranslateItem(id string, raw map[string]any) (types.MathItem, error) {
	tag, ok := raw["type"].(string)
	if !ok {
		return types.MathItem{}, fmt.Errorf("%w: item %q has no type tag", types.ErrUnsupportedItemType, id)
	}
	decoded, err := legacy.DecodeItem(types.ItemType(tag), id, raw)
	if err != nil {
		return types.MathItem{}, fmt.Errorf("decoding %q: %w", id, err)
	}
	return m.Translate(id, decoded)
}

func stringify(b bool) string {
	return strconv.FormatBool(b)
}

// visibility collapses the legacy visibility flags. A calculated expression
// replaces the flag only when it is enabled and non-empty.
func visibility(g legacy.Graphic) string {
	if g.UseCalculatedVisibility && g.CalculatedVisibility != "" {
		return g.CalculatedVisibility
	}
	return stringify(g.Visible)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// vectorLiteral prints v as "[a, b, c]".
func vectorLiteral(v []float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = formatNumber(f)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (m *Migrator) axis(x *legacy.AxisProperties) (types.ItemProperties, error) {
	return &types.AxisProperties{
		Axis:         x.Axis,
		Color:        x.Color,
		Description:  x.Description,
		Divisions:    "10",
		End:          "true",
		Label:        x.Label,
		LabelVisible: stringify(x.LabelVisible),
		Max:          x.Max,
		Min:          x.Min,
		Opacity:      x.Opacity,
		Scale:        x.Scale,
		Size:         x.Size,
		Start:        "false",
		TicksVisible: stringify(x.TicksVisible),
		Visible:      visibility(x.Graphic),
		Width:        x.Width,
		ZBias:        x.ZBias,
		ZIndex:       x.ZIndex,
	}, nil
}

func (m *Migrator) booleanVariable(x *legacy.BooleanVariableProperties) (types.ItemProperties, error) {
	return &types.BooleanVariableProperties{
		Description: x.Description,
		Value:       types.NewAssignment(x.Name, stringify(x.Value)),
	}, nil
}

func (m *Migrator) camera(x *legacy.CameraProperties) (types.ItemProperties, error) {
	position, target := vectorLiteral(x.RelativePosition), vectorLiteral(x.RelativeLookAt)
	if x.UseComputed {
		position, target = x.ComputedPosition, x.ComputedLookAt
	}
	return &types.CameraProperties{
		Description:     x.Description,
		IsOrthographic:  stringify(x.IsOrthographic),
		IsPanEnabled:    stringify(x.IsPanEnabled),
		IsRotateEnabled: stringify(x.IsRotateEnabled),
		IsZoomEnabled:   stringify(x.IsZoomEnabled),
		Position:        position,
		Target:          target,
		UpdateOnDrag:    "true",
		UseRelative:     stringify(!x.UseComputed),
	}, nil
}

// surfaceParts holds the parsed expressions shared by the surface types.
type surfaceParts struct {
	expr, colorExpr types.ParseableFunctionAssignment
	domain          types.ParseableFunctionAssignmentArray
}

// parseSurface parses a surface's expressions, wrapping bare u and v ranges
// with the given parameter names.
func (m *Migrator) parseSurface(s legacy.Surface, paramU, paramV string) (surfaceParts, error) {
	var p surfaceParts
	var err error
	if p.expr, err = m.FunctionAssignment(s.Expr); err != nil {
		return p, fmt.Errorf("expr: %w", err)
	}
	if p.domain, err = m.domain([]string{s.RangeU, s.RangeV}, []string{paramU, paramV}); err != nil {
		return p, fmt.Errorf("domain: %w", err)
	}
	if p.colorExpr, err = m.FunctionAssignment(s.ColorExpr); err != nil {
		return p, fmt.Errorf("colorExpr: %w", err)
	}
	return p, nil
}

func explicitSurface(s legacy.Surface, p surfaceParts) *types.ExplicitSurfaceProperties {
	return &types.ExplicitSurfaceProperties{
		Color:       s.Color,
		ColorExpr:   p.colorExpr,
		Description: s.Description,
		Domain:      p.domain,
		Expr:        p.expr,
		Grid1:       s.GridU,
		Grid2:       s.GridV,
		GridOpacity: s.GridOpacity,
		GridWidth:   s.GridWidth,
		Opacity:     s.Opacity,
		Samples1:    s.USamples,
		Samples2:    s.VSamples,
		Shaded:      stringify(s.Shaded),
		Visible:     visibility(s.Graphic),
		ZBias:       s.ZBias,
		ZIndex:      s.ZIndex,
	}
}

func (m *Migrator) explicitSurface(x *legacy.ExplicitSurfaceProperties) (types.ItemProperties, error) {
	p, err := m.parseSurface(x.Surface, "y", "x")
	if err != nil {
		return nil, err
	}
	return explicitSurface(x.Surface, p), nil
}

func (m *Migrator) explicitSurfacePolar(x *legacy.ExplicitSurfacePolarProperties) (types.ItemProperties, error) {
	p, err := m.parseSurface(x.Surface, "Q", "r")
	if err != nil {
		return nil, err
	}
	return explicitSurface(x.Surface, p), nil
}

func (m *Migrator) parametricSurface(x *legacy.ParametricSurfaceProperties) (types.ItemProperties, error) {
	p, err := m.parseSurface(x.Surface, "v", "u")
	if err != nil {
		return nil, err
	}
	return &types.ParametricSurfaceProperties{
		Color:       x.Color,
		ColorExpr:   p.colorExpr,
		Description: x.Description,
		Domain:      p.domain,
		Expr:        p.expr,
		Grid1:       x.GridU,
		Grid2:       x.GridV,
		GridOpacity: x.GridOpacity,
		GridWidth:   x.GridWidth,
		Opacity:     x.Opacity,
		Samples1:    x.USamples,
		Samples2:    x.VSamples,
		Shaded:      stringify(x.Shaded),
		Visible:     visibility(x.Graphic),
		ZBias:       x.ZBias,
		ZIndex:      x.ZIndex,
	}, nil
}

func (m *Migrator) folder(x *legacy.FolderProperties) (types.ItemProperties, error) {
	return &types.FolderProperties{
		Description: x.Description,
		IsCollapsed: stringify(x.IsCollapsed),
	}, nil
}

func (m *Migrator) grid(x *legacy.GridProperties) (types.ItemProperties, error) {
	return &types.GridProperties{
		Axes:        x.Axes,
		Color:       x.Color,
		Description: x.Description,
		Divisions:   x.Divisions,
		Opacity:     x.Opacity,
		Snap:        "false",
		Visible:     visibility(x.Graphic),
		Width:       "1/2",
		ZBias:       x.ZBias,
		ZIndex:      x.ZIndex,
	}, nil
}

func (m *Migrator) implicitSurface(x *legacy.ImplicitSurfaceProperties) (types.ItemProperties, error) {
	lhs, err := m.FunctionAssignment(x.LHS)
	if err != nil {
		return nil, fmt.Errorf("lhs: %w", err)
	}
	rhs, err := m.FunctionAssignment(x.RHS)
	if err != nil {
		return nil, fmt.Errorf("rhs: %w", err)
	}
	return &types.ImplicitSurfaceProperties{
		Color:       x.Color,
		Description: x.Description,
		Domain:      types.NewExprArray(x.RangeX, x.RangeY, x.RangeZ),
		LHS:         lhs,
		Opacity:     x.Opacity,
		RHS:         rhs,
		Samples:     x.Samples,
		Shaded:      stringify(x.Shaded),
		Visible:     visibility(x.Graphic),
		ZBias:       x.ZBias,
		ZIndex:      x.ZIndex,
	}, nil
}

func (m *Migrator) line(x *legacy.LineProperties) (types.ItemProperties, error) {
	return &types.LineProperties{
		Color:        x.Color,
		Coords:       x.Coords,
		Description:  x.Description,
		End:          stringify(x.End),
		Label:        x.Label,
		LabelVisible: stringify(x.LabelVisible),
		Opacity:      x.Opacity,
		Size:         x.Size,
		Start:        stringify(x.Start),
		Visible:      visibility(x.Graphic),
		Width:        x.Width,
		ZBias:        x.ZBias,
		ZIndex:       x.ZIndex,
	}, nil
}

func (m *Migrator) parametricCurve(x *legacy.ParametricCurveProperties) (types.ItemProperties, error) {
	expr, err := m.FunctionAssignment(x.Expr)
	if err != nil {
		return nil, fmt.Errorf("expr: %w", err)
	}
	return &types.ParametricCurveProperties{
		Color:       x.Color,
		Description: x.Description,
		Domain:      types.NewExprArray(x.Range),
		End:         stringify(x.End),
		Expr:        expr,
		Opacity:     x.Opacity,
		Samples1:    x.Samples,
		Size:        x.Size,
		Start:       stringify(x.Start),
		Visible:     visibility(x.Graphic),
		Width:       x.Width,
		ZBias:       x.ZBias,
		ZIndex:      x.ZIndex,
	}, nil
}

func (m *Migrator) point(x *legacy.PointProperties) (types.ItemProperties, error) {
	return &types.PointProperties{
		Color:        x.Color,
		Coords:       x.Coords,
		Description:  x.Description,
		Label:        x.Label,
		LabelVisible: stringify(x.LabelVisible),
		Opacity:      x.Opacity,
		Size:         x.Size,
		Visible:      visibility(x.Graphic),
		ZBias:        x.ZBias,
		ZIndex:       x.ZIndex,
	}, nil
}

func (m *Migrator) variable(x *legacy.VariableProperties) (types.ItemProperties, error) {
	return &types.VariableProperties{
		Description: x.Description,
		Value:       m.Assignment(x.Name + "=" + x.Value),
	}, nil
}

func (m *Migrator) variableSlider(x *legacy.VariableSliderProperties) (types.ItemProperties, error) {
	value := x.Min
	if x.Value != nil {
		value = formatNumber(*x.Value)
	} else {
		m.warnf("Slider %s has no value; using min %s", x.Name, x.Min)
	}
	return &types.VariableSliderProperties{
		Description:     x.Description,
		Duration:        "4",
		FPS:             "30",
		IsAnimating:     stringify(x.IsAnimating),
		Range:           types.NewStringArray(x.Min, x.Max),
		SpeedMultiplier: m.speed(x.SpeedMultiplier),
		Value:           m.Assignment(x.Name + "=" + value),
	}, nil
}

func (m *Migrator) vector(x *legacy.VectorProperties) (types.ItemProperties, error) {
	return &types.VectorProperties{
		Color:        x.Color,
		Components:   x.Components,
		Description:  x.Description,
		End:          stringify(x.End),
		Label:        x.Label,
		LabelVisible: stringify(x.LabelVisible),
		Opacity:      x.Opacity,
		Size:         x.Size,
		Start:        stringify(x.Start),
		Tail:         x.Tail,
		Visible:      visibility(x.Graphic),
		Width:        x.Width,
		ZBias:        x.ZBias,
		ZIndex:       x.ZIndex,
	}, nil
}

func (m *Migrator) vectorField(x *legacy.VectorFieldProperties) (types.ItemProperties, error) {
	expr, err := m.FunctionAssignment(x.Expr)
	if err != nil {
		return nil, fmt.Errorf("expr: %w", err)
	}
	samples := m.vectorFieldSamples(x.Samples)
	return &types.VectorFieldProperties{
		Color:       x.Color,
		Description: x.Description,
		Domain:      types.NewExprArray(x.RangeX, x.RangeY, x.RangeZ),
		End:         stringify(x.End),
		Expr:        expr,
		Opacity:     x.Opacity,
		Samples1:    samples[0],
		Samples2:    samples[1],
		Samples3:    samples[2],
		Scale:       x.Scale,
		Size:        x.Size,
		Start:       stringify(x.Start),
		Visible:     visibility(x.Graphic),
		Width:       x.Width,
		ZBias:       x.ZBias,
		ZIndex:      x.ZIndex,
	}, nil
}
