package legacy

import "github.com/mesh-intelligence/math3d-scenes/pkg/types"

// Properties is a fully populated legacy record for one item kind.
type Properties interface {
	ItemType() types.ItemType
}

// Graphic holds the fields shared by every drawable legacy item.
type Graphic struct {
	Description             string `mapstructure:"description"`
	UseCalculatedVisibility bool   `mapstructure:"useCalculatedVisibility"`
	Color                   string `mapstructure:"color"`
	Visible                 bool   `mapstructure:"visible"`
	Opacity                 string `mapstructure:"opacity"`
	ZIndex                  string `mapstructure:"zIndex"`
	ZBias                   string `mapstructure:"zBias"`
	CalculatedVisibility    string `mapstructure:"calculatedVisibility"`
}

func graphic(description, color string) Graphic {
	return Graphic{
		Description: description,
		Color:       color,
		Visible:     true,
		Opacity:     "1",
		ZIndex:      "0",
		ZBias:       "0",
	}
}

// Default graphic colors.
const (
	axisColor    = "#808080"
	graphicColor = "#3090FF"
)

// FolderProperties are the legacy properties of a folder.
type FolderProperties struct {
	IsCollapsed    bool   `mapstructure:"isCollapsed"`
	IsDropDisabled bool   `mapstructure:"isDropDisabled"`
	IsDragDisabled bool   `mapstructure:"isDragDisabled"`
	Description    string `mapstructure:"description"`
}

// VariableProperties are the legacy properties of a variable or function definition.
type VariableProperties struct {
	Name        string `mapstructure:"name"`
	Value       string `mapstructure:"value"`
	Description string `mapstructure:"description"`
}

// VariableSliderProperties carries a nil Value when the scene stored the
// slider position only in sliderValues.
type VariableSliderProperties struct {
	Name            string   `mapstructure:"name"`
	Value           *float64 `mapstructure:"value"`
	Min             string   `mapstructure:"min"`
	Max             string   `mapstructure:"max"`
	Description     string   `mapstructure:"description"`
	IsAnimating     bool     `mapstructure:"isAnimating"`
	SpeedMultiplier float64  `mapstructure:"speedMultiplier"`
}

// BooleanVariableProperties are the legacy properties of a toggle.
type BooleanVariableProperties struct {
	Name        string `mapstructure:"name"`
	Value       bool   `mapstructure:"value"`
	Description string `mapstructure:"description"`
}

// CameraProperties are the legacy camera position, target and controls.
type CameraProperties struct {
	Description             string    `mapstructure:"description"`
	UseCalculatedVisibility bool      `mapstructure:"useCalculatedVisibility"`
	IsOrthographic          bool      `mapstructure:"isOrthographic"`
	IsPanEnabled            bool      `mapstructure:"isPanEnabled"`
	IsZoomEnabled           bool      `mapstructure:"isZoomEnabled"`
	IsRotateEnabled         bool      `mapstructure:"isRotateEnabled"`
	RelativePosition        []float64 `mapstructure:"relativePosition"`
	RelativeLookAt          []float64 `mapstructure:"relativeLookAt"`
	ComputedPosition        string    `mapstructure:"computedPosition"`
	ComputedLookAt          string    `mapstructure:"computedLookAt"`
	UseComputed             bool      `mapstructure:"useComputed"`
}

// AxisProperties are the legacy properties of one coordinate axis.
type AxisProperties struct {
	Graphic      `mapstructure:",squash"`
	Label        string `mapstructure:"label"`
	LabelVisible bool   `mapstructure:"labelVisible"`
	Min          string `mapstructure:"min"`
	Max          string `mapstructure:"max"`
	Axis         string `mapstructure:"axis"`
	Scale        string `mapstructure:"scale"`
	TicksVisible bool   `mapstructure:"ticksVisible"`
	Size         string `mapstructure:"size"`
	Width        string `mapstructure:"width"`
}

// GridProperties are the legacy properties of a coordinate-plane grid.
type GridProperties struct {
	Graphic   `mapstructure:",squash"`
	Axes      string `mapstructure:"axes"`
	Width     string `mapstructure:"width"`
	Divisions string `mapstructure:"divisions"`
	Snap      bool   `mapstructure:"snap"`
}

// PointProperties are the legacy properties of a point.
type PointProperties struct {
	Graphic      `mapstructure:",squash"`
	Label        string `mapstructure:"label"`
	LabelVisible bool   `mapstructure:"labelVisible"`
	Coords       string `mapstructure:"coords"`
	Size         string `mapstructure:"size"`
}

// LineProperties are the legacy properties of a polyline.
type LineProperties struct {
	Graphic      `mapstructure:",squash"`
	Label        string `mapstructure:"label"`
	LabelVisible bool   `mapstructure:"labelVisible"`
	Size         string `mapstructure:"size"`
	Width        string `mapstructure:"width"`
	Start        bool   `mapstructure:"start"`
	End          bool   `mapstructure:"end"`
	Coords       string `mapstructure:"coords"`
}

// VectorProperties are the legacy properties of a vector.
type VectorProperties struct {
	Graphic      `mapstructure:",squash"`
	Label        string `mapstructure:"label"`
	LabelVisible bool   `mapstructure:"labelVisible"`
	Size         string `mapstructure:"size"`
	Width        string `mapstructure:"width"`
	Start        bool   `mapstructure:"start"`
	End          bool   `mapstructure:"end"`
	Components   string `mapstructure:"components"`
	Tail         string `mapstructure:"tail"`
}

// ParametricCurveProperties are the legacy properties of a parametric curve.
type ParametricCurveProperties struct {
	Graphic `mapstructure:",squash"`
	Size    string `mapstructure:"size"`
	Width   string `mapstructure:"width"`
	Start   bool   `mapstructure:"start"`
	End     bool   `mapstructure:"end"`
	Expr    string `mapstructure:"expr"`
	Range   string `mapstructure:"range"`
	Samples string `mapstructure:"samples"`
}

// Surface holds the fields shared by the three two-parameter surfaces.
type Surface struct {
	Graphic     `mapstructure:",squash"`
	Shaded      bool   `mapstructure:"shaded"`
	Expr        string `mapstructure:"expr"`
	RangeU      string `mapstructure:"rangeU"`
	RangeV      string `mapstructure:"rangeV"`
	ColorExpr   string `mapstructure:"colorExpr"`
	GridOpacity string `mapstructure:"gridOpacity"`
	GridWidth   string `mapstructure:"gridWidth"`
	USamples    string `mapstructure:"uSamples"`
	VSamples    string `mapstructure:"vSamples"`
	GridU       string `mapstructure:"gridU"`
	GridV       string `mapstructure:"gridV"`
}

func surface(description, expr, rangeU, rangeV, colorExpr string) Surface {
	g := graphic(description, graphicColor)
	g.Opacity = "0.75"
	return Surface{
		Graphic:     g,
		Shaded:      true,
		Expr:        expr,
		RangeU:      rangeU,
		RangeV:      rangeV,
		ColorExpr:   colorExpr,
		GridOpacity: "0.5",
		GridWidth:   "2",
		USamples:    "64",
		VSamples:    "64",
		GridU:       "8",
		GridV:       "8",
	}
}

// ParametricSurfaceProperties are the legacy properties of a parametric surface.
type ParametricSurfaceProperties struct {
	Surface `mapstructure:",squash"`
}

// ExplicitSurfaceProperties are the legacy properties of a surface z=f(x,y).
type ExplicitSurfaceProperties struct {
	Surface `mapstructure:",squash"`
}

// ExplicitSurfacePolarProperties are the legacy properties of a surface z=f(r,θ).
type ExplicitSurfacePolarProperties struct {
	Surface `mapstructure:",squash"`
}

// ImplicitSurfaceProperties are the legacy properties of a level-set surface.
type ImplicitSurfaceProperties struct {
	Graphic `mapstructure:",squash"`
	Shaded  bool   `mapstructure:"shaded"`
	RangeX  string `mapstructure:"rangeX"`
	RangeY  string `mapstructure:"rangeY"`
	RangeZ  string `mapstructure:"rangeZ"`
	LHS     string `mapstructure:"lhs"`
	RHS     string `mapstructure:"rhs"`
	Samples string `mapstructure:"samples"`
}

// VectorFieldProperties are the legacy properties of a vector field.
type VectorFieldProperties struct {
	Graphic `mapstructure:",squash"`
	Size    string `mapstructure:"size"`
	Width   string `mapstructure:"width"`
	Start   bool   `mapstructure:"start"`
	End     bool   `mapstructure:"end"`
	RangeX  string `mapstructure:"rangeX"`
	RangeY  string `mapstructure:"rangeY"`
	RangeZ  string `mapstructure:"rangeZ"`
	Expr    string `mapstructure:"expr"`
	Samples string `mapstructure:"samples"`
	Scale   string `mapstructure:"scale"`
}

func (*AxisProperties) ItemType() types.ItemType                 { return types.ItemAxis }
func (*BooleanVariableProperties) ItemType() types.ItemType      { return types.ItemBooleanVariable }
func (*CameraProperties) ItemType() types.ItemType               { return types.ItemCamera }
func (*ExplicitSurfaceProperties) ItemType() types.ItemType      { return types.ItemExplicitSurface }
func (*ExplicitSurfacePolarProperties) ItemType() types.ItemType { return types.ItemExplicitSurfacePolar }
func (*FolderProperties) ItemType() types.ItemType               { return types.ItemFolder }
func (*GridProperties) ItemType() types.ItemType                 { return types.ItemGrid }
func (*ImplicitSurfaceProperties) ItemType() types.ItemType      { return types.ItemImplicitSurface }
func (*LineProperties) ItemType() types.ItemType                 { return types.ItemLine }
func (*ParametricCurveProperties) ItemType() types.ItemType      { return types.ItemParametricCurve }
func (*ParametricSurfaceProperties) ItemType() types.ItemType    { return types.ItemParametricSurface }
func (*PointProperties) ItemType() types.ItemType                { return types.ItemPoint }
func (*VariableProperties) ItemType() types.ItemType             { return types.ItemVariable }
func (*VariableSliderProperties) ItemType() types.ItemType       { return types.ItemVariableSlider }
func (*VectorProperties) ItemType() types.ItemType               { return types.ItemVector }
func (*VectorFieldProperties) ItemType() types.ItemType          { return types.ItemVectorField }
