package types

// Property structs of the new item schema. Every field is a string except the
// parsed sub-objects; booleans are stored as "true"/"false" and visible may
// hold a calculated-visibility expression instead.

// AxisProperties are the properties of an AXIS item.
type AxisProperties struct {
	Axis         string `json:"axis"`
	Color        string `json:"color"`
	Description  string `json:"description"`
	Divisions    string `json:"divisions"`
	End          string `json:"end"`
	Label        string `json:"label"`
	LabelVisible string `json:"labelVisible"`
	Max          string `json:"max"`
	Min          string `json:"min"`
	Opacity      string `json:"opacity"`
	Scale        string `json:"scale"`
	Size         string `json:"size"`
	Start        string `json:"start"`
	TicksVisible string `json:"ticksVisible"`
	Visible      string `json:"visible"`
	Width        string `json:"width"`
	ZBias        string `json:"zBias"`
	ZIndex       string `json:"zIndex"`
}

// BooleanVariableProperties are the properties of a BOOLEAN_VARIABLE item.
type BooleanVariableProperties struct {
	Description string              `json:"description"`
	Value       ParseableAssignment `json:"value"`
}

// CameraProperties are the properties of a CAMERA item.
type CameraProperties struct {
	Description     string `json:"description"`
	IsOrthographic  string `json:"isOrthographic"`
	IsPanEnabled    string `json:"isPanEnabled"`
	IsRotateEnabled string `json:"isRotateEnabled"`
	IsZoomEnabled   string `json:"isZoomEnabled"`
	Position        string `json:"position"`
	Target          string `json:"target"`
	UpdateOnDrag    string `json:"updateOnDrag"`
	UseRelative     string `json:"useRelative"`
}

// ExplicitSurfaceProperties are the properties of EXPLICIT_SURFACE and
// EXPLICIT_SURFACE_POLAR items.
type ExplicitSurfaceProperties struct {
	Color       string                           `json:"color"`
	ColorExpr   ParseableFunctionAssignment      `json:"colorExpr"`
	Description string                           `json:"description"`
	Domain      ParseableFunctionAssignmentArray `json:"domain"`
	Expr        ParseableFunctionAssignment      `json:"expr"`
	Grid1       string                           `json:"grid1"`
	Grid2       string                           `json:"grid2"`
	GridOpacity string                           `json:"gridOpacity"`
	GridWidth   string                           `json:"gridWidth"`
	Opacity     string                           `json:"opacity"`
	Samples1    string                           `json:"samples1"`
	Samples2    string                           `json:"samples2"`
	Shaded      string                           `json:"shaded"`
	Visible     string                           `json:"visible"`
	ZBias       string                           `json:"zBias"`
	ZIndex      string                           `json:"zIndex"`
}

// FolderProperties are the properties of a FOLDER item.
type FolderProperties struct {
	Description string `json:"description"`
	IsCollapsed string `json:"isCollapsed"`
}

// GridProperties are the properties of a GRID item.
type GridProperties struct {
	Axes        string `json:"axes"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Divisions   string `json:"divisions"`
	Opacity     string `json:"opacity"`
	Snap        string `json:"snap"`
	Visible     string `json:"visible"`
	Width       string `json:"width"`
	ZBias       string `json:"zBias"`
	ZIndex      string `json:"zIndex"`
}

// ImplicitSurfaceProperties are the properties of an IMPLICIT_SURFACE item.
type ImplicitSurfaceProperties struct {
	Color       string                      `json:"color"`
	Description string                      `json:"description"`
	Domain      ParseableExprArray          `json:"domain"`
	LHS         ParseableFunctionAssignment `json:"lhs"`
	Opacity     string                      `json:"opacity"`
	RHS         ParseableFunctionAssignment `json:"rhs"`
	Samples     string                      `json:"samples"`
	Shaded      string                      `json:"shaded"`
	Visible     string                      `json:"visible"`
	ZBias       string                      `json:"zBias"`
	ZIndex      string                      `json:"zIndex"`
}

// LineProperties are the properties of a LINE item.
type LineProperties struct {
	Color        string `json:"color"`
	Coords       string `json:"coords"`
	Description  string `json:"description"`
	End          string `json:"end"`
	Label        string `json:"label"`
	LabelVisible string `json:"labelVisible"`
	Opacity      string `json:"opacity"`
	Size         string `json:"size"`
	Start        string `json:"start"`
	Visible      string `json:"visible"`
	Width        string `json:"width"`
	ZBias        string `json:"zBias"`
	ZIndex       string `json:"zIndex"`
}

// ParametricCurveProperties are the properties of a PARAMETRIC_CURVE item.
type ParametricCurveProperties struct {
	Color       string                      `json:"color"`
	Description string                      `json:"description"`
	Domain      ParseableExprArray          `json:"domain"`
	End         string                      `json:"end"`
	Expr        ParseableFunctionAssignment `json:"expr"`
	Opacity     string                      `json:"opacity"`
	Samples1    string                      `json:"samples1"`
	Size        string                      `json:"size"`
	Start       string                      `json:"start"`
	Visible     string                      `json:"visible"`
	Width       string                      `json:"width"`
	ZBias       string                      `json:"zBias"`
	ZIndex      string                      `json:"zIndex"`
}

// ParametricSurfaceProperties are the properties of a PARAMETRIC_SURFACE item.
type ParametricSurfaceProperties struct {
	Color       string                           `json:"color"`
	ColorExpr   ParseableFunctionAssignment      `json:"colorExpr"`
	Description string                           `json:"description"`
	Domain      ParseableFunctionAssignmentArray `json:"domain"`
	Expr        ParseableFunctionAssignment      `json:"expr"`
	Grid1       string                           `json:"grid1"`
	Grid2       string                           `json:"grid2"`
	GridOpacity string                           `json:"gridOpacity"`
	GridWidth   string                           `json:"gridWidth"`
	Opacity     string                           `json:"opacity"`
	Samples1    string                           `json:"samples1"`
	Samples2    string                           `json:"samples2"`
	Shaded      string                           `json:"shaded"`
	Visible     string                           `json:"visible"`
	ZBias       string                           `json:"zBias"`
	ZIndex      string                           `json:"zIndex"`
}

// PointProperties are the properties of a POINT item.
type PointProperties struct {
	Color        string `json:"color"`
	Coords       string `json:"coords"`
	Description  string `json:"description"`
	Label        string `json:"label"`
	LabelVisible string `json:"labelVisible"`
	Opacity      string `json:"opacity"`
	Size         string `json:"size"`
	Visible      string `json:"visible"`
	ZBias        string `json:"zBias"`
	ZIndex       string `json:"zIndex"`
}

// VariableProperties are the properties of a VARIABLE item.
type VariableProperties struct {
	Description string              `json:"description"`
	Value       ParseableAssignment `json:"value"`
}

// VariableSliderProperties are the properties of a VARIABLE_SLIDER item.
type VariableSliderProperties struct {
	Description     string               `json:"description"`
	Duration        string               `json:"duration"`
	FPS             string               `json:"fps"`
	IsAnimating     string               `json:"isAnimating"`
	Range           ParseableStringArray `json:"range"`
	SpeedMultiplier string               `json:"speedMultiplier"`
	Value           ParseableAssignment  `json:"value"`
}

// VectorProperties are the properties of a VECTOR item.
type VectorProperties struct {
	Color        string `json:"color"`
	Components   string `json:"components"`
	Description  string `json:"description"`
	End          string `json:"end"`
	Label        string `json:"label"`
	LabelVisible string `json:"labelVisible"`
	Opacity      string `json:"opacity"`
	Size         string `json:"size"`
	Start        string `json:"start"`
	Tail         string `json:"tail"`
	Visible      string `json:"visible"`
	Width        string `json:"width"`
	ZBias        string `json:"zBias"`
	ZIndex       string `json:"zIndex"`
}

// VectorFieldProperties are the properties of a VECTOR_FIELD item.
type VectorFieldProperties struct {
	Color       string                      `json:"color"`
	Description string                      `json:"description"`
	Domain      ParseableExprArray          `json:"domain"`
	End         string                      `json:"end"`
	Expr        ParseableFunctionAssignment `json:"expr"`
	Opacity     string                      `json:"opacity"`
	Samples1    string                      `json:"samples1"`
	Samples2    string                      `json:"samples2"`
	Samples3    string                      `json:"samples3"`
	Scale       string                      `json:"scale"`
	Size        string                      `json:"size"`
	Start       string                      `json:"start"`
	Visible     string                      `json:"visible"`
	Width       string                      `json:"width"`
	ZBias       string                      `json:"zBias"`
	ZIndex      string                      `json:"zIndex"`
}

func (*AxisProperties) isItemProperties()              {}
func (*BooleanVariableProperties) isItemProperties()   {}
func (*CameraProperties) isItemProperties()            {}
func (*ExplicitSurfaceProperties) isItemProperties()   {}
func (*FolderProperties) isItemProperties()            {}
func (*GridProperties) isItemProperties()              {}
func (*ImplicitSurfaceProperties) isItemProperties()   {}
func (*LineProperties) isItemProperties()              {}
func (*ParametricCurveProperties) isItemProperties()   {}
func (*ParametricSurfaceProperties) isItemProperties() {}
func (*PointProperties) isItemProperties()             {}
func (*VariableProperties) isItemProperties()          {}
func (*VariableSliderProperties) isItemProperties()    {}
func (*VectorProperties) isItemProperties()            {}
func (*VectorFieldProperties) isItemProperties()       {}
