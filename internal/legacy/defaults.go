package legacy

import "github.com/mesh-intelligence/math3d-scenes/pkg/types"

// defaults builds a fresh default record per item type. Each call allocates,
// so decoding never aliases state between items.
var defaults = map[types.ItemType]func() Properties{
	types.ItemFolder: func() Properties {
		return &FolderProperties{Description: "Folder"}
	},
	types.ItemVariable: func() Properties {
		return &VariableProperties{
			Name:        "f(x)",
			Value:       "e^x",
			Description: "Variable or Function",
		}
	},
	types.ItemVariableSlider: func() Properties {
		return &VariableSliderProperties{
			Name:            "T",
			Min:             "-5",
			Max:             "5",
			Description:     "Variable Slider",
			SpeedMultiplier: 1,
		}
	},
	types.ItemBooleanVariable: func() Properties {
		return &BooleanVariableProperties{
			Name:        "switch",
			Value:       true,
			Description: "Toggle Switch",
		}
	},
	types.ItemCamera: func() Properties {
		return &CameraProperties{
			Description:      "Camera",
			IsZoomEnabled:    true,
			IsRotateEnabled:  true,
			RelativePosition: []float64{0.5, -2, 0.5},
			RelativeLookAt:   []float64{0, 0, 0},
			ComputedPosition: `\left[-6, -4, 2\right]`,
			ComputedLookAt:   `\left[0, 0, 0\right]`,
		}
	},
	types.ItemAxis: func() Properties {
		return &AxisProperties{
			Graphic:      graphic("Axis", axisColor),
			LabelVisible: true,
			Min:          "-5",
			Max:          "+5",
			Axis:         "x",
			Scale:        "1",
			TicksVisible: true,
			Size:         "2",
			Width:        "1",
		}
	},
	types.ItemGrid: func() Properties {
		return &GridProperties{
			Graphic:   graphic("Grid", axisColor),
			Axes:      "xy",
			Width:     "1/2",
			Divisions: `\left[10,\ 10\right]`,
		}
	},
	types.ItemPoint: func() Properties {
		return &PointProperties{
			Graphic: graphic("Point", graphicColor),
			Coords:  `\left[0,0,0\right]`,
			Size:    "16",
		}
	},
	types.ItemLine: func() Properties {
		return &LineProperties{
			Graphic: graphic("Line", graphicColor),
			Size:    "6",
			Width:   "4",
			Coords:  `\left[\left[1,1,1\right], \left[-1,1,-1\right]\right]`,
		}
	},
	types.ItemVector: func() Properties {
		return &VectorProperties{
			Graphic:    graphic("Vector", graphicColor),
			Size:       "6",
			Width:      "4",
			End:        true,
			Components: `\left[3,2,1\right]`,
			Tail:       `\left[0,0,0\right]`,
		}
	},
	types.ItemParametricCurve: func() Properties {
		return &ParametricCurveProperties{
			Graphic: graphic("Parametric Curve", graphicColor),
			Size:    "6",
			Width:   "4",
			Expr:    `_f(t)=\left[\cos\left(t\right),\ \sin\left(t\right),\ t\right]`,
			Range:   `\left[-2\pi,\ 2\pi\right]`,
			Samples: "128",
		}
	},
	types.ItemParametricSurface: func() Properties {
		return &ParametricSurfaceProperties{Surface: surface(
			"Parametric Surface",
			`_f(u,v)=\left[v\cdot\cos\left(u\right),v\cdot\sin\left(u\right),v\right]`,
			`\left[-\pi,\ \pi\right]`,
			`\left[-3, 3\right]`,
			`_f(X, Y, Z, u, v)=mod(Z, 1)`,
		)}
	},
	types.ItemExplicitSurface: func() Properties {
		return &ExplicitSurfaceProperties{Surface: surface(
			"Explicit Surface",
			`_f(x,y)=x^2-y^2`,
			`\left[-2,\ 2\right]`,
			`\left[-2,\ 2\right]`,
			`_f(X, Y, Z, x, y)=mod(Z, 1)`,
		)}
	},
	types.ItemExplicitSurfacePolar: func() Properties {
		return &ExplicitSurfacePolarProperties{Surface: surface(
			"Explicit Surface (Polar)",
			`_f(r,\theta)=\frac{1}{4}r^2\cdot\cos\left(3\theta\right)`,
			`\left[0,\ 3\right]`,
			`\left[-\pi,\ \pi\right]`,
			`_f(X, Y, Z, r, \theta)=mod(Z, 1)`,
		)}
	},
	types.ItemImplicitSurface: func() Properties {
		return &ImplicitSurfaceProperties{
			Graphic: graphic("Implicit Surface", graphicColor),
			Shaded:  true,
			RangeX:  `\left[-5,\ 5\right]`,
			RangeY:  `\left[-5,\ 5\right]`,
			RangeZ:  `\left[-5,\ 5\right]`,
			LHS:     `_f(x,y,z)=x^2+y^2`,
			RHS:     `_f(x,y,z)=z^2+1`,
			Samples: "20",
		}
	},
	types.ItemVectorField: func() Properties {
		return &VectorFieldProperties{
			Graphic: graphic("Vector Field", graphicColor),
			Size:    "6",
			Width:   "2",
			End:     true,
			RangeX:  `\left[-5,\ 5\right]`,
			RangeY:  `\left[-5,\ 5\right]`,
			RangeZ:  `\left[-5,\ 5\right]`,
			Expr:    `_f(x,y,z)=\frac{[y,\ -x,\ 0]}{\sqrt{x^2+y^2}}`,
			Samples: "[10, 10, 5]",
			Scale:   "1",
		}
	},
}

// Default returns the canonical default record for itemType.
func Default(itemType types.ItemType) (Properties, error) {
	build, ok := defaults[itemType]
	if !ok {
		return nil, unsupported(itemType)
	}
	return build(), nil
}

// axisDefaults are the id-keyed overrides applied to the fixed scene axes
// before caller-supplied keys.
var axisDefaults = map[string]map[string]any{
	"axis-x": {"axis": "x", "label": "x"},
	"axis-y": {"axis": "y", "label": "y"},
	"axis-z": {"axis": "z", "label": "z", "scale": "1/2"},
}
