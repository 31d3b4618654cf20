package migrate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

func TestAssignment(t *testing.T) {
	tests := []struct {
		name       string
		expr       string
		wantLHS    string
		wantRHS    string
		wantErrors int
	}{
		{name: "single equals", expr: "a=1", wantLHS: "a", wantRHS: "1"},
		{name: "no equals", expr: "a", wantLHS: "a", wantRHS: "", wantErrors: 1},
		{name: "two equals concatenates rhs", expr: "a=b=c", wantLHS: "a", wantRHS: "bc", wantErrors: 1},
		{name: "function lhs", expr: "f(x)=e^x", wantLHS: "f(x)", wantRHS: "e^x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMigrator(nil)
			got := m.Assignment(tt.expr)
			assert.Equal(t, types.NewAssignment(tt.wantLHS, tt.wantRHS), got)
			assert.Equal(t, tt.wantErrors, m.Log().Count(types.SeverityError))
		})
	}
}

func TestFunctionAssignment(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    types.ParseableFunctionAssignment
		wantErr error
	}{
		{
			name: "two params",
			expr: "f(x,y)=x^2-y^2",
			want: types.NewFunctionAssignment("f", []string{"x", "y"}, "x^2-y^2"),
		},
		{
			name: "params keep their spacing",
			expr: "_f(X, Y, Z, u, v)=mod(Z, 1)",
			want: types.NewFunctionAssignment("_f", []string{"X", " Y", " Z", " u", " v"}, "mod(Z, 1)"),
		},
		{
			name: "latex param",
			expr: `_f(r,\theta)=r`,
			want: types.NewFunctionAssignment("_f", []string{"r", `\theta`}, "r"),
		},
		{
			name: "empty param list",
			expr: "g()=1",
			want: types.NewFunctionAssignment("g", []string{""}, "1"),
		},
		{
			name:    "no parens",
			expr:    "bad_no_parens=1",
			wantErr: types.ErrMalformedExpression,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewMigrator(nil).FunctionAssignment(tt.expr)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFunctionAssignmentLogsExtraEquals(t *testing.T) {
	m := NewMigrator(nil)
	got, err := m.FunctionAssignment("f(x)=a=b")
	require.NoError(t, err)
	assert.Equal(t, "ab", got.RHS)
	require.Len(t, m.Log().Issues(), 1)
	assert.Equal(t, "Expected one rhs. Value: f(x)=a=b", m.Log().Issues()[0].Message)
}

func TestDomainWrapsBareRanges(t *testing.T) {
	m := NewMigrator(nil)
	got, err := m.domain([]string{`\left[-2,\ 2\right]`, "_f(y)=[0, y]"}, []string{"y", "x"})
	require.NoError(t, err)
	assert.Equal(t, types.NewFunctionAssignmentArray(
		types.NewFunctionAssignment("_f", []string{"y"}, `\left[-2,\ 2\right]`),
		types.NewFunctionAssignment("_f", []string{"y"}, "[0, y]"),
	), got)
}

func TestSpeed(t *testing.T) {
	tests := []struct {
		in         float64
		want       string
		wantErrors int
	}{
		{0.125, "1/8", 0},
		{0.25, "1/4", 0},
		{0.5, "1/2", 0},
		{0.75, "3/4", 0},
		{1, "1", 0},
		{2, "2", 0},
		{4, "4", 0},
		{8, "8", 0},
		{0.33, "1", 1},
		{16, "1", 1},
	}
	for _, tt := range tests {
		m := NewMigrator(nil)
		assert.Equal(t, tt.want, m.speed(tt.in), "speed %v", tt.in)
		assert.Equal(t, tt.wantErrors, m.Log().Count(types.SeverityError), "speed %v", tt.in)
	}
}

func TestVectorFieldSamples(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		want       [3]string
		wantErrors int
	}{
		{name: "plain", in: "[10, 20, 30]", want: [3]string{"10", "20", "30"}},
		{name: "default", in: "[10, 10, 5]", want: [3]string{"10", "10", "5"}},
		{name: "latex brackets", in: `\left[4,\ 5,\ 6\right]`, want: [3]string{"4", "5", "6"}},
		{name: "no spaces", in: "[1,2,3]", want: [3]string{"1", "2", "3"}},
		{name: "two parts", in: "[1, 2]", want: [3]string{"10", "10", "5"}, wantErrors: 1},
		{name: "not an array", in: "12", want: [3]string{"10", "10", "5"}, wantErrors: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMigrator(nil)
			assert.Equal(t, tt.want, m.vectorFieldSamples(tt.in))
			assert.Equal(t, tt.wantErrors, m.Log().Count(types.SeverityError))
		})
	}
}
