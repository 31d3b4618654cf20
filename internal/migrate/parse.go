package migrate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

var (
	functionLHS    = regexp.MustCompile(`(.*?)\((.*?)\)`)
	vectorSamples  = regexp.MustCompile(`^(?:\\left)?\[(.+?),(.+?),(.+?)(?:\\right)?\]`)
	defaultSamples = [3]string{"10", "10", "5"}
)

// Assignment splits expr on "=" into lhs and rhs. An expression without
// exactly one "=" is logged as an error; the rhs is then every piece after
// the first, concatenated.
func (m *Migrator) Assignment(expr string) types.ParseableAssignment {
	lhs, rhs := m.splitEquation(expr)
	return types.NewAssignment(lhs, rhs)
}

// FunctionAssignment parses "name(p1,p2,...)=rhs". Params are split on ","
// and kept as written, spacing included. A lhs without a parenthesized
// parameter list returns types.ErrMalformedExpression.
func (m *Migrator) FunctionAssignment(expr string) (types.ParseableFunctionAssignment, error) {
	lhs, rhs := m.splitEquation(expr)
	match := functionLHS.FindStringSubmatch(lhs)
	if match == nil {
		return types.ParseableFunctionAssignment{},
			fmt.Errorf("%w: expected lhs to have form 'f(...)', got %q", types.ErrMalformedExpression, lhs)
	}
	return types.NewFunctionAssignment(match[1], strings.Split(match[2], ","), rhs), nil
}

func (m *Migrator) splitEquation(expr string) (lhs, rhs string) {
	pieces := strings.Split(expr, "=")
	if len(pieces) != 2 {
		m.errorf("Expected one rhs. Value: %s", expr)
	}
	return pieces[0], strings.Join(pieces[1:], "")
}

// domain parses surface ranges as function assignments. A range written as
// a bare interval is first wrapped as _f(param)=range.
func (m *Migrator) domain(ranges []string, params []string) (types.ParseableFunctionAssignmentArray, error) {
	items := make([]types.ParseableFunctionAssignment, len(ranges))
	for i, r := range ranges {
		if !strings.Contains(r, "=") {
			r = fmt.Sprintf("_f(%s)=%s", params[i], r)
		}
		fa, err := m.FunctionAssignment(r)
		if err != nil {
			return types.ParseableFunctionAssignmentArray{}, err
		}
		items[i] = fa
	}
	return types.NewFunctionAssignmentArray(items...), nil
}

// speeds are the multipliers offered by the new slider control.
var speeds = []struct {
	value float64
	label string
}{
	{0.125, "1/8"},
	{0.25, "1/4"},
	{0.5, "1/2"},
	{0.75, "3/4"},
	{1, "1"},
	{2, "2"},
	{4, "4"},
	{8, "8"},
}

// speed maps a legacy speed multiplier onto the fraction labels of the new
// slider. Unmapped values are logged and become "1".
func (m *Migrator) speed(v float64) string {
	for _, s := range speeds {
		if v == s.value {
			return s.label
		}
	}
	m.errorf("Unexpected speedMultiplier: %v", v)
	return "1"
}

// vectorFieldSamples splits "[n1, n2, n3]", optionally written with
// \left[ and \right], into three sample counts. Malformed input is logged
// and becomes 10, 10, 5.
func (m *Migrator) vectorFieldSamples(s string) [3]string {
	match := vectorSamples.FindStringSubmatch(s)
	if match == nil {
		m.errorf("Invalid vector field samples: %s", s)
		return defaultSamples
	}
	var out [3]string
	for i := range out {
		out[i] = strings.TrimSpace(strings.ReplaceAll(match[i+1], `\ `, " "))
	}
	return out
}
