package components

import (
	"fmt"

	"github.com/roach88/philbrick/internal/engine"
)

// Params carries keyword constructor parameters for a component, as
// decoded from a circuit file or supplied programmatically. Numeric
// values may arrive as int or float64 depending on the decoder.
type Params map[string]any

// check rejects parameter keys the given type does not accept.
func (p Params) check(typeName string, allowed ...string) error {
	for key := range p {
		ok := false
		for _, a := range allowed {
			if key == a {
				ok = true
				break
			}
		}
		if !ok {
			return &engine.BuildError{
				Code:    engine.ErrCodeBadParam,
				Message: fmt.Sprintf("%s does not accept parameter %q", typeName, key),
			}
		}
	}
	return nil
}

func badParam(typeName, key, problem string) error {
	return &engine.BuildError{
		Code:    engine.ErrCodeBadParam,
		Message: fmt.Sprintf("%s parameter %q %s", typeName, key, problem),
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// float returns the named parameter as a float64, or def if absent.
func (p Params) float(typeName, key string, def float64) (float64, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, badParam(typeName, key, "must be a number")
	}
	return f, nil
}

// requireFloat returns the named parameter as a float64, failing if absent.
func (p Params) requireFloat(typeName, key string) (float64, error) {
	if _, ok := p[key]; !ok {
		return 0, badParam(typeName, key, "is required")
	}
	return p.float(typeName, key, 0)
}

// intval returns the named parameter as an int, or def if absent.
func (p Params) intval(typeName, key string, def int) (int, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	f, okf := asFloat(v)
	if !okf || f != float64(int(f)) {
		return 0, badParam(typeName, key, "must be an integer")
	}
	return int(f), nil
}

// floats returns the named parameter as a []float64, or def if absent.
func (p Params) floats(typeName, key string, def []float64) ([]float64, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	switch list := v.(type) {
	case []float64:
		return list, nil
	case []any:
		out := make([]float64, len(list))
		for i, item := range list {
			f, okf := asFloat(item)
			if !okf {
				return nil, badParam(typeName, key, "must be a list of numbers")
			}
			out[i] = f
		}
		return out, nil
	}
	return nil, badParam(typeName, key, "must be a list of numbers")
}

// breakpoints returns the named parameter as (x, y) pairs, or def if
// absent. Accepts [][2]float64-shaped data: a list of two-element
// number lists.
func (p Params) breakpoints(typeName, key string, def []Breakpoint) ([]Breakpoint, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	switch list := v.(type) {
	case []Breakpoint:
		return list, nil
	case []any:
		out := make([]Breakpoint, len(list))
		for i, item := range list {
			pair, okp := item.([]any)
			if !okp || len(pair) != 2 {
				return nil, badParam(typeName, key, "must be a list of [x, y] pairs")
			}
			x, okx := asFloat(pair[0])
			y, oky := asFloat(pair[1])
			if !okx || !oky {
				return nil, badParam(typeName, key, "must be a list of [x, y] pairs")
			}
			out[i] = Breakpoint{X: x, Y: y}
		}
		return out, nil
	}
	return nil, badParam(typeName, key, "must be a list of [x, y] pairs")
}
