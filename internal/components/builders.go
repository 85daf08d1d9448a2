// Package components implements the primitive component library of the
// Philbrick analog computer: closed-form arithmetic and generator
// elements evaluated once per tick.
//
// The catalog is a closed set. Parameter keys follow the declarative
// circuit schema (frequency, amplitude, weights, k, ...); builders
// reject unknown keys and report missing required ones so that a bad
// circuit file fails at construction, never during stepping.
package components

import "github.com/roach88/philbrick/internal/engine"

// Builder constructs a primitive component from keyword parameters.
type Builder func(name string, params Params) (engine.Component, error)

// Builtins returns the builder table for every primitive type, keyed
// by type name. The returned map is freshly allocated per call.
func Builtins() map[string]Builder {
	return map[string]Builder{
		"VoltageSource":   buildVoltageSource,
		"TriangleWave":    buildTriangleWave,
		"SawtoothWave":    buildSawtoothWave,
		"SquareWave":      buildSquareWave,
		"Integrator":      buildIntegrator,
		"Summer":          buildSummer,
		"Coefficient":     buildCoefficient,
		"Inverter":        buildInverter,
		"Multiplier":      buildMultiplier,
		"Comparator":      buildComparator,
		"Limiter":         buildLimiter,
		"Exp":             buildExp,
		"Divider":         buildDivider,
		"DotProduct":      buildDotProduct,
		"Max":             buildMax,
		"Constant":        buildConstant,
		"PiecewiseLinear": buildPiecewiseLinear,
	}
}

func buildVoltageSource(name string, p Params) (engine.Component, error) {
	if err := p.check("VoltageSource", "frequency", "amplitude"); err != nil {
		return nil, err
	}
	freq, err := p.requireFloat("VoltageSource", "frequency")
	if err != nil {
		return nil, err
	}
	amp, err := p.float("VoltageSource", "amplitude", 1.0)
	if err != nil {
		return nil, err
	}
	return NewVoltageSource(name, freq, amp), nil
}

func buildTriangleWave(name string, p Params) (engine.Component, error) {
	if err := p.check("TriangleWave", "frequency", "amplitude"); err != nil {
		return nil, err
	}
	freq, err := p.requireFloat("TriangleWave", "frequency")
	if err != nil {
		return nil, err
	}
	amp, err := p.float("TriangleWave", "amplitude", 1.0)
	if err != nil {
		return nil, err
	}
	return NewTriangleWave(name, freq, amp), nil
}

func buildSawtoothWave(name string, p Params) (engine.Component, error) {
	if err := p.check("SawtoothWave", "frequency", "amplitude"); err != nil {
		return nil, err
	}
	freq, err := p.requireFloat("SawtoothWave", "frequency")
	if err != nil {
		return nil, err
	}
	amp, err := p.float("SawtoothWave", "amplitude", 1.0)
	if err != nil {
		return nil, err
	}
	return NewSawtoothWave(name, freq, amp), nil
}

func buildSquareWave(name string, p Params) (engine.Component, error) {
	if err := p.check("SquareWave", "frequency", "amplitude", "duty_cycle"); err != nil {
		return nil, err
	}
	freq, err := p.requireFloat("SquareWave", "frequency")
	if err != nil {
		return nil, err
	}
	amp, err := p.float("SquareWave", "amplitude", 1.0)
	if err != nil {
		return nil, err
	}
	duty, err := p.float("SquareWave", "duty_cycle", 0.5)
	if err != nil {
		return nil, err
	}
	return NewSquareWave(name, freq, amp, duty), nil
}

func buildIntegrator(name string, p Params) (engine.Component, error) {
	if err := p.check("Integrator", "initial", "gain"); err != nil {
		return nil, err
	}
	initial, err := p.float("Integrator", "initial", 0.0)
	if err != nil {
		return nil, err
	}
	gain, err := p.float("Integrator", "gain", 1.0)
	if err != nil {
		return nil, err
	}
	return NewIntegrator(name, initial, gain), nil
}

func buildSummer(name string, p Params) (engine.Component, error) {
	if err := p.check("Summer", "weights"); err != nil {
		return nil, err
	}
	weights, err := p.floats("Summer", "weights", []float64{1.0, 1.0})
	if err != nil {
		return nil, err
	}
	return NewSummer(name, weights), nil
}

func buildCoefficient(name string, p Params) (engine.Component, error) {
	if err := p.check("Coefficient", "k"); err != nil {
		return nil, err
	}
	k, err := p.float("Coefficient", "k", 1.0)
	if err != nil {
		return nil, err
	}
	return NewCoefficient(name, k), nil
}

func buildInverter(name string, p Params) (engine.Component, error) {
	if err := p.check("Inverter"); err != nil {
		return nil, err
	}
	return NewInverter(name), nil
}

func buildMultiplier(name string, p Params) (engine.Component, error) {
	if err := p.check("Multiplier", "scale"); err != nil {
		return nil, err
	}
	scale, err := p.float("Multiplier", "scale", 1.0)
	if err != nil {
		return nil, err
	}
	return NewMultiplier(name, scale), nil
}

func buildComparator(name string, p Params) (engine.Component, error) {
	if err := p.check("Comparator", "threshold", "high", "low"); err != nil {
		return nil, err
	}
	threshold, err := p.float("Comparator", "threshold", 0.0)
	if err != nil {
		return nil, err
	}
	high, err := p.float("Comparator", "high", 1.0)
	if err != nil {
		return nil, err
	}
	low, err := p.float("Comparator", "low", -1.0)
	if err != nil {
		return nil, err
	}
	return NewComparator(name, threshold, high, low), nil
}

func buildLimiter(name string, p Params) (engine.Component, error) {
	if err := p.check("Limiter", "min_val", "max_val"); err != nil {
		return nil, err
	}
	min, err := p.float("Limiter", "min_val", -1.0)
	if err != nil {
		return nil, err
	}
	max, err := p.float("Limiter", "max_val", 1.0)
	if err != nil {
		return nil, err
	}
	return NewLimiter(name, min, max), nil
}

func buildExp(name string, p Params) (engine.Component, error) {
	if err := p.check("Exp", "scale"); err != nil {
		return nil, err
	}
	scale, err := p.float("Exp", "scale", 1.0)
	if err != nil {
		return nil, err
	}
	return NewExp(name, scale), nil
}

func buildDivider(name string, p Params) (engine.Component, error) {
	if err := p.check("Divider", "epsilon"); err != nil {
		return nil, err
	}
	epsilon, err := p.float("Divider", "epsilon", 1e-6)
	if err != nil {
		return nil, err
	}
	return NewDivider(name, epsilon), nil
}

func buildDotProduct(name string, p Params) (engine.Component, error) {
	if err := p.check("DotProduct", "size"); err != nil {
		return nil, err
	}
	size, err := p.intval("DotProduct", "size", 4)
	if err != nil {
		return nil, err
	}
	return NewDotProduct(name, size), nil
}

func buildMax(name string, p Params) (engine.Component, error) {
	if err := p.check("Max", "size"); err != nil {
		return nil, err
	}
	size, err := p.intval("Max", "size", 2)
	if err != nil {
		return nil, err
	}
	return NewMax(name, size), nil
}

func buildConstant(name string, p Params) (engine.Component, error) {
	if err := p.check("Constant", "value"); err != nil {
		return nil, err
	}
	value, err := p.float("Constant", "value", 1.0)
	if err != nil {
		return nil, err
	}
	return NewConstant(name, value), nil
}

func buildPiecewiseLinear(name string, p Params) (engine.Component, error) {
	if err := p.check("PiecewiseLinear", "breakpoints"); err != nil {
		return nil, err
	}
	bps, err := p.breakpoints("PiecewiseLinear", "breakpoints", []Breakpoint{{X: -1, Y: -1}, {X: 1, Y: 1}})
	if err != nil {
		return nil, err
	}
	return NewPiecewiseLinear(name, bps), nil
}
