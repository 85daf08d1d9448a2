package registry

// Built-in subcircuit library: templates shipped with the emulator and
// registered alongside the primitives.

// SoftmaxTemplate returns the 2-input softmax macro:
// out_i = exp(in_i) / (exp(in_0) + exp(in_1)).
//
// Three serial internal stages (Exp, Summer, Divider) mean an input
// change needs at least three propagate/step cycles to settle at the
// outputs.
func SoftmaxTemplate() *Template {
	return &Template{
		Name:        "Softmax",
		Description: "Softmax normalization for 2 inputs: exp(x_i) / sum(exp(x_j))",
		Inputs:      []string{"in0", "in1"},
		Outputs:     []string{"out0", "out1"},
		Components: []ComponentDecl{
			{Name: "EXP0", Type: "Exp"},
			{Name: "EXP1", Type: "Exp"},
			{Name: "SUM", Type: "Summer", Params: map[string]any{"weights": []float64{1.0, 1.0}}},
			{Name: "DIV0", Type: "Divider"},
			{Name: "DIV1", Type: "Divider"},
		},
		Patches: []PatchDecl{
			{Source: "EXP0.out", Dest: "SUM.in0"},
			{Source: "EXP1.out", Dest: "SUM.in1"},
			{Source: "EXP0.out", Dest: "DIV0.num"},
			{Source: "SUM.out", Dest: "DIV0.den"},
			{Source: "EXP1.out", Dest: "DIV1.num"},
			{Source: "SUM.out", Dest: "DIV1.den"},
		},
		InputMap: map[string]string{
			"in0": "EXP0.in",
			"in1": "EXP1.in",
		},
		OutputMap: map[string]string{
			"out0": "DIV0.out",
			"out1": "DIV1.out",
		},
	}
}

// AttentionHeadTemplate returns the single-query attention macro:
// out = (q · k) * v, with a unit coefficient between the score and the
// multiplier as the hook for future multi-key softmax weighting.
func AttentionHeadTemplate() *Template {
	return &Template{
		Name:        "AttentionHead",
		Description: "Single-query attention: output = (q . k) * v",
		Inputs:      []string{"q0", "q1", "k0", "k1", "v"},
		Outputs:     []string{"out"},
		Components: []ComponentDecl{
			{Name: "DOT", Type: "DotProduct", Params: map[string]any{"size": 2}},
			{Name: "WEIGHT", Type: "Coefficient", Params: map[string]any{"k": 1.0}},
			{Name: "MUL", Type: "Multiplier"},
		},
		Patches: []PatchDecl{
			{Source: "DOT.out", Dest: "WEIGHT.in"},
			{Source: "WEIGHT.out", Dest: "MUL.x"},
		},
		InputMap: map[string]string{
			"q0": "DOT.a0",
			"q1": "DOT.a1",
			"k0": "DOT.b0",
			"k1": "DOT.b1",
			"v":  "MUL.y",
		},
		OutputMap: map[string]string{
			"out": "MUL.out",
		},
	}
}

// RegisterLibrary adds the built-in templates to a registry.
func RegisterLibrary(r *Registry) error {
	for _, tpl := range []*Template{SoftmaxTemplate(), AttentionHeadTemplate()} {
		if err := r.Register(tpl); err != nil {
			return err
		}
	}
	return nil
}
