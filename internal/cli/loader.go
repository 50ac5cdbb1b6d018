// Completion: 100% - Procedure fixture loader complete
package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jnorthrup/TornadoVM/internal/annotations"
	"github.com/jnorthrup/TornadoVM/internal/graph"
)

// loader.go - YAML procedure fixtures
//
// A fixture describes one procedure's loop nest and its parallel
// annotations, enough to reconstruct the canonical counted-loop IR the
// host front end would have produced:
//
//	procedure: compute
//	params: 1
//	loops:
//	  - init: 0
//	    stride: 1
//	    bound: {param: 0}
//	    slot: 3
//	    bci: 10
//	  - init: 0
//	    stride: 1
//	    bound: 32
//	    slot: 4
//	    bci: 40
//	    nest: true
//	annotations:
//	  - {start: 8, length: 12, slot: 3}
//	  - {start: 36, length: 12, slot: 4}
//
// nest places a loop inside the body of the one before it; otherwise
// loops are siblings.

type valueSpec struct {
	value *int64
	param *int
}

// UnmarshalYAML accepts either a bare integer constant or {param: n}.
func (v *valueSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var n int64
		if err := node.Decode(&n); err != nil {
			return err
		}
		v.value = &n
		return nil
	}
	var aux struct {
		Param *int   `yaml:"param"`
		Value *int64 `yaml:"value"`
	}
	if err := node.Decode(&aux); err != nil {
		return err
	}
	v.param, v.value = aux.Param, aux.Value
	if v.param == nil && v.value == nil {
		return fmt.Errorf("value must be a constant or {param: n}")
	}
	return nil
}

type loopSpec struct {
	Init   valueSpec `yaml:"init"`
	Stride valueSpec `yaml:"stride"`
	Bound  valueSpec `yaml:"bound"`
	Slot   int       `yaml:"slot"`
	BCI    int64     `yaml:"bci"`
	Frame  string    `yaml:"frame"` // owning procedure of the capture site, default: root
	Nest   bool      `yaml:"nest"`
}

type procedureFixture struct {
	Procedure   string               `yaml:"procedure"`
	Inlined     []string             `yaml:"inlined"`
	Params      int                  `yaml:"params"`
	Loops       []loopSpec           `yaml:"loops"`
	Annotations []annotations.Record `yaml:"annotations"`
}

// LoadProcedure builds the IR graph of a fixture file. The returned
// provider serves the fixture's inline annotation records for the root
// procedure.
func LoadProcedure(path string) (*graph.Graph, annotations.StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("procedure fixture: %w", err)
	}
	var fx procedureFixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, nil, fmt.Errorf("procedure fixture %s: %w", path, err)
	}
	if fx.Procedure == "" {
		return nil, nil, fmt.Errorf("procedure fixture %s: missing procedure name", path)
	}

	b := graph.NewBuilder(fx.Procedure)
	g := b.Graph()
	for _, callee := range fx.Inlined {
		g.RecordInlined(callee)
	}

	params := make(map[int]graph.NodeID)
	operand := func(v valueSpec) (graph.NodeID, error) {
		if v.value != nil {
			return b.IntConst(*v.value), nil
		}
		if v.param == nil {
			return graph.InvalidNode, fmt.Errorf("missing loop operand")
		}
		if *v.param < 0 || *v.param >= fx.Params {
			return graph.InvalidNode, fmt.Errorf("parameter %d out of range", *v.param)
		}
		if p, ok := params[*v.param]; ok {
			return p, nil
		}
		p := b.Param(*v.param)
		params[*v.param] = p
		return p, nil
	}

	var open []graph.CountedLoop
	closeAll := func() {
		for i := len(open) - 1; i >= 0; i-- {
			b.EndLoop(open[i])
		}
		open = open[:0]
	}
	for _, lp := range fx.Loops {
		if !lp.Nest {
			closeAll()
		}
		init, err := operand(lp.Init)
		if err != nil {
			return nil, nil, err
		}
		stride, err := operand(lp.Stride)
		if err != nil {
			return nil, nil, err
		}
		bound, err := operand(lp.Bound)
		if err != nil {
			return nil, nil, err
		}
		loop := b.BeginLoop(init, stride, bound)

		owner := lp.Frame
		if owner == "" {
			owner = fx.Procedure
		}
		locals := make([]graph.NodeID, lp.Slot+1)
		for i := range locals {
			locals[i] = graph.InvalidNode
		}
		locals[lp.Slot] = loop.Phi
		b.CaptureFrame(owner, lp.BCI, locals...)

		open = append(open, loop)
	}
	closeAll()

	provider := annotations.StaticProvider{}
	if len(fx.Annotations) > 0 {
		provider[fx.Procedure] = fx.Annotations
	}
	return g, provider, nil
}
