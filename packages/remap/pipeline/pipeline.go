// Package pipeline chains stages in a fixed order.
package pipeline

import (
	"fmt"

	"github.com/suremarc/go-almanac/packages/remap/stage"
)

// Spec describes one stage before it is built.
type Spec struct {
	Name  string
	Rules []stage.Rule
}

type Stage struct {
	Name string
	Map  *stage.Map
}

// Pipeline is an immutable, ordered sequence of stages.
type Pipeline struct {
	stages []Stage
}

func New(stages ...Stage) *Pipeline {
	p := &Pipeline{stages: make([]Stage, len(stages))}
	copy(p.stages, stages)
	for i := range p.stages {
		if p.stages[i].Map == nil {
			p.stages[i].Map = &stage.Map{}
		}
	}

	return p
}

// Build builds every stage in order. The first malformed stage aborts the build.
func Build(specs []Spec) (*Pipeline, error) {
	stages := make([]Stage, 0, len(specs))
	for i, spec := range specs {
		m, err := stage.Build(spec.Rules)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, spec.Name, err)
		}

		stages = append(stages, Stage{Name: spec.Name, Map: m})
	}

	return &Pipeline{stages: stages}, nil
}

func (p *Pipeline) Len() int {
	return len(p.stages)
}

func (p *Pipeline) Stages() []Stage {
	stages := make([]Stage, len(p.stages))
	copy(stages, p.stages)
	return stages
}

// ApplyPoint maps v through every stage.
func (p *Pipeline) ApplyPoint(v uint64) uint64 {
	for _, s := range p.stages {
		v = s.Map.LookupPoint(v)
	}

	return v
}

// Trace returns the value after each stage; the last element equals ApplyPoint(v).
func (p *Pipeline) Trace(v uint64) []uint64 {
	values := make([]uint64, 0, len(p.stages))
	for _, s := range p.stages {
		v = s.Map.LookupPoint(v)
		values = append(values, v)
	}

	return values
}
