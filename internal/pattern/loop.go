package pattern

import (
	"fmt"
	"math"
)

// Loop replays one child forever, using the child's own duration as the
// cycle length. A spawn landing exactly on a cycle boundary is emitted once,
// as the first spawn of the next cycle.
type Loop struct {
	child Pattern
	cycle float64
}

// NewLoop creates a loop around the child pattern.
func NewLoop(child Pattern) (*Loop, error) {
	if child == nil {
		return nil, fmt.Errorf("%w: loop needs a child pattern", ErrInvalidArgument)
	}
	return &Loop{child: child, cycle: child.Duration()}, nil
}

// Child returns the looped pattern.
func (p *Loop) Child() Pattern { return p.child }

// Duration is always infinite.
func (p *Loop) Duration() float64 { return math.Inf(1) }

// Looping is always true.
func (p *Loop) Looping() bool { return true }

func (p *Loop) sealed() {}

func (p *Loop) Query(last, current float64, ctx Context) []Spawn {
	if current < last {
		return nil
	}
	// A zero-length cycle has nothing to wrap, and an infinite child (for
	// example a looping spiral) manages its own timeline; both see the
	// window unmodified.
	if p.cycle == 0 || math.IsInf(p.cycle, 1) {
		return p.child.Query(last, current, ctx)
	}
	return queryCycles(p.cycle, last, current, ctx, p.child.Query)
}
