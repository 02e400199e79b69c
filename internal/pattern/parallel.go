package pattern

import "fmt"

// Parallel plays all of its children at once, each seeing the exact query
// window and context the parallel itself received. Results are concatenated
// in child order.
type Parallel struct {
	children []Pattern
}

// NewParallel creates a parallel composite of one or more children.
func NewParallel(children ...Pattern) (*Parallel, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: parallel needs at least one child", ErrInvalidArgument)
	}
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("%w: parallel child %d is nil", ErrInvalidArgument, i)
		}
	}
	owned := make([]Pattern, len(children))
	copy(owned, children)
	return &Parallel{children: owned}, nil
}

// Children returns the child patterns. The returned slice must not be
// modified.
func (p *Parallel) Children() []Pattern { return p.children }

// Duration is the longest child duration.
func (p *Parallel) Duration() float64 {
	max := 0.0
	for _, c := range p.children {
		if d := c.Duration(); d > max {
			max = d
		}
	}
	return max
}

// Looping reports true if any child loops.
func (p *Parallel) Looping() bool {
	for _, c := range p.children {
		if c.Looping() {
			return true
		}
	}
	return false
}

func (p *Parallel) sealed() {}

func (p *Parallel) Query(last, current float64, ctx Context) []Spawn {
	if current < last {
		return nil
	}
	var out []Spawn
	for _, c := range p.children {
		out = append(out, c.Query(last, current, ctx)...)
	}
	return out
}
