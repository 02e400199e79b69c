package pattern

import (
	"fmt"
	"math"
)

// Sequence plays its children back to back: each child starts when the
// previous one's duration has elapsed. Start offsets are precomputed at
// construction. A looping sequence restarts from the first child once the
// last one finishes.
type Sequence struct {
	children []Pattern
	offsets  []float64 // Start offset of each child
	total    float64   // Sum of child durations; the cycle length when looping
	looping  bool
}

// NewSequence creates a sequence of one or more children.
func NewSequence(children ...Pattern) (*Sequence, error) {
	return newSequence(false, children)
}

// NewLoopingSequence creates a sequence that restarts forever.
func NewLoopingSequence(children ...Pattern) (*Sequence, error) {
	return newSequence(true, children)
}

func newSequence(looping bool, children []Pattern) (*Sequence, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: sequence needs at least one child", ErrInvalidArgument)
	}
	offsets := make([]float64, len(children))
	total := 0.0
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("%w: sequence child %d is nil", ErrInvalidArgument, i)
		}
		offsets[i] = total
		total += c.Duration()
	}
	owned := make([]Pattern, len(children))
	copy(owned, children)
	return &Sequence{children: owned, offsets: offsets, total: total, looping: looping}, nil
}

// Children returns the child patterns in play order. The returned slice
// must not be modified.
func (p *Sequence) Children() []Pattern { return p.children }

func (p *Sequence) Duration() float64 {
	if p.Looping() {
		return math.Inf(1)
	}
	return p.total
}

func (p *Sequence) Looping() bool {
	if p.looping {
		return true
	}
	for _, c := range p.children {
		if c.Looping() {
			return true
		}
	}
	return false
}

func (p *Sequence) sealed() {}

func (p *Sequence) Query(last, current float64, ctx Context) []Spawn {
	if current < last {
		return nil
	}
	// A looping sequence with a finite, positive cycle replays that cycle
	// across the window. An infinite or empty cycle passes through: an
	// infinite child manages its own timeline, and a zero-length cycle has
	// nothing to wrap.
	if p.looping && p.total > 0 && !math.IsInf(p.total, 1) {
		return queryCycles(p.total, last, current, ctx, p.queryOnce)
	}
	return p.queryOnce(last, current, ctx)
}

// queryOnce evaluates a single pass over the children, in unlooped time.
func (p *Sequence) queryOnce(last, current float64, ctx Context) []Spawn {
	var out []Spawn
	for i, child := range p.children {
		start := p.offsets[i]
		dur := child.Duration()

		if !intervalOverlaps(last, current, start, dur) {
			continue
		}

		// Delegate in child-local time. The upper bound is deliberately not
		// clamped to the child's duration: with half-open windows, clamping
		// would drop a spawn landing exactly at the duration, and a finite
		// child emits nothing beyond it anyway.
		childLast := last - start
		childCurrent := current - start
		out = append(out, child.Query(childLast, childCurrent, ctx.WithAge(childCurrent))...)
	}
	return out
}

// intervalOverlaps reports whether a child occupying [start, start+dur]
// should see any of the query window [last, current). Zero-duration
// children occupy the single instant start; the end of a finite child's
// interval is inclusive so a spawn landing exactly at its duration is
// still reachable.
func intervalOverlaps(last, current, start, dur float64) bool {
	if last == current {
		// Degenerate window: the child is live at exactly this instant.
		return start <= last && (math.IsInf(dur, 1) || start+dur >= last)
	}
	if start >= current {
		return false
	}
	if math.IsInf(dur, 1) {
		return true
	}
	return start+dur >= last
}
