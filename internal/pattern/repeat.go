package pattern

import (
	"fmt"
	"math"
)

// Repeat plays one child a fixed number of times with an optional delay
// between repeats. With a zero delay, consecutive repeats share a boundary
// instant; each repeat is still evaluated independently, so the previous
// repeat's final spawn and the next repeat's first spawn both fire there.
type Repeat struct {
	child Pattern
	count int
	delay float64
}

// NewRepeat creates a repeat of count plays of the child, delay seconds
// apart.
func NewRepeat(child Pattern, count int, delay float64) (*Repeat, error) {
	if child == nil {
		return nil, fmt.Errorf("%w: repeat needs a child pattern", ErrInvalidArgument)
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: repeat count %d, need at least 1", ErrInvalidArgument, count)
	}
	if delay < 0 {
		return nil, fmt.Errorf("%w: negative delay %v", ErrInvalidArgument, delay)
	}
	return &Repeat{child: child, count: count, delay: delay}, nil
}

// Child returns the repeated pattern.
func (p *Repeat) Child() Pattern { return p.child }

// Count returns the number of repeats.
func (p *Repeat) Count() int { return p.count }

// Delay returns the seconds between repeats.
func (p *Repeat) Delay() float64 { return p.delay }

// Duration is child*count plus the delays between repeats. Infinite if the
// child never finishes (repeats past the first are then unreachable).
func (p *Repeat) Duration() float64 {
	d := p.child.Duration()
	if math.IsInf(d, 1) {
		return d
	}
	return d*float64(p.count) + p.delay*float64(p.count-1)
}

// Looping reports true if the child loops. Repeat never loops by itself.
func (p *Repeat) Looping() bool { return p.child.Looping() }

func (p *Repeat) sealed() {}

func (p *Repeat) Query(last, current float64, ctx Context) []Spawn {
	if current < last {
		return nil
	}
	dur := p.child.Duration()
	if math.IsInf(dur, 1) {
		// Only the first repeat ever plays.
		return p.child.Query(last, current, ctx)
	}

	stride := dur + p.delay
	var out []Spawn
	for k := 0; k < p.count; k++ {
		start := float64(k) * stride
		if !intervalOverlaps(last, current, start, dur) {
			continue
		}
		childLast := last - start
		childCurrent := current - start
		out = append(out, p.child.Query(childLast, childCurrent, ctx.WithAge(childCurrent))...)
	}
	return out
}
