package pattern

import (
	"fmt"

	"github.com/barrage-tui/barrage/internal/geom"
)

// Rotating wraps one child and rotates every spawn it produces by an angle
// that grows with time. The rotation is sampled once per query, at the
// window's end, and applied uniformly to every spawn of that call rather
// than integrated per spawn's own nominal time. Under large windows this
// produces visibly stepped rotation; callers wanting smooth rotation keep
// their windows small.
type Rotating struct {
	child Pattern
	speed float64 // Degrees per second
}

// NewRotating creates a rotating modifier around the child pattern.
// speed is in degrees per second and may be negative for clockwise spin.
func NewRotating(child Pattern, speed float64) (*Rotating, error) {
	if child == nil {
		return nil, fmt.Errorf("%w: rotating needs a child pattern", ErrInvalidArgument)
	}
	return &Rotating{child: child, speed: speed}, nil
}

// Child returns the wrapped pattern.
func (p *Rotating) Child() Pattern { return p.child }

// Speed returns the rotation rate in degrees per second.
func (p *Rotating) Speed() float64 { return p.speed }

// Duration passes through from the child.
func (p *Rotating) Duration() float64 { return p.child.Duration() }

// Looping passes through from the child.
func (p *Rotating) Looping() bool { return p.child.Looping() }

func (p *Rotating) sealed() {}

func (p *Rotating) Query(last, current float64, ctx Context) []Spawn {
	spawns := p.child.Query(last, current, ctx)
	if len(spawns) == 0 {
		return spawns
	}
	rot := geom.Mod360(current * p.speed)
	for i := range spawns {
		spawns[i].Dir = spawns[i].Dir.Rotate(rot)
		spawns[i].Angle = geom.Mod360(spawns[i].Angle + rot)
	}
	return spawns
}
