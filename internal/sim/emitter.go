// Package sim runs pattern trees against wall-clock-style time and owns the
// live projectiles they produce. It is the consuming side of the engine's
// query contract: the emitter keeps the advancing window, the world turns
// spawns into moving bullets.
package sim

import (
	"math"

	"github.com/barrage-tui/barrage/internal/geom"
	"github.com/barrage-tui/barrage/internal/pattern"
)

// Emitter drives one pattern instance along its private timeline.
// Time only moves forward: Advance clamps rewinds to the current position.
type Emitter struct {
	pattern pattern.Pattern
	origin  geom.Vec2
	now     float64
	started bool
	sampled bool // the instant at `now` was delivered by a degenerate query
}

// NewEmitter creates an emitter at time zero.
func NewEmitter(p pattern.Pattern, origin geom.Vec2) *Emitter {
	return &Emitter{pattern: p, origin: origin}
}

// Pattern returns the pattern this emitter drives.
func (e *Emitter) Pattern() pattern.Pattern { return e.pattern }

// Now returns the emitter's current time in seconds.
func (e *Emitter) Now() float64 { return e.now }

// SetOrigin moves the emitter. Spawns produced by later windows use the
// new position.
func (e *Emitter) SetOrigin(origin geom.Vec2) { e.origin = origin }

// Done reports whether the pattern has nothing left to produce.
func (e *Emitter) Done() bool {
	return !e.pattern.Looping() && e.now > e.pattern.Duration()
}

// Advance moves time forward by dt seconds and returns the spawns produced
// by the traversed window, each spawn exactly once across calls. Negative
// dt is treated as zero. A zero-length first call samples the instant t=0
// so instantaneous patterns fire on the first tick; later zero-length
// calls cover no new timeline and produce nothing.
func (e *Emitter) Advance(dt float64, target geom.Vec2, hasTarget bool) []pattern.Spawn {
	if dt < 0 {
		dt = 0
	}

	ctx := pattern.Context{
		Origin:    e.origin,
		Target:    target,
		HasTarget: hasTarget,
	}

	if dt == 0 {
		if e.started {
			return nil
		}
		e.started = true
		e.sampled = true
		return e.pattern.Query(0, 0, ctx)
	}

	last := e.now
	e.now += dt
	ctx.Age = e.now
	e.started = true

	if e.sampled {
		// The instant at `last` already went out through a degenerate
		// sample; the half-open window would include it again.
		e.sampled = false
		last = math.Nextafter(last, math.Inf(1))
	}
	return e.pattern.Query(last, e.now, ctx)
}

// Reset rewinds the emitter to time zero for a fresh run.
func (e *Emitter) Reset() {
	e.now = 0
	e.started = false
	e.sampled = false
}
