// Package pattern implements the projectile spawn-pattern engine: a set of
// immutable pattern values that answer time-window queries with spawn
// instructions. Patterns hold configuration only, never execution state, so
// a single pattern tree can be queried freely from any number of goroutines.
//
// Query windows are half-open: Query(last, current, ctx) returns every spawn
// whose nominal time t satisfies last <= t < current. A caller advancing
// through adjacent windows therefore sees every spawn exactly once. The one
// exception is the degenerate window last == current, which samples exactly
// that instant; instantaneous patterns such as Ring answer Query(0, 0, ctx)
// with their full set. Out-of-domain windows (current < last, or windows
// entirely past Duration) yield nil rather than an error: timing correctness
// is the caller's responsibility.
package pattern

import (
	"errors"
	"math"

	"github.com/barrage-tui/barrage/internal/geom"
)

// ErrInvalidArgument is wrapped by every construction error: counts below
// one, negative delays or angles, missing children, and similar. A pattern
// value that exists has already been validated; Query never fails.
var ErrInvalidArgument = errors.New("pattern: invalid argument")

// Spawn is one spawn instruction: everything a game loop needs to create a
// bullet. The engine creates Spawn values inside Query and never sees them
// again; identity, movement and collision after spawn belong to the caller.
type Spawn struct {
	Pos     geom.Vec2 // World position, usually the query origin
	Dir     geom.Vec2 // Unit direction of travel (by convention, not enforced)
	Speed   float64
	Angle   float64 // Facing angle in degrees
	Payload any     // Opaque data attached at pattern construction
}

// Context carries the per-query runtime parameters that are not part of a
// pattern's fixed configuration. Callers build a fresh Context per query;
// patterns never mutate one. Combinators hand children a derived copy with
// an adjusted Age.
type Context struct {
	Origin    geom.Vec2
	Target    geom.Vec2 // Aim point, only meaningful when HasTarget is set
	HasTarget bool
	Age       float64        // Seconds since the pattern instance started
	Meta      map[string]any // Optional caller metadata, read-only during a query
}

// WithAge returns a copy of the context with Age replaced.
func (c Context) WithAge(age float64) Context {
	c.Age = age
	return c
}

// Pattern is the capability contract every variant implements. The
// interface is sealed: the variant set is closed, and the codec relies on
// an exhaustive switch over the concrete types in this package.
type Pattern interface {
	// Duration reports the total time span needed to exhaust the pattern
	// once, or math.Inf(1) for patterns that never naturally terminate.
	Duration() float64

	// Looping reports whether the pattern repeats forever. Looping implies
	// an infinite Duration.
	Looping() bool

	// Query returns every spawn whose nominal time falls inside the
	// half-open window [last, current). The result is produced fresh per
	// call and identical calls return identical results.
	Query(last, current float64, ctx Context) []Spawn

	sealed()
}

// windowContains reports whether nominal time t falls in the query window.
// Half-open [last, current), except the degenerate window last == current
// which samples exactly that instant.
func windowContains(last, current, t float64) bool {
	if last == current {
		return t == last
	}
	return t >= last && t < current
}

// queryCycles replays a cycle of the given length across the query window,
// delegating each covered cycle's slice to query in cycle-local time. The
// spawn landing exactly on a cycle boundary belongs to the head of the next
// cycle and is emitted exactly once. Used by Loop and by looping Sequence.
func queryCycles(cycle, last, current float64, ctx Context,
	query func(last, current float64, ctx Context) []Spawn) []Spawn {

	if current < last {
		return nil
	}
	// The cycle domain starts at zero; a window reaching back before the
	// pattern's start contributes nothing there.
	if last < 0 {
		last = 0
	}
	if current < last {
		return nil
	}

	if last == current {
		t := math.Mod(last, cycle)
		return query(t, t, ctx.WithAge(t))
	}

	var out []Spawn
	first := int(math.Floor(last / cycle))
	lastCycle := int(math.Floor(current / cycle))
	for k := first; k <= lastCycle; k++ {
		base := float64(k) * cycle
		lo := math.Max(last, base) - base
		hi := math.Min(current, base+cycle) - base
		if hi <= lo {
			continue
		}
		out = append(out, query(lo, hi, ctx.WithAge(hi))...)
	}
	return out
}
