package sim

import (
	"github.com/barrage-tui/barrage/internal/geom"
	"github.com/barrage-tui/barrage/internal/pattern"
)

// Bullet is one live projectile materialized from a spawn.
type Bullet struct {
	Pos     geom.Vec2
	Vel     geom.Vec2
	Angle   float64
	Age     float64
	Payload any
}

// Bounds is the axis-aligned region bullets are allowed to live in.
type Bounds struct {
	Min geom.Vec2
	Max geom.Vec2
}

// Contains reports whether p lies inside the bounds.
func (b Bounds) Contains(p geom.Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Grow returns the bounds expanded by margin on every side.
func (b Bounds) Grow(margin float64) Bounds {
	m := geom.V(margin, margin)
	return Bounds{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

// World owns one emitter plus the bullets it has produced.
// Step is the fixed-tick entry point the previewer and tracer drive.
type World struct {
	emitter *Emitter
	bullets []Bullet
	bounds  Bounds

	target    geom.Vec2
	hasTarget bool

	maxLifetime float64
	spawned     int
}

// NewWorld creates a world around a single pattern emitter.
// maxLifetime of zero disables age-based culling.
func NewWorld(p pattern.Pattern, origin geom.Vec2, bounds Bounds, maxLifetime float64) *World {
	return &World{
		emitter:     NewEmitter(p, origin),
		bounds:      bounds,
		maxLifetime: maxLifetime,
	}
}

// SetOrigin moves the emitter, e.g. after a terminal resize.
func (w *World) SetOrigin(origin geom.Vec2) { w.emitter.SetOrigin(origin) }

// SetBounds replaces the cull region, e.g. after a terminal resize.
func (w *World) SetBounds(b Bounds) { w.bounds = b }

// SetTarget points aimed patterns at the given position.
func (w *World) SetTarget(target geom.Vec2) {
	w.target = target
	w.hasTarget = true
}

// ClearTarget removes the aim target.
func (w *World) ClearTarget() {
	w.hasTarget = false
}

// Bullets returns the live bullets. The slice is owned by the world and
// valid until the next Step.
func (w *World) Bullets() []Bullet { return w.bullets }

// Spawned returns the total number of bullets produced since the last reset.
func (w *World) Spawned() int { return w.spawned }

// Live returns the number of bullets currently alive.
func (w *World) Live() int { return len(w.bullets) }

// Elapsed returns the emitter's current time in seconds.
func (w *World) Elapsed() float64 { return w.emitter.Now() }

// Done reports whether the pattern is exhausted and no bullets remain.
func (w *World) Done() bool {
	return w.emitter.Done() && len(w.bullets) == 0
}

// Step advances the world by dt seconds: queries the pattern for the
// traversed window, materializes spawns, integrates bullet motion, and
// culls bullets that left the bounds or outlived maxLifetime.
func (w *World) Step(dt float64) {
	for _, s := range w.emitter.Advance(dt, w.target, w.hasTarget) {
		w.spawned++
		w.bullets = append(w.bullets, Bullet{
			Pos:     s.Pos,
			Vel:     s.Dir.Scale(s.Speed),
			Angle:   s.Angle,
			Payload: s.Payload,
		})
	}

	alive := w.bullets[:0]
	for _, b := range w.bullets {
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		b.Age += dt
		if !w.bounds.Contains(b.Pos) {
			continue
		}
		if w.maxLifetime > 0 && b.Age > w.maxLifetime {
			continue
		}
		alive = append(alive, b)
	}
	w.bullets = alive
}

// Reset rewinds the emitter and discards all bullets and counters.
func (w *World) Reset() {
	w.emitter.Reset()
	w.bullets = w.bullets[:0]
	w.spawned = 0
}
