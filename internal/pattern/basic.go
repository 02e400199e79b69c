package pattern

import (
	"fmt"

	"github.com/barrage-tui/barrage/internal/geom"
)

// SingleShot fires one bullet in a fixed direction at time zero.
type SingleShot struct {
	dir     geom.Vec2
	speed   float64
	payload any
}

// NewSingleShot creates a single-shot pattern. The direction is normalized
// at construction.
func NewSingleShot(dir geom.Vec2, speed float64, payload any) (*SingleShot, error) {
	if dir.Length() == 0 {
		return nil, fmt.Errorf("%w: single shot needs a non-zero direction", ErrInvalidArgument)
	}
	if speed < 0 {
		return nil, fmt.Errorf("%w: negative speed %v", ErrInvalidArgument, speed)
	}
	return &SingleShot{dir: dir.Normalize(), speed: speed, payload: payload}, nil
}

// Direction returns the normalized firing direction.
func (p *SingleShot) Direction() geom.Vec2 { return p.dir }

// Speed returns the bullet speed.
func (p *SingleShot) Speed() float64 { return p.speed }

// Payload returns the opaque payload attached to spawned bullets.
func (p *SingleShot) Payload() any { return p.payload }

func (p *SingleShot) Duration() float64 { return 0 }
func (p *SingleShot) Looping() bool     { return false }
func (p *SingleShot) sealed()           {}

func (p *SingleShot) Query(last, current float64, ctx Context) []Spawn {
	if !windowContains(last, current, 0) {
		return nil
	}
	return []Spawn{{
		Pos:     ctx.Origin,
		Dir:     p.dir,
		Speed:   p.speed,
		Angle:   p.dir.Angle(),
		Payload: p.payload,
	}}
}

// Burst fires count bullets in one direction, delay seconds apart. Bullet i
// has nominal time i*delay; Duration is (count-1)*delay.
type Burst struct {
	count   int
	dir     geom.Vec2
	speed   float64
	delay   float64
	payload any
}

// NewBurst creates a burst pattern.
func NewBurst(count int, dir geom.Vec2, speed, delay float64, payload any) (*Burst, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: burst count %d, need at least 1", ErrInvalidArgument, count)
	}
	if dir.Length() == 0 {
		return nil, fmt.Errorf("%w: burst needs a non-zero direction", ErrInvalidArgument)
	}
	if speed < 0 {
		return nil, fmt.Errorf("%w: negative speed %v", ErrInvalidArgument, speed)
	}
	if delay < 0 {
		return nil, fmt.Errorf("%w: negative delay %v", ErrInvalidArgument, delay)
	}
	return &Burst{count: count, dir: dir.Normalize(), speed: speed, delay: delay, payload: payload}, nil
}

// Count returns the number of bullets.
func (p *Burst) Count() int { return p.count }

// Direction returns the normalized firing direction.
func (p *Burst) Direction() geom.Vec2 { return p.dir }

// Speed returns the bullet speed.
func (p *Burst) Speed() float64 { return p.speed }

// Delay returns the seconds between consecutive bullets.
func (p *Burst) Delay() float64 { return p.delay }

// Payload returns the opaque payload attached to spawned bullets.
func (p *Burst) Payload() any { return p.payload }

func (p *Burst) Duration() float64 { return float64(p.count-1) * p.delay }
func (p *Burst) Looping() bool     { return false }
func (p *Burst) sealed()           {}

func (p *Burst) Query(last, current float64, ctx Context) []Spawn {
	var out []Spawn
	for i := 0; i < p.count; i++ {
		if !windowContains(last, current, float64(i)*p.delay) {
			continue
		}
		out = append(out, Spawn{
			Pos:     ctx.Origin,
			Dir:     p.dir,
			Speed:   p.speed,
			Angle:   p.dir.Angle(),
			Payload: p.payload,
		})
	}
	return out
}

// Spread fires count bullets simultaneously in a symmetric fan of arc
// degrees centered on a base angle.
type Spread struct {
	count     int
	arc       float64
	baseAngle float64
	speed     float64
	payload   any
}

// NewSpread creates a spread (fan) pattern. arc is the total angular span
// in degrees; bullets are spaced evenly across it, centered on baseAngle.
func NewSpread(count int, arc, baseAngle, speed float64, payload any) (*Spread, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: spread count %d, need at least 1", ErrInvalidArgument, count)
	}
	if arc < 0 {
		return nil, fmt.Errorf("%w: negative spread arc %v", ErrInvalidArgument, arc)
	}
	if speed < 0 {
		return nil, fmt.Errorf("%w: negative speed %v", ErrInvalidArgument, speed)
	}
	return &Spread{count: count, arc: arc, baseAngle: baseAngle, speed: speed, payload: payload}, nil
}

// Count returns the number of bullets.
func (p *Spread) Count() int { return p.count }

// Arc returns the total angular span in degrees.
func (p *Spread) Arc() float64 { return p.arc }

// BaseAngle returns the center angle of the fan in degrees.
func (p *Spread) BaseAngle() float64 { return p.baseAngle }

// Speed returns the bullet speed.
func (p *Spread) Speed() float64 { return p.speed }

// Payload returns the opaque payload attached to spawned bullets.
func (p *Spread) Payload() any { return p.payload }

func (p *Spread) Duration() float64 { return 0 }
func (p *Spread) Looping() bool     { return false }
func (p *Spread) sealed()           {}

func (p *Spread) Query(last, current float64, ctx Context) []Spawn {
	if !windowContains(last, current, 0) {
		return nil
	}
	return fanSpawns(ctx.Origin, p.count, p.arc, p.baseAngle, p.speed, p.payload)
}

// Ring fires count bullets simultaneously, evenly spaced around a full
// circle starting at startAngle.
type Ring struct {
	count      int
	speed      float64
	startAngle float64
	payload    any
}

// NewRing creates a ring pattern.
func NewRing(count int, speed, startAngle float64, payload any) (*Ring, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: ring count %d, need at least 1", ErrInvalidArgument, count)
	}
	if speed < 0 {
		return nil, fmt.Errorf("%w: negative speed %v", ErrInvalidArgument, speed)
	}
	return &Ring{count: count, speed: speed, startAngle: startAngle, payload: payload}, nil
}

// Count returns the number of bullets.
func (p *Ring) Count() int { return p.count }

// Speed returns the bullet speed.
func (p *Ring) Speed() float64 { return p.speed }

// StartAngle returns the angle of the first bullet in degrees.
func (p *Ring) StartAngle() float64 { return p.startAngle }

// Payload returns the opaque payload attached to spawned bullets.
func (p *Ring) Payload() any { return p.payload }

func (p *Ring) Duration() float64 { return 0 }
func (p *Ring) Looping() bool     { return false }
func (p *Ring) sealed()           {}

func (p *Ring) Query(last, current float64, ctx Context) []Spawn {
	if !windowContains(last, current, 0) {
		return nil
	}
	out := make([]Spawn, 0, p.count)
	step := 360 / float64(p.count)
	for i := 0; i < p.count; i++ {
		angle := geom.Mod360(p.startAngle + float64(i)*step)
		out = append(out, Spawn{
			Pos:     ctx.Origin,
			Dir:     geom.FromAngle(angle),
			Speed:   p.speed,
			Angle:   angle,
			Payload: p.payload,
		})
	}
	return out
}

// fanSpawns emits count bullets spread symmetrically across arc degrees
// around baseAngle. A single bullet fires straight along baseAngle.
func fanSpawns(origin geom.Vec2, count int, arc, baseAngle, speed float64, payload any) []Spawn {
	out := make([]Spawn, 0, count)
	for i := 0; i < count; i++ {
		angle := baseAngle
		if count > 1 {
			angle = baseAngle - arc/2 + arc*float64(i)/float64(count-1)
		}
		out = append(out, Spawn{
			Pos:     origin,
			Dir:     geom.FromAngle(angle),
			Speed:   speed,
			Angle:   geom.Mod360(angle),
			Payload: payload,
		})
	}
	return out
}
