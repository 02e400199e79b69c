package pattern

import (
	"fmt"
	"math"

	"github.com/barrage-tui/barrage/internal/geom"
)

// defaultAimDir is the direction Aimed falls back to when the context has
// no target, or the target coincides with the origin.
var defaultAimDir = geom.V(1, 0)

// nearZero is the squared-distance threshold below which a target is
// treated as coinciding with the origin.
const nearZero = 1e-6

// Spiral emits bullets on a fixed schedule while the emission angle sweeps
// at rotationSpeed degrees per second. bulletsPerRev bullets are emitted per
// full revolution, so the interval between bullets is
// (360/rotationSpeed)/bulletsPerRev seconds. A finite spiral stops after the
// configured number of revolutions; a looping spiral sweeps forever,
// wrapping its emission angle modulo a full revolution.
type Spiral struct {
	bulletsPerRev int
	rotationSpeed float64
	revolutions   int // 0 when looping
	startAngle    float64
	speed         float64
	looping       bool
	payload       any
}

// NewSpiral creates a finite spiral covering the given number of
// revolutions.
func NewSpiral(bulletsPerRev int, rotationSpeed float64, revolutions int, startAngle, speed float64, payload any) (*Spiral, error) {
	if revolutions < 1 {
		return nil, fmt.Errorf("%w: spiral revolutions %d, need at least 1", ErrInvalidArgument, revolutions)
	}
	p, err := newSpiral(bulletsPerRev, rotationSpeed, startAngle, speed, payload)
	if err != nil {
		return nil, err
	}
	p.revolutions = revolutions
	return p, nil
}

// NewLoopingSpiral creates a spiral that sweeps forever.
func NewLoopingSpiral(bulletsPerRev int, rotationSpeed float64, startAngle, speed float64, payload any) (*Spiral, error) {
	p, err := newSpiral(bulletsPerRev, rotationSpeed, startAngle, speed, payload)
	if err != nil {
		return nil, err
	}
	p.looping = true
	return p, nil
}

func newSpiral(bulletsPerRev int, rotationSpeed, startAngle, speed float64, payload any) (*Spiral, error) {
	if bulletsPerRev < 1 {
		return nil, fmt.Errorf("%w: spiral bullets per revolution %d, need at least 1", ErrInvalidArgument, bulletsPerRev)
	}
	if rotationSpeed <= 0 {
		return nil, fmt.Errorf("%w: spiral rotation speed %v, need a positive rate", ErrInvalidArgument, rotationSpeed)
	}
	if speed < 0 {
		return nil, fmt.Errorf("%w: negative speed %v", ErrInvalidArgument, speed)
	}
	return &Spiral{
		bulletsPerRev: bulletsPerRev,
		rotationSpeed: rotationSpeed,
		startAngle:    startAngle,
		speed:         speed,
		payload:       payload,
	}, nil
}

// BulletsPerRev returns the number of bullets emitted per revolution.
func (p *Spiral) BulletsPerRev() int { return p.bulletsPerRev }

// RotationSpeed returns the sweep rate in degrees per second.
func (p *Spiral) RotationSpeed() float64 { return p.rotationSpeed }

// Revolutions returns the number of revolutions a finite spiral covers,
// or 0 for a looping spiral.
func (p *Spiral) Revolutions() int { return p.revolutions }

// StartAngle returns the sweep's initial angle in degrees.
func (p *Spiral) StartAngle() float64 { return p.startAngle }

// Speed returns the bullet speed.
func (p *Spiral) Speed() float64 { return p.speed }

// Payload returns the opaque payload attached to spawned bullets.
func (p *Spiral) Payload() any { return p.payload }

// interval returns the seconds between consecutive bullets.
func (p *Spiral) interval() float64 {
	return (360 / p.rotationSpeed) / float64(p.bulletsPerRev)
}

func (p *Spiral) Duration() float64 {
	if p.looping {
		return math.Inf(1)
	}
	return float64(p.revolutions) * 360 / p.rotationSpeed
}

func (p *Spiral) Looping() bool { return p.looping }
func (p *Spiral) sealed()       {}

func (p *Spiral) Query(last, current float64, ctx Context) []Spawn {
	step := p.interval()

	// Indices are derived arithmetically so a looping spiral never walks an
	// unbounded schedule. Bullet i fires at i*step.
	first := int(math.Ceil(last/step - 1e-9))
	if first < 0 {
		first = 0
	}

	var out []Spawn
	for i := first; ; i++ {
		t := float64(i) * step
		if !p.looping && i >= p.revolutions*p.bulletsPerRev {
			break
		}
		if !windowContains(last, current, t) {
			if t >= current && !(last == current && t == last) {
				break
			}
			continue
		}
		angle := geom.Mod360(p.startAngle + p.rotationSpeed*t)
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

// Aimed fires a fan of bullets centered on the direction from the context
// origin to its target. Without a usable target it falls back to a fixed
// default direction so the fan never degenerates.
type Aimed struct {
	count   int
	arc     float64
	speed   float64
	payload any
}

// NewAimed creates an aimed pattern. arc is the total angular span of the
// fan in degrees; a single bullet fires straight at the target.
func NewAimed(count int, arc, speed float64, payload any) (*Aimed, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: aimed count %d, need at least 1", ErrInvalidArgument, count)
	}
	if arc < 0 {
		return nil, fmt.Errorf("%w: negative spread arc %v", ErrInvalidArgument, arc)
	}
	if speed < 0 {
		return nil, fmt.Errorf("%w: negative speed %v", ErrInvalidArgument, speed)
	}
	return &Aimed{count: count, arc: arc, speed: speed, payload: payload}, nil
}

// Count returns the number of bullets.
func (p *Aimed) Count() int { return p.count }

// Arc returns the total angular span of the fan in degrees.
func (p *Aimed) Arc() float64 { return p.arc }

// Speed returns the bullet speed.
func (p *Aimed) Speed() float64 { return p.speed }

// Payload returns the opaque payload attached to spawned bullets.
func (p *Aimed) Payload() any { return p.payload }

func (p *Aimed) Duration() float64 { return 0 }
func (p *Aimed) Looping() bool     { return false }
func (p *Aimed) sealed()           {}

func (p *Aimed) Query(last, current float64, ctx Context) []Spawn {
	if !windowContains(last, current, 0) {
		return nil
	}
	dir := defaultAimDir
	if ctx.HasTarget {
		delta := ctx.Target.Sub(ctx.Origin)
		if delta.Dot(delta) > nearZero {
			dir = delta.Normalize()
		}
	}
	return fanSpawns(ctx.Origin, p.count, p.arc, dir.Angle(), p.speed, p.payload)
}

// Wave fires count bullets simultaneously, each offset from a base angle by
// a sine of its normalized index. frequency is the number of full sine
// periods across the fan; amplitude is the peak offset in degrees.
type Wave struct {
	count     int
	baseAngle float64
	amplitude float64
	frequency float64
	speed     float64
	payload   any
}

// NewWave creates a wave pattern.
func NewWave(count int, baseAngle, amplitude, frequency, speed float64, payload any) (*Wave, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: wave count %d, need at least 1", ErrInvalidArgument, count)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("%w: negative amplitude %v", ErrInvalidArgument, amplitude)
	}
	if speed < 0 {
		return nil, fmt.Errorf("%w: negative speed %v", ErrInvalidArgument, speed)
	}
	return &Wave{
		count:     count,
		baseAngle: baseAngle,
		amplitude: amplitude,
		frequency: frequency,
		speed:     speed,
		payload:   payload,
	}, nil
}

// Count returns the number of bullets.
func (p *Wave) Count() int { return p.count }

// BaseAngle returns the center angle in degrees.
func (p *Wave) BaseAngle() float64 { return p.baseAngle }

// Amplitude returns the peak angular offset in degrees.
func (p *Wave) Amplitude() float64 { return p.amplitude }

// Frequency returns the number of sine periods across the fan.
func (p *Wave) Frequency() float64 { return p.frequency }

// Speed returns the bullet speed.
func (p *Wave) Speed() float64 { return p.speed }

// Payload returns the opaque payload attached to spawned bullets.
func (p *Wave) Payload() any { return p.payload }

func (p *Wave) Duration() float64 { return 0 }
func (p *Wave) Looping() bool     { return false }
func (p *Wave) sealed()           {}

func (p *Wave) Query(last, current float64, ctx Context) []Spawn {
	if !windowContains(last, current, 0) {
		return nil
	}
	out := make([]Spawn, 0, p.count)
	for i := 0; i < p.count; i++ {
		u := 0.0
		if p.count > 1 {
			u = float64(i) / float64(p.count-1)
		}
		angle := p.baseAngle + p.amplitude*math.Sin(2*math.Pi*p.frequency*u)
		out = append(out, Spawn{
			Pos:     ctx.Origin,
			Dir:     geom.FromAngle(angle),
			Speed:   p.speed,
			Angle:   geom.Mod360(angle),
			Payload: p.payload,
		})
	}
	return out
}
