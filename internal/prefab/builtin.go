package prefab

import (
	"github.com/barrage-tui/barrage/internal/geom"
	"github.com/barrage-tui/barrage/internal/pattern"
)

// Built-in prefabs double as a showcase: together they exercise every
// pattern variant the engine ships.

func init() {
	Register(Info{
		ID:          "ring-pulse",
		Title:       "Ring Pulse",
		Description: "12-bullet ring repeated with a pause between waves",
	}, func() (pattern.Pattern, error) {
		ring, err := pattern.NewRing(12, 140, 0, nil)
		if err != nil {
			return nil, err
		}
		return pattern.NewRepeat(ring, 4, 0.6)
	})

	Register(Info{
		ID:          "spiral-storm",
		Title:       "Spiral Storm",
		Description: "endless spiral with a slow counter-rotation",
	}, func() (pattern.Pattern, error) {
		spiral, err := pattern.NewLoopingSpiral(8, 240, 0, 110, nil)
		if err != nil {
			return nil, err
		}
		return pattern.NewRotating(spiral, -20)
	})

	Register(Info{
		ID:          "aimed-volley",
		Title:       "Aimed Volley",
		Description: "three-shot fan tracking the target, fired in bursts",
	}, func() (pattern.Pattern, error) {
		fan, err := pattern.NewAimed(3, 25, 220, nil)
		if err != nil {
			return nil, err
		}
		rep, err := pattern.NewRepeat(fan, 3, 0.25)
		if err != nil {
			return nil, err
		}
		return pattern.NewLoop(rep)
	})

	Register(Info{
		ID:          "crossfire",
		Title:       "Crossfire",
		Description: "two opposing bursts overlapped with a wide spread",
	}, func() (pattern.Pattern, error) {
		left, err := pattern.NewBurst(4, geom.V(-1, 0), 160, 0.12, nil)
		if err != nil {
			return nil, err
		}
		right, err := pattern.NewBurst(4, geom.V(1, 0), 160, 0.12, nil)
		if err != nil {
			return nil, err
		}
		spread, err := pattern.NewSpread(7, 60, 90, 130, nil)
		if err != nil {
			return nil, err
		}
		return pattern.NewParallel(left, right, spread)
	})

	Register(Info{
		ID:          "curtain",
		Title:       "Curtain",
		Description: "sine-modulated wall of fire looping forever",
	}, func() (pattern.Pattern, error) {
		wave, err := pattern.NewWave(9, 270, 35, 1, 90, nil)
		if err != nil {
			return nil, err
		}
		shot, err := pattern.NewSingleShot(geom.V(0, -1), 180, nil)
		if err != nil {
			return nil, err
		}
		volley, err := pattern.NewSequence(wave, shot)
		if err != nil {
			return nil, err
		}
		rep, err := pattern.NewRepeat(volley, 2, 0.4)
		if err != nil {
			return nil, err
		}
		return pattern.NewLoop(rep)
	})

	Register(Info{
		ID:          "boss-opener",
		Title:       "Boss Opener",
		Description: "scripted opener: ring, twin spiral turns, then aimed spreads on loop",
	}, func() (pattern.Pattern, error) {
		ring, err := pattern.NewRing(16, 120, 11.25, nil)
		if err != nil {
			return nil, err
		}
		spiral, err := pattern.NewSpiral(6, 300, 2, 0, 100, nil)
		if err != nil {
			return nil, err
		}
		aimed, err := pattern.NewAimed(5, 50, 200, nil)
		if err != nil {
			return nil, err
		}
		return pattern.NewLoopingSequence(ring, spiral, aimed)
	})
}
