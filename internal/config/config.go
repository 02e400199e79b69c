// Package config provides YAML-based configuration loading for the
// preview workbench.
package config

// PreviewConfig contains all configuration for the TUI previewer.
type PreviewConfig struct {
	Playback PlaybackConfig `yaml:"playback"`
	Render   RenderConfig   `yaml:"render"`
	World    WorldConfig    `yaml:"world"`
}

// PlaybackConfig defines timing parameters.
type PlaybackConfig struct {
	TickRate  int     `yaml:"tick_rate"`  // Simulation ticks per second
	TimeScale float64 `yaml:"time_scale"` // Multiplier applied to wall time
}

// RenderConfig defines how bullets are drawn.
type RenderConfig struct {
	BulletGlyphs string `yaml:"bullet_glyphs"` // One rune per payload-less bullet, cycled by age
	EmitterGlyph string `yaml:"emitter_glyph"`
	ShowTrails   bool   `yaml:"show_trails"`
	ShowHUD      bool   `yaml:"show_hud"`
}

// WorldConfig defines simulation-space parameters.
type WorldConfig struct {
	Margin      float64 `yaml:"margin"`       // Extra space beyond the screen before culling
	MaxLifetime float64 `yaml:"max_lifetime"` // Seconds before a bullet is culled, 0 disables
}

// SpeedPreset is a named time-scale shortcut.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
)

// TimeScaleForPreset returns the time_scale for a speed preset.
func TimeScaleForPreset(preset SpeedPreset) float64 {
	switch preset {
	case SpeedSlow:
		return 0.25
	case SpeedFast:
		return 2.0
	default:
		return 1.0
	}
}

// ApplySpeedPreset overrides the configured time scale with a preset.
func ApplySpeedPreset(cfg *PreviewConfig, preset SpeedPreset) {
	cfg.Playback.TimeScale = TimeScaleForPreset(preset)
}

// Normalize clamps nonsensical values back to usable defaults.
func (c *PreviewConfig) Normalize() {
	if c.Playback.TickRate <= 0 {
		c.Playback.TickRate = 30
	}
	if c.Playback.TimeScale <= 0 {
		c.Playback.TimeScale = 1.0
	}
	if c.Render.BulletGlyphs == "" {
		c.Render.BulletGlyphs = "*"
	}
	if c.Render.EmitterGlyph == "" {
		c.Render.EmitterGlyph = "@"
	}
	if c.World.Margin < 0 {
		c.World.Margin = 0
	}
	if c.World.MaxLifetime < 0 {
		c.World.MaxLifetime = 0
	}
}
