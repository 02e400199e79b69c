package config

import (
	_ "embed"
)

//go:embed defaults/preview.yaml
var defaultPreviewYAML []byte

// DefaultPreviewConfig returns the default previewer configuration.
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Playback: PlaybackConfig{
			TickRate:  30,
			TimeScale: 1.0,
		},
		Render: RenderConfig{
			BulletGlyphs: "*+.",
			EmitterGlyph: "@",
			ShowTrails:   false,
			ShowHUD:      true,
		},
		World: WorldConfig{
			Margin:      10,
			MaxLifetime: 12,
		},
	}
}
