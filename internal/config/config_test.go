package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPreviewCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.yaml")
	content := `
playback:
  tick_rate: 60
  time_scale: 0.5
render:
  bullet_glyphs: "o"
  show_hud: false
world:
  margin: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadPreview(path)
	if err != nil {
		t.Fatalf("LoadPreview() failed: %v", err)
	}
	if cfg.Playback.TickRate != 60 {
		t.Errorf("TickRate = %d, expected 60", cfg.Playback.TickRate)
	}
	if cfg.Playback.TimeScale != 0.5 {
		t.Errorf("TimeScale = %v, expected 0.5", cfg.Playback.TimeScale)
	}
	if cfg.Render.BulletGlyphs != "o" {
		t.Errorf("BulletGlyphs = %q, expected %q", cfg.Render.BulletGlyphs, "o")
	}
	if cfg.Render.ShowHUD {
		t.Error("ShowHUD = true, expected false")
	}
	// Omitted fields are normalized, not left unusable.
	if cfg.Render.EmitterGlyph == "" {
		t.Error("EmitterGlyph is empty after Normalize")
	}
}

func TestLoadPreviewMissingCustomPath(t *testing.T) {
	if _, err := LoadPreview(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadPreview() on missing explicit path returned nil error")
	}
}

func TestEmbeddedDefaultParses(t *testing.T) {
	cfg, err := LoadPreview("")
	if err != nil {
		t.Fatalf("LoadPreview() failed: %v", err)
	}
	if cfg.Playback.TickRate <= 0 {
		t.Errorf("TickRate = %d, expected positive default", cfg.Playback.TickRate)
	}
	if cfg.Render.BulletGlyphs == "" {
		t.Error("BulletGlyphs empty in default config")
	}
}

func TestNormalizeClampsBadValues(t *testing.T) {
	cfg := PreviewConfig{
		Playback: PlaybackConfig{TickRate: -5, TimeScale: 0},
		World:    WorldConfig{Margin: -1, MaxLifetime: -2},
	}
	cfg.Normalize()

	if cfg.Playback.TickRate != 30 {
		t.Errorf("TickRate = %d, expected clamped 30", cfg.Playback.TickRate)
	}
	if cfg.Playback.TimeScale != 1.0 {
		t.Errorf("TimeScale = %v, expected clamped 1.0", cfg.Playback.TimeScale)
	}
	if cfg.World.Margin != 0 || cfg.World.MaxLifetime != 0 {
		t.Errorf("World = %+v, expected clamped zeros", cfg.World)
	}
}

func TestSpeedPresets(t *testing.T) {
	tests := []struct {
		preset SpeedPreset
		want   float64
	}{
		{SpeedSlow, 0.25},
		{SpeedNormal, 1.0},
		{SpeedFast, 2.0},
		{SpeedPreset("unknown"), 1.0},
	}

	for _, tc := range tests {
		if got := TimeScaleForPreset(tc.preset); got != tc.want {
			t.Errorf("TimeScaleForPreset(%q) = %v, expected %v", tc.preset, got, tc.want)
		}
	}

	cfg := DefaultPreviewConfig()
	ApplySpeedPreset(&cfg, SpeedFast)
	if cfg.Playback.TimeScale != 2.0 {
		t.Errorf("TimeScale = %v after fast preset, expected 2.0", cfg.Playback.TimeScale)
	}
}
