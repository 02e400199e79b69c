package codec

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/barrage-tui/barrage/internal/geom"
	"github.com/barrage-tui/barrage/internal/pattern"
)

func testCtx() pattern.Context {
	return pattern.Context{
		Origin:    geom.V(0, 0),
		Target:    geom.V(100, 0),
		HasTarget: true,
	}
}

// sameBehavior queries both patterns over a shared set of windows and
// compares the spawns element-wise.
func sameBehavior(t *testing.T, got, want pattern.Pattern) {
	t.Helper()

	if gd, wd := got.Duration(), want.Duration(); gd != wd && !(math.IsInf(gd, 1) && math.IsInf(wd, 1)) {
		t.Errorf("Duration() = %v, expected %v", gd, wd)
	}
	if got.Looping() != want.Looping() {
		t.Errorf("Looping() = %v, expected %v", got.Looping(), want.Looping())
	}

	windows := [][2]float64{{0, 0}, {0, 0.05}, {0.05, 0.3}, {0.3, 1.1}, {1.1, 2.5}}
	for _, w := range windows {
		gs := got.Query(w[0], w[1], testCtx())
		ws := want.Query(w[0], w[1], testCtx())
		if len(gs) != len(ws) {
			t.Errorf("Query(%v, %v) yielded %d spawns, expected %d", w[0], w[1], len(gs), len(ws))
			continue
		}
		for i := range gs {
			if gs[i] != ws[i] {
				t.Errorf("Query(%v, %v) spawn %d = %+v, expected %+v", w[0], w[1], i, gs[i], ws[i])
			}
		}
	}
}

func buildVariants(t *testing.T) map[string]pattern.Pattern {
	t.Helper()

	shot, err := pattern.NewSingleShot(geom.V(0, 1), 120, "shot")
	if err != nil {
		t.Fatalf("NewSingleShot: %v", err)
	}
	burst, err := pattern.NewBurst(3, geom.V(1, 0), 100, 0.1, nil)
	if err != nil {
		t.Fatalf("NewBurst: %v", err)
	}
	spread, err := pattern.NewSpread(5, 40, 90, 200, nil)
	if err != nil {
		t.Fatalf("NewSpread: %v", err)
	}
	ring, err := pattern.NewRing(8, 150, 30, nil)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}
	spiral, err := pattern.NewSpiral(4, 360, 2, 0, 100, nil)
	if err != nil {
		t.Fatalf("NewSpiral: %v", err)
	}
	loopSpiral, err := pattern.NewLoopingSpiral(6, 180, 15, 80, nil)
	if err != nil {
		t.Fatalf("NewLoopingSpiral: %v", err)
	}
	aimed, err := pattern.NewAimed(3, 30, 250, nil)
	if err != nil {
		t.Fatalf("NewAimed: %v", err)
	}
	wave, err := pattern.NewWave(5, 90, 20, 1, 100, nil)
	if err != nil {
		t.Fatalf("NewWave: %v", err)
	}
	seq, err := pattern.NewSequence(ring, burst)
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	loopSeq, err := pattern.NewLoopingSequence(ring, burst)
	if err != nil {
		t.Fatalf("NewLoopingSequence: %v", err)
	}
	par, err := pattern.NewParallel(ring, spread)
	if err != nil {
		t.Fatalf("NewParallel: %v", err)
	}
	rep, err := pattern.NewRepeat(burst, 3, 0.5)
	if err != nil {
		t.Fatalf("NewRepeat: %v", err)
	}
	loop, err := pattern.NewLoop(burst)
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	rot, err := pattern.NewRotating(ring, 90)
	if err != nil {
		t.Fatalf("NewRotating: %v", err)
	}

	return map[string]pattern.Pattern{
		"single shot":      shot,
		"burst":            burst,
		"spread":           spread,
		"ring":             ring,
		"finite spiral":    spiral,
		"looping spiral":   loopSpiral,
		"aimed":            aimed,
		"wave":             wave,
		"sequence":         seq,
		"looping sequence": loopSeq,
		"parallel":         par,
		"repeat":           rep,
		"loop":             loop,
		"rotating":         rot,
	}
}

func TestJSONRoundTrip(t *testing.T) {
	for name, p := range buildVariants(t) {
		t.Run(name, func(t *testing.T) {
			data, err := Marshal(p)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			back, err := Unmarshal(data)
			if err != nil {
				t.Fatalf("Unmarshal: %v\n%s", err, data)
			}
			sameBehavior(t, back, p)
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	for name, p := range buildVariants(t) {
		t.Run(name, func(t *testing.T) {
			data, err := MarshalYAML(p)
			if err != nil {
				t.Fatalf("MarshalYAML: %v", err)
			}
			back, err := UnmarshalYAML(data)
			if err != nil {
				t.Fatalf("UnmarshalYAML: %v\n%s", err, data)
			}
			sameBehavior(t, back, p)
		})
	}
}

func TestEncodeDecodeStreams(t *testing.T) {
	ring, err := pattern.NewRing(4, 150, 0, nil)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, ring); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	sameBehavior(t, back, ring)
}

func TestUnmarshalHandwrittenJSON(t *testing.T) {
	src := `{
	  "type": "sequence",
	  "patterns": [
	    {"type": "ring", "count": 8, "speed": 150, "start_angle": 0},
	    {"type": "burst", "count": 5, "direction": {"x": 1, "y": 0}, "speed": 100, "delay": 0.1}
	  ]
	}`

	p, err := Unmarshal([]byte(src))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !approx(p.Duration(), 0.4) {
		t.Errorf("Duration() = %v, expected 0.4", p.Duration())
	}
	if got := p.Query(0, 0.05, testCtx()); len(got) != 9 {
		t.Errorf("Query(0, 0.05) yielded %d spawns, expected 9", len(got))
	}
}

func TestUnmarshalHandwrittenYAML(t *testing.T) {
	src := `
type: rotating
rotation_speed: 90
pattern:
  type: loop
  pattern:
    type: spread
    count: 3
    arc: 30
    base_angle: 90
    speed: 200
`

	p, err := UnmarshalYAML([]byte(src))
	if err != nil {
		t.Fatalf("UnmarshalYAML: %v", err)
	}
	if !p.Looping() {
		t.Error("Looping() = false, expected true")
	}
	rot, ok := p.(*pattern.Rotating)
	if !ok {
		t.Fatalf("decoded %T, expected *pattern.Rotating", p)
	}
	if rot.Speed() != 90 {
		t.Errorf("Speed() = %v, expected 90", rot.Speed())
	}
}

func TestDecodeErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"not json", "{nope", ErrMalformed},
		{"missing type tag", `{"count": 3}`, ErrMissingField},
		{"unknown variant", `{"type": "laser_grid"}`, ErrUnknownVariant},
		{"missing parameter", `{"type": "ring", "count": 8, "speed": 150}`, ErrMissingField},
		{"missing nested child", `{"type": "loop"}`, ErrMissingField},
		{"invalid parameter", `{"type": "ring", "count": 0, "speed": 150, "start_angle": 0}`, pattern.ErrInvalidArgument},
		{"non-numeric parameter", `{"type": "ring", "count": "many", "speed": 150, "start_angle": 0}`, pattern.ErrInvalidArgument},
		{"fractional count", `{"type": "ring", "count": 2.5, "speed": 150, "start_angle": 0}`, pattern.ErrInvalidArgument},
		{"bad child in list", `{"type": "parallel", "patterns": [{"type": "nope"}]}`, ErrUnknownVariant},
		{"child list not a list", `{"type": "parallel", "patterns": 7}`, ErrMalformed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tc.src))
			if !errors.Is(err, tc.want) {
				t.Errorf("Unmarshal error = %v, expected %v", err, tc.want)
			}
		})
	}
}

func TestYAMLMalformed(t *testing.T) {
	if _, err := UnmarshalYAML([]byte(":\n  - {")); !errors.Is(err, ErrMalformed) {
		t.Errorf("UnmarshalYAML error = %v, expected ErrMalformed", err)
	}
	if _, err := UnmarshalYAML([]byte("")); !errors.Is(err, ErrMissingField) {
		t.Errorf("UnmarshalYAML on empty input = %v, expected ErrMissingField", err)
	}
}

func TestPayloadSurvivesRoundTrip(t *testing.T) {
	shot, err := pattern.NewSingleShot(geom.V(1, 0), 100, "homing")
	if err != nil {
		t.Fatalf("NewSingleShot: %v", err)
	}

	data, err := Marshal(shot)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"payload": "homing"`) {
		t.Errorf("document lacks payload field:\n%s", data)
	}

	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	spawns := back.Query(0, 0, testCtx())
	if len(spawns) != 1 {
		t.Fatalf("yielded %d spawns, expected 1", len(spawns))
	}
	if spawns[0].Payload != "homing" {
		t.Errorf("payload = %v, expected %q", spawns[0].Payload, "homing")
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}
