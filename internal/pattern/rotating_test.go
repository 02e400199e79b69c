package pattern

import (
	"testing"

	"github.com/barrage-tui/barrage/internal/geom"
)

func TestRotatingPassThrough(t *testing.T) {
	burst := mustBurst(t, 3, geom.V(1, 0), 100, 0.1)
	rot, err := NewRotating(burst, 90)
	if err != nil {
		t.Fatalf("NewRotating: %v", err)
	}

	if !approx(rot.Duration(), burst.Duration()) {
		t.Errorf("Duration() = %v, expected child duration %v", rot.Duration(), burst.Duration())
	}
	if rot.Looping() != burst.Looping() {
		t.Errorf("Looping() = %v, expected child value %v", rot.Looping(), burst.Looping())
	}
}

func TestRotatingAngleSampledAtWindowEnd(t *testing.T) {
	ring := mustRing(t, 4, 100, 0)
	rot, err := NewRotating(ring, 90)
	if err != nil {
		t.Fatalf("NewRotating: %v", err)
	}

	// Window ends at t=1 with 90 deg/s: everything rotates by 90 degrees.
	spawns := rot.Query(-1, 1, testCtx())
	if len(spawns) != 4 {
		t.Fatalf("yielded %d spawns, expected 4", len(spawns))
	}

	want := []float64{90, 180, 270, 0}
	for i, s := range spawns {
		if !approx(s.Angle, want[i]) {
			t.Errorf("spawn %d angle = %v, expected %v", i, s.Angle, want[i])
		}
		if !approxVec(s.Dir, geom.FromAngle(want[i])) {
			t.Errorf("spawn %d direction = %v, expected %v", i, s.Dir, geom.FromAngle(want[i]))
		}
	}
}

func TestRotatingIsSteppedPerCall(t *testing.T) {
	// Both burst bullets fall in one window ending at t=2; with 90 deg/s the
	// rotation is sampled once at the end (180 degrees) and applied to both,
	// not integrated per bullet's own nominal time.
	burst := mustBurst(t, 2, geom.V(1, 0), 100, 1)
	rot, err := NewRotating(burst, 90)
	if err != nil {
		t.Fatalf("NewRotating: %v", err)
	}

	spawns := rot.Query(0, 2, testCtx())
	if len(spawns) != 2 {
		t.Fatalf("yielded %d spawns, expected 2", len(spawns))
	}
	for i, s := range spawns {
		if !approxVec(s.Dir, geom.V(-1, 0)) {
			t.Errorf("spawn %d direction = %v, expected uniform (-1, 0)", i, s.Dir)
		}
	}

	// Smaller windows sample the rotation separately per call.
	head := rot.Query(0, 0.5, testCtx())
	tail := rot.Query(0.5, 1.5, testCtx())
	if len(head) != 1 || len(tail) != 1 {
		t.Fatalf("split windows yielded %d and %d spawns, expected 1 each", len(head), len(tail))
	}
	if !approxVec(head[0].Dir, geom.FromAngle(45)) {
		t.Errorf("head direction = %v, expected 45 degree rotation", head[0].Dir)
	}
	if !approxVec(tail[0].Dir, geom.FromAngle(135)) {
		t.Errorf("tail direction = %v, expected 135 degree rotation", tail[0].Dir)
	}
}

func TestRotatingNegativeSpeed(t *testing.T) {
	shot, err := NewSingleShot(geom.V(1, 0), 100, nil)
	if err != nil {
		t.Fatalf("NewSingleShot: %v", err)
	}
	rot, err := NewRotating(shot, -90)
	if err != nil {
		t.Fatalf("NewRotating: %v", err)
	}

	spawns := rot.Query(0, 1, testCtx())
	if len(spawns) != 1 {
		t.Fatalf("yielded %d spawns, expected 1", len(spawns))
	}
	if !approxVec(spawns[0].Dir, geom.V(0, -1)) {
		t.Errorf("direction = %v, expected (0, -1) after -90 degrees", spawns[0].Dir)
	}
	if !approx(spawns[0].Angle, 270) {
		t.Errorf("angle = %v, expected 270", spawns[0].Angle)
	}
}
