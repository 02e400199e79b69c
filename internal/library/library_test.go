package library

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func seedLibrary(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "ring.json"),
		`{"type": "ring", "count": 8, "speed": 150, "start_angle": 0}`)
	writeFile(t, filepath.Join(root, "bosses", "opener.yaml"),
		"type: burst\ncount: 3\ndirection: {x: 1, y: 0}\nspeed: 100\ndelay: 0.1\n")
	writeFile(t, filepath.Join(root, "broken.json"), `{"type": "nope"}`)
	writeFile(t, filepath.Join(root, "notes.txt"), "not a pattern")

	return root
}

func TestLoadAll(t *testing.T) {
	loader := NewLoader(seedLibrary(t))

	entries, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	// Invalid and unsupported files are skipped; names are sorted and
	// carry subdirectories.
	want := []string{"bosses/opener", "ring"}
	if len(entries) != len(want) {
		t.Fatalf("LoadAll returned %d entries, expected %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Name != want[i] {
			t.Errorf("entry %d name = %q, expected %q", i, e.Name, want[i])
		}
		if e.Pattern == nil {
			t.Errorf("entry %q has nil pattern", e.Name)
		}
	}
}

func TestLoadByName(t *testing.T) {
	loader := NewLoader(seedLibrary(t))

	e, err := loader.LoadByName("bosses/opener")
	if err != nil {
		t.Fatalf("LoadByName: %v", err)
	}
	if !approx(e.Pattern.Duration(), 0.2) {
		t.Errorf("Duration() = %v, expected burst duration 0.2", e.Pattern.Duration())
	}

	if _, err := loader.LoadByName("missing"); err == nil {
		t.Error("LoadByName on unknown name returned nil error")
	}
}

func TestListNames(t *testing.T) {
	loader := NewLoader(seedLibrary(t))

	names, err := loader.ListNames()
	if err != nil {
		t.Fatalf("ListNames: %v", err)
	}
	if len(names) != 2 || names[0] != "bosses/opener" || names[1] != "ring" {
		t.Errorf("ListNames() = %v, expected [bosses/opener ring]", names)
	}
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "p.toml")
	writeFile(t, path, "type = 'ring'")

	if _, err := NewLoader(root).LoadFile(path); err == nil {
		t.Error("LoadFile on unsupported extension returned nil error")
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
