// Package prefab provides a global registry for named pattern factories.
// Prefabs register themselves in init() functions, allowing the CLI and
// previewer to discover and build patterns without hardcoded dependencies.
package prefab

import (
	"fmt"
	"sort"
	"sync"

	"github.com/barrage-tui/barrage/internal/pattern"
)

// Info contains metadata about a registered prefab.
type Info struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that builds a fresh pattern tree.
// Pattern values are immutable, but a factory keeps registration cheap and
// lets a prefab bake in per-build state if it ever needs to.
type Factory func() (pattern.Pattern, error)

type entry struct {
	info    Info
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a prefab factory to the registry.
// Typically called from a prefab's init() function.
// Panics if a prefab with the same ID is already registered.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("prefab: %q already registered", info.ID))
	}

	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered prefabs, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Build constructs the pattern for the given prefab ID.
// Returns an error if the ID is not registered or the factory fails.
func Build(id string) (pattern.Pattern, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("prefab: unknown prefab %q", id)
	}

	p, err := e.factory()
	if err != nil {
		return nil, fmt.Errorf("prefab: build %q: %w", id, err)
	}
	return p, nil
}

// Exists checks if a prefab with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
