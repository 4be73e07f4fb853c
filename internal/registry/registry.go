// Package registry provides a global registry for weapon archetypes.
// Archetypes register themselves in init() functions, allowing the arena
// and the CLI to build weapons from configuration without hardcoded
// dependencies on concrete spawn strategies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/strafe/internal/combat"
)

// ArchetypeInfo contains metadata about a registered archetype.
type ArchetypeInfo struct {
	Kind        string
	Description string
}

// Factory is a function that creates a new spawn strategy.
type Factory func() combat.SpawnStrategy

type entry struct {
	factory     Factory
	description string
}

var (
	archetypes = make(map[string]entry)
	mu         sync.RWMutex
)

// Register adds an archetype factory to the registry.
// Typically called from an archetype's init() function.
// Panics if an archetype with the same kind is already registered.
func Register(kind, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := archetypes[kind]; exists {
		panic(fmt.Sprintf("registry: archetype %q already registered", kind))
	}

	archetypes[kind] = entry{factory: f, description: description}
}

// List returns information about all registered archetypes, sorted by kind.
func List() []ArchetypeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ArchetypeInfo, 0, len(archetypes))
	for kind, e := range archetypes {
		result = append(result, ArchetypeInfo{
			Kind:        kind,
			Description: e.description,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Kind < result[j].Kind
	})

	return result
}

// Create instantiates a new spawn strategy by its kind.
// Returns an error if the kind is not registered.
func Create(kind string) (combat.SpawnStrategy, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := archetypes[kind]
	if !ok {
		return nil, fmt.Errorf("registry: unknown archetype %q", kind)
	}

	return e.factory(), nil
}

// Exists checks if an archetype with the given kind is registered.
func Exists(kind string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := archetypes[kind]
	return ok
}
