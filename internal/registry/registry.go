// Package registry keeps the scene factories. Scenes register themselves in
// init() so the CLI can list and create them without hardcoded imports.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-cafe/internal/config"
	"github.com/vovakirdan/tui-cafe/internal/core"
)

// ErrUnknownScene is returned by Create for unregistered IDs.
var ErrUnknownScene = errors.New("registry: unknown scene")

// Scene is a simulation with a fixed-step update and a terminal renderer.
// Scenes are pure: no Bubble Tea, no I/O, no logging.
type Scene interface {
	// ID returns a unique identifier (e.g. "balls_quadtree", "cafe").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or restarts the scene.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by exactly one fixed timestep.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst. dst is cleared beforehand.
	Render(dst *core.Screen)

	// State returns the current scene state.
	State() core.SceneState

	// Snapshot captures the bodies of the scene.
	Snapshot() core.Snapshot
}

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	ID    string
	Title string
}

// Factory creates a scene from the simulation configuration.
type Factory func(cfg config.Sim) Scene

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scene factory. Panics on duplicate IDs.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}

	factories[id] = f
	titles[id] = f(config.Default()).Title()
}

// List returns all registered scenes sorted by ID.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SceneInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a scene by ID.
func Create(id string, cfg config.Sim) (Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, id)
	}

	return f(cfg), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
