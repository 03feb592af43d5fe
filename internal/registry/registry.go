// Package registry provides the platform game contract and a global registry
// of level packs. Packs register themselves in init() functions (built-ins)
// or at runtime (user directories), so the CLI and the TUI can discover them
// without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// Game is the interface the platform drives once per frame.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game, such as the pack ID.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one frame. now is the frame's wall-clock time
	// and is used to pace moves independently of the frame rate.
	Step(in core.InputFrame, now time.Time) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state (steps, solved, paused).
	State() core.GameState
}

// PackInfo contains metadata about a registered level pack.
type PackInfo struct {
	ID    string
	Title string
}

// Source is the level store of a pack. Level contents are the game's business;
// the registry only needs their IDs.
type Source interface {
	ListIDs() ([]string, error)
}

// Factory returns the level source of a pack.
type Factory func() (Source, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a level pack to the registry.
// Panics if a pack with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PackInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Title returns the display title of a pack, or the ID if it is unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[id]; ok && t != "" {
		return t
	}
	return id
}

// Load returns the level source of a pack.
// Returns an error if the pack ID is not registered.
func Load(id string) (Source, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", id)
	}

	src, err := f()
	if err != nil {
		return nil, fmt.Errorf("registry: pack %q: %w", id, err)
	}
	return src, nil
}

// LevelIDs returns the sorted level IDs of a pack.
// A pack without levels is an error.
func LevelIDs(id string) ([]string, error) {
	src, err := Load(id)
	if err != nil {
		return nil, err
	}
	ids, err := src.ListIDs()
	if err != nil {
		return nil, fmt.Errorf("registry: pack %q: %w", id, err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("registry: pack %q has no levels", id)
	}
	return ids, nil
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
