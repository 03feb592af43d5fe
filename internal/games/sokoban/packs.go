package sokoban

import (
	"fmt"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var builtinTitles = map[string]string{
	"classic":  "Classic (Microban)",
	"tutorial": "Tutorial",
}

func init() {
	for _, pack := range levels.BuiltinPacks() {
		registry.Register(pack, builtinTitles[pack], func() (registry.Source, error) {
			loader, err := levels.Builtin(pack)
			if err != nil {
				return nil, err
			}
			return loader, nil
		})
	}
}

// RegisterDirectory registers a pack backed by a level directory on disk.
func RegisterDirectory(id, title, dir string) {
	registry.Register(id, title, func() (registry.Source, error) {
		return levels.NewLoader(dir), nil
	})
}

// LoadPack returns the level loader of a registered pack.
func LoadPack(packID string) (*levels.Loader, error) {
	src, err := registry.Load(packID)
	if err != nil {
		return nil, err
	}
	loader, ok := src.(*levels.Loader)
	if !ok {
		return nil, fmt.Errorf("sokoban: pack %q is not a level directory (%T)", packID, src)
	}
	return loader, nil
}

// PackLevels loads every level of a registered pack.
// A pack without levels is an error.
func PackLevels(packID string) ([]levels.Level, error) {
	loader, err := LoadPack(packID)
	if err != nil {
		return nil, err
	}
	lvls, err := loader.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("sokoban: pack %q: %w", packID, err)
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("sokoban: pack %q has no levels", packID)
	}
	return lvls, nil
}
