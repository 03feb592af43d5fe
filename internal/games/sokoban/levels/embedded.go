package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed packs
var packsFS embed.FS

// BuiltinPacks returns the names of the embedded level packs.
func BuiltinPacks() []string {
	entries, err := fs.ReadDir(packsFS, "packs")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Builtin returns a loader over one embedded pack.
func Builtin(pack string) (*Loader, error) {
	if _, err := fs.Stat(packsFS, "packs/"+pack); err != nil {
		return nil, fmt.Errorf("levels: unknown pack %q: %w", pack, err)
	}
	sub, err := fs.Sub(packsFS, "packs/"+pack)
	if err != nil {
		return nil, err
	}
	return NewFSLoader(sub, "builtin/"+pack), nil
}
