// Package levels loads Sokoban level files from disk or from the embedded packs.
// This package depends on core but core does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels/formats"
)

// ParseError is returned for malformed level files.
type ParseError = formats.ParseError

// Level represents a complete level definition.
type Level struct {
	ID       string
	Title    string
	Author   string
	Width    int
	Height   int
	Cells    []core.Cell
	Player   core.Position
	Metadata map[string]string
	FilePath string
}

// NewGrid creates a fresh Grid from the level. Every call returns a new grid.
func (l *Level) NewGrid() *core.Grid {
	g := core.NewGrid(l.Width, l.Height)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			g.Set(core.P(x, y), l.Cells[y*l.Width+x])
		}
	}
	g.SetPlayerPosition(l.Player)
	return g
}

// NewGame creates a fresh engine in the Playing state.
func (l *Level) NewGame() *core.Game {
	return core.NewGame(l.NewGrid(), core.Meta{Title: l.Title, Author: l.Author})
}

// DisplayName returns the title, or the ID if the level has none.
func (l *Level) DisplayName() string {
	if l.Title != "" {
		return l.Title
	}
	return l.ID
}

// BoxCount returns the number of boxes on the initial board.
func (l *Level) BoxCount() int {
	n := 0
	for _, c := range l.Cells {
		if c.HasBox() {
			n++
		}
	}
	return n
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	// Root is used to build FilePath and error locations.
	Root string
	// FS is walked for level files. NewLoader sets it to os.DirFS(Root).
	FS fs.FS
	// Logger receives warnings for skipped files. Nil means log.Default().
	Logger *log.Logger
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, FS: os.DirFS(root)}
}

// NewFSLoader creates a loader over an fs.FS, such as an embedded pack.
func NewFSLoader(fsys fs.FS, name string) *Loader {
	return &Loader{Root: name, FS: fsys}
}

func (l *Loader) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}

// LoadAll recursively scans and loads all level files.
// Invalid files are logged and skipped. Levels are sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(path.Ext(p)) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			l.logger().Warn("skipping level file", "file", l.display(p), "err", err)
			return nil
		}

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file, given relative to the loader's FS.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", l.display(p), err)
	}

	parsed, err := parseByExtension(data, path.Ext(p))
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.File = l.display(p)
			return Level{}, perr
		}
		return Level{}, fmt.Errorf("levels: parsing %s: %w", l.display(p), err)
	}

	id := parsed.ID
	if id == "" {
		id = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}

	return Level{
		ID:       id,
		Title:    parsed.Title,
		Author:   parsed.Author,
		Width:    parsed.Width,
		Height:   parsed.Height,
		Cells:    parsed.Cells,
		Player:   parsed.Player,
		Metadata: parsed.Metadata,
		FilePath: l.display(p),
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func (l *Loader) display(p string) string {
	return filepath.Join(l.Root, filepath.FromSlash(p))
}

func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".txt", ".sok":
		return formats.ParseText(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// Parse parses level text directly, without a file.
func Parse(id string, data []byte) (Level, error) {
	parsed, err := formats.ParseText(data)
	if err != nil {
		return Level{}, err
	}
	return Level{
		ID:       id,
		Title:    parsed.Title,
		Author:   parsed.Author,
		Width:    parsed.Width,
		Height:   parsed.Height,
		Cells:    parsed.Cells,
		Player:   parsed.Player,
		Metadata: parsed.Metadata,
	}, nil
}
