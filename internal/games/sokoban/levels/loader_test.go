package levels_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func quietLoader(root string) *levels.Loader {
	l := levels.NewLoader(root)
	l.Logger = log.New(io.Discard)
	return l
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "####\n#@$.#\n####\nTitle: B\n")
	writeFile(t, dir, "a.txt", "####\n#@$.#\n####\nTitle: A\n")
	writeFile(t, dir, "nested/c.yaml", "id: c\nboard: |\n  ####\n  #@.$#\n  ####\n")
	writeFile(t, dir, "broken.txt", "no board here\n")
	writeFile(t, dir, "README.md", "# not a level\n")

	lvls, err := quietLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if len(lvls) != 3 {
		t.Fatalf("expected 3 levels, got %d", len(lvls))
	}
	for i, want := range []string{"a", "b", "c"} {
		if lvls[i].ID != want {
			t.Errorf("level %d: expected ID %q, got %q", i, want, lvls[i].ID)
		}
	}
	if lvls[0].FilePath != filepath.Join(dir, "a.txt") {
		t.Errorf("unexpected FilePath %q", lvls[0].FilePath)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.txt", "#####\n#@$.#\n#####\nTitle: One\nAuthor: Me\n")

	l := quietLoader(dir)
	lvl, err := l.LoadByID("one")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Title != "One" || lvl.Author != "Me" {
		t.Errorf("unexpected metadata %q %q", lvl.Title, lvl.Author)
	}

	if _, err := l.LoadByID("missing"); err == nil {
		t.Error("expected error for missing level")
	}
}

func TestLoaderListIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "02.txt", "###\n#@#\n###\n")
	writeFile(t, dir, "01.txt", "###\n#@#\n###\n")

	ids, err := quietLoader(dir).ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "01" || ids[1] != "02" {
		t.Errorf("unexpected ids %v", ids)
	}
}

func TestLoaderLoadFileParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.txt", "####\n#$.#\n####\n")

	_, err := quietLoader(dir).LoadFile("bad.txt")
	var perr *levels.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if perr.File != filepath.Join(dir, "bad.txt") {
		t.Errorf("expected file location, got %q", perr.File)
	}
}

func TestLoaderMissingRoot(t *testing.T) {
	_, err := quietLoader(filepath.Join(t.TempDir(), "nope")).LoadAll()
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestLevelNewGridIsFresh(t *testing.T) {
	lvl, err := levels.Parse("x", []byte("#####\n#@$.#\n#####\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	g1 := lvl.NewGrid()
	g1.Set(core.P(2, 1), core.Empty)
	g1.SetPlayerPosition(core.P(3, 1))

	g2 := lvl.NewGrid()
	if g2.Get(core.P(2, 1)) != core.Box || g2.PlayerPosition() != core.P(1, 1) {
		t.Error("NewGrid should not share state between calls")
	}
	if lvl.BoxCount() != 1 {
		t.Errorf("expected 1 box, got %d", lvl.BoxCount())
	}
}

func TestBuiltinPacks(t *testing.T) {
	packs := levels.BuiltinPacks()
	if len(packs) != 2 || packs[0] != "classic" || packs[1] != "tutorial" {
		t.Fatalf("unexpected builtin packs %v", packs)
	}

	for _, pack := range packs {
		l, err := levels.Builtin(pack)
		if err != nil {
			t.Fatalf("Builtin(%s): %v", pack, err)
		}
		l.Logger = log.New(io.Discard)

		lvls, err := l.LoadAll()
		if err != nil {
			t.Fatalf("%s LoadAll: %v", pack, err)
		}
		if len(lvls) == 0 {
			t.Fatalf("%s: no levels", pack)
		}
		for _, lvl := range lvls {
			if lvl.Title == "" {
				t.Errorf("%s/%s: missing title", pack, lvl.ID)
			}
			if lvl.BoxCount() == 0 {
				t.Errorf("%s/%s: no boxes", pack, lvl.ID)
			}
			g := lvl.NewGrid()
			if c := g.Get(g.PlayerPosition()); !c.IsFree() {
				t.Errorf("%s/%s: player starts on %v", pack, lvl.ID, c)
			}
		}
	}

	if _, err := levels.Builtin("nope"); err == nil {
		t.Error("expected error for unknown pack")
	}
}

func TestBuiltinClassicYAML(t *testing.T) {
	l, err := levels.Builtin("classic")
	if err != nil {
		t.Fatal(err)
	}
	lvl, err := l.LoadByID("05")
	if err != nil {
		t.Fatalf("LoadByID(05): %v", err)
	}
	if lvl.Width != 8 || lvl.Height != 7 {
		t.Errorf("expected 8x7, got %dx%d", lvl.Width, lvl.Height)
	}
	if lvl.BoxCount() != 4 {
		t.Errorf("expected 4 boxes, got %d", lvl.BoxCount())
	}
	if lvl.Metadata["Collection"] != "Microban" {
		t.Errorf("unexpected metadata %v", lvl.Metadata)
	}
}

func TestTutorialSolutions(t *testing.T) {
	l, err := levels.Builtin("tutorial")
	if err != nil {
		t.Fatal(err)
	}

	R, L, U, D := core.Right, core.Left, core.Up, core.Down
	solutions := map[string][]core.Direction{
		"01-first-push":        {R, R, R},
		"02-around-the-corner": {R, R, U, L, D, L, U},
		"03-two-boxes":         {U, U, R, D, U, R, D},
	}

	for id, moves := range solutions {
		t.Run(id, func(t *testing.T) {
			lvl, err := l.LoadByID(id)
			if err != nil {
				t.Fatalf("LoadByID: %v", err)
			}
			g := lvl.NewGame()
			for i, d := range moves {
				if out := g.TryMove(d); out != core.Accepted {
					t.Fatalf("move %d (%v) rejected\n%s", i, d, core.RenderASCII(g.View()))
				}
			}
			if g.State() != core.Solved {
				t.Errorf("expected solved\n%s", core.RenderASCII(g.View()))
			}
		})
	}
}
