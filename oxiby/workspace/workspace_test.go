package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhamidi/oxiparse/config"
	"github.com/dhamidi/oxiparse/oxiby/parser"
)

const pointSource = `use std.io print, Writer -> W

// A point in the plane.
// Coordinates are integers.
pub struct Point {
    x: Int,
    y: Int,

    fn norm(self) -> Int {
        self.x * self.x + self.y * self.y
    }
}

enum Shape {
    Circle { radius: Float },
    Empty,
}

trait Show {
    type Output
    fn show(self) -> Str
}

impl Show for Point {
    fn show(self) -> Str {
        "point"
    }
}

fn main() {
    print(1)
}
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestScanAll(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"main.oxi":             pointSource,
		"lib/broken.oxi":       "fn a() {}\nstruct\n",
		"lib/notes.txt":        "not oxiby",
		"node_modules/dep.oxi": "fn",
		"lib/deeper/empty.oxi": "",
	})
	cfg := config.Default()
	cfg.Workers = 2
	ws := New(root, cfg)

	require.NoError(t, ws.ScanAll(context.Background()))
	require.Equal(t, []string{
		filepath.Join(root, "lib", "broken.oxi"),
		filepath.Join(root, "lib", "deeper", "empty.oxi"),
		filepath.Join(root, "main.oxi"),
	}, ws.Files())

	main := ws.GetFile(filepath.Join(root, "main.oxi"))
	require.NotNil(t, main.Tree)
	require.Empty(t, main.Errors)
	require.Equal(t, "main.oxi", main.Tree.File)

	diags := ws.Diagnostics()
	require.Len(t, diags, 1)
	require.Equal(t, filepath.Join(root, "lib", "broken.oxi"), diags[0].Path)
	require.ErrorIs(t, diags[0].Error, parser.ErrSyntax)
	require.Equal(t, filepath.Join("lib", "broken.oxi"), diags[0].Error.Pos.File)
}

func TestScanAllTolerant(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.oxi": "struct\nfn ok() {}\nenum\n",
	})
	cfg := config.Default()
	cfg.Policy = "tolerant"
	ws := New(root, cfg)
	require.NoError(t, ws.ScanAll(context.Background()))

	f := ws.GetFile(filepath.Join(root, "a.oxi"))
	require.NotNil(t, f.Tree)
	require.Len(t, f.Errors, 2)
	require.Len(t, ws.Diagnostics(), 2)
	require.Less(t, ws.Diagnostics()[0].Error.Pos.Line, ws.Diagnostics()[1].Error.Pos.Line)
}

func TestScanAllCancelled(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.oxi": "fn a() {}"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(root, nil).ScanAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestUpdateAndRemoveFile(t *testing.T) {
	ws := New(t.TempDir(), nil)
	path := filepath.Join(ws.RootDir(), "x.oxi")

	f := ws.UpdateFile(path, []byte("fn"))
	require.Nil(t, f.Tree)
	require.Len(t, f.Errors, 1)

	f = ws.UpdateFile(path, []byte("fn x() {}"))
	require.NotNil(t, f.Tree)
	require.Empty(t, ws.Diagnostics())
	require.Same(t, f, ws.GetFile(path))

	ws.RemoveFile(path)
	require.Nil(t, ws.GetFile(path))
	require.Empty(t, ws.Files())
}

func TestScanFileMissing(t *testing.T) {
	ws := New(t.TempDir(), nil)
	err := ws.ScanFile(filepath.Join(ws.RootDir(), "missing.oxi"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSymbols(t *testing.T) {
	cfg := config.Default()
	cfg.Comments = true
	ws := New(t.TempDir(), cfg)
	path := filepath.Join(ws.RootDir(), "point.oxi")
	ws.UpdateFile(path, []byte(pointSource))

	symbols := ws.Symbols(path)
	var names []string
	for _, sym := range symbols {
		names = append(names, sym.Kind.String()+" "+sym.Name)
	}
	require.Equal(t, []string{
		"use std.io",
		"struct Point",
		"enum Shape",
		"trait Show",
		"impl Show for Point",
		"function main",
	}, names)

	use := symbols[0]
	require.Len(t, use.Children, 2)
	require.Equal(t, "print", use.Children[0].Name)
	require.Equal(t, "W", use.Children[1].Name)

	point := symbols[1]
	require.Equal(t, "A point in the plane.\nCoordinates are integers.", point.Doc)
	require.Len(t, point.Children, 3)
	require.Equal(t, "x", point.Children[0].Name)
	require.Equal(t, SymbolField, point.Children[0].Kind)
	require.Equal(t, "norm", point.Children[2].Name)
	require.Equal(t, SymbolMethod, point.Children[2].Kind)
	require.Equal(t, 5, point.NameSpan.Start.Line)
	require.Equal(t, 12, point.NameSpan.Start.Column)

	shape := symbols[2]
	require.Len(t, shape.Children, 2)
	require.Equal(t, SymbolVariant, shape.Children[0].Kind)
	require.Equal(t, "Circle", shape.Children[0].Name)

	show := symbols[3]
	require.Len(t, show.Children, 2)
	require.Equal(t, SymbolAssociatedType, show.Children[0].Kind)
	require.Equal(t, "Output", show.Children[0].Name)
	require.Equal(t, "show", show.Children[1].Name)

	require.Nil(t, ws.Symbols(filepath.Join(ws.RootDir(), "unknown.oxi")))
}

func TestTupleStructFieldsAreNumbered(t *testing.T) {
	tree, err := parser.Parse([]byte("struct Pair(Int, Str)"))
	require.NoError(t, err)

	symbols := Outline(tree)
	require.Len(t, symbols, 1)
	require.Len(t, symbols[0].Children, 2)
	require.Equal(t, "0", symbols[0].Children[0].Name)
	require.Equal(t, "1", symbols[0].Children[1].Name)
}
