// Package workspace keeps the parse trees of every Oxiby file under a root
// directory up to date and exposes their diagnostics and outlines to the
// command line tools and the language server.
package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/oxiparse/config"
	"github.com/dhamidi/oxiparse/oxiby/parser"
)

var log = commonlog.GetLogger("oxiparse.workspace")

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	cfg     *config.Config
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path    string
	Content []byte
	// Tree is nil when the file was parsed fail-fast and had an error.
	Tree   *parser.Tree
	Errors []*parser.Error
}

// Diagnostic is a parse error together with the file it was found in.
type Diagnostic struct {
	Path  string
	Error *parser.Error
}

func New(rootDir string, cfg *config.Config) *Workspace {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Workspace{
		rootDir: rootDir,
		cfg:     cfg,
		files:   make(map[string]*FileInfo),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) Config() *config.Config {
	return w.cfg
}

// Sources lists the source files below the root directory, skipping
// excluded paths.
func (w *Workspace) Sources() ([]string, error) {
	return w.sourcesIn(w.rootDir)
}

func (w *Workspace) sourcesIn(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warningf("skipping %s: %s", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path != dir && w.Excluded(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && w.cfg.IsSource(path) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

// Excluded reports whether path matches one of the configured exclude
// patterns.
func (w *Workspace) Excluded(path string) bool {
	rel, err := filepath.Rel(w.rootDir, path)
	if err != nil {
		rel = path
	}
	return w.cfg.Excluded(rel)
}

// ScanAll parses every source file below the root directory, with at most
// Config.Workers files in flight at once.
func (w *Workspace) ScanAll(ctx context.Context) error {
	paths, err := w.Sources()
	if err != nil {
		return fmt.Errorf("scanning %s: %w", w.rootDir, err)
	}
	log.Infof("scanning %d files in %s", len(paths), w.rootDir)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.cfg.Workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := w.ScanFile(path); err != nil {
				log.Warningf("%s", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content as the new text of path and replaces whatever
// was known about the file before.
func (w *Workspace) UpdateFile(path string, content []byte) *FileInfo {
	info := w.parse(path, content)

	w.mu.Lock()
	w.files[path] = info
	w.mu.Unlock()

	log.Debugf("parsed %s: %d errors", path, len(info.Errors))
	return info
}

func (w *Workspace) parse(path string, content []byte) *FileInfo {
	opts := append(w.cfg.ParserOptions(), parser.WithFile(w.displayPath(path)))
	tree, err := parser.Parse(content, opts...)
	return &FileInfo{
		Path:    path,
		Content: content,
		Tree:    tree,
		Errors:  parser.AsErrors(err),
	}
}

// displayPath is the file name errors are reported under: relative paths
// as given, absolute ones relative to the root directory when they lie
// below it.
func (w *Workspace) displayPath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(w.rootDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns the known paths in sorted order.
func (w *Workspace) Files() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Diagnostics returns every error in the workspace ordered by path and
// position.
func (w *Workspace) Diagnostics() []Diagnostic {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var diags []Diagnostic
	for path, info := range w.files {
		for _, e := range info.Errors {
			diags = append(diags, Diagnostic{Path: path, Error: e})
		}
	}
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Error.Pos.Line != b.Error.Pos.Line {
			return a.Error.Pos.Line < b.Error.Pos.Line
		}
		return a.Error.Pos.Column < b.Error.Pos.Column
	})
	return diags
}
