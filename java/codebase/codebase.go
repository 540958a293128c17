// Package codebase scans a source tree for Java files and keeps their parsed
// compilation units up to date.
package codebase

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/ecorify/java"
)

var log = commonlog.GetLogger("ecorify.codebase")

// DefaultInclude matches every Java file below the root.
const DefaultInclude = "**/*.java"

type Options struct {
	// Include and Exclude are doublestar patterns matched against paths
	// relative to the root, with forward slashes.
	Include []string
	Exclude []string

	// Jobs bounds the number of files parsed at once. Zero means one per
	// CPU.
	Jobs int
}

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	opts    Options
	files   map[string]*FileInfo
}

type FileInfo struct {
	// Path is relative to the root, with forward slashes.
	Path string
	Hash uint64
	Unit *java.CompilationUnit
}

func New(rootDir string, opts Options) (*Codebase, error) {
	if len(opts.Include) == 0 {
		opts.Include = []string{DefaultInclude}
	}
	for _, pattern := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}
	return &Codebase{
		rootDir: rootDir,
		opts:    opts,
		files:   make(map[string]*FileInfo),
	}, nil
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// Matches reports whether a relative path is scanned.
func (c *Codebase) Matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range c.opts.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	for _, pattern := range c.opts.Include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// Scan parses every matching file below the root. Files that cannot be
// read abort the scan; syntax errors do not.
func (c *Codebase) Scan(ctx context.Context) error {
	var paths []string
	err := filepath.WalkDir(c.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != c.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(c.rootDir, path)
		if err != nil {
			return err
		}
		if c.Matches(rel) {
			paths = append(paths, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", c.rootDir, err)
	}

	queue := make(chan string)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(queue)
		for _, rel := range paths {
			select {
			case queue <- rel:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < c.opts.Jobs; i++ {
		g.Go(func() error {
			parser, err := java.NewSourceParser()
			if err != nil {
				return err
			}
			defer parser.Close()
			for rel := range queue {
				if _, err := c.scanFile(parser, rel); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Infof("scanned %d files below %s", len(paths), c.rootDir)
	return nil
}

// ScanFile parses one file again. It reports false when the content did
// not change since the last scan.
func (c *Codebase) ScanFile(rel string) (bool, error) {
	parser, err := java.NewSourceParser()
	if err != nil {
		return false, err
	}
	defer parser.Close()
	return c.scanFile(parser, filepath.ToSlash(rel))
}

func (c *Codebase) scanFile(parser *java.SourceParser, rel string) (bool, error) {
	content, err := os.ReadFile(filepath.Join(c.rootDir, filepath.FromSlash(rel)))
	if err != nil {
		return false, fmt.Errorf("read %s: %w", rel, err)
	}
	hash := xxhash.Sum64(content)

	c.mu.RLock()
	old := c.files[rel]
	c.mu.RUnlock()
	if old != nil && old.Hash == hash {
		return false, nil
	}

	unit, err := parser.Parse(rel, content)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", rel, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[rel] = &FileInfo{Path: rel, Hash: hash, Unit: unit}
	log.Debugf("parsed %s", rel)
	return true, nil
}

// RemoveFile forgets a file. It reports whether the file was known.
func (c *Codebase) RemoveFile(rel string) bool {
	rel = filepath.ToSlash(rel)
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.files[rel]
	delete(c.files, rel)
	return ok
}

func (c *Codebase) GetFile(rel string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[filepath.ToSlash(rel)]
}

// Files returns the scanned files sorted by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// Workspace returns a workspace holding every scanned unit, backed by the
// given classpath, which may be nil.
func (c *Codebase) Workspace(classpath *java.Classpath) *java.Workspace {
	w := java.NewWorkspace(classpath)
	for _, f := range c.Files() {
		w.AddUnit(f.Unit)
	}
	return w
}
