// Package levels provides level loading for the laser dodge game. This
// package depends on sim but sim does not depend on levels, so the
// simulation core stays free of file formats and the filesystem.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/laserdodge/internal/levels/formats"
	"github.com/vovakirdan/laserdodge/internal/sim"
)

// Level is a loaded level plus where it came from.
type Level struct {
	sim.Level
	FilePath string
}

// Loader scans a directory tree for level files. When Log is set, files
// skipped by LoadAll are reported through it.
type Loader struct {
	Root string
	Log  *log.Logger
}

// NewLoader creates a loader rooted at the given directory.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Files returns every path under the root with a supported extension, in
// walk order.
func (l *Loader) Files() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if formats.Supported(filepath.Ext(path)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}
	return paths, nil
}

// LoadAll loads every valid level under the root, sorted by ID for
// deterministic ordering. Files that fail to parse or validate are skipped;
// use Files plus LoadFile to surface per-file problems.
func (l *Loader) LoadAll() ([]Level, error) {
	paths, err := l.Files()
	if err != nil {
		return nil, err
	}

	var out []Level
	for _, path := range paths {
		level, err := l.LoadFile(path)
		if err != nil {
			if l.Log != nil {
				l.Log.Warn("skipping level file", "path", path, "error", err)
			}
			continue
		}
		out = append(out, level)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// LoadFile loads and validates a single level file. Validation problems come
// back as a *sim.ValidationReport error listing every issue in the file. A
// level with an empty id gets one derived from its file name.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	parsed, err := formats.Parse(data, filepath.Ext(path))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if parsed.ID == "" {
		parsed.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := sim.Validate(parsed); err != nil {
		return Level{}, err
	}

	return Level{Level: *parsed, FilePath: path}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range all {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all loadable level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, lvl := range all {
		ids[i] = lvl.ID
	}
	return ids, nil
}
