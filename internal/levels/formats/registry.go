// Package formats provides pluggable level file format parsers. Parsers
// register themselves in init() functions, keyed by file extension, so the
// loader can route files without hardcoded format knowledge.
package formats

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/laserdodge/internal/sim"
)

// ParseFunc decodes raw file bytes into a level. Parsers only decode; the
// loader applies validation afterwards.
type ParseFunc func(data []byte) (*sim.Level, error)

// Format describes one registered file format.
type Format struct {
	// Name is a short human-readable format name, e.g. "json".
	Name string
	// Extensions lists the file extensions the format claims, with leading
	// dots, lowercase.
	Extensions []string
	Parse      ParseFunc
}

var (
	mu    sync.RWMutex
	byExt = make(map[string]Format)
)

// Register adds a format to the registry. Typically called from a format's
// init() function. Panics if an extension is already claimed.
func Register(f Format) {
	mu.Lock()
	defer mu.Unlock()

	for _, ext := range f.Extensions {
		ext = strings.ToLower(ext)
		if _, exists := byExt[ext]; exists {
			panic(fmt.Sprintf("formats: extension %q already registered", ext))
		}
		byExt[ext] = f
	}
}

// Parse decodes data using the format registered for the extension. The
// extension must include the leading dot; case is ignored.
func Parse(data []byte, ext string) (*sim.Level, error) {
	mu.RLock()
	f, ok := byExt[strings.ToLower(ext)]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("formats: unsupported extension %q", ext)
	}
	return f.Parse(data)
}

// Supported reports whether some format claims the extension.
func Supported(ext string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := byExt[strings.ToLower(ext)]
	return ok
}

// Extensions returns every registered extension in sorted order.
func Extensions() []string {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]string, 0, len(byExt))
	for ext := range byExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
