package resolver

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Loader gives the resolver access to source files.
type Loader interface {
	LoadText(path string) (string, error)
	Exists(path string) bool
}

// OSLoader reads files from disk.
type OSLoader struct{}

func (OSLoader) LoadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (OSLoader) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// MapLoader serves files from memory, keyed by cleaned path.
type MapLoader map[string]string

func (m MapLoader) LoadText(path string) (string, error) {
	text, ok := m[filepath.Clean(path)]
	if !ok {
		return "", &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return text, nil
}

func (m MapLoader) Exists(path string) bool {
	_, ok := m[filepath.Clean(path)]
	return ok
}

// OverlayLoader prefers in-memory text (e.g. unsaved editor buffers) and
// falls back to Base for everything else.
type OverlayLoader struct {
	Overlay MapLoader
	Base    Loader
}

func (o OverlayLoader) LoadText(path string) (string, error) {
	if o.Overlay.Exists(path) {
		return o.Overlay.LoadText(path)
	}
	return o.Base.LoadText(path)
}

func (o OverlayLoader) Exists(path string) bool {
	return o.Overlay.Exists(path) || o.Base.Exists(path)
}
