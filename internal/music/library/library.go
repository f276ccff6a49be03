// Package library resolves audio files kept in a local directory.
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned by Resolve when no such file exists in the directory.
var ErrNotFound = errors.New("file not found")

// Library is a flat directory of audio files sharing one extension.
type Library struct {
	Dir string
	Ext string
}

func New(dir, ext string) *Library {
	return &Library{Dir: dir, Ext: ext}
}

// List returns the names of the files in the directory that end with the
// library extension, sorted.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), l.Ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Resolve returns the path of name inside the directory. Names that would
// escape the directory are reported as not found.
func (l *Library) Resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	path := filepath.Join(l.Dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return path, nil
}
