// Package storage reads the static photo assets of the page.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrOutsideRoot is returned for paths that escape the asset root.
var ErrOutsideRoot = errors.New("path outside asset root")

// ImageExtensions are the file suffixes counted as photos.
var ImageExtensions = []string{".jpg", ".jpeg", ".png"}

// Store defines read access to the asset directory.
type Store interface {
	// List returns the image file names directly inside folder, sorted.
	List(folder string) ([]string, error)
	// Open opens a file relative to the asset root.
	Open(rel string) (io.ReadCloser, error)
	// GetFilePath returns the absolute path of a file relative to the asset root.
	GetFilePath(rel string) (string, error)
	// Root returns the asset root.
	Root() string
}

// LocalStore implements Store over a directory on disk. Every call reads the
// filesystem; nothing is cached.
type LocalStore struct {
	root string
}

// NewLocalStore creates a LocalStore rooted at root.
func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving asset root: %w", err)
	}
	return &LocalStore{root: abs}, nil
}

// Root returns the absolute asset root.
func (s *LocalStore) Root() string {
	return s.root
}

// List returns image files in folder, relative to the asset root.
func (s *LocalStore) List(folder string) ([]string, error) {
	dir, err := s.GetFilePath(folder)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", folder, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if IsImage(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Open opens a file under the asset root.
func (s *LocalStore) Open(rel string) (io.ReadCloser, error) {
	path, err := s.GetFilePath(rel)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", rel, err)
	}
	return f, nil
}

// GetFilePath resolves rel against the root and rejects paths that leave it.
func (s *LocalStore) GetFilePath(rel string) (string, error) {
	return ResolveUnder(s.root, rel)
}

// ResolveUnder joins rel onto root, refusing results outside root.
func ResolveUnder(root, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, rel)
	}
	path := filepath.Join(root, filepath.Clean(string(filepath.Separator)+rel))
	if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, rel)
	}
	return path, nil
}

// IsImage reports whether name has one of ImageExtensions.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
