// mock_storage.go - In-memory asset store for testing
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/cuenta-regresiva/backend/internal/storage"
)

// MockStorage implements storage.Store from an in-memory file map.
type MockStorage struct {
	mu    sync.RWMutex
	root  string
	files map[string][]byte // slash-separated path -> content
}

var _ storage.Store = (*MockStorage)(nil)

// NewMockStorage creates an empty mock store.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		root:  "/assets",
		files: make(map[string][]byte),
	}
}

// NewMockStorageWithPhotos creates a store holding photo1.jpg..photoN.jpg in folder.
func NewMockStorageWithPhotos(folder string, n int) *MockStorage {
	m := NewMockStorage()
	m.AddPhotos(folder, n)
	return m
}

// AddFile stores data under rel.
func (m *MockStorage) AddFile(rel string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[clean(rel)] = data
}

// AddPhotos adds photo1.jpg..photoN.jpg to folder.
func (m *MockStorage) AddPhotos(folder string, n int) {
	for i := 1; i <= n; i++ {
		m.AddFile(path.Join(folder, fmt.Sprintf("photo%d.jpg", i)), []byte(fmt.Sprintf("jpeg-%d", i)))
	}
}

func (m *MockStorage) Root() string {
	return m.root
}

func (m *MockStorage) List(folder string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := clean(folder)
	if prefix != "" {
		prefix += "/"
	}

	var names []string
	found := prefix == ""
	for p := range m.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		found = true
		rest := strings.TrimPrefix(p, prefix)
		if strings.Contains(rest, "/") {
			continue
		}
		if storage.IsImage(rest) {
			names = append(names, rest)
		}
	}
	if !found {
		return nil, errors.New("folder not found")
	}
	sort.Strings(names)
	return names, nil
}

func (m *MockStorage) Open(rel string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[clean(rel)]
	if !ok {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MockStorage) GetFilePath(rel string) (string, error) {
	return storage.ResolveUnder(m.root, rel)
}

func clean(rel string) string {
	return strings.TrimPrefix(path.Clean("/"+rel), "/")
}
