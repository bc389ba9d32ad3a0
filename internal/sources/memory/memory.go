// Package memory is an in-memory file source for tests and local
// development without Drive credentials.
package memory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"painel/internal/sources"
)

type Store struct {
	mu    sync.Mutex
	files map[string][]byte
}

var _ sources.FileFetcher = (*Store)(nil)

func New() *Store {
	return &Store{files: make(map[string][]byte)}
}

// NewFromDir loads every file under base, keyed by filename without
// extension, so a local data/ directory can stand in for the Drive.
func NewFromDir(base string) *Store {
	s := New()
	entries, err := os.ReadDir(base)
	if err != nil {
		return s
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(base, e.Name()))
		if err != nil {
			continue
		}
		name := e.Name()
		key := name[:len(name)-len(filepath.Ext(name))]
		s.files[key] = data
	}
	return s
}

// Put stores file bytes under the identifier.
func (s *Store) Put(fileID string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[fileID] = append([]byte(nil), data...)
}

// Fetch returns the stored bytes for the identifier.
func (s *Store) Fetch(_ context.Context, fileID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[fileID]
	if !ok {
		return nil, fmt.Errorf("file %q not found", fileID)
	}
	return append([]byte(nil), data...), nil
}
