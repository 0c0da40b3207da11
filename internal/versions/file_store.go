package versions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists versions as a pretty-printed JSON array on disk at
// public/design-versions.json, the document the widget fetches directly.
// A missing file reads as an empty list.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the given path. The parent
// directory is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// List reads the file, dropping entries whose state fails validation.
func (s *FileStore) List(ctx context.Context) ([]DesignVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("versions: read file: %w", err)
	}

	var raw []DesignVersion
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("versions: parse file: %w", err)
	}

	var entries []DesignVersion
	for _, entry := range raw {
		if entry.State.Valid() {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// Replace writes the whole list atomically via a temp-file rename.
func (s *FileStore) Replace(ctx context.Context, entries []DesignVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entries == nil {
		entries = []DesignVersion{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("versions: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("versions: mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".design-versions-*")
	if err != nil {
		return fmt.Errorf("versions: temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("versions: write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("versions: close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("versions: rename file: %w", err)
	}
	return nil
}
