package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend keeps every key in a single JSON object on disk.
type FileBackend struct {
	path string
	mu   sync.Mutex
}

// NewFileBackend stores state in the file at path. The file is created on
// first save.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the backing file.
func (f *FileBackend) Path() string { return f.path }

func (f *FileBackend) read() (map[string]json.RawMessage, error) {
	docs := make(map[string]json.RawMessage)
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return docs, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return docs, nil
	}
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return docs, nil
}

func (f *FileBackend) write(docs map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Load returns the document stored under key.
func (f *FileBackend) Load(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	docs, err := f.read()
	if err != nil {
		return nil, err
	}
	v, ok := docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

// Save stores value under key. value must be valid JSON.
func (f *FileBackend) Save(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return errors.New("storage: value is not valid JSON")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	docs, err := f.read()
	if err != nil {
		return err
	}
	docs[key] = json.RawMessage(value)
	return f.write(docs)
}

// Delete removes key. Deleting a missing key is not an error.
func (f *FileBackend) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	docs, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := docs[key]; !ok {
		return nil
	}
	delete(docs, key)
	return f.write(docs)
}
