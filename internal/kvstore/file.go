package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File is a Store backed by one file per key under a profile directory. It
// persists across process restarts, playing the role browser local storage
// plays for the original resume builder. There is no cross-process locking;
// two processes sharing a profile directory can lose updates to the same key.
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile creates a file-backed store rooted at dir, creating it if needed.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("kvstore: profile directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kvstore: failed to create profile directory %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

// Get returns the stored value for key, or ErrNotFound.
func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("kvstore: failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set stores value under key. The write goes through a temp file and rename
// so a crash mid-write cannot leave a truncated value behind.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("kvstore: failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("kvstore: failed to replace %s: %w", key, err)
	}
	return nil
}

// path maps a key to a file name, sanitizing separators.
func (f *File) path(key string) string {
	safe := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(key)
	return filepath.Join(f.dir, safe+".json")
}
