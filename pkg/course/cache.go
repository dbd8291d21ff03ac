package course

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store maps a course sigil to a previously fetched raw document.
type Store interface {
	Get(sigil string) ([]byte, bool)
	Put(sigil string, data []byte) error
	Clear() error
}

// Cache is a disk-backed Store keeping one file per sigil. Entries never
// expire; they are removed only by an explicit Clear.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at the given directory. The directory is
// created on the first Put.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// DefaultCache places the cache under the user's home directory.
func DefaultCache() (*Cache, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not find user home directory: %w", err)
	}
	return NewCache(filepath.Join(homeDir, ".icanhasical_cache", "courses")), nil
}

// Get returns the cached document for a sigil, if any.
func (c *Cache) Get(sigil string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(c.dir, sigil))
	if err != nil {
		return nil, false // not cached (or unreadable, same thing to the caller)
	}
	return data, true
}

// Put stores the raw document bytes exactly as fetched. The write goes
// through a temp file and a rename so a concurrent reader never sees a
// partially written document.
func (c *Cache) Put(sigil string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("could not create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, sigil+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create cache file for %s: %w", sigil, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write cache file for %s: %w", sigil, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write cache file for %s: %w", sigil, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(c.dir, sigil)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not store cache file for %s: %w", sigil, err)
	}

	return nil
}

// Clear removes every cached document. Clearing an empty or missing cache is
// not an error.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("could not list cache directory: %w", err)
	}

	for _, entry := range entries {
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return fmt.Errorf("could not remove cache entry %s: %w", entry.Name(), err)
		}
	}

	return nil
}
