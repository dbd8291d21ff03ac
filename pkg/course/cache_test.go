package course

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheReadWrite(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "courses"))

	// 1. Miss on an empty cache
	if _, ok := cache.Get("MTH1101"); ok {
		t.Errorf("expected Get to miss on an empty cache, but it hit")
	}

	// 2. Put stores the bytes exactly as given
	doc := []byte("<fiche><details><sigle>MTH1101</sigle></details></fiche>")
	if err := cache.Put("MTH1101", doc); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, ok := cache.Get("MTH1101")
	if !ok {
		t.Fatalf("expected Get to hit after Put, but it missed")
	}
	if !bytes.Equal(data, doc) {
		t.Errorf("cached bytes differ from stored bytes.\nGot: %q\nExpected: %q", data, doc)
	}

	// 3. Put overwrites the previous entry for a sigil
	doc2 := []byte("<fiche><details><sigle>MTH1101</sigle><titre>Calcul I</titre></details></fiche>")
	if err := cache.Put("MTH1101", doc2); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}
	data, _ = cache.Get("MTH1101")
	if !bytes.Equal(data, doc2) {
		t.Errorf("expected second Put to overwrite the entry")
	}
}

func TestCacheClear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "courses")
	cache := NewCache(dir)

	// Clearing a cache whose directory doesn't exist yet is fine
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear on a missing cache directory failed: %v", err)
	}

	for _, sigil := range []string{"MTH1101", "MTH1102", "INF1010"} {
		if err := cache.Put(sigil, []byte("doc for "+sigil)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to list cache directory: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty cache directory after Clear, found %d entries", len(entries))
	}

	// Clearing twice is fine too
	if err := cache.Clear(); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
}

func TestDefaultCacheLocation(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests

	cache, err := DefaultCache()
	if err != nil {
		t.Fatalf("DefaultCache failed: %v", err)
	}

	if err := cache.Put("MTH1101", []byte("doc")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	expectedPath := filepath.Join(tempDir, ".icanhasical_cache", "courses", "MTH1101")
	if _, err := os.Stat(expectedPath); os.IsNotExist(err) {
		t.Errorf("expected cache file to be created at %s", expectedPath)
	}
}
