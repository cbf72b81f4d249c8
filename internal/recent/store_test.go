package recent

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T, limit int) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), StoreFile)
	return NewStore(path, limit), path
}

func TestAddAndItems(t *testing.T) {
	store, _ := newTestStore(t, 0)

	if err := store.Add(Item{FilePath: "/downloads/first.mp4", Title: "First"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(Item{FilePath: "/downloads/second.mp4", Title: "Second"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	// Newest first
	if items[0].Title != "Second" || items[1].Title != "First" {
		t.Errorf("Items not newest-first: %v", items)
	}
	if items[0].DownloadedAt.IsZero() {
		t.Error("DownloadedAt should be set when zero")
	}
}

func TestAddDeduplicatesByPath(t *testing.T) {
	store, _ := newTestStore(t, 0)

	store.Add(Item{FilePath: "/downloads/a.mp4", Title: "A"})
	store.Add(Item{FilePath: "/downloads/b.mp4", Title: "B"})
	store.Add(Item{FilePath: "/downloads/a.mp4", Title: "A again"})

	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("Expected 2 items after re-adding same path, got %d", len(items))
	}
	if items[0].Title != "A again" {
		t.Errorf("Re-added item should move to head, got %q", items[0].Title)
	}
}

func TestBoundedLimit(t *testing.T) {
	store, _ := newTestStore(t, 3)

	for i := 0; i < 5; i++ {
		store.Add(Item{FilePath: fmt.Sprintf("/downloads/%d.mp4", i)})
	}

	if store.Len() != 3 {
		t.Fatalf("Expected store bounded at 3 items, got %d", store.Len())
	}
	items := store.Items()
	// The three newest survive
	if items[0].FilePath != "/downloads/4.mp4" || items[2].FilePath != "/downloads/2.mp4" {
		t.Errorf("Unexpected surviving items: %v", items)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), StoreFile)

	store := NewStore(path, 0)
	store.Add(Item{FilePath: "/downloads/kept.mp4", URL: "https://example.com/v", FileSize: 1024})

	reloaded := NewStore(path, 0)
	items := reloaded.Items()
	if len(items) != 1 {
		t.Fatalf("Expected 1 item after reload, got %d", len(items))
	}
	if items[0].FilePath != "/downloads/kept.mp4" || items[0].FileSize != 1024 {
		t.Errorf("Reloaded item does not match: %+v", items[0])
	}
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), StoreFile)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	store := NewStore(path, 0)
	if store.Len() != 0 {
		t.Errorf("Expected empty store for corrupt file, got %d items", store.Len())
	}

	// The store should still accept new entries
	if err := store.Add(Item{FilePath: "/downloads/new.mp4"}); err != nil {
		t.Fatalf("Add after corrupt load failed: %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	store, _ := newTestStore(t, 0)

	store.Add(Item{FilePath: "/downloads/a.mp4"})
	store.Add(Item{FilePath: "/downloads/b.mp4"})

	if err := store.Remove("/downloads/a.mp4"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("Expected 1 item after remove, got %d", store.Len())
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Expected empty store after clear, got %d items", store.Len())
	}
}

func TestLoadTruncatesToLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), StoreFile)

	store := NewStore(path, 10)
	for i := 0; i < 6; i++ {
		store.Add(Item{FilePath: fmt.Sprintf("/downloads/%d.mp4", i)})
	}

	// Reloading with a smaller limit drops the tail
	reloaded := NewStore(path, 4)
	if reloaded.Len() != 4 {
		t.Errorf("Expected reload truncated to 4 items, got %d", reloaded.Len())
	}
}
