package recent

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Defaults
const (
	DefaultLimit = 20
	StoreFile    = "recent_downloads.json"

	filePermissions = 0644
)

// Item is one finished download remembered for quick access
type Item struct {
	FilePath     string    `json:"file_path"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	FileSize     int64     `json:"file_size"`
	AudioOnly    bool      `json:"audio_only"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// Store keeps a bounded, newest-first list of completed downloads persisted
// as JSON
type Store struct {
	mu    sync.Mutex
	path  string
	limit int
	items []Item
}

// NewStore loads or creates a store backed by the given file. A missing or
// unreadable file starts the store empty.
func NewStore(path string, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	s := &Store{
		path:  path,
		limit: limit,
	}
	s.load()
	return s
}

// NewStoreInDir creates a store backed by the default file under dir
func NewStoreInDir(dir string, limit int) *Store {
	return NewStore(filepath.Join(dir, StoreFile), limit)
}

// Add records a completed download at the head of the list. Re-downloading
// the same file moves it to the head instead of duplicating it.
func (s *Store) Add(item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.DownloadedAt.IsZero() {
		item.DownloadedAt = time.Now()
	}

	filtered := make([]Item, 0, len(s.items)+1)
	filtered = append(filtered, item)
	for _, existing := range s.items {
		if existing.FilePath == item.FilePath {
			continue
		}
		filtered = append(filtered, existing)
	}
	if len(filtered) > s.limit {
		filtered = filtered[:s.limit]
	}
	s.items = filtered

	return s.save()
}

// Items returns the remembered downloads, newest first
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// Remove forgets the entry for the given file path
func (s *Store) Remove(filePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.items[:0]
	for _, existing := range s.items {
		if existing.FilePath != filePath {
			filtered = append(filtered, existing)
		}
	}
	s.items = filtered

	return s.save()
}

// Clear forgets all entries
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.save()
}

// Len returns the number of remembered downloads
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// load reads the backing file. Corrupt or missing data is logged and
// discarded rather than propagated.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read recent downloads from %s: %v", s.path, err)
		}
		return
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("Discarding corrupt recent downloads file %s: %v", s.path, err)
		return
	}

	if len(items) > s.limit {
		items = items[:s.limit]
	}
	s.items = items
}

// save writes the current list to the backing file. Caller holds s.mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode recent downloads: %w", err)
	}
	if err := os.WriteFile(s.path, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write recent downloads: %w", err)
	}
	return nil
}
