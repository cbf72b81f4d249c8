package platform

import (
	"context"
	"testing"
	"time"
)

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/playlist?list=PLtest123", true},
		{"https://www.youtube.com/watch?v=abc&list=PLtest123", true},
		{"https://www.youtube.com/watch?v=abc123", false},
		{"https://example.com/video", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsPlaylistURL(tt.url); got != tt.expected {
			t.Errorf("IsPlaylistURL(%q) = %v, expected %v", tt.url, got, tt.expected)
		}
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "playlist URL",
			url:      "https://www.youtube.com/playlist?list=PLtest123",
			expected: "PLtest123",
		},
		{
			name:     "watch URL with list parameter",
			url:      "https://www.youtube.com/watch?v=abc&list=PLtest123",
			expected: "PLtest123",
		},
		{
			name:     "list parameter followed by others",
			url:      "https://www.youtube.com/watch?v=abc&list=PLtest123&start_radio=1",
			expected: "PLtest123",
		},
		{
			name:     "no list parameter",
			url:      "https://www.youtube.com/watch?v=abc123",
			expected: "",
		},
		{
			name:     "empty list parameter",
			url:      "https://www.youtube.com/playlist?list=",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPlaylistID(tt.url); got != tt.expected {
				t.Errorf("ExtractPlaylistID(%q) = %q, expected %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestProbe_InvalidURL(t *testing.T) {
	prober := NewPlaylistProber()

	_, err := prober.Probe(context.Background(), "https://www.youtube.com/watch?v=abc123")
	if err == nil {
		t.Error("Expected error for URL without playlist parameter, got nil")
	}

	_, err = prober.Probe(context.Background(), "https://www.youtube.com/playlist?list=")
	if err == nil {
		t.Error("Expected error for empty playlist ID, got nil")
	}
}

func TestProberSetTimeout(t *testing.T) {
	prober := NewPlaylistProber()
	if prober.timeout != DefaultPlaylistProbeTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultPlaylistProbeTimeout, prober.timeout)
	}

	prober.SetTimeout(5 * time.Second)
	if prober.timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", prober.timeout)
	}
}

func TestPlaylistURLs(t *testing.T) {
	playlist := &Playlist{
		Videos: []PlaylistVideo{
			{ID: "a1", URL: "https://www.youtube.com/watch?v=a1"},
			{ID: "b2", URL: "https://www.youtube.com/watch?v=b2"},
		},
	}

	urls := playlist.URLs()
	if len(urls) != 2 {
		t.Fatalf("Expected 2 URLs, got %d", len(urls))
	}
	if urls[0] != "https://www.youtube.com/watch?v=a1" || urls[1] != "https://www.youtube.com/watch?v=b2" {
		t.Errorf("URLs not in playlist order: %v", urls)
	}
}

func TestExtractPlaylistTitle(t *testing.T) {
	tests := []struct {
		name     string
		videos   []PlaylistVideo
		expected string
	}{
		{
			name:     "empty playlist",
			videos:   nil,
			expected: DefaultPlaylistTitle,
		},
		{
			name:     "single video",
			videos:   []PlaylistVideo{{Title: "Some Song"}},
			expected: "Some Song Playlist",
		},
		{
			name: "common prefix",
			videos: []PlaylistVideo{
				{Title: "Concert 2023 - Part 1"},
				{Title: "Concert 2023 - Part 2"},
			},
			expected: "Concert 2023 - Part Playlist",
		},
		{
			name: "no useful prefix",
			videos: []PlaylistVideo{
				{Title: "First"},
				{Title: "Second"},
			},
			expected: "First Playlist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPlaylistTitle(tt.videos); got != tt.expected {
				t.Errorf("Expected title %q, got %q", tt.expected, got)
			}
		})
	}
}
