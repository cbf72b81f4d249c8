package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultPlaylistProbeTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistURLParam       = "list="
	PlaylistParamSeparator = "&"
)

// Default values
const (
	DefaultPlaylistTitle = "Unknown Playlist"
	PlaylistTitleSuffix  = " Playlist"
	MinPrefixLength      = 10
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// PlaylistVideo is one entry discovered in a playlist
type PlaylistVideo struct {
	ID    string
	Title string
	URL   string
}

// Playlist holds the probed contents of a playlist URL
type Playlist struct {
	ID     string
	Title  string
	URL    string
	Videos []PlaylistVideo
}

// URLs returns the direct video URLs in playlist order
func (p *Playlist) URLs() []string {
	urls := make([]string, 0, len(p.Videos))
	for _, video := range p.Videos {
		urls = append(urls, video.URL)
	}
	return urls
}

// PlaylistProber resolves playlist URLs into individual video entries
type PlaylistProber struct {
	timeout time.Duration
}

// NewPlaylistProber creates a new playlist prober
func NewPlaylistProber() *PlaylistProber {
	return &PlaylistProber{
		timeout: DefaultPlaylistProbeTimeout,
	}
}

// SetTimeout sets the timeout for probe operations
func (p *PlaylistProber) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// IsPlaylistURL reports whether the URL carries a playlist parameter
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistURLParam)
}

// Probe fetches the video entries of a playlist URL
func (p *PlaylistProber) Probe(ctx context.Context, url string) (*Playlist, error) {
	if !IsPlaylistURL(url) {
		return nil, fmt.Errorf("invalid playlist URL: %s", url)
	}

	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %v", err)
	}

	videos := make([]PlaylistVideo, 0, len(items))
	for _, it := range items {
		videos = append(videos, PlaylistVideo{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}

	return &Playlist{
		ID:     playlistID,
		Title:  extractPlaylistTitle(videos),
		URL:    url,
		Videos: videos,
	}, nil
}

// ExtractPlaylistID extracts the playlist ID from various URL formats:
// - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID
// - https://www.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(url string) string {
	if !strings.Contains(url, PlaylistURLParam) {
		return ""
	}
	parts := strings.Split(url, PlaylistURLParam)
	if len(parts) < 2 {
		return ""
	}
	playlistID := parts[1]
	if strings.Contains(playlistID, PlaylistParamSeparator) {
		playlistID = strings.Split(playlistID, PlaylistParamSeparator)[0]
	}
	return playlistID
}

// extractPlaylistTitle generates a title for the playlist based on videos
func extractPlaylistTitle(videos []PlaylistVideo) string {
	if len(videos) == 0 {
		return DefaultPlaylistTitle
	}
	if len(videos) > 1 {
		commonPrefix := findCommonPrefix(videos[0].Title, videos[1].Title)
		if len(commonPrefix) > MinPrefixLength {
			return strings.TrimSpace(commonPrefix) + PlaylistTitleSuffix
		}
	}
	return videos[0].Title + PlaylistTitleSuffix
}

// findCommonPrefix finds the common prefix between two strings
func findCommonPrefix(s1, s2 string) string {
	minLen := min(len(s1), len(s2))
	for i := 0; i < minLen; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:minLen]
}
