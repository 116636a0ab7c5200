package engine

import (
	"net/url"
	"strings"
)

// URL parameters
const (
	PlaylistParam = "list"
	VideoParam    = "v"
)

// YouTubeVideoURLTemplate builds a watch URL from a video ID
const YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v="

// ExtractPlaylistID returns the playlist ID carried by a URL, or "" if none.
// Supported forms:
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID
func ExtractPlaylistID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return u.Query().Get(PlaylistParam)
}

// IsPlaylistURL reports whether the URL references a playlist
func IsPlaylistURL(rawURL string) bool {
	return ExtractPlaylistID(rawURL) != ""
}

// WatchURL returns the canonical watch URL for a video ID
func WatchURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return YouTubeVideoURLTemplate + videoID
}
