package engine

import (
	"strings"
	"unicode/utf8"
)

// Playlist title constants
const (
	DefaultPlaylistName = "Unknown Playlist"
	PlaylistSuffix      = " Playlist"
	MinPrefixLength     = 10
)

// PlaylistTitle derives a collection title from entry titles when the engine
// does not report one: a long enough common prefix of the first two titles,
// else the first title, suffixed with " Playlist".
func PlaylistTitle(titles []string) string {
	if len(titles) == 0 {
		return DefaultPlaylistName
	}
	if len(titles) > 1 {
		commonPrefix := findCommonPrefix(titles[0], titles[1])
		if len(commonPrefix) > MinPrefixLength {
			return strings.TrimSpace(commonPrefix) + PlaylistSuffix
		}
	}
	return titles[0] + PlaylistSuffix
}

// findCommonPrefix finds the common prefix between two strings, ending on a
// rune boundary
func findCommonPrefix(s1, s2 string) string {
	end := 0
	for end < len(s1) && end < len(s2) {
		r1, size1 := utf8.DecodeRuneInString(s1[end:])
		r2, size2 := utf8.DecodeRuneInString(s2[end:])
		if r1 != r2 || size1 != size2 {
			break
		}
		end += size1
	}
	return s1[:end]
}
