package engine

import (
	"testing"
	"unicode/utf8"
)

func TestPlaylistTitle(t *testing.T) {
	tests := []struct {
		name     string
		titles   []string
		expected string
	}{
		{
			name:     "no titles",
			titles:   nil,
			expected: DefaultPlaylistName,
		},
		{
			name:     "single title",
			titles:   []string{"Intro"},
			expected: "Intro Playlist",
		},
		{
			name:     "long common prefix",
			titles:   []string{"Go Concurrency Patterns - Part 1", "Go Concurrency Patterns - Part 2"},
			expected: "Go Concurrency Patterns - Part Playlist",
		},
		{
			name:     "short common prefix falls back to first title",
			titles:   []string{"Go Basics", "Go Tools"},
			expected: "Go Basics Playlist",
		},
		{
			name:     "multi-byte titles keep whole runes",
			titles:   []string{"Плейлист урок А", "Плейлист урок Б"},
			expected: "Плейлист урок Playlist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlaylistTitle(tt.titles)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
			if !utf8.ValidString(got) {
				t.Errorf("title %q is not valid UTF-8", got)
			}
		})
	}
}

func TestFindCommonPrefix(t *testing.T) {
	tests := []struct {
		s1, s2   string
		expected string
	}{
		{"abcdef", "abcxyz", "abc"},
		{"abc", "abcdef", "abc"},
		{"abc", "xyz", ""},
		{"", "abc", ""},
		{"Урок А", "Урок Б", "Урок "}, // А and Б share their first UTF-8 byte
		{"café", "cafe", "caf"},
	}

	for _, tt := range tests {
		if got := findCommonPrefix(tt.s1, tt.s2); got != tt.expected {
			t.Errorf("findCommonPrefix(%q, %q) = %q, want %q", tt.s1, tt.s2, got, tt.expected)
		}
	}
}
