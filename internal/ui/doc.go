package ui

// Package ui renders the terminal side of a run: colored, localized status
// messages and the single-line progress bar driven by engine progress events.
