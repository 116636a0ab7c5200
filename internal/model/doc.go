package model

// Package model defines domain data structures used across the app: the
// download request, resolved metadata, progress events, per-item download
// tasks and collection run state. Structures carry explicit state transitions
// so the orchestrator and the terminal can share them.
