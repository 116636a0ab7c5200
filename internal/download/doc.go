package download

// Package download implements the run pipeline: resolve metadata through an
// engine, branch on single item vs playlist, skip outputs that already exist
// and download the rest strictly in order, isolating per-item failures.
