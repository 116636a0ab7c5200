package model

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskIDPrefix prefixes every generated task identifier
const TaskIDPrefix = "task-"

// DownloadTask represents a single item download within a run
type DownloadTask struct {
	ID              string
	Index           int // 1-based position in the collection, 0 for a single item
	URL             string
	Title           string
	OutputPath      string
	Status          TaskStatus
	LastError       string    // last error message if any
	DownloadedBytes int64     // bytes reported by the last progress event
	TotalBytes      int64     // total bytes if known
	StartedAt       time.Time // when download started
	FinishedAt      time.Time // when the task reached a terminal state
}

// NewDownloadTask creates a pending task for one resolved item
func NewDownloadTask(index int, item Item, outputPath string) *DownloadTask {
	return &DownloadTask{
		ID:         GenerateTaskID(),
		Index:      index,
		URL:        item.URL,
		Title:      item.Title,
		OutputPath: outputPath,
		Status:     TaskStatusPending,
	}
}

// GenerateTaskID generates a unique task ID
func GenerateTaskID() string {
	return TaskIDPrefix + uuid.NewString()
}

// Start marks the task as downloading
func (dt *DownloadTask) Start() {
	dt.Status = TaskStatusDownloading
	dt.StartedAt = time.Now()
}

// Skip marks the task as skipped because its output already exists
func (dt *DownloadTask) Skip() {
	dt.Status = TaskStatusSkipped
	dt.FinishedAt = time.Now()
}

// Complete marks the task as finished successfully
func (dt *DownloadTask) Complete() {
	dt.Status = TaskStatusCompleted
	dt.FinishedAt = time.Now()
}

// Fail marks the task as failed and records the error text
func (dt *DownloadTask) Fail(err error) {
	dt.Status = TaskStatusError
	if err != nil {
		dt.LastError = err.Error()
	}
	dt.FinishedAt = time.Now()
}

// Interrupt marks the task as aborted by the user
func (dt *DownloadTask) Interrupt() {
	dt.Status = TaskStatusInterrupted
	dt.FinishedAt = time.Now()
}

// ApplyProgress records byte counters from a progress event
func (dt *DownloadTask) ApplyProgress(ev ProgressEvent) {
	dt.DownloadedBytes = ev.DownloadedBytes
	if ev.TotalBytes > 0 {
		dt.TotalBytes = ev.TotalBytes
	}
}

// Elapsed returns how long the download ran, zero if it never started
func (dt *DownloadTask) Elapsed() time.Duration {
	if dt.StartedAt.IsZero() {
		return 0
	}
	if dt.FinishedAt.IsZero() {
		return time.Since(dt.StartedAt)
	}
	return dt.FinishedAt.Sub(dt.StartedAt)
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	// First priority: item title (non-URL)
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}

	// Second priority: filename from OutputPath without extension
	if dt.OutputPath != "" {
		name := filepath.Base(dt.OutputPath)
		if idx := strings.LastIndex(name, "."); idx > 0 {
			name = name[:idx]
		}
		return name
	}

	return dt.URL
}
