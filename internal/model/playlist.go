package model

import (
	"time"
)

// Playlist represents a collection being processed: its destination directory
// and one task per entry in original order
type Playlist struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	URL       string          `json:"url"`
	Directory string          `json:"directory"`
	Tasks     []*DownloadTask `json:"tasks"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewPlaylist creates a new playlist instance from resolved metadata
func NewPlaylist(meta *Metadata, directory string) *Playlist {
	now := time.Now()
	return &Playlist{
		ID:        meta.ID,
		Title:     meta.Title,
		URL:       meta.URL,
		Directory: directory,
		Tasks:     make([]*DownloadTask, 0, len(meta.Entries)),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddTask appends a task to the playlist
func (p *Playlist) AddTask(task *DownloadTask) {
	p.Tasks = append(p.Tasks, task)
	p.UpdatedAt = time.Now()
}

// Touch refreshes the update timestamp after a task transition
func (p *Playlist) Touch() {
	p.UpdatedAt = time.Now()
}

// TotalItems returns the number of entries in the playlist
func (p *Playlist) TotalItems() int {
	return len(p.Tasks)
}

// GetTasksByStatus returns the tasks in the given status, in playlist order
func (p *Playlist) GetTasksByStatus(status TaskStatus) []*DownloadTask {
	var out []*DownloadTask
	for _, task := range p.Tasks {
		if task.Status == status {
			out = append(out, task)
		}
	}
	return out
}

// GetPendingTasks returns all tasks still waiting to be downloaded
func (p *Playlist) GetPendingTasks() []*DownloadTask {
	return p.GetTasksByStatus(TaskStatusPending)
}

// GetSkippedTasks returns all tasks whose output already existed
func (p *Playlist) GetSkippedTasks() []*DownloadTask {
	return p.GetTasksByStatus(TaskStatusSkipped)
}

// GetCompletedTasks returns all completed tasks
func (p *Playlist) GetCompletedTasks() []*DownloadTask {
	return p.GetTasksByStatus(TaskStatusCompleted)
}

// GetDownloadProgress returns the share of entries present on disk as a percentage
func (p *Playlist) GetDownloadProgress() float64 {
	if len(p.Tasks) == 0 {
		return 0
	}

	done := len(p.GetCompletedTasks()) + len(p.GetSkippedTasks())
	return float64(done) / float64(len(p.Tasks)) * 100
}

// HasErrors checks if any task has failed
func (p *Playlist) HasErrors() bool {
	for _, task := range p.Tasks {
		if task.Status == TaskStatusError {
			return true
		}
	}
	return false
}
