package model

// RunSummary collects the outcome of one orchestration call
type RunSummary struct {
	RunID    string
	Request  DownloadRequest
	Playlist *Playlist       // nil for a single item
	Tasks    []*DownloadTask // every task in processing order
	Failures error           // aggregated per-item failures, nil if none
}

// Count returns the number of tasks in the given status
func (s *RunSummary) Count(status TaskStatus) int {
	n := 0
	for _, task := range s.Tasks {
		if task.Status == status {
			n++
		}
	}
	return n
}

// DownloadedBytes sums the bytes reported for completed tasks
func (s *RunSummary) DownloadedBytes() int64 {
	var total int64
	for _, task := range s.Tasks {
		if task.Status == TaskStatusCompleted {
			total += task.DownloadedBytes
		}
	}
	return total
}

// HasFailures reports whether any item failed
func (s *RunSummary) HasFailures() bool {
	return s.Failures != nil
}
