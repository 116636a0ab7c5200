package model

// TaskStatus represents the status of a single item download
type TaskStatus string

const (
	// TaskStatusPending means the item is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusSkipped means the output file already existed
	TaskStatusSkipped TaskStatus = "Skipped"

	// TaskStatusDownloading means the download is in progress
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusCompleted means the task finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"

	// TaskStatusInterrupted means the run was aborted while the task was active
	TaskStatusInterrupted TaskStatus = "Interrupted"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusDownloading
}

// IsFinished returns true if the task reached a terminal state
func (ts TaskStatus) IsFinished() bool {
	switch ts {
	case TaskStatusSkipped, TaskStatusCompleted, TaskStatusError, TaskStatusInterrupted:
		return true
	}
	return false
}
