package model

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateTaskID(t *testing.T) {
	id1 := GenerateTaskID()
	id2 := GenerateTaskID()

	if id1 == id2 {
		t.Error("Expected different task IDs")
	}

	if !strings.HasPrefix(id1, TaskIDPrefix) {
		t.Errorf("Expected ID to start with '%s', got: %s", TaskIDPrefix, id1)
	}

	// task- + 36 chars for UUID
	if len(id1) != len(TaskIDPrefix)+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len(TaskIDPrefix)+36, len(id1), id1)
	}
}

func TestNewDownloadTask(t *testing.T) {
	item := Item{ID: "abc", Title: "Clip", URL: "https://www.youtube.com/watch?v=abc"}
	task := NewDownloadTask(3, item, "/tmp/out/Clip.mp4")

	if task.Status != TaskStatusPending {
		t.Errorf("Expected status Pending, got %s", task.Status)
	}
	if task.Index != 3 {
		t.Errorf("Expected index 3, got %d", task.Index)
	}
	if task.URL != item.URL {
		t.Errorf("Expected URL %s, got %s", item.URL, task.URL)
	}
	if task.OutputPath != "/tmp/out/Clip.mp4" {
		t.Errorf("Expected output path to be kept, got %s", task.OutputPath)
	}
}

func TestDownloadTask_Transitions(t *testing.T) {
	task := NewDownloadTask(1, Item{URL: "u"}, "p")

	task.Start()
	if task.Status != TaskStatusDownloading || task.StartedAt.IsZero() {
		t.Fatalf("Start() did not mark task active: %+v", task)
	}

	task.ApplyProgress(ProgressEvent{Status: ProgressDownloading, DownloadedBytes: 10, TotalBytes: 20})
	task.ApplyProgress(ProgressEvent{Status: ProgressFinished, DownloadedBytes: 20})
	if task.DownloadedBytes != 20 || task.TotalBytes != 20 {
		t.Errorf("Expected 20/20 bytes, got %d/%d", task.DownloadedBytes, task.TotalBytes)
	}

	task.Fail(errors.New("boom"))
	if task.Status != TaskStatusError {
		t.Errorf("Expected status Error, got %s", task.Status)
	}
	if task.LastError != "boom" {
		t.Errorf("Expected LastError 'boom', got '%s'", task.LastError)
	}
	if task.Elapsed() < 0 {
		t.Errorf("Elapsed should not be negative")
	}
}

func TestDownloadTask_ElapsedNotStarted(t *testing.T) {
	task := NewDownloadTask(0, Item{}, "")
	task.Skip()
	if task.Elapsed() != 0 {
		t.Errorf("Expected zero elapsed for a skipped task, got %v", task.Elapsed())
	}
}

func TestDownloadTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		title    string
		path     string
		url      string
		expected string
	}{
		{"Video Title", "", "https://youtube.com/watch?v=123", "Video Title"},
		{"", "/out/Some Clip.mp4", "https://youtube.com/watch?v=123", "Some Clip"},
		{"https://youtube.com/watch?v=1", "", "https://youtube.com/watch?v=1", "https://youtube.com/watch?v=1"},
		{"", "", "https://youtube.com/watch?v=456", "https://youtube.com/watch?v=456"},
	}

	for _, test := range tests {
		task := &DownloadTask{Title: test.title, OutputPath: test.path, URL: test.url}
		result := task.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with title='%s', path='%s' = '%s', expected '%s'",
				test.title, test.path, result, test.expected)
		}
	}
}
