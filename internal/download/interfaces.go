package download

import (
	"context"

	"github.com/ytget/ytmp4/internal/model"
)

// Printer renders the user-facing messages of a run.
type Printer interface {
	PlaylistPreparing(title string)
	DirectoryCreated(dir string)
	FileExists(path string)
	ItemStarting(index int, path string)
	SingleStarting(path string)
	ItemFailed(path string, err error)
}

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))

	// DownloadTarget downloads a single video or every missing playlist entry
	DownloadTarget(ctx context.Context, req model.DownloadRequest) (*model.RunSummary, error)
}

var _ Downloader = (*Service)(nil)
