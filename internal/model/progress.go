package model

// ProgressStatus is the lifecycle stage carried by a progress event
type ProgressStatus string

const (
	ProgressDownloading ProgressStatus = "downloading"
	ProgressFinished    ProgressStatus = "finished"
)

// ProgressEvent is a transient transfer update produced by the engine
type ProgressEvent struct {
	Status          ProgressStatus
	DownloadedBytes int64
	TotalBytes      int64   // 0 when unknown
	Speed           float64 // bytes per second, 0 when unknown
}

// ProgressFunc consumes progress events synchronously
type ProgressFunc func(ProgressEvent)

// HasTotal reports whether the total size is known
func (e ProgressEvent) HasTotal() bool {
	return e.TotalBytes > 0
}

// Fraction returns downloaded/total, clamped to [0, 1]; 0 when total is unknown
func (e ProgressEvent) Fraction() float64 {
	if !e.HasTotal() || e.DownloadedBytes <= 0 {
		return 0
	}
	f := float64(e.DownloadedBytes) / float64(e.TotalBytes)
	if f > 1 {
		return 1
	}
	return f
}
