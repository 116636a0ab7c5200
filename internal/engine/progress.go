package engine

import (
	"time"

	"github.com/ytget/ytmp4/internal/model"
)

// progressTracker turns raw byte counters into throttled progress events.
// Speed is measured between two emitted events; the finished event falls back
// to the session average when no instantaneous rate is known.
type progressTracker struct {
	fn       model.ProgressFunc
	interval time.Duration
	now      func() time.Time

	started   time.Time
	lastEmit  time.Time
	lastBytes int64
	done      int64
	total     int64
	speed     float64
	emitted   bool
	finished  bool
}

func newProgressTracker(fn model.ProgressFunc, interval time.Duration) *progressTracker {
	return &progressTracker{fn: fn, interval: interval, now: time.Now}
}

// update records the current counters and emits a downloading event when the
// interval elapsed or the transfer completed
func (t *progressTracker) update(done, total int64) {
	if t.fn == nil || t.finished {
		return
	}
	now := t.now()
	if t.started.IsZero() {
		t.started = now
		t.lastEmit = now
	}
	t.done = done
	if total > 0 {
		t.total = total
	}

	complete := t.total > 0 && done >= t.total
	elapsed := now.Sub(t.lastEmit)
	if t.emitted && elapsed < t.interval && !complete {
		return
	}
	if elapsed > 0 {
		t.speed = float64(done-t.lastBytes) / elapsed.Seconds()
	}
	t.lastEmit = now
	t.lastBytes = done
	t.emitted = true

	t.fn(model.ProgressEvent{
		Status:          model.ProgressDownloading,
		DownloadedBytes: done,
		TotalBytes:      t.total,
		Speed:           t.speed,
	})
}

// finish emits the finished event once
func (t *progressTracker) finish() {
	if t.fn == nil || t.finished {
		return
	}
	t.finished = true

	speed := t.speed
	if speed <= 0 && !t.started.IsZero() {
		if elapsed := t.now().Sub(t.started); elapsed > 0 {
			speed = float64(t.done) / elapsed.Seconds()
		}
	}
	t.fn(model.ProgressEvent{
		Status:          model.ProgressFinished,
		DownloadedBytes: t.done,
		TotalBytes:      t.total,
		Speed:           speed,
	})
}

// progressWriter feeds a tracker from an io.Copy destination
type progressWriter struct {
	tracker *progressTracker
	total   int64
	written int64
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	w.tracker.update(w.written, w.total)
	return len(p), nil
}
