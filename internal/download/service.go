package download

import (
	"context"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ytget/ytmp4/internal/engine"
	"github.com/ytget/ytmp4/internal/model"
	"github.com/ytget/ytmp4/internal/platform"
)

// Config wires the service to its collaborators
type Config struct {
	Factory          engine.Factory
	Engine           engine.Options // base options; template and progress are set per run
	FilenameTemplate string
	FS               afero.Fs
	Printer          Printer
	Progress         model.ProgressFunc
	Logger           *zap.Logger
}

// Service handles download operations
type Service struct {
	factory          engine.Factory
	base             engine.Options
	filenameTemplate string
	fs               afero.Fs
	printer          Printer
	progress         model.ProgressFunc
	log              *zap.Logger
	onUpdate         func(*model.DownloadTask) // callback for task transitions

	current *model.DownloadTask // task receiving progress events
}

// NewService creates a new download service
func NewService(cfg Config) *Service {
	s := &Service{
		factory:          cfg.Factory,
		base:             cfg.Engine,
		filenameTemplate: cfg.FilenameTemplate,
		fs:               cfg.FS,
		printer:          cfg.Printer,
		progress:         cfg.Progress,
		log:              cfg.Logger,
	}
	if s.factory == nil {
		s.factory = engine.NewYTDLP
	}
	if s.filenameTemplate == "" {
		s.filenameTemplate = engine.DefaultFilenameTemplate
	}
	if s.fs == nil {
		s.fs = platform.NewFS()
	}
	if s.printer == nil {
		s.printer = nopPrinter{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.onUpdate = callback
}

// DownloadTarget resolves req.URL and downloads whatever is not present yet.
// Per-item playlist failures are printed, collected in the summary and do not
// stop the batch; any other failure ends the run and is returned.
func (s *Service) DownloadTarget(ctx context.Context, req model.DownloadRequest) (*model.RunSummary, error) {
	summary := &model.RunSummary{RunID: uuid.NewString(), Request: req}
	log := s.log.With(zap.String("run_id", summary.RunID))

	opts := s.base
	opts.OutputTemplate = engine.BuildOutputTemplate(req.OutputDir, s.filenameTemplate)
	opts.Quiet = true
	opts.NoWarnings = true
	opts.Playlist = true
	opts.FlatPlaylist = true
	opts.Progress = s.handleProgress
	opts.Logger = log

	eng, err := s.factory(opts)
	if err != nil {
		return summary, err
	}

	log.Debug("resolving metadata", zap.String("url", req.URL))
	meta, err := eng.Resolve(ctx, req.URL)
	if err != nil {
		return summary, s.checkInterrupt(ctx, err)
	}

	if meta.IsCollection() {
		err = s.downloadPlaylist(ctx, log, opts, meta, summary)
	} else {
		err = s.downloadSingle(ctx, log, eng, req, meta, summary)
	}
	s.logSummary(log, summary)
	return summary, err
}

func (s *Service) downloadPlaylist(ctx context.Context, log *zap.Logger, opts engine.Options, meta *model.Metadata, summary *model.RunSummary) error {
	s.printer.PlaylistPreparing(meta.Title)

	dir := filepath.Join(summary.Request.OutputDir, engine.SanitizeFilename(meta.Title))
	created, err := platform.CreateDirectoryIfNotExists(s.fs, dir)
	if err != nil {
		return err
	}
	if created {
		log.Info("created playlist directory", zap.String("dir", dir))
		s.printer.DirectoryCreated(dir)
	}

	playlist := model.NewPlaylist(meta, dir)
	summary.Playlist = playlist

	eng, err := s.factory(opts.WithOutputTemplate(engine.BuildOutputTemplate(dir, s.filenameTemplate)))
	if err != nil {
		return err
	}

	container := opts.Container
	if container == "" {
		container = engine.DefaultContainer
	}

	type pendingItem struct {
		task *model.DownloadTask
		item model.Item
	}
	var pending []pendingItem
	for i, entry := range meta.Entries {
		item := entry.WithExt(container)
		predicted, err := eng.PredictFilename(item)
		if err != nil {
			return err
		}

		task := model.NewDownloadTask(i+1, item, filepath.Join(dir, filepath.Base(predicted)))
		playlist.AddTask(task)
		summary.Tasks = append(summary.Tasks, task)

		if platform.PathExists(s.fs, task.OutputPath) {
			s.printer.FileExists(task.OutputPath)
			task.Skip()
			s.notifyUpdate(task)
			continue
		}
		pending = append(pending, pendingItem{task: task, item: item})
	}

	log.Info("playlist resolved",
		zap.String("title", meta.Title),
		zap.Int("entries", playlist.TotalItems()),
		zap.Int("pending", len(pending)),
	)

	for _, p := range pending {
		task := p.task
		if err := ctx.Err(); err != nil {
			s.interruptRemaining(playlist.GetPendingTasks())
			return interrupted(err)
		}

		s.printer.ItemStarting(task.Index, task.OutputPath)
		if err := s.runTask(ctx, eng, task, p.item); err != nil {
			if ctx.Err() != nil {
				s.interruptRemaining(playlist.GetPendingTasks())
				return interrupted(ctx.Err())
			}
			s.printer.ItemFailed(task.OutputPath, err)
			summary.Failures = multierr.Append(summary.Failures, &ItemError{Index: task.Index, Path: task.OutputPath, Err: err})
		}
		playlist.Touch()
	}
	return nil
}

func (s *Service) downloadSingle(ctx context.Context, log *zap.Logger, eng engine.Engine, req model.DownloadRequest, meta *model.Metadata, summary *model.RunSummary) error {
	predicted, err := eng.PredictFilename(meta.Item)
	if err != nil {
		return err
	}
	path := filepath.Join(req.OutputDir, filepath.Base(predicted))

	task := model.NewDownloadTask(0, meta.Item, path)
	summary.Tasks = append(summary.Tasks, task)

	if platform.PathExists(s.fs, path) {
		s.printer.FileExists(path)
		task.Skip()
		s.notifyUpdate(task)
		return nil
	}

	s.printer.SingleStarting(path)
	item := meta.Item
	item.URL = req.URL
	if err := s.runTask(ctx, eng, task, item); err != nil {
		log.Debug("download failed", zap.String("path", path), zap.Error(err))
		return s.checkInterrupt(ctx, err)
	}
	return nil
}

// runTask downloads one item and records the task transitions
func (s *Service) runTask(ctx context.Context, eng engine.Engine, task *model.DownloadTask, item model.Item) error {
	task.Start()
	s.current = task
	s.notifyUpdate(task)
	defer func() { s.current = nil }()

	if err := eng.Download(ctx, item); err != nil {
		if ctx.Err() != nil {
			task.Interrupt()
		} else {
			task.Fail(err)
		}
		s.notifyUpdate(task)
		return err
	}

	task.Complete()
	s.notifyUpdate(task)
	return nil
}

// handleProgress records counters on the running task and forwards the event
func (s *Service) handleProgress(ev model.ProgressEvent) {
	if s.current != nil && s.current.Status.IsActive() {
		s.current.ApplyProgress(ev)
	}
	if s.progress != nil {
		s.progress(ev)
	}
}

func (s *Service) checkInterrupt(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return interrupted(ctxErr)
	}
	return err
}

func (s *Service) interruptRemaining(tasks []*model.DownloadTask) {
	for _, task := range tasks {
		task.Interrupt()
		s.notifyUpdate(task)
	}
}

func (s *Service) logSummary(log *zap.Logger, summary *model.RunSummary) {
	fields := []zap.Field{
		zap.Int("downloaded", summary.Count(model.TaskStatusCompleted)),
		zap.Int("skipped", summary.Count(model.TaskStatusSkipped)),
		zap.Int("failed", summary.Count(model.TaskStatusError)),
		zap.String("size", humanize.IBytes(uint64(summary.DownloadedBytes()))),
		zap.Errors("failures", multierr.Errors(summary.Failures)),
	}
	if p := summary.Playlist; p != nil {
		fields = append(fields,
			zap.Float64("playlist_progress", p.GetDownloadProgress()),
			zap.Bool("playlist_errors", p.HasErrors()),
		)
	}
	log.Debug("run finished", fields...)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

type nopPrinter struct{}

func (nopPrinter) PlaylistPreparing(string) {}
func (nopPrinter) DirectoryCreated(string) {}
func (nopPrinter) FileExists(string) {}
func (nopPrinter) ItemStarting(int, string) {}
func (nopPrinter) SingleStarting(string) {}
func (nopPrinter) ItemFailed(string, error) {}
