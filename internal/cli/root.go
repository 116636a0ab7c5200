package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/ytmp4/internal/config"
	"github.com/ytget/ytmp4/internal/download"
	"github.com/ytget/ytmp4/internal/engine"
	"github.com/ytget/ytmp4/internal/logger"
	"github.com/ytget/ytmp4/internal/model"
	"github.com/ytget/ytmp4/internal/platform"
	"github.com/ytget/ytmp4/internal/ui"
)

// Exit codes
const (
	ExitOK          = 0
	ExitUsage       = 1
	ExitConfig      = 1
	ExitRunFailed   = 1 // strict mode only
	ExitItemsFailed = 2 // strict mode only
)

// AppName is the command name shown in usage and version output
const AppName = "ytmp4"

var (
	errUsage  = errors.New("usage")
	errConfig = errors.New("invalid configuration")
)

// App holds the process-level dependencies of a run
type App struct {
	Version string
	Stdout  io.Writer // nil means os.Stdout with color detection
	Stderr  io.Writer
	FS      afero.Fs
	Factory engine.Factory // nil means the configured engine
}

// Execute runs the command line with os.Args and returns the exit code
func Execute(version string) int {
	app := &App{Version: version, Stderr: os.Stderr, FS: platform.NewFS()}
	return app.Run(context.Background(), os.Args[1:])
}

// Run parses args and performs one download run. Arguments are checked
// before the settings are loaded.
func (a *App) Run(ctx context.Context, args []string) int {
	if a.Stderr == nil {
		a.Stderr = io.Discard
	}
	if a.FS == nil {
		a.FS = platform.NewFS()
	}

	var (
		settings *config.Settings
		out      io.Writer
		printer  *ui.Printer
	)
	loc := ui.NewLocalization()

	code := ExitOK
	cmd := &cobra.Command{
		Use:     AppName + " <URL> [output_directory]",
		Short:   "Download a video or a playlist as mp4 with a progress bar",
		Version: a.Version,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
				return fmt.Errorf("%w: %w", errUsage, err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			settings, err = config.Load(a.FS)
			if err != nil {
				return fmt.Errorf("%w: %w", errConfig, err)
			}
			out = a.output(settings.UI.Color)
			loc.SetLanguage(settings.UI.Language)
			printer = ui.NewPrinter(out, loc)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir := model.DefaultOutputDir
			if len(args) == 2 {
				outputDir = args[1]
			}
			req := model.NewDownloadRequest(args[0], outputDir)
			code = a.download(cmd.Context(), settings, out, loc, printer, req)
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout())
	cmd.SetErr(a.Stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errConfig) {
			fmt.Fprintf(a.Stderr, "%s: %v\n", AppName, err)
			return ExitConfig
		}
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(a.Stderr, "%s: %v\n", AppName, err)
		}
		if printer == nil {
			printer = ui.NewPrinter(a.output(ui.ColorAuto), loc)
		}
		printer.Usage()
		return ExitUsage
	}
	return code
}

// stdout returns the configured stdout without color handling
func (a *App) stdout() io.Writer {
	if a.Stdout != nil {
		return a.Stdout
	}
	return os.Stdout
}

// output returns the console writer for the color mode
func (a *App) output(colorMode string) io.Writer {
	if a.Stdout != nil {
		return a.Stdout
	}
	return ui.Init(colorMode, os.Stdout)
}

func (a *App) download(ctx context.Context, settings *config.Settings, out io.Writer, loc *ui.Localization, printer *ui.Printer, req model.DownloadRequest) int {
	log, err := logger.New(settings.Logging.Level, settings.Logging.Format)
	if err != nil {
		fmt.Fprintf(a.Stderr, "%s: %v\n", AppName, err)
		return ExitConfig
	}
	defer log.Sync()
	defer logger.RedirectStdLog(log)()

	log.Debug("settings loaded",
		zap.String("file", settings.ConfigFile),
		zap.String("engine", settings.Engine.Name),
		zap.String("language", loc.GetCurrentLanguage()),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer.Starting(req.URL)
	printer.OutputDirectory(req.OutputDir)

	factory := a.Factory
	if factory == nil {
		factory, err = engine.NewFactory(settings.Engine.Name)
		if err != nil {
			printer.Error(err)
			return exitCode(settings.Exit.Strict, nil, err)
		}
		if settings.Engine.AutoInstall && settings.Engine.Name == engine.NameYTDLP {
			if err := engine.InstallYTDLP(ctx); err != nil {
				log.Warn("yt-dlp install failed", zap.Error(err))
			}
		}
	}

	reporter := ui.NewProgressReporter(out, loc)
	svc := download.NewService(download.Config{
		Factory:          factory,
		Engine:           settings.EngineOptions(),
		FilenameTemplate: settings.Engine.FilenameTemplate,
		FS:               a.FS,
		Printer:          printer,
		Progress:         reporter.Handle,
		Logger:           log,
	})
	svc.SetUpdateCallback(func(task *model.DownloadTask) {
		fields := []zap.Field{
			zap.String("task_id", task.ID),
			zap.Int("index", task.Index),
			zap.String("title", task.GetDisplayTitle()),
			zap.Stringer("status", task.Status),
		}
		if task.Status.IsFinished() {
			fields = append(fields, zap.Duration("elapsed", task.Elapsed()))
		}
		log.Debug("task updated", fields...)
	})

	summary, err := svc.DownloadTarget(ctx, req)
	switch {
	case errors.Is(err, download.ErrInterrupted):
		printer.Interrupted()
	case err != nil:
		printer.Error(err)
	}
	return exitCode(settings.Exit.Strict, summary, err)
}

// exitCode maps a run outcome to the process exit code. Without strict mode
// every handled outcome exits 0; interrupts always do.
func exitCode(strict bool, summary *model.RunSummary, err error) int {
	switch {
	case errors.Is(err, download.ErrInterrupted):
		return ExitOK
	case !strict:
		return ExitOK
	case err != nil:
		return ExitRunFailed
	case summary != nil && summary.HasFailures():
		return ExitItemsFailed
	}
	return ExitOK
}
