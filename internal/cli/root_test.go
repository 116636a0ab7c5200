package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytmp4/internal/config"
	"github.com/ytget/ytmp4/internal/download"
	"github.com/ytget/ytmp4/internal/engine"
	"github.com/ytget/ytmp4/internal/model"
)

// stubEngine serves canned metadata and fails the URLs listed in fail
type stubEngine struct {
	opts       engine.Options
	meta       *model.Metadata
	resolveErr error
	fail       map[string]error
	onResolve  func()
	downloads  *[]string
}

func (e *stubEngine) Resolve(ctx context.Context, url string) (*model.Metadata, error) {
	if e.onResolve != nil {
		e.onResolve()
		return nil, ctx.Err()
	}
	if e.resolveErr != nil {
		return nil, e.resolveErr
	}
	return e.meta, nil
}

func (e *stubEngine) PredictFilename(item model.Item) (string, error) {
	return engine.ExpandTemplate(e.opts.OutputTemplate, map[string]string{"title": item.Title, "ext": item.Ext}), nil
}

func (e *stubEngine) Download(ctx context.Context, item model.Item) error {
	*e.downloads = append(*e.downloads, item.URL)
	if err := e.fail[item.URL]; err != nil {
		return err
	}
	e.opts.Progress(model.ProgressEvent{Status: model.ProgressDownloading, DownloadedBytes: 100, TotalBytes: 100})
	e.opts.Progress(model.ProgressEvent{Status: model.ProgressFinished, DownloadedBytes: 100, TotalBytes: 100, Speed: 1048576})
	return nil
}

type harness struct {
	app       *App
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	downloads []string
	stub      stubEngine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv(config.EnvConfigFile, "")
	color.NoColor = true

	h := &harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	h.stub.downloads = &h.downloads
	h.app = &App{
		Version: "1.2.3",
		Stdout:  h.stdout,
		Stderr:  h.stderr,
		FS:      afero.NewMemMapFs(),
		Factory: func(opts engine.Options) (engine.Engine, error) {
			e := h.stub
			e.opts = opts
			return &e, nil
		},
	}
	return h
}

func singleMeta() *model.Metadata {
	return &model.Metadata{Item: model.Item{ID: "abc", Title: "Clip", Ext: "mp4", URL: engine.WatchURL("abc")}}
}

func TestRunUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "too many arguments", args: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			code := h.app.Run(context.Background(), tt.args)

			assert.Equal(t, ExitUsage, code)
			assert.Equal(t, "Usage: ytmp4 <URL> [output_directory]\n", h.stdout.String())
			assert.Empty(t, h.downloads)
		})
	}
}

func TestRunVersion(t *testing.T) {
	h := newHarness(t)

	code := h.app.Run(context.Background(), []string{"--version"})

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, h.stdout.String(), "1.2.3")
}

func TestRunSingle(t *testing.T) {
	h := newHarness(t)
	h.stub.meta = singleMeta()

	code := h.app.Run(context.Background(), []string{"https://youtu.be/abc", "out"})

	assert.Equal(t, ExitOK, code)
	assert.Equal(t, []string{"https://youtu.be/abc"}, h.downloads)
	output := h.stdout.String()
	assert.Contains(t, output, "Starting download for URL: https://youtu.be/abc\nOutput directory: out\n")
	assert.Contains(t, output, "Starting download for: "+filepath.Join("out", "Clip.mp4")+"\n")
	assert.Contains(t, output, "Download finished: 0.00 MB at 8.00 Mbps\n")
}

func TestRunDefaultOutputDirectory(t *testing.T) {
	h := newHarness(t)
	h.stub.meta = singleMeta()

	code := h.app.Run(context.Background(), []string{"https://youtu.be/abc"})

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, h.stdout.String(), "Output directory: .\n")
}

func TestRunResolveFailure(t *testing.T) {
	h := newHarness(t)
	h.stub.resolveErr = errors.New("Unsupported URL: not-a-url")

	code := h.app.Run(context.Background(), []string{"not-a-url"})

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, h.stdout.String(), "An error occurred: Unsupported URL: not-a-url\n")
	assert.NotContains(t, h.stdout.String(), "interrupted")
}

func TestRunInterrupt(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.stub.onResolve = cancel

	code := h.app.Run(ctx, []string{"https://youtu.be/abc"})

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, h.stdout.String(), "\nDownload interrupted by user. \n")
	assert.NotContains(t, h.stdout.String(), "An error occurred")
}

func TestRunStrictExitCodes(t *testing.T) {
	t.Run("whole run failure", func(t *testing.T) {
		h := newHarness(t)
		t.Setenv("YTMP4_EXIT_STRICT", "true")
		h.stub.resolveErr = errors.New("boom")

		assert.Equal(t, ExitRunFailed, h.app.Run(context.Background(), []string{"u"}))
	})

	t.Run("item failure", func(t *testing.T) {
		h := newHarness(t)
		t.Setenv("YTMP4_EXIT_STRICT", "true")
		h.stub.meta = &model.Metadata{
			Title: "Mix",
			Entries: []model.Item{
				{ID: "a", Title: "A", URL: engine.WatchURL("a")},
				{ID: "b", Title: "B", URL: engine.WatchURL("b")},
			},
		}
		h.stub.fail = map[string]error{engine.WatchURL("a"): errors.New("HTTP Error 403")}

		code := h.app.Run(context.Background(), []string{"https://www.youtube.com/playlist?list=PL1", "out"})

		assert.Equal(t, ExitItemsFailed, code)
		assert.Len(t, h.downloads, 2, "the batch continues after a failed item")
		assert.Contains(t, h.stdout.String(), "An error occurred while downloading "+filepath.Join("out", "Mix", "A.mp4")+": HTTP Error 403\n")
	})

	t.Run("interrupt", func(t *testing.T) {
		h := newHarness(t)
		t.Setenv("YTMP4_EXIT_STRICT", "true")
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		h.stub.onResolve = cancel

		assert.Equal(t, ExitOK, h.app.Run(ctx, []string{"u"}))
	})
}

func TestRunInvalidConfig(t *testing.T) {
	h := newHarness(t)
	t.Setenv("YTMP4_ENGINE_NAME", "ffmpeg")

	code := h.app.Run(context.Background(), []string{"https://youtu.be/abc"})

	assert.Equal(t, ExitConfig, code)
	assert.Contains(t, h.stderr.String(), config.KeyEngineName)
	assert.NotContains(t, h.stdout.String(), "Usage:")
	assert.Empty(t, h.downloads)
}

func TestRunUsageBeforeConfig(t *testing.T) {
	h := newHarness(t)
	t.Setenv("YTMP4_ENGINE_NAME", "ffmpeg")

	code := h.app.Run(context.Background(), []string{"a", "b", "c"})

	assert.Equal(t, ExitUsage, code)
	assert.Equal(t, "Usage: ytmp4 <URL> [output_directory]\n", h.stdout.String())
	assert.Empty(t, h.stderr.String())
}

func TestRunLocalized(t *testing.T) {
	h := newHarness(t)
	t.Setenv("YTMP4_UI_LANGUAGE", "pt")
	h.stub.resolveErr = errors.New("boom")

	h.app.Run(context.Background(), []string{"u"})

	require.Contains(t, h.stdout.String(), "Iniciando download da URL: u\n")
	assert.Contains(t, h.stdout.String(), "Ocorreu um erro: boom\n")
}

func TestExitCode(t *testing.T) {
	failed := &model.RunSummary{Failures: errors.New("item")}
	interrupted := fmt.Errorf("%w: %w", download.ErrInterrupted, context.Canceled)

	tests := []struct {
		name     string
		strict   bool
		summary  *model.RunSummary
		err      error
		expected int
	}{
		{name: "success", expected: ExitOK},
		{name: "lenient failure", err: errors.New("boom"), expected: ExitOK},
		{name: "lenient item failure", summary: failed, expected: ExitOK},
		{name: "strict failure", strict: true, err: errors.New("boom"), expected: ExitRunFailed},
		{name: "strict item failure", strict: true, summary: failed, expected: ExitItemsFailed},
		{name: "strict success", strict: true, summary: &model.RunSummary{}, expected: ExitOK},
		{name: "lenient interrupt", err: interrupted, expected: ExitOK},
		{name: "strict interrupt", strict: true, err: interrupted, expected: ExitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exitCode(tt.strict, tt.summary, tt.err))
		})
	}
}
