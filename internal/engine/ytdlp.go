package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/ytget/ytmp4/internal/model"
)

// yt-dlp info dict types
const (
	infoTypePlaylist = "playlist"
	infoTypeURL      = "url"
)

// YTDLPEngine drives the yt-dlp executable
type YTDLPEngine struct {
	opts Options
	log  *zap.Logger
}

// NewYTDLP configures a yt-dlp backed engine
func NewYTDLP(opts Options) (Engine, error) {
	return &YTDLPEngine{opts: opts, log: opts.logger().Named(NameYTDLP)}, nil
}

// InstallYTDLP downloads a yt-dlp release into the library cache when no
// usable binary is found
func InstallYTDLP(ctx context.Context) error {
	_, err := ytdlp.Install(ctx, nil)
	return err
}

// command returns a yt-dlp invocation with the shared flags applied
func (e *YTDLPEngine) command() *ytdlp.Command {
	cmd := ytdlp.New()
	if e.opts.Executable != "" {
		cmd = cmd.SetExecutable(e.opts.Executable)
	}
	if e.opts.Quiet {
		cmd = cmd.Quiet()
	}
	if e.opts.NoWarnings {
		cmd = cmd.NoWarnings()
	}
	if e.opts.Playlist {
		cmd = cmd.YesPlaylist()
	} else {
		cmd = cmd.NoPlaylist()
	}
	return cmd
}

// resolveCommand asks for the info dict only; -J never downloads
func (e *YTDLPEngine) resolveCommand() *ytdlp.Command {
	cmd := e.command().DumpSingleJSON()
	if e.opts.FlatPlaylist {
		cmd = cmd.FlatPlaylist()
	}
	return cmd
}

// downloadCommand applies the format and output template
func (e *YTDLPEngine) downloadCommand() *ytdlp.Command {
	return e.command().
		Format(e.opts.format()).
		Output(e.opts.OutputTemplate)
}

// Resolve runs yt-dlp with -J so nothing is downloaded
func (e *YTDLPEngine) Resolve(ctx context.Context, url string) (*model.Metadata, error) {
	res, err := e.resolveCommand().Run(ctx, url)
	if err != nil {
		return nil, wrap(NameYTDLP, "resolve", url, err)
	}

	meta, err := parseInfoJSON(res.Stdout, url)
	if err != nil {
		return nil, wrap(NameYTDLP, "resolve", url, err)
	}
	e.log.Debug("resolved",
		zap.String("url", url),
		zap.String("title", meta.Title),
		zap.Int("entries", len(meta.Entries)),
	)
	return meta, nil
}

// PredictFilename expands the output template the same way yt-dlp does
func (e *YTDLPEngine) PredictFilename(item model.Item) (string, error) {
	return predictFilename(e.opts, item), nil
}

// Download runs yt-dlp for one URL with the configured template
func (e *YTDLPEngine) Download(ctx context.Context, item model.Item) error {
	cmd := e.downloadCommand()

	tracker := newProgressTracker(e.opts.Progress, 0)
	if e.opts.Progress != nil {
		cmd = cmd.ProgressFunc(e.opts.progressInterval(), func(update ytdlp.ProgressUpdate) {
			switch string(update.Status) {
			case string(model.ProgressDownloading):
				tracker.update(int64(update.DownloadedBytes), int64(update.TotalBytes))
			case string(model.ProgressFinished):
				tracker.update(int64(update.DownloadedBytes), int64(update.TotalBytes))
				tracker.finish()
			}
		})
	}

	if _, err := cmd.Run(ctx, item.URL); err != nil {
		return wrap(NameYTDLP, "download", item.URL, err)
	}
	tracker.finish()
	return nil
}

// infoDict is the subset of the yt-dlp info JSON used here
type infoDict struct {
	Type        string      `json:"_type"`
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Ext         string      `json:"ext"`
	URL         string      `json:"url"`
	WebpageURL  string      `json:"webpage_url"`
	OriginalURL string      `json:"original_url"`
	Entries     []*infoDict `json:"entries"`
}

// parseInfoJSON converts yt-dlp -J output into Metadata
func parseInfoJSON(output, requestURL string) (*model.Metadata, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil, fmt.Errorf("empty metadata output")
	}

	var info infoDict
	if err := json.Unmarshal([]byte(output), &info); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}

	meta := &model.Metadata{
		ID:    info.ID,
		Title: info.Title,
		URL:   firstNonEmpty(info.WebpageURL, info.OriginalURL, requestURL),
	}

	if info.Type == infoTypePlaylist || len(info.Entries) > 0 {
		for _, entry := range info.Entries {
			if entry == nil {
				continue
			}
			meta.Entries = append(meta.Entries, model.Item{
				ID:    entry.ID,
				Title: entry.Title,
				Ext:   entry.Ext,
				URL:   firstNonEmpty(entry.URL, entry.WebpageURL, WatchURL(entry.ID)),
			})
		}
		return meta, nil
	}

	itemURL := meta.URL
	if info.Type == infoTypeURL && info.URL != "" {
		itemURL = info.URL
	}
	meta.Item = model.Item{
		ID:    info.ID,
		Title: info.Title,
		Ext:   info.Ext,
		URL:   itemURL,
	}
	return meta, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
