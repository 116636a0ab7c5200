package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/kkdai/youtube/v2"
	"go.uber.org/zap"

	"github.com/ytget/ytmp4/internal/model"
)

// YouTubeEngine extracts and downloads with github.com/kkdai/youtube
type YouTubeEngine struct {
	opts   Options
	client *youtube.Client
	log    *zap.Logger
}

// NewYouTube configures a kkdai/youtube backed engine
func NewYouTube(opts Options) (Engine, error) {
	client := &youtube.Client{}
	if opts.HTTPTimeout > 0 {
		client.HTTPClient = &http.Client{Timeout: opts.HTTPTimeout}
	}
	return &YouTubeEngine{opts: opts, client: client, log: opts.logger().Named(NameYouTube)}, nil
}

// Resolve fetches playlist or video metadata without downloading streams
func (e *YouTubeEngine) Resolve(ctx context.Context, url string) (*model.Metadata, error) {
	if IsPlaylistURL(url) && e.opts.Playlist {
		return e.resolvePlaylist(ctx, url)
	}

	video, err := e.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, wrap(NameYouTube, "resolve", url, err)
	}
	return &model.Metadata{
		ID:    video.ID,
		Title: video.Title,
		URL:   url,
		Item: model.Item{
			ID:    video.ID,
			Title: video.Title,
			Ext:   e.opts.container(),
			URL:   url,
		},
	}, nil
}

func (e *YouTubeEngine) resolvePlaylist(ctx context.Context, url string) (*model.Metadata, error) {
	playlist, err := e.client.GetPlaylistContext(ctx, url)
	if err != nil {
		return nil, wrap(NameYouTube, "resolve", url, fmt.Errorf("fetching playlist: %w", err))
	}

	meta := &model.Metadata{ID: playlist.ID, Title: playlist.Title, URL: url}
	titles := make([]string, 0, len(playlist.Videos))
	for _, entry := range playlist.Videos {
		if entry == nil || entry.ID == "" {
			continue
		}
		meta.Entries = append(meta.Entries, model.Item{
			ID:    entry.ID,
			Title: entry.Title,
			URL:   WatchURL(entry.ID),
		})
		titles = append(titles, entry.Title)
	}
	if len(meta.Entries) == 0 {
		return nil, wrap(NameYouTube, "resolve", url, ErrEmptyPlaylist)
	}
	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = PlaylistTitle(titles)
	}

	e.log.Debug("resolved playlist",
		zap.String("playlist_id", playlist.ID),
		zap.Int("entries", len(meta.Entries)),
	)
	return meta, nil
}

// PredictFilename expands the output template for the item
func (e *YouTubeEngine) PredictFilename(item model.Item) (string, error) {
	return predictFilename(e.opts, item), nil
}

// Download streams the best muxed format into the predicted path
func (e *YouTubeEngine) Download(ctx context.Context, item model.Item) (err error) {
	video, err := e.client.GetVideoContext(ctx, item.URL)
	if err != nil {
		return wrap(NameYouTube, "download", item.URL, err)
	}
	if strings.TrimSpace(item.Title) == "" {
		item.Title = video.Title
	}

	format, err := selectBestFormat(video.Formats, e.opts.container())
	if err != nil {
		return wrap(NameYouTube, "download", item.URL, err)
	}

	stream, size, err := e.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return wrap(NameYouTube, "download", item.URL, fmt.Errorf("starting stream: %w", err))
	}
	defer stream.Close()

	target := predictFilename(e.opts, item)
	partial := target + PartialSuffix
	file, err := os.Create(partial)
	if err != nil {
		return wrap(NameYouTube, "download", item.URL, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(partial)
		}
	}()

	tracker := newProgressTracker(e.opts.Progress, e.opts.progressInterval())
	writer := io.MultiWriter(file, &progressWriter{tracker: tracker, total: size})
	if _, err = copyWithContext(ctx, writer, stream); err != nil {
		file.Close()
		return wrap(NameYouTube, "download", item.URL, err)
	}
	if err = file.Close(); err != nil {
		return wrap(NameYouTube, "download", item.URL, err)
	}
	if err = os.Rename(partial, target); err != nil {
		return wrap(NameYouTube, "download", item.URL, err)
	}
	tracker.finish()
	return nil
}

// selectBestFormat picks the highest muxed format, preferring the container
func selectBestFormat(formats youtube.FormatList, container string) (*youtube.Format, error) {
	mime := "video/" + container
	var best, fallback *youtube.Format
	for i := range formats {
		f := &formats[i]
		if f.AudioChannels == 0 || f.Height == 0 {
			continue
		}
		if strings.HasPrefix(f.MimeType, mime) {
			if best == nil || betterFormat(f, best) {
				best = f
			}
		} else if fallback == nil || betterFormat(f, fallback) {
			fallback = f
		}
	}
	if best != nil {
		return best, nil
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, ErrNoFormat
}

func betterFormat(candidate, current *youtube.Format) bool {
	if candidate.Height != current.Height {
		return candidate.Height > current.Height
	}
	return candidate.Bitrate > current.Bitrate
}

// copyWithContext copies until EOF or until ctx is cancelled
func copyWithContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, readErr := src.Read(buf)
		if n > 0 {
			w, writeErr := dst.Write(buf[:n])
			written += int64(w)
			if writeErr != nil {
				return written, writeErr
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}
