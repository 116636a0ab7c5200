package engine

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	ytget "github.com/ytget/ytdlp/v2"
	"go.uber.org/zap"

	"github.com/ytget/ytmp4/internal/model"
)

// PartialSuffix marks files that are still being written
const PartialSuffix = ".part"

// NativeEngine extracts and downloads with the pure-Go ytget/ytdlp library
type NativeEngine struct {
	opts       Options
	httpClient *http.Client
	log        *zap.Logger
}

// NewNative configures a ytget/ytdlp backed engine
func NewNative(opts Options) (Engine, error) {
	e := &NativeEngine{opts: opts, log: opts.logger().Named(NameNative)}
	if opts.HTTPTimeout > 0 {
		e.httpClient = &http.Client{Timeout: opts.HTTPTimeout}
	}
	return e, nil
}

// downloader returns a library handle with the format policy applied
func (e *NativeEngine) downloader() *ytget.Downloader {
	d := ytget.New().WithFormat(e.opts.format(), e.opts.container())
	if e.httpClient != nil {
		d = d.WithHTTPClient(e.httpClient)
	}
	return d
}

// Resolve enumerates playlist entries for list URLs and resolves single videos otherwise
func (e *NativeEngine) Resolve(ctx context.Context, url string) (*model.Metadata, error) {
	if playlistID := ExtractPlaylistID(url); playlistID != "" && e.opts.Playlist {
		return e.resolvePlaylist(ctx, url, playlistID)
	}

	_, info, err := e.downloader().ResolveURL(ctx, url)
	if err != nil {
		return nil, wrap(NameNative, "resolve", url, err)
	}
	return &model.Metadata{
		ID:    info.ID,
		Title: info.Title,
		URL:   url,
		Item: model.Item{
			ID:    info.ID,
			Title: info.Title,
			Ext:   e.opts.container(),
			URL:   url,
		},
	}, nil
}

func (e *NativeEngine) resolvePlaylist(ctx context.Context, url, playlistID string) (*model.Metadata, error) {
	items, err := e.downloader().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, wrap(NameNative, "resolve", url, fmt.Errorf("failed to get playlist items: %w", err))
	}
	if len(items) == 0 {
		return nil, wrap(NameNative, "resolve", url, ErrEmptyPlaylist)
	}

	meta := &model.Metadata{ID: playlistID, URL: url}
	titles := make([]string, 0, len(items))
	for _, it := range items {
		meta.Entries = append(meta.Entries, model.Item{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   WatchURL(it.VideoID),
		})
		titles = append(titles, it.Title)
	}
	meta.Title = PlaylistTitle(titles)

	e.log.Debug("resolved playlist",
		zap.String("playlist_id", playlistID),
		zap.Int("entries", len(meta.Entries)),
	)
	return meta, nil
}

// PredictFilename expands the output template for the item
func (e *NativeEngine) PredictFilename(item model.Item) (string, error) {
	return predictFilename(e.opts, item), nil
}

// Download writes the item to its predicted path via a .part file
func (e *NativeEngine) Download(ctx context.Context, item model.Item) error {
	if strings.TrimSpace(item.Title) == "" {
		_, info, err := e.downloader().ResolveURL(ctx, item.URL)
		if err != nil {
			return wrap(NameNative, "download", item.URL, err)
		}
		item.Title = info.Title
	}

	target := predictFilename(e.opts, item)
	partial := target + PartialSuffix

	tracker := newProgressTracker(e.opts.Progress, e.opts.progressInterval())
	d := e.downloader().
		WithOutputPath(partial).
		WithProgress(func(p ytget.Progress) {
			tracker.update(p.DownloadedSize, p.TotalSize)
		})

	if _, err := d.Download(ctx, item.URL); err != nil {
		_ = os.Remove(partial)
		return wrap(NameNative, "download", item.URL, err)
	}
	if err := os.Rename(partial, target); err != nil {
		return wrap(NameNative, "download", item.URL, err)
	}
	tracker.finish()
	return nil
}
