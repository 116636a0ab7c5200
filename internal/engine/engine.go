package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/ytmp4/internal/model"
)

// Engine names accepted by NewFactory
const (
	NameYTDLP   = "ytdlp"
	NameNative  = "native"
	NameYouTube = "youtube"
)

// Defaults for the fixed download policy
const (
	DefaultFormat           = "best"
	DefaultContainer        = "mp4"
	DefaultFilenameTemplate = "%(title)s.%(ext)s"
	DefaultProgressInterval = 250 * time.Millisecond
)

var (
	// ErrUnknownEngine is returned for an unsupported engine name
	ErrUnknownEngine = errors.New("unknown engine")
	// ErrNoFormat indicates no downloadable format matched the policy
	ErrNoFormat = errors.New("no suitable format found")
	// ErrEmptyPlaylist indicates a playlist URL that resolved to no entries
	ErrEmptyPlaylist = errors.New("playlist has no entries")
)

// Engine resolves and downloads media for a configured output template.
type Engine interface {
	// Resolve probes the URL without downloading anything.
	Resolve(ctx context.Context, url string) (*model.Metadata, error)
	// PredictFilename returns the path the item would be written to.
	PredictFilename(item model.Item) (string, error)
	// Download transfers item.URL, reporting progress through Options.Progress.
	Download(ctx context.Context, item model.Item) error
}

// Factory configures a new Engine handle.
type Factory func(opts Options) (Engine, error)

// Options is the engine configuration built once per orchestration call.
type Options struct {
	OutputTemplate   string
	Format           string
	Container        string
	Quiet            bool
	NoWarnings       bool
	Playlist         bool
	FlatPlaylist     bool
	Progress         model.ProgressFunc
	ProgressInterval time.Duration
	Executable       string        // yt-dlp binary; empty means PATH lookup
	HTTPTimeout      time.Duration // pure-Go engines only; zero means none
	Logger           *zap.Logger
}

// WithOutputTemplate returns a copy of the options targeting another template
func (o Options) WithOutputTemplate(template string) Options {
	o.OutputTemplate = template
	return o
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) container() string {
	if o.Container == "" {
		return DefaultContainer
	}
	return o.Container
}

func (o Options) format() string {
	if o.Format == "" {
		return DefaultFormat
	}
	return o.Format
}

func (o Options) progressInterval() time.Duration {
	if o.ProgressInterval <= 0 {
		return DefaultProgressInterval
	}
	return o.ProgressInterval
}

// Error wraps a failure reported by an engine operation.
type Error struct {
	Engine string
	Op     string
	URL    string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Engine, e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(engine, op, url string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Engine: engine, Op: op, URL: url, Err: err}
}

// Names lists the supported engine names
func Names() []string {
	return []string{NameYTDLP, NameNative, NameYouTube}
}

// NewFactory returns the constructor for the named engine
func NewFactory(name string) (Factory, error) {
	switch name {
	case NameYTDLP, "":
		return NewYTDLP, nil
	case NameNative:
		return NewNative, nil
	case NameYouTube:
		return NewYouTube, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}
