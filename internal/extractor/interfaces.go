package extractor

import (
	"context"

	"github.com/tunecatcher/tunecatcher/internal/model"
)

// Config describes one extraction+download operation.
type Config struct {
	// OutputTemplate is the full output path template including directory
	// and the %(ext)s suffix.
	OutputTemplate string

	// FormatSelector is the declarative stream selection expression.
	FormatSelector string

	// AudioCodec, when non-empty, requests an extract-audio postprocessing
	// step transcoding to the given codec.
	AudioCodec string

	// MergeContainer, when non-empty, requests muxing into the given
	// container.
	MergeContainer string

	// CookieBrowser names the browser to read login cookies from; empty or
	// "none" disables cookies.
	CookieBrowser string

	// OnProgress receives raw progress samples during the operation. May
	// be nil.
	OnProgress func(model.ProgressSample)
}

// Result carries the resolved source metadata returned by a successful
// download: the content title and the backend's predicted output filename
// (before any transcode changes its extension).
type Result struct {
	Title    string
	Filename string
}

// MetadataResolver resolves lightweight metadata for a URL without
// downloading any media content.
type MetadataResolver interface {
	Metadata(ctx context.Context, url string) (*model.VideoMetadata, error)
}

// Downloader performs the full fetch+transcode operation.
type Downloader interface {
	Download(ctx context.Context, url string, cfg Config) (*Result, error)
}

// PlaylistLister fetches a flat playlist listing bounded by limit
// (0 means unbounded).
type PlaylistLister interface {
	PlaylistEntries(ctx context.Context, url string, limit int) ([]model.PlaylistEntry, error)
}
