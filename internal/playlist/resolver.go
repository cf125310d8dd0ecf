package playlist

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tunecatcher/tunecatcher/internal/extractor"
	"github.com/tunecatcher/tunecatcher/internal/model"
)

// Timeout constants
const (
	DefaultResolveTimeout = 60 * time.Second
)

// Playlist URL markers
const (
	PlaylistParam       = "list="
	PlaylistPathSegment = "/playlist?"
)

// IsPlaylistURL reports whether a URL looks like a playlist by the marker
// substring heuristic. Detection is the caller's step before resolving.
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam) || strings.Contains(url, PlaylistPathSegment)
}

// Resolver fetches flat playlist listings through the extractor backend.
type Resolver struct {
	lister  extractor.PlaylistLister
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// NewResolver creates a playlist resolver
func NewResolver(lister extractor.PlaylistLister, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{
		lister:  lister,
		timeout: DefaultResolveTimeout,
		logger:  logger,
	}
}

// Resolve fetches up to limit entries for the playlist URL (limit 0 means
// unbounded). Entries without a resolvable per-item URL are skipped. A
// fetch failure is terminal: the caller gets the full bounded list or an
// error, never a partial result.
func (r *Resolver) Resolve(ctx context.Context, url string, limit int) ([]model.PlaylistEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	entries, err := r.lister.PlaylistEntries(ctx, url, limit)
	if err != nil {
		r.logger.Warnw("playlist fetch failed", "url", url, "error", err)
		return nil, err
	}

	usable := make([]model.PlaylistEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.URL == "" {
			continue
		}
		usable = append(usable, entry)
	}

	r.logger.Infow("playlist resolved", "url", url, "entries", len(usable))
	return usable, nil
}
