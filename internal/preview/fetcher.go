package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tunecatcher/tunecatcher/internal/extractor"
)

// Timeout constants
const (
	ThumbnailFetchTimeout = 10 * time.Second
	MaxThumbnailBytes     = 8 << 20
)

// StateKind tags a preview state transition
type StateKind int

const (
	// StateLoading means a fetch has started for the most recent request
	StateLoading StateKind = iota

	// StateResolved carries metadata (and thumbnail bytes when available)
	StateResolved

	// StateFailed means metadata resolution failed for the most recent request
	StateFailed
)

// Result is the resolved preview payload. Thumbnail is nil when the
// thumbnail fetch failed or the source has none; that is not an error.
type Result struct {
	Title        string
	Uploader     string
	ThumbnailURL string
	Thumbnail    []byte
}

// State is one emission of the preview stream
type State struct {
	Kind   StateKind
	Result *Result
}

// Fetcher resolves URLs to preview data with single-flight semantics: a
// new request cancels the one in flight, and a superseded fetch never
// emits anything, not even a failure.
type Fetcher struct {
	resolver extractor.MetadataResolver
	client   *http.Client
	notify   func(State)
	logger   *zap.SugaredLogger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewFetcher creates a preview fetcher. notify is invoked for every state
// transition of the current request; callers hand the state off to their
// UI thread themselves.
func NewFetcher(resolver extractor.MetadataResolver, notify func(State), logger *zap.SugaredLogger) *Fetcher {
	return &Fetcher{
		resolver: resolver,
		client:   &http.Client{Timeout: ThumbnailFetchTimeout},
		notify:   notify,
		logger:   logger,
	}
}

// Request starts a preview fetch for the given URL, superseding any
// outstanding one. A URL without an http/https scheme starts nothing and
// emits nothing.
func (f *Fetcher) Request(rawURL string) {
	if !isFetchableURL(rawURL) {
		return
	}

	f.mu.Lock()
	if f.cancel != nil {
		// Signal cancellation, do not wait for the old fetch to unwind
		f.cancel()
	}
	f.gen++
	gen := f.gen
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	f.mu.Unlock()

	f.emit(gen, State{Kind: StateLoading})

	go f.run(ctx, gen, rawURL)
}

// Cancel aborts any outstanding fetch. Used at shutdown; the dropped
// fetch emits nothing.
func (f *Fetcher) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.gen++
}

func (f *Fetcher) run(ctx context.Context, gen uint64, rawURL string) {
	meta, err := f.resolver.Metadata(ctx, rawURL)

	// Checkpoint: superseded fetches drop their result silently
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		f.logger.Debugw("preview metadata failed", "url", rawURL, "error", err)
		f.emit(gen, State{Kind: StateFailed})
		return
	}

	result := &Result{
		Title:        meta.Title,
		Uploader:     meta.Uploader,
		ThumbnailURL: meta.ThumbnailURL,
	}

	if meta.ThumbnailURL != "" {
		// Thumbnail failure is non-fatal: metadata still resolves
		if thumb, err := f.fetchThumbnail(ctx, meta.ThumbnailURL); err == nil {
			result.Thumbnail = thumb
		} else {
			f.logger.Debugw("thumbnail fetch failed", "url", meta.ThumbnailURL, "error", err)
		}
	}

	if ctx.Err() != nil {
		return
	}
	f.emit(gen, State{Kind: StateResolved, Result: result})
}

func (f *Fetcher) fetchThumbnail(ctx context.Context, thumbnailURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, thumbnailURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, MaxThumbnailBytes))
}

// emit delivers a state only while gen is still the live request,
// guaranteeing the UI never sees a result older than the latest input.
func (f *Fetcher) emit(gen uint64, state State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return
	}
	f.notify(state)
}

func isFetchableURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}
