package preview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tunecatcher/tunecatcher/internal/model"
)

// fakeResolver is a controllable MetadataResolver for tests
type fakeResolver struct {
	meta    *model.VideoMetadata
	err     error
	block   chan struct{} // when non-nil, Metadata waits on it
	started chan string   // when non-nil, receives the URL of each call
}

func (r *fakeResolver) Metadata(ctx context.Context, url string) (*model.VideoMetadata, error) {
	if r.started != nil {
		r.started <- url
	}
	if r.block != nil {
		<-r.block
	}
	if r.err != nil {
		return nil, r.err
	}
	meta := *r.meta
	return &meta, nil
}

func collectStates() (func(State), chan State) {
	states := make(chan State, 16)
	return func(s State) { states <- s }, states
}

func nextState(t *testing.T, states chan State) State {
	t.Helper()
	select {
	case s := <-states:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for a preview state")
		return State{}
	}
}

func assertNoState(t *testing.T, states chan State) {
	t.Helper()
	select {
	case s := <-states:
		t.Fatalf("Expected no further states, got kind %d", s.Kind)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFetcher_InvalidURLStartsNothing(t *testing.T) {
	notify, states := collectStates()
	fetcher := NewFetcher(&fakeResolver{}, notify, zap.NewNop().Sugar())

	fetcher.Request("")
	fetcher.Request("not-a-url")
	fetcher.Request("ftp://example.com/file")

	assertNoState(t, states)
}

func TestFetcher_ResolvesMetadataAndThumbnail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image-bytes"))
	}))
	defer server.Close()

	resolver := &fakeResolver{meta: &model.VideoMetadata{
		Title:        "Some Video",
		Uploader:     "Some Channel",
		ThumbnailURL: server.URL,
	}}

	notify, states := collectStates()
	fetcher := NewFetcher(resolver, notify, zap.NewNop().Sugar())

	fetcher.Request("https://example.com/watch?v=abc")

	if state := nextState(t, states); state.Kind != StateLoading {
		t.Fatalf("Expected Loading first, got kind %d", state.Kind)
	}

	state := nextState(t, states)
	if state.Kind != StateResolved {
		t.Fatalf("Expected Resolved, got kind %d", state.Kind)
	}

	if state.Result.Title != "Some Video" {
		t.Errorf("Expected title 'Some Video', got '%s'", state.Result.Title)
	}

	if string(state.Result.Thumbnail) != "image-bytes" {
		t.Errorf("Expected thumbnail bytes, got %q", state.Result.Thumbnail)
	}
}

func TestFetcher_ThumbnailFailureIsNonFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resolver := &fakeResolver{meta: &model.VideoMetadata{
		Title:        "Some Video",
		Uploader:     "Some Channel",
		ThumbnailURL: server.URL,
	}}

	notify, states := collectStates()
	fetcher := NewFetcher(resolver, notify, zap.NewNop().Sugar())

	fetcher.Request("https://example.com/watch?v=abc")

	nextState(t, states) // Loading
	state := nextState(t, states)

	if state.Kind != StateResolved {
		t.Fatalf("Expected Resolved despite thumbnail failure, got kind %d", state.Kind)
	}

	if state.Result.Thumbnail != nil {
		t.Error("Expected no thumbnail bytes after fetch failure")
	}

	if state.Result.Title != "Some Video" {
		t.Errorf("Thumbnail failure must not mask metadata, got title '%s'", state.Result.Title)
	}
}

func TestFetcher_MetadataFailureEmitsFailed(t *testing.T) {
	resolver := &fakeResolver{err: model.NewAppError(model.ErrExtraction, "not found")}

	notify, states := collectStates()
	fetcher := NewFetcher(resolver, notify, zap.NewNop().Sugar())

	fetcher.Request("https://example.com/watch?v=missing")

	nextState(t, states) // Loading
	if state := nextState(t, states); state.Kind != StateFailed {
		t.Fatalf("Expected Failed, got kind %d", state.Kind)
	}
}

func TestFetcher_NewRequestDropsOlderResult(t *testing.T) {
	resolver := &fakeResolver{
		meta:    &model.VideoMetadata{Title: "Resolved"},
		block:   make(chan struct{}),
		started: make(chan string, 2),
	}

	notify, states := collectStates()
	fetcher := NewFetcher(resolver, notify, zap.NewNop().Sugar())

	fetcher.Request("https://example.com/watch?v=old")
	if state := nextState(t, states); state.Kind != StateLoading {
		t.Fatalf("Expected Loading for the first request, got kind %d", state.Kind)
	}
	<-resolver.started

	// Supersede before the first fetch resolves
	fetcher.Request("https://example.com/watch?v=new")
	if state := nextState(t, states); state.Kind != StateLoading {
		t.Fatalf("Expected Loading for the second request, got kind %d", state.Kind)
	}
	<-resolver.started

	// Release both fetches; only the newer one may emit
	close(resolver.block)

	state := nextState(t, states)
	if state.Kind != StateResolved {
		t.Fatalf("Expected Resolved from the newer request, got kind %d", state.Kind)
	}

	// The superseded fetch must emit nothing, not even Failed
	assertNoState(t, states)
}

func TestFetcher_CancelSilencesOutstandingFetch(t *testing.T) {
	resolver := &fakeResolver{
		meta:    &model.VideoMetadata{Title: "Resolved"},
		block:   make(chan struct{}),
		started: make(chan string, 1),
	}

	notify, states := collectStates()
	fetcher := NewFetcher(resolver, notify, zap.NewNop().Sugar())

	fetcher.Request("https://example.com/watch?v=abc")
	nextState(t, states) // Loading
	<-resolver.started

	fetcher.Cancel()
	close(resolver.block)

	assertNoState(t, states)
}
