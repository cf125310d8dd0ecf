package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tunecatcher/tunecatcher/internal/config"
	"github.com/tunecatcher/tunecatcher/internal/extractor"
	"github.com/tunecatcher/tunecatcher/internal/model"
	"github.com/tunecatcher/tunecatcher/internal/progress"
)

// Timing constants
const (
	// InterJobDelay is the pause between jobs in a batch, a deliberate
	// throughput cap to avoid overwhelming the origin service.
	InterJobDelay = time.Second
)

// Output subfolders
const (
	AudioSubfolder = "Audio"
	VideoSubfolder = "Video"
)

// Status messages
const (
	StatusBusy            = "A download is already in progress."
	StatusDownloadError   = "✗ Download Error: Check URL or update yt-dlp"
	StatusUnexpectedError = "✗ An unexpected error occurred"
)

// Callbacks receive orchestrator side effects. All callbacks are invoked
// from the batch goroutine; hand-off to a UI thread is the receiver's
// concern. Nil callbacks are skipped.
type Callbacks struct {
	OnStatus   func(text string)
	OnProgress func(event model.ProgressEvent)
	OnBusy     func(busy bool)
}

// Orchestrator runs download batches sequentially. One batch is live at a
// time; submitting while busy is rejected with a status message.
type Orchestrator struct {
	store      *config.Store
	downloader extractor.Downloader
	callbacks  Callbacks
	logger     *zap.SugaredLogger
	jobDelay   time.Duration

	mu      sync.Mutex
	running bool
}

// NewOrchestrator creates a download orchestrator
func NewOrchestrator(store *config.Store, downloader extractor.Downloader, callbacks Callbacks, logger *zap.SugaredLogger) *Orchestrator {
	return &Orchestrator{
		store:      store,
		downloader: downloader,
		callbacks:  callbacks,
		logger:     logger,
		jobDelay:   InterJobDelay,
	}
}

// SubmitBatch starts downloading the given URLs in input order, one at a
// time, and returns immediately. Settings are snapshotted per job start,
// not per batch: a settings change mid-batch affects jobs that have not
// started yet. Side effects are observed through the callbacks and the
// history.
func (o *Orchestrator) SubmitBatch(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}

	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		o.status(StatusBusy)
		return
	}
	o.running = true
	o.mu.Unlock()

	go o.runBatch(ctx, urls)
}

// Running reports whether a batch is currently executing
func (o *Orchestrator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

func (o *Orchestrator) runBatch(ctx context.Context, urls []string) {
	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	for i, url := range urls {
		if ctx.Err() != nil {
			return
		}

		o.runJob(ctx, url)

		// Pause between jobs, not after the last one
		if i < len(urls)-1 {
			select {
			case <-time.After(o.jobDelay):
			case <-ctx.Done():
				return
			}
		}
	}
}

// runJob executes a single download built from the current settings plus
// the URL. History is only touched on success; the busy state is reset
// regardless of outcome.
func (o *Orchestrator) runJob(ctx context.Context, url string) {
	o.busy(true)
	defer o.busy(false)

	settings := o.store.Snapshot()
	job := newJob(settings, url)

	o.logger.Infow("starting job", "id", job.ID, "url", url, "mode", job.Mode)

	outputDir := filepath.Join(settings.SavePath, subfolderFor(job.Mode))
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		o.logger.Errorw("failed to create output directory", "dir", outputDir, "error", err)
		o.status(fmt.Sprintf("%s: %v", StatusUnexpectedError, err))
		return
	}

	cfg := buildConfig(settings, job, outputDir)
	cfg.OnProgress = func(sample model.ProgressSample) {
		if event, ok := progress.Translate(sample); ok {
			o.progressEvent(event)
		}
	}

	result, err := o.downloader.Download(ctx, url, cfg)
	if err != nil {
		o.logger.Warnw("job failed", "id", job.ID, "url", url, "error", err)
		o.reportFailure(err)
		return
	}

	finalPath := replaceExtension(result.Filename, job.TargetFormat)
	if recordErr := o.store.RecordHistory(model.HistoryItem{
		Title:    result.Title,
		URL:      url,
		FilePath: finalPath,
	}); recordErr != nil {
		// Persistence problems are reported but never abort the batch
		o.status(fmt.Sprintf("Failed to save settings: %v", recordErr))
	}

	o.status(fmt.Sprintf("✓ Download Successful: %s", truncate(result.Title, 40)))
}

// newJob snapshots the settings relevant to one URL into an immutable job
func newJob(settings config.Settings, url string) model.DownloadJob {
	return model.DownloadJob{
		ID:            uuid.NewString(),
		URL:           url,
		Mode:          settings.Mode,
		TargetFormat:  settings.TargetFormat(),
		TargetQuality: settings.VideoQuality,
	}
}

// buildConfig maps a job to the extractor configuration: format selector,
// postprocessing directives, output template, and cookie source.
func buildConfig(settings config.Settings, job model.DownloadJob, outputDir string) extractor.Config {
	cfg := extractor.Config{
		OutputTemplate: filepath.Join(outputDir, settings.FilenameTemplate()+".%(ext)s"),
		CookieBrowser:  settings.CookieBrowser,
	}

	if job.Mode == model.ModeVideo {
		cfg.FormatSelector = FormatSelector(job.TargetQuality)
		cfg.MergeContainer = job.TargetFormat
	} else {
		cfg.FormatSelector = "bestaudio/best"
		cfg.AudioCodec = job.TargetFormat
	}

	return cfg
}

// FormatSelector builds the video stream selection expression for a
// resolution like "720p": best video capped at that height merged with
// the best audio.
func FormatSelector(quality string) string {
	height := strings.TrimSuffix(quality, "p")
	return fmt.Sprintf("bestvideo[height<=%s]+bestaudio/best", height)
}

// replaceExtension substitutes the target format's extension onto the
// extractor's predicted filename.
func replaceExtension(path, format string) string {
	if ext := filepath.Ext(path); ext != "" {
		path = strings.TrimSuffix(path, ext)
	}
	return path + "." + format
}

func subfolderFor(mode model.Mode) string {
	if mode == model.ModeVideo {
		return VideoSubfolder
	}
	return AudioSubfolder
}

func (o *Orchestrator) reportFailure(err error) {
	switch model.KindOf(err) {
	case model.ErrExtraction:
		o.status(StatusDownloadError)
	default:
		o.status(fmt.Sprintf("%s: %v", StatusUnexpectedError, err))
	}
}

func (o *Orchestrator) status(text string) {
	if o.callbacks.OnStatus != nil {
		o.callbacks.OnStatus(text)
	}
}

func (o *Orchestrator) progressEvent(event model.ProgressEvent) {
	if o.callbacks.OnProgress != nil {
		o.callbacks.OnProgress(event)
	}
}

func (o *Orchestrator) busy(busy bool) {
	if o.callbacks.OnBusy != nil {
		o.callbacks.OnBusy(busy)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
