package extractor

import (
	"context"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/tunecatcher/tunecatcher/internal/model"
)

// Default values
const (
	ProgressInterval = 500 * time.Millisecond
	NoTitle          = "No Title"
	NoUploader       = "N/A"
)

// YTDLP is the yt-dlp backed implementation of the extractor interfaces.
type YTDLP struct {
	logger *zap.SugaredLogger
}

// New creates a yt-dlp backed extractor
func New(logger *zap.SugaredLogger) *YTDLP {
	return &YTDLP{logger: logger}
}

// Install ensures the yt-dlp binary is available, downloading it when
// missing. Must be called once before any other operation.
func Install(ctx context.Context) {
	ytdlp.MustInstall(ctx, nil)
}

// Metadata resolves title, uploader, and thumbnail URL in flat mode
// without downloading content.
func (y *YTDLP) Metadata(ctx context.Context, url string) (*model.VideoMetadata, error) {
	dl := ytdlp.New().
		Quiet().
		SkipDownload().
		FlatPlaylist().
		DumpSingleJSON()

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, model.WrapError(model.ErrExtraction, "failed to resolve metadata", err)
	}

	info, err := firstExtractedInfo(result)
	if err != nil {
		return nil, err
	}

	return &model.VideoMetadata{
		Title:        stringOr(info.Title, NoTitle),
		Uploader:     stringOr(info.Uploader, NoUploader),
		ThumbnailURL: stringOr(info.Thumbnail, ""),
	}, nil
}

// Download performs the full fetch+transcode operation described by cfg
// and returns the resolved title and predicted output filename.
func (y *YTDLP) Download(ctx context.Context, url string, cfg Config) (*Result, error) {
	dl := ytdlp.New().
		IgnoreErrors().
		NoProgress().
		Output(cfg.OutputTemplate).
		Format(cfg.FormatSelector)

	if cfg.AudioCodec != "" {
		dl = dl.ExtractAudio().AudioFormat(cfg.AudioCodec)
	}
	if cfg.MergeContainer != "" {
		dl = dl.MergeOutputFormat(cfg.MergeContainer)
	}
	if cfg.CookieBrowser != "" && cfg.CookieBrowser != "none" {
		dl = dl.CookiesFromBrowser(cfg.CookieBrowser)
	}

	if cfg.OnProgress != nil {
		dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
			if sample, ok := sampleFromUpdate(update); ok {
				cfg.OnProgress(sample)
			}
		})
	}

	y.logger.Infow("starting download", "url", url, "format", cfg.FormatSelector)

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, model.WrapError(model.ErrExtraction, "download failed", err)
	}

	info, err := firstExtractedInfo(result)
	if err != nil {
		return nil, err
	}

	return &Result{
		Title:    stringOr(info.Title, NoTitle),
		Filename: stringOr(info.Filename, ""),
	}, nil
}

// PlaylistEntries fetches a flat listing of playlist items bounded by
// limit. Entries are returned as-is; callers decide what to skip.
func (y *YTDLP) PlaylistEntries(ctx context.Context, url string, limit int) ([]model.PlaylistEntry, error) {
	dl := ytdlp.New().
		Quiet().
		SkipDownload().
		FlatPlaylist().
		DumpSingleJSON()

	if limit > 0 {
		dl = dl.PlaylistEnd(limit)
	}

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, model.WrapError(model.ErrExtraction, "failed to fetch playlist", err)
	}

	info, err := firstExtractedInfo(result)
	if err != nil {
		return nil, err
	}

	entries := make([]model.PlaylistEntry, 0, len(info.Entries))
	for _, entry := range info.Entries {
		if entry == nil {
			continue
		}
		entries = append(entries, model.PlaylistEntry{
			Title: stringOr(entry.Title, NoTitle),
			URL:   stringOr(entry.URL, ""),
		})
	}
	return entries, nil
}

// sampleFromUpdate converts the backend progress callback payload to a
// ProgressSample. Stages other than downloading/finished are dropped.
func sampleFromUpdate(update ytdlp.ProgressUpdate) (model.ProgressSample, bool) {
	var stage model.ProgressStage
	switch update.Status {
	case ytdlp.ProgressStatusDownloading:
		stage = model.StageDownloading
	case ytdlp.ProgressStatusFinished:
		stage = model.StageFinished
	default:
		return model.ProgressSample{}, false
	}

	sample := model.ProgressSample{
		Stage:           stage,
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		ETASec:          -1,
	}

	if !update.Started.IsZero() {
		if elapsed := time.Since(update.Started); elapsed.Seconds() > 0 {
			sample.BytesPerSecond = float64(update.DownloadedBytes) / elapsed.Seconds()
		}
	}

	if eta := update.ETA(); eta > 0 {
		sample.ETASec = int(eta.Seconds())
	}

	return sample, true
}

func firstExtractedInfo(result *ytdlp.Result) (*ytdlp.ExtractedInfo, error) {
	info, err := result.GetExtractedInfo()
	if err != nil {
		return nil, model.WrapError(model.ErrExtraction, "failed to parse extractor output", err)
	}
	if len(info) == 0 || info[0] == nil {
		return nil, model.NewAppError(model.ErrExtraction, "extractor returned no metadata")
	}
	return info[0], nil
}

func stringOr(value *string, fallback string) string {
	if value != nil && *value != "" {
		return *value
	}
	return fallback
}
