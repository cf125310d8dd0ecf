package progress

import (
	"fmt"

	"github.com/tunecatcher/tunecatcher/internal/model"
)

// Label constants
const (
	ProcessingLabel  = "Processing..."
	UnknownSpeed     = "..."
	UnknownTime      = "??:??"
	BytesPerMegabyte = 1024 * 1024
)

// Translate maps a raw sample to a UI progress event. The second return
// value is false when the sample carries too little information to report
// a fraction (downloading with no known or estimated total), which is a
// defined no-op rather than an error.
func Translate(sample model.ProgressSample) (model.ProgressEvent, bool) {
	switch sample.Stage {
	case model.StageFinished:
		// Transfer done, muxing/transcoding still pending
		return model.ProgressEvent{Fraction: 1.0, Label: ProcessingLabel}, true

	case model.StageDownloading:
		if sample.TotalBytes <= 0 {
			return model.ProgressEvent{}, false
		}

		fraction := float64(sample.DownloadedBytes) / float64(sample.TotalBytes)

		speed := UnknownSpeed
		if sample.BytesPerSecond > 0 {
			speed = fmt.Sprintf("%.2f MB/s", sample.BytesPerSecond/BytesPerMegabyte)
		}

		label := fmt.Sprintf("Downloading... %.1f%%  |  %s  |  ETA: %s",
			fraction*100, speed, FormatTime(sample.ETASec))

		return model.ProgressEvent{Fraction: fraction, Label: label}, true
	}

	return model.ProgressEvent{}, false
}

// FormatTime formats seconds as zero-padded MM:SS. Negative values mean
// the duration is unknown and render as "??:??".
func FormatTime(seconds int) string {
	if seconds < 0 {
		return UnknownTime
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
