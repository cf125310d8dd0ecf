package model

// ProgressStage represents the stage reported by the extraction backend
type ProgressStage string

const (
	// StageDownloading means media bytes are being transferred
	StageDownloading ProgressStage = "downloading"

	// StageFinished means the transfer is done and postprocessing follows
	StageFinished ProgressStage = "finished"
)

// ProgressSample is a raw progress report from the extraction backend.
// Consumed once and translated into a ProgressEvent; never stored.
type ProgressSample struct {
	Stage           ProgressStage
	DownloadedBytes int64
	TotalBytes      int64   // known or estimated total, <= 0 when unknown
	BytesPerSecond  float64 // <= 0 when unknown
	ETASec          int     // -1 when unknown
}

// ProgressEvent is the normalized UI-facing progress state.
type ProgressEvent struct {
	Fraction float64 // 0.0 to 1.0
	Label    string
}
