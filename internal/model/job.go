package model

// DownloadJob describes a single download built from a snapshot of the
// current settings plus the source URL. A job is immutable once created:
// settings changed after a job starts never affect it.
type DownloadJob struct {
	ID            string
	URL           string
	Mode          Mode
	TargetFormat  string // container (video) or codec (audio)
	TargetQuality string // resolution like "720p", video mode only
}

// VideoMetadata is the lightweight metadata resolved for a URL without
// downloading any media content.
type VideoMetadata struct {
	Title        string
	Uploader     string
	ThumbnailURL string
}

// PlaylistEntry is a single flat playlist item: a title and the URL to
// submit for download later.
type PlaylistEntry struct {
	Title string
	URL   string
}
