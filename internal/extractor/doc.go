package extractor

// Package extractor wraps the yt-dlp backend (via
// github.com/lrstanley/go-ytdlp) behind small interfaces: metadata-only
// resolution, playlist listing, and download with progress callbacks. The
// backend's own types never leak out of this package.
