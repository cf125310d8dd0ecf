package cli

// Package cli is the interactive terminal front-end: a line-based loop
// accepting a URL or a numeric menu command, driving the preview fetcher,
// playlist resolver, and download orchestrator.
