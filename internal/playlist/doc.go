package playlist

// Package playlist resolves playlist URLs into flat entry listings ready
// for batch submission, bounded by the configured item limit.
