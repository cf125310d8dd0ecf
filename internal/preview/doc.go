package preview

// Package preview implements the cancellable live-preview pipeline: a
// single-flight fetcher resolving a URL to lightweight metadata plus
// thumbnail bytes, with stale results dropped silently.
