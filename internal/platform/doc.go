package platform

// Package platform contains OS integration glue: filesystem helpers and
// file-manager/clipboard hand-offs. Failures here are reported as status
// text by callers, never treated as fatal.
