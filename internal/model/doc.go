package model

// Package model defines domain data structures shared across the app: download
// jobs, history entries, preview and progress values, and the error kinds used
// at operation boundaries. Everything here is a plain value type.
