package config

// Package config persists user settings and download history as a JSON file
// next to the executable. Unknown keys in the file survive a round trip so
// older and newer builds can share one settings file.
