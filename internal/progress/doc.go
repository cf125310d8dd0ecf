package progress

// Package progress translates raw progress samples from the extraction
// backend into normalized UI-facing events. Pure functions, no state.
