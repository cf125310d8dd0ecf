package download

// Package download implements the batch orchestrator: jobs run strictly
// one at a time in input order on top of the extractor backend, with
// progress translated for the UI and successful jobs recorded in history.
