package model

// MaxHistoryItems caps the download history length
const MaxHistoryItems = 20

// HistoryItem records a completed download. Immutable once created; items
// are only ever inserted at the head of the history or removed by Clear.
type HistoryItem struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	FilePath string `json:"file_path"`
}

// History is an ordered list of completed downloads, most recent first.
type History []HistoryItem

// Record inserts an item at the head and truncates to MaxHistoryItems.
func (h *History) Record(item HistoryItem) {
	updated := make(History, 0, len(*h)+1)
	updated = append(updated, item)
	updated = append(updated, *h...)
	if len(updated) > MaxHistoryItems {
		updated = updated[:MaxHistoryItems]
	}
	*h = updated
}

// Clear removes all entries.
func (h *History) Clear() {
	*h = History{}
}

// Trim enforces the capacity invariant without changing order. Used before
// every persist so an oversized record loaded from disk never grows back.
func (h *History) Trim() {
	if len(*h) > MaxHistoryItems {
		*h = (*h)[:MaxHistoryItems]
	}
}
