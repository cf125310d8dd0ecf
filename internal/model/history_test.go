package model

import (
	"fmt"
	"testing"
)

func TestHistory_Record(t *testing.T) {
	var history History

	history.Record(HistoryItem{Title: "first", URL: "https://example.com/1"})
	history.Record(HistoryItem{Title: "second", URL: "https://example.com/2"})

	if len(history) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(history))
	}

	if history[0].Title != "second" {
		t.Errorf("Expected most recent entry first, got '%s'", history[0].Title)
	}

	if history[1].Title != "first" {
		t.Errorf("Expected oldest entry last, got '%s'", history[1].Title)
	}
}

func TestHistory_Record_Capacity(t *testing.T) {
	var history History

	// Record past capacity and verify the bound holds after every call
	for i := 0; i < 25; i++ {
		history.Record(HistoryItem{
			Title: fmt.Sprintf("item-%d", i),
			URL:   fmt.Sprintf("https://example.com/%d", i),
		})

		if len(history) > MaxHistoryItems {
			t.Fatalf("History exceeded capacity after %d records: %d entries", i+1, len(history))
		}

		if history[0].Title != fmt.Sprintf("item-%d", i) {
			t.Errorf("Expected head to be 'item-%d', got '%s'", i, history[0].Title)
		}
	}

	if len(history) != MaxHistoryItems {
		t.Errorf("Expected exactly %d entries after 25 records, got %d", MaxHistoryItems, len(history))
	}

	// Oldest surviving entry is the 6th recorded one
	if history[MaxHistoryItems-1].Title != "item-5" {
		t.Errorf("Expected tail to be 'item-5', got '%s'", history[MaxHistoryItems-1].Title)
	}
}

func TestHistory_Clear(t *testing.T) {
	var history History

	history.Record(HistoryItem{Title: "item"})
	history.Clear()

	if len(history) != 0 {
		t.Errorf("Expected empty history after clear, got %d entries", len(history))
	}
}

func TestHistory_Trim(t *testing.T) {
	history := make(History, 0, 30)
	for i := 0; i < 30; i++ {
		history = append(history, HistoryItem{Title: fmt.Sprintf("item-%d", i)})
	}

	history.Trim()

	if len(history) != MaxHistoryItems {
		t.Errorf("Expected %d entries after trim, got %d", MaxHistoryItems, len(history))
	}

	if history[0].Title != "item-0" {
		t.Errorf("Trim should preserve order, head is '%s'", history[0].Title)
	}
}
