package wordbook

import (
	"strings"
	"time"
)

// HistoryLimit caps how many recent searches are kept.
const HistoryLimit = 10

// HistoryEntry is one recorded search, most recent first in a history list.
type HistoryEntry struct {
	Term       string    `json:"term"`
	LookedUpAt time.Time `json:"lookedUpAt"`
}

// Push returns the history with term recorded as the most recent search.
// Terms are compared case-insensitively: re-searching a word moves it to the
// front with the new casing instead of duplicating it. The result never
// exceeds HistoryLimit entries.
func Push(entries []HistoryEntry, term string, now time.Time) []HistoryEntry {
	term = strings.TrimSpace(term)
	if term == "" {
		return entries
	}

	out := make([]HistoryEntry, 0, len(entries)+1)
	out = append(out, HistoryEntry{Term: term, LookedUpAt: now})
	for _, entry := range entries {
		if strings.EqualFold(entry.Term, term) {
			continue
		}
		out = append(out, entry)
		if len(out) == HistoryLimit {
			break
		}
	}
	return out
}

// Remove returns the history without term, compared case-insensitively.
func Remove(entries []HistoryEntry, term string) []HistoryEntry {
	term = strings.TrimSpace(term)
	out := make([]HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.EqualFold(entry.Term, term) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// Contains reports whether term is in the history, compared
// case-insensitively.
func Contains(entries []HistoryEntry, term string) bool {
	term = strings.TrimSpace(term)
	for _, entry := range entries {
		if strings.EqualFold(entry.Term, term) {
			return true
		}
	}
	return false
}
