package feed

import (
	"sort"
	"time"
)

// Window is the look-back period for an aggregation run. FloorToDay truncates
// the cutoff to 00:00 UTC, so sources published as daily batches never lose
// same-day items to time-of-day skew.
type Window struct {
	Hours      int
	FloorToDay bool
}

// Cutoff returns the earliest acceptable publish time relative to now.
func (w Window) Cutoff(now time.Time) time.Time {
	cutoff := now.UTC().Add(-time.Duration(w.Hours) * time.Hour)
	if w.FloorToDay {
		cutoff = cutoff.Truncate(24 * time.Hour)
	}
	return cutoff
}

// Apply retains only entries published at or after the window cutoff.
func (w Window) Apply(entries []Entry, now time.Time) []Entry {
	cutoff := w.Cutoff(now)

	kept := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.PublishedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, entry)
	}

	return kept
}

// SortByPublishedDesc orders entries newest first. The sort is stable so
// entries with identical timestamps keep their insertion order.
func SortByPublishedDesc(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PublishedAt.After(entries[j].PublishedAt)
	})
}
