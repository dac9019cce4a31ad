// Package report defines the aggregation run's output: per-category entry
// groups with a generation timestamp, plus the console summary renderer.
package report

import (
	"time"

	"github.com/CrSamson/my-ai-news-aggregator/app/feed"
)

type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	WindowHours int       `json:"window_hours"`
	Groups      []Group   `json:"groups"`
}

type Group struct {
	Name    string       `json:"name"`
	Count   int          `json:"count"`
	Entries []feed.Entry `json:"entries"`
}

// TotalEntries returns the entry count across all groups.
func (r *Report) TotalEntries() int {
	total := 0
	for _, group := range r.Groups {
		total += group.Count
	}
	return total
}

// Group returns the named group, or nil when absent.
func (r *Report) Group(name string) *Group {
	for i := range r.Groups {
		if r.Groups[i].Name == name {
			return &r.Groups[i]
		}
	}
	return nil
}
