package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

const rule = "============================================================"

// WriteSummary renders the human-readable run summary: per-group counts
// followed by itemized entries, newest first.
func WriteSummary(w io.Writer, r *Report) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  SUMMARY - last %dh (generated %s)\n", r.WindowHours, r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	nameWidth := 0
	for _, group := range r.Groups {
		if width := runewidth.StringWidth(group.Name); width > nameWidth {
			nameWidth = width
		}
	}

	for _, group := range r.Groups {
		padding := strings.Repeat(" ", nameWidth-runewidth.StringWidth(group.Name))
		fmt.Fprintf(w, "  %s%s  %d\n", group.Name, padding, group.Count)
	}
	fmt.Fprintln(w)

	for _, group := range r.Groups {
		fmt.Fprintf(w, "  %s (%d):\n", group.Name, group.Count)
		for _, entry := range group.Entries {
			marker := " "
			if entry.Body != "" {
				marker = "+"
			}
			fmt.Fprintf(w, "    [%s] %s  %s\n", marker, entry.PublishedAt.Format(time.RFC3339), entry.Title)
			fmt.Fprintf(w, "        %s  (%s)\n", entry.URL, entry.SourceTag)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, rule)
}
