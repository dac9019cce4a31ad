package feed

import (
	"net/url"
	"strings"
)

// Deduper tracks identity keys across the merge of multiple feeds and
// sources. First occurrence wins.
type Deduper struct {
	seen map[string]struct{}
}

func NewDeduper() *Deduper {
	return &Deduper{
		seen: make(map[string]struct{}),
	}
}

// Add records a key and reports whether this was its first occurrence.
func (d *Deduper) Add(key string) bool {
	if _, ok := d.seen[key]; ok {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}

// Run filters entries down to the first occurrence of each identity key,
// preserving input order.
func (d *Deduper) Run(entries []Entry) []Entry {
	unique := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if d.Add(entry.Key()) {
			unique = append(unique, entry)
		}
	}
	return unique
}

// NormalizeURL canonicalizes a URL for dedup comparison: lowercase scheme and
// host, fragment removed, trailing slash stripped. Unparseable input is
// returned as-is so it still dedupes against identical raw strings.
func NormalizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return raw
	}

	parsed.Scheme = scheme
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""
	parsed.Path = strings.TrimRight(parsed.Path, "/")

	return parsed.String()
}
