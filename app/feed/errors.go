package feed

import "errors"

// ErrSourceUnavailable is returned when a feed or page could not be fetched
// (network error, non-2xx status, timeout). Callers log it and continue with
// the remaining sources.
var ErrSourceUnavailable = errors.New("feed: source unavailable")

// ErrInvalidEntry is returned when a normalized entry fails validation.
var ErrInvalidEntry = errors.New("feed: invalid entry")
