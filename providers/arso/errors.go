package arso

import "errors"

// Component-boundary error taxonomy. Transport failures never cross into
// callers raw; they are wrapped in one of these so callers can branch with
// errors.Is without knowing HTTP details.
var (
	// ErrSearchFailed marks a location search that could not complete:
	// network error, non-2xx status or an undecodable body. Zero matches
	// is a successful search, not this error.
	ErrSearchFailed = errors.New("location search failed")

	// ErrFetchFailed marks a forecast fetch that could not complete at the
	// transport level.
	ErrFetchFailed = errors.New("forecast fetch failed")

	// ErrMalformedPayload marks a response that arrived but is missing a
	// structurally required piece: an empty feature list, no day list, or
	// an unparsable day date.
	ErrMalformedPayload = errors.New("malformed forecast payload")
)
