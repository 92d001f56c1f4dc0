package radixsearch

import "errors"

// Sentinel error kinds returned by this package.
//
// Every error path wraps one of these with fmt.Errorf("...: %w", ...) so
// callers can branch with errors.Is without depending on message text.
var (
	// ErrIO means the persistence layer could not read or write a
	// required artifact. The index is treated as not loaded until the
	// caller reindexes or retries.
	ErrIO = errors.New("radixsearch: io failure")

	// ErrFormatCorrupt means a persisted artifact violates its grammar
	// (a malformed trie line, a mismatched child count, invalid JSON).
	// The index built from it is unusable.
	ErrFormatCorrupt = errors.New("radixsearch: corrupt artifact format")

	// ErrMalformedQuery means a query string could not be parsed or
	// evaluated: unmatched parentheses, operator underflow, or leftover
	// operands. Other queries against the same engine are unaffected.
	ErrMalformedQuery = errors.New("radixsearch: malformed query")
)
