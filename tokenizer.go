package radixsearch

import "strings"

// isTermByte reports whether r belongs to the term character class
// [a-z0-9&-]. Only lowercase ASCII is accepted, so callers lowercase the
// input first; an uppercase letter reaching here is rejected like any
// other non-term rune.
func isTermByte(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '&' || r == '-':
		return true
	default:
		return false
	}
}

// tokenizeDocument lowercases text and extracts every maximal run of
// [a-z0-9&-] characters as a token. Leading/trailing hyphens and
// ampersands are retained verbatim; a non-ASCII character always
// terminates the current token.
func tokenizeDocument(text string) []string {
	lower := strings.ToLower(text)

	var tokens []string
	start := -1
	for i, r := range lower {
		if isTermByte(r) {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			tokens = append(tokens, lower[start:i])
			start = -1
		}
	}
	if start != -1 {
		tokens = append(tokens, lower[start:])
	}
	return tokens
}

// termFrequencies computes the TF map for a single document's tokens.
func termFrequencies(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	return tf
}
