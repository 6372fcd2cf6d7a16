// Package extractor pulls structural metadata (components, stores, type
// declarations) out of TypeScript/TSX source text with ordered regular
// expressions. Every exported function is pure: no I/O, no shared state.
//
// This is pattern matching, not parsing. Unconventional sources may be
// misread; each construct keeps its patterns in one ordered list so they can
// be extended without touching callers.
package extractor

import "regexp"

// Match is the result of trying an ordered pattern list: either a value was
// matched or nothing was.
type Match[T any] struct {
	Value T
	OK    bool
}

// Matched wraps a found value.
func Matched[T any](v T) Match[T] {
	return Match[T]{Value: v, OK: true}
}

// NoMatch is the empty result.
func NoMatch[T any]() Match[T] {
	return Match[T]{}
}

// Or returns the matched value or fallback.
func (m Match[T]) Or(fallback T) T {
	if m.OK {
		return m.Value
	}
	return fallback
}

// firstCapture returns capture group 1 of the first pattern that matches
// anywhere in text.
func firstCapture(text string, patterns []*regexp.Regexp) Match[string] {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return Matched(m[1])
		}
	}
	return NoMatch[string]()
}
