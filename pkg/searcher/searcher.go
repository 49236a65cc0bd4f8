// Package searcher implements first-occurrence mask lookup in byte ranges.
//
// Three interchangeable engines are provided: a naive reference scanner and
// two Boyer-Moore variants with the bad-character heuristic, one for literal
// masks and one generalized over a byte comparison predicate so that masks
// with wildcards keep sub-naive shift behavior.
package searcher

import "github.com/dpronin/mtfind/pkg/pattern"

// Predicate compares a text byte against a mask byte. The relation is not
// symmetric; implementations must be called with arguments in (text, mask)
// order.
type Predicate func(textByte, maskByte byte) bool

// Searcher finds the first occurrence of its mask in text.
//
// FindFirst returns the matched half-open span [start, end). When no
// occurrence exists the span is empty and anchored at len(text). An empty
// mask matches immediately at the start of text.
type Searcher interface {
	FindFirst(text []byte) (start, end int)
}

// New selects the engine for a validated mask: masks carrying a wildcard get
// the predicate-generalized Boyer-Moore, literal masks the table-driven one.
func New(mask []byte) Searcher {
	if pattern.HasWildcard(mask) {
		return NewBoyerMoorePred(mask, pattern.Eq)
	}
	return NewBoyerMoore(mask)
}
