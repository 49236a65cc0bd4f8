// Package prefilter gates multi-pattern scans with Aho-Corasick keyword
// matching: content that does not contain a mask's keyword (its longest
// wildcard-free run) cannot match that mask, so the mask is dropped from the
// scan of that content.
package prefilter

import (
	"bytes"

	"github.com/cloudflare/ahocorasick"
	"github.com/dpronin/mtfind/pkg/pattern"
)

// Prefilter uses Aho-Corasick for efficient keyword matching over a set of
// masks.
type Prefilter struct {
	matcher           *ahocorasick.Matcher
	keywords          [][]byte
	keywordPatterns   map[string][]*pattern.Pattern // keyword -> patterns needing it
	noKeywordPatterns []*pattern.Pattern            // all-wildcard masks (always scanned)
}

// Keyword extracts a mask's filter keyword: its longest wildcard-free run.
// An all-wildcard mask has no keyword and is never filtered out.
func Keyword(mask []byte) []byte {
	var best []byte
	for _, run := range bytes.Split(mask, []byte{pattern.Wildcard}) {
		if len(run) > len(best) {
			best = run
		}
	}
	return best
}

// New creates a prefilter from a pattern set.
func New(patterns []*pattern.Pattern) *Prefilter {
	pf := &Prefilter{
		keywordPatterns: make(map[string][]*pattern.Pattern),
	}

	seen := make(map[string]bool)
	for _, p := range patterns {
		kw := Keyword(p.Mask)
		if len(kw) == 0 {
			pf.noKeywordPatterns = append(pf.noKeywordPatterns, p)
			continue
		}
		if !seen[string(kw)] {
			seen[string(kw)] = true
			pf.keywords = append(pf.keywords, kw)
		}
		pf.keywordPatterns[string(kw)] = append(pf.keywordPatterns[string(kw)], p)
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewMatcher(pf.keywords)
	}

	return pf
}

// Filter returns the patterns that might match content: those whose keyword
// occurs in it, plus the keywordless ones.
func (pf *Prefilter) Filter(content []byte) []*pattern.Pattern {
	result := make([]*pattern.Pattern, 0, len(pf.noKeywordPatterns))
	result = append(result, pf.noKeywordPatterns...)

	if pf.matcher == nil {
		return result
	}

	// the matcher reports a hit per occurrence, not per keyword; dedup so a
	// repeated keyword contributes its patterns once
	seen := make(map[*pattern.Pattern]bool, len(result))
	for _, p := range result {
		seen[p] = true
	}

	for _, hit := range pf.matcher.Match(content) {
		for _, p := range pf.keywordPatterns[string(pf.keywords[hit])] {
			if !seen[p] {
				seen[p] = true
				result = append(result, p)
			}
		}
	}

	return result
}
