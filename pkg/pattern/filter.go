package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// FilterConfig specifies name-based include/exclude filtering of a set.
type FilterConfig struct {
	Include []string // regex patterns; empty means include all
	Exclude []string // regex patterns; empty means exclude none
}

// ParsePatterns splits a comma-separated list of regex patterns.
func ParsePatterns(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// Filter returns the patterns whose names pass the include/exclude config.
// Include wins first (empty include list admits everything), then excludes
// are removed.
func Filter(patterns []*Pattern, config FilterConfig) ([]*Pattern, error) {
	include, err := compileAll(config.Include)
	if err != nil {
		return nil, fmt.Errorf("bad include filter: %w", err)
	}
	exclude, err := compileAll(config.Exclude)
	if err != nil {
		return nil, fmt.Errorf("bad exclude filter: %w", err)
	}

	var result []*Pattern
	for _, p := range patterns {
		if len(include) > 0 && !anyMatch(include, p.Name) {
			continue
		}
		if anyMatch(exclude, p.Name) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func compileAll(exprs []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		res = append(res, re)
	}
	return res, nil
}

func anyMatch(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
