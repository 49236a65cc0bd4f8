package pattern

import "fmt"

// CheckExamples verifies a pattern's test cases: every example must contain
// at least one occurrence of the mask, every negative example none.
func CheckExamples(p *Pattern) error {
	for _, ex := range p.Examples {
		if !matchesAnywhere([]byte(ex), p.Mask) {
			return fmt.Errorf("pattern %q: example %q does not match mask %q", p.Name, ex, p.Mask)
		}
	}
	for _, neg := range p.NegativeExamples {
		if matchesAnywhere([]byte(neg), p.Mask) {
			return fmt.Errorf("pattern %q: negative example %q matches mask %q", p.Name, neg, p.Mask)
		}
	}
	return nil
}

// matchesAnywhere is a reference sliding-window check, deliberately
// independent of the production searchers.
func matchesAnywhere(text, mask []byte) bool {
	if len(mask) == 0 || len(mask) > len(text) {
		return false
	}
	for i := 0; i+len(mask) <= len(text); i++ {
		ok := true
		for j := range mask {
			if !Eq(text[i+j], mask[j]) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
