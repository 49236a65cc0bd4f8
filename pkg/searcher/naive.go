package searcher

// Naive slides the mask left to right comparing element-wise. It is the
// reference oracle for the Boyer-Moore engines and shares their contract
// exactly.
type Naive struct {
	mask []byte
	eq   Predicate
}

// NewNaive constructs the naive searcher for a literal mask.
func NewNaive(mask []byte) *Naive {
	return &Naive{mask: mask, eq: func(t, m byte) bool { return t == m }}
}

// NewNaivePred constructs the naive searcher with a byte predicate.
func NewNaivePred(mask []byte, eq Predicate) *Naive {
	return &Naive{mask: mask, eq: eq}
}

// FindFirst returns the first occurrence of the mask as [start, end), or an
// empty span at len(text) when there is none.
func (s *Naive) FindFirst(text []byte) (int, int) {
	m := len(s.mask)
	for i := 0; m <= len(text)-i; i++ {
		j := 0
		for j < m && s.eq(text[i+j], s.mask[j]) {
			j++
		}
		if j == m {
			return i, i + m
		}
	}
	return len(text), len(text)
}
