package engine

import "sort"

// ClaimPattern is a parsed, canonically sorted claim string.
type ClaimPattern struct {
	Blues    int
	Length   int
	Policies []Policy
}

// ParseClaimPattern parses a string of single-character policy tokens into
// a canonical sorted multiset and bounds-checks its length against
// [minLength, maxLength]. Order of the input tokens is not significant.
func ParseClaimPattern(pattern string, maxLength, minLength int) (ClaimPattern, error) {
	policies := make([]Policy, 0, len(pattern))
	for _, r := range pattern {
		p, err := ParsePolicy(string(r))
		if err != nil {
			return ClaimPattern{}, err
		}
		policies = append(policies, p)
	}
	sort.Slice(policies, func(i, j int) bool { return policies[i] < policies[j] })

	if len(policies) > maxLength {
		return ClaimPattern{}, &PatternTooLongError{Have: maxLength, Requested: len(policies)}
	}
	if len(policies) < minLength {
		return ClaimPattern{}, &PatternTooShortError{Want: minLength, Requested: len(policies)}
	}

	blues := 0
	for _, p := range policies {
		blues += p.blues()
	}
	return ClaimPattern{Blues: blues, Length: len(policies), Policies: policies}, nil
}

// ClaimPatternFromBlues renders the canonical claim string for a blue count
// within a window of the given size, e.g. 1 blue of 3 -> "RRB".
func ClaimPatternFromBlues(blues, window int) string {
	out := make([]byte, window)
	for i := range out {
		if i < window-blues {
			out[i] = 'R'
		} else {
			out[i] = 'B'
		}
	}
	return string(out)
}
