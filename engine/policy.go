// Package engine implements the deductive core of the Secret Hitler
// assistant: exhaustive deck and role-assignment enumeration, fact-based
// filtering, exact conditional card probabilities and the probability tree
// over presidential claim sequences.
//
// Everything in this package is synchronous and free of I/O. State lives in
// a single GameState aggregate owned by the caller; all heavy enumerations
// are memoized by their count parameters.
package engine

import "strings"

// Policy is one of the two policy card colors.
// The ordering Fascist < Liberal is relied upon when canonicalizing
// claim patterns.
type Policy uint8

const (
	PolicyFascist Policy = iota
	PolicyLiberal
)

// ParsePolicy parses a single-character policy token.
// Accepted (case-insensitive): "l"/"b" for Liberal, "f"/"r" for Fascist.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "f", "r":
		return PolicyFascist, nil
	case "l", "b":
		return PolicyLiberal, nil
	default:
		return PolicyFascist, &ParsePolicyError{Token: s}
	}
}

// String renders the single-letter display form: "B" for Liberal,
// "R" for Fascist.
func (p Policy) String() string {
	if p == PolicyLiberal {
		return "B"
	}
	return "R"
}

// blues returns 1 for a Liberal policy, 0 otherwise.
func (p Policy) blues() int {
	if p == PolicyLiberal {
		return 1
	}
	return 0
}
