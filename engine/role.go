package engine

import "strings"

// SecretRole is a player's hidden role. The ordering
// Liberal < RegularFascist < Hitler is the canonical sort order for
// histogram output.
type SecretRole uint8

const (
	RoleLiberal SecretRole = iota
	RoleRegularFascist
	RoleHitler
)

// ParseSecretRole parses a role token.
// Accepted (case-insensitive): "h"/"hitler", "f"/"fascist",
// "l"/"b"/"lib"/"blue"/"liberal".
func ParseSecretRole(s string) (SecretRole, error) {
	switch strings.ToLower(s) {
	case "h", "hitler":
		return RoleHitler, nil
	case "f", "fascist":
		return RoleRegularFascist, nil
	case "l", "b", "lib", "blue", "liberal":
		return RoleLiberal, nil
	default:
		return RoleLiberal, &ParseRoleError{Token: s}
	}
}

// IsFascist reports whether the role is on the fascist team
// (regular fascist or Hitler).
func (r SecretRole) IsFascist() bool { return r != RoleLiberal }

func (r SecretRole) String() string {
	switch r {
	case RoleRegularFascist:
		return "Fascist"
	case RoleHitler:
		return "Hitler"
	default:
		return "Liberal"
	}
}
