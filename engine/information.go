package engine

import (
	"fmt"
	"strings"
)

// InformationKind tags the variants of Information.
type InformationKind uint8

const (
	InfoConfirmedNotHitler InformationKind = iota
	InfoPolicyConflict
	InfoLiberalInvestigation
	InfoFascistInvestigation
	InfoHardFact
	InfoAtLeastOneFascist
)

// Information is one deduced or asserted fact about the table. Facts are
// immutable; they are appended to the manual list or regenerated from the
// election history, never edited in place.
//
// Field use by kind:
//
//	ConfirmedNotHitler    First = player
//	PolicyConflict        First, Second = the two conflicting players
//	LiberalInvestigation  First = investigator, Second = investigatee
//	FascistInvestigation  First = investigator, Second = investigatee
//	HardFact              First = player, Role = known role
//	AtLeastOneFascist     Group = the suspect set
type Information struct {
	Kind   InformationKind
	First  PlayerID
	Second PlayerID
	Role   SecretRole
	Group  []PlayerID
}

// ConfirmedNotHitler asserts that a player cannot hold the Hitler role.
func ConfirmedNotHitler(p PlayerID) Information {
	return Information{Kind: InfoConfirmedNotHitler, First: p}
}

// PolicyConflict records a claim disagreement implying at least one of the
// two players lied.
func PolicyConflict(left, right PlayerID) Information {
	return Information{Kind: InfoPolicyConflict, First: left, Second: right}
}

// LiberalInvestigation records an investigation whose reported result was
// liberal.
func LiberalInvestigation(investigator, investigatee PlayerID) Information {
	return Information{Kind: InfoLiberalInvestigation, First: investigator, Second: investigatee}
}

// FascistInvestigation records an investigation whose reported result was
// fascist.
func FascistInvestigation(investigator, investigatee PlayerID) Information {
	return Information{Kind: InfoFascistInvestigation, First: investigator, Second: investigatee}
}

// HardFact asserts a player's role as ground truth.
func HardFact(p PlayerID, role SecretRole) Information {
	return Information{Kind: InfoHardFact, First: p, Role: role}
}

// AtLeastOneFascist asserts that the given set contains at least one
// fascist-team player.
func AtLeastOneFascist(players []PlayerID) Information {
	return Information{Kind: InfoAtLeastOneFascist, Group: players}
}

// Describe renders the fact for display, resolving seats through format.
func (in Information) Describe(format func(PlayerID) string) string {
	switch in.Kind {
	case InfoConfirmedNotHitler:
		return fmt.Sprintf("Player %s is confirmed to not be Hitler.", format(in.First))
	case InfoPolicyConflict:
		return fmt.Sprintf("Player %s is in a policy-based conflict with player %s.",
			format(in.First), format(in.Second))
	case InfoLiberalInvestigation:
		return fmt.Sprintf("Player %s investigated player %s and claimed to have found a liberal.",
			format(in.First), format(in.Second))
	case InfoFascistInvestigation:
		return fmt.Sprintf("Player %s investigated player %s and claimed to have found a fascist.",
			format(in.First), format(in.Second))
	case InfoHardFact:
		return fmt.Sprintf("Player %s is known to be %s.", format(in.First), in.Role)
	case InfoAtLeastOneFascist:
		names := make([]string, len(in.Group))
		for i, p := range in.Group {
			names[i] = "Player " + format(p)
		}
		return fmt.Sprintf("At least one of %s is a confirmed fascist.", strings.Join(names, ", "))
	}
	return "unknown fact"
}

// Players returns every seat the fact references.
func (in Information) Players() []PlayerID {
	switch in.Kind {
	case InfoConfirmedNotHitler, InfoHardFact:
		return []PlayerID{in.First}
	case InfoPolicyConflict, InfoLiberalInvestigation, InfoFascistInvestigation:
		return []PlayerID{in.First, in.Second}
	case InfoAtLeastOneFascist:
		return in.Group
	}
	return nil
}
