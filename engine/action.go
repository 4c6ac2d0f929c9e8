package engine

// ActionKind tags the presidential action unlocked by a fascist policy.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionKill
	ActionInvestigation
	ActionRevealParty
	ActionTopDeckPeek
	ActionSpecialElection
	ActionPeekAndBurn
)

// PresidentialAction is the action a president performed (or, in a board
// configuration, the action slot itself with zero parameters).
//
// Field use by kind:
//
//	Kill             Target = killed player
//	Investigation    Target = investigatee, Claim = reported party
//	RevealParty      Target = player shown the card, Claim = reported party
//	TopDeckPeek      PeekClaim = claimed next three policies
//	SpecialElection  Target = appointed presidential candidate
//	PeekAndBurn      Claim = claimed peeked policy, Discarded = whether it
//	                 was burned, PeekContext = deck context at the peek
type PresidentialAction struct {
	Kind        ActionKind
	Target      PlayerID
	Claim       Policy
	PeekClaim   [3]Policy
	Discarded   bool
	PeekContext CardContext
}

func (k ActionKind) String() string {
	switch k {
	case ActionKill:
		return "kill"
	case ActionInvestigation:
		return "investigation"
	case ActionRevealParty:
		return "reveal-party"
	case ActionTopDeckPeek:
		return "top-deck-peek"
	case ActionSpecialElection:
		return "special-election"
	case ActionPeekAndBurn:
		return "peek-and-burn"
	default:
		return "none"
	}
}

func (a PresidentialAction) String() string { return a.Kind.String() }
