package engine

// ElectionResultKind tags the two kinds of history entries.
type ElectionResultKind uint8

const (
	// ResultElection is a full elected government.
	ResultElection ElectionResultKind = iota
	// ResultTopDeck is the forced enactment of the top card after three
	// consecutive failed elections.
	ResultTopDeck
)

// ElectedGovernment is one successfully elected government together with
// both claims and the presidential action it triggered.
type ElectedGovernment struct {
	President              PlayerID
	Chancellor             PlayerID
	PresidentClaimedBlues  int
	ChancellorClaimedBlues int
	// Conflict is true iff the president claimed at least one blue while
	// the chancellor claimed none.
	Conflict     bool
	PolicyPassed Policy
	Action       PresidentialAction
	// ChancellorConfirmedNotHitler is set once the board's fascist policy
	// count at election time has reached the Hitler zone: an elected
	// chancellor surviving that election cannot be Hitler.
	ChancellorConfirmedNotHitler bool
}

// ElectionResult is one entry of the append-only election history. Context
// is the deck state before this entry's draw.
type ElectionResult struct {
	Kind          ElectionResultKind
	Context       CardContext
	Gov           ElectedGovernment // valid when Kind == ResultElection
	TopDeckPolicy Policy            // valid when Kind == ResultTopDeck
}

// DrawnDiscarded returns how many cards this entry consumed from the deck
// and how many of those went to the discard pile. A normal government
// draws three and discards two; a discarding peek-and-burn consumes one
// extra card; a top-deck consumes exactly the enacted card.
func (er ElectionResult) DrawnDiscarded() (drawn, discarded int) {
	if er.Kind == ResultTopDeck {
		return 1, 0
	}
	if er.Gov.Action.Kind == ActionPeekAndBurn && er.Gov.Action.Discarded {
		return 4, 3
	}
	return 3, 2
}

// PassedBlues is the number of liberal policies this entry provably placed
// on the board (0 or 1).
func (er ElectionResult) PassedBlues() int {
	if er.Kind == ResultTopDeck {
		return er.TopDeckPolicy.blues()
	}
	return er.Gov.PolicyPassed.blues()
}

// SeenBlues is the number of liberal cards the acting president claims to
// have seen across the entry's full draw window. For a discarding
// peek-and-burn the window is four cards, so the peeked claim counts too.
func (er ElectionResult) SeenBlues() int {
	if er.Kind == ResultTopDeck {
		return er.TopDeckPolicy.blues()
	}
	blues := er.Gov.PresidentClaimedBlues
	if er.Gov.Action.Kind == ActionPeekAndBurn && er.Gov.Action.Discarded {
		blues += er.Gov.Action.Claim.blues()
	}
	return blues
}
