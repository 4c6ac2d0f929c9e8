package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// PlayerSet is a set of seats, used for confirmed- and assumed-liberal
// constraints in the card counter.
type PlayerSet map[PlayerID]bool

// NewPlayerSet builds a set from the given seats.
func NewPlayerSet(players ...PlayerID) PlayerSet {
	set := make(PlayerSet, len(players))
	for _, p := range players {
		set[p] = true
	}
	return set
}

func (s PlayerSet) sorted() []PlayerID {
	out := make([]PlayerID, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// countClamped counts policy occurrences in deck[offset:offset+window],
// truncating the window at the deck end instead of failing. The counter
// walks entire shuffle histories over the shuffle's deck, and the last
// window may legally hang over the reshuffle boundary.
func countClamped(deck Deck, offset, window int, policy Policy) int {
	if offset >= len(deck) {
		return 0
	}
	end := offset + window
	if end > len(deck) {
		end = len(deck)
	}
	count := 0
	for _, p := range deck[offset:end] {
		if p == policy {
			count++
		}
	}
	return count
}

// electionKey encodes the counting-relevant fields of an election result
// for use in memoization keys.
func electionKey(er ElectionResult) string {
	if er.Kind == ResultTopDeck {
		return fmt.Sprintf("t%d", er.TopDeckPolicy)
	}
	g := er.Gov
	return fmt.Sprintf("e%d.%d.%d.%d.%d.%d.%d.%t",
		g.President, g.Chancellor, g.PresidentClaimedBlues, g.ChancellorClaimedBlues,
		g.PolicyPassed, g.Action.Kind, g.Action.Claim, g.Action.Discarded)
}

func electionsKey(ers []ElectionResult) string {
	parts := make([]string, len(ers))
	for i, er := range ers {
		parts[i] = electionKey(er)
	}
	return strings.Join(parts, "|")
}

func playerSetKey(s PlayerSet) string {
	parts := make([]string, 0, len(s))
	for _, p := range s.sorted() {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ",")
}

var hardFactedDecksCache = struct {
	sync.Mutex
	m map[string]DeckPopulation
}{m: make(map[string]DeckPopulation)}

// hardFactedDecks narrows the full deck population to the decks consistent
// with the observed election history: every window must physically contain
// the policies known to have been enacted, and any government whose
// president or chancellor is a confirmed liberal must have been reported
// truthfully. Memoized; the history and liberal set are stable across the
// many per-branch calls of the tree builder.
func hardFactedDecks(totalLib, totalFasc int, hardFacts []ElectionResult, confirmedLibs PlayerSet) DeckPopulation {
	key := fmt.Sprintf("%d/%d/%s/%s", totalLib, totalFasc, electionsKey(hardFacts), playerSetKey(confirmedLibs))

	hardFactedDecksCache.Lock()
	defer hardFactedDecksCache.Unlock()
	if pop, ok := hardFactedDecksCache.m[key]; ok {
		return pop
	}

	full := GenerateDeckPopulation(totalLib, totalFasc)
	pop := DeckPopulation{NumCards: full.NumCards}
	for _, d := range full.Decks {
		if deckMatchesHardFacts(d, hardFacts, confirmedLibs) {
			pop.Decks = append(pop.Decks, d)
		}
	}

	hardFactedDecksCache.m[key] = pop
	return pop
}

func deckMatchesHardFacts(d Deck, hardFacts []ElectionResult, confirmedLibs PlayerSet) bool {
	offset := 0
	for _, er := range hardFacts {
		drawn, _ := er.DrawnDiscarded()
		blues := countClamped(d, offset, drawn, PolicyLiberal)
		reds := countClamped(d, offset, drawn, PolicyFascist)
		if blues < er.PassedBlues() || reds < 1-er.PassedBlues() {
			return false
		}
		if er.Kind == ResultElection {
			g := er.Gov
			if confirmedLibs[g.President] && g.PresidentClaimedBlues != blues {
				return false
			}
			if confirmedLibs[g.Chancellor] &&
				(g.ChancellorClaimedBlues > blues || 2-g.ChancellorClaimedBlues > reds) {
				return false
			}
		}
		offset += drawn
	}
	return true
}

// LegalBlueSet restricts the observable blue count of one history index; a
// nil set means unrestricted.
type LegalBlueSet map[int]bool

// ComplexCardCounter computes the exact fraction of deck permutations
// consistent with the full constraint chain that additionally satisfy
// newHypothesis.
//
// The surviving population (NumChecked) is narrowed in order by:
//  1. hardFacts with confirmed-liberal truthfulness (memoized),
//  2. per-index legalFollowOn restrictions and the path-assumed liberals
//     of the current tree branch (presidents compared on seen blues to
//     account for peek-and-burn windows),
//  3. hypotheses, the exact claim sequence pinning the branch's path.
//
// NumMatching then counts the decks whose next window (after the
// hypotheses) shows exactly newHypothesis's seen blues. A zero NumChecked
// marks an impossible branch; callers prune rather than divide.
func ComplexCardCounter(
	totalLib, totalFasc int,
	hardFacts []ElectionResult,
	hypotheses []ElectionResult,
	legalFollowOn []LegalBlueSet,
	hardConfirmedLibs PlayerSet,
	pathAssumedLibs PlayerSet,
	newHypothesis ElectionResult,
) FilterResult {
	base := hardFactedDecks(totalLib, totalFasc, hardFacts, hardConfirmedLibs)

	var surviving []Deck
	for _, d := range base.Decks {
		if !deckMatchesPath(d, hardFacts, legalFollowOn, pathAssumedLibs) {
			continue
		}
		if !deckMatchesHypotheses(d, hypotheses) {
			continue
		}
		surviving = append(surviving, d)
	}

	targetOffset := 0
	for _, er := range hypotheses {
		drawn, _ := er.DrawnDiscarded()
		targetOffset += drawn
	}
	newDrawn, _ := newHypothesis.DrawnDiscarded()

	matching := 0
	for _, d := range surviving {
		if countClamped(d, targetOffset, newDrawn, PolicyLiberal) == newHypothesis.SeenBlues() {
			matching++
		}
	}
	return FilterResult{NumMatching: matching, NumChecked: len(surviving)}
}

func deckMatchesPath(d Deck, hardFacts []ElectionResult, legalFollowOn []LegalBlueSet, pathAssumedLibs PlayerSet) bool {
	offset := 0
	for idx, er := range hardFacts {
		drawn, _ := er.DrawnDiscarded()
		blues := countClamped(d, offset, drawn, PolicyLiberal)
		reds := countClamped(d, offset, drawn, PolicyFascist)
		if idx < len(legalFollowOn) && legalFollowOn[idx] != nil && !legalFollowOn[idx][blues] {
			return false
		}
		if er.Kind == ResultElection {
			g := er.Gov
			if pathAssumedLibs[g.President] && er.SeenBlues() != blues {
				return false
			}
			if pathAssumedLibs[g.Chancellor] &&
				(g.ChancellorClaimedBlues > blues || 2-g.ChancellorClaimedBlues > reds) {
				return false
			}
		}
		offset += drawn
	}
	return true
}

func deckMatchesHypotheses(d Deck, hypotheses []ElectionResult) bool {
	offset := 0
	for _, er := range hypotheses {
		drawn, _ := er.DrawnDiscarded()
		if countClamped(d, offset, drawn, PolicyLiberal) != er.SeenBlues() {
			return false
		}
		offset += drawn
	}
	return true
}

// ShuffleDrawCount is the chance that the next window cards of a shuffle
// show exactly desiredBlues liberals, conditioned on the shuffle's observed
// election results and the confirmed liberals among their governments.
func ShuffleDrawCount(sa ShuffleAnalysis, confirmedLibs PlayerSet, window, desiredBlues int) FilterResult {
	base := hardFactedDecks(sa.InitialLiberal, sa.InitialFascist, sa.Results, confirmedLibs)

	offset := 0
	for _, er := range sa.Results {
		drawn, _ := er.DrawnDiscarded()
		offset += drawn
	}

	matching := 0
	for _, d := range base.Decks {
		if countClamped(d, offset, window, PolicyLiberal) == desiredBlues {
			matching++
		}
	}
	return FilterResult{NumMatching: matching, NumChecked: len(base.Decks)}
}

var nextBluesCache = struct {
	sync.Mutex
	m map[[6]int]FilterResult
}{m: make(map[[6]int]FilterResult)}

// NextBluesCount is the basic "next N cards" kernel: among all decks whose
// first window holds at least the guaranteed blue and red minimums, the
// fraction showing exactly desiredBlues liberals in that window. Memoized.
func NextBluesCount(totalLib, totalFasc, windowSize, desiredBlues, guaranteedBlues, guaranteedReds int) FilterResult {
	key := [6]int{totalLib, totalFasc, windowSize, desiredBlues, guaranteedBlues, guaranteedReds}

	nextBluesCache.Lock()
	defer nextBluesCache.Unlock()
	if fr, ok := nextBluesCache.m[key]; ok {
		return fr
	}

	full := GenerateDeckPopulation(totalLib, totalFasc)
	checked, matching := 0, 0
	for _, d := range full.Decks {
		if countClamped(d, 0, windowSize, PolicyLiberal) < guaranteedBlues ||
			countClamped(d, 0, windowSize, PolicyFascist) < guaranteedReds {
			continue
		}
		checked++
		if countClamped(d, 0, windowSize, PolicyLiberal) == desiredBlues {
			matching++
		}
	}

	fr := FilterResult{NumMatching: matching, NumChecked: checked}
	nextBluesCache.m[key] = fr
	return fr
}
