package engine

import (
	"fmt"
	"sync"
)

// Deck is one ordered permutation of the policy deck.
type Deck []Policy

// DeckPopulation is the set of all distinct decks with a fixed liberal and
// fascist card count. Every deck has length NumCards and no two decks are
// equal; the population size is C(NumCards, numLiberal).
type DeckPopulation struct {
	NumCards int
	Decks    []Deck
}

var deckPopulations = struct {
	sync.Mutex
	m map[[2]int]DeckPopulation
}{m: make(map[[2]int]DeckPopulation)}

// GenerateDeckPopulation enumerates every deck containing exactly
// numLiberal Liberal and numFascist Fascist cards. Results are memoized by
// the count pair and must be treated as read-only by callers.
func GenerateDeckPopulation(numLiberal, numFascist int) DeckPopulation {
	key := [2]int{numLiberal, numFascist}

	deckPopulations.Lock()
	defer deckPopulations.Unlock()
	if pop, ok := deckPopulations.m[key]; ok {
		return pop
	}

	numCards := numLiberal + numFascist
	pop := DeckPopulation{NumCards: numCards}
	forEachCombination(numCards, numLiberal, func(liberalSlots []int) {
		deck := make(Deck, numCards)
		for _, i := range liberalSlots {
			deck[i] = PolicyLiberal
		}
		pop.Decks = append(pop.Decks, deck)
	})

	deckPopulations.m[key] = pop
	return pop
}

// forEachCombination invokes fn for every k-subset of 0..n-1 in
// lexicographic order. The slice passed to fn is reused between calls.
func forEachCombination(n, k int, fn func([]int)) {
	if k > n || k < 0 {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)
		// advance to the next combination
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// CountWindow counts occurrences of policy in deck[offset : offset+window].
// The range must be valid; callers validate window bounds and surface
// pattern-length errors themselves.
func CountWindow(deck Deck, offset, window int, policy Policy) int {
	count := 0
	for _, p := range deck[offset : offset+window] {
		if p == policy {
			count++
		}
	}
	return count
}

// WindowHistogram maps liberal-count-in-window to the number of decks in
// the population showing that count over the first window cards.
func WindowHistogram(pop DeckPopulation, window int) (map[int]int, error) {
	if window > pop.NumCards {
		return nil, &PatternTooLongError{Have: pop.NumCards, Requested: window}
	}
	hist := make(map[int]int)
	for _, d := range pop.Decks {
		hist[CountWindow(d, 0, window, PolicyLiberal)]++
	}
	return hist, nil
}

// FilterResult is an exact, non-reduced fraction of matching over checked
// enumeration entries.
type FilterResult struct {
	NumMatching int
	NumChecked  int
}

// Probability is NumMatching/NumChecked. It is NaN when NumChecked is zero;
// callers treat a zero denominator as an impossible branch and prune
// instead of dividing.
func (f FilterResult) Probability() float64 {
	return float64(f.NumMatching) / float64(f.NumChecked)
}

// NoneOf is the zero-matching result over a population of the given size.
func NoneOf(outOf int) FilterResult {
	return FilterResult{NumMatching: 0, NumChecked: outOf}
}

// String renders the canonical "NN.N% (m/n)" display form.
func (f FilterResult) String() string {
	return fmt.Sprintf("%.1f%% (%d/%d)", f.Probability()*100.0, f.NumMatching, f.NumChecked)
}
