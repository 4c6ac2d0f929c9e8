package engine

// CollectInformation regenerates every fact implied by the election
// history. The list is recomputed from scratch on each query, so undoing a
// history entry silently retracts its consequences.
func CollectInformation(cfg GameConfiguration, history []ElectionResult) []Information {
	var facts []Information

	for i, er := range history {
		if er.Kind != ResultElection {
			continue
		}
		g := er.Gov
		if g.Conflict {
			facts = append(facts, PolicyConflict(g.President, g.Chancellor))
		}
		if g.ChancellorConfirmedNotHitler {
			facts = append(facts, ConfirmedNotHitler(g.Chancellor))
		}
		switch g.Action.Kind {
		case ActionKill:
			// The session continuing past the kill means Hitler survived.
			facts = append(facts, ConfirmedNotHitler(g.Action.Target))
		case ActionInvestigation:
			facts = append(facts, investigationFact(g.President, g.Action.Target, g.Action.Claim))
		case ActionRevealParty:
			// The president shows their own membership card, so the shown
			// player is the one vouching for (or accusing) the president.
			facts = append(facts, investigationFact(g.Action.Target, g.President, g.Action.Claim))
		case ActionTopDeckPeek:
			facts = append(facts, peekFacts(history, i, g)...)
		case ActionPeekAndBurn:
			if !g.Action.Discarded {
				facts = append(facts, burnPeekFacts(history, i, g)...)
			}
		}
	}

	facts = append(facts, cardCountFacts(cfg, history)...)
	return facts
}

func investigationFact(investigator, investigatee PlayerID, claim Policy) Information {
	if claim == PolicyLiberal {
		return LiberalInvestigation(investigator, investigatee)
	}
	return FascistInvestigation(investigator, investigatee)
}

// peekFacts cross-checks a top-deck peek against the next entry, provided
// no reshuffle voided the peeked cards in between.
func peekFacts(history []ElectionResult, i int, g ElectedGovernment) []Information {
	if i+1 >= len(history) {
		return nil
	}
	afterDraw := history[i].Context.AtomicDraw(3, 2)
	next := history[i+1]
	if next.Context.ShuffleIndex != afterDraw.ShuffleIndex {
		return nil
	}

	peekedBlues := 0
	for _, p := range g.Action.PeekClaim {
		peekedBlues += p.blues()
	}
	switch next.Kind {
	case ResultElection:
		if peekedBlues != next.Gov.PresidentClaimedBlues {
			return []Information{PolicyConflict(g.President, next.Gov.President)}
		}
	case ResultTopDeck:
		// The top-decked card is ground truth; a mismatch convicts the
		// peeking president alone.
		if g.Action.PeekClaim[0] != next.TopDeckPolicy {
			return []Information{AtLeastOneFascist([]PlayerID{g.President})}
		}
	}
	return nil
}

// burnPeekFacts cross-checks an unburned single-card peek. Only the
// extreme follow-up claims contradict it: a peeked blue rules out a
// claimed all-red draw and a peeked red rules out all-blue.
func burnPeekFacts(history []ElectionResult, i int, g ElectedGovernment) []Information {
	if i+1 >= len(history) {
		return nil
	}
	next := history[i+1]
	if next.Context.ShuffleIndex != g.Action.PeekContext.ShuffleIndex {
		return nil
	}

	switch next.Kind {
	case ResultElection:
		claimed := next.Gov.PresidentClaimedBlues
		if (g.Action.Claim == PolicyLiberal && claimed == 0) ||
			(g.Action.Claim == PolicyFascist && claimed == 3) {
			return []Information{PolicyConflict(g.President, next.Gov.President)}
		}
	case ResultTopDeck:
		if g.Action.Claim != next.TopDeckPolicy {
			return []Information{AtLeastOneFascist([]PlayerID{g.President})}
		}
	}
	return nil
}

// ShuffleAnalysis groups the election history by shuffle together with the
// exact deck composition that shuffle started from.
type ShuffleAnalysis struct {
	ShuffleIndex   int
	InitialLiberal int
	InitialFascist int
	Results        []ElectionResult
}

// GroupByShuffle splits the history into per-shuffle segments. Enacted
// policies leave the card pool for good; discards return on reshuffle, so
// each shuffle's composition is the initial deck minus everything enacted
// before it started.
func GroupByShuffle(cfg GameConfiguration, history []ElectionResult) []ShuffleAnalysis {
	var groups []ShuffleAnalysis
	enactedBlues := 0
	enactedReds := 0
	for _, er := range history {
		idx := er.Context.ShuffleIndex
		if len(groups) == 0 || groups[len(groups)-1].ShuffleIndex != idx {
			groups = append(groups, ShuffleAnalysis{
				ShuffleIndex:   idx,
				InitialLiberal: cfg.InitialLiberalDeckPolicies - enactedBlues,
				InitialFascist: cfg.InitialFascistDeckPolicies - enactedReds,
			})
		}
		groups[len(groups)-1].Results = append(groups[len(groups)-1].Results, er)
		blues := er.PassedBlues()
		enactedBlues += blues
		enactedReds += 1 - blues
	}
	return groups
}

// cardCountFacts applies the per-shuffle pigeonhole check: if the presidents
// of one shuffle collectively claim more blues than the shuffle held, or
// imply more reds than it held, at least one of them is a fascist.
func cardCountFacts(cfg GameConfiguration, history []ElectionResult) []Information {
	var facts []Information
	for _, group := range GroupByShuffle(cfg, history) {
		seenBlues := 0
		drawn := 0
		var presidents []PlayerID
		for _, er := range group.Results {
			d, _ := er.DrawnDiscarded()
			drawn += d
			seenBlues += er.SeenBlues()
			if er.Kind == ResultElection {
				presidents = appendUnique(presidents, er.Gov.President)
			}
		}
		if len(presidents) == 0 {
			continue
		}
		if seenBlues > group.InitialLiberal || drawn-seenBlues > group.InitialFascist {
			facts = append(facts, AtLeastOneFascist(presidents))
		}
	}
	return facts
}

func appendUnique(players []PlayerID, p PlayerID) []PlayerID {
	for _, q := range players {
		if q == p {
			return players
		}
	}
	return append(players, p)
}
