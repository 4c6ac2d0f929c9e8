package engine

import "testing"

func factsOfKind(facts []Information, kind InformationKind) []Information {
	var out []Information
	for _, f := range facts {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func TestDeriveConflictFact(t *testing.T) {
	gs := newTestState(t, 5)
	mustAddGovernment(t, gs, GovernmentInput{
		President: 1, Chancellor: 2,
		PresidentClaimedBlues: 2, ChancellorClaimedBlues: 0,
	})
	conflicts := factsOfKind(gs.AllFacts(), InfoPolicyConflict)
	if len(conflicts) != 1 {
		t.Fatalf("derived %d conflicts, want 1", len(conflicts))
	}
	if conflicts[0].First != 1 || conflicts[0].Second != 2 {
		t.Fatalf("conflict between %d and %d, want 1 and 2", conflicts[0].First, conflicts[0].Second)
	}
}

func TestDeriveInvestigation(t *testing.T) {
	cfg, _ := NewStandardConfiguration(5, false)
	cfg.FascistBoard[0] = PresidentialAction{Kind: ActionInvestigation}
	gs, err := NewGameState(cfg)
	if err != nil {
		t.Fatalf("NewGameState failed: %v", err)
	}
	mustAddGovernment(t, gs, GovernmentInput{
		President: 1, Chancellor: 2,
		PresidentClaimedBlues: 0, ChancellorClaimedBlues: 0,
		ActionTarget: 3, ActionClaim: PolicyFascist,
	})
	derived := factsOfKind(gs.AllFacts(), InfoFascistInvestigation)
	if len(derived) != 1 || derived[0].First != 1 || derived[0].Second != 3 {
		t.Fatalf("derived %v, want fascist investigation 1 -> 3", derived)
	}
}

func TestDeriveRevealPartySwapsDirection(t *testing.T) {
	cfg, _ := NewStandardConfiguration(5, false)
	cfg.FascistBoard[0] = PresidentialAction{Kind: ActionRevealParty}
	gs, err := NewGameState(cfg)
	if err != nil {
		t.Fatalf("NewGameState failed: %v", err)
	}
	mustAddGovernment(t, gs, GovernmentInput{
		President: 1, Chancellor: 2,
		PresidentClaimedBlues: 0, ChancellorClaimedBlues: 0,
		ActionTarget: 3, ActionClaim: PolicyLiberal,
	})
	// The shown player vouches for the revealing president.
	derived := factsOfKind(gs.AllFacts(), InfoLiberalInvestigation)
	if len(derived) != 1 || derived[0].First != 3 || derived[0].Second != 1 {
		t.Fatalf("derived %v, want liberal investigation 3 -> 1", derived)
	}
}

func TestDerivePeekConflict(t *testing.T) {
	cfg, _ := NewStandardConfiguration(5, false)
	cfg.FascistBoard[0] = PresidentialAction{Kind: ActionTopDeckPeek}
	gs, err := NewGameState(cfg)
	if err != nil {
		t.Fatalf("NewGameState failed: %v", err)
	}
	mustAddGovernment(t, gs, GovernmentInput{
		President: 1, Chancellor: 2,
		PresidentClaimedBlues: 0, ChancellorClaimedBlues: 0,
		PeekClaim: [3]Policy{PolicyLiberal, PolicyLiberal, PolicyLiberal},
	})
	mustAddGovernment(t, gs, GovernmentInput{
		President: 2, Chancellor: 3,
		PresidentClaimedBlues: 1, ChancellorClaimedBlues: 1,
	})

	conflicts := factsOfKind(gs.AllFacts(), InfoPolicyConflict)
	if len(conflicts) != 1 || conflicts[0].First != 1 || conflicts[0].Second != 2 {
		t.Fatalf("derived %v, want peek conflict between 1 and 2", conflicts)
	}
}

func TestDerivePeekAgreementIsSilent(t *testing.T) {
	cfg, _ := NewStandardConfiguration(5, false)
	cfg.FascistBoard[0] = PresidentialAction{Kind: ActionTopDeckPeek}
	gs, err := NewGameState(cfg)
	if err != nil {
		t.Fatalf("NewGameState failed: %v", err)
	}
	mustAddGovernment(t, gs, GovernmentInput{
		President: 1, Chancellor: 2,
		PresidentClaimedBlues: 0, ChancellorClaimedBlues: 0,
		PeekClaim: [3]Policy{PolicyFascist, PolicyFascist, PolicyLiberal},
	})
	mustAddGovernment(t, gs, GovernmentInput{
		President: 2, Chancellor: 3,
		PresidentClaimedBlues: 1, ChancellorClaimedBlues: 1,
	})
	if conflicts := factsOfKind(gs.AllFacts(), InfoPolicyConflict); len(conflicts) != 0 {
		t.Fatalf("derived %v from an agreeing peek", conflicts)
	}
}

func TestDeriveCardCountDeduction(t *testing.T) {
	gs := newTestState(t, 5)
	// Three presidents together claim seven blues from a shuffle holding six.
	govs := []GovernmentInput{
		{President: 1, Chancellor: 2, PresidentClaimedBlues: 3, ChancellorClaimedBlues: 2},
		{President: 2, Chancellor: 3, PresidentClaimedBlues: 3, ChancellorClaimedBlues: 2},
		{President: 3, Chancellor: 4, PresidentClaimedBlues: 1, ChancellorClaimedBlues: 1},
	}
	for _, in := range govs {
		mustAddGovernment(t, gs, in)
	}

	deduced := factsOfKind(gs.AllFacts(), InfoAtLeastOneFascist)
	if len(deduced) != 1 {
		t.Fatalf("derived %d pigeonhole facts, want 1", len(deduced))
	}
	group := deduced[0].Group
	if len(group) != 3 || group[0] != 1 || group[1] != 2 || group[2] != 3 {
		t.Fatalf("suspect group %v, want [1 2 3]", group)
	}
}

func TestDeriveCardCountWithinBoundsIsSilent(t *testing.T) {
	gs := newTestState(t, 5)
	govs := []GovernmentInput{
		{President: 1, Chancellor: 2, PresidentClaimedBlues: 3, ChancellorClaimedBlues: 2},
		{President: 2, Chancellor: 3, PresidentClaimedBlues: 3, ChancellorClaimedBlues: 2},
	}
	for _, in := range govs {
		mustAddGovernment(t, gs, in)
	}
	if deduced := factsOfKind(gs.AllFacts(), InfoAtLeastOneFascist); len(deduced) != 0 {
		t.Fatalf("derived %v from claims within the deck's capacity", deduced)
	}
}

func TestGroupByShuffle(t *testing.T) {
	cfg, _ := NewStandardConfiguration(5, false)
	history := []ElectionResult{
		{Kind: ResultElection, Context: CardContext{CardsLeft: 17},
			Gov: ElectedGovernment{President: 1, Chancellor: 2, PolicyPassed: PolicyLiberal}},
		{Kind: ResultElection, Context: CardContext{CardsLeft: 14, CardsDiscarded: 2},
			Gov: ElectedGovernment{President: 2, Chancellor: 3, PolicyPassed: PolicyFascist}},
		{Kind: ResultElection, Context: CardContext{CardsLeft: 15, ShuffleIndex: 1},
			Gov: ElectedGovernment{President: 3, Chancellor: 4, PolicyPassed: PolicyFascist}},
	}
	groups := GroupByShuffle(cfg, history)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	first, second := groups[0], groups[1]
	if first.InitialLiberal != 6 || first.InitialFascist != 11 || len(first.Results) != 2 {
		t.Fatalf("first shuffle = %d/%d with %d entries", first.InitialLiberal, first.InitialFascist, len(first.Results))
	}
	// One blue and one red were enacted before the reshuffle.
	if second.InitialLiberal != 5 || second.InitialFascist != 10 || len(second.Results) != 1 {
		t.Fatalf("second shuffle = %d/%d with %d entries", second.InitialLiberal, second.InitialFascist, len(second.Results))
	}
}
