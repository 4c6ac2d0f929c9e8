package engine

import (
	"math"
	"testing"
)

func TestForestSingleLiberalGovernment(t *testing.T) {
	gs := newTestState(t, 5)
	mustAddGovernment(t, gs, GovernmentInput{
		President: 1, Chancellor: 2,
		PresidentClaimedBlues: 3, ChancellorClaimedBlues: 2,
	})

	forest := BuildProbabilityForest(gs)
	if len(forest) != 1 {
		t.Fatalf("got %d trees, want 1", len(forest))
	}
	tree := forest[0]
	if tree.Shuffle.InitialLiberal != 6 || tree.Shuffle.InitialFascist != 11 {
		t.Fatalf("shuffle composition %d/%d, want 6/11",
			tree.Shuffle.InitialLiberal, tree.Shuffle.InitialFascist)
	}

	// A blue was enacted, so the true draw held one, two or three blues.
	if len(tree.Roots) != 3 {
		t.Fatalf("got %d roots, want 3", len(tree.Roots))
	}
	seen := map[int]bool{}
	for _, root := range tree.Roots {
		seen[root.Result.Gov.PresidentClaimedBlues] = true
		if root.OriginalClaimedBlues != 3 {
			t.Fatalf("original claim %d, want 3", root.OriginalClaimedBlues)
		}
	}
	for _, blues := range []int{1, 2, 3} {
		if !seen[blues] {
			t.Fatalf("missing branch for %d blues (got %v)", blues, seen)
		}
	}

	if !ProbabilityConserved(tree.Roots) {
		t.Fatal("sibling probabilities do not partition the population")
	}
	total := 0.0
	for _, root := range tree.Roots {
		total += root.Absolute
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Fatalf("root probabilities sum to %v, want 1", total)
	}
}

func TestForestLiarBranchesMarked(t *testing.T) {
	gs := newTestState(t, 5)
	mustAddGovernment(t, gs, GovernmentInput{
		President: 1, Chancellor: 2,
		PresidentClaimedBlues: 3, ChancellorClaimedBlues: 2,
	})

	forest := BuildProbabilityForest(gs)
	for _, root := range forest[0].Roots {
		assumed := root.Result.Gov.PresidentClaimedBlues
		wantLying := assumed != 3
		if root.PresidentGuaranteedLying() != wantLying {
			t.Fatalf("branch %d blues: president lying = %v, want %v",
				assumed, root.PresidentGuaranteedLying(), wantLying)
		}
		// The chancellor claimed two blues; only the one-blue branch is out
		// of passing range.
		wantChancellor := assumed == 0
		if root.ChancellorGuaranteedLying() != wantChancellor {
			t.Fatalf("branch %d blues: chancellor lying = %v, want %v",
				assumed, root.ChancellorGuaranteedLying(), wantChancellor)
		}
	}
}

func TestForestPrunesContradictedPaths(t *testing.T) {
	gs := newTestState(t, 5)
	// Both government members are confirmed liberals, so no branch may
	// require either of them to lie.
	for _, p := range []PlayerID{1, 2} {
		if err := gs.AddFact(HardFact(p, RoleLiberal)); err != nil {
			t.Fatalf("AddFact failed: %v", err)
		}
	}
	mustAddGovernment(t, gs, GovernmentInput{
		President: 1, Chancellor: 2,
		PresidentClaimedBlues: 3, ChancellorClaimedBlues: 2,
	})

	forest := BuildProbabilityForest(gs)
	roots := forest[0].Roots
	if len(roots) != 1 {
		t.Fatalf("got %d roots, want only the honest branch", len(roots))
	}
	if roots[0].PresidentGuaranteedLying() {
		t.Fatal("surviving branch requires a confirmed liberal to lie")
	}
	if roots[0].Result.Gov.PresidentClaimedBlues != 3 {
		t.Fatalf("surviving branch assumes %d blues, want 3", roots[0].Result.Gov.PresidentClaimedBlues)
	}
	if math.Abs(roots[0].Absolute-1.0) > 1e-9 {
		t.Fatalf("single surviving branch has probability %v, want 1", roots[0].Absolute)
	}
}

func TestForestTwoGovernmentsConserved(t *testing.T) {
	gs := newTestState(t, 5)
	mustAddGovernment(t, gs, GovernmentInput{
		President: 1, Chancellor: 2,
		PresidentClaimedBlues: 2, ChancellorClaimedBlues: 1,
	})
	mustAddGovernment(t, gs, GovernmentInput{
		President: 2, Chancellor: 3,
		PresidentClaimedBlues: 0, ChancellorClaimedBlues: 0,
	})

	forest := BuildProbabilityForest(gs)
	tree := forest[0]
	if !ProbabilityConserved(tree.Roots) {
		t.Fatal("sibling probabilities do not partition the population")
	}
	for _, root := range tree.Roots {
		if len(root.Children) == 0 {
			t.Fatalf("root for %d blues has no surviving children", root.Result.Gov.PresidentClaimedBlues)
		}
		for _, child := range root.Children {
			if child.Relative.NumMatching == 0 {
				t.Fatal("kept a zero-probability branch")
			}
			if child.Absolute > root.Absolute+1e-9 {
				t.Fatal("child more probable than its parent path")
			}
		}
	}
}

func TestForestTopDeckBranchIsSingular(t *testing.T) {
	gs := newTestState(t, 5)
	if err := gs.AddTopDeck(PolicyFascist); err != nil {
		t.Fatalf("AddTopDeck failed: %v", err)
	}

	forest := BuildProbabilityForest(gs)
	roots := forest[0].Roots
	if len(roots) != 1 {
		t.Fatalf("got %d roots for a top-deck, want 1", len(roots))
	}
	if roots[0].PresidentGuaranteedLying() || roots[0].ChancellorGuaranteedLying() {
		t.Fatal("top-deck entries cannot lie")
	}
}
