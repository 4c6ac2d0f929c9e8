package engine

// TreeNode is one hypothetical true draw inside a shuffle's decision tree.
// Result carries the election entry with the president's claim rewritten to
// the assumed truth; OriginalClaimedBlues keeps what was actually claimed.
type TreeNode struct {
	// Relative is the probability of this draw given the parent path.
	Relative FilterResult
	// Absolute is the product of relative probabilities from the root.
	Absolute             float64
	OriginalClaimedBlues int
	Result               ElectionResult
	Children             []*TreeNode
}

// PresidentGuaranteedLying reports whether this branch forces the president
// to have misclaimed: the assumed true draw differs from the actual claim.
// Top-deck entries are ground truth and never lie.
func (n *TreeNode) PresidentGuaranteedLying() bool {
	if n.Result.Kind == ResultTopDeck {
		return false
	}
	return n.Result.Gov.PresidentClaimedBlues != n.OriginalClaimedBlues
}

// ChancellorGuaranteedLying reports whether the chancellor's claim is
// incompatible with the assumed true draw: of three cards the president
// passes two, so the counts may differ by at most one.
func (n *TreeNode) ChancellorGuaranteedLying() bool {
	if n.Result.Kind != ResultElection {
		return false
	}
	diff := n.Result.Gov.PresidentClaimedBlues - n.Result.Gov.ChancellorClaimedBlues
	return diff > 1 || diff < -1
}

// ShuffleTree is the annotated decision tree of one shuffle.
type ShuffleTree struct {
	Shuffle ShuffleAnalysis
	Roots   []*TreeNode
}

// BuildProbabilityForest builds one annotated tree per shuffle of the
// session's history. Each election entry branches into the three draws that
// could truthfully have produced the enacted policy; branches whose implied
// liars contradict the fact database or whose draws no deck can produce are
// pruned, and the survivors carry exact relative and cumulative
// probabilities.
func BuildProbabilityForest(gs *GameState) []ShuffleTree {
	var forest []ShuffleTree
	for _, shuffle := range GroupByShuffle(gs.Config, gs.History()) {
		roots := generateSubtree(shuffle.Results)
		roots = filterPaths(roots, func(path []*TreeNode) bool {
			return pathConsistent(gs, pathLiarFacts(path))
		})
		roots = annotateRelative(gs, shuffle, roots)
		annotateAbsolute(roots)
		forest = append(forest, ShuffleTree{Shuffle: shuffle, Roots: roots})
	}
	return forest
}

func generateSubtree(results []ElectionResult) []*TreeNode {
	if len(results) == 0 {
		return nil
	}
	er := results[0]
	rest := results[1:]

	if er.Kind == ResultTopDeck {
		node := &TreeNode{
			OriginalClaimedBlues: er.PassedBlues(),
			Result:               er,
			Children:             generateSubtree(rest),
		}
		return []*TreeNode{node}
	}

	passed := er.PassedBlues()
	nodes := make([]*TreeNode, 0, 3)
	for delta := 0; delta < 3; delta++ {
		assumed := er
		assumed.Gov.PresidentClaimedBlues = passed + delta
		nodes = append(nodes, &TreeNode{
			OriginalClaimedBlues: er.Gov.PresidentClaimedBlues,
			Result:               assumed,
			Children:             generateSubtree(rest),
		})
	}
	return nodes
}

// pathLiarFacts converts the guaranteed liars along a path into single-seat
// fascist assertions; an honest player never misclaims.
func pathLiarFacts(path []*TreeNode) []Information {
	var facts []Information
	for _, n := range path {
		if n.Result.Kind != ResultElection {
			continue
		}
		if n.PresidentGuaranteedLying() {
			facts = append(facts, AtLeastOneFascist([]PlayerID{n.Result.Gov.President}))
		}
		if n.ChancellorGuaranteedLying() {
			facts = append(facts, AtLeastOneFascist([]PlayerID{n.Result.Gov.Chancellor}))
		}
	}
	return facts
}

// pathConsistent checks the fact database plus the path's liar facts for at
// least one surviving role assignment. Both relaxations are applied: the
// tree reasons about the game as usually played.
func pathConsistent(gs *GameState, extra []Information) bool {
	facts := append(gs.AllFacts(), extra...)
	_, err := FilterAssignments(gs.Config.Assignments(), facts, true, true)
	return err == nil
}

// confirmedLiberals returns the seats that are liberal in every assignment
// surviving the fact database plus the given extra facts.
func confirmedLiberals(gs *GameState, extra []Information) (PlayerSet, bool) {
	facts := append(gs.AllFacts(), extra...)
	filtered, err := FilterAssignments(gs.Config.Assignments(), facts, true, true)
	if err != nil {
		return nil, false
	}
	set := PlayerSet{}
	for pid, hist := range Histogram(filtered) {
		fr := hist[RoleLiberal]
		if fr.NumChecked > 0 && fr.NumMatching == fr.NumChecked {
			set[pid] = true
		}
	}
	return set, true
}

func filterPaths(roots []*TreeNode, keep func(path []*TreeNode) bool) []*TreeNode {
	var out []*TreeNode
	for _, r := range roots {
		if n := filterPathsRecursive(nil, r, keep); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func filterPathsRecursive(path []*TreeNode, node *TreeNode, keep func([]*TreeNode) bool) *TreeNode {
	extended := append(path[:len(path):len(path)], node)
	if len(node.Children) == 0 {
		if keep(extended) {
			return node
		}
		return nil
	}
	var kept []*TreeNode
	for _, c := range node.Children {
		if n := filterPathsRecursive(extended, c, keep); n != nil {
			kept = append(kept, n)
		}
	}
	node.Children = kept
	if len(kept) == 0 {
		return nil
	}
	return node
}

func annotateRelative(gs *GameState, shuffle ShuffleAnalysis, roots []*TreeNode) []*TreeNode {
	hardLibs, ok := confirmedLiberals(gs, nil)
	if !ok {
		hardLibs = PlayerSet{}
	}

	var kept []*TreeNode
	var constraints [][]LegalBlueSet
	for _, r := range roots {
		node, vec, ok := annotateRelativeRecursive(gs, shuffle, hardLibs, nil, r, 0)
		if ok {
			kept = append(kept, node)
			constraints = append(constraints, vec)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	followOn := foldLegalDraws(constraints)
	for _, r := range kept {
		r.Relative = ComplexCardCounter(
			shuffle.InitialLiberal, shuffle.InitialFascist,
			shuffle.Results, nil, followOn,
			hardLibs, PlayerSet{}, r.Result)
	}
	return kept
}

// foldLegalDraws merges the per-depth legal-draw sets of sibling subtrees:
// the union where every sibling constrains the depth, unconstrained as soon
// as one sibling is.
func foldLegalDraws(vecs [][]LegalBlueSet) []LegalBlueSet {
	if len(vecs) == 0 {
		return nil
	}
	out := vecs[0]
	for _, vec := range vecs[1:] {
		if len(vec) < len(out) {
			out = out[:len(vec)]
		}
		for i := range out {
			if out[i] == nil || vec[i] == nil {
				out[i] = nil
				continue
			}
			merged := LegalBlueSet{}
			for b := range out[i] {
				merged[b] = true
			}
			for b := range vec[i] {
				merged[b] = true
			}
			out[i] = merged
		}
	}
	return out
}

func pathResults(path []*TreeNode) []ElectionResult {
	out := make([]ElectionResult, len(path))
	for i, n := range path {
		out[i] = n.Result
	}
	return out
}

func annotateRelativeRecursive(
	gs *GameState,
	shuffle ShuffleAnalysis,
	hardLibs PlayerSet,
	path []*TreeNode,
	node *TreeNode,
	depth int,
) (*TreeNode, []LegalBlueSet, bool) {
	pathLibs, ok := confirmedLiberals(gs, pathLiarFacts(path))
	if !ok {
		return nil, nil, false
	}

	if len(node.Children) == 0 {
		vec := make([]LegalBlueSet, depth+1)
		node.Relative = ComplexCardCounter(
			shuffle.InitialLiberal, shuffle.InitialFascist,
			shuffle.Results, pathResults(path), vec,
			hardLibs, pathLibs, node.Result)
		if node.Relative.NumMatching == 0 {
			return nil, nil, false
		}
		vec[depth] = LegalBlueSet{node.Result.SeenBlues(): true}
		return node, vec, true
	}

	extended := append(path[:len(path):len(path)], node)
	var keptChildren []*TreeNode
	var constraints [][]LegalBlueSet
	for _, c := range node.Children {
		cn, cv, ok := annotateRelativeRecursive(gs, shuffle, hardLibs, extended, c, depth+1)
		if ok {
			keptChildren = append(keptChildren, cn)
			constraints = append(constraints, cv)
		}
	}
	if len(keptChildren) == 0 {
		return nil, nil, false
	}

	followOn := foldLegalDraws(constraints)
	hypotheses := pathResults(extended)
	var surviving []*TreeNode
	for _, c := range keptChildren {
		c.Relative = ComplexCardCounter(
			shuffle.InitialLiberal, shuffle.InitialFascist,
			shuffle.Results, hypotheses, followOn,
			hardLibs, pathLibs, c.Result)
		if c.Relative.NumMatching > 0 {
			surviving = append(surviving, c)
		}
	}
	node.Children = surviving

	followOn[depth] = LegalBlueSet{node.Result.SeenBlues(): true}
	return node, followOn, true
}

func annotateAbsolute(roots []*TreeNode) {
	for _, r := range roots {
		annotateAbsoluteRecursive(r, 1.0)
	}
}

func annotateAbsoluteRecursive(n *TreeNode, parent float64) {
	n.Absolute = parent * n.Relative.Probability()
	for _, c := range n.Children {
		annotateAbsoluteRecursive(c, n.Absolute)
	}
}

// ProbabilityConserved checks that sibling probabilities partition their
// parent's population: the matching counts sum to the largest checked count
// at every level.
func ProbabilityConserved(nodes []*TreeNode) bool {
	sum, max := 0, 0
	for _, n := range nodes {
		sum += n.Relative.NumMatching
		if n.Relative.NumChecked > max {
			max = n.Relative.NumChecked
		}
	}
	if sum != max {
		return false
	}
	for _, n := range nodes {
		if !ProbabilityConserved(n.Children) {
			return false
		}
	}
	return true
}
