package engine

import "sort"

// universallyDeducible reports whether the assignment is consistent with
// the fact under any self-consistent account of the rules, regardless of
// honesty assumptions. A fact referencing an unknown seat is a hard error.
func universallyDeducible(ra RoleAssignment, in Information) (bool, error) {
	switch in.Kind {
	case InfoConfirmedNotHitler:
		role, err := ra.Role(in.First)
		if err != nil {
			return false, err
		}
		return role != RoleHitler, nil
	case InfoPolicyConflict:
		left, err := ra.Role(in.First)
		if err != nil {
			return false, err
		}
		right, err := ra.Role(in.Second)
		if err != nil {
			return false, err
		}
		return left.IsFascist() || right.IsFascist(), nil
	case InfoLiberalInvestigation:
		investigator, err := ra.Role(in.First)
		if err != nil {
			return false, err
		}
		investigatee, err := ra.Role(in.Second)
		if err != nil {
			return false, err
		}
		// A fascist investigator may lie about a fascist investigatee.
		return investigatee == RoleLiberal ||
			(investigator.IsFascist() && investigatee.IsFascist()), nil
	case InfoFascistInvestigation:
		investigator, err := ra.Role(in.First)
		if err != nil {
			return false, err
		}
		investigatee, err := ra.Role(in.Second)
		if err != nil {
			return false, err
		}
		return investigator.IsFascist() || investigatee.IsFascist(), nil
	case InfoHardFact:
		role, err := ra.Role(in.First)
		if err != nil {
			return false, err
		}
		return role == in.Role, nil
	case InfoAtLeastOneFascist:
		for _, p := range in.Group {
			role, err := ra.Role(p)
			if err != nil {
				return false, err
			}
			if role.IsFascist() {
				return true, nil
			}
		}
		return false, nil
	}
	return true, nil
}

// noAggressiveHitler excludes assignments that would require Hitler to
// actively lie: Hitler in a policy conflict, or Hitler investigating with a
// fascist result.
func noAggressiveHitler(ra RoleAssignment, in Information) (bool, error) {
	switch in.Kind {
	case InfoPolicyConflict:
		left, err := ra.Role(in.First)
		if err != nil {
			return false, err
		}
		right, err := ra.Role(in.Second)
		if err != nil {
			return false, err
		}
		return left != RoleHitler && right != RoleHitler, nil
	case InfoFascistInvestigation:
		investigator, err := ra.Role(in.First)
		if err != nil {
			return false, err
		}
		return investigator != RoleHitler, nil
	}
	return true, nil
}

// noFascistFascistConflict excludes assignments that explain a conflict or
// fascist investigation by two fascist-team players attacking each other.
func noFascistFascistConflict(ra RoleAssignment, in Information) (bool, error) {
	switch in.Kind {
	case InfoPolicyConflict:
		left, err := ra.Role(in.First)
		if err != nil {
			return false, err
		}
		right, err := ra.Role(in.Second)
		if err != nil {
			return false, err
		}
		return left.IsFascist() != right.IsFascist(), nil
	case InfoFascistInvestigation:
		investigator, err := ra.Role(in.First)
		if err != nil {
			return false, err
		}
		investigatee, err := ra.Role(in.Second)
		if err != nil {
			return false, err
		}
		return investigator.IsFascist() != investigatee.IsFascist(), nil
	}
	return true, nil
}

// ValidRoleAssignment tests an assignment against every fact, applying the
// two opt-in relaxation toggles on top of the universal rules.
func ValidRoleAssignment(ra RoleAssignment, facts []Information, assumePassiveHitler, assumeNoFascistConflict bool) (bool, error) {
	for _, in := range facts {
		ok, err := universallyDeducible(ra, in)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		if assumePassiveHitler {
			ok, err = noAggressiveHitler(ra, in)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		if assumeNoFascistConflict {
			ok, err = noFascistFascistConflict(ra, in)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

// FilterAssignments retains the assignments consistent with every fact.
// An empty result is a hard stop: the fact set is mutually contradictory
// under the current relaxation settings.
func FilterAssignments(population []RoleAssignment, facts []Information, assumePassiveHitler, assumeNoFascistConflict bool) ([]RoleAssignment, error) {
	var filtered []RoleAssignment
	for _, ra := range population {
		ok, err := ValidRoleAssignment(ra, facts, assumePassiveHitler, assumeNoFascistConflict)
		if err != nil {
			return nil, err
		}
		if ok {
			filtered = append(filtered, ra)
		}
	}
	if len(filtered) == 0 {
		return nil, ErrLogicalInconsistency
	}
	return filtered, nil
}

// RoleHistogram holds, per role, the exact fraction of filtered
// assignments giving the player that role. The denominator is the filtered
// population size and is shared across roles.
type RoleHistogram map[SecretRole]FilterResult

// Histogram computes the per-player role histogram of a filtered
// population.
func Histogram(filtered []RoleAssignment) map[PlayerID]RoleHistogram {
	out := make(map[PlayerID]RoleHistogram)
	if len(filtered) == 0 {
		return out
	}
	total := len(filtered)
	for _, ra := range filtered {
		for i, role := range ra {
			pid := PlayerID(i + 1)
			if out[pid] == nil {
				out[pid] = RoleHistogram{}
			}
			fr := out[pid][role]
			fr.NumMatching++
			out[pid][role] = fr
		}
	}
	for _, hist := range out {
		for role, fr := range hist {
			fr.NumChecked = total
			hist[role] = fr
		}
	}
	return out
}

// SnipeEntry is one row of the Hitler-snipe ranking.
type SnipeEntry struct {
	Player PlayerID
	Result FilterResult
}

// HitlerSnipe ranks all players by descending probability of holding the
// Hitler role. Ties keep ascending seat order.
func HitlerSnipe(histogram map[PlayerID]RoleHistogram) []SnipeEntry {
	entries := rankRole(histogram, RoleHitler)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Result.NumMatching > entries[j].Result.NumMatching
	})
	return entries
}

// LiberalPercent reports the per-player probability of being liberal in
// seat order.
func LiberalPercent(histogram map[PlayerID]RoleHistogram) []SnipeEntry {
	return rankRole(histogram, RoleLiberal)
}

func rankRole(histogram map[PlayerID]RoleHistogram, role SecretRole) []SnipeEntry {
	players := make([]PlayerID, 0, len(histogram))
	for pid := range histogram {
		players = append(players, pid)
	}
	sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })

	entries := make([]SnipeEntry, 0, len(players))
	for _, pid := range players {
		hist := histogram[pid]
		total := 0
		for _, fr := range hist {
			total = fr.NumChecked
			break
		}
		entries = append(entries, SnipeEntry{
			Player: pid,
			Result: FilterResult{NumMatching: hist[role].NumMatching, NumChecked: total},
		})
	}
	return entries
}

// ImpossibleTeams finds the minimal player subsets that cannot all be
// fascist in any surviving assignment. Subsets are explored by increasing
// size; supersets of an already-impossible subset are pruned rather than
// enumerated.
func ImpossibleTeams(filtered []RoleAssignment, tableSize, numFascists int) [][]PlayerID {
	legalTeams := make([]map[PlayerID]bool, 0, len(filtered))
	for _, ra := range filtered {
		team := make(map[PlayerID]bool)
		for _, p := range ra.FascistSeats() {
			team[p] = true
		}
		legalTeams = append(legalTeams, team)
	}

	var impossible [][]PlayerID
	for size := 1; size <= numFascists; size++ {
		forEachCombination(tableSize, size, func(slots []int) {
			candidate := make([]PlayerID, len(slots))
			for i, s := range slots {
				candidate[i] = PlayerID(s + 1)
			}
			for _, found := range impossible {
				if subsetOf(found, candidate) {
					return
				}
			}
			for _, legal := range legalTeams {
				if containedIn(candidate, legal) {
					return
				}
			}
			impossible = append(impossible, candidate)
		})
	}
	return impossible
}

func subsetOf(sub, super []PlayerID) bool {
	set := make(map[PlayerID]bool, len(super))
	for _, p := range super {
		set[p] = true
	}
	for _, p := range sub {
		if !set[p] {
			return false
		}
	}
	return true
}

func containedIn(candidate []PlayerID, team map[PlayerID]bool) bool {
	for _, p := range candidate {
		if !team[p] {
			return false
		}
	}
	return true
}
