package engine

import "sync"

// PlayerID is a 1-based seat number at the table.
type PlayerID int

// RoleAssignment maps every seat to a secret role. Seat s is stored at
// index s-1; every assignment holds exactly one Hitler and a fixed number
// of regular fascists, everyone else liberal.
type RoleAssignment []SecretRole

// Role looks up the role of a seat, failing on seats outside the table.
func (ra RoleAssignment) Role(p PlayerID) (SecretRole, error) {
	if p < 1 || int(p) > len(ra) {
		return RoleLiberal, &BadPlayerIDError{ID: p}
	}
	return ra[p-1], nil
}

// TableSize is the number of seats covered by the assignment.
func (ra RoleAssignment) TableSize() int { return len(ra) }

// FascistSeats lists the seats holding fascist roles (Hitler included) in
// ascending order.
func (ra RoleAssignment) FascistSeats() []PlayerID {
	var out []PlayerID
	for i, role := range ra {
		if role.IsFascist() {
			out = append(out, PlayerID(i+1))
		}
	}
	return out
}

var roleAssignments = struct {
	sync.Mutex
	m map[[2]int][]RoleAssignment
}{m: make(map[[2]int][]RoleAssignment)}

// GenerateRoleAssignments enumerates every assignment of one Hitler and
// numRegularFascists regular fascists over tableSize seats. The population
// size is C(tableSize-1, numRegularFascists) * tableSize. Results are
// memoized by the parameter pair and must be treated as read-only.
func GenerateRoleAssignments(tableSize, numRegularFascists int) []RoleAssignment {
	key := [2]int{tableSize, numRegularFascists}

	roleAssignments.Lock()
	defer roleAssignments.Unlock()
	if pop, ok := roleAssignments.m[key]; ok {
		return pop
	}

	var pop []RoleAssignment
	// Choose the fascist slots among the tableSize-1 non-Hitler seats,
	// then place Hitler in each possible seat. Fascist slot indices at or
	// above the Hitler seat shift up by one to skip it.
	forEachCombination(tableSize-1, numRegularFascists, func(fascSlots []int) {
		for hitler := 0; hitler < tableSize; hitler++ {
			ra := make(RoleAssignment, tableSize)
			ra[hitler] = RoleHitler
			for _, fp := range fascSlots {
				if fp >= hitler {
					ra[fp+1] = RoleRegularFascist
				} else {
					ra[fp] = RoleRegularFascist
				}
			}
			pop = append(pop, ra)
		}
	})

	roleAssignments.m[key] = pop
	return pop
}
