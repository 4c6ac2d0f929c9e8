package engine

import (
	"errors"
	"testing"
)

func TestGenerateRoleAssignmentsSizes(t *testing.T) {
	cases := []struct {
		table, fascists, want int
	}{
		{5, 1, 20},   // C(4,1) * 5
		{7, 2, 105},  // C(6,2) * 7
		{10, 3, 840}, // C(9,3) * 10
	}
	for _, c := range cases {
		pop := GenerateRoleAssignments(c.table, c.fascists)
		if len(pop) != c.want {
			t.Errorf("assignments(%d,%d) = %d, want %d", c.table, c.fascists, len(pop), c.want)
		}
	}
}

func TestGenerateRoleAssignmentsComposition(t *testing.T) {
	for _, ra := range GenerateRoleAssignments(7, 2) {
		hitlers, fascists, liberals := 0, 0, 0
		for _, role := range ra {
			switch role {
			case RoleHitler:
				hitlers++
			case RoleRegularFascist:
				fascists++
			case RoleLiberal:
				liberals++
			}
		}
		if hitlers != 1 || fascists != 2 || liberals != 4 {
			t.Fatalf("assignment %v has %d/%d/%d hitler/fascist/liberal", ra, hitlers, fascists, liberals)
		}
	}
}

func TestGenerateRoleAssignmentsDistinct(t *testing.T) {
	pop := GenerateRoleAssignments(6, 1)
	seen := make(map[string]bool)
	for _, ra := range pop {
		key := make([]byte, len(ra))
		for i, r := range ra {
			key[i] = byte('0' + r)
		}
		if seen[string(key)] {
			t.Fatalf("duplicate assignment %v", ra)
		}
		seen[string(key)] = true
	}
}

func TestRoleLookup(t *testing.T) {
	ra := RoleAssignment{RoleHitler, RoleLiberal, RoleRegularFascist}
	role, err := ra.Role(3)
	if err != nil {
		t.Fatalf("Role(3) failed: %v", err)
	}
	if role != RoleRegularFascist {
		t.Fatalf("Role(3) = %v", role)
	}

	_, err = ra.Role(4)
	var bad *BadPlayerIDError
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadPlayerIDError, got %v", err)
	}
	if _, err = ra.Role(0); err == nil {
		t.Fatal("expected error for seat 0")
	}
}

func TestFascistSeats(t *testing.T) {
	ra := RoleAssignment{RoleLiberal, RoleHitler, RoleLiberal, RoleRegularFascist, RoleLiberal}
	seats := ra.FascistSeats()
	if len(seats) != 2 || seats[0] != 2 || seats[1] != 4 {
		t.Fatalf("FascistSeats = %v, want [2 4]", seats)
	}
}
