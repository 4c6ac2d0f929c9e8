package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevJPM/sh-support/engine"
	"github.com/DevJPM/sh-support/internal/names"
)

func newTestShell(t *testing.T, players int) *shell {
	t.Helper()
	cfg, err := engine.NewStandardConfiguration(players, false)
	require.NoError(t, err)
	game, err := engine.NewGameState(cfg)
	require.NoError(t, err)
	return &shell{
		out:  &bytes.Buffer{},
		game: game,
		reg:  names.NewRegistry(cfg.TableSize),
	}
}

func TestParseComposition(t *testing.T) {
	lib, fasc, err := parseComposition("6", "11")
	require.NoError(t, err)
	assert.Equal(t, 6, lib)
	assert.Equal(t, 11, fasc)

	_, _, err = parseComposition("x", "11")
	assert.Error(t, err)
	_, _, err = parseComposition("0", "0")
	assert.Error(t, err)
}

func TestNextCardsMessage(t *testing.T) {
	pattern, err := engine.ParseClaimPattern("rrb", 3, 1)
	require.NoError(t, err)
	msg := nextCardsMessage(engine.FilterResult{NumMatching: 1, NumChecked: 3}, pattern)
	assert.Equal(t,
		"There is a 33.3% (1/3) chance for the claim pattern RRB to match the next 3 cards.",
		msg)
}

func TestDistributionLines(t *testing.T) {
	lines, err := distributionLines(1, 2, 2)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "RR: 33.3% (1/3)", lines[0])
	assert.Equal(t, "RB: 66.7% (2/3)", lines[1])
	assert.Equal(t, "BB: 0.0% (0/3)", lines[2])
}

func TestShellDeckLab(t *testing.T) {
	s := newTestShell(t, 7)

	_, err := s.cmdNext([]string{"rrb"})
	assert.Error(t, err, "next before generate must fail")

	msg, err := s.cmdGenerate([]string{"1", "2"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully generated 3 decks with 1 blue and 2 red cards in them.", msg)

	msg, err = s.cmdNext([]string{"rb"})
	require.NoError(t, err)
	assert.Contains(t, msg, "66.7% (2/3)")

	msg, err = s.cmdDist([]string{"2"})
	require.NoError(t, err)
	assert.Equal(t, "RR: 33.3% (1/3)\nRB: 66.7% (2/3)\nBB: 0.0% (0/3)", msg)
}

func TestShellGovernmentRecordsClaims(t *testing.T) {
	s := newTestShell(t, 7)
	require.NoError(t, s.reg.Register(1, "Alice"))

	msg, err := s.cmdGovernment([]string{"alice", "2", "rbb", "rb"})
	require.NoError(t, err)
	assert.Equal(t,
		"Successfully added a government with president Alice {1} (claimed 2 blues) and chancellor 2 (claimed 1 blues).",
		msg)

	history := s.game.History()
	require.Len(t, history, 1)
	assert.Equal(t, engine.PlayerID(1), history[0].Gov.President)
	assert.Equal(t, 2, history[0].Gov.PresidentClaimedBlues)
	assert.Equal(t, engine.PolicyLiberal, history[0].Gov.PolicyPassed)
}

func TestShellGovernmentActionArgs(t *testing.T) {
	s := newTestShell(t, 7)

	// First fascist policy on the 7-player board unlocks nothing; the
	// second unlocks an investigation and needs target and claim.
	_, err := s.cmdGovernment([]string{"1", "2", "rrr", "rr"})
	require.NoError(t, err)

	_, err = s.cmdGovernment([]string{"2", "3", "rrr", "rr"})
	require.Error(t, err, "missing investigation arguments must be rejected")
	assert.Contains(t, err.Error(), "unlocks the investigation action",
		"the error must name the unlocked action")

	msg, err := s.cmdGovernment([]string{"2", "3", "rrr", "rr", "5", "f"})
	require.NoError(t, err)
	assert.Contains(t, msg, "president 2")

	history := s.game.History()
	require.Len(t, history, 2)
	action := history[1].Gov.Action
	assert.Equal(t, engine.ActionInvestigation, action.Kind)
	assert.Equal(t, engine.PlayerID(5), action.Target)
	assert.Equal(t, engine.PolicyFascist, action.Claim)
}

func TestShellTopDeckAndPop(t *testing.T) {
	s := newTestShell(t, 7)

	msg, err := s.cmdTopDeck([]string{"b"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully recorded a top-decked B policy.", msg)

	msg, err = s.cmdPop(nil)
	require.NoError(t, err)
	assert.Equal(t, "Successfully removed the top-decked B policy.", msg)

	_, err = s.cmdPop(nil)
	assert.Error(t, err)
}

func TestShellFactLifecycle(t *testing.T) {
	s := newTestShell(t, 7)

	msg, err := s.cmdHardFact([]string{"3", "liberal"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully recorded that player 3 is Liberal.", msg)

	_, err = s.cmdConflict([]string{"1", "2"})
	require.NoError(t, err)

	msg, err = s.cmdShowFacts(nil)
	require.NoError(t, err)
	assert.Contains(t, msg, "1. Player 3 is known to be Liberal.")
	assert.Contains(t, msg, "2. Player 1 is in a policy-based conflict with player 2.")

	msg, err = s.cmdRemoveFact([]string{"1"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully removed the fact #1 from the database.", msg)
	assert.Len(t, s.game.ManualFacts(), 1)

	_, err = s.cmdRemoveFact([]string{"7"})
	assert.Error(t, err)
}

func TestShellRolesReportsAllSeats(t *testing.T) {
	s := newTestShell(t, 7)
	msg, err := s.cmdRoles(nil)
	require.NoError(t, err)

	lines := strings.Split(msg, "\n")
	require.Len(t, lines, 7)
	// 105 assignments for 7 players: 4 of 7 seats liberal, 2 regular
	// fascist, 1 Hitler.
	assert.Equal(t, "Player 1: 57.1% (60/105) Liberal, 28.6% (30/105) Fascist, 14.3% (15/105) Hitler", lines[0])
}

func TestShellHitlerSnipeOrdering(t *testing.T) {
	s := newTestShell(t, 7)
	require.NoError(t, s.game.AddFact(engine.ConfirmedNotHitler(4)))

	msg, err := s.cmdHitlerSnipe(nil)
	require.NoError(t, err)
	lines := strings.Split(msg, "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasSuffix(lines[6], "Player 4: 0.0% (0/90) chance of being Hitler."),
		"cleared player must rank last, got %q", lines[6])
}

func TestShellDrawFreshGame(t *testing.T) {
	s := newTestShell(t, 7)

	// Nothing observed yet: plain composition odds over 6 blue, 11 red.
	msg, err := s.cmdDraw([]string{"b"})
	require.NoError(t, err)
	assert.Contains(t, msg, "to match the next 1 cards.")
	assert.Contains(t, msg, "(4368/12376)")
}

func TestShellToggles(t *testing.T) {
	s := newTestShell(t, 7)

	msg, err := s.cmdPassiveHitler(nil)
	require.NoError(t, err)
	assert.Equal(t, "The passive-Hitler assumption is on.", msg)

	_, err = s.cmdPassiveHitler([]string{"off"})
	require.NoError(t, err)
	assert.False(t, s.game.AssumePassiveHitler)

	_, err = s.cmdFascistConflict([]string{"bogus"})
	assert.Error(t, err)
}

func TestShellStatus(t *testing.T) {
	s := newTestShell(t, 7)
	require.NoError(t, s.game.AddGovernment(engine.GovernmentInput{
		President:              1,
		Chancellor:             2,
		PresidentClaimedBlues:  2,
		ChancellorClaimedBlues: 1,
	}))

	msg, err := s.cmdStatus(nil)
	require.NoError(t, err)
	assert.Contains(t, msg, "Board: 1 liberal, 0 fascist policies.")
	assert.Contains(t, msg, "Deck: 14 cards left, 2 discarded, shuffle #1.")
	assert.Contains(t, msg, "Next presidential candidate: player 2.")
}
