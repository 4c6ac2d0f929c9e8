package engine

import (
	"errors"
	"fmt"
)

// ErrLogicalInconsistency signals that the accumulated fact set admits no
// role assignment (or no deck) under the active relaxation settings. It is
// fatal to the query, never to the session: the triggering mutation is
// rejected whole.
var ErrLogicalInconsistency = errors.New(
	"detected a logical inconsistency, check your fact database to debug it")

// BadPlayerIDError reports a fact or command referencing a seat outside the
// configured table.
type BadPlayerIDError struct {
	ID PlayerID
}

func (e *BadPlayerIDError) Error() string {
	return fmt.Sprintf("failed to recognize player %d", e.ID)
}

// PatternTooLongError reports a claim pattern longer than the window it
// must describe.
type PatternTooLongError struct {
	Have      int
	Requested int
}

func (e *PatternTooLongError) Error() string {
	return fmt.Sprintf("requested a pattern of length %d but only had %d cards available",
		e.Requested, e.Have)
}

// PatternTooShortError reports a claim pattern shorter than the required
// window.
type PatternTooShortError struct {
	Want      int
	Requested int
}

func (e *PatternTooShortError) Error() string {
	return fmt.Sprintf("presented a pattern of length %d but the required pattern length is %d",
		e.Requested, e.Want)
}

// ParsePolicyError reports an unrecognized policy token.
type ParsePolicyError struct {
	Token string
}

func (e *ParsePolicyError) Error() string {
	return fmt.Sprintf("failed to parse single-letter policy name, found %q instead", e.Token)
}

// ParseRoleError reports an unrecognized role token.
type ParseRoleError struct {
	Token string
}

func (e *ParseRoleError) Error() string {
	return fmt.Sprintf("failed to parse role name, found %q instead", e.Token)
}

// BadFactIndexError reports a removal index that does not point at a stored
// fact. Removing a fact that was never added is an error, not a no-op.
type BadFactIndexError struct {
	Index int
}

func (e *BadFactIndexError) Error() string {
	return fmt.Sprintf("fact #%d does not exist", e.Index)
}

// BadPlayerCountError reports a table size outside the supported 5..10
// range.
type BadPlayerCountError struct {
	Count int
}

func (e *BadPlayerCountError) Error() string {
	return fmt.Sprintf("unsupported table size %d", e.Count)
}

// ErrGameOver rejects history mutations once a faction has won. The
// analysis commands stay available on the final state.
var ErrGameOver = errors.New("the game is already over")

// ErrNoHistory rejects an undo on an empty election log.
var ErrNoHistory = errors.New("no election history to remove")

// ClaimOutOfRangeError reports a blue-count claim that does not fit its
// draw window.
type ClaimOutOfRangeError struct {
	Claimed int
	Window  int
}

func (e *ClaimOutOfRangeError) Error() string {
	return fmt.Sprintf("a claim of %d blues does not fit a window of %d cards", e.Claimed, e.Window)
}

// IneligibleError reports a proposed president, chancellor or action target
// that violates game-state legality. It is raised before any mutation.
type IneligibleError struct {
	Player PlayerID
	Reason string
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("player %d is ineligible: %s", e.Player, e.Reason)
}

// InvalidConfigurationError reports a GameConfiguration field outside its
// documented bounds.
type InvalidConfigurationError struct {
	Field string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("game configuration field %s is out of bounds", e.Field)
}
