// Package names maps seat numbers to registered player names and resolves
// user input back to seats, tolerating small typos.
package names

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/DevJPM/sh-support/engine"
)

// UnknownNameError reports an input that matched no registered name closely
// enough, or matched several about equally well.
type UnknownNameError struct {
	Input string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("failed to resolve %q to a player", e.Input)
}

// Registry holds the seat-to-name mapping of one session.
type Registry struct {
	tableSize int
	names     map[engine.PlayerID]string
}

func NewRegistry(tableSize int) *Registry {
	return &Registry{
		tableSize: tableSize,
		names:     make(map[engine.PlayerID]string),
	}
}

// Register assigns a display name to a seat. An empty name clears it.
func (r *Registry) Register(p engine.PlayerID, name string) error {
	if p < 1 || int(p) > r.tableSize {
		return &engine.BadPlayerIDError{ID: p}
	}
	if name == "" {
		delete(r.names, p)
		return nil
	}
	r.names[p] = name
	return nil
}

// Names returns the registered names keyed by seat.
func (r *Registry) Names() map[engine.PlayerID]string {
	out := make(map[engine.PlayerID]string, len(r.names))
	for p, n := range r.names {
		out[p] = n
	}
	return out
}

// Restore replaces the registry content, e.g. after loading a session.
func (r *Registry) Restore(names map[engine.PlayerID]string) {
	r.names = make(map[engine.PlayerID]string, len(names))
	for p, n := range names {
		if n != "" && p >= 1 && int(p) <= r.tableSize {
			r.names[p] = n
		}
	}
}

// Format renders a seat for display: "name {seat}" when a name is
// registered, the bare seat number otherwise.
func (r *Registry) Format(p engine.PlayerID) string {
	if name, ok := r.names[p]; ok {
		return fmt.Sprintf("%s {%d}", name, p)
	}
	return strconv.Itoa(int(p))
}

// Resolve turns user input into a seat. Digits are taken literally; anything
// else is matched against the registered names by edit distance. A lone
// candidate is accepted up to distance three; with several candidates the
// best must either match exactly or beat the runner-up by at least two.
func (r *Registry) Resolve(input string) (engine.PlayerID, error) {
	if seat, err := strconv.Atoi(input); err == nil {
		return engine.PlayerID(seat), nil
	}

	needle := strings.ToLower(input)
	type candidate struct {
		seat  engine.PlayerID
		score int
	}
	var candidates []candidate
	for seat, name := range r.names {
		candidates = append(candidates, candidate{
			seat:  seat,
			score: levenshtein.ComputeDistance(needle, strings.ToLower(name)),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score < candidates[j].score
		}
		return candidates[i].seat < candidates[j].seat
	})

	switch {
	case len(candidates) == 0:
		return 0, &UnknownNameError{Input: input}
	case len(candidates) == 1:
		if candidates[0].score >= 4 {
			return 0, &UnknownNameError{Input: input}
		}
		return candidates[0].seat, nil
	default:
		best, backup := candidates[0], candidates[1]
		margin := backup.score - 2
		if margin < 0 {
			margin = 0
		}
		if margin < best.score && best.score != 0 {
			return 0, &UnknownNameError{Input: input}
		}
		return best.seat, nil
	}
}
