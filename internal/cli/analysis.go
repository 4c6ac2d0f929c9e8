package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DevJPM/sh-support/engine"
	"github.com/DevJPM/sh-support/internal/graph"
)

func (s *shell) cmdStatus(args []string) (string, error) {
	var b strings.Builder

	liberal, fascist := s.game.BoardCounts()
	fmt.Fprintf(&b, "Board: %d liberal, %d fascist policies.\n", liberal, fascist)

	ctx := s.game.CurrentContext()
	fmt.Fprintf(&b, "Deck: %d cards left, %d discarded, shuffle #%d.\n",
		ctx.CardsLeft, ctx.CardsDiscarded, ctx.ShuffleIndex+1)

	if expected := s.game.ExpectedPresident(); expected != 0 {
		fmt.Fprintf(&b, "Next presidential candidate: player %s.\n", s.reg.Format(expected))
	}
	if dead := s.game.DeadPlayers(); len(dead) > 0 {
		parts := make([]string, len(dead))
		for i, p := range dead {
			parts[i] = s.reg.Format(p)
		}
		fmt.Fprintf(&b, "Dead: %s.\n", strings.Join(parts, ", "))
	}
	if winner, over := s.game.GameOver(); over {
		side := "fascists"
		if winner == engine.PolicyLiberal {
			side = "liberals"
		}
		fmt.Fprintf(&b, "The game is over: the %s completed their track.\n", side)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *shell) filteredHistogram() (map[engine.PlayerID]engine.RoleHistogram, error) {
	filtered, err := s.game.FilteredAssignments()
	if err != nil {
		return nil, err
	}
	return engine.Histogram(filtered), nil
}

// confirmedLiberals are the seats liberal in every surviving assignment.
func (s *shell) confirmedLiberals() (engine.PlayerSet, error) {
	hist, err := s.filteredHistogram()
	if err != nil {
		return nil, err
	}
	confirmed := engine.PlayerSet{}
	for player, roles := range hist {
		fr := roles[engine.RoleLiberal]
		if fr.NumChecked > 0 && fr.NumMatching == fr.NumChecked {
			confirmed[player] = true
		}
	}
	return confirmed, nil
}

func (s *shell) cmdRoles(args []string) (string, error) {
	hist, err := s.filteredHistogram()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for seat := engine.PlayerID(1); int(seat) <= s.game.Config.TableSize; seat++ {
		roles := hist[seat]
		fmt.Fprintf(&b, "Player %s: %s Liberal, %s Fascist, %s Hitler\n",
			s.reg.Format(seat),
			roles[engine.RoleLiberal], roles[engine.RoleRegularFascist], roles[engine.RoleHitler])
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *shell) cmdHitlerSnipe(args []string) (string, error) {
	hist, err := s.filteredHistogram()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, entry := range engine.HitlerSnipe(hist) {
		fmt.Fprintf(&b, "%d. Player %s: %.1f%% (%d/%d) chance of being Hitler.\n",
			i+1, s.reg.Format(entry.Player),
			entry.Result.Probability()*100.0, entry.Result.NumMatching, entry.Result.NumChecked)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *shell) cmdLiberalPercent(args []string) (string, error) {
	hist, err := s.filteredHistogram()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, entry := range engine.LiberalPercent(hist) {
		fmt.Fprintf(&b, "Player %s: %.1f%% (%d/%d) chance of being Liberal.\n",
			s.reg.Format(entry.Player),
			entry.Result.Probability()*100.0, entry.Result.NumMatching, entry.Result.NumChecked)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *shell) cmdImpossibleTeams(args []string) (string, error) {
	filtered, err := s.game.FilteredAssignments()
	if err != nil {
		return "", err
	}
	teams := engine.ImpossibleTeams(filtered,
		s.game.Config.TableSize, s.game.Config.NumRegularFascists+1)
	if len(teams) == 0 {
		return "Every player set could still be entirely fascist.", nil
	}
	var b strings.Builder
	fmt.Fprintln(&b, "Player sets that cannot all be on the fascist team:")
	for _, team := range teams {
		parts := make([]string, len(team))
		for i, p := range team {
			parts[i] = s.reg.Format(p)
		}
		fmt.Fprintf(&b, "- %s\n", strings.Join(parts, ", "))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// cmdDraw answers draw-chance queries against the current shuffle,
// conditioning on every observed result of that shuffle and on the players
// already proven liberal.
func (s *shell) cmdDraw(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: draw <pattern>")
	}

	gameCfg := s.game.Config
	ctx := s.game.CurrentContext()
	groups := engine.GroupByShuffle(gameCfg, s.game.History())

	var sa engine.ShuffleAnalysis
	if len(groups) > 0 && groups[len(groups)-1].ShuffleIndex == ctx.ShuffleIndex {
		sa = groups[len(groups)-1]
	} else {
		// Fresh shuffle with no draws yet: the pool is the initial deck
		// minus everything enacted so far.
		liberal, fascist := s.game.BoardCounts()
		sa = engine.ShuffleAnalysis{
			ShuffleIndex:   ctx.ShuffleIndex,
			InitialLiberal: gameCfg.InitialLiberalDeckPolicies - (liberal - gameCfg.InitialPlacedLiberal),
			InitialFascist: gameCfg.InitialFascistDeckPolicies - (fascist - gameCfg.InitialPlacedFascist),
		}
	}

	pattern, err := engine.ParseClaimPattern(args[0], sa.InitialLiberal+sa.InitialFascist, 1)
	if err != nil {
		return "", err
	}
	confirmed, err := s.confirmedLiberals()
	if err != nil {
		return "", err
	}
	result := engine.ShuffleDrawCount(sa, confirmed, pattern.Length, pattern.Blues)
	return nextCardsMessage(result, pattern), nil
}

func (s *shell) cmdGenerate(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("usage: generate <liberal> <fascist>")
	}
	lib, fasc, err := parseComposition(args[0], args[1])
	if err != nil {
		return "", err
	}
	s.deckLib, s.deckFasc, s.deckSet = lib, fasc, true
	pop := engine.GenerateDeckPopulation(lib, fasc)
	return fmt.Sprintf("Successfully generated %d decks with %d blue and %d red cards in them.",
		len(pop.Decks), lib, fasc), nil
}

func (s *shell) requireDeck() error {
	if !s.deckSet {
		return fmt.Errorf("no deck population generated yet: use generate <liberal> <fascist>")
	}
	return nil
}

func (s *shell) cmdNext(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: next <pattern>")
	}
	if err := s.requireDeck(); err != nil {
		return "", err
	}
	pattern, err := engine.ParseClaimPattern(args[0], s.deckLib+s.deckFasc, 1)
	if err != nil {
		return "", err
	}
	result := engine.NextBluesCount(s.deckLib, s.deckFasc, pattern.Length, pattern.Blues, 0, 0)
	return nextCardsMessage(result, pattern), nil
}

func (s *shell) cmdDist(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: dist <window>")
	}
	if err := s.requireDeck(); err != nil {
		return "", err
	}
	window, err := strconv.Atoi(args[0])
	if err != nil || window < 1 {
		return "", fmt.Errorf("invalid window size %q", args[0])
	}
	lines, err := distributionLines(s.deckLib, s.deckFasc, window)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

func (s *shell) cmdGraph(args []string) (string, error) {
	doc := graph.Relationship(s.game, s.reg.Format)
	return s.writeGraph("graph", doc)
}

func (s *shell) cmdTree(args []string) (string, error) {
	forest := engine.BuildProbabilityForest(s.game)
	if len(forest) == 0 {
		return "No elected governments to build a tree from.", nil
	}
	doc := graph.Forest(forest, s.reg.Format)
	return s.writeGraph("tree", doc)
}

func (s *shell) writeGraph(basename, doc string) (string, error) {
	path, err := graph.WriteFile(basename, doc)
	if err != nil {
		return "", err
	}
	if cfg.DotInvocation == "" {
		return fmt.Sprintf("Wrote %s.", path), nil
	}
	if err := graph.RenderPNG(cfg.DotInvocation, basename); err != nil {
		return "", err
	}
	return fmt.Sprintf("Wrote %s and rendered %s.png.", path, basename), nil
}

func (s *shell) cmdDebugDecks(args []string) (string, error) {
	if err := s.requireDeck(); err != nil {
		return "", err
	}
	pop := engine.GenerateDeckPopulation(s.deckLib, s.deckFasc)
	var b strings.Builder
	for _, deck := range pop.Decks {
		for _, p := range deck {
			b.WriteString(p.String())
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *shell) cmdDebugRoles(args []string) (string, error) {
	return formatAssignments(s.game.Config.Assignments()), nil
}

func (s *shell) cmdDebugFilteredRoles(args []string) (string, error) {
	filtered, err := s.game.FilteredAssignments()
	if err != nil {
		return "", err
	}
	return formatAssignments(filtered), nil
}

func formatAssignments(assignments []engine.RoleAssignment) string {
	var b strings.Builder
	for _, ra := range assignments {
		for _, role := range ra {
			switch role {
			case engine.RoleHitler:
				b.WriteByte('H')
			case engine.RoleRegularFascist:
				b.WriteByte('F')
			default:
				b.WriteByte('L')
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
