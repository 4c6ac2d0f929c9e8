package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/DevJPM/sh-support/engine"
)

func (s *shell) resolvePlayer(input string) (engine.PlayerID, error) {
	p, err := s.reg.Resolve(input)
	if err != nil {
		return 0, err
	}
	if !s.game.Config.PlayerExists(p) {
		return 0, &engine.BadPlayerIDError{ID: p}
	}
	return p, nil
}

func (s *shell) cmdName(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("usage: name <seat> [display name]")
	}
	seat, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("invalid seat number %q", args[0])
	}
	display := strings.Join(args[1:], " ")
	if err := s.reg.Register(engine.PlayerID(seat), display); err != nil {
		return "", err
	}
	if display == "" {
		return fmt.Sprintf("Cleared the name of player %d.", seat), nil
	}
	return fmt.Sprintf("Successfully registered the name %s for player %d.", display, seat), nil
}

// cmdGovernment records one elected government. The trailing arguments
// depend on the presidential action the government unlocks; the handler
// derives the enacted policy from the claims first to know which slot (if
// any) fires.
func (s *shell) cmdGovernment(args []string) (string, error) {
	if len(args) < 4 {
		return "", fmt.Errorf("usage: government <president> <chancellor> <president claim> <chancellor claim> [action args]")
	}
	president, err := s.resolvePlayer(args[0])
	if err != nil {
		return "", err
	}
	chancellor, err := s.resolvePlayer(args[1])
	if err != nil {
		return "", err
	}
	presPattern, err := engine.ParseClaimPattern(args[2], 3, 3)
	if err != nil {
		return "", err
	}
	chancPattern, err := engine.ParseClaimPattern(args[3], 2, 2)
	if err != nil {
		return "", err
	}

	in := engine.GovernmentInput{
		President:              president,
		Chancellor:             chancellor,
		PresidentClaimedBlues:  presPattern.Blues,
		ChancellorClaimedBlues: chancPattern.Blues,
	}
	if err := s.parseActionArgs(&in, args[4:]); err != nil {
		return "", err
	}
	if err := s.game.AddGovernment(in); err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"Successfully added a government with president %s (claimed %d blues) and chancellor %s (claimed %d blues).",
		s.reg.Format(president), presPattern.Blues,
		s.reg.Format(chancellor), chancPattern.Blues), nil
}

func (s *shell) parseActionArgs(in *engine.GovernmentInput, extra []string) error {
	conflict := in.PresidentClaimedBlues > 0 && in.ChancellorClaimedBlues == 0
	if !conflict && in.PresidentClaimedBlues > 0 {
		return nil // liberal policy, no action fires
	}
	_, fascists := s.game.BoardCounts()
	if fascists >= 5 {
		return nil
	}

	slot := s.game.Config.FascistBoard[fascists]
	switch slot.Kind {
	case engine.ActionKill:
		return s.parseTargetArg(in, extra, "killed player")
	case engine.ActionSpecialElection:
		return s.parseTargetArg(in, extra, "appointed president")
	case engine.ActionInvestigation, engine.ActionRevealParty:
		if len(extra) < 2 {
			return fmt.Errorf("this government unlocks the %s action: append <target> <claimed party>", slot.Kind)
		}
		target, err := s.resolvePlayer(extra[0])
		if err != nil {
			return err
		}
		claim, err := engine.ParsePolicy(extra[1])
		if err != nil {
			return err
		}
		in.ActionTarget = target
		in.ActionClaim = claim
	case engine.ActionTopDeckPeek:
		if len(extra) < 1 || len(extra[0]) != 3 {
			return fmt.Errorf("this government unlocks a top-deck peek: append the claimed three cards, e.g. rrb")
		}
		for i, r := range extra[0] {
			p, err := engine.ParsePolicy(string(r))
			if err != nil {
				return err
			}
			in.PeekClaim[i] = p
		}
	case engine.ActionPeekAndBurn:
		if len(extra) < 2 {
			return fmt.Errorf("this government unlocks a peek-and-burn: append <claimed card> <burned|kept>")
		}
		claim, err := engine.ParsePolicy(extra[0])
		if err != nil {
			return err
		}
		in.ActionClaim = claim
		switch strings.ToLower(extra[1]) {
		case "burned", "burn", "yes", "y":
			in.BurnDiscarded = true
		case "kept", "keep", "no", "n":
			in.BurnDiscarded = false
		default:
			return fmt.Errorf("expected burned or kept, got %q", extra[1])
		}
	}
	return nil
}

func (s *shell) parseTargetArg(in *engine.GovernmentInput, extra []string, what string) error {
	if len(extra) < 1 {
		return fmt.Errorf("this government needs a %s: append the player", what)
	}
	target, err := s.resolvePlayer(extra[0])
	if err != nil {
		return err
	}
	in.ActionTarget = target
	return nil
}

func (s *shell) cmdTopDeck(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: topdeck <policy>")
	}
	policy, err := engine.ParsePolicy(args[0])
	if err != nil {
		return "", err
	}
	if err := s.game.AddTopDeck(policy); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully recorded a top-decked %s policy.", policy), nil
}

func (s *shell) cmdPop(args []string) (string, error) {
	history := s.game.History()
	if err := s.game.PopElection(); err != nil {
		return "", err
	}
	last := history[len(history)-1]
	if last.Kind == engine.ResultTopDeck {
		return fmt.Sprintf("Successfully removed the top-decked %s policy.", last.TopDeckPolicy), nil
	}
	return fmt.Sprintf("Successfully removed the last government with president %s and chancellor %s.",
		s.reg.Format(last.Gov.President), s.reg.Format(last.Gov.Chancellor)), nil
}

func (s *shell) cmdHardFact(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("usage: hard_fact <player> <role>")
	}
	player, err := s.resolvePlayer(args[0])
	if err != nil {
		return "", err
	}
	role, err := engine.ParseSecretRole(args[1])
	if err != nil {
		return "", err
	}
	if err := s.game.AddFact(engine.HardFact(player, role)); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully recorded that player %s is %s.", s.reg.Format(player), role), nil
}

func (s *shell) cmdConflict(args []string) (string, error) {
	left, right, err := s.resolvePair(args, "conflict <player> <player>")
	if err != nil {
		return "", err
	}
	if err := s.game.AddFact(engine.PolicyConflict(left, right)); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully recorded a policy conflict between player %s and player %s.",
		s.reg.Format(left), s.reg.Format(right)), nil
}

func (s *shell) cmdConfirmNotHitler(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: confirm_not_hitler <player>")
	}
	player, err := s.resolvePlayer(args[0])
	if err != nil {
		return "", err
	}
	if err := s.game.AddFact(engine.ConfirmedNotHitler(player)); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully recorded that player %s is not Hitler.", s.reg.Format(player)), nil
}

func (s *shell) cmdLiberalInvestigation(args []string) (string, error) {
	investigator, investigatee, err := s.resolvePair(args, "liberal_investigation <investigator> <investigatee>")
	if err != nil {
		return "", err
	}
	if err := s.game.AddFact(engine.LiberalInvestigation(investigator, investigatee)); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully recorded that player %s investigated player %s and claimed a liberal.",
		s.reg.Format(investigator), s.reg.Format(investigatee)), nil
}

func (s *shell) cmdFascistInvestigation(args []string) (string, error) {
	investigator, investigatee, err := s.resolvePair(args, "fascist_investigation <investigator> <investigatee>")
	if err != nil {
		return "", err
	}
	if err := s.game.AddFact(engine.FascistInvestigation(investigator, investigatee)); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully recorded that player %s investigated player %s and claimed a fascist.",
		s.reg.Format(investigator), s.reg.Format(investigatee)), nil
}

func (s *shell) resolvePair(args []string, usage string) (engine.PlayerID, engine.PlayerID, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("usage: %s", usage)
	}
	first, err := s.resolvePlayer(args[0])
	if err != nil {
		return 0, 0, err
	}
	second, err := s.resolvePlayer(args[1])
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}

func (s *shell) cmdShowFacts(args []string) (string, error) {
	var b strings.Builder
	manual := s.game.ManualFacts()
	for i, fact := range manual {
		fmt.Fprintf(&b, "%d. %s\n", i+1, fact.Describe(s.reg.Format))
	}
	derived := engine.CollectInformation(s.game.Config, s.game.History())
	if len(derived) > 0 {
		fmt.Fprintln(&b, "Derived from the election history:")
		for _, fact := range derived {
			fmt.Fprintf(&b, "- %s\n", fact.Describe(s.reg.Format))
		}
	}
	if b.Len() == 0 {
		return "No facts recorded.", nil
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *shell) cmdRemoveFact(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: remove_fact <number>")
	}
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("invalid fact number %q", args[0])
	}
	if err := s.game.RemoveFact(number - 1); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully removed the fact #%d from the database.", number), nil
}

func (s *shell) cmdPassiveHitler(args []string) (string, error) {
	return s.toggle(args, &s.game.AssumePassiveHitler, "passive-Hitler assumption")
}

func (s *shell) cmdFascistConflict(args []string) (string, error) {
	return s.toggle(args, &s.game.AssumeNoFascistConflict, "no-fascist-conflict assumption")
}

func (s *shell) toggle(args []string, flag *bool, what string) (string, error) {
	if len(args) == 0 {
		state := "off"
		if *flag {
			state = "on"
		}
		return fmt.Sprintf("The %s is %s.", what, state), nil
	}
	switch strings.ToLower(args[0]) {
	case "on":
		*flag = true
	case "off":
		*flag = false
	default:
		return "", fmt.Errorf("expected on or off, got %q", args[0])
	}
	return fmt.Sprintf("Set the %s to %s.", what, strings.ToLower(args[0])), nil
}

func (s *shell) cmdSave(args []string) (string, error) {
	name := s.session
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return "", fmt.Errorf("no session name: use save <name> or start with --session")
	}
	err := s.store.Save(context.Background(), name, s.game.Snapshot(), s.reg.Names())
	if err != nil {
		return "", err
	}
	s.session = name
	return fmt.Sprintf("Saved session %q.", name), nil
}

func (s *shell) cmdLoad(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: load <name>")
	}
	if err := s.loadSession(args[0]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Loaded session %q.", args[0]), nil
}
